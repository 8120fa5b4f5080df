package types

import "fmt"

// Cell 房间网格坐标
// X 为列（向右递增），Y 为行（向下递增）
type Cell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Add 返回两个坐标的和
func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub 返回两个坐标的差，用于计算相对于锚点的局部偏移
func (c Cell) Sub(o Cell) Cell {
	return Cell{X: c.X - o.X, Y: c.Y - o.Y}
}

// Less 按行优先顺序比较坐标，用于生成确定性的遍历顺序
func (c Cell) Less(o Cell) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Size 占地尺寸（格子数）
//
// 目录中定义的尺寸总是未旋转方向且为正值；
// 旋转后的有效占地 (effective footprint) 两个分量可能为负，
// 负值表示从锚点向左/向上延伸
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Area 返回占地面积（格子数）
func (s Size) Area() int {
	w, h := s.Width, s.Height
	if w < 0 {
		w = -w
	}
	if h < 0 {
		h = -h
	}
	return w * h
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}
