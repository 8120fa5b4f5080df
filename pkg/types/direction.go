package types

// Direction 表示格子的四个正方向
// 枚举顺序即挂墙物品的方向搜索顺序（上、左、下、右），
// 同时也是对应的旋转步数
type Direction int

const (
	DirectionUp Direction = iota
	DirectionLeft
	DirectionDown
	DirectionRight
)

// AllDirections 固定的方向搜索顺序
var AllDirections = [4]Direction{DirectionUp, DirectionLeft, DirectionDown, DirectionRight}

// RotationStep 返回挂墙物品朝向该方向时的旋转步数 (0-3)
func (d Direction) RotationStep() int {
	return int(d)
}

// DirectionForRotation 返回旋转步数对应的方向
func DirectionForRotation(step int) Direction {
	return Direction(NormalizeRotation(step))
}

// Delta 返回该方向上相邻格子的偏移
func (d Direction) Delta() Cell {
	switch d {
	case DirectionUp:
		return Cell{X: 0, Y: -1}
	case DirectionLeft:
		return Cell{X: -1, Y: 0}
	case DirectionDown:
		return Cell{X: 0, Y: 1}
	case DirectionRight:
		return Cell{X: 1, Y: 0}
	default:
		return Cell{}
	}
}

// Opposite 返回相反方向
func (d Direction) Opposite() Direction {
	return Direction((int(d) + 2) % 4)
}

// String 返回方向的字符串表示
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionLeft:
		return "left"
	case DirectionDown:
		return "down"
	case DirectionRight:
		return "right"
	default:
		return "unknown"
	}
}

// NormalizeRotation 将任意整数旋转步数归一到 0-3
func NormalizeRotation(step int) int {
	step %= 4
	if step < 0 {
		step += 4
	}
	return step
}
