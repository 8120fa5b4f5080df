package game

import (
	"log"
	"sort"

	"github.com/decker502/roomdecor/pkg/types"
	"github.com/zyedidia/generic/mapset"
)

// wallSide 格子某一侧的墙
type wallSide struct {
	Cell types.Cell
	Dir  types.Direction
}

// Room 矩形房间
//
// 放置引擎的外部协作者：
//   - RoomContext: 房间类别（只在第一次写入）
//   - WallOracle: 外围一圈墙 + 额外的内墙
//   - CollisionOracle: 柱子等固定障碍，对家具层和套件层都生效
type Room struct {
	ID      string
	Columns int
	Rows    int

	tag     types.FurnitureTag
	walls   mapset.Set[wallSide]
	pillars mapset.Set[types.Cell]
}

// NewRoom 创建房间
func NewRoom(id string, columns, rows int) *Room {
	return &Room{
		ID:      id,
		Columns: columns,
		Rows:    rows,
		tag:     types.TagNone,
		walls:   mapset.New[wallSide](),
		pillars: mapset.New[types.Cell](),
	}
}

// CurrentRoomTag 当前房间类别，未设置时为 TagNone
func (r *Room) CurrentRoomTag() types.FurnitureTag {
	return r.tag
}

// SetRoomTagIfUnset 房间类别只在第一次写入，之后不会被覆盖
func (r *Room) SetRoomTagIfUnset(tag types.FurnitureTag) {
	if r.tag != types.TagNone || tag == types.TagNone {
		return
	}
	r.tag = tag
	log.Printf("[Room] %s tagged as %s", r.ID, tag)
}

// Contains 格子是否在房间内
func (r *Room) Contains(cell types.Cell) bool {
	return cell.X >= 0 && cell.X < r.Columns && cell.Y >= 0 && cell.Y < r.Rows
}

// AddWall 在格子某一侧添加内墙（相邻格子的对侧同时生效）
func (r *Room) AddWall(cell types.Cell, dir types.Direction) {
	r.walls.Put(wallSide{Cell: cell, Dir: dir})
	r.walls.Put(wallSide{Cell: cell.Add(dir.Delta()), Dir: dir.Opposite()})
}

// HasWall 格子在 dir 方向上是否有墙
// 房间边缘的格子朝外一侧总是有墙
func (r *Room) HasWall(cell types.Cell, dir types.Direction) bool {
	if !r.Contains(cell) {
		return false
	}
	if !r.Contains(cell.Add(dir.Delta())) {
		return true
	}
	return r.walls.Has(wallSide{Cell: cell, Dir: dir})
}

// AddPillar 添加柱子
func (r *Room) AddPillar(cell types.Cell) {
	r.pillars.Put(cell)
}

// Pillars 返回所有柱子的位置（按行优先排序）
func (r *Room) Pillars() []types.Cell {
	cells := make([]types.Cell, 0, r.pillars.Size())
	r.pillars.Each(func(c types.Cell) {
		cells = append(cells, c)
	})
	sortCells(cells)
	return cells
}

// IsBlocked 柱子同时阻挡两个层，房间外的格子总是被阻挡
func (r *Room) IsBlocked(cell types.Cell, layer types.Layer) bool {
	if !r.Contains(cell) {
		return true
	}
	return r.pillars.Has(cell)
}

func sortCells(cells []types.Cell) {
	sort.Slice(cells, func(i, j int) bool { return cells[i].Less(cells[j]) })
}
