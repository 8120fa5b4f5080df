package components

import (
	"github.com/decker502/roomdecor/pkg/ecs"
	"github.com/decker502/roomdecor/pkg/types"
)

// RoomGridComponent 标识房间网格实体（空间索引的数据部分）
//
// 两个独立的层：
//   - Bases: 家具层，格子 -> 占用记录。同一底座覆盖的所有格子指向同一个 *PlacementRecord
//   - Kits:  套件层，格子 -> 套件记录
//
// 一个格子可以同时有家具记录和套件记录
type RoomGridComponent struct {
	Columns int
	Rows    int

	Bases map[types.Cell]*PlacementRecord
	Kits  map[types.Cell]*KitRecord
}

// NewRoomGridComponent 创建空的房间网格
func NewRoomGridComponent(columns, rows int) *RoomGridComponent {
	return &RoomGridComponent{
		Columns: columns,
		Rows:    rows,
		Bases:   make(map[types.Cell]*PlacementRecord),
		Kits:    make(map[types.Cell]*KitRecord),
	}
}

// PlacementRecord 底座占用记录
type PlacementRecord struct {
	Base   ecs.EntityID // 底座实体
	Anchor types.Cell   // 底座锚点
	Cells  []types.Cell // 底座覆盖的全部格子

	Topper      ecs.EntityID // 叠放物实体，0 表示没有
	TopperCells []types.Cell // 叠放物覆盖的格子（底座格子的子集）

	Stack []ecs.EntityID // 堆叠物（按放入顺序），仅堆叠接收器使用

	// ComboSprite 叠放物与底座是否构成组合外观，每次叠放/移除叠放物时重新计算
	ComboSprite bool
}

// HasTopper 是否已有叠放物
func (r *PlacementRecord) HasTopper() bool {
	return r.Topper != 0
}

// TopOfStack 返回最后放入的堆叠物，没有时返回 0
func (r *PlacementRecord) TopOfStack() ecs.EntityID {
	if len(r.Stack) == 0 {
		return 0
	}
	return r.Stack[len(r.Stack)-1]
}

// KitRecord 套件层单个格子的占用记录
type KitRecord struct {
	Kit    ecs.EntityID
	Anchor types.Cell
}
