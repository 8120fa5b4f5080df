package systems

import (
	"sort"

	"github.com/decker502/roomdecor/pkg/components"
	"github.com/decker502/roomdecor/pkg/ecs"
	"github.com/decker502/roomdecor/pkg/types"
	"github.com/decker502/roomdecor/pkg/utils"
)

// RoomGridSystem 管理房间网格的空间索引
//
// 数据保存在网格实体的 RoomGridComponent 上。这里的操作都是简单的映射修改，
// 不做任何合法性校验（校验由 PlacementSystem 负责）
type RoomGridSystem struct {
	entityManager *ecs.EntityManager
	gridEntity    ecs.EntityID
}

// NewRoomGridSystem 创建房间网格系统，同时创建网格实体
// 参数:
//   - em: EntityManager 实例
//   - columns, rows: 网格尺寸
func NewRoomGridSystem(em *ecs.EntityManager, columns, rows int) *RoomGridSystem {
	gridEntity := em.CreateEntity()
	ecs.AddComponent(em, gridEntity, components.NewRoomGridComponent(columns, rows))
	return &RoomGridSystem{
		entityManager: em,
		gridEntity:    gridEntity,
	}
}

// GridEntity 返回网格实体ID
func (s *RoomGridSystem) GridEntity() ecs.EntityID {
	return s.gridEntity
}

func (s *RoomGridSystem) grid() *components.RoomGridComponent {
	grid, _ := ecs.GetComponent[*components.RoomGridComponent](s.entityManager, s.gridEntity)
	return grid
}

// Columns 网格列数
func (s *RoomGridSystem) Columns() int { return s.grid().Columns }

// Rows 网格行数
func (s *RoomGridSystem) Rows() int { return s.grid().Rows }

// CellsFor 计算锚点 + 有效占地覆盖的格子
func (s *RoomGridSystem) CellsFor(anchor types.Cell, footprint types.Size) []types.Cell {
	return utils.CellsFor(anchor, footprint)
}

// InBounds 检查所有格子是否都在网格范围内
func (s *RoomGridSystem) InBounds(cells []types.Cell) bool {
	grid := s.grid()
	for _, c := range cells {
		if c.X < 0 || c.X >= grid.Columns || c.Y < 0 || c.Y >= grid.Rows {
			return false
		}
	}
	return len(cells) > 0
}

// BaseAt 返回格子上的底座记录，没有时返回 nil
func (s *RoomGridSystem) BaseAt(cell types.Cell) *components.PlacementRecord {
	return s.grid().Bases[cell]
}

// KitAt 返回格子上的套件记录，没有时返回 nil
func (s *RoomGridSystem) KitAt(cell types.Cell) *components.KitRecord {
	return s.grid().Kits[cell]
}

// InsertBase 写入底座记录，所有覆盖的格子指向同一个记录
func (s *RoomGridSystem) InsertBase(anchor types.Cell, cells []types.Cell, entity ecs.EntityID) *components.PlacementRecord {
	record := &components.PlacementRecord{
		Base:   entity,
		Anchor: anchor,
		Cells:  append([]types.Cell(nil), cells...),
	}
	grid := s.grid()
	for _, c := range cells {
		grid.Bases[c] = record
	}
	return record
}

// InsertTopper 把叠放物写入 cells 所在的底座记录
// 返回被修改的记录，cells 下没有底座时返回 nil
func (s *RoomGridSystem) InsertTopper(cells []types.Cell, entity ecs.EntityID) *components.PlacementRecord {
	if len(cells) == 0 {
		return nil
	}
	record := s.BaseAt(cells[0])
	if record == nil {
		return nil
	}
	record.Topper = entity
	record.TopperCells = append([]types.Cell(nil), cells...)
	return record
}

// InsertStackItem 把堆叠物压入 cells 所在的底座记录
func (s *RoomGridSystem) InsertStackItem(cells []types.Cell, entity ecs.EntityID) *components.PlacementRecord {
	if len(cells) == 0 {
		return nil
	}
	record := s.BaseAt(cells[0])
	if record == nil {
		return nil
	}
	record.Stack = append(record.Stack, entity)
	return record
}

// InsertKit 写入单个格子的套件记录
func (s *RoomGridSystem) InsertKit(cell types.Cell, entity ecs.EntityID, anchor types.Cell) {
	s.grid().Kits[cell] = &components.KitRecord{Kit: entity, Anchor: anchor}
}

// RemoveBase 从所有覆盖的格子上清除底座记录
func (s *RoomGridSystem) RemoveBase(record *components.PlacementRecord) {
	grid := s.grid()
	for _, c := range record.Cells {
		if grid.Bases[c] == record {
			delete(grid.Bases, c)
		}
	}
}

// RemoveTopper 清除叠放物，返回被清除的实体（没有时为 0）
func (s *RoomGridSystem) RemoveTopper(record *components.PlacementRecord) ecs.EntityID {
	topper := record.Topper
	record.Topper = 0
	record.TopperCells = nil
	record.ComboSprite = false
	return topper
}

// RemoveStackTop 弹出最后放入的堆叠物（后进先出），没有时返回 0
func (s *RoomGridSystem) RemoveStackTop(record *components.PlacementRecord) ecs.EntityID {
	top := record.TopOfStack()
	if top != 0 {
		record.Stack = record.Stack[:len(record.Stack)-1]
	}
	return top
}

// RemoveKit 清除单个格子的套件记录，返回被清除的记录
func (s *RoomGridSystem) RemoveKit(cell types.Cell) *components.KitRecord {
	grid := s.grid()
	record := grid.Kits[cell]
	delete(grid.Kits, cell)
	return record
}

// Records 返回所有底座记录（去重，按锚点行优先排序）
func (s *RoomGridSystem) Records() []*components.PlacementRecord {
	grid := s.grid()
	seen := make(map[*components.PlacementRecord]struct{}, len(grid.Bases))
	records := make([]*components.PlacementRecord, 0, len(grid.Bases))
	for _, r := range grid.Bases {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		records = append(records, r)
	}
	sortRecords(records)
	return records
}

// RecordsTouching 返回覆盖了 cells 中任一格子的底座记录（去重，按锚点排序）
func (s *RoomGridSystem) RecordsTouching(cells []types.Cell) []*components.PlacementRecord {
	grid := s.grid()
	seen := make(map[*components.PlacementRecord]struct{})
	var records []*components.PlacementRecord
	for _, c := range cells {
		r := grid.Bases[c]
		if r == nil {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		records = append(records, r)
	}
	sortRecords(records)
	return records
}

// KitEntities 返回套件层上的所有套件实体（去重，按锚点排序）
func (s *RoomGridSystem) KitEntities() []ecs.EntityID {
	grid := s.grid()
	anchors := make(map[ecs.EntityID]types.Cell)
	for _, r := range grid.Kits {
		anchors[r.Kit] = r.Anchor
	}
	kits := make([]ecs.EntityID, 0, len(anchors))
	for id := range anchors {
		kits = append(kits, id)
	}
	sort.Slice(kits, func(i, j int) bool {
		ai, aj := anchors[kits[i]], anchors[kits[j]]
		if ai != aj {
			return ai.Less(aj)
		}
		return kits[i] < kits[j]
	})
	return kits
}

func sortRecords(records []*components.PlacementRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Anchor.Less(records[j].Anchor)
	})
}
