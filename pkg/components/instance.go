package components

import (
	"sort"

	"github.com/decker502/roomdecor/pkg/config"
	"github.com/decker502/roomdecor/pkg/ecs"
	"github.com/decker502/roomdecor/pkg/types"
	"github.com/decker502/roomdecor/pkg/utils"
	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
)

// InstanceComponent 已放置物品的实例状态
//
// 每个已放置的物品是一个实体，携带一个 InstanceComponent。
// 物品被拿起后组件从实体上脱离并返回给调用方，重新放置时作为“实例数据”传回，
// 因此 InstanceID、各个一次性标记以及角色数据都会随物品一起保留
type InstanceComponent struct {
	InstanceID uuid.UUID
	Definition *config.CatalogDefinition

	// Role 当前角色，决定 Base / Layer 中哪一份数据有效
	Role types.InstanceRole

	RotationStep int        // 0-3
	Footprint    types.Size // 旋转后的有效占地
	Anchor       types.Cell
	Cells        []types.Cell // 当前覆盖的格子（堆叠物为裁剪到底座范围内的格子）

	// 一次性标记：只会从 false 变为 true
	FirstTimePlaced     bool
	HasReceivedTagBonus bool

	// IsUnboxed 由套件门控计算，不会被单独修改
	IsUnboxed bool

	// 角色数据：一旦创建就随实例永久保留
	Base  *BaseState
	Layer *LayerState
}

// BaseState 底座角色数据
type BaseState struct {
	// CompletedComboCells 已发放过组合奖励的格子（未旋转占地中相对锚点的偏移），只增不减
	CompletedComboCells mapset.Set[types.Cell]
	// StackLevel 当前堆叠在此底座上的物品数量
	StackLevel int
}

// LayerState 叠放物/堆叠物角色数据
type LayerState struct {
	Host              ecs.EntityID // 所在底座实体，未放置时为 0
	CurrentStackLevel int          // 在堆叠中的位置（从 1 开始），叠放物为 0
	ComboDone         bool         // 是否已经领取过组合奖励，单向标记
}

// NewInstance 由目录定义创建新实例
func NewInstance(def *config.CatalogDefinition, rotationStep int) *InstanceComponent {
	inst := &InstanceComponent{
		InstanceID: uuid.New(),
		Definition: def,
		Role:       types.RoleGeneric,
	}
	inst.SetRotation(rotationStep)
	return inst
}

// SetRotation 设置旋转步数并重新计算有效占地
func (i *InstanceComponent) SetRotation(step int) {
	i.RotationStep = types.NormalizeRotation(step)
	if i.Definition != nil {
		i.Footprint = utils.RotateFootprint(i.Definition.Size, i.RotationStep)
	}
}

// EnsureBaseState 返回底座角色数据，不存在时创建
func (i *InstanceComponent) EnsureBaseState() *BaseState {
	if i.Base == nil {
		i.Base = &BaseState{CompletedComboCells: mapset.New[types.Cell]()}
	}
	return i.Base
}

// EnsureLayerState 返回叠放角色数据，不存在时创建
func (i *InstanceComponent) EnsureLayerState() *LayerState {
	if i.Layer == nil {
		i.Layer = &LayerState{}
	}
	return i.Layer
}

// ComboCells 返回已完成组合的格子偏移（按行优先排序）
func (b *BaseState) ComboCells() []types.Cell {
	cells := make([]types.Cell, 0, b.CompletedComboCells.Size())
	b.CompletedComboCells.Each(func(c types.Cell) {
		cells = append(cells, c)
	})
	sort.Slice(cells, func(x, y int) bool { return cells[x].Less(cells[y]) })
	return cells
}

// MarkComboCell 记录一个组合格子
//
// 返回:
//   - bool: true 表示这是新格子（应发放奖励），false 表示已经记录过
func (b *BaseState) MarkComboCell(offset types.Cell) bool {
	if b.CompletedComboCells.Has(offset) {
		return false
	}
	b.CompletedComboCells.Put(offset)
	return true
}

// Clone 深拷贝实例数据
// 重新放置时引擎使用副本，拒绝的请求不会修改调用方持有的数据
func (i *InstanceComponent) Clone() *InstanceComponent {
	if i == nil {
		return nil
	}
	c := *i
	c.Cells = append([]types.Cell(nil), i.Cells...)
	if i.Base != nil {
		base := &BaseState{
			CompletedComboCells: mapset.New[types.Cell](),
			StackLevel:          i.Base.StackLevel,
		}
		i.Base.CompletedComboCells.Each(func(cell types.Cell) {
			base.CompletedComboCells.Put(cell)
		})
		c.Base = base
	}
	if i.Layer != nil {
		layer := *i.Layer
		c.Layer = &layer
	}
	return &c
}
