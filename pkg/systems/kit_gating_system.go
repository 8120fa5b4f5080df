package systems

import (
	"log"

	"github.com/decker502/roomdecor/pkg/components"
	"github.com/decker502/roomdecor/pkg/config"
	"github.com/decker502/roomdecor/pkg/ecs"
	"github.com/decker502/roomdecor/pkg/types"
)

// KitGatingSystem 套件门控系统
//
// 套件层发生变化时重新计算受影响实例的拆箱状态：
//   - 未拆箱 → 拆箱：按新放置的方式完整运行一次奖励计算（一次性标记保证不会重复发放）
//   - 拆箱 → 未拆箱：只更新标记，已发放的奖励不回收
//   - 状态不变：什么都不做
type KitGatingSystem struct {
	entityManager *ecs.EntityManager
	grid          *RoomGridSystem
	bonus         *BonusSystem
}

// NewKitGatingSystem 创建套件门控系统
func NewKitGatingSystem(em *ecs.EntityManager, grid *RoomGridSystem, bonus *BonusSystem) *KitGatingSystem {
	return &KitGatingSystem{
		entityManager: em,
		grid:          grid,
		bonus:         bonus,
	}
}

// IsUnboxedIn 纯查询：定义在 cells 范围内是否满足套件要求
// 没有 requiredBase 的定义总是满足
func (s *KitGatingSystem) IsUnboxedIn(def *config.CatalogDefinition, cells []types.Cell) bool {
	if def == nil || def.RequiredBase == nil {
		return true
	}
	for _, c := range cells {
		record := s.grid.KitAt(c)
		if record == nil {
			continue
		}
		kit, ok := ecs.GetComponent[*components.InstanceComponent](s.entityManager, record.Kit)
		if ok && kit.Definition == def.RequiredBase {
			return true
		}
	}
	return false
}

// Resolve 重新计算覆盖了 changed 中任一格子的底座记录上所有实例的拆箱状态
//
// 处理顺序固定：记录按锚点行优先，记录内依次为底座、叠放物、堆叠物（自底向上）
// 返回的事件按这个顺序统一编号，Order 在整个列表中唯一
//
// 返回:
//   - int: 因拆箱而发放的奖励合计
//   - []RewardEvent: 奖励事件
//   - []GatingChange: 状态发生变化的实例
func (s *KitGatingSystem) Resolve(room RoomContext, changed []types.Cell) (int, []RewardEvent, []GatingChange) {
	var (
		total   int
		events  []RewardEvent
		changes []GatingChange
	)

	apply := func(inst *components.InstanceComponent, unboxed bool, combo *ComboTarget) {
		if inst == nil || inst.IsUnboxed == unboxed {
			return
		}
		inst.IsUnboxed = unboxed
		changes = append(changes, GatingChange{InstanceID: inst.InstanceID, Unboxed: unboxed})
		log.Printf("[KitGatingSystem] %s (%s) unboxed=%v", inst.Definition.ID, inst.InstanceID, unboxed)
		if !unboxed {
			return
		}
		amount, evs := s.bonus.Evaluate(room, inst, combo)
		total += amount
		events = append(events, s.bonus.Sequence(evs, len(events))...)
	}

	for _, record := range s.grid.RecordsTouching(changed) {
		base := s.instance(record.Base)
		if base == nil {
			continue
		}
		if base.Definition.RequiredBase != nil {
			apply(base, s.IsUnboxedIn(base.Definition, record.Cells), nil)
		}

		if topper := s.instance(record.Topper); topper != nil && topper.Definition.RequiredBase != nil {
			apply(topper, s.IsUnboxedIn(topper.Definition, record.Cells), &ComboTarget{Base: base, NewCells: topper.Cells})
		}

		for _, id := range record.Stack {
			if item := s.instance(id); item != nil {
				apply(item, base.IsUnboxed, &ComboTarget{Base: base, NewCells: item.Cells})
			}
		}
	}

	return total, events, changes
}

func (s *KitGatingSystem) instance(id ecs.EntityID) *components.InstanceComponent {
	if id == 0 {
		return nil
	}
	inst, ok := ecs.GetComponent[*components.InstanceComponent](s.entityManager, id)
	if !ok {
		return nil
	}
	return inst
}
