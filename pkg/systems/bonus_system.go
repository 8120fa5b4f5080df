package systems

import (
	"log"

	"github.com/decker502/roomdecor/pkg/components"
	"github.com/decker502/roomdecor/pkg/config"
	"github.com/decker502/roomdecor/pkg/types"
	"github.com/decker502/roomdecor/pkg/utils"
)

// BonusSystem 奖励计算系统
//
// 每次成功提交（以及套件门控由未拆箱变为拆箱）时运行一次，按固定顺序计算：
//  1. 首次放置奖励：拆箱且未领取过 → 定义价格
//  2. 类别奖励：拆箱、有类别、与房间类别一致且未领取过 → tagMatchBonusPoints
//  3. 组合奖励：叠放/堆叠到底座上时，每个新组合格子发放底座定义的 comboValue
//
// 所有奖励合计后只调用一次 RewardSink
type BonusSystem struct {
	sink       RewardSink
	popupDelay float64
}

// ComboTarget 组合奖励的计算对象
type ComboTarget struct {
	Base     *components.InstanceComponent
	NewCells []types.Cell // 本次新占用的格子（网格坐标）
}

// NewBonusSystem 创建奖励系统
// 参数:
//   - sink: 奖励接收方，nil 时奖励被丢弃（仍然返回事件）
//   - popupDelay: 相邻两个奖励弹窗的延迟（秒）
func NewBonusSystem(sink RewardSink, popupDelay float64) *BonusSystem {
	if sink == nil {
		sink = discardSink{}
	}
	return &BonusSystem{sink: sink, popupDelay: popupDelay}
}

// Evaluate 为实例计算并发放奖励
// 参数:
//   - room: 房间上下文，nil 时跳过类别奖励
//   - inst: 刚提交（或刚拆箱）的实例
//   - combo: 叠放物/堆叠物的组合对象，普通放置传 nil
//
// 返回:
//   - int: 奖励合计
//   - []RewardEvent: 每项非零奖励一个事件
func (s *BonusSystem) Evaluate(room RoomContext, inst *components.InstanceComponent, combo *ComboTarget) (int, []RewardEvent) {
	if inst == nil || inst.Definition == nil || !inst.IsUnboxed {
		return 0, nil
	}
	def := inst.Definition

	var events []RewardEvent
	pay := func(kind types.RewardKind, amount int) {
		if amount <= 0 {
			return
		}
		order := len(events)
		events = append(events, RewardEvent{
			Kind:         kind,
			Amount:       amount,
			Cell:         inst.Anchor,
			InstanceID:   inst.InstanceID,
			Order:        order,
			DelaySeconds: float64(order) * s.popupDelay,
		})
	}

	// 首次放置
	if !inst.FirstTimePlaced {
		inst.FirstTimePlaced = true
		pay(types.RewardFirstPlacement, def.Price)
	}

	// 类别奖励：每个实例只发一次，不论从哪条路径进入
	if room != nil && def.FurnitureTag != types.TagNone {
		room.SetRoomTagIfUnset(def.FurnitureTag)
		if room.CurrentRoomTag() == def.FurnitureTag && !inst.HasReceivedTagBonus {
			inst.HasReceivedTagBonus = true
			pay(types.RewardTagBonus, def.TagMatchBonusPoints)
		}
	}

	// 组合奖励
	if combo != nil && combo.Base != nil {
		if amount := s.comboReward(combo); amount > 0 {
			inst.EnsureLayerState().ComboDone = true
			pay(types.RewardCombo, amount)
		}
	}

	total := 0
	for _, e := range events {
		total += e.Amount
	}
	if total > 0 {
		s.sink.AwardReward(total)
		log.Printf("[BonusSystem] %s (%s) earned %d in %d event(s)", def.ID, inst.InstanceID, total, len(events))
	}
	return total, events
}

// Sequence 把一个实例的事件接在已有的 offset 个事件之后，重新计算 Order 与 DelaySeconds
// 一次提交评估多个实例时使用
func (s *BonusSystem) Sequence(events []RewardEvent, offset int) []RewardEvent {
	for i := range events {
		events[i].Order = offset + i
		events[i].DelaySeconds = float64(events[i].Order) * s.popupDelay
	}
	return events
}

// comboReward 记录新组合格子并累计底座定义的 comboValue
// 组合格子只增不减，已记录的格子不会再次发放
// 格子按未旋转占地中的偏移记录，底座被拿起后换个朝向放回也不会重复计算
func (s *BonusSystem) comboReward(combo *ComboTarget) int {
	base := combo.Base
	state := base.EnsureBaseState()
	value := 0
	if base.Definition != nil {
		value = base.Definition.ComboValue
	}

	total := 0
	for _, cell := range utils.IntersectCells(combo.NewCells, base.Cells) {
		if state.MarkComboCell(utils.UnrotateOffset(cell.Sub(base.Anchor), base.RotationStep)) {
			total += value
		}
	}
	return total
}

// ComboSpriteEligible 叠放物与底座是否构成组合外观
// 与组合奖励无关，不读写 CompletedComboCells
func ComboSpriteEligible(base, topper *config.CatalogDefinition) bool {
	if base == nil || topper == nil {
		return false
	}
	return (topper.HasComboSprite && topper.ComboTrigger == base) ||
		(base.HasComboSprite && base.ComboTrigger == topper)
}
