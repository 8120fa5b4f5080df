package systems

import (
	"testing"

	"github.com/decker502/roomdecor/pkg/components"
	"github.com/decker502/roomdecor/pkg/types"
	"github.com/decker502/roomdecor/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placedInstance(r *testRig, id string, anchor types.Cell, unboxed bool) *components.InstanceComponent {
	inst := components.NewInstance(r.def(id), 0)
	inst.Anchor = anchor
	inst.Cells = utils.CellsFor(anchor, inst.Footprint)
	inst.IsUnboxed = unboxed
	return inst
}

// TestBonusBoxedInstancePaysNothing 未拆箱的实例不发放任何奖励，也不设置一次性标记
func TestBonusBoxedInstancePaysNothing(t *testing.T) {
	r := newTestRig(t)
	bonus := NewBonusSystem(r.sink, 0.5)
	inst := placedInstance(r, "bed", cell(0, 0), false)

	reward, events := bonus.Evaluate(r.room, inst, nil)

	assert.Zero(t, reward)
	assert.Empty(t, events)
	assert.False(t, inst.FirstTimePlaced)
	assert.False(t, inst.HasReceivedTagBonus)
	assert.Empty(t, r.sink.awards)
}

// TestBonusFirstPlacementAndTag 首次放置与类别奖励按顺序发放，只调用一次 RewardSink
func TestBonusFirstPlacementAndTag(t *testing.T) {
	r := newTestRig(t)
	bonus := NewBonusSystem(r.sink, 0.5)
	inst := placedInstance(r, "bed", cell(0, 0), true)

	reward, events := bonus.Evaluate(r.room, inst, nil)

	assert.Equal(t, 130, reward)
	require.Len(t, events, 2)
	assert.Equal(t, types.RewardFirstPlacement, events[0].Kind)
	assert.Equal(t, 100, events[0].Amount)
	assert.Equal(t, 0, events[0].Order)
	assert.InDelta(t, 0.0, events[0].DelaySeconds, 1e-9)
	assert.Equal(t, types.RewardTagBonus, events[1].Kind)
	assert.Equal(t, 30, events[1].Amount)
	assert.Equal(t, 1, events[1].Order)
	assert.InDelta(t, 0.5, events[1].DelaySeconds, 1e-9)
	assert.Equal(t, inst.InstanceID, events[1].InstanceID)

	assert.Equal(t, []int{130}, r.sink.awards)
	assert.Equal(t, types.TagBedroom, r.room.tag)

	// 第二次计算：一次性标记已设置
	reward, events = bonus.Evaluate(r.room, inst, nil)
	assert.Zero(t, reward)
	assert.Empty(t, events)
	assert.Len(t, r.sink.awards, 1)
}

// TestBonusTagMismatch 房间类别已被其他类别锁定时不发放类别奖励
func TestBonusTagMismatch(t *testing.T) {
	r := newTestRig(t)
	r.room.tag = types.TagOffice
	bonus := NewBonusSystem(r.sink, 0.5)
	inst := placedInstance(r, "bed", cell(0, 0), true)

	reward, _ := bonus.Evaluate(r.room, inst, nil)

	assert.Equal(t, 100, reward)
	assert.False(t, inst.HasReceivedTagBonus)
	assert.Equal(t, types.TagOffice, r.room.tag, "room tag is never overwritten")
}

// TestBonusNilRoom 没有房间上下文时跳过类别奖励
func TestBonusNilRoom(t *testing.T) {
	r := newTestRig(t)
	bonus := NewBonusSystem(nil, 0.5)
	inst := placedInstance(r, "chair", cell(0, 0), true)

	reward, events := bonus.Evaluate(nil, inst, nil)

	assert.Equal(t, 10, reward)
	assert.Len(t, events, 1)
	assert.False(t, inst.HasReceivedTagBonus)
}

// TestBonusComboPerCell 组合奖励按格子计数，同一格子只发一次
func TestBonusComboPerCell(t *testing.T) {
	r := newTestRig(t)
	bonus := NewBonusSystem(r.sink, 0.5)
	base := placedInstance(r, "table", cell(2, 2), true)
	base.EnsureBaseState()

	topper := placedInstance(r, "cloth", cell(2, 2), true)
	topper.FirstTimePlaced = true

	reward, events := bonus.Evaluate(r.room, topper, &ComboTarget{Base: base, NewCells: topper.Cells})
	assert.Equal(t, 10, reward)
	require.Len(t, events, 1)
	assert.Equal(t, types.RewardCombo, events[0].Kind)
	assert.True(t, topper.Layer.ComboDone)
	assert.Equal(t, []types.Cell{cell(0, 0), cell(1, 0)}, base.Base.ComboCells(), "offsets are base-local")

	// 部分重叠：只有新格子计数，底座范围外的格子被裁剪
	reward, _ = bonus.Evaluate(r.room, topper, &ComboTarget{Base: base, NewCells: []types.Cell{cell(3, 2), cell(3, 3), cell(4, 3)}})
	assert.Equal(t, 5, reward)
	assert.Equal(t, 3, base.Base.CompletedComboCells.Size())
}

// TestBonusComboZeroValue 组合值为0时记录格子但不设置 ComboDone
func TestBonusComboZeroValue(t *testing.T) {
	r := newTestRig(t)
	bonus := NewBonusSystem(r.sink, 0.5)
	base := placedInstance(r, "shelf", cell(0, 0), true)
	item := placedInstance(r, "book", cell(0, 0), true)
	item.FirstTimePlaced = true

	reward, events := bonus.Evaluate(r.room, item, &ComboTarget{Base: base, NewCells: item.Cells})

	assert.Zero(t, reward)
	assert.Empty(t, events)
	assert.Nil(t, item.Layer, "no layer state is created when nothing is paid")
	assert.Equal(t, 1, base.Base.CompletedComboCells.Size())
}

// TestComboSpriteEligible 组合外观判定（双向）
func TestComboSpriteEligible(t *testing.T) {
	r := newTestRig(t)

	tests := []struct {
		name   string
		base   string
		topper string
		want   bool
	}{
		{"叠放物指定底座", "table", "cloth", true},
		{"无组合外观", "table", "vase", false},
		{"触发定义不匹配", "bed", "cloth", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComboSpriteEligible(r.def(tt.base), r.def(tt.topper)))
		})
	}

	assert.False(t, ComboSpriteEligible(nil, r.def("cloth")))
}
