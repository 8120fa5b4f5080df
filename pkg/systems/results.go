package systems

import (
	"errors"
	"fmt"

	"github.com/decker502/roomdecor/pkg/components"
	"github.com/decker502/roomdecor/pkg/config"
	"github.com/decker502/roomdecor/pkg/ecs"
	"github.com/decker502/roomdecor/pkg/types"
	"github.com/google/uuid"
)

// 拒绝原因对应的哨兵错误，调用方可以用 errors.Is 判断
var (
	ErrOutOfBounds      = errors.New("target cells out of bounds")
	ErrOccupied         = errors.New("target cells occupied")
	ErrNoWallAdjacent   = errors.New("no adjacent wall")
	ErrStackFull        = errors.New("stack receiver full")
	ErrIncompatibleBase = errors.New("incompatible base")
	ErrInvalidRequest   = errors.New("invalid placement request")
)

// ReasonError 返回拒绝原因对应的哨兵错误，RejectNone 返回 nil
func ReasonError(reason types.RejectReason) error {
	switch reason {
	case types.RejectNone:
		return nil
	case types.RejectOutOfBounds:
		return ErrOutOfBounds
	case types.RejectOccupied:
		return ErrOccupied
	case types.RejectNoWallAdjacent:
		return ErrNoWallAdjacent
	case types.RejectStackFull:
		return ErrStackFull
	case types.RejectIncompatibleBase:
		return ErrIncompatibleBase
	default:
		return ErrInvalidRequest
	}
}

// PlaceRequest 放置请求
type PlaceRequest struct {
	Definition *config.CatalogDefinition
	// Instance 可选：被拿起的物品或存档中恢复的实例数据
	// 不为 nil 时保留其 InstanceID、一次性标记和角色数据
	Instance     *components.InstanceComponent
	Anchor       types.Cell
	RotationStep int

	// Restore 恢复存档时使用：叠放物不再要求底座已拆箱
	// （底座可能在叠放之后因移除套件而重新装箱）
	Restore bool
}

// RewardEvent 一次奖励发放的通知
// Order/DelaySeconds 是给表现层的弹窗顺序与延迟提示
type RewardEvent struct {
	Kind         types.RewardKind
	Amount       int
	Cell         types.Cell
	InstanceID   uuid.UUID
	Order        int
	DelaySeconds float64
}

// PlaceResult 放置结果
type PlaceResult struct {
	Committed bool
	Mode      types.PlacementMode
	Reason    types.RejectReason

	Reward int
	Events []RewardEvent

	InstanceID   uuid.UUID
	Entity       ecs.EntityID
	Cells        []types.Cell
	RotationStep int // 挂墙物品可能被自动转向
	ComboSprite  bool
}

// Err 提交成功返回 nil，否则返回包装了哨兵错误的 error
func (r PlaceResult) Err() error {
	if r.Committed {
		return nil
	}
	return fmt.Errorf("placement rejected (%s): %w", r.Reason, ReasonError(r.Reason))
}

// GatingChange 一次套件门控状态变化
type GatingChange struct {
	InstanceID uuid.UUID
	Unboxed    bool
}

// KitResult 套件放置结果
type KitResult struct {
	Committed bool
	Reason    types.RejectReason

	InstanceID uuid.UUID
	Entity     ecs.EntityID
	Cells      []types.Cell

	// 放入套件后被拆箱的实例及其奖励
	Reward int
	Events []RewardEvent
	Gating []GatingChange
}

// Err 提交成功返回 nil，否则返回包装了哨兵错误的 error
func (r KitResult) Err() error {
	if r.Committed {
		return nil
	}
	return fmt.Errorf("kit rejected (%s): %w", r.Reason, ReasonError(r.Reason))
}

// RemoveResult 移除结果
type RemoveResult struct {
	// Removed 被移除的实例数据，格子为空时为 nil
	// 可以作为 PlaceRequest.Instance 重新放置
	Removed *components.InstanceComponent
	Role    types.InstanceRole

	// 仅整体移除底座或套件时填写：从空间索引中释放的格子
	FreedCells []types.Cell
	FreedArea  int

	// 移除套件后重新装箱的实例
	Gating []GatingChange
}

// OK 是否移除了实例
func (r RemoveResult) OK() bool {
	return r.Removed != nil
}
