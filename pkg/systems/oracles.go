package systems

import "github.com/decker502/roomdecor/pkg/types"

// 放置引擎依赖的外部协作者接口
// 引擎在每次调用时直接查询，不缓存结果

// CollisionOracle 碰撞查询
// 家具层检查时不考虑套件层物品，套件层检查时不考虑家具层物品
type CollisionOracle interface {
	IsBlocked(cell types.Cell, layer types.Layer) bool
}

// WallOracle 墙体查询
type WallOracle interface {
	HasWall(cell types.Cell, dir types.Direction) bool
}

// RoomContext 当前房间上下文（按调用传入，没有全局单例）
type RoomContext interface {
	CurrentRoomTag() types.FurnitureTag
	// SetRoomTagIfUnset 仅在房间类别尚未设置时写入
	SetRoomTagIfUnset(tag types.FurnitureTag)
}

// RewardSink 奖励接收方（货币 + 分数）
type RewardSink interface {
	AwardReward(amount int)
}

// openSpace 没有提供碰撞/墙体查询时使用的默认实现：不阻挡，也没有墙
type openSpace struct{}

func (openSpace) IsBlocked(types.Cell, types.Layer) bool    { return false }
func (openSpace) HasWall(types.Cell, types.Direction) bool { return false }

// discardSink 丢弃所有奖励
type discardSink struct{}

func (discardSink) AwardReward(int) {}
