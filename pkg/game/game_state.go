package game

import (
	"log"

	"github.com/decker502/roomdecor/pkg/utils"
	"github.com/quasilyte/gdata/v2"
)

// MaxCoins 金币显示上限
const MaxCoins = 999999

// GameState 存储游戏会话状态
//
// 作为放置引擎的奖励接收方（systems.RewardSink）。
// 由调用方创建并显式传递
type GameState struct {
	Coins int // 当前金币
	Score int // 累计分数（不受上限影响）

	// AwardCount 收到奖励的次数（每次提交最多一次）
	AwardCount int

	gdataManager *gdata.Manager // 跨平台存储，可为 nil（降级模式）
}

// NewGameState 创建游戏状态
//
// 参数：
//   - gdataManager: 存储管理器，可为 nil
func NewGameState(gdataManager *gdata.Manager) *GameState {
	return &GameState{gdataManager: gdataManager}
}

// OpenStorage 打开 gdata 存储
// 失败时返回 nil 并记录警告，游戏以仅内存模式继续运行
func OpenStorage(appName string) *gdata.Manager {
	if err := utils.PrepareStorage(appName); err != nil {
		log.Printf("[GameState] Warning: %v", err)
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[GameState] Warning: Failed to open gdata storage %q: %v (memory-only mode)", appName, err)
		return nil
	}
	return manager
}

// AwardReward 接收奖励：金币与分数同时增加，金币带上限
func (gs *GameState) AwardReward(amount int) {
	if amount <= 0 {
		return
	}
	gs.AwardCount++
	gs.Score += amount
	gs.Coins += amount
	if gs.Coins > MaxCoins {
		gs.Coins = MaxCoins
	}
}

// GetCoins 返回当前金币
func (gs *GameState) GetCoins() int {
	return gs.Coins
}

// GetGdataManager 返回存储管理器（可能为 nil）
func (gs *GameState) GetGdataManager() *gdata.Manager {
	return gs.gdataManager
}
