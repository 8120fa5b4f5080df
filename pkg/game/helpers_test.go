package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/decker502/roomdecor/pkg/config"
	"github.com/decker502/roomdecor/pkg/ecs"
	"github.com/decker502/roomdecor/pkg/systems"
	"github.com/decker502/roomdecor/pkg/types"
	"github.com/quasilyte/gdata/v2"
	"github.com/stretchr/testify/require"
)

// loadTestCatalog 加载随项目发布的目录
func loadTestCatalog(t *testing.T) *config.Catalog {
	t.Helper()
	catalog, err := config.LoadCatalog("../../data/catalog.yaml")
	require.NoError(t, err)
	return catalog
}

// openTestStorage 在临时 HOME 下创建 gdata Manager，无法创建时跳过测试
func openTestStorage(t *testing.T) *gdata.Manager {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", home)

	manager, err := gdata.Open(gdata.Config{
		AppName: fmt.Sprintf("roomdecor_test_%d", time.Now().UnixNano()),
	})
	if err != nil {
		t.Skipf("Cannot create gdata manager for testing: %v", err)
	}
	return manager
}

// newTestEngine 使用 Room 作为碰撞/墙体查询、GameState 作为奖励接收方
func newTestEngine(room *Room, gs *GameState) *systems.PlacementSystem {
	return systems.NewPlacementSystem(ecs.NewEntityManager(), room, room, gs, &config.EngineConfig{
		Columns:         room.Columns,
		Rows:            room.Rows,
		BonusPopupDelay: config.DefaultBonusPopupDelay,
	})
}

func mustDef(t *testing.T, catalog *config.Catalog, id string) *config.CatalogDefinition {
	t.Helper()
	def, ok := catalog.Get(id)
	require.True(t, ok, "unknown definition %s", id)
	return def
}

func cell(x, y int) types.Cell {
	return types.Cell{X: x, Y: y}
}
