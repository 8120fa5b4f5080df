// Package main 在没有窗口的情况下验证放置引擎的三个典型场景
//
// Usage:
//
//	go run cmd/verify_placement/main.go [--catalog data/catalog.yaml] [--verbose]
//
// 场景：
//   - 堆叠：书架接收书本直到上限，移除按后进先出
//   - 未拆箱底座：没有套件的柜台不能放置叠放物，插入套件后拆箱并发放奖励
//   - 组合：床架 + 羽绒被，组合格子只奖励一次
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/roomdecor/pkg/config"
	"github.com/decker502/roomdecor/pkg/ecs"
	"github.com/decker502/roomdecor/pkg/game"
	"github.com/decker502/roomdecor/pkg/systems"
	"github.com/decker502/roomdecor/pkg/types"
)

var (
	catalogFlag = flag.String("catalog", "data/catalog.yaml", "物品目录文件")
	verboseFlag = flag.Bool("verbose", false, "显示引擎日志")
)

// checker 记录检查结果
type checker struct {
	failed int
}

func (c *checker) expect(ok bool, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if ok {
		fmt.Printf("  ✅ %s\n", msg)
		return
	}
	fmt.Printf("  ❌ %s\n", msg)
	c.failed++
}

// scene 一个独立的房间 + 引擎
type scene struct {
	catalog *config.Catalog
	room    *game.Room
	state   *game.GameState
	ps      *systems.PlacementSystem
}

func newScene(catalog *config.Catalog, roomID string) *scene {
	cfg := config.DefaultEngineConfig()
	room := game.NewRoom(roomID, cfg.Columns, cfg.Rows)
	state := game.NewGameState(nil)
	return &scene{
		catalog: catalog,
		room:    room,
		state:   state,
		ps:      systems.NewPlacementSystem(ecs.NewEntityManager(), room, room, state, cfg),
	}
}

func (s *scene) place(id string, x, y int) systems.PlaceResult {
	def, ok := s.catalog.Get(id)
	if !ok {
		log.Fatalf("目录中没有 %s", id)
	}
	return s.ps.TryPlace(s.room, systems.PlaceRequest{Definition: def, Anchor: types.Cell{X: x, Y: y}})
}

func (s *scene) kit(id string, x, y int) systems.KitResult {
	def, ok := s.catalog.Get(id)
	if !ok {
		log.Fatalf("目录中没有 %s", id)
	}
	return s.ps.InsertKit(s.room, def, types.Cell{X: x, Y: y})
}

func verifyStack(c *checker, catalog *config.Catalog) {
	fmt.Println("=== 堆叠 ===")
	s := newScene(catalog, "study")

	shelf := s.place("bookshelf", 2, 1)
	c.expect(shelf.Committed && shelf.Mode == types.ModePlain, "书架普通放置 (mode=%s)", shelf.Mode)

	var books []systems.PlaceResult
	for i := 0; i < 3; i++ {
		books = append(books, s.place("book", 2, 2))
	}
	for i, b := range books {
		c.expect(b.Committed && b.Mode == types.ModeStack, "第 %d 本书堆叠 (mode=%s)", i+1, b.Mode)
	}
	full := s.place("book", 2, 1)
	c.expect(full.Reason == types.RejectStackFull, "第 4 本书被拒绝 (reason=%s)", full.Reason)

	removed := s.ps.TryRemove(types.Cell{X: 2, Y: 1})
	c.expect(removed.OK() && removed.Removed.InstanceID == books[2].InstanceID, "移除最上面的一本书")
	record := s.ps.RecordAt(types.Cell{X: 2, Y: 1})
	base := s.ps.InstanceOf(record.Base)
	c.expect(base.Base.StackLevel == 2, "书架堆叠层级回到 2 (got %d)", base.Base.StackLevel)
}

func verifyBoxedBase(c *checker, catalog *config.Catalog) {
	fmt.Println("=== 未拆箱底座 ===")
	s := newScene(catalog, "kitchen")

	counter := s.place("counter", 1, 1)
	c.expect(counter.Committed && counter.Reward == 0, "没有套件的柜台不发放奖励 (reward=%d)", counter.Reward)
	c.expect(!s.ps.IsUnboxed(counter.InstanceID), "柜台未拆箱")
	c.expect(s.room.CurrentRoomTag() == types.TagKitchen, "房间类别锁定为 kitchen")

	kettle := s.place("kettle", 2, 1)
	c.expect(kettle.Reason == types.RejectIncompatibleBase, "不能放在未拆箱的柜台上 (reason=%s)", kettle.Reason)

	kit := s.kit("counter_kit", 1, 1)
	c.expect(kit.Committed && len(kit.Gating) == 1, "插入套件后柜台拆箱")
	c.expect(kit.Reward == 80+25, "拆箱时发放首次放置 + 类别奖励 (reward=%d)", kit.Reward)

	kettle = s.place("kettle", 2, 1)
	c.expect(kettle.Committed && kettle.Mode == types.ModeTopper, "水壶叠放到柜台上 (mode=%s)", kettle.Mode)
	c.expect(kettle.ComboSprite, "柜台显示组合外观")
	c.expect(s.state.GetCoins() == 105+kettle.Reward, "金币与奖励一致 (coins=%d)", s.state.GetCoins())
}

func verifyCombo(c *checker, catalog *config.Catalog) {
	fmt.Println("=== 组合 ===")
	s := newScene(catalog, "bedroom")

	s.kit("bed_kit", 0, 0)
	bed := s.place("bed_frame", 0, 0)
	c.expect(bed.Committed && bed.Reward == 160, "床架拆箱放置 (reward=%d)", bed.Reward)

	duvet := s.place("duvet", 0, 0)
	combo := 0
	for _, ev := range duvet.Events {
		if ev.Kind == types.RewardCombo {
			combo += ev.Amount
		}
	}
	c.expect(duvet.Mode == types.ModeTopper && combo == 30, "羽绒被覆盖两个组合格子 (combo=%d)", combo)
	c.expect(duvet.ComboSprite, "床架显示组合外观")

	removed := s.ps.TryRemove(types.Cell{X: 0, Y: 0})
	c.expect(removed.OK() && removed.Role == types.RoleTopper, "先移除叠放物")
	again := s.ps.TryPlace(s.room, systems.PlaceRequest{Instance: removed.Removed, Anchor: types.Cell{X: 0, Y: 0}})
	c.expect(again.Committed && again.Reward == 0, "放回原位不再发放奖励 (reward=%d)", again.Reward)
}

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	catalog, err := config.LoadCatalog(*catalogFlag)
	if err != nil {
		fmt.Printf("❌ 目录加载失败: %v\n", err)
		os.Exit(1)
	}

	c := &checker{}
	verifyStack(c, catalog)
	verifyBoxedBase(c, catalog)
	verifyCombo(c, catalog)

	if c.failed > 0 {
		fmt.Printf("\n❌ %d 项检查失败\n", c.failed)
		os.Exit(1)
	}
	fmt.Println("\n✅ 全部场景通过")
}
