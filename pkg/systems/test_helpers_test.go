package systems

import (
	"testing"

	"github.com/decker502/roomdecor/pkg/config"
	"github.com/decker502/roomdecor/pkg/ecs"
	"github.com/decker502/roomdecor/pkg/types"
	"github.com/stretchr/testify/require"
)

// fakeRoom 记录房间类别
type fakeRoom struct {
	tag types.FurnitureTag
}

func (r *fakeRoom) CurrentRoomTag() types.FurnitureTag { return r.tag }

func (r *fakeRoom) SetRoomTagIfUnset(tag types.FurnitureTag) {
	if r.tag == types.TagNone {
		r.tag = tag
	}
}

// fakeSink 记录每一次奖励调用
type fakeSink struct {
	awards []int
}

func (s *fakeSink) AwardReward(amount int) { s.awards = append(s.awards, amount) }

func (s *fakeSink) total() int {
	sum := 0
	for _, a := range s.awards {
		sum += a
	}
	return sum
}

// fakeCollider 按层记录被阻挡的格子
type fakeCollider struct {
	blocked map[types.Layer]map[types.Cell]bool
}

func newFakeCollider() *fakeCollider {
	return &fakeCollider{blocked: map[types.Layer]map[types.Cell]bool{
		types.LayerFurniture: {},
		types.LayerKit:       {},
	}}
}

func (c *fakeCollider) block(layer types.Layer, cell types.Cell) { c.blocked[layer][cell] = true }

func (c *fakeCollider) IsBlocked(cell types.Cell, layer types.Layer) bool {
	return c.blocked[layer][cell]
}

// fakeWalls 记录每个格子四周的墙
type fakeWalls struct {
	walls map[types.Cell]map[types.Direction]bool
}

func (w *fakeWalls) add(cell types.Cell, dirs ...types.Direction) {
	if w.walls == nil {
		w.walls = make(map[types.Cell]map[types.Direction]bool)
	}
	if w.walls[cell] == nil {
		w.walls[cell] = make(map[types.Direction]bool)
	}
	for _, d := range dirs {
		w.walls[cell][d] = true
	}
}

func (w *fakeWalls) HasWall(cell types.Cell, dir types.Direction) bool {
	return w.walls[cell][dir]
}

// testCatalog 测试用目录
//
//	shelf   2x2 堆叠接收器（上限2，无组合值）     book  1x1 可堆叠
//	cabinet 2x1 需要 bed_kit 的堆叠接收器（上限3，组合值4）
//	bed     2x2 卧室，需要 bed_kit              table 2x2 组合值5
//	cloth   2x1 叠放到 table，组合外观          vase  1x1 叠放到 table/bed
//	lamp    1x1 叠放到 table，需要 small_kit     chair/desk 办公室
//	clock/painting 挂墙
func testCatalog(t *testing.T) *config.Catalog {
	t.Helper()
	catalog, err := config.NewCatalog(
		&config.CatalogDefinition{ID: "bed_kit", Size: types.Size{Width: 2, Height: 2}, LayerName: "kit"},
		&config.CatalogDefinition{ID: "small_kit", Size: types.Size{Width: 1, Height: 1}, LayerName: "kit"},
		&config.CatalogDefinition{ID: "shelf", Size: types.Size{Width: 2, Height: 2}, Price: 50, IsStackReceiver: true, MaxStackLevel: 2},
		&config.CatalogDefinition{ID: "book", Size: types.Size{Width: 1, Height: 1}, Price: 10, IsStackable: true},
		&config.CatalogDefinition{ID: "cabinet", Size: types.Size{Width: 2, Height: 1}, Price: 60, IsStackReceiver: true, MaxStackLevel: 3, ComboValue: 4, RequiredBaseID: "bed_kit"},
		&config.CatalogDefinition{ID: "bed", Size: types.Size{Width: 2, Height: 2}, Price: 100, FurnitureTagName: "bedroom", TagMatchBonusPoints: 30, RequiredBaseID: "bed_kit"},
		&config.CatalogDefinition{ID: "table", Size: types.Size{Width: 2, Height: 2}, Price: 40, ComboValue: 5},
		&config.CatalogDefinition{ID: "cloth", Size: types.Size{Width: 2, Height: 1}, Price: 20, CompatibleWithIDs: []string{"table"}, HasComboSprite: true, ComboTriggerID: "table"},
		&config.CatalogDefinition{ID: "vase", Size: types.Size{Width: 1, Height: 1}, Price: 15, CompatibleWithIDs: []string{"table", "bed"}},
		&config.CatalogDefinition{ID: "lamp", Size: types.Size{Width: 1, Height: 1}, Price: 5, CompatibleWithIDs: []string{"table"}, RequiredBaseID: "small_kit"},
		&config.CatalogDefinition{ID: "chair", Size: types.Size{Width: 1, Height: 1}, Price: 10, FurnitureTagName: "office", TagMatchBonusPoints: 7},
		&config.CatalogDefinition{ID: "desk", Size: types.Size{Width: 2, Height: 1}, Price: 30, FurnitureTagName: "office", TagMatchBonusPoints: 12},
		&config.CatalogDefinition{ID: "clock", Size: types.Size{Width: 1, Height: 1}, Price: 25, IsWallMounted: true},
		&config.CatalogDefinition{ID: "painting", Size: types.Size{Width: 2, Height: 1}, Price: 25, IsWallMounted: true},
	)
	require.NoError(t, err)
	return catalog
}

// testRig 放置引擎 + 假协作者
type testRig struct {
	t        *testing.T
	em       *ecs.EntityManager
	ps       *PlacementSystem
	room     *fakeRoom
	sink     *fakeSink
	collider *fakeCollider
	walls    *fakeWalls
	catalog  *config.Catalog
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()
	r := &testRig{
		t:        t,
		em:       ecs.NewEntityManager(),
		room:     &fakeRoom{},
		sink:     &fakeSink{},
		collider: newFakeCollider(),
		walls:    &fakeWalls{},
		catalog:  testCatalog(t),
	}
	r.ps = NewPlacementSystem(r.em, r.collider, r.walls, r.sink, config.DefaultEngineConfig())
	return r
}

func (r *testRig) def(id string) *config.CatalogDefinition {
	r.t.Helper()
	def, ok := r.catalog.Get(id)
	require.True(r.t, ok, "unknown definition %s", id)
	return def
}

func (r *testRig) place(id string, x, y, rotation int) PlaceResult {
	r.t.Helper()
	return r.ps.TryPlace(r.room, PlaceRequest{
		Definition:   r.def(id),
		Anchor:       types.Cell{X: x, Y: y},
		RotationStep: rotation,
	})
}

func (r *testRig) mustPlace(id string, x, y, rotation int) PlaceResult {
	r.t.Helper()
	res := r.place(id, x, y, rotation)
	require.True(r.t, res.Committed, "place %s at (%d,%d): %v", id, x, y, res.Err())
	return res
}

func (r *testRig) kit(id string, x, y int) KitResult {
	r.t.Helper()
	return r.ps.InsertKit(r.room, r.def(id), types.Cell{X: x, Y: y})
}

func amountOf(events []RewardEvent, kind types.RewardKind) int {
	sum := 0
	for _, e := range events {
		if e.Kind == kind {
			sum += e.Amount
		}
	}
	return sum
}

func cell(x, y int) types.Cell {
	return types.Cell{X: x, Y: y}
}
