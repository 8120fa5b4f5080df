package app

import (
	"fmt"
	"log"

	"github.com/decker502/roomdecor/pkg/components"
	"github.com/decker502/roomdecor/pkg/config"
	"github.com/decker502/roomdecor/pkg/ecs"
	"github.com/decker502/roomdecor/pkg/game"
	"github.com/decker502/roomdecor/pkg/systems"
	"github.com/decker502/roomdecor/pkg/types"
	"github.com/quasilyte/gdata/v2"
)

// PopupLifetime 奖励弹窗出现后的显示时长（秒）
const PopupLifetime = 2.0

// Popup 待显示或正在显示的奖励弹窗
type Popup struct {
	Event systems.RewardEvent
	Age   float64 // 自提交起经过的时间（秒）
}

// Visible 弹窗当前是否应该显示
func (p Popup) Visible() bool {
	return p.Age >= p.Event.DelaySeconds && p.Age < p.Event.DelaySeconds+PopupLifetime
}

// Editor 房间编辑器
//
// 职责：
//   - 管理当前房间、放置引擎和玩家状态
//   - 把编辑操作（选择、旋转、放置、拿起、保存、读取）转换为放置引擎调用
//   - 按奖励事件的延迟调度弹窗
//
// 不依赖 ebiten 输入，输入映射在 input.go 中
type Editor struct {
	catalog   *config.Catalog
	engineCfg *config.EngineConfig

	settings   *game.SettingsManager
	saves      *game.SaveManager
	serializer *game.LayoutSerializer

	roomID    string
	room      *game.Room
	state     *game.GameState
	placement *systems.PlacementSystem

	palette  []*config.CatalogDefinition
	selected int
	rotation int

	// held 被拿起、等待重新放置的实例（保留其一次性标记）
	held *components.InstanceComponent

	popups []Popup
	status string
}

// NewEditor 创建编辑器
//
// 参数：
//   - catalog: 物品目录
//   - engineCfg: 引擎配置（房间网格尺寸与弹窗延迟）
//   - roomID: 要编辑的房间
//   - storage: gdata 存储，可为 nil（存档只保存在内存中）
//   - settings: 编辑器设置，为 nil 时按 storage 创建
//
// 返回：
//   - error: 存档管理器初始化失败时返回错误
func NewEditor(catalog *config.Catalog, engineCfg *config.EngineConfig, roomID string, storage *gdata.Manager, settings *game.SettingsManager) (*Editor, error) {
	if engineCfg == nil {
		engineCfg = config.DefaultEngineConfig()
	}
	if settings == nil {
		settings = game.NewSettingsManager(storage)
	}
	saves, err := game.NewSaveManager(storage)
	if err != nil {
		return nil, fmt.Errorf("存档管理器初始化失败: %w", err)
	}

	e := &Editor{
		catalog:    catalog,
		engineCfg:  engineCfg,
		settings:   settings,
		saves:      saves,
		serializer: game.NewLayoutSerializer(catalog),
		roomID:     roomID,
		state:      game.NewGameState(storage),
		palette:    catalog.List(),
	}
	e.room, e.placement = e.newRoom()
	settings.SetLastRoom(roomID)

	if saves.HasLayout(roomID) {
		if err := e.Load(); err != nil {
			log.Printf("[Editor] Warning: saved layout for %s ignored: %v", roomID, err)
		}
	}
	return e, nil
}

// newRoom 创建空房间及其放置引擎
// 演示房间带一根柱子（右下角）和一段内墙，用于展示碰撞与挂墙规则
func (e *Editor) newRoom() (*game.Room, *systems.PlacementSystem) {
	cols, rows := e.engineCfg.Columns, e.engineCfg.Rows
	room := game.NewRoom(e.roomID, cols, rows)
	room.AddPillar(types.Cell{X: cols - 1, Y: rows - 1})
	for y := 1; y < rows-1 && y <= 2; y++ {
		room.AddWall(types.Cell{X: cols/2 - 1, Y: y}, types.DirectionRight)
	}

	ps := systems.NewPlacementSystem(ecs.NewEntityManager(), room, room, e.state, e.engineCfg)
	return room, ps
}

// Room 当前房间
func (e *Editor) Room() *game.Room { return e.room }

// Placement 当前放置引擎
func (e *Editor) Placement() *systems.PlacementSystem { return e.placement }

// State 玩家状态
func (e *Editor) State() *game.GameState { return e.state }

// Settings 编辑器设置
func (e *Editor) Settings() *game.SettingsManager { return e.settings }

// Palette 可选物品（目录顺序）
func (e *Editor) Palette() []*config.CatalogDefinition { return e.palette }

// Selected 当前选中的物品定义
func (e *Editor) Selected() *config.CatalogDefinition {
	if len(e.palette) == 0 {
		return nil
	}
	return e.palette[e.selected]
}

// SelectedIndex 当前选中的序号
func (e *Editor) SelectedIndex() int { return e.selected }

// Held 被拿起的实例
func (e *Editor) Held() *components.InstanceComponent { return e.held }

// Rotation 当前旋转步数
func (e *Editor) Rotation() int { return e.rotation }

// Status 最近一次操作的提示
func (e *Editor) Status() string { return e.status }

// Popups 当前应显示的奖励弹窗
func (e *Editor) Popups() []Popup {
	visible := make([]Popup, 0, len(e.popups))
	for _, p := range e.popups {
		if p.Visible() {
			visible = append(visible, p)
		}
	}
	return visible
}

// Select 选择目录中的第 index 个物品
// 手上拿着的实例会被收起（丢弃）
func (e *Editor) Select(index int) bool {
	if index < 0 || index >= len(e.palette) {
		return false
	}
	e.dropHeld()
	e.selected = index
	e.status = fmt.Sprintf("Selected %s", e.palette[index].Name)
	return true
}

// SelectNext 选择下一个物品（循环）
func (e *Editor) SelectNext() {
	if len(e.palette) == 0 {
		return
	}
	e.Select((e.selected + 1) % len(e.palette))
}

// Rotate 顺时针旋转一步
func (e *Editor) Rotate() int {
	e.rotation = types.NormalizeRotation(e.rotation + 1)
	e.status = fmt.Sprintf("Facing %s", types.DirectionForRotation(e.rotation))
	return e.rotation
}

func (e *Editor) dropHeld() {
	if e.held != nil {
		log.Printf("[Editor] Put away %s (%s)", e.held.Definition.ID, e.held.InstanceID)
		e.held = nil
	}
}

// PlaceAt 在格子上放置：优先放回拿着的实例，否则放置选中的物品（套件走套件层）
//
// 返回：
//   - bool: 是否提交成功
func (e *Editor) PlaceAt(cell types.Cell) bool {
	if e.held == nil {
		if def := e.Selected(); def != nil && def.IsKit() {
			return e.insertKit(def, cell)
		}
	}

	req := systems.PlaceRequest{Anchor: cell, RotationStep: e.rotation}
	if e.held != nil {
		req.Instance = e.held
	} else {
		req.Definition = e.Selected()
	}

	res := e.placement.TryPlace(e.room, req)
	if !res.Committed {
		e.status = fmt.Sprintf("Cannot place here: %s", res.Reason)
		return false
	}

	e.held = nil
	e.enqueue(res.Events)
	e.status = fmt.Sprintf("Placed (%s) +%d", res.Mode, res.Reward)
	e.afterCommit()
	return true
}

func (e *Editor) insertKit(def *config.CatalogDefinition, cell types.Cell) bool {
	res := e.placement.InsertKit(e.room, def, cell)
	if !res.Committed {
		e.status = fmt.Sprintf("Cannot insert kit: %s", res.Reason)
		return false
	}
	e.enqueue(res.Events)
	e.status = fmt.Sprintf("Kit inserted, %d item(s) changed +%d", len(res.Gating), res.Reward)
	e.afterCommit()
	return true
}

// PickUpAt 拿起格子上最上层的物品，之后的 PlaceAt 会把它放回
//
// 返回：
//   - bool: 是否拿起了物品
func (e *Editor) PickUpAt(cell types.Cell) bool {
	res := e.placement.TryRemove(cell)
	if !res.OK() {
		e.status = "Nothing to pick up"
		return false
	}
	e.dropHeld()
	e.held = res.Removed
	e.status = fmt.Sprintf("Picked up %s", res.Removed.Definition.Name)
	e.afterCommit()
	return true
}

// RemoveKitAt 移除格子上的套件
func (e *Editor) RemoveKitAt(cell types.Cell) bool {
	res := e.placement.RemoveKit(cell)
	if !res.OK() {
		e.status = "No kit here"
		return false
	}
	e.status = fmt.Sprintf("Removed %s, %d item(s) boxed", res.Removed.Definition.Name, len(res.Gating))
	e.afterCommit()
	return true
}

func (e *Editor) enqueue(events []systems.RewardEvent) {
	for _, ev := range events {
		e.popups = append(e.popups, Popup{Event: ev})
	}
}

func (e *Editor) afterCommit() {
	if !e.settings.GetSettings().AutoSave {
		return
	}
	if err := e.Save(); err != nil {
		log.Printf("[Editor] Warning: auto save failed: %v", err)
	}
}

// Tick 推进弹窗计时，移除已过期的弹窗
func (e *Editor) Tick(deltaTime float64) {
	kept := e.popups[:0]
	for _, p := range e.popups {
		p.Age += deltaTime
		if p.Age < p.Event.DelaySeconds+PopupLifetime {
			kept = append(kept, p)
		}
	}
	e.popups = kept
}

// Save 保存当前房间布局
func (e *Editor) Save() error {
	data := e.serializer.Collect(e.placement, e.room)
	if err := e.saves.SaveLayout(data); err != nil {
		e.status = "Save failed"
		return err
	}
	e.status = fmt.Sprintf("Saved %d item(s)", data.InstanceCount())
	return nil
}

// Load 读取当前房间的存档，替换当前布局
// 读取失败时保留原布局
func (e *Editor) Load() error {
	data, err := e.saves.LoadLayout(e.roomID)
	if err != nil {
		e.status = "Load failed"
		return err
	}

	room, ps := e.newRoom()
	if err := e.serializer.Restore(ps, room, data); err != nil {
		e.status = "Load failed"
		return fmt.Errorf("failed to restore room %s: %w", e.roomID, err)
	}

	e.room, e.placement = room, ps
	e.held = nil
	e.popups = nil
	e.status = fmt.Sprintf("Loaded %d item(s)", data.InstanceCount())
	return nil
}

// Close 保存设置；开启自动保存时同时保存布局
func (e *Editor) Close() error {
	if e.settings.GetSettings().AutoSave {
		if err := e.Save(); err != nil {
			return err
		}
	}
	return e.settings.Save()
}
