package app

import (
	"fmt"
	"image/color"

	"github.com/decker502/roomdecor/pkg/components"
	"github.com/decker502/roomdecor/pkg/types"
	"github.com/decker502/roomdecor/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 调色板
var (
	colorBackground = color.RGBA{236, 228, 214, 255}
	colorGridLine   = color.RGBA{200, 190, 175, 255}
	colorKit        = color.RGBA{170, 200, 230, 255}
	colorBase       = color.RGBA{190, 140, 90, 255}
	colorBoxed      = color.RGBA{150, 150, 150, 255}
	colorTopper     = color.RGBA{240, 200, 120, 200}
	colorCombo      = color.RGBA{250, 230, 60, 255}
	colorPillar     = color.RGBA{90, 80, 70, 255}
	colorWall       = color.RGBA{60, 50, 40, 255}
	colorHover      = color.RGBA{255, 255, 255, 90}
)

// 侧边栏位置
const (
	sidebarX = 590
	lineH    = 16
)

// drawEditor 绘制房间、侧边栏和奖励弹窗
func drawEditor(screen *ebiten.Image, e *Editor) {
	screen.Fill(colorBackground)
	room := e.Room()
	ps := e.Placement()
	grid := ps.Grid()

	// 套件层
	for _, id := range grid.KitEntities() {
		if kit := ps.InstanceOf(id); kit != nil {
			fillCells(screen, kit.Cells, colorKit, 6)
		}
	}

	// 家具层
	for _, record := range grid.Records() {
		base := ps.InstanceOf(record.Base)
		if base == nil {
			continue
		}
		fill := colorBase
		if !base.IsUnboxed {
			fill = colorBoxed
		}
		fillCells(screen, record.Cells, fill, 10)
		labelAt(screen, record.Anchor, base.Definition.Name, 0)

		if topper := ps.InstanceOf(record.Topper); topper != nil {
			fillCells(screen, topper.Cells, colorTopper, 20)
			labelAt(screen, topper.Anchor, topper.Definition.Name, 1)
		}
		if record.ComboSprite {
			x, y := utils.GridToScreenCoords(record.Anchor)
			vector.DrawFilledCircle(screen, float32(x+utils.CellWidth-10), float32(y+10), 5, colorCombo, true)
		}
		if n := len(record.Stack); n > 0 {
			labelAt(screen, record.Anchor, fmt.Sprintf("stack %d/%d", n, base.Definition.MaxStackLevel), 2)
		}
	}

	for _, p := range room.Pillars() {
		fillCells(screen, []types.Cell{p}, colorPillar, 0)
	}
	drawWalls(screen, e)

	if e.Settings().GetSettings().ShowGrid {
		drawGridLines(screen, room.Columns, room.Rows)
	}
	if x, y, ok := hoveredCell(e); ok {
		drawPreview(screen, e, types.Cell{X: x, Y: y})
	}

	drawSidebar(screen, e)
	if e.Settings().GetSettings().ShowEvents {
		drawPopups(screen, e)
	}
}

// fillCells 填充格子，inset 为内缩像素
func fillCells(screen *ebiten.Image, cells []types.Cell, clr color.Color, inset float64) {
	for _, c := range cells {
		x, y := utils.GridToScreenCoords(c)
		vector.DrawFilledRect(screen,
			float32(x+inset/2), float32(y+inset/2),
			float32(utils.CellWidth-inset), float32(utils.CellHeight-inset),
			clr, false)
	}
}

func labelAt(screen *ebiten.Image, cell types.Cell, text string, line int) {
	x, y := utils.GridToScreenCoords(cell)
	ebitenutil.DebugPrintAt(screen, text, int(x)+4, int(y)+4+line*lineH)
}

func drawGridLines(screen *ebiten.Image, columns, rows int) {
	for x := 0; x <= columns; x++ {
		px := float32(utils.GridStartX + float64(x)*utils.CellWidth)
		vector.StrokeLine(screen, px, float32(utils.GridStartY), px,
			float32(utils.GridStartY+float64(rows)*utils.CellHeight), 1, colorGridLine, false)
	}
	for y := 0; y <= rows; y++ {
		py := float32(utils.GridStartY + float64(y)*utils.CellHeight)
		vector.StrokeLine(screen, float32(utils.GridStartX), py,
			float32(utils.GridStartX+float64(columns)*utils.CellWidth), py, 1, colorGridLine, false)
	}
}

// drawWalls 绘制外围墙和内墙
func drawWalls(screen *ebiten.Image, e *Editor) {
	room := e.Room()
	for y := 0; y < room.Rows; y++ {
		for x := 0; x < room.Columns; x++ {
			c := types.Cell{X: x, Y: y}
			px, py := utils.GridToScreenCoords(c)
			x0, y0 := float32(px), float32(py)
			x1, y1 := float32(px+utils.CellWidth), float32(py+utils.CellHeight)
			if room.HasWall(c, types.DirectionUp) && y == 0 {
				vector.StrokeLine(screen, x0, y0, x1, y0, 4, colorWall, false)
			}
			if room.HasWall(c, types.DirectionLeft) && x == 0 {
				vector.StrokeLine(screen, x0, y0, x0, y1, 4, colorWall, false)
			}
			if room.HasWall(c, types.DirectionRight) {
				vector.StrokeLine(screen, x1, y0, x1, y1, 4, colorWall, false)
			}
			if room.HasWall(c, types.DirectionDown) {
				vector.StrokeLine(screen, x0, y1, x1, y1, 4, colorWall, false)
			}
		}
	}
}

// drawPreview 在指针所在格子绘制选中物品的占地预览
func drawPreview(screen *ebiten.Image, e *Editor, anchor types.Cell) {
	var footprint types.Size
	if held := e.Held(); held != nil {
		footprint = utils.RotateFootprint(held.Definition.Size, e.Rotation())
	} else if def := e.Selected(); def != nil {
		footprint = utils.RotateFootprint(def.Size, e.Rotation())
	} else {
		return
	}
	fillCells(screen, utils.CellsFor(anchor, footprint), colorHover, 0)
}

func drawSidebar(screen *ebiten.Image, e *Editor) {
	room := e.Room()
	state := e.State()
	lines := []string{
		fmt.Sprintf("Room: %s (%s)", room.ID, room.CurrentRoomTag()),
		fmt.Sprintf("Coins: %d  Score: %d", state.GetCoins(), state.Score),
		fmt.Sprintf("Facing: %s", types.DirectionForRotation(e.Rotation())),
		"",
	}
	if held := e.Held(); held != nil {
		lines = append(lines, "Holding: "+describe(held), "")
	}
	for i, def := range e.Palette() {
		marker := "  "
		if i == e.SelectedIndex() && e.Held() == nil {
			marker = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", marker, def.Size, def.Name))
	}
	lines = append(lines, "", e.Status())

	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, sidebarX, 20+i*lineH)
	}
	ebitenutil.DebugPrintAt(screen, controlsHint(), 10, WindowHeight-20)
}

// controlsHint 底部的操作提示，触摸设备使用手势说明
func controlsHint() string {
	if utils.IsTouchPlatform() {
		return "Tap place  Two-finger tap pick up  Tab select  R rotate"
	}
	return "Tab/1-9 select  R rotate  LMB place  RMB pick up  Shift+RMB remove kit  S/L save/load  G/E/A toggles"
}

func describe(inst *components.InstanceComponent) string {
	state := "boxed"
	if inst.IsUnboxed {
		state = "unboxed"
	}
	return fmt.Sprintf("%s [%s]", inst.Definition.Name, state)
}

// drawPopups 绘制到期的奖励弹窗
func drawPopups(screen *ebiten.Image, e *Editor) {
	for i, p := range e.Popups() {
		x, y := utils.GridToScreenCoords(p.Event.Cell)
		rise := int((p.Age - p.Event.DelaySeconds) * 10)
		text := fmt.Sprintf("+%d %s", p.Event.Amount, p.Event.Kind)
		ebitenutil.DebugPrintAt(screen, text, int(x)+4, int(y)-lineH*(i%3)-rise)
	}
}
