package app

import (
	"log"

	"github.com/decker502/roomdecor/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 数字键 1-9 对应目录中的前 9 个物品
var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// handleInput 把键盘和指针输入映射为编辑操作
//
// 操作：
//   - Tab / 1-9: 选择物品
//   - R: 旋转
//   - 左键: 放置（拿着物品时放回）
//   - 右键: 拿起最上层物品；Shift+右键: 移除套件
//   - S / L: 保存 / 读取布局
//   - G / E / A: 切换网格线 / 奖励列表 / 自动保存
func handleInput(e *Editor) {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		e.SelectNext()
	}
	for i, key := range digitKeys {
		if inpututil.IsKeyJustPressed(key) {
			e.Select(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		e.Rotate()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := e.Save(); err != nil {
			log.Printf("[Editor] Save failed: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		if err := e.Load(); err != nil {
			log.Printf("[Editor] Load failed: %v", err)
		}
	}

	settings := e.Settings()
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		settings.ToggleGrid()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		settings.ToggleEvents()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		settings.ToggleAutoSave()
	}

	pointer := ReadPointer()
	if pointer.Action == PointerNone {
		return
	}
	room := e.Room()
	cell, ok := utils.MouseToGridCoords(pointer.X, pointer.Y, room.Columns, room.Rows)
	if !ok {
		return
	}

	switch pointer.Action {
	case PointerPrimary:
		e.PlaceAt(cell)
	case PointerSecondary:
		if IsShiftPressed() {
			e.RemoveKitAt(cell)
		} else {
			e.PickUpAt(cell)
		}
	}
}

// hoveredCell 当前指针所在的格子
func hoveredCell(e *Editor) (x, y int, ok bool) {
	px, py := ebiten.CursorPosition()
	room := e.Room()
	cell, ok := utils.MouseToGridCoords(px, py, room.Columns, room.Rows)
	return cell.X, cell.Y, ok
}
