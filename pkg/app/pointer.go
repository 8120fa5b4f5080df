package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerAction 本帧发生的指针操作
type PointerAction int

const (
	// PointerNone 没有新的按下
	PointerNone PointerAction = iota
	// PointerPrimary 鼠标左键或单指触摸
	PointerPrimary
	// PointerSecondary 鼠标右键或双指触摸
	PointerSecondary
)

// PointerState 当前帧的指针状态
// 同时支持鼠标和触摸输入，优先检测触摸
type PointerState struct {
	Action PointerAction
	X, Y   int
	Touch  bool
}

// ReadPointer 读取当前帧的指针状态
func ReadPointer() PointerState {
	justPressed := inpututil.AppendJustPressedTouchIDs(nil)
	active := ebiten.AppendTouchIDs(nil)
	if len(active) > 0 {
		state := PointerState{Touch: true}
		state.X, state.Y = ebiten.TouchPosition(active[0])
		if len(justPressed) > 0 {
			state.Action = PointerPrimary
			if len(active) >= 2 {
				state.Action = PointerSecondary
			}
		}
		return state
	}

	state := PointerState{}
	state.X, state.Y = ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		state.Action = PointerPrimary
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		state.Action = PointerSecondary
	}
	return state
}

// IsShiftPressed 是否按住任意 Shift 键
func IsShiftPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
}
