// Package app 提供房间编辑器应用的核心包装器
//
// 该包将编辑器初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/roomdecor/pkg/embedded"
	"github.com/decker502/roomdecor/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 窗口尺寸
const (
	WindowWidth  = 800
	WindowHeight = 600
)

// StorageAppName gdata 存储使用的应用名
const StorageAppName = "roomdecor"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// RoomID 指定要编辑的房间，为空则使用上次编辑的房间
	RoomID string
}

// App 是编辑器应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	editor                   *Editor
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化编辑器应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入数据。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	catalog, err := embedded.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("目录加载失败: %w", err)
	}
	engineCfg, err := embedded.LoadEngineConfig()
	if err != nil {
		return nil, fmt.Errorf("引擎配置加载失败: %w", err)
	}
	log.Printf("[App] Loaded %d catalog definitions, grid %dx%d",
		len(catalog.List()), engineCfg.Columns, engineCfg.Rows)

	// 存储不可用时降级为内存模式
	storage := game.OpenStorage(StorageAppName)
	settings := game.NewSettingsManager(storage)

	roomID := cfg.RoomID
	if roomID == "" {
		roomID = settings.GetSettings().LastRoomID
	}

	editor, err := NewEditor(catalog, engineCfg, roomID, storage, settings)
	if err != nil {
		return nil, err
	}

	log.Printf("[App] Editing room: %s", roomID)
	return &App{
		editor:  editor,
		verbose: cfg.Verbose,
	}, nil
}

// Update 更新编辑器逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(WindowWidth, WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	handleInput(a.editor)
	a.editor.Tick(1.0 / 60.0)
	return nil
}

// Draw 绘制编辑器画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	drawEditor(screen, a.editor)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}

// Shutdown 关闭前保存设置（以及开启自动保存时的布局）
func (a *App) Shutdown() {
	if err := a.editor.Close(); err != nil {
		log.Printf("[App] Warning: shutdown save failed: %v", err)
	}
}

// Editor 返回编辑器
func (a *App) Editor() *Editor {
	return a.editor
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
