package main

import (
	"flag"
	"log"

	"github.com/decker502/roomdecor/pkg/app"
	"github.com/decker502/roomdecor/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose = flag.Bool("verbose", false, "显示详细日志")
	roomID  = flag.String("room", "", "要编辑的房间 ID（默认上次编辑的房间）")
)

func main() {
	flag.Parse()

	// 初始化嵌入数据（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	editorApp, err := app.NewApp(app.Config{
		Verbose: *verbose,
		RoomID:  *roomID,
	})
	if err != nil {
		log.Fatalf("编辑器初始化失败: %v", err)
	}
	defer editorApp.Shutdown()

	ebiten.SetWindowSize(app.WindowWidth, app.WindowHeight)
	ebiten.SetWindowTitle("Room Decor Editor")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(editorApp); err != nil {
		log.Fatal(err)
	}
}
