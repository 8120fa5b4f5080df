package main

import (
	"fmt"
	"os"

	"github.com/decker502/roomdecor/pkg/config"
	"github.com/decker502/roomdecor/pkg/types"
)

func main() {
	catalogPath := "data/catalog.yaml"
	enginePath := "data/engine.yaml"
	if len(os.Args) > 1 {
		catalogPath = os.Args[1]
	}
	if len(os.Args) > 2 {
		enginePath = os.Args[2]
	}

	catalog, err := config.LoadCatalog(catalogPath)
	if err != nil {
		fmt.Printf("❌ 目录校验失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ 目录格式正确: %s\n", catalogPath)

	kits := catalog.ByLayer(types.LayerKit)
	furniture := catalog.ByLayer(types.LayerFurniture)
	fmt.Printf("✅ 家具 %d 个，套件 %d 个\n", len(furniture), len(kits))

	cfg, err := config.LoadEngineConfig(enginePath)
	if err != nil {
		fmt.Printf("❌ 引擎配置校验失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ 引擎配置: 网格 %dx%d，弹窗间隔 %.2fs\n", cfg.Columns, cfg.Rows, cfg.BonusPopupDelay)

	// 放不进房间的物品
	problems := 0
	for _, def := range catalog.List() {
		w, h := def.Size.Width, def.Size.Height
		if !(w <= cfg.Columns && h <= cfg.Rows) && !(h <= cfg.Columns && w <= cfg.Rows) {
			fmt.Printf("❌ %s 的尺寸 %s 超出网格 %dx%d\n", def.ID, def.Size, cfg.Columns, cfg.Rows)
			problems++
		}
		if def.IsStackable && def.IsStackReceiver {
			fmt.Printf("⚠️  %s 同时是可堆叠物品和堆叠接收器\n", def.ID)
		}
		if def.HasComboSprite && def.ComboTrigger == nil {
			fmt.Printf("⚠️  %s 有组合外观但没有触发物品\n", def.ID)
		}
	}

	// 没有任何物品可以放上去的接收器
	for _, def := range furniture {
		if !def.IsStackReceiver {
			continue
		}
		hasItem := false
		for _, item := range furniture {
			if item.IsStackable {
				hasItem = true
				break
			}
		}
		if !hasItem {
			fmt.Printf("⚠️  %s 是堆叠接收器，但目录中没有可堆叠物品\n", def.ID)
		}
	}

	if problems > 0 {
		fmt.Printf("❌ 有 %d 个问题\n", problems)
		os.Exit(1)
	}
	fmt.Printf("✅ 所有定义均可放入房间\n")
}
