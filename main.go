package main

import (
	"flag"
	"log"

	"github.com/decker502/roseday/pkg/app"
	"github.com/decker502/roseday/pkg/config"
	"github.com/decker502/roseday/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag    = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	configFlag     = flag.String("config", "", "Card config YAML (default: embedded data/card.yaml)")
	watchFlag      = flag.Bool("watch", false, "Reload the -config file when it changes")
	fullscreenFlag = flag.Bool("fullscreen", false, "Start in fullscreen mode (F11 toggles)")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		Watch:      *watchFlag,
		Fullscreen: *fullscreenFlag,
	})
	if err != nil {
		log.Fatalf("贺卡初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(gameApp)
	gameApp.Close()
	if err != nil {
		log.Fatal(err)
	}
}
