package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/starfield/pkg/app"
)

var (
	verbose    = flag.Bool("verbose", false, "启用详细日志输出")
	static     = flag.Bool("static", false, "静态模式：禁用动画，只显示空背景")
	theme      = flag.String("theme", "", "配色主题 (light/dark)，为空时使用已保存的设置")
	configPath = flag.String("config", "", "调优配置文件路径 (默认 data/starfield.yaml)")
)

func main() {
	flag.Parse()

	starfieldApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Static:     *static,
		Theme:      *theme,
		ConfigPath: *configPath,
	})
	if err != nil {
		log.Fatal(err)
	}

	// 设置窗口属性
	ebiten.SetWindowSize(app.DefaultWindowWidth, app.DefaultWindowHeight)
	ebiten.SetWindowTitle("Starfield - 环境星空")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// 启动帧循环，窗口关闭后拆除实例并保存设置
	err = ebiten.RunGame(starfieldApp)
	starfieldApp.Shutdown()
	if err != nil {
		log.Fatal(err)
	}
}
