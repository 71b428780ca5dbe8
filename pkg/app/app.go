// Package app 提供星空应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：打开设置存储、加载调优配置、
// 创建星空实例，并把 Ebitengine 的帧循环适配成星空调度器所需的
// 帧回调驱动。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/starfield/pkg/config"
	"github.com/decker502/starfield/pkg/game"
	"github.com/decker502/starfield/pkg/starfield"
)

// DefaultWindowWidth / DefaultWindowHeight 初始窗口逻辑尺寸
const (
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool

	// Static 强制静态模式（覆盖已保存的设置）
	Static bool

	// Theme 强制主题（"light"/"dark"），为空则使用已保存的设置
	Theme string

	// ConfigPath 调优配置文件路径，为空则尝试 data/starfield.yaml
	ConfigPath string
}

// framePump 把 Ebitengine 的 Update tick 适配成帧回调驱动
//
// 调度器通过 Request 排队下一帧回调，每个 tick 恰好触发一次，
// 因此任意时刻最多存在一条回调链。
type framePump struct {
	pending func()
}

// Request 排队下一帧的回调
func (p *framePump) Request(callback func()) {
	p.pending = callback
}

// Tick 触发当前排队的回调（如果有）
func (p *framePump) Tick() {
	if cb := p.pending; cb != nil {
		p.pending = nil
		cb()
	}
}

// App 星空应用，实现 ebiten.Game 接口
type App struct {
	verbose  bool
	settings *game.SettingsManager
	tuning   *config.StarfieldConfig

	pump   framePump
	field  *starfield.Starfield
	theme  starfield.Theme
	static bool

	width, height      int // 当前逻辑尺寸
	pendingW, pendingH int // Layout 报告的新尺寸，下个 Update 应用
	lastHidden         bool
}

// NewApp 创建并初始化星空应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 打开设置存储；失败降级为仅内存设置
	gdataManager, err := gdata.Open(gdata.Config{AppName: "starfield"})
	if err != nil {
		log.Printf("[App] Warning: settings storage unavailable: %v", err)
		gdataManager = nil
	}
	settings, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		log.Printf("[App] Warning: %v", err)
	}

	// 主题：命令行 > 已保存设置 > 默认暗色
	themeName := settings.GetSettings().Theme
	if cfg.Theme != "" {
		themeName = cfg.Theme
	}
	theme, err := starfield.ParseTheme(themeName)
	if err != nil {
		return nil, fmt.Errorf("应用主题解析失败: %w", err)
	}

	static := cfg.Static || settings.GetSettings().StaticMode

	// 调优配置：显式路径必须有效；默认路径缺失时回退内置默认值
	tuning, err := loadTuning(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("星空配置加载失败: %w", err)
	}

	a := &App{
		verbose:  cfg.Verbose,
		settings: settings,
		tuning:   tuning,
		theme:    theme,
		static:   static,
		width:    DefaultWindowWidth,
		height:   DefaultWindowHeight,
		pendingW: DefaultWindowWidth,
		pendingH: DefaultWindowHeight,
	}

	surface := ebiten.NewImage(DefaultWindowWidth, DefaultWindowHeight)
	field, err := starfield.Init(surface, starfield.Config{
		Static:       static,
		Theme:        theme,
		Tuning:       tuning,
		DeviceScale:  ebiten.Monitor().DeviceScaleFactor(),
		RequestFrame: a.pump.Request,
	})
	if err != nil {
		return nil, fmt.Errorf("星空初始化失败: %w", err)
	}
	a.field = field

	if field == nil {
		log.Printf("[App] static mode, animation disabled")
	}
	return a, nil
}

// loadTuning 解析调优配置
//
// 显式指定的路径加载失败是致命错误；默认路径缺失时静默使用内置默认值。
func loadTuning(path string) (*config.StarfieldConfig, error) {
	if path != "" {
		return config.LoadStarfieldConfig(path)
	}
	const defaultPath = "data/starfield.yaml"
	if _, err := os.Stat(defaultPath); err != nil {
		return config.DefaultStarfieldConfig(), nil
	}
	return config.LoadStarfieldConfig(defaultPath)
}

// Update 更新应用逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 先应用挂起的尺寸变化，保证重建发生在帧回调之间
	if a.pendingW != a.width || a.pendingH != a.height {
		a.width = a.pendingW
		a.height = a.pendingH
		if a.field != nil {
			a.field.Resize(float64(a.width), float64(a.height), ebiten.Monitor().DeviceScaleFactor())
		}
	}

	// 窗口可见性 → hidden 标志（页面可见性的桌面对应物）
	hidden := ebiten.IsWindowMinimized() || !ebiten.IsFocused()
	if hidden != a.lastHidden {
		a.lastHidden = hidden
		if a.field != nil {
			a.field.SetHidden(hidden)
		}
	}

	// T 切换主题
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		a.toggleTheme()
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	// Q / Escape 退出
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// 触发本 tick 排队的帧回调（更新→渲染在回调内完成）
	a.pump.Tick()
	return nil
}

// toggleTheme 切换主题并持久化偏好
func (a *App) toggleTheme() {
	if a.theme == starfield.ThemeDark {
		a.theme = starfield.ThemeLight
	} else {
		a.theme = starfield.ThemeDark
	}
	if a.field != nil {
		a.field.SetTheme(a.theme)
	}
	a.settings.SetTheme(a.theme.String())
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
	log.Printf("[App] theme switched to %s", a.theme)
}

// Draw 绘制应用画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor(a.theme))
	if a.field != nil {
		a.field.Draw(screen)
	}
}

// Layout 返回逻辑屏幕尺寸
//
// 窗口可调整大小，逻辑尺寸跟随外部尺寸；变化在下个 Update 应用。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.pendingW = outsideWidth
	a.pendingH = outsideHeight
	return outsideWidth, outsideHeight
}

// Shutdown 退出前保存设置并销毁星空实例
func (a *App) Shutdown() {
	if a.field != nil {
		a.field.Destroy()
	}
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings on exit: %v", err)
	}
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// backgroundColor 主题对应的背景色
func backgroundColor(t starfield.Theme) color.RGBA {
	if t == starfield.ThemeLight {
		return color.RGBA{R: 0xf8, G: 0xfa, B: 0xfc, A: 0xff}
	}
	return color.RGBA{R: 0x0b, G: 0x10, B: 0x21, A: 0xff}
}
