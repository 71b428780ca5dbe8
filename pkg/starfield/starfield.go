package starfield

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/starfield/pkg/config"
)

// IntersectionObserver 可选的滚动可见性观察者
//
// 宿主若具备相交观察能力（例如星空只占页面的一部分），通过它
// 把相交比例推送给实例；不具备时传 nil，实例退化为"始终可见"。
type IntersectionObserver interface {
	// Observe 注册相交比例回调，比例取值 [0, 1]
	Observe(fn func(ratio float64))

	// Disconnect 注销回调，之后不再推送
	Disconnect()
}

// Config 星空实例的构造配置
type Config struct {
	// Static 静态模式：不创建实例，只把目标表面清空一次
	Static bool

	// Theme 初始主题
	Theme Theme

	// Observer 可选的滚动可见性观察者，nil 表示始终可见
	Observer IntersectionObserver

	// Tuning 调优配置，nil 使用内置默认值
	Tuning *config.StarfieldConfig

	// DeviceScale 设备缩放因子，0 视为 1.0
	DeviceScale float64

	// RequestFrame 帧回调排队函数，由宿主的帧驱动提供，必填
	RequestFrame RequestFrameFunc

	// Now 时钟源，nil 使用 time.Now
	Now func() time.Time

	// Rand 随机源，nil 使用全局随机源
	Rand *rand.Rand
}

// Starfield 一个星空动画实例
//
// 持有星星状态、合成器、帧调度器与可见性控制器，并负责
// 尺寸变化时的整体重建与销毁时的资源拆除。多个实例相互独立，
// 各自注册、各自拆除，不共享任何进程级状态。
type Starfield struct {
	tuning *config.StarfieldConfig

	viewW, viewH float64
	scale        float64
	visible      *ebiten.Image

	stars      []Star
	compositor *Compositor
	scheduler  *Scheduler
	visibility *VisibilityController

	observer IntersectionObserver
	rng      *rand.Rand

	destroyed bool
}

// Init 创建星空实例
//
// 目标表面缺失是正常的"什么都不做"结果而非故障，返回 (nil, nil)；
// 静态模式同理：目标表面被清空一次后返回 (nil, nil)，不创建实例。
// 只有构造本身无法进行（缺少帧驱动）才返回错误并向调用方传播。
func Init(target *ebiten.Image, cfg Config) (*Starfield, error) {
	if target == nil {
		log.Printf("[Starfield] target surface not found, nothing to do")
		return nil, nil
	}
	if cfg.Static {
		target.Clear()
		log.Printf("[Starfield] static mode, surface cleared")
		return nil, nil
	}
	if cfg.RequestFrame == nil {
		return nil, fmt.Errorf("starfield: no frame driver configured")
	}

	tuning := cfg.Tuning
	if tuning == nil {
		tuning = config.DefaultStarfieldConfig()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	deviceScale := cfg.DeviceScale
	if deviceScale == 0 {
		deviceScale = 1.0
	}

	bounds := target.Bounds()
	sf := &Starfield{
		tuning:   tuning,
		viewW:    float64(bounds.Dx()),
		viewH:    float64(bounds.Dy()),
		observer: cfg.Observer,
		rng:      cfg.Rand,
	}

	sf.scale = tuning.RenderScaleFor(deviceScale)
	if sf.scale == 1.0 {
		sf.visible = target
	} else {
		pw, ph := surfaceSize(sf.viewW, sf.viewH, sf.scale)
		sf.visible = ebiten.NewImage(pw, ph)
	}

	sf.compositor = NewCompositor(tuning.OffscreenWidth, tuning.OffscreenHeight, cfg.Theme)
	sf.scheduler = NewScheduler(tuning.TargetFPS, tuning.MaxDeltaMs, now, cfg.RequestFrame, sf.step)
	sf.visibility = NewVisibilityController(sf.scheduler, false, tuning.IntersectionThreshold)

	if sf.observer != nil {
		sf.observer.Observe(func(ratio float64) {
			if sf.destroyed {
				return
			}
			sf.visibility.SetIntersectionRatio(ratio)
		})
	}

	sf.stars = Populate(sf.viewW, sf.viewH, tuning, sf.rng)
	log.Printf("[Starfield] initialized: viewport %.0fx%.0f, scale %.2f, %d stars",
		sf.viewW, sf.viewH, sf.scale, len(sf.stars))

	// 无暂停条件即运行，与"帧请求活跃 iff 无暂停标志"的不变式一致
	sf.Start()
	return sf, nil
}

// Start 在无暂停条件时启动动画，幂等
func (sf *Starfield) Start() {
	if sf.destroyed || sf.visibility.Paused() {
		return
	}
	sf.scheduler.Start()
}

// Stop 停止动画，幂等
func (sf *Starfield) Stop() {
	if sf.destroyed {
		return
	}
	sf.scheduler.Stop()
}

// Destroy 停止调度并拆除全部外部挂接，幂等
//
// 销毁后任何外部事件（尺寸、可见性、主题）都不再产生工作。
func (sf *Starfield) Destroy() {
	if sf.destroyed {
		return
	}
	sf.destroyed = true
	sf.scheduler.Stop()
	if sf.observer != nil {
		sf.observer.Disconnect()
	}
	log.Printf("[Starfield] destroyed")
}

// Destroyed 返回实例是否已销毁
func (sf *Starfield) Destroyed() bool {
	return sf.destroyed
}

// SetHidden 更新宿主可见性信号
func (sf *Starfield) SetHidden(hidden bool) {
	if sf.destroyed {
		return
	}
	sf.visibility.SetHidden(hidden)
}

// SetTheme 切换主题，下一帧生效
func (sf *Starfield) SetTheme(theme Theme) {
	if sf.destroyed {
		return
	}
	sf.compositor.SetTheme(theme)
}

// Theme 返回当前主题
func (sf *Starfield) Theme() Theme {
	return sf.compositor.Theme()
}

// Running 返回调度器是否处于 running 状态
func (sf *Starfield) Running() bool {
	if sf.destroyed {
		return false
	}
	return sf.scheduler.Running()
}

// StarCount 返回当前星星数量
func (sf *Starfield) StarCount() int {
	return len(sf.stars)
}

// Resize 处理视口尺寸变化
//
// 重新计算渲染缩放、重建可见表面，并为新尺寸整体重新生成星星
// （不保留旧星星，简单优先于连续性）。调用发生在帧回调之间，
// 不会打断进行中的帧。
func (sf *Starfield) Resize(viewW, viewH, deviceScale float64) {
	if sf.destroyed {
		return
	}
	if viewW == sf.viewW && viewH == sf.viewH {
		return
	}
	sf.viewW = viewW
	sf.viewH = viewH
	if deviceScale == 0 {
		deviceScale = 1.0
	}
	sf.scale = sf.tuning.RenderScaleFor(deviceScale)

	pw, ph := surfaceSize(viewW, viewH, sf.scale)
	if pw > 0 && ph > 0 {
		sf.visible = ebiten.NewImage(pw, ph)
	} else {
		sf.visible = nil
	}

	sf.stars = Populate(viewW, viewH, sf.tuning, sf.rng)
	log.Printf("[Starfield] resized: viewport %.0fx%.0f, scale %.2f, %d stars",
		viewW, viewH, sf.scale, len(sf.stars))
}

// Draw 把可见表面拉伸绘制到宿主屏幕
//
// 渲染缩放 < 1 时由此处放大回逻辑尺寸，线性滤波。
func (sf *Starfield) Draw(screen *ebiten.Image) {
	if sf.destroyed || sf.visible == nil || screen == nil {
		return
	}
	sb := screen.Bounds()
	vb := sf.visible.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sb.Dx())/float64(vb.Dx()), float64(sb.Dy())/float64(vb.Dy()))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sf.visible, op)
}

// step 单帧动作：先模拟步进，后合成渲染
func (sf *Starfield) step(deltaMs float64) {
	Advance(sf.stars, sf.viewW, sf.viewH, deltaMs)
	sf.compositor.Render(sf.stars, sf.viewW, sf.viewH, sf.visible)
}

// surfaceSize 计算渲染表面的整数像素尺寸（逻辑尺寸 × 缩放）
func surfaceSize(viewW, viewH, scale float64) (int, int) {
	return int(math.Round(viewW * scale)), int(math.Round(viewH * scale))
}
