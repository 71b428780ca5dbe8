// Package starfield 实现环境星空动画的核心：星星状态、模拟步进、
// 离屏合成以及由可见性驱动的启停生命周期。
//
// 包内所有类型都在单一协作线程（Ebitengine 的帧回调流）上使用，
// 不需要任何同步原语。
package starfield

import (
	"math"
	"math/rand"

	"github.com/decker502/starfield/pkg/config"
)

// Star 单颗星星的模拟状态
//
// 位置使用逻辑视口坐标（CSS 像素量级），速度单位为"逻辑像素/毫秒"。
// 每次模拟步进后位置保证落回 [0, width) × [0, height)。
type Star struct {
	// X, Y 当前位置（视口坐标）
	X, Y float64

	// VX, VY 漂移速度（逻辑像素/毫秒）
	VX, VY float64

	// Size 基础半径系数
	Size float64

	// Twinkle 闪烁相位（弧度），无界增长，由周期函数隐式取模
	Twinkle float64

	// TwinkleSpeed 闪烁角速度（弧度/毫秒）
	TwinkleSpeed float64
}

// Populate 为给定视口尺寸批量生成随机星星
//
// 数量由密度策略决定（见 StarfieldConfig.TargetStarCount）。
// 每颗星的朝向角均匀随机，垂直速度分量按 VerticalDamping 衰减，
// 使整体漂移偏向水平。退化视口（宽或高 ≤ 0）返回空切片，永不失败。
//
// 参数:
//   - width, height: 逻辑视口尺寸
//   - cfg: 调优配置
//   - rng: 随机源，传 nil 使用全局随机源
func Populate(width, height float64, cfg *config.StarfieldConfig, rng *rand.Rand) []Star {
	if width <= 0 || height <= 0 {
		return nil
	}

	randFloat := rand.Float64
	if rng != nil {
		randFloat = rng.Float64
	}

	count := cfg.TargetStarCount(width)
	stars := make([]Star, count)
	for i := range stars {
		angle := randFloat() * 2 * math.Pi
		speed := cfg.SpeedMin + randFloat()*(cfg.SpeedMax-cfg.SpeedMin)

		stars[i] = Star{
			X:            randFloat() * width,
			Y:            randFloat() * height,
			VX:           math.Cos(angle) * speed,
			VY:           math.Sin(angle) * speed * cfg.VerticalDamping,
			Size:         cfg.SizeMin + randFloat()*(cfg.SizeMax-cfg.SizeMin),
			Twinkle:      randFloat() * 2 * math.Pi,
			TwinkleSpeed: cfg.TwinkleSpeedMin + randFloat()*(cfg.TwinkleSpeedMax-cfg.TwinkleSpeedMin),
		}
	}
	return stars
}
