package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StarfieldConfig 星空渲染与模拟的调优配置
//
// 所有字段都有内置默认值（DefaultStarfieldConfig），可通过 YAML 文件覆盖。
// 速度单位为"逻辑像素/毫秒"，闪烁速度单位为"弧度/毫秒"。
//
// 配置文件位置: data/starfield.yaml
type StarfieldConfig struct {
	// DensityFactor 窄视口（宽度 < WideWidthThreshold）的星星密度系数
	// 目标数量 = clamp(宽度 × DensityFactor, MinStars, MaxStars)
	DensityFactor float64 `yaml:"densityFactor"`

	// WideDensityFactor 宽视口的密度系数（更稀疏，保持视觉密度大致恒定）
	WideDensityFactor float64 `yaml:"wideDensityFactor"`

	// WideWidthThreshold 宽视口判定阈值（逻辑像素）
	WideWidthThreshold float64 `yaml:"wideWidthThreshold"`

	// MinStars / MaxStars 星星数量的上下限
	MinStars int `yaml:"minStars"`
	MaxStars int `yaml:"maxStars"`

	// SpeedMin / SpeedMax 漂移速度大小的随机区间
	SpeedMin float64 `yaml:"speedMin"`
	SpeedMax float64 `yaml:"speedMax"`

	// VerticalDamping 垂直速度分量的阻尼系数，使漂移偏向水平方向
	VerticalDamping float64 `yaml:"verticalDamping"`

	// SizeMin / SizeMax 星星基础半径的随机区间
	SizeMin float64 `yaml:"sizeMin"`
	SizeMax float64 `yaml:"sizeMax"`

	// TwinkleSpeedMin / TwinkleSpeedMax 闪烁角速度的随机区间
	TwinkleSpeedMin float64 `yaml:"twinkleSpeedMin"`
	TwinkleSpeedMax float64 `yaml:"twinkleSpeedMax"`

	// TargetFPS 帧率上限，调度器按 1000/TargetFPS 毫秒跳帧
	TargetFPS int `yaml:"targetFPS"`

	// MaxDeltaMs 单帧时间增量的安全上限（毫秒）
	// 防止窗口长时间挂起后恢复时星星"瞬移"
	MaxDeltaMs float64 `yaml:"maxDeltaMs"`

	// OffscreenWidth / OffscreenHeight 离屏缓冲区的固定分辨率
	// 与视口尺寸无关，用于限制大屏上的逐像素合成开销
	OffscreenWidth  int `yaml:"offscreenWidth"`
	OffscreenHeight int `yaml:"offscreenHeight"`

	// HighDensityThreshold 高密度屏判定阈值（设备缩放因子）
	HighDensityThreshold float64 `yaml:"highDensityThreshold"`

	// HighDensityScale 高密度屏上可见表面的渲染缩放（≤ 1）
	HighDensityScale float64 `yaml:"highDensityScale"`

	// IntersectionThreshold 滚动可见性判定阈值
	// 相交比例低于此值时视为"滚出视野"，暂停动画
	IntersectionThreshold float64 `yaml:"intersectionThreshold"`
}

// DefaultStarfieldConfig 返回内置默认配置
func DefaultStarfieldConfig() *StarfieldConfig {
	return &StarfieldConfig{
		DensityFactor:         0.35,
		WideDensityFactor:     0.25,
		WideWidthThreshold:    1200,
		MinStars:              60,
		MaxStars:              600,
		SpeedMin:              0.01,
		SpeedMax:              0.06,
		VerticalDamping:       0.6,
		SizeMin:               0.4,
		SizeMax:               1.6,
		TwinkleSpeedMin:       0.0005,
		TwinkleSpeedMax:       0.003,
		TargetFPS:             30,
		MaxDeltaMs:            120,
		OffscreenWidth:        960,
		OffscreenHeight:       540,
		HighDensityThreshold:  1.5,
		HighDensityScale:      0.75,
		IntersectionThreshold: 0.05,
	}
}

// LoadStarfieldConfig 从 YAML 文件加载星空配置
//
// 文件中缺省的字段保持默认值，因此配置文件只需覆盖关心的项。
//
// 参数:
//   - path: 配置文件路径（如 "data/starfield.yaml"）
//
// 返回:
//   - *StarfieldConfig: 加载并校验成功的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadStarfieldConfig(path string) (*StarfieldConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read starfield config: %w", err)
	}

	config := DefaultStarfieldConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse starfield config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid starfield config: %w", err)
	}

	return config, nil
}

// Validate 校验配置的合法性
func (c *StarfieldConfig) Validate() error {
	if c.DensityFactor <= 0 || c.WideDensityFactor <= 0 {
		return fmt.Errorf("density factors must be positive, got %v / %v", c.DensityFactor, c.WideDensityFactor)
	}
	if c.MinStars < 0 || c.MaxStars < c.MinStars {
		return fmt.Errorf("star count bounds invalid: min=%d max=%d", c.MinStars, c.MaxStars)
	}
	if c.SpeedMin < 0 || c.SpeedMax < c.SpeedMin {
		return fmt.Errorf("speed band invalid: min=%v max=%v", c.SpeedMin, c.SpeedMax)
	}
	if c.SizeMin <= 0 || c.SizeMax < c.SizeMin {
		return fmt.Errorf("size band invalid: min=%v max=%v", c.SizeMin, c.SizeMax)
	}
	if c.TwinkleSpeedMin < 0 || c.TwinkleSpeedMax < c.TwinkleSpeedMin {
		return fmt.Errorf("twinkle speed band invalid: min=%v max=%v", c.TwinkleSpeedMin, c.TwinkleSpeedMax)
	}
	if c.TargetFPS <= 0 {
		return fmt.Errorf("targetFPS must be positive, got %d", c.TargetFPS)
	}
	if c.MaxDeltaMs <= 0 {
		return fmt.Errorf("maxDeltaMs must be positive, got %v", c.MaxDeltaMs)
	}
	if c.OffscreenWidth <= 0 || c.OffscreenHeight <= 0 {
		return fmt.Errorf("offscreen size invalid: %dx%d", c.OffscreenWidth, c.OffscreenHeight)
	}
	if c.HighDensityScale <= 0 || c.HighDensityScale > 1 {
		return fmt.Errorf("highDensityScale must be in (0, 1], got %v", c.HighDensityScale)
	}
	if c.IntersectionThreshold < 0 || c.IntersectionThreshold > 1 {
		return fmt.Errorf("intersectionThreshold must be in [0, 1], got %v", c.IntersectionThreshold)
	}
	return nil
}

// TargetStarCount 根据视口宽度计算目标星星数量
//
// 宽视口使用更低的密度系数，结果被夹紧到 [MinStars, MaxStars]。
// 非正宽度返回 0（退化视口不生成星星）。
func (c *StarfieldConfig) TargetStarCount(width float64) int {
	if width <= 0 {
		return 0
	}
	factor := c.DensityFactor
	if width >= c.WideWidthThreshold {
		factor = c.WideDensityFactor
	}
	count := int(width * factor)
	if count < c.MinStars {
		count = c.MinStars
	}
	if count > c.MaxStars {
		count = c.MaxStars
	}
	return count
}

// RenderScaleFor 根据设备缩放因子计算可见表面的渲染缩放
//
// 高密度屏（deviceScale 超过阈值）降档到 HighDensityScale 以限制像素填充开销，
// 其余情况保持 1.0。返回值恒 ≤ 1。
func (c *StarfieldConfig) RenderScaleFor(deviceScale float64) float64 {
	if deviceScale > c.HighDensityThreshold {
		return c.HighDensityScale
	}
	return 1.0
}
