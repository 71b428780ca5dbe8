package starfield

import (
	"fmt"
	"image/color"
)

// Theme 星空配色主题
//
// 只有明暗两种取值，由宿主的主题切换事件驱动；
// 本包只消费切换后的结果，不关心切换机制本身。
type Theme int

const (
	// ThemeDark 暗色主题（默认）：亮色星星配冷色辉光
	ThemeDark Theme = iota

	// ThemeLight 亮色主题：深色星星，辉光收敛
	ThemeLight
)

// String 返回主题的字符串表示
func (t Theme) String() string {
	if t == ThemeLight {
		return "light"
	}
	return "dark"
}

// ParseTheme 解析主题字符串（"light" / "dark"）
func ParseTheme(s string) (Theme, error) {
	switch s {
	case "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	default:
		return ThemeDark, fmt.Errorf("unknown theme %q (want \"light\" or \"dark\")", s)
	}
}

// Palette 主题对应的星星填充色与辉光色
type Palette struct {
	// Fill 星星本体与外层渐变的填充色
	Fill color.RGBA

	// Glow 内层光晕的颜色
	Glow color.RGBA
}

// Palette 返回主题的配色
func (t Theme) Palette() Palette {
	if t == ThemeLight {
		return Palette{
			Fill: color.RGBA{R: 0x33, G: 0x41, B: 0x55, A: 0xff},
			Glow: color.RGBA{R: 0x64, G: 0x74, B: 0x8b, A: 0xff},
		}
	}
	return Palette{
		Fill: color.RGBA{R: 0xe2, G: 0xe8, B: 0xf0, A: 0xff},
		Glow: color.RGBA{R: 0x93, G: 0xc5, B: 0xfd, A: 0xff},
	}
}
