package starfield

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// minStarRadius 闪烁调制后的半径下限，保证星星始终可见
const minStarRadius = 0.6

// Compositor 把所有星星渲染到固定分辨率的离屏缓冲区，
// 再把缓冲区整体缩放拷贝到可见表面。
//
// 离屏分辨率与视口无关，渐变填充的逐像素开销因此不随
// 视口/屏幕密度增长。主题切换只标记精灵重建，在下一次
// 渲染时生效，不强制立即重绘。
type Compositor struct {
	offscreen *ebiten.Image
	offW      int
	offH      int

	theme   Theme
	palette Palette

	// halo 外层柔和渐变（填充色→透明），glow 内层光晕（辉光色）
	halo *ebiten.Image
	glow *ebiten.Image
}

// NewCompositor 创建合成器并分配离屏缓冲区
func NewCompositor(offW, offH int, theme Theme) *Compositor {
	c := &Compositor{
		offscreen: ebiten.NewImage(offW, offH),
		offW:      offW,
		offH:      offH,
		theme:     theme,
	}
	c.rebuildSprites()
	return c
}

// SetTheme 切换配色主题
//
// 精灵在下一次 Render 前重建，当帧不强制重绘。
func (c *Compositor) SetTheme(theme Theme) {
	if theme == c.theme && c.halo != nil {
		return
	}
	c.theme = theme
	c.halo = nil
	c.glow = nil
}

// Theme 返回当前主题
func (c *Compositor) Theme() Theme {
	return c.theme
}

// rebuildSprites 按当前主题重建辉光精灵
func (c *Compositor) rebuildSprites() {
	c.palette = c.theme.Palette()
	c.halo = ebiten.NewImageFromImage(radialGradientImage(spriteSize, c.palette.Fill))
	c.glow = ebiten.NewImageFromImage(radialGradientImage(spriteSize, c.palette.Glow))
}

// Render 渲染一帧：离屏绘制所有星星，再缩放拷贝到可见表面
//
// 每颗星先画半径约 3 倍核心半径的外层渐变，再以加色混合画
// 约 2 倍半径的内层光晕，最后画核心实心圆。每次绘制使用
// 独立的选项值，辉光状态不会泄漏到下一颗星。
// 可见表面先清空，再以线性滤波接收离屏缓冲的整体缩放。
func (c *Compositor) Render(stars []Star, viewW, viewH float64, visible *ebiten.Image) {
	if c.halo == nil || c.glow == nil {
		c.rebuildSprites()
	}

	c.offscreen.Clear()

	if viewW > 0 && viewH > 0 {
		for i := range stars {
			s := &stars[i]
			bx, by := bufferPos(s.X, s.Y, viewW, viewH, c.offW, c.offH)
			r := twinkleRadius(s.Size, s.Twinkle)

			c.drawSprite(c.halo, bx, by, r*3, ebiten.BlendSourceOver)
			c.drawSprite(c.glow, bx, by, r*2, ebiten.BlendLighter)
			vector.DrawFilledCircle(c.offscreen, float32(bx), float32(by), float32(r), c.palette.Fill, true)
		}
	}

	if visible == nil {
		return
	}
	visible.Clear()
	bounds := visible.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(bounds.Dx())/float64(c.offW), float64(bounds.Dy())/float64(c.offH))
	op.Filter = ebiten.FilterLinear
	visible.DrawImage(c.offscreen, op)
}

// drawSprite 以指定半径和混合模式绘制一张居中精灵
func (c *Compositor) drawSprite(sprite *ebiten.Image, cx, cy, radius float64, blend ebiten.Blend) {
	scale := radius * 2 / float64(spriteSize)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx-radius, cy-radius)
	op.Filter = ebiten.FilterLinear
	op.Blend = blend
	c.offscreen.DrawImage(sprite, op)
}

// bufferPos 把视口坐标换算到离屏缓冲区坐标
func bufferPos(x, y, viewW, viewH float64, offW, offH int) (float64, float64) {
	return x / viewW * float64(offW), y / viewH * float64(offH)
}

// twinkleRadius 按闪烁相位调制核心半径，不低于可见下限
func twinkleRadius(size, phase float64) float64 {
	r := size * (0.75 + 0.35*math.Sin(phase))
	if r < minStarRadius {
		r = minStarRadius
	}
	return r
}
