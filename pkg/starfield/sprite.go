package starfield

import (
	"image"
	"image/color"
)

// spriteSize 辉光精灵的边长（像素）
//
// 精灵绘制时按星星半径缩放，32 像素在离屏分辨率下足够平滑。
const spriteSize = 32

// radialGradientImage 生成一张径向渐变精灵：中心为完整颜色，
// 向边缘按二次曲线衰减到完全透明。
//
// 返回标准库 image.RGBA（alpha 预乘），便于在无 GPU 的测试中
// 直接校验像素，再由合成器包装成 ebiten.Image。
func radialGradientImage(size int, col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	center := float64(size-1) / 2
	radius := float64(size) / 2

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - center
			dy := float64(y) - center
			t := (dx*dx + dy*dy) / (radius * radius)
			if t >= 1 {
				continue
			}
			fade := (1 - t) * (1 - t)
			a := uint8(fade * float64(col.A))
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(fade * float64(col.R)),
				G: uint8(fade * float64(col.G)),
				B: uint8(fade * float64(col.B)),
				A: a,
			})
		}
	}
	return img
}
