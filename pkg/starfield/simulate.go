package starfield

import "math"

// Advance 按时间增量推进所有星星的模拟状态
//
// 位置按 速度 × deltaMs 平移，越出 [0, 维度) 的坐标环绕回对侧边缘
// （环面拓扑，星星从远端重新进入）。闪烁相位按角速度推进，不取模。
//
// 除对 stars 的原地修改外无任何副作用，也不读取隐式全局状态。
func Advance(stars []Star, width, height, deltaMs float64) {
	for i := range stars {
		s := &stars[i]
		s.X = wrap(s.X+s.VX*deltaMs, width)
		s.Y = wrap(s.Y+s.VY*deltaMs, height)
		s.Twinkle += s.TwinkleSpeed * deltaMs
	}
}

// wrap 将坐标环绕到 [0, limit)
//
// math.Mod 对负数返回负值，需要再补一次 limit。
// limit ≤ 0 时返回 0，避免退化视口产生 NaN。
func wrap(v, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	v = math.Mod(v, limit)
	if v < 0 {
		v += limit
	}
	return v
}
