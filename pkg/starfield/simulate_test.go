package starfield

import (
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/starfield/pkg/config"
)

// TestAdvanceWrapInvariant 测试任意步数后位置始终落在 [0, w) × [0, h)
func TestAdvanceWrapInvariant(t *testing.T) {
	cfg := config.DefaultStarfieldConfig()
	rng := rand.New(rand.NewSource(3))
	const width, height = 1600.0, 900.0

	stars := Populate(width, height, cfg, rng)
	for step := 0; step < 500; step++ {
		Advance(stars, width, height, 33.4)
		for i, s := range stars {
			if s.X < 0 || s.X >= width || s.Y < 0 || s.Y >= height {
				t.Fatalf("step %d: star %d out of bounds: (%v, %v)", step, i, s.X, s.Y)
			}
		}
	}
}

// TestAdvanceWrapScenario 测试右边缘环绕：x=1599, vx=0.05, 1000ms
//
// 1599 + 0.05×1000 = 1649，环绕一次后应为 49。
func TestAdvanceWrapScenario(t *testing.T) {
	stars := []Star{{X: 1599, Y: 450, VX: 0.05}}
	Advance(stars, 1600, 900, 1000)

	if stars[0].X < 0 || stars[0].X >= 1600 {
		t.Fatalf("x=%v outside [0, 1600)", stars[0].X)
	}
	if math.Abs(stars[0].X-49) > 1e-9 {
		t.Errorf("x: got %v, want 49", stars[0].X)
	}
}

// TestAdvanceNegativeWrap 测试左边缘环绕：负坐标回到远端
func TestAdvanceNegativeWrap(t *testing.T) {
	stars := []Star{{X: 1, Y: 1, VX: -0.05, VY: -0.05}}
	Advance(stars, 1600, 900, 100)

	if math.Abs(stars[0].X-1596) > 1e-9 {
		t.Errorf("x: got %v, want 1596", stars[0].X)
	}
	if math.Abs(stars[0].Y-896) > 1e-9 {
		t.Errorf("y: got %v, want 896", stars[0].Y)
	}
}

// TestAdvanceTwinklePhase 测试闪烁相位按角速度推进且不取模
func TestAdvanceTwinklePhase(t *testing.T) {
	stars := []Star{{X: 100, Y: 100, Twinkle: 1.0, TwinkleSpeed: 0.01}}
	Advance(stars, 1600, 900, 1000)

	if math.Abs(stars[0].Twinkle-11.0) > 1e-9 {
		t.Errorf("twinkle phase: got %v, want 11.0 (unbounded)", stars[0].Twinkle)
	}
}

// TestAdvanceZeroDelta 测试零时间增量不改变状态
func TestAdvanceZeroDelta(t *testing.T) {
	stars := []Star{{X: 123, Y: 456, VX: 0.05, VY: 0.03, Twinkle: 2, TwinkleSpeed: 0.001}}
	Advance(stars, 1600, 900, 0)

	if stars[0].X != 123 || stars[0].Y != 456 || stars[0].Twinkle != 2 {
		t.Errorf("zero delta mutated state: %+v", stars[0])
	}
}

// TestWrap 测试环绕辅助函数的边界行为
func TestWrap(t *testing.T) {
	tests := []struct {
		v, limit, want float64
	}{
		{0, 100, 0},
		{100, 100, 0},
		{150, 100, 50},
		{-10, 100, 90},
		{-210, 100, 90},
		{50, 0, 0}, // 退化维度
	}
	for _, tt := range tests {
		if got := wrap(tt.v, tt.limit); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("wrap(%v, %v): got %v, want %v", tt.v, tt.limit, got, tt.want)
		}
	}
}
