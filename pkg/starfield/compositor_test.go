package starfield

import (
	"math"
	"testing"
)

// TestBufferPos 测试视口坐标到离屏缓冲坐标的换算
func TestBufferPos(t *testing.T) {
	bx, by := bufferPos(800, 450, 1600, 900, 960, 540)
	if math.Abs(bx-480) > 1e-9 || math.Abs(by-270) > 1e-9 {
		t.Errorf("bufferPos(800, 450): got (%v, %v), want (480, 270)", bx, by)
	}

	// 原点与右下角
	bx, by = bufferPos(0, 0, 1600, 900, 960, 540)
	if bx != 0 || by != 0 {
		t.Errorf("bufferPos(0, 0): got (%v, %v), want (0, 0)", bx, by)
	}
	bx, by = bufferPos(1600, 900, 1600, 900, 960, 540)
	if math.Abs(bx-960) > 1e-9 || math.Abs(by-540) > 1e-9 {
		t.Errorf("bufferPos(1600, 900): got (%v, %v), want (960, 540)", bx, by)
	}
}

// TestTwinkleRadiusFloor 测试闪烁调制后的半径不低于可见下限
func TestTwinkleRadiusFloor(t *testing.T) {
	// 极小尺寸在任何相位下都不低于下限
	for phase := 0.0; phase < 2*math.Pi; phase += 0.1 {
		if r := twinkleRadius(0.1, phase); r < minStarRadius {
			t.Fatalf("twinkleRadius(0.1, %v) = %v, below floor %v", phase, r, minStarRadius)
		}
	}
}

// TestTwinkleRadiusModulation 测试相位驱动的半径脉动
func TestTwinkleRadiusModulation(t *testing.T) {
	peak := twinkleRadius(1.0, math.Pi/2)    // sin = 1
	trough := twinkleRadius(1.0, -math.Pi/2) // sin = -1

	if math.Abs(peak-1.1) > 1e-9 {
		t.Errorf("peak radius: got %v, want 1.1", peak)
	}
	if math.Abs(trough-0.6) > 1e-9 {
		t.Errorf("trough radius: got %v, want floor 0.6", trough)
	}
	if peak <= trough {
		t.Error("modulation should make peak radius exceed trough radius")
	}
}

// TestCompositorSetTheme 测试主题切换延迟到下一次渲染生效
func TestCompositorSetTheme(t *testing.T) {
	c := NewCompositor(960, 540, ThemeDark)

	if c.Theme() != ThemeDark {
		t.Fatalf("initial theme: got %v, want dark", c.Theme())
	}

	c.SetTheme(ThemeLight)
	if c.Theme() != ThemeLight {
		t.Errorf("theme after SetTheme: got %v, want light", c.Theme())
	}
	if c.halo != nil || c.glow != nil {
		t.Error("sprites should be invalidated, rebuilt lazily on next render")
	}

	// 相同主题重复设置不应再次失效精灵
	c.rebuildSprites()
	c.SetTheme(ThemeLight)
	if c.halo == nil {
		t.Error("setting the same theme must not invalidate sprites")
	}
}
