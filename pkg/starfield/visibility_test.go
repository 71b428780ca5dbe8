package starfield

import (
	"testing"
	"time"
)

// newTestController 创建接入可手动泵帧调度器的可见性控制器
func newTestController(static bool) (*VisibilityController, *Scheduler, *frameDriver) {
	clock := newFakeClock()
	driver := &frameDriver{}
	s := NewScheduler(30, 120, clock.now, driver.request, func(float64) {})
	c := NewVisibilityController(s, static, 0.05)
	return c, s, driver
}

// TestVisibilitySingleFlagTransitions 测试单一标志的置位/清除驱动运行状态切换
func TestVisibilitySingleFlagTransitions(t *testing.T) {
	c, s, _ := newTestController(false)

	c.SetHidden(false)
	if !s.Running() {
		t.Fatal("no pause flags set, scheduler should be running")
	}

	c.SetHidden(true)
	if s.Running() {
		t.Error("hidden flag set, scheduler should be stopped")
	}

	c.SetHidden(false)
	if !s.Running() {
		t.Error("last pause flag cleared, scheduler should be running again")
	}
}

// TestVisibilityIntersectionThreshold 测试相交比例低于阈值时暂停
func TestVisibilityIntersectionThreshold(t *testing.T) {
	c, s, _ := newTestController(false)

	c.SetIntersectionRatio(1.0)
	if !s.Running() {
		t.Fatal("fully intersecting, scheduler should be running")
	}

	c.SetIntersectionRatio(0.01) // < 0.05
	if s.Running() {
		t.Error("scrolled out, scheduler should be stopped")
	}

	c.SetIntersectionRatio(0.5)
	if !s.Running() {
		t.Error("scrolled back in, scheduler should be running")
	}
}

// TestVisibilityCombinedFlags 测试多个标志叠加：清除最后一个才恢复运行
func TestVisibilityCombinedFlags(t *testing.T) {
	c, s, _ := newTestController(false)

	c.SetHidden(true)
	c.SetIntersectionRatio(0.0)
	if s.Running() {
		t.Fatal("both flags set, scheduler should be stopped")
	}

	c.SetHidden(false)
	if s.Running() {
		t.Error("scrolledOut still set, scheduler must stay stopped")
	}

	c.SetIntersectionRatio(1.0)
	if !s.Running() {
		t.Error("all flags cleared, scheduler should be running")
	}
}

// TestVisibilityStaticNeverStarts 测试静态模式下任何信号都不启动动画
func TestVisibilityStaticNeverStarts(t *testing.T) {
	c, s, driver := newTestController(true)

	c.SetHidden(false)
	c.SetIntersectionRatio(1.0)

	if s.Running() {
		t.Error("static mode must never start the scheduler")
	}
	if len(driver.pending) != 0 {
		t.Errorf("static mode must never schedule frames, pending=%d", len(driver.pending))
	}
}

// TestVisibilityStopWithinOneCallback 测试隐藏事件后最多一个回调边界内停止
func TestVisibilityStopWithinOneCallback(t *testing.T) {
	clock := newFakeClock()
	driver := &frameDriver{}
	stepCount := 0
	s := NewScheduler(30, 120, clock.now, driver.request, func(float64) { stepCount++ })
	c := NewVisibilityController(s, false, 0.05)

	c.SetHidden(false) // running，回调已排队
	clock.advance(40 * time.Millisecond)

	c.SetHidden(true) // 在途回调仍会被触发一次
	driver.pump()

	if stepCount != 0 {
		t.Errorf("in-flight callback must observe stop flag, steps=%d", stepCount)
	}
	if len(driver.pending) != 0 {
		t.Errorf("stopped chain must not reschedule, pending=%d", len(driver.pending))
	}
}
