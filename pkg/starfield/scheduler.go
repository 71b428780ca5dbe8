package starfield

import (
	"time"
)

// RequestFrameFunc 把回调排入下一个动画帧
//
// 桌面端由 pkg/app 在每个 Ebitengine Update tick 触发一次排队的回调，
// 测试中可手动泵帧。回调只会在下一帧执行，不会同步重入。
type RequestFrameFunc func(callback func())

// Scheduler 帧调度器，状态机 {stopped, running}
//
// 以上限帧率驱动 更新→渲染 循环：低于目标帧间隔的回调直接跳过
// （通过跳帧而非定时器节流限帧，避免睡眠排队带来的漂移），
// 时间增量超过 maxDelta 时被夹紧，防止长时间挂起后星星瞬移。
//
// Stop 只清除 running 标志；已在途的回调在入口处观察到标志后
// 静默退出，不再调度后续帧，因此无需显式的取消令牌。
type Scheduler struct {
	now          func() time.Time
	requestFrame RequestFrameFunc
	step         func(deltaMs float64)

	frameInterval time.Duration
	maxDelta      time.Duration

	running   bool
	lastFrame time.Time
}

// NewScheduler 创建帧调度器
//
// 参数:
//   - targetFPS: 帧率上限，帧间隔 = 1s/targetFPS
//   - maxDeltaMs: 单帧时间增量上限（毫秒）
//   - now: 时钟源（测试中注入假时钟）
//   - requestFrame: 帧回调排队函数
//   - step: 每个有效帧执行的 更新+渲染 动作
func NewScheduler(targetFPS int, maxDeltaMs float64, now func() time.Time, requestFrame RequestFrameFunc, step func(deltaMs float64)) *Scheduler {
	return &Scheduler{
		now:           now,
		requestFrame:  requestFrame,
		step:          step,
		frameInterval: time.Second / time.Duration(targetFPS),
		maxDelta:      time.Duration(maxDeltaMs * float64(time.Millisecond)),
	}
}

// Start 进入 running 状态并请求下一个帧回调
//
// 已在运行时为空操作，保证重复调用只存在一条帧回调链。
func (s *Scheduler) Start() {
	if s.running {
		return
	}
	s.running = true
	s.lastFrame = s.now()
	s.requestFrame(s.frame)
}

// Stop 清除 running 标志
//
// 在途回调会在下次入口检查时退出，该回调链就此终止。
func (s *Scheduler) Stop() {
	s.running = false
}

// Running 返回当前是否处于 running 状态
func (s *Scheduler) Running() bool {
	return s.running
}

// frame 单个帧回调：检查运行标志、限帧、夹紧增量、执行步进
func (s *Scheduler) frame() {
	if !s.running {
		return
	}

	elapsed := s.now().Sub(s.lastFrame)
	if elapsed < s.frameInterval {
		// 未到目标帧间隔，跳过本帧，只续约回调
		s.requestFrame(s.frame)
		return
	}

	delta := elapsed
	if delta > s.maxDelta {
		delta = s.maxDelta
	}
	s.lastFrame = s.now()

	s.step(float64(delta) / float64(time.Millisecond))
	s.requestFrame(s.frame)
}
