package starfield

// VisibilityController 把相互独立的暂停条件聚合为单一的运行/停止决策
//
// 三个信号源各自设置/清除一个标志后触发重新评估：
//   - hidden: 宿主窗口不可见（页面可见性的桌面对应物）
//   - scrolledOut: 相交比例低于阈值（可选的滚动观察者提供）
//   - static: 构造期固定的静态模式
//
// 评估规则：任一标志置位则强制调度器停止；全部清除则启动调度器
// （调度器的 Start 幂等）。静态模式下任何信号都不会启动动画。
// 标志修改先于评估，所有调用都来自同一协作线程。
type VisibilityController struct {
	scheduler *Scheduler

	static      bool
	hidden      bool
	scrolledOut bool

	intersectionThreshold float64
}

// NewVisibilityController 创建可见性控制器
//
// static 为 true 时控制器永远不会启动调度器。
func NewVisibilityController(scheduler *Scheduler, static bool, intersectionThreshold float64) *VisibilityController {
	return &VisibilityController{
		scheduler:             scheduler,
		static:                static,
		intersectionThreshold: intersectionThreshold,
	}
}

// SetHidden 更新窗口可见性标志并重新评估
func (c *VisibilityController) SetHidden(hidden bool) {
	c.hidden = hidden
	c.reevaluate()
}

// SetIntersectionRatio 按相交比例更新滚出标志并重新评估
//
// 没有相交观察能力的宿主从不调用此方法，标志保持 false，
// 即退化为"始终可见"。
func (c *VisibilityController) SetIntersectionRatio(ratio float64) {
	c.scrolledOut = ratio < c.intersectionThreshold
	c.reevaluate()
}

// Paused 返回当前是否存在任一暂停条件
func (c *VisibilityController) Paused() bool {
	return c.static || c.hidden || c.scrolledOut
}

// reevaluate 根据标志集推导运行状态并同步调度器
func (c *VisibilityController) reevaluate() {
	if c.Paused() {
		c.scheduler.Stop()
		return
	}
	c.scheduler.Start()
}
