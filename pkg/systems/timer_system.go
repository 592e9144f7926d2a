package systems

import (
	"sort"
	"time"
)

// TaskID 定时任务标识，0 为无效值
type TaskID uint64

// timerTask 一个待触发的定时任务
type timerTask struct {
	id       TaskID
	due      time.Duration
	interval time.Duration // >0 表示重复任务
	fn       func()
}

// TimerSystem 帧驱动的定时器
//
// 所有回调都在调用 Update/Advance 的线程（游戏循环）上执行，
// 组件只需保存自己的 TaskID，在退出时 Cancel 即可保证回调不再触发。
// 时间完全由外部推进，测试中用 Advance 就能精确控制。
type TimerSystem struct {
	now    time.Duration
	nextID TaskID
	tasks  map[TaskID]*timerTask
	closed bool
}

// NewTimerSystem 创建定时器系统
func NewTimerSystem() *TimerSystem {
	return &TimerSystem{
		nextID: 1,
		tasks:  make(map[TaskID]*timerTask),
	}
}

// Now 返回定时器内部时钟（从创建开始累计）
func (ts *TimerSystem) Now() time.Duration {
	return ts.now
}

// After 在 d 之后执行一次 fn
// d <= 0 时在下一次 Update 中执行
func (ts *TimerSystem) After(d time.Duration, fn func()) TaskID {
	return ts.schedule(d, 0, fn)
}

// Every 每隔 d 执行一次 fn，直到被 Cancel
// d 必须为正，否则返回 0
func (ts *TimerSystem) Every(d time.Duration, fn func()) TaskID {
	if d <= 0 {
		return 0
	}
	return ts.schedule(d, d, fn)
}

func (ts *TimerSystem) schedule(d, interval time.Duration, fn func()) TaskID {
	if ts.closed || fn == nil {
		return 0
	}
	if d < 0 {
		d = 0
	}
	id := ts.nextID
	ts.nextID++
	ts.tasks[id] = &timerTask{
		id:       id,
		due:      ts.now + d,
		interval: interval,
		fn:       fn,
	}
	return id
}

// Cancel 取消任务，返回任务是否仍在等待
func (ts *TimerSystem) Cancel(id TaskID) bool {
	if _, ok := ts.tasks[id]; !ok {
		return false
	}
	delete(ts.tasks, id)
	return true
}

// Pending 返回仍在等待的任务数
func (ts *TimerSystem) Pending() int {
	return len(ts.tasks)
}

// Update 按帧推进时钟
// 参数：
//   - deltaTime: 帧间隔（秒）
func (ts *TimerSystem) Update(deltaTime float64) {
	if deltaTime <= 0 {
		ts.Advance(0)
		return
	}
	ts.Advance(time.Duration(deltaTime * float64(time.Second)))
}

// Advance 推进时钟 d 并按到期顺序触发任务
//
// 同一时刻到期的任务按创建顺序执行；回调执行时 Now() 等于任务的到期时间，
// 所以回调中新建的任务以到期时间为基准，不会因为帧间隔而累积误差。
// 重复任务在一次大跨度推进中会补齐所有错过的触发。
func (ts *TimerSystem) Advance(d time.Duration) {
	if ts.closed {
		return
	}
	if d < 0 {
		d = 0
	}
	target := ts.now + d

	for !ts.closed {
		task := ts.nextDue(target)
		if task == nil {
			break
		}
		ts.now = task.due
		if task.interval > 0 {
			task.due += task.interval
		} else {
			delete(ts.tasks, task.id)
		}
		task.fn()
	}

	if !ts.closed {
		ts.now = target
	}
}

// nextDue 找出最早到期（且不晚于 target）的任务
func (ts *TimerSystem) nextDue(target time.Duration) *timerTask {
	var best *timerTask
	for _, task := range ts.tasks {
		if task.due > target {
			continue
		}
		if best == nil || task.due < best.due || (task.due == best.due && task.id < best.id) {
			best = task
		}
	}
	return best
}

// PendingIDs 返回等待中的任务 ID（升序），主要用于调试
func (ts *TimerSystem) PendingIDs() []TaskID {
	ids := make([]TaskID, 0, len(ts.tasks))
	for id := range ts.tasks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Close 取消所有任务，之后不再接受新任务
func (ts *TimerSystem) Close() {
	ts.closed = true
	clear(ts.tasks)
}

// Closed 返回定时器是否已关闭
func (ts *TimerSystem) Closed() bool {
	return ts.closed
}
