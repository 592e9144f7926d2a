package systems

import (
	"log"
	"slices"
	"time"

	"github.com/decker502/roseday/pkg/config"
	"github.com/decker502/roseday/pkg/utils"
)

// BloomTiltDamping 指针偏移到倾斜角度的阻尼系数
const BloomTiltDamping = 25.0

// PetalAppearDuration 花瓣从出现到完全展开的时间
const PetalAppearDuration = 600 * time.Millisecond

// PetalPose 一片花瓣的确定性姿态
type PetalPose struct {
	Index   int     // 1..12
	Rotate  float64 // 旋转角度（度）
	Scale   float64 // 完全展开时的缩放
	Opacity float64 // 完全展开时的不透明度
}

// BloomSequencer 玫瑰逐层绽放的阶段计数器
//
// 阶段从 0 单调递增到 len(delays)，delays[i] 是阶段 i 到 i+1 的间隔。
// 只有 Start 之后才会推进；到达终点时完成回调只触发一次。
// 倾斜角度由指针位置独立计算，与阶段无关。
type BloomSequencer struct {
	timers *TimerSystem
	delays []time.Duration

	stage     int
	active    bool
	completed bool
	reachedAt []time.Duration // reachedAt[i] 为到达阶段 i+1 的时刻

	task       TaskID
	onComplete func()

	tiltX, tiltY float64
}

// NewBloomSequencer 创建绽放序列
func NewBloomSequencer(timers *TimerSystem, delays []time.Duration) *BloomSequencer {
	return &BloomSequencer{
		timers: timers,
		delays: slices.Clone(delays),
	}
}

// SetOnComplete 设置完成回调
func (bs *BloomSequencer) SetOnComplete(fn func()) {
	bs.onComplete = fn
}

// SetDelays 替换阶段间隔表，只在下一次 Reset 后生效
func (bs *BloomSequencer) SetDelays(delays []time.Duration) {
	if bs.active {
		return
	}
	bs.delays = slices.Clone(delays)
}

// Reset 回到阶段 0 并停止推进
// 重新进入绽放界面时调用
func (bs *BloomSequencer) Reset() {
	bs.timers.Cancel(bs.task)
	bs.task = 0
	bs.stage = 0
	bs.active = false
	bs.completed = false
	bs.reachedAt = bs.reachedAt[:0]
}

// Start 开始绽放
// 已经开始过（包括已完成）时返回 false，需要先 Reset
func (bs *BloomSequencer) Start() bool {
	if bs.active || bs.timers.Closed() {
		return false
	}
	bs.active = true
	log.Printf("[BloomSequencer] Bloom started (%d stages)", len(bs.delays))
	if len(bs.delays) == 0 {
		bs.complete()
		return true
	}
	bs.scheduleNext()
	return true
}

func (bs *BloomSequencer) scheduleNext() {
	bs.task = bs.timers.After(bs.delays[bs.stage], bs.advance)
}

// advance 定时任务：推进一个阶段
func (bs *BloomSequencer) advance() {
	bs.task = 0
	if !bs.active || bs.stage >= len(bs.delays) {
		return
	}
	bs.stage++
	bs.reachedAt = append(bs.reachedAt, bs.timers.Now())

	if bs.stage < len(bs.delays) {
		bs.scheduleNext()
		return
	}
	bs.complete()
}

func (bs *BloomSequencer) complete() {
	if bs.completed {
		return
	}
	bs.completed = true
	log.Printf("[BloomSequencer] Bloom complete")
	if bs.onComplete != nil {
		bs.onComplete()
	}
}

// Stage 当前阶段
func (bs *BloomSequencer) Stage() int { return bs.stage }

// StageCount 终点阶段
func (bs *BloomSequencer) StageCount() int { return len(bs.delays) }

// Active 是否已经开始绽放
func (bs *BloomSequencer) Active() bool { return bs.active }

// Completed 是否已经到达终点
func (bs *BloomSequencer) Completed() bool { return bs.completed }

// StemVisible 第一片花瓣出现时花茎同时出现
func (bs *BloomSequencer) StemVisible() bool { return bs.stage >= 1 }

// PetalVisible 花瓣 idx（1 起）是否已经出现
func (bs *BloomSequencer) PetalVisible(idx int) bool {
	return idx >= 1 && bs.stage >= idx
}

// PetalAppearProgress 花瓣 idx 的展开进度 [0, 1]，未出现时为 0
func (bs *BloomSequencer) PetalAppearProgress(idx int) float64 {
	if !bs.PetalVisible(idx) || idx > len(bs.reachedAt) {
		return 0
	}
	elapsed := bs.timers.Now() - bs.reachedAt[idx-1]
	return utils.Clamp01(float64(elapsed) / float64(PetalAppearDuration))
}

// UpdateTilt 根据指针相对元素中心的偏移计算倾斜角度
// 偏移除以阻尼系数即为角度，不做额外限制；缺少坐标时保持原值
func (bs *BloomSequencer) UpdateTilt(ev utils.PointerEvent, bounds utils.Rect) {
	if !ev.HasPosition {
		return
	}
	cx, cy := bounds.Center()
	dx := (ev.X - cx) / BloomTiltDamping
	dy := (ev.Y - cy) / BloomTiltDamping
	bs.tiltX = -dy
	bs.tiltY = dx
}

// Tilt 返回 (绕 X 轴, 绕 Y 轴) 的倾斜角度（度）
func (bs *BloomSequencer) Tilt() (float64, float64) {
	return bs.tiltX, bs.tiltY
}

// Close 取消等待中的阶段任务
func (bs *BloomSequencer) Close() {
	bs.timers.Cancel(bs.task)
	bs.task = 0
	bs.active = false
}

// BloomPetalPose 返回第 idx（1..12）片花瓣的姿态
//
// 外圈 1..5：每 72° 一片，奇数片略大且更透明；
// 中圈 6..9：从 36° 开始每 72° 一片；
// 内圈 10..12：每 120° 一片，逐片缩小。
func BloomPetalPose(idx int) PetalPose {
	p := PetalPose{Index: idx, Opacity: 1}
	switch {
	case idx >= 1 && idx <= 5:
		p.Rotate = 72 * float64(idx-1)
		if idx%2 == 1 {
			p.Scale, p.Opacity = 1.1, 0.6
		} else {
			p.Scale, p.Opacity = 1.05, 0.7
		}
	case idx >= 6 && idx <= 9:
		p.Rotate = 36 + 72*float64(idx-6)
		if idx%2 == 0 {
			p.Scale, p.Opacity = 0.85, 0.9
		} else {
			p.Scale, p.Opacity = 0.8, 1
		}
	case idx >= 10 && idx <= 12:
		p.Rotate = 120 * float64(idx-10)
		p.Scale = 0.5 - 0.05*float64(idx-10)
	default:
		p.Scale, p.Opacity = 0, 0
	}
	return p
}

// BloomPetalPoses 返回全部花瓣的姿态，每个绽放阶段一片
func BloomPetalPoses() []PetalPose {
	poses := make([]PetalPose, config.BloomStageCount)
	for i := range poses {
		poses[i] = BloomPetalPose(i + 1)
	}
	return poses
}
