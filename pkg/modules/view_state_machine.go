package modules

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/decker502/roseday/pkg/components"
	"github.com/decker502/roseday/pkg/config"
	"github.com/decker502/roseday/pkg/game"
	"github.com/decker502/roseday/pkg/systems"
	"github.com/decker502/roseday/pkg/utils"
)

var (
	// ErrInvalidTransition 当前界面不接受该操作
	ErrInvalidTransition = errors.New("invalid view transition")
	// ErrMachineClosed 状态机已关闭
	ErrMachineClosed = errors.New("view state machine closed")
)

// Trigger 界面切换的触发动作
type Trigger int

const (
	TriggerBegin         Trigger = iota // 开场界面点击开始
	TriggerChooseColor                  // 选择玫瑰颜色
	TriggerTouchRose                    // 触摸玫瑰
	TriggerChooseAnother                // 重新选择
)

func (t Trigger) String() string {
	switch t {
	case TriggerBegin:
		return "Begin"
	case TriggerChooseColor:
		return "ChooseColor"
	case TriggerTouchRose:
		return "TouchRose"
	case TriggerChooseAnother:
		return "ChooseAnother"
	default:
		return fmt.Sprintf("Trigger(%d)", int(t))
	}
}

// MusicStopper 重新选择时需要停止的背景音乐
type MusicStopper interface {
	Stop()
}

// Snapshot 渲染层需要的全部状态（只读副本）
type Snapshot struct {
	View components.ViewState

	Pending    components.RoseColor // 正在选中的颜色（高亮用）
	HasPending bool

	Committed    components.RoseColor // 已确认的颜色（主题和祝福）
	HasCommitted bool

	Wish    components.Wish
	HasWish bool
	Theme   components.Theme

	BloomStage    int
	BloomActive   bool
	BloomComplete bool
	SinceBloom    time.Duration // 绽放完成后经过的时间
	TiltX, TiltY  float64

	Trail  []components.TrailParticle
	Bursts []components.BurstParticle

	LoadingText string
	Now         time.Duration
}

// ViewStateMachine 贺卡的顶层控制器
//
// 职责：
//   - 维护当前界面 Intro → Choice → Blooming → Reveal → Choice
//   - 在切换时携带选中的颜色和祝福内容
//   - 拥有定时器、粒子发射器、绽放序列和加载文字，并在 Close 时全部取消
//
// 所有方法都在游戏循环线程上调用；时间由 Update/Advance 推进。
// 同一次操作中先发射爆发粒子，再改变界面状态。
type ViewStateMachine struct {
	timers   *systems.TimerSystem
	emitter  *systems.ParticleEmitter
	bloom    *systems.BloomSequencer
	loading  *systems.LoadingTextSystem
	resolver *game.WishResolver
	music    MusicStopper
	timings  config.Timings

	view components.ViewState

	pending    components.RoseColor
	hasPending bool

	committed    components.RoseColor
	hasCommitted bool

	wish    components.Wish
	hasWish bool

	bloomDoneAt time.Duration
	commitTask  systems.TaskID
	revealTask  systems.TaskID

	onViewChange func(from, to components.ViewState)
	onCommit     func(components.RoseColor)

	closed bool
}

// NewViewStateMachine 创建状态机，初始界面为 Intro
//
// 参数：
//   - cfg: 已通过校验的贺卡配置
//   - rng: 粒子使用的随机数来源
//
// 返回：
//   - *ViewStateMachine: 状态机
//   - error: 粒子参数非法
func NewViewStateMachine(cfg *config.CardConfig, rng systems.RandSource) (*ViewStateMachine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("view state machine requires a card config")
	}

	timers := systems.NewTimerSystem()
	emitter, err := systems.NewParticleEmitter(timers, cfg.Particles, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create particle emitter: %w", err)
	}

	m := &ViewStateMachine{
		timers:   timers,
		emitter:  emitter,
		bloom:    systems.NewBloomSequencer(timers, cfg.Timings.BloomStageDelays),
		loading:  systems.NewLoadingTextSystem(timers, cfg.Blooming.LoadingInitial, cfg.Blooming.LoadingMessages, cfg.Blooming.LoadingInterval),
		resolver: game.NewWishResolver(cfg),
		timings:  cfg.Timings,
		view:     components.ViewIntro,
	}
	m.bloom.SetOnComplete(func() {
		m.bloomDoneAt = m.timers.Now()
	})
	return m, nil
}

// SetMusic 设置重新选择时需要停止的音乐
func (m *ViewStateMachine) SetMusic(music MusicStopper) {
	m.music = music
}

// SetOnViewChange 设置界面切换回调
func (m *ViewStateMachine) SetOnViewChange(fn func(from, to components.ViewState)) {
	m.onViewChange = fn
}

// SetOnColorCommitted 设置颜色确认回调（飘落花瓣换色等）
func (m *ViewStateMachine) SetOnColorCommitted(fn func(components.RoseColor)) {
	m.onCommit = fn
}

// ApplyConfig 应用热重载的配置
// 文字和资源立即生效；节奏参数在下一次切换时生效，正在运行的定时任务保持原值
func (m *ViewStateMachine) ApplyConfig(cfg *config.CardConfig) {
	if m.closed || cfg == nil {
		return
	}
	m.resolver.SetConfig(cfg)
	m.timings = cfg.Timings
	m.bloom.SetDelays(cfg.Timings.BloomStageDelays)
	m.loading.Configure(cfg.Blooming.LoadingInitial, cfg.Blooming.LoadingMessages, cfg.Blooming.LoadingInterval)
	log.Printf("[ViewStateMachine] Config applied")
}

// View 当前界面
func (m *ViewStateMachine) View() components.ViewState {
	return m.view
}

func (m *ViewStateMachine) setView(to components.ViewState) {
	from := m.view
	m.view = to
	log.Printf("[ViewStateMachine] %s -> %s", from, to)
	if m.onViewChange != nil && from != to {
		m.onViewChange(from, to)
	}
}

func (m *ViewStateMachine) reject(trigger Trigger, reason string) error {
	if m.closed {
		return ErrMachineClosed
	}
	return fmt.Errorf("%w: %s in %s: %s", ErrInvalidTransition, trigger, m.view, reason)
}

// Begin 开场界面点击开始，进入颜色选择
func (m *ViewStateMachine) Begin(ev utils.PointerEvent) error {
	if m.closed || m.view != components.ViewIntro {
		return m.reject(TriggerBegin, "not on the intro screen")
	}
	m.emitter.Burst(ev)
	m.setView(components.ViewChoice)
	return nil
}

// ChooseColor 选择玫瑰颜色
// 立即高亮并发射粒子，ChoiceCommitDelay 之后确认颜色、生成祝福并进入绽放界面。
// 确认之前再次选择会被拒绝。
func (m *ViewStateMachine) ChooseColor(color components.RoseColor, ev utils.PointerEvent) error {
	if m.closed || m.view != components.ViewChoice {
		return m.reject(TriggerChooseColor, "not on the choice screen")
	}
	if !color.Valid() {
		return fmt.Errorf("%w: %s", components.ErrUnknownColor, color)
	}
	if m.hasPending {
		return m.reject(TriggerChooseColor, fmt.Sprintf("%s is already being chosen", m.pending))
	}

	m.emitter.Burst(ev)
	m.pending = color
	m.hasPending = true
	m.commitTask = m.timers.After(m.timings.ChoiceCommitDelay, func() {
		m.commitTask = 0
		m.commit(color)
	})
	return nil
}

// commit 定时任务：确认颜色并进入绽放界面
func (m *ViewStateMachine) commit(color components.RoseColor) {
	m.committed = color
	m.hasCommitted = true
	m.wish = m.resolver.Resolve(color)
	m.hasWish = true

	m.bloom.Reset()
	m.bloomDoneAt = 0
	m.hasPending = false

	if m.onCommit != nil {
		m.onCommit(color)
	}
	m.setView(components.ViewBlooming)
	m.loading.Start()
}

// TouchRose 触摸玫瑰开始绽放（每次进入绽放界面只接受第一次）
// RevealDelay 之后进入祝福展示界面
func (m *ViewStateMachine) TouchRose(ev utils.PointerEvent) error {
	if m.closed || m.view != components.ViewBlooming {
		return m.reject(TriggerTouchRose, "not on the blooming screen")
	}
	if m.bloom.Active() {
		return m.reject(TriggerTouchRose, "rose already touched")
	}

	m.emitter.Burst(ev)
	m.bloom.Start()
	m.loading.Stop()
	m.revealTask = m.timers.After(m.timings.RevealDelay, func() {
		m.revealTask = 0
		m.setView(components.ViewReveal)
	})
	return nil
}

// ChooseAnother 从祝福展示界面回到颜色选择，清除祝福并停止音乐
func (m *ViewStateMachine) ChooseAnother(ev utils.PointerEvent) error {
	if m.closed || m.view != components.ViewReveal {
		return m.reject(TriggerChooseAnother, "not on the reveal screen")
	}

	m.emitter.Burst(ev)
	m.wish = components.Wish{}
	m.hasWish = false
	if m.music != nil {
		m.music.Stop()
	}
	m.setView(components.ViewChoice)
	return nil
}

// Tap 任意位置点击：只发射爆发粒子
func (m *ViewStateMachine) Tap(ev utils.PointerEvent) {
	if m.closed {
		return
	}
	m.emitter.Burst(ev)
}

// PointerMove 指针移动：追加拖尾粒子
func (m *ViewStateMachine) PointerMove(ev utils.PointerEvent) {
	if m.closed {
		return
	}
	m.emitter.OnPointerMove(ev)
}

// UpdateTilt 根据指针位置更新玫瑰倾斜角度
func (m *ViewStateMachine) UpdateTilt(ev utils.PointerEvent, roseBounds utils.Rect) {
	if m.closed {
		return
	}
	m.bloom.UpdateTilt(ev, roseBounds)
}

// Update 按帧推进所有定时任务
func (m *ViewStateMachine) Update(deltaTime float64) {
	m.timers.Update(deltaTime)
}

// Advance 推进时钟 d（测试和调试工具使用）
func (m *ViewStateMachine) Advance(d time.Duration) {
	m.timers.Advance(d)
}

// Snapshot 返回当前状态的副本
func (m *ViewStateMachine) Snapshot() Snapshot {
	s := Snapshot{
		View:          m.view,
		Pending:       m.pending,
		HasPending:    m.hasPending,
		Committed:     m.committed,
		HasCommitted:  m.hasCommitted,
		Wish:          m.wish,
		HasWish:       m.hasWish,
		Theme:         components.ThemeFor(m.committed),
		BloomStage:    m.bloom.Stage(),
		BloomActive:   m.bloom.Active(),
		BloomComplete: m.bloom.Completed(),
		Trail:         m.emitter.Trail(),
		Bursts:        m.emitter.Bursts(),
		LoadingText:   m.loading.Text(),
		Now:           m.timers.Now(),
	}
	if s.BloomComplete {
		s.SinceBloom = s.Now - m.bloomDoneAt
	}
	s.TiltX, s.TiltY = m.bloom.Tilt()
	return s
}

// Bloom 返回绽放序列（渲染花瓣展开进度用）
func (m *ViewStateMachine) Bloom() *systems.BloomSequencer {
	return m.bloom
}

// PendingTasks 等待中的定时任务数
func (m *ViewStateMachine) PendingTasks() int {
	return m.timers.Pending()
}

// Close 取消所有定时任务，之后的操作返回 ErrMachineClosed
func (m *ViewStateMachine) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.emitter.Close()
	m.bloom.Close()
	m.loading.Stop()
	m.timers.Close()
	log.Printf("[ViewStateMachine] Closed")
}
