package scenes

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/roseday/pkg/components"
	"github.com/decker502/roseday/pkg/config"
	"github.com/decker502/roseday/pkg/game"
	"github.com/decker502/roseday/pkg/modules"
	"github.com/decker502/roseday/pkg/systems"
	"github.com/decker502/roseday/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// CardSceneOptions 创建贺卡场景所需的依赖
type CardSceneOptions struct {
	Config    *config.CardConfig        // 已通过校验的贺卡配置
	Resources *game.ResourceManager     // 图片和字体，测试中可为 nil
	Audio     *game.AudioController     // 背景音乐，测试中可为 nil
	Watcher   *config.CardConfigWatcher // -watch 时的配置监听，可为 nil
	Rand      systems.RandSource        // 粒子和飘落花瓣的随机数
	Input     func() utils.RawPointer   // 输入采样，默认 utils.SampleRawPointer
}

// CardScene 贺卡的唯一场景
//
// 每帧 Update 的顺序：
//  1. 接收热重载的配置和后台加载完成的图片
//  2. 采样指针，移动时追加拖尾并更新玫瑰倾斜
//  3. 悬停到新按钮时播放提示音
//  4. 点击分发到命中的按钮，没有命中时只发射爆发粒子
//  5. 推进状态机的定时任务和飘落花瓣
type CardScene struct {
	cfg       *config.CardConfig
	resources *game.ResourceManager
	audio     *game.AudioController
	watcher   *config.CardConfigWatcher
	input     func() utils.RawPointer

	vsm     *modules.ViewStateMachine
	overlay *systems.PetalOverlaySystem
	render  *systems.RenderSystem
	tracker utils.PointerTracker

	choiceColors []components.RoseColor
	hover        HitTarget // 指针下的按钮，Kind 为 HitNone 表示没有
	cursor       utils.PointerEvent
	touch        bool // 触屏设备：不绘制光标，不播放悬停音效

	// 动画时钟（秒）
	elapsed   float64
	viewSince float64

	titleFace *text.GoTextFace
	bodyFace  *text.GoTextFace
	smallFace *text.GoTextFace
}

// NewCardScene 创建贺卡场景，初始界面为 Intro
func NewCardScene(opts CardSceneOptions) (*CardScene, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("card scene requires a config")
	}
	if opts.Rand == nil {
		return nil, fmt.Errorf("card scene requires a random source")
	}

	vsm, err := modules.NewViewStateMachine(opts.Config, opts.Rand)
	if err != nil {
		return nil, fmt.Errorf("failed to create view state machine: %w", err)
	}

	s := &CardScene{
		cfg:          opts.Config,
		resources:    opts.Resources,
		audio:        opts.Audio,
		watcher:      opts.Watcher,
		input:        opts.Input,
		vsm:          vsm,
		overlay:      systems.NewPetalOverlaySystem(opts.Config.Overlay.PetalCount, opts.Rand),
		render:       systems.NewRenderSystem(),
		choiceColors: opts.Config.ChoiceColors(),
		touch:        utils.IsMobile(),
	}
	if s.input == nil {
		s.input = utils.SampleRawPointer
	}

	// 避免把 nil *AudioController 包装成非 nil 接口
	if s.audio != nil {
		vsm.SetMusic(s.audio)
	}
	vsm.SetOnViewChange(s.onViewChange)
	vsm.SetOnColorCommitted(s.onColorCommitted)

	s.loadFonts()
	log.Printf("[CardScene] Created with %d color options", len(s.choiceColors))
	return s, nil
}

func (s *CardScene) loadFonts() {
	if s.resources == nil {
		return
	}
	faces := []struct {
		dst  **text.GoTextFace
		size float64
	}{
		{&s.titleFace, 72},
		{&s.bodyFace, 30},
		{&s.smallFace, 16},
	}
	for _, f := range faces {
		face, err := s.resources.DefaultFace(f.size)
		if err != nil {
			log.Printf("[CardScene] Warning: font unavailable: %v", err)
			continue
		}
		*f.dst = face
	}
}

func (s *CardScene) onViewChange(from, to components.ViewState) {
	s.viewSince = s.elapsed
	s.hover = HitTarget{}
}

// onColorCommitted 颜色确认后：飘落花瓣换色，并开始在后台加载祝福图片
func (s *CardScene) onColorCommitted(c components.RoseColor) {
	s.overlay.Regenerate(components.ThemeFor(c).Petal)
	if s.resources != nil {
		s.resources.RequestImage(s.cfg.ImageRef(c))
	}
}

// applyConfig 应用热重载的配置
func (s *CardScene) applyConfig(cfg *config.CardConfig) {
	s.cfg = cfg
	s.choiceColors = cfg.ChoiceColors()
	s.vsm.ApplyConfig(cfg)
	s.overlay.SetCount(cfg.Overlay.PetalCount)

	snap := s.vsm.Snapshot()
	if snap.HasWish && s.resources != nil {
		ref := cfg.ImageRef(snap.Committed)
		s.resources.RetryImage(ref)
		s.resources.RequestImage(ref)
	}
	log.Printf("[CardScene] Reloaded config for %s", cfg.Recipient)
}

// Update 推进一帧
func (s *CardScene) Update(deltaTime float64) {
	if s.watcher != nil {
		if cfg, ok := s.watcher.Poll(); ok {
			s.applyConfig(cfg)
		}
	}
	if s.resources != nil {
		s.resources.PollImages()
	}

	s.handleInput(s.tracker.Next(s.input()))

	s.vsm.Update(deltaTime)
	s.overlay.Update(deltaTime)
	s.elapsed += deltaTime
}

// handleInput 处理一帧的指针输入
func (s *CardScene) handleInput(frame utils.PointerFrame) {
	if frame.Moved {
		s.vsm.PointerMove(frame.Move)
		if s.vsm.View() == components.ViewBlooming {
			s.vsm.UpdateTilt(frame.Move, config.RoseBoxRect())
		}
	}

	if frame.Hover.HasPosition {
		s.cursor = frame.Hover
		s.updateHover(frame.Hover)
	}

	if frame.Pressed {
		s.handlePress(frame.Press)
	}
}

// updateHover 指针移到新的按钮上时播放一次提示音
func (s *CardScene) updateHover(ev utils.PointerEvent) {
	hit, _ := HitTest(HitTargets(s.vsm.View(), s.choiceColors), ev)
	if hit == s.hover {
		return
	}
	s.hover = hit
	if hoverable(hit.Kind) && s.audio != nil && !s.touch {
		s.audio.PlayHover()
	}
}

// handlePress 把点击分发给命中的按钮
// 每次点击都会产生一批爆发粒子；被状态机拒绝的点击同样只发射粒子
func (s *CardScene) handlePress(ev utils.PointerEvent) {
	hit, ok := HitTest(HitTargets(s.vsm.View(), s.choiceColors), ev)
	if !ok {
		s.vsm.Tap(ev)
		return
	}

	var err error
	switch hit.Kind {
	case HitBegin:
		err = s.vsm.Begin(ev)
	case HitColor:
		err = s.vsm.ChooseColor(hit.Color, ev)
	case HitRose:
		err = s.vsm.TouchRose(ev)
	case HitChooseAnother:
		err = s.vsm.ChooseAnother(ev)
	case HitMusic:
		s.vsm.Tap(ev)
		if s.audio != nil {
			s.audio.Toggle()
		}
	}

	if err != nil {
		if !errors.Is(err, modules.ErrInvalidTransition) {
			log.Printf("[CardScene] Warning: %s: %v", hit.Kind, err)
		}
		s.vsm.Tap(ev)
	}
}

// Snapshot 当前的状态快照（调试工具使用）
func (s *CardScene) Snapshot() modules.Snapshot {
	return s.vsm.Snapshot()
}

// Close 取消所有定时任务
func (s *CardScene) Close() {
	s.vsm.Close()
	log.Printf("[CardScene] Closed")
}

// Draw 绘制当前界面
func (s *CardScene) Draw(screen *ebiten.Image) {
	snap := s.vsm.Snapshot()

	screen.Fill(backgroundColor(snap))
	s.drawOverlay(screen)

	switch snap.View {
	case components.ViewIntro:
		s.drawIntro(screen)
	case components.ViewChoice:
		s.drawChoice(screen, snap)
	case components.ViewBlooming:
		s.drawBlooming(screen, snap)
	case components.ViewReveal:
		s.drawReveal(screen, snap)
	}

	if snap.View != components.ViewIntro {
		s.drawMusicButton(screen, snap)
	}

	s.render.DrawTrail(screen, snap.Trail, trailColor)
	s.render.DrawBursts(screen, snap.Bursts, snap.Now.Seconds(), s.cfg.Particles.BurstLifetime)
	s.drawCursor(screen)
}

var _ game.Scene = (*CardScene)(nil)
var _ game.Disposable = (*CardScene)(nil)
