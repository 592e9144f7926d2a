// Package main provides a playground for the card's decorative effects:
// the pointer trail, click bursts, the staged bloom and the falling petals.
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	--config <path>   Card config YAML for particle and bloom parameters
//	--seed <n>        Random seed (0 = time based)
//	--verbose         Enable verbose logging
//
// Controls:
//
//	Mouse move        - Trail
//	Mouse click       - Burst at cursor position
//	B                 - Start the bloom (restarts after completion)
//	C                 - Cycle rose color
//	O                 - Toggle falling petal overlay
//	Q/Escape          - Quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/decker502/roseday/pkg/components"
	"github.com/decker502/roseday/pkg/config"
	"github.com/decker502/roseday/pkg/embedded"
	"github.com/decker502/roseday/pkg/systems"
	"github.com/decker502/roseday/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var (
	configFlag  = flag.String("config", config.DefaultCardConfigPath, "Card config YAML")
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 = time based)")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

// playground implements ebiten.Game
type playground struct {
	cfg     *config.CardConfig
	timers  *systems.TimerSystem
	emitter *systems.ParticleEmitter
	bloom   *systems.BloomSequencer
	overlay *systems.PetalOverlaySystem
	render  *systems.RenderSystem
	tracker utils.PointerTracker

	color       components.RoseColor
	showOverlay bool
	blooms      int
}

func newPlayground(cfg *config.CardConfig, rng systems.RandSource) (*playground, error) {
	timers := systems.NewTimerSystem()
	emitter, err := systems.NewParticleEmitter(timers, cfg.Particles, rng)
	if err != nil {
		return nil, err
	}

	p := &playground{
		cfg:         cfg,
		timers:      timers,
		emitter:     emitter,
		bloom:       systems.NewBloomSequencer(timers, cfg.Timings.BloomStageDelays),
		overlay:     systems.NewPetalOverlaySystem(cfg.Overlay.PetalCount, rng),
		render:      systems.NewRenderSystem(),
		color:       components.RoseRed,
		showOverlay: true,
	}
	p.bloom.SetOnComplete(func() {
		p.blooms++
		log.Printf("[Playground] Bloom #%d complete at %v", p.blooms, p.timers.Now())
	})
	return p, nil
}

func (p *playground) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	frame := p.tracker.Next(utils.SampleRawPointer())
	if frame.Moved {
		p.emitter.OnPointerMove(frame.Move)
		p.bloom.UpdateTilt(frame.Move, config.RoseBoxRect())
	}
	if frame.Pressed {
		p.emitter.Burst(frame.Press)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		if p.bloom.Completed() {
			p.bloom.Reset()
		}
		p.bloom.Start()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		p.color = components.AllRoseColors[(int(p.color)+1)%len(components.AllRoseColors)]
		p.overlay.Regenerate(components.ThemeFor(p.color).Petal)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		p.showOverlay = !p.showOverlay
	}

	dt := 1.0 / float64(ebiten.TPS())
	p.timers.Update(dt)
	p.overlay.Update(dt)
	return nil
}

func (p *playground) Draw(screen *ebiten.Image) {
	theme := components.ThemeFor(p.color)
	screen.Fill(theme.Background)

	if p.showOverlay {
		for _, petal := range p.overlay.Petals() {
			pose := systems.FallingPetalPose(petal, p.overlay.Elapsed(), config.ScreenWidth, config.ScreenHeight)
			p.render.DrawFallingPetal(screen, petal, pose, p.overlay.Tint())
		}
	}

	cx, cy := config.RoseBoxRect().Center()
	tiltX, tiltY := p.bloom.Tilt()
	cx += tiltY * 1.5
	cy -= tiltX * 1.5
	if p.bloom.StemVisible() {
		p.render.DrawStem(screen, cx, cy, config.RoseUnit, 1)
	}
	for _, pose := range systems.BloomPetalPoses() {
		appear := p.bloom.PetalAppearProgress(pose.Index)
		if appear > 0 {
			p.render.DrawRosePetal(screen, cx, cy, config.RoseUnit, pose, utils.EaseOutBack(appear), theme.Primary)
		}
	}

	now := p.timers.Now()
	p.render.DrawTrail(screen, p.emitter.Trail(), theme.Secondary)
	p.render.DrawBursts(screen, p.emitter.Bursts(), now.Seconds(), p.cfg.Particles.BurstLifetime)

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"TPS %.0f  t=%v\ncolor %s  overlay %v\ntrail %d  bursts %d (%d batches)\nbloom stage %d/%d active=%v completed=%v tilt=(%.1f, %.1f)\n[click] burst  [B] bloom  [C] color  [O] overlay  [Q] quit",
		ebiten.ActualTPS(), now.Truncate(time.Millisecond), p.color, p.showOverlay,
		len(p.emitter.Trail()), len(p.emitter.Bursts()), p.emitter.BatchCount(),
		p.bloom.Stage(), p.bloom.StageCount(), p.bloom.Active(), p.bloom.Completed(), tiltX, tiltY,
	))
}

func (p *playground) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	embedded.Init(os.DirFS("."))
	cfg, err := config.LoadCardConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	p, err := newPlayground(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create playground: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Rose Day - Effects Playground")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(p)
	p.emitter.Close()
	p.bloom.Close()
	p.timers.Close()
	if err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
