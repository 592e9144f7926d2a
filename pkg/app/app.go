// Package app 提供贺卡应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/roseday/pkg/config"
	"github.com/decker502/roseday/pkg/game"
	"github.com/decker502/roseday/pkg/scenes"
	"github.com/decker502/roseday/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// SampleRate 音频上下文的采样率
const SampleRate = 48000

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 贺卡配置文件，为空时使用内嵌的 data/card.yaml
	ConfigPath string
	// Watch 监听 ConfigPath 并在修改后热重载（仅磁盘文件）
	Watch bool
	// Fullscreen 以全屏启动（也可以通过保存的偏好开启）
	Fullscreen bool
}

// App 是贺卡应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	resources    *game.ResourceManager
	audio        *game.AudioController
	settings     *game.SettingsManager
	watcher      *config.CardConfigWatcher
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
	closed                   bool
}

// NewApp 创建并初始化贺卡应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 只有配置加载失败是致命错误；音乐、图片缺失或偏好存储不可用都会降级运行。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	cardCfg, err := config.LoadCardConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("贺卡配置加载失败: %w", err)
	}
	log.Printf("[App] Card for %s loaded", cardCfg.Recipient)

	// 初始化音频上下文
	audioContext := audio.NewContext(SampleRate)
	resourceManager := game.NewResourceManager(audioContext)
	settings := game.NewSettingsManager(game.OpenSettingsStore())
	hover := game.SharedHoverTone(audioContext)

	var audioController *game.AudioController
	if player, err := resourceManager.LoadMusic(cardCfg.Assets.Music); err != nil {
		log.Printf("[App] Warning: music unavailable: %v", err)
		audioController = game.NewAudioController(audioContext, nil, settings, hover)
	} else {
		audioController = game.NewAudioController(audioContext, player, settings, hover)
	}
	log.Printf("[App] AudioController initialized")

	var watcher *config.CardConfigWatcher
	if cfg.Watch {
		if cfg.ConfigPath == "" {
			log.Printf("[App] Warning: -watch needs -config, hot reload disabled")
		} else if watcher, err = config.WatchCardConfig(cfg.ConfigPath); err != nil {
			log.Printf("[App] Warning: %v (hot reload disabled)", err)
			watcher = nil
		}
	}

	cardScene, err := scenes.NewCardScene(scenes.CardSceneOptions{
		Config:    cardCfg,
		Resources: resourceManager,
		Audio:     audioController,
		Watcher:   watcher,
		Rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
	})
	if err != nil {
		audioController.Close()
		if watcher != nil {
			watcher.Close()
		}
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(cardScene)

	if cfg.Fullscreen || settings.Settings().Fullscreen {
		ebiten.SetFullscreen(true)
	}
	// 场景自己绘制爱心光标
	if !utils.IsMobile() {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}

	return &App{
		sceneManager: sceneManager,
		resources:    resourceManager,
		audio:        audioController,
		settings:     settings,
		watcher:      watcher,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.ScreenWidth, config.ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏，并记住选择
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	if fullscreen {
		ebiten.SetFullscreen(true)
	} else {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	}

	if err := a.settings.Update(func(s *game.CardSettings) { s.Fullscreen = fullscreen }); err != nil {
		log.Printf("[App] Warning: failed to save fullscreen preference: %v", err)
	}
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

// Close 关闭场景（取消所有定时任务）、释放音乐并停止配置监听
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.sceneManager.Shutdown()
	a.audio.Close()
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			log.Printf("[App] Warning: failed to stop config watcher: %v", err)
		}
	}
	log.Printf("[App] Closed")
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
