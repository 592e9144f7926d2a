package game

import (
	"errors"
	"log"
)

// ErrAudioNotReady 平台尚未允许播放音频（例如浏览器在用户交互前）
var ErrAudioNotReady = errors.New("audio context not ready")

// trackPlayer 背景音乐播放器，*audio.Player 满足该接口
type trackPlayer interface {
	Play()
	Pause()
	IsPlaying() bool
	Rewind() error
	SetVolume(volume float64)
	Close() error
}

// playbackGate 播放许可，*audio.Context 满足该接口
type playbackGate interface {
	IsReady() bool
}

// AudioController 背景音乐和悬停提示音
//
// 职责：
//   - 持有唯一一个循环播放的背景音乐，创建一次，Close 时释放
//   - Toggle 播放/暂停；只有播放器确认开始播放后才标记为播放中，
//     播放失败时记录日志并保持停止状态
//   - 悬停时播放提示音（共享的延迟初始化引擎）
//
// 偏好（音量、开关）来自 SettingsManager，可为 nil。
type AudioController struct {
	gate     playbackGate
	track    trackPlayer
	settings *SettingsManager
	hover    *HoverTone

	playing bool
}

// NewAudioController 创建音频控制器
//
// 参数：
//   - gate: 播放许可（通常是 *audio.Context），可为 nil 表示始终允许
//   - track: 背景音乐，加载失败时为 nil（Toggle 只记录日志）
//   - settings: 偏好管理器，可为 nil
//   - hover: 悬停提示音，可为 nil
func NewAudioController(gate playbackGate, track trackPlayer, settings *SettingsManager, hover *HoverTone) *AudioController {
	return &AudioController{
		gate:     gate,
		track:    track,
		settings: settings,
		hover:    hover,
	}
}

// Toggle 切换背景音乐的播放状态，返回切换后是否在播放
// 只在游戏循环线程上调用，每次调用恰好对应一次播放或暂停
func (ac *AudioController) Toggle() bool {
	if ac.track == nil {
		log.Printf("[AudioController] Warning: no music track loaded")
		ac.playing = false
		return false
	}

	if ac.Playing() {
		ac.track.Pause()
		ac.playing = false
		log.Printf("[AudioController] Music paused")
		return false
	}

	if err := ac.start(); err != nil {
		log.Printf("[AudioController] Warning: playback failed: %v", err)
		ac.playing = false
		return false
	}
	ac.playing = true
	log.Printf("[AudioController] Music playing")
	return true
}

// start 开始播放并确认播放器已经在播放
func (ac *AudioController) start() error {
	if ac.settings != nil && !ac.settings.Settings().MusicEnabled {
		return errors.New("music disabled in settings")
	}
	if ac.gate != nil && !ac.gate.IsReady() {
		return ErrAudioNotReady
	}

	ac.track.SetVolume(ac.musicVolume())
	ac.track.Play()
	if !ac.track.IsPlaying() {
		ac.track.Pause()
		return errors.New("player did not start")
	}
	return nil
}

// Stop 停止背景音乐（重新选择颜色时调用）
func (ac *AudioController) Stop() {
	if ac.track == nil {
		ac.playing = false
		return
	}
	if ac.playing || ac.track.IsPlaying() {
		ac.track.Pause()
		log.Printf("[AudioController] Music stopped")
	}
	ac.playing = false
}

// Playing 是否正在播放
// 播放器自行停止时（例如被系统中断）同步为停止状态
func (ac *AudioController) Playing() bool {
	if ac.playing && (ac.track == nil || !ac.track.IsPlaying()) {
		ac.playing = false
	}
	return ac.playing
}

// SetMusicVolume 修改并保存音乐音量，立即应用到正在播放的音乐
func (ac *AudioController) SetMusicVolume(volume float64) {
	if ac.settings != nil {
		if err := ac.settings.Update(func(s *CardSettings) { s.MusicVolume = volume }); err != nil {
			log.Printf("[AudioController] Warning: %v", err)
		}
	}
	if ac.track != nil {
		ac.track.SetVolume(ac.musicVolume())
	}
}

func (ac *AudioController) musicVolume() float64 {
	if ac.settings != nil {
		return ac.settings.Settings().MusicVolume
	}
	return DefaultSettings().MusicVolume
}

// PlayHover 播放悬停提示音
// 平台尚未允许播放等失败只记录日志
func (ac *AudioController) PlayHover() {
	if ac.hover == nil {
		return
	}
	volume := DefaultSettings().HoverVolume
	if ac.settings != nil {
		s := ac.settings.Settings()
		if !s.HoverEnabled {
			return
		}
		volume = s.HoverVolume
	}
	if err := ac.hover.Play(volume); err != nil && !errors.Is(err, ErrAudioNotReady) {
		log.Printf("[AudioController] Warning: hover tone failed: %v", err)
	}
}

// Close 停止并释放背景音乐
func (ac *AudioController) Close() {
	if ac.track == nil {
		return
	}
	ac.Stop()
	if err := ac.track.Close(); err != nil {
		log.Printf("[AudioController] Warning: failed to close track: %v", err)
	}
	ac.track = nil
}
