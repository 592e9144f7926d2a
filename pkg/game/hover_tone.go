package game

import (
	"sync"

	internalaudio "github.com/decker502/roseday/internal/audio"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// toneEngine 实际发声的引擎
type toneEngine interface {
	PlayTone(volume float64) error
}

// pcmToneEngine 预先渲染好的提示音，每次播放创建一个一次性播放器
type pcmToneEngine struct {
	ctx *audio.Context
	pcm []byte
}

func (e *pcmToneEngine) PlayTone(volume float64) error {
	if !e.ctx.IsReady() {
		return ErrAudioNotReady
	}
	p := e.ctx.NewPlayerFromBytes(e.pcm)
	p.SetVolume(volume)
	p.Play()
	return nil
}

// HoverTone 悬停提示音
// 引擎在第一次 Play 时才创建，之后一直复用
type HoverTone struct {
	once      sync.Once
	newEngine func() (toneEngine, error)
	engine    toneEngine
	err       error
}

func newHoverTone(factory func() (toneEngine, error)) *HoverTone {
	return &HoverTone{newEngine: factory}
}

// Play 以给定音量播放一次提示音
func (h *HoverTone) Play(volume float64) error {
	h.once.Do(func() {
		h.engine, h.err = h.newEngine()
	})
	if h.err != nil {
		return h.err
	}
	return h.engine.PlayTone(volume)
}

// 全局单例（进程生命周期内只合成一次）
var (
	sharedHoverTone     *HoverTone
	sharedHoverToneOnce sync.Once
)

// SharedHoverTone 返回进程内共享的悬停提示音
// 只有第一次调用传入的 ctx 生效
func SharedHoverTone(ctx *audio.Context) *HoverTone {
	sharedHoverToneOnce.Do(func() {
		sharedHoverTone = newHoverTone(func() (toneEngine, error) {
			return &pcmToneEngine{
				ctx: ctx,
				pcm: internalaudio.RenderHoverTone(ctx.SampleRate(), 1),
			}, nil
		})
	})
	return sharedHoverTone
}
