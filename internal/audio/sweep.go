// Package audio 提供程序化合成的短音效
package audio

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SweepParams 指数扫频正弦波参数
type SweepParams struct {
	StartFreq float64       // 起始频率（Hz）
	EndFreq   float64       // 结束频率（Hz）
	StartGain float64       // 起始增益
	EndGain   float64       // 结束增益
	Duration  time.Duration // 总时长
}

// DefaultHoverSweep 悬停提示音：100ms 内 440→880Hz，增益 0.05→0.01
var DefaultHoverSweep = SweepParams{
	StartFreq: 440,
	EndFreq:   880,
	StartGain: 0.05,
	EndGain:   0.01,
	Duration:  100 * time.Millisecond,
}

// sweep 频率和增益都按指数曲线变化的正弦振荡器
type sweep struct {
	p        SweepParams
	rate     beep.SampleRate
	total    int
	position int
	phase    float64
}

// NewSweep 创建扫频音源
func NewSweep(p SweepParams, rate beep.SampleRate) beep.Streamer {
	return &sweep{p: p, rate: rate, total: rate.N(p.Duration)}
}

// expRamp 从 from 指数变化到 to，t ∈ [0, 1]
// 任一端点非正时退化为线性变化
func expRamp(from, to, t float64) float64 {
	if from <= 0 || to <= 0 {
		return from + (to-from)*t
	}
	return from * math.Pow(to/from, t)
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}
		t := float64(s.position) / float64(s.total)
		freq := expRamp(s.p.StartFreq, s.p.EndFreq, t)
		gain := expRamp(s.p.StartGain, s.p.EndGain, t)

		val := math.Sin(2*math.Pi*s.phase) * gain
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// WithVolume 按线性音量缩放音源，vol <= 0 时静音
func WithVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// RenderPCM16 把音源全部渲染为 16 位小端立体声 PCM
// 音源必须是有限长度的
func RenderPCM16(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	frame := make([]byte, 4)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			binary.LittleEndian.PutUint16(frame[0:], uint16(toInt16(buf[i][0])))
			binary.LittleEndian.PutUint16(frame[2:], uint16(toInt16(buf[i][1])))
			out = append(out, frame...)
		}
		if !ok || n == 0 {
			return out
		}
	}
}

func toInt16(v float64) int16 {
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	return int16(math.Round(v * math.MaxInt16))
}

// RenderHoverTone 渲染悬停提示音
func RenderHoverTone(sampleRate int, volume float64) []byte {
	rate := beep.SampleRate(sampleRate)
	return RenderPCM16(WithVolume(NewSweep(DefaultHoverSweep, rate), volume))
}
