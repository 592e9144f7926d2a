package audio

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestExpRamp(t *testing.T) {
	tests := []struct {
		from, to, t, want float64
	}{
		{440, 880, 0, 440},
		{440, 880, 1, 880},
		{440, 880, 0.5, 440 * math.Sqrt2},
		{0.05, 0.01, 1, 0.01},
		{0, 1, 0.5, 0.5}, // 非正端点退化为线性
	}
	for _, tt := range tests {
		if got := expRamp(tt.from, tt.to, tt.t); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("expRamp(%v, %v, %v) = %v, want %v", tt.from, tt.to, tt.t, got, tt.want)
		}
	}
}

// TestSweepLengthAndGain 100ms @ 48kHz 正好 4800 帧，振幅不超过起始增益
func TestSweepLengthAndGain(t *testing.T) {
	rate := beep.SampleRate(48000)
	s := NewSweep(DefaultHoverSweep, rate)

	total := 0
	peak := 0.0
	buf := make([][2]float64, 1000)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] != buf[i][1] {
				t.Fatal("channels should be identical")
			}
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			break
		}
	}

	if total != 4800 {
		t.Errorf("sweep produced %d frames, want 4800", total)
	}
	if peak > DefaultHoverSweep.StartGain+1e-9 {
		t.Errorf("peak %v exceeds start gain", peak)
	}
	if peak < DefaultHoverSweep.EndGain {
		t.Errorf("peak %v is suspiciously quiet", peak)
	}
	if s.Err() != nil {
		t.Errorf("Err() = %v", s.Err())
	}
}

func TestRenderPCM16(t *testing.T) {
	p := SweepParams{StartFreq: 1000, EndFreq: 1000, StartGain: 1, EndGain: 1, Duration: 10 * time.Millisecond}
	data := RenderPCM16(NewSweep(p, beep.SampleRate(8000)))

	// 80 帧 × 2 声道 × 2 字节
	if len(data) != 320 {
		t.Fatalf("len = %d, want 320", len(data))
	}
	first := int16(binary.LittleEndian.Uint16(data[0:]))
	if first != 0 {
		t.Errorf("sine should start at 0, got %d", first)
	}
	// 1kHz @ 8kHz：第 2 帧是 sin(π/2) = 1
	peak := int16(binary.LittleEndian.Uint16(data[2*4:]))
	if peak != math.MaxInt16 {
		t.Errorf("frame 2 = %d, want %d", peak, math.MaxInt16)
	}
}

func TestRenderHoverToneVolume(t *testing.T) {
	full := RenderHoverTone(48000, 1)
	silent := RenderHoverTone(48000, 0)
	if len(full) != len(silent) || len(full) != 4800*4 {
		t.Fatalf("unexpected lengths %d / %d", len(full), len(silent))
	}
	for i, b := range silent {
		if b != 0 {
			t.Fatalf("muted tone has non-zero byte at %d", i)
		}
	}
}
