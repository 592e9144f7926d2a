package game

import (
	"errors"
	"testing"
)

// mockTrack 记录播放器调用
type mockTrack struct {
	playing bool
	refuse  bool // 模拟平台拒绝播放
	plays   int
	pauses  int
	volume  float64
	closed  bool
}

func (m *mockTrack) Play() {
	m.plays++
	if !m.refuse {
		m.playing = true
	}
}
func (m *mockTrack) Pause()                   { m.pauses++; m.playing = false }
func (m *mockTrack) IsPlaying() bool          { return m.playing }
func (m *mockTrack) Rewind() error            { return nil }
func (m *mockTrack) SetVolume(volume float64) { m.volume = volume }
func (m *mockTrack) Close() error             { m.closed = true; return nil }

type mockGate struct{ ready bool }

func (g mockGate) IsReady() bool { return g.ready }

func TestToggleStartsAndPauses(t *testing.T) {
	track := &mockTrack{}
	ac := NewAudioController(mockGate{ready: true}, track, nil, nil)

	if !ac.Toggle() || !ac.Playing() {
		t.Fatal("first toggle should start playback")
	}
	if track.plays != 1 || track.volume != 0.7 {
		t.Errorf("plays=%d volume=%v", track.plays, track.volume)
	}

	if ac.Toggle() || ac.Playing() {
		t.Fatal("second toggle should pause")
	}
	if track.pauses != 1 || track.playing {
		t.Errorf("pauses=%d playing=%v", track.pauses, track.playing)
	}
}

// TestToggleNeverClaimsPlayingWhileSilent 播放被拒绝时保持停止
func TestToggleNeverClaimsPlayingWhileSilent(t *testing.T) {
	tests := []struct {
		name  string
		gate  playbackGate
		track *mockTrack
		sm    func() *SettingsManager
	}{
		{"gate not ready", mockGate{ready: false}, &mockTrack{}, func() *SettingsManager { return nil }},
		{"player refuses", mockGate{ready: true}, &mockTrack{refuse: true}, func() *SettingsManager { return nil }},
		{"music disabled", nil, &mockTrack{}, func() *SettingsManager {
			sm := NewSettingsManager(nil)
			sm.Update(func(s *CardSettings) { s.MusicEnabled = false })
			return sm
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ac := NewAudioController(tt.gate, tt.track, tt.sm(), nil)
			if ac.Toggle() {
				t.Error("Toggle reported playing")
			}
			if ac.Playing() || tt.track.playing {
				t.Error("controller or track claims playback")
			}
		})
	}
}

func TestToggleWithoutTrack(t *testing.T) {
	ac := NewAudioController(nil, nil, nil, nil)
	if ac.Toggle() || ac.Playing() {
		t.Error("missing track should stay stopped")
	}
	ac.Stop()
	ac.Close()
}

// TestRapidToggles 连续切换时播放和暂停严格交替
func TestRapidToggles(t *testing.T) {
	track := &mockTrack{}
	ac := NewAudioController(nil, track, nil, nil)

	want := []bool{true, false, true, false}
	for i, w := range want {
		if got := ac.Toggle(); got != w {
			t.Fatalf("toggle #%d = %v, want %v", i+1, got, w)
		}
		if track.playing != w {
			t.Fatalf("toggle #%d left track playing=%v", i+1, track.playing)
		}
	}
	if track.plays != 2 || track.pauses != 2 {
		t.Errorf("plays=%d pauses=%d, want 2/2", track.plays, track.pauses)
	}
}

func TestPlayingSyncsWithTrack(t *testing.T) {
	track := &mockTrack{}
	ac := NewAudioController(nil, track, nil, nil)
	ac.Toggle()

	// 播放器被外部中断
	track.playing = false
	if ac.Playing() {
		t.Error("Playing should follow the track")
	}
	if !ac.Toggle() {
		t.Error("toggle after interruption should start again")
	}
}

func TestStopAndClose(t *testing.T) {
	track := &mockTrack{}
	ac := NewAudioController(nil, track, nil, nil)
	ac.Toggle()

	ac.Stop()
	if ac.Playing() || track.playing {
		t.Error("Stop should pause playback")
	}
	pauses := track.pauses
	ac.Stop()
	if track.pauses != pauses {
		t.Error("Stop on a stopped track should not pause again")
	}

	ac.Close()
	if !track.closed {
		t.Error("Close should release the track")
	}
	if ac.Toggle() {
		t.Error("closed controller should not play")
	}
}

func TestSetMusicVolume(t *testing.T) {
	track := &mockTrack{}
	sm := NewSettingsManager(nil)
	ac := NewAudioController(nil, track, sm, nil)

	ac.SetMusicVolume(0.3)
	if track.volume != 0.3 || sm.Settings().MusicVolume != 0.3 {
		t.Errorf("volume track=%v settings=%v", track.volume, sm.Settings().MusicVolume)
	}
	ac.SetMusicVolume(4)
	if track.volume != 1 {
		t.Errorf("volume should be clamped, got %v", track.volume)
	}
}

// mockEngine 计数的提示音引擎
type mockEngine struct {
	played  int
	volumes []float64
	err     error
}

func (e *mockEngine) PlayTone(volume float64) error {
	e.played++
	e.volumes = append(e.volumes, volume)
	return e.err
}

// TestHoverToneLazySingleton 引擎在第一次使用时创建且只创建一次
func TestHoverToneLazySingleton(t *testing.T) {
	created := 0
	engine := &mockEngine{}
	tone := newHoverTone(func() (toneEngine, error) {
		created++
		return engine, nil
	})
	if created != 0 {
		t.Fatal("engine must not be created before first use")
	}

	sm := NewSettingsManager(nil)
	sm.Update(func(s *CardSettings) { s.HoverVolume = 0.5 })
	ac := NewAudioController(nil, nil, sm, tone)
	for i := 0; i < 3; i++ {
		ac.PlayHover()
	}
	if created != 1 || engine.played != 3 {
		t.Errorf("created=%d played=%d", created, engine.played)
	}
	if engine.volumes[0] != 0.5 {
		t.Errorf("hover volume = %v", engine.volumes[0])
	}

	sm.Update(func(s *CardSettings) { s.HoverEnabled = false })
	ac.PlayHover()
	if engine.played != 3 {
		t.Error("disabled hover tone should not play")
	}
}

func TestHoverToneEngineFailure(t *testing.T) {
	boom := errors.New("no device")
	created := 0
	tone := newHoverTone(func() (toneEngine, error) {
		created++
		return nil, boom
	})
	if err := tone.Play(1); !errors.Is(err, boom) {
		t.Errorf("Play = %v, want %v", err, boom)
	}
	if err := tone.Play(1); !errors.Is(err, boom) {
		t.Errorf("second Play = %v", err)
	}
	if created != 1 {
		t.Errorf("failed engine should not be rebuilt, created=%d", created)
	}
}
