package systems

import (
	"math/rand"
	"testing"
	"time"

	"github.com/decker502/roseday/pkg/components"
)

func TestPetalOverlayRegenerate(t *testing.T) {
	s := NewPetalOverlaySystem(35, rand.New(rand.NewSource(1)))
	if len(s.Petals()) != 35 {
		t.Fatalf("expected 35 petals, got %d", len(s.Petals()))
	}
	if s.Tint() != components.DefaultPetalColor {
		t.Errorf("initial tint = %v, want default", s.Tint())
	}

	for _, p := range s.Petals() {
		if p.Left < 0 || p.Left >= 100 {
			t.Errorf("left %v out of range", p.Left)
		}
		if p.Delay < 0 || p.Delay >= 10 {
			t.Errorf("delay %v out of range", p.Delay)
		}
		if p.Duration < 6 || p.Duration >= 16 {
			t.Errorf("duration %v out of range", p.Duration)
		}
		if p.Size < 12 || p.Size >= 30 {
			t.Errorf("size %v out of range", p.Size)
		}
	}

	first := s.Petals()[0]
	blue := components.ThemeFor(components.RoseBlue).Petal
	s.Regenerate(blue)
	if s.Tint() != blue {
		t.Error("Regenerate should apply the new tint")
	}
	if s.Petals()[0] == first {
		t.Error("Regenerate should produce a new layout")
	}

	s.SetCount(5)
	s.Regenerate(blue)
	if len(s.Petals()) != 5 {
		t.Errorf("SetCount not applied, got %d", len(s.Petals()))
	}
}

func TestFallingPetalPose(t *testing.T) {
	p := components.FallingPetal{Left: 50, Delay: 2, Duration: 10, Size: 20}

	if FallingPetalPose(p, 1, 1000, 800).Visible {
		t.Error("petal should be hidden before its delay")
	}

	start := FallingPetalPose(p, 2, 1000, 800)
	if !start.Visible || start.Y != -20 || start.X != 500 {
		t.Errorf("start pose = %+v", start)
	}

	half := FallingPetalPose(p, 7, 1000, 800)
	if half.Y != 400 {
		t.Errorf("half-way Y = %v, want 400", half.Y)
	}

	// 一个周期后回到顶部
	again := FallingPetalPose(p, 12, 1000, 800)
	if again.Y != -20 {
		t.Errorf("petal should loop to the top, Y = %v", again.Y)
	}
}

func TestLoadingTextRotation(t *testing.T) {
	ts := NewTimerSystem()
	msgs := []string{"one", "two", "three"}
	s := NewLoadingTextSystem(ts, "init", msgs, time.Second)

	s.Start()
	if s.Text() != "init" || !s.Running() {
		t.Fatalf("after Start text=%q running=%v", s.Text(), s.Running())
	}

	for _, want := range msgs {
		ts.Advance(time.Second)
		if s.Text() != want {
			t.Fatalf("text = %q, want %q", s.Text(), want)
		}
	}
	if s.Running() {
		t.Error("rotation should stop after the last message")
	}
	ts.Advance(10 * time.Second)
	if s.Text() != "three" {
		t.Errorf("text changed after stopping: %q", s.Text())
	}
	if ts.Pending() != 0 {
		t.Errorf("pending tasks = %d", ts.Pending())
	}

	// 重新开始时计数器归零
	s.Start()
	if s.Text() != "init" {
		t.Errorf("restart should show the initial text, got %q", s.Text())
	}
	ts.Advance(time.Second)
	if s.Text() != "one" {
		t.Errorf("restart should begin from the first message, got %q", s.Text())
	}
	s.Stop()
	ts.Advance(5 * time.Second)
	if s.Text() != "one" {
		t.Error("Stop should freeze the text")
	}
}
