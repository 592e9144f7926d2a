package systems

import (
	"testing"
	"time"
)

func TestTimerSystemAfter(t *testing.T) {
	ts := NewTimerSystem()
	fired := 0
	ts.After(100*time.Millisecond, func() { fired++ })

	ts.Advance(99 * time.Millisecond)
	if fired != 0 {
		t.Fatal("task fired too early")
	}
	ts.Advance(time.Millisecond)
	if fired != 1 {
		t.Fatalf("expected task to fire once at 100ms, fired=%d", fired)
	}
	ts.Advance(time.Second)
	if fired != 1 {
		t.Error("one-shot task fired again")
	}
	if ts.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", ts.Pending())
	}
}

// TestTimerSystemOrder 同一次推进内按到期时间、再按创建顺序触发
func TestTimerSystemOrder(t *testing.T) {
	ts := NewTimerSystem()
	var order []string
	ts.After(30*time.Millisecond, func() { order = append(order, "c") })
	ts.After(10*time.Millisecond, func() { order = append(order, "a") })
	ts.After(30*time.Millisecond, func() { order = append(order, "d") })
	ts.After(20*time.Millisecond, func() { order = append(order, "b") })

	ts.Advance(time.Second)
	want := "abcd"
	got := ""
	for _, s := range order {
		got += s
	}
	if got != want {
		t.Errorf("order = %s, want %s", got, want)
	}
}

// TestTimerSystemNowDuringCallback 回调内安排的任务以到期时间为基准
func TestTimerSystemNowDuringCallback(t *testing.T) {
	ts := NewTimerSystem()
	var times []time.Duration
	var step func()
	step = func() {
		times = append(times, ts.Now())
		if len(times) < 3 {
			ts.After(50*time.Millisecond, step)
		}
	}
	ts.After(50*time.Millisecond, step)

	// 一次推进 1 秒，链式任务也必须在正确的时间点触发
	ts.Advance(time.Second)
	want := []time.Duration{50 * time.Millisecond, 100 * time.Millisecond, 150 * time.Millisecond}
	if len(times) != len(want) {
		t.Fatalf("chain fired %d times, want %d", len(times), len(want))
	}
	for i := range want {
		if times[i] != want[i] {
			t.Errorf("step %d at %v, want %v", i, times[i], want[i])
		}
	}
	if ts.Now() != time.Second {
		t.Errorf("Now = %v, want 1s", ts.Now())
	}
}

func TestTimerSystemEvery(t *testing.T) {
	ts := NewTimerSystem()
	ticks := 0
	id := ts.Every(80*time.Millisecond, func() { ticks++ })
	if id == 0 {
		t.Fatal("Every returned invalid id")
	}

	ts.Advance(400 * time.Millisecond)
	if ticks != 5 {
		t.Errorf("ticks = %d, want 5", ticks)
	}

	if !ts.Cancel(id) {
		t.Error("Cancel should report the task as pending")
	}
	ts.Advance(time.Second)
	if ticks != 5 {
		t.Error("cancelled task kept firing")
	}
	if ts.Cancel(id) {
		t.Error("second Cancel should report false")
	}

	if ts.Every(0, func() {}) != 0 {
		t.Error("Every with zero interval should be rejected")
	}
}

func TestTimerSystemUpdateSeconds(t *testing.T) {
	ts := NewTimerSystem()
	fired := false
	ts.After(time.Second/60, func() { fired = true })
	ts.Update(1.0 / 60.0)
	if !fired {
		t.Error("task due in one frame should fire after Update(1/60)")
	}
}

// TestTimerSystemCancelFromCallback 回调中取消其他任务
func TestTimerSystemCancelFromCallback(t *testing.T) {
	ts := NewTimerSystem()
	fired := false
	var victim TaskID
	ts.After(10*time.Millisecond, func() { ts.Cancel(victim) })
	victim = ts.After(20*time.Millisecond, func() { fired = true })

	ts.Advance(time.Second)
	if fired {
		t.Error("task cancelled by an earlier callback still fired")
	}
}

func TestTimerSystemClose(t *testing.T) {
	ts := NewTimerSystem()
	fired := 0
	ts.After(10*time.Millisecond, func() { fired++ })
	ts.Every(10*time.Millisecond, func() { fired++ })

	ts.Close()
	ts.Advance(time.Second)
	if fired != 0 {
		t.Errorf("closed timer fired %d callbacks", fired)
	}
	if ts.After(time.Millisecond, func() {}) != 0 {
		t.Error("closed timer should not accept new tasks")
	}
	if ts.Pending() != 0 {
		t.Error("Close should drop all tasks")
	}

	// 回调中关闭：同一次推进里的后续任务不再触发
	ts2 := NewTimerSystem()
	later := false
	ts2.After(10*time.Millisecond, ts2.Close)
	ts2.After(20*time.Millisecond, func() { later = true })
	ts2.Advance(time.Second)
	if later {
		t.Error("task after Close fired")
	}
}
