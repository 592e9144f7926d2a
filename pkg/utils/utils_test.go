package utils

import (
	"math"
	"testing"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 50}

	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},
		{109.9, 69.9, true},
		{110, 30, false},
		{50, 70, false},
		{9.9, 30, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	if r.ContainsEvent(PointerEvent{X: 50, Y: 30}) {
		t.Error("event without position must never hit")
	}
	if !r.ContainsEvent(At(50, 30)) {
		t.Error("At(50,30) should hit")
	}

	cx, cy := r.Center()
	if cx != 60 || cy != 45 {
		t.Errorf("Center = (%v, %v), want (60, 45)", cx, cy)
	}
	if got := CenteredRect(60, 45, 100, 50); got != r {
		t.Errorf("CenteredRect = %+v, want %+v", got, r)
	}
}

func TestEasing(t *testing.T) {
	if EaseOutBack(0) != 0 {
		t.Errorf("EaseOutBack(0) = %v", EaseOutBack(0))
	}
	if math.Abs(EaseOutBack(1)-1) > 1e-9 {
		t.Errorf("EaseOutBack(1) = %v", EaseOutBack(1))
	}
	// 回弹：中段会超过 1
	overshoot := false
	for i := 1; i < 100; i++ {
		if EaseOutBack(float64(i)/100) > 1 {
			overshoot = true
		}
	}
	if !overshoot {
		t.Error("EaseOutBack should overshoot")
	}

	if EaseOutQuad(2) != 1 || EaseOutQuad(-1) != 0 {
		t.Error("EaseOutQuad should clamp its input")
	}
	if Progress(0.5, 0, 1) != 0.5 || Progress(3, 1, 0) != 1 || Progress(0, 1, 0) != 0 {
		t.Error("Progress returned unexpected values")
	}
	if Pulse(0, 2) != 0 || math.Abs(Pulse(1, 2)-1) > 1e-9 {
		t.Error("Pulse should start at 0 and peak at half period")
	}
}

func TestWrapText(t *testing.T) {
	// 每个字符 10 像素宽
	measure := func(s string) float64 { return float64(len(s)) * 10 }

	lines := WrapText("you are always in my heart", 100, measure)
	for _, l := range lines {
		if measure(l) > 100 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	want := []string{"you are", "always in", "my heart"}
	if len(lines) != len(want) {
		t.Fatalf("WrapText = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	if WrapText("   ", 100, measure) != nil {
		t.Error("blank input should produce no lines")
	}
	long := WrapText("supercalifragilistic ok", 50, measure)
	if long[0] != "supercalifragilistic" {
		t.Errorf("long word should stay intact, got %q", long)
	}
}

func TestPointerTrackerMouse(t *testing.T) {
	var pt PointerTracker

	// 第一帧只记录位置
	f := pt.Next(RawPointer{MouseX: 10, MouseY: 10})
	if f.Moved || f.Pressed {
		t.Fatalf("first frame should be idle, got %+v", f)
	}
	if !f.Hover.HasPosition {
		t.Error("hover should carry the cursor position")
	}

	f = pt.Next(RawPointer{MouseX: 15, MouseY: 12})
	if !f.Moved || f.Move.X != 15 || f.Move.Y != 12 {
		t.Errorf("expected move to (15,12), got %+v", f)
	}

	f = pt.Next(RawPointer{MouseX: 15, MouseY: 12, MouseJustPressed: true})
	if f.Moved {
		t.Error("unchanged position should not be reported as a move")
	}
	if !f.Pressed || !f.Press.HasPosition || f.Press.X != 15 {
		t.Errorf("expected press at 15, got %+v", f)
	}
}

func TestPointerTrackerTouch(t *testing.T) {
	var pt PointerTracker
	pt.Next(RawPointer{MouseX: 0, MouseY: 0})

	f := pt.Next(RawPointer{TouchStarted: true, TouchActive: true, TouchHasPosition: true, TouchX: 40, TouchY: 60})
	if !f.Pressed || f.Press.X != 40 || f.Press.Y != 60 {
		t.Errorf("touch start should press at (40,60), got %+v", f)
	}
	if !f.Moved {
		t.Error("touch at a new position should count as a move")
	}

	// 触摸开始但已经没有坐标
	f = pt.Next(RawPointer{TouchStarted: true})
	if !f.Pressed {
		t.Error("touch start should still be reported")
	}
	if f.Press.HasPosition || f.Moved {
		t.Errorf("missing coordinates should yield an empty event, got %+v", f)
	}
}

// TestPointerTrackerTouchRelease 手指抬起后光标停在 (0,0)，不能当作移动
func TestPointerTrackerTouchRelease(t *testing.T) {
	var pt PointerTracker
	pt.Next(RawPointer{TouchStarted: true, TouchActive: true, TouchHasPosition: true, TouchX: 300, TouchY: 400})
	f := pt.Next(RawPointer{TouchActive: true, TouchHasPosition: true, TouchX: 310, TouchY: 410})
	if !f.Moved || f.Move.X != 310 || f.Move.Y != 410 {
		t.Fatalf("touch drag should move to (310,410), got %+v", f)
	}

	// 抬起的那一帧以及之后的空闲帧都没有位置
	for i := 0; i < 3; i++ {
		f = pt.Next(RawPointer{})
		if f.Moved || f.Pressed || f.Hover.HasPosition {
			t.Fatalf("idle frame %d after release should be empty, got %+v", i, f)
		}
	}

	// 下一次触摸从抬起前的位置继续比较
	f = pt.Next(RawPointer{TouchStarted: true, TouchActive: true, TouchHasPosition: true, TouchX: 310, TouchY: 410})
	if !f.Pressed || f.Moved {
		t.Errorf("touch at the previous position should press without moving, got %+v", f)
	}
	pt.Next(RawPointer{})

	// 鼠标真正移动后恢复使用光标位置
	f = pt.Next(RawPointer{MouseX: 20, MouseY: 30})
	if !f.Moved || f.Move.X != 20 || f.Move.Y != 30 {
		t.Errorf("real mouse movement should be tracked again, got %+v", f)
	}
}

// TestPointerTrackerClickAfterTouch 触摸结束后原地点击鼠标仍然有效
func TestPointerTrackerClickAfterTouch(t *testing.T) {
	var pt PointerTracker
	pt.Next(RawPointer{TouchStarted: true, TouchActive: true, TouchHasPosition: true, TouchX: 50, TouchY: 50})
	pt.Next(RawPointer{MouseX: 5, MouseY: 5})

	f := pt.Next(RawPointer{MouseX: 5, MouseY: 5, MouseJustPressed: true})
	if !f.Pressed || !f.Press.HasPosition || f.Press.X != 5 || f.Press.Y != 5 {
		t.Errorf("mouse click should press at (5,5), got %+v", f)
	}
}
