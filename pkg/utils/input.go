// Package utils 提供通用工具函数
package utils

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerEvent 归一化后的指针事件
// 鼠标和触摸统一转换为 (X, Y)；HasPosition 为 false 表示事件缺少坐标
// （例如触摸在同一帧内开始又结束），调用方应直接忽略
type PointerEvent struct {
	X, Y        float64
	HasPosition bool
}

// At 构造带坐标的指针事件
func At(x, y float64) PointerEvent {
	return PointerEvent{X: x, Y: y, HasPosition: true}
}

// RawPointer 一帧内采样到的原始输入
// 与 ebiten 解耦，便于在测试中直接构造
type RawPointer struct {
	TouchStarted     bool // 本帧有新的触摸
	TouchActive      bool // 当前有活动的触摸
	TouchHasPosition bool // 触摸仍然存在，可以读取坐标
	TouchX, TouchY   int

	MouseJustPressed bool
	MouseX, MouseY   int
}

// SampleRawPointer 从 ebiten 读取当前帧的原始输入
// 只能在 Update 中调用
func SampleRawPointer() RawPointer {
	raw := RawPointer{}

	active := ebiten.AppendTouchIDs(nil)
	justPressed := inpututil.AppendJustPressedTouchIDs(nil)

	if len(justPressed) > 0 {
		raw.TouchStarted = true
		id := justPressed[0]
		if slices.Contains(active, id) {
			raw.TouchX, raw.TouchY = ebiten.TouchPosition(id)
			raw.TouchHasPosition = true
		}
	} else if len(active) > 0 {
		raw.TouchX, raw.TouchY = ebiten.TouchPosition(active[0])
		raw.TouchHasPosition = true
	}
	raw.TouchActive = len(active) > 0

	raw.MouseJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	raw.MouseX, raw.MouseY = ebiten.CursorPosition()
	return raw
}

// PointerFrame 一帧内的归一化输入
type PointerFrame struct {
	Moved   bool         // 指针位置相对上一帧发生变化
	Move    PointerEvent // 移动后的位置
	Pressed bool         // 本帧发生点击或触摸开始
	Press   PointerEvent // 点击位置（可能缺少坐标）
	Hover   PointerEvent // 当前指针位置（用于悬停检测）
}

// PointerTracker 记住上一帧的位置，把原始输入转换为移动/点击事件
type PointerTracker struct {
	lastX, lastY int
	hasLast      bool

	// 移动端没有光标，CursorPosition 一直停在 (0,0)。
	// 触摸结束后忽略光标位置，直到鼠标真正移动或点击。
	touching     bool
	mouseIdle    bool
	idleX, idleY int
}

// Next 根据原始输入生成本帧的 PointerFrame
// 触摸优先于鼠标（与移动端行为一致）；手指抬起的那一帧没有位置
func (pt *PointerTracker) Next(raw RawPointer) PointerFrame {
	frame := PointerFrame{}

	touch := raw.TouchStarted || raw.TouchActive
	if !touch && pt.touching {
		pt.mouseIdle = true
		pt.idleX, pt.idleY = raw.MouseX, raw.MouseY
	} else if pt.mouseIdle && (raw.MouseJustPressed || raw.MouseX != pt.idleX || raw.MouseY != pt.idleY) {
		pt.mouseIdle = false
	}
	pt.touching = touch

	var x, y int
	hasPos := false
	switch {
	case touch:
		if raw.TouchHasPosition {
			x, y, hasPos = raw.TouchX, raw.TouchY, true
		}
	case !pt.mouseIdle:
		x, y, hasPos = raw.MouseX, raw.MouseY, true
	}

	if raw.TouchStarted {
		frame.Pressed = true
		if hasPos {
			frame.Press = At(float64(x), float64(y))
		}
	} else if raw.MouseJustPressed && !pt.mouseIdle {
		frame.Pressed = true
		frame.Press = At(float64(raw.MouseX), float64(raw.MouseY))
	}

	if hasPos {
		frame.Hover = At(float64(x), float64(y))
		if !pt.hasLast || x != pt.lastX || y != pt.lastY {
			// 第一帧只记录位置，不视为移动
			if pt.hasLast {
				frame.Moved = true
				frame.Move = frame.Hover
			}
			pt.lastX, pt.lastY = x, y
			pt.hasLast = true
		}
	}
	return frame
}
