package utils

// Rect 轴对齐矩形（屏幕坐标，像素）
type Rect struct {
	X, Y, W, H float64
}

// Contains 判断点是否落在矩形内（左上闭、右下开）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// ContainsEvent 判断带坐标的指针事件是否落在矩形内
func (r Rect) ContainsEvent(ev PointerEvent) bool {
	return ev.HasPosition && r.Contains(ev.X, ev.Y)
}

// Center 返回矩形中心
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Inset 向内收缩 d 像素（d 为负数时向外扩展）
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// CenteredRect 以 (cx, cy) 为中心构造矩形
func CenteredRect(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}
