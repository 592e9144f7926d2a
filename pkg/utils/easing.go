package utils

import "math"

// 缓动函数
// 输入进度 t ∈ [0, 1]，超出范围的值先被截断

// Clamp01 将 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// EaseOutQuad 二次方缓出
func EaseOutQuad(t float64) float64 {
	t = Clamp01(t)
	return 1 - (1-t)*(1-t)
}

// EaseOutBack 带轻微回弹的缓出（花瓣展开时使用）
// 公式：1 + c3(t-1)³ + c1(t-1)²
func EaseOutBack(t float64) float64 {
	t = Clamp01(t)
	const c1 = 1.2
	const c3 = c1 + 1
	return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
}

// Pulse 周期为 period 秒的 0~1 正弦脉冲
func Pulse(elapsed, period float64) float64 {
	if period <= 0 {
		return 1
	}
	return 0.5 - 0.5*math.Cos(2*math.Pi*elapsed/period)
}

// Progress 计算 elapsed 在 [start, start+duration] 区间内的进度
func Progress(elapsed, start, duration float64) float64 {
	if duration <= 0 {
		if elapsed >= start {
			return 1
		}
		return 0
	}
	return Clamp01((elapsed - start) / duration)
}
