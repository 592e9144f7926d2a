package systems

import (
	"image/color"
	"math"

	"github.com/decker502/roseday/pkg/components"
	"github.com/decker502/roseday/pkg/utils"
)

// PetalOverlaySystem 背景飘落的花瓣和爱心
//
// 每次提交新的玫瑰颜色时重新生成一组元素，颜色跟随主题。
// 元素本身不随时间变化，位置由 elapsed 推导。
type PetalOverlaySystem struct {
	count   int
	rng     RandSource
	petals  []components.FallingPetal
	tint    color.RGBA
	elapsed float64
}

// NewPetalOverlaySystem 创建飘落花瓣系统，初始使用默认花瓣颜色
func NewPetalOverlaySystem(count int, rng RandSource) *PetalOverlaySystem {
	s := &PetalOverlaySystem{count: count, rng: rng}
	s.Regenerate(components.DefaultPetalColor)
	return s
}

// Regenerate 重新随机生成全部元素并设置颜色
func (s *PetalOverlaySystem) Regenerate(tint color.RGBA) {
	s.tint = tint
	s.petals = make([]components.FallingPetal, s.count)
	for i := range s.petals {
		s.petals[i] = components.FallingPetal{
			Left:     s.rng.Float64() * 100,
			Delay:    s.rng.Float64() * 10,
			Duration: 6 + s.rng.Float64()*10,
			Size:     12 + s.rng.Float64()*18,
			IsHeart:  s.rng.Float64() > 0.5,
		}
	}
}

// SetCount 修改元素数量（热重载配置时使用），下一次 Regenerate 生效
func (s *PetalOverlaySystem) SetCount(count int) {
	if count >= 0 {
		s.count = count
	}
}

// Update 推进动画时钟
func (s *PetalOverlaySystem) Update(deltaTime float64) {
	s.elapsed += deltaTime
}

// Petals 返回当前元素
func (s *PetalOverlaySystem) Petals() []components.FallingPetal {
	return s.petals
}

// Tint 返回当前颜色
func (s *PetalOverlaySystem) Tint() color.RGBA {
	return s.tint
}

// Elapsed 返回动画时钟（秒）
func (s *PetalOverlaySystem) Elapsed() float64 {
	return s.elapsed
}

// FallingPose 飘落元素在某一时刻的屏幕姿态
type FallingPose struct {
	X, Y     float64
	Rotation float64 // 弧度
	Visible  bool
}

// FallingPetalPose 计算飘落元素在 elapsed 时刻的位置
//
// 延迟结束前不可见；之后每 Duration 秒从屏幕上方落到下方一次，
// 同时左右轻微摆动并旋转一整圈。
func FallingPetalPose(p components.FallingPetal, elapsed, screenW, screenH float64) FallingPose {
	if elapsed < p.Delay || p.Duration <= 0 {
		return FallingPose{}
	}
	t := math.Mod(elapsed-p.Delay, p.Duration) / p.Duration
	baseX := p.Left / 100 * screenW
	return FallingPose{
		X:        baseX + math.Sin(t*2*math.Pi)*p.Size,
		Y:        utils.Lerp(-p.Size, screenH+p.Size, t),
		Rotation: t * 2 * math.Pi,
		Visible:  true,
	}
}
