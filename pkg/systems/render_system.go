package systems

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/decker502/roseday/pkg/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// RenderSystem 用矢量路径绘制贺卡中的装饰图形
//
// 职责范围：
//   - 爱心、星星、花瓣、花茎等形状的填充与描边
//   - 拖尾粒子和爆发粒子的逐帧外观（上浮、淡出）
//
// 不包括：
//   - 文字和按钮，由 CardScene 直接绘制
//
// 形状以各自的 viewBox 坐标定义，绘制时经 ShapeTransform 映射到屏幕。
type RenderSystem struct {
	vertices []ebiten.Vertex // 顶点数组（复用，避免每帧分配）
	indices  []uint16        // 索引数组（复用，避免每帧分配）
	white    *ebiten.Image
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem() *RenderSystem {
	base := ebiten.NewImage(3, 3)
	base.Fill(color.White)
	return &RenderSystem{
		vertices: make([]ebiten.Vertex, 0, 512),
		indices:  make([]uint16, 0, 1024),
		white:    base.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

// shapeSegment 路径片段：三次贝塞尔或直线
type shapeSegment struct {
	cubic bool
	pts   []float64 // 直线 2 个值，贝塞尔 6 个值
}

// Shape 闭合矢量形状
type Shape struct {
	StartX, StartY   float64 // 起点
	OriginX, OriginY float64 // 旋转、缩放中心（viewBox 坐标）
	Size             float64 // viewBox 边长
	segments         []shapeSegment
}

func line(x, y float64) shapeSegment { return shapeSegment{pts: []float64{x, y}} }

func cubic(x1, y1, x2, y2, x, y float64) shapeSegment {
	return shapeSegment{cubic: true, pts: []float64{x1, y1, x2, y2, x, y}}
}

// HeartShape 爱心（24×24）
var HeartShape = Shape{
	StartX: 12, StartY: 21.35, OriginX: 12, OriginY: 12, Size: 24,
	segments: []shapeSegment{
		line(10.55, 20.03),
		cubic(5.4, 15.36, 2, 12.28, 2, 8.5),
		cubic(2, 5.42, 4.42, 3, 7.5, 3),
		cubic(9.24, 3, 10.91, 3.81, 12, 5.09),
		cubic(13.09, 3.81, 14.76, 3, 16.5, 3),
		cubic(19.58, 3, 22, 5.42, 22, 8.5),
		cubic(22, 12.28, 18.6, 15.36, 13.45, 20.04),
		line(12, 21.35),
	},
}

// RosePetalShape 绽放玫瑰的花瓣（200×200，绕 (100,100) 旋转）
var RosePetalShape = Shape{
	StartX: 100, StartY: 100, OriginX: 100, OriginY: 100, Size: 200,
	segments: []shapeSegment{
		cubic(130, 50, 170, 70, 180, 110),
		cubic(185, 140, 150, 180, 100, 190),
		cubic(50, 180, 15, 140, 20, 110),
		cubic(30, 70, 70, 50, 100, 100),
	},
}

// FallingPetalShape 背景飘落的花瓣（100×100）
var FallingPetalShape = Shape{
	StartX: 50, StartY: 0, OriginX: 50, OriginY: 50, Size: 100,
	segments: []shapeSegment{
		cubic(60, 20, 90, 30, 90, 60),
		cubic(90, 85, 70, 100, 50, 100),
		cubic(30, 100, 10, 85, 10, 60),
		cubic(10, 30, 40, 20, 50, 0),
	},
}

// StarShape 五角星（24×24）
var StarShape = starShape()

func starShape() Shape {
	s := Shape{OriginX: 12, OriginY: 12, Size: 24}
	for i := 0; i <= 10; i++ {
		r := 11.0
		if i%2 == 1 {
			r = 4.5
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		x, y := 12+r*math.Cos(a), 12+r*math.Sin(a)
		if i == 0 {
			s.StartX, s.StartY = x, y
			continue
		}
		s.segments = append(s.segments, line(x, y))
	}
	return s
}

// ShapeTransform 把 viewBox 坐标映射到屏幕
// 先以形状原点为中心缩放、旋转，再平移到 (X, Y)
type ShapeTransform struct {
	X, Y     float64 // 形状原点在屏幕上的位置
	Scale    float64 // viewBox 单位到像素的比例
	Rotation float64 // 弧度，顺时针
}

// Apply 变换一个 viewBox 坐标
func (t ShapeTransform) Apply(s Shape, px, py float64) (float64, float64) {
	dx := (px - s.OriginX) * t.Scale
	dy := (py - s.OriginY) * t.Scale
	sin, cos := math.Sincos(t.Rotation)
	return t.X + dx*cos - dy*sin, t.Y + dx*sin + dy*cos
}

// Path 构建变换后的路径
func (s Shape) Path(t ShapeTransform) *vector.Path {
	var p vector.Path
	x, y := t.Apply(s, s.StartX, s.StartY)
	p.MoveTo(float32(x), float32(y))
	for _, seg := range s.segments {
		if seg.cubic {
			x1, y1 := t.Apply(s, seg.pts[0], seg.pts[1])
			x2, y2 := t.Apply(s, seg.pts[2], seg.pts[3])
			x3, y3 := t.Apply(s, seg.pts[4], seg.pts[5])
			p.CubicTo(float32(x1), float32(y1), float32(x2), float32(y2), float32(x3), float32(y3))
			continue
		}
		lx, ly := t.Apply(s, seg.pts[0], seg.pts[1])
		p.LineTo(float32(lx), float32(ly))
	}
	p.Close()
	return &p
}

// FillShape 以给定颜色和透明度填充形状
func (s *RenderSystem) FillShape(dst *ebiten.Image, shape Shape, t ShapeTransform, clr color.RGBA, alpha float64) {
	if alpha <= 0 || t.Scale <= 0 {
		return
	}
	path := shape.Path(t)
	s.vertices, s.indices = path.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
	if len(s.indices) == 0 {
		return
	}

	a := float32(math.Min(alpha, 1)) * float32(clr.A) / 255
	r := float32(clr.R) / 255 * a
	g := float32(clr.G) / 255 * a
	b := float32(clr.B) / 255 * a
	for i := range s.vertices {
		s.vertices[i].SrcX = 1
		s.vertices[i].SrcY = 1
		s.vertices[i].ColorR = r
		s.vertices[i].ColorG = g
		s.vertices[i].ColorB = b
		s.vertices[i].ColorA = a
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	op.FillRule = ebiten.FillRuleNonZero
	dst.DrawTriangles(s.vertices, s.indices, s.white, op)
}

// DrawHeart 以 (cx, cy) 为中心绘制边长 size 的爱心
func (s *RenderSystem) DrawHeart(dst *ebiten.Image, cx, cy, size, rotation float64, clr color.RGBA, alpha float64) {
	s.FillShape(dst, HeartShape, ShapeTransform{X: cx, Y: cy, Scale: size / HeartShape.Size, Rotation: rotation}, clr, alpha)
}

// DrawStar 以 (cx, cy) 为中心绘制边长 size 的星星
func (s *RenderSystem) DrawStar(dst *ebiten.Image, cx, cy, size float64, clr color.RGBA, alpha float64) {
	s.FillShape(dst, StarShape, ShapeTransform{X: cx, Y: cy, Scale: size / StarShape.Size}, clr, alpha)
}

// DrawFallingPetal 绘制一个飘落元素
func (s *RenderSystem) DrawFallingPetal(dst *ebiten.Image, p components.FallingPetal, pose FallingPose, clr color.RGBA) {
	if !pose.Visible {
		return
	}
	if p.IsHeart {
		s.DrawHeart(dst, pose.X, pose.Y, p.Size, pose.Rotation, clr, 0.4)
		return
	}
	s.FillShape(dst, FallingPetalShape, ShapeTransform{
		X: pose.X, Y: pose.Y, Scale: p.Size / FallingPetalShape.Size, Rotation: pose.Rotation,
	}, clr, 0.5)
}

// DrawRosePetal 绘制绽放玫瑰的一片花瓣
// (cx, cy) 是花朵中心，unit 是 viewBox 单位到像素的比例，appear 是展开进度
func (s *RenderSystem) DrawRosePetal(dst *ebiten.Image, cx, cy, unit float64, pose PetalPose, appear float64, clr color.RGBA) {
	scale := pose.Scale * appear
	s.FillShape(dst, RosePetalShape, ShapeTransform{
		X: cx, Y: cy, Scale: unit * scale, Rotation: pose.Rotate * math.Pi / 180,
	}, clr, pose.Opacity*math.Min(1, appear*1.5))
}

// CubicPoint 三次贝塞尔曲线在 t 处的点
func CubicPoint(p0x, p0y, p1x, p1y, p2x, p2y, p3x, p3y, t float64) (float64, float64) {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t
	return b0*p0x + b1*p1x + b2*p2x + b3*p3x, b0*p0y + b1*p1y + b2*p2y + b3*p3y
}

// stemSegments 花茎曲线的采样段数
const stemSegments = 16

// DrawStem 绘制花茎（viewBox 中 M100,160 C100,200 110,230 80,260）
func (s *RenderSystem) DrawStem(dst *ebiten.Image, cx, cy, unit float64, alpha float64) {
	if alpha <= 0 {
		return
	}
	stem := color.RGBA{0x16, 0x65, 0x34, uint8(255 * math.Min(alpha, 1))}
	toScreen := func(x, y float64) (float32, float32) {
		return float32(cx + (x-100)*unit), float32(cy + (y-100)*unit)
	}
	px, py := toScreen(100, 160)
	for i := 1; i <= stemSegments; i++ {
		x, y := CubicPoint(100, 160, 100, 200, 110, 230, 80, 260, float64(i)/stemSegments)
		nx, ny := toScreen(x, y)
		vector.StrokeLine(dst, px, py, nx, ny, float32(4*unit), stem, true)
		px, py = nx, ny
	}
}

// TrailStarSize 拖尾星星在 scale=1 时的像素尺寸
const TrailStarSize = 24.0

// DrawTrail 绘制拖尾，越旧越淡
func (s *RenderSystem) DrawTrail(dst *ebiten.Image, trail []components.TrailParticle, clr color.RGBA) {
	n := len(trail)
	for i, p := range trail {
		alpha := float64(i+1) / float64(n) * 0.8
		s.DrawStar(dst, p.X, p.Y, TrailStarSize*p.Scale, clr, alpha)
	}
}

// BurstHeartSize 爆发爱心的像素尺寸
const BurstHeartSize = 20.0

// BurstRise 爆发爱心在生命周期内上浮的距离
const BurstRise = 60.0

// BurstAppearance 爆发粒子在 now 时刻的外观
func BurstAppearance(p components.BurstParticle, now float64, lifetime time.Duration) (y, scale, alpha float64) {
	progress := 0.0
	if lifetime > 0 {
		progress = math.Max(0, math.Min(1, (now-p.BornAt)/lifetime.Seconds()))
	}
	return p.Y - BurstRise*progress, 1 + 0.5*progress, 1 - progress
}

// DrawBursts 绘制所有爆发爱心
func (s *RenderSystem) DrawBursts(dst *ebiten.Image, bursts []components.BurstParticle, now float64, lifetime time.Duration) {
	for _, p := range bursts {
		y, scale, alpha := BurstAppearance(p, now, lifetime)
		s.DrawHeart(dst, p.X, y, BurstHeartSize*scale, 0, p.Color, alpha)
	}
}

// FillRoundedPanel 绘制按钮、卡片等圆角面板
func FillRoundedPanel(dst *ebiten.Image, x, y, w, h, radius float64, clr color.Color) {
	r := math.Min(radius, math.Min(w, h)/2)
	fx, fy, fw, fh, fr := float32(x), float32(y), float32(w), float32(h), float32(r)
	vector.DrawFilledRect(dst, fx+fr, fy, fw-2*fr, fh, clr, true)
	vector.DrawFilledRect(dst, fx, fy+fr, fr, fh-2*fr, clr, true)
	vector.DrawFilledRect(dst, fx+fw-fr, fy+fr, fr, fh-2*fr, clr, true)
	vector.DrawFilledCircle(dst, fx+fr, fy+fr, fr, clr, true)
	vector.DrawFilledCircle(dst, fx+fw-fr, fy+fr, fr, clr, true)
	vector.DrawFilledCircle(dst, fx+fr, fy+fh-fr, fr, clr, true)
	vector.DrawFilledCircle(dst, fx+fw-fr, fy+fh-fr, fr, clr, true)
}
