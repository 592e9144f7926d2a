package components

import "image/color"

// ParticleID 粒子唯一标识（由 ParticleEmitter 递增分配，0 保留为无效值）
type ParticleID uint64

// BatchID 一次点击生成的爆发粒子批次标识
type BatchID uint64

// TrailParticle 光标拖尾上的一颗星星
// 创建后不再修改，只会被追加或过期移除
type TrailParticle struct {
	ID     ParticleID
	X, Y   float64
	Scale  float64 // [0.3, 0.8)
	BornAt float64 // 发射器时钟（秒）
}

// BurstParticle 点击时爆发出的一颗爱心
// 同一批次的粒子共享 Batch，到期时按批次标识整体移除
type BurstParticle struct {
	ID     ParticleID
	Batch  BatchID
	X, Y   float64
	Color  color.RGBA
	BornAt float64 // 发射器时钟（秒），渲染时用于计算上浮和淡出
}

// FallingPetal 背景中缓慢飘落的花瓣或爱心
// 位置由渲染时的时钟推导，结构本身不随时间变化
type FallingPetal struct {
	Left     float64 // 水平位置（屏幕宽度百分比 0~100）
	Delay    float64 // 首次出现前的延迟（秒）
	Duration float64 // 从顶部落到底部所需时间（秒）
	Size     float64 // 像素尺寸
	IsHeart  bool    // true 绘制爱心，false 绘制花瓣
}
