package systems

import (
	"fmt"
	"image/color"
	"log"
	"slices"

	"github.com/decker502/roseday/pkg/components"
	"github.com/decker502/roseday/pkg/config"
	"github.com/decker502/roseday/pkg/utils"
)

// RandSource 粒子使用的随机数来源
// *math/rand.Rand 满足该接口；测试中可以注入固定序列
type RandSource interface {
	Float64() float64
	Intn(n int) int
}

// ParticleEmitter 装饰性粒子发射器
//
// 两种模式共享同一套过期规则：
//   - 拖尾：每次指针移动追加一颗星星，只保留最近 TrailKeep+1 颗；
//     独立的定时任务每 TrailTick 移除最旧的一颗
//   - 爆发：每次点击生成 BurstCount 颗爱心，整批在 BurstLifetime 后按批次标识移除
//
// 粒子创建后不再修改，集合只追加或过期。
type ParticleEmitter struct {
	timers  *TimerSystem
	cfg     config.ParticleConfig
	palette []color.RGBA
	rng     RandSource

	trail  []components.TrailParticle
	bursts []components.BurstParticle

	nextParticle components.ParticleID
	nextBatch    components.BatchID

	tickTask    TaskID
	expiryTasks map[components.BatchID]TaskID
	closed      bool
}

// NewParticleEmitter 创建粒子发射器并启动拖尾定时任务
//
// 参数：
//   - timers: 驱动拖尾衰减和批次过期的定时器
//   - cfg: 粒子参数（调色板必须是合法的 #rrggbb）
//   - rng: 随机数来源
//
// 返回：
//   - *ParticleEmitter: 发射器
//   - error: 调色板无法解析或参数非法
func NewParticleEmitter(timers *TimerSystem, cfg config.ParticleConfig, rng RandSource) (*ParticleEmitter, error) {
	if timers == nil || rng == nil {
		return nil, fmt.Errorf("particle emitter requires a timer system and a rand source")
	}
	if cfg.TrailKeep < 0 || cfg.BurstCount <= 0 || cfg.TrailTick <= 0 || cfg.BurstLifetime <= 0 {
		return nil, fmt.Errorf("%w: particle counts and durations must be positive", config.ErrInvalidConfig)
	}
	palette, err := config.ParsePalette(cfg.Palette)
	if err != nil {
		return nil, fmt.Errorf("%w: particles.palette: %v", config.ErrInvalidConfig, err)
	}
	if len(palette) == 0 {
		return nil, fmt.Errorf("%w: particles.palette is empty", config.ErrInvalidConfig)
	}

	pe := &ParticleEmitter{
		timers:       timers,
		cfg:          cfg,
		palette:      palette,
		rng:          rng,
		nextParticle: 1,
		nextBatch:    1,
		expiryTasks:  make(map[components.BatchID]TaskID),
	}
	pe.tickTask = timers.Every(cfg.TrailTick, pe.dropOldestTrail)
	return pe, nil
}

// OnPointerMove 在指针位置追加一颗拖尾粒子
// 缺少坐标的事件直接忽略
func (pe *ParticleEmitter) OnPointerMove(ev utils.PointerEvent) {
	if pe.closed || !ev.HasPosition {
		return
	}

	if n := len(pe.trail); n > pe.cfg.TrailKeep {
		pe.trail = slices.Delete(pe.trail, 0, n-pe.cfg.TrailKeep)
	}

	scale := utils.Lerp(pe.cfg.TrailScaleMin, pe.cfg.TrailScaleMax, pe.rng.Float64())
	pe.trail = append(pe.trail, components.TrailParticle{
		ID:     pe.allocID(),
		X:      ev.X,
		Y:      ev.Y,
		Scale:  scale,
		BornAt: pe.clock(),
	})
}

// dropOldestTrail 拖尾定时任务：移除最旧的一颗
func (pe *ParticleEmitter) dropOldestTrail() {
	if len(pe.trail) == 0 {
		return
	}
	pe.trail = slices.Delete(pe.trail, 0, 1)
}

// Burst 在事件位置生成一批爆发粒子
//
// 返回：
//   - components.BatchID: 新批次标识
//   - bool: 事件缺少坐标或发射器已关闭时为 false
func (pe *ParticleEmitter) Burst(ev utils.PointerEvent) (components.BatchID, bool) {
	if pe.closed || !ev.HasPosition {
		return 0, false
	}

	batch := pe.nextBatch
	pe.nextBatch++
	now := pe.clock()
	spread := pe.cfg.BurstSpread

	for i := 0; i < pe.cfg.BurstCount; i++ {
		pe.bursts = append(pe.bursts, components.BurstParticle{
			ID:     pe.allocID(),
			Batch:  batch,
			X:      ev.X + (pe.rng.Float64()*2-1)*spread,
			Y:      ev.Y + (pe.rng.Float64()*2-1)*spread,
			Color:  pe.palette[pe.rng.Intn(len(pe.palette))],
			BornAt: now,
		})
	}

	pe.expiryTasks[batch] = pe.timers.After(pe.cfg.BurstLifetime, func() {
		pe.expireBatch(batch)
	})
	return batch, true
}

// expireBatch 按批次标识移除粒子，不影响其他批次
func (pe *ParticleEmitter) expireBatch(batch components.BatchID) {
	delete(pe.expiryTasks, batch)
	pe.bursts = slices.DeleteFunc(pe.bursts, func(p components.BurstParticle) bool {
		return p.Batch == batch
	})
}

func (pe *ParticleEmitter) allocID() components.ParticleID {
	id := pe.nextParticle
	pe.nextParticle++
	return id
}

func (pe *ParticleEmitter) clock() float64 {
	return pe.timers.Now().Seconds()
}

// Trail 返回当前拖尾粒子的副本（从旧到新）
func (pe *ParticleEmitter) Trail() []components.TrailParticle {
	return slices.Clone(pe.trail)
}

// Bursts 返回当前爆发粒子的副本
func (pe *ParticleEmitter) Bursts() []components.BurstParticle {
	return slices.Clone(pe.bursts)
}

// BatchCount 返回仍在显示的批次数
func (pe *ParticleEmitter) BatchCount() int {
	return len(pe.expiryTasks)
}

// Close 取消所有定时任务并清空粒子
func (pe *ParticleEmitter) Close() {
	if pe.closed {
		return
	}
	pe.closed = true
	pe.timers.Cancel(pe.tickTask)
	for batch, id := range pe.expiryTasks {
		pe.timers.Cancel(id)
		delete(pe.expiryTasks, batch)
	}
	pe.trail = nil
	pe.bursts = nil
	log.Printf("[ParticleEmitter] Closed")
}
