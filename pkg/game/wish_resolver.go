package game

import (
	"github.com/decker502/roseday/pkg/components"
	"github.com/decker502/roseday/pkg/config"
)

// WishResolver 根据玫瑰颜色查找祝福内容
//
// 纯查表：所有颜色共用同一段祝福正文，图片引用来自颜色到资源的映射，
// 映射缺项时回退到 FallbackImage。不做任何生成或外部调用。
type WishResolver struct {
	cfg *config.CardConfig
}

// NewWishResolver 创建祝福查找器
// cfg 为 nil 时使用内置默认配置
func NewWishResolver(cfg *config.CardConfig) *WishResolver {
	if cfg == nil {
		cfg = config.DefaultCardConfig()
	}
	return &WishResolver{cfg: cfg}
}

// SetConfig 替换配置（热重载），之后的 Resolve 使用新内容
// 已经生成的 Wish 是值类型，不受影响
func (r *WishResolver) SetConfig(cfg *config.CardConfig) {
	if cfg != nil {
		r.cfg = cfg
	}
}

// Resolve 返回颜色对应的祝福
func (r *WishResolver) Resolve(color components.RoseColor) components.Wish {
	return components.Wish{
		Recipient: r.cfg.Recipient,
		Relation:  r.cfg.Relation,
		Tone:      r.cfg.ParsedTone(),
		Message:   r.cfg.Message,
		ImageRef:  r.cfg.ImageRef(color),
	}
}
