package scenes

import (
	"fmt"

	"github.com/decker502/roseday/pkg/components"
	"github.com/decker502/roseday/pkg/config"
	"github.com/decker502/roseday/pkg/utils"
)

// HitKind 可点击区域的类型
type HitKind int

const (
	HitNone HitKind = iota
	HitBegin
	HitColor
	HitRose
	HitChooseAnother
	HitMusic
)

// String 返回区域类型名称
func (k HitKind) String() string {
	switch k {
	case HitNone:
		return "None"
	case HitBegin:
		return "Begin"
	case HitColor:
		return "Color"
	case HitRose:
		return "Rose"
	case HitChooseAnother:
		return "ChooseAnother"
	case HitMusic:
		return "Music"
	default:
		return fmt.Sprintf("HitKind(%d)", int(k))
	}
}

// HitTarget 当前界面上的一个可点击区域
type HitTarget struct {
	Kind  HitKind
	Rect  utils.Rect
	Color components.RoseColor // 仅 HitColor 有效
	Index int                  // 仅 HitColor 有效：选项下标
}

// HitTargets 返回某个界面的所有可点击区域，越靠前越在上层
//
// 参数：
//   - view: 当前界面
//   - colors: 颜色选择界面的选项（按显示顺序）
//
// 返回：
//   - []HitTarget: 按层级从上到下排列
func HitTargets(view components.ViewState, colors []components.RoseColor) []HitTarget {
	var targets []HitTarget
	if view != components.ViewIntro {
		targets = append(targets, HitTarget{Kind: HitMusic, Rect: config.MusicButtonRect()})
	}

	switch view {
	case components.ViewIntro:
		targets = append(targets, HitTarget{Kind: HitBegin, Rect: config.IntroButtonRect()})
	case components.ViewChoice:
		for i, c := range colors {
			targets = append(targets, HitTarget{
				Kind:  HitColor,
				Rect:  config.ChoiceCardRect(i, len(colors)),
				Color: c,
				Index: i,
			})
		}
	case components.ViewBlooming:
		targets = append(targets, HitTarget{Kind: HitRose, Rect: config.RoseBoxRect()})
	case components.ViewReveal:
		targets = append(targets,
			HitTarget{Kind: HitChooseAnother, Rect: config.ChooseAnotherRect()},
			HitTarget{Kind: HitMusic, Rect: config.RevealMusicRect()},
		)
	}
	return targets
}

// HitTest 返回事件命中的最上层区域
// 缺少坐标的事件不命中任何区域
func HitTest(targets []HitTarget, ev utils.PointerEvent) (HitTarget, bool) {
	if !ev.HasPosition {
		return HitTarget{}, false
	}
	for _, t := range targets {
		if t.Rect.ContainsEvent(ev) {
			return t, true
		}
	}
	return HitTarget{}, false
}

// hoverable 悬停时是否播放提示音
// 玫瑰区域很大，经过时不提示
func hoverable(k HitKind) bool {
	return k != HitNone && k != HitRose
}
