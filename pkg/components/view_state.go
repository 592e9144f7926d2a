package components

import "fmt"

// ViewState 贺卡当前显示的全屏界面
// 同一时刻只有一个界面处于活动状态，由 ViewStateMachine 负责切换
type ViewState int

const (
	// ViewIntro 开场界面（启动时的初始状态）
	ViewIntro ViewState = iota
	// ViewChoice 选择玫瑰颜色
	ViewChoice
	// ViewBlooming 玫瑰绽放动画
	ViewBlooming
	// ViewReveal 展示祝福内容
	ViewReveal
)

// String 返回界面名称，用于日志输出
func (v ViewState) String() string {
	switch v {
	case ViewIntro:
		return "Intro"
	case ViewChoice:
		return "Choice"
	case ViewBlooming:
		return "Blooming"
	case ViewReveal:
		return "Reveal"
	default:
		return fmt.Sprintf("ViewState(%d)", int(v))
	}
}
