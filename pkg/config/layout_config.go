package config

import "github.com/decker502/roseday/pkg/utils"

// 布局配置常量
// 所有坐标使用逻辑屏幕坐标（Layout 返回的尺寸），左上角为原点

// Window Configuration (窗口配置)
const (
	// ScreenWidth 逻辑屏幕宽度
	ScreenWidth = 1280

	// ScreenHeight 逻辑屏幕高度
	ScreenHeight = 720

	// WindowTitle 窗口标题
	WindowTitle = "Rose Day"
)

// Intro 开场界面
const (
	IntroTitleY    = 250.0
	IntroSubtitleY = 330.0
	IntroButtonY   = 470.0
	IntroButtonW   = 240.0
	IntroButtonH   = 64.0
)

// Choice 颜色选择界面
// 选项卡片横向排列并整体居中
const (
	ChoiceTitleY     = 120.0
	ChoiceCardTop    = 230.0
	ChoiceCardWidth  = 200.0
	ChoiceCardHeight = 280.0
	ChoiceCardGap    = 24.0

	// ChoiceRoseRadius 卡片内玫瑰图案的半径
	ChoiceRoseRadius = 48.0
)

// Blooming 绽放界面
const (
	// RoseBoxWidth/RoseBoxHeight 可触摸的玫瑰区域（倾斜以它的中心计算）
	RoseBoxWidth   = 360.0
	RoseBoxHeight  = 440.0
	RoseBoxCenterY = 340.0

	// RoseUnit 绽放动画 200x200 画布对应的屏幕像素
	RoseUnit = 1.8

	BloomPromptY  = 620.0
	BloomLoadingY = 660.0

	// PhraseTop 花开后祝福短语第一行的位置
	PhraseTop        = 90.0
	PhraseLineHeight = 56.0
)

// Reveal 祝福界面
const (
	RevealImageX = 120.0
	RevealImageY = 100.0
	RevealImageW = 460.0
	RevealImageH = 520.0

	RevealTextX     = 640.0
	RevealTextWidth = 520.0
	RevealHeadingY  = 140.0
	RevealMessageY  = 220.0

	RevealButtonW = 240.0
	RevealButtonH = 56.0
	RevealButtonY = 560.0
)

// Floating music button (悬浮音乐按钮)，开场界面以外都显示
const (
	MusicButtonSize   = 56.0
	MusicButtonMargin = 24.0
)

// ScreenCenter 返回屏幕中心
func ScreenCenter() (float64, float64) {
	return ScreenWidth / 2.0, ScreenHeight / 2.0
}

// IntroButtonRect 开场按钮
func IntroButtonRect() utils.Rect {
	return utils.CenteredRect(ScreenWidth/2.0, IntroButtonY, IntroButtonW, IntroButtonH)
}

// ChoiceCardRect 返回第 i 个（共 n 个）颜色选项卡片的区域
//
// 参数：
//   - i: 选项下标（0-based）
//   - n: 选项总数
//
// 返回：
//   - utils.Rect: 卡片区域；n 为 0 或 i 越界时返回零值
func ChoiceCardRect(i, n int) utils.Rect {
	if n <= 0 || i < 0 || i >= n {
		return utils.Rect{}
	}
	total := float64(n)*ChoiceCardWidth + float64(n-1)*ChoiceCardGap
	startX := (ScreenWidth - total) / 2.0
	return utils.Rect{
		X: startX + float64(i)*(ChoiceCardWidth+ChoiceCardGap),
		Y: ChoiceCardTop,
		W: ChoiceCardWidth,
		H: ChoiceCardHeight,
	}
}

// RoseBoxRect 绽放界面中可触摸的玫瑰区域
func RoseBoxRect() utils.Rect {
	return utils.CenteredRect(ScreenWidth/2.0, RoseBoxCenterY, RoseBoxWidth, RoseBoxHeight)
}

// RevealImageRect 祝福图片区域
func RevealImageRect() utils.Rect {
	return utils.Rect{X: RevealImageX, Y: RevealImageY, W: RevealImageW, H: RevealImageH}
}

// ChooseAnotherRect "再选一次" 按钮
func ChooseAnotherRect() utils.Rect {
	return utils.Rect{X: RevealTextX, Y: RevealButtonY, W: RevealButtonW, H: RevealButtonH}
}

// RevealMusicRect 祝福界面中的大号音乐按钮
func RevealMusicRect() utils.Rect {
	return utils.Rect{X: RevealTextX + RevealButtonW + 24, Y: RevealButtonY, W: RevealButtonW, H: RevealButtonH}
}

// MusicButtonRect 右上角悬浮音乐按钮
func MusicButtonRect() utils.Rect {
	return utils.Rect{
		X: ScreenWidth - MusicButtonMargin - MusicButtonSize,
		Y: MusicButtonMargin,
		W: MusicButtonSize,
		H: MusicButtonSize,
	}
}
