package scenes

import (
	"image"
	"image/color"
	"math"
	"path"

	"github.com/decker502/roseday/pkg/components"
	"github.com/decker502/roseday/pkg/config"
	"github.com/decker502/roseday/pkg/game"
	"github.com/decker502/roseday/pkg/modules"
	"github.com/decker502/roseday/pkg/systems"
	"github.com/decker502/roseday/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 界面淡入时间（秒）
const viewFadeIn = 0.7

var (
	white      = color.RGBA{0xff, 0xff, 0xff, 0xff}
	deepRed    = color.RGBA{0x45, 0x0a, 0x0a, 0xff}
	roseRed    = color.RGBA{0xdc, 0x26, 0x26, 0xff}
	pink       = color.RGBA{0xec, 0x48, 0x99, 0xff}
	softPink   = color.RGBA{0xf9, 0xa8, 0xd4, 0xff}
	paleGray   = color.RGBA{0x9c, 0xa3, 0xaf, 0xff}
	trailColor = color.RGBA{0xf4, 0x72, 0xb6, 0xff}
)

// backgroundColor 开场界面为黑色；其余界面使用已确认颜色的背景，未确认时为白色
func backgroundColor(snap modules.Snapshot) color.RGBA {
	if snap.View == components.ViewIntro {
		return components.IntroBackground
	}
	if snap.HasCommitted {
		return snap.Theme.Background
	}
	return white
}

// fade 返回带透明度的非预乘颜色
func fade(c color.RGBA, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A) * utils.Clamp01(alpha))}
}

// viewAlpha 当前界面的淡入进度
func (s *CardScene) viewAlpha() float64 {
	return utils.Clamp01((s.elapsed - s.viewSince) / viewFadeIn)
}

// drawText 以 (x, y) 为基准绘制文字，align 控制水平对齐
func drawText(dst *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.RGBA, alpha float64, align text.Align) {
	if face == nil || str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(utils.Clamp01(alpha)))
	op.PrimaryAlign = align
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, str, face, op)
}

// drawWrapped 在 maxWidth 内自动换行，返回最后一行之后的 y
func drawWrapped(dst *ebiten.Image, str string, face *text.GoTextFace, x, y, maxWidth, lineHeight float64, clr color.RGBA, alpha float64) float64 {
	if face == nil {
		return y
	}
	measure := func(s string) float64 { return text.Advance(s, face) }
	for _, line := range utils.WrapText(str, maxWidth, measure) {
		drawText(dst, line, face, x, y, clr, alpha, text.AlignStart)
		y += lineHeight
	}
	return y
}

// drawButton 圆角按钮，hover 时轻微放大
func (s *CardScene) drawButton(dst *ebiten.Image, r utils.Rect, label string, bg, fg color.RGBA, hovered bool, alpha float64) {
	if hovered {
		r = r.Inset(-4)
	}
	systems.FillRoundedPanel(dst, r.X, r.Y, r.W, r.H, r.H/2, fade(bg, alpha))
	cx, cy := r.Center()
	drawText(dst, label, s.bodyFace, cx, cy, fg, alpha, text.AlignCenter)
}

func (s *CardScene) drawOverlay(dst *ebiten.Image) {
	tint := s.overlay.Tint()
	elapsed := s.overlay.Elapsed()
	for _, p := range s.overlay.Petals() {
		pose := systems.FallingPetalPose(p, elapsed, config.ScreenWidth, config.ScreenHeight)
		s.render.DrawFallingPetal(dst, p, pose, tint)
	}
}

// drawIntro 黑色背景上环绕标题的爱心、标题、副标题和开始按钮
func (s *CardScene) drawIntro(dst *ebiten.Image) {
	alpha := s.viewAlpha()
	cx, _ := config.ScreenCenter()

	const hearts = 14
	for i := 0; i < hearts; i++ {
		angle := float64(i)/hearts*2*math.Pi + s.elapsed*0.2
		radius := 300 + 30*math.Sin(s.elapsed+float64(i))
		x := cx + math.Cos(angle)*radius*1.4
		y := config.IntroTitleY + 60 + math.Sin(angle)*radius*0.7
		size := 16 + 10*utils.Pulse(s.elapsed+float64(i)*0.3, 2)
		s.render.DrawHeart(dst, x, y, size, 0, pink, 0.35*alpha)
	}

	drawText(dst, s.cfg.Intro.Title, s.titleFace, cx, config.IntroTitleY, white, alpha, text.AlignCenter)
	subAlpha := alpha * (0.6 + 0.4*utils.Pulse(s.elapsed, 2))
	drawText(dst, s.cfg.Intro.Subtitle, s.smallFace, cx, config.IntroSubtitleY, softPink, subAlpha, text.AlignCenter)
	s.drawButton(dst, config.IntroButtonRect(), s.cfg.Intro.Button, white, roseRed, s.hover.Kind == HitBegin, alpha)
}

// drawChoice 颜色选择卡片
func (s *CardScene) drawChoice(dst *ebiten.Image, snap modules.Snapshot) {
	alpha := s.viewAlpha()
	cx, _ := config.ScreenCenter()
	s.render.DrawHeart(dst, cx, config.ChoiceTitleY-70, 40+6*utils.Pulse(s.elapsed, 1.5), 0, roseRed, alpha)
	drawText(dst, s.cfg.Choice.Title, s.titleFace, cx, config.ChoiceTitleY, deepRed, alpha, text.AlignCenter)

	targets := HitTargets(components.ViewChoice, s.choiceColors)
	for _, t := range targets {
		if t.Kind != HitColor {
			continue
		}
		opt := s.cfg.Choice.Options[t.Index]
		selected := snap.HasPending && snap.Pending == t.Color
		hovered := s.hover.Kind == HitColor && s.hover.Index == t.Index

		r := t.Rect
		if hovered && !selected {
			r.Y -= 12
		}
		if selected {
			ring := r.Inset(-10)
			systems.FillRoundedPanel(dst, ring.X, ring.Y, ring.W, ring.H, 56, fade(softPink, 0.5*alpha))
		}
		systems.FillRoundedPanel(dst, r.X, r.Y, r.W, r.H, 48, fade(white, 0.85*alpha))

		rcx := r.X + r.W/2
		rcy := r.Y + 100
		theme := components.ThemeFor(t.Color)
		for _, pose := range systems.BloomPetalPoses() {
			s.render.DrawRosePetal(dst, rcx, rcy, config.ChoiceRoseRadius/100, pose, alpha, petalColor(theme, pose.Index))
		}
		if selected || hovered {
			s.render.DrawHeart(dst, r.X+r.W-36, r.Y+36, 28, 0, roseRed, alpha)
		}

		labelColor := deepRed
		if selected {
			labelColor = pink
		}
		drawText(dst, opt.Label, s.bodyFace, rcx, r.Y+200, labelColor, alpha, text.AlignCenter)
		drawText(dst, opt.Meaning, s.smallFace, rcx, r.Y+240, paleGray, alpha, text.AlignCenter)
	}
}

// petalColor 外圈用深色，中圈用主色，内圈用浅色
func petalColor(theme components.Theme, idx int) color.RGBA {
	switch {
	case idx <= 5:
		return theme.Secondary
	case idx <= 9:
		return theme.Primary
	default:
		return theme.Petal
	}
}

// drawBlooming 触摸前显示含苞的螺旋玫瑰和提示；触摸后逐瓣绽放；完成后展开螺旋玫瑰并逐字显示短语
func (s *CardScene) drawBlooming(dst *ebiten.Image, snap modules.Snapshot) {
	alpha := s.viewAlpha()
	box := config.RoseBoxRect()
	cx, cy := box.Center()
	// 倾斜用平移近似：绕 X 轴的倾斜上下移动，绕 Y 轴的倾斜左右移动
	cx += snap.TiltY * 1.5
	cy -= snap.TiltX * 1.5

	glow := 0.08 + 0.06*utils.Pulse(s.elapsed, 2)
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(box.W*0.6), fade(snap.Theme.Primary, glow*alpha), true)

	switch {
	case snap.BloomComplete:
		bloomed := utils.Progress(snap.SinceBloom.Seconds(), 0, systems.SpiralBloomDuration.Seconds())
		s.drawSpiralRose(dst, cx, cy, bloomed, snap.Theme, alpha)
		s.drawPhrases(dst, snap)
	case snap.BloomActive:
		bloom := s.vsm.Bloom()
		if bloom.StemVisible() {
			s.render.DrawStem(dst, cx, cy, config.RoseUnit, alpha)
		}
		for _, pose := range systems.BloomPetalPoses() {
			appear := bloom.PetalAppearProgress(pose.Index)
			if appear <= 0 {
				continue
			}
			s.render.DrawRosePetal(dst, cx, cy, config.RoseUnit, pose, utils.EaseOutBack(appear), petalColor(snap.Theme, pose.Index))
		}
	default:
		breathe := 0.95 + 0.05*utils.Pulse(s.elapsed, 1.6)
		s.drawSpiralRose(dst, cx, cy, 0, snap.Theme, alpha*breathe)
		px, _ := config.ScreenCenter()
		promptAlpha := alpha * (0.5 + 0.5*utils.Pulse(s.elapsed, 1.6))
		drawText(dst, s.cfg.Blooming.Prompt, s.bodyFace, px, config.BloomPromptY, deepRed, promptAlpha, text.AlignCenter)
		drawText(dst, snap.LoadingText, s.smallFace, px, config.BloomLoadingY, snap.Theme.Secondary, alpha, text.AlignCenter)
	}
}

// drawSpiralRose 30 片螺旋花瓣，从外到内绘制
func (s *CardScene) drawSpiralRose(dst *ebiten.Image, cx, cy, bloomed float64, theme components.Theme, alpha float64) {
	s.render.DrawStem(dst, cx, cy, config.RoseUnit, alpha)
	for i := systems.SpiralPetalCount; i >= 1; i-- {
		pose := systems.SpiralPetal(i, bloomed)
		clr := theme.Primary
		if i%3 == 0 {
			clr = theme.Secondary
		}
		// 螺旋花瓣的 scale 已按序号放大，这里缩小到与玫瑰区域匹配
		s.render.DrawRosePetal(dst, cx, cy, config.RoseUnit*0.5, pose, alpha, clr)
	}
}

// drawPhrases 玫瑰上方逐字浮现的短语
func (s *CardScene) drawPhrases(dst *ebiten.Image, snap modules.Snapshot) {
	if s.bodyFace == nil {
		return
	}
	cx, _ := config.ScreenCenter()
	lines := systems.PhraseReveal(s.cfg.Blooming.PhraseLines, snap.SinceBloom)
	for li, chars := range lines {
		var full string
		for _, c := range chars {
			full += c.Char
		}
		x := cx - text.Advance(full, s.bodyFace)/2
		y := config.PhraseTop + float64(li)*config.PhraseLineHeight
		for _, c := range chars {
			if c.Progress > 0 {
				rise := 10 * (1 - c.Progress)
				drawText(dst, c.Char, s.bodyFace, x, y+rise, snap.Theme.Secondary, c.Progress, text.AlignStart)
			}
			x += text.Advance(c.Char, s.bodyFace)
		}
	}
}

// drawReveal 祝福图片、正文、按钮和落款
func (s *CardScene) drawReveal(dst *ebiten.Image, snap modules.Snapshot) {
	alpha := s.viewAlpha()
	s.drawRevealImage(dst, snap, alpha)

	x := config.RevealTextX
	vector.DrawFilledRect(dst, float32(x), float32(config.RevealHeadingY-50), 64, 6, fade(roseRed, alpha), true)
	drawText(dst, s.cfg.Reveal.Heading, s.titleFace, x, config.RevealHeadingY, deepRed, alpha, text.AlignStart)

	y := config.RevealMessageY
	if snap.HasWish {
		y = drawWrapped(dst, snap.Wish.Message, s.bodyFace, x, y, config.RevealTextWidth, 44, deepRed, alpha)
	}

	s.drawButton(dst, config.ChooseAnotherRect(), s.cfg.Reveal.ChooseAnother, white, roseRed, s.hover.Kind == HitChooseAnother, alpha)

	label, bg, fg := s.cfg.Reveal.PlaySong, roseRed, white
	if s.musicPlaying() {
		label, bg, fg = s.cfg.Reveal.PauseSong, white, pink
	}
	hovered := s.hover.Kind == HitMusic && s.hover.Rect == config.RevealMusicRect()
	s.drawButton(dst, config.RevealMusicRect(), label, bg, fg, hovered, alpha)

	fy := float64(config.ScreenHeight - 60)
	for _, line := range s.cfg.Reveal.Footer {
		drawText(dst, line, s.smallFace, x, fy, paleGray, alpha, text.AlignStart)
		fy += 22
	}
}

// drawRevealImage 已加载时按 cover 方式裁剪绘制；加载中显示空面板；缺失时显示占位说明
func (s *CardScene) drawRevealImage(dst *ebiten.Image, snap modules.Snapshot, alpha float64) {
	r := config.RevealImageRect()
	frame := r.Inset(-12)
	systems.FillRoundedPanel(dst, frame.X, frame.Y, frame.W, frame.H, 48, fade(white, alpha))
	systems.FillRoundedPanel(dst, r.X, r.Y, r.W, r.H, 36, fade(snap.Theme.Light, alpha))

	ref := s.cfg.ImageRef(snap.Committed)
	state := game.ImageMissing
	var img *ebiten.Image
	if s.resources != nil {
		img, state = s.resources.Image(ref)
	}

	cx, cy := r.Center()
	switch state {
	case game.ImageReady:
		drawCover(dst, img, r, alpha)
	case game.ImageLoading, game.ImageUnrequested:
		s.render.DrawHeart(dst, cx, cy, 40+10*utils.Pulse(s.elapsed, 1), 0, softPink, alpha)
	default:
		drawText(dst, s.cfg.Reveal.ImageMissing, s.bodyFace, cx, cy-20, pink, alpha, text.AlignCenter)
		drawText(dst, path.Base(ref), s.smallFace, cx, cy+24, paleGray, alpha, text.AlignCenter)
	}
}

// drawCover 等比缩放图片铺满区域，超出部分裁掉
func drawCover(dst, img *ebiten.Image, r utils.Rect, alpha float64) {
	if img == nil {
		return
	}
	w, h := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	if w == 0 || h == 0 {
		return
	}
	scale := math.Max(r.W/w, r.H/h)
	clip := dst.SubImage(image.Rect(int(r.X), int(r.Y), int(r.X+r.W), int(r.Y+r.H))).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(r.X+(r.W-w*scale)/2, r.Y+(r.H-h*scale)/2)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	clip.DrawImage(img, op)
}

func (s *CardScene) musicPlaying() bool {
	return s.audio != nil && s.audio.Playing()
}

// drawMusicButton 右上角悬浮音乐按钮：播放中为粉色并跳动，停止时为白色
func (s *CardScene) drawMusicButton(dst *ebiten.Image, snap modules.Snapshot) {
	r := config.MusicButtonRect()
	cx, cy := r.Center()
	radius := r.W / 2
	if s.hover.Kind == HitMusic && s.hover.Rect == r {
		radius += 4
	}

	bg, fg := white, pink
	if s.musicPlaying() {
		bg, fg = pink, white
		radius += 2 * utils.Pulse(s.elapsed, 1)
	}
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(radius+4), white, true)
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(radius), bg, true)
	drawNote(dst, cx, cy, fg)

	if s.hover.Kind == HitMusic && s.hover.Rect == r {
		label := "Play Music"
		if s.musicPlaying() {
			label = "Playing Song"
		}
		drawText(dst, label, s.smallFace, cx, r.Y+r.H+20, snap.Theme.Secondary, 1, text.AlignCenter)
	}
}

// drawNote 用矢量绘制一个八分音符
func drawNote(dst *ebiten.Image, cx, cy float64, clr color.RGBA) {
	x, y := float32(cx), float32(cy)
	vector.DrawFilledCircle(dst, x-5, y+8, 6, clr, true)
	vector.StrokeLine(dst, x+1, y+8, x+1, y-12, 3, clr, true)
	vector.StrokeLine(dst, x+1, y-12, x+10, y-6, 3, clr, true)
}

// drawCursor 跟随指针的爱心光标
func (s *CardScene) drawCursor(dst *ebiten.Image) {
	if s.touch || !s.cursor.HasPosition {
		return
	}
	size := 26 + 4*utils.Pulse(s.elapsed, 1.2)
	s.render.DrawHeart(dst, s.cursor.X, s.cursor.Y, size, 0, color.RGBA{0xef, 0x44, 0x44, 0xff}, 0.9)
	s.render.DrawStar(dst, s.cursor.X+12, s.cursor.Y-12, 10, color.RGBA{0xfa, 0xcc, 0x15, 0xff}, 1)
}
