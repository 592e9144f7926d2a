package systems

import (
	"time"

	"github.com/decker502/roseday/pkg/config"
	"github.com/decker502/roseday/pkg/utils"
)

// SpiralPetalCount 互动玫瑰的螺旋花瓣数量
const SpiralPetalCount = 30

// SpiralBloomDuration 螺旋玫瑰从收拢到展开的过渡时间
const SpiralBloomDuration = 1500 * time.Millisecond

// PhraseFadeDuration 单个字符的淡入时间
const PhraseFadeDuration = 500 * time.Millisecond

// SpiralPetal 第 i（1..30）片螺旋花瓣的姿态
// bloomed 为展开进度：0 时 scale=0.02i、rotate=80i，1 时 scale=0.06i、rotate=83i
func SpiralPetal(i int, bloomed float64) PetalPose {
	t := utils.EaseOutQuad(bloomed)
	fi := float64(i)
	return PetalPose{
		Index:   i,
		Scale:   utils.Lerp(0.02*fi, 0.06*fi, t),
		Rotate:  utils.Lerp(80*fi, 83*fi, t),
		Opacity: 1,
	}
}

// PhraseChar 逐字浮现文字中的一个字符
type PhraseChar struct {
	Char     string
	Progress float64 // 0 不可见，1 完全显示
}

// PhraseReveal 计算每一行文字中每个字符的浮现进度
//
// 第 i 个字符在 DelayBase + i*CharDelay 时开始淡入，持续 PhraseFadeDuration。
// elapsed 为玫瑰绽放完成后经过的时间。
func PhraseReveal(lines []config.PhraseLine, elapsed time.Duration) [][]PhraseChar {
	out := make([][]PhraseChar, len(lines))
	for li, line := range lines {
		chars := make([]PhraseChar, 0, len(line.Text))
		i := 0
		for _, r := range line.Text {
			start := line.DelayBase + time.Duration(i)*line.CharDelay
			chars = append(chars, PhraseChar{
				Char:     string(r),
				Progress: utils.Progress(elapsed.Seconds(), start.Seconds(), PhraseFadeDuration.Seconds()),
			})
			i++
		}
		out[li] = chars
	}
	return out
}

// PhraseRevealDone 所有字符是否都已完全显示
func PhraseRevealDone(lines []config.PhraseLine, elapsed time.Duration) bool {
	for _, line := range PhraseReveal(lines, elapsed) {
		for _, c := range line {
			if c.Progress < 1 {
				return false
			}
		}
	}
	return true
}
