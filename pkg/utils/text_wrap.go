package utils

import "strings"

// WrapText 按单词把文本拆分为不超过 maxWidth 的多行
// measure 返回一段文字的像素宽度；超长单词单独成行，不做截断
func WrapText(s string, maxWidth float64, measure func(string) float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		if measure(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = w
	}
	return append(lines, current)
}
