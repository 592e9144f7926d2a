//go:build !mobile

package utils

import "os"

// IsMobile 桌面构建返回 false
// 设置 ROSEDAY_TOUCH_EMULATE=1 可以在桌面上模拟触屏行为（隐藏自绘光标、关闭悬停音效）
func IsMobile() bool {
	return os.Getenv("ROSEDAY_TOUCH_EMULATE") == "1"
}
