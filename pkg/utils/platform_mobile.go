//go:build mobile

package utils

// IsMobile 移动端构建始终为触屏设备
func IsMobile() bool {
	return true
}
