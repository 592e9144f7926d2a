//go:build !android

package utils

// EnsureStorageDir 桌面平台由 gdata 自行创建目录
func EnsureStorageDir() error {
	return nil
}
