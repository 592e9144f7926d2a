//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 在打开 gdata 之前准备 Android 上的偏好目录
//
// gdata 在 Android 上写入 /data/data/{package}/，但不会预先创建子目录，
// 目录不存在时第一次保存偏好会失败。
func EnsureStorageDir() error {
	cmdline, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return fmt.Errorf("failed to read process name: %w", err)
	}
	pkg := string(bytes.Trim(bytes.ReplaceAll(cmdline, []byte{0}, nil), "\n"))
	if pkg == "" {
		return fmt.Errorf("empty process name in /proc/self/cmdline")
	}

	dir := filepath.Join("/data/data", pkg, "settings")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory %s: %w", dir, err)
	}
	return nil
}
