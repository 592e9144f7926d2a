// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包保存该文件系统，让 config 和 game 包按 "data/..." 路径读取。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// ErrNotInitialized 在 Init 之前访问资源
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

// Prefix 嵌入资源路径的统一前缀
const Prefix = "data/"

var (
	dataFS      fs.FS
	initialized bool
)

// Init 设置嵌入的文件系统
// 必须在 main() 开始时、任何资源加载之前调用
// 参数接受 fs.FS，测试中可以传入 fstest.MapFS
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// IsEmbeddedPath 判断路径是否指向嵌入资源
func IsEmbeddedPath(path string) bool {
	return strings.HasPrefix(normalize(path), Prefix)
}

// normalize 统一分隔符并去掉 "./" 前缀
func normalize(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "./")
}

func checkPath(path string) (string, error) {
	if !initialized {
		return "", ErrNotInitialized
	}
	path = normalize(path)
	if !strings.HasPrefix(path, Prefix) {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with %q)", path, Prefix)
	}
	return path, nil
}

// Open 打开嵌入文件
func Open(path string) (fs.File, error) {
	p, err := checkPath(path)
	if err != nil {
		return nil, err
	}
	return dataFS.Open(p)
}

// ReadFile 读取嵌入文件的全部内容
func ReadFile(path string) ([]byte, error) {
	p, err := checkPath(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, p)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	p, err := checkPath(path)
	if err != nil {
		return false
	}
	_, err = fs.Stat(dataFS, p)
	return err == nil
}

// Glob 匹配嵌入文件
func Glob(pattern string) ([]string, error) {
	p, err := checkPath(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(dataFS, p)
}
