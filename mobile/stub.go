//go:build !mobile

// Package mobile 是 ebitenmobile bind 的入口
//
// 贺卡的移动端代码在 mobile.go 和 embed.go 中，只在 -tags mobile 时编译；
// 普通构建只编译本文件，使 go vet ./... 等命令能正常处理该目录。
package mobile

// Dummy 普通构建下的占位导出
func Dummy() {}
