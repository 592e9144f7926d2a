package components

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownColor 颜色名称不在固定的五种玫瑰颜色之内
var ErrUnknownColor = errors.New("unknown rose color")

// RoseColor 玫瑰颜色（封闭集合，只有五个取值）
type RoseColor int

const (
	RoseRed RoseColor = iota
	RosePink
	RoseYellow
	RoseWhite
	RoseBlue
)

// AllRoseColors 按默认展示顺序列出全部颜色
var AllRoseColors = []RoseColor{RoseRed, RosePink, RoseYellow, RoseWhite, RoseBlue}

// String 返回颜色名称（与配置文件中的写法一致）
func (c RoseColor) String() string {
	switch c {
	case RoseRed:
		return "Red"
	case RosePink:
		return "Pink"
	case RoseYellow:
		return "Yellow"
	case RoseWhite:
		return "White"
	case RoseBlue:
		return "Blue"
	default:
		return fmt.Sprintf("RoseColor(%d)", int(c))
	}
}

// Valid 检查颜色是否属于五种已知颜色
func (c RoseColor) Valid() bool {
	return c >= RoseRed && c <= RoseBlue
}

// ParseRoseColor 将名称解析为 RoseColor（忽略大小写和首尾空白）
//
// 参数：
//   - name: 颜色名称，如 "Red"、"pink"
//
// 返回：
//   - RoseColor: 解析结果
//   - error: 名称未知时返回包装了 ErrUnknownColor 的错误
func ParseRoseColor(name string) (RoseColor, error) {
	trimmed := strings.TrimSpace(name)
	for _, c := range AllRoseColors {
		if strings.EqualFold(c.String(), trimmed) {
			return c, nil
		}
	}
	return RoseRed, fmt.Errorf("%w: %q", ErrUnknownColor, name)
}
