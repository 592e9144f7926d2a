package components

import "image/color"

// Theme 某一玫瑰颜色对应的配色
// 花瓣渐变使用 Primary/Secondary/Light，背景和飘落花瓣使用 Background/Petal
type Theme struct {
	Primary    color.RGBA
	Secondary  color.RGBA
	Light      color.RGBA
	Dark       color.RGBA
	Background color.RGBA
	Petal      color.RGBA
}

var (
	// IntroBackground 开场界面背景色（与颜色选择无关）
	IntroBackground = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
	// DefaultPetalColor 尚未确认颜色时飘落花瓣的颜色
	DefaultPetalColor = color.RGBA{R: 0xfe, G: 0xca, B: 0xca, A: 0xff}
)

var redTheme = Theme{
	Primary:    color.RGBA{R: 0xdc, G: 0x26, B: 0x26, A: 0xff},
	Secondary:  color.RGBA{R: 0x7f, G: 0x1d, B: 0x1d, A: 0xff},
	Light:      color.RGBA{R: 0xfe, G: 0xf2, B: 0xf2, A: 0xff},
	Dark:       color.RGBA{R: 0x45, G: 0x0a, B: 0x0a, A: 0xff},
	Background: color.RGBA{R: 0xfe, G: 0xf2, B: 0xf2, A: 0xff},
	Petal:      color.RGBA{R: 0xf8, G: 0x71, B: 0x71, A: 0xff},
}

// ThemeFor 返回颜色对应的配色
// 未知颜色回退到红色配色，保证任何已确认颜色都有可用主题
func ThemeFor(c RoseColor) Theme {
	switch c {
	case RosePink:
		return Theme{
			Primary:    color.RGBA{R: 0xec, G: 0x48, B: 0x99, A: 0xff},
			Secondary:  color.RGBA{R: 0x9d, G: 0x17, B: 0x4d, A: 0xff},
			Light:      color.RGBA{R: 0xfd, G: 0xf2, B: 0xf8, A: 0xff},
			Dark:       color.RGBA{R: 0x50, G: 0x07, B: 0x24, A: 0xff},
			Background: color.RGBA{R: 0xfd, G: 0xf2, B: 0xf8, A: 0xff},
			Petal:      color.RGBA{R: 0xfb, G: 0xcf, B: 0xe8, A: 0xff},
		}
	case RoseYellow:
		return Theme{
			Primary:    color.RGBA{R: 0xea, G: 0xb3, B: 0x08, A: 0xff},
			Secondary:  color.RGBA{R: 0x85, G: 0x4d, B: 0x0e, A: 0xff},
			Light:      color.RGBA{R: 0xfe, G: 0xfc, B: 0xe8, A: 0xff},
			Dark:       color.RGBA{R: 0x42, G: 0x20, B: 0x06, A: 0xff},
			Background: color.RGBA{R: 0xfe, G: 0xfc, B: 0xe8, A: 0xff},
			Petal:      color.RGBA{R: 0xfe, G: 0xf0, B: 0x8a, A: 0xff},
		}
	case RoseWhite:
		return Theme{
			Primary:    color.RGBA{R: 0xf8, G: 0xfa, B: 0xfc, A: 0xff},
			Secondary:  color.RGBA{R: 0x47, G: 0x55, B: 0x69, A: 0xff},
			Light:      color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
			Dark:       color.RGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff},
			Background: color.RGBA{R: 0xf8, G: 0xfa, B: 0xfc, A: 0xff},
			Petal:      color.RGBA{R: 0xf1, G: 0xf5, B: 0xf9, A: 0xff},
		}
	case RoseBlue:
		return Theme{
			Primary:    color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff},
			Secondary:  color.RGBA{R: 0x1e, G: 0x3a, B: 0x8a, A: 0xff},
			Light:      color.RGBA{R: 0xef, G: 0xf6, B: 0xff, A: 0xff},
			Dark:       color.RGBA{R: 0x17, G: 0x25, B: 0x54, A: 0xff},
			Background: color.RGBA{R: 0xef, G: 0xf6, B: 0xff, A: 0xff},
			Petal:      color.RGBA{R: 0x93, G: 0xc5, B: 0xfd, A: 0xff},
		}
	default:
		return redTheme
	}
}
