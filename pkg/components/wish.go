package components

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTone 语气名称无法识别
var ErrUnknownTone = errors.New("unknown wish tone")

// Tone 祝福语的语气
type Tone int

const (
	ToneRomantic Tone = iota
	ToneCute
	TonePoetic
	ToneFriendly
)

func (t Tone) String() string {
	switch t {
	case ToneRomantic:
		return "Romantic"
	case ToneCute:
		return "Cute"
	case TonePoetic:
		return "Poetic"
	case ToneFriendly:
		return "Friendly"
	default:
		return fmt.Sprintf("Tone(%d)", int(t))
	}
}

// ParseTone 解析语气名称（忽略大小写）
func ParseTone(name string) (Tone, error) {
	for _, t := range []Tone{ToneRomantic, ToneCute, TonePoetic, ToneFriendly} {
		if strings.EqualFold(t.String(), strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return ToneRomantic, fmt.Errorf("%w: %q", ErrUnknownTone, name)
}

// Wish 最终界面展示的祝福内容
// 在颜色确认时一次性构造，之后不再修改（值类型，复制传递）
type Wish struct {
	Recipient string // 收件人
	Relation  string // 关系称呼
	Tone      Tone   // 语气
	Message   string // 祝福正文
	ImageRef  string // 玫瑰图片引用（相对路径、嵌入路径或 URL）
}
