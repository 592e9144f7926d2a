package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/decker502/roseday/pkg/components"
	"github.com/decker502/roseday/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultCardConfigPath 内嵌的默认贺卡配置
const DefaultCardConfigPath = "data/card.yaml"

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid card config")

// CardConfig 贺卡的全部可配置内容
//
// 文案、按钮顺序、资源路径和节奏参数都在这里，
// 不同版本的贺卡只需要换一份 YAML，不需要复制界面代码。
type CardConfig struct {
	Recipient string `yaml:"recipient"` // 收件人
	Relation  string `yaml:"relation"`  // 关系称呼
	Tone      string `yaml:"tone"`      // 语气（Romantic/Cute/Poetic/Friendly）
	Sender    string `yaml:"sender"`    // 署名
	Message   string `yaml:"message"`   // 祝福正文（所有颜色共用）

	Intro    IntroText    `yaml:"intro"`
	Choice   ChoiceText   `yaml:"choice"`
	Blooming BloomingText `yaml:"blooming"`
	Reveal   RevealText   `yaml:"reveal"`

	Assets    AssetMap       `yaml:"assets"`
	Timings   Timings        `yaml:"timings"`
	Particles ParticleConfig `yaml:"particles"`
	Overlay   OverlayConfig  `yaml:"overlay"`
}

// IntroText 开场界面文案
type IntroText struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Button   string `yaml:"button"`
}

// ChoiceOption 颜色选择界面上的一张卡片
type ChoiceOption struct {
	Color   string `yaml:"color"`
	Label   string `yaml:"label"`
	Meaning string `yaml:"meaning"`
}

// ChoiceText 颜色选择界面文案，Options 的顺序即按钮顺序
type ChoiceText struct {
	Title   string         `yaml:"title"`
	Options []ChoiceOption `yaml:"options"`
}

// BloomingText 绽放界面文案
type BloomingText struct {
	Prompt          string        `yaml:"prompt"`
	LoadingInitial  string        `yaml:"loading_initial"`
	LoadingMessages []string      `yaml:"loading_messages"`
	LoadingInterval time.Duration `yaml:"loading_interval"`
	PhraseLines     []PhraseLine  `yaml:"phrase_lines"`
}

// PhraseLine 玫瑰绽放后逐字浮现的一行文字
type PhraseLine struct {
	Text      string        `yaml:"text"`
	DelayBase time.Duration `yaml:"delay_base"`
	CharDelay time.Duration `yaml:"char_delay"`
}

// RevealText 祝福展示界面文案
type RevealText struct {
	Heading       string   `yaml:"heading"`
	ChooseAnother string   `yaml:"choose_another"`
	PlaySong      string   `yaml:"play_song"`
	PauseSong     string   `yaml:"pause_song"`
	ImageMissing  string   `yaml:"image_missing"`
	Footer        []string `yaml:"footer"`
}

// AssetMap 颜色到图片的映射以及背景音乐
// 引用可以是内嵌路径（data/...）、本地相对路径或 http(s) URL
type AssetMap struct {
	Music         string            `yaml:"music"`
	Images        map[string]string `yaml:"images"`
	FallbackImage string            `yaml:"fallback_image"`
}

// Timings 界面切换的节奏参数
type Timings struct {
	ChoiceCommitDelay time.Duration   `yaml:"choice_commit_delay"`
	RevealDelay       time.Duration   `yaml:"reveal_delay"`
	BloomStageDelays  []time.Duration `yaml:"bloom_stage_delays"`
}

// ParticleConfig 拖尾和爆发粒子参数
type ParticleConfig struct {
	TrailKeep     int           `yaml:"trail_keep"`      // 追加新粒子前保留的旧粒子数
	TrailTick     time.Duration `yaml:"trail_tick"`      // 定时移除最旧粒子的间隔
	TrailScaleMin float64       `yaml:"trail_scale_min"` // 缩放下限（含）
	TrailScaleMax float64       `yaml:"trail_scale_max"` // 缩放上限（不含）
	BurstCount    int           `yaml:"burst_count"`     // 每次点击生成的粒子数
	BurstSpread   float64       `yaml:"burst_spread"`    // 每个轴向的最大偏移（像素）
	BurstLifetime time.Duration `yaml:"burst_lifetime"`  // 批次存活时间
	Palette       []string      `yaml:"palette"`         // 爆发粒子颜色（#rrggbb）
}

// OverlayConfig 背景飘落花瓣
type OverlayConfig struct {
	PetalCount int `yaml:"petal_count"`
}

// BloomStageCount 绽放阶段数，每个阶段展开一片花瓣
const BloomStageCount = 12

// DefaultBloomStageDelays 绽放各阶段之间的间隔，先快后慢收尾
func DefaultBloomStageDelays() []time.Duration {
	ms := []int{100, 80, 80, 70, 70, 70, 60, 60, 60, 50, 50, 300}
	delays := make([]time.Duration, len(ms))
	for i, v := range ms {
		delays[i] = time.Duration(v) * time.Millisecond
	}
	return delays
}

// DefaultParticleConfig 返回默认粒子参数
func DefaultParticleConfig() ParticleConfig {
	return ParticleConfig{
		TrailKeep:     10,
		TrailTick:     80 * time.Millisecond,
		TrailScaleMin: 0.3,
		TrailScaleMax: 0.8,
		BurstCount:    8,
		BurstSpread:   40,
		BurstLifetime: 1500 * time.Millisecond,
		Palette:       []string{"#f87171", "#f472b6", "#fb7185", "#ef4444"},
	}
}

// DefaultTimings 返回默认节奏参数
func DefaultTimings() Timings {
	return Timings{
		ChoiceCommitDelay: 450 * time.Millisecond,
		RevealDelay:       4500 * time.Millisecond,
		BloomStageDelays:  DefaultBloomStageDelays(),
	}
}

// DefaultCardConfig 返回内置的完整配置
// YAML 中缺失的字段保留这里的默认值
func DefaultCardConfig() *CardConfig {
	const message = "Chaahe hum baat karein ya na karein, tum aaj bhi mere liye wahi ho jo pehle thi My sweetheart .... " +
		"Sending you this rose to remind you that no matter the distance or silence, you are always in my heart. Happy Rose Day"

	return &CardConfig{
		Recipient: "Vanshika",
		Relation:  "Soulmate",
		Tone:      "Romantic",
		Sender:    "Your Dino",
		Message:   message,
		Intro: IntroText{
			Title:    "For Vanshika",
			Subtitle: "A Surprise From Your Dino",
			Button:   "Let's Go",
		},
		Choice: ChoiceText{
			Title: "Pick a Rose",
			Options: []ChoiceOption{
				{Color: "Red", Label: "Red", Meaning: "True Love"},
				{Color: "Pink", Label: "Pink", Meaning: "Grace"},
				{Color: "Yellow", Label: "Yellow", Meaning: "Friendship"},
				{Color: "White", Label: "White", Meaning: "Purity"},
				{Color: "Blue", Label: "Blue", Meaning: "Mystery"},
			},
		},
		Blooming: BloomingText{
			Prompt:         "Touch here my love...",
			LoadingInitial: "Preparing our garden...",
			LoadingMessages: []string{
				"Gathering the freshest roses...",
				"Adding your favorite colors...",
				"Almost ready, Vanshika...",
			},
			LoadingInterval: time.Second,
			PhraseLines: []PhraseLine{
				{Text: "Happy", DelayBase: 400 * time.Millisecond, CharDelay: 80 * time.Millisecond},
				{Text: "Rose Day", DelayBase: 1000 * time.Millisecond, CharDelay: 80 * time.Millisecond},
				{Text: "Vanshika", DelayBase: 1800 * time.Millisecond, CharDelay: 120 * time.Millisecond},
			},
		},
		Reveal: RevealText{
			Heading:       "My Sweetheart...",
			ChooseAnother: "Choose Another",
			PlaySong:      "Play Our Special Song",
			PauseSong:     "Pause Our Song",
			ImageMissing:  "Image Not Found",
			Footer: []string{
				"Handcrafted for Vanshika with Eternal Love",
				"By Your Favorite Person",
			},
		},
		Assets: AssetMap{
			Music: "assets/audio.mp3",
			Images: map[string]string{
				"Red":    "assets/red.jpg",
				"Pink":   "assets/pink.jpg",
				"Yellow": "assets/yellow.jpg",
				"White":  "assets/white.jpg",
				"Blue":   "assets/blue.jpg",
			},
			FallbackImage: "assets/red.jpg",
		},
		Timings:   DefaultTimings(),
		Particles: DefaultParticleConfig(),
		Overlay:   OverlayConfig{PetalCount: 35},
	}
}

// LoadCardConfig 从路径加载配置
// "data/" 开头的路径从内嵌资源读取，其余从磁盘读取
//
// 参数：
//   - path: 配置文件路径，为空时使用 DefaultCardConfigPath
//
// 返回：
//   - *CardConfig: 合并了默认值并通过校验的配置
//   - error: 读取、解析或校验失败
func LoadCardConfig(path string) (*CardConfig, error) {
	if path == "" {
		path = DefaultCardConfigPath
	}

	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(path, "data/") && embedded.IsInitialized() {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read card config %s: %w", path, err)
	}

	cfg, err := ParseCardConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse card config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseCardConfig 解析 YAML 并与默认值合并
func ParseCardConfig(data []byte) (*CardConfig, error) {
	cfg := DefaultCardConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal card config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查配置是否可用
// 图片映射必须覆盖全部五种颜色或提供 FallbackImage
func (c *CardConfig) Validate() error {
	if strings.TrimSpace(c.Message) == "" {
		return fmt.Errorf("%w: message is empty", ErrInvalidConfig)
	}
	if _, err := components.ParseTone(c.Tone); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	for name := range c.Assets.Images {
		if _, err := components.ParseRoseColor(name); err != nil {
			return fmt.Errorf("%w: assets.images: %v", ErrInvalidConfig, err)
		}
	}
	if c.Assets.FallbackImage == "" {
		for _, rc := range components.AllRoseColors {
			if c.lookupImage(rc) == "" {
				return fmt.Errorf("%w: no image for %s and no fallback_image", ErrInvalidConfig, rc)
			}
		}
	}

	seen := make(map[components.RoseColor]bool)
	for _, opt := range c.Choice.Options {
		rc, err := components.ParseRoseColor(opt.Color)
		if err != nil {
			return fmt.Errorf("%w: choice.options: %v", ErrInvalidConfig, err)
		}
		if seen[rc] {
			return fmt.Errorf("%w: choice.options lists %s twice", ErrInvalidConfig, rc)
		}
		seen[rc] = true
	}
	if len(c.Choice.Options) == 0 {
		return fmt.Errorf("%w: choice.options is empty", ErrInvalidConfig)
	}

	t := c.Timings
	if t.ChoiceCommitDelay < 0 || t.RevealDelay < 0 {
		return fmt.Errorf("%w: negative timing", ErrInvalidConfig)
	}
	if len(t.BloomStageDelays) != BloomStageCount {
		return fmt.Errorf("%w: bloom_stage_delays needs %d entries, got %d", ErrInvalidConfig, BloomStageCount, len(t.BloomStageDelays))
	}
	for i, d := range t.BloomStageDelays {
		if d <= 0 {
			return fmt.Errorf("%w: bloom_stage_delays[%d] must be positive", ErrInvalidConfig, i)
		}
	}
	if c.Blooming.LoadingInterval <= 0 {
		return fmt.Errorf("%w: blooming.loading_interval must be positive", ErrInvalidConfig)
	}

	p := c.Particles
	if p.TrailKeep < 0 || p.BurstCount <= 0 || p.TrailTick <= 0 || p.BurstLifetime <= 0 {
		return fmt.Errorf("%w: particle counts and durations must be positive", ErrInvalidConfig)
	}
	if p.TrailScaleMax < p.TrailScaleMin {
		return fmt.Errorf("%w: trail_scale_max < trail_scale_min", ErrInvalidConfig)
	}
	if len(p.Palette) == 0 {
		return fmt.Errorf("%w: particles.palette is empty", ErrInvalidConfig)
	}
	for _, hex := range p.Palette {
		if _, err := ParseHexColor(hex); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if c.Overlay.PetalCount < 0 {
		return fmt.Errorf("%w: overlay.petal_count is negative", ErrInvalidConfig)
	}
	return nil
}

// ImageRef 返回颜色对应的图片引用，缺失时回退到 FallbackImage
func (c *CardConfig) ImageRef(rc components.RoseColor) string {
	if ref := c.lookupImage(rc); ref != "" {
		return ref
	}
	return c.Assets.FallbackImage
}

// lookupImage 按颜色名称（忽略大小写）查找图片
func (c *CardConfig) lookupImage(rc components.RoseColor) string {
	if ref, ok := c.Assets.Images[rc.String()]; ok {
		return ref
	}
	for name, ref := range c.Assets.Images {
		if strings.EqualFold(name, rc.String()) {
			return ref
		}
	}
	return ""
}

// ChoiceColors 按界面顺序返回可选颜色
func (c *CardConfig) ChoiceColors() []components.RoseColor {
	colors := make([]components.RoseColor, 0, len(c.Choice.Options))
	for _, opt := range c.Choice.Options {
		if rc, err := components.ParseRoseColor(opt.Color); err == nil {
			colors = append(colors, rc)
		}
	}
	return colors
}

// ParsedTone 返回解析后的语气，校验过的配置不会失败
func (c *CardConfig) ParsedTone() components.Tone {
	tone, _ := components.ParseTone(c.Tone)
	return tone
}

// ParseHexColor 解析 #rrggbb 或 #rrggbbaa
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("bad hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad hex color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// ParsePalette 将十六进制颜色列表转换为 RGBA
func ParsePalette(hexes []string) ([]color.RGBA, error) {
	palette := make([]color.RGBA, 0, len(hexes))
	for _, h := range hexes {
		c, err := ParseHexColor(h)
		if err != nil {
			return nil, err
		}
		palette = append(palette, c)
	}
	return palette, nil
}
