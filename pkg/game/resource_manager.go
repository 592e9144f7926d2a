package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/decker502/roseday/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// ImageState 异步图片加载的状态
type ImageState int

const (
	ImageUnrequested ImageState = iota
	ImageLoading
	ImageReady
	ImageMissing
)

// String 返回状态名称
func (s ImageState) String() string {
	switch s {
	case ImageUnrequested:
		return "Unrequested"
	case ImageLoading:
		return "Loading"
	case ImageReady:
		return "Ready"
	case ImageMissing:
		return "Missing"
	default:
		return fmt.Sprintf("ImageState(%d)", int(s))
	}
}

// fetchTimeout 远程资源的请求超时
const fetchTimeout = 10 * time.Second

// imageResult 后台加载完成的图片
type imageResult struct {
	ref string
	img image.Image
	err error
}

// ResourceManager is responsible for loading and caching card assets.
//
// A resource reference is resolved in this order:
//   - "data/..." refers to the embedded file system (see pkg/embedded)
//   - "http://" or "https://" is fetched over the network
//   - anything else is a path on the local disk
//
// Images needed by the reveal screen can be requested asynchronously with
// RequestImage; the fetch and decode happen on a background goroutine and
// the finished image is adopted by PollImages on the game loop. All maps are
// only touched from the game loop, so no locking is needed.
type ResourceManager struct {
	imageCache    map[string]*ebiten.Image    // ref -> Image
	imageState    map[string]ImageState       // ref -> async load state
	imageErrors   map[string]error            // ref -> last load error
	audioContext  *audio.Context              // Global audio context for audio decoding
	fontFaceCache map[string]*text.GoTextFace // "ref:size" -> face
	defaultSource *text.GoTextFaceSource

	results chan imageResult
	client  *http.Client
}

// NewResourceManager creates and initializes a new ResourceManager instance.
// audioContext may be nil when the caller never loads music.
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		imageCache:    make(map[string]*ebiten.Image),
		imageState:    make(map[string]ImageState),
		imageErrors:   make(map[string]error),
		audioContext:  audioContext,
		fontFaceCache: make(map[string]*text.GoTextFace),
		results:       make(chan imageResult, 16),
		client:        &http.Client{Timeout: fetchTimeout},
	}
}

// IsRemoteRef 判断引用是否指向网络资源
func IsRemoteRef(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// refExt 返回引用的小写扩展名（URL 忽略查询参数）
func refExt(ref string) string {
	if IsRemoteRef(ref) {
		if u, err := url.Parse(ref); err == nil {
			return strings.ToLower(path.Ext(u.Path))
		}
	}
	return strings.ToLower(path.Ext(strings.ReplaceAll(ref, "\\", "/")))
}

// ReadRef 读取引用指向的原始字节
func (rm *ResourceManager) ReadRef(ref string) ([]byte, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, fmt.Errorf("empty resource reference")
	}

	if IsRemoteRef(ref) {
		resp, err := rm.client.Get(ref)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", ref, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", ref, resp.Status)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", ref, err)
		}
		return data, nil
	}

	if embedded.IsEmbeddedPath(ref) {
		data, err := embedded.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded resource %s: %w", ref, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource %s: %w", ref, err)
	}
	return data, nil
}

func (rm *ResourceManager) decodeImage(ref string) (image.Image, error) {
	data, err := rm.ReadRef(ref)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", ref, err)
	}
	return img, nil
}

// LoadImage 同步加载图片并缓存
// 已缓存的引用直接返回缓存
func (rm *ResourceManager) LoadImage(ref string) (*ebiten.Image, error) {
	if cached, ok := rm.imageCache[ref]; ok {
		return cached, nil
	}

	img, err := rm.decodeImage(ref)
	if err != nil {
		rm.imageState[ref] = ImageMissing
		rm.imageErrors[ref] = err
		return nil, err
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[ref] = ebitenImg
	rm.imageState[ref] = ImageReady
	return ebitenImg, nil
}

// GetImage retrieves a previously loaded image from the cache, or nil.
func (rm *ResourceManager) GetImage(ref string) *ebiten.Image {
	return rm.imageCache[ref]
}

// RequestImage 在后台开始加载图片
// 已加载、加载中或已失败的引用不会重复请求
func (rm *ResourceManager) RequestImage(ref string) {
	if rm.imageState[ref] != ImageUnrequested {
		return
	}
	rm.imageState[ref] = ImageLoading
	go func() {
		img, err := rm.decodeImage(ref)
		rm.results <- imageResult{ref: ref, img: img, err: err}
	}()
}

// PollImages 在游戏循环中接收已完成的后台加载，返回本次处理的数量
func (rm *ResourceManager) PollImages() int {
	n := 0
	for {
		select {
		case res := <-rm.results:
			n++
			if res.err != nil {
				log.Printf("[ResourceManager] Warning: %v", res.err)
				rm.imageState[res.ref] = ImageMissing
				rm.imageErrors[res.ref] = res.err
				continue
			}
			rm.imageCache[res.ref] = ebiten.NewImageFromImage(res.img)
			rm.imageState[res.ref] = ImageReady
		default:
			return n
		}
	}
}

// Image 返回图片及其加载状态
func (rm *ResourceManager) Image(ref string) (*ebiten.Image, ImageState) {
	return rm.imageCache[ref], rm.imageState[ref]
}

// ImageError 返回引用最近一次加载失败的原因
func (rm *ResourceManager) ImageError(ref string) error {
	return rm.imageErrors[ref]
}

// RetryImage 清除失败状态，下一次 RequestImage 会重新加载
// 用于配置热重载后图片引用指向的文件被修复的情况
func (rm *ResourceManager) RetryImage(ref string) {
	if rm.imageState[ref] == ImageMissing {
		delete(rm.imageState, ref)
		delete(rm.imageErrors, ref)
	}
}

// LoadMusic 加载背景音乐并包装为无限循环
// 支持 .mp3、.ogg、.wav；返回的播放器归调用方所有，不缓存
func (rm *ResourceManager) LoadMusic(ref string) (*audio.Player, error) {
	if rm.audioContext == nil {
		return nil, fmt.Errorf("no audio context for %s", ref)
	}

	// 先检查格式，避免无意义的读取
	ext := refExt(ref)
	switch ext {
	case ".mp3", ".ogg", ".wav":
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg, .wav)", ext)
	}

	data, err := rm.ReadRef(ref)
	if err != nil {
		return nil, err
	}
	reader := bytes.NewReader(data)

	var stream interface {
		io.ReadSeeker
		Length() int64
	}
	switch ext {
	case ".mp3":
		s, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", ref, err)
		}
		stream = s
	case ".ogg":
		s, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", ref, err)
		}
		stream = s
	case ".wav":
		s, err := wav.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV audio %s: %w", ref, err)
		}
		stream = s
	}

	loopStream := audio.NewInfiniteLoop(stream, stream.Length())
	player, err := rm.audioContext.NewPlayer(loopStream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", ref, err)
	}
	return player, nil
}

// LoadFont loads a TrueType/OpenType font and creates a face with the given size.
func (rm *ResourceManager) LoadFont(ref string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", ref, size)
	if cached, ok := rm.fontFaceCache[cacheKey]; ok {
		return cached, nil
	}

	data, err := rm.ReadRef(ref)
	if err != nil {
		return nil, err
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", ref, err)
	}

	face := &text.GoTextFace{Source: source, Size: size, Direction: text.DirectionLeftToRight}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// DefaultFace 返回内置 Go Regular 字体的指定字号
func (rm *ResourceManager) DefaultFace(size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("goregular:%.1f", size)
	if cached, ok := rm.fontFaceCache[cacheKey]; ok {
		return cached, nil
	}

	if rm.defaultSource == nil {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil, fmt.Errorf("failed to create default font source: %w", err)
		}
		rm.defaultSource = source
	}

	face := &text.GoTextFace{Source: rm.defaultSource, Size: size, Direction: text.DirectionLeftToRight}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}
