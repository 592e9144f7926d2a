package game

import (
	"testing"

	"github.com/decker502/roseday/pkg/components"
	"github.com/decker502/roseday/pkg/config"
)

// TestResolveExhaustive 五种颜色都有非空正文和图片引用
func TestResolveExhaustive(t *testing.T) {
	r := NewWishResolver(nil)
	def := config.DefaultCardConfig()

	for _, c := range components.AllRoseColors {
		w := r.Resolve(c)
		if w.Message == "" {
			t.Errorf("%s: empty message", c)
		}
		if w.Message != def.Message {
			t.Errorf("%s: message differs from the shared text", c)
		}
		if w.ImageRef == "" {
			t.Errorf("%s: empty image ref", c)
		}
		if w.Recipient != "Vanshika" || w.Relation != "Soulmate" || w.Tone != components.ToneRomantic {
			t.Errorf("%s: unexpected wish header %+v", c, w)
		}
	}

	if got := r.Resolve(components.RoseRed).ImageRef; got != "assets/red.jpg" {
		t.Errorf("red image = %q", got)
	}
	if got := r.Resolve(components.RoseBlue).ImageRef; got != "assets/blue.jpg" {
		t.Errorf("blue image = %q", got)
	}
}

func TestResolveFallbackAndReload(t *testing.T) {
	cfg := config.DefaultCardConfig()
	delete(cfg.Assets.Images, "White")
	r := NewWishResolver(cfg)

	if got := r.Resolve(components.RoseWhite).ImageRef; got != cfg.Assets.FallbackImage {
		t.Errorf("missing image should fall back, got %q", got)
	}

	before := r.Resolve(components.RosePink)

	next := config.DefaultCardConfig()
	next.Recipient = "Mira"
	next.Message = "Another message"
	r.SetConfig(next)
	after := r.Resolve(components.RosePink)

	if after.Recipient != "Mira" || after.Message != "Another message" {
		t.Errorf("reloaded wish = %+v", after)
	}
	if before.Recipient != "Vanshika" {
		t.Error("previously resolved wish must not change")
	}

	r.SetConfig(nil)
	if r.Resolve(components.RosePink).Recipient != "Mira" {
		t.Error("SetConfig(nil) should keep the current config")
	}
}
