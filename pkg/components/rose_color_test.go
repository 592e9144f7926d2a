package components

import (
	"errors"
	"testing"
)

func TestParseRoseColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RoseColor
		wantErr bool
	}{
		{"exact red", "Red", RoseRed, false},
		{"lower pink", "pink", RosePink, false},
		{"upper yellow", "YELLOW", RoseYellow, false},
		{"padded white", "  White ", RoseWhite, false},
		{"blue", "Blue", RoseBlue, false},
		{"unknown", "Green", RoseRed, true},
		{"empty", "", RoseRed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRoseColor(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownColor) {
					t.Fatalf("ParseRoseColor(%q) error = %v, want ErrUnknownColor", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRoseColor(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseRoseColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestRoseColorStringRoundTrip 每个颜色的名称都能解析回自身
func TestRoseColorStringRoundTrip(t *testing.T) {
	for _, c := range AllRoseColors {
		parsed, err := ParseRoseColor(c.String())
		if err != nil {
			t.Fatalf("ParseRoseColor(%s) failed: %v", c, err)
		}
		if parsed != c {
			t.Errorf("round trip %s -> %s", c, parsed)
		}
		if !c.Valid() {
			t.Errorf("%s should be valid", c)
		}
	}

	if RoseColor(42).Valid() {
		t.Error("RoseColor(42) should not be valid")
	}
	if RoseColor(42).String() != "RoseColor(42)" {
		t.Errorf("unexpected String for unknown color: %s", RoseColor(42).String())
	}
}

func TestThemeForFallback(t *testing.T) {
	seen := make(map[Theme]RoseColor)
	for _, c := range AllRoseColors {
		theme := ThemeFor(c)
		if theme.Primary.A == 0 || theme.Background.A == 0 || theme.Petal.A == 0 {
			t.Errorf("theme for %s has transparent colors: %+v", c, theme)
		}
		if other, dup := seen[theme]; dup {
			t.Errorf("theme for %s duplicates %s", c, other)
		}
		seen[theme] = c
	}

	// 未知颜色回退到红色主题
	if ThemeFor(RoseColor(99)) != ThemeFor(RoseRed) {
		t.Error("unknown color should fall back to the red theme")
	}
}

func TestParseTone(t *testing.T) {
	tone, err := ParseTone("poetic")
	if err != nil || tone != TonePoetic {
		t.Fatalf("ParseTone(poetic) = %v, %v", tone, err)
	}
	if _, err := ParseTone("grumpy"); !errors.Is(err, ErrUnknownTone) {
		t.Errorf("expected ErrUnknownTone, got %v", err)
	}
}

func TestViewStateString(t *testing.T) {
	want := map[ViewState]string{
		ViewIntro:    "Intro",
		ViewChoice:   "Choice",
		ViewBlooming: "Blooming",
		ViewReveal:   "Reveal",
	}
	for v, s := range want {
		if v.String() != s {
			t.Errorf("%d.String() = %s, want %s", int(v), v.String(), s)
		}
	}
}
