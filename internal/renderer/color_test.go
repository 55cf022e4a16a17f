package renderer

import "testing"

func TestColorFromHexRoundTrip(t *testing.T) {
	c, err := ColorFromHex("#ff0080")
	if err != nil {
		t.Fatalf("ColorFromHex: %v", err)
	}
	r, g, b := c.RGB()
	if r != 0xff || g != 0x00 || b != 0x80 {
		t.Fatalf("RGB() = (%d, %d, %d), want (255, 0, 128)", r, g, b)
	}
}

func TestColorFromHexInvalid(t *testing.T) {
	if _, err := ColorFromHex("not-a-color"); err == nil {
		t.Fatal("expected an error for an invalid hex string")
	}
}

func TestColorDefaultIsDefault(t *testing.T) {
	if !ColorDefault.IsDefault() {
		t.Error("ColorDefault.IsDefault() should be true")
	}
	if ColorFromRGB(0, 0, 0).IsDefault() {
		t.Error("black should not be the default color")
	}
}

func TestColorBlend(t *testing.T) {
	black := ColorFromRGB(0, 0, 0)
	white := ColorFromRGB(255, 255, 255)

	mid := black.Blend(white, 0.5)
	if mid.IsDefault() {
		t.Fatal("blended color should not be default")
	}
	r, g, b := mid.RGB()
	if r == 0 || r == 255 || g != r || b != r {
		t.Errorf("Blend(0.5) = (%d, %d, %d), want a midtone gray", r, g, b)
	}
}

func TestColorBlendWithDefaultShortCircuits(t *testing.T) {
	white := ColorFromRGB(255, 255, 255)

	if got := ColorDefault.Blend(white, 0.9); !got.Equals(white) {
		t.Error("Blend with t >= 0.5 should pick the non-default side")
	}
	if got := ColorDefault.Blend(white, 0.1); !got.Equals(ColorDefault) {
		t.Error("Blend with t < 0.5 should pick the default side")
	}
}

func TestContrastingForeground(t *testing.T) {
	if got := ContrastingForeground(ColorFromRGB(10, 10, 10)); !got.Equals(ColorFromRGB(255, 255, 255)) {
		t.Error("a near-black background should contrast best with white")
	}
	if got := ContrastingForeground(ColorFromRGB(245, 245, 245)); !got.Equals(ColorFromRGB(0, 0, 0)) {
		t.Error("a near-white background should contrast best with black")
	}
}
