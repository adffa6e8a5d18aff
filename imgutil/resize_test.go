package imgutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestSampleSize(t *testing.T) {
	tests := []struct {
		name                string
		width, height       int
		maxWidth, maxHeight int
		want                int
	}{
		{"fits already", 300, 200, 400, 400, 1},
		{"camera shot", 1600, 1200, 400, 400, 2},
		{"large panorama", 4000, 3000, 400, 400, 4},
		{"exact bounds", 400, 400, 400, 400, 1},
		{"one side over", 800, 300, 400, 400, 1},
		{"huge square", 6400, 6400, 400, 400, 8},
	}

	for _, tt := range tests {
		got := SampleSize(tt.width, tt.height, tt.maxWidth, tt.maxHeight)
		if got != tt.want {
			t.Errorf("%s: SampleSize(%d, %d, %d, %d) = %d, want %d",
				tt.name, tt.width, tt.height, tt.maxWidth, tt.maxHeight, got, tt.want)
		}
	}
}

// SampleSize picks the smallest power of two whose next doubling would drop
// half the source below a bound, so doubling it must violate the loop
// condition and the factor itself must not.
func TestSampleSize_TerminationCondition(t *testing.T) {
	width, height := 1600, 1200
	maxWidth, maxHeight := 400, 400

	sample := SampleSize(width, height, maxWidth, maxHeight)
	halfWidth, halfHeight := width/2, height/2

	if !(halfHeight/sample < maxHeight || halfWidth/sample < maxWidth) {
		t.Errorf("sample %d is not terminal: halving can continue", sample)
	}
	if sample > 1 {
		prev := sample / 2
		if halfHeight/prev < maxHeight || halfWidth/prev < maxWidth {
			t.Errorf("sample %d overshoots: %d already satisfied the bounds", sample, prev)
		}
	}
}

func makePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x += 10 {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestResize_DownscalesByComputedFactor(t *testing.T) {
	src := makePNG(t, 1600, 1200)

	out, err := Resize(src, 400, 400)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("expected jpeg output, got %s", format)
	}
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("expected 800x600 output, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestResize_SmallImagePassesThrough(t *testing.T) {
	src := makePNG(t, 200, 150)

	out, err := Resize(src, 400, 400)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}
	if cfg.Width != 200 || cfg.Height != 150 {
		t.Errorf("small image should keep its size, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestResize_Undecodable(t *testing.T) {
	if _, err := Resize([]byte("definitely not an image"), 400, 400); err == nil {
		t.Error("expected an error for undecodable input")
	}
}
