package ocr

import (
	"image"
	"image/color"
	"testing"
)

func TestPreprocess_UpscalesTwofold(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 168, 75))
	out := Preprocess(src)
	b := out.Bounds()
	if b.Dx() != 336 || b.Dy() != 150 {
		t.Fatalf("output %dx%d, want 336x150", b.Dx(), b.Dy())
	}
}

func TestPreprocess_SeparatesTextFromBackground(t *testing.T) {
	// Left half dim background, right half bright text.
	src := image.NewRGBA(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			v := uint8(60)
			if x >= 8 {
				v = 220
			}
			src.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}
	out := Preprocess(src)

	if lum(out, 4, 8) > 64 {
		t.Fatalf("background pixel not suppressed: %d", lum(out, 4, 8))
	}
	if lum(out, 27, 8) < 192 {
		t.Fatalf("text pixel not preserved: %d", lum(out, 27, 8))
	}
}

func lum(img image.Image, x, y int) uint8 {
	r, _, _, _ := img.At(x, y).RGBA()
	return uint8(r >> 8)
}
