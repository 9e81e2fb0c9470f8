package ocr

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// thresholdLum is the luminance cut separating stat text from the dialog
// background after grayscale conversion.
const thresholdLum = 160

// Preprocess prepares a captured stat box for OCR: grayscale, binary
// threshold, then a 2x upscale so tesseract sees glyphs at a workable size.
func Preprocess(src image.Image) image.Image {
	gray := imaging.Grayscale(src)
	bin := binarize(gray, thresholdLum)
	b := bin.Bounds()
	return imaging.Resize(bin, b.Dx()*2, b.Dy()*2, imaging.CatmullRom)
}

// binarize maps every pixel to pure black or white around the threshold.
func binarize(src *image.NRGBA, threshold uint8) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := src.PixOffset(x, y)
			v := color.NRGBA{A: 0xFF}
			if src.Pix[i] >= threshold { // grayscale, so R==G==B
				v.R, v.G, v.B = 0xFF, 0xFF, 0xFF
			}
			dst.SetNRGBA(x, y, v)
		}
	}
	return dst
}
