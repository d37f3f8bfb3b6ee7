package escpos

import (
	"errors"
	"image"
)

// ErrEmptyImage is returned when an image with no pixels is submitted.
var ErrEmptyImage = errors.New("escpos: empty image")

// lumaThreshold splits pixels into black and white. Values are 16-bit as
// returned by color.Color.RGBA.
const lumaThreshold = 0x8000

// Image appends the image as a GS v 0 raster, dithered to one bit per
// pixel with a luminance threshold. Images wider than maxWidth dots are
// downscaled proportionally; maxWidth <= 0 keeps the native width.
func (p *Printer) Image(img image.Image, maxWidth int) error {
	data, err := rasterCommands(img, maxWidth)
	if err != nil {
		return err
	}
	p.buf.Write(data)
	return nil
}

func rasterCommands(img image.Image, maxWidth int) ([]byte, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, ErrEmptyImage
	}

	if maxWidth > 0 && width > maxWidth {
		img = scaleToWidth(img, maxWidth)
		bounds = img.Bounds()
		width = bounds.Dx()
		height = bounds.Dy()
	}

	rowBytes := (width + 7) / 8
	raster := make([]byte, rowBytes*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if isDark(img, bounds.Min.X+x, bounds.Min.Y+y) {
				raster[y*rowBytes+x/8] |= 0x80 >> (x % 8)
			}
		}
	}

	header := []byte{
		gs, 'v', '0', 0,
		byte(rowBytes), byte(rowBytes >> 8),
		byte(height), byte(height >> 8),
	}
	return append(header, raster...), nil
}

// isDark decides whether a pixel should print. Transparent pixels count
// as paper.
func isDark(img image.Image, x, y int) bool {
	r, g, b, a := img.At(x, y).RGBA()
	if a < lumaThreshold {
		return false
	}
	luma := (299*r + 587*g + 114*b) / 1000
	return luma < lumaThreshold
}

// scaleToWidth downscales with nearest-neighbor sampling, which keeps
// sharp edges on the low-resolution output better than interpolation.
func scaleToWidth(img image.Image, width int) image.Image {
	bounds := img.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()

	height := srcH * width / srcW
	if height < 1 {
		height = 1
	}

	dst := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		srcY := bounds.Min.Y + y*srcH/height
		for x := 0; x < width; x++ {
			srcX := bounds.Min.X + x*srcW/width
			if isDark(img, srcX, srcY) {
				dst.Pix[y*dst.Stride+x] = 0
			} else {
				dst.Pix[y*dst.Stride+x] = 255
			}
		}
	}
	return dst
}
