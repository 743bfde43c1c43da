package imageprocessor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// MaxListingEdge bounds the longer side of stored car photos.
const MaxListingEdge = 1600

// Result is an encoded image ready for storage.
type Result struct {
	Data        []byte
	ContentType string
	Ext         string
	Width       int
	Height      int
}

// Processor handles image processing operations
type Processor struct {
	quality int // JPEG quality (1-100)
}

func NewProcessor(quality int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Processor{
		quality: quality,
	}
}

// FitWithin decodes a JPEG, PNG or WebP image and scales it down so neither
// side exceeds maxEdge. Smaller images keep their size. PNG stays PNG,
// everything else is written as JPEG.
func (p *Processor) FitWithin(reader io.Reader, maxEdge int) (*Result, error) {
	img, format, err := image.Decode(reader)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupportedFormat
		}
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	w, h := fitDimensions(img.Bounds().Dx(), img.Bounds().Dy(), maxEdge)
	if w != img.Bounds().Dx() || h != img.Bounds().Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	res := &Result{Width: w, Height: h}
	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode PNG: %w", err)
		}
		res.ContentType, res.Ext = "image/png", ".png"
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
		res.ContentType, res.Ext = "image/jpeg", ".jpg"
	}
	res.Data = buf.Bytes()
	return res, nil
}

// fitDimensions keeps the aspect ratio and never upscales.
func fitDimensions(width, height, maxEdge int) (int, int) {
	if maxEdge <= 0 || (width <= maxEdge && height <= maxEdge) {
		return width, height
	}
	if width >= height {
		h := height * maxEdge / width
		if h < 1 {
			h = 1
		}
		return maxEdge, h
	}
	w := width * maxEdge / height
	if w < 1 {
		w = 1
	}
	return w, maxEdge
}
