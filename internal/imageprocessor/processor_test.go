package imageprocessor

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestFitDimensions(t *testing.T) {
	cases := []struct {
		w, h, edge   int
		wantW, wantH int
	}{
		{3200, 1600, 1600, 1600, 800},
		{1000, 4000, 1600, 400, 1600},
		{800, 600, 1600, 800, 600},
		{5000, 1, 1600, 1600, 1},
	}
	for _, tc := range cases {
		w, h := fitDimensions(tc.w, tc.h, tc.edge)
		assert.Equal(t, tc.wantW, w)
		assert.Equal(t, tc.wantH, h)
	}
}

func TestFitWithinScalesDown(t *testing.T) {
	p := NewProcessor(80)

	res, err := p.FitWithin(encodePNG(t, 400, 200), 100)
	require.NoError(t, err)
	assert.Equal(t, "image/png", res.ContentType)
	assert.Equal(t, ".png", res.Ext)
	assert.Equal(t, 100, res.Width)
	assert.Equal(t, 50, res.Height)

	decoded, err := png.Decode(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, 100, decoded.Bounds().Dx())
}

func TestFitWithinRejectsNonImages(t *testing.T) {
	_, err := NewProcessor(0).FitWithin(strings.NewReader("definitely not an image"), 100)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
