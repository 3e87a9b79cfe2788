package chart

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/riverwqi/internal/analyzer"
)

func trend(t *testing.T) *analyzer.TrendSeries {
	t.Helper()
	ts, err := analyzer.New(nil).Trend(15, 120)
	require.NoError(t, err)
	return ts
}

func countColor(img image.Image, c color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if uint8(r>>8) == c.R && uint8(g>>8) == c.G && uint8(bl>>8) == c.B && uint8(a>>8) == c.A {
				n++
			}
		}
	}
	return n
}

func TestRender(t *testing.T) {
	data, err := Render(trend(t))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, Width, img.Bounds().Dx())
	assert.Equal(t, Height, img.Bounds().Dy())

	assert.Positive(t, countColor(img, lineColor), "curves drawn")
	assert.Positive(t, countColor(img, maxColor), "max reference lines drawn")
	// only pH has a standard minimum above 0
	assert.Positive(t, countColor(img, minColor), "min reference line drawn")
}

func TestRenderWithoutBounds(t *testing.T) {
	ts := &analyzer.TrendSeries{
		Distances: []float64{1, 2, 3},
		Series: []analyzer.Series{
			{Parameter: "flat", Unit: "u", Values: []float64{2, 2, 2}},
		},
	}
	data, err := Render(ts)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Positive(t, countColor(img, lineColor))
	assert.Zero(t, countColor(img, maxColor))
	assert.Zero(t, countColor(img, minColor))
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name  string
		trend *analyzer.TrendSeries
	}{
		{"nil", nil},
		{"no series", &analyzer.TrendSeries{Distances: []float64{1, 2}}},
		{"one distance", &analyzer.TrendSeries{
			Distances: []float64{1},
			Series:    []analyzer.Series{{Values: []float64{1}}},
		}},
		{"length mismatch", &analyzer.TrendSeries{
			Distances: []float64{1, 2},
			Series:    []analyzer.Series{{Parameter: "pH", Values: []float64{1}}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.trend)
			assert.Error(t, err)
		})
	}
}

func TestLinePatterns(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 1))
	c := color.RGBA{1, 2, 3, 255}

	line(img, image.Pt(0, 0), image.Pt(99, 0), c, nil)
	assert.Equal(t, 100, countColor(img, c))

	img = image.NewRGBA(image.Rect(0, 0, 100, 1))
	line(img, image.Pt(0, 0), image.Pt(99, 0), c, dashed)
	assert.Equal(t, 60, countColor(img, c))

	img = image.NewRGBA(image.Rect(0, 0, 100, 1))
	line(img, image.Pt(0, 0), image.Pt(99, 0), c, dotted)
	assert.Equal(t, 25, countColor(img, c))
}

func TestLineClipsToImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	c := color.RGBA{9, 9, 9, 255}
	line(img, image.Pt(-5, 5), image.Pt(20, 5), c, nil)
	assert.Equal(t, 10, countColor(img, c))
}
