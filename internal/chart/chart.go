// Package chart draws the parameter trend charts as a PNG grid.
package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/floats"

	"github.com/dotcommander/riverwqi/internal/analyzer"
)

// Chart dimensions. Panels are laid out Columns wide.
const (
	Width   = 1000
	Height  = 600
	Columns = 3

	padLeft   = 58
	padRight  = 12
	padTop    = 24
	padBottom = 30
)

var (
	background = color.RGBA{255, 255, 255, 255}
	axisColor  = color.RGBA{90, 90, 90, 255}
	textColor  = color.RGBA{30, 30, 30, 255}
	lineColor  = color.RGBA{31, 119, 180, 255}
	maxColor   = color.RGBA{214, 39, 40, 255}
	minColor   = color.RGBA{44, 160, 44, 255}
)

var face font.Face = basicfont.Face7x13

// Render draws one panel per series: the predicted curve, a dashed red line
// at the standard's maximum and a dotted green line at its minimum.
func Render(trend *analyzer.TrendSeries) ([]byte, error) {
	if trend == nil || len(trend.Series) == 0 {
		return nil, fmt.Errorf("no series to plot")
	}
	if len(trend.Distances) < 2 {
		return nil, fmt.Errorf("need at least 2 distances, got %d", len(trend.Distances))
	}

	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	rows := (len(trend.Series) + Columns - 1) / Columns
	panelW := Width / Columns
	panelH := Height / rows

	for i, s := range trend.Series {
		if len(s.Values) != len(trend.Distances) {
			return nil, fmt.Errorf("series %s has %d values for %d distances", s.Parameter, len(s.Values), len(trend.Distances))
		}
		col, row := i%Columns, i/Columns
		bounds := image.Rect(col*panelW, row*panelH, (col+1)*panelW, (row+1)*panelH)
		drawPanel(img, bounds, trend.Distances, s)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}
	return buf.Bytes(), nil
}

// plot maps data coordinates into a panel's plotting area.
type plot struct {
	area       image.Rectangle
	xMin, xMax float64
	yMin, yMax float64
}

func (p plot) point(x, y float64) image.Point {
	fx := (x - p.xMin) / (p.xMax - p.xMin)
	fy := (y - p.yMin) / (p.yMax - p.yMin)
	return image.Point{
		X: p.area.Min.X + int(math.Round(fx*float64(p.area.Dx()))),
		Y: p.area.Max.Y - int(math.Round(fy*float64(p.area.Dy()))),
	}
}

func drawPanel(img *image.RGBA, bounds image.Rectangle, distances []float64, s analyzer.Series) {
	area := image.Rect(bounds.Min.X+padLeft, bounds.Min.Y+padTop, bounds.Max.X-padRight, bounds.Max.Y-padBottom)

	yMin, yMax := floats.Min(s.Values), floats.Max(s.Values)
	if s.MaxLine != nil {
		yMin, yMax = math.Min(yMin, *s.MaxLine), math.Max(yMax, *s.MaxLine)
	}
	if s.MinLine != nil {
		yMin, yMax = math.Min(yMin, *s.MinLine), math.Max(yMax, *s.MinLine)
	}
	margin := (yMax - yMin) * 0.05
	if margin == 0 {
		margin = math.Max(math.Abs(yMax)*0.05, 0.5)
	}
	p := plot{
		area: area,
		xMin: distances[0], xMax: distances[len(distances)-1],
		yMin: yMin - margin, yMax: yMax + margin,
	}

	title := fmt.Sprintf("%s (%s)", s.Parameter, s.Unit)
	drawText(img, title, bounds.Min.X+padLeft, bounds.Min.Y+padTop-8, textColor)

	// axes
	line(img, area.Min, image.Pt(area.Min.X, area.Max.Y), axisColor, nil)
	line(img, image.Pt(area.Min.X, area.Max.Y), area.Max, axisColor, nil)

	drawText(img, label(p.yMax), bounds.Min.X+4, area.Min.Y+10, textColor)
	drawText(img, label(p.yMin), bounds.Min.X+4, area.Max.Y, textColor)
	drawText(img, label(p.xMin), area.Min.X, area.Max.Y+14, textColor)
	xMax := label(p.xMax) + " km"
	drawText(img, xMax, area.Max.X-font.MeasureString(face, xMax).Round(), area.Max.Y+14, textColor)

	if s.MaxLine != nil {
		y := p.point(p.xMin, *s.MaxLine).Y
		line(img, image.Pt(area.Min.X, y), image.Pt(area.Max.X, y), maxColor, dashed)
	}
	if s.MinLine != nil {
		y := p.point(p.xMin, *s.MinLine).Y
		line(img, image.Pt(area.Min.X, y), image.Pt(area.Max.X, y), minColor, dotted)
	}

	prev := p.point(distances[0], s.Values[0])
	for i := 1; i < len(distances); i++ {
		next := p.point(distances[i], s.Values[i])
		line(img, prev, next, lineColor, nil)
		prev = next
	}
}

// dash patterns decide per step along a line whether to draw the pixel
func dashed(step int) bool { return step%10 < 6 }
func dotted(step int) bool { return step%4 < 1 }

// line draws from a to b with Bresenham's algorithm, clipped to the image.
// A nil pattern draws a solid line.
func line(img *image.RGBA, a, b image.Point, c color.RGBA, pattern func(int) bool) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	for step := 0; ; step++ {
		if (pattern == nil || pattern(step)) && image.Pt(x, y).In(img.Rect) {
			img.SetRGBA(x, y, c)
		}
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func label(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func drawText(img *image.RGBA, text string, x, y int, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}
