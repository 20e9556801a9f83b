package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/piwi3910/madori/internal/model"
)

// painter fills anti-aliased polygons onto dst. Inputs are in plan px and
// get multiplied by zoom.
type painter struct {
	dst  *image.RGBA
	ras  *vector.Rasterizer
	zoom float64
}

func newPainter(dst *image.RGBA, zoom float64) *painter {
	b := dst.Bounds()
	return &painter{dst: dst, ras: vector.NewRasterizer(b.Dx(), b.Dy()), zoom: zoom}
}

func (p *painter) fill(pts []model.Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	b := p.dst.Bounds()
	p.ras.Reset(b.Dx(), b.Dy())
	p.ras.MoveTo(float32(pts[0].X*p.zoom), float32(pts[0].Y*p.zoom))
	for _, pt := range pts[1:] {
		p.ras.LineTo(float32(pt.X*p.zoom), float32(pt.Y*p.zoom))
	}
	p.ras.ClosePath()
	p.ras.Draw(p.dst, b, image.NewUniform(c), image.Point{})
}

func (p *painter) rect(x, y, w, h float64, c color.Color) {
	p.fill([]model.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}, c)
}

// line strokes a segment of the given width. Square caps extend the
// segment by half the width at both ends.
func (p *painter) line(a, b model.Point, width float64, c color.Color, squareCap bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	half := width / 2
	if length == 0 {
		if squareCap {
			p.rect(a.X-half, a.Y-half, width, width, c)
		}
		return
	}
	ux, uy := dx/length, dy/length
	if squareCap {
		a = model.Point{X: a.X - ux*half, Y: a.Y - uy*half}
		b = model.Point{X: b.X + ux*half, Y: b.Y + uy*half}
	}
	nx, ny := -uy*half, ux*half
	p.fill([]model.Point{
		{X: a.X + nx, Y: a.Y + ny},
		{X: b.X + nx, Y: b.Y + ny},
		{X: b.X - nx, Y: b.Y - ny},
		{X: a.X - nx, Y: a.Y - ny},
	}, c)
}

func (p *painter) polyline(pts []model.Point, width float64, c color.Color) {
	for i := 1; i < len(pts); i++ {
		p.line(pts[i-1], pts[i], width, c, false)
	}
}

// strokeRect draws the outline centered on the rectangle edges.
func (p *painter) strokeRect(x, y, w, h, width float64, c color.Color) {
	corners := []model.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}
	for i := range corners {
		p.line(corners[i], corners[(i+1)%4], width, c, true)
	}
}

// arc returns points on a circle of radius r around center from angle
// from to angle to (radians, y down).
func arc(center model.Point, r, from, to float64) []model.Point {
	steps := int(math.Max(8, math.Ceil(math.Abs(to-from)*r/4)))
	pts := make([]model.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		a := from + (to-from)*float64(i)/float64(steps)
		pts = append(pts, model.Point{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)})
	}
	return pts
}

// frame maps element-local coordinates to plan coordinates: rotate by the
// element rotation in degrees, then translate to its anchor.
type frame struct {
	origin   model.Point
	rotation float64
}

func newFrame(origin model.Point, rotationDeg float64) frame {
	return frame{origin: origin, rotation: rotationDeg}
}

func (f frame) at(x, y float64) model.Point {
	return f.origin.Local(x, y, f.rotation)
}

func (f frame) all(pts []model.Point) []model.Point {
	out := make([]model.Point, len(pts))
	for i, pt := range pts {
		out[i] = f.at(pt.X, pt.Y)
	}
	return out
}

// text draws s horizontally centered on x with its baseline at y.
func (p *painter) text(face font.Face, s string, x, y float64, c color.Color) {
	d := &font.Drawer{Dst: p.dst, Src: image.NewUniform(c), Face: face}
	w := d.MeasureString(s)
	d.Dot = fixed.Point26_6{
		X: fixed.I(int(math.Round(x*p.zoom))) - w/2,
		Y: fixed.I(int(math.Round(y * p.zoom))),
	}
	d.DrawString(s)
}
