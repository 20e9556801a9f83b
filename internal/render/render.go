// Package render rasterizes a scene into an image. The same image backs
// the editor canvas and the PNG and PDF exports.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"

	"github.com/piwi3910/madori/internal/engine"
	"github.com/piwi3910/madori/internal/model"
)

// Palette.
var (
	ColorBackground = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ColorGrid       = color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	ColorSelected   = color.NRGBA{R: 0x21, G: 0x96, B: 0xf3, A: 0xff}
	ColorRoomEdge   = color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff}
	ColorText       = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	ColorSubText    = color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff}
	ColorWall       = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	ColorDoor       = color.NRGBA{R: 0x8b, G: 0x45, B: 0x13, A: 0xff}
	ColorDoorSwing  = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	ColorWindow     = color.NRGBA{R: 0x4f, G: 0xc3, B: 0xf7, A: 0xff}
	ColorMullion    = color.NRGBA{R: 0xb3, G: 0xe5, B: 0xfc, A: 0xff}
	ColorFigure     = color.NRGBA{R: 0xff, G: 0x57, B: 0x22, A: 0xff}
	ColorFigureHead = color.NRGBA{R: 0xff, G: 0xcc, B: 0xbc, A: 0xff}
)

// HandleSize is the edge length of the square resize handles in px.
const HandleSize = 8.0

// FigureSize is the nominal figure height unit in px.
const FigureSize = 20.0

// Options controls a render pass.
type Options struct {
	Width, Height int
	Zoom          float64 // 0 means 1

	// HideLabels skips room text, for callers that draw labels themselves.
	HideLabels bool
	// Faces for room names and for the smaller lines. Nil uses Inconsolata.
	TitleFace font.Face
	BodyFace  font.Face
}

func (o Options) zoom() float64 {
	if o.Zoom <= 0 {
		return 1
	}
	return o.Zoom
}

// Render draws the whole scene. Paint order is grid, rooms, walls, doors,
// windows, figures; within a kind elements are drawn in insertion order.
func Render(scene *model.Scene, sel model.Ref, opts Options) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(ColorBackground), image.Point{}, draw.Src)
	if opts.Width <= 0 || opts.Height <= 0 {
		return img
	}

	p := newPainter(img, opts.zoom())
	if scene.Settings.ShowGrid {
		drawGrid(p, scene.Settings.GridSize, float64(opts.Width)/p.zoom, float64(opts.Height)/p.zoom)
	}

	title, body := opts.TitleFace, opts.BodyFace
	if title == nil {
		title = inconsolata.Bold8x16
	}
	if body == nil {
		body = inconsolata.Regular8x16
	}

	for _, r := range scene.Rooms() {
		selected := sel == model.RefOf(r)
		drawRoom(p, r, selected)
		if !opts.HideLabels {
			for _, l := range RoomLabels(r, scene.Settings.Scale) {
				face := body
				if l.Title {
					face = title
				}
				p.text(face, l.Text, l.At.X, l.At.Y, l.Color)
			}
		}
	}
	for _, w := range scene.Walls() {
		drawWall(p, w, sel == model.RefOf(w))
	}
	for _, d := range scene.Doors() {
		drawDoor(p, d, sel == model.RefOf(d))
	}
	for _, w := range scene.Windows() {
		drawWindow(p, w, sel == model.RefOf(w))
	}
	for _, f := range scene.Figures() {
		drawFigure(p, f, sel == model.RefOf(f))
	}
	return img
}

func drawGrid(p *painter, size, w, h float64) {
	if size <= 0 {
		return
	}
	for x := 0.0; x < w; x += size {
		p.line(model.Point{X: x, Y: 0}, model.Point{X: x, Y: h}, 0.5, ColorGrid, false)
	}
	for y := 0.0; y < h; y += size {
		p.line(model.Point{X: 0, Y: y}, model.Point{X: w, Y: y}, 0.5, ColorGrid, false)
	}
}

func drawRoom(p *painter, r model.Room, selected bool) {
	fill, _ := model.ParseColor(r.Color)
	p.rect(r.X, r.Y, r.Width, r.Height, fill)
	if !selected {
		p.strokeRect(r.X, r.Y, r.Width, r.Height, 1, ColorRoomEdge)
		return
	}
	p.strokeRect(r.X, r.Y, r.Width, r.Height, 3, ColorSelected)
	for _, h := range engine.RoomHandles(r) {
		p.rect(h.At.X-HandleSize/2, h.At.Y-HandleSize/2, HandleSize, HandleSize, ColorSelected)
	}
}

func drawWall(p *painter, w model.Wall, selected bool) {
	c := ColorWall
	if selected {
		c = ColorSelected
	}
	p.line(model.Point{X: w.X1, Y: w.Y1}, model.Point{X: w.X2, Y: w.Y2}, w.Thickness, c, true)
}

func drawDoor(p *painter, d model.Door, selected bool) {
	f := newFrame(model.Point{X: d.X, Y: d.Y}, d.Rotation)
	c := ColorDoor
	if selected {
		c = ColorSelected
	}
	if d.DoorType == model.DoorSliding {
		p.line(f.at(0, -5), f.at(d.Width/2, -5), 4, c, false)
		p.line(f.at(d.Width/2, 5), f.at(d.Width, 5), 4, c, false)
		return
	}
	p.line(f.at(0, 0), f.at(d.Width, 0), 4, c, false)
	p.polyline(f.all(arc(model.Point{}, d.Width, 0, math.Pi/2)), 1, ColorDoorSwing)
}

func drawWindow(p *painter, w model.Window, selected bool) {
	f := newFrame(model.Point{X: w.X, Y: w.Y}, w.Rotation)
	c := ColorWindow
	if selected {
		c = ColorSelected
	}
	p.line(f.at(0, 0), f.at(w.Width, 0), 5, c, false)
	p.line(f.at(w.Width/2, -4), f.at(w.Width/2, 4), 2, ColorMullion, false)
}

func drawFigure(p *painter, fig model.Figure, selected bool) {
	f := newFrame(model.Point{X: fig.X, Y: fig.Y}, fig.Rotation)
	c := ColorFigure
	if selected {
		c = ColorSelected
	}
	const s = FigureSize
	head := f.all(arc(model.Point{X: 0, Y: -s}, s/3, 0, 2*math.Pi))
	p.fill(head, ColorFigureHead)
	p.polyline(head, 2, c)

	p.line(f.at(0, -s*0.7), f.at(0, s*0.5), 2, c, false)
	p.polyline([]model.Point{f.at(-s/2, -s*0.3), f.at(0, -s*0.5), f.at(s/2, -s*0.3)}, 2, c)
	p.line(f.at(0, s*0.5), f.at(-s/3, s*1.2), 2, c, false)
	p.line(f.at(0, s*0.5), f.at(s/3, s*1.2), 2, c, false)
}
