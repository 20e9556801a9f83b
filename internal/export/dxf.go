package export

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/madori/internal/importer"
	"github.com/piwi3910/madori/internal/model"
	"github.com/piwi3910/madori/internal/render"
)

var dxfLayers = []struct {
	name  string
	color color.ColorNumber
}{
	{importer.LayerRooms, color.Cyan},
	{importer.LayerWalls, color.White},
	{importer.LayerDoors, color.Red},
	{importer.LayerWindows, color.Blue},
	{importer.LayerFigures, color.Magenta},
	{importer.LayerText, color.Green},
}

// roomTextHeight is the height of room name text in cm.
const roomTextHeight = 20.0

// cad converts plan px (y down) to drawing cm (y up).
type cad struct {
	d     *drawing.Drawing
	scale float64
	err   error
}

func (c *cad) xy(p model.Point) (float64, float64) {
	return model.Centimeters(p.X, c.scale), -model.Centimeters(p.Y, c.scale)
}

func (c *cad) cm(px float64) float64 {
	return model.Centimeters(px, c.scale)
}

func (c *cad) layer(name string) {
	if c.err == nil {
		c.err = c.d.ChangeLayer(name)
	}
}

func (c *cad) line(a, b model.Point) {
	if c.err != nil {
		return
	}
	x1, y1 := c.xy(a)
	x2, y2 := c.xy(b)
	_, c.err = c.d.Line(x1, y1, 0, x2, y2, 0)
}

func (c *cad) polyline(closed bool, pts ...model.Point) {
	if c.err != nil {
		return
	}
	verts := make([][]float64, len(pts))
	for i, p := range pts {
		x, y := c.xy(p)
		verts[i] = []float64{x, y}
	}
	_, c.err = c.d.LwPolyline(closed, verts...)
}

func (c *cad) circle(center model.Point, r float64) {
	if c.err != nil {
		return
	}
	x, y := c.xy(center)
	_, c.err = c.d.Circle(x, y, 0, c.cm(r))
}

// arc draws the quarter circle swept clockwise on the plan from
// fromDeg. Flipping the y axis turns it counterclockwise in the drawing.
func (c *cad) arc(center model.Point, r, fromDeg, sweepDeg float64) {
	if c.err != nil {
		return
	}
	x, y := c.xy(center)
	start := normalizeDeg(-(fromDeg + sweepDeg))
	end := normalizeDeg(-fromDeg)
	_, c.err = c.d.Arc(x, y, 0, c.cm(r), start, end)
}

func (c *cad) text(s string, at model.Point, height float64) {
	if c.err != nil {
		return
	}
	x, y := c.xy(at)
	_, c.err = c.d.Text(s, x, y, 0, height)
}

func normalizeDeg(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// ExportDXF writes scene as a DXF drawing in centimeters, one layer per
// element kind. Rooms are closed polylines and can be imported again.
func ExportDXF(path string, scene *model.Scene) error {
	if scene.Empty() {
		return fmt.Errorf("no elements to export")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	d := dxf.NewDrawing()
	for _, l := range dxfLayers {
		if _, err := d.AddLayer(l.name, l.color, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	c := &cad{d: d, scale: scene.Settings.Scale}
	if c.scale <= 0 {
		c.scale = model.DefaultScale
	}

	c.layer(importer.LayerRooms)
	for _, r := range scene.Rooms() {
		c.polyline(true,
			model.Point{X: r.X, Y: r.Y},
			model.Point{X: r.X + r.Width, Y: r.Y},
			model.Point{X: r.X + r.Width, Y: r.Y + r.Height},
			model.Point{X: r.X, Y: r.Y + r.Height})
	}

	c.layer(importer.LayerText)
	for _, r := range scene.Rooms() {
		if r.Name == "" {
			continue
		}
		c.text(r.Name, model.Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}, roomTextHeight)
	}

	c.layer(importer.LayerWalls)
	for _, w := range scene.Walls() {
		c.line(model.Point{X: w.X1, Y: w.Y1}, model.Point{X: w.X2, Y: w.Y2})
	}

	c.layer(importer.LayerDoors)
	for _, door := range scene.Doors() {
		o := model.Point{X: door.X, Y: door.Y}
		if door.DoorType == model.DoorSliding {
			c.line(o.Local(0, -5, door.Rotation), o.Local(door.Width/2, -5, door.Rotation))
			c.line(o.Local(door.Width/2, 5, door.Rotation), o.Local(door.Width, 5, door.Rotation))
			continue
		}
		c.line(o, o.Local(door.Width, 0, door.Rotation))
		c.arc(o, door.Width, door.Rotation, 90)
	}

	c.layer(importer.LayerWindows)
	for _, w := range scene.Windows() {
		o := model.Point{X: w.X, Y: w.Y}
		c.line(o, o.Local(w.Width, 0, w.Rotation))
	}

	c.layer(importer.LayerFigures)
	for _, fig := range scene.Figures() {
		o := model.Point{X: fig.X, Y: fig.Y}
		at := func(x, y float64) model.Point { return o.Local(x, y, fig.Rotation) }
		s := render.FigureSize
		c.circle(at(0, -s), s/3)
		c.line(at(0, -s*0.7), at(0, s*0.5))
		c.polyline(false, at(-s/2, -s*0.3), at(0, -s*0.5), at(s/2, -s*0.3))
		c.line(at(0, s*0.5), at(-s/3, s*1.2))
		c.line(at(0, s*0.5), at(s/3, s*1.2))
	}

	if c.err != nil {
		return fmt.Errorf("failed to build drawing: %w", c.err)
	}
	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF: %w", err)
	}
	return nil
}
