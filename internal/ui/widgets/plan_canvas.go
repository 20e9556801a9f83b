package widgets

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/madori/internal/engine"
	"github.com/piwi3910/madori/internal/model"
	"github.com/piwi3910/madori/internal/render"
)

// PlanCanvas is the editing surface. It draws the session's scene with the
// raster renderer, overlays room labels as Fyne text (so any system font
// glyphs are available) and forwards pointer events to the session.
// One Fyne unit is one plan pixel.
type PlanCanvas struct {
	widget.BaseWidget
	session  *engine.Session
	planSize fyne.Size
}

// NewPlanCanvas creates a canvas of the given plan size in px.
func NewPlanCanvas(session *engine.Session, width, height float32) *PlanCanvas {
	pc := &PlanCanvas{
		session:  session,
		planSize: fyne.NewSize(width, height),
	}
	pc.ExtendBaseWidget(pc)
	return pc
}

// SetPlanSize changes the drawable area.
func (pc *PlanCanvas) SetPlanSize(width, height float32) {
	pc.planSize = fyne.NewSize(width, height)
	pc.Refresh()
}

func (pc *PlanCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &planCanvasRenderer{pc: pc}
	r.raster = canvas.NewRaster(r.draw)
	r.rebuild()
	return r
}

func (pc *PlanCanvas) MinSize() fyne.Size {
	return pc.planSize
}

func (pc *PlanCanvas) inside(pos fyne.Position) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.X <= pc.planSize.Width && pos.Y <= pc.planSize.Height
}

func toPoint(pos fyne.Position) model.Point {
	return model.Point{X: float64(pos.X), Y: float64(pos.Y)}
}

// MouseDown starts a placement, selection, drag or resize.
func (pc *PlanCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary || !pc.inside(ev.Position) {
		return
	}
	// Take keyboard focus away from inspector entries so Delete and r
	// reach the window shortcuts.
	if c := fyne.CurrentApp().Driver().CanvasForObject(pc); c != nil {
		c.Unfocus()
	}
	pc.session.PointerDown(toPoint(ev.Position))
}

func (pc *PlanCanvas) MouseUp(*desktop.MouseEvent) {
	pc.session.PointerUp()
}

func (pc *PlanCanvas) Dragged(ev *fyne.DragEvent) {
	pc.session.PointerMove(toPoint(ev.Position))
}

func (pc *PlanCanvas) DragEnd() {
	pc.session.PointerUp()
}

// Cursor shows a crosshair while a placement tool is active.
func (pc *PlanCanvas) Cursor() desktop.Cursor {
	if pc.session.Tool() != engine.ToolSelect {
		return desktop.CrosshairCursor
	}
	return desktop.DefaultCursor
}

type planCanvasRenderer struct {
	pc      *PlanCanvas
	raster  *canvas.Raster
	objects []fyne.CanvasObject
}

// draw is called with the raster size in device pixels.
func (r *planCanvasRenderer) draw(w, h int) image.Image {
	zoom := 1.0
	if size := r.raster.Size(); size.Width > 0 {
		zoom = float64(w) / float64(size.Width)
	}
	return render.Render(r.pc.session.Scene(), r.pc.session.Selection(), render.Options{
		Width:      w,
		Height:     h,
		Zoom:       zoom,
		HideLabels: true,
	})
}

func (r *planCanvasRenderer) rebuild() {
	r.objects = []fyne.CanvasObject{r.raster}

	scene := r.pc.session.Scene()
	for _, room := range scene.Rooms() {
		for _, l := range render.RoomLabels(room, scene.Settings.Scale) {
			text := canvas.NewText(l.Text, l.Color)
			text.TextSize = float32(l.Size)
			text.TextStyle = fyne.TextStyle{Bold: l.Title}
			size := fyne.MeasureText(l.Text, text.TextSize, text.TextStyle)
			// Label positions are baselines; Fyne text is placed by its top.
			text.Move(fyne.NewPos(float32(l.At.X)-size.Width/2, float32(l.At.Y)-size.Height*0.8))
			text.Resize(size)
			r.objects = append(r.objects, text)
		}
	}
}

func (r *planCanvasRenderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
}

func (r *planCanvasRenderer) MinSize() fyne.Size {
	return r.pc.planSize
}

func (r *planCanvasRenderer) Refresh() {
	r.rebuild()
	r.raster.Refresh()
	for _, o := range r.objects[1:] {
		o.Refresh()
	}
}

func (r *planCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *planCanvasRenderer) Destroy()                     {}
