package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/madori/internal/model"
)

// Tool is the active pointer mode chosen from the toolbar.
type Tool string

const (
	ToolSelect      Tool = "select"
	ToolRoom        Tool = "room"
	ToolWall        Tool = "wall"
	ToolDoorSwing   Tool = "door-swing"
	ToolDoorSliding Tool = "door-sliding"
	ToolWindow      Tool = "window"
	ToolFigure      Tool = "manikin"
)

// Tools lists the tools in toolbar order.
var Tools = []Tool{ToolSelect, ToolRoom, ToolWall, ToolDoorSwing, ToolDoorSliding, ToolWindow, ToolFigure}

// Label returns the toolbar caption of the tool.
func (t Tool) Label() string {
	switch t {
	case ToolSelect:
		return "選択"
	case ToolRoom:
		return "部屋"
	case ToolWall:
		return "壁"
	case ToolDoorSwing:
		return "開きドア"
	case ToolDoorSliding:
		return "引き戸"
	case ToolWindow:
		return "窓"
	case ToolFigure:
		return "人型"
	default:
		return string(t)
	}
}

// State is the pointer interaction state.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateResizing
)

func (s State) String() string {
	switch s {
	case StateDragging:
		return "dragging"
	case StateResizing:
		return "resizing"
	default:
		return "idle"
	}
}

// Door and window widths accepted from the inspector, in cm.
const (
	MinItemWidthCm = 50.0
	MaxItemWidthCm = 200.0
)

// Session is the single owner of the scene and the selection. All methods
// must be called from one goroutine (the UI event loop). Operations whose
// preconditions do not hold are silent no-ops.
type Session struct {
	scene     *model.Scene
	selection model.Ref
	tool      Tool

	state      State
	dragPoint  model.Point // last pointer position while resizing
	dragOffset model.Point // pointer minus element origin while dragging
	handle     Handle

	listeners []func()
}

// NewSession creates a session over an empty scene.
func NewSession(settings model.Settings) *Session {
	return &Session{
		scene: model.NewScene(settings),
		tool:  ToolSelect,
	}
}

// Scene returns the scene for read-only use by renderers and exporters.
func (s *Session) Scene() *model.Scene { return s.scene }

// Selection returns the current selection; the zero Ref means none.
func (s *Session) Selection() model.Ref { return s.selection }

// Settings returns the editor settings.
func (s *Session) Settings() model.Settings { return s.scene.Settings }

func (s *Session) Tool() Tool   { return s.tool }
func (s *Session) State() State { return s.state }

// ResizeHandle returns the handle being dragged, if resizing.
func (s *Session) ResizeHandle() Handle { return s.handle }

// OnChange registers fn to be called after every mutation.
func (s *Session) OnChange(fn func()) {
	s.listeners = append(s.listeners, fn)
}

func (s *Session) changed() {
	for _, fn := range s.listeners {
		fn()
	}
}

// SetTool changes the active tool. The tool stays active until changed.
func (s *Session) SetTool(t Tool) {
	s.tool = t
}

// PointerDown handles a primary button press at p.
func (s *Session) PointerDown(p model.Point) {
	if s.tool != ToolSelect {
		s.place(p)
		s.changed()
		return
	}

	target, ok := Resolve(p, s.scene, s.selection)
	switch {
	case ok && target.Type == TargetResize:
		s.selection = target.Ref
		s.state = StateResizing
		s.handle = target.Handle
		s.dragPoint = p
	case ok:
		s.selection = target.Ref
		s.state = StateDragging
		if origin, found := s.origin(target.Ref); found {
			s.dragOffset = p.Sub(origin)
		}
	default:
		s.selection = model.Ref{}
		s.state = StateIdle
	}
	s.changed()
}

// PointerMove handles pointer motion to p.
func (s *Session) PointerMove(p model.Point) {
	switch s.state {
	case StateDragging:
		if s.drag(p) {
			s.changed()
		}
	case StateResizing:
		if s.resize(p) {
			s.changed()
		}
	}
}

// PointerUp ends any drag or resize.
func (s *Session) PointerUp() {
	s.state = StateIdle
	s.handle = HandleNone
}

func (s *Session) place(p model.Point) {
	at := model.SnapPoint(p, s.scene.Settings.GridSize)
	switch s.tool {
	case ToolRoom:
		name := fmt.Sprintf("部屋%d", s.scene.Len(model.KindRoom)+1)
		s.scene.Add(model.NewRoom(at, name))
	case ToolWall:
		s.scene.Add(model.NewWall(at, s.scene.Settings.WallThickness))
	case ToolDoorSwing:
		s.scene.Add(model.NewDoor(at, model.DoorSwing))
	case ToolDoorSliding:
		s.scene.Add(model.NewDoor(at, model.DoorSliding))
	case ToolWindow:
		s.scene.Add(model.NewWindow(at))
	case ToolFigure:
		s.scene.Add(model.NewFigure(at))
	}
}

// origin returns the single-point origin of draggable elements.
func (s *Session) origin(ref model.Ref) (model.Point, bool) {
	el, ok := s.scene.Get(ref)
	if !ok {
		return model.Point{}, false
	}
	switch e := el.(type) {
	case model.Room:
		return model.Point{X: e.X, Y: e.Y}, true
	case model.Door:
		return model.Point{X: e.X, Y: e.Y}, true
	case model.Window:
		return model.Point{X: e.X, Y: e.Y}, true
	case model.Figure:
		return model.Point{X: e.X, Y: e.Y}, true
	}
	return model.Point{}, false
}

func (s *Session) drag(p model.Point) bool {
	at := model.SnapPoint(p.Sub(s.dragOffset), s.scene.Settings.GridSize)
	return s.scene.Update(s.selection, func(el model.Element) model.Element {
		switch e := el.(type) {
		case model.Room:
			e.X, e.Y = at.X, at.Y
			return e
		case model.Door:
			e.X, e.Y = at.X, at.Y
			return e
		case model.Window:
			e.X, e.Y = at.X, at.Y
			return e
		case model.Figure:
			e.X, e.Y = at.X, at.Y
			return e
		}
		return nil
	})
}

func (s *Session) resize(p model.Point) bool {
	delta := p.Sub(s.dragPoint)
	handle := s.handle
	ok := s.scene.Update(s.selection, func(el model.Element) model.Element {
		room, isRoom := el.(model.Room)
		if !isRoom {
			return nil
		}
		return ResizeRoom(room, handle, delta)
	})
	s.dragPoint = p
	return ok
}

// ResizeRoom applies one incremental resize step to r. East and south
// edges move with the pointer; west and north edges move while the
// opposite edge stays fixed. Sizes never drop below MinRoomSize.
func ResizeRoom(r model.Room, h Handle, delta model.Point) model.Room {
	if h.Has('e') {
		r.Width = math.Max(model.MinRoomSize, r.Width+delta.X)
	}
	if h.Has('w') {
		w := math.Max(model.MinRoomSize, r.Width-delta.X)
		r.X += r.Width - w
		r.Width = w
	}
	if h.Has('s') {
		r.Height = math.Max(model.MinRoomSize, r.Height+delta.Y)
	}
	if h.Has('n') {
		h := math.Max(model.MinRoomSize, r.Height-delta.Y)
		r.Y += r.Height - h
		r.Height = h
	}
	return r
}

// Rotate turns the selection by 90°. Rooms swap width and height.
func (s *Session) Rotate() {
	if s.selection.IsZero() {
		return
	}
	ok := s.scene.Update(s.selection, func(el model.Element) model.Element {
		switch e := el.(type) {
		case model.Room:
			e.Width, e.Height = e.Height, e.Width
			return e
		case model.Door:
			e.Rotation = rotate90(e.Rotation)
			return e
		case model.Window:
			e.Rotation = rotate90(e.Rotation)
			return e
		case model.Figure:
			e.Rotation = rotate90(e.Rotation)
			return e
		}
		return nil
	})
	if ok {
		s.changed()
	}
}

func rotate90(deg float64) float64 {
	return math.Mod(deg+90, 360)
}

// Delete removes the selected element and clears the selection.
func (s *Session) Delete() {
	if s.selection.IsZero() {
		return
	}
	s.scene.Remove(s.selection.Kind, s.selection.ID)
	s.clearSelection()
	s.changed()
}

// Select sets the selection directly, for example from a list view.
// Unknown references clear the selection.
func (s *Session) Select(ref model.Ref) {
	if _, ok := s.scene.Get(ref); !ok {
		ref = model.Ref{}
	}
	s.selection = ref
	s.changed()
}

// ClearAll removes every element.
func (s *Session) ClearAll() {
	s.scene.Clear()
	s.clearSelection()
	s.changed()
}

// Load replaces the scene contents with doc. Callers decode and validate
// first, so a failed load never reaches the session.
func (s *Session) Load(doc model.Document) {
	doc.Normalize()
	s.scene.Replace(doc)
	s.clearSelection()
	s.changed()
}

// Document returns a snapshot of the scene for saving.
func (s *Session) Document() model.Document {
	return s.scene.Document()
}

// AddElements appends already-built elements, e.g. from an importer.
func (s *Session) AddElements(els ...model.Element) {
	if len(els) == 0 {
		return
	}
	for _, el := range els {
		s.scene.Add(el)
	}
	s.changed()
}

func (s *Session) clearSelection() {
	s.selection = model.Ref{}
	s.state = StateIdle
	s.handle = HandleNone
}

// Key names understood by KeyPressed.
const (
	KeyDelete = "Delete"
	KeyRotate = "r"
)

// KeyPressed runs the keyboard shortcut bound to key, if any.
// Shortcuts only apply while something is selected.
func (s *Session) KeyPressed(key string) {
	if s.selection.IsZero() {
		return
	}
	switch key {
	case KeyDelete:
		s.Delete()
	case KeyRotate:
		s.Rotate()
	}
}
