package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Kind discriminates the element variants. The values are the wire names
// used in saved documents.
type Kind string

const (
	KindRoom   Kind = "room"
	KindWall   Kind = "wall"
	KindDoor   Kind = "door"
	KindWindow Kind = "window"
	KindFigure Kind = "manikin"
)

// Kinds lists every element kind in paint order (first painted first).
var Kinds = []Kind{KindRoom, KindWall, KindDoor, KindWindow, KindFigure}

// Label returns the Japanese display name of the kind.
func (k Kind) Label() string {
	switch k {
	case KindRoom:
		return "部屋"
	case KindWall:
		return "壁"
	case KindDoor:
		return "ドア"
	case KindWindow:
		return "窓"
	case KindFigure:
		return "人型"
	default:
		return string(k)
	}
}

// ID identifies a placed element. Older documents store numeric ids
// (millisecond timestamps); those are kept as their decimal string.
type ID string

// NewID returns a fresh time-ordered identifier.
func NewID() ID {
	return ID(uuid.Must(uuid.NewV7()).String())
}

// UnmarshalJSON accepts both JSON strings and JSON numbers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid element id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

// Ref is a non-owning reference to an element. The zero Ref means nothing.
type Ref struct {
	Kind Kind
	ID   ID
}

// IsZero reports whether r references nothing.
func (r Ref) IsZero() bool {
	return r.ID == ""
}

// Element is implemented by every placed element variant.
type Element interface {
	ElementID() ID
	ElementKind() Kind
}

// RefOf returns the reference to el.
func RefOf(el Element) Ref {
	return Ref{Kind: el.ElementKind(), ID: el.ElementID()}
}

// DoorType is the door subtype.
type DoorType string

const (
	DoorSwing   DoorType = "swing"
	DoorSliding DoorType = "sliding"
)

// Room is a rectangular room. Coordinates are the top-left corner in px.
type Room struct {
	ID      ID      `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Name    string  `json:"name"`
	Purpose string  `json:"purpose"`
	Color   string  `json:"color"`
}

func (r Room) ElementID() ID     { return r.ID }
func (r Room) ElementKind() Kind { return KindRoom }

// Origin returns the top-left corner.
func (r Room) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Contains reports whether p lies inside the room, edges included.
func (r Room) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Tatami returns the room area in tatami mats.
func (r Room) Tatami(scale float64) float64 {
	return PixelAreaToTatami(r.Width, r.Height, scale)
}

func (r Room) MarshalJSON() ([]byte, error) {
	type room Room
	return json.Marshal(struct {
		Type Kind `json:"type"`
		room
	}{KindRoom, room(r)})
}

// Wall is a straight wall segment.
type Wall struct {
	ID        ID      `json:"id"`
	X1        float64 `json:"x1"`
	Y1        float64 `json:"y1"`
	X2        float64 `json:"x2"`
	Y2        float64 `json:"y2"`
	Thickness float64 `json:"thickness"`
}

func (w Wall) ElementID() ID     { return w.ID }
func (w Wall) ElementKind() Kind { return KindWall }

func (w Wall) MarshalJSON() ([]byte, error) {
	type wall Wall
	return json.Marshal(struct {
		Type Kind `json:"type"`
		wall
	}{KindWall, wall(w)})
}

// Door is anchored at its hinge point and rotated about it.
type Door struct {
	ID       ID       `json:"id"`
	DoorType DoorType `json:"doorType"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    float64  `json:"width"`
	Rotation float64  `json:"rotation"`
}

func (d Door) ElementID() ID     { return d.ID }
func (d Door) ElementKind() Kind { return KindDoor }

func (d Door) MarshalJSON() ([]byte, error) {
	type door Door
	return json.Marshal(struct {
		Type Kind `json:"type"`
		door
	}{KindDoor, door(d)})
}

// Window is anchored at one end and rotated about it.
type Window struct {
	ID       ID      `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Rotation float64 `json:"rotation"`
}

func (w Window) ElementID() ID     { return w.ID }
func (w Window) ElementKind() Kind { return KindWindow }

func (w Window) MarshalJSON() ([]byte, error) {
	type window Window
	return json.Marshal(struct {
		Type Kind `json:"type"`
		window
	}{KindWindow, window(w)})
}

// Figure is a human-shaped scale marker of fixed size.
type Figure struct {
	ID       ID      `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

func (f Figure) ElementID() ID     { return f.ID }
func (f Figure) ElementKind() Kind { return KindFigure }

func (f Figure) MarshalJSON() ([]byte, error) {
	type figure Figure
	return json.Marshal(struct {
		Type Kind `json:"type"`
		figure
	}{KindFigure, figure(f)})
}

// Element defaults applied by the placement tools.
const (
	DefaultRoomSize    = 200.0
	DefaultRoomColor   = "#e3f2fd"
	DefaultWallLength  = 100.0
	DefaultDoorWidth   = 80.0
	DefaultWindowWidth = 100.0
)

// NewRoom creates a default-sized room at p.
func NewRoom(p Point, name string) Room {
	return Room{
		ID:     NewID(),
		X:      p.X,
		Y:      p.Y,
		Width:  DefaultRoomSize,
		Height: DefaultRoomSize,
		Name:   name,
		Color:  DefaultRoomColor,
	}
}

// NewWall creates a horizontal wall starting at p.
func NewWall(p Point, thickness float64) Wall {
	return Wall{
		ID:        NewID(),
		X1:        p.X,
		Y1:        p.Y,
		X2:        p.X + DefaultWallLength,
		Y2:        p.Y,
		Thickness: thickness,
	}
}

// NewDoor creates an unrotated door at p.
func NewDoor(p Point, t DoorType) Door {
	return Door{ID: NewID(), DoorType: t, X: p.X, Y: p.Y, Width: DefaultDoorWidth}
}

// NewWindow creates an unrotated window at p.
func NewWindow(p Point) Window {
	return Window{ID: NewID(), X: p.X, Y: p.Y, Width: DefaultWindowWidth}
}

// NewFigure creates an unrotated figure at p.
func NewFigure(p Point) Figure {
	return Figure{ID: NewID(), X: p.X, Y: p.Y}
}
