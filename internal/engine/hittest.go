// Package engine implements the spatial interaction core of the editor:
// resolving pointer positions to elements and driving drag, resize and
// placement through a single-threaded Session.
package engine

import (
	"math"

	"github.com/piwi3910/madori/internal/model"
)

// Hit-test thresholds in px. Proximity tests are per axis, so the hit
// area is a square around the anchor and ignores element rotation.
const (
	HandleThreshold = 10.0
	DoorThreshold   = 50.0
	WindowThreshold = 50.0
	FigureThreshold = 30.0
)

// Handle names one of the eight resize grab points of a room.
type Handle string

const (
	HandleNone Handle = ""
	HandleN    Handle = "n"
	HandleS    Handle = "s"
	HandleE    Handle = "e"
	HandleW    Handle = "w"
	HandleNE   Handle = "ne"
	HandleNW   Handle = "nw"
	HandleSE   Handle = "se"
	HandleSW   Handle = "sw"
)

// Has reports whether h includes the given compass direction.
func (h Handle) Has(dir rune) bool {
	for _, r := range h {
		if r == dir {
			return true
		}
	}
	return false
}

// HandlePoint is a handle and its position on the canvas.
type HandlePoint struct {
	Handle Handle
	At     model.Point
}

// RoomHandles returns the handles of r: corners first, then edge midpoints.
func RoomHandles(r model.Room) []HandlePoint {
	cx := r.X + r.Width/2
	cy := r.Y + r.Height/2
	right := r.X + r.Width
	bottom := r.Y + r.Height
	return []HandlePoint{
		{HandleNW, model.Point{X: r.X, Y: r.Y}},
		{HandleNE, model.Point{X: right, Y: r.Y}},
		{HandleSW, model.Point{X: r.X, Y: bottom}},
		{HandleSE, model.Point{X: right, Y: bottom}},
		{HandleN, model.Point{X: cx, Y: r.Y}},
		{HandleS, model.Point{X: cx, Y: bottom}},
		{HandleW, model.Point{X: r.X, Y: cy}},
		{HandleE, model.Point{X: right, Y: cy}},
	}
}

// TargetType distinguishes resize hits from element body hits.
type TargetType int

const (
	TargetElement TargetType = iota
	TargetResize
)

// Target is the result of a successful hit test.
type Target struct {
	Type   TargetType
	Ref    model.Ref
	Handle Handle // set for TargetResize
}

// Resolve finds the topmost interactive target under p.
//
// Resize handles of the selected room win over everything. Doors, windows
// and figures are painted above rooms, so they are tried before room
// bodies. Room bodies therefore come last, not right after the handles:
// a door drawn over a room is picked instead of the room. Within a kind
// the last inserted element wins. Walls are never hit.
func Resolve(p model.Point, scene *model.Scene, selection model.Ref) (Target, bool) {
	if selection.Kind == model.KindRoom {
		if el, ok := scene.Get(selection); ok {
			room := el.(model.Room)
			for _, h := range RoomHandles(room) {
				if near(p, h.At, HandleThreshold) {
					return Target{Type: TargetResize, Ref: selection, Handle: h.Handle}, true
				}
			}
		}
	}

	doors := scene.Doors()
	for i := len(doors) - 1; i >= 0; i-- {
		if near(p, model.Point{X: doors[i].X, Y: doors[i].Y}, DoorThreshold) {
			return elementTarget(doors[i]), true
		}
	}

	windows := scene.Windows()
	for i := len(windows) - 1; i >= 0; i-- {
		if near(p, model.Point{X: windows[i].X, Y: windows[i].Y}, WindowThreshold) {
			return elementTarget(windows[i]), true
		}
	}

	figures := scene.Figures()
	for i := len(figures) - 1; i >= 0; i-- {
		if near(p, model.Point{X: figures[i].X, Y: figures[i].Y}, FigureThreshold) {
			return elementTarget(figures[i]), true
		}
	}

	rooms := scene.Rooms()
	for i := len(rooms) - 1; i >= 0; i-- {
		if rooms[i].Contains(p) {
			return elementTarget(rooms[i]), true
		}
	}

	return Target{}, false
}

func elementTarget(el model.Element) Target {
	return Target{Type: TargetElement, Ref: model.RefOf(el)}
}

func near(p, anchor model.Point, threshold float64) bool {
	return math.Abs(p.X-anchor.X) < threshold && math.Abs(p.Y-anchor.Y) < threshold
}
