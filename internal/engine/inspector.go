package engine

import (
	"math"
	"strings"

	"github.com/piwi3910/madori/internal/model"
)

// Inspector is the property panel view of the current selection.
// Lengths are in cm as shown to the user.
type Inspector struct {
	Kind  model.Kind
	Label string

	// Room fields.
	Name     string
	Purpose  string
	WidthCm  int
	HeightCm int
	Color    string
	Tatami   string

	// Door and window width; walls report their thickness in px.
	ItemWidthCm   int
	WallThickness float64
	DoorType      model.DoorType
	Rotation      float64
}

// Stats summarizes the whole plan.
type Stats struct {
	TotalTatami string
	RoomCount   int
	WallCount   int
	DoorCount   int
	WindowCount int
	FigureCount int
}

// Inspector returns the view of the selected element and whether anything
// is selected.
func (s *Session) Inspector() (Inspector, bool) {
	el, ok := s.scene.Get(s.selection)
	if !ok {
		return Inspector{}, false
	}
	scale := s.scene.Settings.Scale
	in := Inspector{Kind: el.ElementKind(), Label: el.ElementKind().Label()}
	switch e := el.(type) {
	case model.Room:
		in.Name = e.Name
		in.Purpose = e.Purpose
		in.WidthCm = model.PxToCm(e.Width, scale)
		in.HeightCm = model.PxToCm(e.Height, scale)
		in.Color = e.Color
		in.Tatami = model.FormatTatami(e.Tatami(scale))
	case model.Wall:
		in.WallThickness = e.Thickness
	case model.Door:
		in.ItemWidthCm = model.PxToCm(e.Width, scale)
		in.DoorType = e.DoorType
		in.Rotation = e.Rotation
	case model.Window:
		in.ItemWidthCm = model.PxToCm(e.Width, scale)
		in.Rotation = e.Rotation
	case model.Figure:
		in.Rotation = e.Rotation
	}
	return in, true
}

// Stats returns plan totals. The tatami total sums exact areas and rounds
// once.
func (s *Session) Stats() Stats {
	rooms := s.scene.Rooms()
	return Stats{
		TotalTatami: model.FormatTatami(model.TotalArea(rooms, s.scene.Settings.Scale)),
		RoomCount:   len(rooms),
		WallCount:   s.scene.Len(model.KindWall),
		DoorCount:   s.scene.Len(model.KindDoor),
		WindowCount: s.scene.Len(model.KindWindow),
		FigureCount: s.scene.Len(model.KindFigure),
	}
}

func (s *Session) updateRoom(fn func(*model.Room)) {
	if s.selection.Kind != model.KindRoom {
		return
	}
	ok := s.scene.Update(s.selection, func(el model.Element) model.Element {
		r := el.(model.Room)
		fn(&r)
		return r
	})
	if ok {
		s.changed()
	}
}

func (s *Session) SetRoomName(name string) {
	s.updateRoom(func(r *model.Room) { r.Name = name })
}

func (s *Session) SetRoomPurpose(purpose string) {
	s.updateRoom(func(r *model.Room) { r.Purpose = purpose })
}

// SetRoomWidthCm sets the room width from a cm value, clamped to the
// minimum room size.
func (s *Session) SetRoomWidthCm(cm float64) {
	if !finite(cm) {
		return
	}
	px := math.Max(model.MinRoomSize, model.CmToPx(cm, s.scene.Settings.Scale))
	s.updateRoom(func(r *model.Room) { r.Width = px })
}

func (s *Session) SetRoomHeightCm(cm float64) {
	if !finite(cm) {
		return
	}
	px := math.Max(model.MinRoomSize, model.CmToPx(cm, s.scene.Settings.Scale))
	s.updateRoom(func(r *model.Room) { r.Height = px })
}

// SetRoomColor sets the fill color. Anything but a hex color is ignored.
func (s *Session) SetRoomColor(c string) {
	hex, ok := model.NormalizeColor(c)
	if !ok {
		return
	}
	s.updateRoom(func(r *model.Room) { r.Color = hex })
}

// ApplyPreset copies a preset onto the selected room.
func (s *Session) ApplyPreset(p model.RoomPreset) {
	scale := s.scene.Settings.Scale
	s.updateRoom(func(r *model.Room) { p.ApplyTo(r, scale) })
}

// SetItemWidthCm sets the width of the selected door or window.
func (s *Session) SetItemWidthCm(cm float64) {
	if !finite(cm) {
		return
	}
	cm = math.Min(MaxItemWidthCm, math.Max(MinItemWidthCm, cm))
	px := model.CmToPx(cm, s.scene.Settings.Scale)
	ok := s.scene.Update(s.selection, func(el model.Element) model.Element {
		switch e := el.(type) {
		case model.Door:
			e.Width = px
			return e
		case model.Window:
			e.Width = px
			return e
		}
		return nil
	})
	if ok {
		s.changed()
	}
}

// finite reports whether v is usable as a size. NaN and infinities from
// typed input are ignored by every setter.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SetWallThickness sets the thickness used for new walls.
func (s *Session) SetWallThickness(px float64) {
	if !finite(px) {
		return
	}
	s.scene.Settings.WallThickness = math.Max(1, px)
	s.changed()
}

// SetGridSize sets the snap grid. Zero disables snapping.
func (s *Session) SetGridSize(px float64) {
	if !finite(px) {
		return
	}
	s.scene.Settings.GridSize = math.Max(0, px)
	s.changed()
}

func (s *Session) ToggleGrid() {
	s.scene.Settings.ShowGrid = !s.scene.Settings.ShowGrid
	s.changed()
}

// SetScale sets px per meter. Non-positive values are ignored.
func (s *Session) SetScale(pxPerMeter float64) {
	if !finite(pxPerMeter) || pxPerMeter <= 0 {
		return
	}
	s.scene.Settings.Scale = pxPerMeter
	s.changed()
}

// FindRoom returns the first room whose name matches, ignoring case and
// surrounding space.
func (s *Session) FindRoom(name string) (model.Room, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Room{}, false
	}
	for _, r := range s.scene.Rooms() {
		if strings.EqualFold(strings.TrimSpace(r.Name), name) {
			return r, true
		}
	}
	return model.Room{}, false
}
