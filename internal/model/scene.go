package model

import "slices"

// Settings holds the editor-wide options that are not part of a document.
type Settings struct {
	GridSize      float64 `json:"grid_size"`      // px, 0 disables snapping
	WallThickness float64 `json:"wall_thickness"` // px, default for new walls
	ShowGrid      bool    `json:"show_grid"`
	Scale         float64 `json:"scale"` // px per meter
}

func DefaultEditorSettings() Settings {
	return Settings{
		GridSize:      50,
		WallThickness: 15,
		ShowGrid:      true,
		Scale:         DefaultScale,
	}
}

// Document is the persisted shape of a floor plan.
type Document struct {
	Rooms   []Room   `json:"rooms"`
	Walls   []Wall   `json:"walls"`
	Doors   []Door   `json:"doors"`
	Windows []Window `json:"windows"`
	Figures []Figure `json:"manikins"`
}

// NewDocument returns a document with every category present and empty.
func NewDocument() Document {
	return Document{
		Rooms:   []Room{},
		Walls:   []Wall{},
		Doors:   []Door{},
		Windows: []Window{},
		Figures: []Figure{},
	}
}

// Normalize replaces missing categories with empty slices.
func (d *Document) Normalize() {
	if d.Rooms == nil {
		d.Rooms = []Room{}
	}
	if d.Walls == nil {
		d.Walls = []Wall{}
	}
	if d.Doors == nil {
		d.Doors = []Door{}
	}
	if d.Windows == nil {
		d.Windows = []Window{}
	}
	if d.Figures == nil {
		d.Figures = []Figure{}
	}
}

// Scene owns every placed element. Each kind is kept in insertion order,
// which is also paint order: later elements are drawn on top.
type Scene struct {
	Settings Settings

	rooms   []Room
	walls   []Wall
	doors   []Door
	windows []Window
	figures []Figure
}

// NewScene creates an empty scene with the given settings.
func NewScene(settings Settings) *Scene {
	return &Scene{Settings: settings}
}

func (s *Scene) Rooms() []Room     { return s.rooms }
func (s *Scene) Walls() []Wall     { return s.walls }
func (s *Scene) Doors() []Door     { return s.doors }
func (s *Scene) Windows() []Window { return s.windows }
func (s *Scene) Figures() []Figure { return s.figures }

// Len returns the number of elements of the given kind.
func (s *Scene) Len(kind Kind) int {
	switch kind {
	case KindRoom:
		return len(s.rooms)
	case KindWall:
		return len(s.walls)
	case KindDoor:
		return len(s.doors)
	case KindWindow:
		return len(s.windows)
	case KindFigure:
		return len(s.figures)
	}
	return 0
}

// Empty reports whether the scene holds no elements.
func (s *Scene) Empty() bool {
	for _, k := range Kinds {
		if s.Len(k) > 0 {
			return false
		}
	}
	return true
}

// Add appends el to the end of its kind's sequence.
func (s *Scene) Add(el Element) {
	switch e := el.(type) {
	case Room:
		s.rooms = append(s.rooms, e)
	case Wall:
		s.walls = append(s.walls, e)
	case Door:
		s.doors = append(s.doors, e)
	case Window:
		s.windows = append(s.windows, e)
	case Figure:
		s.figures = append(s.figures, e)
	}
}

// Remove deletes the element of the given kind and id.
// It returns false when no such element exists.
func (s *Scene) Remove(kind Kind, id ID) bool {
	switch kind {
	case KindRoom:
		return removeByID(&s.rooms, id)
	case KindWall:
		return removeByID(&s.walls, id)
	case KindDoor:
		return removeByID(&s.doors, id)
	case KindWindow:
		return removeByID(&s.windows, id)
	case KindFigure:
		return removeByID(&s.figures, id)
	}
	return false
}

// Get returns the element referenced by ref.
func (s *Scene) Get(ref Ref) (Element, bool) {
	switch ref.Kind {
	case KindRoom:
		return findByID(s.rooms, ref.ID)
	case KindWall:
		return findByID(s.walls, ref.ID)
	case KindDoor:
		return findByID(s.doors, ref.ID)
	case KindWindow:
		return findByID(s.windows, ref.ID)
	case KindFigure:
		return findByID(s.figures, ref.ID)
	}
	return nil, false
}

// Update replaces the referenced element with fn's result. fn receives the
// current value; returning an element of another kind or id is ignored.
func (s *Scene) Update(ref Ref, fn func(Element) Element) bool {
	el, ok := s.Get(ref)
	if !ok {
		return false
	}
	next := fn(el)
	if next == nil || RefOf(next) != ref {
		return false
	}
	switch e := next.(type) {
	case Room:
		return replaceByID(s.rooms, e)
	case Wall:
		return replaceByID(s.walls, e)
	case Door:
		return replaceByID(s.doors, e)
	case Window:
		return replaceByID(s.windows, e)
	case Figure:
		return replaceByID(s.figures, e)
	}
	return false
}

// Clear removes every element. Settings are kept.
func (s *Scene) Clear() {
	s.rooms, s.walls, s.doors, s.windows, s.figures = nil, nil, nil, nil, nil
}

// Document returns a deep copy of the scene contents.
func (s *Scene) Document() Document {
	return Document{
		Rooms:   cloneOrEmpty(s.rooms),
		Walls:   cloneOrEmpty(s.walls),
		Doors:   cloneOrEmpty(s.doors),
		Windows: cloneOrEmpty(s.windows),
		Figures: cloneOrEmpty(s.figures),
	}
}

// Replace swaps the scene contents for a copy of doc.
func (s *Scene) Replace(doc Document) {
	s.rooms = slices.Clone(doc.Rooms)
	s.walls = slices.Clone(doc.Walls)
	s.doors = slices.Clone(doc.Doors)
	s.windows = slices.Clone(doc.Windows)
	s.figures = slices.Clone(doc.Figures)
}

func cloneOrEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return slices.Clone(in)
}

func indexByID[T Element](items []T, id ID) int {
	return slices.IndexFunc(items, func(e T) bool { return e.ElementID() == id })
}

func findByID[T Element](items []T, id ID) (Element, bool) {
	if i := indexByID(items, id); i >= 0 {
		return items[i], true
	}
	return nil, false
}

func replaceByID[T Element](items []T, e T) bool {
	if i := indexByID(items, e.ElementID()); i >= 0 {
		items[i] = e
		return true
	}
	return false
}

func removeByID[T Element](items *[]T, id ID) bool {
	i := indexByID(*items, id)
	if i < 0 {
		return false
	}
	*items = slices.Delete(*items, i, i+1)
	return true
}
