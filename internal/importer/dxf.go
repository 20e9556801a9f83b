package importer

import (
	"fmt"
	"math"
	"strings"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/madori/internal/model"
)

// DXF drawings use centimeters with the y axis pointing up. These layer
// names are written by the DXF exporter; entities on the symbol layers are
// not imported because they have no wall or room meaning.
const (
	LayerRooms   = "ROOMS"
	LayerWalls   = "WALLS"
	LayerDoors   = "DOORS"
	LayerWindows = "WINDOWS"
	LayerFigures = "MANIKINS"
	LayerText    = "TEXT"
)

var symbolLayers = map[string]bool{
	LayerDoors:   true,
	LayerWindows: true,
	LayerFigures: true,
}

// axisTolerance is how far (cm) a rectangle corner may stray from the axes.
const axisTolerance = 0.01

// ImportDXF imports walls and rooms from a DXF file. Each LINE becomes a
// wall. A closed LWPOLYLINE with four axis-aligned corners becomes a room;
// other polylines become one wall per segment. TEXT inside a room names it.
func ImportDXF(path string, opts Options) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	scale := opts.scale()
	thickness := math.Max(1, opts.WallThickness)
	var texts []*entity.Text
	skippedSymbols := 0
	skippedOther := 0

	for _, ent := range entities {
		if symbolLayers[layerName(ent)] {
			skippedSymbols++
			continue
		}
		switch e := ent.(type) {
		case *entity.Line:
			result.Walls = append(result.Walls, newWall(
				toPlan(e.Start[0], e.Start[1], scale),
				toPlan(e.End[0], e.End[1], scale),
				thickness))

		case *entity.LwPolyline:
			if room, ok := polylineRoom(e, scale); ok {
				result.Rooms = append(result.Rooms, room)
				continue
			}
			result.Walls = append(result.Walls, polylineWalls(e, scale, thickness)...)

		case *entity.Text:
			texts = append(texts, e)

		default:
			skippedOther++
		}
	}

	nameRooms(result.Rooms, texts, scale)
	for i := range result.Rooms {
		if result.Rooms[i].Name == "" {
			result.Rooms[i].Name = fmt.Sprintf("部屋%d", i+1)
		}
	}

	if skippedSymbols > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Skipped %d door, window and figure entities", skippedSymbols))
	}
	if skippedOther > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Skipped %d unsupported entities", skippedOther))
	}
	if len(result.Rooms) == 0 && len(result.Walls) == 0 {
		result.Errors = append(result.Errors, "No walls or rooms found in DXF file")
	}
	return result
}

func layerName(e entity.Entity) string {
	if l := e.Layer(); l != nil {
		return strings.ToUpper(l.Name())
	}
	return ""
}

// toPlan converts drawing coordinates (cm, y up) to plan px (y down).
func toPlan(x, y, scale float64) model.Point {
	return model.Point{X: model.CmToPx(x, scale), Y: model.CmToPx(-y, scale)}
}

func newWall(a, b model.Point, thickness float64) model.Wall {
	return model.Wall{ID: model.NewID(), X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y, Thickness: thickness}
}

// polylineRoom reports whether lw is a closed axis-aligned rectangle and
// returns it as a room.
func polylineRoom(lw *entity.LwPolyline, scale float64) (model.Room, bool) {
	verts := lw.Vertices
	// A closing vertex equal to the first counts as closed.
	if len(verts) == 5 && samePoint(verts[0], verts[4]) {
		verts = verts[:4]
	} else if !lw.Closed {
		return model.Room{}, false
	}
	if len(verts) != 4 {
		return model.Room{}, false
	}
	for _, b := range lw.Bulges {
		if math.Abs(b) > 1e-9 {
			return model.Room{}, false
		}
	}

	for i := range verts {
		a, b := verts[i], verts[(i+1)%4]
		if math.Abs(a[0]-b[0]) > axisTolerance && math.Abs(a[1]-b[1]) > axisTolerance {
			return model.Room{}, false
		}
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range verts {
		minX, maxX = math.Min(minX, v[0]), math.Max(maxX, v[0])
		minY, maxY = math.Min(minY, v[1]), math.Max(maxY, v[1])
	}
	if maxX-minX < axisTolerance || maxY-minY < axisTolerance {
		return model.Room{}, false
	}

	topLeft := toPlan(minX, maxY, scale)
	room := model.NewRoom(topLeft, "")
	room.Width = math.Max(model.MinRoomSize, model.CmToPx(maxX-minX, scale))
	room.Height = math.Max(model.MinRoomSize, model.CmToPx(maxY-minY, scale))
	return room, true
}

func polylineWalls(lw *entity.LwPolyline, scale, thickness float64) []model.Wall {
	n := len(lw.Vertices)
	if n < 2 {
		return nil
	}
	segments := n - 1
	if lw.Closed {
		segments = n
	}
	walls := make([]model.Wall, 0, segments)
	for i := 0; i < segments; i++ {
		a, b := lw.Vertices[i], lw.Vertices[(i+1)%n]
		walls = append(walls, newWall(toPlan(a[0], a[1], scale), toPlan(b[0], b[1], scale), thickness))
	}
	return walls
}

// nameRooms gives each unnamed room the first TEXT whose insertion point
// lies inside it.
func nameRooms(rooms []model.Room, texts []*entity.Text, scale float64) {
	for _, t := range texts {
		if len(t.Coord1) < 2 || strings.TrimSpace(t.Value) == "" {
			continue
		}
		at := toPlan(t.Coord1[0], t.Coord1[1], scale)
		for i := range rooms {
			if rooms[i].Name == "" && rooms[i].Contains(at) {
				rooms[i].Name = strings.TrimSpace(t.Value)
				break
			}
		}
	}
}

func samePoint(a, b []float64) bool {
	return len(a) >= 2 && len(b) >= 2 &&
		math.Abs(a[0]-b[0]) <= axisTolerance && math.Abs(a[1]-b[1]) <= axisTolerance
}
