package model

import (
	"fmt"
	"math"
)

// TatamiArea is the floor area of one tatami mat in square meters.
const TatamiArea = 1.62

// MinRoomSize is the smallest width or height (px) a room can have.
const MinRoomSize = 50.0

// DefaultScale is the number of canvas pixels per meter.
const DefaultScale = 20.0

// Point is a canvas coordinate in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Local maps element-local coordinates, x along the element and y across
// it, rotated by rotationDeg about p, to plan coordinates.
func (p Point) Local(x, y, rotationDeg float64) Point {
	sin, cos := math.Sincos(rotationDeg * math.Pi / 180)
	return Point{X: p.X + x*cos - y*sin, Y: p.Y + x*sin + y*cos}
}

// SnapToGrid rounds value to the nearest multiple of gridSize.
// A gridSize <= 0 means no grid is active and value is returned unchanged.
func SnapToGrid(value, gridSize float64) float64 {
	if gridSize <= 0 {
		return value
	}
	return math.Round(value/gridSize) * gridSize
}

// SnapPoint snaps both coordinates of p.
func SnapPoint(p Point, gridSize float64) Point {
	return Point{X: SnapToGrid(p.X, gridSize), Y: SnapToGrid(p.Y, gridSize)}
}

// SquareMeters converts a pixel rectangle to square meters.
func SquareMeters(width, height, scale float64) float64 {
	if scale <= 0 {
		return 0
	}
	return (width * height) / (scale * scale)
}

// PixelAreaToTatami converts a pixel rectangle to tatami mats,
// rounded to one decimal place.
func PixelAreaToTatami(width, height, scale float64) float64 {
	return roundTenth(SquareMeters(width, height, scale) / TatamiArea)
}

// TotalArea returns the combined floor area of rooms in tatami mats.
// Raw square meters are summed first and rounded once.
func TotalArea(rooms []Room, scale float64) float64 {
	var sqm float64
	for _, r := range rooms {
		sqm += SquareMeters(r.Width, r.Height, scale)
	}
	return roundTenth(sqm / TatamiArea)
}

// FormatTatami renders a tatami count the way the editor displays it.
func FormatTatami(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// PxToCm converts a pixel length to whole centimeters.
func PxToCm(px, scale float64) int {
	if scale <= 0 {
		return 0
	}
	return int(math.Round(px / scale * 100))
}

// Centimeters converts a pixel length to centimeters without rounding.
func Centimeters(px, scale float64) float64 {
	if scale <= 0 {
		return 0
	}
	return px / scale * 100
}

// CmToPx converts centimeters to a pixel length.
func CmToPx(cm, scale float64) float64 {
	return cm * scale / 100
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
