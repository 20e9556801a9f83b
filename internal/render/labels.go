package render

import (
	"image/color"

	"github.com/piwi3910/madori/internal/model"
)

// Label is one line of room text, centered on At.X with its baseline at
// At.Y in plan px.
type Label struct {
	Text  string
	At    model.Point
	Size  float64 // nominal point size
	Title bool
	Color color.NRGBA
}

// RoomLabels returns the name, tatami and purpose lines drawn inside r.
// The purpose line is omitted when empty.
func RoomLabels(r model.Room, scale float64) []Label {
	cx := r.X + r.Width/2
	cy := r.Y + r.Height/2
	name := r.Name
	if name == "" {
		name = model.KindRoom.Label()
	}
	labels := []Label{
		{Text: name, At: model.Point{X: cx, Y: cy - 15}, Size: 16, Title: true, Color: ColorText},
		{Text: model.FormatTatami(r.Tatami(scale)) + "畳", At: model.Point{X: cx, Y: cy + 5}, Size: 14, Color: ColorText},
	}
	if r.Purpose != "" {
		labels = append(labels, Label{Text: r.Purpose, At: model.Point{X: cx, Y: cy + 22}, Size: 12, Color: ColorSubText})
	}
	return labels
}
