package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/madori/internal/model"
)

func assertPixel(t *testing.T, img *image.RGBA, x, y int, want color.NRGBA) {
	t.Helper()
	got := img.RGBAAt(x, y)
	assert.InDelta(t, want.R, got.R, 2, "R at %d,%d", x, y)
	assert.InDelta(t, want.G, got.G, 2, "G at %d,%d", x, y)
	assert.InDelta(t, want.B, got.B, 2, "B at %d,%d", x, y)
}

func newScene(showGrid bool) *model.Scene {
	s := model.DefaultEditorSettings()
	s.ShowGrid = showGrid
	return model.NewScene(s)
}

func TestRenderSizeAndBackground(t *testing.T) {
	img := Render(newScene(false), model.Ref{}, Options{Width: 120, Height: 80})
	require.Equal(t, image.Rect(0, 0, 120, 80), img.Bounds())
	assertPixel(t, img, 60, 40, ColorBackground)

	empty := Render(newScene(true), model.Ref{}, Options{})
	assert.True(t, empty.Bounds().Empty())
}

func TestRenderGrid(t *testing.T) {
	with := Render(newScene(true), model.Ref{}, Options{Width: 200, Height: 200})
	without := Render(newScene(false), model.Ref{}, Options{Width: 200, Height: 200})

	assert.NotEqual(t, ColorBackground.R, with.RGBAAt(50, 10).R, "grid line at x=50")
	assertPixel(t, with, 75, 75, ColorBackground)
	assertPixel(t, without, 50, 10, ColorBackground)
}

func TestRenderRoomFillAndSelection(t *testing.T) {
	scene := newScene(false)
	room := model.Room{ID: "r1", X: 100, Y: 100, Width: 200, Height: 200, Color: "#ffcc00"}
	scene.Add(room)
	opts := Options{Width: 400, Height: 400}

	img := Render(scene, model.Ref{}, opts)
	assertPixel(t, img, 110, 110, color.NRGBA{R: 0xff, G: 0xcc, B: 0x00, A: 0xff})
	assertPixel(t, img, 96, 96, ColorBackground)

	img = Render(scene, model.RefOf(room), opts)
	assertPixel(t, img, 96, 96, ColorSelected)
	assertPixel(t, img, 200, 96, ColorSelected)
	assertPixel(t, img, 110, 110, color.NRGBA{R: 0xff, G: 0xcc, B: 0x00, A: 0xff})
}

func TestRenderInvalidRoomColorFallsBack(t *testing.T) {
	scene := newScene(false)
	scene.Add(model.Room{ID: "r1", X: 0, Y: 0, Width: 100, Height: 100, Color: "blue-ish"})

	img := Render(scene, model.Ref{}, Options{Width: 200, Height: 200, HideLabels: true})
	want, _ := model.ParseColor(model.DefaultRoomColor)
	assertPixel(t, img, 50, 50, want)
}

func TestRenderDoorRotation(t *testing.T) {
	scene := newScene(false)
	scene.Add(model.Door{ID: "d1", DoorType: model.DoorSwing, X: 300, Y: 300, Width: 80})
	img := Render(scene, model.Ref{}, Options{Width: 500, Height: 500})
	assertPixel(t, img, 340, 299, ColorDoor)
	assertPixel(t, img, 299, 340, ColorBackground)

	scene.Replace(model.Document{Doors: []model.Door{{ID: "d1", DoorType: model.DoorSwing, X: 300, Y: 300, Width: 80, Rotation: 90}}})
	img = Render(scene, model.Ref{}, Options{Width: 500, Height: 500})
	assertPixel(t, img, 299, 340, ColorDoor)
	assertPixel(t, img, 340, 299, ColorBackground)
}

func TestRenderWallSelected(t *testing.T) {
	scene := newScene(false)
	wall := model.Wall{ID: "w1", X1: 50, Y1: 100, X2: 150, Y2: 100, Thickness: 15}
	scene.Add(wall)

	img := Render(scene, model.Ref{}, Options{Width: 200, Height: 200})
	assertPixel(t, img, 100, 100, ColorWall)
	// Square caps extend past the end point.
	assertPixel(t, img, 45, 100, ColorWall)

	img = Render(scene, model.RefOf(wall), Options{Width: 200, Height: 200})
	assertPixel(t, img, 100, 100, ColorSelected)
}

func TestRenderZoom(t *testing.T) {
	scene := newScene(false)
	scene.Add(model.Room{ID: "r1", X: 100, Y: 100, Width: 100, Height: 100, Color: "#000000"})

	img := Render(scene, model.Ref{}, Options{Width: 500, Height: 500, Zoom: 2, HideLabels: true})
	assertPixel(t, img, 210, 210, color.NRGBA{A: 0xff})
	assertPixel(t, img, 150, 150, ColorBackground)
}

func TestRoomLabels(t *testing.T) {
	r := model.Room{X: 0, Y: 0, Width: 400, Height: 200, Name: "LDK"}
	labels := RoomLabels(r, model.DefaultScale)
	require.Len(t, labels, 2)
	assert.Equal(t, "LDK", labels[0].Text)
	assert.True(t, labels[0].Title)
	assert.Equal(t, model.Point{X: 200, Y: 85}, labels[0].At)
	assert.Equal(t, "123.5畳", labels[1].Text)

	r.Name = ""
	r.Purpose = "居間"
	labels = RoomLabels(r, model.DefaultScale)
	require.Len(t, labels, 3)
	assert.Equal(t, "部屋", labels[0].Text)
	assert.Equal(t, "居間", labels[2].Text)
	assert.Equal(t, 122.0, labels[2].At.Y)
}
