package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/madori/internal/model"
)

func TestInspectorRoom(t *testing.T) {
	s := newTestSession()
	room := model.Room{ID: "r1", Width: 400, Height: 200, Name: "リビング", Color: "#e3f2fd"}
	s.Scene().Add(room)

	_, ok := s.Inspector()
	assert.False(t, ok)

	s.Select(model.RefOf(room))
	in, ok := s.Inspector()
	require.True(t, ok)
	assert.Equal(t, "部屋", in.Label)
	assert.Equal(t, "リビング", in.Name)
	assert.Equal(t, 2000, in.WidthCm)
	assert.Equal(t, 1000, in.HeightCm)
	assert.Equal(t, "123.5", in.Tatami)
}

func TestInspectorLabels(t *testing.T) {
	s := newTestSession()
	els := []model.Element{
		model.Wall{ID: "w1", Thickness: 15},
		model.Door{ID: "d1", Width: 80},
		model.Window{ID: "n1", Width: 100},
		model.Figure{ID: "m1"},
	}
	want := []string{"壁", "ドア", "窓", "人型"}
	for i, el := range els {
		s.Scene().Add(el)
		s.Select(model.RefOf(el))
		in, ok := s.Inspector()
		require.True(t, ok)
		assert.Equal(t, want[i], in.Label)
	}

	s.Select(model.Ref{Kind: model.KindDoor, ID: "d1"})
	in, _ := s.Inspector()
	assert.Equal(t, 400, in.ItemWidthCm)
}

func TestRoomEdits(t *testing.T) {
	s := newTestSession()
	room := model.Room{ID: "r1", Width: 200, Height: 200, Color: "#e3f2fd"}
	s.Scene().Add(room)

	s.SetRoomName("ignored")
	assert.Equal(t, "", s.Scene().Rooms()[0].Name, "no selection is a no-op")

	s.Select(model.RefOf(room))
	s.SetRoomName("寝室")
	s.SetRoomPurpose("sleep")
	s.SetRoomWidthCm(500)
	s.SetRoomHeightCm(10)
	s.SetRoomColor("#FFCC00")

	got := s.Scene().Rooms()[0]
	assert.Equal(t, "寝室", got.Name)
	assert.Equal(t, "sleep", got.Purpose)
	assert.InDelta(t, 100.0, got.Width, 1e-9)
	assert.Equal(t, model.MinRoomSize, got.Height)
	assert.Equal(t, "#ffcc00", got.Color)

	s.SetRoomColor("not a color")
	assert.Equal(t, "#ffcc00", s.Scene().Rooms()[0].Color)
}

func TestSetItemWidthClamps(t *testing.T) {
	s := newTestSession()
	door := model.Door{ID: "d1", Width: 80}
	s.Scene().Add(door)
	s.Select(model.RefOf(door))

	s.SetItemWidthCm(1000)
	assert.InDelta(t, 40.0, s.Scene().Doors()[0].Width, 1e-9)

	s.SetItemWidthCm(10)
	assert.InDelta(t, 10.0, s.Scene().Doors()[0].Width, 1e-9)

	room := model.Room{ID: "r1", Width: 200, Height: 200}
	s.Scene().Add(room)
	s.Select(model.RefOf(room))
	s.SetItemWidthCm(100)
	assert.Equal(t, 200.0, s.Scene().Rooms()[0].Width, "rooms ignore item width")
}

func TestSettingsEdits(t *testing.T) {
	s := newTestSession()

	s.SetWallThickness(0)
	assert.Equal(t, 1.0, s.Settings().WallThickness)
	s.SetWallThickness(20)
	assert.Equal(t, 20.0, s.Settings().WallThickness)

	s.SetGridSize(-5)
	assert.Equal(t, 0.0, s.Settings().GridSize)

	s.SetTool(ToolFigure)
	s.PointerDown(model.Point{X: 13, Y: 27})
	fig := s.Scene().Figures()[0]
	assert.Equal(t, 13.0, fig.X, "grid 0 disables snapping")
	assert.Equal(t, 27.0, fig.Y)

	s.ToggleGrid()
	assert.False(t, s.Settings().ShowGrid)

	s.SetScale(-1)
	assert.Equal(t, model.DefaultScale, s.Settings().Scale)
}

func TestApplyPreset(t *testing.T) {
	s := newTestSession()
	room := model.Room{ID: "r1", Width: 200, Height: 200, Color: "#e3f2fd"}
	s.Scene().Add(room)
	s.Select(model.RefOf(room))

	s.ApplyPreset(model.RoomPreset{Name: "和室", Purpose: "guest", WidthCm: 364, HeightCm: 364, Color: "#c8e6c9"})
	got := s.Scene().Rooms()[0]
	assert.Equal(t, "和室", got.Name)
	assert.Equal(t, "#c8e6c9", got.Color)
	assert.InDelta(t, 72.8, got.Width, 1e-9)
}

func TestStats(t *testing.T) {
	s := newTestSession()
	s.Scene().Add(model.Room{ID: "a", Width: 400, Height: 200})
	s.Scene().Add(model.Room{ID: "b", Width: 200, Height: 200})
	s.Scene().Add(model.Door{ID: "d"})

	st := s.Stats()
	assert.Equal(t, 2, st.RoomCount)
	assert.Equal(t, 1, st.DoorCount)
	assert.Equal(t, "185.2", st.TotalTatami)

	room, ok := s.FindRoom(" ")
	assert.False(t, ok)
	assert.Empty(t, room.ID)
}

func TestSettersIgnoreNonFiniteInput(t *testing.T) {
	s := newTestSession()
	room := model.Room{ID: "r1", Width: 200, Height: 100}
	door := model.Door{ID: "d1", X: 400, Y: 400, Width: 80}
	s.Scene().Add(room)
	s.Scene().Add(door)
	before := s.Settings()

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		s.SetGridSize(v)
		s.SetWallThickness(v)
		s.SetScale(v)

		s.Select(model.RefOf(room))
		s.SetRoomWidthCm(v)
		s.SetRoomHeightCm(v)

		s.Select(model.RefOf(door))
		s.SetItemWidthCm(v)
	}

	assert.Equal(t, before, s.Settings())
	assert.Equal(t, 200.0, s.Scene().Rooms()[0].Width)
	assert.Equal(t, 100.0, s.Scene().Rooms()[0].Height)
	assert.Equal(t, 80.0, s.Scene().Doors()[0].Width)

	s.SetTool(ToolRoom)
	s.PointerDown(model.Point{X: 130, Y: 70})
	placed := s.Scene().Rooms()[1]
	assert.False(t, math.IsNaN(placed.X) || math.IsNaN(placed.Y), "placement stays on the grid")
}
