package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/madori/internal/model"
)

func newTestScene() *model.Scene {
	return model.NewScene(model.DefaultEditorSettings())
}

func TestResolveDoorOverRoom(t *testing.T) {
	scene := newTestScene()
	room := model.Room{ID: "r1", X: 100, Y: 100, Width: 200, Height: 200}
	door := model.Door{ID: "d1", X: 150, Y: 150, Width: 80}
	scene.Add(room)
	scene.Add(door)

	target, ok := Resolve(model.Point{X: 160, Y: 160}, scene, model.Ref{})
	require.True(t, ok)
	assert.Equal(t, TargetElement, target.Type)
	assert.Equal(t, model.Ref{Kind: model.KindDoor, ID: "d1"}, target.Ref)
}

func TestResolveRoomBody(t *testing.T) {
	scene := newTestScene()
	scene.Add(model.Room{ID: "r1", X: 0, Y: 0, Width: 200, Height: 200})
	scene.Add(model.Room{ID: "r2", X: 100, Y: 100, Width: 200, Height: 200})

	target, ok := Resolve(model.Point{X: 150, Y: 150}, scene, model.Ref{})
	require.True(t, ok)
	assert.Equal(t, model.ID("r2"), target.Ref.ID, "last inserted room wins")

	target, ok = Resolve(model.Point{X: 50, Y: 50}, scene, model.Ref{})
	require.True(t, ok)
	assert.Equal(t, model.ID("r1"), target.Ref.ID)

	_, ok = Resolve(model.Point{X: 500, Y: 500}, scene, model.Ref{})
	assert.False(t, ok)
}

func TestResolveHandlePrecedence(t *testing.T) {
	scene := newTestScene()
	room := model.Room{ID: "r1", X: 100, Y: 100, Width: 200, Height: 100}
	scene.Add(room)
	// A door sitting on the south-east corner would normally win.
	scene.Add(model.Door{ID: "d1", X: 300, Y: 200, Width: 80})
	sel := model.RefOf(room)

	target, ok := Resolve(model.Point{X: 295, Y: 205}, scene, sel)
	require.True(t, ok)
	assert.Equal(t, TargetResize, target.Type)
	assert.Equal(t, HandleSE, target.Handle)
	assert.Equal(t, sel, target.Ref)

	// Without the room selected the door is hit.
	target, ok = Resolve(model.Point{X: 295, Y: 205}, scene, model.Ref{})
	require.True(t, ok)
	assert.Equal(t, model.KindDoor, target.Ref.Kind)
}

func TestResolveHandles(t *testing.T) {
	scene := newTestScene()
	room := model.Room{ID: "r1", X: 100, Y: 100, Width: 200, Height: 100}
	scene.Add(room)
	sel := model.RefOf(room)

	tests := []struct {
		at   model.Point
		want Handle
	}{
		{model.Point{X: 100, Y: 100}, HandleNW},
		{model.Point{X: 300, Y: 100}, HandleNE},
		{model.Point{X: 100, Y: 200}, HandleSW},
		{model.Point{X: 300, Y: 200}, HandleSE},
		{model.Point{X: 200, Y: 100}, HandleN},
		{model.Point{X: 200, Y: 200}, HandleS},
		{model.Point{X: 100, Y: 150}, HandleW},
		{model.Point{X: 309, Y: 141}, HandleE},
	}
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			target, ok := Resolve(tt.at, scene, sel)
			require.True(t, ok)
			assert.Equal(t, TargetResize, target.Type)
			assert.Equal(t, tt.want, target.Handle)
		})
	}

	// Exactly at the threshold is outside the handle, but inside the body.
	target, ok := Resolve(model.Point{X: 290, Y: 150}, scene, sel)
	require.True(t, ok)
	assert.Equal(t, TargetElement, target.Type)
}

func TestResolveIgnoresWalls(t *testing.T) {
	scene := newTestScene()
	scene.Add(model.Wall{ID: "w1", X1: 0, Y1: 0, X2: 100, Y2: 0, Thickness: 15})

	_, ok := Resolve(model.Point{X: 50, Y: 0}, scene, model.Ref{})
	assert.False(t, ok)
}

func TestResolveThresholds(t *testing.T) {
	scene := newTestScene()
	scene.Add(model.Window{ID: "n1", X: 0, Y: 0, Width: 100})
	scene.Add(model.Figure{ID: "m1", X: 500, Y: 500})

	_, ok := Resolve(model.Point{X: 49, Y: -49}, scene, model.Ref{})
	assert.True(t, ok)
	_, ok = Resolve(model.Point{X: 50, Y: 0}, scene, model.Ref{})
	assert.False(t, ok)

	_, ok = Resolve(model.Point{X: 529, Y: 500}, scene, model.Ref{})
	assert.True(t, ok)
	_, ok = Resolve(model.Point{X: 530, Y: 500}, scene, model.Ref{})
	assert.False(t, ok)
}

func TestHandleHas(t *testing.T) {
	assert.True(t, HandleNE.Has('n'))
	assert.True(t, HandleNE.Has('e'))
	assert.False(t, HandleNE.Has('w'))
	assert.False(t, HandleNone.Has('n'))
}
