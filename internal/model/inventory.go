package model

import "github.com/google/uuid"

// RoomPreset is a reusable room definition (name, purpose, size, color).
// Sizes are stored in centimeters so presets are independent of the scale.
type RoomPreset struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Purpose  string  `json:"purpose"`
	WidthCm  float64 `json:"width_cm"`
	HeightCm float64 `json:"height_cm"`
	Color    string  `json:"color"`
}

// NewRoomPreset creates a new RoomPreset with a generated ID.
func NewRoomPreset(name, purpose string, widthCm, heightCm float64, color string) RoomPreset {
	return RoomPreset{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Purpose:  purpose,
		WidthCm:  widthCm,
		HeightCm: heightCm,
		Color:    color,
	}
}

// ApplyTo copies the preset onto r, keeping its id and position.
// Dimensions are clamped to MinRoomSize.
func (p RoomPreset) ApplyTo(r *Room, scale float64) {
	r.Name = p.Name
	r.Purpose = p.Purpose
	if p.Color != "" {
		r.Color = p.Color
	}
	r.Width = max(MinRoomSize, CmToPx(p.WidthCm, scale))
	r.Height = max(MinRoomSize, CmToPx(p.HeightCm, scale))
}

// Inventory holds the user's saved room presets.
type Inventory struct {
	Rooms []RoomPreset `json:"rooms"`
}

// DefaultInventory returns an inventory populated with common room sizes.
// A 6-tatami room is roughly 364x273 cm.
func DefaultInventory() Inventory {
	return Inventory{
		Rooms: []RoomPreset{
			NewRoomPreset("リビング", "居間", 546, 455, "#fff3e0"),
			NewRoomPreset("ダイニング", "食事", 364, 364, "#fffde7"),
			NewRoomPreset("キッチン", "調理", 273, 182, "#f1f8e9"),
			NewRoomPreset("和室", "客間", 364, 273, "#efebe9"),
			NewRoomPreset("寝室", "就寝", 364, 364, "#ede7f6"),
			NewRoomPreset("浴室", "入浴", 182, 182, "#e0f7fa"),
			NewRoomPreset("トイレ", "", 91, 182, "#eceff1"),
		},
	}
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (inv *Inventory) FindByID(id string) *RoomPreset {
	for i := range inv.Rooms {
		if inv.Rooms[i].ID == id {
			return &inv.Rooms[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (inv *Inventory) FindByName(name string) *RoomPreset {
	for i := range inv.Rooms {
		if inv.Rooms[i].Name == name {
			return &inv.Rooms[i]
		}
	}
	return nil
}

// Names returns the preset names for UI dropdowns.
func (inv *Inventory) Names() []string {
	names := make([]string, len(inv.Rooms))
	for i, p := range inv.Rooms {
		names[i] = p.Name
	}
	return names
}

// Remove deletes a preset by ID. Returns true if found and removed.
func (inv *Inventory) Remove(id string) bool {
	for i, p := range inv.Rooms {
		if p.ID == id {
			inv.Rooms = append(inv.Rooms[:i], inv.Rooms[i+1:]...)
			return true
		}
	}
	return false
}
