package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/madori/internal/model"
)

func TestLoadPresetsCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")

	inv, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets failed: %v", err)
	}
	if len(inv.Rooms) != len(model.DefaultInventory().Rooms) {
		t.Errorf("expected default presets, got %d", len(inv.Rooms))
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default presets were not written: %v", err)
	}

	again, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("second LoadPresets failed: %v", err)
	}
	if again.Rooms[0].ID != inv.Rooms[0].ID {
		t.Errorf("expected persisted ID %s, got %s", inv.Rooms[0].ID, again.Rooms[0].ID)
	}
}

func TestSaveAndLoadPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")
	inv := model.Inventory{Rooms: []model.RoomPreset{
		model.NewRoomPreset("書斎", "仕事", 273, 273, "#ffffff"),
	}}
	if err := SavePresets(path, inv); err != nil {
		t.Fatalf("SavePresets failed: %v", err)
	}
	loaded, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets failed: %v", err)
	}
	if len(loaded.Rooms) != 1 || loaded.Rooms[0].Name != "書斎" {
		t.Errorf("unexpected presets %+v", loaded.Rooms)
	}
	if loaded.Rooms[0].WidthCm != 273 {
		t.Errorf("expected width 273, got %f", loaded.Rooms[0].WidthCm)
	}
}

func TestLoadPresetsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")
	if err := os.WriteFile(path, []byte("[1,2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPresets(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportPresetsSkipsDuplicates(t *testing.T) {
	existing := model.Inventory{Rooms: []model.RoomPreset{
		{ID: "a", Name: "A"},
	}}
	path := filepath.Join(t.TempDir(), "import.json")
	other := model.Inventory{Rooms: []model.RoomPreset{
		{ID: "a", Name: "A again"},
		{ID: "b", Name: "B"},
	}}
	if err := SavePresets(path, other); err != nil {
		t.Fatal(err)
	}

	merged, err := ImportPresets(path, existing)
	if err != nil {
		t.Fatalf("ImportPresets failed: %v", err)
	}
	if len(merged.Rooms) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(merged.Rooms))
	}
	if merged.Rooms[0].Name != "A" || merged.Rooms[1].ID != "b" {
		t.Errorf("unexpected merge result %+v", merged.Rooms)
	}

	if _, err := ImportPresets(filepath.Join(t.TempDir(), "missing.json"), existing); err == nil {
		t.Error("expected error for missing file")
	}
}
