package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/madori/internal/model"
)

// DefaultPresetsPath returns the default file path for room presets.
// This is located at ~/.madori/presets.json.
func DefaultPresetsPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.json")
}

// SavePresets writes the preset inventory to the specified JSON file.
// It creates parent directories if they do not exist.
func SavePresets(path string, inv model.Inventory) error {
	if err := writeJSON(path, inv); err != nil {
		return fmt.Errorf("failed to save presets: %w", err)
	}
	return nil
}

// LoadPresets reads room presets from the specified JSON file.
// If the file does not exist, it returns the default presets and saves them.
func LoadPresets(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			inv := model.DefaultInventory()
			if saveErr := SavePresets(path, inv); saveErr != nil {
				return inv, saveErr
			}
			return inv, nil
		}
		return model.Inventory{}, err
	}
	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.Inventory{}, fmt.Errorf("failed to parse presets: %w", err)
	}
	if inv.Rooms == nil {
		inv.Rooms = []model.RoomPreset{}
	}
	return inv, nil
}

// ImportPresets merges presets from a user-specified JSON file into
// existing. Presets whose ID is already present are skipped.
func ImportPresets(path string, existing model.Inventory) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.Inventory
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, fmt.Errorf("failed to parse presets: %w", err)
	}
	return MergePresets(existing, imported), nil
}

// MergePresets appends the presets of add that existing does not have.
func MergePresets(existing, add model.Inventory) model.Inventory {
	ids := make(map[string]bool, len(existing.Rooms))
	for _, p := range existing.Rooms {
		ids[p.ID] = true
	}
	for _, p := range add.Rooms {
		if !ids[p.ID] {
			existing.Rooms = append(existing.Rooms, p)
			ids[p.ID] = true
		}
	}
	return existing
}
