package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Editor defaults applied at startup
	DefaultWallThickness float64 `json:"default_wall_thickness"` // px
	DefaultGridSize      float64 `json:"default_grid_size"`      // px
	ShowGrid             bool    `json:"show_grid"`
	Scale                float64 `json:"scale"` // px per meter

	// Canvas size in px, also the size of exported images
	CanvasWidth  int `json:"canvas_width"`
	CanvasHeight int `json:"canvas_height"`

	// PDFFontPath is a TrueType font for PDF text. Empty uses Helvetica,
	// which has no Japanese glyphs.
	PDFFontPath string `json:"pdf_font_path"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
	Theme          string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with defaults
// matching DefaultEditorSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultEditorSettings()
	return AppConfig{
		DefaultWallThickness: defaults.WallThickness,
		DefaultGridSize:      defaults.GridSize,
		ShowGrid:             defaults.ShowGrid,
		Scale:                defaults.Scale,
		CanvasWidth:          1200,
		CanvasHeight:         800,
		RecentProjects:       []string{},
		Theme:                "system",
	}
}

// EditorSettings builds the editor Settings from the saved defaults.
// A missing scale falls back to DefaultScale.
func (c AppConfig) EditorSettings() Settings {
	s := Settings{
		GridSize:      c.DefaultGridSize,
		WallThickness: c.DefaultWallThickness,
		ShowGrid:      c.ShowGrid,
		Scale:         c.Scale,
	}
	if s.Scale <= 0 {
		s.Scale = DefaultScale
	}
	if s.WallThickness < 1 {
		s.WallThickness = 1
	}
	return s
}

// AddRecent moves path to the front of the recent projects list,
// keeping at most limit entries.
func (c *AppConfig) AddRecent(path string, limit int) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	c.RecentProjects = recent
}
