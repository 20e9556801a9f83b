// Madori: 2D floor-plan editor
//
// A cross-platform desktop application for laying out rooms, walls,
// doors, windows and figures on a grid, with tatami area totals and
// PNG/PDF/XLSX/DXF export.
//
// Build:
//   go build -o madori ./cmd/madori
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o madori.exe ./cmd/madori
//   GOOS=darwin  GOARCH=amd64 go build -o madori-darwin ./cmd/madori
//
// Set MADORI_DEBUG=1 for debug logging.

package main

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"

	"github.com/piwi3910/madori/internal/model"
	"github.com/piwi3910/madori/internal/project"
	"github.com/piwi3910/madori/internal/ui"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if os.Getenv("MADORI_DEBUG") != "" {
		logrus.SetLevel(logrus.DebugLevel)
	}
	log := logrus.WithField("component", "main")

	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		log.WithError(err).Warn("failed to load config, using defaults")
		config = model.DefaultAppConfig()
	}
	presets, err := project.LoadPresets(project.DefaultPresetsPath())
	if err != nil {
		log.WithError(err).Warn("failed to load room presets, using defaults")
		presets = model.DefaultInventory()
	}

	application := app.NewWithID("com.piwi3910.madori")
	application.Settings().SetTheme(ui.ThemeForName(config.Theme))

	window := application.NewWindow("Madori — 間取りエディタ")

	appUI := ui.NewApp(application, window, config, presets)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1400, 900))
	window.CenterOnScreen()

	log.WithField("config", project.DefaultConfigPath()).Info("starting editor")
	window.ShowAndRun()
}
