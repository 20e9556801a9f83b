package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/madori/internal/model"
	"github.com/piwi3910/madori/internal/project"
)

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	// Helper to create a float entry bound to a pointer
	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(strconv.FormatFloat(*val, 'f', -1, 64))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				*val = v
			}
		}
		return e
	}

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%d", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
			}
		}
		return e
	}

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	gridCheck := widget.NewCheck("", func(on bool) { cfg.ShowGrid = on })
	gridCheck.SetChecked(cfg.ShowGrid)

	fontEntry := widget.NewEntry()
	fontEntry.SetText(cfg.PDFFontPath)
	fontEntry.SetPlaceHolder("/path/to/font.ttf")
	fontEntry.OnChanged = func(text string) { cfg.PDFFontPath = text }

	formItems := []*widget.FormItem{
		widget.NewFormItem("テーマ", themeSelect),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("壁の厚さ (px)", floatEntry(&cfg.DefaultWallThickness)),
		widget.NewFormItem("グリッド (px, 0=なし)", floatEntry(&cfg.DefaultGridSize)),
		widget.NewFormItem("グリッド表示", gridCheck),
		widget.NewFormItem("縮尺 (px/m)", floatEntry(&cfg.Scale)),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("キャンバス幅 (px)", intEntry(&cfg.CanvasWidth)),
		widget.NewFormItem("キャンバス高さ (px)", intEntry(&cfg.CanvasHeight)),
		widget.NewFormItem("PDFフォント (TTF)", fontEntry),
	}

	d := dialog.NewForm("環境設定", "保存", "キャンセル", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			if cfg.CanvasWidth <= 0 || cfg.CanvasHeight <= 0 || cfg.Scale <= 0 {
				dialog.ShowError(fmt.Errorf("キャンバスサイズと縮尺は 0 より大きくしてください"), a.window)
				return
			}
			a.applyConfig(cfg)
			if err := a.saveConfig(); err != nil {
				a.showError("設定の保存に失敗しました", err)
			} else {
				dialog.ShowInformation("設定を保存しました", "環境設定を保存しました。", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(500, 550))
	d.Show()
}

// applyConfig makes cfg current. The theme, canvas size and scale apply
// immediately; wall and grid defaults apply to the next new plan.
func (a *App) applyConfig(cfg model.AppConfig) {
	a.config = cfg
	a.app.Settings().SetTheme(ThemeForName(cfg.Theme))
	if a.canvas != nil && cfg.CanvasWidth > 0 && cfg.CanvasHeight > 0 {
		a.canvas.SetPlanSize(float32(cfg.CanvasWidth), float32(cfg.CanvasHeight))
	}
	a.session.SetScale(cfg.Scale)
}

// showImportExportDialog displays the backup import/export dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("すべてのデータをエクスポート...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			path := writer.URI().Path()
			writer.Close()
			if err := project.ExportAllData(path, a.config, a.presets); err != nil {
				a.showError("バックアップに失敗しました", err)
			} else {
				a.log.WithField("path", path).Info("backup exported")
				dialog.ShowInformation("エクスポート完了",
					fmt.Sprintf("設定とプリセットを保存しました:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("madori-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("バックアップから復元...", func() {
		dialog.ShowConfirm("データの復元",
			"現在の設定とプリセットが置き換えられます。\n\n続行しますか？",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					path := reader.URI().Path()
					backup, err := project.ImportAllData(path)
					if err != nil {
						a.showError("復元に失敗しました", err)
						return
					}
					a.applyConfig(backup.Config)
					a.presets = backup.Presets
					if err := a.saveConfig(); err != nil {
						a.showError("復元した設定の保存に失敗しました", err)
						return
					}
					a.savePresets()
					a.log.WithField("path", path).Info("backup restored")
					dialog.ShowInformation("復元完了",
						fmt.Sprintf("%s に作成されたバックアップから復元しました。", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("設定と部屋プリセットをバックアップファイルに保存するか、\n保存したバックアップから復元します。"),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("バックアップ", "閉じる", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}
