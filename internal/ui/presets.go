package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/madori/internal/model"
	"github.com/piwi3910/madori/internal/project"
)

// ─── Room Preset Dialog ────────────────────────────────────

func (a *App) showPresetsDialog() {
	presetList := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		presetList.RemoveAll()

		if len(a.presets.Rooms) == 0 {
			presetList.Add(widget.NewLabel("プリセットがありません。"))
			return
		}

		header := container.NewGridWithColumns(6,
			widget.NewLabelWithStyle("名前", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("用途", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("サイズ", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("色", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabel(""),
			widget.NewLabel(""),
		)
		presetList.Add(header)
		presetList.Add(widget.NewSeparator())

		for i := range a.presets.Rooms {
			idx := i
			p := a.presets.Rooms[idx]
			swatch := canvas.NewRectangle(swatchColor(p.Color))
			swatch.SetMinSize(fyne.NewSize(20, 20))
			row := container.NewGridWithColumns(6,
				widget.NewLabel(p.Name),
				widget.NewLabel(p.Purpose),
				widget.NewLabel(fmt.Sprintf("%.0f×%.0f cm", p.WidthCm, p.HeightCm)),
				swatch,
				widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
					a.showPresetForm("プリセットを編集", "保存", a.presets.Rooms[idx], func(edited model.RoomPreset) {
						a.presets.Rooms[idx] = edited
						a.savePresets()
						refreshList()
					})
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.presets.Remove(p.ID)
					a.savePresets()
					refreshList()
				}),
			)
			presetList.Add(row)
		}
	}

	refreshList()

	addBtn := widget.NewButtonWithIcon("追加", theme.ContentAddIcon(), func() {
		blank := model.NewRoomPreset("新しい部屋", "", 364, 273, model.DefaultRoomColor)
		a.showPresetForm("プリセットを追加", "追加", blank, func(p model.RoomPreset) {
			a.presets.Rooms = append(a.presets.Rooms, p)
			a.savePresets()
			refreshList()
		})
	})

	fromSelection := widget.NewButtonWithIcon("選択中の部屋から追加", theme.ContentCopyIcon(), func() {
		info, ok := a.session.Inspector()
		if !ok || info.Kind != model.KindRoom {
			dialog.ShowInformation("プリセット", "部屋を選択してください。", a.window)
			return
		}
		p := model.NewRoomPreset(info.Name, info.Purpose, float64(info.WidthCm), float64(info.HeightCm), info.Color)
		a.presets.Rooms = append(a.presets.Rooms, p)
		a.savePresets()
		refreshList()
	})

	importBtn := widget.NewButtonWithIcon("インポート...", theme.FolderOpenIcon(), func() {
		a.importPresets(refreshList)
	})

	exportBtn := widget.NewButtonWithIcon("エクスポート...", theme.DocumentSaveIcon(), func() {
		a.exportPresets()
	})

	toolbar := container.NewHBox(addBtn, fromSelection, layout.NewSpacer(), importBtn, exportBtn)

	content := container.NewBorder(
		toolbar,
		nil, nil, nil,
		container.NewVScroll(presetList),
	)

	d := dialog.NewCustom("部屋プリセット", "閉じる", content, a.window)
	d.Resize(fyne.NewSize(700, 500))
	d.Show()
}

// showPresetForm edits a copy of p and hands it to onSave when confirmed.
func (a *App) showPresetForm(title, confirm string, p model.RoomPreset, onSave func(model.RoomPreset)) {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(p.Name)

	purposeEntry := widget.NewEntry()
	purposeEntry.SetText(p.Purpose)

	widthEntry := widget.NewEntry()
	widthEntry.SetText(strconv.FormatFloat(p.WidthCm, 'f', -1, 64))

	heightEntry := widget.NewEntry()
	heightEntry.SetText(strconv.FormatFloat(p.HeightCm, 'f', -1, 64))

	colorEntry := widget.NewEntry()
	colorEntry.SetText(p.Color)

	form := dialog.NewForm(title, confirm, "キャンセル",
		[]*widget.FormItem{
			widget.NewFormItem("名前", nameEntry),
			widget.NewFormItem("用途", purposeEntry),
			widget.NewFormItem("幅 (cm)", widthEntry),
			widget.NewFormItem("奥行 (cm)", heightEntry),
			widget.NewFormItem("色 (#rrggbb)", colorEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			width, _ := strconv.ParseFloat(strings.TrimSpace(widthEntry.Text), 64)
			height, _ := strconv.ParseFloat(strings.TrimSpace(heightEntry.Text), 64)
			if width <= 0 || height <= 0 {
				dialog.ShowError(fmt.Errorf("幅と奥行は 0 より大きくしてください"), a.window)
				return
			}
			c, valid := model.NormalizeColor(colorEntry.Text)
			if !valid {
				dialog.ShowError(fmt.Errorf("色が不正です: %q", colorEntry.Text), a.window)
				return
			}

			p.Name = strings.TrimSpace(nameEntry.Text)
			p.Purpose = strings.TrimSpace(purposeEntry.Text)
			p.WidthCm = width
			p.HeightCm = height
			p.Color = c
			onSave(p)
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 400))
	form.Show()
}

// ─── Import / Export ───────────────────────────────────────

func (a *App) importPresets(onDone func()) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		merged, err := project.ImportPresets(reader.URI().Path(), a.presets)
		if err != nil {
			a.showError("プリセットのインポートに失敗しました", err)
			return
		}

		a.presets = merged
		a.savePresets()
		onDone()
		dialog.ShowInformation("インポート完了",
			fmt.Sprintf("プリセットは %d 件になりました。", len(a.presets.Rooms)),
			a.window)
	}, a.window)
}

func (a *App) exportPresets() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := project.SavePresets(path, a.presets); err != nil {
			a.showError("プリセットのエクスポートに失敗しました", err)
		} else {
			dialog.ShowInformation("エクスポート完了",
				fmt.Sprintf("プリセットを保存しました:\n%s", path),
				a.window)
		}
	}, a.window)
	d.SetFileName("presets.json")
	d.Show()
}

// savePresets persists the room presets to disk.
func (a *App) savePresets() {
	if err := project.SavePresets(project.DefaultPresetsPath(), a.presets); err != nil {
		a.showError("プリセットの保存に失敗しました", err)
	}
}
