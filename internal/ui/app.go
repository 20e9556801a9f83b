package ui

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
	"github.com/sirupsen/logrus"

	"github.com/piwi3910/madori/internal/engine"
	"github.com/piwi3910/madori/internal/export"
	"github.com/piwi3910/madori/internal/importer"
	"github.com/piwi3910/madori/internal/model"
	"github.com/piwi3910/madori/internal/project"
	"github.com/piwi3910/madori/internal/render"
	"github.com/piwi3910/madori/internal/ui/widgets"
)

const recentLimit = 10

// inspectorField is an entry in the inspector that mirrors one value of
// the selected element.
type inspectorField struct {
	entry *widget.Entry
	value func(engine.Inspector) string
}

// App holds the editor state and UI references.
type App struct {
	app     fyne.App
	window  fyne.Window
	session *engine.Session
	config  model.AppConfig
	presets model.Inventory
	log     *logrus.Entry

	// UI references for dynamic updates
	canvas      *widgets.PlanCanvas
	toolButtons map[engine.Tool]*ttwidget.Button
	inspector   *fyne.Container
	statsLabel  *widget.Label
	wallEntry   *widget.Entry
	gridEntry   *widget.Entry
	gridCheck   *widget.Check
	mainMenu    *fyne.MainMenu
	recentItem  *fyne.MenuItem

	// Inspector state. The panel is rebuilt only when the selection
	// changes; otherwise fields are updated in place.
	shownRef    model.Ref
	shown       bool
	fields      []inspectorField
	tatamiLabel *widget.Label
	swatch      *canvas.Rectangle
	updating    bool
}

// NewApp creates the editor for the given window. The session starts with
// the editor defaults from config.
func NewApp(application fyne.App, window fyne.Window, config model.AppConfig, presets model.Inventory) *App {
	a := &App{
		app:         application,
		window:      window,
		session:     engine.NewSession(config.EditorSettings()),
		config:      config,
		presets:     presets,
		log:         logrus.WithField("component", "ui"),
		toolButtons: make(map[engine.Tool]*ttwidget.Button),
	}
	a.session.OnChange(a.refresh)
	return a
}

// SetupMenus creates the main menu bar.
func (a *App) SetupMenus() {
	a.recentItem = fyne.NewMenuItem("最近使ったファイル", nil)
	a.recentItem.ChildMenu = a.buildRecentMenu()

	importItem := fyne.NewMenuItem("インポート", nil)
	importItem.ChildMenu = fyne.NewMenu("",
		fyne.NewMenuItem("CSV...", func() { a.importRooms("csv") }),
		fyne.NewMenuItem("Excel...", func() { a.importRooms("xlsx") }),
		fyne.NewMenuItem("DXF...", func() { a.importRooms("dxf") }),
	)

	exportItem := fyne.NewMenuItem("エクスポート", nil)
	exportItem.ChildMenu = fyne.NewMenu("",
		fyne.NewMenuItem("画像 (PNG)...", a.exportPNG),
		fyne.NewMenuItem("PDF...", a.exportPDF),
		fyne.NewMenuItem("部屋一覧 (Excel)...", a.exportSchedule),
		fyne.NewMenuItem("CAD (DXF)...", a.exportDXF),
	)

	fileMenu := fyne.NewMenu("ファイル",
		fyne.NewMenuItem("新規", a.confirmClearAll),
		fyne.NewMenuItem("開く...", a.loadDocument),
		a.recentItem,
		fyne.NewMenuItem("保存...", a.saveDocument),
		fyne.NewMenuItemSeparator(),
		importItem,
		exportItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("バックアップ...", a.showImportExportDialog),
	)

	editMenu := fyne.NewMenu("編集",
		fyne.NewMenuItem("回転 (R)", a.session.Rotate),
		fyne.NewMenuItem("削除 (Delete)", a.session.Delete),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("すべて削除...", a.confirmClearAll),
	)

	var toolItems []*fyne.MenuItem
	for _, t := range engine.Tools {
		tool := t
		toolItems = append(toolItems, fyne.NewMenuItem(tool.Label(), func() { a.selectTool(tool) }))
	}
	toolMenu := fyne.NewMenu("ツール", toolItems...)

	settingsMenu := fyne.NewMenu("設定",
		fyne.NewMenuItem("環境設定...", a.showSettingsDialog),
		fyne.NewMenuItem("部屋プリセット...", a.showPresetsDialog),
	)

	helpMenu := fyne.NewMenu("ヘルプ",
		fyne.NewMenuItem("このアプリについて", func() {
			dialog.ShowInformation("Madori",
				"間取りエディタ\n\n部屋・壁・ドア・窓・人型を配置して間取り図を作成します。\n"+
					"Delete: 選択要素を削除  R: 回転", a.window)
		}),
	)

	a.mainMenu = fyne.NewMainMenu(fileMenu, editMenu, toolMenu, settingsMenu, helpMenu)
	a.window.SetMainMenu(a.mainMenu)
}

func (a *App) buildRecentMenu() *fyne.Menu {
	if len(a.config.RecentProjects) == 0 {
		empty := fyne.NewMenuItem("(なし)", nil)
		empty.Disabled = true
		return fyne.NewMenu("", empty)
	}
	var items []*fyne.MenuItem
	for _, p := range a.config.RecentProjects {
		path := p
		items = append(items, fyne.NewMenuItem(filepath.Base(path), func() { a.openRecent(path) }))
	}
	return fyne.NewMenu("", items...)
}

// Build constructs the main window content.
func (a *App) Build() fyne.CanvasObject {
	a.canvas = widgets.NewPlanCanvas(a.session, float32(a.config.CanvasWidth), float32(a.config.CanvasHeight))
	a.inspector = container.NewVBox()
	a.statsLabel = widget.NewLabel("")

	top := container.NewVBox(a.buildToolbar(), a.buildSettingsBar(), widget.NewSeparator())

	side := container.NewBorder(
		nil,
		widget.NewCard("統計", "", a.statsLabel),
		nil, nil,
		container.NewVScroll(a.inspector),
	)
	split := container.NewHSplit(container.NewScroll(a.canvas), side)
	split.Offset = 0.78

	a.window.Canvas().SetOnTypedKey(a.typedKey)
	a.refresh()

	return fynetooltip.AddWindowToolTipLayer(container.NewBorder(top, nil, nil, nil, split), a.window.Canvas())
}

func (a *App) buildToolbar() fyne.CanvasObject {
	icons := map[engine.Tool]fyne.Resource{
		engine.ToolSelect:      theme.NavigateNextIcon(),
		engine.ToolRoom:        theme.ContentAddIcon(),
		engine.ToolWall:        theme.MenuIcon(),
		engine.ToolDoorSwing:   theme.LoginIcon(),
		engine.ToolDoorSliding: theme.ViewRefreshIcon(),
		engine.ToolWindow:      theme.GridIcon(),
		engine.ToolFigure:      theme.AccountIcon(),
	}
	tips := map[engine.Tool]string{
		engine.ToolSelect:      "要素を選択・移動・サイズ変更",
		engine.ToolRoom:        "クリックした位置に部屋を追加",
		engine.ToolWall:        "クリックした位置に壁を追加",
		engine.ToolDoorSwing:   "開きドアを追加",
		engine.ToolDoorSliding: "引き戸を追加",
		engine.ToolWindow:      "窓を追加",
		engine.ToolFigure:      "人型を追加",
	}

	row := container.NewHBox()
	for _, t := range engine.Tools {
		tool := t
		btn := newButtonWithTooltip(tool.Label(), icons[tool], tips[tool], func() { a.selectTool(tool) })
		a.toolButtons[tool] = btn
		row.Add(btn)
	}
	row.Add(widget.NewSeparator())
	row.Add(newButtonWithTooltip("回転", theme.MediaReplayIcon(), "選択要素を90°回転 (R)", a.session.Rotate))
	row.Add(newButtonWithTooltip("削除", theme.DeleteIcon(), "選択要素を削除 (Delete)", a.session.Delete))
	row.Add(newButtonWithTooltip("すべて削除", theme.ContentClearIcon(), "すべての要素を削除", a.confirmClearAll))
	return row
}

func (a *App) buildSettingsBar() fyne.CanvasObject {
	settings := a.session.Settings()

	a.wallEntry = widget.NewEntry()
	a.wallEntry.SetText(strconv.FormatFloat(settings.WallThickness, 'f', -1, 64))
	a.wallEntry.OnChanged = func(text string) {
		if v, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
			a.session.SetWallThickness(v)
		}
	}

	a.gridEntry = widget.NewEntry()
	a.gridEntry.SetText(strconv.FormatFloat(settings.GridSize, 'f', -1, 64))
	a.gridEntry.OnChanged = func(text string) {
		if v, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
			a.session.SetGridSize(v)
		}
	}

	a.gridCheck = widget.NewCheck("グリッド表示", func(on bool) {
		if on != a.session.Settings().ShowGrid {
			a.session.ToggleGrid()
		}
	})
	a.gridCheck.SetChecked(settings.ShowGrid)

	return container.NewHBox(
		widget.NewLabel("壁の厚さ (px):"),
		container.NewGridWrap(fyne.NewSize(70, a.wallEntry.MinSize().Height), a.wallEntry),
		widget.NewLabel("グリッド (px):"),
		container.NewGridWrap(fyne.NewSize(70, a.gridEntry.MinSize().Height), a.gridEntry),
		a.gridCheck,
	)
}

func (a *App) selectTool(t engine.Tool) {
	a.session.SetTool(t)
	a.refresh()
}

func (a *App) typedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyDelete:
		a.session.KeyPressed(engine.KeyDelete)
	case fyne.KeyR:
		a.session.KeyPressed(engine.KeyRotate)
	}
}

// refresh redraws everything that depends on the session.
func (a *App) refresh() {
	if a.canvas == nil {
		return
	}
	a.canvas.Refresh()
	for t, btn := range a.toolButtons {
		setActive(btn, t == a.session.Tool())
	}

	stats := a.session.Stats()
	a.statsLabel.SetText(fmt.Sprintf("合計: %s 畳\n部屋: %d  壁: %d\nドア: %d  窓: %d  人型: %d",
		stats.TotalTatami, stats.RoomCount, stats.WallCount,
		stats.DoorCount, stats.WindowCount, stats.FigureCount))

	a.refreshInspector()
}

// ─── Inspector ──────────────────────────────────────────

func (a *App) refreshInspector() {
	info, ok := a.session.Inspector()
	ref := a.session.Selection()
	if ok && a.shown && ref == a.shownRef {
		a.updateInspector(info)
		return
	}

	a.shownRef = ref
	a.shown = ok
	a.fields = nil
	a.tatamiLabel = nil
	a.swatch = nil
	a.inspector.RemoveAll()

	if !ok {
		a.inspector.Add(widget.NewLabel("要素を選択してください"))
		return
	}

	a.inspector.Add(widget.NewLabelWithStyle(info.Label, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	switch info.Kind {
	case model.KindRoom:
		a.inspector.Add(a.roomForm(info))
	case model.KindDoor, model.KindWindow:
		a.inspector.Add(a.itemForm(info))
	case model.KindWall:
		a.inspector.Add(widget.NewLabel(fmt.Sprintf("厚さ: %.0f px", info.WallThickness)))
	}

	a.inspector.Add(widget.NewSeparator())
	a.inspector.Add(container.NewGridWithColumns(2,
		widget.NewButtonWithIcon("回転", theme.MediaReplayIcon(), a.session.Rotate),
		widget.NewButtonWithIcon("削除", theme.DeleteIcon(), a.session.Delete),
	))
}

// updateInspector writes info into the existing fields. Entries with focus
// are left alone so typing is not interrupted.
func (a *App) updateInspector(info engine.Inspector) {
	focused := a.window.Canvas().Focused()
	a.updating = true
	for _, f := range a.fields {
		if fyne.Focusable(f.entry) == focused {
			continue
		}
		if v := f.value(info); f.entry.Text != v {
			f.entry.SetText(v)
		}
	}
	a.updating = false

	if a.tatamiLabel != nil {
		a.tatamiLabel.SetText(info.Tatami + " 畳")
	}
	if a.swatch != nil {
		a.swatch.FillColor = swatchColor(info.Color)
		a.swatch.Refresh()
	}
}

func (a *App) inspectorEntry(info engine.Inspector, value func(engine.Inspector) string, onChange func(string)) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(value(info))
	e.OnChanged = func(text string) {
		if a.updating {
			return
		}
		onChange(text)
	}
	a.fields = append(a.fields, inspectorField{entry: e, value: value})
	return e
}

func cmSetter(set func(float64)) func(string) {
	return func(text string) {
		text = strings.TrimSuffix(strings.TrimSpace(text), "cm")
		if v, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil && v > 0 && !math.IsInf(v, 0) {
			set(v)
		}
	}
}

func swatchColor(hex string) color.Color {
	if c, ok := model.ParseColor(hex); ok {
		return c
	}
	return color.White
}

func (a *App) roomForm(info engine.Inspector) fyne.CanvasObject {
	name := a.inspectorEntry(info, func(i engine.Inspector) string { return i.Name }, a.session.SetRoomName)
	purpose := a.inspectorEntry(info, func(i engine.Inspector) string { return i.Purpose }, a.session.SetRoomPurpose)
	width := a.inspectorEntry(info,
		func(i engine.Inspector) string { return strconv.Itoa(i.WidthCm) },
		cmSetter(a.session.SetRoomWidthCm))
	height := a.inspectorEntry(info,
		func(i engine.Inspector) string { return strconv.Itoa(i.HeightCm) },
		cmSetter(a.session.SetRoomHeightCm))
	hex := a.inspectorEntry(info, func(i engine.Inspector) string { return i.Color }, a.session.SetRoomColor)

	a.swatch = canvas.NewRectangle(swatchColor(info.Color))
	a.swatch.StrokeColor = color.Gray{Y: 0x99}
	a.swatch.StrokeWidth = 1
	a.swatch.SetMinSize(fyne.NewSize(24, 24))

	pick := widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), func() {
		current, _ := a.session.Inspector()
		picker := dialog.NewColorPicker("部屋の色", "", func(c color.Color) {
			a.session.SetRoomColor(model.ColorHex(c))
		}, a.window)
		picker.Advanced = true
		picker.SetColor(swatchColor(current.Color))
		picker.Show()
	})

	a.tatamiLabel = widget.NewLabel(info.Tatami + " 畳")

	presetSelect := widget.NewSelect(a.presets.Names(), func(selected string) {
		if p := a.presets.FindByName(selected); p != nil {
			a.session.ApplyPreset(*p)
		}
	})
	presetSelect.PlaceHolder = "プリセットを適用"

	return widget.NewForm(
		widget.NewFormItem("名前", name),
		widget.NewFormItem("用途", purpose),
		widget.NewFormItem("幅 (cm)", width),
		widget.NewFormItem("奥行 (cm)", height),
		widget.NewFormItem("色", container.NewBorder(nil, nil, a.swatch, pick, hex)),
		widget.NewFormItem("面積", a.tatamiLabel),
		widget.NewFormItem("プリセット", presetSelect),
	)
}

func (a *App) itemForm(info engine.Inspector) fyne.CanvasObject {
	width := a.inspectorEntry(info,
		func(i engine.Inspector) string { return strconv.Itoa(i.ItemWidthCm) },
		cmSetter(a.session.SetItemWidthCm))

	items := []*widget.FormItem{widget.NewFormItem("幅 (cm)", width)}
	if info.Kind == model.KindDoor {
		kind := "開きドア"
		if info.DoorType == model.DoorSliding {
			kind = "引き戸"
		}
		items = append(items, widget.NewFormItem("種類", widget.NewLabel(kind)))
	}
	items = append(items, widget.NewFormItem("回転", widget.NewLabel(fmt.Sprintf("%.0f°", info.Rotation))))
	return widget.NewForm(items...)
}

// ─── Actions ────────────────────────────────────────────

func (a *App) showError(msg string, err error) {
	a.log.WithError(err).Error(msg)
	dialog.ShowError(fmt.Errorf("%s: %w", msg, err), a.window)
}

func (a *App) confirmClearAll() {
	dialog.ShowConfirm("すべて削除", "すべての要素を削除しますか？", func(ok bool) {
		if ok {
			a.session.ClearAll()
		}
	}, a.window)
}

func (a *App) saveDocument() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			a.showError("保存に失敗しました", err)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := project.Encode(writer, a.session.Document()); err != nil {
			a.showError("保存に失敗しました", err)
			return
		}
		a.log.WithField("path", path).Info("plan saved")
		a.rememberRecent(path)
	}, a.window)
	d.SetFileName(project.DefaultFileName(time.Now(), project.DocumentExt))
	d.SetFilter(storage.NewExtensionFileFilter([]string{project.DocumentExt}))
	d.Show()
}

func (a *App) loadDocument() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.showError("ファイルの読み込みに失敗しました", err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()
		path := reader.URI().Path()
		doc, err := project.Decode(reader)
		if err != nil {
			a.showError("ファイルの読み込みに失敗しました", err)
			return
		}
		a.applyDocument(path, doc)
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{project.DocumentExt}))
	d.Show()
}

func (a *App) openRecent(path string) {
	doc, err := project.Load(path)
	if err != nil {
		a.showError("ファイルの読み込みに失敗しました", err)
		return
	}
	a.applyDocument(path, doc)
}

func (a *App) applyDocument(path string, doc model.Document) {
	a.session.Load(doc)
	a.syncSettingsBar()
	a.log.WithField("path", path).Info("plan loaded")
	a.rememberRecent(path)
	dialog.ShowInformation("読み込み", "読み込みが完了しました！", a.window)
}

// syncSettingsBar copies settings restored from a document into the
// toolbar entries.
func (a *App) syncSettingsBar() {
	s := a.session.Settings()
	a.wallEntry.SetText(strconv.FormatFloat(s.WallThickness, 'f', -1, 64))
	a.gridEntry.SetText(strconv.FormatFloat(s.GridSize, 'f', -1, 64))
	a.gridCheck.SetChecked(s.ShowGrid)
}

func (a *App) rememberRecent(path string) {
	a.config.AddRecent(path, recentLimit)
	if err := a.saveConfig(); err != nil {
		a.log.WithError(err).Warn("failed to save recent files")
	}
	if a.recentItem != nil {
		a.recentItem.ChildMenu = a.buildRecentMenu()
		a.mainMenu.Refresh()
	}
}

func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}

// ─── Import / export ────────────────────────────────────

func (a *App) importRooms(format string) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		opts := importer.DefaultOptions(a.session.Settings())
		var result importer.ImportResult
		switch format {
		case "csv":
			result = importer.ImportCSV(path, opts)
		case "xlsx":
			result = importer.ImportExcel(path, opts)
		case "dxf":
			result = importer.ImportDXF(path, opts)
		}
		a.handleImportResult(path, result)
	}, a.window)
	exts := map[string][]string{
		"csv":  {".csv", ".tsv", ".txt"},
		"xlsx": {".xlsx"},
		"dxf":  {".dxf"},
	}
	d.SetFilter(storage.NewExtensionFileFilter(exts[format]))
	d.Show()
}

func (a *App) handleImportResult(path string, result importer.ImportResult) {
	log := a.log.WithField("path", path)
	for _, w := range result.Warnings {
		log.Warn(w)
	}
	if len(result.Errors) > 0 {
		log.WithField("errors", len(result.Errors)).Error("import failed")
		dialog.ShowError(fmt.Errorf("インポートに失敗しました:\n%s", strings.Join(result.Errors, "\n")), a.window)
		if len(result.Rooms) == 0 && len(result.Walls) == 0 {
			return
		}
	}

	a.session.AddElements(result.Elements()...)
	log.WithFields(logrus.Fields{"rooms": len(result.Rooms), "walls": len(result.Walls)}).Info("import complete")

	msg := fmt.Sprintf("部屋 %d 件、壁 %d 件をインポートしました。", len(result.Rooms), len(result.Walls))
	if len(result.Warnings) > 0 {
		msg += "\n\n" + strings.Join(result.Warnings, "\n")
	}
	dialog.ShowInformation("インポート完了", msg, a.window)
}

// exportFile asks for a destination and runs write on it. The dialog's
// writer is closed first so write can create the file itself.
func (a *App) exportFile(ext string, write func(path string) error) {
	if a.session.Scene().Empty() {
		dialog.ShowInformation("エクスポート", "エクスポートする要素がありません。", a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := write(path); err != nil {
			a.showError("エクスポートに失敗しました", err)
			return
		}
		a.log.WithFields(logrus.Fields{"path": path, "format": ext}).Info("plan exported")
		dialog.ShowInformation("エクスポート完了", fmt.Sprintf("保存しました:\n%s", path), a.window)
	}, a.window)
	d.SetFileName(project.DefaultFileName(time.Now(), ext))
	d.SetFilter(storage.NewExtensionFileFilter([]string{ext}))
	d.Show()
}

func (a *App) exportPNG() {
	a.exportFile(".png", func(path string) error {
		return export.ExportPNG(path, a.session.Scene(), render.Options{
			Width:  a.config.CanvasWidth,
			Height: a.config.CanvasHeight,
		})
	})
}

func (a *App) exportPDF() {
	a.exportFile(".pdf", func(path string) error {
		opts := export.PDFOptions{
			Width:    a.config.CanvasWidth,
			Height:   a.config.CanvasHeight,
			FontPath: a.config.PDFFontPath,
		}
		if opts.FontPath != "" {
			opts.Title = "間取り図"
		}
		return export.ExportPDF(path, a.session.Scene(), opts)
	})
}

func (a *App) exportSchedule() {
	if a.session.Scene().Len(model.KindRoom) == 0 {
		dialog.ShowInformation("エクスポート", "部屋がありません。", a.window)
		return
	}
	a.exportFile(".xlsx", func(path string) error {
		return export.ExportSchedule(path, a.session.Scene())
	})
}

func (a *App) exportDXF() {
	a.exportFile(".dxf", func(path string) error {
		return export.ExportDXF(path, a.session.Scene())
	})
}
