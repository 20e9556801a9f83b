// Package importer provides CSV and Excel import of room schedules and DXF
// import of walls and rooms. Schedules are mapped by flexible,
// case-insensitive headers in English or Japanese; imported rooms are laid
// out left to right on the grid.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/madori/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Rooms    []model.Room
	Walls    []model.Wall
	Errors   []string
	Warnings []string
}

// Elements returns the imported rooms followed by the walls.
func (r ImportResult) Elements() []model.Element {
	els := make([]model.Element, 0, len(r.Rooms)+len(r.Walls))
	for _, room := range r.Rooms {
		els = append(els, room)
	}
	for _, w := range r.Walls {
		els = append(els, w)
	}
	return els
}

// Options controls unit conversion and placement of imported elements.
type Options struct {
	Scale         float64     // px per meter
	GridSize      float64     // rooms are placed on grid multiples; 0 disables
	WallThickness float64     // px, for DXF walls
	Origin        model.Point // top-left of the first imported room
	MaxWidth      float64     // rows wrap past this width in px; 0 never wraps
}

// DefaultOptions derives import options from the editor settings.
func DefaultOptions(s model.Settings) Options {
	return Options{
		Scale:         s.Scale,
		GridSize:      s.GridSize,
		WallThickness: s.WallThickness,
		Origin:        model.Point{X: s.GridSize, Y: s.GridSize},
		MaxWidth:      1000,
	}
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return model.DefaultScale
	}
	return o.Scale
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name     int
	Purpose  int
	Width    int
	Height   int
	Color    int
	Quantity int
}

// headerAliases maps canonical column names to their accepted aliases.
// Aliases are compared after normalizeHeader.
var headerAliases = map[string][]string{
	"name":     {"name", "room", "roomname", "label", "名前", "部屋", "部屋名", "名称"},
	"purpose":  {"purpose", "use", "usage", "description", "用途", "目的"},
	"width":    {"width", "w", "widthcm", "幅", "幅cm", "横", "横cm", "間口"},
	"height":   {"height", "h", "depth", "heightcm", "depthcm", "奥行", "奥行cm", "奥行き", "縦", "縦cm"},
	"color":    {"color", "colour", "色", "カラー"},
	"quantity": {"quantity", "qty", "count", "数", "数量", "室数"},
}

// normalizeHeader lower-cases s and drops spaces, underscores and
// parentheses, so "Width (cm)" and "width_cm" both become "widthcm".
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '(', ')', '（', '）', '　', '.':
			return -1
		}
		return r
	}, s)
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or a default positional
// mapping (name, width, height, purpose, color) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Name: -1, Purpose: -1, Width: -1, Height: -1, Color: -1, Quantity: -1}
	roles := map[string]*int{
		"name":     &mapping.Name,
		"purpose":  &mapping.Purpose,
		"width":    &mapping.Width,
		"height":   &mapping.Height,
		"color":    &mapping.Color,
		"quantity": &mapping.Quantity,
	}

	isHeader := false
	for i, cell := range row {
		normalized := normalizeHeader(cell)
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if idx := roles[role]; *idx == -1 {
						*idx = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Name: 0, Width: 1, Height: 2, Purpose: 3, Color: 4, Quantity: -1}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseCm(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "cm")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite size: %q", s)
	}
	return v, nil
}

// parseRow extracts rooms from a row using the given column mapping.
// Rooms come back unpositioned. Returns the rooms, any error message, and
// any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, roomCount int, scale float64) ([]model.Room, string, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("部屋%d", roomCount+1)
	}

	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return nil, fmt.Sprintf("%s: Missing width value", rowLabel), ""
	}
	width, err := parseCm(widthStr)
	if err != nil {
		return nil, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr), ""
	}

	heightStr := getCell(row, mapping.Height)
	if heightStr == "" {
		return nil, fmt.Sprintf("%s: Missing height value", rowLabel), ""
	}
	height, err := parseCm(heightStr)
	if err != nil {
		return nil, fmt.Sprintf("%s: Invalid height '%s'", rowLabel, heightStr), ""
	}

	if width <= 0 || height <= 0 {
		return nil, fmt.Sprintf("%s: Width and height must be positive", rowLabel), ""
	}

	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		qty, err = strconv.Atoi(qtyStr)
		if err != nil || qty <= 0 {
			return nil, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
		}
	}

	var warning string
	preset := model.RoomPreset{Name: name, Purpose: getCell(row, mapping.Purpose), WidthCm: width, HeightCm: height}
	if colorStr := getCell(row, mapping.Color); colorStr != "" {
		if hex, ok := model.NormalizeColor(colorStr); ok {
			preset.Color = hex
		} else {
			warning = fmt.Sprintf("%s: Unknown color '%s', using default", rowLabel, colorStr)
		}
	}
	if warning == "" && (model.CmToPx(width, scale) < model.MinRoomSize || model.CmToPx(height, scale) < model.MinRoomSize) {
		warning = fmt.Sprintf("%s: Room smaller than the minimum size, enlarged", rowLabel)
	}

	rooms := make([]model.Room, 0, qty)
	for i := 0; i < qty; i++ {
		r := model.NewRoom(model.Point{}, name)
		preset.ApplyTo(&r, scale)
		rooms = append(rooms, r)
	}
	return rooms, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports a room schedule from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string, opts Options) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	return importCSV(bytes.NewReader(data), delimiter, opts, result.Warnings)
}

// ImportCSVFromReader imports a room schedule from a CSV reader with a
// specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, opts Options) ImportResult {
	return importCSV(reader, delimiter, opts, nil)
}

func importCSV(reader io.Reader, delimiter rune, opts Options, warnings []string) ImportResult {
	result := ImportResult{Warnings: warnings}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", opts, result.Warnings)
}

// ImportExcel imports a room schedule from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string, opts Options) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", opts, nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, parses each row into rooms and lays
// the rooms out.
func importFromRows(rows [][]string, rowPrefix string, opts Options, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		if _, err := parseCm(rows[0][1]); err != nil {
			// Unrecognized header; skip it but keep positional mapping
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	scale := opts.scale()
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		rooms, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Rooms), scale)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Rooms = append(result.Rooms, rooms...)
	}

	LayoutRooms(result.Rooms, opts)
	return result
}

// LayoutRooms positions rooms left to right starting at opts.Origin,
// leaving one grid cell between neighbours and wrapping to a new row past
// opts.MaxWidth. Positions are multiples of the grid size.
func LayoutRooms(rooms []model.Room, opts Options) {
	gap := opts.GridSize
	if gap <= 0 {
		gap = 20
	}
	x, y := opts.Origin.X, opts.Origin.Y
	rowHeight := 0.0
	for i := range rooms {
		r := &rooms[i]
		if opts.MaxWidth > 0 && x > opts.Origin.X && x+r.Width > opts.Origin.X+opts.MaxWidth {
			x = opts.Origin.X
			y = ceilToGrid(y+rowHeight+gap, opts.GridSize)
			rowHeight = 0
		}
		r.X, r.Y = x, y
		rowHeight = math.Max(rowHeight, r.Height)
		x = ceilToGrid(x+r.Width+gap, opts.GridSize)
	}
}

func ceilToGrid(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	return math.Ceil(v/grid) * grid
}
