package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/madori/internal/model"
)

func testOptions() Options {
	return DefaultOptions(model.DefaultEditorSettings())
}

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Name,Width,Height\nLiving,546,455\nBedroom,364,273\n")
	if got := DetectCSVDelimiter(data); got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Name;Width;Height\nLiving;546;455\nBedroom;364;273\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Name\tWidth\tHeight\nLiving\t546\t455\nBedroom\t364\t273\n")
	if got := DetectCSVDelimiter(data); got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Name|Width|Height\nLiving|546|455\nBedroom|364|273\n")
	if got := DetectCSVDelimiter(data); got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_EnglishHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Name", "Purpose", "Width (cm)", "Depth (cm)", "Color", "Qty"})
	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Name: 0, Purpose: 1, Width: 2, Height: 3, Color: 4, Quantity: 5}
	if mapping != want {
		t.Errorf("mapping = %+v, want %+v", mapping, want)
	}
}

func TestDetectColumns_JapaneseHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"No.", "名前", "用途", "幅 (cm)", "奥行 (cm)", "畳", "色"})
	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Name: 1, Purpose: 2, Width: 3, Height: 4, Color: 6, Quantity: -1}
	if mapping != want {
		t.Errorf("mapping = %+v, want %+v", mapping, want)
	}
}

func TestDetectColumns_CaseAndSeparators(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"ROOM_NAME", "WIDTH_CM", "height_cm"})
	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Name != 0 || mapping.Width != 1 || mapping.Height != 2 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Living", "546", "455"})
	if isHeader {
		t.Error("expected no header for a data row")
	}
	if mapping.Name != 0 || mapping.Width != 1 || mapping.Height != 2 || mapping.Purpose != 3 || mapping.Color != 4 {
		t.Errorf("unexpected positional mapping %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_JapaneseHeaders(t *testing.T) {
	csv := "名前,幅(cm),奥行(cm),用途,色\nリビング,546,455,居間,#fff3e0\n洋室,364,273,,\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',', testOptions())

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(result.Rooms))
	}

	living := result.Rooms[0]
	if living.Name != "リビング" || living.Purpose != "居間" || living.Color != "#fff3e0" {
		t.Errorf("living = %+v", living)
	}
	if !near(living.Width, 109.2) || !near(living.Height, 91) {
		t.Errorf("living size = %vx%v, want 109.2x91", living.Width, living.Height)
	}
	if living.ID == "" {
		t.Error("imported rooms need an id")
	}

	bedroom := result.Rooms[1]
	if bedroom.Color != model.DefaultRoomColor {
		t.Errorf("bedroom color = %s, want default", bedroom.Color)
	}
	if got := model.FormatTatami(bedroom.Tatami(model.DefaultScale)); got != "6.1" {
		t.Errorf("bedroom tatami = %s, want 6.1", got)
	}
}

func TestImportCSVFromReader_Layout(t *testing.T) {
	csv := "Name,Width,Height\nLiving,546,455\nBedroom,364,273\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',', testOptions())

	if len(result.Rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(result.Rooms))
	}
	// Origin is one grid cell in; the next room starts on the grid past a gap
	if r := result.Rooms[0]; r.X != 50 || r.Y != 50 {
		t.Errorf("first room at (%v,%v), want (50,50)", r.X, r.Y)
	}
	if r := result.Rooms[1]; r.X != 250 || r.Y != 50 {
		t.Errorf("second room at (%v,%v), want (250,50)", r.X, r.Y)
	}
}

func TestImportCSVFromReader_Quantity(t *testing.T) {
	csv := "Name,Width,Height,Qty\nBedroom,300,300,3\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',', testOptions())

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Rooms) != 3 {
		t.Fatalf("expected 3 rooms, got %d", len(result.Rooms))
	}
	ids := map[model.ID]bool{}
	for _, r := range result.Rooms {
		ids[r.ID] = true
	}
	if len(ids) != 3 {
		t.Error("each copy needs its own id")
	}
	if result.Rooms[1].X != 200 || result.Rooms[2].X != 350 {
		t.Errorf("copies at x=%v,%v, want 200,350", result.Rooms[1].X, result.Rooms[2].X)
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Bath,200,200\n"), ',', testOptions())

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Rooms) != 1 {
		t.Fatalf("expected 1 room, got %d", len(result.Rooms))
	}
	// 200 cm is 40 px, below the minimum room size
	if r := result.Rooms[0]; r.Width != model.MinRoomSize || r.Height != model.MinRoomSize {
		t.Errorf("room size = %vx%v, want the minimum", r.Width, r.Height)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning for an enlarged room")
	}
}

func TestImportCSVFromReader_EmptyName(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name,Width,Height\n,300,300\n,300,300\n"), ',', testOptions())
	if len(result.Rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(result.Rooms))
	}
	if result.Rooms[0].Name != "部屋1" || result.Rooms[1].Name != "部屋2" {
		t.Errorf("names = %q, %q", result.Rooms[0].Name, result.Rooms[1].Name)
	}
}

func TestImportCSVFromReader_UnknownColor(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name,Width,Height,Color\nA,300,300,notacolor\n"), ',', testOptions())
	if len(result.Rooms) != 1 {
		t.Fatalf("expected 1 room, got %d", len(result.Rooms))
	}
	if result.Rooms[0].Color != model.DefaultRoomColor {
		t.Errorf("color = %s, want default", result.Rooms[0].Color)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "notacolor") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an unknown color warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_UpperCaseColor(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name,Width,Height,Color\nA,300,300,#FF0000\n"), ',', testOptions())
	if len(result.Rooms) != 1 {
		t.Fatalf("expected 1 room, got %d", len(result.Rooms))
	}
	if result.Rooms[0].Color != "#ff0000" {
		t.Errorf("color = %s, want #ff0000", result.Rooms[0].Color)
	}
}

func TestImportCSVFromReader_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string
	}{
		{"width", "A,abc,300", "Invalid width"},
		{"height", "A,300,", "Missing height"},
		{"negative", "A,-300,300", "must be positive"},
		{"quantity", "A,300,300,0", "Invalid quantity"},
		{"nan width", "A,NaN,300", "Invalid width"},
		{"infinite height", "A,300,inf", "Invalid height"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csv := "Name,Width,Height,Qty\n" + tt.row + "\n"
			result := ImportCSVFromReader(strings.NewReader(csv), ',', testOptions())
			if len(result.Rooms) != 0 {
				t.Errorf("expected no rooms, got %d", len(result.Rooms))
			}
			if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], tt.want) {
				t.Errorf("errors = %v, want one containing %q", result.Errors, tt.want)
			}
			if len(result.Errors) == 1 && !strings.HasPrefix(result.Errors[0], "Line 2") {
				t.Errorf("error should name the line: %s", result.Errors[0])
			}
		})
	}
}

func TestImportCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	csv := "Name,Width,Height\nA,300,300\nB,bad,300\nC,300,300\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',', testOptions())
	if len(result.Rooms) != 2 {
		t.Errorf("expected 2 rooms, got %d", len(result.Rooms))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_MissingRequiredColumn(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name,Purpose,Width\nA,B,300\n"), ',', testOptions())
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Height") {
		t.Errorf("errors = %v, want a missing Height column error", result.Errors)
	}
}

func TestImportCSVFromReader_EmptyInput(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',', testOptions())
	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

func TestImportCSVFromReader_CmSuffixAndDecimals(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name,Width,Height\nA, 300cm , 272.5\n"), ',', testOptions())
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if r := result.Rooms[0]; r.Width != 60 || !near(r.Height, 54.5) {
		t.Errorf("size = %vx%v, want 60x54.5", r.Width, r.Height)
	}
}

func TestImportCSV_FileWithBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.csv")
	data := "\xef\xbb\xbfName;Width;Height\nLiving;546;455\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path, testOptions())
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Rooms) != 1 || result.Rooms[0].Name != "Living" {
		t.Fatalf("unexpected rooms %+v", result.Rooms)
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "semicolon") {
		t.Errorf("expected a delimiter warning, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "missing.csv"), testOptions())
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	result := ImportCSV(path, testOptions())
	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Layout Tests ──────────────────────────────────────────

func TestLayoutRooms_Wraps(t *testing.T) {
	rooms := []model.Room{
		{Width: 100, Height: 100},
		{Width: 100, Height: 80},
		{Width: 50, Height: 50},
	}
	LayoutRooms(rooms, Options{GridSize: 10, MaxWidth: 200})

	if rooms[0].X != 0 || rooms[0].Y != 0 {
		t.Errorf("room 0 at (%v,%v)", rooms[0].X, rooms[0].Y)
	}
	if rooms[1].X != 0 || rooms[1].Y != 110 {
		t.Errorf("room 1 at (%v,%v), want (0,110)", rooms[1].X, rooms[1].Y)
	}
	if rooms[2].X != 110 || rooms[2].Y != 110 {
		t.Errorf("room 2 at (%v,%v), want (110,110)", rooms[2].X, rooms[2].Y)
	}
}

func TestElements_RoomsThenWalls(t *testing.T) {
	r := ImportResult{
		Rooms: []model.Room{{ID: "r1"}},
		Walls: []model.Wall{{ID: "w1"}, {ID: "w2"}},
	}
	els := r.Elements()
	if len(els) != 3 || els[0].ElementKind() != model.KindRoom || els[2].ElementID() != "w2" {
		t.Errorf("unexpected elements %v", els)
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rooms.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"名前", "用途", "幅 (cm)", "奥行 (cm)"},
		{"和室", "客間", 364, 364},
		{"書斎", "", 273, 182},
	})

	result := ImportExcel(path, testOptions())
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(result.Rooms))
	}
	if r := result.Rooms[0]; r.Name != "和室" || r.Purpose != "客間" || !near(r.Width, 72.8) {
		t.Errorf("first room = %+v", r)
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Toilet", 300, 300},
	})
	result := ImportExcel(path, testOptions())
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Rooms) != 1 || result.Rooms[0].Name != "Toilet" {
		t.Errorf("unexpected rooms %+v", result.Rooms)
	}
}

func TestImportExcel_InvalidData(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Name", "Width", "Height"},
		{"A", "wide", 300},
	})
	result := ImportExcel(path, testOptions())
	if len(result.Errors) != 1 || !strings.HasPrefix(result.Errors[0], "Row 2") {
		t.Errorf("errors = %v, want one on Row 2", result.Errors)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "missing.xlsx"), testOptions())
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}
