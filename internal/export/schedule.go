package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/madori/internal/model"
)

// Sheet names of the room schedule workbook. The rooms sheet comes first
// so the workbook can be imported back as a room list.
const (
	ScheduleSheet = "部屋"
	TotalsSheet   = "集計"
)

var scheduleHeaders = []string{"No.", "名前", "用途", "幅 (cm)", "奥行 (cm)", "畳", "色"}

// ExportSchedule writes the room schedule of scene to an XLSX workbook.
func ExportSchedule(path string, scene *model.Scene) error {
	summary := BuildSummary(scene)
	if summary.RoomCount == 0 {
		return fmt.Errorf("no rooms to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ScheduleSheet); err != nil {
		return fmt.Errorf("failed to create schedule sheet: %w", err)
	}
	if _, err := f.NewSheet(TotalsSheet); err != nil {
		return fmt.Errorf("failed to create totals sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, h := range scheduleHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(ScheduleSheet, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(scheduleHeaders), 1)
	f.SetCellStyle(ScheduleSheet, "A1", last, headerStyle)

	for i, room := range summary.Rooms {
		row := i + 2
		values := []interface{}{i + 1, room.Name, room.Purpose, room.WidthCm, room.HeightCm, room.Tatami, room.Color}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(ScheduleSheet, cell, v)
		}
	}
	f.SetColWidth(ScheduleSheet, "B", "C", 20)
	f.SetColWidth(ScheduleSheet, "D", "G", 12)

	totals := [][2]interface{}{
		{"部屋数", summary.RoomCount},
		{"合計 (畳)", summary.TotalTatami},
		{"壁", summary.WallCount},
		{"ドア", summary.DoorCount},
		{"窓", summary.WindowCount},
		{"人型", summary.FigureCount},
	}
	for i, t := range totals {
		f.SetCellValue(TotalsSheet, fmt.Sprintf("A%d", i+1), t[0])
		f.SetCellValue(TotalsSheet, fmt.Sprintf("B%d", i+1), t[1])
	}
	f.SetCellStyle(TotalsSheet, "A1", fmt.Sprintf("A%d", len(totals)), headerStyle)
	f.SetColWidth(TotalsSheet, "A", "A", 16)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write schedule: %w", err)
	}
	return nil
}
