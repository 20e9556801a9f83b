package export

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/madori/internal/model"
	"github.com/piwi3910/madori/internal/render"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 8.0
	sideColumn   = 60.0 // right column holding the QR code
	qrSize       = 50.0
	rowHeight    = 6.0
)

// Default raster size of the plan image.
const (
	DefaultImageWidth  = 1200
	DefaultImageHeight = 800
)

// PDFOptions controls the plan sheet.
type PDFOptions struct {
	Width, Height int // plan raster size in px; zero uses the defaults
	Title         string
	Date          time.Time
	// FontPath is a UTF-8 TrueType font used for all text. Without one the
	// sheet uses Helvetica, which cannot show Japanese room names.
	FontPath string
}

// pdfText writes text through the active font, translating to the core
// font code page when no UTF-8 font is loaded.
type pdfText struct {
	pdf    *fpdf.Fpdf
	family string
	tr     func(string) string
}

func newPDFText(pdf *fpdf.Fpdf, fontPath string) pdfText {
	if fontPath != "" {
		pdf.AddUTF8Font("plan", "", fontPath)
		pdf.AddUTF8Font("plan", "B", fontPath)
		return pdfText{pdf: pdf, family: "plan", tr: func(s string) string { return s }}
	}
	return pdfText{pdf: pdf, family: "Helvetica", tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (t pdfText) font(style string, size float64) {
	t.pdf.SetFont(t.family, style, size)
}

func (t pdfText) cell(w, h float64, s, border string, ln int, align string, fill bool) {
	t.pdf.CellFormat(w, h, t.tr(s), border, ln, align, fill, 0, "")
}

// ExportPDF writes a plan sheet: the first page shows the rendered plan
// with totals and a QR code of the plan summary, followed by the room
// schedule.
func ExportPDF(path string, scene *model.Scene, opts PDFOptions) error {
	if scene.Empty() {
		return fmt.Errorf("no elements to export")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = DefaultImageWidth, DefaultImageHeight
	}
	if opts.Title == "" {
		opts.Title = "Floor plan"
	}
	if opts.Date.IsZero() {
		opts.Date = time.Now()
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	text := newPDFText(pdf, opts.FontPath)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}

	summary := BuildSummary(scene)

	pdf.AddPage()
	if err := renderPlanPage(pdf, text, scene, summary, opts); err != nil {
		return err
	}

	pdf.AddPage()
	renderSchedulePage(pdf, text, summary)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func renderPlanPage(pdf *fpdf.Fpdf, text pdfText, scene *model.Scene, summary PlanSummary, opts PDFOptions) error {
	// Title
	text.font("B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s  %s", opts.Title, opts.Date.Format("2006-01-02"))
	text.cell(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false)

	// Stats line
	text.font("", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Rooms: %d | Total: %s tatami | Walls: %d | Doors: %d | Windows: %d",
		summary.RoomCount, model.FormatTatami(summary.TotalTatami),
		summary.WallCount, summary.DoorCount, summary.WindowCount)
	text.cell(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false)

	// Plan image scaled to fit the drawing area
	var buf bytes.Buffer
	if err := EncodePNG(&buf, scene, render.Options{Width: opts.Width, Height: opts.Height}); err != nil {
		return err
	}
	imgOpts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("plan", imgOpts, &buf)

	drawWidth := pageWidth - marginLeft - marginRight - sideColumn
	drawHeight := pageHeight - drawAreaTop - marginBottom
	scale := math.Min(drawWidth/float64(opts.Width), drawHeight/float64(opts.Height))
	imgW := float64(opts.Width) * scale
	imgH := float64(opts.Height) * scale

	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.3)
	pdf.Rect(marginLeft, drawAreaTop, imgW, imgH, "D")
	pdf.ImageOptions("plan", marginLeft, drawAreaTop, imgW, imgH, false, imgOpts, 0, "")

	// QR summary in the side column
	qrPNG, err := SummaryQR(summary, 256)
	if err != nil {
		return err
	}
	pdf.RegisterImageOptionsReader("summary_qr", imgOpts, bytes.NewReader(qrPNG))
	qrX := pageWidth - marginRight - qrSize
	pdf.ImageOptions("summary_qr", qrX, drawAreaTop, qrSize, qrSize, false, imgOpts, 0, "")

	text.font("", 8)
	pdf.SetXY(qrX, drawAreaTop+qrSize+2)
	text.cell(qrSize, 4, "Plan summary (JSON)", "", 0, "C", false)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render plan page: %w", err)
	}
	return nil
}

var scheduleColumns = []struct {
	header string
	width  float64
	align  string
}{
	{"No.", 12, "C"},
	{"Name", 60, "L"},
	{"Purpose", 60, "L"},
	{"Width (cm)", 28, "R"},
	{"Depth (cm)", 28, "R"},
	{"Tatami", 24, "R"},
	{"Color", 30, "C"},
}

func renderSchedulePage(pdf *fpdf.Fpdf, text pdfText, summary PlanSummary) {
	text.font("B", 16)
	pdf.SetXY(marginLeft, marginTop)
	text.cell(pageWidth-marginLeft-marginRight, 10, "Room schedule", "", 0, "L", false)

	y := marginTop + 14
	renderScheduleHeader(pdf, text, y)
	y += rowHeight

	text.font("", 9)
	for i, room := range summary.Rooms {
		if y+rowHeight > pageHeight-marginBottom {
			pdf.AddPage()
			y = marginTop
			renderScheduleHeader(pdf, text, y)
			y += rowHeight
			text.font("", 9)
		}
		renderScheduleRow(pdf, text, y, i+1, room)
		y += rowHeight
	}

	// Totals
	text.font("B", 10)
	pdf.SetXY(marginLeft, y+4)
	total := fmt.Sprintf("Total: %d rooms, %s tatami", summary.RoomCount, model.FormatTatami(summary.TotalTatami))
	text.cell(150, 6, total, "", 0, "L", false)
}

func renderScheduleHeader(pdf *fpdf.Fpdf, text pdfText, y float64) {
	text.font("B", 9)
	pdf.SetFillColor(220, 220, 220)
	pdf.SetXY(marginLeft, y)
	for _, col := range scheduleColumns {
		text.cell(col.width, rowHeight, col.header, "1", 0, "C", true)
	}
}

func renderScheduleRow(pdf *fpdf.Fpdf, text pdfText, y float64, num int, room RoomSummary) {
	pdf.SetFillColor(255, 255, 255)
	pdf.SetXY(marginLeft, y)
	cells := []string{
		fmt.Sprintf("%d", num),
		room.Name,
		room.Purpose,
		fmt.Sprintf("%d", room.WidthCm),
		fmt.Sprintf("%d", room.HeightCm),
		model.FormatTatami(room.Tatami),
		room.Color,
	}
	x := marginLeft
	for i, col := range scheduleColumns {
		text.cell(col.width, rowHeight, cells[i], "1", 0, col.align, false)
		x += col.width
	}

	// Color swatch at the start of the last cell
	swatch, _ := model.ParseColor(room.Color)
	last := scheduleColumns[len(scheduleColumns)-1]
	pdf.SetFillColor(int(swatch.R), int(swatch.G), int(swatch.B))
	pdf.Rect(x-last.width+1.5, y+1.5, 3, rowHeight-3, "F")
}
