// Package export writes floor plans to image, document and CAD formats:
// PNG, a PDF plan sheet with a QR-coded summary, an XLSX room schedule and
// DXF.
package export

import (
	"encoding/json"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/madori/internal/model"
)

// RoomSummary is one line of the room schedule.
type RoomSummary struct {
	Name     string  `json:"name"`
	Purpose  string  `json:"purpose,omitempty"`
	WidthCm  int     `json:"width_cm"`
	HeightCm int     `json:"height_cm"`
	Tatami   float64 `json:"tatami"`
	Color    string  `json:"color,omitempty"`
}

// PlanSummary holds the data shown in the schedule and encoded into the
// QR code of the PDF sheet.
type PlanSummary struct {
	Rooms       []RoomSummary `json:"rooms,omitempty"`
	TotalTatami float64       `json:"total_tatami"`
	RoomCount   int           `json:"room_count"`
	WallCount   int           `json:"walls"`
	DoorCount   int           `json:"doors"`
	WindowCount int           `json:"windows"`
	FigureCount int           `json:"manikins"`
}

// BuildSummary collects the schedule of scene in room insertion order.
func BuildSummary(scene *model.Scene) PlanSummary {
	scale := scene.Settings.Scale
	rooms := scene.Rooms()
	s := PlanSummary{
		TotalTatami: model.TotalArea(rooms, scale),
		RoomCount:   len(rooms),
		WallCount:   scene.Len(model.KindWall),
		DoorCount:   scene.Len(model.KindDoor),
		WindowCount: scene.Len(model.KindWindow),
		FigureCount: scene.Len(model.KindFigure),
	}
	for _, r := range rooms {
		s.Rooms = append(s.Rooms, RoomSummary{
			Name:     r.Name,
			Purpose:  r.Purpose,
			WidthCm:  model.PxToCm(r.Width, scale),
			HeightCm: model.PxToCm(r.Height, scale),
			Tatami:   r.Tatami(scale),
			Color:    r.Color,
		})
	}
	return s
}

// SummaryQR encodes the summary as JSON into a PNG QR code of the given
// pixel size. Plans too large for one code drop the per-room lines and
// keep only the totals.
func SummaryQR(s PlanSummary, size int) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan summary: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, size)
	if err == nil {
		return png, nil
	}

	s.Rooms = nil
	data, err = json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan summary: %w", err)
	}
	png, err = qrcode.Encode(string(data), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}
