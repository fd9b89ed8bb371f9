package dto

import (
	"time"

	"github.com/guttosm/findim/internal/domain/models"
)

// CalendarResponse is returned by GET /api/v1/calendar.
type CalendarResponse struct {
	Start string               `json:"start" example:"2023-01-01"`
	End   string               `json:"end" example:"2025-12-31"`
	Count int                  `json:"count" example:"1096"`
	Days  []models.CalendarDay `json:"days"`
}

// HolidayResponse is one entry of GET /api/v1/holidays/{year}.
type HolidayResponse struct {
	Date    string `json:"date" example:"2024-02-13"`
	Name    string `json:"name" example:"Carnaval"`
	Movable bool   `json:"movable" example:"true"`
}

// HolidaysResponse lists the national holidays of one year.
type HolidaysResponse struct {
	Year     int               `json:"year" example:"2024"`
	Holidays []HolidayResponse `json:"holidays"`
}

// BusinessDaysResponse is returned by GET /api/v1/business-days.
type BusinessDaysResponse struct {
	From  string   `json:"from" example:"2024-01-02"`
	Count int      `json:"count" example:"2"`
	Days  []string `json:"days" example:"2024-01-02,2023-12-29"`
}

// NewHolidaysResponse maps domain holidays to their API shape.
func NewHolidaysResponse(year int, hs []models.Holiday, layout string) HolidaysResponse {
	out := HolidaysResponse{Year: year, Holidays: make([]HolidayResponse, 0, len(hs))}
	for _, h := range hs {
		out.Holidays = append(out.Holidays, HolidayResponse{
			Date:    h.Date.Format(layout),
			Name:    h.Name,
			Movable: h.Movable,
		})
	}
	return out
}

// NewBusinessDaysResponse formats business days, most recent first.
func NewBusinessDaysResponse(from time.Time, days []time.Time, layout string) BusinessDaysResponse {
	out := BusinessDaysResponse{From: from.Format(layout), Count: len(days), Days: make([]string, 0, len(days))}
	for _, d := range days {
		out.Days = append(out.Days, d.Format(layout))
	}
	return out
}
