package export

import "github.com/guttosm/findim/internal/domain/models"

// calendarRow is the columnar shape of a CalendarDay for JSON and Parquet.
type calendarRow struct {
	ID              int32  `json:"id_data" parquet:"id_data"`
	Date            string `json:"data" parquet:"data"`
	Day             int32  `json:"dia" parquet:"dia"`
	Month           int32  `json:"mes" parquet:"mes"`
	Year            int32  `json:"ano" parquet:"ano"`
	Quarter         int32  `json:"trimestre" parquet:"trimestre"`
	Bimester        int32  `json:"bimestre" parquet:"bimestre"`
	Weekday         int32  `json:"dia_semana_num" parquet:"dia_semana_num"`
	WeekdayName     string `json:"nome_dia" parquet:"nome_dia"`
	MonthName       string `json:"nome_mes" parquet:"nome_mes"`
	Weekend         bool   `json:"final_semana" parquet:"final_semana"`
	MonthStart      bool   `json:"inicio_mes" parquet:"inicio_mes"`
	MonthEnd        bool   `json:"fim_mes" parquet:"fim_mes"`
	QuarterStart    bool   `json:"inicio_trimestre" parquet:"inicio_trimestre"`
	QuarterEnd      bool   `json:"fim_trimestre" parquet:"fim_trimestre"`
	YearStart       bool   `json:"inicio_ano" parquet:"inicio_ano"`
	YearEnd         bool   `json:"fim_ano" parquet:"fim_ano"`
	DaysInMonth     int32  `json:"dias_no_mes" parquet:"dias_no_mes"`
	ISOWeek         int32  `json:"semana_do_ano" parquet:"semana_do_ano"`
	NationalHoliday bool   `json:"feriado_nacional" parquet:"feriado_nacional"`
}

// seriesRow is the columnar shape of a SeriesRecord; Value is nil when missing.
type seriesRow struct {
	Date    string   `json:"data" parquet:"data"`
	Value   *float64 `json:"valor" parquet:"valor,optional"`
	Changed int32    `json:"mudou" parquet:"mudou"`
}

func calendarRows(days []models.CalendarDay) []calendarRow {
	out := make([]calendarRow, 0, len(days))
	for _, d := range days {
		out = append(out, calendarRow{
			ID:              int32(d.ID),
			Date:            d.Date.Format(dateLayout),
			Day:             int32(d.Day),
			Month:           int32(d.Month),
			Year:            int32(d.Year),
			Quarter:         int32(d.Quarter),
			Bimester:        int32(d.Bimester),
			Weekday:         int32(d.Weekday),
			WeekdayName:     d.WeekdayName,
			MonthName:       d.MonthName,
			Weekend:         d.Weekend,
			MonthStart:      d.MonthStart,
			MonthEnd:        d.MonthEnd,
			QuarterStart:    d.QuarterStart,
			QuarterEnd:      d.QuarterEnd,
			YearStart:       d.YearStart,
			YearEnd:         d.YearEnd,
			DaysInMonth:     int32(d.DaysInMonth),
			ISOWeek:         int32(d.ISOWeek),
			NationalHoliday: d.NationalHoliday,
		})
	}
	return out
}

func seriesRows(records []models.SeriesRecord) []seriesRow {
	out := make([]seriesRow, 0, len(records))
	for _, r := range records {
		row := seriesRow{Date: r.Date.Format(dateLayout), Changed: int32(changedFlag(r.Changed))}
		if r.Valid {
			v := r.Value
			row.Value = &v
		}
		out = append(out, row)
	}
	return out
}
