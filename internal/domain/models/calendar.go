package models

import "time"

// CalendarDay represents one row of the date dimension.
//
// Column order (export header → field):
//
//	 0 id_data           → ID
//	 1 data              → Date
//	 2 dia               → Day
//	 3 mes               → Month
//	 4 ano               → Year
//	 5 trimestre         → Quarter
//	 6 bimestre          → Bimester
//	 7 dia_semana_num    → Weekday (0=Monday .. 6=Sunday)
//	 8 nome_dia          → WeekdayName
//	 9 nome_mes          → MonthName
//	10 final_semana      → Weekend
//	11 inicio_mes        → MonthStart
//	12 fim_mes           → MonthEnd
//	13 inicio_trimestre  → QuarterStart
//	14 fim_trimestre     → QuarterEnd
//	15 inicio_ano        → YearStart
//	16 fim_ano           → YearEnd
//	17 dias_no_mes       → DaysInMonth
//	18 semana_do_ano     → ISOWeek
//	19 feriado_nacional  → NationalHoliday
type CalendarDay struct {
	ID              int       `json:"id_data" example:"1"`
	Date            time.Time `json:"data" example:"2024-01-01T00:00:00Z"`
	Day             int       `json:"dia" example:"1"`
	Month           int       `json:"mes" example:"1"`
	Year            int       `json:"ano" example:"2024"`
	Quarter         int       `json:"trimestre" example:"1"`
	Bimester        int       `json:"bimestre" example:"1"`
	Weekday         int       `json:"dia_semana_num" example:"0"`
	WeekdayName     string    `json:"nome_dia" example:"Segunda-feira"`
	MonthName       string    `json:"nome_mes" example:"Janeiro"`
	Weekend         bool      `json:"final_semana"`
	MonthStart      bool      `json:"inicio_mes"`
	MonthEnd        bool      `json:"fim_mes"`
	QuarterStart    bool      `json:"inicio_trimestre"`
	QuarterEnd      bool      `json:"fim_trimestre"`
	YearStart       bool      `json:"inicio_ano"`
	YearEnd         bool      `json:"fim_ano"`
	DaysInMonth     int       `json:"dias_no_mes" example:"31"`
	ISOWeek         int       `json:"semana_do_ano" example:"1"`
	NationalHoliday bool      `json:"feriado_nacional"`
}

// Holiday is a named national holiday on a given date.
type Holiday struct {
	Date    time.Time `json:"data" example:"2024-04-21T00:00:00Z"`
	Name    string    `json:"nome" example:"Tiradentes"`
	Movable bool      `json:"movel"`
}
