package calendar

import "time"

// weekdayNames is indexed by the Monday=0 weekday ordinal.
var weekdayNames = [7]string{
	"Segunda-feira",
	"Terça-feira",
	"Quarta-feira",
	"Quinta-feira",
	"Sexta-feira",
	"Sábado",
	"Domingo",
}

// monthNames is indexed by month number - 1.
var monthNames = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// WeekdayOrdinal converts time.Weekday (Sunday=0) to the Monday=0 convention.
func WeekdayOrdinal(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// WeekdayName returns the Portuguese weekday name for a Monday=0 ordinal.
func WeekdayName(ordinal int) string {
	if ordinal < 0 || ordinal >= len(weekdayNames) {
		return ""
	}
	return weekdayNames[ordinal]
}

// MonthName returns the Portuguese month name.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}
