package export

import (
	"strconv"

	"github.com/guttosm/findim/internal/domain/models"
)

const dateLayout = "2006-01-02"

// CalendarColumns is the exact column order of the date dimension table.
var CalendarColumns = []string{
	"id_data",
	"data",
	"dia",
	"mes",
	"ano",
	"trimestre",
	"bimestre",
	"dia_semana_num",
	"nome_dia",
	"nome_mes",
	"final_semana",
	"inicio_mes",
	"fim_mes",
	"inicio_trimestre",
	"fim_trimestre",
	"inicio_ano",
	"fim_ano",
	"dias_no_mes",
	"semana_do_ano",
	"feriado_nacional",
}

// SeriesColumns is the exact column order of a series table.
var SeriesColumns = []string{"data", "valor", "mudou"}

// table is a flat, typed tabular view shared by the row-oriented sinks.
// Cells hold string, int, bool, float64 or nil (missing).
type table struct {
	columns []string
	rows    [][]any
}

func calendarTable(days []models.CalendarDay) table {
	rows := make([][]any, 0, len(days))
	for _, d := range days {
		rows = append(rows, []any{
			d.ID,
			d.Date.Format(dateLayout),
			d.Day,
			d.Month,
			d.Year,
			d.Quarter,
			d.Bimester,
			d.Weekday,
			d.WeekdayName,
			d.MonthName,
			d.Weekend,
			d.MonthStart,
			d.MonthEnd,
			d.QuarterStart,
			d.QuarterEnd,
			d.YearStart,
			d.YearEnd,
			d.DaysInMonth,
			d.ISOWeek,
			d.NationalHoliday,
		})
	}
	return table{columns: CalendarColumns, rows: rows}
}

func seriesTable(records []models.SeriesRecord) table {
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		var value any
		if r.Valid {
			value = r.Value
		}
		rows = append(rows, []any{r.Date.Format(dateLayout), value, changedFlag(r.Changed)})
	}
	return table{columns: SeriesColumns, rows: rows}
}

// changedFlag renders the change flag as 0/1.
func changedFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// formatCell renders a typed cell as delimited text: booleans as True/False,
// missing values as an empty cell.
func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case bool:
		if x {
			return "True"
		}
		return "False"
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}
