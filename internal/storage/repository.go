package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	pq "github.com/lib/pq"

	"github.com/guttosm/findim/internal/domain/models"
)

// DimensionRepository defines contract for DB operations.
type DimensionRepository interface {
	ReplaceCalendar(ctx context.Context, days []models.CalendarDay) error
	ReplaceSeries(ctx context.Context, s *models.Series) error
	CountCalendarDays(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

type dimensionRepository struct {
	db *sql.DB
}

func NewDimensionRepository(db *sql.DB) DimensionRepository {
	return &dimensionRepository{db: db}
}

// ReplaceCalendar truncates calendar_dimension and bulk loads the given days
// in a single transaction.
func (r *dimensionRepository) ReplaceCalendar(ctx context.Context, days []models.CalendarDay) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `TRUNCATE TABLE calendar_dimension`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(
		"calendar_dimension",
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
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, d := range days {
		if _, err := stmt.ExecContext(ctx,
			d.ID,
			d.Date,
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
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	return finishCopy(ctx, tx, stmt)
}

// ReplaceSeries deletes the stored observations of s.Name and bulk loads s.Records.
func (r *dimensionRepository) ReplaceSeries(ctx context.Context, s *models.Series) error {
	if s == nil {
		return fmt.Errorf("replace series: nil series")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM series_observations WHERE series = $1`, s.Name); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(
		"series_observations",
		"series",
		"sgs_code",
		"data",
		"valor",
		"mudou",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	// missing values are stored as NULL
	toNullValue := func(rec models.SeriesRecord) interface{} {
		if !rec.Valid {
			return nil
		}
		return rec.Value
	}

	for _, rec := range s.Records {
		if _, err := stmt.ExecContext(ctx,
			s.Name,
			s.Code,
			rec.Date,
			toNullValue(rec),
			rec.Changed,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	return finishCopy(ctx, tx, stmt)
}

// CountCalendarDays returns the number of rows currently loaded in calendar_dimension.
func (r *dimensionRepository) CountCalendarDays(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM calendar_dimension`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Ping checks database connectivity with a short timeout.
func (r *dimensionRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.db.PingContext(ctx)
}

// finishCopy flushes a COPY statement and commits the transaction.
func finishCopy(ctx context.Context, tx *sql.Tx, stmt *sql.Stmt) error {
	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
