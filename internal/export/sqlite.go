package export

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver for database/sql

	"github.com/guttosm/findim/internal/domain/models"
)

const (
	sqliteCalendarTable = "dcalendario"

	sqliteCalendarDDL = `CREATE TABLE dcalendario (
		id_data INTEGER PRIMARY KEY,
		data TEXT NOT NULL UNIQUE,
		dia INTEGER NOT NULL,
		mes INTEGER NOT NULL,
		ano INTEGER NOT NULL,
		trimestre INTEGER NOT NULL,
		bimestre INTEGER NOT NULL,
		dia_semana_num INTEGER NOT NULL,
		nome_dia TEXT NOT NULL,
		nome_mes TEXT NOT NULL,
		final_semana INTEGER NOT NULL,
		inicio_mes INTEGER NOT NULL,
		fim_mes INTEGER NOT NULL,
		inicio_trimestre INTEGER NOT NULL,
		fim_trimestre INTEGER NOT NULL,
		inicio_ano INTEGER NOT NULL,
		fim_ano INTEGER NOT NULL,
		dias_no_mes INTEGER NOT NULL,
		semana_do_ano INTEGER NOT NULL,
		feriado_nacional INTEGER NOT NULL
	);`

	// observations may share a date; rows are keyed by the implicit rowid
	sqliteSeriesDDL = `CREATE TABLE %s (
		data TEXT NOT NULL,
		valor REAL,
		mudou INTEGER NOT NULL
	);`
)

// SQLiteSink writes a single table into a SQLite database file, replacing
// any previous table with the same name.
type SQLiteSink struct{}

func (SQLiteSink) Extension() string { return "db" }

func (SQLiteSink) WriteCalendar(ctx context.Context, days []models.CalendarDay, dest string) error {
	return writeSQLite(ctx, dest, sqliteCalendarTable, sqliteCalendarDDL, calendarTable(days))
}

func (SQLiteSink) WriteSeries(ctx context.Context, s *models.Series, dest string) error {
	if s == nil {
		return fmt.Errorf("sqlite: nil series")
	}
	name := sqliteSeriesTable(s.Name)
	return writeSQLite(ctx, dest, name, fmt.Sprintf(sqliteSeriesDDL, name), seriesTable(s.Records))
}

func sqliteSeriesTable(name string) string {
	var b strings.Builder
	b.WriteString("serie_")
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func writeSQLite(ctx context.Context, path, name, ddl string, t table) (err error) {
	if path == "" {
		return fmt.Errorf("sqlite: path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("sqlite: open: %w", err)
	}
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(1)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+name); err != nil {
		return fmt.Errorf("sqlite: drop %s: %w", name, err)
	}
	if _, err = tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("sqlite: create %s: %w", name, err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.columns)), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)", name, strings.Join(t.columns, ", "), placeholders,
	))
	if err != nil {
		return fmt.Errorf("sqlite: prepare: %w", err)
	}
	defer stmt.Close()

	for i, row := range t.rows {
		if _, err = stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("sqlite: insert row %d: %w", i+1, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}
