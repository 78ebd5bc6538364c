package storage

// sqlite.go: histórico de sorteos en SQLite.
//
// Estrategia:
//   - `snapshots`: una fila por SaveDraws con la metadata de origen.
//   - `draws`: las líneas del snapshot, en orden (position).
//   - Se conservan los últimos keepSnapshots; los anteriores se borran en cada Save.

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/eurokeys/internal/domain"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const keepSnapshots = 3

// SQLiteStore implementa ports.DrawStore usando SQLite (pure Go, sin CGo).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore abre (o crea) la base de datos en la ruta dada y aplica las migraciones.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStore: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStore: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// SaveDraws guarda el histórico como un snapshot nuevo y poda los antiguos.
func (s *SQLiteStore) SaveDraws(ctx context.Context, h domain.DrawHistory) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveDraws: begin tx: %w", err)
	}
	defer tx.Rollback()

	id := uuid.New().String()
	ts := h.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	var lastScraping sql.NullString
	if h.LastScraping != nil {
		lastScraping = sql.NullString{String: h.LastScraping.UTC().Format(time.RFC3339Nano), Valid: true}
	}
	var yearStart, yearEnd sql.NullInt64
	if h.YearRange != nil {
		yearStart = sql.NullInt64{Int64: int64(h.YearRange.Start), Valid: true}
		yearEnd = sql.NullInt64{Int64: int64(h.YearRange.End), Valid: true}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, saved_at, source, last_scraping, year_start, year_end, total)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, ts.UTC().Format(time.RFC3339Nano), h.Source, lastScraping, yearStart, yearEnd, len(h.Draws),
	); err != nil {
		return fmt.Errorf("storage.SaveDraws: insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO draws (snapshot_id, position, line) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("storage.SaveDraws: prepare: %w", err)
	}
	defer stmt.Close()

	for i, line := range h.Draws {
		if _, err := stmt.ExecContext(ctx, id, i, line); err != nil {
			return fmt.Errorf("storage.SaveDraws: insert draw %d: %w", i, err)
		}
	}

	if err := pruneSnapshots(ctx, tx); err != nil {
		return fmt.Errorf("storage.SaveDraws: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveDraws: commit: %w", err)
	}
	return nil
}

// LoadDraws devuelve el snapshot más reciente.
func (s *SQLiteStore) LoadDraws(ctx context.Context) (domain.DrawHistory, bool, error) {
	var (
		id, savedAt, source string
		lastScraping        sql.NullString
		yearStart, yearEnd  sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, saved_at, source, last_scraping, year_start, year_end
		FROM snapshots
		ORDER BY rowid DESC
		LIMIT 1
	`).Scan(&id, &savedAt, &source, &lastScraping, &yearStart, &yearEnd)
	if err == sql.ErrNoRows {
		return domain.DrawHistory{}, false, nil
	}
	if err != nil {
		return domain.DrawHistory{}, false, fmt.Errorf("storage.LoadDraws: query snapshot: %w", err)
	}

	h := domain.DrawHistory{Source: source}
	if t, ok := parseStoredTime(id, "saved_at", savedAt); ok {
		h.Timestamp = t
	}
	if lastScraping.Valid {
		if t, ok := parseStoredTime(id, "last_scraping", lastScraping.String); ok {
			h.LastScraping = &t
		}
	}
	if yearStart.Valid && yearEnd.Valid {
		h.YearRange = &domain.YearRange{Start: int(yearStart.Int64), End: int(yearEnd.Int64)}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT line FROM draws WHERE snapshot_id = ? ORDER BY position`, id)
	if err != nil {
		return domain.DrawHistory{}, false, fmt.Errorf("storage.LoadDraws: query draws: %w", err)
	}
	defer rows.Close()

	h.Draws = []string{}
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return domain.DrawHistory{}, false, fmt.Errorf("storage.LoadDraws: scan row: %w", err)
		}
		h.Draws = append(h.Draws, line)
	}
	if err := rows.Err(); err != nil {
		return domain.DrawHistory{}, false, fmt.Errorf("storage.LoadDraws: rows: %w", err)
	}
	return h, true, nil
}

// parseStoredTime parsea una marca de tiempo del snapshot. Un valor corrupto se
// registra y se trata como ausente; las líneas del snapshot siguen siendo válidas.
func parseStoredTime(snapshotID, column, v string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		slog.Warn("invalid snapshot timestamp, ignoring",
			"snapshot", snapshotID, "column", column, "value", v, "err", err)
		return time.Time{}, false
	}
	return t, true
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// pruneSnapshots borra todo salvo los keepSnapshots más recientes.
func pruneSnapshots(ctx context.Context, tx *sql.Tx) error {
	const keep = `SELECT id FROM snapshots ORDER BY rowid DESC LIMIT ?`
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM draws WHERE snapshot_id NOT IN (`+keep+`)`, keepSnapshots,
	); err != nil {
		return fmt.Errorf("prune draws: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM snapshots WHERE id NOT IN (`+keep+`)`, keepSnapshots,
	); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
