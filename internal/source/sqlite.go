package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	apperrors "mt5-reporter/internal/errors"
	"mt5-reporter/internal/models"
)

// SQLiteSource reads deal history from the SQLite database the MT5 bridge
// exports into. The bridge writes one row per deal, both legs of every
// position plus balance operations, mirroring the platform's history table.
type SQLiteSource struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteSource opens the deal-history database. The database must
// already exist; the reporter never creates or mutates history.
func NewSQLiteSource(dbPath string) (*SQLiteSource, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, apperrors.NewSourceError("open", dbPath, err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, apperrors.NewSourceError("open", dbPath, err)
	}

	db.SetMaxOpenConns(1)

	return &SQLiteSource{db: db, dbPath: dbPath}, nil
}

// Fetch returns all deals with a timestamp in [from, to], oldest first.
func (s *SQLiteSource) Fetch(ctx context.Context, from, to time.Time) ([]models.Deal, error) {
	const query = `
		SELECT symbol, direction, entry, time, profit, volume, price, close_time
		FROM deals
		WHERE time >= ? AND time <= ?
		ORDER BY time ASC`

	rows, err := s.db.QueryContext(ctx, query, from.Unix(), to.Unix())
	if err != nil {
		return nil, apperrors.NewSourceError("fetch", s.dbPath, err)
	}
	defer rows.Close()

	var deals []models.Deal
	for rows.Next() {
		var d models.Deal
		var direction string
		var entry int
		var ts int64
		var closeTS sql.NullInt64

		if err := rows.Scan(&d.Symbol, &direction, &entry, &ts, &d.Profit, &d.Volume, &d.Price, &closeTS); err != nil {
			return nil, apperrors.NewSourceError("scan", s.dbPath, err)
		}

		d.Direction = models.Direction(direction)
		d.Entry = models.EntryKind(entry)
		d.Time = time.Unix(ts, 0)
		if closeTS.Valid && closeTS.Int64 > 0 {
			d.CloseTime = time.Unix(closeTS.Int64, 0)
		}

		deals = append(deals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewSourceError("fetch", s.dbPath, err)
	}

	return deals, nil
}

// Close closes the underlying database handle.
func (s *SQLiteSource) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing deal history: %w", err)
	}
	return nil
}
