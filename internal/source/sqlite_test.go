package source

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "mt5-reporter/internal/errors"
	"mt5-reporter/internal/models"
)

const dealsSchema = `
	CREATE TABLE deals (
		symbol     TEXT NOT NULL,
		direction  TEXT NOT NULL,
		entry      INTEGER NOT NULL,
		time       INTEGER NOT NULL,
		profit     REAL NOT NULL,
		volume     REAL NOT NULL,
		price      REAL NOT NULL,
		close_time INTEGER
	)`

type dealRow struct {
	symbol    string
	direction string
	entry     int
	time      int64
	profit    float64
	closeTime any
}

func createHistoryDB(t *testing.T, rows []dealRow) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "history.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(dealsSchema)
	require.NoError(t, err)

	for _, r := range rows {
		_, err = db.Exec(
			`INSERT INTO deals (symbol, direction, entry, time, profit, volume, price, close_time)
			 VALUES (?, ?, ?, ?, ?, 0.1, 1.1, ?)`,
			r.symbol, r.direction, r.entry, r.time, r.profit, r.closeTime)
		require.NoError(t, err)
	}

	return path
}

func TestSQLiteSource_FetchOrdersAscending(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	path := createHistoryDB(t, []dealRow{
		{"GBPUSD", "SELL", 1, base.AddDate(0, 0, 2).Unix(), -30, nil},
		{"EURUSD", "BUY", 1, base.Unix(), 50, base.Add(time.Hour).Unix()},
		{"USDJPY", "BUY", 1, base.AddDate(0, 0, 1).Unix(), 20, nil},
	})

	src, err := NewSQLiteSource(path)
	require.NoError(t, err)
	defer src.Close()

	deals, err := src.Fetch(context.Background(), base.AddDate(0, 0, -1), base.AddDate(0, 0, 10))
	require.NoError(t, err)
	require.Len(t, deals, 3)

	assert.Equal(t, "EURUSD", deals[0].Symbol)
	assert.Equal(t, "USDJPY", deals[1].Symbol)
	assert.Equal(t, "GBPUSD", deals[2].Symbol)
	assert.True(t, deals[0].Time.Before(deals[1].Time))
	assert.True(t, deals[1].Time.Before(deals[2].Time))

	assert.Equal(t, models.DirectionBuy, deals[0].Direction)
	assert.Equal(t, models.EntryIn, deals[0].Entry)
	assert.Equal(t, 50.0, deals[0].Profit)
	assert.True(t, deals[0].HasClose())
	assert.False(t, deals[1].HasClose())
}

func TestSQLiteSource_FetchAppliesTimeBounds(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	path := createHistoryDB(t, []dealRow{
		{"EURUSD", "BUY", 1, base.AddDate(0, 0, -10).Unix(), 10, nil},
		{"EURUSD", "BUY", 1, base.Unix(), 20, nil},
		{"EURUSD", "BUY", 1, base.AddDate(0, 0, 10).Unix(), 30, nil},
	})

	src, err := NewSQLiteSource(path)
	require.NoError(t, err)
	defer src.Close()

	deals, err := src.Fetch(context.Background(), base.AddDate(0, 0, -1), base.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, deals, 1)
	assert.Equal(t, 20.0, deals[0].Profit)
}

func TestSQLiteSource_EmptyRangeReturnsNoDeals(t *testing.T) {
	path := createHistoryDB(t, nil)

	src, err := NewSQLiteSource(path)
	require.NoError(t, err)
	defer src.Close()

	deals, err := src.Fetch(context.Background(), time.Unix(0, 0), time.Now())
	require.NoError(t, err)
	assert.Empty(t, deals)
}

func TestSQLiteSource_MissingFileIsSourceUnavailable(t *testing.T) {
	_, err := NewSQLiteSource(filepath.Join(t.TempDir(), "nope.db"))

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
}

func TestUnavailable_AlwaysFails(t *testing.T) {
	cause := apperrors.NewSourceError("open", "history.db", assert.AnError)
	src := Unavailable(cause)

	_, err := src.Fetch(context.Background(), time.Unix(0, 0), time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
	assert.NoError(t, src.Close())
}
