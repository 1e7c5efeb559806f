// Package source provides access to the trading-platform deal history.
package source

import (
	"context"
	"time"

	"mt5-reporter/internal/models"
)

// TradeSource supplies raw deal records for a date range.
// A failed fetch reports errors.ErrSourceUnavailable through its error
// chain; an empty result is a valid outcome, not an error.
type TradeSource interface {
	Fetch(ctx context.Context, from, to time.Time) ([]models.Deal, error)
	Close() error
}

// Unavailable returns a source whose fetch always fails with the given
// cause. Used when the history database cannot even be opened, so the
// pipeline still runs and falls back.
func Unavailable(err error) TradeSource {
	return unavailableSource{err: err}
}

type unavailableSource struct {
	err error
}

func (s unavailableSource) Fetch(context.Context, time.Time, time.Time) ([]models.Deal, error) {
	return nil, s.err
}

func (s unavailableSource) Close() error { return nil }
