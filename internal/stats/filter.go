// Package stats computes trading-performance statistics from deal history.
package stats

import (
	"sort"

	"mt5-reporter/internal/models"
)

// FilterClosed selects the closed, directional trades from raw deal history.
// Only the position-entry leg of a buy or sell counts; exit legs and balance
// operations are dropped so partial fills are not double counted. Source
// order is preserved; an empty result is valid, never an error.
func FilterClosed(deals []models.Deal) []models.Deal {
	var closed []models.Deal
	for _, d := range deals {
		if d.Directional() && d.Entry == models.EntryIn {
			closed = append(closed, d)
		}
	}
	return closed
}

// SortByTime orders trades ascending by timestamp. The filter does not
// guarantee order, so callers must sort before any cumulative computation.
func SortByTime(trades []models.Deal) {
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].Time.Before(trades[j].Time)
	})
}
