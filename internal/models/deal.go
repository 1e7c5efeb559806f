// Package models defines the core data types shared across the reporter.
package models

import "time"

// Direction is the side of a deal.
type Direction string

const (
	DirectionBuy  Direction = "BUY"
	DirectionSell Direction = "SELL"
)

// EntryKind marks which leg of a position a deal record represents.
// MT5 history reports both legs; only the position-entry leg counts as
// a closed trade to avoid double counting partial fills.
type EntryKind int

const (
	EntryIn    EntryKind = 1 // position-opening leg
	EntryOut   EntryKind = 0 // position-closing leg
	EntryOther EntryKind = 2 // balance adjustments, credits, etc.
)

// Deal is one record from the trading-platform deal history.
// Immutable once read from the source.
type Deal struct {
	Symbol    string
	Direction Direction
	Entry     EntryKind
	Time      time.Time
	Profit    float64 // realized profit in account currency, signed
	Volume    float64
	Price     float64
	CloseTime time.Time // zero when the source does not track the close leg
}

// Directional reports whether the deal is a plain buy or sell,
// as opposed to a balance operation or other non-trading entry.
func (d Deal) Directional() bool {
	return d.Direction == DirectionBuy || d.Direction == DirectionSell
}

// HasClose reports whether the source supplied a real close timestamp.
func (d Deal) HasClose() bool {
	return !d.CloseTime.IsZero()
}
