// Package pricing computes booking totals from a castle's daily price.
package pricing

import (
	"math"
	"time"

	"castle-admin/core/constants"
)

type Quote struct {
	BasePrice  float64 `json:"base_price"`
	Days       int     `json:"days"`
	Overnight  float64 `json:"overnight"`
	Additional float64 `json:"additional"`
	Total      float64 `json:"total"`
	Deposit    float64 `json:"deposit"`
}

// Days counts hire days inclusive of both ends. A missing or earlier end is
// a single day.
func Days(start time.Time, end *time.Time) int {
	if end == nil {
		return 1
	}
	s := civil(start)
	e := civil(*end)
	if !e.After(s) {
		return 1
	}
	return int(math.Ceil(e.Sub(s).Hours()/24)) + 1
}

func Calculate(price float64, start time.Time, end *time.Time, overnight bool, additional float64) Quote {
	q := Quote{
		BasePrice:  math.Floor(price),
		Days:       Days(start, end),
		Additional: math.Max(additional, 0),
	}
	if overnight {
		q.Overnight = constants.OvernightSurcharge
	}
	q.Total = q.BasePrice*float64(q.Days) + q.Overnight + q.Additional
	q.Deposit = Deposit(q.Total)
	return q
}

func Deposit(total float64) float64 {
	return math.Floor(total * constants.DepositRate)
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
