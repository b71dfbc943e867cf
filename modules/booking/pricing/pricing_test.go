package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestDays(t *testing.T) {
	end := day(17)
	same := day(15)
	earlier := day(10)

	assert.Equal(t, 1, Days(day(15), nil))
	assert.Equal(t, 1, Days(day(15), &same))
	assert.Equal(t, 1, Days(day(15), &earlier))
	assert.Equal(t, 3, Days(day(15), &end))
}

func TestDaysAcrossClockChange(t *testing.T) {
	loc, err := time.LoadLocation("Europe/London")
	assert.NoError(t, err)
	start := time.Date(2024, 3, 30, 0, 0, 0, 0, loc)
	end := time.Date(2024, 4, 1, 0, 0, 0, 0, loc)
	assert.Equal(t, 3, Days(start, &end))
}

func TestCalculate(t *testing.T) {
	q := Calculate(99.99, day(15), nil, false, 0)
	assert.Equal(t, 99.0, q.BasePrice)
	assert.Equal(t, 99.0, q.Total)
	assert.Equal(t, 29.0, q.Deposit)

	end := day(16)
	q = Calculate(80, day(15), &end, true, 15)
	assert.Equal(t, 2, q.Days)
	assert.Equal(t, 20.0, q.Overnight)
	assert.Equal(t, 195.0, q.Total)
	assert.Equal(t, 58.0, q.Deposit)

	q = Calculate(50, day(15), nil, false, -10)
	assert.Equal(t, 50.0, q.Total)
}
