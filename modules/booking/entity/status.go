package entity

import (
	stderrors "errors"
	"fmt"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

var ErrInvalidTransition = stderrors.New("invalid status transition")

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusExpired},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
}

var AllStatuses = []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusExpired, StatusCancelled}

func ParseStatus(s string) (Status, bool) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

func (s Status) Terminal() bool {
	_, ok := transitions[s]
	return !ok
}

// CheckTransition reports whether moving from one status to another changes
// anything. Moving to the current status is a no-op, not an error.
func CheckTransition(from, to Status) (bool, error) {
	if from == to {
		return false, nil
	}
	for _, next := range transitions[from] {
		if next == to {
			return true, nil
		}
	}
	return false, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// DeriveStatus applies the time-based rules: a pending booking whose last day
// has passed is expired, a confirmed one is completed. Dates are compared as
// calendar days, with now already in the business timezone.
func DeriveStatus(status Status, lastDay, now time.Time) Status {
	if !dayBefore(lastDay, now) {
		return status
	}
	switch status {
	case StatusPending:
		return StatusExpired
	case StatusConfirmed:
		return StatusCompleted
	default:
		return status
	}
}

func dayBefore(day, now time.Time) bool {
	y, m, d := day.Date()
	ny, nm, nd := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Before(time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC))
}
