package domain

import "errors"

var (
	// ErrNotFound is returned when a point update targets a date with no
	// existing record. The store never creates rows on point updates.
	ErrNotFound = errors.New("no record found")

	// ErrNoData is returned when a forecast is requested against an empty
	// demand history.
	ErrNoData = errors.New("no data available")

	// ErrBadDate is returned when user date text cannot be normalized to an
	// ISO calendar date.
	ErrBadDate = errors.New("unrecognized date")
)
