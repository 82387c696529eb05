package parser

import "errors"

var (
	// A clock value is not of the form H:MM:SS.
	ErrMalformedTime = errors.New("malformed time")
	// The parent_station references of stops form a cycle.
	ErrMalformedHierarchy = errors.New("malformed stop hierarchy")
	// A service references a day outside monday..sunday.
	ErrInvalidWeekday = errors.New("invalid weekday")
	// A trip visits a stop the stop mapping does not know.
	ErrUnresolvedStop = errors.New("unresolved stop")
)
