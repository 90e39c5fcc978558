package report

import "errors"

var (
	ErrUnknownPlayer   = errors.New("unknown player")
	ErrUnknownPosition = errors.New("unknown position")
	ErrUnknownMetric   = errors.New("unknown metric")
	ErrUnknownSide     = errors.New("unknown side")
)
