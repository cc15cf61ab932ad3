package model

import "errors"

var (
	// ErrUnknownDimension is returned when a query names a dimension that has no index.
	ErrUnknownDimension = errors.New("unknown dimension")

	// ErrOrdinalOutOfRange is returned when an ordinal does not address a record.
	ErrOrdinalOutOfRange = errors.New("ordinal out of range")
)
