package model

import (
	"fmt"
	"strings"
)

// Ordinal is the zero-based position of a record within an index.
// Ordinals are assigned in input order and never change.
type Ordinal uint32

// Dimension identifies a numeric column with a sorted range index.
type Dimension uint8

const (
	// Price is the asking price in Toman.
	Price Dimension = iota
	// Year is the model year in the source (Jalali) calendar.
	Year
	// Mileage is the odometer reading in kilometres.
	Mileage

	// NumDimensions is the number of indexed dimensions.
	NumDimensions = 3
)

// Dimensions lists every indexed dimension in declaration order.
var Dimensions = [NumDimensions]Dimension{Price, Year, Mileage}

// String returns the stable name of the dimension.
func (d Dimension) String() string {
	switch d {
	case Price:
		return "price"
	case Year:
		return "year"
	case Mileage:
		return "mileage"
	default:
		return fmt.Sprintf("dimension(%d)", uint8(d))
	}
}

// Valid reports whether d names an indexed dimension.
func (d Dimension) Valid() bool {
	return d < NumDimensions
}

// ParseDimension parses a dimension name. It fails with ErrUnknownDimension
// for anything but "price", "year" or "mileage".
func ParseDimension(s string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "price":
		return Price, nil
	case "year":
		return Year, nil
	case "mileage":
		return Mileage, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDimension, s)
	}
}
