package model

import (
	"fmt"
	"math"
	"strings"
)

// Bound is an optional inclusive interval on one dimension.
// An absent side imposes no constraint.
type Bound struct {
	Lo, Hi       int64
	HasLo, HasHi bool
}

// Active reports whether either side of the bound is set.
func (b Bound) Active() bool {
	return b.HasLo || b.HasHi
}

// Limits returns the effective inclusive interval, substituting the int64
// extremes for absent sides.
func (b Bound) Limits() (lo, hi int64) {
	lo, hi = math.MinInt64, math.MaxInt64
	if b.HasLo {
		lo = b.Lo
	}
	if b.HasHi {
		hi = b.Hi
	}
	return lo, hi
}

// Contains reports whether v satisfies the bound.
func (b Bound) Contains(v int64) bool {
	if b.HasLo && v < b.Lo {
		return false
	}
	if b.HasHi && v > b.Hi {
		return false
	}
	return true
}

// Bounds holds up to six optional inclusive bounds, a (min, max) pair per
// dimension. The zero value imposes no constraint.
//
// Bounds is a value type: setters return a modified copy.
type Bounds struct {
	dims [NumDimensions]Bound
}

// WithMin returns a copy of b with a lower bound on d.
func (b Bounds) WithMin(d Dimension, v int64) Bounds {
	mustValid(d)
	b.dims[d].Lo, b.dims[d].HasLo = v, true
	return b
}

// WithMax returns a copy of b with an upper bound on d.
func (b Bounds) WithMax(d Dimension, v int64) Bounds {
	mustValid(d)
	b.dims[d].Hi, b.dims[d].HasHi = v, true
	return b
}

// MinPrice sets the lower price bound.
func (b Bounds) MinPrice(v int64) Bounds { return b.WithMin(Price, v) }

// MaxPrice sets the upper price bound.
func (b Bounds) MaxPrice(v int64) Bounds { return b.WithMax(Price, v) }

// MinYear sets the lower year bound.
func (b Bounds) MinYear(v int64) Bounds { return b.WithMin(Year, v) }

// MaxYear sets the upper year bound.
func (b Bounds) MaxYear(v int64) Bounds { return b.WithMax(Year, v) }

// MinMileage sets the lower mileage bound.
func (b Bounds) MinMileage(v int64) Bounds { return b.WithMin(Mileage, v) }

// MaxMileage sets the upper mileage bound.
func (b Bounds) MaxMileage(v int64) Bounds { return b.WithMax(Mileage, v) }

// Get returns the bound on d.
func (b Bounds) Get(d Dimension) Bound {
	mustValid(d)
	return b.dims[d]
}

// Empty reports whether no bound is supplied.
func (b Bounds) Empty() bool {
	for _, d := range b.dims {
		if d.Active() {
			return false
		}
	}
	return true
}

// Match reports whether the given values satisfy every supplied bound.
func (b Bounds) Match(price, year, mileage int64) bool {
	return b.dims[Price].Contains(price) &&
		b.dims[Year].Contains(year) &&
		b.dims[Mileage].Contains(mileage)
}

// String renders the active bounds, e.g. "price>=40000000 year<=1395".
func (b Bounds) String() string {
	var parts []string
	for _, d := range Dimensions {
		bd := b.dims[d]
		if bd.HasLo {
			parts = append(parts, fmt.Sprintf("%s>=%d", d, bd.Lo))
		}
		if bd.HasHi {
			parts = append(parts, fmt.Sprintf("%s<=%d", d, bd.Hi))
		}
	}
	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, " ")
}

func mustValid(d Dimension) {
	if !d.Valid() {
		panic(fmt.Sprintf("model: %v: %s", ErrUnknownDimension, d))
	}
}
