package filter

import (
	"github.com/hupe1980/adindex/model"
)

// Kernel evaluates bounds over aligned numeric columns.
type Kernel interface {
	// Name returns the stable kernel name.
	Name() string

	// Eval writes one entry per record into dst.
	// len(dst) must equal len(price) == len(year) == len(mileage).
	Eval(price []int64, year, mileage []int32, b model.Bounds, dst []bool)
}

// Eval allocates a mask and evaluates b with k.
func Eval(k Kernel, price []int64, year, mileage []int32, b model.Bounds) model.Mask {
	dst := make(model.Mask, len(price))
	k.Eval(price, year, mileage, b, dst)
	return dst
}

// Scalar is the reference kernel.
type Scalar struct{}

// Name returns "scalar".
func (Scalar) Name() string { return "scalar" }

// Eval applies every supplied bound to the whole column in turn.
func (Scalar) Eval(price []int64, year, mileage []int32, b model.Bounds, dst []bool) {
	for i := range dst {
		dst[i] = true
	}

	if bd := b.Get(model.Price); bd.HasLo {
		for i, v := range price {
			if v < bd.Lo {
				dst[i] = false
			}
		}
	}
	if bd := b.Get(model.Price); bd.HasHi {
		for i, v := range price {
			if v > bd.Hi {
				dst[i] = false
			}
		}
	}
	applyInt32(year, b.Get(model.Year), dst)
	applyInt32(mileage, b.Get(model.Mileage), dst)
}

func applyInt32(col []int32, bd model.Bound, dst []bool) {
	if bd.HasLo {
		for i, v := range col {
			if int64(v) < bd.Lo {
				dst[i] = false
			}
		}
	}
	if bd.HasHi {
		for i, v := range col {
			if int64(v) > bd.Hi {
				dst[i] = false
			}
		}
	}
}

// Unrolled is the accelerated kernel.
type Unrolled struct{}

// Name returns "unrolled".
func (Unrolled) Name() string { return "unrolled" }

// limits is the effective interval of every dimension; absent sides are the
// int64 extremes, so they never reject a value.
type limits struct {
	plo, phi int64
	ylo, yhi int64
	mlo, mhi int64
}

func newLimits(b model.Bounds) limits {
	var l limits
	l.plo, l.phi = b.Get(model.Price).Limits()
	l.ylo, l.yhi = b.Get(model.Year).Limits()
	l.mlo, l.mhi = b.Get(model.Mileage).Limits()
	return l
}

func (l *limits) match(p int64, y, m int32) bool {
	return p >= l.plo && p <= l.phi &&
		int64(y) >= l.ylo && int64(y) <= l.yhi &&
		int64(m) >= l.mlo && int64(m) <= l.mhi
}

// Eval scans record by record, stopping at the first failed predicate.
func (Unrolled) Eval(price []int64, year, mileage []int32, b model.Bounds, dst []bool) {
	n := len(dst)
	if n == 0 {
		return
	}
	l := newLimits(b)
	price, year, mileage = price[:n], year[:n], mileage[:n]

	i := 0
	for ; i+8 <= n; i += 8 {
		dst[i] = l.match(price[i], year[i], mileage[i])
		dst[i+1] = l.match(price[i+1], year[i+1], mileage[i+1])
		dst[i+2] = l.match(price[i+2], year[i+2], mileage[i+2])
		dst[i+3] = l.match(price[i+3], year[i+3], mileage[i+3])
		dst[i+4] = l.match(price[i+4], year[i+4], mileage[i+4])
		dst[i+5] = l.match(price[i+5], year[i+5], mileage[i+5])
		dst[i+6] = l.match(price[i+6], year[i+6], mileage[i+6])
		dst[i+7] = l.match(price[i+7], year[i+7], mileage[i+7])
	}
	for ; i < n; i++ {
		dst[i] = l.match(price[i], year[i], mileage[i])
	}
}
