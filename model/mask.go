package model

import "github.com/RoaringBitmap/roaring/v2"

// Mask holds one entry per ordinal; true means the record satisfies the
// active predicate set.
type Mask []bool

// NewMask returns a mask of length n with every entry set to v.
func NewMask(n int, v bool) Mask {
	m := make(Mask, n)
	if v {
		for i := range m {
			m[i] = true
		}
	}
	return m
}

// Count returns the number of true entries.
func (m Mask) Count() int {
	c := 0
	for _, v := range m {
		if v {
			c++
		}
	}
	return c
}

// Ordinals returns the ordinals of the true entries in ascending order.
func (m Mask) Ordinals() []Ordinal {
	out := make([]Ordinal, 0, m.Count())
	for i, v := range m {
		if v {
			out = append(out, Ordinal(i))
		}
	}
	return out
}

// Bitmap returns the true entries as a roaring bitmap.
func (m Mask) Bitmap() *roaring.Bitmap {
	bm := roaring.New()
	for i, v := range m {
		if v {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// MaskFromBitmap expands a bitmap of ordinals into a mask of length n.
// Ordinals >= n are ignored.
func MaskFromBitmap(bm *roaring.Bitmap, n int) Mask {
	m := make(Mask, n)
	it := bm.Iterator()
	for it.HasNext() {
		i := it.Next()
		if int(i) >= n {
			break
		}
		m[i] = true
	}
	return m
}

// Equal reports whether both masks have the same length and entries.
func (m Mask) Equal(o Mask) bool {
	if len(m) != len(o) {
		return false
	}
	for i := range m {
		if m[i] != o[i] {
			return false
		}
	}
	return true
}
