package columnar

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/adindex/model"
)

// Match evaluates b through the sorted views: one range bitmap per active
// dimension, intersected. With no active bound every ordinal matches.
func (ix *Index) Match(b model.Bounds) *roaring.Bitmap {
	var parts []*roaring.Bitmap
	for _, d := range model.Dimensions {
		bd := b.Get(d)
		if !bd.Active() {
			continue
		}
		lo, hi := bd.Limits()
		bm, _ := ix.RangeBitmap(d, lo, hi)
		if bm.IsEmpty() {
			return bm
		}
		parts = append(parts, bm)
	}

	switch len(parts) {
	case 0:
		all := roaring.New()
		all.AddRange(0, uint64(ix.Len()))
		return all
	case 1:
		return parts[0]
	default:
		return roaring.FastAnd(parts...)
	}
}
