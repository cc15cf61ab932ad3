package columnar

import (
	"fmt"
	"slices"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/armon/go-radix"

	"github.com/hupe1980/adindex/internal/bitpack"
	"github.com/hupe1980/adindex/model"
)

// Index is an immutable columnar index over a batch of rows.
type Index struct {
	cols   Columns
	byURL  map[string]model.Ordinal
	urls   *radix.Tree
	views  [model.NumDimensions]sortedView
	packed []bitpack.Word
}

// sortedView is the value-sorted view of one dimension.
// Invariant: len(perm) == len(values) and values[i] == value(perm[i]).
type sortedView struct {
	perm   []model.Ordinal
	values []int64
}

// Build constructs an Index from rows. Ordinals follow input order.
//
// Missing numeric fields are already zero in model.Row; year, mileage and
// negotiable are saturated to their column widths. Rows with an empty url
// are stored but not entered into the url lookups.
func Build(rows []model.Row) *Index {
	n := len(rows)
	ix := &Index{
		cols:   newColumns(n),
		byURL:  make(map[string]model.Ordinal, n),
		urls:   radix.New(),
		packed: make([]bitpack.Word, n),
	}

	for i := range rows {
		r := &rows[i]
		ix.cols.set(i, r)
		if r.URL != "" {
			ix.byURL[r.URL] = model.Ordinal(i)
			ix.urls.Insert(r.URL, model.Ordinal(i))
		}
	}

	for _, d := range model.Dimensions {
		ix.views[d] = ix.buildView(d)
	}

	for i := range n {
		ix.packed[i] = bitpack.Pack(ix.cols.Price[i], int64(ix.cols.Year[i]), int64(ix.cols.Negotiable[i]))
	}

	return ix
}

func (ix *Index) buildView(d model.Dimension) sortedView {
	n := ix.Len()
	perm := make([]model.Ordinal, n)
	for i := range perm {
		perm[i] = model.Ordinal(i)
	}

	slices.SortStableFunc(perm, func(a, b model.Ordinal) int {
		va, vb := ix.cols.value(d, int(a)), ix.cols.value(d, int(b))
		switch {
		case va < vb:
			return -1
		case va > vb:
			return 1
		default:
			return 0
		}
	})

	values := make([]int64, n)
	for i, o := range perm {
		values[i] = ix.cols.value(d, int(o))
	}
	return sortedView{perm: perm, values: values}
}

// Len returns the number of records.
func (ix *Index) Len() int {
	return len(ix.cols.URL)
}

// Lookup returns the ordinal of url. For duplicate urls the last input
// occurrence wins.
func (ix *Index) Lookup(url string) (model.Ordinal, bool) {
	o, ok := ix.byURL[url]
	return o, ok
}

// LookupPrefix returns the ordinals of all distinct urls starting with
// prefix, in ascending ordinal order.
func (ix *Index) LookupPrefix(prefix string) []model.Ordinal {
	var out []model.Ordinal
	ix.urls.WalkPrefix(prefix, func(_ string, v interface{}) bool {
		out = append(out, v.(model.Ordinal))
		return false
	})
	slices.Sort(out)
	return out
}

// Range returns the ordinals whose value on d lies in [lo, hi], ordered by
// value with ties in ordinal order. lo > hi yields an empty result.
func (ix *Index) Range(d model.Dimension, lo, hi int64) ([]model.Ordinal, error) {
	v, err := ix.view(d)
	if err != nil {
		return nil, err
	}
	l, r := v.span(lo, hi)
	out := make([]model.Ordinal, r-l)
	copy(out, v.perm[l:r])
	return out, nil
}

// RangeCount returns the number of ordinals Range would return.
func (ix *Index) RangeCount(d model.Dimension, lo, hi int64) (int, error) {
	v, err := ix.view(d)
	if err != nil {
		return 0, err
	}
	l, r := v.span(lo, hi)
	return r - l, nil
}

// RangeBitmap returns the ordinals of Range as a bitmap.
func (ix *Index) RangeBitmap(d model.Dimension, lo, hi int64) (*roaring.Bitmap, error) {
	v, err := ix.view(d)
	if err != nil {
		return nil, err
	}
	l, r := v.span(lo, hi)
	bm := roaring.New()
	if r > l {
		ids := make([]uint32, r-l)
		for i, o := range v.perm[l:r] {
			ids[i] = uint32(o)
		}
		bm.AddMany(ids)
	}
	return bm, nil
}

func (ix *Index) view(d model.Dimension) (*sortedView, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownDimension, d)
	}
	return &ix.views[d], nil
}

// span returns [l, r) such that values[l:r] are exactly the values in [lo, hi].
func (v *sortedView) span(lo, hi int64) (int, int) {
	if lo > hi {
		return 0, 0
	}
	n := len(v.values)
	l := sort.Search(n, func(i int) bool { return v.values[i] >= lo })
	r := l + sort.Search(n-l, func(i int) bool { return v.values[l+i] > hi })
	return l, r
}

// Value returns the stored value of ordinal o on dimension d.
func (ix *Index) Value(d model.Dimension, o model.Ordinal) (int64, error) {
	if !d.Valid() {
		return 0, fmt.Errorf("%w: %s", model.ErrUnknownDimension, d)
	}
	if int(o) >= ix.Len() {
		return 0, model.ErrOrdinalOutOfRange
	}
	return ix.cols.value(d, int(o)), nil
}

// Packed returns the packed metadata word of ordinal o.
func (ix *Index) Packed(o model.Ordinal) (bitpack.Word, error) {
	if int(o) >= ix.Len() {
		return 0, model.ErrOrdinalOutOfRange
	}
	return ix.packed[o], nil
}

// Record materializes the row stored at ordinal o.
func (ix *Index) Record(o model.Ordinal) (model.Row, error) {
	if int(o) >= ix.Len() {
		return model.Row{}, model.ErrOrdinalOutOfRange
	}
	return ix.cols.row(int(o)), nil
}

// Numeric returns the numeric columns for filter kernels.
// The slices are shared with the index and must not be modified.
func (ix *Index) Numeric() (price []int64, year, mileage []int32) {
	return ix.cols.Price, ix.cols.Year, ix.cols.Mileage
}
