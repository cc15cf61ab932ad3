package columnar

import (
	"math"

	"github.com/hupe1980/adindex/model"
)

// Columns holds one slice per record field, aligned by ordinal.
// Invariant: every slice has the same length.
type Columns struct {
	URL         []string
	Title       []string
	City        []string
	District    []string
	Brand       []*string
	Year        []int32
	Mileage     []int32
	Price       []int64
	Negotiable  []int8
	Description []string
	PostedAt    []*string
	ScrapedAt   []string
}

func newColumns(n int) Columns {
	return Columns{
		URL:         make([]string, n),
		Title:       make([]string, n),
		City:        make([]string, n),
		District:    make([]string, n),
		Brand:       make([]*string, n),
		Year:        make([]int32, n),
		Mileage:     make([]int32, n),
		Price:       make([]int64, n),
		Negotiable:  make([]int8, n),
		Description: make([]string, n),
		PostedAt:    make([]*string, n),
		ScrapedAt:   make([]string, n),
	}
}

func (c *Columns) set(i int, r *model.Row) {
	c.URL[i] = r.URL
	c.Title[i] = r.Title
	c.City[i] = r.City
	c.District[i] = r.District
	c.Brand[i] = cloneString(r.Brand)
	c.Year[i] = saturate32(r.Year)
	c.Mileage[i] = saturate32(r.Mileage)
	c.Price[i] = r.Price
	c.Negotiable[i] = saturate8(r.Negotiable)
	c.Description[i] = r.Description
	c.PostedAt[i] = cloneString(r.PostedAt)
	c.ScrapedAt[i] = r.ScrapedAt
}

func (c *Columns) row(i int) model.Row {
	return model.Row{
		URL:         c.URL[i],
		Title:       c.Title[i],
		City:        c.City[i],
		District:    c.District[i],
		Brand:       cloneString(c.Brand[i]),
		Year:        int64(c.Year[i]),
		Mileage:     int64(c.Mileage[i]),
		Price:       c.Price[i],
		Negotiable:  int64(c.Negotiable[i]),
		Description: c.Description[i],
		PostedAt:    cloneString(c.PostedAt[i]),
		ScrapedAt:   c.ScrapedAt[i],
	}
}

func (c *Columns) value(d model.Dimension, i int) int64 {
	switch d {
	case model.Price:
		return c.Price[i]
	case model.Year:
		return int64(c.Year[i])
	default:
		return int64(c.Mileage[i])
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func saturate32(v int64) int32 {
	return int32(min(max(v, math.MinInt32), math.MaxInt32))
}

func saturate8(v int64) int8 {
	return int8(min(max(v, math.MinInt8), math.MaxInt8))
}
