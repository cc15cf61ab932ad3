package model

// Row is a classified-ad record as produced by the scraping collaborators.
//
// JSON field names follow the ingestion format. Unknown fields are ignored and
// missing or null numeric fields decode to 0.
type Row struct {
	URL         string  `json:"url"`
	Title       string  `json:"title"`
	City        string  `json:"city"`
	District    string  `json:"district"`
	Brand       *string `json:"brand"`
	Year        int64   `json:"model_year_jalali"`
	Mileage     int64   `json:"mileage_km"`
	Price       int64   `json:"price_toman"`
	Negotiable  int64   `json:"negotiable"`
	Description string  `json:"description"`
	PostedAt    *string `json:"posted_at"`
	ScrapedAt   string  `json:"scraped_at"`
}

// Value returns the row's value for a numeric dimension.
// It panics on an unknown dimension.
func (r *Row) Value(d Dimension) int64 {
	switch d {
	case Price:
		return r.Price
	case Year:
		return r.Year
	case Mileage:
		return r.Mileage
	default:
		panic("model: unknown dimension " + d.String())
	}
}
