// model/book.go
package model

type Book struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Category    string  `json:"category"`
	Year        int     `json:"year"`
	ISBN        string  `json:"isbn"`
	Pages       int     `json:"pages"`
	Language    string  `json:"language"`
	Publisher   string  `json:"publisher"`
	Available   bool    `json:"available"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
	Price       float64 `json:"price"`
}

// BookFilter narrows a catalog listing. Zero values mean "no constraint":
// empty strings match everything, YearMax/PriceMax/MinRating of 0 disable
// their bound.
type BookFilter struct {
	Search        string
	Category      string
	Language      string
	Publisher     string
	YearMin       int
	YearMax       int
	PriceMin      float64
	PriceMax      float64
	AvailableOnly bool
	MinRating     float64
}
