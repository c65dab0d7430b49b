package book

import "github.com/feregc/BiblioTech/model"

// ListQuery mirrors the storefront's filter panel. All fields optional.
type ListQuery struct {
	Search        string  `query:"search"`
	Category      string  `query:"category"`
	Language      string  `query:"language"`
	Publisher     string  `query:"publisher"`
	YearMin       int     `query:"year_min" validate:"omitempty,gte=0"`
	YearMax       int     `query:"year_max" validate:"omitempty,gte=0"`
	PriceMin      float64 `query:"price_min" validate:"omitempty,gte=0"`
	PriceMax      float64 `query:"price_max" validate:"omitempty,gte=0"`
	AvailableOnly bool    `query:"available_only"`
	MinRating     float64 `query:"min_rating" validate:"omitempty,gte=0,lte=5"`
	Page          int     `query:"page" validate:"omitempty,gte=1"`
	Limit         int     `query:"limit" validate:"omitempty,gte=1,lte=100"`
}

func (q ListQuery) Filter() model.BookFilter {
	return model.BookFilter{
		Search:        q.Search,
		Category:      q.Category,
		Language:      q.Language,
		Publisher:     q.Publisher,
		YearMin:       q.YearMin,
		YearMax:       q.YearMax,
		PriceMin:      q.PriceMin,
		PriceMax:      q.PriceMax,
		AvailableOnly: q.AvailableOnly,
		MinRating:     q.MinRating,
	}
}
