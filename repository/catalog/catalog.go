// repository/catalog/catalog.go
package catalog

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/feregc/BiblioTech/model"
)

var ErrNotFound = errors.New("catalog: book not found")

type Catalog interface {
	GetBook(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context, f model.BookFilter) ([]model.Book, error)
}

// Static serves the seeded book list. Reads vastly outnumber writes; the
// only mutation is a one-shot metadata enrichment at startup.
type Static struct {
	mu    sync.RWMutex
	books []model.Book
}

func NewStatic() *Static {
	return &Static{books: seedBooks()}
}

func (s *Static) GetBook(_ context.Context, id int64) (*model.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.books {
		if s.books[i].ID == id {
			b := s.books[i]
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Static) List(_ context.Context, f model.BookFilter) ([]model.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Book, 0, len(s.books))
	for _, b := range s.books {
		if matches(b, f) {
			out = append(out, b)
		}
	}
	return out, nil
}

func matches(b model.Book, f model.BookFilter) bool {
	if f.Search != "" && !matchesSearch(b, strings.ToLower(f.Search)) {
		return false
	}
	if f.Category != "" && b.Category != f.Category {
		return false
	}
	if f.Language != "" && b.Language != f.Language {
		return false
	}
	if f.Publisher != "" && b.Publisher != f.Publisher {
		return false
	}
	if f.YearMin != 0 && b.Year < f.YearMin {
		return false
	}
	if f.YearMax != 0 && b.Year > f.YearMax {
		return false
	}
	if b.Price < f.PriceMin {
		return false
	}
	if f.PriceMax != 0 && b.Price > f.PriceMax {
		return false
	}
	if f.AvailableOnly && !b.Available {
		return false
	}
	if b.Rating < f.MinRating {
		return false
	}
	return true
}

// matchesSearch is a free-text match across every descriptive attribute,
// mirroring the storefront search box.
func matchesSearch(b model.Book, q string) bool {
	fields := []string{
		strings.ToLower(b.Title),
		strings.ToLower(b.Author),
		strings.ToLower(b.ISBN),
		strings.ToLower(b.Category),
		strings.ToLower(b.Language),
		strings.ToLower(b.Publisher),
		strings.ToLower(b.Description),
		strconv.Itoa(b.Year),
		strconv.Itoa(b.Pages),
		strconv.FormatFloat(b.Price, 'f', -1, 64),
	}
	for _, fv := range fields {
		if strings.Contains(fv, q) {
			return true
		}
	}
	return false
}
