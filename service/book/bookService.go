package booksvc

import (
	"context"
	"errors"

	"github.com/feregc/BiblioTech/model"
	"github.com/feregc/BiblioTech/repository/catalog"
)

type Repo interface {
	GetBook(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context, f model.BookFilter) ([]model.Book, error)
}

// Service is the storefront's read-only browsing surface over the catalog.
type Service interface {
	List(ctx context.Context, f model.BookFilter) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context, f model.BookFilter) ([]model.Book, error) {
	return s.r.List(ctx, f)
}

// Detail returns nil, nil for an unknown id; the controller turns that
// into a 404.
func (s *service) Detail(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.GetBook(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, nil
	}
	return b, err
}
