package cartsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/feregc/BiblioTech/model"
	"github.com/feregc/BiblioTech/pricing"
	"github.com/feregc/BiblioTech/repository/catalog"
	"github.com/feregc/BiblioTech/repository/store"
	"github.com/feregc/BiblioTech/util/events"
)

// errors used by controllers

type ErrCode string

const (
	ErrBookNotFound ErrCode = "BOOK_NOT_FOUND"
	ErrInvalidPrice ErrCode = "INVALID_PRICE"
	ErrInvalidInput ErrCode = "INVALID_INPUT"
	ErrPersistence  ErrCode = "PERSISTENCE"
)

type codedError struct {
	code  ErrCode
	cause error
}

func (e codedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.code, e.cause)
	}
	return string(e.code)
}
func (e codedError) Code() ErrCode { return e.code }
func (e codedError) Unwrap() error { return e.cause }

func makeErr(c ErrCode) error              { return codedError{code: c} }
func wrapErr(c ErrCode, cause error) error { return codedError{code: c, cause: cause} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Catalog interface {
	GetBook(ctx context.Context, id int64) (*model.Book, error)
}

// cartDoc is the persisted shape of the cart. The checkout dedup token
// rides in the same document, so a successful Clear retires the token and
// the entries in one write and the two can never disagree after a crash.
type cartDoc struct {
	Entries       []model.CartEntry `json:"entries"`
	CheckoutToken string            `json:"checkout_token,omitempty"`
}

// Service is the cart manager. Entries are keyed by (bookID, mode); the
// same book can be in the cart as a purchase and as a rental at once.
// Every mutation is written through to the store before the in-memory
// state is updated, so a failed write leaves the cart exactly as it was
// and the caller can retry the identical operation.
type Service interface {
	Add(ctx context.Context, bookID int64, mode model.Mode) error
	Remove(ctx context.Context, bookID int64, mode model.Mode) error
	UpdateQuantity(ctx context.Context, bookID int64, mode model.Mode, quantity int) error
	UpdateRentDays(ctx context.Context, bookID int64, days int) error
	Entries() []model.CartEntry
	TotalPrice(ctx context.Context) (float64, error)
	TotalItems() int
	Clear(ctx context.Context) error

	// BeginCheckout returns the dedup token for the checkout in flight,
	// minting and persisting one when none is pending. Clear retires it.
	BeginCheckout(ctx context.Context) (string, error)
}

type service struct {
	mu      sync.Mutex
	st      store.Store
	cat     Catalog
	pub     events.Publisher
	log     *slog.Logger
	entries []model.CartEntry
	token   string
}

// New loads the persisted cart. A corrupt value fails open to an empty
// cart rather than killing the session.
func New(ctx context.Context, st store.Store, cat Catalog, pub events.Publisher, log *slog.Logger) (Service, error) {
	s := &service{st: st, cat: cat, pub: pub, log: log}

	var doc cartDoc
	_, err := store.GetJSON(ctx, st, store.KeyCart, &doc)
	if errors.Is(err, store.ErrCorrupt) {
		log.Warn("cart state corrupt, starting empty", "err", err)
	} else if err != nil {
		return nil, err
	} else {
		s.entries = doc.Entries
		s.token = doc.CheckoutToken
	}
	return s, nil
}

func (s *service) Add(ctx context.Context, bookID int64, mode model.Mode) error {
	if !mode.Valid() {
		return makeErr(ErrInvalidInput)
	}

	book, err := s.cat.GetBook(ctx, bookID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return makeErr(ErrBookNotFound)
		}
		return err
	}
	if book.Price <= 0 {
		return makeErr(ErrInvalidPrice)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneEntries(s.entries)
	if i := findEntry(next, bookID, mode); i >= 0 {
		next[i].Quantity++
	} else {
		e := model.CartEntry{BookID: bookID, Mode: mode, Quantity: 1}
		if mode == model.ModeRental {
			e.RentDays = model.DefaultRentDays
		}
		next = append(next, e)
	}

	if err := s.commit(ctx, next, s.token); err != nil {
		return err
	}
	s.pub.Publish(events.ItemAdded{BookID: bookID, Mode: string(mode)})
	return nil
}

// Remove is idempotent: deleting an absent entry is a safe no-op.
func (s *service) Remove(ctx context.Context, bookID int64, mode model.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := findEntry(s.entries, bookID, mode)
	if i < 0 {
		return nil
	}
	next := cloneEntries(s.entries)
	next = append(next[:i], next[i+1:]...)

	if err := s.commit(ctx, next, s.token); err != nil {
		return err
	}
	s.pub.Publish(events.ItemRemoved{BookID: bookID, Mode: string(mode)})
	return nil
}

// UpdateQuantity never creates an entry; a quantity of zero or less
// behaves like Remove.
func (s *service) UpdateQuantity(ctx context.Context, bookID int64, mode model.Mode, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, bookID, mode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := findEntry(s.entries, bookID, mode)
	if i < 0 {
		return nil
	}
	next := cloneEntries(s.entries)
	next[i].Quantity = quantity
	return s.commit(ctx, next, s.token)
}

// UpdateRentDays applies only to rental entries. The UI offers 7/14/30 but
// any positive value is accepted.
func (s *service) UpdateRentDays(ctx context.Context, bookID int64, days int) error {
	if days <= 0 {
		return makeErr(ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := findEntry(s.entries, bookID, model.ModeRental)
	if i < 0 {
		return nil
	}
	next := cloneEntries(s.entries)
	next[i].RentDays = days
	return s.commit(ctx, next, s.token)
}

func (s *service) Entries() []model.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneEntries(s.entries)
}

// TotalPrice derives every line from the catalog's current price; the cart
// stores no prices of its own. A line whose book has vanished from the
// catalog is skipped with a warning instead of failing the whole total.
func (s *service) TotalPrice(ctx context.Context) (float64, error) {
	var total float64
	for _, e := range s.Entries() {
		book, err := s.cat.GetBook(ctx, e.BookID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				s.log.Warn("cart line skipped, book gone from catalog", "book_id", e.BookID)
				continue
			}
			return 0, err
		}
		total += pricing.LineTotal(e, book.Price)
	}
	return total, nil
}

func (s *service) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.entries {
		n += e.Quantity
	}
	return n
}

func (s *service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, []model.CartEntry{}, "")
}

func (s *service) BeginCheckout(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" {
		return s.token, nil
	}
	token := uuid.NewString()
	if err := s.commit(ctx, s.entries, token); err != nil {
		return "", err
	}
	return token, nil
}

// commit persists next and only then swaps it in. Callers hold s.mu.
func (s *service) commit(ctx context.Context, next []model.CartEntry, token string) error {
	if err := store.SetJSON(ctx, s.st, store.KeyCart, cartDoc{Entries: next, CheckoutToken: token}); err != nil {
		return wrapErr(ErrPersistence, err)
	}
	s.entries = next
	s.token = token
	return nil
}

func findEntry(entries []model.CartEntry, bookID int64, mode model.Mode) int {
	for i, e := range entries {
		if e.BookID == bookID && e.Mode == mode {
			return i
		}
	}
	return -1
}

func cloneEntries(entries []model.CartEntry) []model.CartEntry {
	out := make([]model.CartEntry, len(entries))
	copy(out, entries)
	return out
}
