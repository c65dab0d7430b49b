package checkoutsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/feregc/BiblioTech/model"
	"github.com/feregc/BiblioTech/pricing"
	"github.com/feregc/BiblioTech/repository/catalog"
	"github.com/feregc/BiblioTech/repository/store"
	"github.com/feregc/BiblioTech/util/events"
)

type ErrCode string

const (
	ErrBookNotFound ErrCode = "BOOK_NOT_FOUND"
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

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Result carries the records created by one checkout, for confirmation.
type Result struct {
	Purchases []model.PurchaseRecord
	Rentals   []model.RentalRecord
}

type Cart interface {
	Entries() []model.CartEntry
	BeginCheckout(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

type Catalog interface {
	GetBook(ctx context.Context, id int64) (*model.Book, error)
}

type Service interface {
	// Checkout converts the cart into history records dated now, appends
	// them to the purchase and rental histories, clears the cart, and
	// returns the new records. An empty cart checks out to an empty result.
	Checkout(ctx context.Context, now time.Time) (*Result, error)
}

// service materializes cart lines into history records. Each run carries a
// dedup token, minted by the cart and persisted inside the cart document,
// tagged onto every record it writes; if a run fails after some writes
// landed, the retry reuses the token and drops same-token records before
// re-appending, so replay never duplicates history even across a restart.
// Clearing the cart retires the token in the same write as the entries.
type service struct {
	mu   sync.Mutex
	st   store.Store
	cart Cart
	cat  Catalog
	pub  events.Publisher
	log  *slog.Logger
}

func New(st store.Store, cart Cart, cat Catalog, pub events.Publisher, log *slog.Logger) Service {
	return &service{st: st, cart: cart, cat: cat, pub: pub, log: log}
}

func (s *service) Checkout(ctx context.Context, now time.Time) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cart.Entries()
	if len(entries) == 0 {
		return &Result{}, nil
	}

	token, err := s.cart.BeginCheckout(ctx)
	if err != nil {
		return nil, codedError{code: ErrPersistence, cause: err}
	}

	res := &Result{}
	for _, e := range entries {
		book, err := s.cat.GetBook(ctx, e.BookID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return nil, codedError{code: ErrBookNotFound}
			}
			return nil, err
		}
		switch e.Mode {
		case model.ModePurchase:
			res.Purchases = append(res.Purchases, model.PurchaseRecord{
				ID:          uuid.NewString(),
				CheckoutID:  token,
				BookID:      book.ID,
				Title:       book.Title,
				Author:      book.Author,
				Price:       pricing.PurchasePrice(*book),
				Quantity:    e.Quantity,
				PurchasedAt: now,
			})
		case model.ModeRental:
			res.Rentals = append(res.Rentals, model.RentalRecord{
				ID:         uuid.NewString(),
				CheckoutID: token,
				BookID:     book.ID,
				Title:      book.Title,
				Author:     book.Author,
				Price:      book.Price,
				Quantity:   e.Quantity,
				RentDays:   e.RentDays,
				StartAt:    now,
				EndAt:      now.Add(time.Duration(e.RentDays) * 24 * time.Hour),
			})
		}
	}

	// History first, cart clear last: a crash in between leaves durable
	// records plus a full cart, which the token replay makes harmless.
	if err := appendPurchases(ctx, s.st, s.log, token, res.Purchases); err != nil {
		return nil, codedError{code: ErrPersistence, cause: err}
	}
	if err := appendRentals(ctx, s.st, s.log, token, res.Rentals); err != nil {
		return nil, codedError{code: ErrPersistence, cause: err}
	}
	if err := s.cart.Clear(ctx); err != nil {
		return nil, codedError{code: ErrPersistence, cause: err}
	}

	s.pub.Publish(events.CheckoutCompleted{
		PurchaseCount: len(res.Purchases),
		RentalCount:   len(res.Rentals),
	})
	return res, nil
}

func appendPurchases(ctx context.Context, st store.Store, log *slog.Logger, token string, recs []model.PurchaseRecord) error {
	if len(recs) == 0 {
		return nil
	}
	var hist []model.PurchaseRecord
	_, err := store.GetJSON(ctx, st, store.KeyPurchaseHistory, &hist)
	if errors.Is(err, store.ErrCorrupt) {
		log.Warn("purchase history corrupt, starting empty", "err", err)
		hist = nil
	} else if err != nil {
		return err
	}
	kept := hist[:0]
	for _, r := range hist {
		if r.CheckoutID != token {
			kept = append(kept, r)
		}
	}
	return store.SetJSON(ctx, st, store.KeyPurchaseHistory, append(kept, recs...))
}

func appendRentals(ctx context.Context, st store.Store, log *slog.Logger, token string, recs []model.RentalRecord) error {
	if len(recs) == 0 {
		return nil
	}
	var hist []model.RentalRecord
	_, err := store.GetJSON(ctx, st, store.KeyRentalHistory, &hist)
	if errors.Is(err, store.ErrCorrupt) {
		log.Warn("rental history corrupt, starting empty", "err", err)
		hist = nil
	} else if err != nil {
		return err
	}
	kept := hist[:0]
	for _, r := range hist {
		if r.CheckoutID != token {
			kept = append(kept, r)
		}
	}
	return store.SetJSON(ctx, st, store.KeyRentalHistory, append(kept, recs...))
}
