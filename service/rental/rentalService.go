package rentalsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/feregc/BiblioTech/model"
	"github.com/feregc/BiblioTech/pricing"
	"github.com/feregc/BiblioTech/repository/store"
	"github.com/feregc/BiblioTech/util/events"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound     ErrCode = "NOT_FOUND"
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

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Classified splits the rental history by expiry at a given instant.
type Classified struct {
	Active  []model.RentalRecord
	Expired []model.RentalRecord
}

// Service manages persisted rental records after checkout. Rental status
// is never stored; it is recomputed from EndAt against the supplied clock
// reading on every call, so it can never drift.
type Service interface {
	Classify(ctx context.Context, now time.Time) (*Classified, error)

	// Extend pushes a rental's expiry out by additionalDays, counting from
	// the current expiry even when that lies in the past: a lapsed rental
	// is not silently renewed from today. The cost is derived from the
	// price snapshotted at checkout and accumulates across extensions.
	Extend(ctx context.Context, rentalID string, additionalDays int, now time.Time) (*model.RentalRecord, error)

	// ExpiringSoon lists active rentals whose expiry falls within the
	// given window, for the storefront's expiry warnings.
	ExpiringSoon(ctx context.Context, now time.Time, within time.Duration) ([]model.RentalRecord, error)

	// Purchases lists the purchase history for the profile page.
	Purchases(ctx context.Context) ([]model.PurchaseRecord, error)
}

type service struct {
	mu  sync.Mutex
	st  store.Store
	pub events.Publisher
	log *slog.Logger
}

func New(st store.Store, pub events.Publisher, log *slog.Logger) Service {
	return &service{st: st, pub: pub, log: log}
}

func (s *service) Classify(ctx context.Context, now time.Time) (*Classified, error) {
	rentals, err := s.loadRentals(ctx)
	if err != nil {
		return nil, err
	}
	out := &Classified{}
	for _, r := range rentals {
		if r.Expired(now) {
			out.Expired = append(out.Expired, r)
		} else {
			out.Active = append(out.Active, r)
		}
	}
	return out, nil
}

func (s *service) Extend(ctx context.Context, rentalID string, additionalDays int, now time.Time) (*model.RentalRecord, error) {
	if additionalDays <= 0 {
		return nil, codedError{code: ErrInvalidInput}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rentals, err := s.loadRentals(ctx)
	if err != nil {
		return nil, err
	}

	i := -1
	for j := range rentals {
		if rentals[j].ID == rentalID {
			i = j
			break
		}
	}
	if i < 0 {
		return nil, codedError{code: ErrNotFound}
	}

	cost := pricing.RentalPrice(rentals[i].Price, additionalDays)
	rentals[i].EndAt = rentals[i].EndAt.Add(time.Duration(additionalDays) * 24 * time.Hour)
	rentals[i].RentDays += additionalDays
	rentals[i].TotalExtensionCost += cost

	if err := store.SetJSON(ctx, s.st, store.KeyRentalHistory, rentals); err != nil {
		return nil, codedError{code: ErrPersistence, cause: err}
	}

	updated := rentals[i]
	s.pub.Publish(events.RentalExtended{
		RentalID: updated.ID,
		NewEnd:   updated.EndAt,
		Cost:     cost,
	})
	return &updated, nil
}

func (s *service) ExpiringSoon(ctx context.Context, now time.Time, within time.Duration) ([]model.RentalRecord, error) {
	rentals, err := s.loadRentals(ctx)
	if err != nil {
		return nil, err
	}
	cutoff := now.Add(within)
	var out []model.RentalRecord
	for _, r := range rentals {
		if !r.Expired(now) && !r.EndAt.After(cutoff) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *service) Purchases(ctx context.Context) ([]model.PurchaseRecord, error) {
	var hist []model.PurchaseRecord
	_, err := store.GetJSON(ctx, s.st, store.KeyPurchaseHistory, &hist)
	if errors.Is(err, store.ErrCorrupt) {
		s.log.Warn("purchase history corrupt, treating as empty", "err", err)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return hist, nil
}

func (s *service) loadRentals(ctx context.Context) ([]model.RentalRecord, error) {
	var rentals []model.RentalRecord
	_, err := store.GetJSON(ctx, s.st, store.KeyRentalHistory, &rentals)
	if errors.Is(err, store.ErrCorrupt) {
		s.log.Warn("rental history corrupt, treating as empty", "err", err)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rentals, nil
}
