package checkoutsvc

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/feregc/BiblioTech/model"
	"github.com/feregc/BiblioTech/repository/catalog"
	"github.com/feregc/BiblioTech/repository/store"
	cartsvc "github.com/feregc/BiblioTech/service/cart"
	"github.com/feregc/BiblioTech/util/events"
)

type catalogMock struct {
	books map[int64]model.Book
}

func (m *catalogMock) GetBook(_ context.Context, id int64) (*model.Book, error) {
	b, ok := m.books[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &b, nil
}

// flakyStore fails Set for one configured key until reset, after letting
// allow writes through first.
type flakyStore struct {
	*store.Memory
	failKey string
	allow   int
}

func (f *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if key == f.failKey {
		if f.allow > 0 {
			f.allow--
			return f.Memory.Set(ctx, key, value)
		}
		return errors.New("write refused")
	}
	return f.Memory.Set(ctx, key, value)
}

func discardLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seededCart(t *testing.T, st store.Store, cat cartsvc.Catalog) cartsvc.Service {
	t.Helper()
	ctx := context.Background()
	cart, err := cartsvc.New(ctx, st, cat, events.Discard{}, discardLog())
	require.NoError(t, err)
	require.NoError(t, cart.Add(ctx, 1, model.ModePurchase))
	require.NoError(t, cart.Add(ctx, 2, model.ModePurchase))
	require.NoError(t, cart.Add(ctx, 3, model.ModeRental))
	return cart
}

func testCatalog() *catalogMock {
	return &catalogMock{books: map[int64]model.Book{
		1: {ID: 1, Title: "Dune", Author: "Frank Herbert", Price: 18.25},
		2: {ID: 2, Title: "Sapiens", Author: "Yuval Noah Harari", Price: 21.90},
		3: {ID: 3, Title: "Outlander", Author: "Diana Gabaldon", Price: 20.00},
	}}
}

func TestCheckout_Atomicity(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	cat := testCatalog()
	cart := seededCart(t, st, cat)
	svc := New(st, cart, cat, events.Discard{}, discardLog())

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	res, err := svc.Checkout(ctx, now)
	require.NoError(t, err)
	require.Len(t, res.Purchases, 2)
	require.Len(t, res.Rentals, 1)
	require.Empty(t, cart.Entries(), "cart must be empty after checkout")

	// Quantity stays on the record, it is not expanded into copies.
	require.Equal(t, 1, res.Purchases[0].Quantity)

	// Rental window: start now, end now + rentDays*24h.
	r := res.Rentals[0]
	require.Equal(t, now, r.StartAt)
	require.Equal(t, now.Add(7*24*time.Hour), r.EndAt)
	require.Equal(t, 7, r.RentDays)

	// Snapshot fields came from the catalog.
	require.Equal(t, "Outlander", r.Title)
	require.Equal(t, 20.00, r.Price)

	// Re-running on the now-empty cart creates nothing.
	res2, err := svc.Checkout(ctx, now)
	require.NoError(t, err)
	require.Empty(t, res2.Purchases)
	require.Empty(t, res2.Rentals)

	var hist []model.PurchaseRecord
	_, err = store.GetJSON(ctx, st, store.KeyPurchaseHistory, &hist)
	require.NoError(t, err)
	require.Len(t, hist, 2)
}

func TestCheckout_AppendsToExistingHistory(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	prior := []model.PurchaseRecord{{ID: "old", CheckoutID: "earlier", Title: "Foundation"}}
	require.NoError(t, store.SetJSON(ctx, st, store.KeyPurchaseHistory, prior))

	cat := testCatalog()
	cart := seededCart(t, st, cat)
	svc := New(st, cart, cat, events.Discard{}, discardLog())

	_, err := svc.Checkout(ctx, time.Now().UTC())
	require.NoError(t, err)

	var hist []model.PurchaseRecord
	_, err = store.GetJSON(ctx, st, store.KeyPurchaseHistory, &hist)
	require.NoError(t, err)
	require.Len(t, hist, 3)
	require.Equal(t, "old", hist[0].ID, "prior records are never overwritten")
}

func TestCheckout_ReplayDoesNotDuplicate(t *testing.T) {
	// Histories land, then the cart clear fails. The retry must reuse the
	// dedup token and leave exactly one set of records behind.
	ctx := context.Background()
	fs := &flakyStore{Memory: store.NewMemory()}
	cat := testCatalog()
	cart := seededCart(t, fs, cat)
	svc := New(fs, cart, cat, events.Discard{}, discardLog())

	// One write through for the token mint, then the clear fails.
	fs.failKey = store.KeyCart
	fs.allow = 1
	_, err := svc.Checkout(ctx, time.Now().UTC())
	require.Equal(t, ErrPersistence, Code(err))
	require.NotEmpty(t, cart.Entries(), "cart must survive the failed run")

	fs.failKey = ""
	res, err := svc.Checkout(ctx, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, res.Purchases, 2)
	require.Empty(t, cart.Entries())

	var purchases []model.PurchaseRecord
	_, err = store.GetJSON(ctx, fs, store.KeyPurchaseHistory, &purchases)
	require.NoError(t, err)
	require.Len(t, purchases, 2, "replay must not duplicate purchase records")

	var rentals []model.RentalRecord
	_, err = store.GetJSON(ctx, fs, store.KeyRentalHistory, &rentals)
	require.NoError(t, err)
	require.Len(t, rentals, 1, "replay must not duplicate rental records")
}

func TestCheckout_ReplaySurvivesRestart(t *testing.T) {
	// Histories land, then the process dies before the cart clear. The
	// dedup token is persisted inside the cart document, so fresh services
	// over the same store must still retry append-free.
	ctx := context.Background()
	fs := &flakyStore{Memory: store.NewMemory()}
	cat := testCatalog()
	cart := seededCart(t, fs, cat)
	svc := New(fs, cart, cat, events.Discard{}, discardLog())

	fs.failKey = store.KeyCart
	fs.allow = 1
	_, err := svc.Checkout(ctx, time.Now().UTC())
	require.Equal(t, ErrPersistence, Code(err))

	// Restart: rebuild the services from the store alone.
	fs.failKey = ""
	cart2, err := cartsvc.New(ctx, fs, cat, events.Discard{}, discardLog())
	require.NoError(t, err)
	require.NotEmpty(t, cart2.Entries(), "cart must survive the dead run")
	svc2 := New(fs, cart2, cat, events.Discard{}, discardLog())

	res, err := svc2.Checkout(ctx, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, res.Purchases, 2)
	require.Len(t, res.Rentals, 1)
	require.Empty(t, cart2.Entries())

	var purchases []model.PurchaseRecord
	_, err = store.GetJSON(ctx, fs, store.KeyPurchaseHistory, &purchases)
	require.NoError(t, err)
	require.Len(t, purchases, 2, "records from the dead run must not duplicate")

	var rentals []model.RentalRecord
	_, err = store.GetJSON(ctx, fs, store.KeyRentalHistory, &rentals)
	require.NoError(t, err)
	require.Len(t, rentals, 1)
}

func TestCheckout_SnapshotsPrice(t *testing.T) {
	// Once checked out, a record's price is frozen even if the catalog
	// price moves afterwards.
	ctx := context.Background()
	st := store.NewMemory()
	cat := testCatalog()
	cart := seededCart(t, st, cat)
	svc := New(st, cart, cat, events.Discard{}, discardLog())

	res, err := svc.Checkout(ctx, time.Now().UTC())
	require.NoError(t, err)
	require.Equal(t, 20.00, res.Rentals[0].Price)

	cat.books[3] = model.Book{ID: 3, Title: "Outlander", Price: 99.99}

	var rentals []model.RentalRecord
	_, err = store.GetJSON(ctx, st, store.KeyRentalHistory, &rentals)
	require.NoError(t, err)
	require.Equal(t, 20.00, rentals[0].Price)
}
