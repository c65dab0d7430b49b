package cartsvc

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feregc/BiblioTech/model"
	"github.com/feregc/BiblioTech/repository/catalog"
	"github.com/feregc/BiblioTech/repository/store"
	"github.com/feregc/BiblioTech/util/events"
)

type catalogMock struct {
	getFn func(ctx context.Context, id int64) (*model.Book, error)
}

func (m *catalogMock) GetBook(ctx context.Context, id int64) (*model.Book, error) {
	return m.getFn(ctx, id)
}

func fixedCatalog(books map[int64]model.Book) *catalogMock {
	return &catalogMock{getFn: func(_ context.Context, id int64) (*model.Book, error) {
		b, ok := books[id]
		if !ok {
			return nil, catalog.ErrNotFound
		}
		return &b, nil
	}}
}

// failingStore wraps a memory store and fails writes while tripped.
type failingStore struct {
	*store.Memory
	fail bool
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.Memory.Set(ctx, key, value)
}

func discardLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(t *testing.T, st store.Store, cat Catalog) Service {
	t.Helper()
	s, err := New(context.Background(), st, cat, events.Discard{}, discardLog())
	require.NoError(t, err)
	return s
}

func TestAdd_IdentityInvariant(t *testing.T) {
	ctx := context.Background()
	cat := fixedCatalog(map[int64]model.Book{1: {ID: 1, Price: 20}})
	s := newService(t, store.NewMemory(), cat)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Add(ctx, 1, model.ModePurchase))
	}

	entries := s.Entries()
	require.Len(t, entries, 1, "repeated adds must collapse into one entry")
	require.Equal(t, 3, entries[0].Quantity)
}

func TestAdd_SameBookBothModes(t *testing.T) {
	ctx := context.Background()
	cat := fixedCatalog(map[int64]model.Book{1: {ID: 1, Price: 20}})
	s := newService(t, store.NewMemory(), cat)

	require.NoError(t, s.Add(ctx, 1, model.ModePurchase))
	require.NoError(t, s.Add(ctx, 1, model.ModeRental))

	entries := s.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, model.ModePurchase, entries[0].Mode)
	require.Equal(t, model.ModeRental, entries[1].Mode)
	require.Equal(t, 0, entries[0].RentDays)
	require.Equal(t, model.DefaultRentDays, entries[1].RentDays)
}

func TestAdd_RejectsBadBooks(t *testing.T) {
	ctx := context.Background()
	cat := fixedCatalog(map[int64]model.Book{7: {ID: 7, Price: 0}})
	s := newService(t, store.NewMemory(), cat)

	err := s.Add(ctx, 7, model.ModePurchase)
	require.Equal(t, ErrInvalidPrice, Code(err))

	err = s.Add(ctx, 99, model.ModePurchase)
	require.Equal(t, ErrBookNotFound, Code(err))

	require.Empty(t, s.Entries(), "rejected adds must leave the cart untouched")
}

func TestRemove_Idempotent(t *testing.T) {
	ctx := context.Background()
	cat := fixedCatalog(map[int64]model.Book{1: {ID: 1, Price: 20}})
	s := newService(t, store.NewMemory(), cat)

	require.NoError(t, s.Add(ctx, 1, model.ModePurchase))
	require.NoError(t, s.Remove(ctx, 1, model.ModePurchase))
	after := s.Entries()

	require.NoError(t, s.Remove(ctx, 1, model.ModePurchase))
	require.Equal(t, after, s.Entries())
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	cat := fixedCatalog(map[int64]model.Book{1: {ID: 1, Price: 20}})
	s := newService(t, store.NewMemory(), cat)

	require.NoError(t, s.Add(ctx, 1, model.ModePurchase))
	require.NoError(t, s.UpdateQuantity(ctx, 1, model.ModePurchase, 5))
	require.Equal(t, 5, s.Entries()[0].Quantity)

	// Never creates an entry.
	require.NoError(t, s.UpdateQuantity(ctx, 2, model.ModePurchase, 3))
	require.Len(t, s.Entries(), 1)

	// Zero removes.
	require.NoError(t, s.UpdateQuantity(ctx, 1, model.ModePurchase, 0))
	require.Empty(t, s.Entries())
}

func TestUpdateRentDays(t *testing.T) {
	ctx := context.Background()
	cat := fixedCatalog(map[int64]model.Book{1: {ID: 1, Price: 20}})
	s := newService(t, store.NewMemory(), cat)

	require.NoError(t, s.Add(ctx, 1, model.ModePurchase))
	require.NoError(t, s.Add(ctx, 1, model.ModeRental))

	// Off-menu value is fine, purchase entry is untouched.
	require.NoError(t, s.UpdateRentDays(ctx, 1, 10))
	entries := s.Entries()
	require.Equal(t, 0, entries[0].RentDays)
	require.Equal(t, 10, entries[1].RentDays)

	err := s.UpdateRentDays(ctx, 1, 0)
	require.Equal(t, ErrInvalidInput, Code(err))
	require.Equal(t, 10, s.Entries()[1].RentDays)
}

func TestTotals(t *testing.T) {
	ctx := context.Background()
	cat := fixedCatalog(map[int64]model.Book{
		1: {ID: 1, Price: 20},
		2: {ID: 2, Price: 10},
	})
	s := newService(t, store.NewMemory(), cat)

	require.NoError(t, s.Add(ctx, 1, model.ModePurchase)) // 20
	require.NoError(t, s.Add(ctx, 1, model.ModePurchase)) // 40
	require.NoError(t, s.Add(ctx, 2, model.ModeRental))   // + 10*0.1*7 = 7

	total, err := s.TotalPrice(ctx)
	require.NoError(t, err)
	require.InDelta(t, 47.0, total, 1e-9)
	require.Equal(t, 3, s.TotalItems())
}

func TestTotalPrice_TracksCatalogPrice(t *testing.T) {
	// Live-cart lines always re-derive from the current catalog price.
	ctx := context.Background()
	price := 20.0
	cat := &catalogMock{getFn: func(_ context.Context, id int64) (*model.Book, error) {
		return &model.Book{ID: id, Price: price}, nil
	}}
	s := newService(t, store.NewMemory(), cat)

	require.NoError(t, s.Add(ctx, 1, model.ModeRental))
	before, err := s.TotalPrice(ctx)
	require.NoError(t, err)
	require.InDelta(t, 14.0, before, 1e-9)

	price = 30.0
	after, err := s.TotalPrice(ctx)
	require.NoError(t, err)
	require.InDelta(t, 21.0, after, 1e-9)
}

func TestMutation_RollsBackOnPersistenceFailure(t *testing.T) {
	ctx := context.Background()
	cat := fixedCatalog(map[int64]model.Book{1: {ID: 1, Price: 20}})
	fs := &failingStore{Memory: store.NewMemory()}
	s := newService(t, fs, cat)

	require.NoError(t, s.Add(ctx, 1, model.ModePurchase))

	fs.fail = true
	err := s.Add(ctx, 1, model.ModePurchase)
	require.Equal(t, ErrPersistence, Code(err))
	require.Equal(t, 1, s.Entries()[0].Quantity, "failed write must not change in-memory state")

	// Identical retry succeeds once the store recovers.
	fs.fail = false
	require.NoError(t, s.Add(ctx, 1, model.ModePurchase))
	require.Equal(t, 2, s.Entries()[0].Quantity)
}

func TestCart_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cat := fixedCatalog(map[int64]model.Book{1: {ID: 1, Price: 20}})
	st := store.NewMemory()

	s1 := newService(t, st, cat)
	require.NoError(t, s1.Add(ctx, 1, model.ModeRental))
	require.NoError(t, s1.UpdateRentDays(ctx, 1, 14))

	// Same store, fresh service: the session restarted.
	s2 := newService(t, st, cat)
	require.Equal(t, s1.Entries(), s2.Entries())
}

func TestBeginCheckout_TokenLifecycle(t *testing.T) {
	ctx := context.Background()
	cat := fixedCatalog(map[int64]model.Book{1: {ID: 1, Price: 20}})
	st := store.NewMemory()
	s := newService(t, st, cat)
	require.NoError(t, s.Add(ctx, 1, model.ModePurchase))

	tok, err := s.BeginCheckout(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	again, err := s.BeginCheckout(ctx)
	require.NoError(t, err)
	require.Equal(t, tok, again, "a pending token must be reused, not reminted")

	// The token rides in the persisted cart document.
	s2 := newService(t, st, cat)
	tok2, err := s2.BeginCheckout(ctx)
	require.NoError(t, err)
	require.Equal(t, tok, tok2)

	// Clearing the cart retires it.
	require.NoError(t, s.Clear(ctx))
	fresh, err := s.BeginCheckout(ctx)
	require.NoError(t, err)
	require.NotEqual(t, tok, fresh)
}

func TestNew_CorruptCartFailsOpen(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	require.NoError(t, st.Set(ctx, store.KeyCart, []byte("{broken")))

	s, err := New(ctx, st, fixedCatalog(nil), events.Discard{}, discardLog())
	require.NoError(t, err)
	require.Empty(t, s.Entries())
}
