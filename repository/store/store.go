// repository/store/store.go
//
// Key/value persistence port for the cart and history collections. Values
// are JSON documents; the adapters never interpret them. Callers that need
// typed access go through GetJSON/SetJSON so corruption is detected in one
// place and can be failed open by the service layer.
package store

import (
	"context"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

const (
	KeyCart            = "cart"
	KeyPurchaseHistory = "purchaseHistory"
	KeyRentalHistory   = "rentalHistory"
)

var (
	ErrNotFound = errors.New("store: key not found")
	ErrCorrupt  = errors.New("store: corrupt value")
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

var json = jsoniter.ConfigFastest

// GetJSON reads key into dest. A missing key is not an error; it reports
// found=false and leaves dest untouched. An undecodable value is reported
// as ErrCorrupt so the caller can fall back to a default.
func GetJSON(ctx context.Context, s Store, key string, dest any) (bool, error) {
	b, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return false, fmt.Errorf("%w: key %q: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

func SetJSON(ctx context.Context, s Store, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, b)
}
