// repository/store/postgres.go
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres { return &Postgres{pool: pool} }

// Migrate creates the single upsert table the adapter needs.
func (p *Postgres) Migrate(ctx context.Context) error {
	const q = `
		CREATE TABLE IF NOT EXISTS bibliotech_kv (
			key   TEXT PRIMARY KEY,
			value JSONB NOT NULL
		)`
	_, err := p.pool.Exec(ctx, q)
	return err
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `
		SELECT value
		FROM bibliotech_kv
		WHERE key = $1`
	var b []byte
	err := p.pool.QueryRow(ctx, q, key).Scan(&b)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	const q = `
		INSERT INTO bibliotech_kv (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	_, err := p.pool.Exec(ctx, q, key, value)
	return err
}
