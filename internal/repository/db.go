package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool creates and pings a new pgx connection pool.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Schema is the logical schema of the tracking store. The primary key on
// delivery_status.user_id is what the update-then-insert sequence relies on.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
    id            BIGSERIAL PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'courier'
);

CREATE TABLE IF NOT EXISTS delivery_status (
    user_id     BIGINT PRIMARY KEY REFERENCES users(id),
    last_lat    DOUBLE PRECISION NOT NULL,
    last_lng    DOUBLE PRECISION NOT NULL,
    status      TEXT NOT NULL,
    last_update TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS packages (
    id               BIGSERIAL PRIMARY KEY,
    delivery_address TEXT NOT NULL,
    delivery_lat     DOUBLE PRECISION,
    delivery_lng     DOUBLE PRECISION,
    status           TEXT NOT NULL,
    assigned_to      BIGINT REFERENCES users(id),
    created_at       TIMESTAMPTZ NOT NULL
);
`

// ApplySchema creates the tracking tables if they do not exist.
func ApplySchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, Schema)
	return err
}
