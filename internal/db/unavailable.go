package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNoDatabase = errors.New("database not connected")

// OrUnavailable returns the pool as a Querier, or one that fails every call
// with ErrNoDatabase when the pool is nil.
func OrUnavailable(pool *pgxpool.Pool) Querier {
	if pool == nil {
		return unavailable{}
	}
	return pool
}

type unavailable struct{}

func (unavailable) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, ErrNoDatabase
}

func (unavailable) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, ErrNoDatabase
}

func (unavailable) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{}
}

type errRow struct{}

func (errRow) Scan(...any) error {
	return ErrNoDatabase
}
