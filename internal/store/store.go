package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the Postgres-backed persistence for users, appointments and refresh tokens.
type Store struct {
	pool *pgxpool.Pool
	loc  *time.Location
}

// New uses loc to resolve day and month boundaries in listings.
func New(pool *pgxpool.Pool, loc *time.Location) *Store {
	if loc == nil {
		loc = time.Local
	}
	return &Store{pool: pool, loc: loc}
}

func (s *Store) Users() *Users                 { return &Users{s} }
func (s *Store) Appointments() *Appointments   { return &Appointments{s} }
func (s *Store) RefreshTokens() *RefreshTokens { return &RefreshTokens{s} }

// Migrate executes the given schema SQL.
func (s *Store) Migrate(ctx context.Context, schema string) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// noRows turns pgx.ErrNoRows into the nil, nil convention of the finders.
func noRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return err
}
