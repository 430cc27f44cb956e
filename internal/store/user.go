package store

import (
	"context"

	"appointment-booking-api/internal/model"
)

type Users struct{ s *Store }

const userCols = `id, name, email, password_hash, COALESCE(avatar, ''), created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Avatar, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *Users) Create(ctx context.Context, u *model.User) error {
	return r.s.pool.QueryRow(ctx,
		`INSERT INTO users (id, name, email, password_hash) VALUES ($1,$2,$3,$4)
		 RETURNING created_at, updated_at`,
		u.ID, u.Name, u.Email, u.PasswordHash,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
}

func (r *Users) Save(ctx context.Context, u *model.User) error {
	return r.s.pool.QueryRow(ctx,
		`UPDATE users SET name=$1, email=$2, password_hash=$3, avatar=NULLIF($4, ''), updated_at=NOW()
		 WHERE id=$5 RETURNING updated_at`,
		u.Name, u.Email, u.PasswordHash, u.Avatar, u.ID,
	).Scan(&u.UpdatedAt)
}

func (r *Users) FindByID(ctx context.Context, id string) (*model.User, error) {
	u, err := scanUser(r.s.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, noRows(err)
	}
	return u, nil
}

func (r *Users) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := scanUser(r.s.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE lower(email) = lower($1)`, email))
	if err != nil {
		return nil, noRows(err)
	}
	return u, nil
}

func (r *Users) FindAllProviders(ctx context.Context, exceptUserID string) ([]model.User, error) {
	rows, err := r.s.pool.Query(ctx,
		`SELECT `+userCols+` FROM users WHERE id != $1 ORDER BY name`, exceptUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}
