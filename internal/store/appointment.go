package store

import (
	"context"
	"time"

	"appointment-booking-api/internal/model"
)

type Appointments struct{ s *Store }

func (r *Appointments) Create(ctx context.Context, a *model.Appointment) error {
	err := r.s.pool.QueryRow(ctx,
		`INSERT INTO appointments (id, provider_id, user_id, date) VALUES ($1,$2,$3,$4)
		 RETURNING created_at, updated_at`,
		a.ID, a.ProviderID, a.UserID, a.Date,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if isUniqueViolation(err) {
		return model.ErrSlotTaken
	}
	return err
}

func (r *Appointments) FindByDate(ctx context.Context, date time.Time, providerID string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := r.s.pool.QueryRow(ctx,
		`SELECT id, provider_id, user_id, date, created_at, updated_at
		 FROM appointments WHERE date = $1 AND provider_id = $2`, date, providerID,
	).Scan(&a.ID, &a.ProviderID, &a.UserID, &a.Date, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, noRows(err)
	}
	return a, nil
}

func (r *Appointments) FindAllInMonthFromProvider(ctx context.Context, providerID string, month time.Month, year int) ([]model.Appointment, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, r.s.loc)
	return r.between(ctx, providerID, from, from.AddDate(0, 1, 0))
}

func (r *Appointments) FindAllInDayFromProvider(ctx context.Context, providerID string, day int, month time.Month, year int) ([]model.Appointment, error) {
	from := time.Date(year, month, day, 0, 0, 0, 0, r.s.loc)
	return r.between(ctx, providerID, from, from.AddDate(0, 0, 1))
}

func (r *Appointments) between(ctx context.Context, providerID string, from, to time.Time) ([]model.Appointment, error) {
	rows, err := r.s.pool.Query(ctx,
		`SELECT id, provider_id, user_id, date, created_at, updated_at
		 FROM appointments
		 WHERE provider_id = $1 AND date >= $2 AND date < $3
		 ORDER BY date`, providerID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(&a.ID, &a.ProviderID, &a.UserID, &a.Date, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		// report in the store's calendar so Day()/Hour() match the query
		a.Date = a.Date.In(r.s.loc)
		out = append(out, a)
	}
	return out, rows.Err()
}
