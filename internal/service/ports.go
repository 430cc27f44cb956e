package service

import (
	"context"
	"time"

	"appointment-booking-api/internal/model"
)

// Finders return nil, nil when nothing matches.
type UsersRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAllProviders(ctx context.Context, exceptUserID string) ([]model.User, error)
	Create(ctx context.Context, u *model.User) error
	Save(ctx context.Context, u *model.User) error
}

type AppointmentsRepository interface {
	// FindByDate returns nil, nil when the slot is free.
	FindByDate(ctx context.Context, date time.Time, providerID string) (*model.Appointment, error)
	// Create returns model.ErrSlotTaken when the slot was taken concurrently.
	Create(ctx context.Context, a *model.Appointment) error
	FindAllInMonthFromProvider(ctx context.Context, providerID string, month time.Month, year int) ([]model.Appointment, error)
	FindAllInDayFromProvider(ctx context.Context, providerID string, day int, month time.Month, year int) ([]model.Appointment, error)
}

type NotificationsRepository interface {
	Create(ctx context.Context, recipientID, content string) (*model.Notification, error)
	FindByRecipient(ctx context.Context, recipientID string) ([]model.Notification, error)
}

type RefreshTokensRepository interface {
	Create(ctx context.Context, userID, tokenHash string, expiresAt time.Time) (string, error)
	FindByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	Rotate(ctx context.Context, oldID, userID, newHash string, newExpiry time.Time) error
	RevokeAll(ctx context.Context, userID string) error
}

// CacheProvider stores JSON-encoded values under string keys.
type CacheProvider interface {
	Save(ctx context.Context, key string, value any) error
	// Recover decodes the cached value into dst and reports whether the key was present.
	Recover(ctx context.Context, key string, dst any) (bool, error)
	Invalidate(ctx context.Context, key string) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}

type StorageProvider interface {
	SaveFile(ctx context.Context, file string) (string, error)
	DeleteFile(ctx context.Context, file string) error
}
