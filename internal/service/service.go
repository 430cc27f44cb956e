// Package service holds the booking application's use cases.
package service

import (
	"fmt"
	"time"
)

const (
	firstHour = 8
	// exclusive
	lastHour = 17
)

type Deps struct {
	Users         UsersRepository
	Appointments  AppointmentsRepository
	Notifications NotificationsRepository
	RefreshTokens RefreshTokensRepository
	Cache         CacheProvider
	Storage       StorageProvider
	Secret        string
	// Now defaults to time.Now.
	Now func() time.Time
	// Loc is the calendar that business hours, day listings and cache keys
	// are read in. It must match the store's location. Defaults to time.Local.
	Loc *time.Location
}

type Service struct {
	users         UsersRepository
	appointments  AppointmentsRepository
	notifications NotificationsRepository
	tokens        RefreshTokensRepository
	cache         CacheProvider
	storage       StorageProvider
	secret        string
	now           func() time.Time
	loc           *time.Location
}

func New(d Deps) *Service {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	loc := d.Loc
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		users:         d.Users,
		appointments:  d.Appointments,
		notifications: d.Notifications,
		tokens:        d.RefreshTokens,
		cache:         d.Cache,
		storage:       d.Storage,
		secret:        d.Secret,
		now:           now,
		loc:           loc,
	}
}

// StartOfHour drops minutes, seconds and nanoseconds of t as read in loc.
func StartOfHour(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, loc)
}

// ProviderAppointmentsKey names the cached appointment listing of a provider for one day.
func ProviderAppointmentsKey(providerID string, year int, month time.Month, day int) string {
	return fmt.Sprintf("provider-appointments:%s:%d-%d-%d", providerID, year, int(month), day)
}

func providersListKey(userID string) string {
	return "providers-list:" + userID
}
