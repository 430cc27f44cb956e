package service_test

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"appointment-booking-api/internal/auth"
	"appointment-booking-api/internal/fakes"
	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/service"
)

// noon on a Sunday; every booking test happens after this
var now = time.Date(2026, time.May, 10, 12, 0, 0, 0, time.UTC)

type env struct {
	svc           *service.Service
	users         *fakes.Users
	appointments  *fakes.Appointments
	notifications *fakes.Notifications
	tokens        *fakes.RefreshTokens
	cache         *fakes.Cache
	storage       *fakes.Storage
}

func setup(t *testing.T) *env {
	t.Helper()
	return setupAt(t, now, time.UTC)
}

// setupAt runs the service with a fixed clock on the calendar of loc.
func setupAt(t *testing.T, clock time.Time, loc *time.Location) *env {
	t.Helper()
	auth.Cost = bcrypt.MinCost
	e := &env{
		users:         fakes.NewUsers(),
		appointments:  fakes.NewAppointments(),
		notifications: fakes.NewNotifications(),
		tokens:        fakes.NewRefreshTokens(),
		cache:         fakes.NewCache(),
		storage:       fakes.NewStorage(),
	}
	e.svc = service.New(service.Deps{
		Users:         e.users,
		Appointments:  e.appointments,
		Notifications: e.notifications,
		RefreshTokens: e.tokens,
		Cache:         e.cache,
		Storage:       e.storage,
		Secret:        "test-secret",
		Now:           func() time.Time { return clock },
		Loc:           loc,
	})
	return e
}

func (e *env) addUser(t *testing.T, name, email, password string) *model.User {
	t.Helper()
	u, err := e.svc.CreateUser(context.Background(), service.CreateUserInput{
		Name: name, Email: email, Password: password,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func at(day, hour, min int) time.Time {
	return time.Date(2026, time.May, day, hour, min, 0, 0, time.UTC)
}
