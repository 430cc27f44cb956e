package service

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"appointment-booking-api/internal/apperr"
	"appointment-booking-api/internal/model"
)

var ErrBadDay = apperr.New("day, month and year must form a valid date")

type DayAvailability struct {
	Day       int  `json:"day"`
	Available bool `json:"available"`
}

type HourAvailability struct {
	Hour      int  `json:"hour"`
	Available bool `json:"available"`
}

func (s *Service) ListProviders(ctx context.Context, userID string) ([]model.User, error) {
	key := providersListKey(userID)
	var users []model.User
	if ok, err := s.cache.Recover(ctx, key, &users); err != nil {
		log.WithError(err).Warnf("cache recover %s", key)
	} else if ok {
		return users, nil
	}

	users, err := s.users.FindAllProviders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find providers: %w", err)
	}
	if err := s.cache.Save(ctx, key, users); err != nil {
		log.WithError(err).Warnf("cache save %s", key)
	}
	return users, nil
}

// ListProviderAppointments returns the provider's appointments on one day, served from cache when possible.
func (s *Service) ListProviderAppointments(ctx context.Context, providerID string, day int, month time.Month, year int) ([]model.Appointment, error) {
	if !validDay(day, month, year) {
		return nil, ErrBadDay
	}
	key := ProviderAppointmentsKey(providerID, year, month, day)

	var apts []model.Appointment
	if ok, err := s.cache.Recover(ctx, key, &apts); err != nil {
		log.WithError(err).Warnf("cache recover %s", key)
	} else if ok {
		return apts, nil
	}

	apts, err := s.appointments.FindAllInDayFromProvider(ctx, providerID, day, month, year)
	if err != nil {
		return nil, fmt.Errorf("find day appointments: %w", err)
	}
	if apts == nil {
		apts = []model.Appointment{}
	}
	if err := s.cache.Save(ctx, key, apts); err != nil {
		log.WithError(err).Warnf("cache save %s", key)
	}
	return apts, nil
}

func (s *Service) ListProviderMonthAvailability(ctx context.Context, providerID string, month time.Month, year int) ([]DayAvailability, error) {
	if !validDay(1, month, year) {
		return nil, ErrBadDay
	}
	apts, err := s.appointments.FindAllInMonthFromProvider(ctx, providerID, month, year)
	if err != nil {
		return nil, fmt.Errorf("find month appointments: %w", err)
	}

	perDay := make(map[int]int)
	for _, a := range apts {
		perDay[a.Date.In(s.loc).Day()]++
	}

	now := s.now()
	days := daysIn(month, year)
	out := make([]DayAvailability, 0, days)
	for d := 1; d <= days; d++ {
		endOfDay := time.Date(year, month, d, 23, 59, 59, 0, s.loc)
		out = append(out, DayAvailability{
			Day:       d,
			Available: endOfDay.After(now) && perDay[d] < lastHour-firstHour,
		})
	}
	return out, nil
}

func (s *Service) ListProviderDayAvailability(ctx context.Context, providerID string, day int, month time.Month, year int) ([]HourAvailability, error) {
	if !validDay(day, month, year) {
		return nil, ErrBadDay
	}
	apts, err := s.appointments.FindAllInDayFromProvider(ctx, providerID, day, month, year)
	if err != nil {
		return nil, fmt.Errorf("find day appointments: %w", err)
	}

	taken := make(map[int]bool, len(apts))
	for _, a := range apts {
		taken[a.Date.In(s.loc).Hour()] = true
	}

	now := s.now()
	out := make([]HourAvailability, 0, lastHour-firstHour)
	for h := firstHour; h < lastHour; h++ {
		slot := time.Date(year, month, day, h, 0, 0, 0, s.loc)
		out = append(out, HourAvailability{
			Hour:      h,
			Available: !taken[h] && slot.After(now),
		})
	}
	return out, nil
}

func (s *Service) ListNotifications(ctx context.Context, userID string) ([]model.Notification, error) {
	ns, err := s.notifications.FindByRecipient(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find notifications: %w", err)
	}
	return ns, nil
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func validDay(day int, month time.Month, year int) bool {
	if month < time.January || month > time.December || year < 1 {
		return false
	}
	return day >= 1 && day <= daysIn(month, year)
}
