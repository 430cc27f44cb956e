package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"appointment-booking-api/internal/apperr"
	"appointment-booking-api/internal/model"
)

type CreateAppointmentInput struct {
	ProviderID string
	UserID     string
	Date       time.Time
}

var (
	ErrSelfBooking    = apperr.New("You can't create an appointment with yourself")
	ErrPastDate       = apperr.New("You can't create an appointment on a past date")
	ErrOutsideHours   = apperr.New("You can only create appointments between 8am and 5pm")
	ErrAlreadyBooked  = apperr.New("This appointment is already booked")
	ErrMissingBooking = apperr.New("provider_id and date are required")
)

// CreateAppointment books the provider's hour containing in.Date for in.UserID.
func (s *Service) CreateAppointment(ctx context.Context, in CreateAppointmentInput) (*model.Appointment, error) {
	if in.ProviderID == "" || in.Date.IsZero() {
		return nil, ErrMissingBooking
	}
	// read on the service calendar, not the offset the client sent
	date := StartOfHour(in.Date, s.loc)

	if in.UserID == in.ProviderID {
		return nil, ErrSelfBooking
	}
	if date.Before(s.now()) {
		return nil, ErrPastDate
	}
	if h := date.Hour(); h < firstHour || h >= lastHour {
		return nil, ErrOutsideHours
	}

	booked, err := s.appointments.FindByDate(ctx, date, in.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("find appointment by date: %w", err)
	}
	if booked != nil {
		return nil, ErrAlreadyBooked
	}

	apt := &model.Appointment{
		ID:         uuid.New().String(),
		ProviderID: in.ProviderID,
		UserID:     in.UserID,
		Date:       date,
	}
	if err := s.appointments.Create(ctx, apt); err != nil {
		// unique index caught a concurrent booking
		if errors.Is(err, model.ErrSlotTaken) {
			return nil, ErrAlreadyBooked
		}
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	content := fmt.Sprintf("New appointment for %s at %s", date.Format("02/01/2006"), date.Format("15:04"))
	if _, err := s.notifications.Create(ctx, in.ProviderID, content); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	key := ProviderAppointmentsKey(in.ProviderID, date.Year(), date.Month(), date.Day())
	if err := s.cache.Invalidate(ctx, key); err != nil {
		return nil, fmt.Errorf("invalidate %s: %w", key, err)
	}

	log.WithFields(log.Fields{
		"appointment": apt.ID,
		"provider":    apt.ProviderID,
		"date":        apt.Date.Format(time.RFC3339),
	}).Info("appointment created")
	return apt, nil
}
