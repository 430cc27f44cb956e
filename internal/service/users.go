package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"appointment-booking-api/internal/apperr"
	"appointment-booking-api/internal/auth"
	"appointment-booking-api/internal/model"
)

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

var (
	ErrEmailUsed       = apperr.New("Email address already used")
	ErrUserFields      = apperr.New("name, email and password are required")
	ErrUserNotFound    = apperr.New("User not found")
	ErrAvatarNoUser    = apperr.WithStatus("Only authenticated users can change avatar", http.StatusUnauthorized)
	ErrEmailInUse      = apperr.New("E-mail already in use")
	ErrOldPasswordReq  = apperr.New("You need to inform the old password to set a new password")
	ErrOldPasswordBad  = apperr.New("Old password does not match")
	ErrPasswordConfirm = apperr.New("Password confirmation does not match")
	ErrProfileFields   = apperr.New("name and email are required")
)

func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error) {
	email := strings.TrimSpace(in.Email)
	if in.Name == "" || email == "" || in.Password == "" {
		return nil, ErrUserFields
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailUsed
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &model.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	// new user shows up in everyone's provider list
	if err := s.cache.InvalidatePrefix(ctx, "providers-list"); err != nil {
		return nil, fmt.Errorf("invalidate providers list: %w", err)
	}
	log.WithField("user", u.ID).Info("user created")
	return u, nil
}

func (s *Service) ShowProfile(ctx context.Context, userID string) (*model.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

type UpdateProfileInput struct {
	UserID               string
	Name                 string
	Email                string
	OldPassword          string
	Password             string
	PasswordConfirmation string
}

func (s *Service) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*model.User, error) {
	if in.Name == "" || in.Email == "" {
		return nil, ErrProfileFields
	}
	u, err := s.ShowProfile(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if owner != nil && owner.ID != u.ID {
		return nil, ErrEmailInUse
	}

	u.Name = in.Name
	u.Email = in.Email

	if in.Password != "" {
		if in.OldPassword == "" {
			return nil, ErrOldPasswordReq
		}
		if !auth.CheckPassword(u.PasswordHash, in.OldPassword) {
			return nil, ErrOldPasswordBad
		}
		if in.Password != in.PasswordConfirmation {
			return nil, ErrPasswordConfirm
		}
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}

	if err := s.users.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return u, nil
}

type UpdateAvatarInput struct {
	UserID         string
	AvatarFilename string
}

// UpdateUserAvatar replaces the user's avatar. The new file is moved into
// place before the previous one is deleted and the user record updated, so a
// failed move or delete leaves the current avatar intact.
func (s *Service) UpdateUserAvatar(ctx context.Context, in UpdateAvatarInput) (*model.User, error) {
	u, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, ErrAvatarNoUser
	}

	name, err := s.storage.SaveFile(ctx, in.AvatarFilename)
	if err != nil {
		return nil, fmt.Errorf("save avatar: %w", err)
	}

	if u.Avatar != "" && u.Avatar != name {
		if err := s.storage.DeleteFile(ctx, u.Avatar); err != nil {
			if rerr := s.storage.DeleteFile(ctx, name); rerr != nil {
				log.WithError(rerr).Warnf("remove orphan avatar %s", name)
			}
			return nil, fmt.Errorf("delete avatar %s: %w", u.Avatar, err)
		}
	}
	u.Avatar = name

	if err := s.users.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	log.WithFields(log.Fields{"user": u.ID, "avatar": name}).Info("avatar updated")
	return u, nil
}
