package service

import (
	"context"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"appointment-booking-api/internal/apperr"
	"appointment-booking-api/internal/auth"
	"appointment-booking-api/internal/model"
)

var (
	ErrBadCredentials = apperr.WithStatus("Incorrect email/password combination", http.StatusUnauthorized)
	ErrBadRefresh     = apperr.WithStatus("Invalid refresh token", http.StatusUnauthorized)
)

type Session struct {
	User         *model.User
	Token        string
	RefreshToken string
}

func (s *Service) AuthenticateUser(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	// same message for both cases so emails can't be probed
	if u == nil || !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrBadCredentials
	}

	tok, err := auth.MakeToken(u.ID, s.secret)
	if err != nil {
		return nil, fmt.Errorf("make token: %w", err)
	}
	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if _, err := s.tokens.Create(ctx, u.ID, hash, s.now().Add(auth.RefreshTTL)); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return &Session{User: u, Token: tok, RefreshToken: raw}, nil
}

// RefreshSession exchanges a refresh token for a new access token and a rotated refresh token.
func (s *Service) RefreshSession(ctx context.Context, raw string) (*Session, error) {
	if raw == "" {
		return nil, ErrBadRefresh
	}
	rt, err := s.tokens.FindByHash(ctx, auth.HashRefreshToken(raw))
	if err != nil {
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	if rt == nil || rt.Revoked || s.now().After(rt.ExpiresAt) {
		if rt != nil && rt.Revoked {
			// reuse of a rotated token: assume theft and end every session of the user
			log.WithField("user", rt.UserID).Warn("revoked refresh token presented")
			if err := s.tokens.RevokeAll(ctx, rt.UserID); err != nil {
				return nil, fmt.Errorf("revoke refresh tokens: %w", err)
			}
		}
		return nil, ErrBadRefresh
	}

	u, err := s.users.FindByID(ctx, rt.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, ErrBadRefresh
	}

	tok, err := auth.MakeToken(u.ID, s.secret)
	if err != nil {
		return nil, fmt.Errorf("make token: %w", err)
	}
	newRaw, newHash, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.tokens.Rotate(ctx, rt.ID, u.ID, newHash, s.now().Add(auth.RefreshTTL)); err != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}
	return &Session{User: u, Token: tok, RefreshToken: newRaw}, nil
}
