package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"appointment-booking-api/internal/auth"
	"appointment-booking-api/internal/service"
)

func TestAuthenticateUser(t *testing.T) {
	e := setup(t)
	u := e.addUser(t, "John Doe", "john@example.com", "123456")

	sess, err := e.svc.AuthenticateUser(context.Background(), "john@example.com", "123456")
	require.NoError(t, err)
	require.Equal(t, u.ID, sess.User.ID)
	require.NotEmpty(t, sess.RefreshToken)

	claims, err := auth.ParseToken(sess.Token, "test-secret")
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.Subject)

	rt, _ := e.tokens.FindByHash(context.Background(), auth.HashRefreshToken(sess.RefreshToken))
	require.NotNil(t, rt)
	require.Equal(t, now.Add(auth.RefreshTTL), rt.ExpiresAt)
}

func TestAuthenticateUserBadCredentials(t *testing.T) {
	e := setup(t)
	e.addUser(t, "John Doe", "john@example.com", "123456")

	_, err := e.svc.AuthenticateUser(context.Background(), "john@example.com", "wrong")
	require.ErrorIs(t, err, service.ErrBadCredentials)

	_, err = e.svc.AuthenticateUser(context.Background(), "nobody@example.com", "123456")
	require.ErrorIs(t, err, service.ErrBadCredentials)
}

func TestRefreshSessionRotates(t *testing.T) {
	e := setup(t)
	e.addUser(t, "John Doe", "john@example.com", "123456")
	ctx := context.Background()

	sess, err := e.svc.AuthenticateUser(ctx, "john@example.com", "123456")
	require.NoError(t, err)

	next, err := e.svc.RefreshSession(ctx, sess.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, sess.RefreshToken, next.RefreshToken)

	third, err := e.svc.RefreshSession(ctx, next.RefreshToken)
	require.NoError(t, err)

	// replaying a rotated token revokes the whole chain
	_, err = e.svc.RefreshSession(ctx, sess.RefreshToken)
	require.ErrorIs(t, err, service.ErrBadRefresh)

	_, err = e.svc.RefreshSession(ctx, third.RefreshToken)
	require.ErrorIs(t, err, service.ErrBadRefresh)
}

func TestRefreshSessionRejects(t *testing.T) {
	e := setup(t)
	u := e.addUser(t, "John Doe", "john@example.com", "123456")
	ctx := context.Background()

	raw, hash, err := auth.GenerateRefreshToken()
	require.NoError(t, err)
	_, err = e.tokens.Create(ctx, u.ID, hash, now.Add(-time.Minute))
	require.NoError(t, err)

	_, err = e.svc.RefreshSession(ctx, raw)
	require.ErrorIs(t, err, service.ErrBadRefresh, "expired")

	_, err = e.svc.RefreshSession(ctx, "unknown")
	require.ErrorIs(t, err, service.ErrBadRefresh)

	_, err = e.svc.RefreshSession(ctx, "")
	require.ErrorIs(t, err, service.ErrBadRefresh)
}
