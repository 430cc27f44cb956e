package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"appointment-booking-api/internal/auth"
	"appointment-booking-api/internal/service"
)

func TestCreateUser(t *testing.T) {
	e := setup(t)

	u := e.addUser(t, "John Doe", "john@example.com", "123456")
	require.NotEmpty(t, u.ID)
	require.NotEqual(t, "123456", u.PasswordHash)
	require.True(t, auth.CheckPassword(u.PasswordHash, "123456"))

	_, err := e.svc.CreateUser(context.Background(), service.CreateUserInput{
		Name: "Other", Email: "john@example.com", Password: "abcdef",
	})
	require.ErrorIs(t, err, service.ErrEmailUsed)
}

func TestUpdateUserAvatar(t *testing.T) {
	e := setup(t)
	u := e.addUser(t, "John Doe", "john@example.com", "123456")
	ctx := context.Background()

	got, err := e.svc.UpdateUserAvatar(ctx, service.UpdateAvatarInput{UserID: u.ID, AvatarFilename: "avatar.jpg"})
	require.NoError(t, err)
	require.Equal(t, "avatar.jpg", got.Avatar)
	require.Empty(t, e.storage.Deleted)

	got, err = e.svc.UpdateUserAvatar(ctx, service.UpdateAvatarInput{UserID: u.ID, AvatarFilename: "avatar2.jpg"})
	require.NoError(t, err)
	require.Equal(t, "avatar2.jpg", got.Avatar)
	require.Equal(t, []string{"avatar.jpg"}, e.storage.Deleted)
	require.False(t, e.storage.Has("avatar.jpg"))
	require.True(t, e.storage.Has("avatar2.jpg"))

	stored, _ := e.users.FindByID(ctx, u.ID)
	require.Equal(t, "avatar2.jpg", stored.Avatar)
}

func TestUpdateUserAvatarUnknownUser(t *testing.T) {
	e := setup(t)

	_, err := e.svc.UpdateUserAvatar(context.Background(), service.UpdateAvatarInput{UserID: "ghost", AvatarFilename: "avatar.jpg"})
	require.ErrorIs(t, err, service.ErrAvatarNoUser)
	require.False(t, e.storage.Has("avatar.jpg"))
}

func TestUpdateUserAvatarStorageFailure(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")

	t.Run("move fails", func(t *testing.T) {
		e := setup(t)
		u := e.addUser(t, "John Doe", "john@example.com", "123456")
		_, err := e.svc.UpdateUserAvatar(ctx, service.UpdateAvatarInput{UserID: u.ID, AvatarFilename: "avatar.jpg"})
		require.NoError(t, err)

		e.storage.FailSave(boom)
		_, err = e.svc.UpdateUserAvatar(ctx, service.UpdateAvatarInput{UserID: u.ID, AvatarFilename: "avatar2.jpg"})
		require.ErrorIs(t, err, boom)

		require.Empty(t, e.storage.Deleted)
		require.True(t, e.storage.Has("avatar.jpg"))
		stored, _ := e.users.FindByID(ctx, u.ID)
		require.Equal(t, "avatar.jpg", stored.Avatar)
	})

	t.Run("delete of previous fails", func(t *testing.T) {
		e := setup(t)
		u := e.addUser(t, "John Doe", "john@example.com", "123456")
		_, err := e.svc.UpdateUserAvatar(ctx, service.UpdateAvatarInput{UserID: u.ID, AvatarFilename: "avatar.jpg"})
		require.NoError(t, err)

		e.storage.FailDelete("avatar.jpg", boom)
		_, err = e.svc.UpdateUserAvatar(ctx, service.UpdateAvatarInput{UserID: u.ID, AvatarFilename: "avatar2.jpg"})
		require.ErrorIs(t, err, boom)

		// the new upload is rolled back, the current avatar stays
		require.False(t, e.storage.Has("avatar2.jpg"))
		require.True(t, e.storage.Has("avatar.jpg"))
		stored, _ := e.users.FindByID(ctx, u.ID)
		require.Equal(t, "avatar.jpg", stored.Avatar)
	})
}

func TestShowProfile(t *testing.T) {
	e := setup(t)
	u := e.addUser(t, "John Doe", "john@example.com", "123456")

	got, err := e.svc.ShowProfile(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, "john@example.com", got.Email)

	_, err = e.svc.ShowProfile(context.Background(), "ghost")
	require.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	e := setup(t)
	u := e.addUser(t, "John Doe", "john@example.com", "123456")

	got, err := e.svc.UpdateProfile(context.Background(), service.UpdateProfileInput{
		UserID: u.ID, Name: "John Trê", Email: "johntre@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "John Trê", got.Name)
	require.Equal(t, "johntre@example.com", got.Email)
	require.True(t, auth.CheckPassword(got.PasswordHash, "123456"), "password untouched")
}

func TestUpdateProfilePassword(t *testing.T) {
	e := setup(t)
	u := e.addUser(t, "John Doe", "john@example.com", "123456")
	e.addUser(t, "Jane", "jane@example.com", "123456")

	base := service.UpdateProfileInput{UserID: u.ID, Name: "John Doe", Email: "john@example.com"}

	tests := []struct {
		name string
		edit func(in *service.UpdateProfileInput)
		want error
	}{
		{"email of another user", func(in *service.UpdateProfileInput) { in.Email = "jane@example.com" }, service.ErrEmailInUse},
		{"missing old password", func(in *service.UpdateProfileInput) {
			in.Password, in.PasswordConfirmation = "654321", "654321"
		}, service.ErrOldPasswordReq},
		{"wrong old password", func(in *service.UpdateProfileInput) {
			in.OldPassword, in.Password, in.PasswordConfirmation = "wrong", "654321", "654321"
		}, service.ErrOldPasswordBad},
		{"confirmation mismatch", func(in *service.UpdateProfileInput) {
			in.OldPassword, in.Password, in.PasswordConfirmation = "123456", "654321", "000000"
		}, service.ErrPasswordConfirm},
		{"missing name", func(in *service.UpdateProfileInput) { in.Name = "" }, service.ErrProfileFields},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.edit(&in)
			_, err := e.svc.UpdateProfile(context.Background(), in)
			require.ErrorIs(t, err, tt.want)
		})
	}

	in := base
	in.OldPassword, in.Password, in.PasswordConfirmation = "123456", "654321", "654321"
	got, err := e.svc.UpdateProfile(context.Background(), in)
	require.NoError(t, err)
	require.True(t, auth.CheckPassword(got.PasswordHash, "654321"))
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	e := setup(t)

	_, err := e.svc.UpdateProfile(context.Background(), service.UpdateProfileInput{
		UserID: "ghost", Name: "X", Email: "x@example.com",
	})
	require.ErrorIs(t, err, service.ErrUserNotFound)
}
