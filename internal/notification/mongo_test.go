package notification_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"appointment-booking-api/internal/notification"
)

func TestCreateAndFind(t *testing.T) {
	_ = godotenv.Load("../../.env")
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	ctx := context.Background()
	m, err := notification.Connect(ctx, uri, "booking_test")
	require.NoError(t, err)
	t.Cleanup(func() { m.Close(context.Background()) })

	recipient := uuid.New().String()
	_, err = m.Create(ctx, recipient, "first")
	require.NoError(t, err)
	_, err = m.Create(ctx, recipient, "second")
	require.NoError(t, err)

	ns, err := m.FindByRecipient(ctx, recipient)
	require.NoError(t, err)
	require.Len(t, ns, 2)
	require.Equal(t, "second", ns[0].Content)
	require.False(t, ns[0].Read)

	none, err := m.FindByRecipient(ctx, uuid.New().String())
	require.NoError(t, err)
	require.Empty(t, none)
}
