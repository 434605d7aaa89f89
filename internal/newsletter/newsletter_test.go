package newsletter

import (
	"context"
	"testing"
	"time"

	"github.com/example/watchhaven/internal/infrastructure/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(kv.NewMemoryStore(), 0)
}

func TestService_PopupShowsOnce(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	popup, err := svc.Check(ctx, "visitor-1")
	require.NoError(t, err)
	assert.True(t, popup.Show)
	assert.Equal(t, int64(5000), popup.DelayMs)

	// checking again before dismissal still shows it
	popup, err = svc.Check(ctx, "visitor-1")
	require.NoError(t, err)
	assert.True(t, popup.Show)

	require.NoError(t, svc.Dismiss(ctx, "visitor-1"))

	popup, err = svc.Check(ctx, "visitor-1")
	require.NoError(t, err)
	assert.False(t, popup.Show)
	assert.Zero(t, popup.DelayMs)

	popup, err = svc.Check(ctx, "visitor-2")
	require.NoError(t, err)
	assert.True(t, popup.Show)
}

func TestService_CustomDelay(t *testing.T) {
	svc := NewService(kv.NewMemoryStore(), 1500*time.Millisecond)

	popup, err := svc.Check(context.Background(), "v")

	require.NoError(t, err)
	assert.Equal(t, int64(1500), popup.DelayMs)
}

func TestService_Subscribe(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	added, err := svc.Subscribe(ctx, "visitor-1", "  Collector@Example.com ")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = svc.Subscribe(ctx, "", "collector@example.com")
	require.NoError(t, err)
	assert.False(t, added)

	subs, err := svc.Subscribers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"collector@example.com"}, subs)

	popup, err := svc.Check(ctx, "visitor-1")
	require.NoError(t, err)
	assert.False(t, popup.Show)
}

func TestService_Subscribe_InvalidEmail(t *testing.T) {
	tests := []string{"", "not-an-email", "Name <a@b.com>", "a@"}

	for _, email := range tests {
		t.Run(email, func(t *testing.T) {
			_, err := newTestService().Subscribe(context.Background(), "v", email)
			assert.ErrorIs(t, err, ErrInvalidEmail)
		})
	}
}
