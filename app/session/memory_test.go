package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)

	sid, err := s.Create(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, sid)

	// fresh session is anonymous
	uid, err := s.UserID(ctx, sid)
	require.NoError(t, err)
	require.Zero(t, uid)

	require.NoError(t, s.SetUser(ctx, sid, 7))
	uid, err = s.UserID(ctx, sid)
	require.NoError(t, err)
	require.Equal(t, uint(7), uid)

	require.NoError(t, s.ClearUser(ctx, sid))
	uid, err = s.UserID(ctx, sid)
	require.NoError(t, err)
	require.Zero(t, uid)

	require.NoError(t, s.Destroy(ctx, sid))
	_, err = s.UserID(ctx, sid)
	require.ErrorIs(t, err, ErrNoSession)
}

func TestMemoryStore_UnknownSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)

	_, err := s.UserID(ctx, "nope")
	require.ErrorIs(t, err, ErrNoSession)
	require.ErrorIs(t, s.SetUser(ctx, "nope", 1), ErrNoSession)
	require.ErrorIs(t, s.PushFlash(ctx, "nope", Flash{}), ErrNoSession)
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)

	now := time.Now()
	s.now = func() time.Time { return now }

	sid, err := s.Create(ctx)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = s.UserID(ctx, sid)
	require.ErrorIs(t, err, ErrNoSession)
}

func TestMemoryStore_FlashesPopOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)

	sid, err := s.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, s.PushFlash(ctx, sid, Flash{Category: "success", Message: "one"}))
	require.NoError(t, s.PushFlash(ctx, sid, Flash{Category: "danger", Message: "two"}))

	flashes, err := s.PopFlashes(ctx, sid)
	require.NoError(t, err)
	require.Len(t, flashes, 2)
	require.Equal(t, "one", flashes[0].Message)
	require.Equal(t, "two", flashes[1].Message)

	flashes, err = s.PopFlashes(ctx, sid)
	require.NoError(t, err)
	require.Empty(t, flashes)
}
