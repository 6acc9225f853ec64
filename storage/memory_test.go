package storage

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStorage_SeedState(t *testing.T) {
	s := NewMemStorage()

	users, err := s.GetAllUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 10)

	assert.Equal(t, "Rahul", users[0].Name)
	assert.Equal(t, int64(2156), users[0].Points)
	for _, u := range users {
		assert.NotNil(t, u.Avatar)
		assert.False(t, u.CreatedAt.IsZero())
	}
}

func TestMemStorage_CreateUser(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		wantErr  error
	}{
		{name: "valid name", userName: "Zara"},
		{name: "name is trimmed", userName: "  Arjun  "},
		{name: "empty name", userName: "", wantErr: ErrInvalidName},
		{name: "whitespace only name", userName: "   ", wantErr: ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMemStorage()
			user, err := s.CreateUser(ctx, tt.userName, nil)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(11), user.ID) // ten seed users come first
			assert.Equal(t, strings.TrimSpace(tt.userName), user.Name)
			assert.Equal(t, int64(0), user.Points)
			assert.Nil(t, user.Avatar)
		})
	}
}

func TestMemStorage_MonotonicIDs(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage()

	var lastID int64
	for i := 0; i < 5; i++ {
		// Failed creations must not consume ids.
		_, err := s.CreateUser(ctx, "  ", nil)
		require.Error(t, err)

		user, err := s.CreateUser(ctx, "User", nil)
		require.NoError(t, err)
		assert.Greater(t, user.ID, lastID)
		lastID = user.ID
	}
	assert.Equal(t, int64(15), lastID)
}

func TestMemStorage_CreateThenList(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage()

	_, err := s.CreateUser(ctx, "Zara", nil)
	require.NoError(t, err)

	users, err := s.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 11)

	last := users[len(users)-1]
	assert.Equal(t, "Zara", last.Name)
	assert.Equal(t, int64(0), last.Points)
}

func TestMemStorage_RankingOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage()

	// Two zero-point users to exercise the tie-break.
	first, err := s.CreateUser(ctx, "Tied A", nil)
	require.NoError(t, err)
	second, err := s.CreateUser(ctx, "Tied B", nil)
	require.NoError(t, err)

	users, err := s.GetAllUsers(ctx)
	require.NoError(t, err)

	for i := 1; i < len(users); i++ {
		assert.GreaterOrEqual(t, users[i-1].Points, users[i].Points)
	}

	// Ties resolve by ascending id, stable across calls.
	n := len(users)
	assert.Equal(t, first.ID, users[n-2].ID)
	assert.Equal(t, second.ID, users[n-1].ID)

	again, err := s.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, users, again)
}

func TestMemStorage_UpdateUserPoints(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage()

	before, err := s.GetUser(ctx, 1)
	require.NoError(t, err)

	updated, err := s.UpdateUserPoints(ctx, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, before.Points+7, updated.Points)

	_, err = s.UpdateUserPoints(ctx, 999999, 5)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemStorage_PointsMonotonicity(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage()

	prev, err := s.GetUser(ctx, 3)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		updated, err := s.ClaimPoints(ctx, 3, int64(i%10+1))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, updated.Points, prev.Points)
		prev = updated
	}
}

func TestMemStorage_ClaimHistory(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage()

	for i := 0; i < 15; i++ {
		userID := int64(i%3 + 1)
		_, err := s.ClaimPoints(ctx, userID, int64(i%10+1))
		require.NoError(t, err)
	}

	history, err := s.GetClaimHistory(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 10)

	for i, entry := range history {
		if i > 0 {
			assert.False(t, entry.ClaimedAt.After(history[i-1].ClaimedAt),
				"history must be newest first")
		}
		assert.Equal(t, entry.UserID, entry.User.ID)
	}

	// Newest claim heads the list.
	assert.Equal(t, int64(15), history[0].ID)

	// Default limit applies when the caller passes nothing useful.
	history, err = s.GetClaimHistory(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, history, DefaultHistoryLimit)

	// A larger limit returns everything there is.
	history, err = s.GetClaimHistory(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, history, 15)
}

func TestMemStorage_ClaimHistoryHugeLimit(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage()

	for i := 0; i < 5; i++ {
		_, err := s.ClaimPoints(ctx, 1, int64(i+1))
		require.NoError(t, err)
	}

	// An absurd client-supplied limit must not drive the allocation.
	history, err := s.GetClaimHistory(ctx, 1<<59)
	require.NoError(t, err)
	assert.Len(t, history, 5)
}

func TestMemStorage_ClaimUnknownUser(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage()

	_, err := s.ClaimPoints(ctx, 999999, 5)
	assert.ErrorIs(t, err, ErrUserNotFound)

	history, err := s.GetClaimHistory(ctx, 100)
	require.NoError(t, err)
	assert.Empty(t, history, "failed claim must not write a history record")
}

func TestMemStorage_ConcurrentClaims(t *testing.T) {
	ctx := context.Background()
	s := NewMemStorage()

	before, err := s.GetUser(ctx, 1)
	require.NoError(t, err)

	const claims = 100
	var wg sync.WaitGroup
	for i := 0; i < claims; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.ClaimPoints(ctx, 1, 3)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	after, err := s.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, before.Points+3*claims, after.Points, "no claim may be lost")

	history, err := s.GetClaimHistory(ctx, claims*2)
	require.NoError(t, err)
	assert.Len(t, history, claims)
}
