package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"points-leaderboard/models"
)

// MemStorage keeps both collections in process memory. It is the default
// backend and the fallback when the database is unreachable at startup.
type MemStorage struct {
	mu          sync.RWMutex
	users       map[int64]models.User
	claims      map[int64]models.ClaimHistory
	nextUserID  int64
	nextClaimID int64
}

// NewMemStorage returns an in-memory store pre-populated with the ten
// seed users.
func NewMemStorage() *MemStorage {
	s := &MemStorage{
		users:       make(map[int64]models.User),
		claims:      make(map[int64]models.ClaimHistory),
		nextUserID:  1,
		nextClaimID: 1,
	}

	now := time.Now()
	for _, seed := range seedUsers {
		avatar := seed.Avatar
		s.users[s.nextUserID] = models.User{
			ID:        s.nextUserID,
			Name:      seed.Name,
			Avatar:    &avatar,
			Points:    seed.Points,
			CreatedAt: now,
		}
		s.nextUserID++
	}
	return s
}

func (s *MemStorage) GetUser(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (s *MemStorage) GetAllUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	s.mu.RUnlock()

	sort.Slice(users, func(i, j int) bool {
		if users[i].Points != users[j].Points {
			return users[i].Points > users[j].Points
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}

func (s *MemStorage) CreateUser(_ context.Context, name string, avatar *string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := models.User{
		ID:        s.nextUserID,
		Name:      name,
		Avatar:    avatar,
		Points:    0,
		CreatedAt: time.Now(),
	}
	s.nextUserID++
	s.users[user.ID] = user
	return &user, nil
}

func (s *MemStorage) UpdateUserPoints(_ context.Context, id int64, delta int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addPointsLocked(id, delta)
}

func (s *MemStorage) addPointsLocked(id int64, delta int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	user.Points += delta
	s.users[id] = user
	return &user, nil
}

func (s *MemStorage) CreateClaimHistory(_ context.Context, userID, pointsAwarded int64) (*models.ClaimHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	claim := s.appendClaimLocked(userID, pointsAwarded)
	return &claim, nil
}

func (s *MemStorage) appendClaimLocked(userID, pointsAwarded int64) models.ClaimHistory {
	claim := models.ClaimHistory{
		ID:            s.nextClaimID,
		UserID:        userID,
		PointsAwarded: pointsAwarded,
		ClaimedAt:     time.Now(),
	}
	s.nextClaimID++
	s.claims[claim.ID] = claim
	return claim
}

func (s *MemStorage) GetClaimHistory(_ context.Context, limit int) ([]models.ClaimHistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	claims := make([]models.ClaimHistory, 0, len(s.claims))
	for _, c := range s.claims {
		claims = append(claims, c)
	}
	// Newest first; ids break ties since claims can share a timestamp.
	sort.Slice(claims, func(i, j int) bool {
		if !claims[i].ClaimedAt.Equal(claims[j].ClaimedAt) {
			return claims[i].ClaimedAt.After(claims[j].ClaimedAt)
		}
		return claims[i].ID > claims[j].ID
	})

	// limit comes from the client; never allocate more than we can fill.
	capacity := limit
	if capacity > len(claims) {
		capacity = len(claims)
	}
	entries := make([]models.ClaimHistoryEntry, 0, capacity)
	for _, claim := range claims {
		if len(entries) == limit {
			break
		}
		user, ok := s.users[claim.UserID]
		if !ok {
			// Orphaned claim (owner deleted out of band): drop it,
			// matching the SQL join in the Postgres backend.
			continue
		}
		entries = append(entries, models.ClaimHistoryEntry{ClaimHistory: claim, User: user})
	}
	return entries, nil
}

func (s *MemStorage) ClaimPoints(_ context.Context, userID, pointsAwarded int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.addPointsLocked(userID, pointsAwarded)
	if err != nil {
		return nil, err
	}
	s.appendClaimLocked(userID, pointsAwarded)
	return user, nil
}
