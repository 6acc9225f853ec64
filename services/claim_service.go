package services

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"points-leaderboard/models"
	"points-leaderboard/storage"
)

// ErrInvalidUserID is returned when a claim targets a non-positive id.
var ErrInvalidUserID = errors.New("invalid user id")

// Award bounds for a single claim, inclusive.
const (
	MinAward = 1
	MaxAward = 10
)

// ClaimResult is the response payload of a successful claim.
type ClaimResult struct {
	User          models.User `json:"user"`
	PointsAwarded int64       `json:"pointsAwarded"`
}

// ClaimService runs the claim flow: validate the target user, draw a random
// award, credit it, and record the claim event.
type ClaimService struct {
	Store storage.Storage

	mu  sync.Mutex
	rng *rand.Rand
}

func NewClaimService(store storage.Storage) *ClaimService {
	return NewClaimServiceWithSource(store, rand.NewSource(time.Now().UnixNano()))
}

// NewClaimServiceWithSource takes an explicit random source so tests can
// pin the draw sequence.
func NewClaimServiceWithSource(store storage.Storage, src rand.Source) *ClaimService {
	return &ClaimService{Store: store, rng: rand.New(src)}
}

// ClaimPoints awards a random 1-10 points to the user and appends the
// matching history record. The two writes go through Storage.ClaimPoints so
// the backend can apply them as one atomic unit; an unknown user fails with
// storage.ErrUserNotFound and writes nothing.
func (s *ClaimService) ClaimPoints(ctx context.Context, userID int64) (*ClaimResult, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}

	awarded := s.drawAward()

	user, err := s.Store.ClaimPoints(ctx, userID, awarded)
	if err != nil {
		return nil, err
	}

	return &ClaimResult{User: *user, PointsAwarded: awarded}, nil
}

func (s *ClaimService) drawAward() int64 {
	// rand.Rand is not safe for concurrent use.
	s.mu.Lock()
	defer s.mu.Unlock()
	return MinAward + s.rng.Int63n(MaxAward-MinAward+1)
}
