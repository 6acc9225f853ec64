package storage

import (
	"context"
	"errors"

	"points-leaderboard/models"
)

var (
	// ErrUserNotFound is returned when an operation references a user id
	// that does not exist in the store.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidName is returned by CreateUser when the name is empty
	// after trimming whitespace.
	ErrInvalidName = errors.New("user name must not be empty")
)

// Storage is the entity store behind the leaderboard. Two interchangeable
// implementations exist: MemStorage (default) and PostgresStorage (selected
// when DATABASE_URL is set).
//
// User ids and claim ids are separate sequences, both starting at 1 and
// strictly increasing within a store.
type Storage interface {
	// GetUser returns the user with the given id, or ErrUserNotFound.
	GetUser(ctx context.Context, id int64) (*models.User, error)

	// GetAllUsers returns every user ordered by points descending.
	// Ties are broken by ascending id so the order is stable between calls.
	// The ranking is computed per call, never cached.
	GetAllUsers(ctx context.Context) ([]models.User, error)

	// CreateUser allocates the next user id and persists a new user with
	// zero points. The name is trimmed; an empty result is ErrInvalidName.
	CreateUser(ctx context.Context, name string, avatar *string) (*models.User, error)

	// UpdateUserPoints atomically adds delta to the user's points and
	// returns the updated record, or ErrUserNotFound. The add must happen
	// at the storage layer, not as a read-modify-write in the caller, so
	// concurrent claims for one user never lose an update.
	UpdateUserPoints(ctx context.Context, id int64, delta int64) (*models.User, error)

	// CreateClaimHistory appends a claim record stamped with the current
	// time. It does not check that userID exists; callers validate first.
	CreateClaimHistory(ctx context.Context, userID, pointsAwarded int64) (*models.ClaimHistory, error)

	// GetClaimHistory returns the most recent claims, newest first, each
	// joined with its owning user. Claims whose user no longer exists are
	// dropped from the result.
	GetClaimHistory(ctx context.Context, limit int) ([]models.ClaimHistoryEntry, error)

	// ClaimPoints credits pointsAwarded to the user and appends the
	// matching claim record as one atomic unit. Returns ErrUserNotFound
	// without writing anything when the user does not exist.
	ClaimPoints(ctx context.Context, userID, pointsAwarded int64) (*models.User, error)
}

// DefaultHistoryLimit is applied when GetClaimHistory is called with a
// non-positive limit.
const DefaultHistoryLimit = 10
