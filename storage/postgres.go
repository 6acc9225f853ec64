package storage

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"points-leaderboard/models"
)

// PostgresStorage persists both collections through GORM. Several service
// instances may share one database, so "next id" is always derived from
// MAX(id) inside the writing transaction rather than an in-process counter.
type PostgresStorage struct {
	db *gorm.DB
}

func NewPostgresStorage(db *gorm.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

// Migrate creates or updates the users and claim_histories tables.
func (s *PostgresStorage) Migrate() error {
	return s.db.AutoMigrate(&models.User{}, &models.ClaimHistory{})
}

// SeedIfEmpty installs the ten starter users when the users table has no
// rows. Existing data is left untouched.
func (s *PostgresStorage) SeedIfEmpty(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now()
		for i, seed := range seedUsers {
			avatar := seed.Avatar
			user := models.User{
				ID:        int64(i + 1),
				Name:      seed.Name,
				Avatar:    &avatar,
				Points:    seed.Points,
				CreatedAt: now,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
		}
		log.Printf("✅ Seeded %d starter users into empty database", len(seedUsers))
		return nil
	})
}

func (s *PostgresStorage) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *PostgresStorage) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Order("points DESC, id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *PostgresStorage) CreateUser(ctx context.Context, name string, avatar *string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, &models.User{})
		if err != nil {
			return err
		}
		user = models.User{
			ID:        id,
			Name:      name,
			Avatar:    avatar,
			Points:    0,
			CreatedAt: time.Now(),
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *PostgresStorage) UpdateUserPoints(ctx context.Context, id int64, delta int64) (*models.User, error) {
	var user *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updated, err := addPoints(tx, id, delta)
		if err != nil {
			return err
		}
		user = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *PostgresStorage) CreateClaimHistory(ctx context.Context, userID, pointsAwarded int64) (*models.ClaimHistory, error) {
	var claim *models.ClaimHistory
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := appendClaim(tx, userID, pointsAwarded)
		if err != nil {
			return err
		}
		claim = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claim, nil
}

// claimRow flattens the claim/user join for scanning.
type claimRow struct {
	ID            int64
	UserID        int64
	PointsAwarded int64
	ClaimedAt     time.Time
	UserName      string
	UserAvatar    *string
	UserPoints    int64
	UserCreatedAt time.Time
}

func (s *PostgresStorage) GetClaimHistory(ctx context.Context, limit int) ([]models.ClaimHistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	// INNER JOIN drops claims whose user row is gone, same policy as the
	// in-memory backend.
	var rows []claimRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT ch.id, ch.user_id, ch.points_awarded, ch.claimed_at,
		       u.name AS user_name, u.avatar AS user_avatar,
		       u.points AS user_points, u.created_at AS user_created_at
		FROM claim_histories ch
		INNER JOIN users u ON u.id = ch.user_id
		ORDER BY ch.claimed_at DESC, ch.id DESC
		LIMIT ?
	`, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]models.ClaimHistoryEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, models.ClaimHistoryEntry{
			ClaimHistory: models.ClaimHistory{
				ID:            r.ID,
				UserID:        r.UserID,
				PointsAwarded: r.PointsAwarded,
				ClaimedAt:     r.ClaimedAt,
			},
			User: models.User{
				ID:        r.UserID,
				Name:      r.UserName,
				Avatar:    r.UserAvatar,
				Points:    r.UserPoints,
				CreatedAt: r.UserCreatedAt,
			},
		})
	}
	return entries, nil
}

func (s *PostgresStorage) ClaimPoints(ctx context.Context, userID, pointsAwarded int64) (*models.User, error) {
	var user *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updated, err := addPoints(tx, userID, pointsAwarded)
		if err != nil {
			return err
		}
		if _, err := appendClaim(tx, userID, pointsAwarded); err != nil {
			return err
		}
		user = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// nextID allocates the next id for a collection as MAX(id)+1. Callers must
// hold a transaction so the read and the insert are one unit.
func nextID(tx *gorm.DB, model interface{}) (int64, error) {
	var maxID int64
	err := tx.Model(model).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error
	if err != nil {
		return 0, err
	}
	return maxID + 1, nil
}

// addPoints performs the atomic in-database increment required to keep
// concurrent claims for one user from losing updates.
func addPoints(tx *gorm.DB, id int64, delta int64) (*models.User, error) {
	res := tx.Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("points", gorm.Expr("points + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	var user models.User
	if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func appendClaim(tx *gorm.DB, userID, pointsAwarded int64) (*models.ClaimHistory, error) {
	id, err := nextID(tx, &models.ClaimHistory{})
	if err != nil {
		return nil, err
	}
	claim := models.ClaimHistory{
		ID:            id,
		UserID:        userID,
		PointsAwarded: pointsAwarded,
		ClaimedAt:     time.Now(),
	}
	if err := tx.Create(&claim).Error; err != nil {
		return nil, err
	}
	return &claim, nil
}
