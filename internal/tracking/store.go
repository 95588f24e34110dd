package tracking

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is everything the evaluator needs from persistence. The read side
// (GetLocation, ListAlerts) is also what dashboard views and the alert
// exporter consume.
type Store interface {
	// FindUser resolves a user by id. Returns ErrNotFound for unknown ids.
	FindUser(ctx context.Context, id int64) (User, error)

	// GetLocation returns the user's last known position, or nil when no
	// report has ever been accepted for them.
	GetLocation(ctx context.Context, userID int64) (*Location, error)

	// SaveReport replaces the user's location row and, when alert is
	// non-nil, appends the alert — both inside a single transaction, so a
	// failure between the two writes cannot drop a detected transition.
	SaveReport(ctx context.Context, loc Location, alert *Alert) error

	// ListAlerts returns a user's alerts, newest first, optionally
	// restricted to the given kinds.
	ListAlerts(ctx context.Context, userID int64, kinds []string) ([]Alert, error)
}

// GormStore is the Postgres-backed Store used in production.
type GormStore struct {
	DB *gorm.DB
}

func (s *GormStore) FindUser(ctx context.Context, id int64) (User, error) {
	var user User
	err := s.DB.WithContext(ctx).First(&user, "user_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("find user %d: %w", id, err)
	}
	return user, nil
}

func (s *GormStore) GetLocation(ctx context.Context, userID int64) (*Location, error) {
	var loc Location
	err := s.DB.WithContext(ctx).First(&loc, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get location for user %d: %w", userID, err)
	}
	return &loc, nil
}

func (s *GormStore) SaveReport(ctx context.Context, loc Location, alert *Alert) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"latitude", "longitude", "inside_zone", "updated_at",
			}),
		}).Create(&loc).Error
		if err != nil {
			return err
		}
		if alert != nil {
			if err := tx.Create(alert).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save report for user %d: %w", loc.UserID, err)
	}
	return nil
}

func (s *GormStore) ListAlerts(ctx context.Context, userID int64, kinds []string) ([]Alert, error) {
	var alerts []Alert
	var err error
	if len(kinds) == 0 {
		err = s.DB.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("occurred_at DESC").
			Find(&alerts).Error
	} else {
		err = s.DB.WithContext(ctx).Raw(`
			SELECT id, user_id, kind, latitude, longitude, occurred_at
			FROM tracking.alerts
			WHERE user_id = ? AND kind = ANY(?)
			ORDER BY occurred_at DESC
		`, userID, pq.Array(kinds)).Scan(&alerts).Error
	}
	if err != nil {
		return nil, fmt.Errorf("list alerts for user %d: %w", userID, err)
	}
	return alerts, nil
}
