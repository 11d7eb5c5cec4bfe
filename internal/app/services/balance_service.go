package services

import (
	"github.com/perkloop/perkloop-core/internal/app/errors"
	"github.com/perkloop/perkloop-core/internal/app/models"
	"gorm.io/gorm"
)

// BalanceService owns the user_points rows. Credit and Debit are single
// conditional statements so concurrent writers to the same row cannot
// interleave a stale read into the update.
type BalanceService struct {
	db *gorm.DB
}

func NewBalanceService(db *gorm.DB) *BalanceService {
	return &BalanceService{
		db: db,
	}
}

// WithTx returns a BalanceService bound to the given transaction handle, so
// credits and debits can join a larger unit of work.
func (s *BalanceService) WithTx(tx *gorm.DB) *BalanceService {
	return &BalanceService{db: tx}
}

// GetPoints returns the current balance. A user with no balance row has
// zero points; that is not an error.
func (s *BalanceService) GetPoints(email string) (int64, error) {
	if email == "" {
		return 0, errors.NewBadRequestError("Email is required")
	}

	var row models.UserPoints
	err := s.db.Where("email = ?", email).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, errors.NewInternalServerError(err, "Failed to get points")
	}

	return row.Points, nil
}

func (s *BalanceService) Credit(email string, amount int64) error {
	if email == "" {
		return errors.NewBadRequestError("Email is required")
	}
	if amount < 0 {
		return errors.NewBadRequestError("Amount must not be negative")
	}

	result := s.db.Model(&models.UserPoints{}).
		Where("email = ?", email).
		Update("points", gorm.Expr("points + ?", amount))
	if result.Error != nil {
		return errors.NewInternalServerError(result.Error, "Failed to credit points")
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("No balance row for user")
	}

	return nil
}

// Debit decrements the balance iff it holds at least amount. The guard and
// the write are one statement, so the balance can never go negative.
func (s *BalanceService) Debit(email string, amount int64) error {
	if email == "" {
		return errors.NewBadRequestError("Email is required")
	}
	if amount < 0 {
		return errors.NewBadRequestError("Amount must not be negative")
	}

	result := s.db.Model(&models.UserPoints{}).
		Where("email = ? AND points >= ?", email, amount).
		Update("points", gorm.Expr("points - ?", amount))
	if result.Error != nil {
		return errors.NewInternalServerError(result.Error, "Failed to debit points")
	}
	if result.RowsAffected == 0 {
		return errors.NewBadRequestError("Insufficient points")
	}

	return nil
}

// CreateRow provisions a zero balance for a newly approved user.
func (s *BalanceService) CreateRow(email string) error {
	if email == "" {
		return errors.NewBadRequestError("Email is required")
	}

	if err := s.db.Create(&models.UserPoints{Email: email, Points: 0}).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to create balance row")
	}

	return nil
}
