package services

import (
	"github.com/google/uuid"
	"github.com/perkloop/perkloop-core/internal/app/errors"
	"github.com/perkloop/perkloop-core/internal/app/models"
	"github.com/perkloop/perkloop-core/internal/infrastructures"
	"gorm.io/gorm"
)

type UserService struct {
	db             *gorm.DB
	validator      *infrastructures.Validator
	balanceService *BalanceService
}

func NewUserService(db *gorm.DB, validator *infrastructures.Validator, balanceService *BalanceService) *UserService {
	return &UserService{
		db:             db,
		validator:      validator,
		balanceService: balanceService,
	}
}

func (s *UserService) GetPendingSignups() ([]models.PendingSignup, error) {
	var signups []models.PendingSignup
	err := s.db.Where("signup_status = ?", models.SignupStatusPending).
		Order("created_at ASC").
		Find(&signups).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get pending signups")
	}

	return signups, nil
}

// DecideSignup approves or rejects a pending signup. Approval creates the
// user row and its zero balance row in the same transaction.
func (s *UserService) DecideSignup(req *models.SignupDecisionRequest) (*models.PendingSignup, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var pending models.PendingSignup
	err := s.db.Where("email = ?", req.Email).First(&pending).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("No pending signup for email")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get pending signup")
	}

	if pending.SignupStatus != models.SignupStatusPending {
		return nil, errors.NewConflictError("Signup already decided")
	}

	if req.Decision == models.SignupStatusRejected {
		pending.SignupStatus = models.SignupStatusRejected
		if err := s.db.Save(&pending).Error; err != nil {
			return nil, errors.NewInternalServerError(err, "Failed to update signup")
		}
		return &pending, nil
	}

	if pending.EmailStatus != models.EmailStatusVerified {
		return nil, errors.NewConflictError("Email not verified yet")
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.NewInternalServerError(tx.Error, "Failed to start transaction")
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	user := &models.User{
		ID:           uuid.New(),
		Name:         pending.Name,
		Email:        pending.Email,
		PasswordHash: pending.PasswordHash,
		Role:         models.UserRoleUser,
	}
	if err := tx.Create(user).Error; err != nil {
		tx.Rollback()
		return nil, errors.NewInternalServerError(err, "Failed to create user")
	}

	if err := s.balanceService.WithTx(tx).CreateRow(pending.Email); err != nil {
		tx.Rollback()
		return nil, err
	}

	pending.SignupStatus = models.SignupStatusApproved
	if err := tx.Save(&pending).Error; err != nil {
		tx.Rollback()
		return nil, errors.NewInternalServerError(err, "Failed to update signup")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to commit decision")
	}

	return &pending, nil
}

func (s *UserService) GetProfile(email string) (*models.UserProfile, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("User not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get user")
	}

	points, err := s.balanceService.GetPoints(email)
	if err != nil {
		return nil, err
	}

	return &models.UserProfile{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Points: points,
	}, nil
}

func (s *UserService) GetTopUsers(limit int) ([]models.UserProfile, error) {
	if limit <= 0 {
		limit = 10
	}

	var profiles []models.UserProfile
	err := s.db.Model(&models.User{}).
		Select("users.id, users.name, users.email, user_points.points").
		Joins("JOIN user_points ON user_points.email = users.email").
		Order("user_points.points DESC").
		Limit(limit).
		Scan(&profiles).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get top users")
	}

	return profiles, nil
}

func (s *UserService) UpdateUser(email string, req *models.UserUpdateRequest) (*models.UserProfile, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("User not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get user")
	}

	if req.Name != nil {
		user.Name = *req.Name
		if err := s.db.Save(&user).Error; err != nil {
			return nil, errors.NewInternalServerError(err, "Failed to update user")
		}
	}

	if req.Points != nil {
		result := s.db.Model(&models.UserPoints{}).
			Where("email = ?", email).
			Update("points", *req.Points)
		if result.Error != nil {
			return nil, errors.NewInternalServerError(result.Error, "Failed to update points")
		}
		if result.RowsAffected == 0 {
			return nil, errors.NewNotFoundError("No balance row for user")
		}
	}

	return s.GetProfile(email)
}

func (s *UserService) DeleteUser(email string) error {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.NewNotFoundError("User not found")
		}
		return errors.NewInternalServerError(err, "Failed to get user")
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return errors.NewInternalServerError(tx.Error, "Failed to start transaction")
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Delete(&user).Error; err != nil {
		tx.Rollback()
		return errors.NewInternalServerError(err, "Failed to delete user")
	}
	if err := tx.Where("email = ?", email).Delete(&models.UserPoints{}).Error; err != nil {
		tx.Rollback()
		return errors.NewInternalServerError(err, "Failed to delete balance row")
	}

	if err := tx.Commit().Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to commit delete")
	}

	return nil
}
