package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/perkloop/perkloop-core/internal/app/errors"
	"github.com/perkloop/perkloop-core/internal/app/models"
	"github.com/perkloop/perkloop-core/internal/app/pkg"
	"github.com/perkloop/perkloop-core/internal/infrastructures"
	"gorm.io/gorm"
)

type RedemptionService struct {
	db             *gorm.DB
	validator      *infrastructures.Validator
	schemeService  *SchemeService
	balanceService *BalanceService
}

func NewRedemptionService(db *gorm.DB, validator *infrastructures.Validator, schemeService *SchemeService, balanceService *BalanceService) *RedemptionService {
	return &RedemptionService{
		db:             db,
		validator:      validator,
		schemeService:  schemeService,
		balanceService: balanceService,
	}
}

// Redeem applies a user to a scheme. Preconditions are checked in order and
// the first failure wins; the debit and the redemption row commit together
// or not at all.
func (s *RedemptionService) Redeem(email, schemeId string) (*models.SchemeRedemption, error) {
	scheme, err := s.schemeService.GetScheme(schemeId)
	if err != nil {
		return nil, err
	}

	// One redemption per user, regardless of scheme. See DESIGN.md.
	var existing models.SchemeRedemption
	err = s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, errors.NewConflictError("Scheme already applied")
	}
	if err != gorm.ErrRecordNotFound {
		return nil, errors.NewInternalServerError(err, "Failed to check existing redemption")
	}

	if scheme.ValidTo.Before(pkg.Today()) {
		return nil, errors.NewBadRequestError("Scheme has expired")
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

	if err := s.balanceService.WithTx(tx).Debit(email, scheme.Cost); err != nil {
		tx.Rollback()
		return nil, err
	}

	redemption := &models.SchemeRedemption{
		ID:       uuid.New(),
		SchemeID: scheme.ID,
		Email:    email,
		Status:   models.RedemptionStatusPending,
	}

	if err := tx.Create(redemption).Error; err != nil {
		tx.Rollback()
		// The unique index on email backstops the existence check above when
		// two applications race past it.
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.NewConflictError("Scheme already applied")
		}
		return nil, errors.NewInternalServerError(err, "Failed to create redemption")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to commit redemption")
	}

	return redemption, nil
}

// Decide transitions a pending redemption to approved or rejected. Approval
// debits the scheme cost again at decision time; this mirrors the behavior
// the system has always had (see DESIGN.md before changing it).
func (s *RedemptionService) Decide(req *models.RedemptionDecisionRequest) (*models.SchemeRedemption, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	schemeUUID, err := uuid.Parse(req.SchemeID)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid scheme ID format")
	}

	var redemption models.SchemeRedemption
	err = s.db.Where("scheme_id = ? AND email = ?", schemeUUID, req.Email).First(&redemption).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Redemption not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get redemption")
	}

	if redemption.Status != models.RedemptionStatusPending {
		return nil, errors.NewConflictError("Redemption already decided")
	}

	now := time.Now()

	if req.Decision == models.RedemptionStatusRejected {
		redemption.Status = models.RedemptionStatusRejected
		redemption.DecidedAt = &now
		if err := s.db.Save(&redemption).Error; err != nil {
			return nil, errors.NewInternalServerError(err, "Failed to update redemption")
		}
		return &redemption, nil
	}

	scheme, err := s.schemeService.GetScheme(schemeUUID.String())
	if err != nil {
		return nil, err
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

	if err := s.balanceService.WithTx(tx).Debit(req.Email, scheme.Cost); err != nil {
		tx.Rollback()
		return nil, err
	}

	redemption.Status = models.RedemptionStatusApproved
	redemption.DecidedAt = &now
	if err := tx.Save(&redemption).Error; err != nil {
		tx.Rollback()
		return nil, errors.NewInternalServerError(err, "Failed to update redemption")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to commit decision")
	}

	return &redemption, nil
}

// GetStatusByEmail lists the caller's scheme applications with their state.
func (s *RedemptionService) GetStatusByEmail(email string) ([]models.RedemptionStatusItem, error) {
	var items []models.RedemptionStatusItem
	err := s.db.Model(&models.SchemeRedemption{}).
		Select("schemes.title AS scheme_title, scheme_redemptions.status, scheme_redemptions.applied_at").
		Joins("JOIN schemes ON schemes.id = scheme_redemptions.scheme_id").
		Where("scheme_redemptions.email = ?", email).
		Order("scheme_redemptions.applied_at DESC").
		Scan(&items).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get redemption status")
	}

	return items, nil
}

func (s *RedemptionService) GetPendingRedemptions() ([]models.SchemeRedemption, error) {
	var redemptions []models.SchemeRedemption
	err := s.db.Preload("Scheme").
		Where("status = ?", models.RedemptionStatusPending).
		Order("applied_at ASC").
		Find(&redemptions).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get pending redemptions")
	}

	return redemptions, nil
}
