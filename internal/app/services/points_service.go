package services

import (
	"strings"

	"github.com/google/uuid"
	"github.com/perkloop/perkloop-core/internal/app/errors"
	"github.com/perkloop/perkloop-core/internal/app/models"
	"github.com/perkloop/perkloop-core/internal/app/pkg"
	"github.com/perkloop/perkloop-core/internal/infrastructures"
	"gorm.io/gorm"
)

type PointsService struct {
	db             *gorm.DB
	validator      *infrastructures.Validator
	balanceService *BalanceService
}

func NewPointsService(db *gorm.DB, validator *infrastructures.Validator, balanceService *BalanceService) *PointsService {
	return &PointsService{
		db:             db,
		validator:      validator,
		balanceService: balanceService,
	}
}

// ScanCodes classifies every submitted code, marks the valid ones scanned
// and credits their summed value to the user, all in one transaction.
//
// The status flip is guarded on status = NOT_SCANNED, so when two requests
// race on the same code only one sees an affected row; the loser is
// reclassified as ALREADY_SCANNED.
func (s *PointsService) ScanCodes(email string, req *models.ScanCodesRequest) (*models.ScanResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	for _, code := range req.Codes {
		if strings.TrimSpace(code) == "" {
			return nil, errors.NewBadRequestError("Codes must be non-empty strings")
		}
	}

	// Deduplicate so a code submitted twice is classified once and its value
	// counted once.
	seen := make(map[string]struct{}, len(req.Codes))
	codes := make([]string, 0, len(req.Codes))
	for _, code := range req.Codes {
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
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

	var records []models.PointCode
	if err := tx.Where("code IN ?", codes).Find(&records).Error; err != nil {
		tx.Rollback()
		return nil, errors.NewInternalServerError(err, "Failed to look up codes")
	}

	recordsByCode := make(map[string]models.PointCode, len(records))
	for _, record := range records {
		recordsByCode[record.Code] = record
	}

	result := &models.ScanResult{
		Results: make(map[string]models.CodeDisposition, len(codes)),
	}
	today := pkg.Today()

	for _, code := range codes {
		record, found := recordsByCode[code]

		var disposition models.CodeDisposition
		switch {
		case !found:
			disposition = models.CodeDispositionNotInSystem
		case record.Status == models.PointCodeStatusScanned:
			disposition = models.CodeDispositionAlreadyScanned
		case record.ExpiryDate.Before(today):
			disposition = models.CodeDispositionExpired
		case record.Status == models.PointCodeStatusNotScanned:
			flip := tx.Model(&models.PointCode{}).
				Where("code = ? AND status = ?", code, models.PointCodeStatusNotScanned).
				Update("status", models.PointCodeStatusScanned)
			if flip.Error != nil {
				tx.Rollback()
				return nil, errors.NewInternalServerError(flip.Error, "Failed to mark code scanned")
			}
			if flip.RowsAffected == 0 {
				disposition = models.CodeDispositionAlreadyScanned
			} else {
				disposition = models.CodeDispositionSuccess
				result.TotalPoints += record.Value
			}
		default:
			disposition = models.CodeDispositionInvalid
		}

		result.Results[code] = disposition
		switch disposition {
		case models.CodeDispositionSuccess:
			result.SuccessCount++
		case models.CodeDispositionAlreadyScanned:
			result.AlreadyScanned++
		case models.CodeDispositionNotInSystem:
			result.NotInSystem++
		case models.CodeDispositionExpired:
			result.Expired++
		case models.CodeDispositionInvalid:
			result.Invalid++
		}
	}

	if result.TotalPoints > 0 {
		if err := s.balanceService.WithTx(tx).Credit(email, result.TotalPoints); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to commit scan")
	}

	return result, nil
}

// RedeemPoints burns raw points off the user's balance.
func (s *PointsService) RedeemPoints(email string, req *models.RedeemPointsRequest) (*models.RedeemPointsResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if err := s.balanceService.Debit(email, req.Points); err != nil {
		return nil, err
	}

	remaining, err := s.balanceService.GetPoints(email)
	if err != nil {
		return nil, err
	}

	return &models.RedeemPointsResponse{
		PointsRedeemed:  req.Points,
		RemainingPoints: remaining,
	}, nil
}

// CreateCode provisions a new redeemable code.
func (s *PointsService) CreateCode(req *models.PointCodeCreateRequest) (*models.PointCode, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	expiry, err := pkg.ParseDate(req.ExpiryDate)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid expiry date format")
	}

	var existing models.PointCode
	err = s.db.Where("code = ?", req.Code).First(&existing).Error
	if err == nil {
		return nil, errors.NewConflictError("Code already exists")
	}
	if err != gorm.ErrRecordNotFound {
		return nil, errors.NewInternalServerError(err, "Failed to check code")
	}

	pointCode := &models.PointCode{
		ID:         uuid.New(),
		Code:       req.Code,
		Status:     models.PointCodeStatusNotScanned,
		Value:      req.Value,
		ExpiryDate: expiry,
	}

	if err := s.db.Create(pointCode).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create code")
	}

	return pointCode, nil
}
