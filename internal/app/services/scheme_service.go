package services

import (
	"github.com/google/uuid"
	"github.com/perkloop/perkloop-core/internal/app/errors"
	"github.com/perkloop/perkloop-core/internal/app/models"
	"github.com/perkloop/perkloop-core/internal/app/pkg"
	"github.com/perkloop/perkloop-core/internal/infrastructures"
	"gorm.io/gorm"
)

type SchemeService struct {
	db        *gorm.DB
	validator *infrastructures.Validator
}

func NewSchemeService(db *gorm.DB, validator *infrastructures.Validator) *SchemeService {
	return &SchemeService{
		db:        db,
		validator: validator,
	}
}

func (s *SchemeService) CreateScheme(req *models.SchemeCreateRequest) (*models.Scheme, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	validFrom, err := pkg.ParseDate(req.ValidFrom)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid valid_from date format")
	}
	validTo, err := pkg.ParseDate(req.ValidTo)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid valid_to date format")
	}
	if validFrom.After(validTo) {
		return nil, errors.NewBadRequestError("valid_from must not be after valid_to")
	}

	scheme := &models.Scheme{
		ID:        uuid.New(),
		Title:     req.Title,
		ValidFrom: validFrom,
		ValidTo:   validTo,
		Perks:     req.Perks,
		Cost:      req.Cost,
	}

	if err := s.db.Create(scheme).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create scheme")
	}

	return scheme, nil
}

func (s *SchemeService) GetScheme(schemeId string) (*models.Scheme, error) {
	schemeUUID, err := uuid.Parse(schemeId)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid scheme ID format")
	}

	var scheme models.Scheme
	err = s.db.Where("id = ?", schemeUUID).First(&scheme).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Scheme not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get scheme")
	}

	return &scheme, nil
}

func (s *SchemeService) GetSchemes(pagination *models.PaginationRequest) (*models.Pagination[[]models.Scheme], error) {
	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}

	offset := (pagination.Page - 1) * pagination.Limit

	var totalItems int64
	if err := s.db.Model(&models.Scheme{}).Count(&totalItems).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count schemes")
	}

	var schemes []models.Scheme
	err := s.db.Order("valid_to DESC").Limit(pagination.Limit).Offset(offset).Find(&schemes).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get schemes")
	}

	totalPages := int((totalItems + int64(pagination.Limit) - 1) / int64(pagination.Limit))

	return &models.Pagination[[]models.Scheme]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    pagination.Page < totalPages,
		HasPrev:    pagination.Page > 1,
		Items:      schemes,
	}, nil
}

func (s *SchemeService) UpdateScheme(schemeId string, req *models.SchemeUpdateRequest) (*models.Scheme, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	scheme, err := s.GetScheme(schemeId)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		scheme.Title = *req.Title
	}
	if req.ValidFrom != nil {
		validFrom, err := pkg.ParseDate(*req.ValidFrom)
		if err != nil {
			return nil, errors.NewBadRequestError("Invalid valid_from date format")
		}
		scheme.ValidFrom = validFrom
	}
	if req.ValidTo != nil {
		validTo, err := pkg.ParseDate(*req.ValidTo)
		if err != nil {
			return nil, errors.NewBadRequestError("Invalid valid_to date format")
		}
		scheme.ValidTo = validTo
	}
	if scheme.ValidFrom.After(scheme.ValidTo) {
		return nil, errors.NewBadRequestError("valid_from must not be after valid_to")
	}
	if req.Perks != nil {
		scheme.Perks = *req.Perks
	}
	if req.Cost != nil {
		scheme.Cost = *req.Cost
	}

	if err := s.db.Save(scheme).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to update scheme")
	}

	return scheme, nil
}

func (s *SchemeService) DeleteScheme(schemeId string) error {
	scheme, err := s.GetScheme(schemeId)
	if err != nil {
		return err
	}

	if err := s.db.Delete(scheme).Error; err != nil {
		return errors.NewInternalServerError(err, "Failed to delete scheme")
	}

	return nil
}
