package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Scheme struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string         `gorm:"not null" json:"title"`
	ValidFrom time.Time      `gorm:"not null" json:"valid_from"`
	ValidTo   time.Time      `gorm:"not null" json:"valid_to"`
	Perks     string         `gorm:"type:text" json:"perks"`
	Cost      int64          `gorm:"not null" json:"cost"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

type SchemeCreateRequest struct {
	Title     string `json:"title" validate:"required,max=255"`
	ValidFrom string `json:"valid_from" validate:"required,datetime=2006-01-02"`
	ValidTo   string `json:"valid_to" validate:"required,datetime=2006-01-02"`
	Perks     string `json:"perks" validate:"required,max=1000"`
	Cost      int64  `json:"cost" validate:"min=0"`
}

type SchemeUpdateRequest struct {
	Title     *string `json:"title,omitempty" validate:"omitempty,max=255"`
	ValidFrom *string `json:"valid_from,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ValidTo   *string `json:"valid_to,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Perks     *string `json:"perks,omitempty" validate:"omitempty,max=1000"`
	Cost      *int64  `json:"cost,omitempty" validate:"omitempty,min=0"`
}
