package models

import (
	"time"

	"github.com/google/uuid"
)

type PointCodeStatus string

const (
	PointCodeStatusNotScanned PointCodeStatus = "NOT_SCANNED"
	PointCodeStatusScanned    PointCodeStatus = "SCANNED"
)

type CodeDisposition string

const (
	CodeDispositionSuccess        CodeDisposition = "SUCCESS"
	CodeDispositionAlreadyScanned CodeDisposition = "ALREADY_SCANNED"
	CodeDispositionNotInSystem    CodeDisposition = "NOT_IN_SYSTEM"
	CodeDispositionExpired        CodeDisposition = "EXPIRED"
	CodeDispositionInvalid        CodeDisposition = "INVALID"
)

type PointCode struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Code       string          `gorm:"uniqueIndex;not null" json:"code"`
	Status     PointCodeStatus `gorm:"type:varchar(20);not null" json:"status"`
	Value      int64           `gorm:"not null" json:"value"`
	ExpiryDate time.Time       `gorm:"not null" json:"expiry_date"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type ScanCodesRequest struct {
	Codes []string `json:"codes" validate:"required,min=1,dive,required"`
}

type ScanResult struct {
	Results        map[string]CodeDisposition `json:"results"`
	SuccessCount   int                        `json:"success_count"`
	AlreadyScanned int                        `json:"already_scanned"`
	NotInSystem    int                        `json:"not_in_system"`
	Expired        int                        `json:"expired"`
	Invalid        int                        `json:"invalid"`
	TotalPoints    int64                      `json:"total_points"`
}

type PointCodeCreateRequest struct {
	Code       string `json:"code" validate:"required,max=50"`
	Value      int64  `json:"value" validate:"required,gt=0"`
	ExpiryDate string `json:"expiry_date" validate:"required,datetime=2006-01-02"`
}
