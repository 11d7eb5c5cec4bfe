package models

import (
	"time"

	"github.com/google/uuid"
)

type RedemptionStatus string

const (
	RedemptionStatusPending  RedemptionStatus = "PENDING"
	RedemptionStatusApproved RedemptionStatus = "APPROVED"
	RedemptionStatusRejected RedemptionStatus = "REJECTED"
)

// SchemeRedemption records one user's application for a scheme.
type SchemeRedemption struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	SchemeID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"scheme_id"`
	Email     string           `gorm:"not null;uniqueIndex" json:"email"`
	Status    RedemptionStatus `gorm:"type:varchar(20);not null" json:"status"`
	AppliedAt time.Time        `gorm:"autoCreateTime" json:"applied_at"`
	DecidedAt *time.Time       `json:"decided_at,omitempty"`
	Scheme    Scheme           `gorm:"foreignKey:SchemeID" json:"scheme,omitempty"`
}

type RedemptionDecisionRequest struct {
	SchemeID string           `json:"scheme_id" validate:"required,uuid"`
	Email    string           `json:"email" validate:"required,email"`
	Decision RedemptionStatus `json:"decision" validate:"required,oneof=APPROVED REJECTED"`
}

type RedemptionStatusItem struct {
	SchemeTitle string           `json:"scheme_title"`
	Status      RedemptionStatus `json:"status"`
	AppliedAt   time.Time        `json:"applied_at"`
}
