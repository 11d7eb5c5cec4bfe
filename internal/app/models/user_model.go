package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleAdmin UserRole = "ADMIN"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(10);not null;default:'USER'" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// UserPoints is the balance row for one user, keyed by email.
type UserPoints struct {
	Email     string    `gorm:"primaryKey" json:"email"`
	Points    int64     `gorm:"not null;default:0" json:"points"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type EmailStatus string

const (
	EmailStatusUnverified EmailStatus = "UNVERIFIED"
	EmailStatusVerified   EmailStatus = "VERIFIED"
)

type SignupStatus string

const (
	SignupStatusPending  SignupStatus = "PENDING"
	SignupStatusApproved SignupStatus = "APPROVED"
	SignupStatusRejected SignupStatus = "REJECTED"
)

type PendingSignup struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string       `gorm:"not null" json:"name"`
	Email        string       `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string       `gorm:"not null" json:"-"`
	EmailStatus  EmailStatus  `gorm:"type:varchar(20);not null" json:"email_status"`
	SignupStatus SignupStatus `gorm:"type:varchar(20);not null" json:"signup_status"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

type UserProfile struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Points int64     `json:"points"`
}

type UserUpdateRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Points *int64  `json:"points,omitempty" validate:"omitempty,min=0"`
}

type SignupDecisionRequest struct {
	Email    string       `json:"email" validate:"required,email"`
	Decision SignupStatus `json:"decision" validate:"required,oneof=APPROVED REJECTED"`
}
