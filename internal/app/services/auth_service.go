package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/perkloop/perkloop-core/internal/app/errors"
	"github.com/perkloop/perkloop-core/internal/app/models"
	"github.com/perkloop/perkloop-core/internal/infrastructures"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	otpPurposeSignup = "signup"
	otpPurposeReset  = "reset"
)

type AuthService struct {
	db         *gorm.DB
	validator  *infrastructures.Validator
	otpService *OTPService
}

func NewAuthService(db *gorm.DB, validator *infrastructures.Validator, otpService *OTPService) *AuthService {
	return &AuthService{
		db:         db,
		validator:  validator,
		otpService: otpService,
	}
}

// Signup records a pending signup and mails a verification OTP. Signing up
// again before verifying just resends the OTP.
func (s *AuthService) Signup(req *models.SignupRequest) (*models.PendingSignup, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var existingUser models.User
	err := s.db.Where("email = ?", req.Email).First(&existingUser).Error
	if err == nil {
		return nil, errors.NewConflictError("User already registered")
	}
	if err != gorm.ErrRecordNotFound {
		return nil, errors.NewInternalServerError(err, "Failed to check user")
	}

	var pending models.PendingSignup
	err = s.db.Where("email = ?", req.Email).First(&pending).Error
	if err == nil {
		if pending.EmailStatus == models.EmailStatusVerified {
			return nil, errors.NewConflictError("Signup already verified, awaiting approval")
		}
		if err := s.otpService.SendOTP(req.Email, otpPurposeSignup); err != nil {
			return nil, err
		}
		return &pending, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, errors.NewInternalServerError(err, "Failed to check pending signup")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to hash password")
	}

	pending = models.PendingSignup{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		EmailStatus:  models.EmailStatusUnverified,
		SignupStatus: models.SignupStatusPending,
	}

	if err := s.db.Create(&pending).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create pending signup")
	}

	if err := s.otpService.SendOTP(req.Email, otpPurposeSignup); err != nil {
		return nil, err
	}

	return &pending, nil
}

func (s *AuthService) VerifyEmail(req *models.VerifyEmailRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	var pending models.PendingSignup
	err := s.db.Where("email = ?", req.Email).First(&pending).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.NewNotFoundError("No pending signup for email")
		}
		return errors.NewInternalServerError(err, "Failed to get pending signup")
	}

	if pending.EmailStatus == models.EmailStatusVerified {
		return errors.NewConflictError("Email already verified")
	}

	if err := s.otpService.VerifyOTP(req.Email, otpPurposeSignup, req.OTP); err != nil {
		return err
	}

	result := s.db.Model(&models.PendingSignup{}).
		Where("email = ?", req.Email).
		Update("email_status", models.EmailStatusVerified)
	if result.Error != nil {
		return errors.NewInternalServerError(result.Error, "Failed to mark email verified")
	}

	return nil
}

func (s *AuthService) Login(req *models.LoginRequest) (*models.TokenResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var user models.User
	err := s.db.Where("email = ?", req.Email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewUnauthorizedError("Incorrect email or password")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get user")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, errors.NewUnauthorizedError("Incorrect email or password")
	}

	return s.issueToken(user.Email, user.Role)
}

// Refresh re-issues a token for an already authenticated caller.
func (s *AuthService) Refresh(email string, role models.UserRole) (*models.TokenResponse, error) {
	return s.issueToken(email, role)
}

// ForgotPassword starts a reset by mailing an OTP. The new password travels
// with the reset request itself; nothing sensitive is held in process memory.
func (s *AuthService) ForgotPassword(req *models.ForgotPasswordRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	var user models.User
	err := s.db.Where("email = ?", req.Email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.NewNotFoundError("No user for email")
		}
		return errors.NewInternalServerError(err, "Failed to get user")
	}

	return s.otpService.SendOTP(req.Email, otpPurposeReset)
}

func (s *AuthService) ResetPassword(req *models.ResetPasswordRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	if err := s.otpService.VerifyOTP(req.Email, otpPurposeReset, req.OTP); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.NewInternalServerError(err, "Failed to hash password")
	}

	result := s.db.Model(&models.User{}).
		Where("email = ?", req.Email).
		Update("password_hash", string(hash))
	if result.Error != nil {
		return errors.NewInternalServerError(result.Error, "Failed to reset password")
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("No user for email")
	}

	return nil
}

func (s *AuthService) issueToken(email string, role models.UserRole) (*models.TokenResponse, error) {
	config := infrastructures.Config
	if config == nil || config.JWT_SECRET_KEY == "" {
		return nil, errors.NewInternalServerError(gorm.ErrInvalidValue, "JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  email,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(time.Duration(config.JWT_EXPIRY_MINUTE) * time.Minute).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.JWT_SECRET_KEY))
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to sign token")
	}

	return &models.TokenResponse{
		Token: token,
		Email: email,
		Role:  role,
	}, nil
}
