package services

import (
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/perkloop/perkloop-core/internal/app/models"
	"github.com/perkloop/perkloop-core/internal/infrastructures"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setTestConfig(t *testing.T) {
	t.Helper()

	old := infrastructures.Config
	infrastructures.Config = &infrastructures.AppConfig{
		JWT_SECRET_KEY:    "test-secret",
		JWT_EXPIRY_MINUTE: 60,
	}
	t.Cleanup(func() { infrastructures.Config = old })
}

func newAuthService(t *testing.T, db *gorm.DB) (*AuthService, *otpHarness) {
	t.Helper()

	mr, client := newTestRedis(t)
	mailer := newRecordingMailer()
	otp := NewOTPService(client, mailer)
	return NewAuthService(db, testValidator(), otp), &otpHarness{mr: mr, mailer: mailer}
}

// otpHarness exposes the OTP backing store and mail capture to flow tests.
type otpHarness struct {
	mr     *miniredis.Miniredis
	mailer *recordingMailer
}

func seedUser(t *testing.T, db *gorm.DB, email, password string, role models.UserRole) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}).Error)
}

func TestSignup_CreatesPendingAndMailsOTP(t *testing.T) {
	db := newTestDB(t)
	svc, h := newAuthService(t, db)

	pending, err := svc.Signup(&models.SignupRequest{
		Name:     "New User",
		Email:    "new@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	require.Equal(t, models.EmailStatusUnverified, pending.EmailStatus)
	require.Equal(t, models.SignupStatusPending, pending.SignupStatus)
	require.NotEqual(t, "hunter2hunter2", pending.PasswordHash)

	require.Equal(t, "new@example.com", h.mailer.waitForSend(t))

	_, err = h.mr.Get("perkloop:otp:signup:new@example.com")
	require.NoError(t, err)
}

func TestSignup_ExistingUserRefused(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(t, db)
	seedUser(t, db, "taken@example.com", "hunter2hunter2", models.UserRoleUser)

	_, err := svc.Signup(&models.SignupRequest{
		Name:     "Again",
		Email:    "taken@example.com",
		Password: "hunter2hunter2",
	})
	requireAppError(t, err, http.StatusConflict)
}

func TestSignup_UnverifiedPendingResendsOTP(t *testing.T) {
	db := newTestDB(t)
	svc, h := newAuthService(t, db)

	req := &models.SignupRequest{
		Name:     "New User",
		Email:    "new@example.com",
		Password: "hunter2hunter2",
	}
	_, err := svc.Signup(req)
	require.NoError(t, err)
	h.mailer.waitForSend(t)

	_, err = svc.Signup(req)
	require.NoError(t, err)
	require.Equal(t, "new@example.com", h.mailer.waitForSend(t))

	var count int64
	require.NoError(t, db.Model(&models.PendingSignup{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestSignup_VerifiedPendingRefused(t *testing.T) {
	db := newTestDB(t)
	svc, h := newAuthService(t, db)

	req := &models.SignupRequest{
		Name:     "New User",
		Email:    "new@example.com",
		Password: "hunter2hunter2",
	}
	_, err := svc.Signup(req)
	require.NoError(t, err)
	h.mailer.waitForSend(t)

	otp, err := h.mr.Get("perkloop:otp:signup:new@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.VerifyEmail(&models.VerifyEmailRequest{Email: "new@example.com", OTP: otp}))

	_, err = svc.Signup(req)
	requireAppError(t, err, http.StatusConflict)
}

func TestVerifyEmail_MarksVerified(t *testing.T) {
	db := newTestDB(t)
	svc, h := newAuthService(t, db)

	_, err := svc.Signup(&models.SignupRequest{
		Name:     "New User",
		Email:    "new@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	h.mailer.waitForSend(t)

	otp, err := h.mr.Get("perkloop:otp:signup:new@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.VerifyEmail(&models.VerifyEmailRequest{Email: "new@example.com", OTP: otp}))

	var pending models.PendingSignup
	require.NoError(t, db.Where("email = ?", "new@example.com").First(&pending).Error)
	require.Equal(t, models.EmailStatusVerified, pending.EmailStatus)

	// Verifying twice is refused.
	err = svc.VerifyEmail(&models.VerifyEmailRequest{Email: "new@example.com", OTP: otp})
	requireAppError(t, err, http.StatusConflict)
}

func TestVerifyEmail_NoPendingSignup(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(t, db)

	err := svc.VerifyEmail(&models.VerifyEmailRequest{Email: "ghost@example.com", OTP: "123456"})
	requireAppError(t, err, http.StatusNotFound)
}

func TestLogin_IssuesToken(t *testing.T) {
	setTestConfig(t)
	db := newTestDB(t)
	svc, _ := newAuthService(t, db)
	seedUser(t, db, "user@example.com", "hunter2hunter2", models.UserRoleAdmin)

	resp, err := svc.Login(&models.LoginRequest{
		Email:    "user@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	require.Equal(t, "user@example.com", resp.Email)
	require.Equal(t, models.UserRoleAdmin, resp.Role)

	token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	require.NoError(t, err)

	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, "user@example.com", claims["sub"])
	require.Equal(t, "ADMIN", claims["role"])
}

func TestLogin_WrongPassword(t *testing.T) {
	setTestConfig(t)
	db := newTestDB(t)
	svc, _ := newAuthService(t, db)
	seedUser(t, db, "user@example.com", "hunter2hunter2", models.UserRoleUser)

	_, err := svc.Login(&models.LoginRequest{
		Email:    "user@example.com",
		Password: "wrong-password",
	})
	requireAppError(t, err, http.StatusUnauthorized)
}

func TestLogin_UnknownEmail(t *testing.T) {
	setTestConfig(t)
	db := newTestDB(t)
	svc, _ := newAuthService(t, db)

	// Unknown email gets the same error as a wrong password.
	_, err := svc.Login(&models.LoginRequest{
		Email:    "ghost@example.com",
		Password: "hunter2hunter2",
	})
	requireAppError(t, err, http.StatusUnauthorized)
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(t, db)

	err := svc.ForgotPassword(&models.ForgotPasswordRequest{Email: "ghost@example.com"})
	requireAppError(t, err, http.StatusNotFound)
}

func TestResetPassword_FullFlow(t *testing.T) {
	setTestConfig(t)
	db := newTestDB(t)
	svc, h := newAuthService(t, db)
	seedUser(t, db, "user@example.com", "hunter2hunter2", models.UserRoleUser)

	require.NoError(t, svc.ForgotPassword(&models.ForgotPasswordRequest{Email: "user@example.com"}))
	h.mailer.waitForSend(t)

	otp, err := h.mr.Get("perkloop:otp:reset:user@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(&models.ResetPasswordRequest{
		Email:       "user@example.com",
		OTP:         otp,
		NewPassword: "fresh-password",
	}))

	_, err = svc.Login(&models.LoginRequest{Email: "user@example.com", Password: "hunter2hunter2"})
	requireAppError(t, err, http.StatusUnauthorized)

	_, err = svc.Login(&models.LoginRequest{Email: "user@example.com", Password: "fresh-password"})
	require.NoError(t, err)
}

func TestResetPassword_WrongOTP(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(t, db)
	seedUser(t, db, "user@example.com", "hunter2hunter2", models.UserRoleUser)

	err := svc.ResetPassword(&models.ResetPasswordRequest{
		Email:       "user@example.com",
		OTP:         "123456",
		NewPassword: "fresh-password",
	})
	requireAppError(t, err, http.StatusBadRequest)
}
