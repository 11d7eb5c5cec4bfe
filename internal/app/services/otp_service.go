package services

import (
	"context"
	"fmt"
	"time"

	"github.com/perkloop/perkloop-core/internal/app/errors"
	"github.com/perkloop/perkloop-core/internal/app/pkg"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const otpTTL = 5 * time.Minute

// Mailer delivers transactional mail. Delivery is best-effort; the caller's
// correctness never depends on it.
type Mailer interface {
	Send(to, subject, body string) error
}

type OTPService struct {
	redis  *redis.Client
	mailer Mailer
}

func NewOTPService(redis *redis.Client, mailer Mailer) *OTPService {
	return &OTPService{
		redis:  redis,
		mailer: mailer,
	}
}

func otpKey(purpose, email string) string {
	return fmt.Sprintf("perkloop:otp:%s:%s", purpose, email)
}

// SendOTP stores a fresh 6-digit OTP under a TTL and mails it out.
func (s *OTPService) SendOTP(email, purpose string) error {
	otp := pkg.RandomNumberString(6)

	err := s.redis.Set(context.Background(), otpKey(purpose, email), otp, otpTTL).Err()
	if err != nil {
		return errors.NewInternalServerError(err, "Failed to store OTP")
	}

	go func() {
		body := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", otp, int(otpTTL.Minutes()))
		if err := s.mailer.Send(email, "Your Perkloop verification code", body); err != nil {
			logrus.Errorf("failed to send OTP mail to %s: %v", email, err)
		}
	}()

	return nil
}

// VerifyOTP checks and consumes the stored OTP. An OTP verifies at most once.
func (s *OTPService) VerifyOTP(email, purpose, otp string) error {
	key := otpKey(purpose, email)

	stored, err := s.redis.Get(context.Background(), key).Result()
	if err != nil {
		if err == redis.Nil {
			return errors.NewBadRequestError("OTP expired or not requested")
		}
		return errors.NewInternalServerError(err, "Failed to read OTP")
	}

	if stored != otp {
		return errors.NewUnauthorizedError("Invalid OTP")
	}

	if err := s.redis.Del(context.Background(), key).Err(); err != nil {
		return errors.NewInternalServerError(err, "Failed to consume OTP")
	}

	return nil
}
