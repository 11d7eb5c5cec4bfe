package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/perkloop/perkloop-core/internal/app/errors"
	"github.com/perkloop/perkloop-core/internal/app/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/perkloop/perkloop-core/internal/infrastructures"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.UserPoints{},
		&models.PendingSignup{},
		&models.PointCode{},
		&models.Scheme{},
		&models.SchemeRedemption{},
	)
	require.NoError(t, err)

	return db
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, client
}

func seedBalance(t *testing.T, db *gorm.DB, email string, points int64) {
	t.Helper()
	require.NoError(t, db.Create(&models.UserPoints{Email: email, Points: points}).Error)
}

func requireAppError(t *testing.T, err error, statusCode int) {
	t.Helper()

	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok, "expected *errors.AppError, got %T", err)
	require.Equal(t, statusCode, appErr.StatusCode)
}

// recordingMailer captures sent mail for assertions.
type recordingMailer struct {
	sent chan string
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{sent: make(chan string, 8)}
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.sent <- to
	return nil
}

func (m *recordingMailer) waitForSend(t *testing.T) string {
	t.Helper()

	select {
	case to := <-m.sent:
		return to
	case <-time.After(2 * time.Second):
		t.Fatal("no mail sent within timeout")
		return ""
	}
}

func testValidator() *infrastructures.Validator {
	return infrastructures.NewValidator()
}
