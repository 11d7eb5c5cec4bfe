package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/perkloop/perkloop-core/internal/app/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRedemptionService(db *gorm.DB) *RedemptionService {
	validator := testValidator()
	balance := NewBalanceService(db)
	schemes := NewSchemeService(db, validator)
	return NewRedemptionService(db, validator, schemes, balance)
}

func seedScheme(t *testing.T, db *gorm.DB, title string, cost int64, validTo time.Time) *models.Scheme {
	t.Helper()

	scheme := &models.Scheme{
		ID:        uuid.New(),
		Title:     title,
		ValidFrom: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:   validTo,
		Perks:     "free coffee",
		Cost:      cost,
	}
	require.NoError(t, db.Create(scheme).Error)
	return scheme
}

func TestRedeem_AppliesAndDebits(t *testing.T) {
	db := newTestDB(t)
	svc := newRedemptionService(db)
	seedBalance(t, db, "user@example.com", 50)
	scheme := seedScheme(t, db, "Summer Bonanza", 30, futureDate())

	redemption, err := svc.Redeem("user@example.com", scheme.ID.String())
	require.NoError(t, err)
	require.Equal(t, models.RedemptionStatusPending, redemption.Status)
	require.Equal(t, scheme.ID, redemption.SchemeID)

	points, err := NewBalanceService(db).GetPoints("user@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(20), points)

	var count int64
	require.NoError(t, db.Model(&models.SchemeRedemption{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestRedeem_InsufficientPoints(t *testing.T) {
	db := newTestDB(t)
	svc := newRedemptionService(db)
	seedBalance(t, db, "user@example.com", 20)
	scheme := seedScheme(t, db, "Summer Bonanza", 30, futureDate())

	_, err := svc.Redeem("user@example.com", scheme.ID.String())
	requireAppError(t, err, http.StatusBadRequest)

	points, err := NewBalanceService(db).GetPoints("user@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(20), points)

	var count int64
	require.NoError(t, db.Model(&models.SchemeRedemption{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestRedeem_SchemeNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newRedemptionService(db)
	seedBalance(t, db, "user@example.com", 50)

	_, err := svc.Redeem("user@example.com", uuid.NewString())
	requireAppError(t, err, http.StatusNotFound)
}

func TestRedeem_ExpiredScheme(t *testing.T) {
	db := newTestDB(t)
	svc := newRedemptionService(db)
	seedBalance(t, db, "user@example.com", 50)
	scheme := seedScheme(t, db, "Last Year", 30, pastDate())

	_, err := svc.Redeem("user@example.com", scheme.ID.String())
	requireAppError(t, err, http.StatusBadRequest)
}

func TestRedeem_AlreadyAppliedAnyScheme(t *testing.T) {
	db := newTestDB(t)
	svc := newRedemptionService(db)
	seedBalance(t, db, "user@example.com", 100)
	first := seedScheme(t, db, "First", 10, futureDate())
	second := seedScheme(t, db, "Second", 10, futureDate())

	_, err := svc.Redeem("user@example.com", first.ID.String())
	require.NoError(t, err)

	// The applied check is keyed by email alone, so a second scheme is
	// refused as well.
	_, err = svc.Redeem("user@example.com", second.ID.String())
	requireAppError(t, err, http.StatusConflict)
}

func TestRedeem_OnePerUserBackedBySchema(t *testing.T) {
	db := newTestDB(t)
	seedBalance(t, db, "user@example.com", 100)
	first := seedScheme(t, db, "First", 10, futureDate())
	second := seedScheme(t, db, "Second", 10, futureDate())

	require.NoError(t, db.Create(&models.SchemeRedemption{
		ID:       uuid.New(),
		SchemeID: first.ID,
		Email:    "user@example.com",
		Status:   models.RedemptionStatusPending,
	}).Error)

	// The unique index holds even when the existence check is bypassed, so
	// racing applications cannot both insert.
	err := db.Create(&models.SchemeRedemption{
		ID:       uuid.New(),
		SchemeID: second.ID,
		Email:    "user@example.com",
		Status:   models.RedemptionStatusPending,
	}).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestDecide_ApproveDebitsAgain(t *testing.T) {
	db := newTestDB(t)
	svc := newRedemptionService(db)
	seedBalance(t, db, "user@example.com", 100)
	scheme := seedScheme(t, db, "Summer Bonanza", 30, futureDate())

	_, err := svc.Redeem("user@example.com", scheme.ID.String())
	require.NoError(t, err)

	redemption, err := svc.Decide(&models.RedemptionDecisionRequest{
		SchemeID: scheme.ID.String(),
		Email:    "user@example.com",
		Decision: models.RedemptionStatusApproved,
	})
	require.NoError(t, err)
	require.Equal(t, models.RedemptionStatusApproved, redemption.Status)
	require.NotNil(t, redemption.DecidedAt)

	// Approval charges the scheme cost a second time.
	points, err := NewBalanceService(db).GetPoints("user@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(40), points)
}

func TestDecide_RejectLeavesBalance(t *testing.T) {
	db := newTestDB(t)
	svc := newRedemptionService(db)
	seedBalance(t, db, "user@example.com", 100)
	scheme := seedScheme(t, db, "Summer Bonanza", 30, futureDate())

	_, err := svc.Redeem("user@example.com", scheme.ID.String())
	require.NoError(t, err)

	redemption, err := svc.Decide(&models.RedemptionDecisionRequest{
		SchemeID: scheme.ID.String(),
		Email:    "user@example.com",
		Decision: models.RedemptionStatusRejected,
	})
	require.NoError(t, err)
	require.Equal(t, models.RedemptionStatusRejected, redemption.Status)

	points, err := NewBalanceService(db).GetPoints("user@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(70), points)
}

func TestDecide_AlreadyDecided(t *testing.T) {
	db := newTestDB(t)
	svc := newRedemptionService(db)
	seedBalance(t, db, "user@example.com", 100)
	scheme := seedScheme(t, db, "Summer Bonanza", 30, futureDate())

	_, err := svc.Redeem("user@example.com", scheme.ID.String())
	require.NoError(t, err)

	req := &models.RedemptionDecisionRequest{
		SchemeID: scheme.ID.String(),
		Email:    "user@example.com",
		Decision: models.RedemptionStatusRejected,
	}
	_, err = svc.Decide(req)
	require.NoError(t, err)

	_, err = svc.Decide(req)
	requireAppError(t, err, http.StatusConflict)
}

func TestDecide_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newRedemptionService(db)

	_, err := svc.Decide(&models.RedemptionDecisionRequest{
		SchemeID: uuid.NewString(),
		Email:    "user@example.com",
		Decision: models.RedemptionStatusApproved,
	})
	requireAppError(t, err, http.StatusNotFound)
}

func TestGetStatusByEmail_ListsApplications(t *testing.T) {
	db := newTestDB(t)
	svc := newRedemptionService(db)
	seedBalance(t, db, "user@example.com", 100)
	scheme := seedScheme(t, db, "Summer Bonanza", 30, futureDate())

	_, err := svc.Redeem("user@example.com", scheme.ID.String())
	require.NoError(t, err)

	items, err := svc.GetStatusByEmail("user@example.com")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Summer Bonanza", items[0].SchemeTitle)
	require.Equal(t, models.RedemptionStatusPending, items[0].Status)
}
