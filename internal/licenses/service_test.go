package licenses

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentiva/rentiva-backend/pkg/db/models"
	"github.com/rentiva/rentiva-backend/pkg/enums"
	pkgerrors "github.com/rentiva/rentiva-backend/pkg/errors"
)

type stubLicensesRepo struct {
	license *models.License
}

func (s *stubLicensesRepo) FindByUser(ctx context.Context, userID uuid.UUID) (*models.License, error) {
	if s.license == nil || s.license.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s.license
	return &copied, nil
}

func newLicensesService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestAllowActiveLicense(t *testing.T) {
	userID := uuid.New()
	expires := time.Now().UTC().Add(30 * 24 * time.Hour)
	repo := &stubLicensesRepo{license: &models.License{
		UserID:    userID,
		Plan:      "standard",
		Status:    enums.LicenseStatusActive,
		ExpiresAt: &expires,
	}}
	svc := newLicensesService(t, repo)

	if err := svc.Allow(context.Background(), userID); err != nil {
		t.Fatalf("active license should be allowed: %v", err)
	}
}

func TestAllowActiveLicenseWithoutExpiry(t *testing.T) {
	userID := uuid.New()
	repo := &stubLicensesRepo{license: &models.License{
		UserID: userID,
		Plan:   "lifetime",
		Status: enums.LicenseStatusActive,
	}}
	svc := newLicensesService(t, repo)

	if err := svc.Allow(context.Background(), userID); err != nil {
		t.Fatalf("license without expiry should be allowed: %v", err)
	}
}

func TestAllowDeniesMissingLicense(t *testing.T) {
	repo := &stubLicensesRepo{}
	svc := newLicensesService(t, repo)

	err := svc.Allow(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestAllowDeniesInactiveStatuses(t *testing.T) {
	for _, status := range []enums.LicenseStatus{enums.LicenseStatusExpired, enums.LicenseStatusRevoked} {
		t.Run(status.String(), func(t *testing.T) {
			userID := uuid.New()
			repo := &stubLicensesRepo{license: &models.License{
				UserID: userID,
				Plan:   "standard",
				Status: status,
			}}
			svc := newLicensesService(t, repo)

			err := svc.Allow(context.Background(), userID)
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
				t.Fatalf("expected forbidden error, got %v", err)
			}
		})
	}
}

func TestAllowDeniesExpiredByDate(t *testing.T) {
	userID := uuid.New()
	expired := time.Now().UTC().Add(-time.Hour)
	repo := &stubLicensesRepo{license: &models.License{
		UserID:    userID,
		Plan:      "standard",
		Status:    enums.LicenseStatusActive,
		ExpiresAt: &expired,
	}}
	svc := newLicensesService(t, repo)

	err := svc.Allow(context.Background(), userID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}
