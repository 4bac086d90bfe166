package licenses

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentiva/rentiva-backend/pkg/enums"
	pkgerrors "github.com/rentiva/rentiva-backend/pkg/errors"
)

// Service gates mutating rental routes on a valid license.
type Service interface {
	Allow(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds the entitlement gate.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("licenses repository required")
	}
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *service) Allow(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	license, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeForbidden, "no license on file")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load license")
	}

	if license.Status != enums.LicenseStatusActive {
		return pkgerrors.New(pkgerrors.CodeForbidden, "license is not active")
	}
	if license.ExpiresAt != nil && !license.ExpiresAt.After(s.now()) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "license has expired")
	}
	return nil
}
