package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/rentiva/rentiva-backend/api/responses"
	pkgerrors "github.com/rentiva/rentiva-backend/pkg/errors"
	"github.com/rentiva/rentiva-backend/pkg/logger"
)

type entitlementChecker interface {
	Allow(ctx context.Context, userID uuid.UUID) error
}

// RequireLicense gates item and rental mutations behind an active license.
// It must run after Auth so the user id is present in the context.
func RequireLicense(licenses entitlementChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if licenses == nil {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := uuid.Parse(UserIDFromContext(r.Context()))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			if err := licenses.Allow(r.Context(), userID); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
