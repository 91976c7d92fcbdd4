package middleware

import (
	"context"
	"net/http"

	"medikeep/internal/domain/entity"
	"medikeep/internal/domain/repository"
	"medikeep/pkg/response"

	"gorm.io/gorm"
)

const AccountTypeKey contextKey = "account_type"

// ProfileMiddleware resolves the authenticated user's profile and gates
// routes on account type. Inventory and fulfilment endpoints are
// professional-only.
type ProfileMiddleware struct {
	db          *gorm.DB
	profileRepo repository.ProfileRepository
}

func NewProfileMiddleware(db *gorm.DB, profileRepo repository.ProfileRepository) *ProfileMiddleware {
	return &ProfileMiddleware{
		db:          db,
		profileRepo: profileRepo,
	}
}

// RequireProfile ensures the user has completed profile setup and stashes
// the account type in the request context.
func (m *ProfileMiddleware) RequireProfile(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "User information not found")
			return
		}

		profile, err := m.profileRepo.FindByUserID(m.db.WithContext(r.Context()), userID)
		if err != nil {
			response.InternalServerError(w, "Failed to load profile")
			return
		}
		if profile == nil {
			response.Forbidden(w, "Profile setup is required")
			return
		}

		ctx := context.WithValue(r.Context(), AccountTypeKey, profile.AccountType)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireProfessional allows only chemist and doctor accounts through. Must
// run after RequireProfile.
func (m *ProfileMiddleware) RequireProfessional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountType, ok := GetAccountTypeFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "Account type information not found")
			return
		}

		if accountType != entity.AccountTypeChemist && accountType != entity.AccountTypeDoctor {
			response.Forbidden(w, "This resource is limited to chemist and doctor accounts")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetAccountTypeFromContext extracts the profile account type from context
func GetAccountTypeFromContext(ctx context.Context) (entity.AccountType, bool) {
	accountType, ok := ctx.Value(AccountTypeKey).(entity.AccountType)
	return accountType, ok
}
