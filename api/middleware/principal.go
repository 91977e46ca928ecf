package middleware

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/angelmondragon/littlelemon-backend/api/responses"
	"github.com/angelmondragon/littlelemon-backend/pkg/auth"
	"github.com/angelmondragon/littlelemon-backend/pkg/db/models"
	"github.com/angelmondragon/littlelemon-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/littlelemon-backend/pkg/errors"
	"github.com/angelmondragon/littlelemon-backend/pkg/logger"
)

// UserLoader fetches the account behind a token.
type UserLoader interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// GroupLister returns the staff groups a user belongs to.
type GroupLister interface {
	ListGroups(ctx context.Context, userID uint) ([]enums.Group, error)
}

// LoadPrincipal resolves the authenticated user and their role once per
// request. It must run after Auth.
func LoadPrincipal(users UserLoader, groups GroupLister, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			userID := UserIDFromContext(ctx)
			if userID == 0 {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
				return
			}

			user, err := users.FindByID(ctx, userID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user not found"))
					return
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user"))
				return
			}
			if !user.IsActive {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user inactive"))
				return
			}

			memberOf, err := groups.ListGroups(ctx, user.ID)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load groups"))
				return
			}

			principal := auth.NewPrincipal(user.ID, user.Username, user.IsStaff, memberOf)
			ctx = WithPrincipal(ctx, principal)
			if logg != nil {
				ctx = logg.WithActorRole(ctx, principal.Role.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
