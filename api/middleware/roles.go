package middleware

import (
	"net/http"

	"github.com/angelmondragon/littlelemon-backend/api/responses"
	"github.com/angelmondragon/littlelemon-backend/pkg/auth"
	"github.com/angelmondragon/littlelemon-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/littlelemon-backend/pkg/errors"
	"github.com/angelmondragon/littlelemon-backend/pkg/logger"
)

// RequireRoles admits principals holding one of the allowed roles. Staff
// admins always pass.
func RequireRoles(logg *logger.Logger, allowed ...enums.Role) func(http.Handler) http.Handler {
	return requirePrincipal(logg, "role required", func(p auth.Principal) bool {
		if p.IsAdmin {
			return true
		}
		for _, role := range allowed {
			if p.Role == role {
				return true
			}
		}
		return false
	})
}

// RequireStaffManager admits managers and admins, the callers allowed to edit
// group membership.
func RequireStaffManager(logg *logger.Logger) func(http.Handler) http.Handler {
	return requirePrincipal(logg, "manager role required", auth.Principal.CanManageStaff)
}

// RequireAdmin admits staff accounts only.
func RequireAdmin(logg *logger.Logger) func(http.Handler) http.Handler {
	return requirePrincipal(logg, "admin role required", func(p auth.Principal) bool {
		return p.IsAdmin
	})
}

func requirePrincipal(logg *logger.Logger, message string, allow func(auth.Principal) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
				return
			}
			if !allow(p) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, message))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
