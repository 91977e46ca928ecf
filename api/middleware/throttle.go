package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/angelmondragon/littlelemon-backend/api/responses"
	"github.com/angelmondragon/littlelemon-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/littlelemon-backend/pkg/errors"
	"github.com/angelmondragon/littlelemon-backend/pkg/logger"
)

type windowLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// Throttle caps each authenticated user at cfg.UserLimit requests per
// cfg.UserWindow. Requests without a user id pass through.
func Throttle(cfg config.ThrottleConfig, limiter windowLimiter, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil || cfg.UserLimit <= 0 || cfg.UserWindow <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			userID := UserIDFromContext(ctx)
			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			scope := "user:" + strconv.FormatUint(uint64(userID), 10)
			allowed, count, err := limiter.FixedWindowAllow(ctx, scope, int64(cfg.UserLimit), cfg.UserWindow)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
				return
			}
			if !allowed {
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "attempts", count), "throttle.blocked")
				}
				w.Header().Set("Retry-After", strconv.Itoa(int(cfg.UserWindow.Seconds())))
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "request was throttled"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
