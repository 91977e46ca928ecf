package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/angelmondragon/littlelemon-backend/api/controllers"
	authcontrollers "github.com/angelmondragon/littlelemon-backend/api/controllers/auth"
	cartcontrollers "github.com/angelmondragon/littlelemon-backend/api/controllers/cart"
	groupcontrollers "github.com/angelmondragon/littlelemon-backend/api/controllers/groups"
	menucontrollers "github.com/angelmondragon/littlelemon-backend/api/controllers/menu"
	ordercontrollers "github.com/angelmondragon/littlelemon-backend/api/controllers/orders"
	"github.com/angelmondragon/littlelemon-backend/api/middleware"
	"github.com/angelmondragon/littlelemon-backend/api/responses"
	authsvc "github.com/angelmondragon/littlelemon-backend/internal/auth"
	"github.com/angelmondragon/littlelemon-backend/internal/cart"
	"github.com/angelmondragon/littlelemon-backend/internal/catalog"
	"github.com/angelmondragon/littlelemon-backend/internal/memberships"
	"github.com/angelmondragon/littlelemon-backend/internal/orders"
	"github.com/angelmondragon/littlelemon-backend/pkg/auth/session"
	"github.com/angelmondragon/littlelemon-backend/pkg/config"
	"github.com/angelmondragon/littlelemon-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/littlelemon-backend/pkg/errors"
	"github.com/angelmondragon/littlelemon-backend/pkg/logger"
	"github.com/angelmondragon/littlelemon-backend/pkg/metrics"
	pkgredis "github.com/angelmondragon/littlelemon-backend/pkg/redis"
)

// RedisStore is the slice of the Redis client the HTTP layer touches:
// auth rate limits, per-user throttling, idempotency records and readiness.
type RedisStore interface {
	pkgredis.IdempotencyStore
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
	Ping(ctx context.Context) error
}

// Dependencies carries everything NewRouter wires into handlers.
type Dependencies struct {
	Config *config.Config
	Logger *logger.Logger

	DB       controllers.Pinger
	Redis    RedisStore
	Sessions session.AccessSessionChecker
	Users    middleware.UserLoader
	Groups   middleware.GroupLister

	Auth        authsvc.Service
	Catalog     catalog.Service
	Memberships memberships.Service
	Cart        cart.Service
	Orders      orders.Service

	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler
}

func NewRouter(deps Dependencies) http.Handler {
	cfg, logg := deps.Config, deps.Logger

	r := chi.NewRouter()
	r.Use(
		chimiddleware.StripSlashes,
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)
	if deps.HTTPMetrics != nil {
		r.Use(middleware.Metrics(deps.HTTPMetrics))
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.Newf(pkgerrors.CodeMethodNotAllowed, "method %q not allowed", req.Method))
	})

	var redisStore RedisStore
	readiness := map[string]controllers.Pinger{}
	if deps.DB != nil {
		readiness["database"] = deps.DB
	}
	if deps.Redis != nil {
		redisStore = deps.Redis
		readiness["redis"] = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, readiness, logg))
	})
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	tokenPolicy := middleware.TokenRateLimitPolicy(cfg.AuthRateLimit)
	registerPolicy := middleware.RegisterRateLimitPolicy(cfg.AuthRateLimit)

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(tokenPolicy, redisStore, logg)).
			Post("/api-token-auth", authcontrollers.Token(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisStore, logg)).
			Post("/users", authcontrollers.Register(deps.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(
				middleware.Auth(cfg.JWT, deps.Sessions, logg),
				middleware.LoadPrincipal(deps.Users, deps.Groups, logg),
				middleware.Throttle(cfg.Throttle, redisStore, logg),
			)

			r.Get("/users/me", authcontrollers.Me(logg))
			r.Post("/token/logout", authcontrollers.Logout(deps.Auth, logg))

			r.Route("/menu-items", func(r chi.Router) {
				managers := middleware.RequireRoles(logg, enums.RoleManager)

				r.Get("/", menucontrollers.ListMenuItems(deps.Catalog, logg))
				r.With(managers).Post("/", menucontrollers.CreateMenuItem(deps.Catalog, logg))
				r.Get("/{menuItemID}", menucontrollers.GetMenuItem(deps.Catalog, logg))
				r.With(managers).Put("/{menuItemID}", menucontrollers.UpdateMenuItem(deps.Catalog, logg))
				r.With(managers).Patch("/{menuItemID}", menucontrollers.UpdateMenuItem(deps.Catalog, logg))
				r.With(managers).Delete("/{menuItemID}", menucontrollers.DeleteMenuItem(deps.Catalog, logg))
			})

			r.Route("/category", func(r chi.Router) {
				r.Use(middleware.RequireAdmin(logg))
				r.Get("/", menucontrollers.ListCategories(deps.Catalog, logg))
				r.Post("/", menucontrollers.CreateCategory(deps.Catalog, logg))
			})

			r.Route("/groups", func(r chi.Router) {
				r.Use(middleware.RequireStaffManager(logg))
				mountGroup(r, "/manager/users", enums.GroupManager, deps.Memberships, logg)
				mountGroup(r, "/delivery-crew/users", enums.GroupDeliveryCrew, deps.Memberships, logg)
			})

			r.Route("/cart/menu-items", func(r chi.Router) {
				r.Get("/", cartcontrollers.List(deps.Cart, logg))
				r.Post("/", cartcontrollers.Add(deps.Cart, logg))
				r.Delete("/", cartcontrollers.Clear(deps.Cart, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", ordercontrollers.List(deps.Orders, logg))
				r.With(middleware.Idempotency(redisStore, logg)).Post("/", ordercontrollers.Place(deps.Orders, logg))
				r.Get("/{orderID}", ordercontrollers.Detail(deps.Orders, logg))
				r.Put("/{orderID}", ordercontrollers.Update(deps.Orders, logg))
				r.Patch("/{orderID}", ordercontrollers.Update(deps.Orders, logg))
				r.Delete("/{orderID}", ordercontrollers.Delete(deps.Orders, logg))
			})
		})
	})

	return r
}

func mountGroup(r chi.Router, path string, group enums.Group, svc memberships.Service, logg *logger.Logger) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", groupcontrollers.ListMembers(svc, group, logg))
		r.Post("/", groupcontrollers.AddMember(svc, group, logg))
		r.Get("/{userID}", groupcontrollers.GetMember(svc, group, logg))
		r.Delete("/{userID}", groupcontrollers.RemoveMember(svc, group, logg))
	})
}
