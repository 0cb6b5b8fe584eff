package http

import (
	"DealScout-Backend/internal/auth"
	"DealScout-Backend/internal/domain"
	"DealScout-Backend/internal/metrics"
	"DealScout-Backend/internal/repository"
	"DealScout-Backend/internal/service"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Dependencies зависимости HTTP слоя
type Dependencies struct {
	Storage        repository.Storage
	Tracking       *service.TrackingService
	Settings       *service.SettingsService
	Roles          *service.RoleService
	Activity       *service.ActivityService
	Products       ProductFetcher
	Feed           http.Handler
	Processor      StatsProvider
	JWT            *auth.JWTService
	AllowedOrigins []string
	Version        string
}

// Server HTTP сервер с обработчиками
type Server struct {
	trackHandler    *TrackHandler
	clicksHandler   *ClicksHandler
	settingsHandler *SettingsHandler
	rolesHandler    *RolesHandler
	activityHandler *ActivityHandler
	productsHandler *ProductsHandler
	healthHandler   *HealthHandler
	feed            http.Handler
	authMiddleware  *auth.Middleware
	allowedOrigins  []string
	log             *zap.Logger
}

// NewServer создает новый HTTP сервер
func NewServer(deps Dependencies, log *zap.Logger) *Server {
	return &Server{
		trackHandler:    NewTrackHandler(deps.Tracking, log),
		clicksHandler:   NewClicksHandler(deps.Tracking, log),
		settingsHandler: NewSettingsHandler(deps.Settings, log),
		rolesHandler:    NewRolesHandler(deps.Roles, log),
		activityHandler: NewActivityHandler(deps.Activity, log),
		productsHandler: NewProductsHandler(deps.Products, log),
		healthHandler:   NewHealthHandler(deps.Storage, deps.Processor, deps.Version, log),
		feed:            deps.Feed,
		authMiddleware:  auth.NewMiddleware(deps.JWT, deps.Roles, log),
		allowedOrigins:  deps.AllowedOrigins,
		log:             log,
	}
}

// SetupRoutes настраивает маршруты
func (s *Server) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.Use(metrics.Middleware)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, "Not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	// Health checks (без аутентификации)
	r.HandleFunc("/health", s.healthHandler.Health).Methods(http.MethodGet)
	r.HandleFunc("/ready", s.healthHandler.Ready).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Swagger документация
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Публичные endpoints витрины
	public := r.PathPrefix("/api").Subrouter()
	public.Use(auth.PublicCORS)
	public.HandleFunc("/track-click", s.trackHandler.TrackClick).Methods(http.MethodPost, http.MethodOptions)
	public.HandleFunc("/settings", s.settingsHandler.GetSettings).Methods(http.MethodGet, http.MethodOptions)

	// Админка (с аутентификацией и проверкой роли)
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(auth.CORS(s.allowedOrigins), s.authMiddleware.RequireAuth)

	admin.HandleFunc("/me", s.rolesHandler.Me).Methods(http.MethodGet, http.MethodOptions)

	admin.Handle("/clicks", s.guard(domain.PermTrackingView, s.clicksHandler.ListClicks)).Methods(http.MethodGet, http.MethodOptions)
	admin.Handle("/clicks/recent", s.guard(domain.PermTrackingView, s.clicksHandler.RecentClicks)).Methods(http.MethodGet, http.MethodOptions)
	admin.Handle("/clicks/summary", s.guard(domain.PermTrackingView, s.clicksHandler.Summary)).Methods(http.MethodGet, http.MethodOptions)
	admin.Handle("/clicks/export", s.guard(domain.PermTrackingView, s.clicksHandler.Export)).Methods(http.MethodGet, http.MethodOptions)
	if s.feed != nil {
		admin.Handle("/clicks/feed", s.authMiddleware.RequirePermission(domain.PermTrackingView)(s.feed)).Methods(http.MethodGet)
	}
	admin.Handle("/clicks/{id}", s.guard(domain.PermTrackingUpdate, s.clicksHandler.UpdateClick)).Methods(http.MethodPatch, http.MethodOptions)

	admin.Handle("/settings", s.guard(domain.PermSettingsManage, s.settingsHandler.UpdateSettings)).Methods(http.MethodPut, http.MethodOptions)

	admin.Handle("/roles", s.guard(domain.PermUsersManage, s.rolesHandler.ListRoles)).Methods(http.MethodGet, http.MethodOptions)
	admin.Handle("/roles/{userID}", s.guard(domain.PermUsersManage, s.rolesHandler.AssignRole)).Methods(http.MethodPut, http.MethodOptions)
	admin.Handle("/roles/{userID}", s.guard(domain.PermUsersManage, s.rolesHandler.RevokeRole)).Methods(http.MethodDelete)

	admin.Handle("/activity", s.guard(domain.PermActivityView, s.activityHandler.ListActivity)).Methods(http.MethodGet, http.MethodOptions)

	admin.Handle("/products/fetch", s.guard(domain.PermContentManage, s.productsHandler.FetchProduct)).Methods(http.MethodPost, http.MethodOptions)

	return r
}

// guard оборачивает обработчик проверкой права
func (s *Server) guard(perm domain.Permission, h http.HandlerFunc) http.Handler {
	return s.authMiddleware.RequirePermission(perm)(h)
}
