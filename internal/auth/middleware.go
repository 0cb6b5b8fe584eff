package auth

import (
	"DealScout-Backend/internal/domain"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// ContextKey тип для ключей контекста
type ContextKey string

const (
	// UserIDKey ключ для получения ID пользователя из контекста
	UserIDKey ContextKey = "user_id"
	// UserEmailKey ключ для получения email пользователя из контекста
	UserEmailKey ContextKey = "user_email"
	// RoleKey ключ для получения роли пользователя из контекста
	RoleKey ContextKey = "role"
)

// Authorizer resolves whether a user holds a permission.
type Authorizer interface {
	Authorize(ctx context.Context, userID string, perm domain.Permission) (domain.Role, error)
}

// Middleware JWT middleware для HTTP обработчиков
type Middleware struct {
	jwtService *JWTService
	roles      Authorizer
	log        *zap.Logger
}

// NewMiddleware создает новый JWT middleware
func NewMiddleware(jwtService *JWTService, roles Authorizer, log *zap.Logger) *Middleware {
	return &Middleware{
		jwtService: jwtService,
		roles:      roles,
		log:        log,
	}
}

// RequireAuth проверяет JWT токен. Browsers cannot set headers on a
// websocket handshake, so the token may also come in the access_token
// query parameter.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := ExtractTokenFromBearer(r.Header.Get("Authorization"))
		if tokenString == "" {
			tokenString = r.URL.Query().Get("access_token")
		}
		if tokenString == "" {
			m.log.Debug("missing or malformed authorization header")
			writeError(w, "Authorization required", http.StatusUnauthorized)
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			m.log.Debug("invalid token", zap.Error(err))
			if errors.Is(err, ErrExpiredToken) {
				writeError(w, "Token expired", http.StatusUnauthorized)
			} else {
				writeError(w, "Invalid token", http.StatusUnauthorized)
			}
			return
		}

		// Добавляем информацию о пользователе в контекст
		ctx := context.WithValue(r.Context(), UserIDKey, claims.Subject)
		ctx = context.WithValue(ctx, UserEmailKey, claims.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePermission пропускает запрос, только если роль пользователя дает perm.
// Must run after RequireAuth.
func (m *Middleware) RequirePermission(perm domain.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserIDFromContext(r.Context())
			if !ok {
				writeError(w, "Authorization required", http.StatusUnauthorized)
				return
			}

			role, err := m.roles.Authorize(r.Context(), userID, perm)
			if errors.Is(err, domain.ErrForbidden) {
				m.log.Info("permission denied",
					zap.String("user_id", userID),
					zap.String("permission", string(perm)))
				writeError(w, "Insufficient permissions", http.StatusForbidden)
				return
			}
			if err != nil {
				m.log.Error("failed to check permission", zap.String("user_id", userID), zap.Error(err))
				writeError(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), RoleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext извлекает ID пользователя из контекста
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}

// GetUserEmailFromContext извлекает email пользователя из контекста
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

// GetRoleFromContext извлекает роль пользователя из контекста
func GetRoleFromContext(ctx context.Context) (domain.Role, bool) {
	role, ok := ctx.Value(RoleKey).(domain.Role)
	return role, ok
}

// CORS middleware для админского API: only configured origins are echoed back.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimSpace(o)] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" && (allowed[origin] || allowed["*"]) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")

			// Обработка preflight OPTIONS запросов
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// PublicCORS allows any origin. Used by storefront-facing endpoints.
func PublicCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
