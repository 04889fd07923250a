package transport

import (
	"context"
	"net/http"
	"strings"

	"letsgo/internal/shared/auth"
	"letsgo/internal/shared/logger"

	"github.com/go-chi/chi/v5/middleware"
)

type contextKey string

const (
	// Контекстные ключи для данных устройства
	ContextKeyDeviceID contextKey = "device_id"
	ContextKeyChannel  contextKey = "channel"
	ContextKeyToken    contextKey = "token"
)

// TokenValidator: проверка токена устройства (*auth.JWTService)
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// JWTMiddleware проверяет Bearer-токен и кладет device_id в контекст
func JWTMiddleware(jwt TokenValidator, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, r, http.StatusUnauthorized, "unauthorized", "missing authorization header")
				return
			}

			// Проверяем формат "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeError(w, r, http.StatusUnauthorized, "unauthorized", "invalid authorization header format")
				return
			}

			claims, err := jwt.ValidateToken(parts[1])
			if err != nil {
				log.Warn(logger.Entry{
					Action:    "jwt_validation_failed",
					Message:   err.Error(),
					RequestID: middleware.GetReqID(r.Context()),
					Error:     logger.Err(err),
				})
				writeError(w, r, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyDeviceID, claims.DeviceID)
			ctx = context.WithValue(ctx, ContextKeyChannel, claims.Channel)
			ctx = context.WithValue(ctx, ContextKeyToken, parts[1])
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DeviceIDFrom: device_id из контекста запроса
func DeviceIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ContextKeyDeviceID).(string)
	return id, ok && id != ""
}

// RequestLogger пишет одну строку на запрос
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			e := logger.Entry{
				Action:    "http_request",
				Message:   r.Method + " " + r.URL.Path,
				RequestID: middleware.GetReqID(r.Context()),
				Additional: map[string]any{
					"status": ww.Status(),
					"bytes":  ww.BytesWritten(),
				},
			}
			if id, ok := DeviceIDFrom(r.Context()); ok {
				e.DeviceID = id
			}
			if ww.Status() >= http.StatusInternalServerError {
				log.Error(e)
				return
			}
			log.Debug(e)
		})
	}
}
