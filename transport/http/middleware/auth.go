package middleware

import (
	"crypto/subtle"
	"net/http"

	"helm/config"
	"helm/infras/otel"
	"helm/shared/constant"
	"helm/shared/failure"
	"helm/transport/http/response"

	"github.com/rs/zerolog/log"
)

// Auth gates the admin surface. Public booking routes never pass through it.
type Auth interface {
	APIKey(next http.Handler) http.Handler
}

type authImpl struct {
	otel otel.Otel
	cfg  *config.Config
}

func NewAuthMiddleware(otel otel.Otel, cfg *config.Config) Auth {
	return &authImpl{
		otel: otel,
		cfg:  cfg,
	}
}

// APIKey validates the X-API-Key header against the configured admin key.
func (m *authImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "apikey.middleware")
		defer scope.End()

		if m.cfg.App.APIKey == constant.Empty {
			log.Error().Msg("admin API key is not configured")

			err := failure.Unauthorized("admin access is not configured")
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		provided := request.Header.Get(constant.RequestHeaderAPIKey)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(m.cfg.App.APIKey)) != 1 {
			err := failure.Unauthorized("invalid API key")
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		next.ServeHTTP(writer, request)
	})
}
