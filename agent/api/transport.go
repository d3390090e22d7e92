package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/absmach/supermq"
	apiutil "github.com/absmach/supermq/api/http/util"
	"github.com/absmach/warden/agent"
	"github.com/absmach/warden/pkg/api"
	"github.com/absmach/warden/pkg/auth"
	"github.com/go-chi/chi/v5"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func MakeHandler(svc agent.Service, guard *auth.Guard, logger *slog.Logger, instanceID string) http.Handler {
	mux := chi.NewRouter()

	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(apiutil.LoggingErrorEncoder(logger, api.EncodeError)),
	}

	mux.Get("/health", supermq.Health(agent.SvcName, instanceID))

	mux.Get("/info", otelhttp.NewHandler(kithttp.NewServer(
		infoEndpoint(svc),
		decodeEmptyReq,
		api.EncodeResponse,
		opts...,
	), "info").ServeHTTP)

	mux.Group(func(r chi.Router) {
		r.Use(authenticate(guard))

		r.Get("/metrics", otelhttp.NewHandler(kithttp.NewServer(
			metricsEndpoint(svc),
			decodeEmptyReq,
			api.EncodeResponse,
			opts...,
		), "metrics").ServeHTTP)

		r.Post("/update", otelhttp.NewHandler(kithttp.NewServer(
			updateEndpoint(svc),
			decodeEmptyReq,
			api.EncodeResponse,
			opts...,
		), "update").ServeHTTP)

		r.Post("/reboot", otelhttp.NewHandler(kithttp.NewServer(
			rebootEndpoint(svc),
			decodeEmptyReq,
			api.EncodeResponse,
			opts...,
		), "reboot").ServeHTTP)
	})

	mux.Handle("/metrics-internal", promhttp.Handler())

	return mux
}

// authenticate guards the protected routes. An absent, malformed or
// mismatching bearer token produces the same rejection, so callers cannot
// tell which case occurred.
func authenticate(guard *auth.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := apiutil.ExtractBearerToken(r)
			if token == "" || !guard.Authenticate(token) {
				w.Header().Set("Content-Type", api.ContentType)
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "authentication required"})

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func decodeEmptyReq(_ context.Context, _ *http.Request) (any, error) {
	return emptyReq{}, nil
}
