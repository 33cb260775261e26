package webhookapp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ivankudzin/tgevents/internal/transport/http/handlers"
)

type Dependencies struct {
	Processor handlers.CallbackProcessor
	Gatherer  prometheus.Gatherer
	Logger    *zap.Logger
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	webhookHandler := handlers.NewWebhookHandler(deps.Processor, deps.Logger)

	r.Get("/", healthHandler.Root)
	r.Post("/webhook", webhookHandler.Receive)

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}
}
