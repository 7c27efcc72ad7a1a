package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ricirt/dingtalk-alert/internal/api/handler"
	apimw "github.com/ricirt/dingtalk-alert/internal/api/middleware"
	"github.com/ricirt/dingtalk-alert/internal/service"
)

// NewRouter wires the chi router, attaches all middleware, and registers
// every route. It is the single source of truth for the HTTP surface area.
// Panics are pushed to DingTalk through svc unless alertOnPanic is false.
func NewRouter(
	svc *service.AlertService,
	reg prometheus.Gatherer,
	logger *zap.Logger,
	alertOnPanic bool,
) http.Handler {
	r := chi.NewRouter()

	var reporter apimw.PanicReporter
	if alertOnPanic {
		reporter = svc
	}

	// --- global middleware (applied to every route) ---
	r.Use(apimw.CorrelationID) // X-Correlation-ID inject / echo
	r.Use(apimw.RequestLogger(logger))
	r.Use(apimw.AlertOnPanic(reporter, logger))
	r.Use(chimw.RealIP)             // trust X-Forwarded-For / X-Real-IP
	r.Use(chimw.RequestSize(1<<20)) // 1 MB max request body

	// --- handler instances ---
	ah := handler.NewAlertHandler(svc, logger)
	hh := handler.NewHealthHandler()

	// --- routes ---
	r.Get("/health", hh.Health)

	// Raw Prometheus scrape endpoint (for Prometheus server / Grafana)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/alerts", ah.Send)
		r.Post("/alerts/{kind}", ah.Send)
	})

	return r
}
