package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apimw "github.com/ricirt/dingtalk-alert/internal/api/middleware"
	"github.com/ricirt/dingtalk-alert/internal/domain"
	"github.com/ricirt/dingtalk-alert/internal/service"
)

// AlertHandler relays alerts to the DingTalk robot.
type AlertHandler struct {
	svc    *service.AlertService
	logger *zap.Logger
}

func NewAlertHandler(svc *service.AlertService, logger *zap.Logger) *AlertHandler {
	return &AlertHandler{svc: svc, logger: logger}
}

// Send handles POST /api/v1/alerts and POST /api/v1/alerts/{kind}
//
// @Summary     Relay an alert to DingTalk
// @Tags        alerts
// @Accept      json
// @Produce     json
// @Param       kind  path      string               false  "plain, text or markdown; overrides body kind"
// @Param       body  body      domain.AlertRequest  true   "Alert payload"
// @Success     200   {object}  domain.DeliveryResult
// @Failure     422   {object}  map[string]string
// @Failure     502   {object}  map[string]string
// @Router      /api/v1/alerts [post]
func (h *AlertHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req domain.AlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if kind := chi.URLParam(r, "kind"); kind != "" {
		req.Kind = domain.MessageKind(kind)
	}

	res, err := h.svc.Send(r.Context(), req)
	if errors.Is(err, domain.ErrDeliveryFailed) {
		h.logger.Warn("alert relay failed",
			zap.String("correlation_id", apimw.GetCorrelationID(r.Context())),
			zap.String("code", res.Err.Code),
			zap.String("message", res.Err.Message),
		)
		respondJSON(w, http.StatusBadGateway, map[string]string{
			"error": res.Err.Message,
			"code":  res.Err.Code,
		})
		return
	}
	if err != nil {
		mapError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, res)
}
