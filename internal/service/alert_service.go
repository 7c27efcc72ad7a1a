package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ricirt/dingtalk-alert/internal/domain"
)

// PanicAlertTimeout bounds ReportPanic so a slow robot cannot hold the
// recovered request's 500 response for the full delivery timeout.
const PanicAlertTimeout = 10 * time.Second

// Notifier is the subset of *dingtalk.Client the service depends on.
type Notifier interface {
	PushText(ctx context.Context, e domain.ErrorContext) *domain.DeliveryResult
	PushPlain(ctx context.Context, msg string) *domain.DeliveryResult
	PushMarkdown(ctx context.Context, e domain.ErrorContext) *domain.DeliveryResult
}

// AlertService validates relay requests and dispatches them to the notifier.
// HTTP handlers and middleware depend on this service, not on the client.
type AlertService struct {
	notifier Notifier
	logger   *zap.Logger
}

func NewAlertService(notifier Notifier, logger *zap.Logger) *AlertService {
	return &AlertService{notifier: notifier, logger: logger}
}

// Send validates req and pushes it with the push operation matching its kind.
// A transport failure returns the failure result together with an error
// wrapping domain.ErrDeliveryFailed.
func (s *AlertService) Send(ctx context.Context, req domain.AlertRequest) (*domain.DeliveryResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var res *domain.DeliveryResult
	switch req.Kind {
	case domain.KindText:
		res = s.notifier.PushText(ctx, req.ErrorContext())
	case domain.KindMarkdown:
		res = s.notifier.PushMarkdown(ctx, req.ErrorContext())
	default:
		res = s.notifier.PushPlain(ctx, req.Message)
	}

	if !res.OK() {
		return res, fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, res.Err)
	}
	return res, nil
}

// ReportPanic pushes a text alert for a recovered panic. The stack is
// captured here, so frame 0 is ReportPanic itself and is not rendered.
// Delivery is bounded by PanicAlertTimeout.
func (s *AlertService) ReportPanic(ctx context.Context, recovered any) {
	e := domain.CaptureMessage(fmt.Sprintf("panic: %v", recovered))

	ctx, cancel := context.WithTimeout(ctx, PanicAlertTimeout)
	defer cancel()
	res := s.notifier.PushText(ctx, e)
	if !res.OK() {
		s.logger.Warn("panic alert not delivered", zap.String("code", res.Err.Code))
	}
}
