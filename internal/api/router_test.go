package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ricirt/dingtalk-alert/internal/api"
	"github.com/ricirt/dingtalk-alert/internal/domain"
	"github.com/ricirt/dingtalk-alert/internal/service"
)

type stubNotifier struct {
	kind   domain.MessageKind
	result *domain.DeliveryResult
}

func (s *stubNotifier) PushText(context.Context, domain.ErrorContext) *domain.DeliveryResult {
	s.kind = domain.KindText
	return s.result
}

func (s *stubNotifier) PushPlain(context.Context, string) *domain.DeliveryResult {
	s.kind = domain.KindPlain
	return s.result
}

func (s *stubNotifier) PushMarkdown(context.Context, domain.ErrorContext) *domain.DeliveryResult {
	s.kind = domain.KindMarkdown
	return s.result
}

func newRouter(n *stubNotifier) http.Handler {
	svc := service.NewAlertService(n, zap.NewNop())
	return api.NewRouter(svc, prometheus.NewRegistry(), zap.NewNop(), true)
}

func okResult() *domain.DeliveryResult {
	return &domain.DeliveryResult{
		StatusCode: 200,
		Headers:    map[string]string{"0": "HTTP/1.1 200 OK"},
		Body:       map[string]any{"errcode": float64(0), "errmsg": "ok"},
	}
}

func post(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_SendAlert(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     string
		wantKind domain.MessageKind
	}{
		{"default kind", "/api/v1/alerts", `{"message":"disk full"}`, domain.KindPlain},
		{"kind in body", "/api/v1/alerts", `{"kind":"markdown","message":"disk full"}`, domain.KindMarkdown},
		{"kind in path", "/api/v1/alerts/text", `{"message":"disk full","frames":[{"function":"main.main"}]}`, domain.KindText},
		{"path overrides body", "/api/v1/alerts/plain", `{"kind":"text","message":"disk full"}`, domain.KindPlain},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n := &stubNotifier{result: okResult()}
			rec := post(newRouter(n), tc.path, tc.body)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if n.kind != tc.wantKind {
				t.Fatalf("expected %s push, got %s", tc.wantKind, n.kind)
			}

			var got struct {
				StatusCode int               `json:"status_code"`
				Headers    map[string]string `json:"headers"`
				Body       map[string]any    `json:"body"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if got.StatusCode != 200 || got.Body["errmsg"] != "ok" || got.Headers["0"] != "HTTP/1.1 200 OK" {
				t.Fatalf("unexpected response %+v", got)
			}
		})
	}
}

func TestRouter_SendAlert_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		result     *domain.DeliveryResult
		wantStatus int
	}{
		{"invalid json", "/api/v1/alerts", `{`, okResult(), http.StatusBadRequest},
		{"empty message", "/api/v1/alerts", `{"message":""}`, okResult(), http.StatusUnprocessableEntity},
		{"invalid kind", "/api/v1/alerts/actionCard", `{"message":"x"}`, okResult(), http.StatusUnprocessableEntity},
		{"delivery failed", "/api/v1/alerts", `{"message":"x"}`, domain.Failure(domain.CodeTimeout, "deadline"), http.StatusBadGateway},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(newRouter(&stubNotifier{result: tc.result}), tc.path, tc.body)
			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tc.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouter_DeliveryFailureBody(t *testing.T) {
	n := &stubNotifier{result: domain.Failure(domain.CodeConnectionRefused, "dial tcp: refused")}
	rec := post(newRouter(n), "/api/v1/alerts", `{"message":"x"}`)

	var got map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["code"] != domain.CodeConnectionRefused || got["error"] != "dial tcp: refused" {
		t.Fatalf("unexpected failure body %v", got)
	}
}

func TestRouter_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&stubNotifier{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Correlation-ID") == "" {
		t.Fatal("expected a generated correlation id")
	}
}

func TestRouter_CorrelationIDEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Correlation-ID", "abc-123")
	rec := httptest.NewRecorder()
	newRouter(&stubNotifier{}).ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Correlation-ID"); got != "abc-123" {
		t.Fatalf("expected correlation id to be echoed, got %q", got)
	}
}

func TestRouter_Metrics(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&stubNotifier{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
