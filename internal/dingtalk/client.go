package dingtalk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ricirt/dingtalk-alert/internal/domain"
	"github.com/ricirt/dingtalk-alert/internal/provider"
)

// DefaultBaseURL is the robot webhook endpoint; the access token is appended.
const DefaultBaseURL = "https://oapi.dingtalk.com/robot/send?access_token="

// Config describes one alerting channel.
type Config struct {
	BaseURL string
	Token   string

	// TraceDepth caps the stack frames PushText renders. Zero means
	// DefaultTraceDepth; a negative value renders the header only.
	TraceDepth int

	// Now stamps formatted messages; nil means time.Now.
	Now func() time.Time
}

// Hooks receive delivery outcomes. Either may be nil.
type Hooks struct {
	OnDelivered func(kind domain.MessageKind, statusCode int, latency time.Duration)
	OnFailed    func(kind domain.MessageKind, code string)
}

// Client pushes alerts to one DingTalk robot. It holds only immutable state
// and is safe for concurrent use.
type Client struct {
	url        string
	traceDepth int
	prov       provider.Provider
	logger     *zap.Logger
	hooks      Hooks
	now        func() time.Time
}

// New builds a client for token with the default transport and no logging.
// The token is not validated; a bad token is rejected by DingTalk at send time.
func New(token string) *Client {
	return NewClient(Config{Token: token}, nil, nil, Hooks{})
}

// NewClient builds a client from cfg. A nil prov uses a WebhookProvider with
// provider.DefaultOptions; a nil logger discards logs.
func NewClient(cfg Config, prov provider.Provider, logger *zap.Logger, hooks Hooks) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TraceDepth == 0 {
		cfg.TraceDepth = DefaultTraceDepth
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if prov == nil {
		prov = provider.NewWebhookProvider(provider.DefaultOptions())
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if hooks.OnDelivered == nil {
		hooks.OnDelivered = func(domain.MessageKind, int, time.Duration) {}
	}
	if hooks.OnFailed == nil {
		hooks.OnFailed = func(domain.MessageKind, string) {}
	}
	return &Client{
		url:        cfg.BaseURL + cfg.Token,
		traceDepth: cfg.TraceDepth,
		prov:       prov,
		logger:     logger,
		hooks:      hooks,
		now:        cfg.Now,
	}
}

// URL returns the destination the client posts to.
func (c *Client) URL() string { return c.url }

// PushText sends e formatted with its stack trace as a text message.
func (c *Client) PushText(ctx context.Context, e domain.ErrorContext) *domain.DeliveryResult {
	return c.deliver(ctx, domain.KindText, func() domain.OutboundMessage {
		return domain.NewTextMessage(FormatMessage(e, "", c.traceDepth, c.now()))
	})
}

// PushPlain sends msg verbatim as a text message.
func (c *Client) PushPlain(ctx context.Context, msg string) *domain.DeliveryResult {
	return c.deliver(ctx, domain.KindText, func() domain.OutboundMessage {
		return domain.NewTextMessage(msg)
	})
}

// PushMarkdown sends e as a markdown message whose title and body are both
// the bare error message. Stack frames are not rendered.
func (c *Client) PushMarkdown(ctx context.Context, e domain.ErrorContext) *domain.DeliveryResult {
	return c.deliver(ctx, domain.KindMarkdown, func() domain.OutboundMessage {
		return domain.NewMarkdownMessage(e.Message, e.Message)
	})
}

// deliver builds the message with build and posts it. Building happens under
// the same recover as the exchange, so formatting panics become failure
// results too.
func (c *Client) deliver(ctx context.Context, kind domain.MessageKind, build func() domain.OutboundMessage) (res *domain.DeliveryResult) {
	start := time.Now()
	log := c.logger.With(zap.String("msgtype", string(kind)))

	defer func() {
		if r := recover(); r != nil {
			res = domain.Failure(domain.CodePanic, fmt.Sprint(r))
			log.Error("alert delivery panicked", zap.Any("panic", r))
			c.hooks.OnFailed(kind, domain.CodePanic)
		}
	}()

	body, err := json.Marshal(build())
	if err != nil {
		return c.fail(log, kind, domain.CodeEncode, err)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json;charset=utf-8")
	header.Set("Connection", "Keep-Alive")

	resp, err := c.prov.Send(ctx, c.url, body, header)
	if err != nil {
		return c.fail(log, kind, classify(err), err)
	}

	elapsed := time.Since(start)
	res = &domain.DeliveryResult{
		StatusCode: resp.StatusCode,
		Headers:    ParseHeaders(resp.RawHeader),
		Body:       decodeBody(resp.Body),
	}

	c.hooks.OnDelivered(kind, resp.StatusCode, elapsed)
	log.Debug("alert delivered",
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("latency", elapsed),
	)
	return res
}

func (c *Client) fail(log *zap.Logger, kind domain.MessageKind, code string, err error) *domain.DeliveryResult {
	log.Warn("alert delivery failed", zap.String("code", code), zap.Error(err))
	c.hooks.OnFailed(kind, code)
	return domain.Failure(code, err.Error())
}
