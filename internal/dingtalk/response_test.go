package dingtalk_test

import (
	"testing"

	"github.com/ricirt/dingtalk-alert/internal/dingtalk"
)

func TestParseHeaders(t *testing.T) {
	t.Run("status line and headers", func(t *testing.T) {
		h := dingtalk.ParseHeaders("HTTP/1.1 200 OK\r\nContent-Type: application/json\r\n")
		if h[dingtalk.StatusLineKey] != "HTTP/1.1 200 OK" {
			t.Fatalf("expected status line under sentinel key, got %q", h[dingtalk.StatusLineKey])
		}
		if h["Content-Type"] != "application/json" {
			t.Fatalf("expected Content-Type=application/json, got %q", h["Content-Type"])
		}
		if len(h) != 2 {
			t.Fatalf("expected 2 entries, got %d: %v", len(h), h)
		}
	})

	t.Run("malformed lines skipped", func(t *testing.T) {
		h := dingtalk.ParseHeaders("HTTP/1.1 200 OK\r\nno-separator\r\n: empty-name\r\nX-Ok: 1\r\n\r\n")
		if len(h) != 2 || h["X-Ok"] != "1" {
			t.Fatalf("unexpected headers %v", h)
		}
	})

	t.Run("splits on first separator only", func(t *testing.T) {
		h := dingtalk.ParseHeaders("HTTP/1.1 200 OK\r\nX-Note: a: b\r\n")
		if h["X-Note"] != "a: b" {
			t.Fatalf("expected value %q, got %q", "a: b", h["X-Note"])
		}
	})

	t.Run("later duplicate wins", func(t *testing.T) {
		h := dingtalk.ParseHeaders("HTTP/1.1 200 OK\r\nSet-Cookie: a=1\r\nSet-Cookie: b=2\r\n")
		if h["Set-Cookie"] != "b=2" {
			t.Fatalf("expected last value, got %q", h["Set-Cookie"])
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if h := dingtalk.ParseHeaders(""); len(h) != 0 {
			t.Fatalf("expected empty map, got %v", h)
		}
	})
}
