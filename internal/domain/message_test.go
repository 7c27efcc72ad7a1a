package domain_test

import (
	"strings"
	"testing"

	"github.com/ricirt/dingtalk-alert/internal/domain"
)

func TestAlertRequest_Validate(t *testing.T) {
	valid := domain.AlertRequest{
		Kind:    domain.KindText,
		Message: "disk full",
	}

	t.Run("valid request passes", func(t *testing.T) {
		r := valid
		if err := r.Validate(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("empty kind defaults to plain", func(t *testing.T) {
		r := valid
		r.Kind = ""
		if err := r.Validate(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if r.Kind != domain.KindPlain {
			t.Fatalf("expected kind=plain, got %s", r.Kind)
		}
	})

	t.Run("invalid kind", func(t *testing.T) {
		r := valid
		r.Kind = "actionCard"
		if err := r.Validate(); err != domain.ErrInvalidKind {
			t.Fatalf("expected ErrInvalidKind, got %v", err)
		}
	})

	t.Run("empty message", func(t *testing.T) {
		r := valid
		r.Message = ""
		if err := r.Validate(); err != domain.ErrEmptyMessage {
			t.Fatalf("expected ErrEmptyMessage, got %v", err)
		}
	})

	t.Run("message too long", func(t *testing.T) {
		r := valid
		r.Message = strings.Repeat("x", 20001)
		if err := r.Validate(); err != domain.ErrMessageTooLong {
			t.Fatalf("expected ErrMessageTooLong, got %v", err)
		}
	})

	t.Run("message at max length passes", func(t *testing.T) {
		r := valid
		r.Message = strings.Repeat("x", 20000)
		if err := r.Validate(); err != nil {
			t.Fatalf("expected no error at max length, got %v", err)
		}
	})

	t.Run("frames do not count toward the limit", func(t *testing.T) {
		r := valid
		r.Message = strings.Repeat("x", domain.MaxMessageBytes)
		r.Frames = []domain.Frame{{Function: "a"}, {File: strings.Repeat("f", 1000), Function: "b"}}
		if err := r.Validate(); err != nil {
			t.Fatalf("expected only Message to be length checked, got %v", err)
		}
	})

	t.Run("all valid kinds accepted", func(t *testing.T) {
		for _, k := range []domain.MessageKind{domain.KindPlain, domain.KindText, domain.KindMarkdown} {
			r := valid
			r.Kind = k
			if err := r.Validate(); err != nil {
				t.Fatalf("kind %q: expected no error, got %v", k, err)
			}
		}
	})
}

func TestAlertRequest_ErrorContext(t *testing.T) {
	r := domain.AlertRequest{
		Message: "boom",
		Frames:  []domain.Frame{{File: "a.go", Line: 3, Function: "main.run"}},
	}
	ec := r.ErrorContext()
	if ec.Message != "boom" || len(ec.Frames) != 1 || ec.Frames[0].Function != "main.run" {
		t.Fatalf("unexpected error context %+v", ec)
	}
}
