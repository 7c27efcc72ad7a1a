package dingtalk

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/ricirt/dingtalk-alert/internal/domain"
)

// StatusLineKey is the header map key holding the response status line.
const StatusLineKey = "0"

// ParseHeaders turns a raw header block into a map. The first line is the
// status line and is stored under StatusLineKey; later lines are split on
// the first ": " and dropped when they have no name. Repeated names keep
// the last value.
func ParseHeaders(raw string) map[string]string {
	headers := make(map[string]string)
	for i, line := range strings.Split(raw, "\r\n") {
		if line == "" {
			continue
		}
		if i == 0 {
			headers[StatusLineKey] = line
			continue
		}
		idx := strings.Index(line, ": ")
		if idx <= 0 {
			continue
		}
		headers[line[:idx]] = line[idx+2:]
	}
	return headers
}

// decodeBody returns the decoded JSON value, or nil if body is not JSON.
func decodeBody(body []byte) any {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil
	}
	return v
}

// classify maps a transport error to a TransportError code.
func classify(err error) string {
	var (
		dnsErr  *net.DNSError
		certErr *tls.CertificateVerificationError
		unknown x509.UnknownAuthorityError
		hostErr x509.HostnameError
		recErr  tls.RecordHeaderError
		netErr  net.Error
	)

	switch {
	case errors.Is(err, context.Canceled):
		return domain.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return domain.CodeTimeout
	case errors.As(err, &dnsErr):
		return domain.CodeDNS
	case errors.Is(err, syscall.ECONNREFUSED):
		return domain.CodeConnectionRefused
	case errors.As(err, &certErr),
		errors.As(err, &unknown),
		errors.As(err, &hostErr),
		errors.As(err, &recErr):
		return domain.CodeTLS
	case errors.As(err, &netErr) && netErr.Timeout():
		return domain.CodeTimeout
	}
	return domain.CodeTransport
}
