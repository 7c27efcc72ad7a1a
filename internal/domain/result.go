package domain

import "fmt"

// Transport error codes carried by TransportError.Code.
const (
	CodeTimeout           = "timeout"
	CodeDNS               = "dns"
	CodeConnectionRefused = "connection_refused"
	CodeTLS               = "tls"
	CodeCanceled          = "canceled"
	CodeEncode            = "encode"
	CodeTransport         = "transport"
	CodePanic             = "panic"
)

// TransportError describes an HTTP exchange that could not complete.
type TransportError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("Error Code:%s, Error Message:%s", e.Code, e.Message)
}

// DeliveryResult is the outcome of one push. When Err is set the exchange
// failed and the remaining fields are zero. Body holds the decoded JSON reply,
// or nil when the reply was not valid JSON.
type DeliveryResult struct {
	StatusCode int               `json:"status_code,omitempty"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       any               `json:"body"`
	Err        *TransportError   `json:"error,omitempty"`
}

// OK reports whether the HTTP exchange completed. It says nothing about
// the status code or the robot's errcode.
func (r *DeliveryResult) OK() bool {
	return r != nil && r.Err == nil
}

func Failure(code, msg string) *DeliveryResult {
	return &DeliveryResult{Err: &TransportError{Code: code, Message: msg}}
}
