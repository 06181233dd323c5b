package issuer

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cuemby/swanling/pkg/types"
)

// SuccessPredicate decides whether an HTTP response counts as successful.
// The default checks for a 2xx/3xx status, matching teacher's HTTPChecker
// status-range convention.
type SuccessPredicate func(resp *http.Response) bool

// DefaultSuccessPredicate accepts any status in [200, 399].
func DefaultSuccessPredicate(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode <= 399
}

// Spec describes one request a virtual user wants issued.
type Spec struct {
	Name    string
	Method  string
	Path    string
	Headers map[string]string
	Body    string
}

// Issuer dispatches a Spec and returns the outcome. Implementations must
// never return a non-nil error for an ordinary failed HTTP call — network
// errors and non-success status codes both come back as an unsuccessful
// RequestOutcome, since those are exactly the data points a load test
// needs to record.
type Issuer interface {
	Issue(ctx context.Context, spec Spec) types.RequestOutcome
}

// HTTPIssuer issues requests against one fixed host.
type HTTPIssuer struct {
	Host      string
	Client    *http.Client
	Predicate SuccessPredicate
}

// New creates an HTTPIssuer targeting host, with a 30s default timeout —
// the same default teacher's health checkers use for outbound HTTP calls.
func New(host string) *HTTPIssuer {
	return &HTTPIssuer{
		Host:      strings.TrimSuffix(host, "/"),
		Client:    &http.Client{Timeout: 30 * time.Second},
		Predicate: DefaultSuccessPredicate,
	}
}

// WithTimeout sets the HTTP client timeout.
func (h *HTTPIssuer) WithTimeout(d time.Duration) *HTTPIssuer {
	h.Client.Timeout = d
	return h
}

// WithSuccessPredicate overrides the default status-range success check.
func (h *HTTPIssuer) WithSuccessPredicate(p SuccessPredicate) *HTTPIssuer {
	h.Predicate = p
	return h
}

// Issue dispatches spec against h.Host and returns the outcome. The
// returned ResponseTime covers only the round trip itself — building the
// request and interpreting the response are excluded, matching spec.md
// §3's schema field.
func (h *HTTPIssuer) Issue(ctx context.Context, spec Spec) types.RequestOutcome {
	url := h.Host + spec.Path
	method := spec.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if spec.Body != "" {
		body = strings.NewReader(spec.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return types.RequestOutcome{Method: method, URL: url, Success: false, Error: err.Error()}
	}
	for k, v := range spec.Headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := h.Client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return types.RequestOutcome{
			Method:       method,
			URL:          url,
			Success:      false,
			Error:        err.Error(),
			ResponseTime: elapsed,
		}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	finalURL := url
	redirected := false
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
		redirected = finalURL != url
	}

	success := h.Predicate(resp)
	outcome := types.RequestOutcome{
		Method:       method,
		URL:          url,
		FinalURL:     finalURL,
		Redirected:   redirected,
		StatusCode:   resp.StatusCode,
		Success:      success,
		ResponseTime: elapsed,
	}
	if !success {
		outcome.Error = http.StatusText(resp.StatusCode)
	}
	return outcome
}
