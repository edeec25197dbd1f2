package embedding

import (
	"context"
	"errors"
	"fmt"
	"time"

	imetrics "MarketIntel/internal/service/metrics"
	xhttp "MarketIntel/pkg/http"
	applogger "MarketIntel/pkg/logger"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
)

// BreakerSettings tunes the circuit breaker around the model service.
type BreakerSettings struct {
	FailureThreshold uint32
	MaxRequests      uint32
	Timeout          time.Duration
}

// HTTPServiceBase centralizes client construction, JSON POSTs and breaker
// protection for model-serving HTTP APIs.
type HTTPServiceBase struct {
	name    string
	baseURL string
	headers map[string]string
	client  *xhttp.Client
	cb      *gobreaker.CircuitBreaker[[]byte]
}

// NewHTTPServiceBase builds an HTTP client with timeout, base URL and breaker.
func NewHTTPServiceBase(name, baseURL string, timeout time.Duration, headers map[string]string, bs BreakerSettings, l *applogger.Logger) *HTTPServiceBase {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if bs.FailureThreshold == 0 {
		bs.FailureThreshold = 5
	}
	if bs.Timeout <= 0 {
		bs.Timeout = 30 * time.Second
	}

	imetrics.EmbeddingBreakerState.WithLabelValues(name).Set(0)
	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: bs.MaxRequests,
		Timeout:     bs.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= bs.FailureThreshold
		},
		// a caller walking away is not a model failure
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			imetrics.EmbeddingBreakerState.WithLabelValues(name).Set(float64(to))
			if l != nil {
				l.Warn("embedding breaker state change",
					applogger.String("breaker", name),
					applogger.String("from", from.String()),
					applogger.String("to", to.String()),
				)
			}
		},
	})

	return &HTTPServiceBase{
		name:    name,
		baseURL: baseURL,
		headers: headers,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		cb:      cb,
	}
}

// PostJSON posts payload to path under baseURL and decodes the JSON answer into dest.
func (b *HTTPServiceBase) PostJSON(ctx context.Context, path string, payload interface{}, dest interface{}) error {
	if b.client == nil || b.baseURL == "" {
		return fmt.Errorf("%s http client not initialized", b.name)
	}

	headers := map[string]string{"Content-Type": "application/json"}
	for k, v := range b.headers {
		headers[k] = v
	}

	raw, err := b.cb.Execute(func() ([]byte, error) {
		var body []byte
		err := b.client.SendAndParse(ctx, &xhttp.RequestOptions{
			Method:  xhttp.MethodPost,
			URL:     b.baseURL + path,
			Headers: headers,
			Body:    payload,
		}, &body)
		return body, err
	})
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// BreakerOpen reports whether err came from a rejected call.
func BreakerOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
