package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/DRSN-tech/pos-terminal/internal/cfg"
	"github.com/DRSN-tech/pos-terminal/internal/infrastructure/auth"
	"github.com/DRSN-tech/pos-terminal/pkg/e"
	"github.com/DRSN-tech/pos-terminal/pkg/jitter"
	"github.com/DRSN-tech/pos-terminal/pkg/logger"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	idempotencyHeader = "Idempotency-Key"
	maxErrorBody      = 512
)

// errNotFound каждый эндпоинт переводит в свою доменную ошибку.
var errNotFound = errors.New("resource not found")

type rawResponse struct {
	status int
	body   []byte
}

// Client работает с бэкендом склада. GET-запросы повторяются
// с экспоненциальным backoff, запросы на запись отправляются ровно один раз.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*rawResponse]
	cfg        cfg.BackendCfg
	logger     logger.Logger
}

func NewClient(config cfg.BackendCfg, logger logger.Logger) *Client {
	return NewClientWithTransport(config, http.DefaultTransport, logger)
}

// NewClientWithTransport позволяет тестам подложить свой транспорт под инструментированный.
func NewClientWithTransport(config cfg.BackendCfg, base http.RoundTripper, logger logger.Logger) *Client {
	c := &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: otelhttp.NewTransport(base),
		},
		cfg:    config,
		logger: logger,
	}

	c.breaker = gobreaker.NewCircuitBreaker[*rawResponse](gobreaker.Settings{
		Name:        "inventory-backend",
		MaxRequests: 1,
		Timeout:     config.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return config.BreakerMaxFailures > 0 && counts.ConsecutiveFailures >= uint32(config.BreakerMaxFailures)
		},
		// отменённый клиентом запрос не говорит о состоянии бэкенда
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnf("circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return c
}

// getJSON отправляет GET-запрос и декодирует тело ответа 2xx в out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	var (
		res *rawResponse
		err error
	)

	for attempt := 0; ; attempt++ {
		res, err = c.do(ctx, http.MethodGet, path, query, nil, nil)
		if err == nil || !c.retryable(err) || attempt >= c.cfg.MaxRetries {
			break
		}

		c.logger.Debugf("GET %s failed (attempt %d): %v", path, attempt+1, err)
		if !jitter.Sleep(ctx.Done(), c.cfg.RetryBaseDelay, c.cfg.RetryMaxDelay, attempt) {
			return ctx.Err()
		}
	}
	if err != nil {
		return err
	}

	return decode(res, out)
}

// sendJSON один раз отправляет запрос на запись и декодирует тело ответа 2xx в out.
func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any, header http.Header) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	res, err := c.do(ctx, method, path, nil, body, header)
	if err != nil {
		return err
	}

	return decode(res, out)
}

// do выполняет один запрос через breaker. Ошибки транспорта и 5xx считаются
// сбоями breaker'а, 4xx возвращаются как ошибки и не размыкают его.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte, header http.Header) (*rawResponse, error) {
	res, err := c.breaker.Execute(func() (*rawResponse, error) {
		res, err := c.roundTrip(ctx, method, path, query, body, header)
		if err != nil {
			return nil, err
		}
		if res.status >= http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: %s %s: status %d: %s", e.ErrBackendUnavailable, method, path, res.status, snippet(res.body))
		}
		return res, nil
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return nil, fmt.Errorf("%w: %w", e.ErrBackendUnavailable, err)
	case err != nil:
		return nil, err
	}

	switch {
	case res.status == http.StatusNotFound:
		return nil, errNotFound
	case res.status == http.StatusUnauthorized || res.status == http.StatusForbidden:
		return nil, e.ErrUnauthorized
	case res.status >= http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %s %s: status %d: %s", e.ErrBackendRejected, method, path, res.status, snippet(res.body))
	}

	return res, nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body []byte, header http.Header) (*rawResponse, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header[k] = v
	}
	if token, ok := auth.TokenFromCtx(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", e.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", e.ErrBackendUnavailable, err)
	}

	return &rawResponse{status: resp.StatusCode, body: data}, nil
}

// retryable сообщает, можно ли повторить неудачный GET.
func (c *Client) retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	return errors.Is(err, e.ErrBackendUnavailable)
}

func decode(res *rawResponse, out any) error {
	if out == nil || len(bytes.TrimSpace(res.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.body, out); err != nil {
		return fmt.Errorf("%w: decode response: %w", e.ErrBackendRejected, err)
	}
	return nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody]
	}
	return s
}

func idempotencyHeaderFor(key string) http.Header {
	h := http.Header{}
	if key != "" {
		h.Set(idempotencyHeader, key)
	}
	return h
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	q.Set("limit", fmt.Sprint(limit))
	return q
}
