// Package providers holds one client per external data provider. Each client
// owns a single API contract and returns the provider's data in a plain Go
// shape; classification happens in the service layer.
package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/nitesh/risk_dashboard/internal/metrics"
)

var (
	// ErrMissingAPIKey is returned before any network call when a provider
	// needs a credential that is not configured.
	ErrMissingAPIKey = errors.New("api key not configured")
	// ErrNoData means the provider answered but the payload had nothing usable.
	ErrNoData = errors.New("provider returned no data")
)

// StatusError is a non-200 answer from a provider.
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.Provider, e.Code)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Code, e.Body)
}

const DefaultTimeout = 10 * time.Second

// Deps are shared by every client. Zero values get sane defaults.
type Deps struct {
	Client  *http.Client
	Limiter Limiter
}

func (d Deps) base(name, baseURL string) base {
	hc := d.Client
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}
	lim := d.Limiter
	if lim == nil {
		lim = NoLimit{}
	}
	return base{name: name, baseURL: baseURL, client: hc, limiter: lim}
}

type base struct {
	name    string
	baseURL string
	client  *http.Client
	limiter Limiter
}

func (b *base) Name() string { return b.name }

func (b *base) get(ctx context.Context, reqURL string, header http.Header) ([]byte, error) {
	if err := b.limiter.Allow(ctx, b.name); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: new request: %w", b.name, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := b.client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		metrics.ObserveProvider(b.name, "error", elapsed)
		return nil, fmt.Errorf("%s: request failed: %w", b.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveProvider(b.name, "error", elapsed)
		return nil, fmt.Errorf("%s: read body: %w", b.name, err)
	}
	slog.Debug("provider call", "provider", b.name, "status", resp.StatusCode, "latency", elapsed)

	if resp.StatusCode != http.StatusOK {
		metrics.ObserveProvider(b.name, "status", elapsed)
		return nil, &StatusError{Provider: b.name, Code: resp.StatusCode, Body: truncate(string(body), 200)}
	}
	metrics.ObserveProvider(b.name, "ok", elapsed)
	return body, nil
}

func (b *base) getJSON(ctx context.Context, reqURL string, header http.Header, out any) error {
	data, err := b.get(ctx, reqURL, header)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode: %w", b.name, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
