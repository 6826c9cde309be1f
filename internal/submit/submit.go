// Package submit hands the final selection snapshot to the save endpoint.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/mark3labs/shopcfg/internal/logger"
	"github.com/mark3labs/shopcfg/internal/store"
)

// DefaultTimeout bounds a single save request.
const DefaultTimeout = 15 * time.Second

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

var (
	// ErrInFlight is returned while another submission is outstanding.
	ErrInFlight = errors.New("submission already in flight")
	// ErrMalformedResponse is returned when a 2xx body is not valid JSON.
	ErrMalformedResponse = errors.New("malformed response body")
)

// StatusError is a non-2xx reply. Body holds the raw response text.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("save endpoint returned %d", e.Code)
	}
	return fmt.Sprintf("save endpoint returned %d: %s", e.Code, e.Body)
}

// Config configures a Gateway.
type Config struct {
	Endpoint string
	Timeout  time.Duration
	Client   *http.Client
}

// Gateway posts snapshots to the save endpoint, one at a time.
type Gateway struct {
	endpoint string
	timeout  time.Duration
	client   *http.Client
	inFlight atomic.Bool
	log      *logger.Logger
}

// New creates a Gateway. A zero Timeout selects DefaultTimeout and a nil
// Client selects http.DefaultClient.
func New(cfg Config) *Gateway {
	g := &Gateway{
		endpoint: cfg.Endpoint,
		timeout:  cfg.Timeout,
		client:   cfg.Client,
		log:      logger.With("submit"),
	}
	if g.timeout <= 0 {
		g.timeout = DefaultTimeout
	}
	if g.client == nil {
		g.client = http.DefaultClient
	}
	return g
}

// Endpoint returns the save URL.
func (g *Gateway) Endpoint() string { return g.endpoint }

// InFlight reports whether a submission is outstanding.
func (g *Gateway) InFlight() bool { return g.inFlight.Load() }

// Submit posts cats as a JSON array. id, when set, is sent as the
// Idempotency-Key so the endpoint can drop a replayed snapshot. The decoded
// response may be any JSON value and is returned for diagnostics only.
func (g *Gateway) Submit(ctx context.Context, id string, cats []store.Category) (any, error) {
	if !g.inFlight.CompareAndSwap(false, true) {
		return nil, ErrInFlight
	}
	defer g.inFlight.Store(false)

	if cats == nil {
		cats = []store.Category{}
	}
	body, err := json.Marshal(cats)
	if err != nil {
		return nil, fmt.Errorf("marshaling payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id != "" {
		req.Header.Set("Idempotency-Key", id)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Error("post %s failed: %v", g.endpoint, err)
		return nil, fmt.Errorf("posting selection: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
		g.log.Error("%v", serr)
		return nil, serr
	}

	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		g.log.Error("decoding response: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	g.log.Info("saved %d categories in %s: %v", len(cats), time.Since(start).Round(time.Millisecond), out)
	return out, nil
}
