package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/its-camilo/AgenticNodes/internal/domain"
)

// Sent on every request; tells tunnel intermediaries to skip their
// interstitial warning page.
const skipWarningHeader = "ngrok-skip-browser-warning"

// Client talks to the simulation service: run start, negotiation, and the
// progress event stream.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the given base URL. The http.Client
// carries no timeout of its own; every call is bounded by its context.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// StartRun submits a run and blocks until the full simulation report
// arrives or ctx ends. The caller bounds ctx with the run timeout; expiry
// cancels the underlying request cooperatively and maps to *TimeoutError.
func (c *Client) StartRun(ctx context.Context, req domain.RunRequest, bound time.Duration) (*domain.SimulationResponse, error) {
	var resp domain.SimulationResponse
	if err := c.postJSON(ctx, c.baseURL+"/process-intent", req, &resp); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TimeoutError{Bound: bound}
		}
		return nil, err
	}
	c.logger.Info("run resolved",
		zap.String("trace_id", resp.TraceID),
		zap.Int("suppliers", len(resp.Report.DiscoveryPaths)),
		zap.Int("routes", len(resp.Report.Routes)))
	return &resp, nil
}

// Negotiate submits one negotiation exchange for a completed run. All
// failures are wrapped as *NegotiationError so callers can scope them to
// the negotiation pane.
func (c *Client) Negotiate(ctx context.Context, traceID string, req domain.NegotiateRequest) (*domain.NegotiateResponse, error) {
	url := fmt.Sprintf("%s/process-intent/%s/negotiate", c.baseURL, traceID)
	var resp domain.NegotiateResponse
	if err := c.postJSON(ctx, url, req, &resp); err != nil {
		return nil, &NegotiationError{Err: err}
	}
	return &resp, nil
}

// postJSON issues one JSON request/response exchange. Non-2xx statuses
// become *RequestError with the body verbatim; transport failures become
// *NetworkError unless ctx ended first.
func (c *Client) postJSON(ctx context.Context, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(skipWarningHeader, "true")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("request failed",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode))
		return &RequestError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
