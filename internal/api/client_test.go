package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/its-camilo/AgenticNodes/internal/domain"
)

func testRunRequest() domain.RunRequest {
	return domain.RunRequest{
		Intent:        "source 50000 battery cells",
		BuyerLocation: "Detroit",
	}
}

func TestStartRunSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/process-intent", r.URL.Path)
		require.Equal(t, "true", r.Header.Get("ngrok-skip-browser-warning"))

		var req domain.RunRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "source 50000 battery cells", req.Intent)
		assert.Equal(t, "Detroit", req.BuyerLocation)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(domain.SimulationResponse{
			TraceID: "tr-1",
			Summary: "plan ready",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop())
	resp, err := client.StartRun(context.Background(), testRunRequest(), 5*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "tr-1", resp.TraceID)
	assert.Equal(t, "plan ready", resp.Summary)
}

func TestStartRunServerErrorSurfacesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop())
	_, err := client.StartRun(context.Background(), testRunRequest(), 5*time.Minute)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
	// The body is surfaced verbatim as the user-facing message.
	assert.Equal(t, "internal error", reqErr.Error())
}

func TestStartRunTimeout(t *testing.T) {
	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer srv.Close()
	defer close(blocked)

	client := NewClient(srv.URL, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.StartRun(ctx, testRunRequest(), 30*time.Millisecond)
	var toErr *TimeoutError
	require.ErrorAs(t, err, &toErr)
	assert.Equal(t, 30*time.Millisecond, toErr.Bound)
	// Cancellation is cooperative: the call returns promptly on expiry
	// instead of waiting out the server.
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestStartRunNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	client := NewClient(srv.URL, zap.NewNop())
	_, err := client.StartRun(context.Background(), testRunRequest(), 5*time.Minute)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.NotNil(t, errors.Unwrap(netErr))
}

func TestNegotiateWrapsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/process-intent/tr-9/negotiate", r.URL.Path)
		http.Error(w, "agent unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop())
	req, err := domain.NewNegotiateRequest("lower the price", "", "")
	require.NoError(t, err)

	_, err = client.Negotiate(context.Background(), "tr-9", req)
	var negErr *NegotiationError
	require.ErrorAs(t, err, &negErr)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "agent unavailable", reqErr.Body)
}

func TestNegotiateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.NegotiateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "lower the price", req.Message)
		require.NotNil(t, req.SupplierID)
		assert.Equal(t, "sup-1", *req.SupplierID)
		assert.Nil(t, req.Port)

		json.NewEncoder(w).Encode(domain.NegotiateResponse{
			TraceID:    "tr-9",
			AgentReply: "done",
			NegotiationHistory: []domain.ChatTurn{
				{Role: domain.RoleUser, Content: "lower the price"},
				{Role: domain.RoleAgent, Content: "done"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop())
	req, err := domain.NewNegotiateRequest("lower the price", "sup-1", "")
	require.NoError(t, err)

	resp, err := client.Negotiate(context.Background(), "tr-9", req)
	require.NoError(t, err)
	assert.Equal(t, "done", resp.AgentReply)
	assert.Len(t, resp.NegotiationHistory, 2)
}
