package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/dimasp/angkut/internal/pkg/retry"
	"github.com/dimasp/angkut/services/driverapp"
	"github.com/dimasp/angkut/services/rides"
	"github.com/google/uuid"
)

// envelope is the standard response wrapper of the dispatch API
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// HTTPGateway talks to the dispatch backend over its JSON API. Requests go
// through the retrier: timeouts, connection errors and 5xx are retried,
// 4xx and decode errors fail immediately.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
	retrier *retry.Retrier
}

// NewHTTPGateway creates a new backend gateway
func NewHTTPGateway(baseURL string, timeout time.Duration, retrier *retry.Retrier) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		retrier: retrier,
	}
}

// call performs one retried request and decodes the data field into out
// (when out is non-nil).
func (g *HTTPGateway) call(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return retry.NotRetryable(err)
		}
	}

	return g.retrier.Execute(ctx, func(ctx context.Context) error {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
		if err != nil {
			return retry.NotRetryable(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := g.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error: %s", resp.Status)
		}

		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return retry.NotRetryable(fmt.Errorf("decoding response: %w", err))
		}
		if resp.StatusCode >= 400 || !env.Success {
			msg := env.Error
			if msg == "" {
				msg = resp.Status
			}
			return retry.NotRetryable(fmt.Errorf("request failed: %s", msg))
		}
		if out != nil && env.Data != nil {
			if err := json.Unmarshal(env.Data, out); err != nil {
				return retry.NotRetryable(fmt.Errorf("decoding response data: %w", err))
			}
		}
		return nil
	})
}

// Login starts a driver session
func (g *HTTPGateway) Login(ctx context.Context, driverID string, loc models.Location) (*driverapp.LoginResponse, error) {
	body := map[string]interface{}{
		"driver_id": driverID,
		"location":  loc,
	}
	var out driverapp.LoginResponse
	if err := g.call(ctx, http.MethodPost, "/drivers/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout ends the driver session
func (g *HTTPGateway) Logout(ctx context.Context, driverID string) (*models.SessionSummary, error) {
	var out struct {
		SessionSummary models.SessionSummary `json:"session_summary"`
	}
	if err := g.call(ctx, http.MethodPost, "/drivers/"+driverID+"/logout", nil, &out); err != nil {
		return nil, err
	}
	return &out.SessionSummary, nil
}

// UpdateLocation reports the driver's position
func (g *HTTPGateway) UpdateLocation(ctx context.Context, driverID string, loc models.Location) error {
	return g.call(ctx, http.MethodPut, "/drivers/"+driverID+"/location", loc, nil)
}

// GetOffer polls for a pending offer
func (g *HTTPGateway) GetOffer(ctx context.Context, driverID string) (*models.PendingOffer, bool, error) {
	var out struct {
		HasOffer bool                 `json:"has_offer"`
		Offer    *models.PendingOffer `json:"offer"`
	}
	if err := g.call(ctx, http.MethodGet, "/drivers/"+driverID+"/offers", nil, &out); err != nil {
		return nil, false, err
	}
	if !out.HasOffer || out.Offer == nil {
		return nil, false, nil
	}
	return out.Offer, true, nil
}

// AcceptOffer accepts a pending offer
func (g *HTTPGateway) AcceptOffer(ctx context.Context, driverID string, rideID uuid.UUID) error {
	return g.call(ctx, http.MethodPost,
		"/drivers/"+driverID+"/rides/"+rideID.String()+"/accept", nil, nil)
}

// RejectOffer rejects a pending offer
func (g *HTTPGateway) RejectOffer(ctx context.Context, driverID string, rideID uuid.UUID) error {
	return g.call(ctx, http.MethodPost,
		"/drivers/"+driverID+"/rides/"+rideID.String()+"/reject", nil, nil)
}

// ReportRideStatus reports ride progress
func (g *HTTPGateway) ReportRideStatus(ctx context.Context, driverID string, rideID uuid.UUID, status rides.DriverRideStatus) error {
	body := map[string]interface{}{"status": status}
	return g.call(ctx, http.MethodPut,
		"/drivers/"+driverID+"/rides/"+rideID.String()+"/status", body, nil)
}

// GetStats fetches the driver's aggregate stats
func (g *HTTPGateway) GetStats(ctx context.Context, driverID string) (*driverapp.StatsResponse, error) {
	var out driverapp.StatsResponse
	if err := g.call(ctx, http.MethodGet, "/drivers/"+driverID+"/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
