package inventory

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cuemby/hutch/pkg/log"
	"github.com/cuemby/hutch/pkg/metrics"
	"github.com/cuemby/hutch/pkg/types"
	"github.com/rs/zerolog"
)

const listPath = "/apps/globalappsspecifications"

// Client fetches application specifications from the network's directory
// service
type Client struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewClient creates a new inventory client with a bounded request timeout
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: log.WithComponent("inventory"),
	}
}

// listResponse is the directory service envelope
type listResponse struct {
	Status string          `json:"status"`
	Data   []types.AppSpec `json:"data"`
}

// ListApplications fetches the full set of known application specifications.
// It never returns an error: on any failure it logs a warning and returns an
// empty slice, which the reconciler treats as "do nothing this iteration"
// rather than "all apps removed".
func (c *Client) ListApplications(ctx context.Context) []types.AppSpec {
	url := c.baseURL + listPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to build inventory request")
		metrics.InventoryFailuresTotal.Inc()
		return nil
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Inventory fetch failed")
		metrics.InventoryFailuresTotal.Inc()
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Msg("Unexpected inventory response status")
		metrics.InventoryFailuresTotal.Inc()
		return nil
	}

	var envelope listResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to decode inventory response")
		metrics.InventoryFailuresTotal.Inc()
		return nil
	}

	if envelope.Status != "success" {
		c.logger.Warn().Str("status", envelope.Status).Msg("Inventory returned non-success envelope")
		metrics.InventoryFailuresTotal.Inc()
		return nil
	}

	return envelope.Data
}
