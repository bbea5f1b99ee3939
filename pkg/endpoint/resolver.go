package endpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cuemby/hutch/pkg/log"
	"github.com/cuemby/hutch/pkg/metrics"
	"github.com/cuemby/hutch/pkg/types"
	"github.com/rs/zerolog"
)

// Resolver looks up the currently-active network endpoint of an application
// through the partitioned lookup service
type Resolver struct {
	client *http.Client
	logger zerolog.Logger
}

// NewResolver creates a new resolver with a bounded request timeout
func NewResolver(timeout time.Duration) *Resolver {
	return &Resolver{
		client: &http.Client{
			Timeout: timeout,
		},
		logger: log.WithComponent("endpoint"),
	}
}

// lookupResponse is the lookup shard envelope
type lookupResponse struct {
	Status string `json:"status"`
	Data   struct {
		IPs []string `json:"ips"`
	} `json:"data"`
}

// ResolveMasterEndpoint asks the authoritative shard for the application's
// currently-active addresses. Absent (ok=false) is a normal, frequent outcome
// and never an error: new apps have no endpoint yet and restarting shards
// answer 503. The caller degrades by skipping the app, never by aborting.
func (r *Resolver) ResolveMasterEndpoint(ctx context.Context, appID string, zone types.ZoneConfig) ([]string, bool) {
	shard := ShardIndex(appID)
	url := fmt.Sprintf(zone.ShardURLPattern, shard) + "/appips/" + appID

	logger := r.logger.With().Str("app", appID).Int("shard", shard).Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build lookup request")
		metrics.LookupFailuresTotal.Inc()
		return nil, false
	}

	resp, err := r.client.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("Endpoint lookup failed")
		metrics.LookupFailuresTotal.Inc()
		return nil, false
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusServiceUnavailable:
		logger.Debug().Msg("Lookup shard starting, endpoint absent")
		return nil, false
	case http.StatusNotFound:
		logger.Debug().Msg("App unknown to lookup shard, endpoint absent")
		return nil, false
	default:
		logger.Error().Int("status", resp.StatusCode).Msg("Unexpected lookup response status")
		metrics.LookupFailuresTotal.Inc()
		return nil, false
	}

	var envelope lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		logger.Error().Err(err).Msg("Failed to decode lookup response")
		metrics.LookupFailuresTotal.Inc()
		return nil, false
	}

	if envelope.Status != "success" || len(envelope.Data.IPs) == 0 {
		logger.Debug().Msg("No active endpoint for app")
		return nil, false
	}

	return envelope.Data.IPs, true
}
