package dnsgw

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cuemby/hutch/pkg/log"
	"github.com/cuemby/hutch/pkg/types"
	"github.com/rs/zerolog"
)

// ErrNotReady is returned by every operation when the client could not
// authenticate to the gateway at startup. The client fails closed: the
// service keeps running but performs no DNS mutations.
var ErrNotReady = errors.New("dns gateway client not initialized")

// maxErrorBody caps how much of a gateway error response is captured for
// diagnostics
const maxErrorBody = 4096

// Config holds DNS gateway connection settings
type Config struct {
	URL      string
	Enabled  bool
	CertFile string
	KeyFile  string
	CAFile   string
	Timeout  time.Duration
}

// Client creates, deletes, and queries A records through the DNS gateway.
// All requests use mutual TLS with the certificate, key, and CA bundle
// loaded once at construction.
type Client struct {
	baseURL string
	client  *http.Client
	ready   bool
	logger  zerolog.Logger
}

// NewClient builds a gateway client. It never fails: when the gateway is
// disabled or credentials cannot be loaded, the returned client reports
// itself not-ready and every operation returns ErrNotReady.
func NewClient(cfg Config) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		logger:  log.WithComponent("dnsgw"),
	}

	if !cfg.Enabled {
		c.logger.Warn().Msg("DNS gateway disabled by configuration, running without DNS mutations")
		return c
	}

	tlsConfig, err := loadTLSConfig(cfg)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to load gateway credentials, running without DNS mutations")
		return c
	}

	c.client = &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			TLSClientConfig: tlsConfig,
		},
	}
	c.ready = true
	return c
}

// loadTLSConfig loads the client keypair and CA bundle for mutual TLS
func loadTLSConfig(cfg Config) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load client keypair: %w", err)
	}

	caPEM, err := os.ReadFile(cfg.CAFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA bundle: %w", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return nil, fmt.Errorf("no certificates found in CA bundle %s", cfg.CAFile)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      pool,
	}, nil
}

// Ready reports whether the client authenticated successfully at startup
func (c *Client) Ready() bool {
	return c.ready
}

// NormalizeIP strips a trailing port suffix and IPv6 bracket notation from
// an address, leaving the bare IP for record content
func NormalizeIP(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "[") {
		if end := strings.Index(s, "]"); end > 0 {
			return s[1:end]
		}
	}
	if host, _, err := net.SplitHostPort(s); err == nil {
		return host
	}
	return s
}

// normalizeIPs normalizes every address in the set
func normalizeIPs(ips []string) []string {
	out := make([]string, len(ips))
	for i, ip := range ips {
		out[i] = NormalizeIP(ip)
	}
	return out
}

func (c *Client) recordsURL(zone string) string {
	return fmt.Sprintf("%s/api/v1/zones/%s/records", c.baseURL, zone)
}

func (c *Client) recordURL(zone, name string) string {
	return fmt.Sprintf("%s/api/v1/zones/%s/records/%s/A", c.baseURL, zone, name)
}

// readErrorBody captures the gateway response body for diagnostics
func readErrorBody(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return strings.TrimSpace(string(body))
}

// Upsert writes the full desired IP set as the A record for name in zone.
// The gateway write is a replace, not an append, so the caller never needs
// record-merging logic.
func (c *Client) Upsert(ctx context.Context, name string, ips []string, zone types.ZoneConfig) error {
	if !c.ready {
		return ErrNotReady
	}

	record := types.DNSRecord{
		Name:       name,
		RecordType: "A",
		Content:    normalizeIPs(ips),
		TTL:        zone.TTL,
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.recordsURL(zone.Name), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build upsert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("upsert request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("gateway rejected upsert of %s in zone %s: status %d: %s",
			name, zone.Name, resp.StatusCode, readErrorBody(resp))
	}

	c.logger.Info().Str("app", name).Str("zone", zone.Name).Strs("ips", record.Content).Msg("Record written")
	return nil
}

// Delete removes the A record for name in zone. A missing record is treated
// as success so deletion is idempotent.
func (c *Client) Delete(ctx context.Context, name string, zone types.ZoneConfig) error {
	if !c.ready {
		return ErrNotReady
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.recordURL(zone.Name, name), nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.logger.Info().Str("app", name).Str("zone", zone.Name).Msg("Record already absent on delete")
		return nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("gateway rejected delete of %s in zone %s: status %d: %s",
			name, zone.Name, resp.StatusCode, readErrorBody(resp))
	}

	c.logger.Info().Str("app", name).Str("zone", zone.Name).Msg("Record deleted")
	return nil
}

// Get returns the current record content for name in zone, or nil when the
// record does not exist
func (c *Client) Get(ctx context.Context, name string, zone types.ZoneConfig) ([]string, error) {
	if !c.ready {
		return nil, ErrNotReady
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.recordURL(zone.Name, name), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build get request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway rejected get of %s in zone %s: status %d: %s",
			name, zone.Name, resp.StatusCode, readErrorBody(resp))
	}

	var record types.DNSRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}

	return record.Content, nil
}
