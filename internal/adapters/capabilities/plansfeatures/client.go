package plansfeatures

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"animal-care-tracker/internal/platform/httpclient"
)

var (
	ErrPlansNotConfigured = errors.New("plans-features client not configured")
	ErrPlansUnauthorized  = errors.New("plans-features unauthorized")
	ErrPlansUpstream      = errors.New("plans-features upstream error")
)

type Config struct {
	BaseURL string
	APIKey  string

	APIKeyHeader string
	Timeout      time.Duration
}

type Client struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{
		http:         hc,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

// CapabilitiesResponse es deliberadamente simple.
// Cuando plans-features esté listo, se adapta al contrato real.
type CapabilitiesResponse struct {
	// Ejemplo: {"animals.unlimited": true}
	Capabilities map[string]bool `json:"capabilities"`
}

// GetCapabilities trae las capabilities de esta instalación. La API key
// identifica la instalación; no hay noción de usuario.
func (c *Client) GetCapabilities(ctx context.Context) (CapabilitiesResponse, error) {
	if !c.IsConfigured() {
		return CapabilitiesResponse{}, ErrPlansNotConfigured
	}

	var out CapabilitiesResponse
	headers := map[string]string{c.apiKeyHeader: c.apiKey}

	err := c.http.DoJSON(ctx, http.MethodGet, "/v1/capabilities", headers, nil, &out)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			switch httpErr.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden:
				return CapabilitiesResponse{}, ErrPlansUnauthorized
			default:
				return CapabilitiesResponse{}, fmt.Errorf("%w: status=%d", ErrPlansUpstream, httpErr.StatusCode)
			}
		}
		return CapabilitiesResponse{}, fmt.Errorf("%w: %v", ErrPlansUpstream, err)
	}

	if out.Capabilities == nil {
		out.Capabilities = map[string]bool{}
	}
	return out, nil
}
