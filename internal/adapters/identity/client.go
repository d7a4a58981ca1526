// Package identity provides a client for the external identity verifier
package identity

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	perr "herdbook/internal/platform/errors"
	"herdbook/internal/platform/logger"
)

const (
	defaultTimeout = 5 * time.Second
	defaultUA      = "herdbook-api"
)

// Options configures the Client
type Options struct {
	// BaseURL of the verifier service, required
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client calls the verifier's verify endpoint and maps its answers
// onto the error taxonomy callers expect from auth
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	o.BaseURL = strings.TrimRight(strings.TrimSpace(o.BaseURL), "/")
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("identity"),
	}
}

type verifyResponse struct {
	OwnerID string `json:"owner_id"`
}

// Verify exchanges a bearer token for the owner id it belongs to
// the signature matches httpkit.TokenFunc so it plugs straight into the auth port
func (c *Client) Verify(ctx context.Context, token string) (string, error) {
	if c.opts.BaseURL == "" {
		return "", perr.Unavailablef("identity verifier is not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/verify", nil)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnavailable, "identity request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnavailable, "identity verifier unreachable")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", perr.Unauthorizedf("token rejected by identity verifier")
	default:
		c.log.Warn().Int("status", resp.StatusCode).Msg("unexpected verifier response")
		return "", perr.Unavailablef("identity verifier returned %d", resp.StatusCode)
	}

	var out verifyResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnavailable, "decode verifier response")
	}
	if strings.TrimSpace(out.OwnerID) == "" {
		return "", perr.Unauthorizedf("verifier response carried no owner")
	}
	return out.OwnerID, nil
}
