// Package obsidian is a client for the Obsidian Local REST API vault
// listing endpoint.
package obsidian

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/riteshshukladev/obsidian-clipper-repo/internal/metrics"
)

// ListingResponse is the body returned by GET /vault/<dir>/. Each entry is
// either a trailing-slash directory name or a plain file path.
type ListingResponse struct {
	Files []string `json:"files"`
}

// ErrMalformed marks a listing body that could not be decoded or carried no
// files array.
var ErrMalformed = errors.New("malformed listing payload")

// StatusError reports a non-2xx listing response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("listing returned status %d", e.Code)
}

// Client issues authenticated listing requests against one vault.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Config holds client configuration.
type Config struct {
	// BaseURL is the vault endpoint root, e.g. https://127.0.0.1:27124/vault/.
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// InsecureTLS skips certificate verification. The Local REST API ships
	// a self-signed certificate, so local setups commonly need this.
	InsecureTLS bool
}

// New creates a listing client.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
	}
}

// EncodePath percent-encodes each path segment individually, keeping the
// slash separators.
func EncodePath(p string) string {
	if p == "" {
		return ""
	}
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}

// ListDir fetches the immediate children of dir; "" denotes the vault root.
// A non-2xx response surfaces as *StatusError, an undecodable or files-less
// body as ErrMalformed.
func (c *Client) ListDir(ctx context.Context, dir string) ([]string, error) {
	u := c.baseURL + EncodePath(dir)
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ListingFailed()
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ListingFailed()
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var listing ListingResponse
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		metrics.ListingFailed()
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if listing.Files == nil {
		metrics.ListingFailed()
		return nil, fmt.Errorf("%w: missing files array", ErrMalformed)
	}

	metrics.ListingSucceeded()
	return listing.Files, nil
}
