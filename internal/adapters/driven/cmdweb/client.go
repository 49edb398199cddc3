// Package cmdweb is the HTTP client for the Padova CMD web interface.
// A request is an HTML form submission; the response page links to a flat
// result table which is downloaded as-is (possibly gzip-compressed).
package cmdweb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/starfield-labs/isofetch/internal/core/domain"
	"github.com/starfield-labs/isofetch/internal/core/ports/driven"
	"github.com/starfield-labs/isofetch/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.TableFetcher = (*Client)(nil)

const (
	// DefaultBaseURL is the CMD service host.
	DefaultBaseURL = "http://stev.oapd.inaf.it"

	// DefaultTimeout is the HTTP request timeout. Result generation on
	// the server side can take tens of seconds for large grids.
	DefaultTimeout = 120 * time.Second

	// requestInterval spaces successive requests to a shared academic
	// service.
	requestInterval = 2 * time.Second
)

// resultName matches the generated result filename in the response page.
var resultName = regexp.MustCompile(`output\d+`)

// Client fetches result tables from the CMD service.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter
}

// NewClient creates a client for the given base URL.
// If baseURL is empty, DefaultBaseURL is used.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    &http.Client{Timeout: DefaultTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		limiter: rate.NewLimiter(rate.Every(requestInterval), 1),
	}
}

// Fetch submits the form and downloads the result table it produces.
func (c *Client) Fetch(ctx context.Context, form url.Values) (*domain.RawResult, error) {
	page, err := c.submit(ctx, form)
	if err != nil {
		return nil, err
	}

	name := resultName.FindString(page)
	if name == "" {
		messages := extractErrorBox(page)
		if len(messages) > 0 {
			return nil, fmt.Errorf("%w: %s", domain.ErrServerResponse,
				strings.Join(messages, "; "))
		}
		return nil, fmt.Errorf("%w: no result link in response page",
			domain.ErrServerResponse)
	}

	return c.download(ctx, name)
}

// submit posts the form and returns the response page HTML.
func (c *Client) submit(ctx context.Context, form url.Values) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	endpoint := c.baseURL + "/cgi-bin/cmd"
	logger.Debug("submitting form to %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("submitting form: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: form submission returned %s",
			domain.ErrServerResponse, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response page: %w", err)
	}
	return string(body), nil
}

// download retrieves the generated result table by name.
func (c *Client) download(ctx context.Context, name string) (*domain.RawResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resultURL := fmt.Sprintf("%s/~lgirardi/tmp/%s.dat", c.baseURL, name)
	logger.Debug("downloading result from %s", resultURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resultURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading result: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: result download returned %s",
			domain.ErrServerResponse, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading result: %w", err)
	}

	comp := domain.SniffCompression(body)
	logger.Debug("downloaded %d bytes, compression %q", len(body), comp)
	return &domain.RawResult{Body: body, Compression: comp}, nil
}
