package leagueapi

import (
	"context"
	"net/url"
	"os"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/draft-league-board/internal/platform/logging"
)

const (
	defaultTableURL     = "http://localhost:8000/table"
	maxResponseBodySize = 6 << 20
	maxLoggedBodyLength = 300
)

var (
	ErrUnexpectedStatus = crerr.New("standings endpoint returned non-success status")
	ErrTransport        = crerr.New("standings endpoint unreachable")
)

type ClientConfig struct {
	HTTPClient *fasthttp.Client
	URL        string
	UserAgent  string
	Logger     *logging.Logger
}

// Client fetches the raw standings document. A file:// URL reads a captured
// document from disk instead of calling the network.
type Client struct {
	httpClient *fasthttp.Client
	url        string
	filePath   string
	userAgent  string
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	rawURL := strings.TrimSpace(cfg.URL)
	if rawURL == "" {
		rawURL = defaultTableURL
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, crerr.Wrapf(err, "parse standings url %q", rawURL)
	}

	c := &Client{
		url:       rawURL,
		userAgent: strings.TrimSpace(cfg.UserAgent),
		logger:    logger.Named("leagueapi"),
	}

	switch parsed.Scheme {
	case "file":
		c.filePath = parsed.Path
		if c.filePath == "" {
			c.filePath = parsed.Opaque
		}
		if c.filePath == "" {
			return nil, crerr.Newf("standings url %q has empty file path", rawURL)
		}
		return c, nil
	case "http", "https":
	default:
		return nil, crerr.Newf("standings url %q uses unsupported scheme=%q; expected http, https or file", rawURL, parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, crerr.Newf("standings url %q has empty host", rawURL)
	}

	c.httpClient = cfg.HTTPClient
	if c.httpClient == nil {
		c.httpClient = &fasthttp.Client{
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
	}
	if c.httpClient.MaxResponseBodySize <= 0 {
		c.httpClient.MaxResponseBodySize = maxResponseBodySize
	}
	if c.userAgent == "" {
		c.userAgent = "draft-league-board"
	}
	return c, nil
}

// FetchTable returns the body of a 2xx response. It never retries.
func (c *Client) FetchTable(ctx context.Context) ([]byte, error) {
	if c.filePath != "" {
		raw, err := os.ReadFile(c.filePath)
		if err != nil {
			return nil, crerr.Wrapf(ErrTransport, "read local standings %s: %v", c.filePath, err)
		}
		return raw, nil
	}
	return c.executeRequest(ctx)
}

func (c *Client) executeRequest(ctx context.Context) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	req.Header.SetUserAgent(c.userAgent)

	type result struct {
		status int
		body   []byte
		err    error
	}
	done := make(chan result, 1)

	// fasthttp has no context support; the request runs detached and owns
	// req/resp until it finishes.
	go func() {
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		var err error
		if deadline, ok := ctx.Deadline(); ok {
			err = c.httpClient.DoDeadline(req, resp, deadline)
		} else {
			err = c.httpClient.Do(req, resp)
		}
		if err != nil {
			done <- result{err: err}
			return
		}
		done <- result{status: resp.StatusCode(), body: append([]byte(nil), resp.Body()...)}
	}()

	var res result
	select {
	case <-ctx.Done():
		return nil, crerr.Wrapf(ErrTransport, "get %s: %v", c.url, ctx.Err())
	case res = <-done:
	}

	if res.err != nil {
		c.logger.WarnContext(ctx, "standings request failed", "url", c.url, "error", res.err)
		return nil, crerr.Wrapf(ErrTransport, "get %s: %v", c.url, res.err)
	}
	if res.status < 200 || res.status >= 300 {
		c.logger.WarnContext(ctx, "standings request returned non-success status",
			"url", c.url,
			"status", res.status,
		)
		return nil, crerr.Wrapf(ErrUnexpectedStatus, "status=%d body=%s", res.status, abbreviateBody(res.body))
	}
	return res.body, nil
}

func abbreviateBody(raw []byte) string {
	body := strings.TrimSpace(string(raw))
	if len(body) <= maxLoggedBodyLength {
		return body
	}
	return body[:maxLoggedBodyLength] + "..."
}
