package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// ErrUnexpectedStatus is returned by Stream when the server does not answer 200.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Prober defines the outbound request operations.
type Prober interface {
	// Probe performs the request and reports the status code, plus the body if
	// req.Download is set.
	Probe(ctx context.Context, req Request) (*Response, error)
	// Stream performs the request and copies a 200 response body into w.
	Stream(ctx context.Context, req Request, w io.Writer) (int64, error)
}

// Client is the net/http backed Prober.
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient creates a Client with strict connection timeouts.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return NewClientWithHTTP(&http.Client{Transport: transport}, cfg.UserAgent)
}

// NewClientWithHTTP wraps an existing http.Client.
func NewClientWithHTTP(c *http.Client, userAgent string) *Client {
	return &Client{http: c, userAgent: userAgent}
}

// Probe implements Prober.
func (c *Client) Probe(ctx context.Context, req Request) (*Response, error) {
	res, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	out := &Response{StatusCode: res.StatusCode}
	if !req.Download {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, res.Body)
		return out, nil
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", req.URL(), err)
	}
	out.Body = body
	return out, nil
}

// Stream implements Prober.
func (c *Client) Stream(ctx context.Context, req Request, w io.Writer) (int64, error) {
	res, err := c.do(ctx, req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, res.Body)
		return 0, fmt.Errorf("%s returned %d: %w", req.URL(), res.StatusCode, ErrUnexpectedStatus)
	}

	n, err := io.Copy(w, res.Body)
	if err != nil {
		return n, fmt.Errorf("failed to stream %s: %w", req.URL(), err)
	}
	return n, nil
}

func (c *Client) do(ctx context.Context, req Request) (*http.Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", req.URL(), err)
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	for k, v := range req.Header {
		httpReq.Header.Set(k, v)
	}

	res, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, req.URL(), err)
	}
	return res, nil
}
