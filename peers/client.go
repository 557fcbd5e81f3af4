package peers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/anjiri1684/workhub/apperrors"
	"github.com/anjiri1684/workhub/relay"
	"github.com/charmbracelet/log"
)

const (
	DefaultTimeout = 5 * time.Second

	// maxResponseSize bounds how much of a peer response is buffered.
	maxResponseSize int64 = 8 << 20
	// maxErrorBody bounds how much of a failed response ends up in an error.
	maxErrorBody = 512
)

// Client issues calls to one upstream service. It never retries; the
// failure kind is returned to the caller, which decides what to do.
type Client struct {
	name    string
	baseURL string
	timeout time.Duration
	http    *http.Client
	logger  *log.Logger
}

type File struct {
	Field   string
	Name    string
	Content io.Reader
}

func NewClient(name, baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	return &Client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		// The per-call deadline comes from the context so that an expired
		// deadline can be told apart from a refused connection.
		http:   &http.Client{Transport: transport},
		logger: logger.With("peer", name),
	}
}

func (c *Client) Name() string { return c.name }

// Do sends a JSON request and decodes a JSON response into out (if non-nil).
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return apperrors.Internal(fmt.Sprintf("encode %s request", c.name), err)
		}
		body = bytes.NewReader(payload)
	}
	return c.send(ctx, method, path, body, "application/json", out)
}

// Upload posts files as multipart/form-data along with plain form fields.
func (c *Client) Upload(ctx context.Context, path string, fields map[string]string, files []File, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return apperrors.Internal("build multipart form", err)
		}
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.Field, f.Name)
		if err != nil {
			return apperrors.Internal("build multipart form", err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return apperrors.Internal("read upload "+f.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return apperrors.Internal("build multipart form", err)
	}
	return c.send(ctx, http.MethodPost, path, &buf, writer.FormDataContentType(), out)
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, method, c.baseURL+path, body)
	if err != nil {
		return apperrors.Internal(fmt.Sprintf("build %s request", c.name), err)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if !relay.Apply(ctx, req) {
		c.logger.Debug("peer call without caller identity", "kind", apperrors.KindRelayDegraded, "method", method, "path", path)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return c.transportError(callCtx, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return c.transportError(callCtx, method, path, err)
	}

	c.logger.Debug("peer call", "method", method, "path", path, "status", resp.StatusCode, "latency", time.Since(start))

	if resp.StatusCode >= http.StatusBadRequest {
		return c.statusError(method, path, resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.Peer(apperrors.KindPeerFaulted, resp.StatusCode,
			fmt.Sprintf("%s returned an unreadable body for %s %s", c.name, method, path), err)
	}
	return nil
}

func (c *Client) transportError(ctx context.Context, method, path string, err error) error {
	if isTimeout(ctx, err) {
		c.logger.Warn("peer call timed out", "method", method, "path", path, "timeout", c.timeout)
		return apperrors.Peer(apperrors.KindTimeout, 0,
			fmt.Sprintf("%s did not answer %s %s within %s", c.name, method, path, c.timeout), err)
	}
	c.logger.Warn("peer unreachable", "method", method, "path", path, "err", err)
	return apperrors.Peer(apperrors.KindPeerUnavailable, 0,
		fmt.Sprintf("%s is unreachable for %s %s", c.name, method, path), err)
}

func (c *Client) statusError(method, path string, status int, body []byte) error {
	kind := apperrors.KindPeerRejected
	if status >= http.StatusInternalServerError {
		kind = apperrors.KindPeerFaulted
	}
	detail := strings.TrimSpace(string(body))
	if len(detail) > maxErrorBody {
		detail = detail[:maxErrorBody]
	}
	msg := fmt.Sprintf("%s answered %d to %s %s", c.name, status, method, path)
	if detail != "" {
		msg += ": " + detail
	}
	c.logger.Warn("peer call failed", "method", method, "path", path, "status", status, "kind", kind)
	return apperrors.Peer(kind, status, msg, nil)
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
