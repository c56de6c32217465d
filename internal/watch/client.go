package watch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/theirongolddev/notetime/internal/timelog"
)

// Client talks to a running watch service over its loopback HTTP API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient returns a client for the service listening on addr
// (host:port, no scheme).
func NewClient(addr string) *Client {
	return &Client{
		BaseURL: "http://" + addr,
		HTTP:    &http.Client{Timeout: 2 * time.Second},
	}
}

// Healthy reports whether the service answers its health check.
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/healthz", nil)
	if err != nil {
		return false
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK
}

// Status fetches the service status summary.
func (c *Client) Status(ctx context.Context) (Status, error) {
	var st Status
	if err := c.getJSON(ctx, "/v1/status", &st); err != nil {
		return st, fmt.Errorf("watch status: %w", err)
	}
	return st, nil
}

// Log fetches the full daily time log as last published by the service.
func (c *Client) Log(ctx context.Context) (timelog.Log, error) {
	log := timelog.New()
	if err := c.getJSON(ctx, "/v1/log", &log); err != nil {
		return nil, fmt.Errorf("watch log: %w", err)
	}
	if log == nil {
		log = timelog.New()
	}
	return log, nil
}

// Day fetches a single day's note totals.
func (c *Client) Day(ctx context.Context, dateKey string) (timelog.DayLog, error) {
	day := timelog.DayLog{}
	if err := c.getJSON(ctx, "/v1/log?date="+dateKey, &day); err != nil {
		return nil, fmt.Errorf("watch log for %s: %w", dateKey, err)
	}
	return day, nil
}

// PostEvent submits a focus event for processing. The service acknowledges
// with 202 before the event is applied.
func (c *Client) PostEvent(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/event", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post event: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("post event: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusAccepted {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("post event: %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
