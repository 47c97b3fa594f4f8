package event

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPSink writes events to a remote server's /events endpoint.
type HTTPSink struct {
	endpoint string
	client   *http.Client
}

// NewHTTPSink creates a sink posting to baseURL + "/events". A nil client uses
// one with a five second timeout.
func NewHTTPSink(baseURL string, client *http.Client) *HTTPSink {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &HTTPSink{
		endpoint: strings.TrimRight(baseURL, "/") + "/events",
		client:   client,
	}
}

type writeRequest struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Record posts one event. Any non-2xx response is an error.
func (s *HTTPSink) Record(ctx context.Context, eventType string, payload any) error {
	body, err := json.Marshal(writeRequest{Type: eventType, Payload: payload})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building event request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting event: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("posting event: unexpected status %d", resp.StatusCode)
	}
	return nil
}
