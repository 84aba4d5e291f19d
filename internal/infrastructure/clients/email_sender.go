package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shop/backend/internal/domain/order/acl"
)

// HTTPEmailSender delivers notification emails through the messaging
// service's REST API
type HTTPEmailSender struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPEmailSender creates a sender client for the messaging service
func NewHTTPEmailSender(baseURL string, timeout time.Duration) *HTTPEmailSender {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPEmailSender{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type emailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Send submits an email for delivery
func (s *HTTPEmailSender) Send(ctx context.Context, msg acl.EmailMessage) error {
	payload, err := json.Marshal(emailPayload{
		To:      msg.To,
		Subject: msg.Subject,
		Body:    msg.Body,
	})
	if err != nil {
		return fmt.Errorf("messaging service: failed to encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/v1/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("messaging service: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("messaging service: request failed: %w", err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))

	if resp.StatusCode >= 400 {
		return fmt.Errorf("messaging service: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Ensure HTTPEmailSender implements acl.EmailSender
var _ acl.EmailSender = (*HTTPEmailSender)(nil)
