// Package clients contains HTTP adapters for the sibling services the shop
// backend depends on: accounts, messaging, and the product catalog.
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/shop/backend/internal/domain/order/acl"
	"github.com/shop/backend/internal/domain/shared"
)

// maxResponseSize is the maximum allowed response size from sibling services (1MB)
const maxResponseSize = 1 * 1024 * 1024

// HTTPUserDirectory resolves user references from the account service's
// REST API
type HTTPUserDirectory struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPUserDirectory creates a directory client for the account service
func NewHTTPUserDirectory(baseURL string, timeout time.Duration) *HTTPUserDirectory {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPUserDirectory{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type userPayload struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// FindByID looks up a user by id
func (d *HTTPUserDirectory) FindByID(ctx context.Context, id uuid.UUID) (acl.UserReference, error) {
	return d.fetch(ctx, d.baseURL+"/api/v1/users/"+id.String())
}

// FindByEmail looks up a user by email address
func (d *HTTPUserDirectory) FindByEmail(ctx context.Context, email string) (acl.UserReference, error) {
	return d.fetch(ctx, d.baseURL+"/api/v1/users/by-email/"+url.PathEscape(email))
}

func (d *HTTPUserDirectory) fetch(ctx context.Context, endpoint string) (acl.UserReference, error) {
	body, err := getJSON(ctx, d.httpClient, endpoint)
	if err != nil {
		return acl.UserReference{}, err
	}

	var payload userPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return acl.UserReference{}, fmt.Errorf("account service: failed to decode user: %w", err)
	}
	return acl.NewUserReference(payload.ID, payload.Email, payload.Name)
}

// getJSON performs a GET against a sibling service and returns the raw body.
// 404 maps to the domain's not found error.
func getJSON(ctx context.Context, client *http.Client, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, shared.ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
	}
	return body, nil
}

// Ensure HTTPUserDirectory implements acl.UserDirectory
var _ acl.UserDirectory = (*HTTPUserDirectory)(nil)
