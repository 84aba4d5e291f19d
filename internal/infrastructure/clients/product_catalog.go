package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shop/backend/internal/domain/cart/acl"
)

// HTTPProductCatalog resolves product item references from the catalog
// service's REST API
type HTTPProductCatalog struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPProductCatalog creates a catalog client
func NewHTTPProductCatalog(baseURL string, timeout time.Duration) *HTTPProductCatalog {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProductCatalog{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type productItemPayload struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// FindItemByID looks up a product item by id
func (c *HTTPProductCatalog) FindItemByID(ctx context.Context, id uuid.UUID) (acl.ProductItemReference, error) {
	body, err := getJSON(ctx, c.httpClient, c.baseURL+"/api/v1/product-items/"+id.String())
	if err != nil {
		return acl.ProductItemReference{}, err
	}

	var payload productItemPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return acl.ProductItemReference{}, fmt.Errorf("catalog service: failed to decode product item: %w", err)
	}
	return acl.NewProductItemReference(payload.ID, payload.Name, payload.Price)
}

// Ensure HTTPProductCatalog implements acl.ProductCatalog
var _ acl.ProductCatalog = (*HTTPProductCatalog)(nil)
