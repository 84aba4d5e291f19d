package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setJWTContext simulates an authenticated request without a real token
func setJWTContext(c *gin.Context, userID uuid.UUID, email string) {
	c.Set(middleware.JWTUserIDKey, userID.String())
	c.Set(middleware.JWTEmailKey, email)
}

// setSellerJWTContext simulates an authenticated seller request
func setSellerJWTContext(c *gin.Context, userID uuid.UUID, email string, sellerID uuid.UUID) {
	setJWTContext(c, userID, email)
	c.Set(middleware.JWTSellerIDKey, sellerID.String())
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestGetRequestID(t *testing.T) {
	t.Run("from context", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Set("request_id", "ctx-request-id")
		assert.Equal(t, "ctx-request-id", getRequestID(c))
	})

	t.Run("from header when context empty", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Request.Header.Set("X-Request-ID", "header-request-id")
		assert.Equal(t, "header-request-id", getRequestID(c))
	})

	t.Run("empty when not set", func(t *testing.T) {
		c, _ := newTestContext(t)
		assert.Equal(t, "", getRequestID(c))
	})
}

func TestGetUserID(t *testing.T) {
	t.Run("returns the authenticated user", func(t *testing.T) {
		c, _ := newTestContext(t)
		userID := uuid.New()
		setJWTContext(c, userID, "buyer@example.com")

		got, err := getUserID(c)
		assert.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("errors when unauthenticated", func(t *testing.T) {
		c, _ := newTestContext(t)
		_, err := getUserID(c)
		assert.Error(t, err)
	})
}

func TestGetSellerID(t *testing.T) {
	t.Run("errors for non-seller callers", func(t *testing.T) {
		c, _ := newTestContext(t)
		setJWTContext(c, uuid.New(), "buyer@example.com")
		_, err := getSellerID(c)
		assert.Error(t, err)
	})

	t.Run("returns the seller id", func(t *testing.T) {
		c, _ := newTestContext(t)
		sellerID := uuid.New()
		setSellerJWTContext(c, uuid.New(), "seller@example.com", sellerID)

		got, err := getSellerID(c)
		assert.NoError(t, err)
		assert.Equal(t, sellerID, got)
	})
}

func TestBaseHandlerHandleError(t *testing.T) {
	h := BaseHandler{}

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found maps to 404", shared.ErrNotFound, http.StatusNotFound},
		{"forbidden maps to 403", shared.ErrForbidden, http.StatusForbidden},
		{"concurrency conflict maps to 409", shared.ErrConcurrencyConflict, http.StatusConflict},
		{"validation maps to 400", shared.NewDomainError("INVALID_STATUS", "Invalid order status"), http.StatusBadRequest},
		{"unknown error maps to 500", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t)
			h.HandleError(c, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
