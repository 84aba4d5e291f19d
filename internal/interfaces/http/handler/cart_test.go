package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cartapp "github.com/shop/backend/internal/application/cart"
	"github.com/shop/backend/internal/domain/cart"
	cartacl "github.com/shop/backend/internal/domain/cart/acl"
	"github.com/shop/backend/internal/domain/shared"
)

const testOwnerEmail = "owner@example.com"

func setupCartTestRouter(userID uuid.UUID) (*gin.Engine, *MockCartRepository, *MockProductCatalog, *CartHandler) {
	mockRepo := new(MockCartRepository)
	mockCatalog := new(MockProductCatalog)
	service := cartapp.NewCartService(mockRepo, mockCatalog, zap.NewNop())
	h := NewCartHandler(service)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		setJWTContext(c, userID, testOwnerEmail)
		c.Next()
	})

	return router, mockRepo, mockCatalog, h
}

func createTestCart(t *testing.T, ownerEmail string) *cart.ShoppingCart {
	t.Helper()
	c, err := cart.NewShoppingCart(ownerEmail, "Wishlist")
	require.NoError(t, err)
	return c
}

func testProductRef(t *testing.T, id uuid.UUID, name, price string) cartacl.ProductItemReference {
	t.Helper()
	p, err := decimal.NewFromString(price)
	require.NoError(t, err)
	ref, err := cartacl.NewProductItemReference(id, name, p)
	require.NoError(t, err)
	return ref
}

func TestCartHandler_Create(t *testing.T) {
	userID := uuid.New()

	t.Run("should create a cart for the caller", func(t *testing.T) {
		router, mockRepo, _, h := setupCartTestRouter(userID)
		router.POST("/carts", h.Create)

		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*cart.ShoppingCart")).Return(nil)

		body := []byte(`{"name": "Wishlist"}`)
		req, _ := http.NewRequest(http.MethodPost, "/carts", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		response := decodeResponse(t, w)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "Wishlist", data["name"])
		assert.Equal(t, testOwnerEmail, data["owner_email"])
		mockRepo.AssertExpectations(t)
	})

	t.Run("should default the cart name when omitted", func(t *testing.T) {
		router, mockRepo, _, h := setupCartTestRouter(userID)
		router.POST("/carts", h.Create)

		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*cart.ShoppingCart")).Return(nil)

		req, _ := http.NewRequest(http.MethodPost, "/carts", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		response := decodeResponse(t, w)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, cart.DefaultCartName, data["name"])
	})
}

func TestCartHandler_List(t *testing.T) {
	userID := uuid.New()

	t.Run("should list owned and shared carts", func(t *testing.T) {
		router, mockRepo, _, h := setupCartTestRouter(userID)
		router.GET("/carts", h.List)

		owned := createTestCart(t, testOwnerEmail)
		sharedCart := createTestCart(t, "friend@example.com")
		_, err := sharedCart.InviteEmail(testOwnerEmail)
		require.NoError(t, err)

		mockRepo.On("FindByOwner", mock.Anything, testOwnerEmail).
			Return([]*cart.ShoppingCart{owned}, nil)
		mockRepo.On("FindByInvitee", mock.Anything, testOwnerEmail).
			Return([]*cart.ShoppingCart{sharedCart}, nil)

		req, _ := http.NewRequest(http.MethodGet, "/carts", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse(t, w)
		assert.Len(t, response["data"].([]interface{}), 2)
		mockRepo.AssertExpectations(t)
	})
}

func TestCartHandler_GetByID(t *testing.T) {
	userID := uuid.New()

	t.Run("should return 404 for a missing cart", func(t *testing.T) {
		router, mockRepo, _, h := setupCartTestRouter(userID)
		router.GET("/carts/:id", h.GetByID)

		cartID := uuid.New()
		mockRepo.On("FindByID", mock.Anything, cartID).Return(nil, shared.ErrNotFound)

		req, _ := http.NewRequest(http.MethodGet, "/carts/"+cartID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCartHandler_AddItem(t *testing.T) {
	userID := uuid.New()

	t.Run("should add an item priced from the catalog", func(t *testing.T) {
		router, mockRepo, mockCatalog, h := setupCartTestRouter(userID)
		router.PUT("/carts/:id/items", h.AddItem)

		testCart := createTestCart(t, testOwnerEmail)
		productID := uuid.New()

		mockRepo.On("FindByID", mock.Anything, testCart.ID).Return(testCart, nil)
		mockCatalog.On("FindItemByID", mock.Anything, productID).
			Return(testProductRef(t, productID, "Sneaker", "79.99"), nil)
		mockRepo.On("Save", mock.Anything, testCart).Return(nil)

		body, _ := json.Marshal(cartapp.AddItemRequest{
			ProductItemID: productID,
			Quantity:      2,
			Size:          "42",
		})
		req, _ := http.NewRequest(http.MethodPut, "/carts/"+testCart.ID.String()+"/items", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse(t, w)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "Sneaker", data["product_name"])
		assert.Equal(t, float64(2), data["quantity"])
		assert.Equal(t, "79.99", data["unit_price"])
		mockCatalog.AssertExpectations(t)
	})

	t.Run("should reject a zero quantity", func(t *testing.T) {
		router, mockRepo, _, h := setupCartTestRouter(userID)
		router.PUT("/carts/:id/items", h.AddItem)

		body := []byte(`{"product_item_id": "` + uuid.NewString() + `", "quantity": 0}`)
		req, _ := http.NewRequest(http.MethodPut, "/carts/"+uuid.NewString()+"/items", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "FindByID")
	})
}

func TestCartHandler_UpdateItemQuantity(t *testing.T) {
	userID := uuid.New()

	t.Run("should change an item's quantity", func(t *testing.T) {
		router, mockRepo, _, h := setupCartTestRouter(userID)
		router.PUT("/carts/:id/items/:itemId", h.UpdateItemQuantity)

		testCart := createTestCart(t, testOwnerEmail)
		productID := uuid.New()
		item, err := testCart.PutItem(testProductRef(t, productID, "Sneaker", "79.99"), "42", 1)
		require.NoError(t, err)

		mockRepo.On("FindByID", mock.Anything, testCart.ID).Return(testCart, nil)
		mockRepo.On("Save", mock.Anything, testCart).Return(nil)

		body := []byte(`{"quantity": 5}`)
		req, _ := http.NewRequest(http.MethodPut, "/carts/"+testCart.ID.String()+"/items/"+item.ID.String(), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse(t, w)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, float64(5), data["quantity"])
	})

	t.Run("should return 404 for an unknown item", func(t *testing.T) {
		router, mockRepo, _, h := setupCartTestRouter(userID)
		router.PUT("/carts/:id/items/:itemId", h.UpdateItemQuantity)

		testCart := createTestCart(t, testOwnerEmail)
		mockRepo.On("FindByID", mock.Anything, testCart.ID).Return(testCart, nil)

		body := []byte(`{"quantity": 5}`)
		req, _ := http.NewRequest(http.MethodPut, "/carts/"+testCart.ID.String()+"/items/"+uuid.NewString(), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockRepo.AssertNotCalled(t, "Save")
	})
}

func TestCartHandler_RemoveItem(t *testing.T) {
	userID := uuid.New()

	t.Run("should remove an item", func(t *testing.T) {
		router, mockRepo, _, h := setupCartTestRouter(userID)
		router.DELETE("/carts/:id/items/:itemId", h.RemoveItem)

		testCart := createTestCart(t, testOwnerEmail)
		item, err := testCart.PutItem(testProductRef(t, uuid.New(), "Sneaker", "79.99"), "42", 1)
		require.NoError(t, err)

		mockRepo.On("FindByID", mock.Anything, testCart.ID).Return(testCart, nil)
		mockRepo.On("Save", mock.Anything, testCart).Return(nil)

		req, _ := http.NewRequest(http.MethodDelete, "/carts/"+testCart.ID.String()+"/items/"+item.ID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, testCart.Items)
		mockRepo.AssertExpectations(t)
	})
}

func TestCartHandler_Delete(t *testing.T) {
	userID := uuid.New()

	t.Run("should delete a cart", func(t *testing.T) {
		router, mockRepo, _, h := setupCartTestRouter(userID)
		router.DELETE("/carts/:id", h.Delete)

		testCart := createTestCart(t, testOwnerEmail)
		mockRepo.On("FindByID", mock.Anything, testCart.ID).Return(testCart, nil)
		mockRepo.On("Delete", mock.Anything, testCart.ID).Return(nil)

		req, _ := http.NewRequest(http.MethodDelete, "/carts/"+testCart.ID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockRepo.AssertExpectations(t)
	})

	t.Run("should return 404 for an unknown cart", func(t *testing.T) {
		router, mockRepo, _, h := setupCartTestRouter(userID)
		router.DELETE("/carts/:id", h.Delete)

		cartID := uuid.New()
		mockRepo.On("FindByID", mock.Anything, cartID).Return(nil, shared.ErrNotFound)

		req, _ := http.NewRequest(http.MethodDelete, "/carts/"+cartID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockRepo.AssertNotCalled(t, "Delete")
	})
}

func TestCartHandler_Invite(t *testing.T) {
	userID := uuid.New()

	t.Run("should add an email to the invite list", func(t *testing.T) {
		router, mockRepo, _, h := setupCartTestRouter(userID)
		router.POST("/carts/:id/invites", h.Invite)

		testCart := createTestCart(t, testOwnerEmail)
		mockRepo.On("FindByID", mock.Anything, testCart.ID).Return(testCart, nil)
		mockRepo.On("Save", mock.Anything, testCart).Return(nil)

		body := []byte(`{"email": "friend@example.com"}`)
		req, _ := http.NewRequest(http.MethodPost, "/carts/"+testCart.ID.String()+"/invites", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse(t, w)
		data := response["data"].(map[string]interface{})
		assert.Contains(t, data["invited_emails"], "friend@example.com")
	})

	t.Run("should reject a malformed email", func(t *testing.T) {
		router, mockRepo, _, h := setupCartTestRouter(userID)
		router.POST("/carts/:id/invites", h.Invite)

		body := []byte(`{"email": "not-an-email"}`)
		req, _ := http.NewRequest(http.MethodPost, "/carts/"+uuid.NewString()+"/invites", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "FindByID")
	})
}

func TestCartHandler_Merge(t *testing.T) {
	userID := uuid.New()

	t.Run("should merge guest carts into the default cart", func(t *testing.T) {
		router, mockRepo, mockCatalog, h := setupCartTestRouter(userID)
		router.POST("/carts/merge", h.Merge)

		myCart, err := cart.NewShoppingCart(testOwnerEmail, cart.DefaultCartName)
		require.NoError(t, err)
		productID := uuid.New()

		mockRepo.On("FindByOwnerAndName", mock.Anything, testOwnerEmail, cart.DefaultCartName).
			Return(myCart, nil)
		mockCatalog.On("FindItemByID", mock.Anything, productID).
			Return(testProductRef(t, productID, "Sneaker", "79.99"), nil)
		mockRepo.On("Save", mock.Anything, myCart).Return(nil)
		mockRepo.On("FindByOwner", mock.Anything, testOwnerEmail).
			Return([]*cart.ShoppingCart{myCart}, nil)
		mockRepo.On("FindByInvitee", mock.Anything, testOwnerEmail).
			Return([]*cart.ShoppingCart{}, nil)

		size := "42"
		body, _ := json.Marshal(cartapp.MergeCartsRequest{
			GuestCarts: []cartapp.GuestCartInput{
				{Items: []cartapp.GuestCartItemInput{
					{ProductItemID: productID, Quantity: 2, Size: &size},
				}},
			},
		})
		req, _ := http.NewRequest(http.MethodPost, "/carts/merge", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse(t, w)
		carts := response["data"].([]interface{})
		require.Len(t, carts, 1)
		items := carts[0].(map[string]interface{})["items"].([]interface{})
		require.Len(t, items, 1)
		assert.Equal(t, float64(2), items[0].(map[string]interface{})["quantity"])
		mockRepo.AssertExpectations(t)
	})

	t.Run("should just list carts when no guest carts were sent", func(t *testing.T) {
		router, mockRepo, mockCatalog, h := setupCartTestRouter(userID)
		router.POST("/carts/merge", h.Merge)

		mockRepo.On("FindByOwner", mock.Anything, testOwnerEmail).
			Return([]*cart.ShoppingCart{}, nil)
		mockRepo.On("FindByInvitee", mock.Anything, testOwnerEmail).
			Return([]*cart.ShoppingCart{}, nil)

		req, _ := http.NewRequest(http.MethodPost, "/carts/merge", bytes.NewReader([]byte(`{"guest_carts": []}`)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse(t, w)
		assert.Len(t, response["data"].([]interface{}), 0)
		mockCatalog.AssertNotCalled(t, "FindItemByID")
	})
}
