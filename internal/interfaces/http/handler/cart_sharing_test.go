package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cartapp "github.com/shop/backend/internal/application/cart"
	"github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/shared"
)

type sharingMocks struct {
	shareRepo      *MockShareRepository
	invitationRepo *MockInvitationRepository
	cartRepo       *MockCartRepository
	email          *MockEmailSender
}

func setupSharingTestRouter(userID uuid.UUID, email string) (*gin.Engine, sharingMocks, *CartSharingHandler) {
	m := sharingMocks{
		shareRepo:      new(MockShareRepository),
		invitationRepo: new(MockInvitationRepository),
		cartRepo:       new(MockCartRepository),
		email:          new(MockEmailSender),
	}
	service := cartapp.NewSharingService(m.shareRepo, m.invitationRepo, m.cartRepo, m.email,
		"https://shop.example.com/shared-carts", zap.NewNop())
	h := NewCartSharingHandler(service)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		setJWTContext(c, userID, email)
		c.Next()
	})

	return router, m, h
}

func TestCartSharingHandler_CreateShare(t *testing.T) {
	ownerID := uuid.New()

	t.Run("should create a share token for an owned cart", func(t *testing.T) {
		router, m, h := setupSharingTestRouter(ownerID, testOwnerEmail)
		router.POST("/cart-shares", h.CreateShare)

		testCart := createTestCart(t, testOwnerEmail)
		m.cartRepo.On("FindByID", mock.Anything, testCart.ID).Return(testCart, nil)
		m.shareRepo.On("Save", mock.Anything, mock.AnythingOfType("*cart.CartShare")).Return(nil)

		body, _ := json.Marshal(cartapp.CreateShareRequest{
			CartID:     testCart.ID,
			Permission: "VIEW_ONLY",
		})
		req, _ := http.NewRequest(http.MethodPost, "/cart-shares", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		response := decodeResponse(t, w)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "VIEW_ONLY", data["permission"])
		assert.NotEmpty(t, data["share_token"])
		assert.Contains(t, data["share_url"], data["share_token"])
		m.shareRepo.AssertExpectations(t)
	})

	t.Run("should refuse sharing someone else's cart", func(t *testing.T) {
		router, m, h := setupSharingTestRouter(ownerID, testOwnerEmail)
		router.POST("/cart-shares", h.CreateShare)

		otherCart := createTestCart(t, "other@example.com")
		m.cartRepo.On("FindByID", mock.Anything, otherCart.ID).Return(otherCart, nil)

		body, _ := json.Marshal(cartapp.CreateShareRequest{
			CartID:     otherCart.ID,
			Permission: "EDIT",
		})
		req, _ := http.NewRequest(http.MethodPost, "/cart-shares", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		m.shareRepo.AssertNotCalled(t, "Save")
	})

	t.Run("should reject an unknown permission", func(t *testing.T) {
		router, m, h := setupSharingTestRouter(ownerID, testOwnerEmail)
		router.POST("/cart-shares", h.CreateShare)

		body, _ := json.Marshal(cartapp.CreateShareRequest{
			CartID:     uuid.New(),
			Permission: "FULL_CONTROL",
		})
		req, _ := http.NewRequest(http.MethodPost, "/cart-shares", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		m.cartRepo.AssertNotCalled(t, "FindByID")
	})
}

func TestCartSharingHandler_GetShareByToken(t *testing.T) {
	ownerID := uuid.New()

	t.Run("should resolve an active token", func(t *testing.T) {
		router, m, h := setupSharingTestRouter(ownerID, testOwnerEmail)
		router.GET("/cart-shares/token/:token", h.GetShareByToken)

		share, err := cart.NewCartShare(uuid.New(), ownerID, testOwnerEmail, cart.PermissionViewOnly, 0)
		require.NoError(t, err)
		m.shareRepo.On("FindActiveByToken", mock.Anything, share.ShareToken).Return(share, nil)

		req, _ := http.NewRequest(http.MethodGet, "/cart-shares/token/"+share.ShareToken, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse(t, w)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, share.CartID.String(), data["cart_id"])
		assert.True(t, data["active"].(bool))
	})

	t.Run("should return 404 for an expired token", func(t *testing.T) {
		router, m, h := setupSharingTestRouter(ownerID, testOwnerEmail)
		router.GET("/cart-shares/token/:token", h.GetShareByToken)

		share, err := cart.NewCartShare(uuid.New(), ownerID, testOwnerEmail, cart.PermissionViewOnly, 0)
		require.NoError(t, err)
		share.ExpiresAt = time.Now().Add(-time.Hour)
		m.shareRepo.On("FindActiveByToken", mock.Anything, share.ShareToken).Return(share, nil)

		req, _ := http.NewRequest(http.MethodGet, "/cart-shares/token/"+share.ShareToken, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("should return 404 for an unknown token", func(t *testing.T) {
		router, m, h := setupSharingTestRouter(ownerID, testOwnerEmail)
		router.GET("/cart-shares/token/:token", h.GetShareByToken)

		m.shareRepo.On("FindActiveByToken", mock.Anything, "missing-token").
			Return(nil, shared.ErrNotFound)

		req, _ := http.NewRequest(http.MethodGet, "/cart-shares/token/missing-token", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCartSharingHandler_RevokeShare(t *testing.T) {
	ownerID := uuid.New()

	t.Run("should revoke an owned share", func(t *testing.T) {
		router, m, h := setupSharingTestRouter(ownerID, testOwnerEmail)
		router.DELETE("/cart-shares/:id", h.RevokeShare)

		share, err := cart.NewCartShare(uuid.New(), ownerID, testOwnerEmail, cart.PermissionViewOnly, 0)
		require.NoError(t, err)
		m.shareRepo.On("FindByIDAndOwner", mock.Anything, share.ID, ownerID).Return(share, nil)
		m.shareRepo.On("Save", mock.Anything, share).Return(nil)

		req, _ := http.NewRequest(http.MethodDelete, "/cart-shares/"+share.ID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.False(t, share.Active)
		m.shareRepo.AssertExpectations(t)
	})

	t.Run("should return 404 when the share is not the caller's", func(t *testing.T) {
		router, m, h := setupSharingTestRouter(ownerID, testOwnerEmail)
		router.DELETE("/cart-shares/:id", h.RevokeShare)

		shareID := uuid.New()
		m.shareRepo.On("FindByIDAndOwner", mock.Anything, shareID, ownerID).
			Return(nil, shared.ErrNotFound)

		req, _ := http.NewRequest(http.MethodDelete, "/cart-shares/"+shareID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		m.shareRepo.AssertNotCalled(t, "Save")
	})
}

func TestCartSharingHandler_InviteUser(t *testing.T) {
	inviterID := uuid.New()

	t.Run("should invite a user and send a notification", func(t *testing.T) {
		router, m, h := setupSharingTestRouter(inviterID, testOwnerEmail)
		router.POST("/cart-invitations", h.InviteUser)

		testCart := createTestCart(t, testOwnerEmail)
		m.cartRepo.On("FindByID", mock.Anything, testCart.ID).Return(testCart, nil)
		m.invitationRepo.On("Save", mock.Anything, mock.AnythingOfType("*cart.CartInvitation")).Return(nil)
		m.email.On("Send", mock.Anything, mock.Anything).Return(nil)

		body, _ := json.Marshal(cartapp.InviteUserRequest{
			CartID:       testCart.ID,
			InviteeEmail: "friend@example.com",
			Permission:   "EDIT",
			Message:      "Check out my picks",
		})
		req, _ := http.NewRequest(http.MethodPost, "/cart-invitations", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		response := decodeResponse(t, w)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "friend@example.com", data["invitee_email"])
		assert.Equal(t, testOwnerEmail, data["inviter_email"])
		m.invitationRepo.AssertExpectations(t)
	})

	t.Run("should still invite when the notification fails", func(t *testing.T) {
		router, m, h := setupSharingTestRouter(inviterID, testOwnerEmail)
		router.POST("/cart-invitations", h.InviteUser)

		testCart := createTestCart(t, testOwnerEmail)
		m.cartRepo.On("FindByID", mock.Anything, testCart.ID).Return(testCart, nil)
		m.invitationRepo.On("Save", mock.Anything, mock.AnythingOfType("*cart.CartInvitation")).Return(nil)
		m.email.On("Send", mock.Anything, mock.Anything).Return(assert.AnError)

		body, _ := json.Marshal(cartapp.InviteUserRequest{
			CartID:       testCart.ID,
			InviteeEmail: "friend@example.com",
			Permission:   "VIEW_ONLY",
		})
		req, _ := http.NewRequest(http.MethodPost, "/cart-invitations", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestCartSharingHandler_ListInvitations(t *testing.T) {
	userID := uuid.New()

	t.Run("should list open invitations for the caller", func(t *testing.T) {
		router, m, h := setupSharingTestRouter(userID, "invitee@example.com")
		router.GET("/cart-invitations", h.ListInvitations)

		inv, err := cart.NewCartInvitation(uuid.New(), uuid.New(), testOwnerEmail, "invitee@example.com", cart.PermissionViewOnly)
		require.NoError(t, err)
		expired, err := cart.NewCartInvitation(uuid.New(), uuid.New(), testOwnerEmail, "invitee@example.com", cart.PermissionViewOnly)
		require.NoError(t, err)
		expired.ExpiresAt = time.Now().Add(-time.Hour)

		m.invitationRepo.On("FindOpenByInvitee", mock.Anything, "invitee@example.com").
			Return([]*cart.CartInvitation{inv, expired}, nil)

		req, _ := http.NewRequest(http.MethodGet, "/cart-invitations", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse(t, w)
		assert.Len(t, response["data"].([]interface{}), 1)
	})
}

func TestCartSharingHandler_AcceptInvitation(t *testing.T) {
	userID := uuid.New()

	t.Run("should accept an invitation and join the cart", func(t *testing.T) {
		router, m, h := setupSharingTestRouter(userID, "invitee@example.com")
		router.POST("/cart-invitations/accept", h.AcceptInvitation)

		testCart := createTestCart(t, testOwnerEmail)
		inv, err := cart.NewCartInvitation(testCart.ID, uuid.New(), testOwnerEmail, "invitee@example.com", cart.PermissionEdit)
		require.NoError(t, err)

		m.invitationRepo.On("FindByID", mock.Anything, inv.ID).Return(inv, nil)
		m.invitationRepo.On("Save", mock.Anything, inv).Return(nil)
		m.cartRepo.On("FindByID", mock.Anything, testCart.ID).Return(testCart, nil)
		m.cartRepo.On("Save", mock.Anything, testCart).Return(nil)

		body, _ := json.Marshal(cartapp.AcceptInvitationRequest{InvitationID: inv.ID})
		req, _ := http.NewRequest(http.MethodPost, "/cart-invitations/accept", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse(t, w)
		data := response["data"].(map[string]interface{})
		assert.True(t, data["accepted"].(bool))
		assert.Contains(t, testCart.InvitedEmails, "invitee@example.com")
		m.invitationRepo.AssertExpectations(t)
		m.cartRepo.AssertExpectations(t)
	})

	t.Run("should refuse an invitation addressed to someone else", func(t *testing.T) {
		router, m, h := setupSharingTestRouter(userID, "invitee@example.com")
		router.POST("/cart-invitations/accept", h.AcceptInvitation)

		inv, err := cart.NewCartInvitation(uuid.New(), uuid.New(), testOwnerEmail, "someone.else@example.com", cart.PermissionViewOnly)
		require.NoError(t, err)
		m.invitationRepo.On("FindByID", mock.Anything, inv.ID).Return(inv, nil)

		body, _ := json.Marshal(cartapp.AcceptInvitationRequest{InvitationID: inv.ID})
		req, _ := http.NewRequest(http.MethodPost, "/cart-invitations/accept", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		m.invitationRepo.AssertNotCalled(t, "Save")
	})
}
