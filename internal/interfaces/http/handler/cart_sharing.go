package handler

import (
	"github.com/gin-gonic/gin"

	cartapp "github.com/shop/backend/internal/application/cart"
)

// CartSharingHandler handles cart share tokens and email invitations
type CartSharingHandler struct {
	BaseHandler
	sharingService *cartapp.SharingService
}

// NewCartSharingHandler creates a new CartSharingHandler
func NewCartSharingHandler(sharingService *cartapp.SharingService) *CartSharingHandler {
	return &CartSharingHandler{sharingService: sharingService}
}

// CreateShare handles POST /cart-shares
func (h *CartSharingHandler) CreateShare(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	email, err := getUserEmail(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req cartapp.CreateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.sharingService.CreateShare(c.Request.Context(), userID, email, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetShareByToken handles GET /cart-shares/token/:token. This endpoint is
// public: share links work without an account.
func (h *CartSharingHandler) GetShareByToken(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		h.BadRequest(c, "Share token is required")
		return
	}

	resp, err := h.sharingService.GetShareByToken(c.Request.Context(), token)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RevokeShare handles DELETE /cart-shares/:id
func (h *CartSharingHandler) RevokeShare(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	shareID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid share ID format")
		return
	}

	if err := h.sharingService.RevokeShare(c.Request.Context(), shareID, userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// InviteUser handles POST /cart-invitations
func (h *CartSharingHandler) InviteUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	email, err := getUserEmail(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req cartapp.InviteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.sharingService.InviteUser(c.Request.Context(), userID, email, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListInvitations handles GET /cart-invitations and returns the caller's
// open invitations
func (h *CartSharingHandler) ListInvitations(c *gin.Context) {
	email, err := getUserEmail(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invitations, err := h.sharingService.GetInvitationsForUser(c.Request.Context(), email)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invitations)
}

// AcceptInvitation handles POST /cart-invitations/accept
func (h *CartSharingHandler) AcceptInvitation(c *gin.Context) {
	email, err := getUserEmail(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req cartapp.AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.sharingService.AcceptInvitation(c.Request.Context(), email, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
