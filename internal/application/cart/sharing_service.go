package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shop/backend/internal/domain/cart"
	orderacl "github.com/shop/backend/internal/domain/order/acl"
	"github.com/shop/backend/internal/domain/shared"
)

// ShareCache caches share token lookups so the public share endpoint does
// not hit the database on every view. Best effort: cache failures are
// logged and ignored.
type ShareCache interface {
	Get(ctx context.Context, token string) (*cart.CartShare, error)
	Set(ctx context.Context, share *cart.CartShare) error
	Invalidate(ctx context.Context, token string) error
}

// SharingService handles cart share tokens and email invitations
type SharingService struct {
	shareRepo      cart.ShareRepository
	invitationRepo cart.InvitationRepository
	cartRepo       cart.Repository
	email          orderacl.EmailSender
	cache          ShareCache
	shareBaseURL   string
	logger         *zap.Logger
}

// NewSharingService creates a new SharingService. shareBaseURL is the
// frontend prefix share links are built from.
func NewSharingService(
	shareRepo cart.ShareRepository,
	invitationRepo cart.InvitationRepository,
	cartRepo cart.Repository,
	email orderacl.EmailSender,
	shareBaseURL string,
	logger *zap.Logger,
) *SharingService {
	return &SharingService{
		shareRepo:      shareRepo,
		invitationRepo: invitationRepo,
		cartRepo:       cartRepo,
		email:          email,
		shareBaseURL:   shareBaseURL,
		logger:         logger,
	}
}

// SetShareCache sets the optional share token cache
func (s *SharingService) SetShareCache(cache ShareCache) {
	s.cache = cache
}

// CreateShare creates a share token for a cart the user owns
func (s *SharingService) CreateShare(ctx context.Context, ownerID uuid.UUID, ownerEmail string, req CreateShareRequest) (*ShareResponse, error) {
	permission, err := cart.ParseSharePermission(req.Permission)
	if err != nil {
		return nil, err
	}

	c, err := s.cartRepo.FindByID(ctx, req.CartID)
	if err != nil {
		return nil, err
	}
	if c.OwnerEmail != ownerEmail {
		return nil, shared.ErrForbidden
	}

	expiryDays := 0
	if req.ExpiryDays != nil {
		expiryDays = *req.ExpiryDays
	}
	share, err := cart.NewCartShare(req.CartID, ownerID, ownerEmail, permission, expiryDays)
	if err != nil {
		return nil, err
	}

	if err := s.shareRepo.Save(ctx, share); err != nil {
		return nil, err
	}
	s.cacheSet(ctx, share)

	s.logger.Info("Cart share created",
		zap.String("cart_id", share.CartID.String()),
		zap.String("permission", share.Permission.String()))

	response := ToShareResponse(share, s.shareBaseURL)
	return &response, nil
}

// GetShareByToken resolves an active, unexpired share token
func (s *SharingService) GetShareByToken(ctx context.Context, token string) (*ShareResponse, error) {
	now := time.Now()

	if cached := s.cacheGet(ctx, token); cached != nil && cached.IsUsable(now) {
		response := ToShareResponse(cached, s.shareBaseURL)
		return &response, nil
	}

	share, err := s.shareRepo.FindActiveByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !share.IsUsable(now) {
		return nil, shared.ErrNotFound
	}
	s.cacheSet(ctx, share)

	response := ToShareResponse(share, s.shareBaseURL)
	return &response, nil
}

// RevokeShare deactivates a share. Only the owner can revoke, and a revoked
// token stops resolving immediately.
func (s *SharingService) RevokeShare(ctx context.Context, shareID, ownerID uuid.UUID) error {
	share, err := s.shareRepo.FindByIDAndOwner(ctx, shareID, ownerID)
	if err != nil {
		return err
	}

	share.Revoke()
	if err := s.shareRepo.Save(ctx, share); err != nil {
		return err
	}
	s.cacheInvalidate(ctx, share.ShareToken)
	return nil
}

// InviteUser invites an email address to a cart and notifies them.
// Notification failures never fail the invitation.
func (s *SharingService) InviteUser(ctx context.Context, inviterID uuid.UUID, inviterEmail string, req InviteUserRequest) (*InvitationResponse, error) {
	permission, err := cart.ParseSharePermission(req.Permission)
	if err != nil {
		return nil, err
	}

	if _, err := s.cartRepo.FindByID(ctx, req.CartID); err != nil {
		return nil, err
	}

	invitation, err := cart.NewCartInvitation(req.CartID, inviterID, inviterEmail, req.InviteeEmail, permission)
	if err != nil {
		return nil, err
	}
	if err := s.invitationRepo.Save(ctx, invitation); err != nil {
		return nil, err
	}

	s.sendInvitationEmail(ctx, invitation, req.Message)

	response := ToInvitationResponse(invitation)
	return &response, nil
}

// GetInvitationsForUser lists the open invitations addressed to an email
func (s *SharingService) GetInvitationsForUser(ctx context.Context, userEmail string) ([]InvitationResponse, error) {
	invitations, err := s.invitationRepo.FindOpenByInvitee(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	responses := make([]InvitationResponse, 0, len(invitations))
	for _, inv := range invitations {
		if inv.IsOpen(now) {
			responses = append(responses, ToInvitationResponse(inv))
		}
	}
	return responses, nil
}

// AcceptInvitation accepts an invitation addressed to the user and grants
// them access to the cart
func (s *SharingService) AcceptInvitation(ctx context.Context, userEmail string, req AcceptInvitationRequest) (*InvitationResponse, error) {
	invitation, err := s.invitationRepo.FindByID(ctx, req.InvitationID)
	if err != nil {
		return nil, err
	}
	if invitation.InviteeEmail != userEmail {
		return nil, shared.ErrForbidden
	}

	if err := invitation.Accept(time.Now()); err != nil {
		return nil, err
	}
	if err := s.invitationRepo.Save(ctx, invitation); err != nil {
		return nil, err
	}

	// membership is granted on the cart itself so listings pick it up
	c, err := s.cartRepo.FindByID(ctx, invitation.CartID)
	if err != nil {
		return nil, err
	}
	added, err := c.InviteEmail(userEmail)
	if err != nil {
		return nil, err
	}
	if added {
		if err := s.cartRepo.Save(ctx, c); err != nil {
			return nil, err
		}
	}

	response := ToInvitationResponse(invitation)
	return &response, nil
}

func (s *SharingService) sendInvitationEmail(ctx context.Context, invitation *cart.CartInvitation, message string) {
	body := fmt.Sprintf(
		"Hello!\n\nYou've been invited by %s to view their shopping cart.\n\nPermission: %s\n\n",
		invitation.InviterEmail,
		invitation.Permission.String(),
	)
	if message != "" {
		body += "Message: " + message + "\n\n"
	}
	body += fmt.Sprintf(
		"This invitation expires on: %s\n\nBest regards,\nYour Shopping App",
		invitation.ExpiresAt.Format("2006-01-02 15:04"),
	)

	msg := orderacl.EmailMessage{
		To:      invitation.InviteeEmail,
		Subject: "You've been invited to view a shopping cart",
		Body:    body,
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error("Failed to send invitation email",
			zap.String("invitee_email", invitation.InviteeEmail),
			zap.Error(err))
	}
}

func (s *SharingService) cacheGet(ctx context.Context, token string) *cart.CartShare {
	if s.cache == nil {
		return nil
	}
	share, err := s.cache.Get(ctx, token)
	if err != nil {
		// a miss is the normal cold path, only real failures are worth noise
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Share cache read failed", zap.Error(err))
		}
		return nil
	}
	return share
}

func (s *SharingService) cacheSet(ctx context.Context, share *cart.CartShare) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, share); err != nil {
		s.logger.Warn("Share cache write failed", zap.Error(err))
	}
}

func (s *SharingService) cacheInvalidate(ctx context.Context, token string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, token); err != nil {
		s.logger.Warn("Share cache invalidation failed", zap.Error(err))
	}
}
