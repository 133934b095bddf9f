package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/kewat_ledger/internal/core/ports/services"
	"github.com/SscSPs/kewat_ledger/internal/dto"
	"github.com/SscSPs/kewat_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// inviteHandler handles invite code issuance and validation.
type inviteHandler struct {
	inviteService portssvc.InviteSvcFacade
}

func newInviteHandler(is portssvc.InviteSvcFacade) *inviteHandler {
	return &inviteHandler{inviteService: is}
}

// registerInviteRoutes registers the authenticated issuance route relative to a single group.
func registerInviteRoutes(group *gin.RouterGroup, inviteService portssvc.InviteSvcFacade) {
	h := newInviteHandler(inviteService)
	group.POST("/invite-codes", h.createInviteCode)
}

// registerPublicInviteRoutes registers the unauthenticated validation route.
// Callers are expected to wrap rg with an IP rate limiter.
func registerPublicInviteRoutes(rg *gin.RouterGroup, inviteService portssvc.InviteSvcFacade) {
	h := newInviteHandler(inviteService)
	rg.POST("/invite-codes/validate", h.validateInviteCode)
}

// createInviteCode godoc
// @Summary Create an invite code
// @Description Issues an 8 character code valid for 14 days. Each caller may issue a limited number of codes per group per UTC day.
// @Tags invites
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Success 201 {object} dto.InviteCodeResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 429 {object} ErrorResponse "Daily limit reached"
// @Security BearerAuth
// @Router /groups/{group_id}/invite-codes [post]
func (h *inviteHandler) createInviteCode(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	invite, err := h.inviteService.CreateInviteCode(c.Request.Context(), actor, c.Param("group_id"))
	if err != nil {
		respondError(c, err, "Failed to create invite code")
		return
	}

	logger.Info("Invite code issued", slog.String("group_id", invite.GroupID), slog.Time("expires_at", invite.ExpiresAt))
	c.JSON(http.StatusCreated, dto.ToInviteCodeResponse(invite))
}

// validateInviteCode godoc
// @Summary Validate an invite code
// @Description Checks a code without consuming it. Public and rate limited per client IP.
// @Tags invites
// @Accept  json
// @Produce  json
// @Param   code body dto.ValidateInviteCodeRequest true "Invite code"
// @Success 200 {object} dto.ValidateInviteCodeResponse
// @Failure 400 {object} ErrorResponse "Malformed code"
// @Failure 404 {object} ErrorResponse "Unknown code"
// @Failure 409 {object} ErrorResponse "Code already used"
// @Failure 410 {object} ErrorResponse "Code expired"
// @Failure 429 {object} ErrorResponse "Too many requests"
// @Router /public/invite-codes/validate [post]
func (h *inviteHandler) validateInviteCode(c *gin.Context) {
	var req dto.ValidateInviteCodeRequest
	if err := bindStrictJSON(c, &req); err != nil {
		respondError(c, err, "Failed to bind invite validation request")
		return
	}

	validation, err := h.inviteService.ValidateInviteCode(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err, "Failed to validate invite code")
		return
	}
	c.JSON(http.StatusOK, dto.ValidateInviteCodeResponse{Valid: true, GroupID: validation.GroupID, ExpiresAt: validation.ExpiresAt})
}
