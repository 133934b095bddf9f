package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/kewat_ledger/internal/core/ports/services"
	"github.com/SscSPs/kewat_ledger/internal/dto"
	"github.com/SscSPs/kewat_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// groupHandler handles the roster and audit trail of a group.
type groupHandler struct {
	groupService portssvc.GroupSvcFacade
}

func newGroupHandler(gs portssvc.GroupSvcFacade) *groupHandler {
	return &groupHandler{groupService: gs}
}

// registerGroupRoutes registers roster and audit routes relative to a single group.
func registerGroupRoutes(group *gin.RouterGroup, groupService portssvc.GroupSvcFacade) {
	h := newGroupHandler(groupService)

	members := group.Group("/members")
	{
		members.GET("", h.listMembers)
		members.POST("", h.addMember)
	}

	group.GET("/audit-logs", h.listAuditLogs)
}

// addMember godoc
// @Summary Add a member to the group
// @Description Places an existing user in the roster with role member (default) or admin.
// @Tags groups
// @Accept  json
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   member body dto.AddMemberRequest true "Member details"
// @Success 201 {object} domain.Membership
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 409 {object} ErrorResponse "Already a member"
// @Security BearerAuth
// @Router /groups/{group_id}/members [post]
func (h *groupHandler) addMember(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := bindStrictJSON(c, &req); err != nil {
		respondError(c, err, "Failed to bind add member request")
		return
	}

	membership, err := h.groupService.AddMember(c.Request.Context(), actor, c.Param("group_id"), req)
	if err != nil {
		respondError(c, err, "Failed to add member")
		return
	}

	logger.Info("Member added", slog.String("group_id", membership.GroupID), slog.String("member_id", membership.UserID))
	c.JSON(http.StatusCreated, membership)
}

// listMembers godoc
// @Summary List the group roster
// @Tags groups
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Success 200 {object} dto.ListMembersResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /groups/{group_id}/members [get]
func (h *groupHandler) listMembers(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	members, err := h.groupService.ListMembers(c.Request.Context(), actor, c.Param("group_id"))
	if err != nil {
		respondError(c, err, "Failed to list members")
		return
	}
	if members == nil {
		members = []domain.Membership{}
	}
	c.JSON(http.StatusOK, dto.ListMembersResponse{Members: members})
}

// listAuditLogs godoc
// @Summary List audit log entries
// @Description Pages backwards through the group's audit trail, newest first.
// @Tags groups
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   limit query int false "Page size" minimum(1) maximum(500)
// @Param   nextToken query string false "Token returned by the previous page"
// @Success 200 {object} dto.ListAuditLogsResponse
// @Failure 400 {object} ErrorResponse "Invalid query"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /groups/{group_id}/audit-logs [get]
func (h *groupHandler) listAuditLogs(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var params dto.ListAuditLogsParams
	if err := bindQuery(c, &params); err != nil {
		respondError(c, err, "Failed to bind audit log query")
		return
	}

	page, err := h.groupService.ListAuditLogs(c.Request.Context(), actor, c.Param("group_id"), params)
	if err != nil {
		respondError(c, err, "Failed to list audit logs")
		return
	}
	c.JSON(http.StatusOK, page)
}
