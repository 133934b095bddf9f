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

type announcementHandler struct {
	announcementService portssvc.AnnouncementSvcFacade
}

// registerAnnouncementRoutes registers the group board routes.
func registerAnnouncementRoutes(group *gin.RouterGroup, announcementService portssvc.AnnouncementSvcFacade) {
	h := &announcementHandler{announcementService: announcementService}

	announcements := group.Group("/announcements")
	{
		announcements.POST("", h.post)
		announcements.GET("", h.list)
	}
}

// post godoc
// @Summary Post an announcement
// @Description Pins a notice to the group board. The title defaults to "Announcement".
// @Tags notifications
// @Accept  json
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   announcement body dto.CreateAnnouncementRequest true "Announcement"
// @Success 201 {object} domain.Announcement
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /groups/{group_id}/announcements [post]
func (h *announcementHandler) post(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateAnnouncementRequest
	if err := bindStrictJSON(c, &req); err != nil {
		respondError(c, err, "Failed to bind announcement request")
		return
	}

	announcement, err := h.announcementService.PostAnnouncement(c.Request.Context(), actor, c.Param("group_id"), req)
	if err != nil {
		respondError(c, err, "Failed to post announcement")
		return
	}

	logger.Info("Announcement posted", slog.String("group_id", announcement.GroupID), slog.String("announcement_id", announcement.AnnouncementID))
	c.JSON(http.StatusCreated, announcement)
}

// list godoc
// @Summary List announcements
// @Description Returns the 50 latest announcements, newest first. The caller must belong to the group.
// @Tags notifications
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Success 200 {object} dto.ListAnnouncementsResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /groups/{group_id}/announcements [get]
func (h *announcementHandler) list(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	announcements, err := h.announcementService.ListAnnouncements(c.Request.Context(), actor, c.Param("group_id"))
	if err != nil {
		respondError(c, err, "Failed to list announcements")
		return
	}
	if announcements == nil {
		announcements = []domain.Announcement{}
	}
	c.JSON(http.StatusOK, dto.ListAnnouncementsResponse{Announcements: announcements})
}
