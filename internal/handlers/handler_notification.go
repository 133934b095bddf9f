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

type notificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

func newNotificationHandler(ns portssvc.NotificationSvcFacade) *notificationHandler {
	return &notificationHandler{notificationService: ns}
}

// registerNotificationRoutes registers the group notification routes.
func registerNotificationRoutes(group *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := newNotificationHandler(notificationService)

	notifications := group.Group("/notifications")
	{
		notifications.POST("", h.send)
		notifications.GET("", h.list)
	}
}

// registerPushTokenRoutes registers the caller's own push token route.
func registerPushTokenRoutes(rg *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := newNotificationHandler(notificationService)
	rg.PUT("/me/push-token", h.registerPushToken)
}

// send godoc
// @Summary Send a notification
// @Description Persists the notification and pushes it to every recipient token. Individual delivery failures are reported, not raised.
// @Tags notifications
// @Accept  json
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   notification body dto.SendNotificationRequest true "Notification"
// @Success 200 {object} domain.DispatchResult
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /groups/{group_id}/notifications [post]
func (h *notificationHandler) send(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.SendNotificationRequest
	if err := bindStrictJSON(c, &req); err != nil {
		respondError(c, err, "Failed to bind notification request")
		return
	}

	result, err := h.notificationService.Send(c.Request.Context(), actor, c.Param("group_id"), req)
	if err != nil {
		respondError(c, err, "Failed to send notification")
		return
	}

	logger.Info("Notification dispatched",
		slog.String("notification_id", result.NotificationID),
		slog.Int("sent", result.SentCount),
		slog.Int("recipients", result.TotalRecipients),
	)
	c.JSON(http.StatusOK, result)
}

// list godoc
// @Summary List recent notifications
// @Description Members only see broadcasts and notifications addressed to them.
// @Tags notifications
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   limit query int false "Maximum number of notifications" minimum(1) maximum(500)
// @Success 200 {object} dto.ListNotificationsResponse
// @Failure 400 {object} ErrorResponse "Invalid query"
// @Security BearerAuth
// @Router /groups/{group_id}/notifications [get]
func (h *notificationHandler) list(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var params dto.ListParams
	if err := bindQuery(c, &params); err != nil {
		respondError(c, err, "Failed to bind notification query")
		return
	}

	notifications, err := h.notificationService.ListNotifications(c.Request.Context(), actor, c.Param("group_id"), params.Limit)
	if err != nil {
		respondError(c, err, "Failed to list notifications")
		return
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	c.JSON(http.StatusOK, dto.ListNotificationsResponse{Notifications: notifications})
}

// registerPushToken godoc
// @Summary Register a push token
// @Description Stores the caller's device token, replacing any previous one.
// @Tags notifications
// @Accept  json
// @Param   token body dto.RegisterPushTokenRequest true "Device token"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /me/push-token [put]
func (h *notificationHandler) registerPushToken(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.RegisterPushTokenRequest
	if err := bindStrictJSON(c, &req); err != nil {
		respondError(c, err, "Failed to bind push token request")
		return
	}

	if err := h.notificationService.RegisterPushToken(c.Request.Context(), actor, req); err != nil {
		respondError(c, err, "Failed to register push token")
		return
	}
	c.Status(http.StatusNoContent)
}
