package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/kewat_ledger/internal/core/ports/services"
	"github.com/SscSPs/kewat_ledger/internal/dto"
	"github.com/SscSPs/kewat_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// interestHandler handles interest settings, recalculation and reminders.
type interestHandler struct {
	interestService portssvc.InterestSvcFacade
	defaultRateBps  int
	now             func() time.Time
}

func newInterestHandler(is portssvc.InterestSvcFacade, defaultRateBps int) *interestHandler {
	return &interestHandler{
		interestService: is,
		defaultRateBps:  defaultRateBps,
		now:             time.Now,
	}
}

// registerInterestRoutes registers interest and reminder routes relative to a single group.
func registerInterestRoutes(group *gin.RouterGroup, interestService portssvc.InterestSvcFacade, defaultRateBps int) {
	h := newInterestHandler(interestService, defaultRateBps)

	group.GET("/interest-settings", h.getSettings)
	group.PUT("/interest-settings", h.updateSettings)
	group.POST("/interest/recalculate", h.recalculate)

	reminders := group.Group("/reminders")
	{
		reminders.POST("/monthly", h.generateMonthlyReminders)
		reminders.GET("", h.listReminders)
	}
}

// getSettings godoc
// @Summary Get interest settings
// @Description rateBps falls back to the service default when the group has not set one.
// @Tags interest
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Success 200 {object} dto.InterestSettingsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /groups/{group_id}/interest-settings [get]
func (h *interestHandler) getSettings(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	settings, err := h.interestService.GetInterestSettings(c.Request.Context(), actor, c.Param("group_id"))
	if err != nil {
		respondError(c, err, "Failed to load interest settings")
		return
	}
	c.JSON(http.StatusOK, dto.ToInterestSettingsResponse(settings, h.defaultRateBps))
}

// updateSettings godoc
// @Summary Update interest settings
// @Description Merges the provided fields into the group's settings. Omitted fields keep their value.
// @Tags interest
// @Accept  json
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   settings body dto.UpdateInterestSettingsRequest true "Fields to change"
// @Success 200 {object} dto.InterestSettingsResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /groups/{group_id}/interest-settings [put]
func (h *interestHandler) updateSettings(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.UpdateInterestSettingsRequest
	if err := bindStrictJSON(c, &req); err != nil {
		respondError(c, err, "Failed to bind interest settings request")
		return
	}

	settings, err := h.interestService.UpdateInterestSettings(c.Request.Context(), actor, c.Param("group_id"), req)
	if err != nil {
		respondError(c, err, "Failed to update interest settings")
		return
	}
	c.JSON(http.StatusOK, dto.ToInterestSettingsResponse(settings, h.defaultRateBps))
}

// recalculate godoc
// @Summary Apply one period of interest
// @Description Updates every member balance atomically using the configured annual rate and frequency.
// @Tags interest
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Success 200 {object} domain.RecalculationResult
// @Failure 400 {object} ErrorResponse "Settings incomplete"
// @Failure 404 {object} ErrorResponse "Settings not configured"
// @Failure 409 {object} ErrorResponse "Balances changed concurrently"
// @Security BearerAuth
// @Router /groups/{group_id}/interest/recalculate [post]
func (h *interestHandler) recalculate(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	result, err := h.interestService.RecalculateInterest(c.Request.Context(), actor, c.Param("group_id"))
	if err != nil {
		respondError(c, err, "Failed to recalculate interest")
		return
	}

	logger.Info("Interest recalculation committed", slog.Int("members_affected", result.MembersAffected))
	c.JSON(http.StatusOK, result)
}

// generateMonthlyReminders godoc
// @Summary Generate monthly reminders
// @Description Creates at most one reminder per member for the current UTC month. Safe to re-trigger.
// @Tags reminders
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Success 200 {object} domain.ReminderRunResult
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /groups/{group_id}/reminders/monthly [post]
func (h *interestHandler) generateMonthlyReminders(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	result, err := h.interestService.GenerateMonthlyReminders(c.Request.Context(), actor, c.Param("group_id"), h.now().UTC())
	if err != nil {
		respondError(c, err, "Failed to generate monthly reminders")
		return
	}
	c.JSON(http.StatusOK, result)
}

// listReminders godoc
// @Summary List reminders of a period
// @Tags reminders
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   period query string false "Period formatted YYYY-MM, defaults to the current month"
// @Success 200 {object} dto.ListRemindersResponse
// @Failure 400 {object} ErrorResponse "Invalid period"
// @Security BearerAuth
// @Router /groups/{group_id}/reminders [get]
func (h *interestHandler) listReminders(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	groupID := c.Param("group_id")
	period := c.Query("period")
	if period == "" {
		period = domain.PeriodKey(h.now())
	}

	reminders, err := h.interestService.ListReminders(c.Request.Context(), actor, groupID, period)
	if err != nil {
		respondError(c, err, "Failed to list reminders")
		return
	}
	if reminders == nil {
		reminders = []domain.MonthlyReminder{}
	}
	c.JSON(http.StatusOK, dto.ListRemindersResponse{GroupID: groupID, PeriodKey: period, Reminders: reminders})
}
