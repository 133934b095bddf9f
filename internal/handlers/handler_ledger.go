package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/kewat_ledger/internal/core/ports/services"
	"github.com/SscSPs/kewat_ledger/internal/dto"
	"github.com/SscSPs/kewat_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests related to ledger entries and balances.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// registerLedgerRoutes registers ledger and balance routes relative to a single group.
func registerLedgerRoutes(group *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	entries := group.Group("/ledger-entries")
	{
		entries.POST("", h.recordEntry)
		entries.GET("", h.listGroupEntries)
		entries.PATCH("/:entry_id/status", h.updateEntryStatus)
	}

	members := group.Group("/members/:member_id")
	{
		members.GET("/ledger-entries", h.listMemberEntries)
		members.GET("/balance", h.getMemberBalance)
	}

	group.GET("/balances", h.getGroupBalances)
}

// recordEntry godoc
// @Summary Record a ledger entry
// @Description Records a disbursement or repayment for a member. The entry starts in status recorded.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   entry body dto.CreateLedgerEntryRequest true "Entry details"
// @Success 201 {object} dto.CreateLedgerEntryResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 503 {object} ErrorResponse "Store unavailable"
// @Security BearerAuth
// @Router /groups/{group_id}/ledger-entries [post]
func (h *ledgerHandler) recordEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	groupID := c.Param("group_id")

	var req dto.CreateLedgerEntryRequest
	if err := bindStrictJSON(c, &req); err != nil {
		respondError(c, err, "Failed to bind ledger entry request")
		return
	}

	entry, err := h.ledgerService.RecordEntry(c.Request.Context(), actor, groupID, req)
	if err != nil {
		respondError(c, err, "Failed to record ledger entry")
		return
	}

	logger.Info("Ledger entry recorded", slog.String("group_id", groupID), slog.String("ledger_entry_id", entry.LedgerEntryID))
	c.JSON(http.StatusCreated, dto.CreateLedgerEntryResponse{Success: true, ID: entry.LedgerEntryID, Entry: *entry})
}

// listGroupEntries godoc
// @Summary List ledger entries of a group
// @Description Returns every entry of the group in occurrence order.
// @Tags ledger
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Success 200 {object} dto.ListLedgerEntriesResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 503 {object} ErrorResponse "Store unavailable"
// @Security BearerAuth
// @Router /groups/{group_id}/ledger-entries [get]
func (h *ledgerHandler) listGroupEntries(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	entries, err := h.ledgerService.ListGroupEntries(c.Request.Context(), actor, c.Param("group_id"))
	if err != nil {
		respondError(c, err, "Failed to list ledger entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLedgerEntriesResponse(entries))
}

// updateEntryStatus godoc
// @Summary Verify or reject a ledger entry
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   entry_id path string true "Ledger entry ID"
// @Param   status body dto.UpdateEntryStatusRequest true "New status"
// @Success 200 {object} domain.LedgerEntry
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Entry not found"
// @Failure 409 {object} ErrorResponse "Entry already reviewed"
// @Security BearerAuth
// @Router /groups/{group_id}/ledger-entries/{entry_id}/status [patch]
func (h *ledgerHandler) updateEntryStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.UpdateEntryStatusRequest
	if err := bindStrictJSON(c, &req); err != nil {
		respondError(c, err, "Failed to bind status request")
		return
	}

	entry, err := h.ledgerService.UpdateEntryStatus(c.Request.Context(), actor, c.Param("group_id"), c.Param("entry_id"), req)
	if err != nil {
		respondError(c, err, "Failed to update ledger entry status")
		return
	}

	logger.Info("Ledger entry reviewed", slog.String("ledger_entry_id", entry.LedgerEntryID), slog.String("status", string(entry.Status)))
	c.JSON(http.StatusOK, entry)
}

// listMemberEntries godoc
// @Summary List a member's ledger history
// @Description Members may read their own history; admins may read anyone's.
// @Tags ledger
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   member_id path string true "Member ID"
// @Success 200 {object} dto.ListLedgerEntriesResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /groups/{group_id}/members/{member_id}/ledger-entries [get]
func (h *ledgerHandler) listMemberEntries(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	entries, err := h.ledgerService.ListMemberEntries(c.Request.Context(), actor, c.Param("group_id"), c.Param("member_id"))
	if err != nil {
		respondError(c, err, "Failed to list member ledger entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLedgerEntriesResponse(entries))
}

// getMemberBalance godoc
// @Summary Get a member's balance
// @Description Derives disbursed, repaid and outstanding amounts from non-rejected entries.
// @Tags balances
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   member_id path string true "Member ID"
// @Success 200 {object} dto.MemberBalanceResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /groups/{group_id}/members/{member_id}/balance [get]
func (h *ledgerHandler) getMemberBalance(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	groupID := c.Param("group_id")

	balance, err := h.ledgerService.GetMemberBalance(c.Request.Context(), actor, groupID, c.Param("member_id"))
	if err != nil {
		respondError(c, err, "Failed to compute member balance")
		return
	}
	c.JSON(http.StatusOK, dto.MemberBalanceResponse{GroupID: groupID, Balance: *balance})
}

// getGroupBalances godoc
// @Summary Get balances of every member
// @Description Monitoring aggregate, sorted by outstanding amount.
// @Tags balances
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Success 200 {object} dto.GroupBalancesResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /groups/{group_id}/balances [get]
func (h *ledgerHandler) getGroupBalances(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	groupID := c.Param("group_id")

	balances, err := h.ledgerService.GetGroupBalances(c.Request.Context(), actor, groupID)
	if err != nil {
		respondError(c, err, "Failed to compute group balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToGroupBalancesResponse(groupID, balances))
}
