package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/kewat_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// analyticsEvents names the product events worth tracking, keyed by method and route.
// Reads are left out on purpose; only state changes are counted.
var analyticsEvents = map[string]string{
	"POST /api/v1/groups/:group_id/ledger-entries":                   "ledger_entry_recorded",
	"PATCH /api/v1/groups/:group_id/ledger-entries/:entry_id/status": "ledger_entry_reviewed",
	"PUT /api/v1/groups/:group_id/interest-settings":                 "interest_settings_updated",
	"POST /api/v1/groups/:group_id/interest/recalculate":             "interest_recalculated",
	"POST /api/v1/groups/:group_id/reminders/monthly":                "monthly_reminders_run",
	"POST /api/v1/groups/:group_id/notifications":                    "notification_sent",
	"POST /api/v1/groups/:group_id/announcements":                    "announcement_created",
	"POST /api/v1/groups/:group_id/invite-codes":                     "invite_code_created",
	"POST /api/v1/groups/:group_id/members":                          "member_added",
	"PUT /api/v1/me/push-token":                                      "push_token_registered",
}

// AnalyticsEventName returns the event tracked for a matched route, or "" when the route is not tracked.
func AnalyticsEventName(method, route string) string {
	return analyticsEvents[strings.ToUpper(method)+" "+route]
}

// PosthogMiddleware reports successful state changes of authenticated callers to PostHog.
// Only the group, role and status leave the process; amounts and tokens never do.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		event := AnalyticsEventName(c.Request.Method, c.FullPath())
		if event == "" {
			return
		}
		actor, ok := GetActorFromContext(c)
		if !ok {
			return
		}

		props := map[string]any{
			"role":        string(actor.Role),
			"status_code": c.Writer.Status(),
		}
		if groupID := c.Param("group_id"); groupID != "" {
			props["$groups"] = map[string]string{"group": groupID}
		}
		posthogClient.Enqueue(actor.UserID, event, props)
	}
}
