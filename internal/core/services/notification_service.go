package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/kewat_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kewat_ledger/internal/core/ports/services"
	"github.com/SscSPs/kewat_ledger/internal/dto"
	"github.com/SscSPs/kewat_ledger/internal/platform/metrics"
	"github.com/SscSPs/kewat_ledger/internal/utils"
	"github.com/SscSPs/kewat_ledger/internal/utils/pagination"
	"golang.org/x/sync/errgroup"
)

const (
	tokenPreviewLength   = 10
	maxNotificationsPage = 500
)

// DispatchOptions bounds the fan-out of one Send call.
type DispatchOptions struct {
	Concurrency int
	PushTimeout time.Duration
}

// notificationService persists notifications and fans them out to push tokens.
type notificationService struct {
	BaseService
	notificationRepo portsrepo.NotificationRepository
	membershipRepo   portsrepo.MembershipReader
	pushTokenRepo    portsrepo.PushTokenRepository
	sender           portssvc.PushSender
	opts             DispatchOptions
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(
	base BaseService,
	notificationRepo portsrepo.NotificationRepository,
	membershipRepo portsrepo.MembershipReader,
	pushTokenRepo portsrepo.PushTokenRepository,
	sender portssvc.PushSender,
	opts DispatchOptions,
) portssvc.NotificationSvcFacade {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.PushTimeout <= 0 {
		opts.PushTimeout = 10 * time.Second
	}
	return &notificationService{
		BaseService:      base,
		notificationRepo: notificationRepo,
		membershipRepo:   membershipRepo,
		pushTokenRepo:    pushTokenRepo,
		sender:           sender,
		opts:             opts,
	}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

// tokenPreview is the only form in which a device token is ever logged or reported.
func tokenPreview(token string) string {
	if len(token) > tokenPreviewLength {
		token = token[:tokenPreviewLength]
	}
	return token + "..."
}

// pushData flattens the payload to the string map push transports carry.
func pushData(n domain.Notification) map[string]string {
	data := make(map[string]string, len(n.Data)+2)
	for k, v := range n.Data {
		data[k] = fmt.Sprint(v)
	}
	data["notificationId"] = n.NotificationID
	data["groupId"] = n.GroupID
	return data
}

// Send resolves the recipients, persists the notification as pending, delivers it to every
// resolved token and records the outcome.
func (s *notificationService) Send(ctx context.Context, actor domain.Actor, groupID string, req dto.SendNotificationRequest) (*domain.DispatchResult, error) {
	logger := s.GetLogger(ctx)

	if err := s.authorize(ctx, actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = domain.DefaultNotificationTitle
	}
	recipientIDs := req.RecipientIDs
	if recipientIDs == nil {
		recipientIDs = []string{}
	}

	now := s.now()
	notification := domain.Notification{
		NotificationID: utils.NewID(now),
		GroupID:        groupID,
		Title:          title,
		Message:        req.Message,
		RecipientIDs:   recipientIDs,
		Data:           req.Data,
		Status:         domain.NotificationPending,
		CreatedAt:      now,
		CreatedBy:      actor.UserID,
	}

	// Recipients are resolved first so that a lookup failure leaves no pending row behind.
	tokens, err := s.resolveTokens(ctx, notification)
	if err != nil {
		logger.Error("Failed to resolve push tokens", slog.String("error", err.Error()), slog.String("group_id", groupID))
		return nil, err
	}

	if err := s.notificationRepo.SaveNotification(ctx, notification); err != nil {
		logger.Error("Failed to persist notification", slog.String("error", err.Error()), slog.String("group_id", groupID))
		return nil, err
	}

	result := s.dispatch(ctx, notification, tokens)

	status := domain.NotificationFailed
	if result.SentCount > 0 {
		status = domain.NotificationSent
	}
	sentAt := s.now()

	// The outcome is recorded even if the caller went away during delivery.
	completeCtx := context.WithoutCancel(ctx)
	err = s.inTx(completeCtx, actor, func(ctx context.Context, audit *auditTrail) error {
		if err := s.notificationRepo.CompleteNotification(ctx, notification.NotificationID, status, result.SentCount, sentAt); err != nil {
			return err
		}
		return audit.Record(ctx, groupID, domain.ActionNotificationSent, map[string]any{
			"notificationId":  notification.NotificationID,
			"totalRecipients": result.TotalRecipients,
			"sentCount":       result.SentCount,
			"errors":          result.Errors,
		})
	})
	if err != nil {
		logger.Error("Failed to record dispatch outcome", slog.String("error", err.Error()), slog.String("notification_id", notification.NotificationID))
		return nil, err
	}

	logger.Info("Notification dispatched",
		slog.String("notification_id", notification.NotificationID),
		slog.Int("total_recipients", result.TotalRecipients),
		slog.Int("sent_count", result.SentCount),
		slog.Int("failed_count", len(result.Errors)))
	return result, nil
}

// resolveTokens returns the device tokens of the addressed users in recipient order.
// Users without a registered token are dropped.
func (s *notificationService) resolveTokens(ctx context.Context, n domain.Notification) ([]string, error) {
	userIDs := n.RecipientIDs
	if n.IsBroadcast() {
		memberships, err := s.membershipRepo.ListMemberships(ctx, n.GroupID)
		if err != nil {
			return nil, err
		}
		userIDs = make([]string, 0, len(memberships))
		for _, m := range memberships {
			userIDs = append(userIDs, m.UserID)
		}
	}
	if len(userIDs) == 0 {
		return nil, nil
	}

	byUser, err := s.pushTokenRepo.FindPushTokens(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(userIDs))
	tokens := make([]string, 0, len(byUser))
	for _, id := range userIDs {
		token, ok := byUser[id]
		if !ok || token == "" || seen[token] {
			continue
		}
		seen[token] = true
		tokens = append(tokens, token)
	}
	return tokens, nil
}

// dispatch delivers to every token with bounded concurrency. A failed delivery
// is reported in Errors and never cancels the others.
func (s *notificationService) dispatch(ctx context.Context, n domain.Notification, tokens []string) *domain.DispatchResult {
	outcomes := make([]error, len(tokens))
	data := pushData(n)

	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for i, token := range tokens {
		g.Go(func() error {
			sendCtx, cancel := context.WithTimeout(ctx, s.opts.PushTimeout)
			defer cancel()
			outcomes[i] = s.sender.Send(sendCtx, domain.PushMessage{
				Token: token,
				Title: n.Title,
				Body:  n.Message,
				Data:  data,
			})
			return nil
		})
	}
	_ = g.Wait()

	result := &domain.DispatchResult{
		NotificationID:  n.NotificationID,
		TotalRecipients: len(tokens),
		Errors:          []string{},
	}
	for i, err := range outcomes {
		if err == nil {
			result.SentCount++
			metrics.PushDeliveries.WithLabelValues("sent").Inc()
			continue
		}
		metrics.PushDeliveries.WithLabelValues("failed").Inc()
		result.Errors = append(result.Errors, fmt.Sprintf("Token %s: %s", tokenPreview(tokens[i]), err.Error()))
	}
	return result
}

// ListNotifications returns recent notifications. Members only see broadcasts and
// notifications addressed to them.
func (s *notificationService) ListNotifications(ctx context.Context, actor domain.Actor, groupID string, limit int) ([]domain.Notification, error) {
	if err := s.authorizeGroupMember(ctx, actor, groupID, s.membershipRepo); err != nil {
		return nil, err
	}
	notifications, err := s.notificationRepo.ListNotifications(ctx, groupID, pagination.NormalizeLimit(limit, maxNotificationsPage))
	if err != nil {
		s.LogError(ctx, err, "Failed to list notifications", slog.String("group_id", groupID))
		return nil, err
	}
	if actor.Role.Satisfies(domain.RoleAdmin) {
		return notifications, nil
	}
	visible := make([]domain.Notification, 0, len(notifications))
	for _, n := range notifications {
		if n.IsBroadcast() || slices.Contains(n.RecipientIDs, actor.UserID) {
			visible = append(visible, n)
		}
	}
	return visible, nil
}

// RegisterPushToken stores the caller's device token, replacing any previous one.
func (s *notificationService) RegisterPushToken(ctx context.Context, actor domain.Actor, req dto.RegisterPushTokenRequest) error {
	if err := s.authorize(ctx, actor, domain.RoleMember); err != nil {
		return err
	}
	if err := validateRequest(req); err != nil {
		return err
	}
	err := s.inTx(ctx, actor, func(ctx context.Context, audit *auditTrail) error {
		if err := s.pushTokenRepo.UpsertPushToken(ctx, domain.PushToken{UserID: actor.UserID, Token: req.Token, UpdatedAt: s.now()}); err != nil {
			return err
		}
		return audit.Record(ctx, "", domain.ActionPushTokenRegistered, map[string]any{
			"tokenPreview": tokenPreview(req.Token),
		})
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to register push token")
		return err
	}
	s.LogInfo(ctx, "Push token registered", slog.String("token_preview", tokenPreview(req.Token)))
	return nil
}
