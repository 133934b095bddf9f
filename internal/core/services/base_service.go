package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/kewat_ledger/internal/apperrors"
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/kewat_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kewat_ledger/internal/core/ports/services"
	"github.com/SscSPs/kewat_ledger/internal/middleware"
	"github.com/SscSPs/kewat_ledger/internal/platform/metrics"
	"github.com/SscSPs/kewat_ledger/internal/utils"
)

// eventPublishTimeout bounds the post-commit mirror of one audit entry.
const eventPublishTimeout = 2 * time.Second

// BaseService provides common functionality for all services
type BaseService struct {
	Authorizer portssvc.RoleAuthorizerSvc
	TxManager  portsrepo.TransactionManager
	AuditRepo  portsrepo.AuditLogRepository
	// Events is optional; committed audit entries are mirrored to it.
	Events portssvc.EventPublisher
	// Clock is optional and defaults to time.Now in UTC.
	Clock func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

func (s *BaseService) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// authorize runs the role check and logs refusals.
func (s *BaseService) authorize(ctx context.Context, actor domain.Actor, minimums ...domain.Role) error {
	if _, err := s.Authorizer.RequireRole(actor, minimums...); err != nil {
		s.GetLogger(ctx).Warn("Authorization failed", slog.String("user_id", actor.UserID), slog.String("role", string(actor.Role)), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// authorizeGroupMember lets admins and devs through and requires anyone below to hold
// a membership in the group.
func (s *BaseService) authorizeGroupMember(ctx context.Context, actor domain.Actor, groupID string, memberships portsrepo.MembershipReader) error {
	if err := s.authorize(ctx, actor, domain.RoleMember); err != nil {
		return err
	}
	if actor.Role.Satisfies(domain.RoleAdmin) {
		return nil
	}
	if _, err := memberships.FindMembership(ctx, groupID, actor.UserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.GetLogger(ctx).Warn("Caller is not a member of the group", slog.String("user_id", actor.UserID), slog.String("group_id", groupID))
			return fmt.Errorf("%w: not a member of group %s", apperrors.ErrForbidden, groupID)
		}
		return fmt.Errorf("failed to look up membership: %w", err)
	}
	return nil
}

// auditTrail collects the audit entries written inside one unit of work.
type auditTrail struct {
	svc     *BaseService
	actor   domain.Actor
	entries []domain.AuditLogEntry
}

// Record appends an audit entry in the transaction carried by ctx.
func (a *auditTrail) Record(ctx context.Context, groupID string, action domain.AuditAction, details map[string]any) error {
	now := a.svc.now()
	entry := domain.AuditLogEntry{
		AuditLogID: utils.NewID(now),
		Action:     action,
		Actor:      a.actor.UserID,
		Details:    details,
		Timestamp:  now,
		Role:       a.actor.Role,
	}
	if groupID != "" {
		gid := groupID
		entry.GroupID = &gid
	}
	if err := a.svc.AuditRepo.AppendAuditLog(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log %s: %w", action, err)
	}
	a.entries = append(a.entries, entry)
	return nil
}

// inTx runs fn atomically. Audit entries recorded through the trail commit with
// the rest of fn's writes and are mirrored to the event stream afterwards.
func (s *BaseService) inTx(ctx context.Context, actor domain.Actor, fn func(ctx context.Context, audit *auditTrail) error) error {
	trail := &auditTrail{svc: s, actor: actor}
	err := s.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		trail.entries = trail.entries[:0]
		return fn(txCtx, trail)
	})
	if err != nil {
		return err
	}
	s.publish(ctx, trail.entries)
	return nil
}

// publish mirrors committed audit entries. Failures are logged and counted only;
// the audit table stays the source of truth.
func (s *BaseService) publish(ctx context.Context, entries []domain.AuditLogEntry) {
	if s.Events == nil || len(entries) == 0 {
		return
	}
	for _, entry := range entries {
		key := entry.Actor
		if entry.GroupID != nil {
			key = *entry.GroupID
		}
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), eventPublishTimeout)
		err := s.Events.Publish(pubCtx, key, entry)
		cancel()
		if err != nil {
			metrics.EventPublishFailures.Inc()
			s.GetLogger(ctx).Warn("Failed to mirror audit event", slog.String("action", string(entry.Action)), slog.String("audit_log_id", entry.AuditLogID), slog.String("error", err.Error()))
		}
	}
}
