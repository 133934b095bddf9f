package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/kewat_ledger/internal/apperrors"
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/kewat_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kewat_ledger/internal/core/ports/services"
	"github.com/SscSPs/kewat_ledger/internal/platform/metrics"
	"github.com/SscSPs/kewat_ledger/internal/utils"
)

const (
	defaultInviteTTL        = 14 * 24 * time.Hour
	defaultDailyInviteLimit = 10
	// codeCollisionRetries is how many fresh codes are tried after a collision.
	codeCollisionRetries = 3
	rateLimitDayLayout   = "2006-01-02"
)

// inviteService issues and validates group invite codes.
type inviteService struct {
	BaseService
	inviteRepo   portsrepo.InviteRepository
	ttl          time.Duration
	dailyLimit   int
	generateCode func() (string, error)
}

// InviteOption configures the invite service.
type InviteOption func(*inviteService)

// WithInviteTTL overrides the validity window of new codes.
func WithInviteTTL(ttl time.Duration) InviteOption {
	return func(s *inviteService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithDailyInviteLimit overrides how many codes an actor may issue per group and UTC day.
func WithDailyInviteLimit(limit int) InviteOption {
	return func(s *inviteService) {
		if limit > 0 {
			s.dailyLimit = limit
		}
	}
}

// WithCodeGenerator replaces the random code source.
func WithCodeGenerator(gen func() (string, error)) InviteOption {
	return func(s *inviteService) {
		if gen != nil {
			s.generateCode = gen
		}
	}
}

// NewInviteService creates a new InviteService.
func NewInviteService(base BaseService, inviteRepo portsrepo.InviteRepository, opts ...InviteOption) portssvc.InviteSvcFacade {
	s := &inviteService{
		BaseService:  base,
		inviteRepo:   inviteRepo,
		ttl:          defaultInviteTTL,
		dailyLimit:   defaultDailyInviteLimit,
		generateCode: utils.GenerateInviteCode,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

var _ portssvc.InviteSvcFacade = (*inviteService)(nil)

// CreateInviteCode reserves a slot in the caller's daily allowance and stores a fresh code.
// The reservation, the code and the audit entry commit or roll back together.
func (s *inviteService) CreateInviteCode(ctx context.Context, actor domain.Actor, groupID string) (*domain.InviteCode, error) {
	logger := s.GetLogger(ctx)

	if err := s.authorize(ctx, actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if strings.TrimSpace(groupID) == "" {
		return nil, fmt.Errorf("%w: group ID is required", apperrors.ErrValidation)
	}

	now := s.now()
	day := now.Format(rateLimitDayLayout)
	invite := domain.InviteCode{
		GroupID:   groupID,
		CreatedBy: actor.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	err := s.inTx(ctx, actor, func(ctx context.Context, audit *auditTrail) error {
		granted, count, err := s.inviteRepo.ReserveDailyIssue(ctx, actor.UserID, groupID, day, s.dailyLimit)
		if err != nil {
			return err
		}
		if !granted {
			metrics.InviteRateLimited.Inc()
			return fmt.Errorf("%w: at most %d invite codes per day (issued %d)", apperrors.ErrRateLimited, s.dailyLimit, count)
		}

		if err := s.saveWithFreshCode(ctx, &invite); err != nil {
			return err
		}

		return audit.Record(ctx, groupID, domain.ActionInviteCodeCreated, map[string]any{
			"code":      invite.Code,
			"expiresAt": invite.ExpiresAt.Format(time.RFC3339),
		})
	})
	if err != nil {
		logger.Warn("Invite code not issued", slog.String("error", err.Error()), slog.String("group_id", groupID))
		return nil, err
	}

	metrics.InviteCodesIssued.Inc()
	logger.Info("Invite code issued", slog.String("group_id", groupID), slog.Time("expires_at", invite.ExpiresAt))
	return &invite, nil
}

// saveWithFreshCode inserts invite under a new random code, retrying on collision.
func (s *inviteService) saveWithFreshCode(ctx context.Context, invite *domain.InviteCode) error {
	var lastErr error
	for attempt := 0; attempt <= codeCollisionRetries; attempt++ {
		code, err := s.generateCode()
		if err != nil {
			return fmt.Errorf("failed to generate invite code: %w", err)
		}
		invite.Code = code
		err = s.inviteRepo.SaveInviteCode(ctx, *invite)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			return err
		}
		lastErr = err
		s.LogDebug(ctx, "Invite code collision, retrying", slog.Int("attempt", attempt+1))
	}
	return apperrors.NewUnavailableError("could not allocate a unique invite code", lastErr)
}

// ValidateInviteCode reports whether a code can be used, without consuming it.
// Unknown, expired and used codes are distinguished, in that order.
func (s *inviteService) ValidateInviteCode(ctx context.Context, code string) (*domain.InviteValidation, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", apperrors.ErrValidation)
	}

	invite, err := s.inviteRepo.FindInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCode
		}
		s.LogError(ctx, err, "Failed to look up invite code")
		return nil, err
	}
	if invite.IsExpired(s.now()) {
		return nil, ErrInviteExpired
	}
	if invite.Used {
		return nil, ErrInviteAlreadyUsed
	}
	return &domain.InviteValidation{GroupID: invite.GroupID, ExpiresAt: invite.ExpiresAt}, nil
}
