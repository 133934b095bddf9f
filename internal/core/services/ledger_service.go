package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/kewat_ledger/internal/apperrors"
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/kewat_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kewat_ledger/internal/core/ports/services"
	"github.com/SscSPs/kewat_ledger/internal/dto"
	"github.com/SscSPs/kewat_ledger/internal/platform/metrics"
	"github.com/SscSPs/kewat_ledger/internal/utils"
	"github.com/SscSPs/kewat_ledger/internal/utils/accounting"
)

// ledgerService records ledger movements and derives balances from them.
type ledgerService struct {
	BaseService
	ledgerRepo     portsrepo.LedgerRepositoryFacade
	membershipRepo portsrepo.MembershipRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(base BaseService, ledgerRepo portsrepo.LedgerRepositoryFacade, membershipRepo portsrepo.MembershipRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService:    base,
		ledgerRepo:     ledgerRepo,
		membershipRepo: membershipRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// authorizeSelfOrAdmin lets members of the group read their own data and admins read anyone's.
func (s *ledgerService) authorizeSelfOrAdmin(ctx context.Context, actor domain.Actor, groupID, memberID string) error {
	if actor.UserID == memberID {
		return s.authorizeGroupMember(ctx, actor, groupID, s.membershipRepo)
	}
	return s.authorize(ctx, actor, domain.RoleAdmin)
}

// RecordEntry validates and appends a disbursement or repayment.
func (s *ledgerService) RecordEntry(ctx context.Context, actor domain.Actor, groupID string, req dto.CreateLedgerEntryRequest) (*domain.LedgerEntry, error) {
	logger := s.GetLogger(ctx)

	if err := s.authorize(ctx, actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.membershipRepo.FindMembership(ctx, groupID, req.MemberID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMemberNotInGroup, req.MemberID)
		}
		return nil, fmt.Errorf("failed to look up membership: %w", err)
	}

	now := s.now()
	entry := domain.LedgerEntry{
		LedgerEntryID:    utils.NewID(now),
		GroupID:          groupID,
		MemberID:         req.MemberID,
		Type:             req.Type,
		AmountMinorUnits: req.AmountPaisa,
		SignedBy:         req.SignedBy,
		Notes:            req.Notes,
		EvidenceURLs:     req.EvidenceURLs,
		Status:           domain.EntryRecorded,
		OccurredAt:       now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	if req.InterestRateBps != nil {
		entry.InterestRateBps = *req.InterestRateBps
	}
	if req.OccurredAt != nil {
		entry.OccurredAt = req.OccurredAt.UTC()
	}
	if entry.EvidenceURLs == nil {
		entry.EvidenceURLs = []string{}
	}

	err := s.inTx(ctx, actor, func(ctx context.Context, audit *auditTrail) error {
		id, err := s.ledgerRepo.AppendEntry(ctx, entry)
		if err != nil {
			return err
		}
		entry.LedgerEntryID = id
		if err := s.membershipRepo.AdjustBalance(ctx, groupID, entry.MemberID, entry.BalanceEffect(), now); err != nil {
			return fmt.Errorf("failed to update cached balance: %w", err)
		}
		return audit.Record(ctx, groupID, domain.ActionLedgerEntryCreated, map[string]any{
			"ledgerEntryId": id,
			"memberId":      entry.MemberID,
			"type":          string(entry.Type),
			"amountPaisa":   entry.AmountMinorUnits,
		})
	})
	if err != nil {
		logger.Error("Failed to record ledger entry", slog.String("error", err.Error()), slog.String("group_id", groupID), slog.String("member_id", req.MemberID))
		return nil, err
	}

	metrics.LedgerEntriesRecorded.WithLabelValues(string(entry.Type)).Inc()
	logger.Info("Ledger entry recorded", slog.String("ledger_entry_id", entry.LedgerEntryID), slog.String("group_id", groupID), slog.String("type", string(entry.Type)))
	return &entry, nil
}

// UpdateEntryStatus moves a recorded entry to verified or rejected.
func (s *ledgerService) UpdateEntryStatus(ctx context.Context, actor domain.Actor, groupID, entryID string, req dto.UpdateEntryStatusRequest) (*domain.LedgerEntry, error) {
	logger := s.GetLogger(ctx)

	if err := s.authorize(ctx, actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if !domain.EntryRecorded.CanTransitionTo(req.Status) {
		return nil, fmt.Errorf("%w: cannot move an entry to %s", apperrors.ErrValidation, req.Status)
	}

	now := s.now()
	var updated *domain.LedgerEntry
	err := s.inTx(ctx, actor, func(ctx context.Context, audit *auditTrail) error {
		if err := s.ledgerRepo.UpdateStatus(ctx, groupID, entryID, domain.EntryRecorded, req.Status, actor.UserID, now); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				return fmt.Errorf("%w (entry %s)", ErrInvalidStatusTransition, entryID)
			}
			return err
		}
		if err := audit.Record(ctx, groupID, domain.ActionLedgerEntryStatusUpdated, map[string]any{
			"ledgerEntryId": entryID,
			"from":          string(domain.EntryRecorded),
			"to":            string(req.Status),
		}); err != nil {
			return err
		}
		entry, err := s.ledgerRepo.FindEntryByID(ctx, groupID, entryID)
		if err != nil {
			return err
		}
		// a rejected entry no longer counts, so its effect on the cached balance is undone
		if req.Status == domain.EntryRejected {
			if err := s.membershipRepo.AdjustBalance(ctx, groupID, entry.MemberID, -entry.BalanceEffect(), now); err != nil {
				return fmt.Errorf("failed to update cached balance: %w", err)
			}
		}
		updated = entry
		return nil
	})
	if err != nil {
		logger.Warn("Failed to update ledger entry status", slog.String("error", err.Error()), slog.String("ledger_entry_id", entryID))
		return nil, err
	}

	logger.Info("Ledger entry reviewed", slog.String("ledger_entry_id", entryID), slog.String("status", string(req.Status)))
	return updated, nil
}

// ListGroupEntries returns every entry of a group.
func (s *ledgerService) ListGroupEntries(ctx context.Context, actor domain.Actor, groupID string) ([]domain.LedgerEntry, error) {
	if err := s.authorize(ctx, actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	entries, err := s.ledgerRepo.ListByGroup(ctx, groupID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list group ledger entries", slog.String("group_id", groupID))
		return nil, err
	}
	return entries, nil
}

// ListMemberEntries returns one member's history.
func (s *ledgerService) ListMemberEntries(ctx context.Context, actor domain.Actor, groupID, memberID string) ([]domain.LedgerEntry, error) {
	if err := s.authorizeSelfOrAdmin(ctx, actor, groupID, memberID); err != nil {
		return nil, err
	}
	entries, err := s.ledgerRepo.ListByMember(ctx, groupID, memberID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list member ledger entries", slog.String("group_id", groupID), slog.String("member_id", memberID))
		return nil, err
	}
	return entries, nil
}

// GetMemberBalance derives one member's position from their full history.
func (s *ledgerService) GetMemberBalance(ctx context.Context, actor domain.Actor, groupID, memberID string) (*domain.MemberBalance, error) {
	entries, err := s.ListMemberEntries(ctx, actor, groupID, memberID)
	if err != nil {
		return nil, err
	}
	balance := accounting.SummarizeMember(memberID, entries)
	return &balance, nil
}

// GetGroupBalances returns the monitoring aggregate of a group.
func (s *ledgerService) GetGroupBalances(ctx context.Context, actor domain.Actor, groupID string) ([]domain.MemberBalance, error) {
	entries, err := s.ListGroupEntries(ctx, actor, groupID)
	if err != nil {
		return nil, err
	}
	return accounting.GroupBalances(entries), nil
}
