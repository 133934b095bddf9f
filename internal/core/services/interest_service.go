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
	"github.com/SscSPs/kewat_ledger/internal/dto"
	"github.com/SscSPs/kewat_ledger/internal/platform/metrics"
	"github.com/SscSPs/kewat_ledger/internal/utils"
	"github.com/SscSPs/kewat_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const (
	reminderTitle          = "Monthly Reminder"
	recalculationTitle     = "Interest Applied"
	reminderNotification   = "monthly_reminder"
	recalculationEventType = "interest_recalculated"
)

var maxAnnualRate = decimal.NewFromInt(100)

// InterestRepositories groups the stores the interest engine touches.
type InterestRepositories struct {
	Ledger        portsrepo.LedgerReader
	Memberships   portsrepo.MembershipRepositoryFacade
	Settings      portsrepo.InterestSettingsRepository
	Reminders     portsrepo.ReminderRepository
	Notifications portsrepo.NotificationRepository
}

// interestService applies periodic interest and produces monthly reminders.
type interestService struct {
	BaseService
	repos          InterestRepositories
	defaultRateBps int
}

// NewInterestService creates a new InterestService. defaultRateBps applies to
// reminders of groups that have not configured a rate.
func NewInterestService(base BaseService, repos InterestRepositories, defaultRateBps int) portssvc.InterestSvcFacade {
	return &interestService{
		BaseService:    base,
		repos:          repos,
		defaultRateBps: defaultRateBps,
	}
}

var _ portssvc.InterestSvcFacade = (*interestService)(nil)

// GetInterestSettings returns the stored settings, or an empty record when the group has none.
func (s *interestService) GetInterestSettings(ctx context.Context, actor domain.Actor, groupID string) (*domain.InterestSettings, error) {
	if err := s.authorizeGroupMember(ctx, actor, groupID, s.repos.Memberships); err != nil {
		return nil, err
	}
	settings, err := s.repos.Settings.FindInterestSettings(ctx, groupID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.InterestSettings{GroupID: groupID}, nil
		}
		s.LogError(ctx, err, "Failed to load interest settings", slog.String("group_id", groupID))
		return nil, err
	}
	return settings, nil
}

// UpdateInterestSettings merges the provided fields into the group's settings.
func (s *interestService) UpdateInterestSettings(ctx context.Context, actor domain.Actor, groupID string, req dto.UpdateInterestSettingsRequest) (*domain.InterestSettings, error) {
	if err := s.authorize(ctx, actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.AnnualRate != nil && (req.AnnualRate.IsNegative() || req.AnnualRate.GreaterThan(maxAnnualRate)) {
		return nil, fmt.Errorf("%w: annualRate must be between 0 and 100", apperrors.ErrValidation)
	}
	if req.AnnualRate == nil && req.Frequency == nil && req.RateBps == nil {
		return nil, fmt.Errorf("%w: no settings provided", apperrors.ErrValidation)
	}

	patch := domain.InterestSettings{
		GroupID:    groupID,
		AnnualRate: req.AnnualRate,
		Frequency:  req.Frequency,
		RateBps:    req.RateBps,
		UpdatedAt:  s.now(),
		UpdatedBy:  actor.UserID,
	}

	details := map[string]any{}
	if req.AnnualRate != nil {
		details["annualRate"] = req.AnnualRate.String()
	}
	if req.Frequency != nil {
		details["frequency"] = string(*req.Frequency)
	}
	if req.RateBps != nil {
		details["rateBps"] = *req.RateBps
	}

	var merged *domain.InterestSettings
	err := s.inTx(ctx, actor, func(ctx context.Context, audit *auditTrail) error {
		var err error
		merged, err = s.repos.Settings.MergeInterestSettings(ctx, patch)
		if err != nil {
			return err
		}
		return audit.Record(ctx, groupID, domain.ActionInterestSettingsUpdated, details)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update interest settings", slog.String("group_id", groupID))
		return nil, err
	}
	s.LogInfo(ctx, "Interest settings updated", slog.String("group_id", groupID))
	return merged, nil
}

// RecalculateInterest applies one period of compound interest to every positive cached balance.
// Balance updates, the audit entry and the broadcast notification commit together.
func (s *interestService) RecalculateInterest(ctx context.Context, actor domain.Actor, groupID string) (*domain.RecalculationResult, error) {
	logger := s.GetLogger(ctx)

	if err := s.authorize(ctx, actor, domain.RoleAdmin); err != nil {
		return nil, err
	}

	settings, err := s.repos.Settings.FindInterestSettings(ctx, groupID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to load interest settings: %w", err)
	}
	if settings.AnnualRate == nil || settings.Frequency == nil {
		return nil, ErrInvalidSettings
	}
	annualRate, frequency := *settings.AnnualRate, *settings.Frequency

	now := s.now()
	result := &domain.RecalculationResult{
		GroupID:        groupID,
		Adjustments:    []domain.InterestAdjustment{},
		AnnualRate:     annualRate,
		Frequency:      frequency,
		RecalculatedAt: now,
	}

	err = s.inTx(ctx, actor, func(ctx context.Context, audit *auditTrail) error {
		memberships, err := s.repos.Memberships.ListMemberships(ctx, groupID)
		if err != nil {
			return err
		}
		if len(memberships) == 0 {
			return nil
		}

		updates := make([]domain.BalanceUpdate, 0, len(memberships))
		adjustments := make([]domain.InterestAdjustment, 0, len(memberships))
		for _, m := range memberships {
			if m.BalanceMinorUnits <= 0 {
				continue
			}
			interest := accounting.PeriodicInterest(m.BalanceMinorUnits, annualRate, frequency)
			if interest == 0 {
				continue
			}
			newBalance := m.BalanceMinorUnits + interest
			updates = append(updates, domain.BalanceUpdate{UserID: m.UserID, OldBalance: m.BalanceMinorUnits, NewBalance: newBalance})
			adjustments = append(adjustments, domain.InterestAdjustment{
				MemberID:   m.UserID,
				OldBalance: m.BalanceMinorUnits,
				NewBalance: newBalance,
				Interest:   interest,
			})
		}

		if len(updates) > 0 {
			if err := s.repos.Memberships.ApplyBalanceUpdates(ctx, groupID, updates, now); err != nil {
				return err
			}
		}

		auditAdjustments := make([]map[string]any, 0, len(adjustments))
		for _, a := range adjustments {
			auditAdjustments = append(auditAdjustments, map[string]any{
				"memberId":   a.MemberID,
				"oldBalance": a.OldBalance,
				"newBalance": a.NewBalance,
				"interest":   a.Interest,
			})
		}
		if err := audit.Record(ctx, groupID, domain.ActionInterestRecalculated, map[string]any{
			"annualRate":      annualRate.String(),
			"frequency":       string(frequency),
			"membersAffected": len(adjustments),
			"adjustments":     auditAdjustments,
		}); err != nil {
			return err
		}

		notification := domain.Notification{
			NotificationID: utils.NewID(now),
			GroupID:        groupID,
			Title:          recalculationTitle,
			Message:        fmt.Sprintf("Interest at %s%% per year (%s) has been applied to outstanding balances.", annualRate.String(), frequency),
			RecipientIDs:   []string{},
			Data: map[string]any{
				"type":       recalculationEventType,
				"annualRate": annualRate.String(),
				"frequency":  string(frequency),
			},
			Status:    domain.NotificationStored,
			CreatedAt: now,
			CreatedBy: actor.UserID,
		}
		if err := s.repos.Notifications.SaveNotification(ctx, notification); err != nil {
			return err
		}

		result.Adjustments = adjustments
		result.MembersAffected = len(adjustments)
		return nil
	})
	if err != nil {
		logger.Error("Interest recalculation rolled back", slog.String("error", err.Error()), slog.String("group_id", groupID))
		return nil, err
	}

	metrics.InterestRecalculations.Inc()
	logger.Info("Interest recalculated", slog.String("group_id", groupID), slog.Int("members_affected", result.MembersAffected))
	return result, nil
}

// GenerateMonthlyReminders creates one reminder per indebted member for the UTC month of now.
// Members already reminded for the period are skipped, so the run can be repeated safely.
// Every reminder, its notification and the run's audit entry commit together.
func (s *interestService) GenerateMonthlyReminders(ctx context.Context, actor domain.Actor, groupID string, now time.Time) (*domain.ReminderRunResult, error) {
	logger := s.GetLogger(ctx)

	if err := s.authorize(ctx, actor, domain.RoleAdmin); err != nil {
		return nil, err
	}

	periodKey := domain.PeriodKey(now)
	rateBps := s.defaultRateBps
	settings, err := s.repos.Settings.FindInterestSettings(ctx, groupID)
	switch {
	case err == nil:
		if settings.RateBps != nil {
			rateBps = *settings.RateBps
		}
	case errors.Is(err, apperrors.ErrNotFound):
	default:
		return nil, fmt.Errorf("failed to load interest settings: %w", err)
	}

	var result *domain.ReminderRunResult
	err = s.inTx(ctx, actor, func(ctx context.Context, audit *auditTrail) error {
		memberships, err := s.repos.Memberships.ListMemberships(ctx, groupID)
		if err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}

		run := &domain.ReminderRunResult{GroupID: groupID, PeriodKey: periodKey}
		for _, m := range memberships {
			if m.Role != domain.RoleMember {
				continue
			}
			created, err := s.remindMember(ctx, actor, groupID, m.UserID, periodKey, rateBps)
			if err != nil {
				return fmt.Errorf("failed to remind %s: %w", m.UserID, err)
			}
			if created {
				run.Created++
			} else {
				run.Skipped++
			}
		}

		if err := audit.Record(ctx, groupID, domain.ActionMonthlyRemindersGenerated, map[string]any{
			"periodKey": periodKey,
			"created":   run.Created,
			"skipped":   run.Skipped,
		}); err != nil {
			return err
		}
		result = run
		return nil
	})
	if err != nil {
		logger.Error("Monthly reminder run rolled back", slog.String("error", err.Error()), slog.String("group_id", groupID), slog.String("period", periodKey))
		return nil, err
	}

	metrics.RemindersCreated.Add(float64(result.Created))
	logger.Info("Monthly reminders generated", slog.String("group_id", groupID), slog.String("period", periodKey), slog.Int("created", result.Created), slog.Int("skipped", result.Skipped))
	return result, nil
}

// remindMember creates the reminder and its inbox notification for one member in the
// transaction carried by ctx. It reports false when the member owes nothing or was already reminded.
func (s *interestService) remindMember(ctx context.Context, actor domain.Actor, groupID, memberID, periodKey string, rateBps int) (bool, error) {
	entries, err := s.repos.Ledger.ListByMember(ctx, groupID, memberID)
	if err != nil {
		return false, err
	}
	outstanding := accounting.Outstanding(entries)
	if outstanding <= 0 {
		return false, nil
	}

	interest := accounting.SimpleInterestBps(outstanding, rateBps)
	now := s.now()
	reminder := domain.MonthlyReminder{
		GroupID:                   groupID,
		MemberID:                  memberID,
		PeriodKey:                 periodKey,
		PrincipalOutstandingPaisa: outstanding,
		RateBps:                   rateBps,
		InterestPaisa:             interest,
		TotalDuePaisa:             outstanding + interest,
		Status:                    domain.ReminderCreated,
		CreatedAt:                 now,
		CreatedBy:                 actor.UserID,
	}

	created, err := s.repos.Reminders.CreateReminderIfAbsent(ctx, reminder)
	if err != nil || !created {
		return false, err
	}
	err = s.repos.Notifications.SaveNotification(ctx, domain.Notification{
		NotificationID: utils.NewID(now),
		GroupID:        groupID,
		Title:          reminderTitle,
		Message:        fmt.Sprintf("Reminder: you have %s due (principal + interest).", utils.FormatWithCurrency(reminder.TotalDuePaisa)),
		RecipientIDs:   []string{memberID},
		Data: map[string]any{
			"type":                      reminderNotification,
			"periodKey":                 periodKey,
			"principalOutstandingPaisa": reminder.PrincipalOutstandingPaisa,
			"interestPaisa":             reminder.InterestPaisa,
			"totalDuePaisa":             reminder.TotalDuePaisa,
			"rateBps":                   rateBps,
		},
		Status:    domain.NotificationStored,
		CreatedAt: now,
		CreatedBy: actor.UserID,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListReminders returns the reminders of a period; an empty periodKey means the current month.
func (s *interestService) ListReminders(ctx context.Context, actor domain.Actor, groupID, periodKey string) ([]domain.MonthlyReminder, error) {
	if err := s.authorize(ctx, actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if periodKey == "" {
		periodKey = domain.PeriodKey(s.now())
	} else if _, err := time.Parse(domain.PeriodKeyLayout, periodKey); err != nil {
		return nil, fmt.Errorf("%w: period must be formatted YYYY-MM", apperrors.ErrValidation)
	}
	reminders, err := s.repos.Reminders.ListReminders(ctx, groupID, periodKey)
	if err != nil {
		s.LogError(ctx, err, "Failed to list reminders", slog.String("group_id", groupID), slog.String("period", periodKey))
		return nil, err
	}
	return reminders, nil
}
