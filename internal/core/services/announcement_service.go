package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/kewat_ledger/internal/apperrors"
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/kewat_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kewat_ledger/internal/core/ports/services"
	"github.com/SscSPs/kewat_ledger/internal/dto"
	"github.com/SscSPs/kewat_ledger/internal/utils"
)

const announcementBoardSize = 50

// announcementService keeps the group board.
type announcementService struct {
	BaseService
	announcementRepo portsrepo.AnnouncementRepository
	membershipRepo   portsrepo.MembershipReader
}

// NewAnnouncementService creates a new AnnouncementService.
func NewAnnouncementService(base BaseService, announcementRepo portsrepo.AnnouncementRepository, membershipRepo portsrepo.MembershipReader) portssvc.AnnouncementSvcFacade {
	return &announcementService{
		BaseService:      base,
		announcementRepo: announcementRepo,
		membershipRepo:   membershipRepo,
	}
}

var _ portssvc.AnnouncementSvcFacade = (*announcementService)(nil)

// PostAnnouncement pins a notice to the board. Admin only.
func (s *announcementService) PostAnnouncement(ctx context.Context, actor domain.Actor, groupID string, req dto.CreateAnnouncementRequest) (*domain.Announcement, error) {
	logger := s.GetLogger(ctx)

	if err := s.authorize(ctx, actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", apperrors.ErrValidation)
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = domain.DefaultAnnouncementTitle
	}

	now := s.now()
	announcement := domain.Announcement{
		AnnouncementID: utils.NewID(now),
		GroupID:        groupID,
		Title:          title,
		Message:        message,
		CreatedAt:      now,
		CreatedBy:      actor.UserID,
	}

	err := s.inTx(ctx, actor, func(ctx context.Context, audit *auditTrail) error {
		if err := s.announcementRepo.SaveAnnouncement(ctx, announcement); err != nil {
			return err
		}
		return audit.Record(ctx, groupID, domain.ActionAnnouncementCreated, map[string]any{
			"announcementId": announcement.AnnouncementID,
			"title":          announcement.Title,
		})
	})
	if err != nil {
		logger.Warn("Failed to post announcement", slog.String("error", err.Error()), slog.String("group_id", groupID))
		return nil, err
	}

	logger.Info("Announcement posted", slog.String("group_id", groupID), slog.String("announcement_id", announcement.AnnouncementID))
	return &announcement, nil
}

// ListAnnouncements returns the latest notices of a group the caller belongs to.
func (s *announcementService) ListAnnouncements(ctx context.Context, actor domain.Actor, groupID string) ([]domain.Announcement, error) {
	if err := s.authorizeGroupMember(ctx, actor, groupID, s.membershipRepo); err != nil {
		return nil, err
	}
	announcements, err := s.announcementRepo.ListAnnouncements(ctx, groupID, announcementBoardSize)
	if err != nil {
		s.LogError(ctx, err, "Failed to list announcements", slog.String("group_id", groupID))
		return nil, err
	}
	return announcements, nil
}
