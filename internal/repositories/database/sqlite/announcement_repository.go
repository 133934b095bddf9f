package sqlite

import (
	"context"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/kewat_ledger/internal/core/ports/repositories"
)

type announcementRepository struct {
	BaseRepository
}

var _ portsrepo.AnnouncementRepository = (*announcementRepository)(nil)

const selectAnnouncementFields = `announcement_id, group_id, title, message, created_at, created_by`

func (r *announcementRepository) SaveAnnouncement(ctx context.Context, a domain.Announcement) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.db(ctx).ExecContext(ctx, `INSERT INTO announcements (`+selectAnnouncementFields+`) VALUES (?, ?, ?, ?, ?, ?)`,
		a.AnnouncementID, a.GroupID, a.Title, a.Message, toUnix(a.CreatedAt), a.CreatedBy)
	if err != nil {
		return storeError("failed to insert announcement "+a.AnnouncementID, err)
	}
	return nil
}

func (r *announcementRepository) ListAnnouncements(ctx context.Context, groupID string, limit int) ([]domain.Announcement, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db(ctx).QueryContext(ctx, `
		SELECT `+selectAnnouncementFields+` FROM announcements
		WHERE group_id = ?
		ORDER BY created_at DESC, announcement_id DESC
		LIMIT ?
	`, groupID, limit)
	if err != nil {
		return nil, storeError("failed to list announcements", err)
	}
	defer rows.Close()

	announcements := []domain.Announcement{}
	for rows.Next() {
		var a domain.Announcement
		var createdAt int64
		if err := rows.Scan(&a.AnnouncementID, &a.GroupID, &a.Title, &a.Message, &createdAt, &a.CreatedBy); err != nil {
			return nil, storeError("failed to scan announcement", err)
		}
		a.CreatedAt = fromUnix(createdAt)
		announcements = append(announcements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("error iterating announcements", err)
	}
	return announcements, nil
}
