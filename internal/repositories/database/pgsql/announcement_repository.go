package pgsql

import (
	"context"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/kewat_ledger/internal/core/ports/repositories"
)

type PgxAnnouncementRepository struct {
	BaseRepository
}

func newPgxAnnouncementRepository(base BaseRepository) portsrepo.AnnouncementRepository {
	return &PgxAnnouncementRepository{BaseRepository: base}
}

var _ portsrepo.AnnouncementRepository = (*PgxAnnouncementRepository)(nil)

const selectAnnouncementFields = `announcement_id, group_id, title, message, created_at, created_by`

// SaveAnnouncement inserts an announcement.
func (r *PgxAnnouncementRepository) SaveAnnouncement(ctx context.Context, a domain.Announcement) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.db(ctx).Exec(ctx, `INSERT INTO announcements (`+selectAnnouncementFields+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		a.AnnouncementID, a.GroupID, a.Title, a.Message, a.CreatedAt, a.CreatedBy)
	if err != nil {
		return storeError("failed to insert announcement "+a.AnnouncementID, err)
	}
	return nil
}

// ListAnnouncements returns the newest announcements of a group first.
func (r *PgxAnnouncementRepository) ListAnnouncements(ctx context.Context, groupID string, limit int) ([]domain.Announcement, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db(ctx).Query(ctx, `
		SELECT `+selectAnnouncementFields+` FROM announcements
		WHERE group_id = $1
		ORDER BY created_at DESC, announcement_id DESC
		LIMIT $2
	`, groupID, limit)
	if err != nil {
		return nil, storeError("failed to list announcements", err)
	}
	defer rows.Close()

	announcements := []domain.Announcement{}
	for rows.Next() {
		var a domain.Announcement
		if err := rows.Scan(&a.AnnouncementID, &a.GroupID, &a.Title, &a.Message, &a.CreatedAt, &a.CreatedBy); err != nil {
			return nil, storeError("failed to scan announcement", err)
		}
		a.CreatedAt = a.CreatedAt.UTC()
		announcements = append(announcements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("error iterating announcements", err)
	}
	return announcements, nil
}
