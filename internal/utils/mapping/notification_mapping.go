package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	"github.com/SscSPs/kewat_ledger/internal/models"
)

// ToModelNotification converts a domain Notification to a model Notification
func ToModelNotification(d domain.Notification) (models.Notification, error) {
	recipients := d.RecipientIDs
	if recipients == nil {
		recipients = []string{}
	}
	recipientJSON, err := json.Marshal(recipients)
	if err != nil {
		return models.Notification{}, fmt.Errorf("encode recipients: %w", err)
	}
	var dataJSON []byte
	if d.Data != nil {
		if dataJSON, err = json.Marshal(d.Data); err != nil {
			return models.Notification{}, fmt.Errorf("encode notification data: %w", err)
		}
	}
	return models.Notification{
		NotificationID: d.NotificationID,
		GroupID:        d.GroupID,
		Title:          d.Title,
		Message:        d.Message,
		RecipientIDs:   recipientJSON,
		Data:           dataJSON,
		Status:         string(d.Status),
		SentCount:      d.SentCount,
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
		SentAt:         d.SentAt,
	}, nil
}

// ToDomainNotification converts a model Notification to a domain Notification
func ToDomainNotification(m models.Notification) (domain.Notification, error) {
	d := domain.Notification{
		NotificationID: m.NotificationID,
		GroupID:        m.GroupID,
		Title:          m.Title,
		Message:        m.Message,
		RecipientIDs:   []string{},
		Status:         domain.NotificationStatus(m.Status),
		SentCount:      m.SentCount,
		CreatedAt:      m.CreatedAt.UTC(),
		CreatedBy:      m.CreatedBy,
	}
	if len(m.RecipientIDs) > 0 {
		if err := json.Unmarshal(m.RecipientIDs, &d.RecipientIDs); err != nil {
			return domain.Notification{}, fmt.Errorf("decode recipients of %s: %w", m.NotificationID, err)
		}
	}
	if len(m.Data) > 0 {
		if err := json.Unmarshal(m.Data, &d.Data); err != nil {
			return domain.Notification{}, fmt.Errorf("decode data of %s: %w", m.NotificationID, err)
		}
	}
	if m.SentAt != nil {
		sentAt := m.SentAt.UTC()
		d.SentAt = &sentAt
	}
	return d, nil
}
