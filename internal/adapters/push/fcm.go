package push

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/kewat_ledger/internal/core/ports/services"
	"golang.org/x/oauth2/google"
	fcm "google.golang.org/api/fcm/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// FCMSender delivers through the Firebase Cloud Messaging HTTP v1 API.
type FCMSender struct {
	parent string
	svc    *fcm.Service
}

var _ portssvc.PushSender = (*FCMSender)(nil)

// NewFCMSender creates a sender for projectID. Credentials come from
// credentialsFile when set, else from Application Default Credentials.
// Extra client options (endpoint, HTTP client) replace the credential lookup.
func NewFCMSender(ctx context.Context, projectID, credentialsFile string, opts ...option.ClientOption) (*FCMSender, error) {
	if projectID == "" {
		return nil, errors.New("fcm project id cannot be empty")
	}

	if len(opts) == 0 {
		creds, err := loadCredentials(ctx, credentialsFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithTokenSource(creds.TokenSource))
	}

	svc, err := fcm.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create fcm client: %w", err)
	}
	return &FCMSender{parent: "projects/" + projectID, svc: svc}, nil
}

func loadCredentials(ctx context.Context, credentialsFile string) (*google.Credentials, error) {
	if credentialsFile == "" {
		creds, err := google.FindDefaultCredentials(ctx, fcm.FirebaseMessagingScope)
		if err != nil {
			return nil, fmt.Errorf("failed to find default credentials: %w", err)
		}
		return creds, nil
	}
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read fcm credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, fcm.FirebaseMessagingScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fcm credentials: %w", err)
	}
	return creds, nil
}

// Send delivers one message. Provider errors are reduced to their status and message.
func (s *FCMSender) Send(ctx context.Context, msg domain.PushMessage) error {
	req := &fcm.SendMessageRequest{
		Message: &fcm.Message{
			Token: msg.Token,
			Notification: &fcm.Notification{
				Title: msg.Title,
				Body:  msg.Body,
			},
			Data: msg.Data,
		},
	}
	_, err := s.svc.Projects.Messages.Send(s.parent, req).Context(ctx).Do()
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("fcm %d: %s", apiErr.Code, apiErr.Message)
	}
	return err
}
