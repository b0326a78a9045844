package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/askarbek-a/linkup/internal/models"
	"github.com/askarbek-a/linkup/internal/services"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UnreadSource lists unread messages created before a cutoff.
type UnreadSource interface {
	GetUnreadOlderThan(ctx context.Context, cutoff time.Time) ([]models.Message, error)
}

// UnreadDigestNotifier reminds users about messages left unread for a day.
type UnreadDigestNotifier struct {
	Messages            UnreadSource
	NotificationService *services.NotificationService
}

// NewUnreadDigestNotifier creates a new instance of UnreadDigestNotifier.
func NewUnreadDigestNotifier(messages UnreadSource, notifService *services.NotificationService) *UnreadDigestNotifier {
	return &UnreadDigestNotifier{
		Messages:            messages,
		NotificationService: notifService,
	}
}

// Run scans for stale unread messages and creates one digest notification
// per receiver, deduped against a digest sent in the last 24h.
func (d *UnreadDigestNotifier) Run(ctx context.Context) error {
	cutoff := time.Now().Add(-24 * time.Hour)

	messages, err := d.Messages.GetUnreadOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to fetch unread messages: %v", err)
	}

	perReceiver := make(map[primitive.ObjectID]int)
	for _, msg := range messages {
		perReceiver[msg.ReceiverID]++
	}

	for receiverID, count := range perReceiver {
		if d.NotificationService.HasRecentNotification(ctx, receiverID, "unread_digest", 24*time.Hour) {
			continue
		}

		message := fmt.Sprintf("You have %d unread message(s) waiting for you.", count)
		err := d.NotificationService.CreateNotification(ctx, receiverID, "unread_digest",
			"Unread messages", message, nil)
		if err != nil {
			logrus.WithError(err).Warnf("Failed to send unread digest to user %s", receiverID.Hex())
		}
	}

	logrus.Infof("Unread digest scan completed: %d receivers", len(perReceiver))
	return nil
}
