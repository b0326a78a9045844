package services

import (
	"context"
	"fmt"
	"time"

	"github.com/askarbek-a/linkup/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationRepository is the storage surface the notification service needs.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notif *models.Notification) error
	GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id primitive.ObjectID) error
	DeleteNotification(ctx context.Context, id primitive.ObjectID) error
	GetLatestNotificationByType(ctx context.Context, userID primitive.ObjectID, notifType string) (*models.Notification, error)
	DeleteExpiredNotifications(ctx context.Context) error
}

// NotificationUserRepository is the slice of the user store the service touches.
type NotificationUserRepository interface {
	GetAllUsers(ctx context.Context) ([]*models.User, error)
}

type NotificationService struct {
	repo     NotificationRepository
	userRepo NotificationUserRepository
}

func NewNotificationService(repo NotificationRepository, userRepo NotificationUserRepository) *NotificationService {
	return &NotificationService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// CreateNotification logs a new notification for a user
func (s *NotificationService) CreateNotification(ctx context.Context, userID primitive.ObjectID, notifType, title, message string, targetID *primitive.ObjectID) error {
	notif := &models.Notification{
		UserID:   userID,
		Type:     notifType,
		Title:    title,
		Message:  message,
		Read:     false,
		TargetID: targetID,
	}
	return s.repo.CreateNotification(ctx, notif)
}

// GetUserNotifications returns all notifications for a user
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	return s.repo.GetUserNotifications(ctx, userID)
}

// MarkNotificationAsRead sets the "read" status of a notification to true
func (s *NotificationService) MarkNotificationAsRead(ctx context.Context, notifID primitive.ObjectID) error {
	return s.repo.MarkAsRead(ctx, notifID)
}

// DeleteNotification deletes a specific notification
func (s *NotificationService) DeleteNotification(ctx context.Context, notifID primitive.ObjectID) error {
	return s.repo.DeleteNotification(ctx, notifID)
}

// DeleteExpiredNotifications is called periodically by cron.
func (s *NotificationService) DeleteExpiredNotifications(ctx context.Context) error {
	return s.repo.DeleteExpiredNotifications(ctx)
}

// HasRecentNotification reports whether the user already got a notification
// of this type within the window. Used to dedupe periodic reminders.
func (s *NotificationService) HasRecentNotification(ctx context.Context, userID primitive.ObjectID, notifType string, window time.Duration) bool {
	existing, err := s.repo.GetLatestNotificationByType(ctx, userID, notifType)
	if err != nil || existing == nil {
		return false
	}
	return time.Since(existing.CreatedAt) < window
}

// CheckInactiveUsers nudges users who have not been seen for a few days.
func (s *NotificationService) CheckInactiveUsers(ctx context.Context) error {
	users, err := s.userRepo.GetAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch users: %w", err)
	}

	now := time.Now()
	for _, user := range users {
		if user.LastActiveAt.IsZero() || now.Sub(user.LastActiveAt) >= 3*24*time.Hour {
			if s.HasRecentNotification(ctx, user.ID, "user_inactive", 3*24*time.Hour) {
				continue // skip duplicate notification
			}

			err = s.CreateNotification(ctx, user.ID, "user_inactive",
				"We miss you!",
				"You haven't been active for a few days. Come back and see what your connections are up to!",
				nil,
			)
			if err != nil {
				logrus.WithError(err).Warnf("Failed to send inactivity notification to user %s", user.ID.Hex())
			}
		}
	}

	return nil
}
