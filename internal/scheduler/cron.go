package cron

import (
	"context"

	"github.com/askarbek-a/linkup/internal/jobs"
	"github.com/askarbek-a/linkup/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartCronJobs schedules the periodic maintenance jobs.
func StartCronJobs(notificationService *services.NotificationService, digest *jobs.UnreadDigestNotifier) {
	c := cron.New()

	// Inactive user reminders
	c.AddFunc("0 0 * * *", func() {
		err := notificationService.CheckInactiveUsers(context.Background())
		if err != nil {
			logrus.WithError(err).Error("CheckInactiveUsers failed")
		}
	})

	// Drop notifications past their expiry
	c.AddFunc("@hourly", func() {
		err := notificationService.DeleteExpiredNotifications(context.Background())
		if err != nil {
			logrus.WithError(err).Error("DeleteExpiredNotifications failed")
		}
	})

	// Unread message digests
	c.AddFunc("@hourly", func() {
		err := digest.Run(context.Background())
		if err != nil {
			logrus.WithError(err).Error("Unread digest failed")
		}
	})

	c.Start()
}
