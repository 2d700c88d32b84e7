package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/leadwise/crm-backend-go/internal/domain/notification"
	"github.com/leadwise/crm-backend-go/internal/domain/ticket"
)

// Retention windows for periodic cleanup.
const (
	readNotificationRetention = 30 * 24 * time.Hour
	staleTicketAge            = 14 * 24 * time.Hour
)

// MaintenanceJobs holds the repositories the cleanup jobs operate on.
type MaintenanceJobs struct {
	notificationRepo notification.Repository
	ticketRepo       ticket.Repository
}

func NewMaintenanceJobs(notificationRepo notification.Repository, ticketRepo ticket.Repository) *MaintenanceJobs {
	return &MaintenanceJobs{
		notificationRepo: notificationRepo,
		ticketRepo:       ticketRepo,
	}
}

// RegisterJobs registers all maintenance cron jobs.
func (j *MaintenanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_read_notifications", 6*time.Hour, j.PurgeReadNotifications)
	scheduler.AddJob("close_stale_tickets", 1*time.Hour, j.CloseStaleTickets)
}

// PurgeReadNotifications removes read notifications past the retention window.
func (j *MaintenanceJobs) PurgeReadNotifications(ctx context.Context) error {
	cutoff := time.Now().Add(-readNotificationRetention)
	n, err := j.notificationRepo.PurgeRead(ctx, cutoff)
	if err != nil {
		return err
	}
	if n > 0 {
		slog.Info("Purged read notifications", "count", n)
	}
	return nil
}

// CloseStaleTickets closes open tickets that have seen no activity.
func (j *MaintenanceJobs) CloseStaleTickets(ctx context.Context) error {
	cutoff := time.Now().Add(-staleTicketAge)
	n, err := j.ticketRepo.CloseStaleOpen(ctx, cutoff)
	if err != nil {
		return err
	}
	if n > 0 {
		slog.Info("Closed stale tickets", "count", n)
	}
	return nil
}
