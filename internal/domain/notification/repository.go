package notification

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	CreateBatch(ctx context.Context, ns []*Notification) error
	GetByID(ctx context.Context, id string) (*Notification, error)
	GetByRecipient(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]*Notification, int64, error)
	CountUnread(ctx context.Context, recipientID string) (int, error)
	MarkRead(ctx context.Context, recipientID string, ids []string) error
	MarkAllRead(ctx context.Context, recipientID string) error
	Delete(ctx context.Context, recipientID string, id string) error

	// PurgeRead deletes read notifications older than the cutoff and
	// returns how many were removed. Used by the scheduler.
	PurgeRead(ctx context.Context, cutoff time.Time) (int64, error)
}
