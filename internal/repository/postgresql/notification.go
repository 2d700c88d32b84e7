package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/leadwise/crm-backend-go/internal/domain/notification"
	"github.com/leadwise/crm-backend-go/internal/pkg/database"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepositoryImpl{db: db}
}

const notificationColumns = `id, recipient_id, sender_id, type, title, message,
	data, is_read, read_at, created_at`

func scanNotification(row pgx.Row) (*notification.Notification, error) {
	var n notification.Notification
	err := row.Scan(
		&n.ID,
		&n.RecipientID,
		&n.SenderID,
		&n.Type,
		&n.Title,
		&n.Message,
		&n.Data,
		&n.IsRead,
		&n.ReadAt,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create implements notification.Repository. IDs are generated by the
// caller so a freshly queued notification can be pushed to subscribers
// without a read-back.
func (r *notificationRepositoryImpl) Create(ctx context.Context, n *notification.Notification) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (id, recipient_id, sender_id, type, title, message, data, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := q.Exec(ctx, query,
		n.ID, n.RecipientID, n.SenderID, n.Type, n.Title, n.Message, n.Data, n.IsRead, n.CreatedAt)
	return err
}

// CreateBatch implements notification.Repository. The batch goes out in a
// single round trip via pgx's pipeline.
func (r *notificationRepositoryImpl) CreateBatch(ctx context.Context, ns []*notification.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO notifications (id, recipient_id, sender_id, type, title, message, data, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, n := range ns {
		batch.Queue(query, n.ID, n.RecipientID, n.SenderID, n.Type, n.Title, n.Message, n.Data, n.IsRead, n.CreatedAt)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for range ns {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return results.Close()
}

// GetByID implements notification.Repository.
func (r *notificationRepositoryImpl) GetByID(ctx context.Context, id string) (*notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	return scanNotification(q.QueryRow(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id))
}

// GetByRecipient implements notification.Repository.
func (r *notificationRepositoryImpl) GetByRecipient(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `recipient_id = $1`
	if unreadOnly {
		where += ` AND is_read = FALSE`
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE `+where, recipientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageToLimitOffset(page, pageSize)
	query := `SELECT ` + notificationColumns + ` FROM notifications
		WHERE ` + where + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := q.Query(ctx, query, recipientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, err
		}
		notifications = append(notifications, n)
	}

	return notifications, total, rows.Err()
}

// CountUnread implements notification.Repository.
func (r *notificationRepositoryImpl) CountUnread(ctx context.Context, recipientID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`,
		recipientID).Scan(&count)
	return count, err
}

// MarkRead implements notification.Repository.
func (r *notificationRepositoryImpl) MarkRead(ctx context.Context, recipientID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE recipient_id = $1 AND id = ANY($2) AND is_read = FALSE
	`, recipientID, ids)
	return err
}

// MarkAllRead implements notification.Repository.
func (r *notificationRepositoryImpl) MarkAllRead(ctx context.Context, recipientID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE recipient_id = $1 AND is_read = FALSE
	`, recipientID)
	return err
}

// Delete implements notification.Repository. The recipient scoping keeps a
// user from deleting someone else's notification by id.
func (r *notificationRepositoryImpl) Delete(ctx context.Context, recipientID string, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM notifications WHERE recipient_id = $1 AND id = $2`,
		recipientID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

// PurgeRead implements notification.Repository.
func (r *notificationRepositoryImpl) PurgeRead(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM notifications WHERE is_read = TRUE AND read_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
