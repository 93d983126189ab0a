package mysql

import (
	"context"
	"time"

	notifDomain "hedniya-backend/internal/domain/notification"

	"gorm.io/gorm"
)

type NotificationRepository struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) CreateBatch(ctx context.Context, ns []notifDomain.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ns).Error
}

func (r *NotificationRepository) DeletePendingByLoan(ctx context.Context, loanNumericID uint64) error {
	return r.db.WithContext(ctx).
		Where("loan_id = ? AND sent_at IS NULL", loanNumericID).
		Delete(&notifDomain.Notification{}).Error
}

func (r *NotificationRepository) ListPendingByLoan(ctx context.Context, loanNumericID uint64) ([]notifDomain.Notification, error) {
	var out []notifDomain.Notification
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND sent_at IS NULL", loanNumericID).
		Order("scheduled_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *NotificationRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]notifDomain.Notification, error) {
	var out []notifDomain.Notification
	res := r.db.WithContext(ctx).
		Where("sent_at IS NULL AND scheduled_at <= ?", now).
		Order("scheduled_at ASC, id ASC").
		Limit(limit).
		Find(&out)
	return out, res.Error
}

func (r *NotificationRepository) MarkSent(ctx context.Context, id uint64, at time.Time) error {
	// Guard on sent_at IS NULL so a concurrent dispatcher cannot overwrite an
	// already-stamped row.
	return r.db.WithContext(ctx).
		Model(&notifDomain.Notification{}).
		Where("id = ? AND sent_at IS NULL", id).
		Update("sent_at", at).Error
}
