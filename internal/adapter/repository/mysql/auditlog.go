package mysql

import (
	"context"

	"hedniya-backend/internal/domain/auditlog"

	"gorm.io/gorm"
)

// AuditLogRecorder is the gorm-backed write-only sink. No read path on
// purpose: the core appends, the payment-rail worker consumes elsewhere.
type AuditLogRecorder struct{ db *gorm.DB }

func NewAuditLogRecorder(db *gorm.DB) *AuditLogRecorder { return &AuditLogRecorder{db: db} }

func (r *AuditLogRecorder) Record(ctx context.Context, e *auditlog.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}
