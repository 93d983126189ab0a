package mysql

import (
	"context"

	confDomain "hedniya-backend/internal/domain/confirmation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConfirmationRepository struct{ db *gorm.DB }

func NewConfirmationRepository(db *gorm.DB) *ConfirmationRepository {
	return &ConfirmationRepository{db: db}
}

func (r *ConfirmationRepository) Create(ctx context.Context, c *confDomain.Confirmation) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ConfirmationRepository) Save(ctx context.Context, c *confDomain.Confirmation) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ConfirmationRepository) GetByConfirmationID(ctx context.Context, confirmationID string) (*confDomain.Confirmation, error) {
	var out confDomain.Confirmation
	res := r.db.WithContext(ctx).Where("confirmation_id = ?", confirmationID).First(&out)
	return &out, res.Error
}

func (r *ConfirmationRepository) GetByConfirmationIDForUpdate(ctx context.Context, confirmationID string) (*confDomain.Confirmation, error) {
	var out confDomain.Confirmation
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("confirmation_id = ?", confirmationID).
		First(&out)
	return &out, res.Error
}

func (r *ConfirmationRepository) ListByLoan(ctx context.Context, loanNumericID uint64) ([]confDomain.Confirmation, error) {
	var out []confDomain.Confirmation
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanNumericID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
