package mysql

import (
	"context"
	"time"

	loanDomain "hedniya-backend/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ?", loanID).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListByParty(ctx context.Context, userID string, statuses []loanDomain.Status) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("(lender_id = ? OR borrower_id = ?)", userID, userID).
		Where("status IN ?", statuses).
		Order("due_date ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListDueForSweep(ctx context.Context, today time.Time, limit int) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("status = ? AND due_date < ?", loanDomain.StatusActive, loanDomain.DateOf(today)).
		Order("due_date ASC, id ASC").
		Limit(limit).
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListOverdueNeedingReminders(ctx context.Context, limit int) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("status = ?", loanDomain.StatusOverdue).
		Where("NOT EXISTS (SELECT 1 FROM notifications n WHERE n.loan_id = loans.id AND n.sent_at IS NULL)").
		Order("due_date ASC, id ASC").
		Limit(limit).
		Find(&out)
	return out, res.Error
}
