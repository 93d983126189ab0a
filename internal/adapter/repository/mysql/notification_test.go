package mysql

import (
	"context"
	"testing"
	"time"

	notifDomain "hedniya-backend/internal/domain/notification"
)

func seedSchedule(t *testing.T, repo *NotificationRepository, loanID uint64, base time.Time) []notifDomain.Notification {
	t.Helper()
	ns := []notifDomain.Notification{
		{LoanID: loanID, Type: notifDomain.TypeDueSoon, ScheduledAt: base},
		{LoanID: loanID, Type: notifDomain.TypeDDay, ScheduledAt: base.AddDate(0, 0, 1)},
		{LoanID: loanID, Type: notifDomain.TypePastDue, ScheduledAt: base.AddDate(0, 0, 3)},
	}
	if err := repo.CreateBatch(context.Background(), ns); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	return ns
}

func TestCreateBatchAndListPending(t *testing.T) {
	db := openTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC)
	seedSchedule(t, repo, 7, base)
	seedSchedule(t, repo, 8, base) // another loan's rows must not leak in

	got, err := repo.ListPendingByLoan(ctx, 7)
	if err != nil {
		t.Fatalf("ListPendingByLoan: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d rows, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].ScheduledAt.Before(got[i-1].ScheduledAt) {
			t.Fatalf("rows not ordered by scheduled_at: %+v", got)
		}
	}
}

func TestCreateBatch_Empty(t *testing.T) {
	db := openTestDB(t)
	repo := NewNotificationRepository(db)

	if err := repo.CreateBatch(context.Background(), nil); err != nil {
		t.Fatalf("empty batch must be a no-op, got %v", err)
	}
}

func TestDeletePendingByLoan_KeepsSentRows(t *testing.T) {
	db := openTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC)
	ns := seedSchedule(t, repo, 7, base)

	// mark the first row sent, then wipe pending
	if err := repo.MarkSent(ctx, ns[0].ID, base.Add(time.Minute)); err != nil {
		t.Fatalf("MarkSent: %v", err)
	}
	if err := repo.DeletePendingByLoan(ctx, 7); err != nil {
		t.Fatalf("DeletePendingByLoan: %v", err)
	}

	var count int64
	if err := db.Model(&notificationSQLite{}).Where("loan_id = ?", 7).Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("got %d rows, want only the sent one to survive", count)
	}

	pending, err := repo.ListPendingByLoan(ctx, 7)
	if err != nil {
		t.Fatalf("ListPendingByLoan: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending rows survived the delete: %+v", pending)
	}
}

func TestListDue(t *testing.T) {
	db := openTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC)
	ns := seedSchedule(t, repo, 7, base)

	now := base.AddDate(0, 0, 1) // first two rows are due, PAST_DUE is not
	got, err := repo.ListDue(ctx, now, 10)
	if err != nil {
		t.Fatalf("ListDue: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d due rows, want 2: %+v", len(got), got)
	}

	// sent rows drop out of the due page
	if err := repo.MarkSent(ctx, ns[0].ID, now); err != nil {
		t.Fatalf("MarkSent: %v", err)
	}
	got, err = repo.ListDue(ctx, now, 10)
	if err != nil {
		t.Fatalf("ListDue after MarkSent: %v", err)
	}
	if len(got) != 1 || got[0].Type != notifDomain.TypeDDay {
		t.Fatalf("unexpected due page after MarkSent: %+v", got)
	}

	// limit caps the page
	got, err = repo.ListDue(ctx, base.AddDate(0, 0, 10), 1)
	if err != nil {
		t.Fatalf("ListDue limited: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("limit ignored, got %d rows", len(got))
	}
}

func TestMarkSent_DoesNotOverwrite(t *testing.T) {
	db := openTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC)
	ns := seedSchedule(t, repo, 7, base)

	first := base.Add(time.Minute)
	if err := repo.MarkSent(ctx, ns[0].ID, first); err != nil {
		t.Fatalf("MarkSent: %v", err)
	}
	// a concurrent dispatcher stamping again must not move the timestamp
	if err := repo.MarkSent(ctx, ns[0].ID, base.Add(time.Hour)); err != nil {
		t.Fatalf("second MarkSent: %v", err)
	}

	var row notificationSQLite
	if err := db.Where("id = ?", ns[0].ID).First(&row).Error; err != nil {
		t.Fatal(err)
	}
	if row.SentAt == nil || !row.SentAt.Equal(first) {
		t.Fatalf("sent_at=%v, want the first stamp to stick", row.SentAt)
	}
}
