package services

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/claimmate/go-claims-backend/internal/domain"
	"github.com/claimmate/go-claims-backend/internal/repo"
)

func newClaimServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("claim_service_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedPolicy(t *testing.T, db *gorm.DB, userID string) *domain.Policy {
	t.Helper()
	p, err := repo.CreatePolicy(context.Background(), db, repo.PolicyUpload{
		UserID:   userID,
		FileName: "policy.pdf",
		FileSize: 64,
		MimeType: "application/pdf",
	})
	if err != nil {
		t.Fatalf("seed policy: %v", err)
	}
	return p
}

func newClaimService(db *gorm.DB) *ClaimService {
	return &ClaimService{DB: db, ProcessingDays: 10, IdempotencyTTL: time.Hour}
}

func TestClaimCreate_ChecklistAndInitialUpdate(t *testing.T) {
	db := newClaimServiceDB(t)
	svc := newClaimService(db)
	p := seedPolicy(t, db, "u1")

	claim, replayed, err := svc.Create(context.Background(), CreateClaim{
		UserID:      "u1",
		PolicyID:    p.ID,
		Amount:      150000,
		Description: "hospitalization expenses",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if replayed {
		t.Fatalf("fresh claim reported as replayed")
	}
	if claim.Status != domain.ClaimSubmitted {
		t.Fatalf("expected submitted status, got %q", claim.Status)
	}
	if claim.EstimatedProcessingDays != 10 {
		t.Fatalf("processing days not stamped: %d", claim.EstimatedProcessingDays)
	}

	details, err := svc.GetDetails(context.Background(), claim.ID)
	if err != nil {
		t.Fatalf("GetDetails: %v", err)
	}
	if len(details.Checklist) != 5 {
		t.Fatalf("expected 5 checklist items, got %d", len(details.Checklist))
	}
	for i, item := range details.Checklist {
		if item.ItemOrder != i+1 {
			t.Fatalf("checklist item %d has order %d", i, item.ItemOrder)
		}
		if item.IsCompleted {
			t.Fatalf("new checklist item completed: %+v", item)
		}
	}
	if details.Checklist[0].Title != "Gather Medical Records" || details.Checklist[4].Title != "Submit Claim" {
		t.Fatalf("unexpected checklist titles: %q ... %q", details.Checklist[0].Title, details.Checklist[4].Title)
	}
	if len(details.Updates) != 1 {
		t.Fatalf("expected one initial update, got %d", len(details.Updates))
	}
	if details.Updates[0].Title != "Claim Submitted" || details.Updates[0].UpdateType != domain.UpdateStatusChange {
		t.Fatalf("unexpected initial update: %+v", details.Updates[0])
	}
}

func TestClaimCreate_InvalidAmount(t *testing.T) {
	db := newClaimServiceDB(t)
	svc := newClaimService(db)
	p := seedPolicy(t, db, "u1")

	for _, amount := range []int64{0, -100} {
		_, _, err := svc.Create(context.Background(), CreateClaim{UserID: "u1", PolicyID: p.ID, Amount: amount})
		if err != ErrInvalidAmount {
			t.Fatalf("amount %d: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestClaimCreate_PolicyNotFound(t *testing.T) {
	db := newClaimServiceDB(t)
	svc := newClaimService(db)

	_, _, err := svc.Create(context.Background(), CreateClaim{UserID: "u1", PolicyID: "missing", Amount: 100})
	if err != ErrPolicyNotFound {
		t.Fatalf("expected ErrPolicyNotFound, got %v", err)
	}
}

func TestClaimCreate_IdempotentReplay(t *testing.T) {
	db := newClaimServiceDB(t)
	svc := newClaimService(db)
	p := seedPolicy(t, db, "u1")

	in := CreateClaim{UserID: "u1", PolicyID: p.ID, Amount: 5000, IdempotencyKey: "retry-1"}

	first, replayed, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if replayed {
		t.Fatalf("first create reported as replayed")
	}

	second, replayed, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}
	if !replayed {
		t.Fatalf("expected replay on repeated key")
	}
	if second.ID != first.ID || second.ClaimNumber != first.ClaimNumber {
		t.Fatalf("replay returned a different claim: %q vs %q", second.ID, first.ID)
	}

	claims, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(claims) != 1 {
		t.Fatalf("replay must not create a second claim, got %d", len(claims))
	}

	// A different key files a new claim.
	in.IdempotencyKey = "retry-2"
	third, replayed, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("third Create: %v", err)
	}
	if replayed || third.ID == first.ID {
		t.Fatalf("new key must create a new claim")
	}
}

func TestClaimAdvanceStatus_ForwardAndHistory(t *testing.T) {
	db := newClaimServiceDB(t)
	svc := newClaimService(db)
	p := seedPolicy(t, db, "u1")

	claim, _, err := svc.Create(context.Background(), CreateClaim{UserID: "u1", PolicyID: p.ID, Amount: 100})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.AdvanceStatus(context.Background(), claim.ID, domain.ClaimUnderReview)
	if err != nil {
		t.Fatalf("AdvanceStatus: %v", err)
	}
	if got.Status != domain.ClaimUnderReview {
		t.Fatalf("expected under_review, got %q", got.Status)
	}

	// Skipping intermediate stages forward is allowed.
	got, err = svc.AdvanceStatus(context.Background(), claim.ID, domain.ClaimPayment)
	if err != nil {
		t.Fatalf("AdvanceStatus (skip forward): %v", err)
	}
	if got.Status != domain.ClaimPayment {
		t.Fatalf("expected payment, got %q", got.Status)
	}

	// Re-asserting the current status is accepted.
	if _, err := svc.AdvanceStatus(context.Background(), claim.ID, domain.ClaimPayment); err != nil {
		t.Fatalf("AdvanceStatus (same status): %v", err)
	}

	details, err := svc.GetDetails(context.Background(), claim.ID)
	if err != nil {
		t.Fatalf("GetDetails: %v", err)
	}
	// Initial entry plus three status updates.
	if len(details.Updates) != 4 {
		t.Fatalf("expected 4 updates, got %d", len(details.Updates))
	}
}

func TestClaimAdvanceStatus_RejectsRegressionAndUnknown(t *testing.T) {
	db := newClaimServiceDB(t)
	svc := newClaimService(db)
	p := seedPolicy(t, db, "u1")

	claim, _, err := svc.Create(context.Background(), CreateClaim{UserID: "u1", PolicyID: p.ID, Amount: 100})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.AdvanceStatus(context.Background(), claim.ID, domain.ClaimProcessing); err != nil {
		t.Fatalf("AdvanceStatus: %v", err)
	}

	if _, err := svc.AdvanceStatus(context.Background(), claim.ID, domain.ClaimSubmitted); err != ErrStatusRegression {
		t.Fatalf("expected ErrStatusRegression, got %v", err)
	}
	if _, err := svc.AdvanceStatus(context.Background(), claim.ID, "archived"); err != ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := svc.AdvanceStatus(context.Background(), "missing", domain.ClaimDecision); err != ErrClaimNotFound {
		t.Fatalf("expected ErrClaimNotFound, got %v", err)
	}

	// A rejected transition must not leave a history entry behind.
	details, err := svc.GetDetails(context.Background(), claim.ID)
	if err != nil {
		t.Fatalf("GetDetails: %v", err)
	}
	if len(details.Updates) != 2 {
		t.Fatalf("expected 2 updates after rejections, got %d", len(details.Updates))
	}
}

func TestToggleChecklistItem(t *testing.T) {
	db := newClaimServiceDB(t)
	svc := newClaimService(db)
	p := seedPolicy(t, db, "u1")

	claim, _, err := svc.Create(context.Background(), CreateClaim{UserID: "u1", PolicyID: p.ID, Amount: 100})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	details, err := svc.GetDetails(context.Background(), claim.ID)
	if err != nil {
		t.Fatalf("GetDetails: %v", err)
	}
	itemID := details.Checklist[0].ID

	item, err := svc.ToggleChecklistItem(context.Background(), itemID, true)
	if err != nil {
		t.Fatalf("ToggleChecklistItem: %v", err)
	}
	if !item.IsCompleted || item.CompletedAt == nil {
		t.Fatalf("expected completed item with timestamp: %+v", item)
	}

	item, err = svc.ToggleChecklistItem(context.Background(), itemID, false)
	if err != nil {
		t.Fatalf("ToggleChecklistItem (undo): %v", err)
	}
	if item.IsCompleted || item.CompletedAt != nil {
		t.Fatalf("expected re-opened item: %+v", item)
	}

	if _, err := svc.ToggleChecklistItem(context.Background(), "missing", true); err != ErrChecklistItemNotFound {
		t.Fatalf("expected ErrChecklistItemNotFound, got %v", err)
	}
}
