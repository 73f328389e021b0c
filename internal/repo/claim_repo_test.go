package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/claimmate/go-claims-backend/internal/domain"
)

func newClaimRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("claim_repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func TestNewClaimNumber_Format(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	re := regexp.MustCompile(`^CLM-2025-\d{6}$`)
	for i := 0; i < 50; i++ {
		n := NewClaimNumber(now)
		if !re.MatchString(n) {
			t.Fatalf("claim number %q does not match CLM-<year>-<6 digits>", n)
		}
	}
}

func TestCreateClaim_Success_SetsFields(t *testing.T) {
	db := newClaimRepoDB(t, &domain.Claim{})

	start := time.Now().UTC().Add(-time.Minute)
	c, err := CreateClaim(context.Background(), db, ClaimInput{
		UserID:         "u1",
		PolicyID:       "p1",
		Amount:         15000,
		Description:    "hospitalization",
		ProcessingDays: 10,
	})
	if err != nil {
		t.Fatalf("CreateClaim: %v", err)
	}
	if c.ID == "" || c.UserID != "u1" || c.PolicyID != "p1" {
		t.Fatalf("unexpected Claim fields: %+v", c)
	}
	if c.Status != domain.ClaimSubmitted {
		t.Fatalf("expected status submitted, got %q", c.Status)
	}
	if c.Amount != 15000 || c.EstimatedProcessingDays != 10 {
		t.Fatalf("amount/days mismatch: %+v", c)
	}
	if c.ClaimNumber == "" {
		t.Fatalf("claim number not assigned")
	}
	if c.SubmittedAt.Before(start) {
		t.Fatalf("SubmittedAt not set: %v", c.SubmittedAt)
	}
}

func TestCreateClaim_Error_NoTable(t *testing.T) {
	db := newClaimRepoDB(t /* no migrations */)
	c, err := CreateClaim(context.Background(), db, ClaimInput{UserID: "u1", PolicyID: "p1", Amount: 1})
	if err == nil || c != nil {
		t.Fatalf("expected error creating without table, got claim=%v err=%v", c, err)
	}
}

func TestCreateClaim_UniqueNumbers(t *testing.T) {
	db := newClaimRepoDB(t, &domain.Claim{})

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		c, err := CreateClaim(context.Background(), db, ClaimInput{
			UserID: "u1", PolicyID: "p1", Amount: 100, ProcessingDays: 10,
		})
		if err != nil {
			t.Fatalf("CreateClaim #%d: %v", i, err)
		}
		if seen[c.ClaimNumber] {
			t.Fatalf("duplicate claim number %q", c.ClaimNumber)
		}
		seen[c.ClaimNumber] = true
	}
}

func TestGetClaim_NotFound(t *testing.T) {
	db := newClaimRepoDB(t, &domain.Claim{})
	if _, err := GetClaim(context.Background(), db, "missing"); err == nil {
		t.Fatalf("expected error for missing claim")
	}
}

func TestListClaims_NewestFirst_ScopedToUser(t *testing.T) {
	db := newClaimRepoDB(t, &domain.Claim{})
	ctx := context.Background()

	old := &domain.Claim{
		ID: "c-old", UserID: "u1", PolicyID: "p1", ClaimNumber: "CLM-2025-000001",
		Status: domain.ClaimSubmitted, Amount: 100,
		SubmittedAt: time.Now().UTC().Add(-time.Hour), UpdatedAt: time.Now().UTC(),
	}
	recent := &domain.Claim{
		ID: "c-new", UserID: "u1", PolicyID: "p1", ClaimNumber: "CLM-2025-000002",
		Status: domain.ClaimSubmitted, Amount: 200,
		SubmittedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	other := &domain.Claim{
		ID: "c-other", UserID: "u2", PolicyID: "p2", ClaimNumber: "CLM-2025-000003",
		Status: domain.ClaimSubmitted, Amount: 300,
		SubmittedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	for _, c := range []*domain.Claim{old, recent, other} {
		if err := db.Create(c).Error; err != nil {
			t.Fatalf("seed claim: %v", err)
		}
	}

	got, err := ListClaims(ctx, db, "u1")
	if err != nil {
		t.Fatalf("ListClaims: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 claims for u1, got %d", len(got))
	}
	if got[0].ID != "c-new" || got[1].ID != "c-old" {
		t.Fatalf("expected newest first, got %q then %q", got[0].ID, got[1].ID)
	}
}

func TestUpdateClaimStatus_UpdatesAndBumpsTimestamp(t *testing.T) {
	db := newClaimRepoDB(t, &domain.Claim{})
	ctx := context.Background()

	c, err := CreateClaim(ctx, db, ClaimInput{UserID: "u1", PolicyID: "p1", Amount: 100, ProcessingDays: 10})
	if err != nil {
		t.Fatalf("CreateClaim: %v", err)
	}

	if err := UpdateClaimStatus(ctx, db, c.ID, domain.ClaimUnderReview); err != nil {
		t.Fatalf("UpdateClaimStatus: %v", err)
	}
	got, err := GetClaim(ctx, db, c.ID)
	if err != nil {
		t.Fatalf("GetClaim: %v", err)
	}
	if got.Status != domain.ClaimUnderReview {
		t.Fatalf("expected under_review, got %q", got.Status)
	}
	if got.UpdatedAt.Before(c.UpdatedAt) {
		t.Fatalf("UpdatedAt not bumped: %v < %v", got.UpdatedAt, c.UpdatedAt)
	}
}

func TestUpdateClaimStatus_NotFound(t *testing.T) {
	db := newClaimRepoDB(t, &domain.Claim{})
	err := UpdateClaimStatus(context.Background(), db, "missing", domain.ClaimCompleted)
	if err != gorm.ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestChecklistItems_CreateListOrder_Toggle(t *testing.T) {
	db := newClaimRepoDB(t, &domain.Claim{}, &domain.ChecklistItem{})
	ctx := context.Background()

	c, err := CreateClaim(ctx, db, ClaimInput{UserID: "u1", PolicyID: "p1", Amount: 100, ProcessingDays: 10})
	if err != nil {
		t.Fatalf("CreateClaim: %v", err)
	}

	// Insert out of order; listing must sort ascending.
	for _, tpl := range []ChecklistTemplate{
		{Title: "Submit Claim", Order: 5},
		{Title: "Gather Medical Records", Order: 1, RequiredDocuments: domain.StringList{"Bills"}},
		{Title: "Review Policy Coverage", Order: 4},
	} {
		if _, err := CreateChecklistItem(ctx, db, c.ID, tpl); err != nil {
			t.Fatalf("CreateChecklistItem %q: %v", tpl.Title, err)
		}
	}

	items, err := ListChecklistItems(ctx, db, c.ID)
	if err != nil {
		t.Fatalf("ListChecklistItems: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].ItemOrder != 1 || items[1].ItemOrder != 4 || items[2].ItemOrder != 5 {
		t.Fatalf("items not ordered: %d %d %d", items[0].ItemOrder, items[1].ItemOrder, items[2].ItemOrder)
	}
	if items[0].IsCompleted || items[0].CompletedAt != nil {
		t.Fatalf("new item should be incomplete: %+v", items[0])
	}
	if len(items[0].RequiredDocuments) != 1 || items[0].RequiredDocuments[0] != "Bills" {
		t.Fatalf("required documents not round-tripped: %+v", items[0].RequiredDocuments)
	}

	// Complete, then re-open: the timestamp must be cleared again.
	id := items[0].ID
	if err := SetChecklistCompletion(ctx, db, id, true); err != nil {
		t.Fatalf("complete: %v", err)
	}
	got, err := GetChecklistItem(ctx, db, id)
	if err != nil {
		t.Fatalf("GetChecklistItem: %v", err)
	}
	if !got.IsCompleted || got.CompletedAt == nil {
		t.Fatalf("expected completed with timestamp: %+v", got)
	}

	if err := SetChecklistCompletion(ctx, db, id, false); err != nil {
		t.Fatalf("uncomplete: %v", err)
	}
	got, err = GetChecklistItem(ctx, db, id)
	if err != nil {
		t.Fatalf("GetChecklistItem: %v", err)
	}
	if got.IsCompleted || got.CompletedAt != nil {
		t.Fatalf("expected re-opened item without timestamp: %+v", got)
	}
}

func TestSetChecklistCompletion_NotFound(t *testing.T) {
	db := newClaimRepoDB(t, &domain.ChecklistItem{})
	err := SetChecklistCompletion(context.Background(), db, "missing", true)
	if err != gorm.ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestClaimUpdates_AppendAndListNewestFirst(t *testing.T) {
	db := newClaimRepoDB(t, &domain.Claim{}, &domain.ClaimUpdate{})
	ctx := context.Background()

	c, err := CreateClaim(ctx, db, ClaimInput{UserID: "u1", PolicyID: "p1", Amount: 100, ProcessingDays: 10})
	if err != nil {
		t.Fatalf("CreateClaim: %v", err)
	}

	first, err := CreateClaimUpdate(ctx, db, c.ID, "Claim Submitted", "submitted", domain.UpdateStatusChange)
	if err != nil {
		t.Fatalf("CreateClaimUpdate: %v", err)
	}
	// Distinct timestamps so the ordering assertion is deterministic.
	if err := db.Model(&domain.ClaimUpdate{}).Where("id = ?", first.ID).
		Update("created_at", time.Now().UTC().Add(-time.Minute)).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}
	if _, err := CreateClaimUpdate(ctx, db, c.ID, "Status Updated", "review", domain.UpdateStatusChange); err != nil {
		t.Fatalf("CreateClaimUpdate: %v", err)
	}

	ups, err := ListClaimUpdates(ctx, db, c.ID)
	if err != nil {
		t.Fatalf("ListClaimUpdates: %v", err)
	}
	if len(ups) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(ups))
	}
	if ups[0].Title != "Status Updated" || ups[1].Title != "Claim Submitted" {
		t.Fatalf("expected newest first, got %q then %q", ups[0].Title, ups[1].Title)
	}
}
