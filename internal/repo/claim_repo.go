// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for claims, their
// checklist items, and the append-only claim update log.
//
// Claim numbers follow the CLM-<year>-<6 digits> format. Uniqueness is not
// probabilistic: the claims table carries a unique index on claim_number and
// CreateClaim retries with a fresh number when an insert collides.
package repo

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/claimmate/go-claims-backend/internal/domain"
)

// ErrDuplicate indicates a unique-constraint violation.
var ErrDuplicate = errors.New("duplicate")

// claimNumberAttempts bounds the number of fresh claim numbers tried before
// giving up on a pathologically full number space.
const claimNumberAttempts = 5

// ClaimInput carries the data needed to create a Claim row. Amount is in the
// smallest currency unit.
type ClaimInput struct {
	UserID         string
	PolicyID       string
	Amount         int64
	Description    string
	ProcessingDays int
}

// NewClaimNumber generates a candidate claim number for the current year.
func NewClaimNumber(now time.Time) string {
	return fmt.Sprintf("CLM-%d-%06d", now.Year(), rand.IntN(1_000_000))
}

// CreateClaim inserts a new Claim row with status "submitted" and a unique
// claim number. The insert is checked against the unique index and retried
// with a fresh number on collision.
func CreateClaim(ctx context.Context, db *gorm.DB, in ClaimInput) (*domain.Claim, error) {
	now := time.Now().UTC()
	var lastErr error
	for i := 0; i < claimNumberAttempts; i++ {
		c := &domain.Claim{
			ID:                      uuid.NewString(),
			UserID:                  in.UserID,
			PolicyID:                in.PolicyID,
			ClaimNumber:             NewClaimNumber(now),
			Status:                  domain.ClaimSubmitted,
			Amount:                  in.Amount,
			Description:             in.Description,
			EstimatedProcessingDays: in.ProcessingDays,
			SubmittedAt:             now,
			UpdatedAt:               now,
		}
		err := db.WithContext(ctx).Create(c).Error
		if err == nil {
			return c, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		lastErr = ErrDuplicate
	}
	return nil, lastErr
}

// GetClaim fetches a single claim by id, or ErrNotFound if missing.
func GetClaim(ctx context.Context, db *gorm.DB, id string) (*domain.Claim, error) {
	var c domain.Claim
	if err := db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListClaims returns all claims belonging to userID, most recently submitted
// first.
func ListClaims(ctx context.Context, db *gorm.DB, userID string) ([]domain.Claim, error) {
	var out []domain.Claim
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at desc").
		Find(&out).Error
	return out, err
}

// UpdateClaimStatus moves a claim to the given status and refreshes the
// last-modified timestamp. Returns ErrNotFound when the claim does not exist.
// Forward-only ordering is enforced by the service layer.
func UpdateClaimStatus(ctx context.Context, db *gorm.DB, id, status string) error {
	res := db.WithContext(ctx).
		Model(&domain.Claim{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

//
// Checklist items
//

// ChecklistTemplate describes one canonical preparation step.
type ChecklistTemplate struct {
	Title             string
	Description       string
	Order             int
	RequiredDocuments domain.StringList
}

// CreateChecklistItem inserts one checklist item for a claim from a template.
func CreateChecklistItem(ctx context.Context, db *gorm.DB, claimID string, t ChecklistTemplate) (*domain.ChecklistItem, error) {
	item := &domain.ChecklistItem{
		ID:                uuid.NewString(),
		ClaimID:           claimID,
		Title:             t.Title,
		Description:       t.Description,
		ItemOrder:         t.Order,
		IsCompleted:       false,
		RequiredDocuments: t.RequiredDocuments,
		UploadedDocuments: domain.StringList{},
	}
	if err := db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// GetChecklistItem fetches a single checklist item by id, or ErrNotFound.
func GetChecklistItem(ctx context.Context, db *gorm.DB, id string) (*domain.ChecklistItem, error) {
	var item domain.ChecklistItem
	if err := db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListChecklistItems returns a claim's checklist ordered ascending by step
// order. Clients derive the "current" step as the first incomplete entry.
func ListChecklistItems(ctx context.Context, db *gorm.DB, claimID string) ([]domain.ChecklistItem, error) {
	var out []domain.ChecklistItem
	err := db.WithContext(ctx).
		Where("claim_id = ?", claimID).
		Order("item_order asc").
		Find(&out).Error
	return out, err
}

// SetChecklistCompletion toggles an item's completion flag. Transitioning to
// completed stamps the completion time; clearing the flag also clears the
// timestamp so a re-opened step never reports a stale completion.
// Returns ErrNotFound when the item does not exist.
func SetChecklistCompletion(ctx context.Context, db *gorm.DB, id string, completed bool) error {
	updates := map[string]any{"is_completed": completed}
	if completed {
		updates["completed_at"] = time.Now().UTC()
	} else {
		updates["completed_at"] = nil
	}
	res := db.WithContext(ctx).
		Model(&domain.ChecklistItem{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

//
// Claim updates
//

// CreateClaimUpdate appends an immutable history entry to a claim's log.
func CreateClaimUpdate(ctx context.Context, db *gorm.DB, claimID, title, description, updateType string) (*domain.ClaimUpdate, error) {
	u := &domain.ClaimUpdate{
		ID:          uuid.NewString(),
		ClaimID:     claimID,
		Title:       title,
		Description: description,
		UpdateType:  updateType,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// ListClaimUpdates returns a claim's history entries newest first.
func ListClaimUpdates(ctx context.Context, db *gorm.DB, claimID string) ([]domain.ClaimUpdate, error) {
	var out []domain.ClaimUpdate
	err := db.WithContext(ctx).
		Where("claim_id = ?", claimID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// isUniqueViolation detects unique-constraint failures across the error
// shapes produced by gorm and the pure-Go SQLite driver.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key")
}
