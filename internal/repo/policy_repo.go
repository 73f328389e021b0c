// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Policy
// (uploaded document) model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a policy is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - Writes addressing an unknown id return ErrNotFound instead of being
//     silently ignored.
//   - On DB errors the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/claimmate/go-claims-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// PolicyUpload carries the upload metadata needed to create a Policy row.
type PolicyUpload struct {
	UserID   string
	FileName string
	FileSize int64
	MimeType string
	IpfsHash string
}

// CreatePolicy inserts a new Policy row for the given upload. The analysis
// status is always forced to "pending" regardless of the input, and the id is
// a randomly generated UUID.
func CreatePolicy(ctx context.Context, db *gorm.DB, in PolicyUpload) (*domain.Policy, error) {
	now := time.Now().UTC()
	p := &domain.Policy{
		ID:             uuid.NewString(),
		UserID:         in.UserID,
		FileName:       in.FileName,
		FileSize:       in.FileSize,
		MimeType:       in.MimeType,
		IpfsHash:       in.IpfsHash,
		AnalysisStatus: domain.AnalysisPending,
		UploadedAt:     now,
		CreatedAt:      now,
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// GetPolicy fetches a single policy by id, or ErrNotFound if missing.
func GetPolicy(ctx context.Context, db *gorm.DB, id string) (*domain.Policy, error) {
	var p domain.Policy
	if err := db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPolicies returns all policies belonging to userID, ordered by upload
// time descending (most recent first). It returns an empty slice if the user
// has no policies.
func ListPolicies(ctx context.Context, db *gorm.DB, userID string) ([]domain.Policy, error) {
	var out []domain.Policy
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at desc").
		Find(&out).Error
	return out, err
}

// UpdatePolicyText attaches the extracted document text to a policy.
// Returns ErrNotFound when the policy does not exist.
func UpdatePolicyText(ctx context.Context, db *gorm.DB, id, text string) error {
	res := db.WithContext(ctx).
		Model(&domain.Policy{}).
		Where("id = ?", id).
		Update("extracted_text", text)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdatePolicyStatus moves a policy to the given analysis status.
// Returns ErrNotFound when the policy does not exist. Transition ordering is
// not enforced here; the pipeline owns the lifecycle.
func UpdatePolicyStatus(ctx context.Context, db *gorm.DB, id, status string) error {
	res := db.WithContext(ctx).
		Model(&domain.Policy{}).
		Where("id = ?", id).
		Update("analysis_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
