// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Analysis
// model. Analyses are created once per policy and never updated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/claimmate/go-claims-backend/internal/domain"
)

// AnalysisRecord carries a sanitized risk assessment ready for persistence.
// Sanitization (score clamping, enum defaulting) is the collaborator
// boundary's responsibility; this layer stores the record as given.
type AnalysisRecord struct {
	PolicyID        string
	RiskScore       int
	RiskLevel       string
	Summary         string
	FlaggedClauses  domain.ClauseList
	Recommendations string
}

// CreateAnalysis inserts an Analysis row for a policy with a generated UUID
// and UTC completion timestamp.
func CreateAnalysis(ctx context.Context, db *gorm.DB, in AnalysisRecord) (*domain.Analysis, error) {
	a := &domain.Analysis{
		ID:              uuid.NewString(),
		PolicyID:        in.PolicyID,
		RiskScore:       in.RiskScore,
		RiskLevel:       in.RiskLevel,
		Summary:         in.Summary,
		FlaggedClauses:  in.FlaggedClauses,
		Recommendations: in.Recommendations,
		CompletedAt:     time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// GetAnalysisByPolicy returns the first analysis recorded for policyID, or
// ErrNotFound when none exists yet. First-match semantics keep the one-to-one
// convention even if duplicate rows were ever written.
func GetAnalysisByPolicy(ctx context.Context, db *gorm.DB, policyID string) (*domain.Analysis, error) {
	var a domain.Analysis
	err := db.WithContext(ctx).
		Where("policy_id = ?", policyID).
		Order("completed_at asc").
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}
