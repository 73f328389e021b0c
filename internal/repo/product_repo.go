// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides read-only repository functions for the
// policy product catalog.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/claimmate/go-claims-backend/internal/domain"
)

// ListProducts returns the full catalog ordered by insurer and product name.
func ListProducts(ctx context.Context, db *gorm.DB) ([]domain.PolicyProduct, error) {
	var out []domain.PolicyProduct
	err := db.WithContext(ctx).
		Order("insurer asc, policy_name asc").
		Find(&out).Error
	return out, err
}

// ListProductsByCategory returns all catalog entries in the given category.
// Category matching is exact here; case folding happens in the service layer.
func ListProductsByCategory(ctx context.Context, db *gorm.DB, category string) ([]domain.PolicyProduct, error) {
	var out []domain.PolicyProduct
	err := db.WithContext(ctx).
		Where("category = ?", category).
		Find(&out).Error
	return out, err
}

// GetProducts fetches the catalog entries with the given ids. Unknown ids are
// skipped rather than reported; callers validate the result length.
func GetProducts(ctx context.Context, db *gorm.DB, ids []string) ([]domain.PolicyProduct, error) {
	if len(ids) == 0 {
		return []domain.PolicyProduct{}, nil
	}
	var out []domain.PolicyProduct
	err := db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&out).Error
	return out, err
}

// FindSimilarProducts returns up to limit products in category whose coverage
// lies within [0.5x, 2x] of the requested amount, ordered by claim settlement
// ratio descending (best first).
func FindSimilarProducts(ctx context.Context, db *gorm.DB, coverage int, category string, limit int) ([]domain.PolicyProduct, error) {
	lo := float64(coverage) * 0.5
	hi := float64(coverage) * 2.0
	var out []domain.PolicyProduct
	err := db.WithContext(ctx).
		Where("category = ? AND coverage >= ? AND coverage <= ?", category, lo, hi).
		Order("claim_settlement_ratio desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}
