// Package services – ComparisonService
//
// This file implements ComparisonService, the catalog layer: listing the
// seeded product reference data, matching an uploaded policy against similar
// market products, and computing side-by-side aggregates for a selected set.
package services

import (
	"context"
	"time"

	"golang.org/x/text/cases"
	"gorm.io/gorm"

	"github.com/claimmate/go-claims-backend/internal/domain"
	"github.com/claimmate/go-claims-backend/internal/repo"
)

// similarLimit caps the alternatives returned by a comparison.
const similarLimit = 5

// ComparisonService serves the policy product catalog and comparisons.
type ComparisonService struct {
	DB *gorm.DB

	// DefaultCoverage (lakhs) and DefaultCategory stand in for the values an
	// uploaded document does not carry; coverage extraction from policy text
	// is not modeled.
	DefaultCoverage int
	DefaultCategory string
}

// CurrentPolicy summarizes the user's uploaded policy inside a comparison.
type CurrentPolicy struct {
	ID                string `json:"id"`
	FileName          string `json:"fileName"`
	EstimatedCoverage int    `json:"estimatedCoverage"`
	Category          string `json:"category"`
}

// Comparison is the response of a policy-vs-market comparison.
type Comparison struct {
	Current        CurrentPolicy          `json:"current"`
	Alternatives   []domain.PolicyProduct `json:"alternatives"`
	ComparisonDate time.Time              `json:"comparisonDate"`
}

// DetailedComparison aggregates a user-selected product set side by side.
type DetailedComparison struct {
	Products            []domain.PolicyProduct `json:"products"`
	MinCoverage         int                    `json:"minCoverage"`
	MaxCoverage         int                    `json:"maxCoverage"`
	MinPremium          int                    `json:"minPremium"`
	MaxPremium          int                    `json:"maxPremium"`
	BestSettlementRatio string                 `json:"bestSettlementRatio"`
	ShortestWaiting     string                 `json:"shortestWaitingPeriod"`
	ComparisonDate      time.Time              `json:"comparisonDate"`
}

// Products returns the full seeded catalog, optionally filtered by category.
// Category matching is case-insensitive via Unicode case folding.
func (s *ComparisonService) Products(ctx context.Context, category string) ([]domain.PolicyProduct, error) {
	if category == "" {
		return repo.ListProducts(ctx, s.DB)
	}
	return repo.ListProductsByCategory(ctx, s.DB, cases.Fold().String(category))
}

// FindSimilar returns up to five catalog products in the given category whose
// coverage lies within half to double the requested amount, best claim
// settlement ratio first.
func (s *ComparisonService) FindSimilar(ctx context.Context, coverage int, category string) ([]domain.PolicyProduct, error) {
	if coverage <= 0 {
		coverage = s.DefaultCoverage
	}
	if category == "" {
		category = s.DefaultCategory
	}
	return repo.FindSimilarProducts(ctx, s.DB, coverage, cases.Fold().String(category), similarLimit)
}

// Compare matches the given uploaded policy against the catalog. Callers may
// override the assumed coverage and category; zero/empty fall back to the
// service defaults, since documents do not carry these values.
func (s *ComparisonService) Compare(ctx context.Context, policy *domain.Policy, coverage int, category string) (*Comparison, error) {
	if coverage <= 0 {
		coverage = s.DefaultCoverage
	}
	if category == "" {
		category = s.DefaultCategory
	}
	category = cases.Fold().String(category)

	alts, err := s.FindSimilar(ctx, coverage, category)
	if err != nil {
		return nil, err
	}
	return &Comparison{
		Current: CurrentPolicy{
			ID:                policy.ID,
			FileName:          policy.FileName,
			EstimatedCoverage: coverage,
			Category:          category,
		},
		Alternatives:   alts,
		ComparisonDate: time.Now().UTC(),
	}, nil
}

// CompareDetailed fetches the selected products and computes the side-by-side
// aggregates. Unknown ids are skipped; an empty selection yields ErrNoProducts.
func (s *ComparisonService) CompareDetailed(ctx context.Context, productIDs []string) (*DetailedComparison, error) {
	products, err := repo.GetProducts(ctx, s.DB, productIDs)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrNoProducts
	}

	out := &DetailedComparison{
		Products:       products,
		MinCoverage:    products[0].Coverage,
		MaxCoverage:    products[0].Coverage,
		MinPremium:     products[0].Premium,
		MaxPremium:     products[0].Premium,
		ComparisonDate: time.Now().UTC(),
	}
	bestRatio := products[0]
	shortest := products[0]
	for _, p := range products[1:] {
		if p.Coverage < out.MinCoverage {
			out.MinCoverage = p.Coverage
		}
		if p.Coverage > out.MaxCoverage {
			out.MaxCoverage = p.Coverage
		}
		if p.Premium < out.MinPremium {
			out.MinPremium = p.Premium
		}
		if p.Premium > out.MaxPremium {
			out.MaxPremium = p.Premium
		}
		if p.ClaimSettlementRatio > bestRatio.ClaimSettlementRatio {
			bestRatio = p
		}
		if p.WaitingPeriod < shortest.WaitingPeriod {
			shortest = p
		}
	}
	out.BestSettlementRatio = bestRatio.PolicyName
	out.ShortestWaiting = shortest.PolicyName
	return out, nil
}
