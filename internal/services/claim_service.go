// Package services – ClaimService
//
// This file implements ClaimService, the business layer for filing claims
// against uploaded policies and tracking them afterwards: the five-step
// preparation checklist, the append-only update history, and the forward-only
// status progression. Claim creation is transactional (claim + checklist +
// initial update commit or roll back together) and optionally idempotent when
// the caller supplies an Idempotency-Key.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/claimmate/go-claims-backend/internal/domain"
	"github.com/claimmate/go-claims-backend/internal/repo"
)

// checklistTemplates are the canonical preparation steps attached to every
// new claim, in presentation order.
var checklistTemplates = []repo.ChecklistTemplate{
	{
		Title:             "Gather Medical Records",
		Description:       "Collect all relevant medical documentation from your healthcare providers.",
		Order:             1,
		RequiredDocuments: domain.StringList{"Discharge summary", "Medical bills", "Prescriptions"},
	},
	{
		Title:             "Complete Claim Form",
		Description:       "Fill out the official claim form with accurate information about your incident.",
		Order:             2,
		RequiredDocuments: domain.StringList{"Signed claim form"},
	},
	{
		Title:             "Submit Supporting Evidence",
		Description:       "Include photos, receipts, or other documentation that supports your claim.",
		Order:             3,
		RequiredDocuments: domain.StringList{"Receipts", "Photographs"},
	},
	{
		Title:             "Review Policy Coverage",
		Description:       "Verify that your claim falls within your policy coverage limits.",
		Order:             4,
		RequiredDocuments: domain.StringList{},
	},
	{
		Title:             "Submit Claim",
		Description:       "Submit your completed claim with all required documentation.",
		Order:             5,
		RequiredDocuments: domain.StringList{},
	},
}

// ClaimService owns claim creation and lifecycle tracking.
type ClaimService struct {
	DB *gorm.DB

	// ProcessingDays is the estimate stamped on every new claim.
	ProcessingDays int
	// IdempotencyTTL bounds how long a replayed Idempotency-Key returns the
	// original claim instead of creating a new one.
	IdempotencyTTL time.Duration
}

// CreateClaim carries the input for Create. Amount is in the smallest
// currency unit. IdempotencyKey is optional; empty means no replay protection.
type CreateClaim struct {
	UserID         string
	PolicyID       string
	Amount         int64
	Description    string
	IdempotencyKey string
}

// ClaimDetails bundles a claim with its checklist and history for detail reads.
type ClaimDetails struct {
	Claim     *domain.Claim          `json:"claim"`
	Checklist []domain.ChecklistItem `json:"checklist"`
	Updates   []domain.ClaimUpdate   `json:"updates"`
}

// Create files a new claim against an existing policy. The claim, its five
// checklist items, and the initial "Claim Submitted" history entry are
// committed in one transaction.
//
// When in.IdempotencyKey is set and a non-expired record exists for
// (user, key), the previously created claim is returned and replayed is true.
func (s *ClaimService) Create(ctx context.Context, in CreateClaim) (claim *domain.Claim, replayed bool, err error) {
	tr := otel.Tracer("services/ClaimService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(
			attribute.String("user.id", in.UserID),
			attribute.String("policy.id", in.PolicyID),
		),
	)
	defer span.End()

	if in.Amount <= 0 {
		return nil, false, ErrInvalidAmount
	}
	if _, err := repo.GetPolicy(ctx, s.DB, in.PolicyID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, false, ErrPolicyNotFound
		}
		return nil, false, err
	}

	if in.IdempotencyKey != "" {
		if rec, err := repo.GetIdempotency(ctx, s.DB, in.UserID, in.IdempotencyKey, time.Now().UTC()); err == nil {
			prev, gerr := repo.GetClaim(ctx, s.DB, rec.ClaimID)
			if gerr == nil {
				return prev, true, nil
			}
			// The recorded claim is gone; fall through and create a fresh one.
		} else if !errors.Is(err, repo.ErrNotFound) {
			return nil, false, err
		}
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := repo.CreateClaim(ctx, tx, repo.ClaimInput{
			UserID:         in.UserID,
			PolicyID:       in.PolicyID,
			Amount:         in.Amount,
			Description:    in.Description,
			ProcessingDays: s.ProcessingDays,
		})
		if err != nil {
			return err
		}
		for _, t := range checklistTemplates {
			if _, err := repo.CreateChecklistItem(ctx, tx, c.ID, t); err != nil {
				return err
			}
		}
		if _, err := repo.CreateClaimUpdate(ctx, tx, c.ID,
			"Claim Submitted",
			"Your claim has been successfully submitted and assigned a claim number.",
			domain.UpdateStatusChange,
		); err != nil {
			return err
		}
		if in.IdempotencyKey != "" {
			if _, err := repo.CreateIdempotency(ctx, tx, in.UserID, in.IdempotencyKey, c.ID, s.IdempotencyTTL); err != nil {
				// A concurrent request won the key. Abort this creation and
				// let the caller replay the winner.
				return err
			}
		}
		claim = c
		return nil
	})
	if err != nil {
		if in.IdempotencyKey != "" && errors.Is(err, repo.ErrDuplicate) {
			if rec, gerr := repo.GetIdempotency(ctx, s.DB, in.UserID, in.IdempotencyKey, time.Now().UTC()); gerr == nil {
				if prev, gerr := repo.GetClaim(ctx, s.DB, rec.ClaimID); gerr == nil {
					return prev, true, nil
				}
			}
		}
		return nil, false, err
	}
	return claim, false, nil
}

// List returns all of a user's claims, most recently submitted first.
func (s *ClaimService) List(ctx context.Context, userID string) ([]domain.Claim, error) {
	return repo.ListClaims(ctx, s.DB, userID)
}

// GetDetails returns one claim together with its ordered checklist and its
// update history (newest first), or ErrClaimNotFound.
func (s *ClaimService) GetDetails(ctx context.Context, id string) (*ClaimDetails, error) {
	c, err := repo.GetClaim(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, err
	}
	items, err := repo.ListChecklistItems(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	updates, err := repo.ListClaimUpdates(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	return &ClaimDetails{Claim: c, Checklist: items, Updates: updates}, nil
}

// AdvanceStatus moves a claim forward in the status progression and records a
// status_change history entry. Unknown statuses yield ErrInvalidStatus;
// backwards transitions yield ErrStatusRegression. Setting the current status
// again is accepted and recorded (an explicit confirmation, not a regression).
func (s *ClaimService) AdvanceStatus(ctx context.Context, id, status string) (*domain.Claim, error) {
	tr := otel.Tracer("services/ClaimService")
	ctx, span := tr.Start(ctx, "AdvanceStatus",
		trace.WithAttributes(
			attribute.String("claim.id", id),
			attribute.String("claim.status", status),
		),
	)
	defer span.End()

	rank := domain.ClaimStatusRank(status)
	if rank < 0 {
		return nil, ErrInvalidStatus
	}
	c, err := repo.GetClaim(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, err
	}
	if rank < domain.ClaimStatusRank(c.Status) {
		return nil, ErrStatusRegression
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.UpdateClaimStatus(ctx, tx, id, status); err != nil {
			return err
		}
		_, err := repo.CreateClaimUpdate(ctx, tx, id,
			"Status Updated",
			"Your claim status has been updated to "+status+".",
			domain.UpdateStatusChange,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return repo.GetClaim(ctx, s.DB, id)
}

// ToggleChecklistItem sets a checklist item's completion flag and returns the
// updated item. Un-completing clears the completion timestamp.
func (s *ClaimService) ToggleChecklistItem(ctx context.Context, id string, completed bool) (*domain.ChecklistItem, error) {
	if err := repo.SetChecklistCompletion(ctx, s.DB, id, completed); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrChecklistItemNotFound
		}
		return nil, err
	}
	return repo.GetChecklistItem(ctx, s.DB, id)
}
