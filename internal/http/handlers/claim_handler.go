// Claim HTTP handlers.
//
// This file exposes REST endpoints for claims and their tracking artifacts:
//   - POST /claims               (file a claim, idempotent via Idempotency-Key)
//   - GET  /claims               (list the current user's claims)
//   - GET  /claims/{id}          (claim with checklist and update history)
//   - PUT  /claims/{id}/status   (advance the claim status)
//   - PUT  /checklist/{id}       (toggle a checklist item)
//
// Amounts cross the wire in major currency units (e.g. rupees) and are stored
// in minor units; the handler performs the conversion in both directions via
// the JSON model.
//
// Idempotency:
// If the client supplies an Idempotency-Key header and a previous successful
// claim exists for (user, key), the handler returns that recorded claim and
// sets `Idempotency-Replayed: true`.
package handlers

import (
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/claimmate/go-claims-backend/internal/services"
)

//
// DTOs
//

// CreateClaimRequest is the JSON payload for filing a claim.
type CreateClaimRequest struct {
	// PolicyID identifies the policy the claim is filed against.
	PolicyID string `json:"policyId" binding:"required" format:"uuid" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	// Amount is the claimed amount in major currency units; must be positive.
	Amount float64 `json:"amount" binding:"required" example:"25000.50"`
	// Description explains the incident behind the claim.
	Description string `json:"description" example:"Hospitalization for appendectomy"`
}

// UpdateClaimStatusRequest is the JSON payload for advancing a claim's status.
type UpdateClaimStatusRequest struct {
	// Status is the target status; must not move the claim backwards.
	Status string `json:"status" binding:"required" example:"under_review"`
}

// UpdateChecklistItemRequest is the JSON payload for toggling a checklist item.
type UpdateChecklistItemRequest struct {
	// IsCompleted marks the step done (true) or re-opens it (false).
	IsCompleted *bool `json:"isCompleted" binding:"required" example:"true"`
}

//
// Handlers
//

// CreateClaim godoc
// @ID          createClaim
// @Summary     File a claim
// @Description Creates a claim against an uploaded policy, assigns a claim number,
// @Description seeds the five-step preparation checklist, and records the initial
// @Description status update. Supports idempotency via the Idempotency-Key header
// @Description (same key → same claim).
// @Tags        Claims
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID        header  string  false "User ID (demo header)"  example(user123)
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries (UUID recommended)"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.CreateClaimRequest  true  "Claim payload"
//
// @Success     201  {object}  domain.Claim
// @Header      201  {string}  Idempotency-Replayed  "true when a recorded claim was returned"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Policy not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /claims [post]
func (h *Handlers) CreateClaim(c *gin.Context) {
	var req CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "policyId and amount required")
		return
	}
	if _, err := uuid.Parse(req.PolicyID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "policy id must be a UUID")
		return
	}
	if req.Amount <= 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "amount must be positive")
		return
	}

	claim, replayed, err := h.claimSvc.Create(c.Request.Context(), services.CreateClaim{
		UserID:         userID(c),
		PolicyID:       req.PolicyID,
		Amount:         int64(math.Round(req.Amount * 100)),
		Description:    strings.TrimSpace(req.Description),
		IdempotencyKey: strings.TrimSpace(c.GetHeader("Idempotency-Key")),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPolicyNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "policy not found")
		case errors.Is(err, services.ErrInvalidAmount):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "amount must be positive")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	if replayed {
		c.Header("Idempotency-Replayed", "true")
	}
	ok(c, http.StatusCreated, claim)
}

// ListClaims godoc
// @ID          listClaims
// @Summary     List the current user's claims
// @Description Returns all of the user's claims, most recently submitted first.
// @Tags        Claims
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {array}   domain.Claim
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /claims [get]
func (h *Handlers) ListClaims(c *gin.Context) {
	items, err := h.claimSvc.List(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// GetClaim godoc
// @ID          getClaim
// @Summary     Fetch a claim with its tracking artifacts
// @Description Returns the claim together with its ordered checklist and its
// @Description update history (newest first).
// @Tags        Claims
// @Produce     json
//
// @Param       id  path  string  true  "Claim ID (UUID)"  format(uuid)
//
// @Success     200  {object}  services.ClaimDetails
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Claim not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /claims/{id} [get]
func (h *Handlers) GetClaim(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "claim id must be a UUID")
		return
	}
	details, err := h.claimSvc.GetDetails(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrClaimNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "claim not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, details)
}

// UpdateClaimStatus godoc
// @ID          updateClaimStatus
// @Summary     Advance a claim's status
// @Description Moves the claim forward in the submitted → under_review → processing
// @Description → decision → payment → completed progression and records a
// @Description status_change history entry. Backwards transitions are rejected.
// @Tags        Claims
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Claim ID (UUID)"  format(uuid)
// @Param       body  body  handlers.UpdateClaimStatusRequest  true  "Target status"
//
// @Success     200  {object}  domain.Claim
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Claim not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Status regression"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /claims/{id}/status [put]
func (h *Handlers) UpdateClaimStatus(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "claim id must be a UUID")
		return
	}

	var req UpdateClaimStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status required")
		return
	}

	claim, err := h.claimSvc.AdvanceStatus(c.Request.Context(), id, strings.TrimSpace(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClaimNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "claim not found")
		case errors.Is(err, services.ErrInvalidStatus):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid claim status")
		case errors.Is(err, services.ErrStatusRegression):
			fail(c, http.StatusConflict, ErrCodeConflict, "claim status cannot move backwards")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, claim)
}

// UpdateChecklistItem godoc
// @ID          updateChecklistItem
// @Summary     Toggle a checklist item
// @Description Marks a claim preparation step done or re-opens it. Re-opening
// @Description clears the recorded completion time.
// @Tags        Claims
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Checklist item ID (UUID)"  format(uuid)
// @Param       body  body  handlers.UpdateChecklistItemRequest  true  "Completion flag"
//
// @Success     200  {object}  domain.ChecklistItem
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Checklist item not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /checklist/{id} [put]
func (h *Handlers) UpdateChecklistItem(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "checklist item id must be a UUID")
		return
	}

	var req UpdateChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsCompleted == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "isCompleted required")
		return
	}

	item, err := h.claimSvc.ToggleChecklistItem(c.Request.Context(), id, *req.IsCompleted)
	if err != nil {
		if errors.Is(err, services.ErrChecklistItemNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "checklist item not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, item)
}
