// Policy HTTP handlers.
//
// This file exposes REST endpoints for uploaded policy documents:
//   - POST /policies/upload         (multipart upload, starts background analysis)
//   - GET  /policies                (list the current user's policies)
//   - GET  /policies/{id}           (fetch one policy)
//   - GET  /policies/{id}/analysis  (fetch the policy with its risk analysis)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses. Uploads return as soon as the
// record exists; clients poll analysisStatus to observe pipeline progress.
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/claimmate/go-claims-backend/internal/domain"
	"github.com/claimmate/go-claims-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// PolicyService defines policy lifecycle operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type PolicyService interface {
	// Upload stores a document and schedules its analysis pipeline.
	Upload(ctx context.Context, in services.Upload) (*domain.Policy, error)
	// Get returns one policy by id.
	Get(ctx context.Context, id string) (*domain.Policy, error)
	// List returns all policies for a user, most recent first.
	List(ctx context.Context, userID string) ([]domain.Policy, error)
	// GetWithAnalysis returns a policy together with its risk analysis.
	GetWithAnalysis(ctx context.Context, id string) (*domain.Policy, *domain.Analysis, error)
}

// ClaimService defines claim lifecycle operations consumed by HTTP handlers.
type ClaimService interface {
	// Create files a claim against a policy, optionally idempotent.
	Create(ctx context.Context, in services.CreateClaim) (*domain.Claim, bool, error)
	// List returns all claims for a user, most recent first.
	List(ctx context.Context, userID string) ([]domain.Claim, error)
	// GetDetails returns a claim with its checklist and update history.
	GetDetails(ctx context.Context, id string) (*services.ClaimDetails, error)
	// AdvanceStatus moves a claim forward in the status progression.
	AdvanceStatus(ctx context.Context, id, status string) (*domain.Claim, error)
	// ToggleChecklistItem sets a checklist item's completion flag.
	ToggleChecklistItem(ctx context.Context, id string, completed bool) (*domain.ChecklistItem, error)
}

// ComparisonService defines catalog and comparison operations consumed by
// HTTP handlers.
type ComparisonService interface {
	// Products returns catalog entries, optionally filtered by category.
	Products(ctx context.Context, category string) ([]domain.PolicyProduct, error)
	// Compare matches an uploaded policy against similar catalog products.
	// Zero coverage and empty category fall back to service defaults.
	Compare(ctx context.Context, policy *domain.Policy, coverage int, category string) (*services.Comparison, error)
	// CompareDetailed aggregates a selected product set side by side.
	CompareDetailed(ctx context.Context, productIDs []string) (*services.DetailedComparison, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for policies, claims, and comparisons.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	policySvc PolicyService
	claimSvc  ClaimService
	cmpSvc    ComparisonService

	// maxUpload caps the accepted multipart file size in bytes.
	maxUpload int64
}

// New constructs and returns a Handlers instance bound to the given services.
func New(policySvc PolicyService, claimSvc ClaimService, cmpSvc ComparisonService, maxUpload int64) *Handlers {
	return &Handlers{policySvc: policySvc, claimSvc: claimSvc, cmpSvc: cmpSvc, maxUpload: maxUpload}
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to "X-User-ID" header (tests use it),
// and finally to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

//
// DTOs
//

// AnalysisResponse bundles a policy with its completed risk analysis.
type AnalysisResponse struct {
	Policy   *domain.Policy   `json:"policy"`
	Analysis *domain.Analysis `json:"analysis"`
}

//
// Handlers
//

// UploadPolicy godoc
// @ID          uploadPolicy
// @Summary     Upload a policy document
// @Description Accepts a multipart policy document, stores it with analysisStatus
// @Description "pending", and schedules text extraction and risk analysis in the
// @Description background. Poll the policy until analysisStatus turns "completed".
// @Tags        Policies
// @Accept      multipart/form-data
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       file       formData file   true  "Policy document (PDF, image, or plain text)"
// @Param       ipfsHash   formData string false "Optional decentralized-storage reference"
//
// @Success     201  {object}  domain.Policy
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     413  {object}  handlers.ErrorResponse  "File too large"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /policies/upload [post]
func (h *Handlers) UploadPolicy(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "file required")
		return
	}
	if h.maxUpload > 0 && fh.Size > h.maxUpload {
		fail(c, http.StatusRequestEntityTooLarge, ErrCodeBadRequest, "file too large")
		return
	}

	f, err := fh.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "could not read file")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "could not read file")
		return
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	p, err := h.policySvc.Upload(c.Request.Context(), services.Upload{
		UserID:   userID(c),
		FileName: fh.Filename,
		MimeType: mimeType,
		IpfsHash: strings.TrimSpace(c.PostForm("ipfsHash")),
		Data:     data,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmptyUpload) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "uploaded file is empty")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeUploadFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, p)
}

// ListPolicies godoc
// @ID          listPolicies
// @Summary     List the current user's policies
// @Description Returns all of the user's uploaded policies, most recent first.
// @Tags        Policies
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {array}   domain.Policy
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /policies [get]
func (h *Handlers) ListPolicies(c *gin.Context) {
	items, err := h.policySvc.List(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// GetPolicy godoc
// @ID          getPolicy
// @Summary     Fetch one policy
// @Description Returns the policy record, including its current analysisStatus.
// @Tags        Policies
// @Produce     json
//
// @Param       id  path  string  true  "Policy ID (UUID)"  format(uuid)
//
// @Success     200  {object}  domain.Policy
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Policy not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /policies/{id} [get]
func (h *Handlers) GetPolicy(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "policy id must be a UUID")
		return
	}
	p, err := h.policySvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrPolicyNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "policy not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, p)
}

// GetAnalysis godoc
// @ID          getAnalysis
// @Summary     Fetch a policy's risk analysis
// @Description Returns the policy together with its analysis. While the pipeline
// @Description has not produced one, the endpoint responds 404; clients poll
// @Description until the policy's analysisStatus turns "completed".
// @Tags        Policies
// @Produce     json
//
// @Param       id  path  string  true  "Policy ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.AnalysisResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Policy or analysis not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /policies/{id}/analysis [get]
func (h *Handlers) GetAnalysis(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "policy id must be a UUID")
		return
	}
	p, a, err := h.policySvc.GetWithAnalysis(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPolicyNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "policy not found")
		case errors.Is(err, services.ErrAnalysisNotReady):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "analysis not ready")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, AnalysisResponse{Policy: p, Analysis: a})
}
