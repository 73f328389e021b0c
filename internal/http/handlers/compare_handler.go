// Comparison HTTP handlers.
//
// This file exposes REST endpoints for the policy product catalog:
//   - GET  /products                   (seeded catalog, optional category filter)
//   - GET  /policies/{id}/compare      (match an uploaded policy against the market)
//   - POST /policies/compare-detailed  (side-by-side aggregates for selected products)
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/claimmate/go-claims-backend/internal/services"
	"github.com/claimmate/go-claims-backend/internal/utils"
)

//
// DTOs
//

// CompareDetailedRequest selects the catalog products to aggregate.
type CompareDetailedRequest struct {
	// ProductIDs are catalog product ids; unknown ids are skipped.
	ProductIDs []string `json:"productIds" binding:"required,min=1"`
}

//
// Handlers
//

// ListProducts godoc
// @ID          listProducts
// @Summary     List catalog products
// @Description Returns the seeded policy product catalog, optionally filtered by
// @Description category (case-insensitive).
// @Tags        Comparison
// @Produce     json
//
// @Param       category  query  string  false "Category filter"  example(health)
//
// @Success     200  {array}   domain.PolicyProduct
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /products [get]
func (h *Handlers) ListProducts(c *gin.Context) {
	items, err := h.cmpSvc.Products(c.Request.Context(), strings.TrimSpace(c.Query("category")))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// ComparePolicy godoc
// @ID          comparePolicy
// @Summary     Compare an uploaded policy with the market
// @Description Matches the policy against catalog products of similar coverage and
// @Description returns up to five alternatives, best claim settlement ratio first.
// @Tags        Comparison
// @Produce     json
//
// @Param       id        path   string  true  "Policy ID (UUID)"  format(uuid)
// @Param       coverage  query  int     false "Assumed coverage in lakhs"  minimum(1)
// @Param       category  query  string  false "Product category"           example(health)
//
// @Success     200  {object}  services.Comparison
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Policy not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /policies/{id}/compare [get]
func (h *Handlers) ComparePolicy(c *gin.Context) {
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

	coverage := utils.AtoiDefault(c.Query("coverage"), 0)
	category := strings.TrimSpace(c.Query("category"))

	cmp, err := h.cmpSvc.Compare(c.Request.Context(), p, coverage, category)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCompareFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, cmp)
}

// CompareDetailed godoc
// @ID          compareDetailed
// @Summary     Compare selected products side by side
// @Description Aggregates the selected catalog products: coverage and premium
// @Description ranges, the best claim settlement ratio, and the shortest waiting
// @Description period.
// @Tags        Comparison
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CompareDetailedRequest  true  "Product selection"
//
// @Success     200  {object}  services.DetailedComparison
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "No matching products"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /policies/compare-detailed [post]
func (h *Handlers) CompareDetailed(c *gin.Context) {
	var req CompareDetailedRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.ProductIDs) == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "productIds required")
		return
	}

	cmp, err := h.cmpSvc.CompareDetailed(c.Request.Context(), req.ProductIDs)
	if err != nil {
		if errors.Is(err, services.ErrNoProducts) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "no matching policy products")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCompareFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, cmp)
}
