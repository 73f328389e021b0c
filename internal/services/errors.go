// Package services defines the business logic for policies, analyses,
// claims, checklists, and catalog comparison. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer.
package services

import "errors"

// Policy-related errors.
var (
	// ErrPolicyNotFound indicates that the requested policy does not exist.
	ErrPolicyNotFound = errors.New("policy not found")

	// ErrAnalysisNotReady is returned when a policy exists but its analysis
	// has not been recorded yet (pipeline pending, in flight, or failed).
	ErrAnalysisNotReady = errors.New("analysis not ready")

	// ErrEmptyUpload is returned when an upload contains no file data.
	ErrEmptyUpload = errors.New("uploaded file is empty")
)

// Claim-related errors.
var (
	// ErrClaimNotFound indicates that the requested claim does not exist.
	ErrClaimNotFound = errors.New("claim not found")

	// ErrChecklistItemNotFound indicates that the requested checklist item
	// does not exist.
	ErrChecklistItemNotFound = errors.New("checklist item not found")

	// ErrInvalidAmount is returned when a claim is created with a
	// non-positive amount.
	ErrInvalidAmount = errors.New("claim amount must be positive")

	// ErrInvalidStatus is returned when a status outside the modeled claim
	// progression is requested.
	ErrInvalidStatus = errors.New("invalid claim status")

	// ErrStatusRegression is returned when a status transition would move a
	// claim backwards in the progression.
	ErrStatusRegression = errors.New("claim status cannot move backwards")
)

// Comparison-related errors.
var (
	// ErrNoProducts is returned when a detailed comparison selects no known
	// catalog products.
	ErrNoProducts = errors.New("no matching policy products")
)
