// Package domain defines the persistence models for policies, analyses,
// claims, checklist items, claim updates, and the policy product catalog.
// These types are mapped with GORM and form the core data layer of the
// claims backend.
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Analysis status values a Policy moves through after upload.
const (
	AnalysisPending    = "pending"
	AnalysisProcessing = "processing"
	AnalysisCompleted  = "completed"
	AnalysisFailed     = "failed"
)

// Risk levels produced by the analysis collaborator.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Claim status progression. Claims only move forward through this list.
const (
	ClaimSubmitted   = "submitted"
	ClaimUnderReview = "under_review"
	ClaimProcessing  = "processing"
	ClaimDecision    = "decision"
	ClaimPayment     = "payment"
	ClaimCompleted   = "completed"
)

// claimStatusOrder maps each claim status to its position in the progression.
var claimStatusOrder = map[string]int{
	ClaimSubmitted:   0,
	ClaimUnderReview: 1,
	ClaimProcessing:  2,
	ClaimDecision:    3,
	ClaimPayment:     4,
	ClaimCompleted:   5,
}

// ClaimStatusRank returns the position of status in the modeled progression,
// or -1 when the status is not a valid claim status.
func ClaimStatusRank(status string) int {
	if r, ok := claimStatusOrder[status]; ok {
		return r
	}
	return -1
}

// ValidRiskLevel reports whether s is one of the three modeled risk levels.
func ValidRiskLevel(s string) bool {
	return s == RiskLow || s == RiskMedium || s == RiskHigh
}

// ClaimUpdate types.
const (
	UpdateStatusChange    = "status_change"
	UpdateDocumentRequest = "document_request"
	UpdateGeneral         = "general_update"
)

// FlaggedClause is a single policy clause surfaced by the risk analysis.
// Clauses are stored inside Analysis as a JSON column, ordered as returned
// by the collaborator.
type FlaggedClause struct {
	Title        string `json:"title"`
	Summary      string `json:"summary"`
	OriginalText string `json:"originalText"`
	RiskLevel    string `json:"riskLevel"`
	Category     string `json:"category"`
}

// ClauseList is a JSON-serialized slice of flagged clauses.
type ClauseList []FlaggedClause

// Value implements driver.Valuer by marshaling the list to JSON.
func (l ClauseList) Value() (driver.Value, error) {
	if l == nil {
		l = ClauseList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner, accepting JSON stored as []byte or string.
func (l *ClauseList) Scan(src any) error {
	return scanJSON(src, l)
}

// StringList is a JSON-serialized slice of strings, used for document
// descriptors and product feature lists.
type StringList []string

// Value implements driver.Valuer by marshaling the list to JSON.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner, accepting JSON stored as []byte or string.
func (l *StringList) Scan(src any) error {
	return scanJSON(src, l)
}

func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return errors.New("unsupported source type for JSON column")
	}
}

// Policy represents one uploaded insurance document and the state of its
// text-extraction/analysis pipeline.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - UserID: owner identifier; indexed for per-user listing.
//   - FileName / FileSize / MimeType: upload metadata as received.
//   - ExtractedText: OCR/PDF text, attached once extraction finishes.
//   - AnalysisStatus: pending → processing → completed|failed.
//   - IpfsHash: optional decentralized-storage reference supplied by the client.
type Policy struct {
	ID             string    `json:"id"             gorm:"type:char(36);primaryKey"`
	UserID         string    `json:"userId"         gorm:"type:varchar(64);not null;index:idx_user_policies"`
	FileName       string    `json:"fileName"       gorm:"type:varchar(255);not null"`
	FileSize       int64     `json:"fileSize"       gorm:"not null"`
	MimeType       string    `json:"mimeType"       gorm:"type:varchar(128);not null"`
	ExtractedText  string    `json:"extractedText,omitempty" gorm:"type:text"`
	AnalysisStatus string    `json:"analysisStatus" gorm:"type:varchar(16);not null;default:'pending';check:analysis_status IN ('pending','processing','completed','failed')"`
	IpfsHash       string    `json:"ipfsHash,omitempty" gorm:"type:varchar(128)"`
	UploadedAt     time.Time `json:"uploadedAt"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TableName returns the database table name for Policy.
func (Policy) TableName() string { return "policies" }

// Analysis is the structured risk assessment derived from a Policy's text.
// There is at most one per policy, created once and never updated. Sanitization
// of collaborator output (score clamping, enum defaulting) happens at the
// collaborator boundary; this record stores whatever well-formed result it is
// given.
type Analysis struct {
	ID              string     `json:"id"              gorm:"type:char(36);primaryKey"`
	PolicyID        string     `json:"policyId"        gorm:"type:char(36);not null;index:idx_policy_analyses"`
	RiskScore       int        `json:"riskScore"       gorm:"not null"`
	RiskLevel       string     `json:"riskLevel"       gorm:"type:varchar(8);not null;check:risk_level IN ('low','medium','high')"`
	Summary         string     `json:"summary"         gorm:"type:text"`
	FlaggedClauses  ClauseList `json:"flaggedClauses"  gorm:"type:text"`
	Recommendations string     `json:"recommendations" gorm:"type:text"`
	CompletedAt     time.Time  `json:"completedAt"`

	// Policy is the analyzed document. Analyses are cascade-deleted with it.
	Policy Policy `json:"-" gorm:"foreignKey:PolicyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Analysis.
func (Analysis) TableName() string { return "analyses" }

// Claim is a request for payment against a Policy, tracked through the fixed
// status progression. The claim number is globally unique and immutable once
// assigned (enforced by a unique index with a checked insert).
//
// Amount is stored in the smallest currency unit.
type Claim struct {
	ID                      string    `json:"id"          gorm:"type:char(36);primaryKey"`
	UserID                  string    `json:"userId"      gorm:"type:varchar(64);not null;index:idx_user_claims"`
	PolicyID                string    `json:"policyId"    gorm:"type:char(36);not null;index"`
	ClaimNumber             string    `json:"claimNumber" gorm:"type:varchar(32);not null;uniqueIndex:ux_claim_number"`
	Status                  string    `json:"status"      gorm:"type:varchar(16);not null;default:'submitted'"`
	Amount                  int64     `json:"amount"      gorm:"not null"`
	Description             string    `json:"description" gorm:"type:text"`
	EstimatedProcessingDays int       `json:"estimatedProcessingDays" gorm:"not null;default:10"`
	SubmittedAt             time.Time `json:"submittedAt"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// TableName returns the database table name for Claim.
func (Claim) TableName() string { return "claims" }

// ChecklistItem is one step in claim preparation guidance. Five canonical
// items are created with every claim, ordered by ItemOrder ascending. The
// "current" step is derived by clients as the first incomplete item and is
// intentionally not persisted.
type ChecklistItem struct {
	ID                string     `json:"id"          gorm:"type:char(36);primaryKey"`
	ClaimID           string     `json:"claimId"     gorm:"type:char(36);not null;index:idx_claim_items"`
	Title             string     `json:"title"       gorm:"type:varchar(255);not null"`
	Description       string     `json:"description" gorm:"type:text"`
	IsCompleted       bool       `json:"isCompleted" gorm:"not null;default:false"`
	ItemOrder         int        `json:"order"       gorm:"column:item_order;not null"`
	RequiredDocuments StringList `json:"requiredDocuments" gorm:"type:text"`
	UploadedDocuments StringList `json:"uploadedDocuments" gorm:"type:text"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`

	// Claim is the owning claim. Items are cascade-deleted with it.
	Claim Claim `json:"-" gorm:"foreignKey:ClaimID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ChecklistItem.
func (ChecklistItem) TableName() string { return "checklist_items" }

// ClaimUpdate is an immutable, append-only history entry for a Claim.
// Reads return updates newest first.
type ClaimUpdate struct {
	ID          string    `json:"id"          gorm:"type:char(36);primaryKey"`
	ClaimID     string    `json:"claimId"     gorm:"type:char(36);not null;index:idx_claim_updates"`
	Title       string    `json:"title"       gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text"`
	UpdateType  string    `json:"updateType"  gorm:"type:varchar(32);not null;check:update_type IN ('status_change','document_request','general_update')"`
	CreatedAt   time.Time `json:"createdAt"`

	// Claim is the owning claim. Updates are cascade-deleted with it.
	Claim Claim `json:"-" gorm:"foreignKey:ClaimID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ClaimUpdate.
func (ClaimUpdate) TableName() string { return "claim_updates" }

// PolicyProduct is a static reference catalog entry used for comparison
// shopping. The catalog is seeded at startup and never mutated by user action.
// Coverage is expressed in lakhs.
type PolicyProduct struct {
	ID                   string     `json:"id"                   gorm:"type:char(36);primaryKey"`
	PolicyName           string     `json:"policyName"           gorm:"type:varchar(255);not null"`
	Insurer              string     `json:"insurer"              gorm:"type:varchar(128);not null"`
	Category             string     `json:"category"             gorm:"type:varchar(64);not null;index"`
	Coverage             int        `json:"coverage"             gorm:"not null"`
	Premium              int        `json:"premium"              gorm:"not null"`
	WaitingPeriod        int        `json:"waitingPeriod"        gorm:"not null"`
	Copay                int        `json:"copay"                gorm:"not null"`
	ClaimSettlementRatio int        `json:"claimSettlementRatio" gorm:"not null"`
	Exclusions           string     `json:"exclusions"           gorm:"type:text"`
	KeyFeatures          StringList `json:"keyFeatures"          gorm:"type:text"`
	AgeLimit             string     `json:"ageLimit"             gorm:"type:varchar(64)"`
	FamilyFloater        bool       `json:"familyFloater"`
	PreExistingCovered   bool       `json:"preExistingDiseasesCovered"`
	NoClaimBonus         int        `json:"noClaimBonus"`
	RoomRentCapping      string     `json:"roomRentCapping"      gorm:"type:varchar(64)"`
	CreatedAt            time.Time  `json:"createdAt"`
}

// TableName returns the database table name for PolicyProduct.
func (PolicyProduct) TableName() string { return "policy_products" }
