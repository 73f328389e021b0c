// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver), schema migrations, and the policy product seed.
package repo

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/claimmate/go-claims-backend/internal/domain"
)

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
// In-memory DSNs (the default) keep all state process-resident; they are
// restricted to a single connection so every request sees the same database.
func OpenSQLite(path string) (*gorm.DB, error) {
	inMemory := strings.Contains(path, ":memory:")

	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if !inMemory {
		if dir := filepath.Dir(path); dir != "." {
			if _, err := os.Stat(dir); err != nil {
				return nil, err
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Trace DB operations alongside HTTP spans.
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		if inMemory {
			sqlDB.SetMaxOpenConns(1)
		} else {
			sqlDB.SetMaxOpenConns(10)
			sqlDB.SetMaxIdleConns(10)
			sqlDB.SetConnMaxIdleTime(5 * time.Minute)
			sqlDB.SetConnMaxLifetime(30 * time.Minute)
		}
	}

	return db, nil
}

// AutoMigrate creates or updates the schema for all domain entities.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Policy{},
		&domain.Analysis{},
		&domain.Claim{},
		&domain.ChecklistItem{},
		&domain.ClaimUpdate{},
		&domain.PolicyProduct{},
		&domain.Idempotency{},
	)
}

// SeedPolicyProducts loads the static product catalog. It is idempotent:
// an already-populated catalog is left untouched.
func SeedPolicyProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.PolicyProduct{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	products := catalogSeed()
	for i := range products {
		products[i].ID = uuid.NewString()
		products[i].CreatedAt = now
	}
	return db.Create(&products).Error
}

// catalogSeed returns the reference health insurance products used for
// comparison lookups.
func catalogSeed() []domain.PolicyProduct {
	return []domain.PolicyProduct{
		{
			PolicyName: "Star Health Family Optima", Insurer: "Star Health", Category: "health",
			Coverage: 10, Premium: 14000, WaitingPeriod: 3, Copay: 10, ClaimSettlementRatio: 92,
			Exclusions:  "Pre-existing diseases, cosmetic treatments, dental care",
			KeyFeatures: domain.StringList{"Family floater", "Pre-post hospitalization", "Daycare procedures"},
			AgeLimit:    "18-65 years", FamilyFloater: true, PreExistingCovered: false,
			NoClaimBonus: 50, RoomRentCapping: "2% of sum insured",
		},
		{
			PolicyName: "HDFC ERGO Health Suraksha", Insurer: "HDFC ERGO", Category: "health",
			Coverage: 5, Premium: 8500, WaitingPeriod: 2, Copay: 20, ClaimSettlementRatio: 96,
			Exclusions:  "Cosmetic surgery, war injuries, nuclear risks",
			KeyFeatures: domain.StringList{"Cashless treatment", "Health checkups", "Emergency assistance"},
			AgeLimit:    "18-70 years", FamilyFloater: false, PreExistingCovered: true,
			NoClaimBonus: 25, RoomRentCapping: "1% of sum insured",
		},
		{
			PolicyName: "ICICI Lombard Complete Health", Insurer: "ICICI Lombard", Category: "health",
			Coverage: 15, Premium: 22000, WaitingPeriod: 2, Copay: 0, ClaimSettlementRatio: 94,
			Exclusions:  "Self-inflicted injuries, substance abuse",
			KeyFeatures: domain.StringList{"No copay", "Unlimited restoration", "Global coverage"},
			AgeLimit:    "91 days-75 years", FamilyFloater: true, PreExistingCovered: true,
			NoClaimBonus: 50, RoomRentCapping: "No limit",
		},
		{
			PolicyName: "Care Health Supreme", Insurer: "Care Health", Category: "health",
			Coverage: 10, Premium: 16500, WaitingPeriod: 2, Copay: 10, ClaimSettlementRatio: 89,
			Exclusions:  "Congenital diseases, experimental treatments",
			KeyFeatures: domain.StringList{"OPD coverage", "Mental health cover", "Maternity benefits"},
			AgeLimit:    "18-65 years", FamilyFloater: true, PreExistingCovered: true,
			NoClaimBonus: 100, RoomRentCapping: "Single AC room",
		},
		{
			PolicyName: "Bajaj Allianz Health Guard", Insurer: "Bajaj Allianz", Category: "health",
			Coverage: 7, Premium: 11000, WaitingPeriod: 4, Copay: 15, ClaimSettlementRatio: 87,
			Exclusions:  "Dental treatments, fertility treatments",
			KeyFeatures: domain.StringList{"Personal accident cover", "Daily cash allowance"},
			AgeLimit:    "18-60 years", FamilyFloater: false, PreExistingCovered: false,
			NoClaimBonus: 20, RoomRentCapping: "1.5% of sum insured",
		},
		{
			PolicyName: "Max Bupa Health Companion", Insurer: "Max Bupa", Category: "health",
			Coverage: 20, Premium: 28000, WaitingPeriod: 1, Copay: 5, ClaimSettlementRatio: 93,
			Exclusions:  "War, nuclear risks, intentional self-injury",
			KeyFeatures: domain.StringList{"Reload benefit", "International coverage", "Health coaching"},
			AgeLimit:    "18-75 years", FamilyFloater: true, PreExistingCovered: true,
			NoClaimBonus: 50, RoomRentCapping: "No capping",
		},
		{
			PolicyName: "Apollo Munich Easy Health", Insurer: "Apollo Munich", Category: "health",
			Coverage: 5, Premium: 7800, WaitingPeriod: 3, Copay: 25, ClaimSettlementRatio: 85,
			Exclusions:  "Cosmetic surgery, obesity treatments",
			KeyFeatures: domain.StringList{"Easy claim process", "24x7 helpline"},
			AgeLimit:    "18-65 years", FamilyFloater: false, PreExistingCovered: false,
			NoClaimBonus: 10, RoomRentCapping: "1% of sum insured",
		},
		{
			PolicyName: "Religare Health Total", Insurer: "Religare Health", Category: "health",
			Coverage: 12, Premium: 18000, WaitingPeriod: 2, Copay: 0, ClaimSettlementRatio: 91,
			Exclusions:  "Pre-existing mental disorders, AIDS",
			KeyFeatures: domain.StringList{"Zero copay", "Domiciliary treatment", "Second opinion"},
			AgeLimit:    "18-70 years", FamilyFloater: true, PreExistingCovered: true,
			NoClaimBonus: 75, RoomRentCapping: "Private room",
		},
	}
}
