package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/claimmate/go-claims-backend/internal/chain"
	"github.com/claimmate/go-claims-backend/internal/domain"
	"github.com/claimmate/go-claims-backend/internal/llm"
	"github.com/claimmate/go-claims-backend/internal/repo"
	"github.com/claimmate/go-claims-backend/internal/worker"
)

func newPolicyServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("policy_service_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(_ context.Context, _ []byte, _ string) (string, error) {
	return f.text, f.err
}

type fakeAnalyzer struct {
	result llm.Result
	err    error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ string) (llm.Result, error) {
	return f.result, f.err
}

type fakeVerifier struct {
	mu      sync.Mutex
	gotHash string
}

func (f *fakeVerifier) VerifyPolicy(_ context.Context, contentHash string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotHash = contentHash
	return true, nil
}

func (f *fakeVerifier) hash() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gotHash
}

// waitForStatus polls until the policy reaches a terminal analysis status.
func waitForStatus(t *testing.T, db *gorm.DB, id string, want string) *domain.Policy {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		p, err := repo.GetPolicy(context.Background(), db, id)
		if err != nil {
			t.Fatalf("GetPolicy: %v", err)
		}
		if p.AnalysisStatus == want {
			return p
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("policy %s did not reach status %q in time", id, want)
	return nil
}

func TestPolicyUpload_EmptyFile(t *testing.T) {
	svc := &PolicyService{DB: newPolicyServiceDB(t)}
	_, err := svc.Upload(context.Background(), Upload{UserID: "u1", FileName: "a.pdf"})
	if err != ErrEmptyUpload {
		t.Fatalf("expected ErrEmptyUpload, got %v", err)
	}
}

func TestPolicyUpload_PipelineCompletes(t *testing.T) {
	db := newPolicyServiceDB(t)
	pool := worker.New(1, 4)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		pool.Stop(ctx)
	})

	verifier := &fakeVerifier{}
	svc := &PolicyService{
		DB:        db,
		Extractor: &fakeExtractor{text: "policy terms and conditions"},
		Analyzer: &fakeAnalyzer{result: llm.Result{
			RiskScore: 30, RiskLevel: domain.RiskLow,
			Summary: "Solid coverage.", FlaggedClauses: domain.ClauseList{},
		}},
		Verifier: verifier,
		Pool:     pool,
	}

	data := []byte("raw document bytes")
	p, err := svc.Upload(context.Background(), Upload{
		UserID: "u1", FileName: "a.txt", MimeType: "text/plain", Data: data,
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if p.AnalysisStatus != domain.AnalysisPending {
		t.Fatalf("upload must return a pending record, got %q", p.AnalysisStatus)
	}

	done := waitForStatus(t, db, p.ID, domain.AnalysisCompleted)
	if done.ExtractedText != "policy terms and conditions" {
		t.Fatalf("extracted text not stored: %q", done.ExtractedText)
	}
	if verifier.hash() != chain.HashContent(data) {
		t.Fatalf("verifier got hash %q, want content hash", verifier.hash())
	}

	_, a, err := svc.GetWithAnalysis(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("GetWithAnalysis: %v", err)
	}
	if a.RiskScore != 30 || a.RiskLevel != domain.RiskLow {
		t.Fatalf("analysis mismatch: %+v", a)
	}
}

func TestPolicyUpload_ExtractionFailureMarksFailed(t *testing.T) {
	db := newPolicyServiceDB(t)
	pool := worker.New(1, 4)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		pool.Stop(ctx)
	})

	svc := &PolicyService{
		DB:        db,
		Extractor: &fakeExtractor{err: errors.New("corrupt document")},
		Analyzer:  &fakeAnalyzer{},
		Pool:      pool,
	}

	p, err := svc.Upload(context.Background(), Upload{
		UserID: "u1", FileName: "a.pdf", MimeType: "application/pdf", Data: []byte("x"),
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	waitForStatus(t, db, p.ID, domain.AnalysisFailed)

	if _, _, err := svc.GetWithAnalysis(context.Background(), p.ID); err != ErrAnalysisNotReady {
		t.Fatalf("expected ErrAnalysisNotReady, got %v", err)
	}
}

func TestPolicyUpload_QueueRejectionMarksFailed(t *testing.T) {
	db := newPolicyServiceDB(t)
	pool := worker.New(1, 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	pool.Stop(ctx) // submissions now fail

	svc := &PolicyService{
		DB:        db,
		Extractor: &fakeExtractor{text: "ignored"},
		Analyzer:  &fakeAnalyzer{},
		Pool:      pool,
	}

	p, err := svc.Upload(context.Background(), Upload{
		UserID: "u1", FileName: "a.txt", MimeType: "text/plain", Data: []byte("x"),
	})
	if err != nil {
		t.Fatalf("upload itself must succeed, got %v", err)
	}

	got, err := repo.GetPolicy(context.Background(), db, p.ID)
	if err != nil {
		t.Fatalf("GetPolicy: %v", err)
	}
	if got.AnalysisStatus != domain.AnalysisFailed {
		t.Fatalf("expected failed after queue rejection, got %q", got.AnalysisStatus)
	}
}

func TestPolicyGetAndList(t *testing.T) {
	db := newPolicyServiceDB(t)
	svc := &PolicyService{DB: db}

	if _, err := svc.Get(context.Background(), "missing"); err != ErrPolicyNotFound {
		t.Fatalf("expected ErrPolicyNotFound, got %v", err)
	}
	if _, _, err := svc.GetWithAnalysis(context.Background(), "missing"); err != ErrPolicyNotFound {
		t.Fatalf("expected ErrPolicyNotFound, got %v", err)
	}

	p := seedPolicy(t, db, "u1")
	seedPolicy(t, db, "u2")

	got, err := svc.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != p.ID {
		t.Fatalf("id mismatch: %q", got.ID)
	}

	list, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 policy for u1, got %d", len(list))
	}
}
