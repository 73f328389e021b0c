// Package services – PolicyService
//
// This file implements PolicyService, the application-level component that
// owns the lifecycle of uploaded policy documents: creating the record,
// dispatching the background extraction/analysis pipeline, and serving
// reads. The pipeline itself (Process) runs on the worker pool: it moves the
// policy through processing → completed|failed, attaches the extracted text,
// and records the analysis produced by the collaborator boundary.
//
// Observability: public methods and the pipeline are OpenTelemetry
// instrumented; spans carry the policy identifier.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/claimmate/go-claims-backend/internal/chain"
	"github.com/claimmate/go-claims-backend/internal/domain"
	"github.com/claimmate/go-claims-backend/internal/llm"
	"github.com/claimmate/go-claims-backend/internal/ocr"
	"github.com/claimmate/go-claims-backend/internal/repo"
	"github.com/claimmate/go-claims-backend/internal/worker"
)

// PolicyService coordinates document uploads and the analysis pipeline.
type PolicyService struct {
	DB        *gorm.DB
	Extractor ocr.Extractor
	Analyzer  llm.Analyzer
	Verifier  chain.Verifier
	Pool      *worker.Pool
}

// Upload carries the multipart upload data accepted by Upload.
type Upload struct {
	UserID   string
	FileName string
	MimeType string
	IpfsHash string
	Data     []byte
}

// Upload creates the policy record (always status "pending") and enqueues the
// background extraction/analysis job. The call returns as soon as the record
// exists; callers discover pipeline completion by polling the policy status.
//
// When the worker queue is saturated the policy is marked failed immediately:
// there is deliberately no retry or blocking admission path.
func (s *PolicyService) Upload(ctx context.Context, in Upload) (*domain.Policy, error) {
	tr := otel.Tracer("services/PolicyService")
	ctx, span := tr.Start(ctx, "Upload",
		trace.WithAttributes(attribute.String("user.id", in.UserID)),
	)
	defer span.End()

	if len(in.Data) == 0 {
		return nil, ErrEmptyUpload
	}

	p, err := repo.CreatePolicy(ctx, s.DB, repo.PolicyUpload{
		UserID:   in.UserID,
		FileName: in.FileName,
		FileSize: int64(len(in.Data)),
		MimeType: in.MimeType,
		IpfsHash: in.IpfsHash,
	})
	if err != nil {
		return nil, err
	}

	// Verification is a trust signal only; the stub backend always succeeds
	// and the outcome never gates the pipeline.
	if s.Verifier != nil {
		if verified, verr := s.Verifier.VerifyPolicy(ctx, chain.HashContent(in.Data)); verr != nil || !verified {
			log.Warn().Err(verr).Str("policy_id", p.ID).Bool("verified", verified).
				Msg("policy verification did not succeed")
		}
	}

	data, mime, id := in.Data, in.MimeType, p.ID
	err = s.Pool.Submit(worker.Job{
		Name: "policy-analysis",
		Do: func(jctx context.Context) error {
			return s.Process(jctx, id, data, mime)
		},
	})
	if err != nil {
		// Terminal: the upload succeeded but processing will never start.
		log.Error().Err(err).Str("policy_id", p.ID).Msg("could not enqueue analysis job")
		if serr := repo.UpdatePolicyStatus(ctx, s.DB, p.ID, domain.AnalysisFailed); serr != nil {
			log.Error().Err(serr).Str("policy_id", p.ID).Msg("could not mark policy failed")
		}
	}
	return p, nil
}

// Process runs the extraction/analysis pipeline for one policy. Any failure
// marks the policy failed permanently: there is no retry and the user must
// re-upload. The analysis collaborator substitutes a neutral default rather
// than failing, so in practice only extraction errors reach the failed state.
func (s *PolicyService) Process(ctx context.Context, policyID string, data []byte, mimeType string) error {
	tr := otel.Tracer("services/PolicyService")
	ctx, span := tr.Start(ctx, "Process",
		trace.WithAttributes(attribute.String("policy.id", policyID)),
	)
	defer span.End()

	if err := repo.UpdatePolicyStatus(ctx, s.DB, policyID, domain.AnalysisProcessing); err != nil {
		return err
	}

	text, err := s.Extractor.Extract(ctx, data, mimeType)
	if err != nil {
		s.markFailed(ctx, policyID)
		return err
	}
	if err := repo.UpdatePolicyText(ctx, s.DB, policyID, text); err != nil {
		s.markFailed(ctx, policyID)
		return err
	}

	result, err := s.Analyzer.Analyze(ctx, text)
	if err != nil {
		s.markFailed(ctx, policyID)
		return err
	}

	if _, err := repo.CreateAnalysis(ctx, s.DB, repo.AnalysisRecord{
		PolicyID:        policyID,
		RiskScore:       result.RiskScore,
		RiskLevel:       result.RiskLevel,
		Summary:         result.Summary,
		FlaggedClauses:  result.FlaggedClauses,
		Recommendations: result.Recommendations,
	}); err != nil {
		s.markFailed(ctx, policyID)
		return err
	}

	return repo.UpdatePolicyStatus(ctx, s.DB, policyID, domain.AnalysisCompleted)
}

// markFailed best-effort moves a policy to the terminal failed status.
func (s *PolicyService) markFailed(ctx context.Context, policyID string) {
	if err := repo.UpdatePolicyStatus(ctx, s.DB, policyID, domain.AnalysisFailed); err != nil {
		log.Error().Err(err).Str("policy_id", policyID).Msg("could not mark policy failed")
	}
}

// Get returns one policy by id, or ErrPolicyNotFound.
func (s *PolicyService) Get(ctx context.Context, id string) (*domain.Policy, error) {
	p, err := repo.GetPolicy(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPolicyNotFound
		}
		return nil, err
	}
	return p, nil
}

// List returns all policies owned by userID, most recent first.
func (s *PolicyService) List(ctx context.Context, userID string) ([]domain.Policy, error) {
	return repo.ListPolicies(ctx, s.DB, userID)
}

// GetWithAnalysis returns a policy together with its recorded analysis.
// ErrAnalysisNotReady is returned while the pipeline has not produced one;
// clients poll until the policy status turns completed.
func (s *PolicyService) GetWithAnalysis(ctx context.Context, id string) (*domain.Policy, *domain.Analysis, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	a, err := repo.GetAnalysisByPolicy(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, ErrAnalysisNotReady
		}
		return nil, nil, err
	}
	return p, a, nil
}
