// Package chain defines the document verification collaborator boundary.
// The production target is the Yellow Network state-channel infrastructure;
// the implementation shipped here is a local stub that performs no on-chain
// interaction. The boundary is an interface so tests and future deployments
// can plug in real verification and simulate both verified and unverified
// outcomes.
package chain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/rs/zerolog/log"
)

// Verifier reports whether a document with the given content hash is
// considered verified. The result is a trust signal only; no cryptographic
// meaning should be attached to the stub implementation.
type Verifier interface {
	VerifyPolicy(ctx context.Context, contentHash string) (bool, error)
}

// HashContent returns the hex-encoded SHA-256 digest of a document buffer,
// the identifier handed to the verifier.
func HashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// StubVerifier is the local no-op verification backend. It reports the
// configured outcome for every hash and logs the call so the pipeline's
// verification step is observable even without chain infrastructure.
type StubVerifier struct {
	// Environment labels the simulated network (e.g. "testnet").
	Environment string
	// Verified is the fixed answer returned for every policy.
	Verified bool
}

// NewStubVerifier returns a stub that verifies everything, matching the
// development fallback of the original integration.
func NewStubVerifier(environment string) *StubVerifier {
	if environment == "" {
		environment = "testnet"
	}
	return &StubVerifier{Environment: environment, Verified: true}
}

// VerifyPolicy implements Verifier. It never fails; the configured outcome is
// returned for every hash.
func (s *StubVerifier) VerifyPolicy(_ context.Context, contentHash string) (bool, error) {
	log.Debug().
		Str("environment", s.Environment).
		Str("policy_hash", contentHash).
		Bool("verified", s.Verified).
		Msg("policy verification (stub)")
	return s.Verified, nil
}
