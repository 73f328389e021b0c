package chain

import (
	"context"
	"testing"
)

func TestHashContent_DeterministicHex(t *testing.T) {
	// SHA-256 of "abc", a fixed reference value.
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got := HashContent([]byte("abc")); got != want {
		t.Fatalf("HashContent = %q, want %q", got, want)
	}
	if HashContent([]byte("abc")) != HashContent([]byte("abc")) {
		t.Fatalf("hash must be deterministic")
	}
	if HashContent([]byte("abc")) == HashContent([]byte("abd")) {
		t.Fatalf("different content must hash differently")
	}
	if got := HashContent(nil); len(got) != 64 {
		t.Fatalf("empty content must still produce a 64-char digest, got %d", len(got))
	}
}

func TestStubVerifier_FixedOutcome(t *testing.T) {
	v := NewStubVerifier("")
	if v.Environment != "testnet" {
		t.Fatalf("default environment: %q", v.Environment)
	}

	ok, err := v.VerifyPolicy(context.Background(), HashContent([]byte("doc")))
	if err != nil {
		t.Fatalf("VerifyPolicy: %v", err)
	}
	if !ok {
		t.Fatalf("stub must verify by default")
	}

	v.Verified = false
	ok, err = v.VerifyPolicy(context.Background(), "any-hash")
	if err != nil || ok {
		t.Fatalf("configured outcome not honored: ok=%v err=%v", ok, err)
	}
}
