package password_test

import (
	"testing"

	"github.com/skillsenselab/identity/auth/password"
)

func TestBcrypt_VerifyMatch(t *testing.T) {
	h := password.NewBcryptHasher(4) // minimum cost keeps the test fast

	hash, err := h.Hash("correct-horse-battery")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	ok, err := h.Verify("correct-horse-battery", hash)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Error("expected match")
	}
}

func TestBcrypt_VerifyMismatchIsNotAnError(t *testing.T) {
	h := password.NewBcryptHasher(4)

	hash, err := h.Hash("correct-horse-battery")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	ok, err := h.Verify("wrong-password", hash)
	if err != nil {
		t.Fatalf("mismatch must not be an error, got: %v", err)
	}
	if ok {
		t.Error("expected mismatch")
	}
}

func TestBcrypt_MalformedHashIsAnError(t *testing.T) {
	h := password.NewBcryptHasher(4)

	if _, err := h.Verify("anything", "not-a-bcrypt-hash"); err == nil {
		t.Error("expected error for corrupt stored hash")
	}
}

func TestBcrypt_DifferentSaltsBothVerify(t *testing.T) {
	h := password.NewBcryptHasher(4)

	h1, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 == h2 {
		t.Error("expected different salts to produce different hashes")
	}
	for _, hash := range []string{h1, h2} {
		ok, err := h.Verify("same-password", hash)
		if err != nil || !ok {
			t.Errorf("expected both hashes to verify, got ok=%v err=%v", ok, err)
		}
	}
}

func TestBcrypt_RejectsOverlongPassword(t *testing.T) {
	h := password.NewBcryptHasher(4)
	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := h.Hash(string(long)); err == nil {
		t.Error("expected error for password beyond bcrypt limit")
	}
}

func TestArgon2_Roundtrip(t *testing.T) {
	h := password.NewArgon2Hasher()

	hash, err := h.Hash("correct-horse-battery")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	ok, err := h.Verify("correct-horse-battery", hash)
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}

	ok, err = h.Verify("wrong", hash)
	if err != nil {
		t.Fatalf("mismatch must not be an error, got: %v", err)
	}
	if ok {
		t.Error("expected mismatch")
	}

	if _, err := h.Verify("anything", "$argon2id$broken"); err == nil {
		t.Error("expected error for corrupt stored hash")
	}
}

func TestNewHasher_ConfigSelection(t *testing.T) {
	if _, ok := password.NewHasher(password.Config{}).(*password.BcryptHasher); !ok {
		t.Error("default algorithm should be bcrypt")
	}
	if _, ok := password.NewHasher(password.Config{Algorithm: password.AlgorithmArgon2id}).(*password.Argon2Hasher); !ok {
		t.Error("argon2id selection should return Argon2Hasher")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := password.Config{Algorithm: "scrypt"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unsupported algorithm")
	}

	cfg = password.Config{Algorithm: password.AlgorithmBcrypt, BcryptCost: 99}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for out-of-range cost")
	}
}
