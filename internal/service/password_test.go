package service

import (
	"errors"
	"strings"
	"testing"

	"feature_voting/internal/apperror"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	for _, scheme := range []string{SchemeBcrypt, SchemeArgon2id} {
		t.Run(scheme, func(t *testing.T) {
			h := NewHasher(scheme, bcrypt.MinCost)

			hash, err := h.Hash("s3cr3t")
			if err != nil {
				t.Fatalf("Hash returned error: %v", err)
			}
			if hash == "s3cr3t" {
				t.Fatalf("expected hashed password not equal to raw password")
			}
			if !h.Verify("s3cr3t", hash) {
				t.Fatalf("hash does not verify with original password")
			}
			for _, wrong := range []string{"s3cr3T", "s3cr3t ", "", "x"} {
				if h.Verify(wrong, hash) {
					t.Fatalf("hash verified with wrong password %q", wrong)
				}
			}

			// salted: same input, different hash
			again, err := h.Hash("s3cr3t")
			if err != nil {
				t.Fatalf("Hash returned error: %v", err)
			}
			if again == hash {
				t.Fatalf("expected distinct salts")
			}
		})
	}
}

func TestHasher_SchemePrefixes(t *testing.T) {
	b, _ := NewHasher(SchemeBcrypt, bcrypt.MinCost).Hash("pw")
	if !strings.HasPrefix(b, "$2a$") {
		t.Fatalf("unexpected bcrypt encoding %q", b)
	}
	if cost, err := bcrypt.Cost([]byte(b)); err != nil || cost != bcrypt.MinCost {
		t.Fatalf("cost=%d err=%v", cost, err)
	}

	a, _ := NewHasher(SchemeArgon2id, 0).Hash("pw")
	if !strings.HasPrefix(a, "$argon2id$") {
		t.Fatalf("unexpected argon2 encoding %q", a)
	}
}

func TestHasher_VerifiesEitherScheme(t *testing.T) {
	bcryptHash, _ := NewHasher(SchemeBcrypt, bcrypt.MinCost).Hash("pw")
	argonHash, _ := NewHasher(SchemeArgon2id, 0).Hash("pw")

	for _, h := range []*Hasher{NewHasher(SchemeBcrypt, bcrypt.MinCost), NewHasher(SchemeArgon2id, 0)} {
		if !h.Verify("pw", bcryptHash) || !h.Verify("pw", argonHash) {
			t.Fatalf("%s hasher must verify both encodings", h.scheme)
		}
	}
	if NewHasher(SchemeBcrypt, 0).Verify("pw", "garbage") {
		t.Fatalf("garbage hash must not verify")
	}
}

func TestHasher_Defaults(t *testing.T) {
	h := NewHasher("unknown", 0)
	if h.scheme != SchemeBcrypt || h.bcryptCost != bcrypt.DefaultCost {
		t.Fatalf("unexpected defaults: %+v", h)
	}
}

func TestHasher_RejectsEmptyAndTooLong(t *testing.T) {
	h := NewHasher(SchemeBcrypt, bcrypt.MinCost)
	for _, pw := range []string{"", "   ", strings.Repeat("a", 73)} {
		if _, err := h.Hash(pw); !errors.Is(err, apperror.ErrInvalidInput) {
			t.Fatalf("Hash(%d bytes): expected invalid input, got %v", len(pw), err)
		}
	}
}
