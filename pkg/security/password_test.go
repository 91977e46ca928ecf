package security

import (
	"strings"
	"testing"

	"github.com/angelmondragon/littlelemon-backend/pkg/config"
)

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{ArgonMemoryKB: 64, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("lemonade", testPasswordConfig())
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=64,t=1,p=1$") {
		t.Fatalf("unexpected hash format %q", hash)
	}

	ok, err := VerifyPassword("lemonade", hash)
	if err != nil || !ok {
		t.Fatalf("expected match, got %v %v", ok, err)
	}
	ok, err = VerifyPassword("lemonad", hash)
	if err != nil || ok {
		t.Fatalf("expected mismatch, got %v %v", ok, err)
	}
}

func TestHashesAreSalted(t *testing.T) {
	a, _ := HashPassword("same", testPasswordConfig())
	b, _ := HashPassword("same", testPasswordConfig())
	if a == b {
		t.Fatal("expected distinct salts")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword("", testPasswordConfig()); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerifyPasswordMalformed(t *testing.T) {
	for _, encoded := range []string{"", "plain", "$argon2i$v=19$m=64,t=1,p=1$c2FsdA$aGFzaA", "$argon2id$v=19$m=x,t=1,p=1$c2FsdA$aGFzaA", "$argon2id$v=19$m=64,t=1$c2FsdA$aGFzaA"} {
		if _, err := VerifyPassword("pw", encoded); err != ErrInvalidHash {
			t.Fatalf("expected ErrInvalidHash for %q, got %v", encoded, err)
		}
	}
}

func TestGeneratePassword(t *testing.T) {
	pw, err := GeneratePassword(20)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len([]rune(pw)) != 20 {
		t.Fatalf("expected 20 runes, got %d", len(pw))
	}
	if _, err := GeneratePassword(0); err == nil {
		t.Fatal("expected error for zero length")
	}
}
