package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sbelkacem/gosocial/internal/models"
)

var alice = models.Identity{UserID: 1, Username: "alice", Email: "a@x.com"}

func TestIssueAndVerify(t *testing.T) {
	svc := New([]byte("test-secret"), time.Hour)

	signed, err := svc.Issue(alice)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	got, err := svc.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got != alice {
		t.Errorf("identity mismatch: got %+v, want %+v", got, alice)
	}
}

func TestVerify_Expired(t *testing.T) {
	svc := New([]byte("test-secret"), -time.Second)

	signed, err := svc.Issue(alice)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = svc.Verify(signed)
	if err == nil {
		t.Fatal("expected error for expired token")
	}
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got: %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := New([]byte("right-secret"), time.Hour)
	verifier := New([]byte("wrong-secret"), time.Hour)

	signed, err := issuer.Issue(alice)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := verifier.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got: %v", err)
	}
}

func TestVerify_Tampered(t *testing.T) {
	svc := New([]byte("test-secret"), time.Hour)

	signed, err := svc.Issue(alice)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip a character in the payload segment.
	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", signed)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := svc.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for tampered token, got: %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	svc := New([]byte("test-secret"), time.Hour)

	for _, input := range []string{"", "not.a.jwt", "garbage"} {
		if _, err := svc.Verify(input); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q): expected ErrInvalidToken, got: %v", input, err)
		}
	}
}
