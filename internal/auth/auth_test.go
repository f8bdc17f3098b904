package auth

import (
	"strings"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	cases := map[string]string{
		"  User@Example.COM ": "user@example.com",
		"a@b.c":               "a@b.c",
		"":                    "",
	}
	for in, want := range cases {
		if got := normalizeEmail(in); got != want {
			t.Errorf("normalizeEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok := generateToken()
		if len(tok) != 64 {
			t.Fatalf("token length %d, want 64 hex chars", len(tok))
		}
		if seen[tok] {
			t.Fatalf("duplicate token generated: %s", tok)
		}
		seen[tok] = true
	}
}

func TestSignInBody(t *testing.T) {
	subject, html := signInBody("https://prep.example.com", "abc123")
	if subject == "" {
		t.Error("subject should not be empty")
	}
	if !strings.Contains(html, "abc123") {
		t.Error("body should contain the sign-in code")
	}
	if !strings.Contains(html, "https://prep.example.com") {
		t.Error("body should contain the base URL")
	}
}
