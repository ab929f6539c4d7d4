package service

import (
	"testing"
	"time"

	"github.com/adoptme/adoptme-go/internal/crypto"
	"github.com/adoptme/adoptme-go/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:        "u-1",
		FirstName: "Ana",
		LastName:  "Lopez",
		Email:     "a@x.com",
		Password:  "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		Role:      model.RoleUser,
	}
}

func testTokens() *crypto.TokenIssuer {
	return crypto.NewTokenIssuer(crypto.TokenConfig{Secret: "test-secret", TTL: time.Hour})
}

func TestProtectedIssuer_MinimalClaims(t *testing.T) {
	tokens := testTokens()
	issuer := NewProtectedIssuer(tokens, false)

	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify() unexpected error: %v", err)
	}
	if claims.UserID != "u-1" || claims.Email != "a@x.com" || claims.Role != model.RoleUser {
		t.Errorf("claims = %+v, want id/email/role projection", claims)
	}

	// The projection must not smuggle the credential hash.
	raw, err := tokens.VerifyMap(token)
	if err != nil {
		t.Fatalf("VerifyMap() unexpected error: %v", err)
	}
	if _, ok := raw["password"]; ok {
		t.Error("protected token payload contains the password hash")
	}
}

func TestProtectedIssuer_CookieFlags(t *testing.T) {
	issuer := NewProtectedIssuer(testTokens(), false)
	cookie := issuer.Cookie("tok")

	if cookie.Name != ProtectedCookieName {
		t.Errorf("cookie name = %q, want %q", cookie.Name, ProtectedCookieName)
	}
	if !cookie.HttpOnly {
		t.Error("protected cookie must be HttpOnly")
	}
	if cookie.Secure {
		t.Error("protected cookie must not be Secure outside production")
	}
	if cookie.MaxAge != 3600 {
		t.Errorf("cookie max-age = %d, want 3600", cookie.MaxAge)
	}
}

func TestProtectedIssuer_SecureCookieInProduction(t *testing.T) {
	issuer := NewProtectedIssuer(testTokens(), true)

	if !issuer.Cookie("tok").Secure {
		t.Error("protected cookie must be Secure in production")
	}
}

func TestUnprotectedIssuer_LegacyClaimsIncludeHash(t *testing.T) {
	tokens := testTokens()
	issuer := NewUnprotectedIssuer(tokens, true)

	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	claims, err := tokens.VerifyMap(token)
	if err != nil {
		t.Fatalf("VerifyMap() unexpected error: %v", err)
	}

	// Known leak: legacy mode round-trips the stored record verbatim,
	// credential hash included.
	if claims["password"] != testUser().Password {
		t.Errorf("legacy claims password = %v, want stored hash present", claims["password"])
	}
	if claims["email"] != "a@x.com" {
		t.Errorf("legacy claims email = %v, want %q", claims["email"], "a@x.com")
	}
}

func TestUnprotectedIssuer_HardenedClaimsOmitHash(t *testing.T) {
	tokens := testTokens()
	issuer := NewUnprotectedIssuer(tokens, false)

	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	claims, err := tokens.VerifyMap(token)
	if err != nil {
		t.Fatalf("VerifyMap() unexpected error: %v", err)
	}
	if _, ok := claims["password"]; ok {
		t.Error("hardened unprotected claims still contain the password hash")
	}
	if claims["first_name"] != "Ana" {
		t.Errorf("hardened claims first_name = %v, want %q", claims["first_name"], "Ana")
	}
}

func TestUnprotectedIssuer_CookieFlags(t *testing.T) {
	issuer := NewUnprotectedIssuer(testTokens(), false)
	cookie := issuer.Cookie("tok")

	if cookie.Name != UnprotectedCookieName {
		t.Errorf("cookie name = %q, want %q", cookie.Name, UnprotectedCookieName)
	}
	if cookie.HttpOnly || cookie.Secure {
		t.Error("unprotected cookie must carry neither HttpOnly nor Secure")
	}
}
