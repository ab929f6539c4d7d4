package service

import (
	"encoding/json"
	"net/http"

	"github.com/adoptme/adoptme-go/internal/crypto"
	"github.com/adoptme/adoptme-go/internal/model"
)

// Cookie names for the two session delivery channels. The protected name is
// fixed API contract; the unprotected one is kept distinct so the paths never
// overwrite each other.
const (
	ProtectedCookieName   = "adoptmeCookie"
	UnprotectedCookieName = "unprotectedCookie"
)

// SessionIssuer mints a session token for an authenticated user and builds
// the cookie that delivers it. The protected and unprotected trust profiles
// are separate implementations, not branches, so either can change or be
// removed without touching the other.
type SessionIssuer interface {
	Issue(user *model.User) (string, error)
	Cookie(token string) *http.Cookie
}

// ProtectedIssuer embeds only the id/email/role projection in the token and
// delivers it in an HttpOnly cookie, Secure in production.
type ProtectedIssuer struct {
	tokens *crypto.TokenIssuer
	secure bool
}

func NewProtectedIssuer(tokens *crypto.TokenIssuer, secure bool) *ProtectedIssuer {
	return &ProtectedIssuer{tokens: tokens, secure: secure}
}

func (i *ProtectedIssuer) Issue(user *model.User) (string, error) {
	return i.tokens.Issue(crypto.UserClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
}

func (i *ProtectedIssuer) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     ProtectedCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(i.tokens.TTL().Seconds()),
		HttpOnly: true,
		Secure:   i.secure,
	}
}

// UnprotectedIssuer embeds the stored user record itself in the token and
// delivers it in a cookie with neither HttpOnly nor Secure set. By default
// the credential hash is stripped from the payload; legacy mode keeps it,
// reproducing the historical leak for clients that still depend on the old
// claim shape.
type UnprotectedIssuer struct {
	tokens *crypto.TokenIssuer
	legacy bool
}

func NewUnprotectedIssuer(tokens *crypto.TokenIssuer, legacyClaims bool) *UnprotectedIssuer {
	return &UnprotectedIssuer{tokens: tokens, legacy: legacyClaims}
}

func (i *UnprotectedIssuer) Issue(user *model.User) (string, error) {
	raw, err := json.Marshal(user)
	if err != nil {
		return "", err
	}

	payload := map[string]any{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", err
	}

	if !i.legacy {
		delete(payload, "password")
	}

	return i.tokens.IssueMap(payload)
}

func (i *UnprotectedIssuer) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:   UnprotectedCookieName,
		Value:  token,
		Path:   "/",
		MaxAge: int(i.tokens.TTL().Seconds()),
	}
}
