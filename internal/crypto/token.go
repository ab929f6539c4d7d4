package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// UserClaims is the minimal identity projection embedded in a protected
// session token. It never carries the credential hash.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// TokenConfig holds the signing key and expiry policy for a TokenIssuer.
// It is supplied at construction; the issuer never reads the environment.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// TokenIssuer creates and verifies self-contained HS256-signed tokens.
// Expiry is embedded in the token, so verification needs no external state.
type TokenIssuer struct {
	cfg TokenConfig
}

// NewTokenIssuer creates a TokenIssuer from the given config.
func NewTokenIssuer(cfg TokenConfig) *TokenIssuer {
	if cfg.Issuer == "" {
		cfg.Issuer = "adoptme"
	}
	return &TokenIssuer{cfg: cfg}
}

// TTL returns the configured token lifetime.
func (t *TokenIssuer) TTL() time.Duration {
	return t.cfg.TTL
}

// Issue signs the given claims, stamping issuer, issued-at and expiry.
func (t *TokenIssuer) Issue(claims UserClaims) (string, error) {
	now := time.Now()
	claims.Issuer = t.cfg.Issuer
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(t.cfg.TTL))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(t.cfg.Secret))
}

// IssueMap signs an arbitrary claim map, stamping issuer, issued-at and
// expiry. Used by the unprotected session path, whose payload is not a fixed
// projection.
func (t *TokenIssuer) IssueMap(payload map[string]any) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{}
	for k, v := range payload {
		claims[k] = v
	}
	claims["iss"] = t.cfg.Issuer
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(t.cfg.TTL))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(t.cfg.Secret))
}

// Verify parses and validates a protected token, returning its claims.
// Fails with ErrTokenExpired or ErrTokenInvalid; performs no I/O.
func (t *TokenIssuer) Verify(tokenString string) (*UserClaims, error) {
	claims := &UserClaims{}
	if err := t.parse(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyMap parses and validates a token carrying arbitrary claims,
// returning the raw claim map.
func (t *TokenIssuer) VerifyMap(tokenString string) (map[string]any, error) {
	claims := jwt.MapClaims{}
	if err := t.parse(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (t *TokenIssuer) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(t.cfg.Secret), nil
	}, jwt.WithIssuer(t.cfg.Issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}
	if !token.Valid {
		return ErrTokenInvalid
	}
	return nil
}
