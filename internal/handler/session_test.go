package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adoptme/adoptme-go/internal/crypto"
	"github.com/adoptme/adoptme-go/internal/repository"
	"github.com/adoptme/adoptme-go/internal/service"
)

type testEnv struct {
	router http.Handler
	tokens *crypto.TokenIssuer
}

func newTestEnv(t *testing.T, legacyClaims bool) *testEnv {
	t.Helper()

	users := repository.NewUserRepository(repository.NewMemoryUserAdapter(), time.Second)
	pets := repository.NewPetRepository(repository.NewMemoryPetAdapter(), time.Second)
	adoptions := repository.NewAdoptionRepository(repository.NewMemoryAdoptionAdapter(), time.Second)

	tokens := crypto.NewTokenIssuer(crypto.TokenConfig{Secret: "test-secret", TTL: time.Hour})
	sessions := service.NewSessionService(users, crypto.NewHasher(crypto.HashParams{}), time.Second)

	router := NewRouter(
		NewSessionHandler(sessions,
			service.NewProtectedIssuer(tokens, false),
			service.NewUnprotectedIssuer(tokens, legacyClaims),
			tokens),
		NewUserHandler(users),
		NewPetHandler(pets),
		NewAdoptionHandler(adoptions, users, pets),
		tokens,
	)

	return &testEnv{router: router, tokens: tokens}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "127.0.0.1:12345"
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRegister_Success(t *testing.T) {
	env := newTestEnv(t, false)

	rec := env.do(t, http.MethodPost, "/api/sessions/register", map[string]string{
		"first_name": "Ana",
		"last_name":  "Lopez",
		"email":      "a@x.com",
		"password":   "pw1",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	body := decodeResponse(t, rec)
	if body["status"] != "success" {
		t.Errorf("status field = %v, want success", body["status"])
	}
	if body["token"] == nil || body["token"] == "" {
		t.Error("response missing token")
	}

	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("response user = %v, want object", body["user"])
	}
	if user["role"] != "user" {
		t.Errorf("user role = %v, want user", user["role"])
	}
	if _, leaked := user["password"]; leaked {
		t.Error("register response contains the password hash")
	}

	cookie := cookieByName(rec, service.ProtectedCookieName)
	if cookie == nil {
		t.Fatal("protected cookie not set")
	}
	if !cookie.HttpOnly {
		t.Error("protected cookie must be HttpOnly")
	}
}

func TestRegister_MissingFields(t *testing.T) {
	env := newTestEnv(t, false)

	rec := env.do(t, http.MethodPost, "/api/sessions/register", map[string]string{
		"email": "a@x.com",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	env := newTestEnv(t, false)
	payload := map[string]string{
		"first_name": "Ana", "last_name": "Lopez",
		"email": "a@x.com", "password": "pw1",
	}

	if rec := env.do(t, http.MethodPost, "/api/sessions/register", payload); rec.Code != http.StatusCreated {
		t.Fatalf("first register status = %d, want 201", rec.Code)
	}

	rec := env.do(t, http.MethodPost, "/api/sessions/register", payload)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate register status = %d, want 400", rec.Code)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	env := newTestEnv(t, false)

	rec := env.do(t, http.MethodPost, "/api/sessions/login", map[string]string{
		"email": "ghost@x.com", "password": "pw1",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSessionScenario(t *testing.T) {
	env := newTestEnv(t, false)

	// register → 201 with cookie
	rec := env.do(t, http.MethodPost, "/api/sessions/register", map[string]string{
		"first_name": "Ana", "last_name": "Lopez",
		"email": "a@x.com", "password": "pw1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", rec.Code)
	}
	registeredID := decodeResponse(t, rec)["user"].(map[string]any)["id"].(string)
	if cookieByName(rec, service.ProtectedCookieName) == nil {
		t.Fatal("register did not set the protected cookie")
	}

	// wrong password → 401
	rec = env.do(t, http.MethodPost, "/api/sessions/login", map[string]string{
		"email": "a@x.com", "password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want 401", rec.Code)
	}

	// correct password → 200 with a fresh token
	rec = env.do(t, http.MethodPost, "/api/sessions/login", map[string]string{
		"email": "a@x.com", "password": "pw1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	cookie := cookieByName(rec, service.ProtectedCookieName)
	if cookie == nil {
		t.Fatal("login did not set the protected cookie")
	}

	// current with that cookie → 200, same user id
	rec = env.do(t, http.MethodGet, "/api/sessions/current", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("current status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	current := decodeResponse(t, rec)["user"].(map[string]any)
	if current["id"] != registeredID {
		t.Errorf("current id = %v, want %v", current["id"], registeredID)
	}
	if current["email"] != "a@x.com" {
		t.Errorf("current email = %v, want a@x.com", current["email"])
	}
}

func TestCurrent_WithoutToken(t *testing.T) {
	env := newTestEnv(t, false)

	rec := env.do(t, http.MethodGet, "/api/sessions/current", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestCurrent_BearerFallback(t *testing.T) {
	env := newTestEnv(t, false)

	rec := env.do(t, http.MethodPost, "/api/sessions/register", map[string]string{
		"first_name": "Ana", "last_name": "Lopez",
		"email": "a@x.com", "password": "pw1",
	})
	token := decodeResponse(t, rec)["token"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/current", nil)
	req.RemoteAddr = "127.0.0.1:12345"
	req.Header.Set("Authorization", "Bearer "+token)
	out := httptest.NewRecorder()
	env.router.ServeHTTP(out, req)

	if out.Code != http.StatusOK {
		t.Errorf("status = %d, want 200: %s", out.Code, out.Body.String())
	}
}

func TestUnprotectedSession_Hardened(t *testing.T) {
	env := newTestEnv(t, false)

	env.do(t, http.MethodPost, "/api/sessions/register", map[string]string{
		"first_name": "Ana", "last_name": "Lopez",
		"email": "a@x.com", "password": "pw1",
	})

	rec := env.do(t, http.MethodPost, "/api/sessions/unprotected-login", map[string]string{
		"email": "a@x.com", "password": "pw1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("unprotected login status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := decodeResponse(t, rec)
	if body["message"] == nil {
		t.Error("unprotected login response missing message")
	}

	cookie := cookieByName(rec, service.UnprotectedCookieName)
	if cookie == nil {
		t.Fatal("unprotected cookie not set")
	}
	if cookie.HttpOnly || cookie.Secure {
		t.Error("unprotected cookie must carry neither HttpOnly nor Secure")
	}

	rec = env.do(t, http.MethodGet, "/api/sessions/unprotected-current", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("unprotected current status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	claims := decodeResponse(t, rec)["user"].(map[string]any)
	if claims["email"] != "a@x.com" {
		t.Errorf("claims email = %v, want a@x.com", claims["email"])
	}
	if _, leaked := claims["password"]; leaked {
		t.Error("hardened unprotected claims contain the password hash")
	}
}

func TestUnprotectedSession_LegacyLeak(t *testing.T) {
	env := newTestEnv(t, true)

	env.do(t, http.MethodPost, "/api/sessions/register", map[string]string{
		"first_name": "Ana", "last_name": "Lopez",
		"email": "a@x.com", "password": "pw1",
	})

	rec := env.do(t, http.MethodPost, "/api/sessions/unprotected-login", map[string]string{
		"email": "a@x.com", "password": "pw1",
	})
	cookie := cookieByName(rec, service.UnprotectedCookieName)
	if cookie == nil {
		t.Fatal("unprotected cookie not set")
	}

	rec = env.do(t, http.MethodGet, "/api/sessions/unprotected-current", nil, cookie)
	claims := decodeResponse(t, rec)["user"].(map[string]any)

	// Documented legacy leak: the full stored record, hash included.
	if _, present := claims["password"]; !present {
		t.Error("legacy unprotected claims must round-trip the password hash")
	}
}

func TestUnprotectedCurrent_WithoutCookie(t *testing.T) {
	env := newTestEnv(t, false)

	rec := env.do(t, http.MethodGet, "/api/sessions/unprotected-current", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestUnprotectedCurrent_ExpiredToken(t *testing.T) {
	env := newTestEnv(t, false)

	expired := crypto.NewTokenIssuer(crypto.TokenConfig{Secret: "test-secret", TTL: -time.Minute})
	token, err := expired.IssueMap(map[string]any{"id": "u-1"})
	if err != nil {
		t.Fatalf("IssueMap() unexpected error: %v", err)
	}

	rec := env.do(t, http.MethodGet, "/api/sessions/unprotected-current", nil,
		&http.Cookie{Name: service.UnprotectedCookieName, Value: token})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
