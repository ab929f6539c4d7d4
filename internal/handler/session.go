package handler

import (
	"errors"
	"net/http"

	"github.com/adoptme/adoptme-go/internal/crypto"
	"github.com/adoptme/adoptme-go/internal/middleware"
	"github.com/adoptme/adoptme-go/internal/model"
	"github.com/adoptme/adoptme-go/internal/service"
)

// SessionHandler exposes the session endpoints. The protected and unprotected
// issuers are injected separately so each trust path stays independent.
type SessionHandler struct {
	sessions    *service.SessionService
	protected   service.SessionIssuer
	unprotected service.SessionIssuer
	tokens      *crypto.TokenIssuer
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(sessions *service.SessionService, protected, unprotected service.SessionIssuer, tokens *crypto.TokenIssuer) *SessionHandler {
	return &SessionHandler{
		sessions:    sessions,
		protected:   protected,
		unprotected: unprotected,
		tokens:      tokens,
	}
}

// HandleRegister handles POST /api/sessions/register requests.
func (h *SessionHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.sessions.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrUserExists):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	token, err := h.protected.Issue(user)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	http.SetCookie(w, h.protected.Cookie(token))
	writeJSON(w, http.StatusCreated, map[string]any{
		"status": "success",
		"token":  token,
		"user":   user.ToResponse(),
	})
}

// HandleLogin handles POST /api/sessions/login requests.
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.sessions.Login(r.Context(), req)
	if err != nil {
		h.writeLoginError(w, err)
		return
	}

	token, err := h.protected.Issue(user)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	http.SetCookie(w, h.protected.Cookie(token))
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"token":  token,
		"user":   user.ToResponse(),
	})
}

// HandleCurrent handles GET /api/sessions/current requests. The auth
// middleware has already verified the token; this is a pure pass-through of
// the attached claims.
func (h *SessionHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("not authorized"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"user": map[string]string{
			"id":    claims.UserID,
			"email": claims.Email,
			"role":  claims.Role,
		},
	})
}

// HandleUnprotectedLogin handles POST /api/sessions/unprotected-login
// requests. Credential checks match the protected path; the issued token and
// cookie follow the weaker unprotected profile.
func (h *SessionHandler) HandleUnprotectedLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.sessions.Login(r.Context(), req)
	if err != nil {
		h.writeLoginError(w, err)
		return
	}

	token, err := h.unprotected.Issue(user)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	http.SetCookie(w, h.unprotected.Cookie(token))
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"token":   token,
		"message": "unprotected login successful",
	})
}

// HandleUnprotectedCurrent handles GET /api/sessions/unprotected-current
// requests. Unlike HandleCurrent it bypasses the auth middleware and verifies
// the unprotected cookie itself, returning the raw token claims.
func (h *SessionHandler) HandleUnprotectedCurrent(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(service.UnprotectedCookieName)
	if err != nil || cookie.Value == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse("not authorized"))
		return
	}

	claims, err := h.tokens.VerifyMap(cookie.Value)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse("invalid or expired token"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"user":   claims,
	})
}

func (h *SessionHandler) writeLoginError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrCredentialsRequired):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}
