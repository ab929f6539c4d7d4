package handler

import (
	"net/http"

	"github.com/adoptme/adoptme-go/internal/crypto"
	"github.com/adoptme/adoptme-go/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// NewRouter assembles the API routes. The credential endpoints are rate
// limited; /sessions/current and the entity routes sit behind the auth
// middleware; the unprotected session pair deliberately bypasses it.
func NewRouter(sessions *SessionHandler, users *UserHandler, pets *PetHandler, adoptions *AdoptionHandler, tokens *crypto.TokenIssuer) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(5, 10))
			r.Post("/sessions/register", sessions.HandleRegister)
			r.Post("/sessions/login", sessions.HandleLogin)
			r.Post("/sessions/unprotected-login", sessions.HandleUnprotectedLogin)
		})

		r.Get("/sessions/unprotected-current", sessions.HandleUnprotectedCurrent)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokens))
			r.Get("/sessions/current", sessions.HandleCurrent)

			r.Get("/users", users.HandleList)
			r.Get("/users/{uid}", users.HandleGet)
			r.Put("/users/{uid}", users.HandleUpdate)
			r.Delete("/users/{uid}", users.HandleDelete)

			r.Get("/pets", pets.HandleList)
			r.Post("/pets", pets.HandleCreate)
			r.Put("/pets/{pid}", pets.HandleUpdate)
			r.Delete("/pets/{pid}", pets.HandleDelete)

			r.Get("/adoptions", adoptions.HandleList)
			r.Get("/adoptions/{aid}", adoptions.HandleGet)
			r.Post("/adoptions/{uid}/{pid}", adoptions.HandleCreate)
		})
	})

	return r
}
