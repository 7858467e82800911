package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"registration-backend/web"
)

type Deps struct {
	Store     RegistrationStore
	Ready     Pinger
	Publisher Publisher
}

func NewRouter(d Deps) http.Handler {
	h := NewRegistrationHandler(d.Store, d.Publisher)

	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors)

	r.Get("/", web.Handler().ServeHTTP)
	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(d.Ready))
	r.Post("/api/register", h.Register)

	return r
}
