package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes registers the API routes on router.
func SetupRoutes(router chi.Router, h *Handlers) {
	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not found", Kind: KindNotFound})
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed", Kind: KindBadRequest})
	})

	router.Get("/healthz", h.Healthz)

	router.Route("/api", func(r chi.Router) {
		r.Get("/quantities", h.Quantities)
		r.Get("/quantities/{quantity}/units", h.Units)
		r.Get("/convert", h.Convert) // ?value=&from=&to=&quantity=
	})
}
