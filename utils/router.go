package utils

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter constructs the base mux router with CORS and the health route.
// Routes that browsers preflight must also accept OPTIONS so the CORS
// middleware runs for them.
func NewRouter(policy *OriginPolicy) *mux.Router {
	r := mux.NewRouter()

	c := cors.New(cors.Options{
		AllowOriginFunc:  policy.Allow,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	})
	r.Use(c.Handler)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet, http.MethodOptions)
	return r
}
