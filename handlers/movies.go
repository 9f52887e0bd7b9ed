package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"trailerfinder/models"
	"trailerfinder/services/metadata"
)

const (
	errMissingURL     = "Missing required parameter: url"
	errIMDbIDNotFound = "Could not find imdb id for the given url"
	errInternal       = "Internal server error"
)

type trailerService interface {
	ResolveIMDbID(ctx context.Context, pageURL string) string
	ResolveTrailer(ctx context.Context, imdbID string) string
}

var _ trailerService = (*metadata.Service)(nil)

type MoviesHandler struct {
	Service trailerService
}

func NewMoviesHandler(s trailerService) *MoviesHandler {
	return &MoviesHandler{Service: s}
}

// RegisterMovieRoutes mounts the v1 movie endpoints on r.
func RegisterMovieRoutes(r *mux.Router, h *MoviesHandler) {
	v1 := r.PathPrefix("/v1/movies").Subrouter()
	v1.HandleFunc("/trailer", h.Trailer).Methods(http.MethodGet, http.MethodOptions)
}

// Trailer resolves the YouTube trailer for the streaming page given in ?url=.
//
// Example:
//
//	GET /v1/movies/trailer?url=https://content.viaplay.se/pc-se/film/arrival-2016
//
// A missing trailer still yields 200 with trailerUrl omitted. OPTIONS requests
// that are not CORS preflights end here with 204 and no lookup.
func (h *MoviesHandler) Trailer(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[movies] trailer lookup panic: %v", rec)
			writeTrailerResponse(w, http.StatusInternalServerError, models.TrailerResponse{Error: errInternal})
		}
	}()

	pageURL := strings.TrimSpace(r.URL.Query().Get("url"))
	if pageURL == "" {
		writeTrailerResponse(w, http.StatusBadRequest, models.TrailerResponse{Error: errMissingURL})
		return
	}

	imdbID := h.Service.ResolveIMDbID(r.Context(), pageURL)
	if imdbID == "" {
		writeTrailerResponse(w, http.StatusBadRequest, models.TrailerResponse{Error: errIMDbIDNotFound})
		return
	}

	trailerURL := h.Service.ResolveTrailer(r.Context(), imdbID)
	log.Printf("[movies] trailer lookup imdbId=%s found=%v", imdbID, trailerURL != "")
	writeTrailerResponse(w, http.StatusOK, models.TrailerResponse{Success: true, TrailerURL: trailerURL})
}

func writeTrailerResponse(w http.ResponseWriter, status int, body models.TrailerResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[movies] failed to encode response: %v", err)
	}
}
