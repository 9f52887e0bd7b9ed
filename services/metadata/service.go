package metadata

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"
)

const youtubeWatchBaseURL = "https://www.youtube.com/watch"

// Config holds the settings NewService needs.
type Config struct {
	TMDBAPIKey  string
	TMDBBaseURL string
	Language    string
	UserAgent   string
}

// Service resolves a streaming-service page to a YouTube trailer in two
// sequential lookups. Lookup failures are logged and reported as "".
type Service struct {
	pages *pageClient
	tmdb  *tmdbClient
}

func NewService(cfg Config, httpc *http.Client) *Service {
	return &Service{
		pages: newPageClient(cfg.UserAgent, httpc),
		tmdb:  newTMDBClient(cfg.TMDBAPIKey, cfg.TMDBBaseURL, cfg.Language, cfg.UserAgent, httpc),
	}
}

// ResolveIMDbID returns the IMDb id embedded in the page at pageURL, or "" when
// the page cannot be fetched, is not JSON, or lacks the id.
func (s *Service) ResolveIMDbID(ctx context.Context, pageURL string) string {
	id, err := s.pages.fetchIMDbID(ctx, pageURL)
	if err != nil {
		log.Printf("[metadata] imdb id lookup failed url=%q err=%v", pageURL, err)
		return ""
	}
	log.Printf("[metadata] resolved imdbId=%s url=%q", id, pageURL)
	return id
}

// ResolveTrailer returns the YouTube watch URL of the first TMDB trailer for
// imdbID, or "" when none exists or TMDB could not be queried.
func (s *Service) ResolveTrailer(ctx context.Context, imdbID string) string {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return ""
	}

	videos, err := s.tmdb.fetchVideos(ctx, imdbID)
	if err != nil {
		log.Printf("[metadata] WARN: tmdb videos fetch failed imdbId=%s err=%v", imdbID, err)
		return ""
	}

	trailer := selectYouTubeTrailer(videos)
	if trailer == nil {
		log.Printf("[metadata] no youtube trailer imdbId=%s candidates=%d", imdbID, len(videos))
		return ""
	}
	return youtubeWatchURL(trailer.Key)
}

func youtubeWatchURL(key string) string {
	return youtubeWatchBaseURL + "?" + url.Values{"v": {key}}.Encode()
}
