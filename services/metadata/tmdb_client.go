package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"

	"trailerfinder/models"
)

const defaultLanguage = "en-US"

// Minimal TMDB v3 client (movie videos endpoint only)

type tmdbClient struct {
	apiKey    string
	language  string
	baseURL   string
	userAgent string
	httpc     *http.Client
}

func newTMDBClient(apiKey, baseURL, lang, userAgent string, httpc *http.Client) *tmdbClient {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &tmdbClient{
		apiKey:    strings.TrimSpace(apiKey),
		language:  normalizeLanguage(lang),
		baseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		userAgent: userAgent,
		httpc:     httpc,
	}
}

func (c *tmdbClient) isConfigured() bool {
	return c != nil && c.apiKey != "" && c.baseURL != ""
}

// fetchVideos returns the videos TMDB lists for a movie. TMDB accepts an IMDb id
// in place of its own numeric id on this endpoint.
func (c *tmdbClient) fetchVideos(ctx context.Context, imdbID string) ([]models.Video, error) {
	if !c.isConfigured() {
		return nil, fmt.Errorf("tmdb client not configured")
	}

	endpoint := fmt.Sprintf("%s/movie/%s/videos", c.baseURL, url.PathEscape(imdbID))
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build tmdb request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	log.Printf("[tmdb] GET %s language=%s", endpoint, c.language)
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tmdb videos request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tmdb videos request failed: %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	var payload models.VideoList
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode tmdb videos: %w", err)
	}
	return payload.Results, nil
}

// normalizeLanguage turns a user supplied locale into the language-REGION form TMDB
// expects. Bare languages get their most likely region.
func normalizeLanguage(lang string) string {
	lang = strings.TrimSpace(strings.ReplaceAll(lang, "_", "-"))
	if lang == "" {
		return defaultLanguage
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return defaultLanguage
	}
	base, conf := tag.Base()
	if conf == language.No || base.String() == "und" {
		return defaultLanguage
	}
	region, conf := tag.Region()
	if conf == language.No {
		return base.String()
	}
	return base.String() + "-" + region.String()
}
