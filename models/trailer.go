package models

// Video is a single entry of the TMDB /movie/{id}/videos results list.
type Video struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// VideoList wraps the TMDB videos response.
type VideoList struct {
	Results []Video `json:"results"`
}

// TrailerResponse is the body of GET /v1/movies/trailer.
// TrailerURL is omitted when no trailer was found.
type TrailerResponse struct {
	Success    bool   `json:"success"`
	TrailerURL string `json:"trailerUrl,omitempty"`
	Error      string `json:"error,omitempty"`
}
