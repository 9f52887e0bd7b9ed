package metadata

import (
	"strings"

	"trailerfinder/models"
)

const (
	trailerType = "Trailer"
	youtubeSite = "YouTube"
)

// selectYouTubeTrailer returns the first video TMDB labels as a YouTube trailer.
// Entries without a key cannot be turned into a watch URL and are skipped.
func selectYouTubeTrailer(videos []models.Video) *models.Video {
	for i := range videos {
		v := &videos[i]
		if v.Type != trailerType || v.Site != youtubeSite {
			continue
		}
		if strings.TrimSpace(v.Key) == "" {
			continue
		}
		return v
	}
	return nil
}
