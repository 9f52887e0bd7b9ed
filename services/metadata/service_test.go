package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"trailerfinder/models"
)

const viaplayPageJSON = `{
  "_embedded": {
    "viaplay:blocks": [
      {
        "_embedded": {
          "viaplay:product": {
            "content": {
              "imdb": { "id": "tt1234567", "rating": "7.9" }
            }
          }
        }
      },
      { "_embedded": "unrelated block shape" }
    ]
  }
}`

func newTestService(t *testing.T, tmdbHandler http.HandlerFunc) (*Service, *httptest.Server) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/pc-se/film/arrival-2016", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(viaplayPageJSON))
	})
	mux.HandleFunc("/pc-se/film/no-imdb", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"_embedded":{"viaplay:blocks":[{"_embedded":{"viaplay:product":{"content":{}}}}]}}`))
	})
	mux.HandleFunc("/pc-se/film/empty-id", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"_embedded":{"viaplay:blocks":[{"_embedded":{"viaplay:product":{"content":{"imdb":{"id":""}}}}}]}}`))
	})
	mux.HandleFunc("/pc-se/film/no-blocks", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"_embedded":{"viaplay:blocks":[]}}`))
	})
	mux.HandleFunc("/pc-se/film/html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html><html><body>Arrival</body></html>`))
	})
	mux.HandleFunc("/pc-se/film/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	if tmdbHandler != nil {
		mux.HandleFunc("/3/movie/", tmdbHandler)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	svc := NewService(Config{
		TMDBAPIKey:  "your-tmdb-api-key",
		TMDBBaseURL: srv.URL + "/3",
		Language:    "en-US",
	}, srv.Client())
	return svc, srv
}

func TestResolveIMDbID(t *testing.T) {
	svc, srv := newTestService(t, nil)
	ctx := context.Background()

	if got := svc.ResolveIMDbID(ctx, srv.URL+"/pc-se/film/arrival-2016"); got != "tt1234567" {
		t.Fatalf("expected tt1234567, got %q", got)
	}

	absent := map[string]string{
		"404":          srv.URL + "/pc-se/film/missing",
		"path missing": srv.URL + "/pc-se/film/no-imdb",
		"empty id":     srv.URL + "/pc-se/film/empty-id",
		"no blocks":    srv.URL + "/pc-se/film/no-blocks",
		"html body":    srv.URL + "/pc-se/film/html",
		"not a url":    "://nope",
		"relative url": "/pc-se/film/arrival-2016",
		"unreachable":  "http://127.0.0.1:1/film",
		"ftp scheme":   "ftp://content.viaplay.se/film",
		"blank":        "   ",
	}
	for name, pageURL := range absent {
		if got := svc.ResolveIMDbID(ctx, pageURL); got != "" {
			t.Fatalf("%s: expected no id, got %q", name, got)
		}
	}
}

func TestResolveTrailerFindsYouTubeTrailer(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/3/movie/tt1234567/videos" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("api_key") != "your-tmdb-api-key" || r.URL.Query().Get("language") != "en-US" {
			http.Error(w, "bad query", http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"results":[
			{"id":"1","key":"teaserKey","name":"Teaser","site":"YouTube","type":"Teaser"},
			{"id":"2","key":"vimeoKey","name":"Trailer","site":"Vimeo","type":"Trailer"},
			{"id":"12345","key":"trailerKey","name":"Movie Trailer","site":"YouTube","type":"Trailer"},
			{"id":"3","key":"laterKey","name":"Final Trailer","site":"YouTube","type":"Trailer"}
		]}`))
	})

	got := svc.ResolveTrailer(context.Background(), "tt1234567")
	if got != "https://www.youtube.com/watch?v=trailerKey" {
		t.Fatalf("unexpected trailer url: %q", got)
	}
}

func TestResolveTrailerAbsent(t *testing.T) {
	tests := map[string]http.HandlerFunc{
		"no match": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results":[{}]}`))
		},
		"empty list": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results":[]}`))
		},
		"missing results": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status_code":34}`))
		},
		"upstream error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"malformed body": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results":`))
		},
	}
	for name, handler := range tests {
		t.Run(name, func(t *testing.T) {
			svc, _ := newTestService(t, handler)
			if got := svc.ResolveTrailer(context.Background(), "tt1234567"); got != "" {
				t.Fatalf("expected no trailer, got %q", got)
			}
		})
	}
}

func TestResolveTrailerBlankID(t *testing.T) {
	called := false
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	if got := svc.ResolveTrailer(context.Background(), " "); got != "" {
		t.Fatalf("expected no trailer, got %q", got)
	}
	if called {
		t.Fatal("tmdb should not be queried for a blank id")
	}
}

func TestSelectYouTubeTrailer(t *testing.T) {
	videos := []models.Video{
		{Key: "a", Site: "youtube", Type: "Trailer"},
		{Key: "", Site: "YouTube", Type: "Trailer"},
		{Key: "b", Site: "YouTube", Type: "Trailer"},
	}
	got := selectYouTubeTrailer(videos)
	if got == nil || got.Key != "b" {
		t.Fatalf("expected key b, got %+v", got)
	}
	if selectYouTubeTrailer(nil) != nil {
		t.Fatal("expected nil for empty list")
	}
}

func TestYouTubeWatchURL(t *testing.T) {
	if got := youtubeWatchURL("trailerKey"); got != "https://www.youtube.com/watch?v=trailerKey" {
		t.Fatalf("unexpected url: %s", got)
	}
	if got := youtubeWatchURL("a&b"); got != "https://www.youtube.com/watch?v=a%26b" {
		t.Fatalf("expected key to be escaped, got %s", got)
	}
}
