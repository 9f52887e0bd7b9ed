package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/sourcegraph/conc"
	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"

	"trailerfinder/api"
	"trailerfinder/config"
	"trailerfinder/handlers"
	"trailerfinder/services/metadata"
	"trailerfinder/utils"
)

func main() {
	cfg, err := config.Load(afero.NewOsFs(), "")
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	setupLogging(cfg.Log)

	if cfg.TMDB.APIKey == "" {
		log.Printf("[main] WARNING: TMDB_API_KEY is not set, trailer lookups will return no results")
	}

	metadataSvc := metadata.NewService(metadata.Config{
		TMDBAPIKey:  cfg.TMDB.APIKey,
		TMDBBaseURL: cfg.TMDB.BaseURL,
		Language:    cfg.TMDB.Language,
		UserAgent:   cfg.HTTP.UserAgent,
	}, &http.Client{Timeout: cfg.HTTP.Timeout})

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: newRouter(cfg, handlers.NewMoviesHandler(metadataSvc)),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg conc.WaitGroup
	wg.Go(func() {
		log.Printf("[main] server running on http://%s/", displayAddr(srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[main] server error: %v", err)
			stop()
		}
	})
	wg.Go(func() {
		<-ctx.Done()
		log.Printf("[main] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[main] graceful shutdown failed: %v", err)
		}
	})
	wg.Wait()
}

func newRouter(cfg *config.Settings, movies *handlers.MoviesHandler) *mux.Router {
	r := utils.NewRouter(utils.NewOriginPolicy(cfg.CORS.AllowedOrigins))
	r.Use(api.RecoverMiddleware(), api.RequestIDMiddleware(), api.AccessLogMiddleware())
	handlers.RegisterMovieRoutes(r, movies)
	return r
}

func setupLogging(cfg config.LogSettings) {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if cfg.File == "" {
		return
	}
	log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}))
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
