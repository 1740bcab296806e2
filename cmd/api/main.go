package main

import (
	"log"
	"net/http"
	"time"

	"libraryapi/internal/catalog"
	"libraryapi/internal/config"
	"libraryapi/internal/httpx"
)

const maxRequestBytes = 1 << 20 // 1 MiB

func main() {
	config.LoadEnvFiles()
	cfg := config.Load()

	store, err := catalog.NewFileStore(cfg.DataFile)
	if err != nil {
		log.Fatalf("cannot open catalog store: %v", err)
	}
	repo, err := catalog.NewRepository(store, cfg.Autosave)
	if err != nil {
		log.Fatalf("cannot load catalog (%s): %v", cfg.DataFile, err)
	}

	svc := catalog.NewService(repo)
	handler := catalog.NewHTTPHandler(svc)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.HandleFunc("POST /books", handler.Create)
	router.HandleFunc("GET /books", handler.List)
	router.HandleFunc("GET /books/{isbn}", handler.GetByISBN)
	router.HandleFunc("DELETE /books/{isbn}", handler.Delete)
	router.HandleFunc("POST /books/{isbn}/borrow", handler.Borrow)
	router.HandleFunc("POST /books/{isbn}/return", handler.Return)
	router.HandleFunc("GET /summary", handler.Summary)
	router.HandleFunc("GET /export", handler.Export)
	router.HandleFunc("POST /import", handler.Import)
	router.HandleFunc("DELETE /catalog", handler.Reset)

	rateLimit := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)

	var root http.Handler = router
	root = rateLimit.Middleware(root)
	root = httpx.RequestSizeLimitMiddleware(maxRequestBytes)(root)
	root = httpx.SecurityHeadersMiddleware(cfg.EnableHSTS)(root)
	root = httpx.CORSMiddleware(cfg.AllowedOrigins)(root)
	root = httpx.RecoveryMiddleware(root)
	root = httpx.AccessLogMiddleware(root)
	root = httpx.RequestIDMiddleware(root)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      root,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on %s (catalog: %s)", cfg.Addr, cfg.DataFile)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
