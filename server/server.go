package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lostconnect/backend/config"
	"github.com/lostconnect/backend/db"
	"github.com/lostconnect/backend/mailingservices"
	"github.com/lostconnect/backend/services"
)

// Server wires the transport layer to the services and repositories.
type Server struct {
	Config             *config.Config
	Mail               *mailingservices.Mailgun
	DB                 db.GormDB
	AuthRepository     db.AuthRepository
	AuthService        services.AuthService
	PostRepository     db.PostRepository
	PostService        services.PostService
	CommentRepository  db.CommentRepository
	CommentService     services.CommentService
	ReactionRepository db.ReactionRepository
	ReactionService    services.ReactionService
	CategoryRepository db.CategoryRepository
	CategoryService    services.CategoryService
	MediaService       services.MediaService
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests for up to ten seconds.
func (s *Server) Start() {
	router := s.setupRouter()

	port := s.Config.Port
	if port == 0 {
		port = 8080
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	go func() {
		log.Printf("listening on :%d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("server exited")
}
