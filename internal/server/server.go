package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/classic-cipher-go/internal/config"
	"github.com/classic-cipher-go/internal/dao"
	"github.com/classic-cipher-go/internal/handler"
	"github.com/classic-cipher-go/internal/storage"
)

// Server represents the HTTP server
type Server struct {
	cfg        *config.Config
	store      *storage.Store
	engine     *gin.Engine
	httpServer *http.Server
	users      *dao.UserDAO
	profiles   dao.ProfileStore
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	store, err := storage.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	profiles, err := newProfileStore(cfg, store)
	if err != nil {
		store.Close()
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		cfg:      cfg,
		store:    store,
		engine:   gin.New(),
		users:    dao.NewUserDAO(store),
		profiles: profiles,
	}

	// Ensure default admin user exists
	if err := s.users.EnsureDefaultUser(); err != nil {
		log.Warn().Err(err).Msg("Failed to ensure default user")
	}

	s.setupRoutes()
	return s, nil
}

// newProfileStore selects the profile backend from config
func newProfileStore(cfg *config.Config, store *storage.Store) (dao.ProfileStore, error) {
	switch cfg.Storage.Driver {
	case "", "bolt":
		return dao.NewBoltProfileStore(store), nil
	case "mysql":
		sqlStore, err := dao.NewSQLProfileStore(cfg.Storage.MySQLDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to create mysql profile store: %w", err)
		}
		return sqlStore, nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
}

func (s *Server) setupRoutes() {
	r := s.engine

	r.Use(TraceMiddleware())
	r.Use(LoggerMiddleware())
	r.Use(gin.Recovery())
	r.Use(CORSMiddleware())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/health", HealthHandler)
	r.GET("/ready", ReadyHandler)

	apiHandler := handler.NewAPIHandler(s.cfg, s.users, s.profiles)

	api := r.Group("/api")
	api.POST("/login", apiHandler.Login)
	api.GET("/ciphers", apiHandler.ListCiphers)
	api.POST("/transform", apiHandler.Transform)

	// Profile and account management require authentication
	authed := api.Group("", AuthMiddleware(apiHandler.JWTAuth()))
	authed.POST("/user/password", apiHandler.UpdatePassword)
	authed.GET("/profiles", apiHandler.ListProfiles)
	authed.GET("/profiles/:name", apiHandler.GetProfile)
	authed.POST("/profiles", apiHandler.SaveProfile)
	authed.DELETE("/profiles/:name", apiHandler.DeleteProfile)
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	addr := s.cfg.GetHTTPAddr()

	var httpHandler http.Handler = s.engine

	// Enable h2c (HTTP/2 cleartext) if configured
	if s.cfg.IsH2CEnabled() {
		h2s := &http2.Server{
			MaxConcurrentStreams: 1000,
			IdleTimeout:          120 * time.Second,
		}
		httpHandler = h2c.NewHandler(s.engine, h2s)
		log.Info().Msg("HTTP/2 cleartext (h2c) enabled")
	}

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      httpHandler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Info().Str("addr", addr).Msg("Starting HTTP server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down server...")

	var lastErr error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			lastErr = err
		}
	}

	if err := s.profiles.Close(); err != nil {
		lastErr = err
	}
	if err := s.store.Close(); err != nil {
		lastErr = err
	}

	return lastErr
}
