package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"jobposter-backend/internal/auth"
	"jobposter-backend/internal/config"
	"jobposter-backend/internal/database"
	"jobposter-backend/internal/logging"
)

// MyServer hold dependencies shared by every route handler
type MyServer struct {
	port int

	DB        *database.DBinstanceStruct
	cfg       *config.Config
	log       logrus.FieldLogger
	tokens    *auth.TokenIssuer
	blacklist auth.JwtBlacklistStore
	audit     *logrus.Logger
}

// NewServer construct new MyServer instance. Session blacklist is backed by Redis when
// REDIS_URL is set and by process memory otherwise.
func NewServer(ctx context.Context, cfg *config.Config, db *database.DBinstanceStruct, log logrus.FieldLogger) (*MyServer, error) {
	blacklist, err := auth.NewBlacklistStore(ctx, cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create session blacklist: %w", err)
	}

	audit, err := logging.NewAuthAudit(cfg.AuthLogging, logging.AuthLogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open auth log: %w", err)
	}

	return &MyServer{
		port:      cfg.Port,
		DB:        db,
		cfg:       cfg,
		log:       log,
		tokens:    auth.NewTokenIssuer(cfg.SecretKey, cfg.TokenTTL),
		blacklist: blacklist,
		audit:     audit,
	}, nil
}

// HTTPServer build http.Server serving every registered route
func (s *MyServer) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Close release the session blacklist connection and the auth log file.
func (s *MyServer) Close() error {
	if c, ok := s.blacklist.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return err
		}
	}
	if c, ok := s.audit.Out.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
