// server.go: HTTP server assembly and lifecycle
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	api "github.com/odontosys/odontosys/internal/api/v2"
	"github.com/odontosys/odontosys/internal/conf"
	"github.com/odontosys/odontosys/internal/datastore"
	"github.com/odontosys/odontosys/internal/logging"
	"github.com/odontosys/odontosys/internal/observability"
)

// Server encapsulates the Echo instance and its wired components.
type Server struct {
	Echo     *echo.Echo
	Settings *conf.Settings
	DS       datastore.Interface
	API      *api.Controller
	logger   *slog.Logger
}

// New assembles the HTTP server: datastore, metrics and the v2 API.
func New(settings *conf.Settings) (*Server, error) {
	logger := logging.ForService("server")
	if logger == nil {
		logger = slog.Default().With("service", "server")
	}

	ds := datastore.New(settings)
	if ds == nil {
		return nil, fmt.Errorf("no database output enabled, enable sqlite or mysql in the configuration")
	}
	if err := ds.Open(); err != nil {
		return nil, fmt.Errorf("failed to open datastore: %w", err)
	}

	metrics, err := observability.NewMetrics()
	if err != nil {
		ds.Close()
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	controller, err := api.New(e, ds, settings, metrics, nil)
	if err != nil {
		ds.Close()
		return nil, fmt.Errorf("failed to create API controller: %w", err)
	}

	return &Server{
		Echo:     e,
		Settings: settings,
		DS:       ds,
		API:      controller,
		logger:   logger,
	}, nil
}

// Run starts the server and blocks until the process receives SIGINT or
// SIGTERM, then shuts down gracefully.
func (s *Server) Run() error {
	errChan := make(chan error, 1)
	go func() {
		addr := ":" + s.Settings.WebServer.Port
		s.logger.Info("starting HTTP server", "address", addr)
		if err := s.Echo.Start(addr); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		s.Shutdown()
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		s.logger.Info("shutting down", "signal", sig.String())
		return s.Shutdown()
	}
}

// Shutdown stops the HTTP server and closes the datastore.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var firstErr error
	if err := s.Echo.Shutdown(ctx); err != nil {
		firstErr = err
	}
	s.API.Shutdown()
	if err := s.DS.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
