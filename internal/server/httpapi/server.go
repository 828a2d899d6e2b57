// Package httpapi exposes the public HTTP surface: login, the note CRUD
// operations, and the bearer-token middleware gating them.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/notes"
	"github.com/dmitrijs2005/notekeeper/internal/server/users"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// userService is the slice of users.Service the handlers need. Kept as an
// interface so tests can substitute fakes.
type userService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Resolve(ctx context.Context, tokenString string) (*users.User, error)
}

// noteService mirrors notes.Service.
type noteService interface {
	Create(ctx context.Context, title, content string) (*notes.Note, error)
	List(ctx context.Context) ([]*notes.Note, error)
	Get(ctx context.Context, id int64) (*notes.Note, error)
	Update(ctx context.Context, id int64, patch notes.Patch) (*notes.Note, error)
	Delete(ctx context.Context, id int64) error
}

type Server struct {
	address        string
	logger         logging.Logger
	users          userService
	notes          noteService
	allowedOrigins []string
}

func NewServer(address string, l logging.Logger, us userService, ns noteService, allowedOrigins []string) *Server {
	return &Server{
		address:        address,
		logger:         l.With("module", "http_server"),
		users:          us,
		notes:          ns,
		allowedOrigins: allowedOrigins,
	}
}

// routes assembles the echo instance: middleware chain, public endpoints,
// and the token-gated /notes group.
func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestID())
	e.Use(s.requestLogger)
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     s.allowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType},
		AllowCredentials: true,
	}))

	e.GET("/", s.handleRoot)
	e.POST("/token", s.handleToken)

	g := e.Group("/notes", s.bearerAuth)
	g.GET("", s.handleListNotes)
	g.POST("", s.handleCreateNote)
	g.GET("/:id", s.handleGetNote)
	g.PUT("/:id", s.handleUpdateNote)
	g.DELETE("/:id", s.handleDeleteNote)

	return e
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	e := s.routes()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := e.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
