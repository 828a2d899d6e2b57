package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/notes"
	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type createNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Welcome to the Notes API.",
	})
}

// handleToken exchanges a username/password form for a bearer token.
func (s *Server) handleToken(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	token, err := s.users.Login(c.Request().Context(), username, password)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return c.JSON(http.StatusUnauthorized, errorResponse{Detail: "Incorrect username or password"})
		}
		return s.serverError(c, err)
	}

	s.logger.Info(c.Request().Context(), "token issued", "username", username)
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) handleListNotes(c echo.Context) error {
	list, err := s.notes.List(c.Request().Context())
	if err != nil {
		return s.serverError(c, err)
	}
	if list == nil {
		list = []*notes.Note{}
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handleCreateNote(c echo.Context) error {
	var req createNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: "Invalid request body"})
	}

	note, err := s.notes.Create(c.Request().Context(), req.Title, req.Content)
	if err != nil {
		return s.serverError(c, err)
	}
	return c.JSON(http.StatusOK, note)
}

func (s *Server) handleGetNote(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c)
	}

	note, err := s.notes.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return notFound(c)
		}
		return s.serverError(c, err)
	}
	return c.JSON(http.StatusOK, note)
}

func (s *Server) handleUpdateNote(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c)
	}

	var patch notes.Patch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Detail: "Invalid request body"})
	}

	note, err := s.notes.Update(c.Request().Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrEmptyUpdate):
			return c.JSON(http.StatusBadRequest, errorResponse{Detail: "No fields to update"})
		case errors.Is(err, common.ErrNotFound):
			return notFound(c)
		default:
			return s.serverError(c, err)
		}
	}
	return c.JSON(http.StatusOK, note)
}

// handleDeleteNote returns 204 whether or not the note existed; delete is
// idempotent end to end.
func (s *Server) handleDeleteNote(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c)
	}

	if err := s.notes.Delete(c.Request().Context(), id); err != nil {
		return s.serverError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func parseID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func notFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, errorResponse{Detail: "Note not found"})
}

// serverError logs the cause and returns an opaque 500; storage details
// never reach the client.
func (s *Server) serverError(c echo.Context, err error) error {
	s.logger.Error(c.Request().Context(), err.Error())
	return c.JSON(http.StatusInternalServerError, errorResponse{Detail: "Internal server error"})
}
