package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// currentUserKey is the echo context key the authenticated user is stored
// under for downstream handlers.
const currentUserKey = "currentUser"

// bearerAuth extracts the bearer token from the Authorization header,
// validates it, and resolves it to a known user before the handler runs.
// Missing header, wrong scheme, invalid token, and unknown subject all
// produce the same 401 response, so callers cannot probe which check
// failed.
func (s *Server) bearerAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return unauthorized(c)
		}

		user, err := s.users.Resolve(c.Request().Context(), token)
		if err != nil {
			return unauthorized(c)
		}

		c.Set(currentUserKey, user)
		return next(c)
	}
}

func unauthorized(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return c.JSON(http.StatusUnauthorized, errorResponse{Detail: "Could not validate credentials"})
}

// requestLogger logs one line per request with the outcome status.
func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		req := c.Request()
		res := c.Response()
		s.logger.Info(req.Context(), "request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", res.Status,
			"duration", time.Since(start).String(),
			"request_id", res.Header().Get(echo.HeaderXRequestID),
		)

		return nil
	}
}
