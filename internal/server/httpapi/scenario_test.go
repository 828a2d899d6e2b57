package httpapi

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
	"github.com/dmitrijs2005/notekeeper/internal/server/config"
	"github.com/dmitrijs2005/notekeeper/internal/server/notes"
	"github.com/dmitrijs2005/notekeeper/internal/server/users"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// newScenarioServer wires real services over an in-memory sqlite store,
// exactly as the app does, minus the network listener.
func newScenarioServer(t *testing.T) *echo.Echo {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE notes (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  content TEXT NOT NULL DEFAULT ''
);
`)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "scenario-secret"
	cfg.AccessTokenValidityDuration = time.Hour

	hash, err := auth.HashPassword(cfg.SeedPassword)
	require.NoError(t, err)
	credentials := users.NewSeededRepository(&users.User{
		Username:     cfg.SeedUser,
		PasswordHash: hash,
	})

	us := users.NewService(credentials, cfg, nopLogger{})
	ns := notes.NewService(notes.NewSQLiteRepository(db))

	return NewServer("127.0.0.1:0", nopLogger{}, us, ns, cfg.AllowedOrigins).routes()
}

func login(t *testing.T, e *echo.Echo, username, password string) (int, string) {
	t.Helper()

	form := fmt.Sprintf("username=%s&password=%s", username, password)
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

	rec := doRequest(e, req)
	if rec.Code != http.StatusOK {
		return rec.Code, ""
	}

	var resp tokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp.AccessToken
}

func authedJSON(method, target, token, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	return req
}

func TestScenario_FullNoteLifecycle(t *testing.T) {
	e := newScenarioServer(t)

	code, token := login(t, e, "testuser", "testpassword")
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, token)

	// Create.
	rec := doRequest(e, authedJSON(http.MethodPost, "/notes", token,
		`{"title":"Shopping","content":"milk, eggs"}`))
	require.Equal(t, http.StatusOK, rec.Code)

	var created notes.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Greater(t, created.ID, int64(0))
	assert.Equal(t, "Shopping", created.Title)
	assert.Equal(t, "milk, eggs", created.Content)

	noteURL := fmt.Sprintf("/notes/%d", created.ID)

	// Partial update changes only the title.
	rec = doRequest(e, authedJSON(http.MethodPut, noteURL, token, `{"title":"Groceries"}`))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated notes.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Groceries", updated.Title)
	assert.Equal(t, "milk, eggs", updated.Content)

	// Empty update is rejected before storage.
	rec = doRequest(e, authedJSON(http.MethodPut, noteURL, token, `{}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Delete, twice: both succeed.
	rec = doRequest(e, authedJSON(http.MethodDelete, noteURL, token, ""))
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = doRequest(e, authedJSON(http.MethodDelete, noteURL, token, ""))
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Gone.
	rec = doRequest(e, authedJSON(http.MethodGet, noteURL, token, ""))
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Update of a deleted note is a 404 too.
	rec = doRequest(e, authedJSON(http.MethodPut, noteURL, token, `{"title":"x"}`))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScenario_WrongPasswordIssuesNoToken(t *testing.T) {
	e := newScenarioServer(t)

	code, token := login(t, e, "testuser", "wrongpassword")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Empty(t, token)
}

func TestScenario_ListReflectsCreates(t *testing.T) {
	e := newScenarioServer(t)

	_, token := login(t, e, "testuser", "testpassword")
	require.NotEmpty(t, token)

	for _, title := range []string{"one", "two", "three"} {
		rec := doRequest(e, authedJSON(http.MethodPost, "/notes", token,
			fmt.Sprintf(`{"title":%q,"content":""}`, title)))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doRequest(e, authedJSON(http.MethodGet, "/notes", token, ""))
	require.Equal(t, http.StatusOK, rec.Code)

	var list []*notes.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 3)
	assert.Equal(t, "one", list[0].Title)
	assert.Equal(t, "three", list[2].Title)
}

func TestScenario_ExpiredTokenRejected(t *testing.T) {
	e := newScenarioServer(t)

	expired, err := auth.GenerateToken("testuser", []byte("scenario-secret"), -1*time.Minute)
	require.NoError(t, err)

	rec := doRequest(e, authedJSON(http.MethodGet, "/notes", expired, ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
