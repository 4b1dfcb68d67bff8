package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/tanvir-dev/versebook/backend/internal/models"
)

// jsonRequest builds a JSON-encoded request for handler tests
func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

// authedContext builds an echo.Context carrying the given user's JWT claims,
// the way JWTAuthMiddleware would
func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, user *models.User) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("user", &models.JwtCustomClaims{UserID: user.ID.Hex(), Username: user.Username})
	return c
}

// seedUser inserts a user through the fake repository
func seedUser(t *testing.T, repo *fakeUserRepo, username, email string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: email, Password: "x"}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

// seedPoem inserts a poem through the fake repository
func seedPoem(t *testing.T, repo *fakePoemRepo, author *models.User, title string) *models.Poem {
	t.Helper()
	poem := &models.Poem{Title: title, Content: "a verse", Author: author.ID}
	require.NoError(t, repo.CreatePoem(context.Background(), poem))
	return poem
}

// decodeBody unmarshals a recorder body into a map
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
