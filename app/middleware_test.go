package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthenticateMiddleware(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())
	ts.register(t, "Test User", "testuser@example.com", "Test1234")

	t.Run("Valid Session Cookie", func(t *testing.T) {
		status, _, body := ts.get(t, "/")
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "Log Out")
	})

	t.Run("No Cookie", func(t *testing.T) {
		bare := newTestServer(t, app.routes())

		status, _, body := bare.get(t, "/")
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "Log In")
		assert.NotContains(t, body, "Log Out")
	})

	t.Run("Tampered Cookie", func(t *testing.T) {
		bare := newTestServer(t, app.routes())

		req, err := http.NewRequest(http.MethodGet, bare.URL+"/", nil)
		assert.NoError(t, err)
		req.AddCookie(&http.Cookie{
			Name:  sessionCookieName,
			Value: "forgedtokenforgedtokenforge." + app.signToken("someothertoken"),
		})

		res, err := bare.Client().Do(req)
		assert.NoError(t, err)

		status, _, body := readResponse(t, res)
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "Log In")
		assert.NotContains(t, body, "Log Out")
	})

	t.Run("Unsigned Cookie", func(t *testing.T) {
		bare := newTestServer(t, app.routes())

		req, err := http.NewRequest(http.MethodGet, bare.URL+"/", nil)
		assert.NoError(t, err)
		req.AddCookie(&http.Cookie{
			Name:  sessionCookieName,
			Value: "forgedtokenforgedtokenforge",
		})

		res, err := bare.Client().Do(req)
		assert.NoError(t, err)

		status, _, body := readResponse(t, res)
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "Log In")
	})

	t.Run("Well-Formed But Unknown Token", func(t *testing.T) {
		bare := newTestServer(t, app.routes())

		token := "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
		req, err := http.NewRequest(http.MethodGet, bare.URL+"/", nil)
		assert.NoError(t, err)
		req.AddCookie(&http.Cookie{
			Name:  sessionCookieName,
			Value: token + "." + app.signToken(token),
		})

		res, err := bare.Client().Do(req)
		assert.NoError(t, err)

		status, _, body := readResponse(t, res)
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "Log In")
	})

	t.Cleanup(func() {
		_, err := db.Exec("DELETE FROM users")
		assert.NoError(t, err)
	})
}

func TestRequireAuthUser(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	status, header, _ := ts.get(t, "/logout")
	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/login", header.Get("Location"))

	// The redirect target shows the flash notice.
	_, _, body := ts.get(t, "/login")
	assert.Contains(t, body, "You need to log in to do that.")
}
