package main

import (
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/sayurimoto/inkwell/internal/common"
	"github.com/sayurimoto/inkwell/internal/mailservice"
	"github.com/sayurimoto/inkwell/internal/postservice"
	"github.com/sayurimoto/inkwell/internal/userservice"
)

type testServer struct {
	*httptest.Server
}

// newTestServer wraps the handler in a server whose client keeps cookies
// between requests, so a registration or login carries over to later calls.
// Redirects are not followed; tests assert on them directly.
func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	ts.Client().Jar = jar

	ts.Client().CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &testServer{ts}
}

func newTestApplication(t *testing.T) (*application, *sql.DB) {
	db := common.TestDB("file://../migrations", t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	cfg := &Config{
		Port:        ":4000",
		Environment: "test",
		SecretKey:   "test-secret-key",
		HTMLDir:     "../ui/html",
	}

	templates, err := newTemplateCache(cfg.HTMLDir)
	if err != nil {
		t.Fatal(err)
	}

	app := &application{
		config:      cfg,
		logger:      logger,
		userService: userservice.NewUserService(db, cache),
		postService: postservice.NewPostService(db),
		mailService: mailservice.NewMailService("localhost", "", "", "noreply@example.com", "owner@example.com", 25),
		templates:   templates,
	}

	return app, db
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, string) {
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, string(body)
}

func (ts *testServer) get(t *testing.T, path string) (int, http.Header, string) {
	res, err := ts.Client().Get(ts.URL + path)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) postForm(t *testing.T, path string, form url.Values) (int, http.Header, string) {
	res, err := ts.Client().PostForm(ts.URL+path, form)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

// register signs up a user through the form and leaves the session cookie in
// the server's client jar.
func (ts *testServer) register(t *testing.T, name, email, password string) {
	status, _, _ := ts.postForm(t, "/register", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {password},
	})
	if status != http.StatusSeeOther {
		t.Fatalf("registration of %s failed with status %d", email, status)
	}
}
