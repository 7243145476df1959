package main

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/sayurimoto/inkwell/internal/postservice"
	"github.com/sayurimoto/inkwell/internal/userservice"
)

type templateData struct {
	Title       string
	Flash       string
	CurrentUser *userservice.User
	LoggedIn    bool
	IsAdmin     bool
	Post        *postservice.Post
	Posts       []postservice.Post
	Comments    []postservice.Comment
	FormErrors  map[string]string
	FormData    map[string]string
	IsEdit      bool
}

var functions = template.FuncMap{
	// Post bodies come from the admin's editor and may contain markup.
	"safeHTML": func(s string) template.HTML {
		return template.HTML(s)
	},
	// Avatar URLs are computed here; the image service itself is external.
	"gravatar": func(email string) string {
		hash := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
		return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=100&d=retro&r=g", hash)
	},
}

// newTemplateCache parses every page template against the base layout once at
// startup.
func newTemplateCache(dir string) (map[string]*template.Template, error) {
	cache := map[string]*template.Template{}

	pages, err := filepath.Glob(filepath.Join(dir, "*.page.html"))
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := filepath.Base(page)

		ts, err := template.New(name).Funcs(functions).ParseFiles(filepath.Join(dir, "base.layout.html"), page)
		if err != nil {
			return nil, err
		}

		cache[name] = ts
	}

	return cache, nil
}

func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page string, data *templateData) {
	ts, ok := app.templates[page]
	if !ok {
		app.serverErrorResponse(w, r, fmt.Errorf("template %q does not exist", page))
		return
	}

	if data == nil {
		data = &templateData{}
	}

	if data.CurrentUser == nil {
		data.CurrentUser = app.getUserContext(r)
	}
	data.LoggedIn = data.CurrentUser != nil && !data.CurrentUser.IsAnonymous()
	data.IsAdmin = data.LoggedIn && data.CurrentUser.IsAdmin()

	if data.Flash == "" {
		data.Flash = app.popFlash(w, r)
	}

	// Render into a buffer first so a template error still produces a clean
	// 500 instead of a half-written page.
	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(status)
	buf.WriteTo(w)
}
