package main

import (
	"log/slog"
	"net/http"
)

func (app *application) logError(r *http.Request, err error) {
	var (
		method  = r.Method
		url     = r.URL.RequestURI()
		message = err.Error()
	)

	app.logger.Error(message, slog.String("method", method), slog.String("url", url))
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	http.Error(w, "the server encountered a problem and could not process your request", http.StatusInternalServerError)
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}

func (app *application) forbiddenResponse(w http.ResponseWriter, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
}

func (app *application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

// authenticationRequiredResponse is used when an anonymous visitor tries a
// gated action: they get a notice and the login page, not an error page.
func (app *application) authenticationRequiredResponse(w http.ResponseWriter, r *http.Request, notice string) {
	app.setFlash(w, notice)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
