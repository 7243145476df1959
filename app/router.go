package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	// posts
	router.HandlerFunc(http.MethodGet, "/", app.listPostsHandler)
	router.HandlerFunc(http.MethodGet, "/post/:id", app.showPostHandler)
	router.HandlerFunc(http.MethodPost, "/post/:id", app.createCommentHandler)
	router.HandlerFunc(http.MethodGet, "/new-post", app.newPostHandler)
	router.HandlerFunc(http.MethodPost, "/new-post", app.newPostHandler)
	router.HandlerFunc(http.MethodGet, "/edit-post/:id", app.editPostHandler)
	router.HandlerFunc(http.MethodPost, "/edit-post/:id", app.editPostHandler)

	// post and comment deletion share the /delete prefix, which httprouter
	// cannot split into a wildcard and a static child, so one catch-all
	// route dispatches both.
	router.HandlerFunc(http.MethodGet, "/delete/*path", app.deleteDispatchHandler)

	// users
	router.HandlerFunc(http.MethodGet, "/register", app.registerHandler)
	router.HandlerFunc(http.MethodPost, "/register", app.registerHandler)
	router.HandlerFunc(http.MethodGet, "/login", app.loginHandler)
	router.HandlerFunc(http.MethodPost, "/login", app.loginHandler)
	router.HandlerFunc(http.MethodGet, "/logout", app.requireAuthUser(app.logoutHandler))

	// static pages
	router.HandlerFunc(http.MethodGet, "/about", app.aboutHandler)
	router.HandlerFunc(http.MethodGet, "/contact", app.contactHandler)
	router.HandlerFunc(http.MethodPost, "/contact", app.contactHandler)

	return app.recoverPanic(app.logRequest(app.authenticate(router)))
}
