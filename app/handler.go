package main

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sayurimoto/inkwell/internal/common"
	"github.com/sayurimoto/inkwell/internal/mailservice"
	"github.com/sayurimoto/inkwell/internal/postservice"
	"github.com/sayurimoto/inkwell/internal/userservice"
)

func (app *application) listPostsHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := app.postService.GetPosts(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.render(w, r, http.StatusOK, "index.page.html", &templateData{
		Title: "Home",
		Posts: posts,
	})
}

func (app *application) showPostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	post, err := app.postService.GetPostByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, postservice.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	comments, err := app.postService.GetComments(r.Context(), id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.render(w, r, http.StatusOK, "post.page.html", &templateData{
		Title:    post.Title,
		Post:     post,
		Comments: comments,
	})
}

func (app *application) createCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	user := app.getUserContext(r)
	if user.IsAnonymous() {
		app.authenticationRequiredResponse(w, r, "You need to log in to comment.")
		return
	}

	err = r.ParseForm()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	text := r.PostForm.Get("text")

	_, err = app.postService.AddComment(r.Context(), text, id, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, postservice.ErrPostForeignKey):
			app.notFoundResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			app.setFlash(w, "Your comment cannot be empty.")
			http.Redirect(w, r, "/post/"+strconv.Itoa(id), http.StatusSeeOther)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.Redirect(w, r, "/post/"+strconv.Itoa(id), http.StatusSeeOther)
}

func (app *application) registerHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		app.render(w, r, http.StatusOK, "register.page.html", &templateData{Title: "Register"})
		return
	}

	err := r.ParseForm()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	var (
		name     = r.PostForm.Get("name")
		email    = r.PostForm.Get("email")
		password = r.PostForm.Get("password")
	)

	_, session, err := app.userService.RegisterUser(r.Context(), name, email, password)
	if err != nil {
		var validationErr common.ValidationError
		switch {
		case errors.Is(err, userservice.ErrDuplicateEmail):
			app.setFlash(w, "You've already signed up with that email, log in instead!")
			http.Redirect(w, r, "/login?email="+url.QueryEscape(email), http.StatusSeeOther)
		case errors.As(err, &validationErr):
			app.render(w, r, http.StatusUnprocessableEntity, "register.page.html", &templateData{
				Title:      "Register",
				FormErrors: validationErr.Errors,
				FormData:   map[string]string{"name": name, "email": email},
			})
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.setSessionCookie(w, session.Plain)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		app.render(w, r, http.StatusOK, "login.page.html", &templateData{
			Title:    "Log In",
			FormData: map[string]string{"email": r.URL.Query().Get("email")},
		})
		return
	}

	err := r.ParseForm()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	var (
		email    = r.PostForm.Get("email")
		password = r.PostForm.Get("password")
	)

	_, session, err := app.userService.LoginUser(r.Context(), email, password)
	if err != nil {
		switch {
		// A wrong password and an unknown email produce the same message so
		// the form does not reveal which addresses are registered.
		case errors.Is(err, userservice.ErrAuthenticationFailure):
			app.setFlash(w, "Password incorrect, please try again.")
			http.Redirect(w, r, "/login?email="+url.QueryEscape(email), http.StatusSeeOther)
		case errors.As(err, &common.ValidationError{}):
			app.setFlash(w, "Password incorrect, please try again.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.setSessionCookie(w, session.Plain)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	token := app.readSessionToken(r)

	err := app.userService.LogoutUser(r.Context(), token)
	if err != nil && !errors.Is(err, userservice.ErrNotFound) {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) newPostHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)
	if user.IsAnonymous() {
		app.authenticationRequiredResponse(w, r, "You need to log in to do that.")
		return
	}
	if !user.IsAdmin() {
		app.forbiddenResponse(w, r)
		return
	}

	if r.Method == http.MethodGet {
		app.render(w, r, http.StatusOK, "make-post.page.html", &templateData{Title: "New Post"})
		return
	}

	err := r.ParseForm()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	form := map[string]string{
		"title":    r.PostForm.Get("title"),
		"subtitle": r.PostForm.Get("subtitle"),
		"img_url":  r.PostForm.Get("img_url"),
		"body":     r.PostForm.Get("body"),
	}

	_, err = app.postService.CreatePost(r.Context(), &postservice.CreatePostRequest{
		Title:    form["title"],
		Subtitle: form["subtitle"],
		Body:     form["body"],
		ImgURL:   form["img_url"],
		AuthorID: user.ID,
	})
	if err != nil {
		var validationErr common.ValidationError
		switch {
		case errors.Is(err, postservice.ErrDuplicateTitle):
			app.render(w, r, http.StatusUnprocessableEntity, "make-post.page.html", &templateData{
				Title:      "New Post",
				FormErrors: map[string]string{"title": "a post with this title already exists"},
				FormData:   form,
			})
		case errors.As(err, &validationErr):
			app.render(w, r, http.StatusUnprocessableEntity, "make-post.page.html", &templateData{
				Title:      "New Post",
				FormErrors: validationErr.Errors,
				FormData:   form,
			})
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	// A new post lands the admin back on the post list; only edits return to
	// the single post view.
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) editPostHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)
	if user.IsAnonymous() {
		app.authenticationRequiredResponse(w, r, "You need to log in to do that.")
		return
	}
	if !user.IsAdmin() {
		app.forbiddenResponse(w, r)
		return
	}

	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	post, err := app.postService.GetPostByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, postservice.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if r.Method == http.MethodGet {
		app.render(w, r, http.StatusOK, "make-post.page.html", &templateData{
			Title:  "Edit Post",
			IsEdit: true,
			Post:   post,
			FormData: map[string]string{
				"title":    post.Title,
				"subtitle": post.Subtitle,
				"img_url":  post.ImgURL,
				"body":     post.Body,
			},
		})
		return
	}

	err = r.ParseForm()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	form := map[string]string{
		"title":    r.PostForm.Get("title"),
		"subtitle": r.PostForm.Get("subtitle"),
		"img_url":  r.PostForm.Get("img_url"),
		"body":     r.PostForm.Get("body"),
	}

	// Editing reassigns the post to whoever saved the edit. The publication
	// date stays as it was.
	err = app.postService.UpdatePost(r.Context(), &postservice.UpdatePostRequest{
		ID:       id,
		Title:    form["title"],
		Subtitle: form["subtitle"],
		Body:     form["body"],
		ImgURL:   form["img_url"],
		AuthorID: user.ID,
	})
	if err != nil {
		var validationErr common.ValidationError
		switch {
		case errors.Is(err, postservice.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, postservice.ErrDuplicateTitle):
			app.render(w, r, http.StatusUnprocessableEntity, "make-post.page.html", &templateData{
				Title:      "Edit Post",
				IsEdit:     true,
				Post:       post,
				FormErrors: map[string]string{"title": "a post with this title already exists"},
				FormData:   form,
			})
		case errors.As(err, &validationErr):
			app.render(w, r, http.StatusUnprocessableEntity, "make-post.page.html", &templateData{
				Title:      "Edit Post",
				IsEdit:     true,
				Post:       post,
				FormErrors: validationErr.Errors,
				FormData:   form,
			})
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.Redirect(w, r, "/post/"+strconv.Itoa(id), http.StatusSeeOther)
}

// deleteDispatchHandler splits the catch-all /delete/*path route into post
// deletion (/delete/:id) and comment deletion
// (/delete/comment/:comment_id/:post_id).
func (app *application) deleteDispatchHandler(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/delete"), "/")
	segments := strings.Split(path, "/")

	switch {
	case len(segments) == 1 && segments[0] != "":
		app.deletePostHandler(w, r, segments[0])
	case len(segments) == 3 && segments[0] == "comment":
		app.deleteCommentHandler(w, r, segments[1], segments[2])
	default:
		app.notFoundResponse(w, r)
	}
}

func (app *application) deletePostHandler(w http.ResponseWriter, r *http.Request, idStr string) {
	user := app.getUserContext(r)
	if user.IsAnonymous() {
		app.authenticationRequiredResponse(w, r, "You need to log in to do that.")
		return
	}
	if !user.IsAdmin() {
		app.forbiddenResponse(w, r)
		return
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.postService.DeletePost(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, postservice.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) deleteCommentHandler(w http.ResponseWriter, r *http.Request, commentIDStr, postIDStr string) {
	user := app.getUserContext(r)
	if user.IsAnonymous() {
		app.authenticationRequiredResponse(w, r, "You need to log in to do that.")
		return
	}

	commentID, err := strconv.Atoi(commentIDStr)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}
	postID, err := strconv.Atoi(postIDStr)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	comment, err := app.postService.GetCommentByID(r.Context(), commentID)
	if err != nil {
		switch {
		case errors.Is(err, postservice.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	// Ownership is checked against the comment being deleted, not against any
	// other comment the user may have left on the post.
	if comment.AuthorID != user.ID {
		app.forbiddenResponse(w, r)
		return
	}

	err = app.postService.DeleteComment(r.Context(), commentID)
	if err != nil {
		switch {
		case errors.Is(err, postservice.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.Redirect(w, r, "/post/"+strconv.Itoa(postID), http.StatusSeeOther)
}

func (app *application) aboutHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "about.page.html", &templateData{Title: "About Me"})
}

func (app *application) contactHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		app.render(w, r, http.StatusOK, "contact.page.html", &templateData{Title: "Contact Me"})
		return
	}

	err := r.ParseForm()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	msg := mailservice.ContactMessage{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Message: r.PostForm.Get("message"),
	}

	err = app.mailService.SendContactMessage(msg)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.setFlash(w, "Your message has been sent.")
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}
