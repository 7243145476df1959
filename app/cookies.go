package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strings"
)

const (
	sessionCookieName = "session"
	flashCookieName   = "flash"
)

// signToken computes an HMAC-SHA256 signature over the session token using
// the configured secret key.
func (app *application) signToken(token string) string {
	mac := hmac.New(sha256.New, []byte(app.config.SecretKey))
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

func (app *application) setSessionCookie(w http.ResponseWriter, token string) {
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    token + "." + app.signToken(token),
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   app.config.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, cookie)
}

func (app *application) clearSessionCookie(w http.ResponseWriter) {
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	}
	http.SetCookie(w, cookie)
}

// readSessionToken extracts and verifies the session token from the cookie.
// A missing cookie, a malformed value, or a bad signature all return the
// empty string; the caller treats that as an anonymous visitor.
func (app *application) readSessionToken(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}

	token, signature, ok := strings.Cut(cookie.Value, ".")
	if !ok {
		return ""
	}

	if !hmac.Equal([]byte(signature), []byte(app.signToken(token))) {
		return ""
	}

	return token
}

// setFlash stores a one-shot notice shown on the next rendered page.
func (app *application) setFlash(w http.ResponseWriter, message string) {
	cookie := &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.URLEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, cookie)
}

// popFlash reads and clears the flash notice, if any.
func (app *application) popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:   flashCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	message, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}

	return string(message)
}
