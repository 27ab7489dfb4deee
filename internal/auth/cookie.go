package auth

import (
	"net/http"
	"time"
)

// CookieName is the session cookie the server issues at login and reads
// on every gated request.
const CookieName = "token"

// SetSessionCookie writes the session token as an httpOnly cookie. In
// production the cookie is Secure with SameSite=Strict; in development
// it relaxes to SameSite=Lax over plain HTTP so local frontends on a
// different port can still send it.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, production bool) {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   production,
		SameSite: http.SameSiteLaxMode,
	}
	if production {
		cookie.SameSite = http.SameSiteStrictMode
	}
	http.SetCookie(w, cookie)
}

// ClearSessionCookie expires the session cookie immediately. Attributes
// must match the ones used when setting it or browsers keep the old copy.
func ClearSessionCookie(w http.ResponseWriter, production bool) {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   production,
		SameSite: http.SameSiteLaxMode,
	}
	if production {
		cookie.SameSite = http.SameSiteStrictMode
	}
	http.SetCookie(w, cookie)
}
