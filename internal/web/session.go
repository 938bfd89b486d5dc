package web

import "net/http"

// sessionCookie is the cookie that carries the session token on page
// navigation. The token's own expiry governs the session, so the cookie
// itself carries no expiry.
const sessionCookie = "token"

// SetSession writes the session cookie.
func SetSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}

// ClearSession expires the session cookie. Clearing an absent cookie is
// a no-op.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// HasSession reports whether the request carries a session cookie. Only
// presence is checked here; the API middleware is where tokens are
// actually verified.
func HasSession(r *http.Request) bool {
	c, err := r.Cookie(sessionCookie)
	return err == nil && c.Value != ""
}
