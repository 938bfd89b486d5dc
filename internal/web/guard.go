package web

import (
	"net/http"
	"strings"
)

// Guard routes page navigation by session cookie presence:
//
//   - "/" with a cookie goes to /adm,
//   - /adm and /cadastro (and subpaths) without a cookie go to /login,
//   - everything else passes through.
func Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if path == "/" && HasSession(r) {
			http.Redirect(w, r, "/adm", http.StatusFound)
			return
		}

		protected := path == "/adm" || strings.HasPrefix(path, "/adm/") ||
			path == "/cadastro" || strings.HasPrefix(path, "/cadastro/")
		if protected && !HasSession(r) {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}
