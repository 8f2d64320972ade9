// Package auth implements the credential gate in front of every mutating
// and listing operation.
package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// Gate validates a presented credential pair against the configured
// reference pair. It is stateless and safe for concurrent use.
type Gate struct {
	user     string
	password string
}

// NewGate builds a gate for the given reference pair.
func NewGate(user, password string) *Gate {
	return &Gate{user: user, password: password}
}

// Authenticate reports whether the presented pair matches the reference
// pair. Both comparisons are constant-time and both always run, so the
// decision leaks nothing about where a mismatch occurs.
func (g *Gate) Authenticate(user, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(g.user)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) == 1
	return userOK && passOK
}

// Middleware rejects requests without a valid Basic credential pair.
// The 401 carries the challenge so conforming clients can re-prompt.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, password, ok := r.BasicAuth()
		if !ok || !g.Authenticate(user, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="tarefas"`)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Credenciais inválidas."})
			return
		}
		next.ServeHTTP(w, r)
	})
}
