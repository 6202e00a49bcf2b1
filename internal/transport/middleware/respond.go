package middleware

import "net/http"

// writeError sends one of the canned JSON error bodies below. Middleware
// rejects requests before any handler runs, so nothing has been written yet.
func writeError(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
