package middleware

import "net/http"

// BodyLimit caps every request body at limit bytes before the handler
// runs. Reads past the limit fail with *http.MaxBytesError, which the
// upload handler maps to 413.
func BodyLimit(limit int64, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
		next.ServeHTTP(w, r)
	})
}
