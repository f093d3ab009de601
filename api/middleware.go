package api

import (
	"fmt"
	"log/slog"
	"net/http"
)

// CORS allows any origin, as a browser form on another host calls the relay
// directly. Every OPTIONS request is answered 200 with an empty body.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Recoverer turns a panic in any handler into a generic JSON 500 and keeps
// serving. The panic value is logged, never returned.
func (a *API) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			a.audit.logFailure(AuditPanicRecovered, r, fmt.Sprint(rec), slog.String("path", r.URL.Path))
			writeError(w, http.StatusInternalServerError, msgInternal)
		}()
		next.ServeHTTP(w, r)
	})
}
