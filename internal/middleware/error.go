package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

// ErrorResponse is the JSON shape every error leaves the API in.
type ErrorResponse struct {
	Error string `json:"error"`
}

// errorRecorder buffers error bodies so they can be re-emitted as JSON.
type errorRecorder struct {
	http.ResponseWriter
	statusCode int
	body       string
}

func (r *errorRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *errorRecorder) Write(b []byte) (int, error) {
	if r.statusCode >= 400 {
		r.body = strings.TrimSpace(string(b))
		// Hold the original error body back; it is rewritten as JSON below.
		return len(b), nil
	}
	return r.ResponseWriter.Write(b)
}

// ErrorHandler wraps the whole API: panics become a 500 and plain-text error
// bodies are normalized to the ErrorResponse JSON shape.
func ErrorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &errorRecorder{ResponseWriter: w, statusCode: 200}
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, err)
				rec.Header().Set("Content-Type", "application/json")
				rec.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(rec.ResponseWriter).Encode(ErrorResponse{Error: "Internal Server Error"})
			} else if rec.statusCode >= 400 {
				rec.Header().Set("Content-Type", "application/json")
				body := rec.body
				// Bodies gin already wrote as JSON pass through untouched.
				if strings.HasPrefix(body, "{") {
					w.Write([]byte(body))
				} else {
					json.NewEncoder(w).Encode(ErrorResponse{Error: body})
				}
			}
		}()

		next.ServeHTTP(rec, r)
	})
}
