package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/heartmarshall/mediacard-backend/pkg/ctxutil"
)

// RequestIDHeader is the header the request id is read from and echoed into.
const RequestIDHeader = "X-Request-Id"

// RequestID returns middleware that ensures every request carries a request
// id. An incoming X-Request-Id is reused, otherwise a new UUID is generated.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.New().String()
			}
			ctx := ctxutil.WithRequestID(r.Context(), id)
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
