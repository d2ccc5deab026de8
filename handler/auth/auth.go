package auth

import (
	"net/http"
	"strings"

	"cosign/core"
	"cosign/handler/render"

	"github.com/fox-one/pkg/logger"
)

// HeaderKeyRequestID clients resend the same id when retrying a request
const HeaderKeyRequestID = "X-Request-Id"

// HandleAuthentication the bearer token names the acting principal
func HandleAuthentication() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			principal := getBearerToken(r)
			if principal == "" {
				next.ServeHTTP(w, r)
				return
			}

			log := logger.FromContext(ctx).WithField("principal", principal)
			ctx = logger.WithContext(ctx, log)
			ctx = core.WithSession(ctx, &core.Session{
				Principal: principal,
				RequestID: r.Header.Get(HeaderKeyRequestID),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}

// LoginRequired rejects requests without a session
func LoginRequired(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if _, ok := core.SessionFrom(r.Context()); !ok {
			render.Error(w, core.ErrNotInitialized)
			return
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

func getBearerToken(r *http.Request) string {
	s := r.Header.Get("Authorization")
	return strings.TrimSpace(strings.TrimPrefix(s, "Bearer "))
}
