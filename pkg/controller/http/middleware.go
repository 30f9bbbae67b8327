package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidash/pkg/domain/model"
	"github.com/secmon-lab/covidash/pkg/usecase"
)

// LoggingMiddleware creates a chi-compatible logging middleware
func LoggingMiddleware(ctx context.Context) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Embed logger from the initial context into request context
			logger := ctxlog.From(ctx).With("request_id", middleware.GetReqID(r.Context()))
			r = r.WithContext(ctxlog.With(r.Context(), logger))

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		})
	}
}

// AuthContextMiddleware verifies a bearer token when one is presented and stores the
// resulting AuthContext in the request context. Requests without a token pass through
// anonymously. authUC may be nil, in which case tokens are ignored.
func AuthContextMiddleware(authUC usecase.AuthUseCase) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if authUC == nil || token == "" {
				next.ServeHTTP(w, r)
				return
			}

			authCtx, err := authUC.VerifyToken(r.Context(), token)
			if err != nil {
				handleError(w, r, err)
				return
			}

			ctx := model.WithAuthContext(r.Context(), authCtx)
			ctx = ctxlog.With(ctx, ctxlog.From(ctx).With("subject", authCtx.Subject))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireScope rejects requests whose token does not grant scope
func RequireScope(scope string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authCtx, ok := model.GetAuthContext(r.Context())
			if !ok {
				writeError(w, r, goerr.Wrap(model.ErrInvalidToken, "bearer token is required"), http.StatusUnauthorized)
				return
			}
			if !authCtx.HasScope(scope) {
				handleError(w, r, goerr.Wrap(model.ErrForbidden, "token lacks scope",
					goerr.V("scope", scope),
					goerr.V("subject", authCtx.Subject)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}
