package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/huseyinozgul/docvault/internal/common"
	"github.com/huseyinozgul/docvault/internal/logging"
)

// authenticate requires "Authorization: Bearer <token>" and stores the
// token's user in the request context.
//
// A missing or non-bearer header is answered with 403, a bad or expired token
// and a token for a deleted user with 401.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme, token, ok := strings.Cut(r.Header.Get(common.AuthorizationHeaderName), " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, common.TokenType) || token == "" {
			writeDetail(w, http.StatusForbidden, msgNotAuthenticated)
			return
		}

		user, err := h.users.Authenticate(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
				w.Header().Set("WWW-Authenticate", wwwAuthenticateBearer)
				writeDetail(w, http.StatusUnauthorized, msgInvalidToken)
			case errors.Is(err, common.ErrorUnauthorized):
				w.Header().Set("WWW-Authenticate", wwwAuthenticateBearer)
				writeDetail(w, http.StatusUnauthorized, msgUserNotFound)
			default:
				h.writeError(w, r, err, msgInternal)
			}
			return
		}

		ctx := withUser(r.Context(), user)
		ctx = logging.ContextWithFields(ctx, "user_id", user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogger logs one entry per request once the response is written,
// at Error level for 5xx responses.
// The chi request id is attached to every entry logged while serving it.
func requestLogger(l logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			ctx := r.Context()
			if id := middleware.GetReqID(ctx); id != "" {
				ctx = logging.ContextWithFields(ctx, "request_id", id)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log := l.Info
			if status >= http.StatusInternalServerError {
				log = l.Error
			}
			log(ctx, "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}
