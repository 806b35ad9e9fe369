package middleware

import (
	"context"
	"last_queue/pkg/resp"
	"last_queue/pkg/token"
	"net/http"
	"strings"
)

// RunTokenCookie - имя cookie с токеном прохождения
const RunTokenCookie = "run_token"

type ctxKey struct{}

// WithRunID кладет идентификатор прохождения в контекст
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, runID)
}

// RunIDFromContext достает идентификатор прохождения из контекста
func RunIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// RunToken проверяет токен прохождения из заголовка Authorization (Bearer) или cookie run_token
func RunToken(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := tokenFromRequest(r)
			if raw == "" {
				resp.WriteError(w, http.StatusUnauthorized, "missing run token")
				return
			}

			claims, err := token.VerifyRunToken(raw, secretKey)
			if err != nil {
				resp.WriteError(w, http.StatusUnauthorized, "invalid run token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithRunID(r.Context(), claims.RunID())))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, value, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(value)
		}
		return ""
	}
	if c, err := r.Cookie(RunTokenCookie); err == nil {
		return c.Value
	}
	return ""
}
