package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"triphita/internal/reqctx"
)

// RequestID присваивает каждому запросу идентификатор (или переиспользует
// пришедший в заголовке) и кладёт его в контекст для логов.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}

		ctx := reqctx.WithRequestID(r.Context(), rid)
		w.Header().Set("X-Request-ID", rid)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
