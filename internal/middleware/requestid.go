// Package middleware carries HTTP middleware shared by every route.
package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"
)

// HeaderRequestID is the response header carrying the per-request id.
const HeaderRequestID = "X-Request-ID"

// RequestID tags every request with an id, propagates it through the logging
// context, and records request latency. Inbound ids are honoured so callers
// can correlate across services.
func RequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		ctx := logx.ContextWithFields(r.Context(), logx.Field("request_id", id))
		w.Header().Set(HeaderRequestID, id)

		logx.WithContext(ctx).Infof("incoming %s request to %s", r.Method, r.URL.Path)
		start := time.Now()
		next(w, r.WithContext(ctx))
		logx.WithContext(ctx).Infof("request completed in %s", time.Since(start))
	}
}
