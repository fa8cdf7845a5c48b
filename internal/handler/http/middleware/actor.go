package middleware

import (
	"context"
	"net/http"
)

type actorKey struct{}

// ActorHeader carries the already-authorized caller identity. Authentication
// happens outside this service; the header is trusted as-is.
const ActorHeader = "X-Actor"

// WithActor puts the X-Actor header value into the request context so
// services can record who created, approved, or locked a run.
func WithActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), actorKey{}, r.Header.Get(ActorHeader))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext returns the caller identity, or "" when none was sent.
func ActorFromContext(ctx context.Context) string {
	actor, _ := ctx.Value(actorKey{}).(string)
	return actor
}
