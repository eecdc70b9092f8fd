package middleware

import (
	"context"
	"net/http"
	"regexp"
)

// ClientIDHeader names the caller whose selection memory is used.
const ClientIDHeader = "X-Client-ID"

// AnonymousClientID is used when the header is absent or malformed.
const AnonymousClientID = "anonymous"

var clientIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

type contextKey string

const clientIDKey contextKey = "clientID"

// SetClientID returns a context carrying the client ID.
func SetClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientIDKey, clientID)
}

// ClientIDFromContext returns the client ID set by ClientIdentity, or
// AnonymousClientID.
func ClientIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(clientIDKey).(string); ok && id != "" {
		return id
	}
	return AnonymousClientID
}

// ClientIdentity reads the X-Client-ID header into the request context.
// It identifies whose remembered selection to use and is not access control.
func ClientIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(ClientIDHeader)
		if !clientIDPattern.MatchString(id) {
			id = AnonymousClientID
		}
		next.ServeHTTP(w, r.WithContext(SetClientID(r.Context(), id)))
	})
}
