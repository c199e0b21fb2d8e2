// middleware/auth.go
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/gorilla/websocket"
)

const SessionName = "session"

type contextKey int

const (
	userIDKey contextKey = iota
	requestIDKey
)

// UserID Auth middleware'inin bağladığı kullanıcı.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok && id > 0
}

func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

func Auth(tokens *Tokens, store sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Session kontrolü
			if session, err := store.Get(r, SessionName); err == nil {
				if auth, ok := session.Values["authenticated"].(bool); ok && auth {
					if id, ok := session.Values["user_id"].(int64); ok && id > 0 {
						next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
						return
					}
				}
			}

			// JWT token kontrolü
			raw := bearerToken(r)
			if raw == "" {
				writeError(w, http.StatusUnauthorized, "Missing or invalid authorization header")
				return
			}

			claims, err := tokens.Parse(raw)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.UserID)))
		})
	}
}

// Tarayıcılar websocket isteğine header ekleyemediği için token query'den de okunur.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return ""
		}
		return strings.TrimSpace(parts[1])
	}
	if websocket.IsWebSocketUpgrade(r) {
		return r.URL.Query().Get("token")
	}
	return ""
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
