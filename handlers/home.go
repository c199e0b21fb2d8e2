// handlers/home.go
package handlers

import (
	"net/http"

	"goal-tracker/realtime"

	"go.uber.org/zap"
)

func Ping(message string) http.HandlerFunc {
	if message == "" {
		message = "ping"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": message})
	}
}

// Realtime kimliği doğrulanmış bağlantıyı olay akışına bağlar.
func Realtime(hub *realtime.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUser(r)
		if err := hub.ServeWS(userID, w, r); err != nil {
			// Upgrader hata cevabını kendisi yazar
			zap.L().Warn("websocket yükseltilemedi", zap.Int64("user_id", userID), zap.Error(err))
		}
	}
}
