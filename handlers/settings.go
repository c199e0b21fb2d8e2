// handlers/settings.go
package handlers

import (
	"errors"
	"net/http"

	"goal-tracker/database"
	"goal-tracker/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func ChangePassword(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.PasswordChangeRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		userID := currentUser(r)
		user, err := store.UserByID(r.Context(), userID)
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			internalError(w, r, "kullanıcı okunamadı", err)
			return
		}

		// Mevcut şifre kontrolü
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			writeError(w, http.StatusUnauthorized, "Current password is incorrect")
			return
		}

		newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			internalError(w, r, "şifre hashlenemedi", err)
			return
		}

		if err := store.UpdatePassword(r.Context(), userID, string(newHash)); err != nil {
			internalError(w, r, "şifre güncellenemedi", err)
			return
		}

		zap.L().Info("şifre değiştirildi", zap.Int64("user_id", userID))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Password updated",
		})
	}
}
