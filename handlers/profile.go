// handlers/profile.go
package handlers

import (
	"errors"
	"net/http"

	"goal-tracker/database"
	"goal-tracker/models"
)

func GetMyProfile(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := store.UserByID(r.Context(), currentUser(r))
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			internalError(w, r, "profil okunamadı", err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

func UpdateProfile(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var updates models.ProfileUpdate
		if err := decodeJSON(r, &updates); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := updates.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		userID := currentUser(r)
		err := store.UpdateProfile(r.Context(), userID, updates)
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			internalError(w, r, "profil güncellenemedi", err)
			return
		}

		user, err := store.UserByID(r.Context(), userID)
		if err != nil {
			internalError(w, r, "profil okunamadı", err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Profile updated",
			"user":    user,
		})
	}
}
