// handlers/leaderboard.go
package handlers

import (
	"net/http"

	"goal-tracker/gamification"
)

func GetLeaderboard(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := queryInt(r, "limit", 10, 100)

		entries, err := store.Leaderboard(r.Context(), limit)
		if err != nil {
			internalError(w, r, "liderlik tablosu okunamadı", err)
			return
		}

		for i := range entries {
			entries[i].Level = gamification.Level(entries[i].TotalPoints)
		}

		writeJSON(w, http.StatusOK, entries)
	}
}
