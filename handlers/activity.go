// handlers/activity.go
package handlers

import "net/http"

func GetActivity(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := queryInt(r, "limit", 20, 100)

		activity, err := store.RecentActivity(r.Context(), currentUser(r), limit)
		if err != nil {
			internalError(w, r, "aktivite okunamadı", err)
			return
		}

		writeJSON(w, http.StatusOK, activity)
	}
}
