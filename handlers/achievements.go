// handlers/achievements.go
package handlers

import (
	"fmt"
	"net/http"

	"goal-tracker/gamification"
	"goal-tracker/models"
	"goal-tracker/realtime"
)

func GetAchievements(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		achievements, err := store.ListAchievements(r.Context(), currentUser(r))
		if err != nil {
			internalError(w, r, "başarımlar okunamadı", err)
			return
		}

		writeJSON(w, http.StatusOK, achievements)
	}
}

// CheckAchievements sağlanan koşulları kaydeder; sadece yeni açılanlar döner.
func CheckAchievements(store Store, feed Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUser(r)
		stats, err := computeStats(r.Context(), store, rateTable(r, store), userID)
		if err != nil {
			internalError(w, r, "istatistikler hesaplanamadı", err)
			return
		}

		codes, err := store.UnlockAchievements(r.Context(), userID, stats.Met)
		if err != nil {
			internalError(w, r, "başarımlar kaydedilemedi", err)
			return
		}

		unlocked := make([]map[string]interface{}, 0, len(codes))
		for _, code := range codes {
			def, ok := gamification.Lookup(code)
			if !ok {
				continue
			}
			item := map[string]interface{}{
				"code":        def.Code,
				"name":        def.Name,
				"description": def.Description,
				"icon":        def.Icon,
				"points":      def.Points,
			}
			unlocked = append(unlocked, item)

			logActivity(r, store, nil, models.ActivityAchievement, "Unlocked achievement: "+def.Name)
			feed.Publish(userID, realtime.EventAchievementUnlocked, item)
		}

		message := "No new achievements"
		if len(unlocked) > 0 {
			message = fmt.Sprintf("%d new achievement(s) unlocked", len(unlocked))
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"unlockedAchievements": unlocked,
			"message":              message,
		})
	}
}
