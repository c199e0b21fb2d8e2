// handlers/dashboard.go
package handlers

import (
	"context"
	"net/http"

	"goal-tracker/currency"
	"goal-tracker/gamification"
	"goal-tracker/models"

	"github.com/shopspring/decimal"
)

// computeStats kullanıcının tüm hedeflerinden istatistikleri baştan hesaplar.
func computeStats(ctx context.Context, store Store, table currency.Table, userID int64) (gamification.Stats, error) {
	user, err := store.UserByID(ctx, userID)
	if err != nil {
		return gamification.Stats{}, err
	}
	goals, err := store.ListGoals(ctx, userID, models.GoalFilter{})
	if err != nil {
		return gamification.Stats{}, err
	}

	target := user.DefaultCurrency
	if !target.Valid() {
		target = models.USD
	}

	records := make([]gamification.Record, 0, len(goals))
	for _, g := range goals {
		rec := gamification.Record{
			Category:    g.Category,
			Status:      g.Status,
			IsFinancial: g.IsFinancial,
			StartDate:   g.StartDate,
			DueDate:     g.DueDate,
			CompletedAt: g.CompletedAt,
			Saved:       decimal.Zero,
		}
		if g.IsFinancial && g.Currency != nil {
			if saved, _, err := table.Convert(g.CurrentValue, *g.Currency, target); err == nil {
				rec.Saved = saved
			}
		}
		records = append(records, rec)
	}

	return gamification.Compute(records, now()), nil
}

func GetStatistics(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := computeStats(r.Context(), store, rateTable(r, store), currentUser(r))
		if err != nil {
			internalError(w, r, "istatistikler hesaplanamadı", err)
			return
		}

		writeJSON(w, http.StatusOK, stats)
	}
}

// UpdateStatistics hesaplanan değerleri liderlik tablosu için saklar.
func UpdateStatistics(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := currentUser(r)
		stats, err := computeStats(r.Context(), store, rateTable(r, store), userID)
		if err != nil {
			internalError(w, r, "istatistikler hesaplanamadı", err)
			return
		}

		snapshot := models.UserStatistics{
			UserID:           userID,
			TotalGoals:       stats.Summary.TotalGoals,
			CompletedGoals:   stats.TotalCompleted,
			TotalPoints:      stats.TotalPoints,
			CurrentStreak:    stats.CurrentStreak,
			LongestStreak:    stats.LongestStreak,
			TotalSavedAmount: stats.TotalSaved,
			LastCalculatedAt: now().UTC(),
		}
		if err := store.SaveStatistics(r.Context(), snapshot); err != nil {
			internalError(w, r, "istatistikler kaydedilemedi", err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":    "Statistics updated",
			"statistics": stats,
		})
	}
}
