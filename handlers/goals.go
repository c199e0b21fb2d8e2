// handlers/goals.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"goal-tracker/database"
	"goal-tracker/models"
	"goal-tracker/realtime"
)

// parseGoalFilter hatalı filtre değerlerini 400 için döndürür.
func parseGoalFilter(r *http.Request) (models.GoalFilter, error) {
	q := r.URL.Query()
	f := models.GoalFilter{
		Category: models.Category(q.Get("category")),
		Priority: models.Priority(q.Get("priority")),
		Search:   strings.TrimSpace(q.Get("search")),
		Sort:     q.Get("sort"),
	}

	if s := q.Get("status"); s != "" {
		status, ok := models.ParseGoalStatus(s)
		if !ok {
			return f, fmt.Errorf("unknown status %q", s)
		}
		f.Status = status
	}
	if f.Category != "" && !f.Category.Valid() {
		return f, fmt.Errorf("unknown category %q", f.Category)
	}
	if f.Priority != "" && !f.Priority.Valid() {
		return f, fmt.Errorf("unknown priority %q", f.Priority)
	}
	switch f.Sort {
	case "", "due_date", "priority", "created", "progress":
	default:
		return f, fmt.Errorf("unknown sort %q", f.Sort)
	}
	return f, nil
}

func GetGoals(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseGoalFilter(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		goals, err := store.ListGoals(r.Context(), currentUser(r), filter)
		if err != nil {
			internalError(w, r, "hedefler listelenemedi", err)
			return
		}

		d := today()
		for i := range goals {
			goals[i].ComputeDerived(d)
		}

		// İlerleme veritabanında tutulmadığı için burada sıralanır
		if filter.Sort == "progress" {
			sort.SliceStable(goals, func(i, j int) bool {
				return goals[i].ProgressPercentage.GreaterThan(goals[j].ProgressPercentage)
			})
		}

		writeJSON(w, http.StatusOK, goals)
	}
}

func GetGoal(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goal, ok := loadGoal(w, r, store)
		if !ok {
			return
		}

		subgoals, err := store.ListSubgoals(r.Context(), goal.ID)
		if err != nil {
			internalError(w, r, "alt hedefler okunamadı", err)
			return
		}
		transactions, err := store.ListTransactions(r.Context(), goal.ID)
		if err != nil {
			internalError(w, r, "işlemler okunamadı", err)
			return
		}

		goal.Subgoals = subgoals
		goal.Transactions = transactions
		goal.ComputeDerived(today())

		writeJSON(w, http.StatusOK, goal)
	}
}

func CreateGoal(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateGoalRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		goal := req.Goal(currentUser(r))
		if err := store.CreateGoal(r.Context(), goal); err != nil {
			internalError(w, r, "hedef oluşturulamadı", err)
			return
		}

		logActivity(r, store, &goal.ID, models.ActivityGoalCreated, "Created goal: "+goal.Title)

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"goalId":  goal.ID,
			"message": "Goal created successfully",
		})
	}
}

func UpdateGoal(store Store, feed Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goal, ok := loadGoal(w, r, store)
		if !ok {
			return
		}

		var update models.GoalUpdate
		if err := decodeJSON(r, &update); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := update.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		wasCompleted := goal.IsCompleted()
		if err := update.Apply(goal, now()); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		err := store.UpdateGoal(r.Context(), goal)
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Goal not found")
			return
		}
		if err != nil {
			internalError(w, r, "hedef güncellenemedi", err)
			return
		}

		logActivity(r, store, &goal.ID, models.ActivityGoalUpdated, "Updated goal: "+goal.Title)

		if !wasCompleted && goal.IsCompleted() {
			feed.Publish(goal.UserID, realtime.EventGoalCompleted, map[string]interface{}{
				"goalId": goal.ID,
				"title":  goal.Title,
			})
		}

		goal.ComputeDerived(today())
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Goal updated successfully",
			"goal":    goal,
		})
	}
}

func DeleteGoal(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goal, ok := loadGoal(w, r, store)
		if !ok {
			return
		}

		err := store.DeleteGoal(r.Context(), goal.UserID, goal.ID)
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Goal not found")
			return
		}
		if err != nil {
			internalError(w, r, "hedef silinemedi", err)
			return
		}

		// Hedef silindiği için log kaydı hedefe bağlanmaz
		logActivity(r, store, nil, models.ActivityGoalDeleted, "Deleted goal: "+goal.Title)

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Goal deleted successfully",
		})
	}
}
