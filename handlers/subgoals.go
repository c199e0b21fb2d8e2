// handlers/subgoals.go
package handlers

import (
	"errors"
	"net/http"

	"goal-tracker/database"
	"goal-tracker/models"
)

func GetSubgoals(store Store) http.HandlerFunc {
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

		writeJSON(w, http.StatusOK, subgoals)
	}
}

func CreateSubgoal(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goal, ok := loadGoal(w, r, store)
		if !ok {
			return
		}

		var req models.CreateSubgoalRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		// Bağımlılık aynı hedefin alt hedefi olmalı
		if req.DependsOnSubgoalID != nil {
			_, err := store.GetSubgoal(r.Context(), goal.ID, *req.DependsOnSubgoalID)
			if errors.Is(err, database.ErrNotFound) {
				writeError(w, http.StatusBadRequest, "depends_on_subgoal_id must reference a subgoal of the same goal")
				return
			}
			if err != nil {
				internalError(w, r, "bağımlı alt hedef okunamadı", err)
				return
			}
		}

		subgoal := req.Subgoal(goal.ID)
		if err := store.CreateSubgoal(r.Context(), subgoal); err != nil {
			internalError(w, r, "alt hedef oluşturulamadı", err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"subgoalId": subgoal.ID,
			"message":   "Subgoal created successfully",
		})
	}
}

func UpdateSubgoal(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subgoal, ok := loadSubgoal(w, r, store)
		if !ok {
			return
		}

		var update models.SubgoalUpdate
		if err := decodeJSON(r, &update); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := update.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		update.Apply(subgoal, now())

		err := store.UpdateSubgoal(r.Context(), subgoal)
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Subgoal not found")
			return
		}
		if err != nil {
			internalError(w, r, "alt hedef güncellenemedi", err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Subgoal updated successfully",
			"subgoal": subgoal,
		})
	}
}

func DeleteSubgoal(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subgoal, ok := loadSubgoal(w, r, store)
		if !ok {
			return
		}

		err := store.DeleteSubgoal(r.Context(), subgoal.GoalID, subgoal.ID)
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Subgoal not found")
			return
		}
		if err != nil {
			internalError(w, r, "alt hedef silinemedi", err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Subgoal deleted successfully",
		})
	}
}

// loadSubgoal önce üst hedefin sahipliğini doğrular.
func loadSubgoal(w http.ResponseWriter, r *http.Request, store Store) (*models.Subgoal, bool) {
	goal, ok := loadGoal(w, r, store)
	if !ok {
		return nil, false
	}

	subgoalID, ok := pathID(r, "subgoalId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid subgoal id")
		return nil, false
	}

	subgoal, err := store.GetSubgoal(r.Context(), goal.ID, subgoalID)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Subgoal not found")
		return nil, false
	}
	if err != nil {
		internalError(w, r, "alt hedef okunamadı", err)
		return nil, false
	}
	return subgoal, true
}
