package handlers

import (
	"context"
	"net/http"
	"testing"

	"goal-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	subgoalsPattern = "/api/goals/{goalId:[0-9]+}/subgoals"
	subgoalPattern  = "/api/goals/{goalId:[0-9]+}/subgoals/{subgoalId:[0-9]+}"
)

func TestCreateSubgoalPositions(t *testing.T) {
	store := newFakeStore()
	owner := seedUser(t, store, "ada")
	goalID := seedGoal(t, store, models.Goal{UserID: owner, Title: "Trip"})
	target := "/api/goals/" + itoa(goalID) + "/subgoals"

	for _, title := range []string{"Book flight", "Book hotel"} {
		rec := do(t, CreateSubgoal(store), "POST", subgoalsPattern, target,
			map[string]string{"title": title, "due_date": "2024-03-20"}, owner)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := do(t, GetSubgoals(store), "GET", subgoalsPattern, target, nil, owner)
	require.Equal(t, http.StatusOK, rec.Code)
	var subgoals []models.Subgoal
	decode(t, rec, &subgoals)
	require.Len(t, subgoals, 2)
	assert.Equal(t, "Book flight", subgoals[0].Title)
	assert.Equal(t, 1, subgoals[0].Position)
	assert.Equal(t, 2, subgoals[1].Position)
}

func TestCreateSubgoalDependencyMustShareGoal(t *testing.T) {
	store := newFakeStore()
	owner := seedUser(t, store, "ada")
	first := seedGoal(t, store, models.Goal{UserID: owner, Title: "A"})
	second := seedGoal(t, store, models.Goal{UserID: owner, Title: "B"})

	foreign := &models.Subgoal{GoalID: second, Title: "elsewhere"}
	require.NoError(t, store.CreateSubgoal(context.Background(), foreign))

	rec := do(t, CreateSubgoal(store), "POST", subgoalsPattern, "/api/goals/"+itoa(first)+"/subgoals",
		map[string]interface{}{"title": "step", "due_date": "2024-03-20", "depends_on_subgoal_id": foreign.ID}, owner)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	local := &models.Subgoal{GoalID: first, Title: "before"}
	require.NoError(t, store.CreateSubgoal(context.Background(), local))

	rec = do(t, CreateSubgoal(store), "POST", subgoalsPattern, "/api/goals/"+itoa(first)+"/subgoals",
		map[string]interface{}{"title": "step", "due_date": "2024-03-20", "depends_on_subgoal_id": local.ID}, owner)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestSubgoalsRequireGoalOwnership(t *testing.T) {
	store := newFakeStore()
	owner := seedUser(t, store, "ada")
	other := seedUser(t, store, "bob")
	goalID := seedGoal(t, store, models.Goal{UserID: owner, Title: "A"})
	sg := &models.Subgoal{GoalID: goalID, Title: "step"}
	require.NoError(t, store.CreateSubgoal(context.Background(), sg))

	rec := do(t, GetSubgoals(store), "GET", subgoalsPattern, "/api/goals/"+itoa(goalID)+"/subgoals", nil, other)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, DeleteSubgoal(store), "DELETE", subgoalPattern,
		"/api/goals/"+itoa(goalID)+"/subgoals/"+itoa(sg.ID), nil, other)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Len(t, store.subgoals, 1)
}

func TestUpdateSubgoalCompletion(t *testing.T) {
	freezeTime(t)
	store := newFakeStore()
	owner := seedUser(t, store, "ada")
	goalID := seedGoal(t, store, models.Goal{UserID: owner, Title: "A"})
	sg := &models.Subgoal{GoalID: goalID, Title: "step", Status: "not_started"}
	require.NoError(t, store.CreateSubgoal(context.Background(), sg))
	target := "/api/goals/" + itoa(goalID) + "/subgoals/" + itoa(sg.ID)

	rec := do(t, UpdateSubgoal(store), "PUT", subgoalPattern, target, map[string]string{"status": "completed"}, owner)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got, _ := store.GetSubgoal(context.Background(), goalID, sg.ID)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, fixedNow, *got.CompletedAt)

	rec = do(t, UpdateSubgoal(store), "PUT", subgoalPattern, target, map[string]string{"status": "in_progress"}, owner)
	require.Equal(t, http.StatusOK, rec.Code)
	got, _ = store.GetSubgoal(context.Background(), goalID, sg.ID)
	assert.Nil(t, got.CompletedAt)

	rec = do(t, UpdateSubgoal(store), "PUT", subgoalPattern, target, map[string]string{"status": "overdue"}, owner)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, UpdateSubgoal(store), "PUT", subgoalPattern,
		"/api/goals/"+itoa(goalID)+"/subgoals/999", map[string]string{"title": "x"}, owner)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteSubgoal(t *testing.T) {
	store := newFakeStore()
	owner := seedUser(t, store, "ada")
	goalID := seedGoal(t, store, models.Goal{UserID: owner, Title: "A"})
	sg := &models.Subgoal{GoalID: goalID, Title: "step"}
	require.NoError(t, store.CreateSubgoal(context.Background(), sg))

	rec := do(t, DeleteSubgoal(store), "DELETE", subgoalPattern,
		"/api/goals/"+itoa(goalID)+"/subgoals/"+itoa(sg.ID), nil, owner)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.subgoals)
}
