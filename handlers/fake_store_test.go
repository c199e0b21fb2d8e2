package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"goal-tracker/database"
	"goal-tracker/gamification"
	"goal-tracker/middleware"
	"goal-tracker/models"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func freezeTime(t *testing.T) {
	t.Helper()
	prev := now
	now = func() time.Time { return fixedNow }
	t.Cleanup(func() { now = prev })
}

type fakeStore struct {
	mu sync.Mutex

	nextID       int64
	users        map[int64]*models.User
	goals        map[int64]*models.Goal
	subgoals     map[int64]*models.Subgoal
	transactions []models.Transaction
	rates        []models.Rate
	ratesErr     error
	unlocked     map[int64]map[string]time.Time
	stats        map[int64]models.UserStatistics
	activity     []models.Activity
	lastLogin    map[int64]time.Time
}

var _ Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     map[int64]*models.User{},
		goals:     map[int64]*models.Goal{},
		subgoals:  map[int64]*models.Subgoal{},
		unlocked:  map[int64]map[string]time.Time{},
		stats:     map[int64]models.UserStatistics{},
		lastLogin: map[int64]time.Time{},
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) CreateUser(ctx context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return database.ErrDuplicate
		}
	}
	u.ID = f.id()
	u.DefaultCurrency = models.USD
	u.Timezone = "UTC"
	u.Language = "en"
	u.Theme = "light"
	u.CreatedAt = fixedNow
	cp := *u
	f.users[u.ID] = &cp
	f.stats[u.ID] = models.UserStatistics{UserID: u.ID}
	return nil
}

func (f *fakeStore) UserByLogin(ctx context.Context, login string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == login || u.Username == login {
			cp := *u
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeStore) UserByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLogin[id] = at
	return nil
}

func (f *fakeStore) UpdateProfile(ctx context.Context, id int64, p models.ProfileUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return database.ErrNotFound
	}
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.AvatarURL != nil {
		u.AvatarURL = p.AvatarURL
	}
	if p.DefaultCurrency != nil {
		u.DefaultCurrency = *p.DefaultCurrency
	}
	if p.Timezone != nil {
		u.Timezone = *p.Timezone
	}
	if p.Language != nil {
		u.Language = *p.Language
	}
	if p.Theme != nil {
		u.Theme = *p.Theme
	}
	return nil
}

func (f *fakeStore) UpdatePassword(ctx context.Context, id int64, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return database.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeStore) aggregate(g *models.Goal) {
	g.TotalSubgoals, g.CompletedSubgoals = 0, 0
	for _, s := range f.subgoals {
		if s.GoalID != g.ID {
			continue
		}
		g.TotalSubgoals++
		if s.Status == models.SubgoalStatus(models.StatusCompleted) {
			g.CompletedSubgoals++
		}
	}
}

func (f *fakeStore) ListGoals(ctx context.Context, userID int64, flt models.GoalFilter) ([]models.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Goal{}
	for _, g := range f.goals {
		if g.UserID != userID {
			continue
		}
		if flt.Status != "" && g.Status != flt.Status {
			continue
		}
		if flt.Category != "" && g.Category != flt.Category {
			continue
		}
		if flt.Priority != "" && g.Priority != flt.Priority {
			continue
		}
		if flt.Search != "" {
			needle := strings.ToLower(flt.Search)
			if !strings.Contains(strings.ToLower(g.Title), needle) &&
				!strings.Contains(strings.ToLower(g.Description), needle) {
				continue
			}
		}
		cp := *g
		f.aggregate(&cp)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool {
		switch flt.Sort {
		case "priority":
			return out[i].Priority.Rank() < out[j].Priority.Rank()
		case "created":
			return out[i].ID > out[j].ID
		}
		if !out[i].DueDate.Equal(out[j].DueDate.Time) {
			return out[i].DueDate.Before(out[j].DueDate.Time)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeStore) GetGoal(ctx context.Context, userID, goalID int64) (*models.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.goals[goalID]
	if !ok || g.UserID != userID {
		return nil, database.ErrNotFound
	}
	cp := *g
	f.aggregate(&cp)
	return &cp, nil
}

func (f *fakeStore) CreateGoal(ctx context.Context, g *models.Goal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g.ID = f.id()
	g.CreatedAt = fixedNow
	g.UpdatedAt = fixedNow
	cp := *g
	f.goals[g.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateGoal(ctx context.Context, g *models.Goal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.goals[g.ID]
	if !ok || existing.UserID != g.UserID {
		return database.ErrNotFound
	}
	cp := *g
	cp.Subgoals, cp.Transactions = nil, nil
	f.goals[g.ID] = &cp
	return nil
}

func (f *fakeStore) DeleteGoal(ctx context.Context, userID, goalID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.goals[goalID]
	if !ok || g.UserID != userID {
		return database.ErrNotFound
	}
	delete(f.goals, goalID)
	for id, s := range f.subgoals {
		if s.GoalID == goalID {
			delete(f.subgoals, id)
		}
	}
	return nil
}

func (f *fakeStore) GoalsDueBetween(ctx context.Context, userID int64, from, to models.Date) ([]models.Goal, error) {
	all, _ := f.ListGoals(ctx, userID, models.GoalFilter{})
	out := []models.Goal{}
	for _, g := range all {
		if !g.DueDate.Before(from.Time) && !g.DueDate.After(to.Time) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeStore) ListSubgoals(ctx context.Context, goalID int64) ([]models.Subgoal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Subgoal{}
	for _, s := range f.subgoals {
		if s.GoalID == goalID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeStore) GetSubgoal(ctx context.Context, goalID, subgoalID int64) (*models.Subgoal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.subgoals[subgoalID]
	if !ok || s.GoalID != goalID {
		return nil, database.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) CreateSubgoal(ctx context.Context, s *models.Subgoal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	pos := 0
	for _, existing := range f.subgoals {
		if existing.GoalID == s.GoalID && existing.Position > pos {
			pos = existing.Position
		}
	}
	s.ID = f.id()
	s.Position = pos + 1
	cp := *s
	f.subgoals[s.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateSubgoal(ctx context.Context, s *models.Subgoal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.subgoals[s.ID]
	if !ok || existing.GoalID != s.GoalID {
		return database.ErrNotFound
	}
	cp := *s
	f.subgoals[s.ID] = &cp
	return nil
}

func (f *fakeStore) DeleteSubgoal(ctx context.Context, goalID, subgoalID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.subgoals[subgoalID]
	if !ok || s.GoalID != goalID {
		return database.ErrNotFound
	}
	delete(f.subgoals, subgoalID)
	return nil
}

func (f *fakeStore) ListTransactions(ctx context.Context, goalID int64) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Transaction{}
	for _, t := range f.transactions {
		if t.GoalID == goalID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TransactionDate.After(out[j].TransactionDate.Time)
	})
	return out, nil
}

func (f *fakeStore) AddTransaction(ctx context.Context, t *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.goals[t.GoalID]
	if !ok || g.UserID != t.UserID {
		return database.ErrNotFound
	}
	t.ID = f.id()
	t.CreatedAt = fixedNow
	f.transactions = append(f.transactions, *t)
	g.CurrentValue = g.CurrentValue.Add(t.Delta())
	return nil
}

func (f *fakeStore) ListRates(ctx context.Context) ([]models.Rate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ratesErr != nil {
		return nil, f.ratesErr
	}
	return append([]models.Rate(nil), f.rates...), nil
}

func (f *fakeStore) UpsertRate(ctx context.Context, r models.Rate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.rates {
		if existing.From == r.From && existing.To == r.To {
			f.rates[i] = r
			return nil
		}
	}
	f.rates = append(f.rates, r)
	return nil
}

func (f *fakeStore) ListAchievements(ctx context.Context, userID int64) ([]models.Achievement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Achievement{}
	for i, def := range gamification.Catalog {
		a := models.Achievement{
			ID: int64(i + 1), Code: def.Code, Name: def.Name, Description: def.Description,
			Icon: def.Icon, Points: def.Points, Category: def.Category,
		}
		if at, ok := f.unlocked[userID][def.Code]; ok {
			a.Unlocked, a.UnlockedAt = true, &at
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeStore) UnlockAchievements(ctx context.Context, userID int64, codes []string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unlocked[userID] == nil {
		f.unlocked[userID] = map[string]time.Time{}
	}
	fresh := []string{}
	for _, code := range codes {
		if _, ok := f.unlocked[userID][code]; ok {
			continue
		}
		f.unlocked[userID][code] = fixedNow
		fresh = append(fresh, code)
	}
	return fresh, nil
}

func (f *fakeStore) SaveStatistics(ctx context.Context, st models.UserStatistics) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats[st.UserID] = st
	return nil
}

func (f *fakeStore) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := []models.LeaderboardEntry{}
	for id, st := range f.stats {
		entries = append(entries, models.LeaderboardEntry{
			Username:       f.users[id].Username,
			TotalPoints:    st.TotalPoints,
			CompletedGoals: st.CompletedGoals,
			CurrentStreak:  st.CurrentStreak,
			LongestStreak:  st.LongestStreak,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].TotalPoints > entries[j].TotalPoints })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func (f *fakeStore) LogActivity(ctx context.Context, a models.Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = f.id()
	a.CreatedAt = fixedNow
	f.activity = append(f.activity, a)
	return nil
}

func (f *fakeStore) RecentActivity(ctx context.Context, userID int64, limit int) ([]models.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Activity{}
	for i := len(f.activity) - 1; i >= 0 && len(out) < limit; i-- {
		if f.activity[i].UserID == userID {
			out = append(out, f.activity[i])
		}
	}
	return out, nil
}

func (f *fakeStore) activityTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []string{}
	for _, a := range f.activity {
		out = append(out, a.Type)
	}
	return out
}

type published struct {
	UserID  int64
	Type    string
	Payload interface{}
}

type recordingFeed struct {
	mu     sync.Mutex
	events []published
}

func (r *recordingFeed) Publish(userID int64, eventType string, payload interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, published{userID, eventType, payload})
}

var errStoreDown = errors.New("bağlantı koptu")

// do handler'ı verilen mux deseniyle kaydedip isteği çalıştırır.
func do(t *testing.T, h http.HandlerFunc, method, pattern, target string, body interface{}, userID int64) *httptest.ResponseRecorder {
	t.Helper()

	r := mux.NewRouter()
	r.HandleFunc(pattern, h).Methods(method)

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

// seedUser doğrudan kullanıcı ekler.
func seedUser(t *testing.T, f *fakeStore, username string) int64 {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", FullName: username}
	require.NoError(t, f.CreateUser(context.Background(), u))
	return u.ID
}

func seedGoal(t *testing.T, f *fakeStore, g models.Goal) int64 {
	t.Helper()
	if g.Status == "" {
		g.Status = models.StatusNotStarted
	}
	if g.Priority == "" {
		g.Priority = models.PriorityMedium
	}
	if g.Category == "" {
		g.Category = "other"
	}
	if g.StartDate.IsZero() {
		g.StartDate = models.NewDate(2024, time.March, 1)
	}
	if g.DueDate.IsZero() {
		g.DueDate = models.NewDate(2024, time.April, 1)
	}
	require.NoError(t, f.CreateGoal(context.Background(), &g))
	return g.ID
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
