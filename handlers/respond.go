// handlers/respond.go
package handlers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"goal-tracker/database"
	"goal-tracker/middleware"
	"goal-tracker/models"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// now testlerde sabitlenir.
var now = time.Now

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("cevap yazılamadı", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// internalError hatayı loglar, istemciye ayrıntı vermez.
func internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	zap.L().Error(msg,
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.RequestID(r.Context())),
		zap.Error(err))
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	return json.NewDecoder(r.Body).Decode(v)
}

func currentUser(r *http.Request) int64 {
	id, _ := middleware.UserID(r.Context())
	return id
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryInt boş ya da hatalı değerde def, üst sınır max.
func queryInt(r *http.Request, key string, def, max int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 1 {
		return def
	}
	if max > 0 && n > max {
		return max
	}
	return n
}

// loadGoal sahipliği kontrol eder; bulunamazsa 404 yazar ve false döner.
func loadGoal(w http.ResponseWriter, r *http.Request, store Store) (*models.Goal, bool) {
	goalID, ok := pathID(r, "goalId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid goal id")
		return nil, false
	}
	goal, err := store.GetGoal(r.Context(), currentUser(r), goalID)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Goal not found")
		return nil, false
	}
	if err != nil {
		internalError(w, r, "hedef okunamadı", err)
		return nil, false
	}
	return goal, true
}

// logActivity başarısız olursa isteği bozmaz.
func logActivity(r *http.Request, store Store, goalID *int64, kind, description string) {
	a := models.Activity{
		UserID:      currentUser(r),
		GoalID:      goalID,
		Type:        kind,
		Description: description,
		IPAddress:   clientIP(r),
	}
	if err := store.LogActivity(r.Context(), a); err != nil {
		zap.L().Warn("aktivite kaydedilemedi", zap.String("type", kind), zap.Error(err))
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func today() models.Date {
	return models.DateOf(now().UTC())
}
