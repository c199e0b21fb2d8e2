// handlers/calendar.go
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"goal-tracker/models"
)

type calendarDay struct {
	Date  models.Date   `json:"date"`
	Goals []models.Goal `json:"goals"`
}

// GetCalendar ayın hedeflerini bitiş gününe göre gruplar.
func GetCalendar(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d := today()
		year, month := d.Year(), int(d.Month())

		if s := r.URL.Query().Get("year"); s != "" {
			y, err := strconv.Atoi(s)
			if err != nil || y < 1 || y > 9999 {
				writeError(w, http.StatusBadRequest, "Invalid year")
				return
			}
			year = y
		}
		if s := r.URL.Query().Get("month"); s != "" {
			m, err := strconv.Atoi(s)
			if err != nil || m < 1 || m > 12 {
				writeError(w, http.StatusBadRequest, "Invalid month")
				return
			}
			month = m
		}

		first := models.NewDate(year, time.Month(month), 1)
		last := models.DateOf(first.AddDate(0, 1, -1))

		goals, err := store.GoalsDueBetween(r.Context(), currentUser(r), first, last)
		if err != nil {
			internalError(w, r, "takvim okunamadı", err)
			return
		}

		days := []calendarDay{}
		for _, g := range goals {
			g.ComputeDerived(d)
			if n := len(days); n > 0 && days[n-1].Date.Equal(g.DueDate.Time) {
				days[n-1].Goals = append(days[n-1].Goals, g)
				continue
			}
			days = append(days, calendarDay{Date: g.DueDate, Goals: []models.Goal{g}})
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"year":  year,
			"month": month,
			"days":  days,
		})
	}
}
