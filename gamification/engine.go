// Package gamification hedef geçmişinden puan, seviye, seri ve başarımları
// hesaplar. Durum tutmaz, her okumada baştan hesaplanır.
package gamification

import (
	"math"
	"sort"
	"time"

	"goal-tracker/models"

	"github.com/shopspring/decimal"
)

const (
	pointsPerCompleted = 100
	pointsPerGoal      = 10
	pointsPerLevel     = 500
)

// Record motorun bir hedeften ihtiyaç duyduğu alanlar.
type Record struct {
	Category    models.Category
	Status      models.GoalStatus
	IsFinancial bool
	StartDate   models.Date
	DueDate     models.Date
	CompletedAt *time.Time
	// Kullanıcının varsayılan para birimine çevrilmiş birikim
	Saved decimal.Decimal
}

type Summary struct {
	TotalGoals        int `json:"totalGoals"`
	CompletedGoals    int `json:"completedGoals"`
	InProgressGoals   int `json:"inProgressGoals"`
	NotStartedGoals   int `json:"notStartedGoals"`
	OverdueGoals      int `json:"delayedGoals"`
	CancelledGoals    int `json:"cancelledGoals"`
	CompletionRate    int `json:"completionRate"`
	AvgDaysToComplete int `json:"avgDaysToComplete"`
}

type Stats struct {
	TotalPoints       int             `json:"totalPoints"`
	AchievementPoints int             `json:"achievementPoints"`
	Level             int             `json:"level"`
	CurrentStreak     int             `json:"currentStreak"`
	LongestStreak     int             `json:"longestStreak"`
	TotalCompleted    int             `json:"totalCompleted"`
	TotalSaved        decimal.Decimal `json:"totalSaved"`
	Summary           Summary         `json:"summary"`
	// Koşulu şu an sağlanan başarım kodları, katalog sırasıyla
	Met []string `json:"met"`
}

// Compute gün sınırlarını UTC'ye göre çizer; now hangi bölgede verilirse verilsin.
func Compute(records []Record, now time.Time) Stats {
	now = now.UTC()
	today := models.DateOf(now)
	summary := summarize(records, today)
	current, longest := Streaks(completionDays(records), today)

	facts := Facts{
		TotalGoals:     summary.TotalGoals,
		CompletedGoals: summary.CompletedGoals,
		CurrentStreak:  current,
		TotalSaved:     decimal.Zero,
	}
	categories := map[models.Category]struct{}{}
	for _, r := range records {
		if r.Category != "" {
			categories[r.Category] = struct{}{}
		}
		if r.IsFinancial {
			facts.TotalSaved = facts.TotalSaved.Add(r.Saved)
		}
		if r.Status != models.StatusCompleted || r.CompletedAt == nil {
			continue
		}
		if r.IsFinancial {
			facts.CompletedFinancial++
		}
		if !r.DueDate.IsZero() && models.DateOf(r.CompletedAt.UTC()).Before(r.DueDate.Time) {
			facts.CompletedEarly++
		}
	}
	facts.Categories = len(categories)

	stats := Stats{
		TotalPoints:    summary.CompletedGoals*pointsPerCompleted + summary.TotalGoals*pointsPerGoal,
		CurrentStreak:  current,
		LongestStreak:  longest,
		TotalCompleted: summary.CompletedGoals,
		TotalSaved:     facts.TotalSaved.Round(2),
		Summary:        summary,
		Met:            []string{},
	}
	stats.Level = Level(stats.TotalPoints)

	for _, def := range Catalog {
		if def.Met(facts) {
			stats.Met = append(stats.Met, def.Code)
			stats.AchievementPoints += def.Points
		}
	}
	return stats
}

func Level(points int) int {
	if points < 0 {
		return 1
	}
	return points/pointsPerLevel + 1
}

func summarize(records []Record, today models.Date) Summary {
	var s Summary
	var completedDays float64
	var timed int

	for _, r := range records {
		s.TotalGoals++
		switch {
		case r.Status == models.StatusCompleted:
			s.CompletedGoals++
			if r.CompletedAt != nil && !r.StartDate.IsZero() {
				completedDays += r.CompletedAt.Sub(r.StartDate.Time).Hours() / 24
				timed++
			}
		case r.Status == models.StatusCancelled:
			s.CancelledGoals++
		case r.Status == models.StatusOverdue,
			!r.DueDate.IsZero() && r.DueDate.Before(today.Time):
			s.OverdueGoals++
		case r.Status == models.StatusInProgress:
			s.InProgressGoals++
		default:
			s.NotStartedGoals++
		}
	}

	if s.TotalGoals > 0 {
		s.CompletionRate = int(math.Round(float64(s.CompletedGoals) / float64(s.TotalGoals) * 100))
	}
	if timed > 0 {
		s.AvgDaysToComplete = int(math.Round(completedDays / float64(timed)))
	}
	return s
}

func completionDays(records []Record) []models.Date {
	seen := map[models.Date]struct{}{}
	var days []models.Date
	for _, r := range records {
		if r.Status != models.StatusCompleted || r.CompletedAt == nil {
			continue
		}
		d := models.DateOf(r.CompletedAt.UTC())
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	return days
}

// Streaks güncel ve en uzun seriyi döner. Bugün henüz tamamlama yoksa
// dünde biten seri hâlâ güncel sayılır.
func Streaks(days []models.Date, today models.Date) (current, longest int) {
	if len(days) == 0 {
		return 0, 0
	}

	sorted := make([]models.Date, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j].Time) })

	run := 0
	var prev models.Date
	for i, d := range sorted {
		switch {
		case i > 0 && d.Equal(prev.Time):
			continue
		case i > 0 && prev.DaysUntil(d) == 1:
			run++
		default:
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = d
	}

	last := sorted[len(sorted)-1]
	if gap := last.DaysUntil(today); gap == 0 || gap == 1 {
		current = run
	}
	return current, longest
}
