// models/goal.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type Goal struct {
	ID           int64               `json:"goal_id"`
	UserID       int64               `json:"user_id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Category     Category            `json:"category"`
	Priority     Priority            `json:"priority"`
	Status       GoalStatus          `json:"status"`
	IsFinancial  bool                `json:"is_financial"`
	TargetValue  decimal.NullDecimal `json:"target_value"`
	CurrentValue decimal.Decimal     `json:"current_value"`
	Currency     *Currency           `json:"currency"`
	StartDate    Date                `json:"start_date"`
	DueDate      Date                `json:"due_date"`
	CompletedAt  *time.Time          `json:"completed_at"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`

	// Liste sorgusundaki toplamlar
	TotalSubgoals     int             `json:"total_subgoals"`
	CompletedSubgoals int             `json:"completed_subgoals"`
	TotalContributed  decimal.Decimal `json:"total_contributed"`

	// Okuma sırasında hesaplanır, istemciden gelen değer kullanılmaz
	ProgressPercentage decimal.Decimal `json:"progress_percentage"`
	DaysUntilDue       int             `json:"days_until_due"`
	IsOverdue          bool            `json:"is_overdue"`
	SavingsPlan        *SavingsPlan    `json:"savings_plan,omitempty"`

	Subgoals     []Subgoal     `json:"subgoals,omitempty"`
	Transactions []Transaction `json:"transactions,omitempty"`
}

type SavingsPlan struct {
	Remaining decimal.Decimal `json:"remaining"`
	DaysLeft  int             `json:"days_left"`
	PerDay    decimal.Decimal `json:"per_day"`
	PerWeek   decimal.Decimal `json:"per_week"`
	PerMonth  decimal.Decimal `json:"per_month"`
}

func (g *Goal) IsCompleted() bool {
	return g.Status == StatusCompleted
}

// ComputeDerived türetilmiş alanları today'e göre doldurur.
func (g *Goal) ComputeDerived(today Date) {
	if g.Subgoals != nil {
		g.TotalSubgoals = len(g.Subgoals)
		g.CompletedSubgoals = 0
		for _, s := range g.Subgoals {
			if s.Status == SubgoalStatus(StatusCompleted) {
				g.CompletedSubgoals++
			}
		}
	}

	g.DaysUntilDue = today.DaysUntil(g.DueDate)
	g.IsOverdue = g.DaysUntilDue < 0 && g.Status != StatusCompleted && g.Status != StatusCancelled
	g.ProgressPercentage = g.progress()
	g.SavingsPlan = g.savingsPlan()
}

func (g *Goal) progress() decimal.Decimal {
	switch {
	case g.IsCompleted():
		return hundred
	case g.IsFinancial && g.TargetValue.Valid && g.TargetValue.Decimal.IsPositive():
		p := g.CurrentValue.Mul(hundred).Div(g.TargetValue.Decimal)
		if p.IsNegative() {
			return decimal.Zero
		}
		if p.GreaterThan(hundred) {
			return hundred
		}
		return p.Round(2)
	case g.TotalSubgoals > 0:
		return decimal.NewFromInt(int64(g.CompletedSubgoals)).
			Mul(hundred).
			Div(decimal.NewFromInt(int64(g.TotalSubgoals))).
			Round(2)
	}
	return decimal.Zero
}

func (g *Goal) savingsPlan() *SavingsPlan {
	if !g.IsFinancial || !g.TargetValue.Valid || g.IsCompleted() || g.DaysUntilDue <= 0 {
		return nil
	}
	remaining := g.TargetValue.Decimal.Sub(g.CurrentValue)
	if !remaining.IsPositive() {
		return nil
	}

	days := decimal.NewFromInt(int64(g.DaysUntilDue))
	per := func(period int64) decimal.Decimal {
		p := decimal.NewFromInt(period)
		if days.LessThan(p) {
			return remaining.Round(2)
		}
		return remaining.Mul(p).Div(days).Round(2)
	}

	return &SavingsPlan{
		Remaining: remaining.Round(2),
		DaysLeft:  g.DaysUntilDue,
		PerDay:    per(1),
		PerWeek:   per(7),
		PerMonth:  per(30),
	}
}

// CompletionTransition completed'a geçişte zamanı damgalar, çıkışta temizler.
func CompletionTransition(from, to GoalStatus, completedAt *time.Time, now time.Time) *time.Time {
	switch {
	case to == StatusCompleted && from != StatusCompleted:
		t := now
		return &t
	case to != StatusCompleted:
		return nil
	}
	return completedAt
}
