package gamification

import "github.com/shopspring/decimal"

// Facts başarım koşullarının değerlendirildiği özet.
type Facts struct {
	TotalGoals         int
	CompletedGoals     int
	CompletedFinancial int
	CompletedEarly     int
	Categories         int
	CurrentStreak      int
	TotalSaved         decimal.Decimal
}

type Definition struct {
	Code        string
	Name        string
	Description string
	Icon        string
	Points      int
	Category    string
	Met         func(Facts) bool
}

var savingsThreshold = decimal.NewFromInt(1000)

// Catalog veritabanı tohumu da buradan üretilir, kodlar sabit kalmalı.
var Catalog = []Definition{
	{"first_goal", "Goal Setter", "Create your first goal", "🎯", 10, "beginner",
		func(f Facts) bool { return f.TotalGoals >= 1 }},
	{"first_completion", "Goal Achiever", "Complete your first goal", "✅", 20, "beginner",
		func(f Facts) bool { return f.CompletedGoals >= 1 }},
	{"ambitious", "Ambitious", "Create 5 goals", "🚀", 30, "beginner",
		func(f Facts) bool { return f.TotalGoals >= 5 }},
	{"productive", "Productive", "Complete 5 goals", "💪", 50, "completion",
		func(f Facts) bool { return f.CompletedGoals >= 5 }},
	{"goal_master", "Goal Master", "Complete 10 goals", "👑", 100, "completion",
		func(f Facts) bool { return f.CompletedGoals >= 10 }},
	{"financial_master", "Financial Master", "Complete a financial goal", "💰", 60, "financial",
		func(f Facts) bool { return f.CompletedFinancial >= 1 }},
	{"financial_saver", "Saver", "Save 1000 in your default currency", "🏦", 75, "financial",
		func(f Facts) bool { return f.TotalSaved.GreaterThanOrEqual(savingsThreshold) }},
	{"speed_demon", "Speed Demon", "Complete a goal before its due date", "⚡", 25, "efficiency",
		func(f Facts) bool { return f.CompletedEarly >= 1 }},
	{"streak_7", "On Fire", "Maintain a 7-day completion streak", "🔥", 50, "consistency",
		func(f Facts) bool { return f.CurrentStreak >= 7 }},
	{"unstoppable", "Unstoppable", "Maintain a 30-day completion streak", "🌋", 150, "consistency",
		func(f Facts) bool { return f.CurrentStreak >= 30 }},
	{"polymath", "Polymath", "Create goals in all categories", "🌟", 80, "completion",
		func(f Facts) bool { return f.Categories >= 8 }},
}

func Lookup(code string) (Definition, bool) {
	for _, d := range Catalog {
		if d.Code == code {
			return d, true
		}
	}
	return Definition{}, false
}
