// models/goal_request.go
package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

const maxTitleLen = 200

type CreateGoalRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Category    Category            `json:"category"`
	Priority    Priority            `json:"priority"`
	StartDate   Date                `json:"start_date"`
	DueDate     Date                `json:"due_date"`
	IsFinancial bool                `json:"is_financial"`
	TargetValue decimal.NullDecimal `json:"target_value"`
	Currency    *Currency           `json:"currency"`
}

func (r CreateGoalRequest) Validate() error {
	var err error
	err = multierr.Append(err, validateTitle(r.Title))
	if r.StartDate.IsZero() {
		err = multierr.Append(err, errors.New("start_date is required"))
	}
	if r.DueDate.IsZero() {
		err = multierr.Append(err, errors.New("due_date is required"))
	}
	err = multierr.Append(err, validateDateRange(r.StartDate, r.DueDate))
	if r.Category != "" && !r.Category.Valid() {
		err = multierr.Append(err, errors.New("unknown category"))
	}
	if r.Priority != "" && !r.Priority.Valid() {
		err = multierr.Append(err, errors.New("priority must be low, medium, high or critical"))
	}
	if r.IsFinancial {
		if !r.TargetValue.Valid || !r.TargetValue.Decimal.IsPositive() {
			err = multierr.Append(err, errors.New("financial goals need a positive target_value"))
		}
		if r.Currency == nil || !r.Currency.Valid() {
			err = multierr.Append(err, errors.New("financial goals need a currency (USD, BRL or EUR)"))
		}
	}
	return err
}

// Goal isteği varsayılanlarla doldurulmuş bir hedefe çevirir.
func (r CreateGoalRequest) Goal(userID int64) *Goal {
	g := &Goal{
		UserID:       userID,
		Title:        strings.TrimSpace(r.Title),
		Description:  r.Description,
		Category:     r.Category,
		Priority:     r.Priority,
		Status:       StatusNotStarted,
		IsFinancial:  r.IsFinancial,
		CurrentValue: decimal.Zero,
		StartDate:    r.StartDate,
		DueDate:      r.DueDate,
	}
	if g.Category == "" {
		g.Category = "other"
	}
	if g.Priority == "" {
		g.Priority = PriorityMedium
	}
	if r.IsFinancial {
		g.TargetValue = decimal.NullDecimal{Decimal: r.TargetValue.Decimal.Round(2), Valid: true}
		g.Currency = r.Currency
	}
	return g
}

// GoalUpdate nil alanlar olduğu gibi kalır.
type GoalUpdate struct {
	Title        *string          `json:"title"`
	Description  *string          `json:"description"`
	Category     *Category        `json:"category"`
	Priority     *Priority        `json:"priority"`
	Status       *string          `json:"status"`
	StartDate    *Date            `json:"start_date"`
	DueDate      *Date            `json:"due_date"`
	TargetValue  *decimal.Decimal `json:"target_value"`
	CurrentValue *decimal.Decimal `json:"current_value"`
}

func (u GoalUpdate) Validate() error {
	var err error
	if u.Title != nil {
		err = multierr.Append(err, validateTitle(*u.Title))
	}
	if u.Category != nil && !u.Category.Valid() {
		err = multierr.Append(err, errors.New("unknown category"))
	}
	if u.Priority != nil && !u.Priority.Valid() {
		err = multierr.Append(err, errors.New("priority must be low, medium, high or critical"))
	}
	if u.Status != nil {
		if _, ok := ParseGoalStatus(*u.Status); !ok {
			err = multierr.Append(err, errors.New("unknown status"))
		}
	}
	if u.TargetValue != nil && !u.TargetValue.IsPositive() {
		err = multierr.Append(err, errors.New("target_value must be positive"))
	}
	if u.StartDate != nil && u.StartDate.IsZero() {
		err = multierr.Append(err, errors.New("start_date cannot be cleared"))
	}
	if u.DueDate != nil && u.DueDate.IsZero() {
		err = multierr.Append(err, errors.New("due_date cannot be cleared"))
	}
	return err
}

// Apply güncellemeyi g üzerine uygular; tarih aralığı bozulursa hata döner.
func (u GoalUpdate) Apply(g *Goal, now time.Time) error {
	if u.Title != nil {
		g.Title = strings.TrimSpace(*u.Title)
	}
	if u.Description != nil {
		g.Description = *u.Description
	}
	if u.Category != nil {
		g.Category = *u.Category
	}
	if u.Priority != nil {
		g.Priority = *u.Priority
	}
	if u.StartDate != nil {
		g.StartDate = *u.StartDate
	}
	if u.DueDate != nil {
		g.DueDate = *u.DueDate
	}
	if u.TargetValue != nil {
		g.TargetValue = decimal.NullDecimal{Decimal: u.TargetValue.Round(2), Valid: true}
	}
	if u.CurrentValue != nil {
		g.CurrentValue = u.CurrentValue.Round(2)
	}
	if u.Status != nil {
		status, _ := ParseGoalStatus(*u.Status)
		g.CompletedAt = CompletionTransition(g.Status, status, g.CompletedAt, now)
		g.Status = status
	}
	g.UpdatedAt = now
	return validateDateRange(g.StartDate, g.DueDate)
}

type GoalFilter struct {
	Status   GoalStatus
	Category Category
	Priority Priority
	Search   string
	Sort     string
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.New("title is required")
	}
	if len([]rune(title)) > maxTitleLen {
		return errors.New("title must be at most 200 characters")
	}
	return nil
}

func validateDateRange(start, due Date) error {
	if !start.IsZero() && !due.IsZero() && due.Before(start.Time) {
		return errors.New("due_date must not be before start_date")
	}
	return nil
}
