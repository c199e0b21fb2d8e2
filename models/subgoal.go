// models/subgoal.go
package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

type Subgoal struct {
	ID                 int64               `json:"subgoal_id"`
	GoalID             int64               `json:"goal_id"`
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	TargetValue        decimal.NullDecimal `json:"target_value"`
	CurrentValue       decimal.Decimal     `json:"current_value"`
	Status             SubgoalStatus       `json:"status"`
	DueDate            Date                `json:"due_date"`
	CompletedAt        *time.Time          `json:"completed_at"`
	Position           int                 `json:"position"`
	DependsOnSubgoalID *int64              `json:"depends_on_subgoal_id"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

type CreateSubgoalRequest struct {
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	DueDate            Date                `json:"due_date"`
	TargetValue        decimal.NullDecimal `json:"target_value"`
	DependsOnSubgoalID *int64              `json:"depends_on_subgoal_id"`
}

func (r CreateSubgoalRequest) Validate() error {
	var err error
	err = multierr.Append(err, validateTitle(r.Title))
	if r.DueDate.IsZero() {
		err = multierr.Append(err, errors.New("due_date is required"))
	}
	if r.TargetValue.Valid && r.TargetValue.Decimal.IsNegative() {
		err = multierr.Append(err, errors.New("target_value must not be negative"))
	}
	return err
}

func (r CreateSubgoalRequest) Subgoal(goalID int64) *Subgoal {
	s := &Subgoal{
		GoalID:             goalID,
		Title:              strings.TrimSpace(r.Title),
		Description:        r.Description,
		DueDate:            r.DueDate,
		Status:             SubgoalStatus(StatusNotStarted),
		CurrentValue:       decimal.Zero,
		DependsOnSubgoalID: r.DependsOnSubgoalID,
	}
	if r.TargetValue.Valid {
		s.TargetValue = decimal.NullDecimal{Decimal: r.TargetValue.Decimal.Round(2), Valid: true}
	}
	return s
}

type SubgoalUpdate struct {
	Title        *string          `json:"title"`
	Description  *string          `json:"description"`
	Status       *SubgoalStatus   `json:"status"`
	DueDate      *Date            `json:"due_date"`
	CurrentValue *decimal.Decimal `json:"current_value"`
}

func (u SubgoalUpdate) Validate() error {
	var err error
	if u.Title != nil {
		err = multierr.Append(err, validateTitle(*u.Title))
	}
	if u.Status != nil && !u.Status.Valid() {
		err = multierr.Append(err, errors.New("unknown status"))
	}
	if u.DueDate != nil && u.DueDate.IsZero() {
		err = multierr.Append(err, errors.New("due_date cannot be cleared"))
	}
	return err
}

func (u SubgoalUpdate) Apply(s *Subgoal, now time.Time) {
	if u.Title != nil {
		s.Title = strings.TrimSpace(*u.Title)
	}
	if u.Description != nil {
		s.Description = *u.Description
	}
	if u.DueDate != nil {
		s.DueDate = *u.DueDate
	}
	if u.CurrentValue != nil {
		s.CurrentValue = u.CurrentValue.Round(2)
	}
	if u.Status != nil {
		s.CompletedAt = CompletionTransition(GoalStatus(s.Status), GoalStatus(*u.Status), s.CompletedAt, now)
		s.Status = *u.Status
	}
	s.UpdatedAt = now
}
