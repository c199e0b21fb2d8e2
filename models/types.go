// models/types.go
package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Para değerleri JSON'da string değil sayı olarak gider.
	decimal.MarshalJSONWithoutQuotes = true
}

type Currency string

const (
	USD Currency = "USD"
	BRL Currency = "BRL"
	EUR Currency = "EUR"
)

var Currencies = []Currency{USD, BRL, EUR}

func (c Currency) Valid() bool {
	switch c {
	case USD, BRL, EUR:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Rank sıralama için kullanılır, en acil öncelik 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

type GoalStatus string

const (
	StatusNotStarted GoalStatus = "not_started"
	StatusInProgress GoalStatus = "in_progress"
	StatusCompleted  GoalStatus = "completed"
	StatusOverdue    GoalStatus = "overdue"
	StatusCancelled  GoalStatus = "cancelled"
)

// ParseGoalStatus eski istemcinin gönderdiği "delayed" değerini de kabul eder.
func ParseGoalStatus(s string) (GoalStatus, bool) {
	st := GoalStatus(strings.ToLower(strings.TrimSpace(s)))
	if st == "delayed" {
		return StatusOverdue, true
	}
	switch st {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusOverdue, StatusCancelled:
		return st, true
	}
	return "", false
}

type SubgoalStatus string

func (s SubgoalStatus) Valid() bool {
	switch GoalStatus(s) {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Category string

var Categories = []Category{
	"health", "career", "finances", "personal",
	"studies", "hobbies", "relationships", "other",
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type TransactionType string

const (
	Deposit    TransactionType = "deposit"
	Withdrawal TransactionType = "withdrawal"
	Adjustment TransactionType = "adjustment"
)

func (t TransactionType) Valid() bool {
	switch t {
	case Deposit, Withdrawal, Adjustment:
		return true
	}
	return false
}

const dateLayout = "2006-01-02"

// Date saatsiz takvim günü, JSON'da "YYYY-MM-DD".
type Date struct {
	time.Time
}

func NewDate(y int, m time.Month, d int) Date {
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(dateLayout) {
		// ISO zaman damgası gelirse sadece gün kısmı alınır
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// DaysUntil d'den other'a kadar geçen tam gün sayısı.
func (d Date) DaysUntil(other Date) int {
	return int(other.Sub(d.Time).Hours() / 24)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = DateOf(v)
	case []byte:
		return d.UnmarshalJSON(v)
	case string:
		return d.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}
