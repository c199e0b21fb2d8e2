// models/transaction.go
package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

type Transaction struct {
	ID              int64           `json:"transaction_id"`
	GoalID          int64           `json:"goal_id"`
	UserID          int64           `json:"user_id"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        Currency        `json:"currency"`
	ConvertedAmount decimal.Decimal `json:"converted_amount"`
	ConversionRate  decimal.Decimal `json:"conversion_rate"`
	Type            TransactionType `json:"transaction_type"`
	Description     string          `json:"description"`
	TransactionDate Date            `json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Delta hedefin current_value değerine eklenecek miktar.
func (t Transaction) Delta() decimal.Decimal {
	if t.Type == Withdrawal {
		return t.ConvertedAmount.Neg()
	}
	return t.ConvertedAmount
}

type CreateTransactionRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	Currency        Currency        `json:"currency"`
	Type            TransactionType `json:"transaction_type"`
	Description     string          `json:"description"`
	TransactionDate Date            `json:"transaction_date"`
}

func (r CreateTransactionRequest) Validate() error {
	var err error
	if !r.Currency.Valid() {
		err = multierr.Append(err, errors.New("currency must be USD, BRL or EUR"))
	}
	if r.Type != "" && !r.Type.Valid() {
		err = multierr.Append(err, errors.New("transaction_type must be deposit, withdrawal or adjustment"))
	}
	// Tutar kuruşa yuvarlanarak saklanır, kontrol de yuvarlanmış değer üzerinden.
	amount := r.Amount.Round(2)
	switch {
	case r.Type == Adjustment && amount.IsZero():
		err = multierr.Append(err, errors.New("adjustment amount must not be zero"))
	case r.Type != Adjustment && !amount.IsPositive():
		err = multierr.Append(err, errors.New("amount must be positive"))
	}
	return err
}

func (r CreateTransactionRequest) Transaction(goalID, userID int64, today Date) *Transaction {
	t := &Transaction{
		GoalID:          goalID,
		UserID:          userID,
		Amount:          r.Amount.Round(2),
		Currency:        r.Currency,
		Type:            r.Type,
		Description:     r.Description,
		TransactionDate: r.TransactionDate,
	}
	if t.Type == "" {
		t.Type = Deposit
	}
	if t.TransactionDate.IsZero() {
		t.TransactionDate = today
	}
	return t
}

type Rate struct {
	From      Currency        `json:"from_currency"`
	To        Currency        `json:"to_currency"`
	Rate      decimal.Decimal `json:"rate"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

func (r Rate) Validate() error {
	var err error
	if !r.From.Valid() || !r.To.Valid() {
		err = multierr.Append(err, errors.New("from_currency and to_currency must be USD, BRL or EUR"))
	}
	if !r.Rate.IsPositive() {
		err = multierr.Append(err, errors.New("rate must be positive"))
	}
	return err
}
