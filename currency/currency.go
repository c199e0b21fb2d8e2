// Package currency sabit kur tablosu ve dönüşüm.
package currency

import (
	"errors"
	"fmt"

	"goal-tracker/models"

	"github.com/shopspring/decimal"
)

var ErrUnsupportedPair = errors.New("unsupported currency pair")

type pair struct {
	from, to models.Currency
}

// Table kaynak -> hedef kurları.
type Table map[pair]decimal.Decimal

func mustRate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Default veritabanına ulaşılamadığında kullanılan sabit tablo.
var Default = Table{
	{models.USD, models.USD}: decimal.NewFromInt(1),
	{models.USD, models.BRL}: mustRate("5.15"),
	{models.USD, models.EUR}: mustRate("0.92"),
	{models.BRL, models.USD}: mustRate("0.194"),
	{models.BRL, models.BRL}: decimal.NewFromInt(1),
	{models.BRL, models.EUR}: mustRate("0.179"),
	{models.EUR, models.USD}: mustRate("1.09"),
	{models.EUR, models.BRL}: mustRate("5.61"),
	{models.EUR, models.EUR}: decimal.NewFromInt(1),
}

func FromRates(rates []models.Rate) Table {
	t := make(Table, len(rates))
	for _, r := range rates {
		t[pair{r.From, r.To}] = r.Rate
	}
	return t
}

func (t Table) Rate(from, to models.Currency) (decimal.Decimal, error) {
	if !from.Valid() || !to.Valid() {
		return decimal.Zero, fmt.Errorf("%w: %s-%s", ErrUnsupportedPair, from, to)
	}
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	r, ok := t[pair{from, to}]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s-%s", ErrUnsupportedPair, from, to)
	}
	return r, nil
}

// Convert amount'u çevirir, sonuç 2 haneye yuvarlanır.
func (t Table) Convert(amount decimal.Decimal, from, to models.Currency) (decimal.Decimal, decimal.Decimal, error) {
	rate, err := t.Rate(from, to)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return amount.Mul(rate).Round(2), rate, nil
}

// Rates tabloyu sıralı satır listesine çevirir.
func (t Table) Rates() []models.Rate {
	out := make([]models.Rate, 0, len(t))
	for _, from := range models.Currencies {
		for _, to := range models.Currencies {
			if r, ok := t[pair{from, to}]; ok {
				out = append(out, models.Rate{From: from, To: to, Rate: r})
			}
		}
	}
	return out
}

// USDBase USD tabanlı kur özeti.
func (t Table) USDBase() map[models.Currency]decimal.Decimal {
	out := make(map[models.Currency]decimal.Decimal, len(models.Currencies))
	for _, c := range models.Currencies {
		if r, err := t.Rate(models.USD, c); err == nil {
			out[c] = r
		}
	}
	return out
}

// Merge other'daki kurlar t'nin üzerine yazılır.
func (t Table) Merge(other Table) Table {
	out := make(Table, len(t)+len(other))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}
