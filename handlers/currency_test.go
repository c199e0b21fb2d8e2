package handlers

import (
	"net/http"
	"testing"

	"goal-tracker/currency"
	"goal-tracker/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertCurrency(t *testing.T) {
	freezeTime(t)

	rec := do(t, ConvertCurrency(), "GET", "/c", "/c?amount=100&fromCurrency=USD&toCurrency=BRL", nil, 0)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Amount          decimal.Decimal `json:"amount"`
		From            string          `json:"fromCurrency"`
		To              string          `json:"toCurrency"`
		ConvertedAmount decimal.Decimal `json:"convertedAmount"`
		Rate            decimal.Decimal `json:"rate"`
		Timestamp       string          `json:"timestamp"`
	}
	decode(t, rec, &body)
	assert.Equal(t, "515", body.ConvertedAmount.String())
	assert.Equal(t, "5.15", body.Rate.String())
	assert.Equal(t, "USD", body.From)
	assert.Equal(t, "2024-03-15T12:00:00Z", body.Timestamp)
}

func TestConvertCurrencyErrors(t *testing.T) {
	cases := map[string]string{
		"missing amount":   "/c?fromCurrency=USD&toCurrency=BRL",
		"missing currency": "/c?amount=1&fromCurrency=USD",
		"bad amount":       "/c?amount=abc&fromCurrency=USD&toCurrency=BRL",
		"unknown pair":     "/c?amount=1&fromCurrency=USD&toCurrency=JPY",
		"unknown identity": "/c?amount=10&fromCurrency=XYZ&toCurrency=XYZ",
	}
	for name, target := range cases {
		t.Run(name, func(t *testing.T) {
			rec := do(t, ConvertCurrency(), "GET", "/c", target, nil, 0)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestExchangeRates(t *testing.T) {
	rec := do(t, ExchangeRates(), "GET", "/x", "/x", nil, 0)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Base  string                     `json:"base"`
		Rates map[string]decimal.Decimal `json:"rates"`
	}
	decode(t, rec, &body)
	assert.Equal(t, "USD", body.Base)
	assert.Equal(t, "1", body.Rates["USD"].String())
	assert.Equal(t, "5.15", body.Rates["BRL"].String())
	assert.Equal(t, "0.92", body.Rates["EUR"].String())
}

func TestGetRatesFallsBackToStaticTable(t *testing.T) {
	store := newFakeStore()
	store.ratesErr = errStoreDown

	rec := do(t, GetRates(store), "GET", "/r", "/r", nil, 0)
	require.Equal(t, http.StatusOK, rec.Code)

	var rates []models.Rate
	decode(t, rec, &rates)
	assert.Len(t, rates, len(currency.Default.Rates()))
}

func TestUpdateRate(t *testing.T) {
	store := newFakeStore()
	id := seedUser(t, store, "ada")

	rec := do(t, UpdateRate(store), "PUT", "/r", "/r",
		map[string]interface{}{"from_currency": "USD", "to_currency": "EUR", "rate": 0.95}, id)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, store.rates, 1)
	assert.Equal(t, "0.95", store.rates[0].Rate.String())

	rec = do(t, UpdateRate(store), "PUT", "/r", "/r",
		map[string]interface{}{"from_currency": "USD", "to_currency": "EUR", "rate": 0}, id)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, GetRates(store), "GET", "/r", "/r", nil, 0)
	var rates []models.Rate
	decode(t, rec, &rates)
	require.Len(t, rates, 1)
	assert.Equal(t, models.EUR, rates[0].To)
}
