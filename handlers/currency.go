// handlers/currency.go
package handlers

import (
	"net/http"
	"time"

	"goal-tracker/currency"
	"goal-tracker/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// rateTable kayıtlı kurlar sabit tablonun üzerine yazılır; okunamazsa sabit tablo kullanılır.
func rateTable(r *http.Request, store Store) currency.Table {
	rates, err := store.ListRates(r.Context())
	if err != nil {
		zap.L().Warn("kurlar okunamadı, sabit tablo kullanılıyor", zap.Error(err))
		return currency.Default
	}
	return currency.Default.Merge(currency.FromRates(rates))
}

func ConvertCurrency() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		rawAmount := q.Get("amount")
		from := models.Currency(q.Get("fromCurrency"))
		to := models.Currency(q.Get("toCurrency"))

		if rawAmount == "" || from == "" || to == "" {
			writeError(w, http.StatusBadRequest, "amount, fromCurrency and toCurrency are required")
			return
		}

		amount, err := decimal.NewFromString(rawAmount)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid amount")
			return
		}

		converted, rate, err := currency.Default.Convert(amount, from, to)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"amount":          amount,
			"fromCurrency":    from,
			"toCurrency":      to,
			"convertedAmount": converted,
			"rate":            rate,
			"timestamp":       now().UTC().Format(time.RFC3339),
		})
	}
}

func ExchangeRates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"base":      models.USD,
			"rates":     currency.Default.USDBase(),
			"timestamp": now().UTC().Format(time.RFC3339),
		})
	}
}

func GetRates(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rates, err := store.ListRates(r.Context())
		if err != nil || len(rates) == 0 {
			if err != nil {
				zap.L().Warn("kurlar okunamadı, sabit tablo dönülüyor", zap.Error(err))
			}
			rates = currency.Default.Rates()
		}

		writeJSON(w, http.StatusOK, rates)
	}
}

func UpdateRate(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rate models.Rate
		if err := decodeJSON(r, &rate); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := rate.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		rate.UpdatedAt = nil

		if err := store.UpsertRate(r.Context(), rate); err != nil {
			internalError(w, r, "kur kaydedilemedi", err)
			return
		}

		zap.L().Info("kur güncellendi",
			zap.String("from", string(rate.From)),
			zap.String("to", string(rate.To)),
			zap.String("rate", rate.Rate.String()),
			zap.Int64("user_id", currentUser(r)))

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Rate updated successfully",
			"rate":    rate,
		})
	}
}
