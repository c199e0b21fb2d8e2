// handlers/transactions.go
package handlers

import (
	"errors"
	"net/http"

	"goal-tracker/currency"
	"goal-tracker/database"
	"goal-tracker/models"
)

func GetTransactions(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goal, ok := loadGoal(w, r, store)
		if !ok {
			return
		}

		transactions, err := store.ListTransactions(r.Context(), goal.ID)
		if err != nil {
			internalError(w, r, "işlemler okunamadı", err)
			return
		}

		writeJSON(w, http.StatusOK, transactions)
	}
}

func AddTransaction(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goal, ok := loadGoal(w, r, store)
		if !ok {
			return
		}
		if !goal.IsFinancial || goal.Currency == nil {
			writeError(w, http.StatusBadRequest, "Transactions can only be added to financial goals")
			return
		}

		var req models.CreateTransactionRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		tx := req.Transaction(goal.ID, goal.UserID, today())

		// Miktar hedefin para birimine çevrilir
		converted, rate, err := rateTable(r, store).Convert(tx.Amount, tx.Currency, *goal.Currency)
		if errors.Is(err, currency.ErrUnsupportedPair) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			internalError(w, r, "kur çevrilemedi", err)
			return
		}
		tx.ConvertedAmount = converted
		tx.ConversionRate = rate

		err = store.AddTransaction(r.Context(), tx)
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Goal not found")
			return
		}
		if err != nil {
			internalError(w, r, "işlem eklenemedi", err)
			return
		}

		logActivity(r, store, &goal.ID, models.ActivityTransactionAdded,
			"Added "+string(tx.Type)+" of "+tx.Amount.StringFixed(2)+" "+string(tx.Currency)+" to "+goal.Title)

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"transactionId": tx.ID,
			"message":       "Transaction added successfully",
		})
	}
}
