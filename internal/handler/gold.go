package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sunhollow/farmstead/internal/currency"
	"github.com/sunhollow/farmstead/internal/logger"
)

type GoldResponse struct {
	Balance int `json:"balance"`
}

// HandleGetGold returns the current gold balance.
func HandleGetGold(ledger *currency.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, GoldResponse{Balance: ledger.Balance()})
	}
}

type GrantGoldRequest struct {
	Amount int `json:"amount" validate:"min=1,max=1000000"`
}

// HandleGrantGold adds gold directly, e.g. quest rewards or debug tooling.
func HandleGrantGold(ledger *currency.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req GrantGoldRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode grant gold request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidInputError)
			return
		}

		ledger.AddGold(r.Context(), req.Amount)
		log.Info("Gold granted", "amount", req.Amount, "balance", ledger.Balance())

		respondJSON(w, http.StatusOK, GoldResponse{Balance: ledger.Balance()})
	}
}
