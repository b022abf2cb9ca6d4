package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunhollow/farmstead/internal/currency"
	"github.com/sunhollow/farmstead/internal/event"
)

func TestHandleGetGold(t *testing.T) {
	ledger := currency.NewLedger(event.NewMemoryBus(), 500)

	rec := getRequest(t, HandleGetGold(ledger), "/api/v1/gold")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp GoldResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 500, resp.Balance)
}

func TestHandleGrantGold(t *testing.T) {
	ledger := currency.NewLedger(event.NewMemoryBus(), 100)

	rec := postJSON(t, HandleGrantGold(ledger), GrantGoldRequest{Amount: 50})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp GoldResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 150, resp.Balance)
}

func TestHandleGrantGold_Invalid(t *testing.T) {
	ledger := currency.NewLedger(event.NewMemoryBus(), 100)

	rec := postJSON(t, HandleGrantGold(ledger), GrantGoldRequest{Amount: 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 100, ledger.Balance())
}
