package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sunhollow/farmstead/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, all we can do is log.
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgInvalidInputError   = "Invalid request. Please check your inputs."
	ErrMsgItemNotFoundError   = "Item not found"
	ErrMsgNotEnoughGoldError  = "Not enough gold"
	ErrMsgNotEnoughItemsError = "Not enough items"
	ErrMsgNotSellableError    = "The shop won't buy that item"
	ErrMsgInventoryFullError  = "Inventory is full"
	ErrMsgSlotEmptyError      = "That slot is empty"
	ErrMsgSlotOutOfRangeError = "No such slot"
	ErrMsgShopClosedError     = "No shop is open"
	ErrMsgShopAlreadyOpenErr  = "A shop is already open"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses with appropriate status codes.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusBadRequest, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughGoldError
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return http.StatusBadRequest, ErrMsgNotEnoughItemsError
	case errors.Is(err, domain.ErrNotSellable):
		return http.StatusBadRequest, ErrMsgNotSellableError
	case errors.Is(err, domain.ErrInventoryFull):
		return http.StatusBadRequest, ErrMsgInventoryFullError
	case errors.Is(err, domain.ErrSlotEmpty):
		return http.StatusBadRequest, ErrMsgSlotEmptyError
	case errors.Is(err, domain.ErrSlotOutOfRange):
		return http.StatusBadRequest, ErrMsgSlotOutOfRangeError
	case errors.Is(err, domain.ErrShopClosed):
		return http.StatusConflict, ErrMsgShopClosedError
	case errors.Is(err, domain.ErrShopAlreadyOpen):
		return http.StatusConflict, ErrMsgShopAlreadyOpenErr
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError maps a service error and writes it out.
func respondServiceError(w http.ResponseWriter, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	respondError(w, status, message)
}
