package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	checkoutapp "github.com/cramerservices/plans-api/api/services/checkout/app"
)

func createCheckoutSessionHandler(svc checkoutapp.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkoutapp.CheckoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, fmt.Errorf("%w: invalid JSON body", checkoutapp.ErrValidation))
			return
		}
		resp, err := svc.StartCheckout(bearerToken(r), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func membershipHandler(svc checkoutapp.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overview, err := svc.MembershipOverview(bearerToken(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, overview)
	}
}

// bearerToken extracts the credential from the Authorization header; the
// scheme comparison is case-insensitive.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

// writeError maps app-layer errors to HTTP statuses. Validation, auth, and
// not-found messages are shown to the end user verbatim; everything else gets
// a generic message with details logged server-side.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkoutapp.ErrAuthentication):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
	case errors.Is(err, checkoutapp.ErrValidation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, checkoutapp.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		slog.Error("request failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to process request. Please try again.",
			"details": err.Error(),
		})
	}
}
