package api

import (
	"net/http"

	"github.com/rise-summit/event-registration/registration"
)

type paymentCallbackData struct {
	RegistrationID string `json:"registrationId"`
	PaymentStatus  string `json:"paymentStatus"`
}

// paymentCallback is the gateway's return URL. ShurjoPay sends the registrant
// back with its own order id in the query string; the session is then verified
// server side before the stored payment status changes.
func (a *API) paymentCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := a.getLoggerOrBaseLogger(ctx)

	providerOrderID := r.URL.Query().Get("order_id")
	if providerOrderID == "" {
		logger.Warn("Payment callback without an order_id")

		a.writeError(ctx, w, http.StatusBadRequest, "Missing order_id")
		return
	}

	reg, err := registration.ConfirmPayment(ctx, providerOrderID, a.db, a.checkout)
	if err != nil {
		logger.Error("Failed to confirm payment", "error", err, "providerOrderId", providerOrderID)

		a.writeError(ctx, w, http.StatusInternalServerError, "Payment confirmation failed")
		return
	}

	logger.Info("Payment confirmed",
		"registrationId", reg.ID.String(),
		"paymentStatus", string(reg.PaymentStatus),
	)

	a.writeSuccess(ctx, w, http.StatusOK, paymentCallbackData{
		RegistrationID: reg.ID.String(),
		PaymentStatus:  string(reg.PaymentStatus),
	})
}
