package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/rise-summit/event-registration/registration"
	"github.com/rise-summit/event-registration/slices"
)

type initiatePaymentRequest struct {
	FullName     string  `json:"fullName"`
	Email        string  `json:"email"`
	MobileNumber string  `json:"mobileNumber"`
	Address      string  `json:"address"`
	Enterprise   string  `json:"enterprise"`
	SponsorName  string  `json:"sponsorName"`
	SponsorPhone string  `json:"sponsorPhone"`
	Amount       float64 `json:"amount"`
}

type initiatePaymentData struct {
	CheckoutURL    string `json:"checkoutUrl"`
	RegistrationID string `json:"registrationId"`
}

func (a *API) initiatePayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := a.getLoggerOrBaseLogger(ctx)

	var body initiatePaymentRequest
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		logger.Warn("Invalid body for payment initiation", "error", err)

		a.writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	input := registration.SubmitInput{
		FullName:     body.FullName,
		Email:        body.Email,
		MobileNumber: body.MobileNumber,
		Address:      body.Address,
		Enterprise:   body.Enterprise,
		SponsorName:  body.SponsorName,
		SponsorPhone: body.SponsorPhone,
		Amount:       money.NewFromFloat(body.Amount, money.BDT),
	}

	result, err := registration.SubmitRegistration(ctx, input, a.db, a.checkout, logger)
	if err != nil {
		var registrationErr *registration.Error
		if errors.As(err, &registrationErr) && registrationErr.Reason == registration.REASON_INVALID_INPUT {
			logger.Warn("Invalid input for payment initiation", "error", err)

			a.writeError(ctx, w, http.StatusBadRequest, formatViolations(registrationErr.Fields))
			return
		}

		logger.Error("Failed to submit registration", "error", err)

		a.writeError(ctx, w, http.StatusInternalServerError, "Payment initiation failed")
		return
	}

	a.writeSuccess(ctx, w, http.StatusOK, initiatePaymentData{
		CheckoutURL:    result.CheckoutURL,
		RegistrationID: result.Registration.ID.String(),
	})
}

func formatViolations(fields []registration.FieldViolation) string {
	return fmt.Sprintf("Validation failed: %s", strings.Join(
		slices.Map(fields, func(f registration.FieldViolation) string {
			return fmt.Sprintf("%s %s", f.Field, f.Reason)
		}),
		"; ",
	))
}
