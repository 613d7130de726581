package registration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PAYMENT_PENDING PaymentStatus = "PENDING"
	PAYMENT_PAID    PaymentStatus = "PAID"
	PAYMENT_FAILED  PaymentStatus = "FAILED"
)

type Registration struct {
	ID            uuid.UUID
	FullName      string
	Email         string
	MobileNumber  string
	Address       string
	Enterprise    string
	SponsorName   string
	SponsorPhone  string
	Amount        *money.Money
	PaymentStatus PaymentStatus
	TransactionID *string
	CreatedAt     time.Time
}

type Repository interface {
	CreateRegistration(ctx context.Context, reg Registration) error
	GetRegistration(ctx context.Context, id uuid.UUID) (Registration, error)
	UpdateTransactionID(ctx context.Context, id uuid.UUID, transactionID string) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status PaymentStatus) error
	ListRegistrations(ctx context.Context) ([]Registration, error)
}

type CheckoutParams struct {
	// OrderID is the merchant order id the gateway will echo back,
	// always the registration's ID.
	OrderID         string
	Price           *money.Money
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	CustomerCity    string
}

type CheckoutInfo struct {
	CheckoutURL     string
	ProviderOrderID string
}

type CheckoutVerification struct {
	// OrderID is the merchant order id the checkout was created with.
	OrderID         string
	ProviderOrderID string
	Paid            bool
	BankStatus      string
}

type CheckoutManager interface {
	CreateCheckout(ctx context.Context, params CheckoutParams) (CheckoutInfo, error)
	VerifyCheckout(ctx context.Context, providerOrderID string) (CheckoutVerification, error)
}

type SubmitResult struct {
	Registration Registration
	CheckoutURL  string
}

// SubmitRegistration runs the registration-to-payment workflow: validate the
// input, persist a PENDING registration, create a checkout session with the
// registration's ID as the merchant order id, then record the provider order
// id on the registration.
//
// A registration that was persisted before a failed gateway call is left in
// place as PENDING with no transaction id, so that the attempt stays visible
// for reconciliation via the export. A failure to record the provider order id
// after the checkout was created is logged and tolerated, since the checkout
// session already exists and the registrant should still be sent to it.
func SubmitRegistration(ctx context.Context, input SubmitInput, repo Repository, checkout CheckoutManager, logger *slog.Logger) (SubmitResult, error) {
	if err := input.Validate(); err != nil {
		return SubmitResult{}, err
	}

	reg := Registration{
		ID:            uuid.New(),
		FullName:      input.FullName,
		Email:         input.Email,
		MobileNumber:  input.MobileNumber,
		Address:       input.Address,
		Enterprise:    input.Enterprise,
		SponsorName:   input.SponsorName,
		SponsorPhone:  input.SponsorPhone,
		Amount:        input.Amount,
		PaymentStatus: PAYMENT_PENDING,
		CreatedAt:     time.Now().UTC(),
	}

	err := repo.CreateRegistration(ctx, reg)
	if err != nil {
		return SubmitResult{}, err
	}

	info, err := checkout.CreateCheckout(ctx, CheckoutParams{
		OrderID:         reg.ID.String(),
		Price:           reg.Amount,
		CustomerName:    reg.FullName,
		CustomerEmail:   reg.Email,
		CustomerPhone:   reg.MobileNumber,
		CustomerAddress: reg.Address,
		CustomerCity:    reg.Address,
	})
	if err != nil {
		return SubmitResult{}, NewPaymentInitiationFailedError(fmt.Sprintf("Failed to create checkout for registration %q", reg.ID), err)
	}

	err = repo.UpdateTransactionID(ctx, reg.ID, info.ProviderOrderID)
	if err != nil {
		// The checkout session exists upstream, so the registrant still gets
		// the URL. The missing transaction id is detectable in the export.
		logger.ErrorContext(ctx, "Failed to record transaction id on registration",
			slog.String("registrationId", reg.ID.String()),
			slog.String("providerOrderId", info.ProviderOrderID),
			slog.String("error", err.Error()),
		)
	} else {
		reg.TransactionID = &info.ProviderOrderID
	}

	return SubmitResult{
		Registration: reg,
		CheckoutURL:  info.CheckoutURL,
	}, nil
}

// ConfirmPayment verifies a checkout session with the gateway and records the
// outcome on the registration the session was created for.
func ConfirmPayment(ctx context.Context, providerOrderID string, repo Repository, checkout CheckoutManager) (Registration, error) {
	verification, err := checkout.VerifyCheckout(ctx, providerOrderID)
	if err != nil {
		return Registration{}, NewPaymentNotVerifiedError(fmt.Sprintf("Failed to verify checkout %q", providerOrderID), err)
	}

	regID, err := uuid.Parse(verification.OrderID)
	if err != nil {
		return Registration{}, NewPaymentNotVerifiedError(fmt.Sprintf("Gateway returned a non-registration order id %q", verification.OrderID), err)
	}

	reg, err := repo.GetRegistration(ctx, regID)
	if err != nil {
		return Registration{}, err
	}

	status := PAYMENT_FAILED
	if verification.Paid {
		status = PAYMENT_PAID
	}

	err = repo.UpdatePaymentStatus(ctx, regID, status)
	if err != nil {
		return Registration{}, err
	}

	reg.PaymentStatus = status
	return reg, nil
}
