package api

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rise-summit/event-registration/registration"
)

var noopLogger = slog.New(slog.DiscardHandler)

var _ DB = &mockDB{}

type mockDB struct {
	CreateRegistrationFunc  func(ctx context.Context, reg registration.Registration) error
	GetRegistrationFunc     func(ctx context.Context, id uuid.UUID) (registration.Registration, error)
	UpdateTransactionIDFunc func(ctx context.Context, id uuid.UUID, transactionID string) error
	UpdatePaymentStatusFunc func(ctx context.Context, id uuid.UUID, status registration.PaymentStatus) error
	ListRegistrationsFunc   func(ctx context.Context) ([]registration.Registration, error)
}

func (m *mockDB) CreateRegistration(ctx context.Context, reg registration.Registration) error {
	if m.CreateRegistrationFunc != nil {
		return m.CreateRegistrationFunc(ctx, reg)
	}
	return nil
}

func (m *mockDB) GetRegistration(ctx context.Context, id uuid.UUID) (registration.Registration, error) {
	if m.GetRegistrationFunc != nil {
		return m.GetRegistrationFunc(ctx, id)
	}
	return registration.Registration{}, nil
}

func (m *mockDB) UpdateTransactionID(ctx context.Context, id uuid.UUID, transactionID string) error {
	if m.UpdateTransactionIDFunc != nil {
		return m.UpdateTransactionIDFunc(ctx, id, transactionID)
	}
	return nil
}

func (m *mockDB) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status registration.PaymentStatus) error {
	if m.UpdatePaymentStatusFunc != nil {
		return m.UpdatePaymentStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockDB) ListRegistrations(ctx context.Context) ([]registration.Registration, error) {
	if m.ListRegistrationsFunc != nil {
		return m.ListRegistrationsFunc(ctx)
	}
	return nil, nil
}

var _ registration.CheckoutManager = &mockCheckoutManager{}

type mockCheckoutManager struct {
	CreateCheckoutFunc func(ctx context.Context, params registration.CheckoutParams) (registration.CheckoutInfo, error)
	VerifyCheckoutFunc func(ctx context.Context, providerOrderID string) (registration.CheckoutVerification, error)
}

func (m *mockCheckoutManager) CreateCheckout(ctx context.Context, params registration.CheckoutParams) (registration.CheckoutInfo, error) {
	if m.CreateCheckoutFunc != nil {
		return m.CreateCheckoutFunc(ctx, params)
	}
	return registration.CheckoutInfo{}, nil
}

func (m *mockCheckoutManager) VerifyCheckout(ctx context.Context, providerOrderID string) (registration.CheckoutVerification, error) {
	if m.VerifyCheckoutFunc != nil {
		return m.VerifyCheckoutFunc(ctx, providerOrderID)
	}
	return registration.CheckoutVerification{}, nil
}
