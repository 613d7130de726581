package dynamo

import (
	"context"
	"testing"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"github.com/rise-summit/event-registration/ptr"
	"github.com/rise-summit/event-registration/registration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistration() registration.Registration {
	return registration.Registration{
		ID:            uuid.New(),
		FullName:      "Test User",
		Email:         "a@b.com",
		MobileNumber:  "+8801712345678",
		Address:       "Dhaka",
		Enterprise:    "E1",
		SponsorName:   "Spon",
		SponsorPhone:  "01811111111",
		Amount:        money.New(420000, money.BDT),
		PaymentStatus: registration.PAYMENT_PENDING,
		CreatedAt:     time.Now().UTC().Truncate(time.Millisecond),
	}
}

func assertReason(t *testing.T, err error, reason registration.ErrorReason) {
	t.Helper()

	var regErr *registration.Error
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, reason, regErr.Reason)
}

func TestCreateRegistration(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and fetches a registration", func(t *testing.T) {
		defer resetTable(ctx)

		reg := testRegistration()
		require.NoError(t, db.CreateRegistration(ctx, reg))

		got, err := db.GetRegistration(ctx, reg.ID)
		require.NoError(t, err)

		assert.Equal(t, reg.ID, got.ID)
		assert.Equal(t, reg.FullName, got.FullName)
		assert.Equal(t, reg.Email, got.Email)
		assert.True(t, reg.Amount.Currency().Code == got.Amount.Currency().Code)
		assert.Equal(t, reg.Amount.Amount(), got.Amount.Amount())
		assert.Equal(t, registration.PAYMENT_PENDING, got.PaymentStatus)
		assert.Nil(t, got.TransactionID)
		assert.True(t, reg.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("fails when the registration already exists", func(t *testing.T) {
		defer resetTable(ctx)

		reg := testRegistration()
		require.NoError(t, db.CreateRegistration(ctx, reg))

		err := db.CreateRegistration(ctx, reg)
		assertReason(t, err, registration.REASON_REGISTRATION_ALREADY_EXISTS)
	})
}

func TestGetRegistration(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		_, err := db.GetRegistration(ctx, uuid.New())
		assertReason(t, err, registration.REASON_REGISTRATION_DOES_NOT_EXIST)
	})
}

func TestUpdateTransactionID(t *testing.T) {
	ctx := context.Background()

	t.Run("records the transaction id", func(t *testing.T) {
		defer resetTable(ctx)

		reg := testRegistration()
		require.NoError(t, db.CreateRegistration(ctx, reg))

		require.NoError(t, db.UpdateTransactionID(ctx, reg.ID, "RISE65ab3f8c"))

		got, err := db.GetRegistration(ctx, reg.ID)
		require.NoError(t, err)
		assert.Equal(t, ptr.String("RISE65ab3f8c"), got.TransactionID)
	})

	t.Run("fails for a registration that does not exist", func(t *testing.T) {
		err := db.UpdateTransactionID(ctx, uuid.New(), "RISE65ab3f8c")
		assertReason(t, err, registration.REASON_REGISTRATION_DOES_NOT_EXIST)
	})
}

func TestUpdatePaymentStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("moves a registration to PAID", func(t *testing.T) {
		defer resetTable(ctx)

		reg := testRegistration()
		require.NoError(t, db.CreateRegistration(ctx, reg))

		require.NoError(t, db.UpdatePaymentStatus(ctx, reg.ID, registration.PAYMENT_PAID))

		got, err := db.GetRegistration(ctx, reg.ID)
		require.NoError(t, err)
		assert.Equal(t, registration.PAYMENT_PAID, got.PaymentStatus)
	})

	t.Run("fails for a registration that does not exist", func(t *testing.T) {
		err := db.UpdatePaymentStatus(ctx, uuid.New(), registration.PAYMENT_FAILED)
		assertReason(t, err, registration.REASON_REGISTRATION_DOES_NOT_EXIST)
	})
}

func TestListRegistrations(t *testing.T) {
	ctx := context.Background()

	t.Run("empty table", func(t *testing.T) {
		got, err := db.ListRegistrations(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("returns registrations newest first", func(t *testing.T) {
		defer resetTable(ctx)

		base := time.Now().UTC().Truncate(time.Millisecond)

		oldest := testRegistration()
		oldest.CreatedAt = base.Add(-2 * time.Hour)
		middle := testRegistration()
		middle.CreatedAt = base.Add(-1 * time.Hour)
		newest := testRegistration()
		newest.CreatedAt = base

		for _, reg := range []registration.Registration{middle, newest, oldest} {
			require.NoError(t, db.CreateRegistration(ctx, reg))
		}

		got, err := db.ListRegistrations(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, newest.ID, got[0].ID)
		assert.Equal(t, middle.ID, got[1].ID)
		assert.Equal(t, oldest.ID, got[2].ID)
	})
}
