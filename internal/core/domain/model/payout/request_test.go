package payout_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/payout"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBank(t *testing.T) payout.BankSnapshot {
	t.Helper()
	bank, err := payout.NewBankSnapshot("J. Naidoo", "FNB", "62000000001")
	require.NoError(t, err)
	return bank
}

func newPendingRequest(t *testing.T) *payout.PayoutRequest {
	t.Helper()
	amount, err := kernel.MoneyFromString("500.00")
	require.NoError(t, err)

	request, err := payout.NewPayoutRequest(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		amount,
		4,
		newTestBank(t),
		time.Now(),
	)
	require.NoError(t, err)
	request.ClearDomainEvents()
	return request
}

func TestNewPayoutRequest(t *testing.T) {
	t.Run("creates_pending_request", func(t *testing.T) {
		amount, _ := kernel.MoneyFromString("500.00")
		now := time.Now()

		request, err := payout.NewPayoutRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			amount, 4, newTestBank(t), now,
		)

		require.NoError(t, err)
		assert.Equal(t, payout.Pending, request.Status())
		assert.True(t, request.Amount().IsEqual(amount))
		assert.Equal(t, 4, request.DeliveriesCovered())
		assert.Equal(t, now, request.RequestedAt())
		assert.True(t, request.LocksBalance())
		require.NoError(t, request.Validate())
	})

	t.Run("records_a_pending_event", func(t *testing.T) {
		amount, _ := kernel.MoneyFromString("500.00")
		request, err := payout.NewPayoutRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			amount, 4, newTestBank(t), time.Now(),
		)
		require.NoError(t, err)

		events := request.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, payout.Pending, events[0].NewStatus)
		assert.True(t, events[0].Amount.IsEqual(amount))
	})

	t.Run("zero_amount_is_rejected", func(t *testing.T) {
		_, err := payout.NewPayoutRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			kernel.ZeroMoney(), 1, newTestBank(t), time.Now(),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("deliveries_covered_must_be_positive", func(t *testing.T) {
		amount, _ := kernel.MoneyFromString("500.00")
		_, err := payout.NewPayoutRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			amount, 0, newTestBank(t), time.Now(),
		)
		require.Error(t, err)
	})

	t.Run("bank_snapshot_is_required", func(t *testing.T) {
		amount, _ := kernel.MoneyFromString("500.00")
		var bank payout.BankSnapshot
		_, err := payout.NewPayoutRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			amount, 1, bank, time.Now(),
		)
		require.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var request payout.PayoutRequest
		assert.ErrorIs(t, request.Validate(), payout.ErrRequestIsNotConstructed)
	})
}

func TestPayoutRequest_Approve(t *testing.T) {
	t.Run("approves_pending_request", func(t *testing.T) {
		request := newPendingRequest(t)
		approverID := kernel.NewUUID()
		now := time.Now()

		require.NoError(t, request.Approve(approverID, "EFT123", now))

		assert.Equal(t, payout.Approved, request.Status())
		require.NotNil(t, request.Approver())
		assert.True(t, request.Approver().IsEqual(approverID))
		assert.Equal(t, "EFT123", request.PaymentReference())
		require.NotNil(t, request.ApprovedAt())
		assert.True(t, request.LocksBalance())
	})

	t.Run("payment_reference_is_mandatory", func(t *testing.T) {
		request := newPendingRequest(t)
		err := request.Approve(kernel.NewUUID(), "", time.Now())
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, payout.Pending, request.Status())
	})

	t.Run("second_approve_fails", func(t *testing.T) {
		request := newPendingRequest(t)
		require.NoError(t, request.Approve(kernel.NewUUID(), "EFT123", time.Now()))

		err := request.Approve(kernel.NewUUID(), "EFT456", time.Now())
		require.Error(t, err)
		assert.ErrorIs(t, err, payout.ErrNotPending)
		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, "EFT123", request.PaymentReference())
	})

	t.Run("cannot_approve_rejected_request", func(t *testing.T) {
		request := newPendingRequest(t)
		require.NoError(t, request.Reject(kernel.NewUUID(), "amount disputed", time.Now()))

		assert.ErrorIs(t, request.Approve(kernel.NewUUID(), "EFT123", time.Now()), payout.ErrNotPending)
	})
}

func TestPayoutRequest_Reject(t *testing.T) {
	t.Run("rejects_pending_request", func(t *testing.T) {
		request := newPendingRequest(t)
		rejecterID := kernel.NewUUID()

		require.NoError(t, request.Reject(rejecterID, "amount disputed", time.Now()))

		assert.Equal(t, payout.Rejected, request.Status())
		require.NotNil(t, request.Rejecter())
		assert.Equal(t, "amount disputed", request.RejectionReason())
		require.NotNil(t, request.RejectedAt())
		// Rejection releases the lock: the earnings flow back into the
		// derived balance.
		assert.False(t, request.LocksBalance())
	})

	t.Run("reason_is_mandatory", func(t *testing.T) {
		request := newPendingRequest(t)
		err := request.Reject(kernel.NewUUID(), "", time.Now())
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("event_carries_the_rejection_reason", func(t *testing.T) {
		request := newPendingRequest(t)
		require.NoError(t, request.Reject(kernel.NewUUID(), "amount disputed", time.Now()))

		events := request.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, payout.Rejected, events[0].NewStatus)
		assert.Equal(t, "amount disputed", events[0].RejectionReason)
	})
}

func TestPayoutRequest_MarkPaid(t *testing.T) {
	t.Run("pays_approved_request", func(t *testing.T) {
		request := newPendingRequest(t)
		require.NoError(t, request.Approve(kernel.NewUUID(), "EFT123", time.Now()))

		require.NoError(t, request.MarkPaid(kernel.NewUUID(), time.Now()))

		assert.Equal(t, payout.Paid, request.Status())
		require.NotNil(t, request.PaidAt())
	})

	t.Run("cannot_pay_pending_request", func(t *testing.T) {
		request := newPendingRequest(t)
		err := request.MarkPaid(kernel.NewUUID(), time.Now())
		require.Error(t, err)
		assert.ErrorIs(t, err, payout.ErrNotApproved)
	})

	t.Run("cannot_pay_twice", func(t *testing.T) {
		request := newPendingRequest(t)
		require.NoError(t, request.Approve(kernel.NewUUID(), "EFT123", time.Now()))
		require.NoError(t, request.MarkPaid(kernel.NewUUID(), time.Now()))

		assert.ErrorIs(t, request.MarkPaid(kernel.NewUUID(), time.Now()), payout.ErrNotApproved)
	})
}

func TestRestorePayoutRequest_MetadataConsistency(t *testing.T) {
	amount, _ := kernel.MoneyFromString("500.00")
	bank, _ := payout.NewBankSnapshot("J. Naidoo", "FNB", "62000000001")
	approverID := kernel.NewUUID()
	now := time.Now()

	t.Run("restores_approved_request", func(t *testing.T) {
		request, err := payout.RestorePayoutRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			amount, 4, bank, now,
			payout.Approved, &approverID, "EFT123", &now,
			nil, "", nil, nil, 2,
		)
		require.NoError(t, err)
		assert.Equal(t, payout.Approved, request.Status())
		assert.Equal(t, 2, request.Version())
	})

	t.Run("approved_without_payment_reference_is_invalid", func(t *testing.T) {
		_, err := payout.RestorePayoutRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			amount, 4, bank, now,
			payout.Approved, &approverID, "", &now,
			nil, "", nil, nil, 0,
		)
		require.Error(t, err)
	})

	t.Run("pending_with_approval_metadata_is_invalid", func(t *testing.T) {
		_, err := payout.RestorePayoutRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			amount, 4, bank, now,
			payout.Pending, &approverID, "EFT123", &now,
			nil, "", nil, nil, 0,
		)
		require.Error(t, err)
	})

	t.Run("paid_without_paid_timestamp_is_invalid", func(t *testing.T) {
		_, err := payout.RestorePayoutRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			amount, 4, bank, now,
			payout.Paid, &approverID, "EFT123", &now,
			nil, "", nil, nil, 0,
		)
		require.Error(t, err)
	})
}

func TestStatus_Locked(t *testing.T) {
	assert.True(t, payout.Pending.Locked())
	assert.True(t, payout.Approved.Locked())
	assert.True(t, payout.Paid.Locked())
	assert.False(t, payout.Rejected.Locked())
}
