package services

import (
	"testing"

	"jangbo/entity"
	"jangbo/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIsIdempotent(t *testing.T) {
	f := newFixture(t)
	o := f.placeOrder(t, f.apple.ID, 2)

	first, err := f.payments.Request(f.customer.ID, o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, first.Status)
	assert.Equal(t, entity.PaymentMethodMockTransfer, first.Method)
	assert.Equal(t, o.TotalPrice+o.DeliveryFee, first.Amount)

	second, err := f.payments.Request(f.customer.ID, o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, first.PaymentID, second.PaymentID)

	var count int64
	require.NoError(t, f.db.Model(&entity.Payment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRequestChecksOwnership(t *testing.T) {
	f := newFixture(t)
	o := f.placeOrder(t, f.apple.ID, 1)

	other := entity.User{Email: "other@example.com", Name: "Other", Role: entity.RoleCustomer}
	require.NoError(t, f.db.Create(&other).Error)

	_, err := f.payments.Request(other.ID, o.OrderID)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestApproveCouplesOrderAcceptance(t *testing.T) {
	f := newFixture(t)
	o := f.placeOrder(t, f.apple.ID, 1)
	_, err := f.payments.Request(f.customer.ID, o.OrderID)
	require.NoError(t, err)

	p, err := f.payments.Approve(f.merchant.ID, o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusApproved, p.Status)
	assert.Equal(t, entity.OrderStatusAccepted, f.orderByID(t, o.OrderID).Status)

	// Second approval hits the payment guard.
	_, err = f.payments.Approve(f.merchant.ID, o.OrderID)
	assert.True(t, apperr.IsKind(err, apperr.KindStateConflict))
}

func TestApproveAfterManualAcceptFails(t *testing.T) {
	f := newFixture(t)
	o := f.placeOrder(t, f.apple.ID, 1)
	_, err := f.payments.Request(f.customer.ID, o.OrderID)
	require.NoError(t, err)

	// Merchant accepted directly, so the order guard no longer holds.
	require.NoError(t, f.orders.Accept(f.merchant.ID, o.OrderID, 10))

	_, err = f.payments.Approve(f.merchant.ID, o.OrderID)
	assert.True(t, apperr.IsKind(err, apperr.KindStateConflict))
}

func TestDecline(t *testing.T) {
	f := newFixture(t)
	o := f.placeOrder(t, f.apple.ID, 1)
	_, err := f.payments.Request(f.customer.ID, o.OrderID)
	require.NoError(t, err)

	p, err := f.payments.Decline(f.merchant.ID, o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusDeclined, p.Status)

	// The order stays where it was; the customer can still cancel it.
	assert.Equal(t, entity.OrderStatusRequested, f.orderByID(t, o.OrderID).Status)

	_, err = f.payments.Approve(f.merchant.ID, o.OrderID)
	assert.True(t, apperr.IsKind(err, apperr.KindStateConflict))
}

func TestCancelRevertsAcceptedOrder(t *testing.T) {
	f := newFixture(t)
	o := f.placeOrder(t, f.apple.ID, 1)
	_, err := f.payments.Request(f.customer.ID, o.OrderID)
	require.NoError(t, err)
	_, err = f.payments.Approve(f.merchant.ID, o.OrderID)
	require.NoError(t, err)

	p, err := f.payments.Cancel(f.customer.ID, o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusCanceled, p.Status)

	got := f.orderByID(t, o.OrderID)
	assert.Equal(t, entity.OrderStatusRequested, got.Status)
	assert.Nil(t, got.PreparationTime)
	assert.Nil(t, got.AcceptedAt)
}

func TestCancelBlockedOncePickupStarted(t *testing.T) {
	f := newFixture(t)
	o := f.placeOrder(t, f.apple.ID, 1)
	_, err := f.payments.Request(f.customer.ID, o.OrderID)
	require.NoError(t, err)
	_, err = f.payments.Approve(f.merchant.ID, o.OrderID)
	require.NoError(t, err)
	require.NoError(t, f.orders.MarkReady(f.merchant.ID, o.OrderID))

	_, err = f.payments.Cancel(f.customer.ID, o.OrderID)
	assert.True(t, apperr.IsKind(err, apperr.KindStateConflict))
}

func TestMerchantPaymentActionsCheckOwnership(t *testing.T) {
	f := newFixture(t)
	o := f.placeOrder(t, f.apple.ID, 1)
	_, err := f.payments.Request(f.customer.ID, o.OrderID)
	require.NoError(t, err)

	stranger := entity.User{Email: "m2@example.com", Name: "M2", Role: entity.RoleMerchant}
	require.NoError(t, f.db.Create(&stranger).Error)

	_, err = f.payments.Approve(stranger.ID, o.OrderID)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	_, err = f.payments.Decline(stranger.ID, o.OrderID)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestPaymentStatusMatrix(t *testing.T) {
	assert.True(t, entity.PaymentStatusPending.CanTransition(entity.PaymentStatusApproved))
	assert.True(t, entity.PaymentStatusApproved.CanTransition(entity.PaymentStatusCanceled))
	assert.False(t, entity.PaymentStatusDeclined.CanTransition(entity.PaymentStatusApproved))

	assert.ElementsMatch(t, []entity.PaymentStatus{entity.PaymentStatusPending},
		entity.PaymentStatusSources(entity.PaymentStatusApproved))
	assert.ElementsMatch(t, []entity.PaymentStatus{entity.PaymentStatusPending},
		entity.PaymentStatusSources(entity.PaymentStatusDeclined))
	assert.ElementsMatch(t,
		[]entity.PaymentStatus{entity.PaymentStatusPending, entity.PaymentStatusApproved},
		entity.PaymentStatusSources(entity.PaymentStatusCanceled))
}

func TestGetForOrder(t *testing.T) {
	f := newFixture(t)
	o := f.placeOrder(t, f.apple.ID, 1)

	_, err := f.payments.GetForOrder(f.customer.ID, o.OrderID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = f.payments.Request(f.customer.ID, o.OrderID)
	require.NoError(t, err)

	p, err := f.payments.GetForOrder(f.customer.ID, o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, o.OrderID, p.OrderID)
}
