package services

import (
	"testing"
	"time"

	"jangbo/entity"
	"jangbo/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) placeOrder(t *testing.T, productID uint, qty int) *OrderOut {
	t.Helper()
	var p entity.Product
	require.NoError(t, f.db.First(&p, productID).Error)
	created, err := f.orders.Create(f.customer.ID, &CreateOrderReq{
		StoreID:  p.StoreID,
		Products: []OrderProductIn{{ProductID: productID, Quantity: qty}},
	})
	require.NoError(t, err)
	return created[0]
}

func TestAcceptSetsPreparation(t *testing.T) {
	f := newFixture(t)
	o := f.placeOrder(t, f.apple.ID, 1)

	require.NoError(t, f.orders.Accept(f.merchant.ID, o.OrderID, 15))

	got := f.orderByID(t, o.OrderID)
	assert.Equal(t, entity.OrderStatusAccepted, got.Status)
	require.NotNil(t, got.PreparationTime)
	assert.Equal(t, 15, *got.PreparationTime)
	require.NotNil(t, got.AcceptedAt)

	remaining := got.RemainingMinutes(time.Now())
	require.NotNil(t, remaining)
	assert.LessOrEqual(t, *remaining, 15)
	assert.GreaterOrEqual(t, *remaining, 14)
}

func TestRemainingMinutesFloorsAtZero(t *testing.T) {
	f := newFixture(t)
	o := f.placeOrder(t, f.apple.ID, 1)
	require.NoError(t, f.orders.Accept(f.merchant.ID, o.OrderID, 5))

	got := f.orderByID(t, o.OrderID)
	remaining := got.RemainingMinutes(got.AcceptedAt.Add(30 * time.Minute))
	require.NotNil(t, remaining)
	assert.Zero(t, *remaining)
}

func TestTransitionGuards(t *testing.T) {
	f := newFixture(t)
	o := f.placeOrder(t, f.apple.ID, 1)

	// Ready before acceptance.
	err := f.orders.MarkReady(f.merchant.ID, o.OrderID)
	assert.True(t, apperr.IsKind(err, apperr.KindStateConflict))

	require.NoError(t, f.orders.Accept(f.merchant.ID, o.OrderID, 10))

	// Double accept.
	err = f.orders.Accept(f.merchant.ID, o.OrderID, 10)
	assert.True(t, apperr.IsKind(err, apperr.KindStateConflict))

	// Cancel after acceptance.
	err = f.orders.CancelByCustomer(f.customer.ID, o.OrderID)
	assert.True(t, apperr.IsKind(err, apperr.KindStateConflict))

	require.NoError(t, f.orders.MarkPreparing(f.merchant.ID, o.OrderID))
	require.NoError(t, f.orders.MarkReady(f.merchant.ID, o.OrderID))

	// Cancel on a ready order.
	err = f.orders.CancelByMerchant(f.merchant.ID, o.OrderID, "too late")
	assert.True(t, apperr.IsKind(err, apperr.KindStateConflict))

	// Complete before ready is impossible by construction; completing now works.
	require.NoError(t, f.orders.Complete(f.merchant.ID, o.OrderID))
	got := f.orderByID(t, o.OrderID)
	assert.Equal(t, entity.OrderStatusCompleted, got.Status)
	assert.Nil(t, got.PickupSlot)
}

func TestReadyFromAcceptedSkipsPreparing(t *testing.T) {
	f := newFixture(t)
	o := f.placeOrder(t, f.apple.ID, 1)

	require.NoError(t, f.orders.Accept(f.merchant.ID, o.OrderID, 10))
	require.NoError(t, f.orders.MarkReady(f.merchant.ID, o.OrderID))
	assert.Equal(t, entity.OrderStatusReady, f.orderByID(t, o.OrderID).Status)
}

func TestMerchantActionsCheckOwnership(t *testing.T) {
	f := newFixture(t)
	o := f.placeOrder(t, f.apple.ID, 1)

	stranger := entity.User{Email: "m2@example.com", Name: "M2", Role: entity.RoleMerchant}
	require.NoError(t, f.db.Create(&stranger).Error)

	err := f.orders.Accept(stranger.ID, o.OrderID, 10)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	err = f.orders.CancelByMerchant(stranger.ID, o.OrderID, "nope")
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestCustomerCancelChecksOwnership(t *testing.T) {
	f := newFixture(t)
	o := f.placeOrder(t, f.apple.ID, 1)

	other := entity.User{Email: "other@example.com", Name: "Other", Role: entity.RoleCustomer}
	require.NoError(t, f.db.Create(&other).Error)

	err := f.orders.CancelByCustomer(other.ID, o.OrderID)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestCancelRestoresStockAndClearsSoldOut(t *testing.T) {
	f := newFixture(t)

	// Ordering all units marks the product sold out.
	o := f.placeOrder(t, f.apple.ID, 10)
	stock, soldOut := f.productStock(t, f.apple.ID)
	require.Zero(t, stock)
	require.True(t, soldOut)

	require.NoError(t, f.orders.CancelByCustomer(f.customer.ID, o.OrderID))

	stock, soldOut = f.productStock(t, f.apple.ID)
	assert.Equal(t, 10, stock)
	assert.False(t, soldOut)

	got := f.orderByID(t, o.OrderID)
	assert.Equal(t, entity.OrderStatusCanceled, got.Status)
	assert.Nil(t, got.PickupSlot)
}

func TestMerchantCancelRecordsReason(t *testing.T) {
	f := newFixture(t)
	o := f.placeOrder(t, f.carrot.ID, 3)

	require.NoError(t, f.orders.CancelByMerchant(f.merchant.ID, o.OrderID, "closing early"))

	got := f.orderByID(t, o.OrderID)
	assert.Equal(t, entity.OrderStatusCanceled, got.Status)
	require.NotNil(t, got.CancelReason)
	assert.Equal(t, "closing early", *got.CancelReason)

	stock, _ := f.productStock(t, f.carrot.ID)
	assert.Equal(t, 10, stock)
}

func TestAcceptValidatesPreparationTime(t *testing.T) {
	f := newFixture(t)
	o := f.placeOrder(t, f.apple.ID, 1)

	err := f.orders.Accept(f.merchant.ID, o.OrderID, 0)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestOrderStatusMatrix(t *testing.T) {
	assert.True(t, entity.OrderStatusRequested.CanTransition(entity.OrderStatusAccepted))
	assert.True(t, entity.OrderStatusRequested.CanTransition(entity.OrderStatusCanceled))
	assert.True(t, entity.OrderStatusAccepted.CanTransition(entity.OrderStatusReady))
	assert.False(t, entity.OrderStatusAccepted.CanTransition(entity.OrderStatusCanceled))
	assert.False(t, entity.OrderStatusReady.CanTransition(entity.OrderStatusCanceled))
	assert.False(t, entity.OrderStatusCompleted.CanTransition(entity.OrderStatusRequested))
	assert.True(t, entity.OrderStatusCompleted.IsTerminal())
	assert.True(t, entity.OrderStatusCanceled.IsTerminal())
	assert.False(t, entity.OrderStatusReady.IsTerminal())
}

// The guarded updates take their from-lists from the matrix, so the sources
// must be exactly what the matrix declares.
func TestOrderStatusSourcesMatchMatrix(t *testing.T) {
	assert.ElementsMatch(t, []entity.OrderStatus{entity.OrderStatusRequested},
		entity.OrderStatusSources(entity.OrderStatusAccepted))
	assert.ElementsMatch(t, []entity.OrderStatus{entity.OrderStatusAccepted},
		entity.OrderStatusSources(entity.OrderStatusPreparing))
	assert.ElementsMatch(t, []entity.OrderStatus{entity.OrderStatusAccepted, entity.OrderStatusPreparing},
		entity.OrderStatusSources(entity.OrderStatusReady))
	assert.ElementsMatch(t, []entity.OrderStatus{entity.OrderStatusReady},
		entity.OrderStatusSources(entity.OrderStatusCompleted))
	assert.ElementsMatch(t, []entity.OrderStatus{entity.OrderStatusRequested},
		entity.OrderStatusSources(entity.OrderStatusCanceled))
	assert.Empty(t, entity.OrderStatusSources(entity.OrderStatusRequested))
}
