package services

import (
	"testing"

	"jangbo/entity"
	"jangbo/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreDetailListsProducts(t *testing.T) {
	f := newFixture(t)

	out, err := f.stores.Detail(f.storeA.ID)
	require.NoError(t, err)
	assert.Equal(t, f.storeA.ID, out.StoreID)
	assert.Len(t, out.Products, 2)

	_, err = f.stores.Detail(9999)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestStoreUpdateRequiresOwnership(t *testing.T) {
	f := newFixture(t)

	stranger := entity.User{Email: "m2@example.com", Name: "M2", Role: entity.RoleMerchant}
	require.NoError(t, f.db.Create(&stranger).Error)

	in := &StoreIn{Name: "Renamed", Address: "Elsewhere"}
	_, err := f.stores.Update(stranger.ID, f.storeA.ID, in)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	out, err := f.stores.Update(f.merchant.ID, f.storeA.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", out.Name)
}

func TestProductCreateRequiresStoreOwnership(t *testing.T) {
	f := newFixture(t)

	stranger := entity.User{Email: "m2@example.com", Name: "M2", Role: entity.RoleMerchant}
	require.NoError(t, f.db.Create(&stranger).Error)

	in := &ProductIn{Name: "Egg", Price: 300, Stock: 5}
	_, err := f.products.Create(stranger.ID, f.storeA.ID, in)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	out, err := f.products.Create(f.merchant.ID, f.storeA.ID, in)
	require.NoError(t, err)
	assert.Equal(t, f.storeA.ID, out.StoreID)
	assert.False(t, out.SoldOut)
}

func TestProductCreateZeroStockStartsSoldOut(t *testing.T) {
	f := newFixture(t)

	out, err := f.products.Create(f.merchant.ID, f.storeA.ID, &ProductIn{Name: "Egg", Price: 300})
	require.NoError(t, err)
	assert.True(t, out.SoldOut)
}

func TestProductUpdateRecomputesSoldOut(t *testing.T) {
	f := newFixture(t)

	in := &ProductIn{Name: f.apple.Name, Price: f.apple.Price, Stock: 0}
	out, err := f.products.Update(f.merchant.ID, f.apple.ID, in)
	require.NoError(t, err)
	assert.True(t, out.SoldOut)

	in.Stock = 3
	out, err = f.products.Update(f.merchant.ID, f.apple.ID, in)
	require.NoError(t, err)
	assert.False(t, out.SoldOut)
	assert.Equal(t, 3, out.Stock)
}

func TestProductUpdateForeignMerchant(t *testing.T) {
	f := newFixture(t)

	stranger := entity.User{Email: "m2@example.com", Name: "M2", Role: entity.RoleMerchant}
	require.NoError(t, f.db.Create(&stranger).Error)

	_, err := f.products.Update(stranger.ID, f.apple.ID, &ProductIn{Name: "X", Price: 1, Stock: 1})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	_, err = f.products.Update(f.merchant.ID, 9999, &ProductIn{Name: "X", Price: 1, Stock: 1})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
