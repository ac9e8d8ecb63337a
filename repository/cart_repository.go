package repository

import (
	"errors"

	"jangbo/entity"

	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// GetOrCreate resolves the customer's single cart, creating it on first
// access. Mutation paths call this inside their transaction.
func (r *CartRepository) GetOrCreate(tx *gorm.DB, customerID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := tx.Where("customer_id = ?", customerID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = entity.Cart{CustomerID: customerID}
		if err := tx.Create(&c).Error; err != nil {
			return nil, err
		}
		return &c, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetForUpdate takes the cart row for update. Every cart mutation locks
// here first, so a customer's concurrent submits are strictly ordered.
func (r *CartRepository) GetForUpdate(tx *gorm.DB, customerID uint) (*entity.Cart, error) {
	c, err := r.GetOrCreate(tx, customerID)
	if err != nil {
		return nil, err
	}
	var locked entity.Cart
	if err := forUpdate(tx).First(&locked, c.ID).Error; err != nil {
		return nil, err
	}
	return &locked, nil
}

// GetWithItems is the read path; no lock, products preloaded for live
// pricing.
func (r *CartRepository) GetWithItems(customerID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("customer_id = ?", customerID).
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Store").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entity.Cart{CustomerID: customerID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CartRepository) FindItemByProduct(tx *gorm.DB, cartID, productID uint) (*entity.CartItem, error) {
	var it entity.CartItem
	err := tx.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&it).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// GetItem is scoped to the cart, so a guessed id belonging to another
// customer comes back as not found.
func (r *CartRepository) GetItem(tx *gorm.DB, cartID, itemID uint) (*entity.CartItem, error) {
	var it entity.CartItem
	if err := tx.Where("id = ? AND cart_id = ?", itemID, cartID).First(&it).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

// ItemsForCart reads every line through the caller's tx, for paths that
// must see the cart as of their own transaction rather than a prior read.
func (r *CartRepository) ItemsForCart(tx *gorm.DB, cartID uint) ([]entity.CartItem, error) {
	var out []entity.CartItem
	err := tx.Where("cart_id = ?", cartID).
		Preload("Product").
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *CartRepository) GetItemsByIDs(tx *gorm.DB, cartID uint, ids []uint) ([]entity.CartItem, error) {
	var out []entity.CartItem
	err := tx.Where("cart_id = ? AND id IN ?", cartID, ids).
		Preload("Product").
		Find(&out).Error
	return out, err
}

func (r *CartRepository) CreateItem(tx *gorm.DB, it *entity.CartItem) error {
	return tx.Create(it).Error
}

func (r *CartRepository) SaveItem(tx *gorm.DB, it *entity.CartItem) error {
	return tx.Save(it).Error
}

func (r *CartRepository) DeleteItems(tx *gorm.DB, cartID uint, ids []uint) (int64, error) {
	res := tx.Where("cart_id = ? AND id IN ?", cartID, ids).Delete(&entity.CartItem{})
	return res.RowsAffected, res.Error
}

func (r *CartRepository) DeleteAllItems(tx *gorm.DB, cartID uint) (int64, error) {
	res := tx.Where("cart_id = ?", cartID).Delete(&entity.CartItem{})
	return res.RowsAffected, res.Error
}
