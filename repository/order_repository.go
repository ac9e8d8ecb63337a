package repository

import (
	"jangbo/entity"

	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateOrderProduct(tx *gorm.DB, op *entity.OrderProduct) error {
	return tx.Create(op).Error
}

func (r *OrderRepository) GetOrder(tx *gorm.DB, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := tx.Preload("Products").First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderForCustomer(customerID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Where("id = ? AND customer_id = ?", orderID, customerID).
		Preload("Products").
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListForCustomer(customerID uint, limit int) ([]entity.Order, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []entity.Order
	err := r.DB.Where("customer_id = ?", customerID).
		Preload("Products").
		Order("id DESC").Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *OrderRepository) ListForStore(storeID uint, status *entity.OrderStatus, limit int) ([]entity.Order, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := r.DB.Where("store_id = ?", storeID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var out []entity.Order
	err := q.Preload("Products").Order("id DESC").Limit(limit).Find(&out).Error
	return out, err
}

// UpdateStatusGuard flips the status only when the current one matches.
// Losing a transition race surfaces as zero affected rows, never as a
// silent overwrite. Extra columns (acceptedAt, cancelReason, slot clears)
// ride along in the same statement.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from []entity.OrderStatus, to entity.OrderStatus, extra map[string]any) (bool, error) {
	updates := map[string]any{"status": to}
	for k, v := range extra {
		updates[k] = v
	}
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status IN ?", orderID, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// UsedSlots returns the pickup slots currently held by the store's
// non-terminal orders. Slot numbers free up as soon as an order completes
// or cancels.
func (r *OrderRepository) UsedSlots(tx *gorm.DB, storeID uint) (map[int]bool, error) {
	var slots []int
	err := tx.Model(&entity.Order{}).
		Where("store_id = ? AND pickup_slot IS NOT NULL AND status NOT IN ?",
			storeID, []entity.OrderStatus{entity.OrderStatusCompleted, entity.OrderStatusCanceled}).
		Pluck("pickup_slot", &slots).Error
	if err != nil {
		return nil, err
	}
	used := make(map[int]bool, len(slots))
	for _, s := range slots {
		used[s] = true
	}
	return used, nil
}

// ListActiveForStore feeds the pickup board: non-terminal orders holding a
// slot, with their line snapshots.
func (r *OrderRepository) ListActiveForStore(storeID uint) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.Where("store_id = ? AND pickup_slot IS NOT NULL AND status NOT IN ?",
		storeID, []entity.OrderStatus{entity.OrderStatusCompleted, entity.OrderStatusCanceled}).
		Preload("Products").
		Find(&out).Error
	return out, err
}
