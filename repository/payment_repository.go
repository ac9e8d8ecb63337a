package repository

import (
	"errors"

	"jangbo/entity"

	"gorm.io/gorm"
)

type PaymentRepository struct{ DB *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{DB: db} }

func (r *PaymentRepository) Create(tx *gorm.DB, p *entity.Payment) error {
	return tx.Create(p).Error
}

func (r *PaymentRepository) GetByOrder(tx *gorm.DB, orderID uint) (*entity.Payment, error) {
	var p entity.Payment
	err := tx.Where("order_id = ?", orderID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) UpdateStatusGuard(tx *gorm.DB, paymentID uint, from []entity.PaymentStatus, to entity.PaymentStatus) (bool, error) {
	res := tx.Model(&entity.Payment{}).
		Where("id = ? AND status IN ?", paymentID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
