package repository

import (
	"jangbo/entity"

	"gorm.io/gorm"
)

type StoreRepository struct{ DB *gorm.DB }

func NewStoreRepository(db *gorm.DB) *StoreRepository { return &StoreRepository{DB: db} }

func (r *StoreRepository) Create(s *entity.Store) error {
	return r.DB.Create(s).Error
}

func (r *StoreRepository) Save(s *entity.Store) error {
	return r.DB.Save(s).Error
}

func (r *StoreRepository) Get(id uint) (*entity.Store, error) {
	var s entity.Store
	if err := r.DB.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StoreRepository) GetWithProducts(id uint) (*entity.Store, error) {
	var s entity.Store
	if err := r.DB.Preload("Products").First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StoreRepository) List() ([]entity.Store, error) {
	var out []entity.Store
	err := r.DB.Order("id").Find(&out).Error
	return out, err
}

func (r *StoreRepository) ListByMerchant(merchantID uint) ([]entity.Store, error) {
	var out []entity.Store
	err := r.DB.Where("merchant_id = ?", merchantID).Order("id").Find(&out).Error
	return out, err
}

func (r *StoreRepository) IsOwnedBy(storeID, merchantID uint) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.Store{}).
		Where("id = ? AND merchant_id = ?", storeID, merchantID).
		Count(&cnt).Error
	return cnt > 0, err
}

// LockForSlotAllocation takes the store row for update so two concurrent
// checkouts against the same store cannot pick the same pickup slot.
func (r *StoreRepository) LockForSlotAllocation(tx *gorm.DB, storeID uint) error {
	var s entity.Store
	return forUpdate(tx).First(&s, storeID).Error
}
