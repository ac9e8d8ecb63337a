package repository

import (
	"jangbo/entity"

	"gorm.io/gorm"
)

type ProductRepository struct{ DB *gorm.DB }

func NewProductRepository(db *gorm.DB) *ProductRepository { return &ProductRepository{DB: db} }

func (r *ProductRepository) Create(p *entity.Product) error {
	return r.DB.Create(p).Error
}

func (r *ProductRepository) Save(p *entity.Product) error {
	return r.DB.Save(p).Error
}

func (r *ProductRepository) Get(id uint) (*entity.Product, error) {
	var p entity.Product
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) GetTx(tx *gorm.DB, id uint) (*entity.Product, error) {
	var p entity.Product
	if err := tx.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) ListByStore(storeID uint) ([]entity.Product, error) {
	var out []entity.Product
	err := r.DB.Where("store_id = ?", storeID).Order("id").Find(&out).Error
	return out, err
}

// DeductStock is a conditional decrement: it only fires when enough stock
// remains, so two concurrent checkouts cannot both pass a read-then-write
// check. The caller treats a zero row count as out of stock.
func (r *ProductRepository) DeductStock(tx *gorm.DB, productID uint, qty int) (bool, error) {
	res := tx.Model(&entity.Product{}).
		Where("id = ? AND sold_out = ? AND stock >= ?", productID, false, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// MarkSoldOutIfDepleted keeps the soldOut flag in step with a stock that
// just reached zero.
func (r *ProductRepository) MarkSoldOutIfDepleted(tx *gorm.DB, productID uint) error {
	return tx.Model(&entity.Product{}).
		Where("id = ? AND stock = 0", productID).
		UpdateColumn("sold_out", true).Error
}

// RestoreStock returns a canceled order line's quantity to the product.
// The row lock keeps the increment and the soldOut reset atomic against a
// concurrent deduction.
func (r *ProductRepository) RestoreStock(tx *gorm.DB, productID uint, qty int) error {
	var p entity.Product
	if err := forUpdate(tx).First(&p, productID).Error; err != nil {
		return err
	}
	return tx.Model(&entity.Product{}).
		Where("id = ?", productID).
		UpdateColumns(map[string]any{
			"stock":    gorm.Expr("stock + ?", qty),
			"sold_out": false,
		}).Error
}
