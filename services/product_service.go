package services

import (
	"jangbo/entity"
	"jangbo/pkg/apperr"
	"jangbo/repository"

	"gorm.io/gorm"
)

type ProductService struct {
	Repo      *repository.ProductRepository
	StoreRepo *repository.StoreRepository
}

func NewProductService(repo *repository.ProductRepository, storeRepo *repository.StoreRepository) *ProductService {
	return &ProductService{Repo: repo, StoreRepo: storeRepo}
}

type ProductIn struct {
	Name     string `json:"name" binding:"required"`
	Price    int64  `json:"price" binding:"required,min=1"`
	Stock    int    `json:"stock" binding:"min=0"`
	ImageURL string `json:"imageUrl"`
}

func (s *ProductService) ListByStore(storeID uint) ([]entity.Product, error) {
	return s.Repo.ListByStore(storeID)
}

func (s *ProductService) Detail(productID uint) (*entity.Product, error) {
	p, err := s.Repo.Get(productID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("product not found")
		}
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Create(merchantID, storeID uint, in *ProductIn) (*entity.Product, error) {
	owned, err := s.StoreRepo.IsOwnedBy(storeID, merchantID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, apperr.Forbidden("not your store")
	}
	p := &entity.Product{
		Name:     in.Name,
		Price:    in.Price,
		Stock:    in.Stock,
		SoldOut:  in.Stock == 0,
		ImageURL: in.ImageURL,
		StoreID:  storeID,
	}
	if err := s.Repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update edits the catalog entry; soldOut always follows the edited stock.
func (s *ProductService) Update(merchantID, productID uint, in *ProductIn) (*entity.Product, error) {
	p, err := s.Repo.Get(productID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("product not found")
		}
		return nil, err
	}
	owned, err := s.StoreRepo.IsOwnedBy(p.StoreID, merchantID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, apperr.Forbidden("not your product")
	}
	p.Name = in.Name
	p.Price = in.Price
	p.Stock = in.Stock
	p.SoldOut = in.Stock == 0
	p.ImageURL = in.ImageURL
	if err := s.Repo.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}
