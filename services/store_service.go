package services

import (
	"jangbo/entity"
	"jangbo/pkg/apperr"
	"jangbo/repository"

	"gorm.io/gorm"
)

type StoreService struct {
	Repo *repository.StoreRepository
}

func NewStoreService(repo *repository.StoreRepository) *StoreService {
	return &StoreService{Repo: repo}
}

type StoreIn struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address" binding:"required"`
	Description string `json:"description"`
}

type StoreDetailOut struct {
	StoreID     uint             `json:"storeId"`
	Name        string           `json:"name"`
	Address     string           `json:"address"`
	Description string           `json:"description"`
	Products    []entity.Product `json:"products"`
}

func (s *StoreService) List() ([]entity.Store, error) {
	return s.Repo.List()
}

func (s *StoreService) Detail(storeID uint) (*StoreDetailOut, error) {
	store, err := s.Repo.GetWithProducts(storeID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("store not found")
		}
		return nil, err
	}
	return &StoreDetailOut{
		StoreID:     store.ID,
		Name:        store.Name,
		Address:     store.Address,
		Description: store.Description,
		Products:    store.Products,
	}, nil
}

func (s *StoreService) Create(merchantID uint, in *StoreIn) (*entity.Store, error) {
	store := &entity.Store{
		Name:        in.Name,
		Address:     in.Address,
		Description: in.Description,
		MerchantID:  merchantID,
	}
	if err := s.Repo.Create(store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *StoreService) Update(merchantID, storeID uint, in *StoreIn) (*entity.Store, error) {
	store, err := s.Repo.Get(storeID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("store not found")
		}
		return nil, err
	}
	if store.MerchantID != merchantID {
		return nil, apperr.Forbidden("not your store")
	}
	store.Name = in.Name
	store.Address = in.Address
	store.Description = in.Description
	if err := s.Repo.Save(store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *StoreService) ListForMerchant(merchantID uint) ([]entity.Store, error) {
	return s.Repo.ListByMerchant(merchantID)
}
