package services

import (
	"time"

	"jangbo/pkg/apperr"
	"jangbo/repository"

	"gorm.io/gorm"
)

// CounterService projects the pickup board: for each of a store's numbered
// counters, the order currently held there. Computed from the order rows on
// every request, nothing cached.
type CounterService struct {
	Repo      *repository.OrderRepository
	StoreRepo *repository.StoreRepository
}

func NewCounterService(repo *repository.OrderRepository, storeRepo *repository.StoreRepository) *CounterService {
	return &CounterService{Repo: repo, StoreRepo: storeRepo}
}

type CounterOut struct {
	CounterNumber int       `json:"counterNumber"`
	Order         *OrderOut `json:"order"`
}

type StoreBoardOut struct {
	StoreID   uint         `json:"storeId"`
	StoreName string       `json:"storeName"`
	Counters  []CounterOut `json:"counters"`
}

func (s *CounterService) Board(storeID uint) (*StoreBoardOut, error) {
	store, err := s.StoreRepo.Get(storeID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("store not found")
		}
		return nil, err
	}

	active, err := s.Repo.ListActiveForStore(storeID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	bySlot := make(map[int]*OrderOut, len(active))
	for i := range active {
		if active[i].PickupSlot != nil {
			bySlot[*active[i].PickupSlot] = toOrderOut(&active[i], now)
		}
	}

	board := &StoreBoardOut{StoreID: store.ID, StoreName: store.Name}
	for n := 1; n <= maxPickupSlots; n++ {
		board.Counters = append(board.Counters, CounterOut{CounterNumber: n, Order: bySlot[n]})
	}
	return board, nil
}

func (s *CounterService) AllBoards() ([]*StoreBoardOut, error) {
	stores, err := s.StoreRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*StoreBoardOut, 0, len(stores))
	for _, store := range stores {
		board, err := s.Board(store.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, board)
	}
	return out, nil
}
