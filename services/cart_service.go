package services

import (
	"jangbo/entity"
	"jangbo/pkg/apperr"
	"jangbo/repository"

	"gorm.io/gorm"
)

// Pickup fee table: flat base for one store, a surcharge per additional
// store, capped. These are contract values the frontend depends on.
const (
	pickupFeeBase int64 = 800
	pickupFeeStep int64 = 500
	pickupFeeCap  int64 = 2300
)

func PickupFee(distinctStores int) int64 {
	if distinctStores <= 0 {
		return 0
	}
	fee := pickupFeeBase + pickupFeeStep*int64(distinctStores-1)
	if fee > pickupFeeCap {
		fee = pickupFeeCap
	}
	return fee
}

type CartService struct {
	DB          *gorm.DB
	CartRepo    *repository.CartRepository
	ProductRepo *repository.ProductRepository
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, pr *repository.ProductRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr, ProductRepo: pr}
}

// ----- DTOs -----

type AddItemIn struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity"` // omitted means 1
}

type AddItemOut struct {
	CartID   uint   `json:"cartId"`
	ItemID   uint   `json:"itemId"`
	Quantity int    `json:"quantity"` // final quantity after merge
	Message  string `json:"message"`
}

type UpdateQuantityIn struct {
	ItemID   uint `json:"itemId" binding:"required"`
	Quantity int  `json:"quantity" binding:"required"`
}

type CartLineOut struct {
	ItemID      uint   `json:"itemId"`
	ProductID   uint   `json:"productId"`
	ProductName string `json:"productName"`
	StoreID     uint   `json:"storeId"`
	StoreName   string `json:"storeName"`
	UnitPrice   int64  `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	LineTotal   int64  `json:"lineTotal"`
	ImageURL    string `json:"imageUrl"`
}

type CartSummaryOut struct {
	CartID             uint          `json:"cartId"`
	Items              []CartLineOut `json:"items"`
	SelectedItemCount  int           `json:"selectedItemCount"`
	SelectedStoreCount int           `json:"selectedStoreCount"`
	Subtotal           int64         `json:"subtotal"`
	PickupFee          int64         `json:"pickupFee"`
	Total              int64         `json:"total"`
}

// ----- Mutations -----

// Add merges into an existing line for the same product instead of
// creating a second row.
func (s *CartService) Add(customerID uint, in *AddItemIn) (*AddItemOut, error) {
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 1 {
		return nil, apperr.Validation("quantity must be at least 1")
	}

	product, err := s.ProductRepo.Get(in.ProductID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("product not found")
		}
		return nil, err
	}

	var out AddItemOut
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := s.CartRepo.GetForUpdate(tx, customerID)
		if err != nil {
			return err
		}

		line, err := s.CartRepo.FindItemByProduct(tx, cart.ID, product.ID)
		if err != nil {
			return err
		}
		if line != nil {
			line.Quantity += qty
			if err := s.CartRepo.SaveItem(tx, line); err != nil {
				return err
			}
		} else {
			line = &entity.CartItem{
				CartID:    cart.ID,
				ProductID: product.ID,
				StoreID:   product.StoreID,
				Quantity:  qty,
			}
			if err := s.CartRepo.CreateItem(tx, line); err != nil {
				return err
			}
		}

		out = AddItemOut{CartID: cart.ID, ItemID: line.ID, Quantity: line.Quantity, Message: "added to cart"}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateQuantity sets an absolute quantity. Zero or less is rejected;
// removal is its own operation, never an implicit side effect.
func (s *CartService) UpdateQuantity(customerID, itemID uint, qty int) (*AddItemOut, error) {
	if qty < 1 {
		return nil, apperr.Validation("quantity must be at least 1")
	}

	var out AddItemOut
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := s.CartRepo.GetForUpdate(tx, customerID)
		if err != nil {
			return err
		}
		line, err := s.CartRepo.GetItem(tx, cart.ID, itemID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFound("cart item not found")
			}
			return err
		}
		line.Quantity = qty
		if err := s.CartRepo.SaveItem(tx, line); err != nil {
			return err
		}
		out = AddItemOut{CartID: cart.ID, ItemID: line.ID, Quantity: line.Quantity, Message: "quantity updated"}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AdjustQuantity applies a delta (+1/-1 from the cart page). A result
// below 1 is rejected and the line left untouched.
func (s *CartService) AdjustQuantity(customerID, itemID uint, delta int) (*AddItemOut, error) {
	var out AddItemOut
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := s.CartRepo.GetForUpdate(tx, customerID)
		if err != nil {
			return err
		}
		line, err := s.CartRepo.GetItem(tx, cart.ID, itemID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFound("cart item not found")
			}
			return err
		}
		next := line.Quantity + delta
		if next < 1 {
			return apperr.Validation("quantity must stay at least 1")
		}
		line.Quantity = next
		if err := s.CartRepo.SaveItem(tx, line); err != nil {
			return err
		}
		out = AddItemOut{CartID: cart.ID, ItemID: line.ID, Quantity: line.Quantity}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CartService) Remove(customerID, itemID uint) (int64, error) {
	return s.removeByIDs(customerID, []uint{itemID})
}

func (s *CartService) RemoveSelected(customerID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, apperr.Validation("itemIds is required")
	}
	return s.removeByIDs(customerID, ids)
}

func (s *CartService) removeByIDs(customerID uint, ids []uint) (int64, error) {
	var deleted int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := s.CartRepo.GetForUpdate(tx, customerID)
		if err != nil {
			return err
		}
		n, err := s.CartRepo.DeleteItems(tx, cart.ID, ids)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperr.NotFound("cart item not found")
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (s *CartService) Clear(customerID uint) (int64, error) {
	var deleted int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := s.CartRepo.GetForUpdate(tx, customerID)
		if err != nil {
			return err
		}
		n, err := s.CartRepo.DeleteAllItems(tx, cart.ID)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// ----- Reads -----

// Summary prices the cart against the live catalog. An empty selection
// means the whole cart; that one convention applies to every call site.
// Prices are never cached on the line, so the subtotal follows catalog
// changes until checkout snapshots them.
func (s *CartService) Summary(customerID uint, selectedItemIDs []uint) (*CartSummaryOut, error) {
	cart, err := s.CartRepo.GetWithItems(customerID)
	if err != nil {
		return nil, err
	}

	selected := cart.Items
	if len(selectedItemIDs) > 0 {
		want := make(map[uint]bool, len(selectedItemIDs))
		for _, id := range selectedItemIDs {
			want[id] = true
		}
		filtered := make([]entity.CartItem, 0, len(selectedItemIDs))
		for _, it := range cart.Items {
			if want[it.ID] {
				filtered = append(filtered, it)
				delete(want, it.ID)
			}
		}
		if len(want) > 0 {
			return nil, apperr.NotFound("cart item not found")
		}
		selected = filtered
	}

	out := &CartSummaryOut{CartID: cart.ID, Items: make([]CartLineOut, 0, len(selected))}
	stores := make(map[uint]bool)
	for _, it := range selected {
		lineTotal := it.Product.Price * int64(it.Quantity)
		out.Items = append(out.Items, CartLineOut{
			ItemID:      it.ID,
			ProductID:   it.ProductID,
			ProductName: it.Product.Name,
			StoreID:     it.StoreID,
			StoreName:   it.Store.Name,
			UnitPrice:   it.Product.Price,
			Quantity:    it.Quantity,
			LineTotal:   lineTotal,
			ImageURL:    it.Product.ImageURL,
		})
		out.Subtotal += lineTotal
		stores[it.StoreID] = true
	}
	out.SelectedItemCount = len(selected)
	out.SelectedStoreCount = len(stores)
	out.PickupFee = PickupFee(len(stores))
	if out.SelectedItemCount > 0 {
		out.Total = out.Subtotal + out.PickupFee
	}
	return out, nil
}
