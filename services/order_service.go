package services

import (
	"sort"
	"strings"
	"time"

	"jangbo/entity"
	"jangbo/pkg/apperr"
	"jangbo/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxPickupSlots = 10

// BoardNotifier is told after a committed change to a store's pickup board
// (order created, ready, completed, canceled). The websocket hub implements
// it; a nil notifier is fine for tests.
type BoardNotifier interface {
	BoardChanged(storeID uint)
}

type OrderService struct {
	DB          *gorm.DB
	Repo        *repository.OrderRepository
	CartRepo    *repository.CartRepository
	ProductRepo *repository.ProductRepository
	StoreRepo   *repository.StoreRepository
	Notifier    BoardNotifier
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	productRepo *repository.ProductRepository,
	storeRepo *repository.StoreRepository,
) *OrderService {
	return &OrderService{DB: db, Repo: repo, CartRepo: cartRepo, ProductRepo: productRepo, StoreRepo: storeRepo}
}

// ----- DTOs -----

type OrderProductIn struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type StoreOrderIn struct {
	StoreID  uint             `json:"storeId" binding:"required"`
	Products []OrderProductIn `json:"products" binding:"required,dive"`
}

type CreateOrderReq struct {
	// Single-store shape.
	StoreID  uint             `json:"storeId"`
	Products []OrderProductIn `json:"products"`
	// Multi-store shape; wins when present.
	StoreOrders []StoreOrderIn `json:"storeOrders"`
}

type CheckoutReq struct {
	SelectedItemIDs []uint `json:"selectedItemIds"`
}

type OrderLineOut struct {
	ProductID   uint   `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
}

type OrderOut struct {
	OrderID          uint               `json:"orderId"`
	StoreID          uint               `json:"storeId"`
	Status           entity.OrderStatus `json:"status"`
	TotalPrice       int64              `json:"totalPrice"`
	DeliveryFee      int64              `json:"deliveryFee"`
	OrderDate        time.Time          `json:"orderDate"`
	CancelReason     *string            `json:"cancelReason,omitempty"`
	PickupSlot       *int               `json:"pickupSlot,omitempty"`
	PickupCode       string             `json:"pickupCode"`
	Products         []OrderLineOut     `json:"products"`
	RemainingMinutes *int               `json:"remainingMinutes,omitempty"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

func toOrderOut(o *entity.Order, now time.Time) *OrderOut {
	out := &OrderOut{
		OrderID:          o.ID,
		StoreID:          o.StoreID,
		Status:           o.Status,
		TotalPrice:       o.TotalPrice,
		DeliveryFee:      o.DeliveryFee,
		OrderDate:        o.CreatedAt,
		CancelReason:     o.CancelReason,
		PickupSlot:       o.PickupSlot,
		PickupCode:       o.PickupCode,
		RemainingMinutes: o.RemainingMinutes(now),
		UpdatedAt:        o.UpdatedAt,
	}
	for _, line := range o.Products {
		out.Products = append(out.Products, OrderLineOut{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Price:       line.Price,
		})
	}
	return out
}

// ----- Request building -----

// BuildRequestFromSelection turns the customer's (selected) cart lines into
// per-store order groups. Every id is resolved against the customer's own
// cart; a guessed id from someone else's cart is simply not found. Groups
// come out in ascending store id — the first one carries the pickup fee.
func (s *OrderService) BuildRequestFromSelection(customerID uint, selectedItemIDs []uint) (*CreateOrderReq, error) {
	cart, err := s.CartRepo.GetWithItems(customerID)
	if err != nil {
		return nil, err
	}
	req, _, err := s.buildRequest(s.DB, cart, selectedItemIDs)
	return req, err
}

// buildRequest resolves the selection against the cart rows visible to tx.
// Checkout passes its own transaction here, after taking the cart lock, so
// the quantities it prices and the item rows it later deletes are exactly
// the ones read under that lock.
func (s *OrderService) buildRequest(tx *gorm.DB, cart *entity.Cart, selectedItemIDs []uint) (*CreateOrderReq, []uint, error) {
	var items []entity.CartItem
	var err error
	if len(selectedItemIDs) > 0 {
		items, err = s.CartRepo.GetItemsByIDs(tx, cart.ID, selectedItemIDs)
		if err != nil {
			return nil, nil, err
		}
		if len(items) != len(dedupe(selectedItemIDs)) {
			return nil, nil, apperr.NotFound("cart item not found")
		}
	} else {
		items, err = s.CartRepo.ItemsForCart(tx, cart.ID)
		if err != nil {
			return nil, nil, err
		}
	}
	if len(items) == 0 {
		return nil, nil, apperr.Validation("nothing to order")
	}

	groups := make(map[uint][]OrderProductIn)
	itemIDs := make([]uint, 0, len(items))
	for _, it := range items {
		groups[it.StoreID] = append(groups[it.StoreID], OrderProductIn{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
		itemIDs = append(itemIDs, it.ID)
	}

	storeIDs := make([]uint, 0, len(groups))
	for id := range groups {
		storeIDs = append(storeIDs, id)
	}
	sort.Slice(storeIDs, func(i, j int) bool { return storeIDs[i] < storeIDs[j] })

	req := &CreateOrderReq{}
	for _, id := range storeIDs {
		req.StoreOrders = append(req.StoreOrders, StoreOrderIn{StoreID: id, Products: groups[id]})
	}
	return req, itemIDs, nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// ----- Creation -----

// Create turns one checkout into one order per store, all inside a single
// transaction: a failure on any store group (out of stock, no free slot)
// rolls back every deduction and order already made for the sibling groups.
// The one-time pickup fee lands on the first group only.
func (s *OrderService) Create(customerID uint, req *CreateOrderReq) ([]*OrderOut, error) {
	groups := req.StoreOrders
	if len(groups) == 0 {
		if req.StoreID == 0 || len(req.Products) == 0 {
			return nil, apperr.Validation("no store orders given")
		}
		groups = []StoreOrderIn{{StoreID: req.StoreID, Products: req.Products}}
	}
	// One order per store per checkout; duplicate groups would also throw
	// off the distinct-store fee count.
	seenStores := make(map[uint]bool, len(groups))
	for _, g := range groups {
		if seenStores[g.StoreID] {
			return nil, apperr.Validation("duplicate store in order request")
		}
		seenStores[g.StoreID] = true
		if len(g.Products) == 0 {
			return nil, apperr.Validation("store order has no products")
		}
		for _, p := range g.Products {
			if p.Quantity < 1 {
				return nil, apperr.Validation("quantity must be at least 1")
			}
		}
	}

	fee := PickupFee(len(seenStores))
	var created []*OrderOut

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for i, group := range groups {
			order, err := s.createStoreOrder(tx, customerID, group, feeFor(i, fee))
			if err != nil {
				return err
			}
			created = append(created, toOrderOut(order, time.Now()))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyBoards(created)
	return created, nil
}

func feeFor(groupIndex int, fee int64) int64 {
	if groupIndex == 0 {
		return fee
	}
	return 0
}

// Checkout is Create fed from the cart; the ordered lines leave the cart in
// the same transaction, so a failed checkout keeps the cart intact. The
// selection is resolved only after the cart lock is held — a quantity change
// committed while the request is in flight either lands before the lock and
// is priced in, or waits behind it.
func (s *OrderService) Checkout(customerID uint, selectedItemIDs []uint) ([]*OrderOut, error) {
	var created []*OrderOut

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := s.CartRepo.GetForUpdate(tx, customerID)
		if err != nil {
			return err
		}

		req, orderedItems, err := s.buildRequest(tx, cart, selectedItemIDs)
		if err != nil {
			return err
		}

		fee := PickupFee(len(req.StoreOrders))
		for i, group := range req.StoreOrders {
			order, err := s.createStoreOrder(tx, customerID, group, feeFor(i, fee))
			if err != nil {
				return err
			}
			created = append(created, toOrderOut(order, time.Now()))
		}

		_, err = s.CartRepo.DeleteItems(tx, cart.ID, orderedItems)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifyBoards(created)
	return created, nil
}

// createStoreOrder validates and deducts stock, snapshots prices, assigns a
// pickup slot, and persists one REQUESTED order for the group.
func (s *OrderService) createStoreOrder(tx *gorm.DB, customerID uint, group StoreOrderIn, fee int64) (*entity.Order, error) {
	if _, err := s.StoreRepo.Get(group.StoreID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("store not found")
		}
		return nil, err
	}

	type snapshot struct {
		product *entity.Product
		qty     int
	}
	lines := make([]snapshot, 0, len(group.Products))
	var total int64

	for _, in := range group.Products {
		product, err := s.ProductRepo.GetTx(tx, in.ProductID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, apperr.NotFound("product not found")
			}
			return nil, err
		}
		if product.StoreID != group.StoreID {
			return nil, apperr.Validation("product does not belong to the store")
		}

		ok, err := s.ProductRepo.DeductStock(tx, product.ID, in.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.Newf(apperr.KindOutOfStock, "not enough stock for %q", product.Name)
		}
		if err := s.ProductRepo.MarkSoldOutIfDepleted(tx, product.ID); err != nil {
			return nil, err
		}

		lines = append(lines, snapshot{product: product, qty: in.Quantity})
		total += product.Price * int64(in.Quantity)
	}

	slot, err := s.allocateSlot(tx, group.StoreID)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		Status:      entity.OrderStatusRequested,
		TotalPrice:  total,
		DeliveryFee: fee,
		PickupSlot:  &slot,
		PickupCode:  newPickupCode(),
		CustomerID:  customerID,
		StoreID:     group.StoreID,
	}
	if err := s.Repo.CreateOrder(tx, order); err != nil {
		return nil, err
	}

	for _, line := range lines {
		op := &entity.OrderProduct{
			OrderID:     order.ID,
			ProductID:   line.product.ID,
			ProductName: line.product.Name,
			Quantity:    line.qty,
			Price:       line.product.Price,
		}
		if err := s.Repo.CreateOrderProduct(tx, op); err != nil {
			return nil, err
		}
		order.Products = append(order.Products, *op)
	}
	return order, nil
}

// allocateSlot hands out the lowest free counter number, first-fit. The
// store row is locked first so concurrent checkouts for the same store
// serialize here instead of double-assigning a slot.
func (s *OrderService) allocateSlot(tx *gorm.DB, storeID uint) (int, error) {
	if err := s.StoreRepo.LockForSlotAllocation(tx, storeID); err != nil {
		return 0, err
	}
	used, err := s.Repo.UsedSlots(tx, storeID)
	if err != nil {
		return 0, err
	}
	for slot := 1; slot <= maxPickupSlots; slot++ {
		if !used[slot] {
			return slot, nil
		}
	}
	return 0, apperr.CapacityExhausted("all pickup slots are taken for this store")
}

func newPickupCode() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

func (s *OrderService) notifyBoards(orders []*OrderOut) {
	if s.Notifier == nil {
		return
	}
	seen := make(map[uint]bool)
	for _, o := range orders {
		if !seen[o.StoreID] {
			seen[o.StoreID] = true
			s.Notifier.BoardChanged(o.StoreID)
		}
	}
}

// ----- Views -----

func (s *OrderService) ListForCustomer(customerID uint, limit int) ([]*OrderOut, error) {
	orders, err := s.Repo.ListForCustomer(customerID, limit)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]*OrderOut, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderOut(&orders[i], now))
	}
	return out, nil
}

func (s *OrderService) DetailForCustomer(customerID, orderID uint) (*OrderOut, error) {
	o, err := s.Repo.GetOrderForCustomer(customerID, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}
	return toOrderOut(o, time.Now()), nil
}

func (s *OrderService) ListForStore(merchantID, storeID uint, status *entity.OrderStatus, limit int) ([]*OrderOut, error) {
	ok, err := s.StoreRepo.IsOwnedBy(storeID, merchantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Forbidden("not your store")
	}

	orders, err := s.Repo.ListForStore(storeID, status, limit)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]*OrderOut, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderOut(&orders[i], now))
	}
	return out, nil
}
