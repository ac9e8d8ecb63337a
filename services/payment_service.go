package services

import (
	"jangbo/entity"
	"jangbo/pkg/apperr"
	"jangbo/repository"

	"gorm.io/gorm"
)

// PaymentService keeps a lightweight payment record per order, gated by the
// order's own status. No gateway is involved; approve/decline model the
// merchant confirming a local transfer.
type PaymentService struct {
	DB        *gorm.DB
	Repo      *repository.PaymentRepository
	OrderRepo *repository.OrderRepository
	StoreRepo *repository.StoreRepository
}

func NewPaymentService(db *gorm.DB, repo *repository.PaymentRepository, orderRepo *repository.OrderRepository, storeRepo *repository.StoreRepository) *PaymentService {
	return &PaymentService{DB: db, Repo: repo, OrderRepo: orderRepo, StoreRepo: storeRepo}
}

type PaymentOut struct {
	PaymentID uint                 `json:"paymentId"`
	OrderID   uint                 `json:"orderId"`
	Amount    int64                `json:"amount"`
	Method    string               `json:"method"`
	Status    entity.PaymentStatus `json:"status"`
}

func toPaymentOut(p *entity.Payment) *PaymentOut {
	return &PaymentOut{PaymentID: p.ID, OrderID: p.OrderID, Amount: p.Amount, Method: p.Method, Status: p.Status}
}

// Request creates the order's payment record in PENDING. Requesting twice
// is idempotent: the existing record comes back unchanged.
func (s *PaymentService) Request(customerID, orderID uint) (*PaymentOut, error) {
	var out *PaymentOut
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.OrderRepo.GetOrder(tx, orderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFound("order not found")
			}
			return err
		}
		if o.CustomerID != customerID {
			return apperr.Forbidden("not your order")
		}

		existing, err := s.Repo.GetByOrder(tx, o.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			out = toPaymentOut(existing)
			return nil
		}

		p := &entity.Payment{
			Amount:  o.TotalPrice + o.DeliveryFee,
			Method:  entity.PaymentMethodMockTransfer,
			Status:  entity.PaymentStatusPending,
			OrderID: o.ID,
		}
		if err := s.Repo.Create(tx, p); err != nil {
			return err
		}
		out = toPaymentOut(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Approve couples payment APPROVED with order ACCEPTED: both guards must
// hold, both rows flip in one transaction.
func (s *PaymentService) Approve(merchantID, orderID uint) (*PaymentOut, error) {
	return s.merchantTransition(merchantID, orderID, func(tx *gorm.DB, o *entity.Order, p *entity.Payment) error {
		ok, err := s.Repo.UpdateStatusGuard(tx, p.ID,
			entity.PaymentStatusSources(entity.PaymentStatusApproved), entity.PaymentStatusApproved)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.StateConflict("payment already processed")
		}
		ok, err = s.OrderRepo.UpdateStatusGuard(tx, o.ID,
			entity.OrderStatusSources(entity.OrderStatusAccepted), entity.OrderStatusAccepted, nil)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.StateConflict("order already progressed")
		}
		p.Status = entity.PaymentStatusApproved
		return nil
	})
}

func (s *PaymentService) Decline(merchantID, orderID uint) (*PaymentOut, error) {
	return s.merchantTransition(merchantID, orderID, func(tx *gorm.DB, o *entity.Order, p *entity.Payment) error {
		if o.Status != entity.OrderStatusRequested {
			return apperr.StateConflict("order already progressed")
		}
		ok, err := s.Repo.UpdateStatusGuard(tx, p.ID,
			entity.PaymentStatusSources(entity.PaymentStatusDeclined), entity.PaymentStatusDeclined)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.StateConflict("payment already processed")
		}
		p.Status = entity.PaymentStatusDeclined
		return nil
	})
}

// Cancel voids a pending or approved payment while pickup has not started;
// the order drops back to REQUESTED so the customer can pay again or cancel.
func (s *PaymentService) Cancel(customerID, orderID uint) (*PaymentOut, error) {
	var out *PaymentOut
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.OrderRepo.GetOrder(tx, orderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFound("order not found")
			}
			return err
		}
		if o.CustomerID != customerID {
			return apperr.Forbidden("not your order")
		}
		if o.Status == entity.OrderStatusReady || o.Status == entity.OrderStatusCompleted {
			return apperr.StateConflict("order is past the point of payment cancellation")
		}

		p, err := s.Repo.GetByOrder(tx, o.ID)
		if err != nil {
			return err
		}
		if p == nil {
			return apperr.NotFound("no payment for this order")
		}

		ok, err := s.Repo.UpdateStatusGuard(tx, p.ID,
			entity.PaymentStatusSources(entity.PaymentStatusCanceled),
			entity.PaymentStatusCanceled)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.StateConflict("payment cannot be canceled in its current status")
		}

		// Revert an acceptance that rode on the approved payment. The only
		// backward order step in the system; the forward matrix does not
		// list it, so the from-list stays explicit.
		if o.Status != entity.OrderStatusRequested {
			if _, err := s.OrderRepo.UpdateStatusGuard(tx, o.ID,
				[]entity.OrderStatus{entity.OrderStatusAccepted, entity.OrderStatusPreparing},
				entity.OrderStatusRequested,
				map[string]any{"preparation_time": nil, "accepted_at": nil}); err != nil {
				return err
			}
		}

		p.Status = entity.PaymentStatusCanceled
		out = toPaymentOut(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PaymentService) GetForOrder(customerID, orderID uint) (*PaymentOut, error) {
	o, err := s.OrderRepo.GetOrderForCustomer(customerID, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}
	p, err := s.Repo.GetByOrder(s.DB, o.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("no payment for this order")
	}
	return toPaymentOut(p), nil
}

func (s *PaymentService) merchantTransition(merchantID, orderID uint, fn func(tx *gorm.DB, o *entity.Order, p *entity.Payment) error) (*PaymentOut, error) {
	var out *PaymentOut
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.OrderRepo.GetOrder(tx, orderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFound("order not found")
			}
			return err
		}
		ok, err := s.StoreRepo.IsOwnedBy(o.StoreID, merchantID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Forbidden("not your store's order")
		}

		p, err := s.Repo.GetByOrder(tx, o.ID)
		if err != nil {
			return err
		}
		if p == nil {
			return apperr.NotFound("no payment for this order")
		}

		if err := fn(tx, o, p); err != nil {
			return err
		}
		out = toPaymentOut(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
