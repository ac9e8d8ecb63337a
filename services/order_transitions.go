package services

import (
	"time"

	"jangbo/entity"
	"jangbo/pkg/apperr"

	"gorm.io/gorm"
)

// Order lifecycle: REQUESTED → ACCEPTED → PREPARING → READY → COMPLETED,
// with CANCELED reachable only from REQUESTED. Each action re-checks its
// precondition inside the guarded update, so the loser of a concurrent
// race gets a STATE_CONFLICT instead of silently overwriting.

// ----- Merchant actions -----

func (s *OrderService) Accept(merchantID, orderID uint, prepMinutes int) error {
	if prepMinutes < 1 {
		return apperr.Validation("preparationTime must be at least 1 minute")
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.loadForMerchant(tx, merchantID, orderID)
		if err != nil {
			return err
		}
		ok, err := s.Repo.UpdateStatusGuard(tx, o.ID,
			entity.OrderStatusSources(entity.OrderStatusAccepted), entity.OrderStatusAccepted,
			map[string]any{"preparation_time": prepMinutes, "accepted_at": time.Now()})
		if err != nil {
			return err
		}
		if !ok {
			return apperr.StateConflict("order cannot be accepted in its current status")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.notifyBoard(orderID)
	return nil
}

func (s *OrderService) MarkPreparing(merchantID, orderID uint) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.loadForMerchant(tx, merchantID, orderID)
		if err != nil {
			return err
		}
		ok, err := s.Repo.UpdateStatusGuard(tx, o.ID,
			entity.OrderStatusSources(entity.OrderStatusPreparing), entity.OrderStatusPreparing, nil)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.StateConflict("order is not in an acceptable state for preparing")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.notifyBoard(orderID)
	return nil
}

func (s *OrderService) MarkReady(merchantID, orderID uint) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.loadForMerchant(tx, merchantID, orderID)
		if err != nil {
			return err
		}
		ok, err := s.Repo.UpdateStatusGuard(tx, o.ID,
			entity.OrderStatusSources(entity.OrderStatusReady), entity.OrderStatusReady, nil)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.StateConflict("order cannot be marked ready in its current status")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.notifyBoard(orderID)
	return nil
}

// Complete frees the pickup slot; the counter number becomes reusable the
// moment this commits.
func (s *OrderService) Complete(merchantID, orderID uint) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.loadForMerchant(tx, merchantID, orderID)
		if err != nil {
			return err
		}
		ok, err := s.Repo.UpdateStatusGuard(tx, o.ID,
			entity.OrderStatusSources(entity.OrderStatusCompleted), entity.OrderStatusCompleted,
			map[string]any{"pickup_slot": nil})
		if err != nil {
			return err
		}
		if !ok {
			return apperr.StateConflict("only a ready order can be completed")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.notifyBoard(orderID)
	return nil
}

func (s *OrderService) CancelByMerchant(merchantID, orderID uint, reason string) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.loadForMerchant(tx, merchantID, orderID)
		if err != nil {
			return err
		}
		return s.cancel(tx, o, &reason)
	})
	if err != nil {
		return err
	}
	s.notifyBoard(orderID)
	return nil
}

// ----- Customer actions -----

func (s *OrderService) CancelByCustomer(customerID, orderID uint) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrder(tx, orderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperr.NotFound("order not found")
			}
			return err
		}
		if o.CustomerID != customerID {
			return apperr.Forbidden("not your order")
		}
		return s.cancel(tx, o, nil)
	})
	if err != nil {
		return err
	}
	s.notifyBoard(orderID)
	return nil
}

// ----- Shared -----

// cancel flips REQUESTED→CANCELED, frees the slot and puts every line's
// quantity back on the shelf. Restoring always clears soldOut: a restore
// of at least one unit means the product is purchasable again.
func (s *OrderService) cancel(tx *gorm.DB, o *entity.Order, reason *string) error {
	extra := map[string]any{"pickup_slot": nil}
	if reason != nil {
		extra["cancel_reason"] = *reason
	}
	ok, err := s.Repo.UpdateStatusGuard(tx, o.ID,
		entity.OrderStatusSources(entity.OrderStatusCanceled), entity.OrderStatusCanceled, extra)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.StateConflict("only a requested order can be canceled")
	}
	for _, line := range o.Products {
		if err := s.ProductRepo.RestoreStock(tx, line.ProductID, line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (s *OrderService) loadForMerchant(tx *gorm.DB, merchantID, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrder(tx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}
	ok, err := s.StoreRepo.IsOwnedBy(o.StoreID, merchantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Forbidden("not your store's order")
	}
	return o, nil
}

func (s *OrderService) notifyBoard(orderID uint) {
	if s.Notifier == nil {
		return
	}
	o, err := s.Repo.GetOrder(s.DB, orderID)
	if err != nil {
		return
	}
	s.Notifier.BoardChanged(o.StoreID)
}
