package entity

type OrderStatus string

const (
	OrderStatusRequested OrderStatus = "REQUESTED"
	OrderStatusAccepted  OrderStatus = "ACCEPTED"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

// orderTransitions is the full transition matrix. Cancellation is only
// reachable from REQUESTED; once a store accepted, the order can only move
// forward.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusRequested: {OrderStatusAccepted, OrderStatusCanceled},
	OrderStatusAccepted:  {OrderStatusPreparing, OrderStatusReady},
	OrderStatusPreparing: {OrderStatusReady},
	OrderStatusReady:     {OrderStatusCompleted},
}

func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderStatusSources lists every status the matrix allows `to` from. The
// guarded status updates build their from-lists with this, so the enforced
// transitions and the declared matrix cannot drift apart.
func OrderStatusSources(to OrderStatus) []OrderStatus {
	var out []OrderStatus
	for from, nexts := range orderTransitions {
		for _, next := range nexts {
			if next == to {
				out = append(out, from)
			}
		}
	}
	return out
}

// IsTerminal reports whether the order no longer occupies a pickup slot.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCanceled
}
