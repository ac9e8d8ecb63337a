package entity

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusApproved PaymentStatus = "APPROVED"
	PaymentStatusDeclined PaymentStatus = "DECLINED"
	PaymentStatusCanceled PaymentStatus = "CANCELED"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:  {PaymentStatusApproved, PaymentStatusDeclined, PaymentStatusCanceled},
	PaymentStatusApproved: {PaymentStatusCanceled},
}

func (s PaymentStatus) CanTransition(to PaymentStatus) bool {
	for _, next := range paymentTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// PaymentStatusSources mirrors OrderStatusSources for the payment matrix.
func PaymentStatusSources(to PaymentStatus) []PaymentStatus {
	var out []PaymentStatus
	for from, nexts := range paymentTransitions {
		for _, next := range nexts {
			if next == to {
				out = append(out, from)
			}
		}
	}
	return out
}
