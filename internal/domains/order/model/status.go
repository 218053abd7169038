package model

type Status string

const (
	StatusPending       Status = "pending"
	StatusConfirmed     Status = "confirmed"
	StatusProcessing    Status = "processing"
	StatusShipped       Status = "shipped"
	StatusReadyToPickup Status = "ready_to_pickup"
	StatusDelivered     Status = "delivered"
	StatusCompleted     Status = "completed"
	StatusCancelled     Status = "cancelled"
)

// transitions is the closed set of allowed status changes. Cancellation is
// only reachable before fulfilment starts.
var transitions = map[Status][]Status{
	StatusPending:       {StatusConfirmed, StatusCancelled},
	StatusConfirmed:     {StatusProcessing, StatusCancelled},
	StatusProcessing:    {StatusShipped, StatusReadyToPickup},
	StatusShipped:       {StatusDelivered, StatusCompleted},
	StatusReadyToPickup: {StatusDelivered, StatusCompleted},
	StatusDelivered:     {StatusCompleted},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped,
		StatusReadyToPickup, StatusDelivered, StatusCompleted, StatusCancelled:
		return true
	}

	return false
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}
