package model

import (
	"time"

	resModel "petcare/internal/domains/reservation/model"
)

type AvailabilityStatus string

const (
	AvailabilityAvailable AvailabilityStatus = "available"
	AvailabilityOccupied  AvailabilityStatus = "occupied"
	AvailabilityReserved  AvailabilityStatus = "reserved"
)

// Resolution is the derived occupancy of a single cage at a given instant.
// Conflict is set when more than one confirmed reservation overlaps the
// instant, which is a data defect the resolver tolerates but reports.
type Resolution struct {
	Status   AvailabilityStatus
	Current  *resModel.Reservation
	Next     *resModel.Reservation
	Conflict bool
}

// ResolveAvailability derives the tri-state availability of a cage from its
// reservations. Only confirmed reservations count; check-in is inclusive and
// check-out exclusive, so a reservation checking out right now no longer
// occupies the cage. The function is pure: same input, same output.
func ResolveAvailability(reservations []resModel.Reservation, now time.Time) Resolution {
	res := Resolution{Status: AvailabilityAvailable}

	overlapping := 0

	for i := range reservations {
		r := &reservations[i]

		if r.Status != resModel.StatusConfirmed {
			continue
		}

		if !r.CheckInDate.After(now) && r.CheckOutDate.After(now) {
			overlapping++

			if res.Current == nil || earlier(r, res.Current) {
				res.Current = r
			}

			continue
		}

		if r.CheckInDate.After(now) {
			if res.Next == nil || earlier(r, res.Next) {
				res.Next = r
			}
		}
	}

	switch {
	case res.Current != nil:
		res.Status = AvailabilityOccupied
		res.Next = nextAfter(reservations, res.Current, now)
	case res.Next != nil:
		res.Status = AvailabilityReserved
	}

	res.Conflict = overlapping > 1

	return res
}

// nextAfter recomputes the upcoming reservation so that it never overlaps the
// chosen current one: the next occupant must check in after now.
func nextAfter(reservations []resModel.Reservation, current *resModel.Reservation, now time.Time) *resModel.Reservation {
	var next *resModel.Reservation

	for i := range reservations {
		r := &reservations[i]

		if r.Status != resModel.StatusConfirmed || r.ID == current.ID {
			continue
		}

		if r.CheckInDate.After(now) {
			if next == nil || earlier(r, next) {
				next = r
			}
		}
	}

	return next
}

// earlier orders reservations by check-in date, then by id, so the resolver
// picks the same winner every time even on corrupt overlapping data.
func earlier(a, b *resModel.Reservation) bool {
	if a.CheckInDate.Equal(b.CheckInDate) {
		return a.ID < b.ID
	}

	return a.CheckInDate.Before(b.CheckInDate)
}
