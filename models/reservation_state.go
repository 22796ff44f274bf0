package models

import "fmt"

// ReservationState is the behaviour of a reservation in one lifecycle status.
type ReservationState interface {
	Confirm(reservation *Reservation) error
	Cancel(reservation *Reservation) error
	Complete(reservation *Reservation) error
	Expire(reservation *Reservation) error
}

// PendingState waits for the owner to confirm.
type PendingState struct{}

func (s *PendingState) Confirm(reservation *Reservation) error {
	reservation.Status = StatusConfirmed
	return nil
}

func (s *PendingState) Cancel(reservation *Reservation) error {
	reservation.Status = StatusCancelled
	return nil
}

func (s *PendingState) Complete(reservation *Reservation) error {
	return fmt.Errorf("cannot complete pending reservation")
}

func (s *PendingState) Expire(reservation *Reservation) error {
	reservation.Status = StatusExpired
	return nil
}

// ConfirmedState holds the cottage until the stay ends.
type ConfirmedState struct{}

func (s *ConfirmedState) Confirm(reservation *Reservation) error {
	return fmt.Errorf("reservation already confirmed")
}

func (s *ConfirmedState) Cancel(reservation *Reservation) error {
	reservation.Status = StatusCancelled
	return nil
}

func (s *ConfirmedState) Complete(reservation *Reservation) error {
	reservation.Status = StatusCompleted
	return nil
}

func (s *ConfirmedState) Expire(reservation *Reservation) error {
	return fmt.Errorf("cannot expire confirmed reservation")
}

// TerminalState covers cancelled, completed and expired reservations.
type TerminalState struct {
	Status ReservationStatus
}

func (s *TerminalState) Confirm(reservation *Reservation) error {
	return fmt.Errorf("cannot confirm %s reservation", s.Status)
}

func (s *TerminalState) Cancel(reservation *Reservation) error {
	return fmt.Errorf("cannot cancel %s reservation", s.Status)
}

func (s *TerminalState) Complete(reservation *Reservation) error {
	return fmt.Errorf("cannot complete %s reservation", s.Status)
}

func (s *TerminalState) Expire(reservation *Reservation) error {
	return fmt.Errorf("cannot expire %s reservation", s.Status)
}

// GetReservationState returns the state for a status. Unknown values are treated as terminal.
func GetReservationState(status ReservationStatus) ReservationState {
	switch status {
	case StatusPending:
		return &PendingState{}
	case StatusConfirmed:
		return &ConfirmedState{}
	default:
		return &TerminalState{Status: status}
	}
}

// ApplyTransition moves the reservation to target through its current state.
// Moving to pending is never a legal transition.
func ApplyTransition(reservation *Reservation, target ReservationStatus) error {
	state := GetReservationState(reservation.Status)
	switch target {
	case StatusConfirmed:
		return state.Confirm(reservation)
	case StatusCancelled:
		return state.Cancel(reservation)
	case StatusCompleted:
		return state.Complete(reservation)
	case StatusExpired:
		return state.Expire(reservation)
	default:
		return fmt.Errorf("cannot move %s reservation to %s", reservation.Status, target)
	}
}

// SourcesFor lists the statuses from which target is reachable in the lifecycle.
func SourcesFor(target ReservationStatus) []ReservationStatus {
	var sources []ReservationStatus
	for _, status := range AllStatuses {
		probe := &Reservation{Status: status}
		if ApplyTransition(probe, target) == nil {
			sources = append(sources, status)
		}
	}
	return sources
}
