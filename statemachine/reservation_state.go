package statemachine

import "burger-palace-api/models"

var reservationTransitions = map[models.ReservationStatus][]models.ReservationStatus{
	models.ReservationPending:   {models.ReservationConfirmed, models.ReservationCancelled},
	models.ReservationConfirmed: {models.ReservationCancelled, models.ReservationCompleted},
}

// CanTransitionReservation checks a reservation status change
func CanTransitionReservation(from, to models.ReservationStatus) error {
	for _, next := range reservationTransitions[from] {
		if next == to {
			return nil
		}
	}
	return models.NewValidationError("status",
		"invalid reservation transition: "+string(from)+" → "+string(to))
}
