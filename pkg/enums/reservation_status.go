package enums

import "fmt"

// ReservationStatus describes the lifecycle state of a reservation.
// Only confirmed reservations count against availability.
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

var validReservationStatuses = []ReservationStatus{
	ReservationStatusPending,
	ReservationStatusConfirmed,
	ReservationStatusCancelled,
}

// IsValid reports whether the value matches the canonical reservation status enum.
func (s ReservationStatus) IsValid() bool {
	for _, candidate := range validReservationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseReservationStatus converts the raw string to ReservationStatus.
func ParseReservationStatus(value string) (ReservationStatus, error) {
	for _, candidate := range validReservationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid reservation status %q", value)
}

// CanTransitionTo reports whether the status may move to the target state.
// Cancellation is permanent: nothing leaves cancelled.
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	switch s {
	case ReservationStatusPending:
		return target == ReservationStatusConfirmed || target == ReservationStatusCancelled
	case ReservationStatusConfirmed:
		return target == ReservationStatusCancelled
	default:
		return false
	}
}

func (s ReservationStatus) String() string {
	return string(s)
}
