package model

// Booking is one of the current user's bookings. Event is nil when the
// booked event has since been deleted server-side; such orphaned bookings
// can only be deleted.
type Booking struct {
	ID    string `json:"_id"`
	Event *Event `json:"event"`
	User  string `json:"user"`
}

// BookingRequest is the payload for creating a booking.
type BookingRequest struct {
	EventID string `json:"eventId"`
}
