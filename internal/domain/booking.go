package domain

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "BOOKED"
	BookingStatusPaid      BookingStatus = "PAID"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking references a room reservation held by the backend. The
// BookingReference is the opaque server-issued key correlating a
// reservation with its payment.
type Booking struct {
	ID               int64         `json:"id"`
	RoomID           string        `json:"roomId"`
	CheckInDate      string        `json:"checkInDate"`
	CheckOutDate     string        `json:"checkOutDate"`
	TotalPrice       float64       `json:"totalPrice"`
	BookingReference string        `json:"bookingReference"`
	Status           BookingStatus `json:"status"`
}

// BookingRequest is what the client submits; dates are formatted YYYY-MM-DD.
type BookingRequest struct {
	RoomID       string `json:"roomId"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
}
