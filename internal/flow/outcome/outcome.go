package outcome

import "strconv"

// View is a terminal payment page: it renders the booking reference and
// amount carried in the navigation parameters and does nothing else.
type View struct {
	BookingReference string  `json:"bookingReference"`
	Amount           float64 `json:"amount"`
}

// FromParams builds the view from raw path segments; a missing or malformed
// amount renders as zero.
func FromParams(reference, amount string) View {
	parsed, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		parsed = 0
	}
	return View{BookingReference: reference, Amount: parsed}
}
