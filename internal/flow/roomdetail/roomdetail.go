package roomdetail

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"hotelclient/internal/backend"
	"hotelclient/internal/domain"
	"hotelclient/internal/ui"
)

// State is the booking view's explicit progression. Transitions are guarded
// so an action fired in the wrong state is ignored instead of corrupting
// the view.
type State string

const (
	StateLoading    State = "LOADING"
	StateViewing    State = "VIEWING"
	StatePreviewing State = "PREVIEWING"
	StateSubmitted  State = "SUBMITTED"
)

const dateLayout = "2006-01-02"

type BookingAPI interface {
	RoomByID(ctx context.Context, roomID string) (*domain.Room, error)
	BookRoom(ctx context.Context, req domain.BookingRequest) (*backend.BookingResult, error)
}

// Flow drives the room detail and booking view.
type Flow struct {
	api    BookingAPI
	banner *ui.Banner
	nav    ui.Navigator

	state      State
	roomID     string
	room       *domain.Room
	checkIn    string
	checkOut   string
	totalPrice float64
	totalDays  int
	message    string
	processing bool
}

func New(api BookingAPI, banner *ui.Banner, nav ui.Navigator) *Flow {
	return &Flow{api: api, banner: banner, nav: nav, state: StateLoading}
}

// Load fetches the room and moves the view out of the loading state. On
// failure the view stays loading with a transient error.
func (f *Flow) Load(ctx context.Context, roomID string) {
	f.roomID = roomID
	room, err := f.api.RoomByID(ctx, roomID)
	if err != nil {
		f.banner.Show(backend.Message(err, "Unable to fetch room details"))
		return
	}
	f.room = room
	f.state = StateViewing
}

// SelectDates records the chosen stay; parsing is deferred to the price
// computation so the form can hold partial input.
func (f *Flow) SelectDates(checkIn, checkOut string) {
	if f.state != StateViewing && f.state != StatePreviewing {
		return
	}
	f.checkIn = checkIn
	f.checkOut = checkOut
}

// ComputePrice returns the preview total: the rounded absolute day count
// between the dates times the room's price per night. Unparseable dates
// yield zero with an error banner.
func (f *Flow) ComputePrice() float64 {
	if f.checkIn == "" || f.checkOut == "" {
		return 0
	}

	in, errIn := time.Parse(dateLayout, f.checkIn)
	out, errOut := time.Parse(dateLayout, f.checkOut)
	if errIn != nil || errOut != nil {
		f.banner.Show("Invalid date selected")
		return 0
	}

	days := int(math.Round(math.Abs(out.Sub(in).Hours() / 24)))
	f.totalDays = days
	if f.room == nil {
		return 0
	}
	return f.room.PricePerNight * float64(days)
}

// Confirm computes the preview price and flips the view into the
// confirmation-pending state. Both dates must be set.
func (f *Flow) Confirm() {
	if f.state != StateViewing && f.state != StatePreviewing {
		return
	}
	if f.checkIn == "" || f.checkOut == "" {
		f.banner.Show("Please select both check-in and check-out dates")
		return
	}

	f.totalPrice = f.ComputePrice()
	f.state = StatePreviewing
}

// Accept submits the booking. A well-formed success response (status 200
// with a booking carrying both a reference and a price) navigates to the
// payment view; anything else is an error and the preview stays up.
func (f *Flow) Accept(ctx context.Context) {
	if f.state != StatePreviewing {
		return
	}
	if f.room == nil || f.roomID == "" {
		f.banner.Show("Room details not available")
		return
	}

	req := domain.BookingRequest{
		RoomID:       f.roomID,
		CheckInDate:  formatDate(f.checkIn),
		CheckOutDate: formatDate(f.checkOut),
	}

	f.state = StateSubmitted
	f.processing = true
	result, err := f.api.BookRoom(ctx, req)
	f.processing = false
	if err != nil {
		f.banner.Show(backend.Message(err, "Unable to make a booking"))
		f.state = StatePreviewing
		return
	}

	if result.Status != 200 || result.Booking == nil {
		f.banner.Show("Invalid booking response")
		f.state = StatePreviewing
		return
	}
	if result.Booking.BookingReference == "" || result.Booking.TotalPrice == 0 {
		f.banner.Show("Booking response missing reference or price")
		f.state = StatePreviewing
		return
	}

	f.message = "Your booking is successful. An email with booking details and payment link has been sent."
	f.nav.NavigateTo(fmt.Sprintf("/payment/%s/%s",
		result.Booking.BookingReference,
		strconv.FormatFloat(result.Booking.TotalPrice, 'f', -1, 64)))
}

// Cancel discards the pending preview and returns to plain viewing.
func (f *Flow) Cancel() {
	if f.state != StatePreviewing {
		return
	}
	f.state = StateViewing
	f.totalPrice = 0
}

func (f *Flow) State() State        { return f.state }
func (f *Flow) Room() *domain.Room  { return f.room }
func (f *Flow) TotalPrice() float64 { return f.totalPrice }
func (f *Flow) TotalDays() int      { return f.totalDays }
func (f *Flow) Message() string     { return f.message }
func (f *Flow) Processing() bool    { return f.processing }

// formatDate normalizes user input to YYYY-MM-DD; input that already failed
// parsing never reaches here because Accept requires a confirmed preview.
func formatDate(value string) string {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return value
	}
	return parsed.Format(dateLayout)
}
