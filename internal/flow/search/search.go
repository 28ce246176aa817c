package search

import (
	"context"

	"hotelclient/internal/backend"
	"hotelclient/internal/domain"
	"hotelclient/internal/ui"
)

type RoomLister interface {
	AvailableRooms(ctx context.Context, filter domain.RoomFilter) ([]domain.Room, error)
	AllRooms(ctx context.Context) ([]domain.Room, error)
	RoomTypes(ctx context.Context) ([]string, error)
}

// ResultSink is the child view the result set is forwarded to for rendering.
type ResultSink interface {
	RenderRooms(rooms []domain.Room)
}

// Flow drives the room search/listing view: it forwards the filter to the
// backend untouched and publishes whatever comes back.
type Flow struct {
	rooms   RoomLister
	banner  *ui.Banner
	sink    ResultSink
	results []domain.Room
}

type FlowOption func(*Flow)

func WithResultSink(sink ResultSink) FlowOption {
	return func(f *Flow) {
		f.sink = sink
	}
}

func New(rooms RoomLister, banner *ui.Banner, opts ...FlowOption) *Flow {
	flow := &Flow{rooms: rooms, banner: banner}
	for _, opt := range opts {
		opt(flow)
	}
	return flow
}

// Search fetches rooms matching the filter, or the unfiltered full list when
// no filter is set. Failures surface as a transient banner; no retry.
func (f *Flow) Search(ctx context.Context, filter domain.RoomFilter) {
	var (
		rooms []domain.Room
		err   error
	)
	if filter.Empty() {
		rooms, err = f.rooms.AllRooms(ctx)
	} else {
		rooms, err = f.rooms.AvailableRooms(ctx, filter)
	}
	if err != nil {
		f.banner.Show(backend.Message(err, "Unable to fetch rooms"))
		return
	}

	f.results = rooms
	if f.sink != nil {
		f.sink.RenderRooms(rooms)
	}
}

// RoomTypes returns the selectable room types for the search form.
func (f *Flow) RoomTypes(ctx context.Context) []string {
	types, err := f.rooms.RoomTypes(ctx)
	if err != nil {
		f.banner.Show(backend.Message(err, "Unable to fetch room types"))
		return nil
	}
	return types
}

func (f *Flow) Results() []domain.Room {
	return f.results
}
