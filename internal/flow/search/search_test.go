package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hotelclient/internal/backend"
	"hotelclient/internal/domain"
	"hotelclient/internal/ui"
)

type MockRoomLister struct {
	mock.Mock
}

func (m *MockRoomLister) AvailableRooms(ctx context.Context, filter domain.RoomFilter) ([]domain.Room, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomLister) AllRooms(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomLister) RoomTypes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type recordingSink struct {
	rendered [][]domain.Room
}

func (s *recordingSink) RenderRooms(rooms []domain.Room) {
	s.rendered = append(s.rendered, rooms)
}

func TestFlow_NoFiltersFetchesFullList(t *testing.T) {
	lister := &MockRoomLister{}
	all := []domain.Room{{ID: "r1"}, {ID: "r2"}}
	lister.On("AllRooms", mock.Anything).Return(all, nil).Once()

	sink := &recordingSink{}
	flow := New(lister, ui.NewBanner(time.Minute), WithResultSink(sink))
	flow.Search(context.Background(), domain.RoomFilter{})

	assert.Equal(t, all, flow.Results())
	assert.Equal(t, [][]domain.Room{all}, sink.rendered)
	lister.AssertNotCalled(t, "AvailableRooms", mock.Anything, mock.Anything)
}

func TestFlow_FiltersForwardedUntouched(t *testing.T) {
	lister := &MockRoomLister{}
	filter := domain.RoomFilter{CheckInDate: "2025-01-01", CheckOutDate: "2025-01-04", RoomType: "Deluxe"}
	matching := []domain.Room{{ID: "r2", RoomType: "Deluxe"}}
	lister.On("AvailableRooms", mock.Anything, filter).Return(matching, nil).Once()

	flow := New(lister, ui.NewBanner(time.Minute))
	flow.Search(context.Background(), filter)

	assert.Equal(t, matching, flow.Results())
	lister.AssertExpectations(t)
}

func TestFlow_SearchFailureShowsBanner(t *testing.T) {
	lister := &MockRoomLister{}
	lister.On("AllRooms", mock.Anything).Return(nil, &backend.APIError{Status: 500, Message: "backend down"}).Once()

	banner := ui.NewBanner(time.Minute)
	sink := &recordingSink{}
	flow := New(lister, banner, WithResultSink(sink))
	flow.Search(context.Background(), domain.RoomFilter{})

	assert.Equal(t, "backend down", banner.Message())
	assert.Empty(t, flow.Results())
	assert.Empty(t, sink.rendered)
}

func TestFlow_RoomTypes(t *testing.T) {
	lister := &MockRoomLister{}
	lister.On("RoomTypes", mock.Anything).Return([]string{"Standard", "Deluxe"}, nil).Once()

	flow := New(lister, ui.NewBanner(time.Minute))
	types := flow.RoomTypes(context.Background())

	assert.Equal(t, []string{"Standard", "Deluxe"}, types)
}
