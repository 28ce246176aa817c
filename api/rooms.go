package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"hotelclient/internal/domain"
	"hotelclient/internal/flow/roomdetail"
	"hotelclient/internal/flow/search"
	"hotelclient/internal/ui"
)

// RoomAPI is the slice of the backend client the room views need.
type RoomAPI interface {
	search.RoomLister
	roomdetail.BookingAPI
}

type SessionChecker interface {
	IsAuthenticated(ctx context.Context) bool
}

type RoomHandler struct {
	api      RoomAPI
	sessions SessionChecker
	dismiss  time.Duration
}

type roomListResponse struct {
	Rooms []domain.Room `json:"rooms"`
	Error string        `json:"error,omitempty"`
}

type roomDetailResponse struct {
	Room  *domain.Room `json:"room,omitempty"`
	State string       `json:"state"`
	Error string       `json:"error,omitempty"`
}

type bookingPreviewRequest struct {
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
}

type bookingPreviewResponse struct {
	TotalPrice float64 `json:"totalPrice"`
	TotalDays  int     `json:"totalDays"`
	State      string  `json:"state"`
	Error      string  `json:"error,omitempty"`
}

type bookingSubmitResponse struct {
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
	Error    string `json:"error,omitempty"`
}

func NewRoomHandler(api RoomAPI, sessions SessionChecker, dismiss time.Duration) *RoomHandler {
	return &RoomHandler{api: api, sessions: sessions, dismiss: dismiss}
}

func (h *RoomHandler) Register(router *gin.RouterGroup) {
	router.GET("/home/rooms", h.search)
	router.GET("/home/room-types", h.roomTypes)
	router.GET("/rooms/:id", h.detail)
	router.POST("/rooms/:id/preview", h.preview)
	router.POST("/rooms/:id/book", h.book)
}

// search runs the home view's room search. The filter is forwarded to the
// backend untouched; the result set is published to the child result view.
func (h *RoomHandler) search(c *gin.Context) {
	filter := domain.RoomFilter{
		CheckInDate:  c.Query("checkInDate"),
		CheckOutDate: c.Query("checkOutDate"),
		RoomType:     c.Query("roomType"),
	}

	banner := ui.NewBanner(h.dismiss)
	var rendered resultCollector
	flow := search.New(h.api, banner, search.WithResultSink(&rendered))
	flow.Search(c.Request.Context(), filter)

	c.JSON(http.StatusOK, roomListResponse{Rooms: rendered.rooms, Error: banner.Message()})
}

func (h *RoomHandler) roomTypes(c *gin.Context) {
	banner := ui.NewBanner(h.dismiss)
	flow := search.New(h.api, banner)
	types := flow.RoomTypes(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"roomTypes": types, "error": banner.Message()})
}

func (h *RoomHandler) detail(c *gin.Context) {
	flow, banner, _ := h.newBookingFlow(c)
	c.JSON(http.StatusOK, roomDetailResponse{
		Room:  flow.Room(),
		State: string(flow.State()),
		Error: banner.Message(),
	})
}

func (h *RoomHandler) preview(c *gin.Context) {
	var req bookingPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flow, banner, _ := h.newBookingFlow(c)
	flow.SelectDates(req.CheckInDate, req.CheckOutDate)
	flow.Confirm()

	c.JSON(http.StatusOK, bookingPreviewResponse{
		TotalPrice: flow.TotalPrice(),
		TotalDays:  flow.TotalDays(),
		State:      string(flow.State()),
		Error:      banner.Message(),
	})
}

func (h *RoomHandler) book(c *gin.Context) {
	var req bookingPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	flow, banner, nav := h.newBookingFlow(c)
	flow.SelectDates(req.CheckInDate, req.CheckOutDate)
	flow.Confirm()
	flow.Accept(ctx)

	resp := bookingSubmitResponse{
		Message:  flow.Message(),
		Redirect: nav.Path(),
		Error:    banner.Message(),
	}
	// The client clears the session itself when a booking 401 exposes a dead
	// token; the view only has to follow it to the login page.
	if resp.Error != "" && !h.sessions.IsAuthenticated(ctx) {
		resp.Redirect = "/login"
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RoomHandler) newBookingFlow(c *gin.Context) (*roomdetail.Flow, *ui.Banner, *navRecorder) {
	banner := ui.NewBanner(h.dismiss)
	nav := &navRecorder{}
	flow := roomdetail.New(h.api, banner, nav)
	flow.Load(c.Request.Context(), c.Param("id"))
	return flow, banner, nav
}

// resultCollector is the child result view: it just receives the forwarded
// result set for rendering.
type resultCollector struct {
	rooms []domain.Room
}

func (r *resultCollector) RenderRooms(rooms []domain.Room) { r.rooms = rooms }

// navRecorder captures flow navigation so the handler can answer with a
// redirect target.
type navRecorder struct {
	mu   sync.Mutex
	path string
}

func (n *navRecorder) NavigateTo(path string) {
	n.mu.Lock()
	n.path = path
	n.mu.Unlock()
}

func (n *navRecorder) Path() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.path
}
