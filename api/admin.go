package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelclient/internal/backend"
	"hotelclient/internal/domain"
)

// AdminBackend covers the privileged backend operations.
type AdminBackend interface {
	AddRoom(ctx context.Context, room domain.Room) error
	UpdateRoom(ctx context.Context, room domain.Room) error
	DeleteRoom(ctx context.Context, roomID string) error
	AllBookings(ctx context.Context) ([]domain.Booking, error)
	UpdateBooking(ctx context.Context, booking domain.Booking) error
	BookingByReference(ctx context.Context, reference string) (*domain.Booking, error)
}

type RoleChecker interface {
	HasRole(ctx context.Context, role domain.Role) bool
}

// AdminHandler exposes the room and booking management views; every route
// is gated on the stored administrative role tag.
type AdminHandler struct {
	api      AdminBackend
	sessions RoleChecker
}

func NewAdminHandler(api AdminBackend, sessions RoleChecker) *AdminHandler {
	return &AdminHandler{api: api, sessions: sessions}
}

func (h *AdminHandler) Register(router *gin.RouterGroup) {
	admin := router.Group("/admin", h.requireAdmin)
	admin.POST("/rooms", h.addRoom)
	admin.PUT("/rooms", h.updateRoom)
	admin.DELETE("/rooms/:id", h.deleteRoom)
	admin.GET("/bookings", h.allBookings)
	admin.PUT("/bookings", h.updateBooking)
	admin.GET("/bookings/:bookingReference", h.bookingByReference)
}

func (h *AdminHandler) requireAdmin(c *gin.Context) {
	if !h.sessions.HasRole(c.Request.Context(), domain.RoleAdmin) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}
	c.Next()
}

func (h *AdminHandler) addRoom(c *gin.Context) {
	var room domain.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.api.AddRoom(c.Request.Context(), room); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": backend.Message(err, "Unable to add room")})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "room added"})
}

func (h *AdminHandler) updateRoom(c *gin.Context) {
	var room domain.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.api.UpdateRoom(c.Request.Context(), room); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": backend.Message(err, "Unable to update room")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "room updated"})
}

func (h *AdminHandler) deleteRoom(c *gin.Context) {
	if err := h.api.DeleteRoom(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": backend.Message(err, "Unable to delete room")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "room deleted"})
}

func (h *AdminHandler) allBookings(c *gin.Context) {
	bookings, err := h.api.AllBookings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": backend.Message(err, "Unable to fetch bookings")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *AdminHandler) updateBooking(c *gin.Context) {
	var booking domain.Booking
	if err := c.ShouldBindJSON(&booking); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.api.UpdateBooking(c.Request.Context(), booking); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": backend.Message(err, "Unable to update booking")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking updated"})
}

func (h *AdminHandler) bookingByReference(c *gin.Context) {
	booking, err := h.api.BookingByReference(c.Request.Context(), c.Param("bookingReference"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": backend.Message(err, "Unable to fetch booking")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}
