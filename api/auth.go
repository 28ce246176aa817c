package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelclient/internal/backend"
	"hotelclient/internal/domain"
)

// AuthBackend is the slice of the backend client the account views need.
type AuthBackend interface {
	Register(ctx context.Context, reg domain.Registration) error
	Login(ctx context.Context, creds domain.Credentials) (*backend.LoginResult, error)
	MyProfile(ctx context.Context) (*domain.User, error)
	MyBookings(ctx context.Context) ([]domain.Booking, error)
	DeleteAccount(ctx context.Context) error
}

// SessionWriter is the session store surface the auth views need.
type SessionWriter interface {
	SaveSession(ctx context.Context, token string, role domain.Role) error
	ClearSession(ctx context.Context) error
}

type AuthHandler struct {
	api      AuthBackend
	sessions SessionWriter
}

type loginResponse struct {
	Role  domain.Role `json:"role"`
	Error string      `json:"error,omitempty"`
}

func NewAuthHandler(api AuthBackend, sessions SessionWriter) *AuthHandler {
	return &AuthHandler{api: api, sessions: sessions}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.POST("/logout", h.logout)
	router.GET("/account", h.account)
	router.GET("/account/bookings", h.bookings)
	router.DELETE("/account", h.deleteAccount)
}

func (h *AuthHandler) register(c *gin.Context) {
	var reg domain.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.api.Register(c.Request.Context(), reg); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": backend.Message(err, "Registration failed")})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "registered"})
}

// login exchanges credentials for a token and persists the encrypted
// session entries.
func (h *AuthHandler) login(c *gin.Context) {
	var creds domain.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	result, err := h.api.Login(ctx, creds)
	if err != nil {
		c.JSON(http.StatusUnauthorized, loginResponse{Error: backend.Message(err, "Login failed")})
		return
	}
	if err := h.sessions.SaveSession(ctx, result.Token, result.Role); err != nil {
		c.JSON(http.StatusInternalServerError, loginResponse{Error: "Unable to persist session"})
		return
	}
	c.JSON(http.StatusOK, loginResponse{Role: result.Role})
}

func (h *AuthHandler) logout(c *gin.Context) {
	if err := h.sessions.ClearSession(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to clear session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) account(c *gin.Context) {
	user, err := h.api.MyProfile(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": backend.Message(err, "Unable to fetch profile")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) bookings(c *gin.Context) {
	bookings, err := h.api.MyBookings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": backend.Message(err, "Unable to fetch bookings")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *AuthHandler) deleteAccount(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.api.DeleteAccount(ctx); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": backend.Message(err, "Unable to delete account")})
		return
	}
	if err := h.sessions.ClearSession(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to clear session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}
