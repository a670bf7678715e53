package api

import (
	"net/http"

	"github.com/galaxium/travels-booking/internal/service/users"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service users.UserUseCase
}

type registerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

type userResponse struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

func NewUserHandler(service users.UserUseCase) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(router gin.IRouter) {
	router.POST("/register", h.register)
	router.GET("/user_id", h.lookup)
	router.DELETE("/reset_users", h.reset)
}

func (h *UserHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userResponse{UserID: user.UserID, Name: user.Name, Email: user.Email})
}

// lookup resolves a user_id from name and email, both exact matches.
func (h *UserHandler) lookup(c *gin.Context) {
	name := c.Query("name")
	email := c.Query("email")
	if name == "" || email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and email are required"})
		return
	}

	user, err := h.service.FindByNameAndEmail(c.Request.Context(), name, email)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse{UserID: user.UserID, Name: user.Name, Email: user.Email})
}

func (h *UserHandler) reset(c *gin.Context) {
	result, err := h.service.ResetUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users_deleted":    result.UsersDeleted,
		"bookings_deleted": result.BookingsDeleted,
	})
}
