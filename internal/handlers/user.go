package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/store"
	"github.com/taskhub-dev/taskhub/internal/types"
	"github.com/taskhub-dev/taskhub/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type UserHandler struct {
	store store.UserStore
}

func NewUserHandler(st store.UserStore) *UserHandler {
	return &UserHandler{store: st}
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Role     string `json:"role"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *UserHandler) ListUsers(ctx *gin.Context) {
	users, err := h.store.ListUsers()

	if err != nil {
		log.Printf("Failed to list users: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]types.UserResponse, 0, len(users))

	for _, user := range users {
		response = append(response, types.NewUserResponse(user))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *UserHandler) CreateUser(ctx *gin.Context) {
	if !requireAdmin(ctx, "Only admins can create users") {
		return
	}

	var req CreateUserRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	user, err := h.store.InsertUser(models.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		PasswordHash: string(passwordHash),
	})

	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
			return
		}
		log.Printf("Failed to create user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponse(user))
}

func (h *UserHandler) UpdateUser(ctx *gin.Context) {
	if !requireAdmin(ctx, "Only admins can update users") {
		return
	}

	id, err := parseID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req UpdateUserRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.store.UpdateUser(id, store.UserUpdate{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})

	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, store.ErrDuplicateEmail):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
		default:
			log.Printf("Failed to update user: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, types.NewUserResponse(user))
}

func (h *UserHandler) DeleteUser(ctx *gin.Context) {
	if !requireAdmin(ctx, "Only admins can delete users") {
		return
	}

	id, err := parseID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := h.store.DeleteUser(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("Failed to delete user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// requireAdmin enforces the role gate on user mutations. The token was
// already verified by the middleware, so an insufficient role is 403.
func requireAdmin(ctx *gin.Context, message string) bool {
	claims, err := utils.GetCurrentClaims(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return false
	}

	if claims.Role != types.RoleAdmin {
		ctx.JSON(http.StatusForbidden, gin.H{"error": message})
		return false
	}

	return true
}

func parseID(ctx *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)

	if err != nil {
		return 0, err
	}

	return uint(id), nil
}
