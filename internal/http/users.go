package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/onboard/internal/database/users"
	"github.com/mrlokans/onboard/internal/entities"
	"github.com/mrlokans/onboard/internal/passwords"
	"github.com/mrlokans/onboard/internal/registration"
	"github.com/mrlokans/onboard/internal/tasks"
)

// UserGetter provides read access to registered users.
type UserGetter interface {
	GetByID(id uint) (*entities.User, error)
}

// UsersController handles user registration and lookup.
type UsersController struct {
	service    *registration.Service
	store      UserGetter
	taskClient *tasks.Client
	bcryptCost int
}

// NewUsersController creates a new UsersController. The task client may
// be nil; notification delivery then waits for the next outbox sweep.
func NewUsersController(service *registration.Service, store UserGetter, taskClient *tasks.Client, bcryptCost int) *UsersController {
	return &UsersController{
		service:    service,
		store:      store,
		taskClient: taskClient,
		bcryptCost: bcryptCost,
	}
}

// RegisterRequest is the payload for POST /api/users.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse reports the created user and any best-effort step
// failures that occurred after the save committed.
type RegisterResponse struct {
	User     *entities.User `json:"user"`
	Warnings []string       `json:"warnings,omitempty"`
}

// Register handles POST /api/users.
func (uc *UsersController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	hash, err := passwords.HashPassword(req.Password, uc.bcryptCost)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	user := &entities.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Status:       entities.UserStatusActive,
	}

	result, err := uc.service.Register(user)
	if err != nil {
		switch {
		case errors.Is(err, registration.ErrValidationFailed):
			respondBadRequest(c, err.Error())
		case errors.Is(err, users.ErrUserExists):
			respondConflict(c, "username or email already taken")
		default:
			respondInternalError(c, err, "register user")
		}
		return
	}

	// Kick the outbox so the welcome notification goes out promptly
	if uc.taskClient != nil {
		_, _ = uc.taskClient.Add(tasks.DeliverPendingTask{}).Save()
	}

	warnings := make([]string, 0, len(result.Warnings))
	for _, warning := range result.Warnings {
		warnings = append(warnings, warning.Error())
	}

	c.JSON(http.StatusCreated, RegisterResponse{
		User:     result.User,
		Warnings: warnings,
	})
}

// GetUser handles GET /api/users/:id.
func (uc *UsersController) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid user id")
		return
	}

	user, err := uc.store.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "get user")
		return
	}

	c.JSON(http.StatusOK, user)
}
