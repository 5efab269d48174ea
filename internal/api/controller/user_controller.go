package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"weatherapp/server/internal/api/models"
	"weatherapp/server/internal/api/response"
	"weatherapp/server/internal/api/service"
	"weatherapp/server/internal/auth"
)

// UserController handles the signup, login and settings endpoints.
type UserController struct {
	userService service.UserService
}

// NewUserController creates a new UserController.
func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// Signup handles POST /signup.
func (uc *UserController) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	data, err := uc.userService.Signup(c.Request.Context(), &req)
	if err != nil {
		slog.Error("signup failed", "error", err)
		response.Error(c, err)
		return
	}

	response.OK(c, "user created successfully", data)
}

// Login handles POST /login.
func (uc *UserController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	data, err := uc.userService.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "login successful", data)
}

// UpdateSettings handles PATCH /settings. The body is an open field map; the
// service enforces the mutable-field allow-list.
func (uc *UserController) UpdateSettings(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		response.AbortUnauthorized(c, "no token provided")
		return
	}

	var update models.SettingsUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := uc.userService.UpdateSettings(c.Request.Context(), userID, update); err != nil {
		slog.Error("settings update failed", "error", err, "user_id", userID)
		response.Error(c, err)
		return
	}

	response.OKMessage(c, "settings updated successfully")
}

// GetSettings handles GET /settings.
func (uc *UserController) GetSettings(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		response.AbortUnauthorized(c, "no token provided")
		return
	}

	settings, err := uc.userService.GetSettings(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "settings retrieved successfully", settings)
}
