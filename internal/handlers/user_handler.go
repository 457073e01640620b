package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "plantonize/internal/errors"
	"plantonize/internal/models"
	"plantonize/internal/services"
)

// UserHandler serves the user directory.
type UserHandler struct {
	userService services.UserServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"tipo_usuario"`
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Role: u.Role}
}

// UpdateRoleRequest represents the role change payload.
type UpdateRoleRequest struct {
	Role models.Role `json:"tipo_usuario" binding:"required,user_role"`
}

// ListUsers returns every user
// @Summary     List users
// @Description List all users ordered by username. Without page/page_size the response is a bare array.
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Items per page (max 100)"
// @Success     200 {array}  UserResponse "Users"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /usuarios [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	if _, err := getRequester(c); err != nil {
		respondWithError(c, err)
		return
	}

	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.userService.ListUsers(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondList(c, page, result, func(u models.User) UserResponse { return newUserResponse(&u) })
}

// GetCurrentUser returns the authenticated user
// @Summary     Current user
// @Description Return the authenticated user's id, username and role.
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} UserResponse "Current user"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /usuario [get]
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	requester, err := getRequester(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(requester.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// UpdateRole changes a user's role
// @Summary     Change a user's role
// @Description Administrators only. The new role applies to tokens issued afterwards.
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "User ID"
// @Param       request body UpdateRoleRequest true "New role"
// @Success     200 {object} UserResponse "Updated user"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /usuarios/{id} [patch]
func (h *UserHandler) UpdateRole(c *gin.Context) {
	requester, err := getRequester(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	userID, err := parsePathID(c, "id", apperrors.ErrUserNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	user, err := h.userService.UpdateUserRole(requester, userID, req.Role)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}
