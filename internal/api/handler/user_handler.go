package handler

import (
	"errors"

	"github.com/jgouvea7/streaming-social/internal/api/dto"
	"github.com/jgouvea7/streaming-social/internal/api/middleware"
	"github.com/jgouvea7/streaming-social/internal/api/response"
	"github.com/jgouvea7/streaming-social/internal/service"
	"github.com/jgouvea7/streaming-social/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	data, err := h.userService.List(page, pageSize)
	if err != nil {
		logger.Error("List users failed", zap.Error(err))
		response.InternalError(c, "获取用户列表失败")
		return
	}

	response.OK(c, "获取用户列表成功", data)
}

// GetByID GET /api/v1/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	userID, ok := parseIDParam(c, "无效的用户ID")
	if !ok {
		return
	}

	info, err := h.userService.GetByID(userID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "获取用户信息成功", info)
}

// Update PATCH /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := parseIDParam(c, "无效的用户ID")
	if !ok {
		return
	}

	var req dto.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.userService.Update(userID, currentUserID, &req)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "更新用户信息成功", info)
}

// ChangePassword PATCH /api/v1/users/:id/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := parseIDParam(c, "无效的用户ID")
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.userService.ChangePassword(userID, currentUserID, &req); err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "修改密码成功", nil)
}

// Delete DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := parseIDParam(c, "无效的用户ID")
	if !ok {
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.userService.Delete(userID, currentUserID); err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "删除用户成功", nil)
}

func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrUsernameExists):
		response.Conflict(c, err.Error())
	default:
		logger.Error("User operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
