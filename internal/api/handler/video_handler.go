package handler

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jgouvea7/streaming-social/internal/api/dto"
	"github.com/jgouvea7/streaming-social/internal/api/middleware"
	"github.com/jgouvea7/streaming-social/internal/api/response"
	"github.com/jgouvea7/streaming-social/internal/service"
	"github.com/jgouvea7/streaming-social/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type VideoHandler struct {
	videoService *service.VideoService
}

func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// Upload POST /api/v1/videos/upload（multipart，文件进对象存储）
func (h *VideoHandler) Upload(c *gin.Context) {
	var req dto.VideoUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	file, err := c.FormFile("video_file")
	if err != nil {
		response.BadRequest(c, "请上传视频文件")
		return
	}

	allowedFormats := map[string]bool{
		".mp4": true, ".avi": true, ".mov": true,
		".mkv": true, ".flv": true, ".webm": true,
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedFormats[ext] {
		response.BadRequest(c, "不支持的文件格式，支持: mp4, avi, mov, mkv, flv, webm")
		return
	}

	maxSize := int64(500 * 1024 * 1024) // 500MB
	if file.Size > maxSize || file.Size == 0 {
		response.BadRequest(c, "文件大小无效（不能为空，最大 500MB）")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	f, err := file.Open()
	if err != nil {
		response.InternalError(c, "打开上传文件失败")
		return
	}
	defer f.Close()

	info, err := h.videoService.Upload(currentUserID, &req, f, file.Size, strings.TrimPrefix(ext, "."))
	if err != nil {
		logger.Error("Upload video failed", zap.Error(err))
		response.InternalError(c, "上传视频失败: "+err.Error())
		return
	}

	response.Created(c, "视频上传成功", info)
}

// Create POST /api/v1/videos（JSON，播放地址已就绪）
func (h *VideoHandler) Create(c *gin.Context) {
	var req struct {
		dto.VideoUploadRequest
		PlayURL string `json:"play_url" binding:"required,max=500"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.videoService.Create(currentUserID, &req.VideoUploadRequest, req.PlayURL)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.Created(c, "创建视频成功", info)
}

// List GET /api/v1/videos（公开，可按 owner_id 过滤）
func (h *VideoHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	var ownerID *int64
	if v := c.Query("owner_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.BadRequest(c, "无效的用户ID")
			return
		}
		ownerID = &id
	}

	data, err := h.videoService.List(page, pageSize, ownerID)
	if err != nil {
		logger.Error("List videos failed", zap.Error(err))
		response.InternalError(c, "获取视频列表失败")
		return
	}

	response.OK(c, "获取视频列表成功", data)
}

// GetByID GET /api/v1/videos/:id
func (h *VideoHandler) GetByID(c *gin.Context) {
	videoID, ok := parseIDParam(c, "无效的视频ID")
	if !ok {
		return
	}

	info, err := h.videoService.GetByID(videoID)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "获取视频详情成功", info)
}

// Update PATCH /api/v1/videos/:id
func (h *VideoHandler) Update(c *gin.Context) {
	videoID, ok := parseIDParam(c, "无效的视频ID")
	if !ok {
		return
	}

	var req dto.VideoUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.videoService.Update(videoID, currentUserID, &req)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "更新视频成功", info)
}

// Delete DELETE /api/v1/videos/:id
func (h *VideoHandler) Delete(c *gin.Context) {
	videoID, ok := parseIDParam(c, "无效的视频ID")
	if !ok {
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.videoService.Delete(videoID, currentUserID); err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "删除视频成功", nil)
}

func handleVideoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, err.Error())
	default:
		logger.Error("Video operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}

func parseIDParam(c *gin.Context, msg string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.BadRequest(c, msg)
		return 0, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
