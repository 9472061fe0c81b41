package handler

import (
	"errors"

	"github.com/jgouvea7/streaming-social/internal/api/dto"
	"github.com/jgouvea7/streaming-social/internal/api/middleware"
	"github.com/jgouvea7/streaming-social/internal/api/response"
	"github.com/jgouvea7/streaming-social/internal/model"
	"github.com/jgouvea7/streaming-social/internal/service"
	"github.com/jgouvea7/streaming-social/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// ToggleVideo POST /api/v1/videos/:id/like
// 幂等切换：已赞则取消，未赞则点赞
func (h *LikeHandler) ToggleVideo(c *gin.Context) {
	h.toggle(c, model.TargetVideo, "无效的视频ID")
}

// ToggleComment POST /api/v1/comments/:id/like
func (h *LikeHandler) ToggleComment(c *gin.Context) {
	h.toggle(c, model.TargetComment, "无效的评论ID")
}

func (h *LikeHandler) toggle(c *gin.Context, kind model.TargetKind, badIDMsg string) {
	targetID, ok := parseIDParam(c, badIDMsg)
	if !ok {
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.likeService.Toggle(currentUserID, kind, targetID); err != nil {
		handleLikeError(c, err)
		return
	}

	response.OK(c, "切换点赞成功", nil)
}

// ListMine GET /api/v1/likes
func (h *LikeHandler) ListMine(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)
	page, pageSize := parsePagination(c)

	likes, total, err := h.likeService.ListByUser(currentUserID, page, pageSize)
	if err != nil {
		logger.Error("List likes failed", zap.Error(err))
		response.InternalError(c, "获取点赞列表失败")
		return
	}

	items := make([]dto.LikeInfo, 0, len(likes))
	for i := range likes {
		items = append(items, dto.LikeInfo{
			ID:         likes[i].ID,
			UserID:     likes[i].UserID,
			TargetKind: string(likes[i].Kind()),
			VideoID:    likes[i].VideoID,
			CommentID:  likes[i].CommentID,
			CreatedAt:  likes[i].CreatedAt,
		})
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	response.OK(c, "获取点赞列表成功", dto.LikeListData{
		Likes:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

func handleLikeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrCommentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidTarget):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Toggle like failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
