package handler

import (
	"errors"

	"github.com/jgouvea7/streaming-social/internal/api/dto"
	"github.com/jgouvea7/streaming-social/internal/api/response"
	"github.com/jgouvea7/streaming-social/internal/recommend"
	"github.com/jgouvea7/streaming-social/internal/service"
	"github.com/jgouvea7/streaming-social/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SearchHandler struct {
	searchService    *service.SearchService
	recommendService *service.RecommendService
}

func NewSearchHandler(searchService *service.SearchService, recommendService *service.RecommendService) *SearchHandler {
	return &SearchHandler{
		searchService:    searchService,
		recommendService: recommendService,
	}
}

// SearchVideos GET /api/v1/search/videos?q=...（公开）
func (h *SearchHandler) SearchVideos(c *gin.Context) {
	var req dto.SearchVideoRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	data, err := h.searchService.SearchVideos(&req)
	if err != nil {
		logger.Error("Search videos failed", zap.Error(err))
		response.InternalError(c, "搜索失败，请稍后重试")
		return
	}

	response.OK(c, "搜索成功", data)
}

// GetFeed GET /api/v1/feed（公开，外部推荐进程排序）
func (h *SearchHandler) GetFeed(c *gin.Context) {
	items, err := h.recommendService.GetFeed(c.Request.Context())
	if err != nil {
		if errors.Is(err, recommend.ErrProcessFailed) {
			logger.Error("Recommend process failed", zap.Error(err))
			response.BadGateway(c, "推荐服务暂不可用")
			return
		}
		logger.Error("Get feed failed", zap.Error(err))
		response.InternalError(c, "获取推荐流失败")
		return
	}

	response.OK(c, "获取推荐流成功", gin.H{"videos": items})
}
