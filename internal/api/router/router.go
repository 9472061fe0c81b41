package router

import (
	"github.com/jgouvea7/streaming-social/internal/api/handler"
	"github.com/jgouvea7/streaming-social/internal/api/middleware"
	"github.com/jgouvea7/streaming-social/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	tokens *utils.TokenManager,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	videoHandler *handler.VideoHandler,
	commentHandler *handler.CommentHandler,
	likeHandler *handler.LikeHandler,
	searchHandler *handler.SearchHandler,
) {
	authRequired := middleware.AuthRequired(tokens)

	v1 := r.Group("/api/v1")

	// --- 认证模块 ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", authRequired, authHandler.Me)
	}

	// --- 用户模块 ---
	users := v1.Group("/users")
	{
		users.GET("", userHandler.List)
		users.GET("/:id", userHandler.GetByID)

		usersAuth := users.Group("", authRequired)
		{
			usersAuth.PATCH("/:id", userHandler.Update)
			usersAuth.PATCH("/:id/password", userHandler.ChangePassword)
			usersAuth.DELETE("/:id", userHandler.Delete)
		}
	}

	// --- 视频模块 ---
	videos := v1.Group("/videos")
	{
		// 公开接口（不需要登录）
		videos.GET("", videoHandler.List)
		videos.GET("/:id", videoHandler.GetByID)
		videos.GET("/:id/comments", commentHandler.ListByVideo)

		videosAuth := videos.Group("", authRequired)
		{
			videosAuth.POST("", videoHandler.Create)
			videosAuth.POST("/upload", videoHandler.Upload)
			videosAuth.PATCH("/:id", videoHandler.Update)
			videosAuth.DELETE("/:id", videoHandler.Delete)
			videosAuth.POST("/:id/comments", commentHandler.Create)
			videosAuth.POST("/:id/like", likeHandler.ToggleVideo)
		}
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments")
	{
		comments.GET("/:id", commentHandler.GetByID)

		commentsAuth := comments.Group("", authRequired)
		{
			commentsAuth.PATCH("/:id", commentHandler.Update)
			commentsAuth.DELETE("/:id", commentHandler.Delete)
			commentsAuth.POST("/:id/like", likeHandler.ToggleComment)
		}
	}

	// --- 点赞模块 ---
	likes := v1.Group("/likes", authRequired)
	{
		likes.GET("", likeHandler.ListMine)
	}

	// --- 搜索与推荐流 ---
	v1.GET("/search/videos", searchHandler.SearchVideos)
	v1.GET("/feed", searchHandler.GetFeed)
}
