package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jgouvea7/streaming-social/internal/api/middleware"
	"github.com/jgouvea7/streaming-social/internal/model"
	"github.com/jgouvea7/streaming-social/internal/repository"
	"github.com/jgouvea7/streaming-social/internal/service"
	"github.com/jgouvea7/streaming-social/pkg/logger"
	"github.com/jgouvea7/streaming-social/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var handlerDBSeq int64

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := logger.Init("error", "console", "stdout", ""); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type likeFixture struct {
	router  *gin.Engine
	db      *gorm.DB
	tokens  *utils.TokenManager
	user    *model.User
	video   *model.Video
	comment *model.Comment
}

func newLikeFixture(t *testing.T) *likeFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:hdl%d?mode=memory&cache=shared&_foreign_keys=on", atomic.AddInt64(&handlerDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Video{}, &model.Comment{}, &model.Like{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	user := &model.User{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "irrelevant",
		FirstName: "Alice",
		LastName:  "Tester",
		Role:      "user",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	video := &model.Video{OwnerID: user.ID, Title: "clip", PlayURL: "http://cdn.local/clip.mp4"}
	if err := db.Create(video).Error; err != nil {
		t.Fatalf("create video: %v", err)
	}
	comment := &model.Comment{OwnerID: user.ID, VideoID: video.ID, Content: "hi"}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}

	likeService := service.NewLikeService(
		db,
		repository.NewUserRepository(db),
		repository.NewVideoRepository(db),
		repository.NewCommentRepository(db),
		repository.NewLikeRepository(db),
		nil,
	)
	h := NewLikeHandler(likeService)

	tokens := utils.NewTokenManager("test-secret", time.Hour, "test")
	auth := middleware.AuthRequired(tokens)

	r := gin.New()
	r.POST("/api/v1/videos/:id/like", auth, h.ToggleVideo)
	r.POST("/api/v1/comments/:id/like", auth, h.ToggleComment)
	r.GET("/api/v1/likes", auth, h.ListMine)

	return &likeFixture{router: r, db: db, tokens: tokens, user: user, video: video, comment: comment}
}

func (f *likeFixture) do(t *testing.T, method, path string, withToken bool) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if withToken {
		token, err := f.tokens.Generate(f.user.ID)
		if err != nil {
			t.Fatalf("generate token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *likeFixture) videoLikeCount(t *testing.T) int64 {
	t.Helper()

	var video model.Video
	if err := f.db.First(&video, f.video.ID).Error; err != nil {
		t.Fatalf("reload video: %v", err)
	}
	return video.LikeCount
}

func TestToggleVideoEndpoint(t *testing.T) {
	f := newLikeFixture(t)
	path := fmt.Sprintf("/api/v1/videos/%d/like", f.video.ID)

	w := f.do(t, http.MethodPost, path, true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var body struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success {
		t.Fatalf("success = false, body = %s", w.Body.String())
	}
	if got := f.videoLikeCount(t); got != 1 {
		t.Fatalf("like count = %d, want 1", got)
	}

	// 再次请求即撤销
	if w := f.do(t, http.MethodPost, path, true); w.Code != http.StatusOK {
		t.Fatalf("second toggle status = %d", w.Code)
	}
	if got := f.videoLikeCount(t); got != 0 {
		t.Fatalf("like count after untoggle = %d, want 0", got)
	}
}

func TestToggleCommentEndpoint(t *testing.T) {
	f := newLikeFixture(t)
	path := fmt.Sprintf("/api/v1/comments/%d/like", f.comment.ID)

	if w := f.do(t, http.MethodPost, path, true); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var comment model.Comment
	if err := f.db.First(&comment, f.comment.ID).Error; err != nil {
		t.Fatalf("reload comment: %v", err)
	}
	if comment.LikeCount != 1 {
		t.Fatalf("comment like count = %d, want 1", comment.LikeCount)
	}
}

func TestToggleRequiresAuth(t *testing.T) {
	f := newLikeFixture(t)
	path := fmt.Sprintf("/api/v1/videos/%d/like", f.video.ID)

	if w := f.do(t, http.MethodPost, path, false); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if got := f.videoLikeCount(t); got != 0 {
		t.Fatalf("unauthorized request changed like count")
	}
}

func TestToggleMissingTarget(t *testing.T) {
	f := newLikeFixture(t)

	if w := f.do(t, http.MethodPost, "/api/v1/videos/9999/like", true); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if w := f.do(t, http.MethodPost, "/api/v1/videos/abc/like", true); w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestListMineEndpoint(t *testing.T) {
	f := newLikeFixture(t)

	videoPath := fmt.Sprintf("/api/v1/videos/%d/like", f.video.ID)
	commentPath := fmt.Sprintf("/api/v1/comments/%d/like", f.comment.ID)
	f.do(t, http.MethodPost, videoPath, true)
	f.do(t, http.MethodPost, commentPath, true)

	w := f.do(t, http.MethodGet, "/api/v1/likes", true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body struct {
		Data struct {
			Total int64 `json:"total"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Data.Total != 2 {
		t.Fatalf("total = %d, want 2", body.Data.Total)
	}
}
