package service

import (
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jgouvea7/streaming-social/internal/model"
	"github.com/jgouvea7/streaming-social/internal/repository"
	"github.com/jgouvea7/streaming-social/pkg/logger"
	"github.com/jgouvea7/streaming-social/pkg/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

func TestMain(m *testing.M) {
	if err := logger.Init("error", "console", "stdout", ""); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// newTestDB 打开独立的内存 SQLite 并迁移全部表结构。
// 外键约束打开，级联删除和点赞唯一索引与生产行为一致。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared&_foreign_keys=on", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Video{}, &model.Comment{}, &model.Like{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func newTestTokenManager() *utils.TokenManager {
	return utils.NewTokenManager("test-secret", time.Hour, "streaming-social-test")
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()

	hashed, err := utils.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := &model.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  hashed,
		FirstName: "Test",
		LastName:  "User",
		Role:      "user",
	}
	if err := repository.NewUserRepository(db).Create(user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createTestVideo(t *testing.T, db *gorm.DB, ownerID int64, title string) *model.Video {
	t.Helper()

	video := &model.Video{
		OwnerID: ownerID,
		Title:   title,
		PlayURL: "http://cdn.local/" + title + ".mp4",
	}
	if err := repository.NewVideoRepository(db).Create(video); err != nil {
		t.Fatalf("create video %s: %v", title, err)
	}
	return video
}

func createTestComment(t *testing.T, db *gorm.DB, ownerID, videoID int64, content string) *model.Comment {
	t.Helper()

	comment := &model.Comment{
		OwnerID: ownerID,
		VideoID: videoID,
		Content: content,
	}
	if err := repository.NewCommentRepository(db).Create(comment); err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return comment
}

func newTestLikeService(db *gorm.DB) *LikeService {
	return NewLikeService(
		db,
		repository.NewUserRepository(db),
		repository.NewVideoRepository(db),
		repository.NewCommentRepository(db),
		repository.NewLikeRepository(db),
		nil,
	)
}

func videoLikeCount(t *testing.T, db *gorm.DB, videoID int64) int64 {
	t.Helper()

	video, err := repository.NewVideoRepository(db).GetByID(videoID)
	if err != nil {
		t.Fatalf("reload video %d: %v", videoID, err)
	}
	return video.LikeCount
}

func commentLikeCount(t *testing.T, db *gorm.DB, commentID int64) int64 {
	t.Helper()

	comment, err := repository.NewCommentRepository(db).GetByID(commentID)
	if err != nil {
		t.Fatalf("reload comment %d: %v", commentID, err)
	}
	return comment.LikeCount
}

func countRows(t *testing.T, db *gorm.DB, m interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var n int64
	if err := db.Model(m).Where(query, args...).Count(&n).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}
