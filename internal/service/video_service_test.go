package service

import (
	"errors"
	"testing"

	"github.com/jgouvea7/streaming-social/internal/api/dto"
	"github.com/jgouvea7/streaming-social/internal/model"
	"github.com/jgouvea7/streaming-social/internal/repository"

	"gorm.io/gorm"
)

func newTestVideoService(db *gorm.DB) *VideoService {
	return NewVideoService(repository.NewVideoRepository(db), repository.NewUserRepository(db), nil, nil)
}

func TestVideoCreate(t *testing.T) {
	db := newTestDB(t)
	svc := newTestVideoService(db)

	owner := createTestUser(t, db, "creator")

	tags := "golf,outdoor"
	info, err := svc.Create(owner.ID, &dto.VideoUploadRequest{Title: "swing", Tags: &tags}, "http://cdn.local/swing.mp4")
	if err != nil {
		t.Fatalf("create video: %v", err)
	}
	if info.LikeCount != 0 || info.Edited {
		t.Fatalf("new video should start unedited with zero likes, got %+v", info)
	}
	if info.OwnerID != owner.ID {
		t.Fatalf("owner id = %d, want %d", info.OwnerID, owner.ID)
	}
}

func TestVideoCreateOwnerMissing(t *testing.T) {
	db := newTestDB(t)
	svc := newTestVideoService(db)

	_, err := svc.Create(9999, &dto.VideoUploadRequest{Title: "ghost"}, "http://cdn.local/x.mp4")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound got %v", err)
	}
}

func TestVideoUpdateOwnershipGuard(t *testing.T) {
	db := newTestDB(t)
	svc := newTestVideoService(db)

	owner := createTestUser(t, db, "owner")
	intruder := createTestUser(t, db, "intruder")
	video := createTestVideo(t, db, owner.ID, "mine")

	newTitle := "hacked"
	_, err := svc.Update(video.ID, intruder.ID, &dto.VideoUpdateRequest{Title: &newTitle})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden got %v", err)
	}

	// 拒绝后不留痕迹
	reloaded, err := repository.NewVideoRepository(db).GetByID(video.ID)
	if err != nil {
		t.Fatalf("reload video: %v", err)
	}
	if reloaded.Title != "mine" || reloaded.Edited {
		t.Fatalf("rejected update must not modify video, got %+v", reloaded)
	}
}

func TestVideoUpdateMarksEdited(t *testing.T) {
	db := newTestDB(t)
	svc := newTestVideoService(db)

	owner := createTestUser(t, db, "owner")
	video := createTestVideo(t, db, owner.ID, "before")

	newTitle := "after"
	info, err := svc.Update(video.ID, owner.ID, &dto.VideoUpdateRequest{Title: &newTitle})
	if err != nil {
		t.Fatalf("update video: %v", err)
	}
	if info.Title != "after" {
		t.Fatalf("title = %q, want %q", info.Title, "after")
	}
	if !info.Edited {
		t.Fatalf("update must mark video as edited")
	}
}

func TestVideoUpdateCannotTouchLikeCount(t *testing.T) {
	db := newTestDB(t)
	svc := newTestVideoService(db)
	likes := newTestLikeService(db)

	owner := createTestUser(t, db, "owner")
	fan := createTestUser(t, db, "fan")
	video := createTestVideo(t, db, owner.ID, "hit")

	if err := likes.Toggle(fan.ID, model.TargetVideo, video.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	newTitle := "still a hit"
	info, err := svc.Update(video.ID, owner.ID, &dto.VideoUpdateRequest{Title: &newTitle})
	if err != nil {
		t.Fatalf("update video: %v", err)
	}
	if info.LikeCount != 1 {
		t.Fatalf("metadata update changed like count: got %d, want 1", info.LikeCount)
	}
}

func TestVideoDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	svc := newTestVideoService(db)
	likes := newTestLikeService(db)

	owner := createTestUser(t, db, "owner")
	fan := createTestUser(t, db, "fan")
	video := createTestVideo(t, db, owner.ID, "doomed")
	comment := createTestComment(t, db, fan.ID, video.ID, "rip")

	if err := likes.Toggle(fan.ID, model.TargetVideo, video.ID); err != nil {
		t.Fatalf("like video: %v", err)
	}
	if err := likes.Toggle(owner.ID, model.TargetComment, comment.ID); err != nil {
		t.Fatalf("like comment: %v", err)
	}

	if err := svc.Delete(video.ID, owner.ID); err != nil {
		t.Fatalf("delete video: %v", err)
	}

	if got := countRows(t, db, &model.Comment{}, "video_id = ?", video.ID); got != 0 {
		t.Fatalf("comments not cascaded, %d left", got)
	}
	if got := countRows(t, db, &model.Like{}, "video_id = ? OR comment_id = ?", video.ID, comment.ID); got != 0 {
		t.Fatalf("likes not cascaded, %d left", got)
	}
	// 作者本身不受影响
	if _, err := repository.NewUserRepository(db).GetByID(owner.ID); err != nil {
		t.Fatalf("owner should survive video delete: %v", err)
	}
}

func TestVideoDeleteForbidden(t *testing.T) {
	db := newTestDB(t)
	svc := newTestVideoService(db)

	owner := createTestUser(t, db, "owner")
	intruder := createTestUser(t, db, "intruder")
	video := createTestVideo(t, db, owner.ID, "mine")

	if err := svc.Delete(video.ID, intruder.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden got %v", err)
	}
	if _, err := repository.NewVideoRepository(db).GetByID(video.ID); err != nil {
		t.Fatalf("video must survive rejected delete: %v", err)
	}
}

func TestVideoList(t *testing.T) {
	db := newTestDB(t)
	svc := newTestVideoService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	createTestVideo(t, db, alice.ID, "a1")
	createTestVideo(t, db, alice.ID, "a2")
	createTestVideo(t, db, bob.ID, "b1")

	all, err := svc.List(1, 20, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if all.Total != 3 {
		t.Fatalf("total = %d, want 3", all.Total)
	}

	mine, err := svc.List(1, 20, &alice.ID)
	if err != nil {
		t.Fatalf("list by owner: %v", err)
	}
	if mine.Total != 2 {
		t.Fatalf("owner total = %d, want 2", mine.Total)
	}
}
