package service

import (
	"errors"
	"testing"

	"github.com/jgouvea7/streaming-social/internal/api/dto"
	"github.com/jgouvea7/streaming-social/internal/model"
	"github.com/jgouvea7/streaming-social/internal/repository"

	"gorm.io/gorm"
)

func newTestCommentService(db *gorm.DB) *CommentService {
	return NewCommentService(
		repository.NewCommentRepository(db),
		repository.NewVideoRepository(db),
		repository.NewUserRepository(db),
	)
}

func TestCommentCreate(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCommentService(db)

	owner := createTestUser(t, db, "owner")
	fan := createTestUser(t, db, "fan")
	video := createTestVideo(t, db, owner.ID, "clip")

	info, err := svc.Create(fan.ID, video.ID, &dto.CommentCreateRequest{Content: "great"})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if info.LikeCount != 0 || info.Edited {
		t.Fatalf("new comment should start unedited with zero likes, got %+v", info)
	}
	if info.VideoID != video.ID || info.OwnerID != fan.ID {
		t.Fatalf("comment links wrong: %+v", info)
	}
}

func TestCommentCreateVideoMissing(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCommentService(db)

	fan := createTestUser(t, db, "fan")

	_, err := svc.Create(fan.ID, 9999, &dto.CommentCreateRequest{Content: "into the void"})
	if !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound got %v", err)
	}
}

func TestCommentCreateOwnerMissing(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCommentService(db)

	owner := createTestUser(t, db, "owner")
	video := createTestVideo(t, db, owner.ID, "clip")

	_, err := svc.Create(9999, video.ID, &dto.CommentCreateRequest{Content: "ghost"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound got %v", err)
	}
}

func TestCommentUpdateGuardAndEdited(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCommentService(db)

	owner := createTestUser(t, db, "owner")
	intruder := createTestUser(t, db, "intruder")
	video := createTestVideo(t, db, owner.ID, "clip")
	comment := createTestComment(t, db, owner.ID, video.ID, "original")

	if _, err := svc.Update(comment.ID, intruder.ID, &dto.CommentUpdateRequest{Content: "defaced"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden got %v", err)
	}

	info, err := svc.Update(comment.ID, owner.ID, &dto.CommentUpdateRequest{Content: "revised"})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if info.Content != "revised" || !info.Edited {
		t.Fatalf("update result wrong: %+v", info)
	}
}

func TestCommentDeleteCascadesLikes(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCommentService(db)
	likes := newTestLikeService(db)

	owner := createTestUser(t, db, "owner")
	fan := createTestUser(t, db, "fan")
	video := createTestVideo(t, db, owner.ID, "clip")
	comment := createTestComment(t, db, fan.ID, video.ID, "doomed")

	if err := likes.Toggle(owner.ID, model.TargetComment, comment.ID); err != nil {
		t.Fatalf("like comment: %v", err)
	}

	if err := svc.Delete(comment.ID, fan.ID); err != nil {
		t.Fatalf("delete comment: %v", err)
	}

	if got := countRows(t, db, &model.Like{}, "comment_id = ?", comment.ID); got != 0 {
		t.Fatalf("likes not cascaded, %d left", got)
	}
	// 所属视频不受影响
	if _, err := repository.NewVideoRepository(db).GetByID(video.ID); err != nil {
		t.Fatalf("video should survive comment delete: %v", err)
	}
}

func TestCommentListByVideo(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCommentService(db)

	owner := createTestUser(t, db, "owner")
	video := createTestVideo(t, db, owner.ID, "clip")
	other := createTestVideo(t, db, owner.ID, "other")

	createTestComment(t, db, owner.ID, video.ID, "one")
	createTestComment(t, db, owner.ID, video.ID, "two")
	createTestComment(t, db, owner.ID, other.ID, "elsewhere")

	data, err := svc.ListByVideo(video.ID, 1, 20)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if data.Total != 2 || len(data.Comments) != 2 {
		t.Fatalf("total=%d len=%d, want 2/2", data.Total, len(data.Comments))
	}
	for _, c := range data.Comments {
		if c.Username == nil || *c.Username != "owner" {
			t.Fatalf("comment username not resolved: %+v", c)
		}
	}
}

func TestCommentListByVideoMissing(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCommentService(db)

	_, err := svc.ListByVideo(9999, 1, 20)
	if !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound got %v", err)
	}
}
