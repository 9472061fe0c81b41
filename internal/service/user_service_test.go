package service

import (
	"errors"
	"testing"

	"github.com/jgouvea7/streaming-social/internal/api/dto"
	"github.com/jgouvea7/streaming-social/internal/model"
	"github.com/jgouvea7/streaming-social/internal/repository"
	"github.com/jgouvea7/streaming-social/pkg/utils"

	"gorm.io/gorm"
)

func newTestUserService(db *gorm.DB) *UserService {
	return NewUserService(repository.NewUserRepository(db))
}

func TestUserUpdateGuard(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	bio := "intruder was here"
	if _, err := svc.Update(alice.ID, bob.ID, &dto.UserUpdateRequest{Bio: &bio}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden got %v", err)
	}

	info, err := svc.Update(alice.ID, alice.ID, &dto.UserUpdateRequest{Bio: &bio})
	if err != nil {
		t.Fatalf("self update: %v", err)
	}
	if info.Bio == nil || *info.Bio != bio {
		t.Fatalf("bio not updated: %+v", info)
	}
}

func TestUserUpdateUsernameConflict(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)

	alice := createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")

	taken := "bob"
	if _, err := svc.Update(alice.ID, alice.ID, &dto.UserUpdateRequest{Username: &taken}); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists got %v", err)
	}
}

func TestUserChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	if err := svc.ChangePassword(alice.ID, bob.ID, &dto.ChangePasswordRequest{Password: "newsecret"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden got %v", err)
	}

	if err := svc.ChangePassword(alice.ID, alice.ID, &dto.ChangePasswordRequest{Password: "newsecret"}); err != nil {
		t.Fatalf("change password: %v", err)
	}

	reloaded, err := repository.NewUserRepository(db).GetByID(alice.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if !utils.VerifyPassword("newsecret", reloaded.Password) {
		t.Fatalf("new password does not verify")
	}
}

func TestUserDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)
	likes := newTestLikeService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	video := createTestVideo(t, db, alice.ID, "mine")
	bobVideo := createTestVideo(t, db, bob.ID, "his")
	comment := createTestComment(t, db, alice.ID, bobVideo.ID, "nice")

	if err := likes.Toggle(alice.ID, model.TargetVideo, bobVideo.ID); err != nil {
		t.Fatalf("like video: %v", err)
	}
	if err := likes.Toggle(bob.ID, model.TargetComment, comment.ID); err != nil {
		t.Fatalf("like comment: %v", err)
	}

	if err := svc.Delete(alice.ID, alice.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	// alice 的视频、评论、点赞边全部移除
	if got := countRows(t, db, &model.Video{}, "owner_id = ?", alice.ID); got != 0 {
		t.Fatalf("videos not cascaded, %d left", got)
	}
	if got := countRows(t, db, &model.Comment{}, "owner_id = ?", alice.ID); got != 0 {
		t.Fatalf("comments not cascaded, %d left", got)
	}
	if got := countRows(t, db, &model.Like{}, "user_id = ?", alice.ID); got != 0 {
		t.Fatalf("likes not cascaded, %d left", got)
	}
	// alice 评论上 bob 的点赞边随评论删除
	if got := countRows(t, db, &model.Like{}, "comment_id = ?", comment.ID); got != 0 {
		t.Fatalf("likes on deleted comment left behind: %d", got)
	}
	// bob 和他的视频不受影响
	if _, err := repository.NewVideoRepository(db).GetByID(bobVideo.ID); err != nil {
		t.Fatalf("bob's video should survive: %v", err)
	}

	if got := countRows(t, db, &model.Video{}, "id = ?", video.ID); got != 0 {
		t.Fatalf("alice's video should be gone")
	}
}

func TestUserDeleteGuard(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	if err := svc.Delete(alice.ID, bob.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden got %v", err)
	}
}

func TestUserList(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)

	createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")
	createTestUser(t, db, "carol")

	data, err := svc.List(1, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if data.Total != 3 || len(data.Users) != 2 || data.TotalPages != 2 {
		t.Fatalf("pagination wrong: total=%d len=%d pages=%d", data.Total, len(data.Users), data.TotalPages)
	}
}
