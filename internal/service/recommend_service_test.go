package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jgouvea7/streaming-social/internal/model"
	"github.com/jgouvea7/streaming-social/internal/recommend"
	"github.com/jgouvea7/streaming-social/internal/repository"
)

// reverseRecommender 倒序返回输入，便于断言排序结果被使用
type reverseRecommender struct {
	lastInput []recommend.VideoDoc
	err       error
}

func (r *reverseRecommender) Recommend(_ context.Context, videos []recommend.VideoDoc) ([]recommend.VideoDoc, error) {
	r.lastInput = videos
	if r.err != nil {
		return nil, r.err
	}
	ranked := make([]recommend.VideoDoc, 0, len(videos))
	for i := len(videos) - 1; i >= 0; i-- {
		ranked = append(ranked, videos[i])
	}
	return ranked, nil
}

func TestGetFeedUsesRecommenderOrder(t *testing.T) {
	db := newTestDB(t)

	owner := createTestUser(t, db, "owner")
	v1 := createTestVideo(t, db, owner.ID, "first")
	v2 := createTestVideo(t, db, owner.ID, "second")
	createTestComment(t, db, owner.ID, v2.ID, "hello")

	rec := &reverseRecommender{}
	svc := NewRecommendService(repository.NewVideoRepository(db), rec, nil, 0)

	items, err := svc.GetFeed(context.Background())
	if err != nil {
		t.Fatalf("get feed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("feed len = %d, want 2", len(items))
	}
	if items[0].ID == v1.ID {
		t.Fatalf("feed not ordered by recommender output")
	}

	// 推荐进程拿到的是含评论计数的完整文档
	var v2doc *recommend.VideoDoc
	for i := range rec.lastInput {
		if rec.lastInput[i].ID == v2.ID {
			v2doc = &rec.lastInput[i]
		}
	}
	if v2doc == nil || v2doc.CommentCount != 1 {
		t.Fatalf("comment count not passed to recommender: %+v", v2doc)
	}
}

func TestGetFeedPropagatesProcessFailure(t *testing.T) {
	db := newTestDB(t)

	owner := createTestUser(t, db, "owner")
	createTestVideo(t, db, owner.ID, "only")

	rec := &reverseRecommender{err: recommend.ErrProcessFailed}
	svc := NewRecommendService(repository.NewVideoRepository(db), rec, nil, 0)

	if _, err := svc.GetFeed(context.Background()); !errors.Is(err, recommend.ErrProcessFailed) {
		t.Fatalf("expected ErrProcessFailed got %v", err)
	}

	// 失败后数据库状态不受影响
	if got := countRows(t, db, &model.Video{}, "1 = 1"); got != 1 {
		t.Fatalf("videos = %d, want 1", got)
	}
}

func TestGetFeedEmpty(t *testing.T) {
	db := newTestDB(t)

	rec := &reverseRecommender{}
	svc := NewRecommendService(repository.NewVideoRepository(db), rec, nil, 0)

	items, err := svc.GetFeed(context.Background())
	if err != nil {
		t.Fatalf("get feed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("feed len = %d, want 0", len(items))
	}
}
