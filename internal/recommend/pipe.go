package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ErrProcessFailed 推荐进程退出码非零或输出无法解析
// 调用方原样上抛，绝不因此中断请求处理或污染已持久化状态
var ErrProcessFailed = errors.New("推荐进程调用失败")

// VideoDoc 与推荐进程交换的视频文档
type VideoDoc struct {
	ID           int64     `json:"id"`
	OwnerID      int64     `json:"owner_id"`
	Title        string    `json:"title"`
	PlayURL      string    `json:"play_url"`
	Tags         *string   `json:"tags,omitempty"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Recommender 推荐排序的窄接口：传输方式（管道/HTTP/进程内）可替换
type Recommender interface {
	Recommend(ctx context.Context, videos []VideoDoc) ([]VideoDoc, error)
}

// PipeRecommender 通过子进程标准输入/输出交换 JSON 的推荐实现
//
// 视频全量列表写入子进程 stdin，排序后的 JSON 数组从 stdout 读回。
type PipeRecommender struct {
	command string
	args    []string
	timeout time.Duration
}

func NewPipeRecommender(command string, args []string, timeout time.Duration) *PipeRecommender {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &PipeRecommender{command: command, args: args, timeout: timeout}
}

// Recommend 调用外部进程对视频列表排序
func (p *PipeRecommender) Recommend(ctx context.Context, videos []VideoDoc) ([]VideoDoc, error) {
	payload, err := json.Marshal(videos)
	if err != nil {
		return nil, fmt.Errorf("marshal videos: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.command, p.args...)
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %v: %s", ErrProcessFailed, err, stderr.String())
	}

	var ranked []VideoDoc
	if err := json.Unmarshal(stdout.Bytes(), &ranked); err != nil {
		return nil, fmt.Errorf("%w: 输出不是合法的 JSON 数组: %v", ErrProcessFailed, err)
	}

	return ranked, nil
}
