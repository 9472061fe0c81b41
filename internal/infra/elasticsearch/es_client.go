package elasticsearch

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jgouvea7/streaming-social/internal/config"
	"github.com/jgouvea7/streaming-social/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

// Client Elasticsearch 客户端包装
type Client struct {
	es *elasticsearch.Client
}

// New 创建 Elasticsearch 客户端并探活
func New(cfg *config.ElasticsearchConfig) (*Client, error) {
	hosts := make([]string, 0, len(cfg.Hosts))
	for _, h := range cfg.Hosts {
		h = strings.TrimSpace(h)
		if h != "" && !strings.HasPrefix(h, "http") {
			h = "http://" + h
		}
		hosts = append(hosts, h)
	}

	if len(hosts) == 0 {
		return nil, fmt.Errorf("elasticsearch hosts is empty")
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     hosts,
		RetryOnStatus: []int{502, 503, 504},
		MaxRetries:    3,
		RetryBackoff:  func(i int) time.Duration { return time.Duration(i) * time.Second },
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := es.Ping(es.Ping.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to ping elasticsearch: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("elasticsearch ping failed: %s", resp.String())
	}

	logger.Info("Elasticsearch connected", zap.Strings("hosts", hosts))
	return &Client{es: es}, nil
}

// Search 执行搜索（body 为 JSON 查询）
func (c *Client) Search(ctx context.Context, index string, body io.Reader) (*esapi.Response, error) {
	return c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(index),
		c.es.Search.WithBody(body),
	)
}

// Index 索引文档（已存在则覆盖）
func (c *Client) Index(ctx context.Context, index, id string, body io.Reader) (*esapi.Response, error) {
	return c.es.Index(
		index,
		body,
		c.es.Index.WithContext(ctx),
		c.es.Index.WithDocumentID(id),
		c.es.Index.WithRefresh("false"),
	)
}

// Delete 删除文档（不存在不算错误）
func (c *Client) Delete(ctx context.Context, index, id string) error {
	resp, err := c.es.Delete(index, id, c.es.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document %s/%s: %s", index, id, resp.String())
	}
	return nil
}

// EnsureIndex 索引不存在时按映射创建
func (c *Client) EnsureIndex(ctx context.Context, index, mapping string) error {
	resp, err := c.es.Indices.Exists([]string{index}, c.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index %s: %w", index, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == 200 {
		return nil
	}

	createResp, err := c.es.Indices.Create(
		index,
		c.es.Indices.Create.WithContext(ctx),
		c.es.Indices.Create.WithBody(strings.NewReader(mapping)),
	)
	if err != nil {
		return fmt.Errorf("create index %s: %w", index, err)
	}
	defer createResp.Body.Close()

	if createResp.IsError() {
		return fmt.Errorf("create index %s: %s", index, createResp.String())
	}

	logger.Info("Elasticsearch index created", zap.String("index", index))
	return nil
}
