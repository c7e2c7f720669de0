package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

// Transport はエンドポイント名で RPC を呼び出します。reply には *json.RawMessage が渡されます。
type Transport interface {
	Invoke(ctx context.Context, endpoint string, params, reply any) error
}

// Client は共有 Cache と Transport を束ね、自身を経由した呼び出しの読み込み状態を持ちます。
type Client struct {
	cache     *Cache
	transport Transport
	logger    *zap.Logger
	inFlight  atomic.Int32
}

// NewClient は Client を生成します。
func NewClient(cache *Cache, transport Transport, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{cache: cache, transport: transport, logger: logger}
}

// Loading はこの Client を経由した呼び出しが進行中かどうかを返します。
func (c *Client) Loading() bool {
	return c.inFlight.Load() > 0
}

// Fetch はキャッシュを優先して endpoint を呼び出します。応答が null なら nil を返します。
func Fetch[Resp, Params any](ctx context.Context, c *Client, endpoint string, params Params) (*Resp, error) {
	key, err := Key(endpoint, params)
	if err != nil {
		return nil, err
	}

	c.inFlight.Add(1)
	defer c.inFlight.Add(-1)

	raw, ok := c.cache.get(key)
	if ok {
		c.logger.Debug("fetch cache hit", zap.String("key", key))
	} else {
		raw, err = c.invoke(ctx, endpoint, params)
		if err != nil {
			return nil, err
		}
		c.cache.set(key, raw)
	}

	return decode[Resp](endpoint, raw)
}

// FetchWithoutCache はキャッシュを参照も更新もせずに endpoint を呼び出します。
func FetchWithoutCache[Resp, Params any](ctx context.Context, c *Client, endpoint string, params Params) (*Resp, error) {
	c.inFlight.Add(1)
	defer c.inFlight.Add(-1)

	raw, err := c.invoke(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	return decode[Resp](endpoint, raw)
}

func (c *Client) invoke(ctx context.Context, endpoint string, params any) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.transport.Invoke(ctx, endpoint, params, &raw); err != nil {
		return nil, fmt.Errorf("fetch: %s: %w", endpoint, err)
	}
	c.logger.Debug("fetch completed", zap.String("endpoint", endpoint), zap.Int("bytes", len(raw)))
	return raw, nil
}

func decode[Resp any](endpoint string, raw json.RawMessage) (*Resp, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	out := new(Resp)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("fetch: decode %s: %w", endpoint, err)
	}
	return out, nil
}
