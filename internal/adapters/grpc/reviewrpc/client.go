package reviewrpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// ErrUnknownEndpoint は対応する RPC を持たないエンドポイント名です。
var ErrUnknownEndpoint = errors.New("reviewrpc: unknown endpoint")

// Client はエンドポイント名で ReviewService を呼び出すトランスポートです。
type Client struct {
	conn    grpc.ClientConnInterface
	timeout time.Duration
}

// NewClient は Client を生成します。timeout が 0 の場合は呼び出し側のコンテキストに従います。
func NewClient(conn grpc.ClientConnInterface, timeout time.Duration) *Client {
	return &Client{conn: conn, timeout: timeout}
}

// Dial は平文の gRPC 接続を作成します。
func Dial(addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("reviewrpc: dial %s: %w", addr, err)
	}
	return conn, nil
}

// Invoke は endpoint に対応する RPC を呼び出し、応答を reply に復号します。
func (c *Client) Invoke(ctx context.Context, endpoint string, params, reply any) error {
	method, ok := MethodForEndpoint(endpoint)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEndpoint, endpoint)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if err := c.conn.Invoke(ctx, FullMethod(method), params, reply, grpc.CallContentSubtype(CodecName)); err != nil {
		return fmt.Errorf("reviewrpc: %s: %w", method, err)
	}
	return nil
}
