// Package fetch は ReviewService 呼び出しのメモ化キャッシュです。
//
// キーは (エンドポイント名, パラメータの JSON) です。Cache は複数の Client で共有し、
// 読み込み中フラグは Client ごとに持ちます。
package fetch

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const keySeparator = "@"

// Cache は応答の生 JSON を保持します。
type Cache struct {
	store *gocache.Cache
}

// NewCache は ttl で失効する Cache を生成します。ttl が 0 以下なら失効しません。
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		return &Cache{store: gocache.New(gocache.NoExpiration, 0)}
	}
	return &Cache{store: gocache.New(ttl, 2*ttl)}
}

// Key はエンドポイント名とパラメータからキャッシュキーを作ります。
func Key(endpoint string, params any) (string, error) {
	b, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("fetch: encode params for %s: %w", endpoint, err)
	}
	return endpoint + keySeparator + string(b), nil
}

func (c *Cache) get(key string) (json.RawMessage, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	raw, ok := v.(json.RawMessage)
	return raw, ok
}

func (c *Cache) set(key string, raw json.RawMessage) {
	c.store.SetDefault(key, raw)
}

// Len は失効していない項目の件数を返します。
func (c *Cache) Len() int {
	return len(c.store.Items())
}

// Clear はすべての項目を破棄します。
func (c *Cache) Clear() {
	c.store.Flush()
}

// ClearByEndpoint は endpoint の項目だけを破棄します。
func (c *Cache) ClearByEndpoint(endpoint string) {
	prefix := endpoint + keySeparator
	for key := range c.store.Items() {
		if strings.HasPrefix(key, prefix) {
			c.store.Delete(key)
		}
	}
}
