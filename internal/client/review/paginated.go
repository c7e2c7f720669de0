package review

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/ogurasousui/transaction-review/internal/adapters/grpc/reviewrpc"
	"github.com/ogurasousui/transaction-review/internal/client/fetch"
)

// PaginatedTransactions は全社員の取引をページ単位で積み上げて保持します。
type PaginatedTransactions struct {
	client *fetch.Client

	mu      sync.Mutex
	state   *PaginatedResponse[[]Transaction]
	hasMore bool
	// gen は Invalidate のたびに進み、それ以前に始まった取得の応答を捨てるのに使います。
	gen uint64
}

func NewPaginatedTransactions(client *fetch.Client) *PaginatedTransactions {
	return &PaginatedTransactions{client: client}
}

// FetchNextPage は続きのページを取得して末尾に追加します。
// 未取得なら 0 ページ目、それ以外は保持しているカーソル (nil を含む) を送ります。
// 取得中に Invalidate された場合、応答は反映しません。
func (p *PaginatedTransactions) FetchNextPage(ctx context.Context) error {
	p.mu.Lock()
	page := new(int)
	if p.state != nil {
		page = copyInt(p.state.NextPage)
	}
	gen := p.gen
	p.mu.Unlock()

	resp, err := fetch.Fetch[PaginatedResponse[[]Transaction]](ctx, p.client, reviewrpc.EndpointPaginatedTransactions, paginatedParams{Page: page})
	if err != nil {
		return fmt.Errorf("review: fetch next page: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.gen != gen {
		return nil
	}
	if resp == nil {
		p.state = nil
		p.hasMore = false
		return nil
	}

	data := resp.Data
	if p.state != nil {
		data = append(slices.Clone(p.state.Data), resp.Data...)
	}
	p.state = &PaginatedResponse[[]Transaction]{Data: data, NextPage: resp.NextPage}
	p.hasMore = resp.NextPage != nil
	return nil
}

// Invalidate は保持している状態を破棄します。
func (p *PaginatedTransactions) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = nil
	p.hasMore = false
	p.gen++
}

// Overwrite はカーソルを保ったまま一覧を置き換えます。未取得なら何もしません。
func (p *PaginatedTransactions) Overwrite(txs []Transaction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == nil {
		return
	}
	p.state = &PaginatedResponse[[]Transaction]{Data: slices.Clone(txs), NextPage: p.state.NextPage}
}

// Data は積み上げた取引の複製を返します。未取得の場合 ok は false です。
func (p *PaginatedTransactions) Data() (txs []Transaction, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == nil {
		return nil, false
	}
	out := slices.Clone(p.state.Data)
	if out == nil {
		out = []Transaction{}
	}
	return out, true
}

// NextPage は次に要求するカーソルを返します。
func (p *PaginatedTransactions) NextPage() *int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == nil {
		return nil
	}
	return copyInt(p.state.NextPage)
}

func (p *PaginatedTransactions) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

func (p *PaginatedTransactions) Loading() bool {
	return p.client.Loading()
}
