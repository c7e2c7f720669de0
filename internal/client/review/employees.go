package review

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/ogurasousui/transaction-review/internal/adapters/grpc/reviewrpc"
	"github.com/ogurasousui/transaction-review/internal/client/fetch"
)

// Employees は社員名簿を保持します。
type Employees struct {
	client *fetch.Client

	mu     sync.Mutex
	roster []Employee
	loaded bool
}

func NewEmployees(client *fetch.Client) *Employees {
	return &Employees{client: client}
}

// Fetch は名簿を取得します。応答が null なら未取得のままになります。
func (e *Employees) Fetch(ctx context.Context) error {
	resp, err := fetch.Fetch[[]Employee](ctx, e.client, reviewrpc.EndpointEmployees, struct{}{})
	if err != nil {
		return fmt.Errorf("review: fetch employees: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if resp == nil {
		e.roster, e.loaded = nil, false
		return nil
	}
	e.roster, e.loaded = *resp, true
	return nil
}

func (e *Employees) Data() (roster []Employee, loaded bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		return nil, false
	}
	return slices.Clone(e.roster), true
}

func (e *Employees) Loading() bool {
	return e.client.Loading()
}
