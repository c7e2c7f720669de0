package review

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/ogurasousui/transaction-review/internal/adapters/grpc/reviewrpc"
	"github.com/ogurasousui/transaction-review/internal/client/fetch"
)

// EmployeeTransactions は一人の社員に絞り込んだ取引を保持します。取得のたびに丸ごと置き換わります。
type EmployeeTransactions struct {
	client *fetch.Client

	mu    sync.Mutex
	state []Transaction
	set   bool
	gen   uint64
}

func NewEmployeeTransactions(client *fetch.Client) *EmployeeTransactions {
	return &EmployeeTransactions{client: client}
}

// FetchForEmployee は employeeID の取引を取得して状態を置き換えます。
// 取得中に Invalidate された場合、応答は反映しません。
func (e *EmployeeTransactions) FetchForEmployee(ctx context.Context, employeeID string) error {
	e.mu.Lock()
	gen := e.gen
	e.mu.Unlock()

	resp, err := fetch.Fetch[[]Transaction](ctx, e.client, reviewrpc.EndpointTransactionsByEmployee, employeeParams{EmployeeID: employeeID})
	if err != nil {
		return fmt.Errorf("review: fetch transactions for employee %s: %w", employeeID, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gen != gen {
		return nil
	}
	if resp == nil {
		e.state, e.set = nil, false
		return nil
	}
	e.state, e.set = *resp, true
	return nil
}

func (e *EmployeeTransactions) Invalidate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state, e.set = nil, false
	e.gen++
}

// Overwrite は一覧を置き換えます。未取得なら何もしません。
func (e *EmployeeTransactions) Overwrite(txs []Transaction) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.set {
		return
	}
	e.state = slices.Clone(txs)
}

// Data は取引の複製を返します。未取得の場合 ok は false です。
func (e *EmployeeTransactions) Data() (txs []Transaction, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.set {
		return nil, false
	}
	out := slices.Clone(e.state)
	if out == nil {
		out = []Transaction{}
	}
	return out, true
}

func (e *EmployeeTransactions) Loading() bool {
	return e.client.Loading()
}
