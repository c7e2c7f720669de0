package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ogurasousui/transaction-review/internal/adapters/grpc/reviewrpc"
	"github.com/ogurasousui/transaction-review/internal/client/fetch"
)

// fakeBackend はエンドポイント名で応答する Transport です。
type fakeBackend struct {
	mu           sync.Mutex
	pageSize     int
	employees    []Employee
	transactions []Transaction
	calls        []recordedCall
	failures     map[string]error
	nulls        map[string]bool
	// gate が設定されている場合、該当エンドポイントは gate が閉じられるまで応答しません。
	gate    map[string]chan struct{}
	entered chan string
}

type recordedCall struct {
	Endpoint string
	Params   string
}

var errBackend = errors.New("backend unavailable")

func newFakeBackend() *fakeBackend {
	e1 := Employee{ID: "e1", FirstName: "Ada", LastName: "Lovelace"}
	e2 := Employee{ID: "e2", FirstName: "Alan", LastName: "Turing"}
	txs := make([]Transaction, 0, 7)
	for i := 1; i <= 7; i++ {
		emp := e1
		if i%2 == 0 {
			emp = e2
		}
		txs = append(txs, Transaction{
			ID:       fmt.Sprintf("t%d", i),
			Amount:   decimal.New(int64(i*1000), -2),
			Merchant: fmt.Sprintf("merchant-%d", i),
			Date:     time.Date(2024, 1, i, 0, 0, 0, 0, time.UTC).Format(reviewrpc.DateLayout),
			Employee: emp,
		})
	}
	return &fakeBackend{
		pageSize:     5,
		employees:    []Employee{e1, e2},
		transactions: txs,
		failures:     map[string]error{},
		nulls:        map[string]bool{},
		gate:         map[string]chan struct{}{},
		entered:      make(chan string, 16),
	}
}

func (f *fakeBackend) Invoke(ctx context.Context, endpoint string, params, reply any) error {
	b, err := json.Marshal(params)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{Endpoint: endpoint, Params: string(b)})
	gate := f.gate[endpoint]
	f.mu.Unlock()

	if gate != nil {
		f.entered <- endpoint
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failures[endpoint]; err != nil {
		return err
	}
	if f.nulls[endpoint] {
		*reply.(*json.RawMessage) = json.RawMessage("null")
		return nil
	}

	var resp any
	switch endpoint {
	case reviewrpc.EndpointEmployees:
		if f.employees != nil {
			resp = f.employees
		}
	case reviewrpc.EndpointPaginatedTransactions:
		var req paginatedParams
		if err := json.Unmarshal(b, &req); err != nil {
			return err
		}
		page := 0
		if req.Page != nil {
			page = *req.Page
		}
		start := page * f.pageSize
		if start > len(f.transactions) {
			return errors.New("invalid page")
		}
		end := min(start+f.pageSize, len(f.transactions))
		out := PaginatedResponse[[]Transaction]{Data: append([]Transaction{}, f.transactions[start:end]...)}
		if end < len(f.transactions) {
			next := page + 1
			out.NextPage = &next
		}
		resp = out
	case reviewrpc.EndpointTransactionsByEmployee:
		var req employeeParams
		if err := json.Unmarshal(b, &req); err != nil {
			return err
		}
		out := []Transaction{}
		for _, tx := range f.transactions {
			if tx.Employee.ID == req.EmployeeID {
				out = append(out, tx)
			}
		}
		resp = out
	case reviewrpc.EndpointSetTransactionApproval:
		var req approvalParams
		if err := json.Unmarshal(b, &req); err != nil {
			return err
		}
		found := false
		for i := range f.transactions {
			if f.transactions[i].ID == req.TransactionID {
				f.transactions[i].Approved = req.Value
				found = true
			}
		}
		if !found {
			return errors.New("transaction not found")
		}
		resp = struct{}{}
	default:
		return fmt.Errorf("%w: %s", reviewrpc.ErrUnknownEndpoint, endpoint)
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	*reply.(*json.RawMessage) = raw
	return nil
}

func (f *fakeBackend) hold(endpoint string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gate[endpoint] = ch
	return ch
}

func (f *fakeBackend) release(endpoint string) {
	f.mu.Lock()
	ch := f.gate[endpoint]
	delete(f.gate, endpoint)
	f.mu.Unlock()
	if ch != nil {
		close(ch)
	}
}

func (f *fakeBackend) fail(endpoint string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[endpoint] = err
}

func (f *fakeBackend) respondNull(endpoint string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nulls[endpoint] = true
}

func (f *fakeBackend) callsTo(endpoint string) []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedCall
	for _, c := range f.calls {
		if c.Endpoint == endpoint {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeBackend) endpoints() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.Endpoint)
	}
	return out
}

func newTestClient(backend *fakeBackend) *fetch.Client {
	return fetch.NewClient(fetch.NewCache(time.Minute), backend, nil)
}

func ids(txs []Transaction) []string {
	out := make([]string, 0, len(txs))
	for _, tx := range txs {
		out = append(out, tx.ID)
	}
	return out
}
