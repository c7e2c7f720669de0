package review

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ogurasousui/transaction-review/internal/adapters/grpc/reviewrpc"
	"github.com/ogurasousui/transaction-review/internal/client/fetch"
)

type source int

const (
	sourceNone source = iota
	sourcePaginated
	sourceFiltered
)

func (s source) String() string {
	switch s {
	case sourcePaginated:
		return "paginated"
	case sourceFiltered:
		return "filtered"
	default:
		return "none"
	}
}

// View は名簿と二つの取引状態をまとめ、どちらの取引一覧を表示するかを決めます。
// 操作は呼び出し側で逐次に行う前提ですが、読み取りは別ゴルーチンからも安全です。
type View struct {
	employees *Employees
	paginated *PaginatedTransactions
	filtered  *EmployeeTransactions
	approvals *fetch.Client
	cache     *fetch.Cache
	logger    *zap.Logger

	mu     sync.Mutex
	active source

	booted      atomic.Bool
	viewingMore atomic.Bool
}

// NewView は共有キャッシュの上に状態ごとの fetch.Client を作って View を組み立てます。
func NewView(cache *fetch.Cache, transport fetch.Transport, logger *zap.Logger) *View {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &View{
		employees: NewEmployees(fetch.NewClient(cache, transport, logger)),
		paginated: NewPaginatedTransactions(fetch.NewClient(cache, transport, logger)),
		filtered:  NewEmployeeTransactions(fetch.NewClient(cache, transport, logger)),
		approvals: fetch.NewClient(cache, transport, logger),
		cache:     cache,
		logger:    logger,
	}
}

// Transactions は有効な側の取引一覧を返します。未取得なら ok は false です。
func (v *View) Transactions() (txs []Transaction, ok bool) {
	switch v.activeSource() {
	case sourcePaginated:
		return v.paginated.Data()
	case sourceFiltered:
		return v.filtered.Data()
	default:
		return nil, false
	}
}

// Employees は選択肢としての社員一覧を返します。名簿が無ければ nil です。
func (v *View) Employees() []Employee {
	roster, loaded := v.employees.Data()
	if !loaded {
		return nil
	}
	return append([]Employee{EmptyEmployee}, roster...)
}

// Loading はいずれかの取得が進行中かどうかを返します。
func (v *View) Loading() bool {
	return v.employees.Loading() || v.transactionsLoading() || v.approvals.Loading()
}

func (v *View) transactionsLoading() bool {
	return v.paginated.Loading() || v.filtered.Loading()
}

// LoadAll は絞り込みを解除し、名簿を更新してから次のページを取得します。
func (v *View) LoadAll(ctx context.Context) error {
	v.filtered.Invalidate()
	v.setActive(sourcePaginated)

	if err := v.employees.Fetch(ctx); err != nil {
		return err
	}
	return v.paginated.FetchNextPage(ctx)
}

// LoadForEmployee はページングを破棄して employeeID の取引を取得します。
func (v *View) LoadForEmployee(ctx context.Context, employeeID string) error {
	v.paginated.Invalidate()
	v.setActive(sourceFiltered)

	return v.filtered.FetchForEmployee(ctx, employeeID)
}

// Init は名簿が未取得で取得中でもない場合に限り、一度だけ LoadAll を実行します。
// LoadAll が失敗した場合は次の Init で再試行します。
func (v *View) Init(ctx context.Context) error {
	if _, loaded := v.employees.Data(); loaded || v.employees.Loading() {
		return nil
	}
	if !v.booted.CompareAndSwap(false, true) {
		return nil
	}
	if err := v.LoadAll(ctx); err != nil {
		v.booted.Store(false)
		return err
	}
	return nil
}

// Select は社員の選択を反映します。nil は無視し、EmptyEmployee は全件表示に戻します。
func (v *View) Select(ctx context.Context, e *Employee) error {
	if e == nil {
		return nil
	}
	if e.ID == EmptyEmployee.ID {
		return v.LoadAll(ctx)
	}
	return v.LoadForEmployee(ctx, e.ID)
}

// CanViewMore はページング表示中で続きがある場合に true を返します。
func (v *View) CanViewMore() bool {
	if _, ok := v.paginated.Data(); !ok {
		return false
	}
	return v.paginated.HasMore()
}

// ViewMore は続きのページを一度だけ取得します。取得中の場合は ErrFetchInFlight を返します。
func (v *View) ViewMore(ctx context.Context) error {
	if !v.CanViewMore() {
		return ErrNoMorePages
	}
	if v.transactionsLoading() {
		return ErrFetchInFlight
	}
	if !v.viewingMore.CompareAndSwap(false, true) {
		return ErrFetchInFlight
	}
	defer v.viewingMore.Store(false)

	return v.paginated.FetchNextPage(ctx)
}

// Approve は表示中の取引の承認を反転します。
// サーバーへ保存してから取引のキャッシュを捨て、新しい一覧を有効な側の状態にだけ書き込みます。
func (v *View) Approve(ctx context.Context, transactionID string) error {
	visible, ok := v.Transactions()
	if !ok {
		return fmt.Errorf("%w: %s", ErrTransactionNotVisible, transactionID)
	}
	target, ok := findTransaction(visible, transactionID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTransactionNotVisible, transactionID)
	}
	approved := !target.Approved

	params := approvalParams{TransactionID: transactionID, Value: approved}
	if _, err := fetch.FetchWithoutCache[struct{}](ctx, v.approvals, reviewrpc.EndpointSetTransactionApproval, params); err != nil {
		return fmt.Errorf("review: set approval for %s: %w", transactionID, err)
	}
	v.cache.ClearByEndpoint(reviewrpc.EndpointPaginatedTransactions)
	v.cache.ClearByEndpoint(reviewrpc.EndpointTransactionsByEmployee)

	current, ok := v.Transactions()
	if !ok {
		return nil
	}
	updated := withApproval(current, transactionID, approved)

	switch active := v.activeSource(); active {
	case sourcePaginated:
		v.paginated.Overwrite(updated)
	case sourceFiltered:
		v.filtered.Overwrite(updated)
	default:
		v.logger.Warn("approval without active source", zap.String("transaction_id", transactionID))
	}

	v.logger.Debug("transaction approval toggled",
		zap.String("transaction_id", transactionID),
		zap.Bool("approved", approved),
	)
	return nil
}

func (v *View) setActive(s source) {
	v.mu.Lock()
	prev := v.active
	v.active = s
	v.mu.Unlock()

	if prev != s {
		v.logger.Debug("transaction source switched", zap.Stringer("from", prev), zap.Stringer("to", s))
	}
}

func (v *View) activeSource() source {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.active
}
