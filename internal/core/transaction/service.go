package transaction

import (
	"context"
	"fmt"
	"strings"
)

// DefaultPageSize は 1 ページあたりの取引件数の既定値です。
const DefaultPageSize = 5

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// UseCase は取引レビューのユースケースです。
type UseCase interface {
	ListPaginated(ctx context.Context, in ListPaginatedInput) (*PaginatedResult, error)
	ListByEmployee(ctx context.Context, in ListByEmployeeInput) ([]*Transaction, error)
	SetApproval(ctx context.Context, in SetApprovalInput) error
}

// Service は取引の一覧と承認を扱います。
type Service struct {
	repo     Repository
	tx       TransactionManager
	pageSize int
}

// NewService は Service を生成します。pageSize が 0 以下なら DefaultPageSize を使います。
func NewService(repo Repository, tx TransactionManager, pageSize int) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{repo: repo, tx: tx, pageSize: pageSize}
}

// ListPaginatedInput はページ単位の取得条件です。Page が nil の場合は先頭ページです。
type ListPaginatedInput struct {
	Page *int
}

// PaginatedResult は 1 ページ分の取引と次ページ番号です。NextPage が nil なら続きはありません。
type PaginatedResult struct {
	Transactions []*Transaction
	NextPage     *int
}

// ListByEmployeeInput は社員単位の取得条件です。
type ListByEmployeeInput struct {
	EmployeeID string
}

// SetApprovalInput は承認状態の更新内容です。
type SetApprovalInput struct {
	TransactionID string
	Value         bool
}

// ListPaginated は指定ページの取引を返します。
func (s *Service) ListPaginated(ctx context.Context, in ListPaginatedInput) (*PaginatedResult, error) {
	page := 0
	if in.Page != nil {
		page = *in.Page
	}
	if page < 0 {
		return nil, fmt.Errorf("page %d: %w", page, ErrInvalidPage)
	}

	var (
		items   []*Transaction
		hasMore bool
	)
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, more, err := s.repo.ListPage(txCtx, PageFilter{
			Limit:  s.pageSize,
			Offset: page * s.pageSize,
		})
		if err != nil {
			return err
		}
		items = found
		hasMore = more
		return nil
	}); err != nil {
		return nil, err
	}

	// 先頭以外で空のページは範囲外
	if page > 0 && len(items) == 0 {
		return nil, fmt.Errorf("page %d: %w", page, ErrInvalidPage)
	}

	result := &PaginatedResult{Transactions: items}
	if hasMore {
		next := page + 1
		result.NextPage = &next
	}
	return result, nil
}

// ListByEmployee は社員の全取引を返します。該当がなければ空のスライスです。
func (s *Service) ListByEmployee(ctx context.Context, in ListByEmployeeInput) ([]*Transaction, error) {
	employeeID := strings.TrimSpace(in.EmployeeID)
	if employeeID == "" {
		return nil, ErrInvalidEmployeeID
	}

	var items []*Transaction
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.ListByEmployee(txCtx, employeeID)
		if err != nil {
			return err
		}
		items = found
		return nil
	}); err != nil {
		return nil, err
	}

	if items == nil {
		items = []*Transaction{}
	}
	return items, nil
}

// SetApproval は取引の承認状態を更新します。
func (s *Service) SetApproval(ctx context.Context, in SetApprovalInput) error {
	id := strings.TrimSpace(in.TransactionID)
	if id == "" {
		return fmt.Errorf("transaction_id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.SetApproval(txCtx, id, in.Value)
	})
}
