package transaction

import "context"

// Repository は取引永続化の抽象です。
type Repository interface {
	ListPage(ctx context.Context, filter PageFilter) ([]*Transaction, bool, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*Transaction, error)
	SetApproval(ctx context.Context, id string, approved bool) error
}

// PageFilter はページ取得用の範囲です。
type PageFilter struct {
	Limit  int
	Offset int
}
