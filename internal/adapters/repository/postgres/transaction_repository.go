package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/transaction-review/internal/core/transaction"
	pgdb "github.com/ogurasousui/transaction-review/internal/platform/db/postgres"
	"github.com/shopspring/decimal"
)

const (
	transactionColumns = `
        SELECT t.id,
               t.amount::text,
               t.merchant,
               t.date,
               t.approved,
               e.id,
               e.first_name,
               e.last_name
          FROM transactions t
          JOIN employees e ON e.id = t.employee_id`

	listTransactionsPageQuery = transactionColumns + `
         ORDER BY t.date DESC, t.id
         LIMIT $1
        OFFSET $2
    `
	listTransactionsByEmployeeQuery = transactionColumns + `
         WHERE t.employee_id = $1
         ORDER BY t.date DESC, t.id
    `
	setTransactionApprovalQuery = `UPDATE transactions SET approved = $1, updated_at = $2 WHERE id = $3`
)

// TransactionRepository は PostgreSQL を利用した取引永続化の実装です。
type TransactionRepository struct {
	pool pgdb.Queryer
	now  func() time.Time
}

// NewTransactionRepository は TransactionRepository を生成します。
func NewTransactionRepository(pool pgdb.Queryer) *TransactionRepository {
	return &TransactionRepository{
		pool: pool,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// ListPage は 1 件多く読み込み、続きのページがあるかどうかを判定します。
func (r *TransactionRepository) ListPage(ctx context.Context, filter transaction.PageFilter) ([]*transaction.Transaction, bool, error) {
	if filter.Limit <= 0 || filter.Offset < 0 {
		return nil, false, transaction.ErrInvalidPage
	}

	limitWithBuffer := filter.Limit + 1

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, listTransactionsPageQuery, limitWithBuffer, filter.Offset)
	if err != nil {
		return nil, false, translateTransactionPgError(err)
	}

	items, err := collectTransactions(rows, limitWithBuffer)
	if err != nil {
		return nil, false, err
	}

	hasMore := len(items) == limitWithBuffer
	if hasMore {
		items = items[:filter.Limit]
	}
	return items, hasMore, nil
}

// ListByEmployee は社員の全取引を返します。
func (r *TransactionRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*transaction.Transaction, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, listTransactionsByEmployeeQuery, employeeID)
	if err != nil {
		return nil, translateTransactionPgError(err)
	}
	return collectTransactions(rows, 0)
}

// SetApproval は承認フラグを更新します。
func (r *TransactionRepository) SetApproval(ctx context.Context, id string, approved bool) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, setTransactionApprovalQuery, approved, r.now(), id)
	if err != nil {
		return translateTransactionPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return transaction.ErrTransactionNotFound
	}
	return nil
}

func collectTransactions(rows pgx.Rows, capacity int) ([]*transaction.Transaction, error) {
	defer rows.Close()

	items := make([]*transaction.Transaction, 0, capacity)
	for rows.Next() {
		item, err := scanTransaction(rows)
		if err != nil {
			return nil, translateTransactionPgError(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, translateTransactionPgError(err)
	}
	return items, nil
}

func scanTransaction(row pgx.Row) (*transaction.Transaction, error) {
	var (
		item      transaction.Transaction
		amountRaw string
		date      time.Time
	)

	if err := row.Scan(
		&item.ID,
		&amountRaw,
		&item.Merchant,
		&date,
		&item.Approved,
		&item.Employee.ID,
		&item.Employee.FirstName,
		&item.Employee.LastName,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transaction.ErrTransactionNotFound
		}
		return nil, err
	}

	amount, err := decimal.NewFromString(amountRaw)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: parse amount %q: %w", item.ID, amountRaw, err)
	}
	item.Amount = amount

	d := date.UTC()
	item.Date = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)

	return &item, nil
}

func translateTransactionPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return transaction.ErrTransactionNotFound
	}
	return err
}
