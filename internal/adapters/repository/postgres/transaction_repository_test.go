package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/transaction-review/internal/core/transaction"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

var transactionRowColumns = []string{"id", "amount", "merchant", "date", "approved", "employee_id", "first_name", "last_name"}

type stubRow struct {
	scanFn func(dest ...any) error
}

func (s stubRow) Scan(dest ...any) error {
	return s.scanFn(dest...)
}

func newTransactionMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestTransactionRepository_ListPage_DetectsMore(t *testing.T) {
	t.Parallel()

	mock := newTransactionMock(t)
	repo := NewTransactionRepository(mock)

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows(transactionRowColumns).
		AddRow("t1", "12.50", "Social Media Ads Inc", date, false, "e1", "James", "Smith").
		AddRow("t2", "3.00", "Coffee", date, true, "e2", "Mary", "Johnson").
		AddRow("t3", "99.99", "Airline", date, false, "e1", "James", "Smith")

	mock.ExpectQuery(regexp.QuoteMeta(listTransactionsPageQuery)).
		WithArgs(3, 4).
		WillReturnRows(rows)

	items, hasMore, err := repo.ListPage(context.Background(), transaction.PageFilter{Limit: 2, Offset: 4})
	if err != nil {
		t.Fatalf("ListPage returned error: %v", err)
	}
	if !hasMore {
		t.Fatalf("expected more pages")
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Amount.String() != "12.5" {
		t.Fatalf("unexpected amount %s", items[0].Amount)
	}
	if items[1].Employee.FirstName != "Mary" || !items[1].Approved {
		t.Fatalf("unexpected second item %+v", items[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTransactionRepository_ListPage_LastPage(t *testing.T) {
	t.Parallel()

	mock := newTransactionMock(t)
	repo := NewTransactionRepository(mock)

	rows := pgxmock.NewRows(transactionRowColumns).
		AddRow("t9", "1.00", "Store", time.Now().UTC(), false, "e1", "James", "Smith")

	mock.ExpectQuery(regexp.QuoteMeta(listTransactionsPageQuery)).
		WithArgs(6, 5).
		WillReturnRows(rows)

	items, hasMore, err := repo.ListPage(context.Background(), transaction.PageFilter{Limit: 5, Offset: 5})
	if err != nil {
		t.Fatalf("ListPage returned error: %v", err)
	}
	if hasMore || len(items) != 1 {
		t.Fatalf("expected single final item, got %d (more=%t)", len(items), hasMore)
	}
}

func TestTransactionRepository_ListPage_RejectsBadWindow(t *testing.T) {
	t.Parallel()

	repo := NewTransactionRepository(newTransactionMock(t))

	if _, _, err := repo.ListPage(context.Background(), transaction.PageFilter{Limit: 0}); !errors.Is(err, transaction.ErrInvalidPage) {
		t.Fatalf("expected ErrInvalidPage, got %v", err)
	}
}

func TestTransactionRepository_ListByEmployee(t *testing.T) {
	t.Parallel()

	mock := newTransactionMock(t)
	repo := NewTransactionRepository(mock)

	rows := pgxmock.NewRows(transactionRowColumns).
		AddRow("t1", "12.50", "Social Media Ads Inc", time.Now().UTC(), false, "e1", "James", "Smith")

	mock.ExpectQuery(regexp.QuoteMeta(listTransactionsByEmployeeQuery)).
		WithArgs("e1").
		WillReturnRows(rows)

	items, err := repo.ListByEmployee(context.Background(), "e1")
	if err != nil {
		t.Fatalf("ListByEmployee returned error: %v", err)
	}
	if len(items) != 1 || items[0].Employee.ID != "e1" {
		t.Fatalf("unexpected items %+v", items)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTransactionRepository_SetApproval(t *testing.T) {
	t.Parallel()

	mock := newTransactionMock(t)
	repo := NewTransactionRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(setTransactionApprovalQuery)).
		WithArgs(true, pgxmock.AnyArg(), "t1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(setTransactionApprovalQuery)).
		WithArgs(false, pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	if err := repo.SetApproval(context.Background(), "t1", true); err != nil {
		t.Fatalf("SetApproval returned error: %v", err)
	}
	if err := repo.SetApproval(context.Background(), "missing", false); !errors.Is(err, transaction.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestScanTransaction_InvalidAmount(t *testing.T) {
	t.Parallel()

	row := stubRow{scanFn: func(dest ...any) error {
		*(dest[0].(*string)) = "t1"
		*(dest[1].(*string)) = "not-a-number"
		return nil
	}}

	if _, err := scanTransaction(row); err == nil {
		t.Fatal("expected amount parse error")
	}
}

func TestScanTransaction_NoRows(t *testing.T) {
	t.Parallel()

	row := stubRow{scanFn: func(dest ...any) error { return pgx.ErrNoRows }}

	if _, err := scanTransaction(row); !errors.Is(err, transaction.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}
