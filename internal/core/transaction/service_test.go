package transaction

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

type fakeTransactionRepo struct {
	items    []*Transaction
	pageReqs []PageFilter
}

func newFakeTransactionRepo(n int) *fakeTransactionRepo {
	r := &fakeTransactionRepo{}
	for i := 0; i < n; i++ {
		employeeID := "e1"
		if i%2 == 1 {
			employeeID = "e2"
		}
		r.items = append(r.items, &Transaction{
			ID:       fmt.Sprintf("t%d", i+1),
			Amount:   decimal.NewFromInt(int64(10 * (i + 1))),
			Merchant: "Merchant",
			Employee: EmployeeSnapshot{ID: employeeID},
		})
	}
	return r
}

func (r *fakeTransactionRepo) ListPage(_ context.Context, filter PageFilter) ([]*Transaction, bool, error) {
	r.pageReqs = append(r.pageReqs, filter)
	if filter.Offset >= len(r.items) {
		return []*Transaction{}, false, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(r.items) {
		end = len(r.items)
	}
	out := make([]*Transaction, 0, end-filter.Offset)
	for _, item := range r.items[filter.Offset:end] {
		clone := *item
		out = append(out, &clone)
	}
	return out, end < len(r.items), nil
}

func (r *fakeTransactionRepo) ListByEmployee(_ context.Context, employeeID string) ([]*Transaction, error) {
	var out []*Transaction
	for _, item := range r.items {
		if item.Employee.ID == employeeID {
			clone := *item
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) SetApproval(_ context.Context, id string, approved bool) error {
	for _, item := range r.items {
		if item.ID == id {
			item.Approved = approved
			return nil
		}
	}
	return ErrTransactionNotFound
}

type countingTx struct {
	readOnly  int
	readWrite int
}

func (c *countingTx) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	c.readOnly++
	return fn(ctx)
}

func (c *countingTx) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	c.readWrite++
	return fn(ctx)
}

func intPtr(v int) *int { return &v }

func TestService_ListPaginated_WalksPages(t *testing.T) {
	t.Parallel()

	repo := newFakeTransactionRepo(7)
	svc := NewService(repo, nil, 3)

	first, err := svc.ListPaginated(context.Background(), ListPaginatedInput{})
	if err != nil {
		t.Fatalf("ListPaginated returned error: %v", err)
	}
	if len(first.Transactions) != 3 || first.Transactions[0].ID != "t1" {
		t.Fatalf("unexpected first page: %+v", first.Transactions)
	}
	if first.NextPage == nil || *first.NextPage != 1 {
		t.Fatalf("expected next page 1, got %v", first.NextPage)
	}

	last, err := svc.ListPaginated(context.Background(), ListPaginatedInput{Page: intPtr(2)})
	if err != nil {
		t.Fatalf("ListPaginated page 2 returned error: %v", err)
	}
	if len(last.Transactions) != 1 || last.Transactions[0].ID != "t7" {
		t.Fatalf("unexpected last page: %+v", last.Transactions)
	}
	if last.NextPage != nil {
		t.Fatalf("expected no next page, got %d", *last.NextPage)
	}

	if repo.pageReqs[1].Offset != 6 || repo.pageReqs[1].Limit != 3 {
		t.Fatalf("unexpected page filter: %+v", repo.pageReqs[1])
	}
}

func TestService_ListPaginated_NilPageIsFirst(t *testing.T) {
	t.Parallel()

	repo := newFakeTransactionRepo(2)
	svc := NewService(repo, nil, 0)

	result, err := svc.ListPaginated(context.Background(), ListPaginatedInput{Page: nil})
	if err != nil {
		t.Fatalf("ListPaginated returned error: %v", err)
	}
	if repo.pageReqs[0].Offset != 0 || repo.pageReqs[0].Limit != DefaultPageSize {
		t.Fatalf("unexpected page filter: %+v", repo.pageReqs[0])
	}
	if result.NextPage != nil {
		t.Fatalf("expected single page")
	}
}

func TestService_ListPaginated_EmptyStoreFirstPage(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeTransactionRepo(0), nil, 5)

	result, err := svc.ListPaginated(context.Background(), ListPaginatedInput{Page: intPtr(0)})
	if err != nil {
		t.Fatalf("ListPaginated returned error: %v", err)
	}
	if len(result.Transactions) != 0 || result.NextPage != nil {
		t.Fatalf("expected empty terminal page, got %+v", result)
	}
}

func TestService_ListPaginated_InvalidPage(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeTransactionRepo(3), nil, 5)

	if _, err := svc.ListPaginated(context.Background(), ListPaginatedInput{Page: intPtr(-1)}); !errors.Is(err, ErrInvalidPage) {
		t.Fatalf("expected ErrInvalidPage for negative page, got %v", err)
	}
	if _, err := svc.ListPaginated(context.Background(), ListPaginatedInput{Page: intPtr(4)}); !errors.Is(err, ErrInvalidPage) {
		t.Fatalf("expected ErrInvalidPage past the end, got %v", err)
	}
}

func TestService_ListByEmployee(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeTransactionRepo(5), nil, 5)

	items, err := svc.ListByEmployee(context.Background(), ListByEmployeeInput{EmployeeID: "e2"})
	if err != nil {
		t.Fatalf("ListByEmployee returned error: %v", err)
	}
	if len(items) != 2 || items[0].ID != "t2" || items[1].ID != "t4" {
		t.Fatalf("unexpected items: %+v", items)
	}

	none, err := svc.ListByEmployee(context.Background(), ListByEmployeeInput{EmployeeID: "nobody"})
	if err != nil {
		t.Fatalf("ListByEmployee returned error: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", none)
	}

	if _, err := svc.ListByEmployee(context.Background(), ListByEmployeeInput{EmployeeID: " "}); !errors.Is(err, ErrInvalidEmployeeID) {
		t.Fatalf("expected ErrInvalidEmployeeID, got %v", err)
	}
}

func TestService_SetApproval(t *testing.T) {
	t.Parallel()

	repo := newFakeTransactionRepo(2)
	tx := &countingTx{}
	svc := NewService(repo, tx, 5)

	if err := svc.SetApproval(context.Background(), SetApprovalInput{TransactionID: "t2", Value: true}); err != nil {
		t.Fatalf("SetApproval returned error: %v", err)
	}
	if !repo.items[1].Approved {
		t.Fatalf("expected t2 approved")
	}
	if tx.readWrite != 1 {
		t.Fatalf("expected read-write transaction, got %d", tx.readWrite)
	}

	if err := svc.SetApproval(context.Background(), SetApprovalInput{TransactionID: "missing"}); !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
	if err := svc.SetApproval(context.Background(), SetApprovalInput{}); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}
