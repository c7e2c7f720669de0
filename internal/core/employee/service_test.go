package employee

import (
	"context"
	"errors"
	"testing"
)

type fakeEmployeeRepo struct {
	employees map[string]*Employee
	order     []string
	listErr   error
}

func newFakeEmployeeRepo(seed ...*Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{employees: make(map[string]*Employee)}
	for _, e := range seed {
		clone := *e
		r.employees[e.ID] = &clone
		r.order = append(r.order, e.ID)
	}
	return r
}

func (r *fakeEmployeeRepo) List(_ context.Context) ([]*Employee, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*Employee, 0, len(r.order))
	for _, id := range r.order {
		clone := *r.employees[id]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeEmployeeRepo) FindByID(_ context.Context, id string) (*Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, ErrEmployeeNotFound
	}
	clone := *e
	return &clone, nil
}

type recordingTx struct {
	calls int
}

func (r *recordingTx) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	r.calls++
	return fn(ctx)
}

func TestService_ListEmployees_ReturnsRosterInOrder(t *testing.T) {
	t.Parallel()

	repo := newFakeEmployeeRepo(
		&Employee{ID: "e1", FirstName: "James", LastName: "Smith"},
		&Employee{ID: "e2", FirstName: "Mary", LastName: "Johnson"},
	)
	tx := &recordingTx{}
	svc := NewService(repo, tx)

	employees, err := svc.ListEmployees(context.Background())
	if err != nil {
		t.Fatalf("ListEmployees returned error: %v", err)
	}
	if len(employees) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(employees))
	}
	if employees[0].ID != "e1" || employees[1].ID != "e2" {
		t.Fatalf("unexpected order: %s, %s", employees[0].ID, employees[1].ID)
	}
	if tx.calls != 1 {
		t.Fatalf("expected one read-only transaction, got %d", tx.calls)
	}
}

func TestService_ListEmployees_EmptyRosterIsNil(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeEmployeeRepo(), nil)

	employees, err := svc.ListEmployees(context.Background())
	if err != nil {
		t.Fatalf("ListEmployees returned error: %v", err)
	}
	if employees != nil {
		t.Fatalf("expected nil roster, got %+v", employees)
	}
}

func TestService_ListEmployees_PropagatesError(t *testing.T) {
	t.Parallel()

	repo := newFakeEmployeeRepo()
	repo.listErr = errors.New("db down")
	svc := NewService(repo, nil)

	if _, err := svc.ListEmployees(context.Background()); !errors.Is(err, repo.listErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestService_GetEmployee(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeEmployeeRepo(&Employee{ID: "e1", FirstName: "James", LastName: "Smith"}), nil)

	found, err := svc.GetEmployee(context.Background(), GetEmployeeInput{ID: " e1 "})
	if err != nil {
		t.Fatalf("GetEmployee returned error: %v", err)
	}
	if found.FullName() != "James Smith" {
		t.Fatalf("unexpected name %q", found.FullName())
	}

	if _, err := svc.GetEmployee(context.Background(), GetEmployeeInput{ID: "  "}); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}

	if _, err := svc.GetEmployee(context.Background(), GetEmployeeInput{ID: "missing"}); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}
