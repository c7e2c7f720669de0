package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/transaction-review/internal/core/employee"
	pgdb "github.com/ogurasousui/transaction-review/internal/platform/db/postgres"
)

const (
	listEmployeesQuery = `
        SELECT id, first_name, last_name
          FROM employees
         ORDER BY created_at, id
    `
	findEmployeeByIDQuery = `
        SELECT id, first_name, last_name
          FROM employees
         WHERE id = $1
         LIMIT 1
    `
)

// EmployeeRepository は PostgreSQL を利用した社員名簿の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// List は社員を登録順に返します。
func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, listEmployeesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// FindByID は ID で社員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	return scanEmployee(exec.QueryRow(ctx, findEmployeeByIDQuery, id))
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var emp employee.Employee
	if err := row.Scan(&emp.ID, &emp.FirstName, &emp.LastName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}
