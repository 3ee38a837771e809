package pgsql

import (
	"context"

	"github.com/SscSPs/project_books/internal/core/domain"
	portsrepo "github.com/SscSPs/project_books/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxEmployeeRepository struct {
	BaseRepository
}

var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

const (
	employeeColumns      = `employee_id, project_id, name, base_salary, contract_type, hire_date, is_active, notes, created_at, last_updated_at`
	salaryPaymentColumns = `payment_id, employee_id, payment_date, base_salary, deductions, bonus, commission, net_salary, expense_transaction_id, notes, created_at`
)

func scanEmployee(row rowScanner) (domain.Employee, error) {
	var e domain.Employee
	err := row.Scan(&e.EmployeeID, &e.ProjectID, &e.Name, &e.BaseSalary, &e.ContractType, &e.HireDate,
		&e.IsActive, &e.Notes, &e.CreatedAt, &e.LastUpdatedAt)
	return e, err
}

func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	query := `INSERT INTO employees (` + employeeColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db(ctx).Exec(ctx, query,
		employee.EmployeeID, employee.ProjectID, employee.Name, employee.BaseSalary, employee.ContractType,
		employee.HireDate, employee.IsActive, employee.Notes, employee.CreatedAt, employee.LastUpdatedAt)
	if err != nil {
		return writeError("failed to save employee "+employee.EmployeeID, err)
	}
	return nil
}

func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	e, err := scanEmployee(r.db(ctx).QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE employee_id = $1`, employeeID))
	if err != nil {
		return nil, readError("employee "+employeeID, err)
	}
	return &e, nil
}

func (r *PgxEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	query := `
		UPDATE employees
		SET name = $2, base_salary = $3, contract_type = $4, hire_date = $5, is_active = $6, notes = $7, last_updated_at = $8
		WHERE employee_id = $1`
	tag, err := r.db(ctx).Exec(ctx, query,
		employee.EmployeeID, employee.Name, employee.BaseSalary, employee.ContractType, employee.HireDate,
		employee.IsActive, employee.Notes, employee.LastUpdatedAt)
	if err != nil {
		return writeError("failed to update employee "+employee.EmployeeID, err)
	}
	return requireRow(tag, "employee", employee.EmployeeID)
}

func (r *PgxEmployeeRepository) ListEmployees(ctx context.Context, projectID string, activeOnly bool) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE project_id = $1 AND ($2 = FALSE OR is_active) ORDER BY name, employee_id`
	rows, err := r.db(ctx).Query(ctx, query, projectID, activeOnly)
	if err != nil {
		return nil, readError("failed to list employees", err)
	}
	employees, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Employee, error) {
		return scanEmployee(row)
	})
	if err != nil {
		return nil, readError("failed to scan employees", err)
	}
	return employees, nil
}

func (r *PgxEmployeeRepository) SaveSalaryPayment(ctx context.Context, payment domain.SalaryPayment) error {
	query := `INSERT INTO salary_payments (` + salaryPaymentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db(ctx).Exec(ctx, query,
		payment.PaymentID, payment.EmployeeID, payment.PaymentDate, payment.BaseSalary, payment.Deductions,
		payment.Bonus, payment.Commission, payment.NetSalary, payment.ExpenseTransactionID, payment.Notes, payment.CreatedAt)
	if err != nil {
		return writeError("failed to save salary payment "+payment.PaymentID, err)
	}
	return nil
}

func (r *PgxEmployeeRepository) ListSalaryPayments(ctx context.Context, employeeID string) ([]domain.SalaryPayment, error) {
	query := `SELECT ` + salaryPaymentColumns + ` FROM salary_payments WHERE employee_id = $1 ORDER BY payment_date DESC, created_at DESC`
	rows, err := r.db(ctx).Query(ctx, query, employeeID)
	if err != nil {
		return nil, readError("failed to list salary payments", err)
	}
	payments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SalaryPayment, error) {
		var p domain.SalaryPayment
		err := row.Scan(&p.PaymentID, &p.EmployeeID, &p.PaymentDate, &p.BaseSalary, &p.Deductions,
			&p.Bonus, &p.Commission, &p.NetSalary, &p.ExpenseTransactionID, &p.Notes, &p.CreatedAt)
		return p, err
	})
	if err != nil {
		return nil, readError("failed to scan salary payments", err)
	}
	return payments, nil
}
