package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/lumenbank/credit-approval/internal/domain/model"
	"github.com/lumenbank/credit-approval/internal/domain/port"
)

// CustomerRepo implements port.CustomerRepository.
type CustomerRepo struct {
	pool *pgxpool.Pool
}

// NewCustomerRepo creates a new PostgreSQL-backed customer repository.
func NewCustomerRepo(pool *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{pool: pool}
}

// Create inserts a customer and returns it with the assigned id.
func (r *CustomerRepo) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	query := `
		INSERT INTO customers (first_name, last_name, age, phone_number,
		                       monthly_salary, approved_limit, current_debt, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var id int64
	err := r.pool.QueryRow(ctx, query,
		c.FirstName(), c.LastName(), c.Age(), c.PhoneNumber(),
		c.MonthlySalary(), c.ApprovedLimit(), c.CurrentDebt(), c.CreatedAt(),
	).Scan(&id)
	if err != nil {
		return model.Customer{}, fmt.Errorf("insert customer: %w", err)
	}
	return c.WithID(id), nil
}

// FindByID retrieves a customer by id.
func (r *CustomerRepo) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	query := `
		SELECT id, first_name, last_name, age, phone_number,
		       monthly_salary, approved_limit, current_debt, created_at
		FROM customers
		WHERE id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// UpdateDebt sets the customer's cumulative originated principal.
func (r *CustomerRepo) UpdateDebt(ctx context.Context, id int64, newDebt decimal.Decimal) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE customers SET current_debt = $2 WHERE id = $1`, id, newDebt)
	if err != nil {
		return fmt.Errorf("update customer debt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrCustomerNotFound
	}
	return nil
}

// UpsertByPhone merges a customer record keyed by phone number. The current
// debt of an existing record is left untouched; only profile fields and the
// derived limit are refreshed.
func (r *CustomerRepo) UpsertByPhone(ctx context.Context, c model.Customer) (model.Customer, error) {
	query := `
		INSERT INTO customers (first_name, last_name, age, phone_number,
		                       monthly_salary, approved_limit, current_debt, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (phone_number) DO UPDATE SET
			first_name     = EXCLUDED.first_name,
			last_name      = EXCLUDED.last_name,
			age            = EXCLUDED.age,
			monthly_salary = EXCLUDED.monthly_salary,
			approved_limit = EXCLUDED.approved_limit
		RETURNING id, first_name, last_name, age, phone_number,
		          monthly_salary, approved_limit, current_debt, created_at
	`
	row := r.pool.QueryRow(ctx, query,
		c.FirstName(), c.LastName(), c.Age(), c.PhoneNumber(),
		c.MonthlySalary(), c.ApprovedLimit(), c.CurrentDebt(), c.CreatedAt(),
	)
	return r.scanOne(row)
}

func (r *CustomerRepo) scanOne(row pgx.Row) (model.Customer, error) {
	var (
		id                           int64
		firstName, lastName, phone   string
		age                          int
		monthlySalary, approvedLimit int64
		currentDebt                  decimal.Decimal
		createdAt                    time.Time
	)
	err := row.Scan(&id, &firstName, &lastName, &age, &phone,
		&monthlySalary, &approvedLimit, &currentDebt, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Customer{}, port.ErrCustomerNotFound
	}
	if err != nil {
		return model.Customer{}, fmt.Errorf("scan customer: %w", err)
	}
	return model.ReconstructCustomer(id, firstName, lastName, age, phone,
		monthlySalary, approvedLimit, currentDebt, createdAt), nil
}
