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

const loanColumns = `
	id, customer_id, external_loan_id, loan_amount, tenure, interest_rate,
	monthly_payment, emis_paid_on_time, start_date, end_date,
	loan_approved, repayments_left, created_at
`

// LoanRepo implements port.LoanRepository.
type LoanRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRepo creates a new PostgreSQL-backed loan repository.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

// Create inserts a loan and returns it with the assigned id.
func (r *LoanRepo) Create(ctx context.Context, l model.Loan) (model.Loan, error) {
	query := `
		INSERT INTO loans (customer_id, external_loan_id, loan_amount, tenure,
		                   interest_rate, monthly_payment, emis_paid_on_time,
		                   start_date, end_date, loan_approved, repayments_left, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	var id int64
	err := r.pool.QueryRow(ctx, query,
		l.CustomerID(), nullString(l.ExternalLoanID()), l.Amount(), l.Tenure(),
		l.InterestRate(), l.MonthlyPayment(), l.EMIsPaidOnTime(),
		nullDate(l.StartDate()), nullDate(l.EndDate()),
		l.Approved(), l.RepaymentsLeft(), l.CreatedAt(),
	).Scan(&id)
	if err != nil {
		return model.Loan{}, fmt.Errorf("insert loan: %w", err)
	}
	return l.WithID(id), nil
}

// FindByID retrieves a loan by id.
func (r *LoanRepo) FindByID(ctx context.Context, id int64) (model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	loan, err := scanLoan(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Loan{}, port.ErrLoanNotFound
	}
	return loan, err
}

// FindByCustomerID retrieves the customer's full loan history, oldest first.
func (r *LoanRepo) FindByCustomerID(ctx context.Context, customerID int64) ([]model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE customer_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var loans []model.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loans: %w", err)
	}
	return loans, nil
}

// UpsertExternal merges a historical loan keyed by external id and customer.
func (r *LoanRepo) UpsertExternal(ctx context.Context, l model.Loan) (model.Loan, error) {
	query := `
		INSERT INTO loans (customer_id, external_loan_id, loan_amount, tenure,
		                   interest_rate, monthly_payment, emis_paid_on_time,
		                   start_date, end_date, loan_approved, repayments_left, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (customer_id, external_loan_id) WHERE external_loan_id IS NOT NULL DO UPDATE SET
			loan_amount       = EXCLUDED.loan_amount,
			tenure            = EXCLUDED.tenure,
			interest_rate     = EXCLUDED.interest_rate,
			monthly_payment   = EXCLUDED.monthly_payment,
			emis_paid_on_time = EXCLUDED.emis_paid_on_time,
			start_date        = EXCLUDED.start_date,
			end_date          = EXCLUDED.end_date,
			loan_approved     = EXCLUDED.loan_approved,
			repayments_left   = EXCLUDED.repayments_left
		RETURNING id
	`
	var id int64
	err := r.pool.QueryRow(ctx, query,
		l.CustomerID(), nullString(l.ExternalLoanID()), l.Amount(), l.Tenure(),
		l.InterestRate(), l.MonthlyPayment(), l.EMIsPaidOnTime(),
		nullDate(l.StartDate()), nullDate(l.EndDate()),
		l.Approved(), l.RepaymentsLeft(), l.CreatedAt(),
	).Scan(&id)
	if err != nil {
		return model.Loan{}, fmt.Errorf("upsert loan: %w", err)
	}
	return l.WithID(id), nil
}

func scanLoan(row pgx.Row) (model.Loan, error) {
	var (
		id, customerID     int64
		externalLoanID     *string
		amount             decimal.Decimal
		tenure             int
		interestRate       decimal.Decimal
		monthlyPayment     decimal.NullDecimal
		emisPaidOnTime     int
		startDate, endDate *time.Time
		approved           bool
		repaymentsLeft     int
		createdAt          time.Time
	)
	err := row.Scan(&id, &customerID, &externalLoanID, &amount, &tenure, &interestRate,
		&monthlyPayment, &emisPaidOnTime, &startDate, &endDate,
		&approved, &repaymentsLeft, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Loan{}, err
		}
		return model.Loan{}, fmt.Errorf("scan loan: %w", err)
	}

	// Null monthly payment loads as zero; null dates as the zero time.
	payment := decimal.Zero
	if monthlyPayment.Valid {
		payment = monthlyPayment.Decimal
	}
	return model.ReconstructLoan(
		id, customerID, derefString(externalLoanID), amount, tenure,
		interestRate, payment, emisPaidOnTime,
		derefTime(startDate), derefTime(endDate),
		approved, repaymentsLeft, createdAt,
	), nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
