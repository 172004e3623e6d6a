package model

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// approvedLimitUnit is the granularity the approved limit is rounded to.
const approvedLimitUnit = 100_000

// Customer is the borrower aggregate. Mutations return a new copy.
type Customer struct {
	id            int64
	firstName     string
	lastName      string
	age           int
	phoneNumber   string
	monthlySalary int64
	approvedLimit int64
	currentDebt   decimal.Decimal
	createdAt     time.Time
}

// ApprovedLimitFor derives the maximum aggregate exposure for a salary:
// 36x the monthly income, rounded to the nearest 100,000.
func ApprovedLimitFor(monthlySalary int64) int64 {
	return int64(math.Round(float64(36*monthlySalary)/approvedLimitUnit)) * approvedLimitUnit
}

// NewCustomer creates a customer with a derived approved limit. The id is
// assigned by the repository on insert.
func NewCustomer(firstName, lastName string, age int, phoneNumber string, monthlySalary int64, now time.Time) (Customer, error) {
	if firstName == "" && lastName == "" {
		return Customer{}, errors.New("customer name is required")
	}
	if monthlySalary <= 0 {
		return Customer{}, errors.New("monthly salary must be positive")
	}

	return Customer{
		firstName:     firstName,
		lastName:      lastName,
		age:           age,
		phoneNumber:   phoneNumber,
		monthlySalary: monthlySalary,
		approvedLimit: ApprovedLimitFor(monthlySalary),
		currentDebt:   decimal.Zero,
		createdAt:     now,
	}, nil
}

// ReconstructCustomer rebuilds a customer from persistence without side-effects.
func ReconstructCustomer(
	id int64,
	firstName, lastName string,
	age int,
	phoneNumber string,
	monthlySalary, approvedLimit int64,
	currentDebt decimal.Decimal,
	createdAt time.Time,
) Customer {
	return Customer{
		id:            id,
		firstName:     firstName,
		lastName:      lastName,
		age:           age,
		phoneNumber:   phoneNumber,
		monthlySalary: monthlySalary,
		approvedLimit: approvedLimit,
		currentDebt:   currentDebt,
		createdAt:     createdAt,
	}
}

// WithID returns a copy carrying the repository-assigned id.
func (c Customer) WithID(id int64) Customer {
	next := c
	next.id = id
	return next
}

// AddDebt returns a copy with the cumulative originated principal increased.
// current_debt is monotonically non-decreasing; repayments never reduce it.
func (c Customer) AddDebt(amount decimal.Decimal) Customer {
	next := c
	next.currentDebt = c.currentDebt.Add(amount)
	return next
}

func (c Customer) ID() int64                    { return c.id }
func (c Customer) FirstName() string            { return c.firstName }
func (c Customer) LastName() string             { return c.lastName }
func (c Customer) FullName() string             { return c.firstName + " " + c.lastName }
func (c Customer) Age() int                     { return c.age }
func (c Customer) PhoneNumber() string          { return c.phoneNumber }
func (c Customer) MonthlySalary() int64         { return c.monthlySalary }
func (c Customer) ApprovedLimit() int64         { return c.approvedLimit }
func (c Customer) CurrentDebt() decimal.Decimal { return c.currentDebt }
func (c Customer) CreatedAt() time.Time         { return c.createdAt }
