package usecase_test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/lumenbank/credit-approval/internal/domain/event"
	"github.com/lumenbank/credit-approval/internal/domain/model"
	"github.com/lumenbank/credit-approval/internal/domain/port"
)

type mockCustomerRepo struct {
	findByIDFunc func(id int64) (model.Customer, error)
	createFunc   func(c model.Customer) (model.Customer, error)

	created     []model.Customer
	debtUpdates []decimal.Decimal
	upserts     []model.Customer
}

func (m *mockCustomerRepo) Create(_ context.Context, c model.Customer) (model.Customer, error) {
	m.created = append(m.created, c)
	if m.createFunc != nil {
		return m.createFunc(c)
	}
	return c.WithID(int64(len(m.created))), nil
}

func (m *mockCustomerRepo) FindByID(_ context.Context, id int64) (model.Customer, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(id)
	}
	return model.Customer{}, port.ErrCustomerNotFound
}

func (m *mockCustomerRepo) UpdateDebt(_ context.Context, _ int64, newDebt decimal.Decimal) error {
	m.debtUpdates = append(m.debtUpdates, newDebt)
	return nil
}

func (m *mockCustomerRepo) UpsertByPhone(_ context.Context, c model.Customer) (model.Customer, error) {
	m.upserts = append(m.upserts, c)
	return c.WithID(int64(len(m.upserts))), nil
}

type mockLoanRepo struct {
	history        []model.Loan
	historyErr     error
	findByIDFunc   func(id int64) (model.Loan, error)
	createFunc     func(l model.Loan) (model.Loan, error)

	created []model.Loan
	upserts []model.Loan
}

func (m *mockLoanRepo) Create(_ context.Context, l model.Loan) (model.Loan, error) {
	m.created = append(m.created, l)
	if m.createFunc != nil {
		return m.createFunc(l)
	}
	return l.WithID(int64(100 + len(m.created))), nil
}

func (m *mockLoanRepo) FindByID(_ context.Context, id int64) (model.Loan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(id)
	}
	return model.Loan{}, port.ErrLoanNotFound
}

func (m *mockLoanRepo) FindByCustomerID(_ context.Context, _ int64) ([]model.Loan, error) {
	return m.history, m.historyErr
}

func (m *mockLoanRepo) UpsertExternal(_ context.Context, l model.Loan) (model.Loan, error) {
	m.upserts = append(m.upserts, l)
	return l.WithID(int64(200 + len(m.upserts))), nil
}

type mockPublisher struct {
	events     []event.DomainEvent
	publishErr error
}

func (m *mockPublisher) Publish(_ context.Context, events ...event.DomainEvent) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.events = append(m.events, events...)
	return nil
}
