package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/lumenbank/credit-approval/internal/domain/event"
	"github.com/lumenbank/credit-approval/internal/domain/model"
	"github.com/lumenbank/credit-approval/internal/domain/port"
	"github.com/lumenbank/credit-approval/pkg/observability"
)

// Ingestor merges historical customer and loan workbooks into storage. Row
// failures are counted and skipped; the batch never aborts on a bad row.
type Ingestor struct {
	customers port.CustomerRepository
	loans     port.LoanRepository
	publisher port.EventPublisher
	metrics   *observability.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

// NewIngestor wires dependencies. metrics may be nil.
func NewIngestor(
	customers port.CustomerRepository,
	loans port.LoanRepository,
	publisher port.EventPublisher,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *Ingestor {
	return &Ingestor{
		customers: customers,
		loans:     loans,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run ingests both workbooks (either may be absent) and publishes a summary
// event. The returned report is also logged.
func (i *Ingestor) Run(ctx context.Context, customerFile, loanFile string) (Report, error) {
	var report Report

	if fileExists(customerFile) {
		if err := i.ingestCustomers(ctx, customerFile, &report); err != nil {
			return report, fmt.Errorf("ingest customers: %w", err)
		}
	} else {
		i.logger.Warn("customer workbook not found, skipping", "path", customerFile)
	}

	if fileExists(loanFile) {
		if err := i.ingestLoans(ctx, loanFile, &report); err != nil {
			return report, fmt.Errorf("ingest loans: %w", err)
		}
	} else {
		i.logger.Warn("loan workbook not found, skipping", "path", loanFile)
	}

	i.logger.Info("portfolio ingestion finished",
		"customers_upserted", report.CustomersUpserted,
		"loans_upserted", report.LoansUpserted,
		"rows_skipped", report.RowsSkipped(),
		"unresolved_customers", report.UnresolvedCustomers,
		"parse_failures", report.ParseFailures,
	)

	ingested := event.NewPortfolioIngested(report.CustomersUpserted, report.LoansUpserted, report.RowsSkipped())
	if err := i.publisher.Publish(ctx, ingested); err != nil {
		// Summary event is best-effort; the data is already committed.
		i.logger.Warn("failed to publish ingestion event", "error", err)
	}

	return report, nil
}

func (i *Ingestor) ingestCustomers(ctx context.Context, path string, report *Report) error {
	rows, index, err := readSheet(path, customerColumns)
	if err != nil {
		return err
	}

	for n, row := range rows {
		phone := cellAt(row, index, "phone_number")
		salary := parseInt(cellAt(row, index, "monthly_salary"))
		if phone == "" || salary <= 0 {
			report.CustomerRowsSkipped++
			report.ParseFailures++
			i.countRow("customer", "skipped")
			i.logger.Debug("skipping customer row", "row", n+2)
			continue
		}

		customer, err := model.NewCustomer(
			cellAt(row, index, "first_name"),
			cellAt(row, index, "last_name"),
			parseInt(cellAt(row, index, "age")),
			phone,
			int64(salary),
			i.now(),
		)
		if err != nil {
			report.CustomerRowsSkipped++
			report.ParseFailures++
			i.countRow("customer", "skipped")
			continue
		}

		if _, err := i.customers.UpsertByPhone(ctx, customer); err != nil {
			report.CustomerRowsSkipped++
			i.countRow("customer", "failed")
			i.logger.Warn("customer upsert failed", "row", n+2, "error", err)
			continue
		}
		report.CustomersUpserted++
		i.countRow("customer", "upserted")
	}
	return nil
}

func (i *Ingestor) ingestLoans(ctx context.Context, path string, report *Report) error {
	rows, index, err := readSheet(path, loanColumns)
	if err != nil {
		return err
	}

	for n, row := range rows {
		customerID := parseInt(cellAt(row, index, "customer_id"))
		customer, err := i.resolveCustomer(ctx, int64(customerID))
		if err != nil {
			report.LoanRowsSkipped++
			report.UnresolvedCustomers++
			i.countRow("loan", "unresolved")
			i.logger.Debug("unresolved customer reference", "row", n+2, "customer_id", customerID)
			continue
		}

		amount, amountErr := decimal.NewFromString(cellAt(row, index, "loan_amount"))
		rate, rateErr := decimal.NewFromString(cellAt(row, index, "interest_rate"))
		tenure := parseInt(cellAt(row, index, "tenure"))
		if amountErr != nil || rateErr != nil || tenure <= 0 {
			report.LoanRowsSkipped++
			report.ParseFailures++
			i.countRow("loan", "skipped")
			continue
		}

		payment := decimal.Zero
		if p, err := decimal.NewFromString(cellAt(row, index, "monthly_payment")); err == nil {
			payment = p
		}
		emisOnTime := parseInt(cellAt(row, index, "emis_paid_on_time"))

		// Historical loans are assumed approved, with the remaining schedule
		// derived from how many EMIs were already paid on time.
		repaymentsLeft := tenure - emisOnTime
		if repaymentsLeft < 0 {
			repaymentsLeft = 0
		}

		loan := model.ReconstructLoan(
			0, customer.ID(),
			cellAt(row, index, "loan_id"),
			amount, tenure, rate, payment, emisOnTime,
			parseDate(cellAt(row, index, "start_date")),
			parseDate(cellAt(row, index, "end_date")),
			true, repaymentsLeft, i.now(),
		)

		if _, err := i.loans.UpsertExternal(ctx, loan); err != nil {
			report.LoanRowsSkipped++
			i.countRow("loan", "failed")
			i.logger.Warn("loan upsert failed", "row", n+2, "error", err)
			continue
		}
		report.LoansUpserted++
		i.countRow("loan", "upserted")
	}
	return nil
}

func (i *Ingestor) resolveCustomer(ctx context.Context, id int64) (model.Customer, error) {
	if id <= 0 {
		return model.Customer{}, port.ErrCustomerNotFound
	}
	return i.customers.FindByID(ctx, id)
}

func (i *Ingestor) countRow(entity, result string) {
	if i.metrics != nil {
		i.metrics.IngestRows.WithLabelValues(entity, result).Inc()
	}
}

// readSheet opens a workbook, reads the first sheet, and resolves its header
// row against the declared column mapping. The returned rows exclude the
// header.
func readSheet(path string, columns map[string][]string) ([][]string, map[string]int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("read workbook %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, map[string]int{}, nil
	}
	return rows[1:], columnIndex(rows[0], columns), nil
}

func parseInt(s string) int {
	if s == "" {
		return 0
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	// Spreadsheet numerics sometimes render with a decimal tail.
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return int(v)
	}
	return 0
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
