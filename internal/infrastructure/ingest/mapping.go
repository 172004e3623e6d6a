package ingest

import (
	"strings"
	"time"
)

// Column mappings are declared up front: each logical field lists the header
// spellings it accepts. Anything the tables do not cover is not read.
var customerColumns = map[string][]string{
	"first_name":     {"First Name", "first_name"},
	"last_name":      {"Last Name", "last_name"},
	"age":            {"Age", "age"},
	"phone_number":   {"Phone Number", "phone_number"},
	"monthly_salary": {"Monthly Salary", "monthly_salary"},
}

var loanColumns = map[string][]string{
	"customer_id":       {"Customer ID", "customer id", "customer_id"},
	"loan_id":           {"Loan ID", "loan_id"},
	"loan_amount":       {"Loan Amount", "loan_amount"},
	"tenure":            {"Tenure", "tenure"},
	"interest_rate":     {"Interest Rate", "interest_rate"},
	"monthly_payment":   {"Monthly payment", "Monthly Payment", "monthly_payment"},
	"emis_paid_on_time": {"EMIs paid on Time", "emis_paid_on_time"},
	"start_date":        {"Date of Approval", "start date", "start_date"},
	"end_date":          {"End Date", "end date", "end_date"},
}

// dateLayouts are the date spellings accepted from workbook cells. excelize
// returns formatted cell text, so both ISO and spreadsheet-style layouts
// appear in practice.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/06",
	"01/02/2006",
	"1/2/2006",
	"2/1/2006",
	time.RFC3339,
}

// columnIndex resolves logical field names to column positions for one header
// row. Fields whose header is absent are simply missing from the result.
func columnIndex(header []string, columns map[string][]string) map[string]int {
	index := make(map[string]int, len(columns))
	for i, cell := range header {
		name := strings.TrimSpace(cell)
		for field, variants := range columns {
			if _, done := index[field]; done {
				continue
			}
			for _, v := range variants {
				if strings.EqualFold(name, v) {
					index[field] = i
					break
				}
			}
		}
	}
	return index
}

// cellAt returns the trimmed cell value for a resolved field, or "" when the
// column is absent or the row is short.
func cellAt(row []string, index map[string]int, field string) string {
	i, ok := index[field]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseDate tries the declared layouts in order; a zero time means the cell
// held no parseable date.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
