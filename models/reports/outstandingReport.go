package reports

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/bizmanage_backend/config"
	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
	"github.com/shopspring/decimal"
)

type OutstandingRow struct {
	PartyName    string          `json:"party_name"`
	InvoiceCount int             `json:"invoice_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	DueAmount    decimal.Decimal `json:"due_amount"`
}

// GetPayablesReport sums unpaid and partially paid vendor invoices per vendor.
func GetPayablesReport(ctx context.Context) ([]*OutstandingRow, error) {
	return queryOutstanding(ctx, "payables_report", `
SELECT
    v.name AS party_name,
    COUNT(i.id) AS invoice_count,
    SUM(i.total_amount) AS total_amount,
    SUM(i.paid_amount) AS paid_amount,
    SUM(i.due_amount) AS due_amount
FROM invoices i
JOIN vendors v ON v.id = i.vendor_id
WHERE i.org_id = @orgId
  AND i.invoice_type = 'VENDOR'
  AND i.payment_status IN ('UNPAID', 'PARTIAL')
GROUP BY v.name
ORDER BY due_amount DESC;
`)
}

// GetReceivablesReport sums outstanding customer invoices per customer.
func GetReceivablesReport(ctx context.Context) ([]*OutstandingRow, error) {
	return queryOutstanding(ctx, "receivables_report", `
SELECT
    c.name AS party_name,
    COUNT(i.id) AS invoice_count,
    SUM(i.total_amount) AS total_amount,
    SUM(i.paid_amount) AS paid_amount,
    SUM(i.due_amount) AS due_amount
FROM invoices i
JOIN customers c ON c.id = i.customer_id
WHERE i.org_id = @orgId
  AND i.invoice_type = 'CUSTOMER'
  AND i.payment_status IN ('UNPAID', 'PARTIAL')
GROUP BY c.name
ORDER BY due_amount DESC;
`)
}

func queryOutstanding(ctx context.Context, name string, sql string) ([]*OutstandingRow, error) {
	start := time.Now()
	defer logSlowReport(ctx, name, start, nil)

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	var results []*OutstandingRow
	db := config.GetDB()
	err := db.WithContext(ctx).Raw(sql, map[string]interface{}{"orgId": orgId}).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
