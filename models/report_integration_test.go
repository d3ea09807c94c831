package models_test

import (
	"testing"

	"bitbucket.org/mmdatafocus/bizmanage_backend/models"
	"bitbucket.org/mmdatafocus/bizmanage_backend/models/reports"
	"github.com/shopspring/decimal"
)

func TestStockReportReflectsLedger(t *testing.T) {
	ctx := setupIntegration(t)

	wh := makeWarehouse(t, ctx, "Main Warehouse")
	mat := makeMaterial(t, ctx, "Steel Rod")

	seedStock(t, ctx, wh.ID, mat.ID, 15)
	if _, err := models.ReserveStock(ctx, &models.StockAdjustmentInput{
		WarehouseId: wh.ID,
		MaterialId:  mat.ID,
		Quantity:    decimal.NewFromInt(5),
	}); err != nil {
		t.Fatalf("ReserveStock: %v", err)
	}

	rows, err := reports.GetStockReport(ctx, &wh.ID)
	if err != nil {
		t.Fatalf("GetStockReport: %v", err)
	}
	var row *reports.StockReportRow
	for _, r := range rows {
		if r.MaterialName == "Steel Rod" && r.WarehouseName == "Main Warehouse" {
			row = r
		}
	}
	if row == nil {
		t.Fatalf("expected a report row for the stocked material")
	}
	if row.AvailableQty.Cmp(decimal.NewFromInt(10)) != 0 ||
		row.ReservedQty.Cmp(decimal.NewFromInt(5)) != 0 ||
		row.OnHandQty.Cmp(decimal.NewFromInt(15)) != 0 {
		t.Fatalf("report row mismatch: %+v", row)
	}
}

func TestReceivablesReportAggregatesOpenInvoices(t *testing.T) {
	ctx := setupIntegration(t)

	customer := makeCustomer(t, ctx, "Golden Hardware")
	acc := makeAccount(t, ctx, "Till", 0)

	invA := makeCustomerInvoice(t, ctx, customer.ID, 100, 0)
	makeCustomerInvoice(t, ctx, customer.ID, 60, 0)

	// 40 against the first invoice, the second stays open.
	if _, err := models.CreatePayment(ctx, &models.NewPayment{
		AccountId: acc.ID,
		InvoiceId: invA.ID,
		Direction: models.PaymentDirectionIn,
		Amount:    decimal.NewFromInt(40),
		Mode:      models.PaymentModeCash,
	}); err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	rows, err := reports.GetReceivablesReport(ctx)
	if err != nil {
		t.Fatalf("GetReceivablesReport: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one customer row; got %d", len(rows))
	}
	row := rows[0]
	if row.PartyName != "Golden Hardware" || row.InvoiceCount != 2 {
		t.Fatalf("unexpected row: %+v", row)
	}
	if row.DueAmount.Cmp(decimal.NewFromInt(120)) != 0 {
		t.Fatalf("expected due 120; got %s", row.DueAmount)
	}
}

func TestStockReportExcelExport(t *testing.T) {
	ctx := setupIntegration(t)

	wh := makeWarehouse(t, ctx, "Main Warehouse")
	mat := makeMaterial(t, ctx, "Steel Rod")
	seedStock(t, ctx, wh.ID, mat.ID, 15)

	f, err := reports.BuildStockReportExcel(ctx, nil)
	if err != nil {
		t.Fatalf("BuildStockReportExcel: %v", err)
	}
	defer f.Close()

	name, err := f.GetCellValue("Sheet1", "A2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if name != "Steel Rod" {
		t.Fatalf("expected first data row to carry the material name; got %q", name)
	}
}
