package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPaymentStatusFor(t *testing.T) {
	cases := []struct {
		paid, total int64
		want        PaymentStatus
	}{
		{0, 118, PaymentStatusUnpaid},
		{50, 118, PaymentStatusPartial},
		{118, 118, PaymentStatusPaid},
		{0, 0, PaymentStatusUnpaid},
	}
	for _, c := range cases {
		got := paymentStatusFor(decimal.NewFromInt(c.paid), decimal.NewFromInt(c.total))
		if got != c.want {
			t.Errorf("paymentStatusFor(%d, %d) = %s; want %s", c.paid, c.total, got, c.want)
		}
	}
}

func TestAccountDelta(t *testing.T) {
	applied := decimal.NewFromInt(75)
	if got := accountDelta(PaymentDirectionIn, applied); got.Cmp(applied) != 0 {
		t.Errorf("IN delta = %s; want %s", got, applied)
	}
	if got := accountDelta(PaymentDirectionOut, applied); got.Cmp(applied.Neg()) != 0 {
		t.Errorf("OUT delta = %s; want %s", got, applied.Neg())
	}
}

func TestDocumentPrefix(t *testing.T) {
	cases := []struct {
		docType DocumentType
		want    string
	}{
		{DocumentTypeVendorOrder, "PO"},
		{DocumentTypeCustomerOrder, "SO"},
		{DocumentTypeTransferOrder, "TO"},
		{DocumentTypeVendorInvoice, "BIL"},
		{DocumentTypeCustomerInvoice, "INV"},
		{DocumentTypeFinanceInvoice, "FIN"},
		{DocumentType("BOGUS"), "DOC"},
	}
	for _, c := range cases {
		if got := documentPrefix(c.docType); got != c.want {
			t.Errorf("documentPrefix(%s) = %s; want %s", c.docType, got, c.want)
		}
	}
}

func TestVendorOrderBuildDetails(t *testing.T) {
	input := &NewVendorOrder{
		Details: []NewVendorOrderDetail{
			{MaterialId: 1, Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(5)},
			{MaterialId: 2, Quantity: decimal.NewFromInt(3), Rate: decimal.RequireFromString("2.5")},
		},
	}
	details, total := input.buildDetails()
	if len(details) != 2 {
		t.Fatalf("expected 2 details; got %d", len(details))
	}
	if details[0].Amount.Cmp(decimal.NewFromInt(50)) != 0 {
		t.Errorf("line 1 amount = %s; want 50", details[0].Amount)
	}
	if details[1].Amount.Cmp(decimal.RequireFromString("7.5")) != 0 {
		t.Errorf("line 2 amount = %s; want 7.5", details[1].Amount)
	}
	if total.Cmp(decimal.RequireFromString("57.5")) != 0 {
		t.Errorf("total = %s; want 57.5", total)
	}
}

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{1, 20, 1, 20},
		{0, 0, 1, DefaultPageLimit},
		{-3, -1, 1, DefaultPageLimit},
		{2, 500, 2, MaxPageLimit},
	}
	for _, c := range cases {
		p, l := NormalizePage(c.page, c.limit)
		if p != c.wantPage || l != c.wantLimit {
			t.Errorf("NormalizePage(%d, %d) = (%d, %d); want (%d, %d)",
				c.page, c.limit, p, l, c.wantPage, c.wantLimit)
		}
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(45, 2, 20)
	if p.TotalPages != 3 {
		t.Errorf("TotalPages = %d; want 3", p.TotalPages)
	}
	p = NewPagination(40, 1, 20)
	if p.TotalPages != 2 {
		t.Errorf("TotalPages = %d; want 2", p.TotalPages)
	}
}

func TestStatusEnumsValidate(t *testing.T) {
	if !VendorOrderStatusPending.Valid() || VendorOrderStatus("DRAFT").Valid() {
		t.Error("vendor order status validation broken")
	}
	if !CustomerOrderStatusDelivered.Valid() || CustomerOrderStatus("SHIPPED").Valid() {
		t.Error("customer order status validation broken")
	}
	if !PaymentDirectionIn.Valid() || PaymentDirection("SIDEWAYS").Valid() {
		t.Error("payment direction validation broken")
	}
	if !AccountTypeBank.Valid() || AccountType("CRYPTO").Valid() {
		t.Error("account type validation broken")
	}
	if !InvoiceTypeFinance.Valid() || InvoiceType("PROFORMA").Valid() {
		t.Error("invoice type validation broken")
	}
	if !PaymentStatusPartial.Valid() || PaymentStatus("OVERDUE").Valid() {
		t.Error("payment status validation broken")
	}
}
