package models_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"bitbucket.org/mmdatafocus/bizmanage_backend/models"
	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
	"github.com/shopspring/decimal"
)

func makeAccount(t *testing.T, ctx context.Context, name string, opening int64) *models.Account {
	t.Helper()
	acc, err := models.CreateAccount(ctx, &models.NewAccount{
		Name:           name,
		AccountType:    models.AccountTypeCash,
		OpeningBalance: decimal.NewFromInt(opening),
	})
	if err != nil {
		t.Fatalf("CreateAccount(%s): %v", name, err)
	}
	return acc
}

func makeCustomerInvoice(t *testing.T, ctx context.Context, customerId int, amount, tax int64) *models.Invoice {
	t.Helper()
	inv, err := models.CreateInvoice(ctx, &models.NewInvoice{
		InvoiceType: models.InvoiceTypeCustomer,
		CustomerId:  customerId,
		Amount:      decimal.NewFromInt(amount),
		Tax:         decimal.NewFromInt(tax),
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	return inv
}

func requireInvoiceState(t *testing.T, ctx context.Context, invoiceId int, paid, due int64, status models.PaymentStatus) {
	t.Helper()
	inv, err := models.GetInvoice(ctx, invoiceId)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if inv.PaidAmount.Cmp(decimal.NewFromInt(paid)) != 0 ||
		inv.DueAmount.Cmp(decimal.NewFromInt(due)) != 0 ||
		inv.PaymentStatus != status {
		t.Fatalf("invoice mismatch: want paid=%d due=%d status=%s; got paid=%s due=%s status=%s",
			paid, due, status, inv.PaidAmount, inv.DueAmount, inv.PaymentStatus)
	}
}

func requireAccountBalance(t *testing.T, ctx context.Context, accountId int, balance int64) {
	t.Helper()
	acc, err := models.GetAccount(ctx, accountId)
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if acc.CurrentBalance.Cmp(decimal.NewFromInt(balance)) != 0 {
		t.Fatalf("account balance mismatch: want %d; got %s", balance, acc.CurrentBalance)
	}
}

func TestInvoicePaymentReconciliation(t *testing.T) {
	ctx := setupIntegration(t)

	customer := makeCustomer(t, ctx, "Golden Hardware")
	acc := makeAccount(t, ctx, "Till", 0)

	// 100 + 18 tax.
	inv := makeCustomerInvoice(t, ctx, customer.ID, 100, 18)
	if !strings.HasPrefix(inv.InvoiceNumber, "INV-") {
		t.Fatalf("expected generated INV number; got %s", inv.InvoiceNumber)
	}
	requireInvoiceState(t, ctx, inv.ID, 0, 118, models.PaymentStatusUnpaid)

	// Partial payment of 50.
	p1, err := models.CreatePayment(ctx, &models.NewPayment{
		AccountId: acc.ID,
		InvoiceId: inv.ID,
		Direction: models.PaymentDirectionIn,
		Amount:    decimal.NewFromInt(50),
		Mode:      models.PaymentModeCash,
	})
	if err != nil {
		t.Fatalf("CreatePayment(50): %v", err)
	}
	if p1.AppliedAmount.Cmp(decimal.NewFromInt(50)) != 0 {
		t.Fatalf("expected applied 50; got %s", p1.AppliedAmount)
	}
	requireInvoiceState(t, ctx, inv.ID, 50, 68, models.PaymentStatusPartial)
	requireAccountBalance(t, ctx, acc.ID, 50)

	// 100 against a 68 due: applied amount clamps to the open balance.
	p2, err := models.CreatePayment(ctx, &models.NewPayment{
		AccountId: acc.ID,
		InvoiceId: inv.ID,
		Direction: models.PaymentDirectionIn,
		Amount:    decimal.NewFromInt(100),
		Mode:      models.PaymentModeCash,
	})
	if err != nil {
		t.Fatalf("CreatePayment(100): %v", err)
	}
	if p2.AppliedAmount.Cmp(decimal.NewFromInt(68)) != 0 {
		t.Fatalf("expected applied clamped to 68; got %s", p2.AppliedAmount)
	}
	requireInvoiceState(t, ctx, inv.ID, 118, 0, models.PaymentStatusPaid)
	requireAccountBalance(t, ctx, acc.ID, 118)
}

func TestPaymentUpdateAppliesTheDelta(t *testing.T) {
	ctx := setupIntegration(t)

	customer := makeCustomer(t, ctx, "Golden Hardware")
	acc := makeAccount(t, ctx, "Till", 0)
	inv := makeCustomerInvoice(t, ctx, customer.ID, 100, 0)

	p, err := models.CreatePayment(ctx, &models.NewPayment{
		AccountId: acc.ID,
		InvoiceId: inv.ID,
		Direction: models.PaymentDirectionIn,
		Amount:    decimal.NewFromInt(40),
		Mode:      models.PaymentModeCash,
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}
	requireInvoiceState(t, ctx, inv.ID, 40, 60, models.PaymentStatusPartial)

	// Amend 40 -> 70. The net effect is the +30 difference, not a second
	// payment stacked on top.
	updated, err := models.UpdatePayment(ctx, p.ID, &models.NewPayment{
		AccountId: acc.ID,
		InvoiceId: inv.ID,
		Direction: models.PaymentDirectionIn,
		Amount:    decimal.NewFromInt(70),
		Mode:      models.PaymentModeCash,
	})
	if err != nil {
		t.Fatalf("UpdatePayment: %v", err)
	}
	if updated.AppliedAmount.Cmp(decimal.NewFromInt(70)) != 0 {
		t.Fatalf("expected applied 70; got %s", updated.AppliedAmount)
	}
	requireInvoiceState(t, ctx, inv.ID, 70, 30, models.PaymentStatusPartial)
	requireAccountBalance(t, ctx, acc.ID, 70)

	// Deleting the payment reverses it and soft-deletes the row.
	if _, err := models.DeletePayment(ctx, p.ID); err != nil {
		t.Fatalf("DeletePayment: %v", err)
	}
	requireInvoiceState(t, ctx, inv.ID, 0, 100, models.PaymentStatusUnpaid)
	requireAccountBalance(t, ctx, acc.ID, 0)
	if _, err := models.GetPayment(ctx, p.ID); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected deleted payment to be hidden; got %v", err)
	}
}

func TestInvoiceLockedOncePaid(t *testing.T) {
	ctx := setupIntegration(t)

	customer := makeCustomer(t, ctx, "Golden Hardware")
	acc := makeAccount(t, ctx, "Till", 0)
	inv := makeCustomerInvoice(t, ctx, customer.ID, 100, 0)

	// Before any payment the invoice is freely editable.
	if _, err := models.UpdateInvoice(ctx, inv.ID, &models.NewInvoice{
		InvoiceType: models.InvoiceTypeCustomer,
		CustomerId:  customer.ID,
		Amount:      decimal.NewFromInt(120),
	}); err != nil {
		t.Fatalf("UpdateInvoice(before payment): %v", err)
	}
	requireInvoiceState(t, ctx, inv.ID, 0, 120, models.PaymentStatusUnpaid)

	p, err := models.CreatePayment(ctx, &models.NewPayment{
		AccountId: acc.ID,
		InvoiceId: inv.ID,
		Direction: models.PaymentDirectionIn,
		Amount:    decimal.NewFromInt(20),
		Mode:      models.PaymentModeCash,
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	// With money applied, edit and delete are both refused.
	if _, err := models.UpdateInvoice(ctx, inv.ID, &models.NewInvoice{
		InvoiceType: models.InvoiceTypeCustomer,
		CustomerId:  customer.ID,
		Amount:      decimal.NewFromInt(150),
	}); !utils.IsStateError(err) {
		t.Fatalf("expected state error updating paid invoice; got %v", err)
	}
	if _, err := models.DeleteInvoice(ctx, inv.ID); !utils.IsStateError(err) {
		t.Fatalf("expected state error deleting paid invoice; got %v", err)
	}

	// Removing the payment unlocks the invoice again.
	if _, err := models.DeletePayment(ctx, p.ID); err != nil {
		t.Fatalf("DeletePayment: %v", err)
	}
	if _, err := models.DeleteInvoice(ctx, inv.ID); err != nil {
		t.Fatalf("DeleteInvoice(after reversal): %v", err)
	}
}

func TestConcurrentPaymentDeleteReversesOnce(t *testing.T) {
	ctx := setupIntegration(t)

	customer := makeCustomer(t, ctx, "Golden Hardware")
	acc := makeAccount(t, ctx, "Till", 0)
	inv := makeCustomerInvoice(t, ctx, customer.ID, 100, 0)

	p, err := models.CreatePayment(ctx, &models.NewPayment{
		AccountId: acc.ID,
		InvoiceId: inv.ID,
		Direction: models.PaymentDirectionIn,
		Amount:    decimal.NewFromInt(60),
		Mode:      models.PaymentModeCash,
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	// Two racing deletes: the loser must see the row already gone, not
	// reverse the same applied amount a second time.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = models.DeletePayment(ctx, p.ID)
		}(i)
	}
	wg.Wait()

	var okCount, missCount int
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, utils.ErrorRecordNotFound):
			missCount++
		default:
			t.Fatalf("unexpected delete error: %v", err)
		}
	}
	if okCount != 1 || missCount != 1 {
		t.Fatalf("expected exactly one delete to win; ok=%d miss=%d", okCount, missCount)
	}
	requireInvoiceState(t, ctx, inv.ID, 0, 100, models.PaymentStatusUnpaid)
	requireAccountBalance(t, ctx, acc.ID, 0)
}

func TestAccountWithBalanceCannotBeDeleted(t *testing.T) {
	ctx := setupIntegration(t)

	// A non-zero opening balance blocks deletion even with no payments.
	funded := makeAccount(t, ctx, "Vault", 250)
	if _, err := models.DeleteAccount(ctx, funded.ID); !utils.IsStateError(err) {
		t.Fatalf("expected state error deleting funded account; got %v", err)
	}

	empty := makeAccount(t, ctx, "Petty Cash", 0)
	if _, err := models.DeleteAccount(ctx, empty.ID); err != nil {
		t.Fatalf("DeleteAccount(empty): %v", err)
	}
	if _, err := models.GetAccount(ctx, empty.ID); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected deleted account to be hidden; got %v", err)
	}
}

func TestOutgoingPaymentDebitsTheAccount(t *testing.T) {
	ctx := setupIntegration(t)

	vendor := makeVendor(t, ctx, "ACME Supplies")
	acc := makeAccount(t, ctx, "Operating", 500)

	inv, err := models.CreateInvoice(ctx, &models.NewInvoice{
		InvoiceType: models.InvoiceTypeVendor,
		VendorId:    vendor.ID,
		Amount:      decimal.NewFromInt(200),
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	if !strings.HasPrefix(inv.InvoiceNumber, "BIL-") {
		t.Fatalf("expected BIL number for vendor invoice; got %s", inv.InvoiceNumber)
	}

	if _, err := models.CreatePayment(ctx, &models.NewPayment{
		AccountId: acc.ID,
		InvoiceId: inv.ID,
		Direction: models.PaymentDirectionOut,
		Amount:    decimal.NewFromInt(200),
		Mode:      models.PaymentModeBank,
	}); err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}
	requireInvoiceState(t, ctx, inv.ID, 200, 0, models.PaymentStatusPaid)
	requireAccountBalance(t, ctx, acc.ID, 300)
}
