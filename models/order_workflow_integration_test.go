package models_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"bitbucket.org/mmdatafocus/bizmanage_backend/models"
	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
	"github.com/shopspring/decimal"
)

func TestVendorOrderReceiveFlow(t *testing.T) {
	ctx := setupIntegration(t)

	wh := makeWarehouse(t, ctx, "Receiving Dock")
	mat := makeMaterial(t, ctx, "Cement Bag")
	vendor := makeVendor(t, ctx, "ACME Supplies")

	po, err := models.CreateVendorOrder(ctx, &models.NewVendorOrder{
		VendorId:    vendor.ID,
		WarehouseId: wh.ID,
		Details: []models.NewVendorOrderDetail{
			{MaterialId: mat.ID, Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(5)},
		},
	})
	if err != nil {
		t.Fatalf("CreateVendorOrder: %v", err)
	}
	if po.OrderNumber != "PO-00001" {
		t.Fatalf("expected first order number PO-00001; got %s", po.OrderNumber)
	}
	if po.Status != models.VendorOrderStatusPending {
		t.Fatalf("expected PENDING; got %s", po.Status)
	}
	if po.TotalAmount.Cmp(decimal.NewFromInt(50)) != 0 {
		t.Fatalf("expected total 50; got %s", po.TotalAmount)
	}

	// Receiving a pending order is rejected.
	if _, err := models.ReceiveVendorOrder(ctx, po.ID); !utils.IsStateError(err) {
		t.Fatalf("expected state error receiving pending order; got %v", err)
	}

	if _, err := models.ApproveVendorOrder(ctx, po.ID); err != nil {
		t.Fatalf("ApproveVendorOrder: %v", err)
	}
	// Approving twice is rejected.
	if _, err := models.ApproveVendorOrder(ctx, po.ID); !utils.IsStateError(err) {
		t.Fatalf("expected state error approving approved order; got %v", err)
	}

	received, err := models.ReceiveVendorOrder(ctx, po.ID)
	if err != nil {
		t.Fatalf("ReceiveVendorOrder: %v", err)
	}
	if received.Status != models.VendorOrderStatusReceived {
		t.Fatalf("expected RECEIVED; got %s", received.Status)
	}
	requireQty(t, ctx, wh.ID, mat.ID, 10, 0)

	// The receive leaves an IN usage row pointing back at the order.
	rows, _, err := models.ListStockUsage(ctx, &models.StockUsageFilter{MaterialId: &mat.ID}, 1, 20)
	if err != nil {
		t.Fatalf("ListStockUsage: %v", err)
	}
	if len(rows) != 1 || rows[0].ReferenceType != models.StockReferenceTypeVendorOrder || rows[0].ReferenceId != po.ID {
		t.Fatalf("expected one IN usage row referencing the order; got %+v", rows)
	}

	// Received orders cannot be cancelled.
	if _, err := models.CancelVendorOrder(ctx, po.ID); !utils.IsStateError(err) {
		t.Fatalf("expected state error cancelling received order; got %v", err)
	}
}

func TestVendorOrderReceiveUsesEditedLines(t *testing.T) {
	ctx := setupIntegration(t)

	wh := makeWarehouse(t, ctx, "Main Warehouse")
	mat := makeMaterial(t, ctx, "Cement Bag")
	vendor := makeVendor(t, ctx, "ACME Supplies")

	po, err := models.CreateVendorOrder(ctx, &models.NewVendorOrder{
		VendorId:    vendor.ID,
		WarehouseId: wh.ID,
		Details: []models.NewVendorOrderDetail{
			{MaterialId: mat.ID, Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(5)},
		},
	})
	if err != nil {
		t.Fatalf("CreateVendorOrder: %v", err)
	}

	// Edit the line down to 4 while still pending; the receive reads the
	// lines inside its own transaction and must stock the edited amount.
	if _, err := models.UpdateVendorOrder(ctx, po.ID, &models.NewVendorOrder{
		VendorId:    vendor.ID,
		WarehouseId: wh.ID,
		Details: []models.NewVendorOrderDetail{
			{MaterialId: mat.ID, Quantity: decimal.NewFromInt(4), Rate: decimal.NewFromInt(5)},
		},
	}); err != nil {
		t.Fatalf("UpdateVendorOrder: %v", err)
	}
	if _, err := models.ApproveVendorOrder(ctx, po.ID); err != nil {
		t.Fatalf("ApproveVendorOrder: %v", err)
	}
	if _, err := models.ReceiveVendorOrder(ctx, po.ID); err != nil {
		t.Fatalf("ReceiveVendorOrder: %v", err)
	}
	requireQty(t, ctx, wh.ID, mat.ID, 4, 0)

	// A receive against an id that does not exist is a 404, not a state error.
	if _, err := models.ReceiveVendorOrder(ctx, 99999); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("receive missing order: want ErrorRecordNotFound, got %v", err)
	}
}

func TestVendorOrderConcurrentReceiveHappensOnce(t *testing.T) {
	ctx := setupIntegration(t)

	wh := makeWarehouse(t, ctx, "Receiving Dock")
	mat := makeMaterial(t, ctx, "Cement Bag")
	vendor := makeVendor(t, ctx, "ACME Supplies")

	po, err := models.CreateVendorOrder(ctx, &models.NewVendorOrder{
		VendorId:    vendor.ID,
		WarehouseId: wh.ID,
		Details: []models.NewVendorOrderDetail{
			{MaterialId: mat.ID, Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(5)},
		},
	})
	if err != nil {
		t.Fatalf("CreateVendorOrder: %v", err)
	}
	if _, err := models.ApproveVendorOrder(ctx, po.ID); err != nil {
		t.Fatalf("ApproveVendorOrder: %v", err)
	}

	// Two racing receives: exactly one wins, stock arrives exactly once.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = models.ReceiveVendorOrder(ctx, po.ID)
		}(i)
	}
	wg.Wait()

	var okCount, stateErrCount int
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case utils.IsStateError(err):
			stateErrCount++
		default:
			t.Fatalf("unexpected receive error: %v", err)
		}
	}
	if okCount != 1 || stateErrCount != 1 {
		t.Fatalf("expected exactly one receive to win; ok=%d stateErr=%d", okCount, stateErrCount)
	}
	requireQty(t, ctx, wh.ID, mat.ID, 10, 0)
}

func TestCustomerOrderDeliverFlow(t *testing.T) {
	ctx := setupIntegration(t)

	wh := makeWarehouse(t, ctx, "Shop Floor")
	mat := makeMaterial(t, ctx, "Door Handle")
	customer := makeCustomer(t, ctx, "Golden Hardware")

	seedStock(t, ctx, wh.ID, mat.ID, 10)

	so, err := models.CreateCustomerOrder(ctx, &models.NewCustomerOrder{
		CustomerId:  customer.ID,
		WarehouseId: wh.ID,
		Details: []models.NewCustomerOrderDetail{
			{MaterialId: mat.ID, Quantity: decimal.NewFromInt(6), Rate: decimal.NewFromInt(8)},
		},
	})
	if err != nil {
		t.Fatalf("CreateCustomerOrder: %v", err)
	}
	if !strings.HasPrefix(so.OrderNumber, "SO-") {
		t.Fatalf("expected SO number; got %s", so.OrderNumber)
	}

	// Delivering before confirmation is rejected and moves no stock.
	if _, err := models.DeliverCustomerOrder(ctx, so.ID); !utils.IsStateError(err) {
		t.Fatalf("expected state error delivering pending order; got %v", err)
	}
	requireQty(t, ctx, wh.ID, mat.ID, 10, 0)

	if _, err := models.ConfirmCustomerOrder(ctx, so.ID); err != nil {
		t.Fatalf("ConfirmCustomerOrder: %v", err)
	}
	delivered, err := models.DeliverCustomerOrder(ctx, so.ID)
	if err != nil {
		t.Fatalf("DeliverCustomerOrder: %v", err)
	}
	if delivered.Status != models.CustomerOrderStatusDelivered {
		t.Fatalf("expected DELIVERED; got %s", delivered.Status)
	}
	requireQty(t, ctx, wh.ID, mat.ID, 4, 0)
}

func TestCustomerOrderDeliveryIsAtomic(t *testing.T) {
	ctx := setupIntegration(t)

	wh := makeWarehouse(t, ctx, "Shop Floor")
	matA := makeMaterial(t, ctx, "Hinge")
	matB := makeMaterial(t, ctx, "Latch")
	customer := makeCustomer(t, ctx, "Golden Hardware")

	seedStock(t, ctx, wh.ID, matA.ID, 5)
	seedStock(t, ctx, wh.ID, matB.ID, 5)

	// Second line exceeds stock: the whole delivery must fail, including
	// the first line that would have succeeded on its own.
	so, err := models.CreateCustomerOrder(ctx, &models.NewCustomerOrder{
		CustomerId:  customer.ID,
		WarehouseId: wh.ID,
		Details: []models.NewCustomerOrderDetail{
			{MaterialId: matA.ID, Quantity: decimal.NewFromInt(3), Rate: decimal.NewFromInt(8)},
			{MaterialId: matB.ID, Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(8)},
		},
	})
	if err != nil {
		t.Fatalf("CreateCustomerOrder: %v", err)
	}
	if _, err := models.ConfirmCustomerOrder(ctx, so.ID); err != nil {
		t.Fatalf("ConfirmCustomerOrder: %v", err)
	}

	if _, err := models.DeliverCustomerOrder(ctx, so.ID); err == nil {
		t.Fatalf("expected delivery to fail on insufficient stock")
	}

	// Nothing moved and the order is back in CONFIRMED for a retry.
	requireQty(t, ctx, wh.ID, matA.ID, 5, 0)
	requireQty(t, ctx, wh.ID, matB.ID, 5, 0)
	after, err := models.GetCustomerOrder(ctx, so.ID)
	if err != nil {
		t.Fatalf("GetCustomerOrder: %v", err)
	}
	if after.Status != models.CustomerOrderStatusConfirmed {
		t.Fatalf("expected order back in CONFIRMED; got %s", after.Status)
	}
}

func TestTransferOrderMovesStockBetweenWarehouses(t *testing.T) {
	ctx := setupIntegration(t)

	src := makeWarehouse(t, ctx, "Central Store")
	dst := makeWarehouse(t, ctx, "Branch Store")
	mat := makeMaterial(t, ctx, "Light Bulb")

	seedStock(t, ctx, src.ID, mat.ID, 25)

	to, err := models.CreateTransferOrder(ctx, &models.NewTransferOrder{
		FromWarehouseId: src.ID,
		ToWarehouseId:   dst.ID,
		Details: []models.NewTransferOrderDetail{
			{MaterialId: mat.ID, Quantity: decimal.NewFromInt(10)},
		},
	})
	if err != nil {
		t.Fatalf("CreateTransferOrder: %v", err)
	}
	if !strings.HasPrefix(to.OrderNumber, "TO-") {
		t.Fatalf("expected TO number; got %s", to.OrderNumber)
	}

	// Approval reserves the quantity at the source.
	if _, err := models.ApproveTransferOrder(ctx, to.ID); err != nil {
		t.Fatalf("ApproveTransferOrder: %v", err)
	}
	requireQty(t, ctx, src.ID, mat.ID, 15, 10)

	// An approved transfer holds live reservations; cancel is refused.
	if _, err := models.CancelTransferOrder(ctx, to.ID); !utils.IsStateError(err) {
		t.Fatalf("expected state error cancelling approved transfer; got %v", err)
	}

	received, err := models.ReceiveTransferOrder(ctx, to.ID)
	if err != nil {
		t.Fatalf("ReceiveTransferOrder: %v", err)
	}
	if received.Status != models.TransferOrderStatusReceived {
		t.Fatalf("expected RECEIVED; got %s", received.Status)
	}
	requireQty(t, ctx, src.ID, mat.ID, 15, 0)
	requireQty(t, ctx, dst.ID, mat.ID, 10, 0)

	// Source OUT and destination IN both reference the transfer.
	rows, _, err := models.ListStockUsage(ctx, &models.StockUsageFilter{MaterialId: &mat.ID}, 1, 20)
	if err != nil {
		t.Fatalf("ListStockUsage: %v", err)
	}
	var transferRows int
	for _, r := range rows {
		if r.ReferenceType == models.StockReferenceTypeWarehouseTransfer && r.ReferenceId == to.ID {
			transferRows++
		}
	}
	if transferRows != 2 {
		t.Fatalf("expected 2 transfer usage rows; got %d", transferRows)
	}
}

func TestTransferOrderRejectsSameWarehouse(t *testing.T) {
	ctx := setupIntegration(t)

	wh := makeWarehouse(t, ctx, "Central Store")
	mat := makeMaterial(t, ctx, "Light Bulb")

	_, err := models.CreateTransferOrder(ctx, &models.NewTransferOrder{
		FromWarehouseId: wh.ID,
		ToWarehouseId:   wh.ID,
		Details: []models.NewTransferOrderDetail{
			{MaterialId: mat.ID, Quantity: decimal.NewFromInt(1)},
		},
	})
	if !utils.IsValidationError(err) {
		t.Fatalf("expected validation error for same-warehouse transfer; got %v", err)
	}
}
