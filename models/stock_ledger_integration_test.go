package models_test

import (
	"errors"
	"testing"

	"bitbucket.org/mmdatafocus/bizmanage_backend/config"
	"bitbucket.org/mmdatafocus/bizmanage_backend/models"
	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
	"github.com/shopspring/decimal"
)

func TestStockLedgerPrimitives(t *testing.T) {
	ctx := setupIntegration(t)

	wh := makeWarehouse(t, ctx, "Main Warehouse")
	mat := makeMaterial(t, ctx, "Steel Rod")

	// Stock in 20.
	seedStock(t, ctx, wh.ID, mat.ID, 20)
	requireQty(t, ctx, wh.ID, mat.ID, 20, 0)

	input := &models.StockAdjustmentInput{
		WarehouseId: wh.ID,
		MaterialId:  mat.ID,
		Quantity:    decimal.NewFromInt(8),
	}

	// Reserve 8 moves 8 from available into reserved.
	if _, err := models.ReserveStock(ctx, input); err != nil {
		t.Fatalf("ReserveStock: %v", err)
	}
	requireQty(t, ctx, wh.ID, mat.ID, 12, 8)

	// Release 8 restores the original split. Release is the exact inverse
	// of reserve.
	if _, err := models.ReleaseStock(ctx, input); err != nil {
		t.Fatalf("ReleaseStock: %v", err)
	}
	requireQty(t, ctx, wh.ID, mat.ID, 20, 0)

	// Reserve then consume removes the quantity from the warehouse.
	if _, err := models.ReserveStock(ctx, input); err != nil {
		t.Fatalf("ReserveStock(2): %v", err)
	}
	if _, err := models.ConsumeStock(ctx, input); err != nil {
		t.Fatalf("ConsumeStock: %v", err)
	}
	requireQty(t, ctx, wh.ID, mat.ID, 12, 0)

	// Guards: reserving more than available fails and changes nothing.
	tooMuch := &models.StockAdjustmentInput{
		WarehouseId: wh.ID,
		MaterialId:  mat.ID,
		Quantity:    decimal.NewFromInt(13),
	}
	if _, err := models.ReserveStock(ctx, tooMuch); !errors.Is(err, utils.ErrorInsufficientStock) {
		t.Fatalf("expected insufficient stock; got %v", err)
	}
	requireQty(t, ctx, wh.ID, mat.ID, 12, 0)

	// Releasing with nothing reserved fails.
	one := &models.StockAdjustmentInput{
		WarehouseId: wh.ID,
		MaterialId:  mat.ID,
		Quantity:    decimal.NewFromInt(1),
	}
	if _, err := models.ReleaseStock(ctx, one); !errors.Is(err, utils.ErrorInsufficientReserved) {
		t.Fatalf("expected insufficient reserved; got %v", err)
	}
	if _, err := models.ConsumeStock(ctx, one); !errors.Is(err, utils.ErrorInsufficientReserved) {
		t.Fatalf("expected insufficient reserved on consume; got %v", err)
	}
	requireQty(t, ctx, wh.ID, mat.ID, 12, 0)
}

func TestStockUsageLogRecordsMovements(t *testing.T) {
	ctx := setupIntegration(t)

	wh := makeWarehouse(t, ctx, "Main Warehouse")
	mat := makeMaterial(t, ctx, "Copper Wire")

	seedStock(t, ctx, wh.ID, mat.ID, 10)

	input := &models.StockAdjustmentInput{
		WarehouseId: wh.ID,
		MaterialId:  mat.ID,
		Quantity:    decimal.NewFromInt(4),
	}
	if _, err := models.ReserveStock(ctx, input); err != nil {
		t.Fatalf("ReserveStock: %v", err)
	}
	if _, err := models.ConsumeStock(ctx, input); err != nil {
		t.Fatalf("ConsumeStock: %v", err)
	}

	rows, pagination, err := models.ListStockUsage(ctx, &models.StockUsageFilter{
		WarehouseId: &wh.ID,
		MaterialId:  &mat.ID,
	}, 1, 20)
	if err != nil {
		t.Fatalf("ListStockUsage: %v", err)
	}
	// One IN row for the seed, one OUT row for the consume. Reservations do
	// not appear in the usage log.
	if pagination.Total != 2 {
		t.Fatalf("expected 2 usage rows; got %d", pagination.Total)
	}
	// Rows come back newest first.
	out, in := rows[0], rows[1]
	if out.Direction != models.StockDirectionOut || out.Quantity.Cmp(decimal.NewFromInt(4)) != 0 {
		t.Fatalf("unexpected OUT row: %+v", out)
	}
	if out.ReferenceType != models.StockReferenceTypeAdjustment {
		t.Fatalf("expected ADJUSTMENT reference; got %s", out.ReferenceType)
	}
	if in.Direction != models.StockDirectionIn || in.Quantity.Cmp(decimal.NewFromInt(10)) != 0 {
		t.Fatalf("unexpected IN row: %+v", in)
	}
	if out.UserName != "Test" {
		t.Fatalf("expected actor name on usage row; got %q", out.UserName)
	}
}

func TestOnHandQtySumsAcrossWarehouses(t *testing.T) {
	ctx := setupIntegration(t)

	whA := makeWarehouse(t, ctx, "Warehouse A")
	whB := makeWarehouse(t, ctx, "Warehouse B")
	mat := makeMaterial(t, ctx, "Paint Bucket")

	seedStock(t, ctx, whA.ID, mat.ID, 7)
	seedStock(t, ctx, whB.ID, mat.ID, 5)
	if _, err := models.ReserveStock(ctx, &models.StockAdjustmentInput{
		WarehouseId: whA.ID,
		MaterialId:  mat.ID,
		Quantity:    decimal.NewFromInt(3),
	}); err != nil {
		t.Fatalf("ReserveStock: %v", err)
	}

	// On-hand counts reserved stock; it is still in the building.
	onHand, err := models.OnHandQty(ctx, mat.ID)
	if err != nil {
		t.Fatalf("OnHandQty: %v", err)
	}
	if onHand.Cmp(decimal.NewFromInt(12)) != 0 {
		t.Fatalf("expected on-hand 12; got %s", onHand)
	}
}

func TestStockRecordUniquePerWarehouseMaterial(t *testing.T) {
	ctx := setupIntegration(t)

	wh := makeWarehouse(t, ctx, "Main Warehouse")
	mat := makeMaterial(t, ctx, "Steel Rod")
	seedStock(t, ctx, wh.ID, mat.ID, 5)

	// The database itself refuses a second balance row for the same
	// org/warehouse/material triple.
	orgId, _ := utils.GetOrgIdFromContext(ctx)
	dup := models.StockRecord{
		OrgId:       orgId,
		WarehouseId: wh.ID,
		MaterialId:  mat.ID,
	}
	if err := config.GetDB().WithContext(ctx).Create(&dup).Error; err == nil {
		t.Fatal("expected duplicate stock record to be rejected")
	}
	requireQty(t, ctx, wh.ID, mat.ID, 5, 0)
}
