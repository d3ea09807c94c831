package models_test

import (
	"context"
	"fmt"
	"testing"

	"bitbucket.org/mmdatafocus/bizmanage_backend/models"
	"github.com/shopspring/decimal"
)

var fixtureSeq int

func nextFixture() int {
	fixtureSeq++
	return fixtureSeq
}

func makeWarehouse(t *testing.T, ctx context.Context, name string) *models.Warehouse {
	t.Helper()
	w, err := models.CreateWarehouse(ctx, &models.NewWarehouse{Name: name})
	if err != nil {
		t.Fatalf("CreateWarehouse(%s): %v", name, err)
	}
	return w
}

func makeMaterial(t *testing.T, ctx context.Context, name string) *models.Material {
	t.Helper()
	n := nextFixture()
	unit, err := models.CreateUnit(ctx, &models.NewUnit{
		Name:         fmt.Sprintf("Pcs %d", n),
		Abbreviation: "pc",
	})
	if err != nil {
		t.Fatalf("CreateUnit: %v", err)
	}
	m, err := models.CreateMaterial(ctx, &models.NewMaterial{
		Sku:           fmt.Sprintf("SKU-%04d", n),
		Name:          name,
		UnitId:        unit.ID,
		PurchasePrice: decimal.NewFromInt(5),
		SalePrice:     decimal.NewFromInt(8),
	})
	if err != nil {
		t.Fatalf("CreateMaterial(%s): %v", name, err)
	}
	return m
}

func makeVendor(t *testing.T, ctx context.Context, name string) *models.Vendor {
	t.Helper()
	v, err := models.CreateVendor(ctx, &models.NewVendor{Name: name})
	if err != nil {
		t.Fatalf("CreateVendor(%s): %v", name, err)
	}
	return v
}

func makeCustomer(t *testing.T, ctx context.Context, name string) *models.Customer {
	t.Helper()
	c, err := models.CreateCustomer(ctx, &models.NewCustomer{Name: name})
	if err != nil {
		t.Fatalf("CreateCustomer(%s): %v", name, err)
	}
	return c
}

// seedStock puts qty into available via the manual stock-in operation.
func seedStock(t *testing.T, ctx context.Context, warehouseId, materialId int, qty int64) {
	t.Helper()
	_, err := models.AdjustStockIn(ctx, &models.StockAdjustmentInput{
		WarehouseId: warehouseId,
		MaterialId:  materialId,
		Quantity:    decimal.NewFromInt(qty),
	})
	if err != nil {
		t.Fatalf("AdjustStockIn(%d): %v", qty, err)
	}
}

func requireQty(t *testing.T, ctx context.Context, warehouseId, materialId int, available, reserved int64) {
	t.Helper()
	rec, err := models.GetStockRecord(ctx, warehouseId, materialId)
	if err != nil {
		t.Fatalf("GetStockRecord: %v", err)
	}
	if rec.AvailableQty.Cmp(decimal.NewFromInt(available)) != 0 || rec.ReservedQty.Cmp(decimal.NewFromInt(reserved)) != 0 {
		t.Fatalf("stock record mismatch: want available=%d reserved=%d; got available=%s reserved=%s",
			available, reserved, rec.AvailableQty, rec.ReservedQty)
	}
}
