package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/bizmanage_backend/config"
	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockRecord is the per-warehouse balance of a material. available_qty
// is what can still be promised, reserved_qty is promised but not yet
// shipped. Both columns only move through the guarded primitives below,
// never through direct writes.
type StockRecord struct {
	ID           int             `gorm:"primary_key" json:"id"`
	OrgId        string          `gorm:"uniqueIndex:idx_stock_records_org_wh_mat;not null" json:"org_id"`
	WarehouseId  int             `gorm:"uniqueIndex:idx_stock_records_org_wh_mat;not null" json:"warehouse_id"`
	Warehouse    *Warehouse      `json:"warehouse,omitempty"`
	MaterialId   int             `gorm:"uniqueIndex:idx_stock_records_org_wh_mat;not null" json:"material_id"`
	Material     *Material       `json:"material,omitempty"`
	AvailableQty decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"available_qty"`
	ReservedQty  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"reserved_qty"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func FirstOrCreateStockRecord(tx *gorm.DB, orgId string, warehouseId int, materialId int) (*StockRecord, error) {
	stockRecord := StockRecord{
		OrgId:       orgId,
		WarehouseId: warehouseId,
		MaterialId:  materialId,
	}
	// FirstOrCreate will try to find a record matching the conditions, and if it doesn't find one, it will create a new record
	result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("org_id = ? AND warehouse_id = ? AND material_id = ?",
			orgId, warehouseId, materialId).
		FirstOrCreate(&stockRecord)
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}
	return &stockRecord, nil
}

// StockInTx credits available stock and logs the physical movement.
// Must run inside tx; the tx is rolled back on failure.
func StockInTx(tx *gorm.DB, orgId string, warehouseId int, materialId int, quantity decimal.Decimal, refType StockReferenceType, refId int, actor Actor) error {
	if !quantity.IsPositive() {
		tx.Rollback()
		return utils.NewValidationError("quantity", "quantity must be positive")
	}

	stockRecord, err := FirstOrCreateStockRecord(tx, orgId, warehouseId, materialId)
	if err != nil {
		return err
	}

	if err := tx.Exec("UPDATE stock_records SET available_qty = available_qty + ? WHERE id = ?",
		quantity, stockRecord.ID).Error; err != nil {
		tx.Rollback()
		return err
	}

	return appendStockUsage(tx, orgId, warehouseId, materialId, StockDirectionIn, quantity, refType, refId, actor)
}

// ReserveStockTx moves quantity from available to reserved. The WHERE
// guard makes overselling impossible even under concurrent reserves.
func ReserveStockTx(tx *gorm.DB, orgId string, warehouseId int, materialId int, quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		tx.Rollback()
		return utils.NewValidationError("quantity", "quantity must be positive")
	}

	stockRecord, err := FirstOrCreateStockRecord(tx, orgId, warehouseId, materialId)
	if err != nil {
		return err
	}

	result := tx.Exec(
		"UPDATE stock_records SET available_qty = available_qty - ?, reserved_qty = reserved_qty + ? WHERE id = ? AND available_qty >= ?",
		quantity, quantity, stockRecord.ID, quantity)
	if result.Error != nil {
		tx.Rollback()
		return result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return utils.ErrorInsufficientStock
	}
	return nil
}

// ReleaseStockTx returns reserved quantity to available (cancellation path).
func ReleaseStockTx(tx *gorm.DB, orgId string, warehouseId int, materialId int, quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		tx.Rollback()
		return utils.NewValidationError("quantity", "quantity must be positive")
	}

	stockRecord, err := FirstOrCreateStockRecord(tx, orgId, warehouseId, materialId)
	if err != nil {
		return err
	}

	result := tx.Exec(
		"UPDATE stock_records SET available_qty = available_qty + ?, reserved_qty = reserved_qty - ? WHERE id = ? AND reserved_qty >= ?",
		quantity, quantity, stockRecord.ID, quantity)
	if result.Error != nil {
		tx.Rollback()
		return result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return utils.ErrorInsufficientReserved
	}
	return nil
}

// ConsumeStockTx burns reserved quantity on delivery and logs the
// outbound movement.
func ConsumeStockTx(tx *gorm.DB, orgId string, warehouseId int, materialId int, quantity decimal.Decimal, refType StockReferenceType, refId int, actor Actor) error {
	if !quantity.IsPositive() {
		tx.Rollback()
		return utils.NewValidationError("quantity", "quantity must be positive")
	}

	stockRecord, err := FirstOrCreateStockRecord(tx, orgId, warehouseId, materialId)
	if err != nil {
		return err
	}

	result := tx.Exec(
		"UPDATE stock_records SET reserved_qty = reserved_qty - ? WHERE id = ? AND reserved_qty >= ?",
		quantity, stockRecord.ID, quantity)
	if result.Error != nil {
		tx.Rollback()
		return result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return utils.ErrorInsufficientReserved
	}

	return appendStockUsage(tx, orgId, warehouseId, materialId, StockDirectionOut, quantity, refType, refId, actor)
}

type StockAdjustmentInput struct {
	WarehouseId int             `json:"warehouse_id" binding:"required"`
	MaterialId  int             `json:"material_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
}

// AdjustStockIn is the manual stock-in endpoint (opening stock, found
// stock, corrections upward).
func AdjustStockIn(ctx context.Context, input *StockAdjustmentInput) (*StockRecord, error) {
	actor := ActorFromContext(ctx)
	return runStockOp(ctx, input, "AdjustStockIn", func(tx *gorm.DB, orgId string) error {
		return StockInTx(tx, orgId, input.WarehouseId, input.MaterialId, input.Quantity,
			StockReferenceTypeAdjustment, 0, actor)
	})
}

func (input *StockAdjustmentInput) validate(ctx context.Context, orgId string) error {
	if err := utils.ValidateResourceId[Warehouse](ctx, orgId, input.WarehouseId); err != nil {
		return utils.NewValidationError("warehouse_id", "warehouse not found")
	}
	if err := utils.ValidateResourceId[Material](ctx, orgId, input.MaterialId); err != nil {
		return utils.NewValidationError("material_id", "material not found")
	}
	if !input.Quantity.IsPositive() {
		return utils.NewValidationError("quantity", "quantity must be positive")
	}
	return nil
}

// runStockOp wraps a single stock primitive in its own transaction.
func runStockOp(ctx context.Context, input *StockAdjustmentInput, funcName string,
	op func(tx *gorm.DB, orgId string) error) (*StockRecord, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := input.validate(ctx, orgId); err != nil {
		return nil, err
	}

	release, err := utils.OrgLock(ctx, orgId, "stock", "models", funcName)
	if err != nil {
		return nil, err
	}
	defer release()

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	if err := op(tx, orgId); err != nil {
		return nil, err
	}

	var stockRecord StockRecord
	if err := tx.Where("org_id = ? AND warehouse_id = ? AND material_id = ?",
		orgId, input.WarehouseId, input.MaterialId).First(&stockRecord).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &stockRecord, nil
}

// ReserveStock earmarks stock without moving it physically.
func ReserveStock(ctx context.Context, input *StockAdjustmentInput) (*StockRecord, error) {
	return runStockOp(ctx, input, "ReserveStock", func(tx *gorm.DB, orgId string) error {
		return ReserveStockTx(tx, orgId, input.WarehouseId, input.MaterialId, input.Quantity)
	})
}

// ReleaseStock returns earmarked stock to available.
func ReleaseStock(ctx context.Context, input *StockAdjustmentInput) (*StockRecord, error) {
	return runStockOp(ctx, input, "ReleaseStock", func(tx *gorm.DB, orgId string) error {
		return ReleaseStockTx(tx, orgId, input.WarehouseId, input.MaterialId, input.Quantity)
	})
}

// ConsumeStock burns reserved stock outside any order workflow.
func ConsumeStock(ctx context.Context, input *StockAdjustmentInput) (*StockRecord, error) {
	actor := ActorFromContext(ctx)
	return runStockOp(ctx, input, "ConsumeStock", func(tx *gorm.DB, orgId string) error {
		return ConsumeStockTx(tx, orgId, input.WarehouseId, input.MaterialId, input.Quantity,
			StockReferenceTypeAdjustment, 0, actor)
	})
}

func GetStockRecord(ctx context.Context, warehouseId int, materialId int) (*StockRecord, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	var stockRecord StockRecord
	db := config.GetDB()
	err := db.WithContext(ctx).
		Where("org_id = ? AND warehouse_id = ? AND material_id = ?", orgId, warehouseId, materialId).
		Preload("Material").Preload("Warehouse").
		First(&stockRecord).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &stockRecord, nil
}

func ListStockRecords(ctx context.Context, warehouseId *int, materialId *int) ([]*StockRecord, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	db := config.GetDB()
	var results []*StockRecord

	dbCtx := db.WithContext(ctx).Where("org_id = ?", orgId).
		Preload("Material").Preload("Warehouse")
	if warehouseId != nil && *warehouseId > 0 {
		if err := utils.ValidateResourceId[Warehouse](ctx, orgId, *warehouseId); err != nil {
			return nil, errors.New("warehouse not found")
		}
		dbCtx = dbCtx.Where("warehouse_id = ?", *warehouseId)
	}
	if materialId != nil && *materialId > 0 {
		dbCtx = dbCtx.Where("material_id = ?", *materialId)
	}
	err := dbCtx.Order("warehouse_id, material_id").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// OnHandQty is available + reserved summed across warehouses.
func OnHandQty(ctx context.Context, materialId int) (decimal.Decimal, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return decimal.Zero, errors.New("org id is required")
	}

	var onHand decimal.Decimal
	db := config.GetDB()
	err := db.WithContext(ctx).
		Model(&StockRecord{}).
		Select("COALESCE(SUM(available_qty + reserved_qty), 0)").
		Where("org_id = ?", orgId).
		Where("material_id = ?", materialId).
		Scan(&onHand).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return onHand, nil
}
