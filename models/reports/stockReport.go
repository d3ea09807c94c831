package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/bizmanage_backend/config"
	"bitbucket.org/mmdatafocus/bizmanage_backend/models"
	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
	"github.com/shopspring/decimal"
)

type StockReportRow struct {
	MaterialName  string          `json:"material_name"`
	MaterialSku   string          `json:"material_sku"`
	WarehouseName string          `json:"warehouse_name"`
	AvailableQty  decimal.Decimal `json:"available_qty"`
	ReservedQty   decimal.Decimal `json:"reserved_qty"`
	OnHandQty     decimal.Decimal `json:"on_hand_qty"`
	ReorderLevel  decimal.Decimal `json:"reorder_level"`
	BelowReorder  bool            `json:"below_reorder"`
}

// GetStockReport lists on-hand balances per material and warehouse.
// Materials with no stock rows still appear with zero balances.
func GetStockReport(ctx context.Context, warehouseId *int) ([]*StockReportRow, error) {
	start := time.Now()
	defer logSlowReport(ctx, "stock_report", start, map[string]any{
		"warehouse_id": utils.DereferencePtr(warehouseId),
	})

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if warehouseId != nil && *warehouseId > 0 {
		if err := utils.ValidateResourceId[models.Warehouse](ctx, orgId, *warehouseId); err != nil {
			return nil, errors.New("warehouse not found")
		}
	}

	if reportCacheEnabled() {
		key := fmt.Sprintf("report:stock:%s:%d", orgId, utils.DereferencePtr(warehouseId))
		var cached []*StockReportRow
		if ok, err := cacheGet(key, &cached); err == nil && ok && cached != nil {
			return cached, nil
		}
		rows, err := queryStockReport(ctx, orgId, warehouseId)
		if err != nil {
			return nil, err
		}
		_ = cacheSet(key, rows, reportCacheTTL())
		return rows, nil
	}

	return queryStockReport(ctx, orgId, warehouseId)
}

func queryStockReport(ctx context.Context, orgId string, warehouseId *int) ([]*StockReportRow, error) {

	sql := `
SELECT
    m.name AS material_name,
    m.sku AS material_sku,
    COALESCE(w.name, '') AS warehouse_name,
    COALESCE(sr.available_qty, 0) AS available_qty,
    COALESCE(sr.reserved_qty, 0) AS reserved_qty,
    COALESCE(sr.available_qty, 0) + COALESCE(sr.reserved_qty, 0) AS on_hand_qty,
    m.reorder_level,
    (COALESCE(sr.available_qty, 0) + COALESCE(sr.reserved_qty, 0)) < m.reorder_level AS below_reorder
FROM materials m
LEFT JOIN stock_records sr ON sr.material_id = m.id AND sr.org_id = m.org_id
LEFT JOIN warehouses w ON w.id = sr.warehouse_id
WHERE m.org_id = @orgId
`
	args := map[string]interface{}{
		"orgId": orgId,
	}
	if warehouseId != nil && *warehouseId > 0 {
		sql += "  AND sr.warehouse_id = @warehouseId\n"
		args["warehouseId"] = *warehouseId
	}
	sql += "ORDER BY m.name, warehouse_name;"

	var results []*StockReportRow
	db := config.GetDB()
	if err := db.WithContext(ctx).Raw(sql, args).Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type StockMovementRow struct {
	MaterialName  string          `json:"material_name"`
	MaterialSku   string          `json:"material_sku"`
	WarehouseName string          `json:"warehouse_name"`
	QtyIn         decimal.Decimal `json:"qty_in"`
	QtyOut        decimal.Decimal `json:"qty_out"`
	NetQty        decimal.Decimal `json:"net_qty"`
}

// GetStockMovementReport aggregates the usage log per material and
// warehouse over [fromDate, toDate).
func GetStockMovementReport(ctx context.Context, fromDate time.Time, toDate time.Time, warehouseId *int) ([]*StockMovementRow, error) {
	start := time.Now()
	defer logSlowReport(ctx, "stock_movement_report", start, map[string]any{
		"from": fromDate.UTC(), "to": toDate.UTC(),
	})

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}
	if !toDate.After(fromDate) {
		return nil, utils.NewValidationError("to", "to date must be after from date")
	}
	if warehouseId != nil && *warehouseId > 0 {
		if err := utils.ValidateResourceId[models.Warehouse](ctx, orgId, *warehouseId); err != nil {
			return nil, errors.New("warehouse not found")
		}
	}

	sql := `
SELECT
    m.name AS material_name,
    m.sku AS material_sku,
    w.name AS warehouse_name,
    SUM(CASE WHEN su.direction = 'IN' THEN su.quantity ELSE 0 END) AS qty_in,
    SUM(CASE WHEN su.direction = 'OUT' THEN su.quantity ELSE 0 END) AS qty_out,
    SUM(CASE WHEN su.direction = 'IN' THEN su.quantity ELSE -su.quantity END) AS net_qty
FROM stock_usages su
JOIN materials m ON m.id = su.material_id
JOIN warehouses w ON w.id = su.warehouse_id
WHERE su.org_id = @orgId
  AND su.created_at >= @fromDate
  AND su.created_at < @toDate
`
	args := map[string]interface{}{
		"orgId":    orgId,
		"fromDate": fromDate,
		"toDate":   toDate,
	}
	if warehouseId != nil && *warehouseId > 0 {
		sql += "  AND su.warehouse_id = @warehouseId\n"
		args["warehouseId"] = *warehouseId
	}
	sql += "GROUP BY m.name, m.sku, w.name\nORDER BY m.name, w.name;"

	var results []*StockMovementRow
	db := config.GetDB()
	if err := db.WithContext(ctx).Raw(sql, args).Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
