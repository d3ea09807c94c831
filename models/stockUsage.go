package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/bizmanage_backend/config"
	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockUsage is the append-only movement log. Rows are written by the
// stock primitives inside the same transaction that moves the balance,
// and are never updated or deleted.
type StockUsage struct {
	ID            int                `gorm:"primary_key" json:"id"`
	OrgId         string             `gorm:"index;not null" json:"org_id"`
	WarehouseId   int                `gorm:"index;not null" json:"warehouse_id"`
	Warehouse     *Warehouse         `json:"warehouse,omitempty"`
	MaterialId    int                `gorm:"index;not null" json:"material_id"`
	Material      *Material          `json:"material,omitempty"`
	Direction     StockDirection     `gorm:"size:10;not null" json:"direction"`
	Quantity      decimal.Decimal    `gorm:"type:decimal(20,4);not null" json:"quantity"`
	ReferenceType StockReferenceType `gorm:"size:30;not null" json:"reference_type"`
	ReferenceId   int                `gorm:"index" json:"reference_id"`
	UserId        int                `json:"user_id"`
	UserName      string             `gorm:"size:100" json:"user_name"`
	CreatedAt     time.Time          `gorm:"autoCreateTime" json:"created_at"`
}

func appendStockUsage(tx *gorm.DB, orgId string, warehouseId int, materialId int, direction StockDirection, quantity decimal.Decimal, refType StockReferenceType, refId int, actor Actor) error {
	usage := StockUsage{
		OrgId:         orgId,
		WarehouseId:   warehouseId,
		MaterialId:    materialId,
		Direction:     direction,
		Quantity:      quantity,
		ReferenceType: refType,
		ReferenceId:   refId,
		UserId:        actor.UserId,
		UserName:      actor.Name,
	}
	if err := tx.Create(&usage).Error; err != nil {
		tx.Rollback()
		return err
	}
	return nil
}

type StockUsageFilter struct {
	WarehouseId *int
	MaterialId  *int
	Direction   *StockDirection
	From        *time.Time
	To          *time.Time
}

func ListStockUsage(ctx context.Context, filter *StockUsageFilter, page int, limit int) ([]*StockUsage, *Pagination, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, nil, errors.New("org id is required")
	}

	page, limit = NormalizePage(page, limit)

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&StockUsage{}).Where("org_id = ?", orgId)
	if filter != nil {
		if filter.WarehouseId != nil && *filter.WarehouseId > 0 {
			dbCtx = dbCtx.Where("warehouse_id = ?", *filter.WarehouseId)
		}
		if filter.MaterialId != nil && *filter.MaterialId > 0 {
			dbCtx = dbCtx.Where("material_id = ?", *filter.MaterialId)
		}
		if filter.Direction != nil && filter.Direction.Valid() {
			dbCtx = dbCtx.Where("direction = ?", *filter.Direction)
		}
		if filter.From != nil {
			dbCtx = dbCtx.Where("created_at >= ?", *filter.From)
		}
		if filter.To != nil {
			dbCtx = dbCtx.Where("created_at < ?", *filter.To)
		}
	}

	var total int64
	if err := dbCtx.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var results []*StockUsage
	err := dbCtx.Preload("Material").Preload("Warehouse").
		Order("id DESC").
		Scopes(Paginate(page, limit)).
		Find(&results).Error
	if err != nil {
		return nil, nil, err
	}
	return results, NewPagination(total, page, limit), nil
}
