package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/bizmanage_backend/config"
	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
	"github.com/shopspring/decimal"
)

// Material is a stockable item. Quantities live in stock_records per
// warehouse, not here.
type Material struct {
	ID            int             `gorm:"primary_key" json:"id"`
	OrgId         string          `gorm:"index;not null" json:"org_id"`
	Sku           string          `gorm:"size:100;not null" json:"sku" binding:"required"`
	Name          string          `gorm:"size:100;not null" json:"name" binding:"required"`
	Description   string          `gorm:"type:text" json:"description"`
	UnitId        int             `gorm:"not null" json:"unit_id"`
	Unit          *Unit           `json:"unit,omitempty"`
	CategoryId    int             `gorm:"index" json:"category_id"`
	Category      *Category       `json:"category,omitempty"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(20,4)" json:"purchase_price"`
	SalePrice     decimal.Decimal `gorm:"type:decimal(20,4)" json:"sale_price"`
	ReorderLevel  decimal.Decimal `gorm:"type:decimal(20,4)" json:"reorder_level"`
	IsActive      *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (m Material) GetOrgId() string {
	return m.OrgId
}

type NewMaterial struct {
	Sku           string          `json:"sku" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	UnitId        int             `json:"unit_id" binding:"required"`
	CategoryId    int             `json:"category_id"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	ReorderLevel  decimal.Decimal `json:"reorder_level"`
}

func (input *NewMaterial) validate(ctx context.Context, orgId string, id int) error {
	// sku
	if err := utils.ValidateUnique[Material](ctx, orgId, "sku", input.Sku, id); err != nil {
		return err
	}
	// name
	if err := utils.ValidateUnique[Material](ctx, orgId, "name", input.Name, id); err != nil {
		return err
	}
	if err := utils.ValidateResourceId[Unit](ctx, orgId, input.UnitId); err != nil {
		return utils.NewValidationError("unit_id", "unit not found")
	}
	if input.CategoryId > 0 {
		if err := utils.ValidateResourceId[Category](ctx, orgId, input.CategoryId); err != nil {
			return utils.NewValidationError("category_id", "category not found")
		}
	}
	if input.PurchasePrice.IsNegative() || input.SalePrice.IsNegative() {
		return utils.NewValidationError("price", "price cannot be negative")
	}
	if input.ReorderLevel.IsNegative() {
		return utils.NewValidationError("reorder_level", "reorder level cannot be negative")
	}
	return nil
}

func CreateMaterial(ctx context.Context, input *NewMaterial) (*Material, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	input.Sku = strings.TrimSpace(input.Sku)
	if err := input.validate(ctx, orgId, 0); err != nil {
		return nil, err
	}

	material := Material{
		OrgId:         orgId,
		Sku:           input.Sku,
		Name:          input.Name,
		Description:   input.Description,
		UnitId:        input.UnitId,
		CategoryId:    input.CategoryId,
		PurchasePrice: input.PurchasePrice,
		SalePrice:     input.SalePrice,
		ReorderLevel:  input.ReorderLevel,
		IsActive:      utils.NewTrue(),
	}

	db := config.GetDB()
	err := db.WithContext(ctx).Create(&material).Error
	if err != nil {
		return nil, err
	}
	utils.RemoveRedisList[Material](orgId)
	return &material, nil
}

func UpdateMaterial(ctx context.Context, id int, input *NewMaterial) (*Material, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	input.Sku = strings.TrimSpace(input.Sku)
	if err := input.validate(ctx, orgId, id); err != nil {
		return nil, err
	}

	material, err := utils.FetchModel[Material](ctx, orgId, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&material).Updates(map[string]interface{}{
		"Sku":           input.Sku,
		"Name":          input.Name,
		"Description":   input.Description,
		"UnitId":        input.UnitId,
		"CategoryId":    input.CategoryId,
		"PurchasePrice": input.PurchasePrice,
		"SalePrice":     input.SalePrice,
		"ReorderLevel":  input.ReorderLevel,
	}).Error
	if err != nil {
		return nil, err
	}

	utils.RemoveRedisItem[Material](id)
	utils.RemoveRedisList[Material](orgId)
	return material, nil
}

func DeleteMaterial(ctx context.Context, id int) (*Material, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	db := config.GetDB()
	result, err := utils.FetchModel[Material](ctx, orgId, id)
	if err != nil {
		return nil, err
	}

	// a material with stock history must stay for the audit trail
	var count int64
	if err := db.WithContext(ctx).Model(&StockUsage{}).
		Where("material_id = ?", id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.NewStateError("material has stock history")
	}

	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}
	utils.RemoveRedisItem[Material](id)
	utils.RemoveRedisList[Material](orgId)
	return result, nil
}

func GetMaterial(ctx context.Context, id int) (*Material, error) {
	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}
	return utils.FetchModel[Material](ctx, orgId, id, "Unit", "Category")
}

func ListMaterial(ctx context.Context, name *string, categoryId *int) ([]*Material, error) {
	if name == nil && categoryId == nil {
		return ListResources[Material](ctx, "Unit", "Category")
	}

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	db := config.GetDB()
	var results []*Material

	dbCtx := db.WithContext(ctx).Where("org_id = ?", orgId).
		Preload("Unit").Preload("Category")
	if name != nil && len(*name) > 0 {
		dbCtx = dbCtx.Where("name LIKE ? OR sku LIKE ?", "%"+*name+"%", "%"+*name+"%")
	}
	if categoryId != nil && *categoryId > 0 {
		dbCtx = dbCtx.Where("category_id = ?", *categoryId)
	}
	err := dbCtx.Order("name").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func ToggleActiveMaterial(ctx context.Context, id int, isActive bool) (*Material, error) {
	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}
	return ToggleActiveModel[Material](ctx, orgId, id, isActive)
}
