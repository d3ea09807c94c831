package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/bizmanage_backend/config"
	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
	"github.com/shopspring/decimal"
)

// VendorOrder is a purchase order. Stock only moves on receive, inside
// one transaction guarded by the transient RECEIVING status.
type VendorOrder struct {
	ID          int                 `gorm:"primary_key" json:"id"`
	OrgId       string              `gorm:"index;not null" json:"org_id"`
	OrderNumber string              `gorm:"size:30;index;not null" json:"order_number"`
	VendorId    int                 `gorm:"index;not null" json:"vendor_id"`
	Vendor      *Vendor             `json:"vendor,omitempty"`
	WarehouseId int                 `gorm:"not null" json:"warehouse_id"`
	Warehouse   *Warehouse          `json:"warehouse,omitempty"`
	Status      VendorOrderStatus   `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	OrderDate   time.Time           `json:"order_date"`
	Remarks     string              `gorm:"type:text" json:"remarks"`
	TotalAmount decimal.Decimal     `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	Details     []VendorOrderDetail `gorm:"foreignKey:VendorOrderId" json:"details"`
	UserId      int                 `json:"user_id"`
	UserName    string              `gorm:"size:100" json:"user_name"`
	CreatedAt   time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

type VendorOrderDetail struct {
	ID            int             `gorm:"primary_key" json:"id"`
	VendorOrderId int             `gorm:"index;not null" json:"vendor_order_id"`
	MaterialId    int             `gorm:"not null" json:"material_id"`
	Material      *Material       `json:"material,omitempty"`
	Quantity      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	Rate          decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"rate"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
}

type NewVendorOrder struct {
	VendorId    int                    `json:"vendor_id" binding:"required"`
	WarehouseId int                    `json:"warehouse_id" binding:"required"`
	OrderDate   *time.Time             `json:"order_date"`
	Remarks     string                 `json:"remarks"`
	Details     []NewVendorOrderDetail `json:"details" binding:"required,dive"`
}

type NewVendorOrderDetail struct {
	MaterialId int             `json:"material_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	Rate       decimal.Decimal `json:"rate"`
}

func (input *NewVendorOrder) validate(ctx context.Context, orgId string) error {
	if err := utils.ValidateResourceId[Vendor](ctx, orgId, input.VendorId); err != nil {
		return utils.NewValidationError("vendor_id", "vendor not found")
	}
	if err := utils.ValidateResourceId[Warehouse](ctx, orgId, input.WarehouseId); err != nil {
		return utils.NewValidationError("warehouse_id", "warehouse not found")
	}
	if len(input.Details) == 0 {
		return utils.NewValidationError("details", "at least one item is required")
	}
	materialIds := make([]int, 0, len(input.Details))
	for _, detail := range input.Details {
		if !detail.Quantity.IsPositive() {
			return utils.NewValidationError("quantity", "item quantity must be positive")
		}
		if detail.Rate.IsNegative() {
			return utils.NewValidationError("rate", "item rate cannot be negative")
		}
		materialIds = append(materialIds, detail.MaterialId)
	}
	if err := utils.ValidateResourcesId[Material](ctx, orgId, utils.UniqueSlice(materialIds)); err != nil {
		return utils.NewValidationError("material_id", "material not found")
	}
	return nil
}

// buildDetails computes line amounts and the order total off the input.
func (input *NewVendorOrder) buildDetails() ([]VendorOrderDetail, decimal.Decimal) {
	details := make([]VendorOrderDetail, 0, len(input.Details))
	total := decimal.Zero
	for _, d := range input.Details {
		amount := d.Quantity.Mul(d.Rate)
		details = append(details, VendorOrderDetail{
			MaterialId: d.MaterialId,
			Quantity:   d.Quantity,
			Rate:       d.Rate,
			Amount:     amount,
		})
		total = total.Add(amount)
	}
	return details, total
}

func CreateVendorOrder(ctx context.Context, input *NewVendorOrder) (*VendorOrder, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := input.validate(ctx, orgId); err != nil {
		return nil, err
	}

	details, total := input.buildDetails()
	actor := ActorFromContext(ctx)

	order := VendorOrder{
		OrgId:       orgId,
		VendorId:    input.VendorId,
		WarehouseId: input.WarehouseId,
		Status:      VendorOrderStatusPending,
		OrderDate:   utils.DereferencePtr(input.OrderDate, time.Now()),
		Remarks:     input.Remarks,
		TotalAmount: total,
		Details:     details,
		UserId:      actor.UserId,
		UserName:    actor.Name,
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	orderNumber, err := NextDocumentNumber(tx, orgId, DocumentTypeVendorOrder)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	order.OrderNumber = orderNumber

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func UpdateVendorOrder(ctx context.Context, id int, input *NewVendorOrder) (*VendorOrder, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := input.validate(ctx, orgId); err != nil {
		return nil, err
	}

	order, err := utils.FetchModel[VendorOrder](ctx, orgId, id)
	if err != nil {
		return nil, err
	}
	if order.Status != VendorOrderStatusPending {
		return nil, utils.NewStateError("only pending orders can be updated")
	}

	details, total := input.buildDetails()
	for i := range details {
		details[i].VendorOrderId = id
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	// status may have moved since the read above; assert it again
	result := tx.Model(&VendorOrder{}).
		Where("id = ? AND org_id = ? AND status = ?", id, orgId, VendorOrderStatusPending).
		Updates(map[string]interface{}{
			"VendorId":    input.VendorId,
			"WarehouseId": input.WarehouseId,
			"OrderDate":   utils.DereferencePtr(input.OrderDate, order.OrderDate),
			"Remarks":     input.Remarks,
			"TotalAmount": total,
		})
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, utils.NewStateError("only pending orders can be updated")
	}

	if err := tx.Where("vendor_order_id = ?", id).Delete(&VendorOrderDetail{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Create(&details).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return GetVendorOrder(ctx, id)
}

func ApproveVendorOrder(ctx context.Context, id int) (*VendorOrder, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	db := config.GetDB()
	result := db.WithContext(ctx).Model(&VendorOrder{}).
		Where("id = ? AND org_id = ? AND status = ?", id, orgId, VendorOrderStatusPending).
		Update("status", VendorOrderStatusApproved)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := utils.FetchModel[VendorOrder](ctx, orgId, id); err != nil {
			return nil, err
		}
		return nil, utils.NewStateError("only pending orders can be approved")
	}
	return GetVendorOrder(ctx, id)
}

// ReceiveVendorOrder stocks in every line at the order's warehouse.
// The APPROVED to RECEIVING flip is a conditional update, so a second
// concurrent receive loses the race and fails instead of doubling stock.
func ReceiveVendorOrder(ctx context.Context, id int) (*VendorOrder, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	release, err := utils.OrgLock(ctx, orgId, "stock", "models", "ReceiveVendorOrder")
	if err != nil {
		return nil, err
	}
	defer release()

	actor := ActorFromContext(ctx)

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	result := tx.Model(&VendorOrder{}).
		Where("id = ? AND org_id = ? AND status = ?", id, orgId, VendorOrderStatusApproved).
		Update("status", VendorOrderStatusReceiving)
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		if _, err := utils.FetchModel[VendorOrder](ctx, orgId, id); err != nil {
			return nil, err
		}
		return nil, utils.NewStateError("only approved orders can be received")
	}

	// Load the lines after the status flip so a racing line edit cannot
	// hand us stale details.
	var order VendorOrder
	if err := tx.Preload("Details").
		Where("id = ? AND org_id = ?", id, orgId).
		First(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, detail := range order.Details {
		if err := StockInTx(tx, orgId, order.WarehouseId, detail.MaterialId, detail.Quantity,
			StockReferenceTypeVendorOrder, order.ID, actor); err != nil {
			return nil, err
		}
	}

	result = tx.Model(&VendorOrder{}).
		Where("id = ? AND org_id = ? AND status = ?", id, orgId, VendorOrderStatusReceiving).
		Update("status", VendorOrderStatusReceived)
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, utils.NewStateError("order left receiving state unexpectedly")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return GetVendorOrder(ctx, id)
}

// CancelVendorOrder is the remove path; received orders are immutable.
func CancelVendorOrder(ctx context.Context, id int) (*VendorOrder, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	db := config.GetDB()
	result := db.WithContext(ctx).Model(&VendorOrder{}).
		Where("id = ? AND org_id = ? AND status IN ?", id, orgId,
			[]VendorOrderStatus{VendorOrderStatusPending, VendorOrderStatusApproved}).
		Update("status", VendorOrderStatusCancelled)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := utils.FetchModel[VendorOrder](ctx, orgId, id); err != nil {
			return nil, err
		}
		return nil, utils.NewStateError("received orders cannot be cancelled")
	}
	return GetVendorOrder(ctx, id)
}

func GetVendorOrder(ctx context.Context, id int) (*VendorOrder, error) {
	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}
	return utils.FetchModel[VendorOrder](ctx, orgId, id, "Vendor", "Warehouse", "Details", "Details.Material")
}

func ListVendorOrder(ctx context.Context, status *VendorOrderStatus, vendorId *int, page int, limit int) ([]*VendorOrder, *Pagination, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, nil, errors.New("org id is required")
	}

	page, limit = NormalizePage(page, limit)

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&VendorOrder{}).Where("org_id = ?", orgId)
	if status != nil && status.Valid() {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if vendorId != nil && *vendorId > 0 {
		dbCtx = dbCtx.Where("vendor_id = ?", *vendorId)
	}

	var total int64
	if err := dbCtx.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var results []*VendorOrder
	err := dbCtx.Preload("Vendor").Preload("Details").
		Order("id DESC").
		Scopes(Paginate(page, limit)).
		Find(&results).Error
	if err != nil {
		return nil, nil, err
	}
	return results, NewPagination(total, page, limit), nil
}
