package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/bizmanage_backend/config"
	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
	"github.com/shopspring/decimal"
)

// TransferOrder moves stock between two warehouses of the same org.
// Approval reserves every line at the source; receive consumes the
// reservation and credits the destination.
type TransferOrder struct {
	ID              int                   `gorm:"primary_key" json:"id"`
	OrgId           string                `gorm:"index;not null" json:"org_id"`
	OrderNumber     string                `gorm:"size:30;index;not null" json:"order_number"`
	FromWarehouseId int                   `gorm:"not null" json:"from_warehouse_id"`
	FromWarehouse   *Warehouse            `gorm:"foreignKey:FromWarehouseId" json:"from_warehouse,omitempty"`
	ToWarehouseId   int                   `gorm:"not null" json:"to_warehouse_id"`
	ToWarehouse     *Warehouse            `gorm:"foreignKey:ToWarehouseId" json:"to_warehouse,omitempty"`
	Status          TransferOrderStatus   `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	OrderDate       time.Time             `json:"order_date"`
	Remarks         string                `gorm:"type:text" json:"remarks"`
	Details         []TransferOrderDetail `gorm:"foreignKey:TransferOrderId" json:"details"`
	UserId          int                   `json:"user_id"`
	UserName        string                `gorm:"size:100" json:"user_name"`
	CreatedAt       time.Time             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time             `gorm:"autoUpdateTime" json:"updated_at"`
}

type TransferOrderDetail struct {
	ID              int             `gorm:"primary_key" json:"id"`
	TransferOrderId int             `gorm:"index;not null" json:"transfer_order_id"`
	MaterialId      int             `gorm:"not null" json:"material_id"`
	Material        *Material       `json:"material,omitempty"`
	Quantity        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
}

type NewTransferOrder struct {
	FromWarehouseId int                      `json:"from_warehouse_id" binding:"required"`
	ToWarehouseId   int                      `json:"to_warehouse_id" binding:"required"`
	OrderDate       *time.Time               `json:"order_date"`
	Remarks         string                   `json:"remarks"`
	Details         []NewTransferOrderDetail `json:"details" binding:"required,dive"`
}

type NewTransferOrderDetail struct {
	MaterialId int             `json:"material_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
}

func (input *NewTransferOrder) validate(ctx context.Context, orgId string) error {
	if input.FromWarehouseId == input.ToWarehouseId {
		return utils.NewValidationError("to_warehouse_id", "source and destination warehouses must differ")
	}
	if err := utils.ValidateResourceId[Warehouse](ctx, orgId, input.FromWarehouseId); err != nil {
		return utils.NewValidationError("from_warehouse_id", "warehouse not found")
	}
	if err := utils.ValidateResourceId[Warehouse](ctx, orgId, input.ToWarehouseId); err != nil {
		return utils.NewValidationError("to_warehouse_id", "warehouse not found")
	}
	if len(input.Details) == 0 {
		return utils.NewValidationError("details", "at least one item is required")
	}
	materialIds := make([]int, 0, len(input.Details))
	for _, detail := range input.Details {
		if !detail.Quantity.IsPositive() {
			return utils.NewValidationError("quantity", "item quantity must be positive")
		}
		materialIds = append(materialIds, detail.MaterialId)
	}
	if err := utils.ValidateResourcesId[Material](ctx, orgId, utils.UniqueSlice(materialIds)); err != nil {
		return utils.NewValidationError("material_id", "material not found")
	}
	return nil
}

func CreateTransferOrder(ctx context.Context, input *NewTransferOrder) (*TransferOrder, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := input.validate(ctx, orgId); err != nil {
		return nil, err
	}

	details := make([]TransferOrderDetail, 0, len(input.Details))
	for _, d := range input.Details {
		details = append(details, TransferOrderDetail{
			MaterialId: d.MaterialId,
			Quantity:   d.Quantity,
		})
	}
	actor := ActorFromContext(ctx)

	order := TransferOrder{
		OrgId:           orgId,
		FromWarehouseId: input.FromWarehouseId,
		ToWarehouseId:   input.ToWarehouseId,
		Status:          TransferOrderStatusPending,
		OrderDate:       utils.DereferencePtr(input.OrderDate, time.Now()),
		Remarks:         input.Remarks,
		Details:         details,
		UserId:          actor.UserId,
		UserName:        actor.Name,
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	orderNumber, err := NextDocumentNumber(tx, orgId, DocumentTypeTransferOrder)
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

func UpdateTransferOrder(ctx context.Context, id int, input *NewTransferOrder) (*TransferOrder, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := input.validate(ctx, orgId); err != nil {
		return nil, err
	}

	order, err := utils.FetchModel[TransferOrder](ctx, orgId, id)
	if err != nil {
		return nil, err
	}
	if order.Status != TransferOrderStatusPending {
		return nil, utils.NewStateError("only pending transfers can be updated")
	}

	details := make([]TransferOrderDetail, 0, len(input.Details))
	for _, d := range input.Details {
		details = append(details, TransferOrderDetail{
			TransferOrderId: id,
			MaterialId:      d.MaterialId,
			Quantity:        d.Quantity,
		})
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	result := tx.Model(&TransferOrder{}).
		Where("id = ? AND org_id = ? AND status = ?", id, orgId, TransferOrderStatusPending).
		Updates(map[string]interface{}{
			"FromWarehouseId": input.FromWarehouseId,
			"ToWarehouseId":   input.ToWarehouseId,
			"OrderDate":       utils.DereferencePtr(input.OrderDate, order.OrderDate),
			"Remarks":         input.Remarks,
		})
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, utils.NewStateError("only pending transfers can be updated")
	}

	if err := tx.Where("transfer_order_id = ?", id).Delete(&TransferOrderDetail{}).Error; err != nil {
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
	return GetTransferOrder(ctx, id)
}

// ApproveTransferOrder reserves every line at the source warehouse. A
// shortfall on any line rolls back the reservation and the status flip.
func ApproveTransferOrder(ctx context.Context, id int) (*TransferOrder, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	release, err := utils.OrgLock(ctx, orgId, "stock", "models", "ApproveTransferOrder")
	if err != nil {
		return nil, err
	}
	defer release()

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	result := tx.Model(&TransferOrder{}).
		Where("id = ? AND org_id = ? AND status = ?", id, orgId, TransferOrderStatusPending).
		Update("status", TransferOrderStatusApproved)
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		if _, err := utils.FetchModel[TransferOrder](ctx, orgId, id); err != nil {
			return nil, err
		}
		return nil, utils.NewStateError("only pending transfers can be approved")
	}

	// Load the lines after the status flip so a racing line edit cannot
	// hand us stale details.
	var order TransferOrder
	if err := tx.Preload("Details").
		Where("id = ? AND org_id = ?", id, orgId).
		First(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, detail := range order.Details {
		if err := ReserveStockTx(tx, orgId, order.FromWarehouseId, detail.MaterialId, detail.Quantity); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return GetTransferOrder(ctx, id)
}

// ReceiveTransferOrder completes the transfer: the source reservation
// is consumed (OUT usage) and the destination credited (IN usage), all
// in one transaction guarded by the transient RECEIVING status.
func ReceiveTransferOrder(ctx context.Context, id int) (*TransferOrder, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	release, err := utils.OrgLock(ctx, orgId, "stock", "models", "ReceiveTransferOrder")
	if err != nil {
		return nil, err
	}
	defer release()

	actor := ActorFromContext(ctx)

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	result := tx.Model(&TransferOrder{}).
		Where("id = ? AND org_id = ? AND status = ?", id, orgId, TransferOrderStatusApproved).
		Update("status", TransferOrderStatusReceiving)
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		if _, err := utils.FetchModel[TransferOrder](ctx, orgId, id); err != nil {
			return nil, err
		}
		return nil, utils.NewStateError("only approved transfers can be received")
	}

	// Load the lines after the status flip so a racing line edit cannot
	// hand us stale details.
	var order TransferOrder
	if err := tx.Preload("Details").
		Where("id = ? AND org_id = ?", id, orgId).
		First(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, detail := range order.Details {
		if err := ConsumeStockTx(tx, orgId, order.FromWarehouseId, detail.MaterialId, detail.Quantity,
			StockReferenceTypeWarehouseTransfer, order.ID, actor); err != nil {
			return nil, err
		}
		if err := StockInTx(tx, orgId, order.ToWarehouseId, detail.MaterialId, detail.Quantity,
			StockReferenceTypeWarehouseTransfer, order.ID, actor); err != nil {
			return nil, err
		}
	}

	result = tx.Model(&TransferOrder{}).
		Where("id = ? AND org_id = ? AND status = ?", id, orgId, TransferOrderStatusReceiving).
		Update("status", TransferOrderStatusReceived)
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, utils.NewStateError("transfer left receiving state unexpectedly")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return GetTransferOrder(ctx, id)
}

// CancelTransferOrder is PENDING-only; an approved transfer holds live
// reservations and must be received instead.
func CancelTransferOrder(ctx context.Context, id int) (*TransferOrder, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	db := config.GetDB()
	result := db.WithContext(ctx).Model(&TransferOrder{}).
		Where("id = ? AND org_id = ? AND status = ?", id, orgId, TransferOrderStatusPending).
		Update("status", TransferOrderStatusCancelled)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := utils.FetchModel[TransferOrder](ctx, orgId, id); err != nil {
			return nil, err
		}
		return nil, utils.NewStateError("only pending transfers can be cancelled")
	}
	return GetTransferOrder(ctx, id)
}

func GetTransferOrder(ctx context.Context, id int) (*TransferOrder, error) {
	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}
	return utils.FetchModel[TransferOrder](ctx, orgId, id,
		"FromWarehouse", "ToWarehouse", "Details", "Details.Material")
}

func ListTransferOrder(ctx context.Context, status *TransferOrderStatus, warehouseId *int, page int, limit int) ([]*TransferOrder, *Pagination, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, nil, errors.New("org id is required")
	}

	page, limit = NormalizePage(page, limit)

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&TransferOrder{}).Where("org_id = ?", orgId)
	if status != nil && status.Valid() {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if warehouseId != nil && *warehouseId > 0 {
		dbCtx = dbCtx.Where("from_warehouse_id = ? OR to_warehouse_id = ?", *warehouseId, *warehouseId)
	}

	var total int64
	if err := dbCtx.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var results []*TransferOrder
	err := dbCtx.Preload("FromWarehouse").Preload("ToWarehouse").Preload("Details").
		Order("id DESC").
		Scopes(Paginate(page, limit)).
		Find(&results).Error
	if err != nil {
		return nil, nil, err
	}
	return results, NewPagination(total, page, limit), nil
}
