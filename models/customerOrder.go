package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/bizmanage_backend/config"
	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
	"github.com/shopspring/decimal"
)

// CustomerOrder is a sales order. Delivery debits available stock line
// by line; any shortfall rolls back the whole delivery.
type CustomerOrder struct {
	ID          int                   `gorm:"primary_key" json:"id"`
	OrgId       string                `gorm:"index;not null" json:"org_id"`
	OrderNumber string                `gorm:"size:30;index;not null" json:"order_number"`
	CustomerId  int                   `gorm:"index;not null" json:"customer_id"`
	Customer    *Customer             `json:"customer,omitempty"`
	WarehouseId int                   `gorm:"not null" json:"warehouse_id"`
	Warehouse   *Warehouse            `json:"warehouse,omitempty"`
	Status      CustomerOrderStatus   `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	OrderDate   time.Time             `json:"order_date"`
	Remarks     string                `gorm:"type:text" json:"remarks"`
	TotalAmount decimal.Decimal       `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	Details     []CustomerOrderDetail `gorm:"foreignKey:CustomerOrderId" json:"details"`
	UserId      int                   `json:"user_id"`
	UserName    string                `gorm:"size:100" json:"user_name"`
	CreatedAt   time.Time             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time             `gorm:"autoUpdateTime" json:"updated_at"`
}

type CustomerOrderDetail struct {
	ID              int             `gorm:"primary_key" json:"id"`
	CustomerOrderId int             `gorm:"index;not null" json:"customer_order_id"`
	MaterialId      int             `gorm:"not null" json:"material_id"`
	Material        *Material       `json:"material,omitempty"`
	Quantity        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	Rate            decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"rate"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
}

type NewCustomerOrder struct {
	CustomerId  int                      `json:"customer_id" binding:"required"`
	WarehouseId int                      `json:"warehouse_id" binding:"required"`
	OrderDate   *time.Time               `json:"order_date"`
	Remarks     string                   `json:"remarks"`
	Details     []NewCustomerOrderDetail `json:"details" binding:"required,dive"`
}

type NewCustomerOrderDetail struct {
	MaterialId int             `json:"material_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	Rate       decimal.Decimal `json:"rate"`
}

func (input *NewCustomerOrder) validate(ctx context.Context, orgId string) error {
	if err := utils.ValidateResourceId[Customer](ctx, orgId, input.CustomerId); err != nil {
		return utils.NewValidationError("customer_id", "customer not found")
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

func (input *NewCustomerOrder) buildDetails() ([]CustomerOrderDetail, decimal.Decimal) {
	details := make([]CustomerOrderDetail, 0, len(input.Details))
	total := decimal.Zero
	for _, d := range input.Details {
		amount := d.Quantity.Mul(d.Rate)
		details = append(details, CustomerOrderDetail{
			MaterialId: d.MaterialId,
			Quantity:   d.Quantity,
			Rate:       d.Rate,
			Amount:     amount,
		})
		total = total.Add(amount)
	}
	return details, total
}

func CreateCustomerOrder(ctx context.Context, input *NewCustomerOrder) (*CustomerOrder, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := input.validate(ctx, orgId); err != nil {
		return nil, err
	}

	details, total := input.buildDetails()
	actor := ActorFromContext(ctx)

	order := CustomerOrder{
		OrgId:       orgId,
		CustomerId:  input.CustomerId,
		WarehouseId: input.WarehouseId,
		Status:      CustomerOrderStatusPending,
		OrderDate:   utils.DereferencePtr(input.OrderDate, time.Now()),
		Remarks:     input.Remarks,
		TotalAmount: total,
		Details:     details,
		UserId:      actor.UserId,
		UserName:    actor.Name,
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	orderNumber, err := NextDocumentNumber(tx, orgId, DocumentTypeCustomerOrder)
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

func UpdateCustomerOrder(ctx context.Context, id int, input *NewCustomerOrder) (*CustomerOrder, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := input.validate(ctx, orgId); err != nil {
		return nil, err
	}

	order, err := utils.FetchModel[CustomerOrder](ctx, orgId, id)
	if err != nil {
		return nil, err
	}
	if order.Status != CustomerOrderStatusPending {
		return nil, utils.NewStateError("only pending orders can be updated")
	}

	details, total := input.buildDetails()
	for i := range details {
		details[i].CustomerOrderId = id
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	result := tx.Model(&CustomerOrder{}).
		Where("id = ? AND org_id = ? AND status = ?", id, orgId, CustomerOrderStatusPending).
		Updates(map[string]interface{}{
			"CustomerId":  input.CustomerId,
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

	if err := tx.Where("customer_order_id = ?", id).Delete(&CustomerOrderDetail{}).Error; err != nil {
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
	return GetCustomerOrder(ctx, id)
}

func ConfirmCustomerOrder(ctx context.Context, id int) (*CustomerOrder, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	db := config.GetDB()
	result := db.WithContext(ctx).Model(&CustomerOrder{}).
		Where("id = ? AND org_id = ? AND status = ?", id, orgId, CustomerOrderStatusPending).
		Update("status", CustomerOrderStatusConfirmed)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := utils.FetchModel[CustomerOrder](ctx, orgId, id); err != nil {
			return nil, err
		}
		return nil, utils.NewStateError("only pending orders can be confirmed")
	}
	return GetCustomerOrder(ctx, id)
}

// DeliverCustomerOrder debits stock for every line at the order's
// warehouse. Each line reserves then consumes inside the same
// transaction, so the net effect is a guarded available_qty decrement
// plus an OUT usage entry. A shortfall on any line aborts everything
// and the order stays CONFIRMED.
func DeliverCustomerOrder(ctx context.Context, id int) (*CustomerOrder, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	release, err := utils.OrgLock(ctx, orgId, "stock", "models", "DeliverCustomerOrder")
	if err != nil {
		return nil, err
	}
	defer release()

	actor := ActorFromContext(ctx)

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	result := tx.Model(&CustomerOrder{}).
		Where("id = ? AND org_id = ? AND status = ?", id, orgId, CustomerOrderStatusConfirmed).
		Update("status", CustomerOrderStatusDelivering)
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		if _, err := utils.FetchModel[CustomerOrder](ctx, orgId, id); err != nil {
			return nil, err
		}
		return nil, utils.NewStateError("only confirmed orders can be delivered")
	}

	// Load the lines after the status flip so a racing line edit cannot
	// hand us stale details.
	var order CustomerOrder
	if err := tx.Preload("Details").
		Where("id = ? AND org_id = ?", id, orgId).
		First(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, detail := range order.Details {
		if err := ReserveStockTx(tx, orgId, order.WarehouseId, detail.MaterialId, detail.Quantity); err != nil {
			return nil, err
		}
		if err := ConsumeStockTx(tx, orgId, order.WarehouseId, detail.MaterialId, detail.Quantity,
			StockReferenceTypeCustomerOrder, order.ID, actor); err != nil {
			return nil, err
		}
	}

	result = tx.Model(&CustomerOrder{}).
		Where("id = ? AND org_id = ? AND status = ?", id, orgId, CustomerOrderStatusDelivering).
		Update("status", CustomerOrderStatusDelivered)
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, utils.NewStateError("order left delivering state unexpectedly")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return GetCustomerOrder(ctx, id)
}

func CancelCustomerOrder(ctx context.Context, id int) (*CustomerOrder, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	db := config.GetDB()
	result := db.WithContext(ctx).Model(&CustomerOrder{}).
		Where("id = ? AND org_id = ? AND status IN ?", id, orgId,
			[]CustomerOrderStatus{CustomerOrderStatusPending, CustomerOrderStatusConfirmed}).
		Update("status", CustomerOrderStatusCancelled)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := utils.FetchModel[CustomerOrder](ctx, orgId, id); err != nil {
			return nil, err
		}
		return nil, utils.NewStateError("delivered orders cannot be cancelled")
	}
	return GetCustomerOrder(ctx, id)
}

func GetCustomerOrder(ctx context.Context, id int) (*CustomerOrder, error) {
	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}
	return utils.FetchModel[CustomerOrder](ctx, orgId, id, "Customer", "Warehouse", "Details", "Details.Material")
}

func ListCustomerOrder(ctx context.Context, status *CustomerOrderStatus, customerId *int, page int, limit int) ([]*CustomerOrder, *Pagination, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, nil, errors.New("org id is required")
	}

	page, limit = NormalizePage(page, limit)

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&CustomerOrder{}).Where("org_id = ?", orgId)
	if status != nil && status.Valid() {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if customerId != nil && *customerId > 0 {
		dbCtx = dbCtx.Where("customer_id = ?", *customerId)
	}

	var total int64
	if err := dbCtx.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var results []*CustomerOrder
	err := dbCtx.Preload("Customer").Preload("Details").
		Order("id DESC").
		Scopes(Paginate(page, limit)).
		Find(&results).Error
	if err != nil {
		return nil, nil, err
	}
	return results, NewPagination(total, page, limit), nil
}
