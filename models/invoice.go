package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/bizmanage_backend/config"
	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

// Invoice covers vendor bills, customer invoices and free-standing
// finance documents in one table, discriminated by invoice_type.
// paid_amount and due_amount only move through payment application.
type Invoice struct {
	ID            int             `gorm:"primary_key" json:"id"`
	OrgId         string          `gorm:"index;not null" json:"org_id"`
	InvoiceNumber string          `gorm:"size:30;index;not null" json:"invoice_number"`
	InvoiceType   InvoiceType     `gorm:"size:20;not null" json:"invoice_type"`
	VendorId      int             `gorm:"index" json:"vendor_id,omitempty"`
	Vendor        *Vendor         `json:"vendor,omitempty"`
	CustomerId    int             `gorm:"index" json:"customer_id,omitempty"`
	Customer      *Customer       `json:"customer,omitempty"`
	OrderId       int             `gorm:"index" json:"order_id,omitempty"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Tax           decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total_amount"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"paid_amount"`
	DueAmount     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"due_amount"`
	PaymentStatus PaymentStatus   `gorm:"size:20;not null;default:'UNPAID'" json:"payment_status"`
	Remarks       string          `gorm:"type:text" json:"remarks"`
	UserId        int             `json:"user_id"`
	UserName      string          `gorm:"size:100" json:"user_name"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewInvoice struct {
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceType   InvoiceType     `json:"invoice_type" binding:"required"`
	VendorId      int             `json:"vendor_id"`
	CustomerId    int             `json:"customer_id"`
	OrderId       int             `json:"order_id"`
	InvoiceDate   *time.Time      `json:"invoice_date"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Tax           decimal.Decimal `json:"tax"`
	Remarks       string          `json:"remarks"`
}

func (input *NewInvoice) validate(ctx context.Context, orgId string, id int) error {
	if !input.InvoiceType.Valid() {
		return utils.NewValidationError("invoice_type", "invalid invoice type")
	}
	if input.Amount.IsNegative() {
		return utils.NewValidationError("amount", "amount cannot be negative")
	}
	if input.Tax.IsNegative() {
		return utils.NewValidationError("tax", "tax cannot be negative")
	}
	switch input.InvoiceType {
	case InvoiceTypeVendor:
		if err := utils.ValidateResourceId[Vendor](ctx, orgId, input.VendorId); err != nil {
			return utils.NewValidationError("vendor_id", "vendor not found")
		}
		if input.OrderId > 0 {
			if err := utils.ValidateResourceId[VendorOrder](ctx, orgId, input.OrderId); err != nil {
				return utils.NewValidationError("order_id", "vendor order not found")
			}
		}
	case InvoiceTypeCustomer:
		if err := utils.ValidateResourceId[Customer](ctx, orgId, input.CustomerId); err != nil {
			return utils.NewValidationError("customer_id", "customer not found")
		}
		if input.OrderId > 0 {
			if err := utils.ValidateResourceId[CustomerOrder](ctx, orgId, input.OrderId); err != nil {
				return utils.NewValidationError("order_id", "customer order not found")
			}
		}
	}
	if len(strings.TrimSpace(input.InvoiceNumber)) > 0 {
		if err := utils.ValidateUnique[Invoice](ctx, orgId, "invoice_number", input.InvoiceNumber, id); err != nil {
			return err
		}
	}
	return nil
}

func invoiceDocumentType(invoiceType InvoiceType) DocumentType {
	switch invoiceType {
	case InvoiceTypeVendor:
		return DocumentTypeVendorInvoice
	case InvoiceTypeCustomer:
		return DocumentTypeCustomerInvoice
	}
	return DocumentTypeFinanceInvoice
}

func CreateInvoice(ctx context.Context, input *NewInvoice) (*Invoice, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := input.validate(ctx, orgId, 0); err != nil {
		return nil, err
	}

	total := input.Amount.Add(input.Tax)
	actor := ActorFromContext(ctx)

	invoice := Invoice{
		OrgId:         orgId,
		InvoiceNumber: strings.TrimSpace(input.InvoiceNumber),
		InvoiceType:   input.InvoiceType,
		VendorId:      input.VendorId,
		CustomerId:    input.CustomerId,
		OrderId:       input.OrderId,
		InvoiceDate:   utils.DereferencePtr(input.InvoiceDate, time.Now()),
		Amount:        input.Amount,
		Tax:           input.Tax,
		TotalAmount:   total,
		PaidAmount:    decimal.Zero,
		DueAmount:     total,
		PaymentStatus: PaymentStatusUnpaid,
		Remarks:       input.Remarks,
		UserId:        actor.UserId,
		UserName:      actor.Name,
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	if invoice.InvoiceNumber == "" {
		number, err := NextDocumentNumber(tx, orgId, invoiceDocumentType(input.InvoiceType))
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		invoice.InvoiceNumber = number
	}

	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// UpdateInvoice recomputes totals from the new amount and tax. An
// invoice with any payment applied is locked.
func UpdateInvoice(ctx context.Context, id int, input *NewInvoice) (*Invoice, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := input.validate(ctx, orgId, id); err != nil {
		return nil, err
	}

	total := input.Amount.Add(input.Tax)

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	var invoice Invoice
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND org_id = ?", id, orgId).
		First(&invoice).Error; err != nil {
		tx.Rollback()
		return nil, utils.ErrorRecordNotFound
	}
	if invoice.PaidAmount.IsPositive() {
		tx.Rollback()
		return nil, utils.NewStateError("invoice is locked by payments")
	}

	err := tx.Model(&invoice).Updates(map[string]interface{}{
		"VendorId":    input.VendorId,
		"CustomerId":  input.CustomerId,
		"OrderId":     input.OrderId,
		"InvoiceDate": utils.DereferencePtr(input.InvoiceDate, invoice.InvoiceDate),
		"Amount":      input.Amount,
		"Tax":         input.Tax,
		"TotalAmount": total,
		"DueAmount":   total,
		"Remarks":     input.Remarks,
	}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return GetInvoice(ctx, id)
}

func DeleteInvoice(ctx context.Context, id int) (*Invoice, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	var invoice Invoice
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND org_id = ?", id, orgId).
		First(&invoice).Error; err != nil {
		tx.Rollback()
		return nil, utils.ErrorRecordNotFound
	}
	if invoice.PaidAmount.IsPositive() {
		tx.Rollback()
		return nil, utils.NewStateError("invoice is locked by payments")
	}

	if err := tx.Delete(&invoice).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func GetInvoice(ctx context.Context, id int) (*Invoice, error) {
	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}
	return utils.FetchModel[Invoice](ctx, orgId, id, "Vendor", "Customer")
}

func ListInvoice(ctx context.Context, invoiceType *InvoiceType, paymentStatus *PaymentStatus, page int, limit int) ([]*Invoice, *Pagination, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, nil, errors.New("org id is required")
	}

	page, limit = NormalizePage(page, limit)

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&Invoice{}).Where("org_id = ?", orgId)
	if invoiceType != nil && invoiceType.Valid() {
		dbCtx = dbCtx.Where("invoice_type = ?", *invoiceType)
	}
	if paymentStatus != nil && paymentStatus.Valid() {
		dbCtx = dbCtx.Where("payment_status = ?", *paymentStatus)
	}

	var total int64
	if err := dbCtx.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var results []*Invoice
	err := dbCtx.Preload("Vendor").Preload("Customer").
		Order("id DESC").
		Scopes(Paginate(page, limit)).
		Find(&results).Error
	if err != nil {
		return nil, nil, err
	}
	return results, NewPagination(total, page, limit), nil
}
