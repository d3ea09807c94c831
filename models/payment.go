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

// Payment moves money through an Account, optionally settling an
// Invoice. applied_amount is the portion that actually hit the account
// and invoice after clamping to the outstanding due; reversal always
// uses it, so edit and remove restore balances exactly.
type Payment struct {
	ID            int              `gorm:"primary_key" json:"id"`
	OrgId         string           `gorm:"index;not null" json:"org_id"`
	AccountId     int              `gorm:"index;not null" json:"account_id"`
	Account       *Account         `json:"account,omitempty"`
	InvoiceId     int              `gorm:"index" json:"invoice_id,omitempty"`
	Invoice       *Invoice         `json:"invoice,omitempty"`
	Direction     PaymentDirection `gorm:"size:10;not null" json:"direction"`
	Amount        decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"amount"`
	AppliedAmount decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"applied_amount"`
	Mode          PaymentMode      `gorm:"size:20;not null" json:"mode"`
	PaymentDate   time.Time        `json:"payment_date"`
	Remarks       string           `gorm:"type:text" json:"remarks"`
	UserId        int              `json:"user_id"`
	UserName      string           `gorm:"size:100" json:"user_name"`
	DeletedAt     *time.Time       `gorm:"index" json:"deleted_at,omitempty"`
	DeletedById   int              `json:"deleted_by_id,omitempty"`
	DeletedByName string           `gorm:"size:100" json:"deleted_by_name,omitempty"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPayment struct {
	AccountId   int              `json:"account_id" binding:"required"`
	InvoiceId   int              `json:"invoice_id"`
	Direction   PaymentDirection `json:"direction" binding:"required"`
	Amount      decimal.Decimal  `json:"amount" binding:"required"`
	Mode        PaymentMode      `json:"mode" binding:"required"`
	PaymentDate *time.Time       `json:"payment_date"`
	Remarks     string           `json:"remarks"`
}

func (input *NewPayment) validate(ctx context.Context, orgId string) error {
	if !input.Amount.IsPositive() {
		return utils.NewValidationError("amount", "amount must be positive")
	}
	if !input.Direction.Valid() {
		return utils.NewValidationError("direction", "invalid direction")
	}
	if !input.Mode.Valid() {
		return utils.NewValidationError("mode", "invalid mode")
	}
	if err := utils.ValidateResourceId[Account](ctx, orgId, input.AccountId); err != nil {
		return utils.NewValidationError("account_id", "account not found")
	}
	if input.InvoiceId > 0 {
		if err := utils.ValidateResourceId[Invoice](ctx, orgId, input.InvoiceId); err != nil {
			return utils.NewValidationError("invoice_id", "invoice not found")
		}
	}
	return nil
}

func paymentStatusFor(paid decimal.Decimal, total decimal.Decimal) PaymentStatus {
	switch {
	case !paid.IsPositive():
		return PaymentStatusUnpaid
	case paid.GreaterThanOrEqual(total):
		return PaymentStatusPaid
	}
	return PaymentStatusPartial
}

// adjustInvoicePaidTx shifts an invoice's paid amount by delta under a
// row lock and recomputes due and payment status.
func adjustInvoicePaidTx(tx *gorm.DB, orgId string, invoiceId int, delta decimal.Decimal) error {
	var invoice Invoice
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND org_id = ?", invoiceId, orgId).
		First(&invoice).Error; err != nil {
		tx.Rollback()
		return utils.ErrorRecordNotFound
	}

	paid := invoice.PaidAmount.Add(delta)
	due := invoice.TotalAmount.Sub(paid)
	if err := tx.Model(&invoice).Updates(map[string]interface{}{
		"PaidAmount":    paid,
		"DueAmount":     due,
		"PaymentStatus": paymentStatusFor(paid, invoice.TotalAmount),
	}).Error; err != nil {
		tx.Rollback()
		return err
	}
	return nil
}

// accountDelta is the signed balance impact of an applied amount.
func accountDelta(direction PaymentDirection, applied decimal.Decimal) decimal.Decimal {
	if direction == PaymentDirectionOut {
		return applied.Neg()
	}
	return applied
}

func shiftAccountBalanceTx(tx *gorm.DB, orgId string, accountId int, delta decimal.Decimal) error {
	result := tx.Exec("UPDATE accounts SET current_balance = current_balance + ? WHERE id = ? AND org_id = ?",
		delta, accountId, orgId)
	if result.Error != nil {
		tx.Rollback()
		return result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return utils.ErrorRecordNotFound
	}
	return nil
}

// applyPaymentTx clamps against the invoice due (when linked), moves
// the invoice paid amount and the account balance, and returns the
// applied amount. Must run inside tx.
func applyPaymentTx(tx *gorm.DB, orgId string, input *NewPayment) (decimal.Decimal, error) {
	applied := input.Amount
	if input.InvoiceId > 0 {
		var invoice Invoice
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND org_id = ?", input.InvoiceId, orgId).
			First(&invoice).Error; err != nil {
			tx.Rollback()
			return decimal.Zero, utils.ErrorRecordNotFound
		}
		if applied.GreaterThan(invoice.DueAmount) {
			applied = invoice.DueAmount
		}
		if err := adjustInvoicePaidTx(tx, orgId, input.InvoiceId, applied); err != nil {
			return decimal.Zero, err
		}
	}
	if err := shiftAccountBalanceTx(tx, orgId, input.AccountId, accountDelta(input.Direction, applied)); err != nil {
		return decimal.Zero, err
	}
	return applied, nil
}

// reversePaymentTx undoes a payment's balance and invoice impact.
func reversePaymentTx(tx *gorm.DB, payment *Payment) error {
	if payment.InvoiceId > 0 {
		if err := adjustInvoicePaidTx(tx, payment.OrgId, payment.InvoiceId, payment.AppliedAmount.Neg()); err != nil {
			return err
		}
	}
	return shiftAccountBalanceTx(tx, payment.OrgId, payment.AccountId,
		accountDelta(payment.Direction, payment.AppliedAmount).Neg())
}

func CreatePayment(ctx context.Context, input *NewPayment) (*Payment, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := input.validate(ctx, orgId); err != nil {
		return nil, err
	}

	release, err := utils.OrgLock(ctx, orgId, "payment", "models", "CreatePayment")
	if err != nil {
		return nil, err
	}
	defer release()

	actor := ActorFromContext(ctx)

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	applied, err := applyPaymentTx(tx, orgId, input)
	if err != nil {
		return nil, err
	}

	payment := Payment{
		OrgId:         orgId,
		AccountId:     input.AccountId,
		InvoiceId:     input.InvoiceId,
		Direction:     input.Direction,
		Amount:        input.Amount,
		AppliedAmount: applied,
		Mode:          input.Mode,
		PaymentDate:   utils.DereferencePtr(input.PaymentDate, time.Now()),
		Remarks:       input.Remarks,
		UserId:        actor.UserId,
		UserName:      actor.Name,
	}
	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	utils.RemoveRedisItem[Account](input.AccountId)
	utils.RemoveRedisList[Account](orgId)
	return &payment, nil
}

// UpdatePayment reverses the original impact and applies the edited one
// inside a single transaction, so no reader sees a half-moved balance.
func UpdatePayment(ctx context.Context, id int, input *NewPayment) (*Payment, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := input.validate(ctx, orgId); err != nil {
		return nil, err
	}

	release, err := utils.OrgLock(ctx, orgId, "payment", "models", "UpdatePayment")
	if err != nil {
		return nil, err
	}
	defer release()

	// Fetch under the lock so a concurrent edit cannot leave us holding
	// a stale applied amount to reverse.
	payment, err := fetchLivePayment(ctx, orgId, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	if err := reversePaymentTx(tx, payment); err != nil {
		return nil, err
	}

	applied, err := applyPaymentTx(tx, orgId, input)
	if err != nil {
		return nil, err
	}

	err = tx.Model(&Payment{}).
		Where("id = ? AND org_id = ?", id, orgId).
		Updates(map[string]interface{}{
			"AccountId":     input.AccountId,
			"InvoiceId":     input.InvoiceId,
			"Direction":     input.Direction,
			"Amount":        input.Amount,
			"AppliedAmount": applied,
			"Mode":          input.Mode,
			"PaymentDate":   utils.DereferencePtr(input.PaymentDate, payment.PaymentDate),
			"Remarks":       input.Remarks,
		}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	utils.RemoveRedisItem[Account](payment.AccountId)
	utils.RemoveRedisItem[Account](input.AccountId)
	utils.RemoveRedisList[Account](orgId)
	return GetPayment(ctx, id)
}

// DeletePayment reverses the balance impact and soft-deletes the row.
func DeletePayment(ctx context.Context, id int) (*Payment, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	release, err := utils.OrgLock(ctx, orgId, "payment", "models", "DeletePayment")
	if err != nil {
		return nil, err
	}
	defer release()

	// Fetch under the lock so a concurrent edit cannot leave us holding
	// a stale applied amount to reverse.
	payment, err := fetchLivePayment(ctx, orgId, id)
	if err != nil {
		return nil, err
	}

	stamp := DeletionStampFromContext(ctx)

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()

	if err := reversePaymentTx(tx, payment); err != nil {
		return nil, err
	}

	err = tx.Model(&Payment{}).
		Where("id = ? AND org_id = ? AND deleted_at IS NULL", id, orgId).
		Updates(map[string]interface{}{
			"DeletedAt":     stamp.DeletedAt,
			"DeletedById":   stamp.UserId,
			"DeletedByName": stamp.Name,
		}).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	utils.RemoveRedisItem[Account](payment.AccountId)
	utils.RemoveRedisList[Account](orgId)
	return payment, nil
}

func fetchLivePayment(ctx context.Context, orgId string, id int) (*Payment, error) {
	db := config.GetDB()
	var payment Payment
	err := db.WithContext(ctx).
		Where("id = ? AND org_id = ? AND deleted_at IS NULL", id, orgId).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func GetPayment(ctx context.Context, id int) (*Payment, error) {
	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	db := config.GetDB()
	var payment Payment
	err := db.WithContext(ctx).
		Where("id = ? AND org_id = ? AND deleted_at IS NULL", id, orgId).
		Preload("Account").Preload("Invoice").
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func ListPayment(ctx context.Context, accountId *int, invoiceId *int, page int, limit int) ([]*Payment, *Pagination, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, nil, errors.New("org id is required")
	}

	page, limit = NormalizePage(page, limit)

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&Payment{}).
		Where("org_id = ? AND deleted_at IS NULL", orgId)
	if accountId != nil && *accountId > 0 {
		dbCtx = dbCtx.Where("account_id = ?", *accountId)
	}
	if invoiceId != nil && *invoiceId > 0 {
		dbCtx = dbCtx.Where("invoice_id = ?", *invoiceId)
	}

	var total int64
	if err := dbCtx.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var results []*Payment
	err := dbCtx.Preload("Account").Preload("Invoice").
		Order("id DESC").
		Scopes(Paginate(page, limit)).
		Find(&results).Error
	if err != nil {
		return nil, nil, err
	}
	return results, NewPagination(total, page, limit), nil
}
