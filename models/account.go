package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/bizmanage_backend/config"
	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
	"github.com/shopspring/decimal"
)

// Account is a money account (cash box, bank account). current_balance
// only moves through payment application and reversal, inside the same
// transaction as the payment row.
type Account struct {
	ID             int             `gorm:"primary_key" json:"id"`
	OrgId          string          `gorm:"index;not null" json:"org_id"`
	Name           string          `gorm:"size:100;not null" json:"name" binding:"required"`
	AccountType    AccountType     `gorm:"size:20;not null" json:"account_type"`
	AccountNumber  string          `gorm:"size:50" json:"account_number"`
	BankName       string          `gorm:"size:100" json:"bank_name"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"opening_balance"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"current_balance"`
	IsActive       *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a Account) GetOrgId() string {
	return a.OrgId
}

type NewAccount struct {
	Name           string          `json:"name" binding:"required"`
	AccountType    AccountType     `json:"account_type" binding:"required"`
	AccountNumber  string          `json:"account_number"`
	BankName       string          `json:"bank_name"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

func (input *NewAccount) validate(ctx context.Context, orgId string, id int) error {
	if err := utils.ValidateUnique[Account](ctx, orgId, "name", input.Name, id); err != nil {
		return err
	}
	if !input.AccountType.Valid() {
		return utils.NewValidationError("account_type", "invalid account type")
	}
	return nil
}

func CreateAccount(ctx context.Context, input *NewAccount) (*Account, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := input.validate(ctx, orgId, 0); err != nil {
		return nil, err
	}

	account := Account{
		OrgId:          orgId,
		Name:           input.Name,
		AccountType:    input.AccountType,
		AccountNumber:  input.AccountNumber,
		BankName:       input.BankName,
		OpeningBalance: input.OpeningBalance,
		CurrentBalance: input.OpeningBalance,
		IsActive:       utils.NewTrue(),
	}

	db := config.GetDB()
	err := db.WithContext(ctx).Create(&account).Error
	if err != nil {
		return nil, err
	}
	utils.RemoveRedisList[Account](orgId)
	return &account, nil
}

// UpdateAccount edits identity fields only; balances stay untouched.
func UpdateAccount(ctx context.Context, id int, input *NewAccount) (*Account, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := input.validate(ctx, orgId, id); err != nil {
		return nil, err
	}

	account, err := utils.FetchModel[Account](ctx, orgId, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&account).Updates(map[string]interface{}{
		"Name":          input.Name,
		"AccountType":   input.AccountType,
		"AccountNumber": input.AccountNumber,
		"BankName":      input.BankName,
	}).Error
	if err != nil {
		return nil, err
	}

	utils.RemoveRedisItem[Account](id)
	utils.RemoveRedisList[Account](orgId)
	return account, nil
}

func DeleteAccount(ctx context.Context, id int) (*Account, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	db := config.GetDB()
	result, err := utils.FetchModel[Account](ctx, orgId, id)
	if err != nil {
		return nil, err
	}
	if !result.CurrentBalance.IsZero() {
		return nil, utils.NewStateError("account balance is not zero")
	}

	count, err := utils.ResourceCountWhere[Payment](ctx, orgId, "account_id = ? AND deleted_at IS NULL", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.NewStateError("account has payments")
	}

	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}
	utils.RemoveRedisItem[Account](id)
	utils.RemoveRedisList[Account](orgId)
	return result, nil
}

func GetAccount(ctx context.Context, id int) (*Account, error) {
	return GetResource[Account](ctx, id)
}

func ListAccount(ctx context.Context) ([]*Account, error) {
	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	db := config.GetDB()
	var results []*Account
	err := db.WithContext(ctx).Where("org_id = ?", orgId).
		Order("name").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func ToggleActiveAccount(ctx context.Context, id int, isActive bool) (*Account, error) {
	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}
	return ToggleActiveModel[Account](ctx, orgId, id, isActive)
}
