package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/bizmanage_backend/config"
	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
)

type Customer struct {
	ID        int       `gorm:"primary_key" json:"id"`
	OrgId     string    `gorm:"index;not null" json:"org_id"`
	Name      string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Email     string    `gorm:"size:100" json:"email"`
	Address   string    `gorm:"type:text" json:"address"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c Customer) GetOrgId() string {
	return c.OrgId
}

type NewCustomer struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (input *NewCustomer) validate(ctx context.Context, orgId string, id int) error {
	// name
	if err := utils.ValidateUnique[Customer](ctx, orgId, "name", input.Name, id); err != nil {
		return err
	}
	// phone
	if len(strings.TrimSpace(input.Phone)) > 0 {
		normalized, err := utils.NormalizePhoneNumber(input.Phone, utils.CountryCode)
		if err != nil {
			return utils.NewValidationError("phone", "invalid phone number")
		}
		input.Phone = normalized
	}
	// email
	if len(strings.TrimSpace(input.Email)) > 0 && !utils.IsValidEmail(input.Email) {
		return utils.NewValidationError("email", "invalid email")
	}
	return nil
}

func CreateCustomer(ctx context.Context, input *NewCustomer) (*Customer, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := input.validate(ctx, orgId, 0); err != nil {
		return nil, err
	}

	customer := Customer{
		OrgId:    orgId,
		Name:     input.Name,
		Phone:    input.Phone,
		Email:    input.Email,
		Address:  input.Address,
		IsActive: utils.NewTrue(),
	}

	db := config.GetDB()
	err := db.WithContext(ctx).Create(&customer).Error
	if err != nil {
		return nil, err
	}
	utils.RemoveRedisList[Customer](orgId)
	return &customer, nil
}

func UpdateCustomer(ctx context.Context, id int, input *NewCustomer) (*Customer, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := input.validate(ctx, orgId, id); err != nil {
		return nil, err
	}

	customer, err := utils.FetchModel[Customer](ctx, orgId, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&customer).Updates(map[string]interface{}{
		"Name":    input.Name,
		"Phone":   input.Phone,
		"Email":   input.Email,
		"Address": input.Address,
	}).Error
	if err != nil {
		return nil, err
	}

	utils.RemoveRedisItem[Customer](id)
	utils.RemoveRedisList[Customer](orgId)
	return customer, nil
}

func DeleteCustomer(ctx context.Context, id int) (*Customer, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	db := config.GetDB()
	result, err := utils.FetchModel[Customer](ctx, orgId, id)
	if err != nil {
		return nil, err
	}

	count, err := utils.ResourceCountWhere[CustomerOrder](ctx, orgId, "customer_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.NewStateError("customer has orders")
	}

	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}
	utils.RemoveRedisItem[Customer](id)
	utils.RemoveRedisList[Customer](orgId)
	return result, nil
}

func GetCustomer(ctx context.Context, id int) (*Customer, error) {
	return GetResource[Customer](ctx, id)
}

func ListCustomer(ctx context.Context, name *string) ([]*Customer, error) {
	if name == nil {
		return ListResources[Customer](ctx)
	}

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	db := config.GetDB()
	var results []*Customer

	dbCtx := db.WithContext(ctx).Where("org_id = ?", orgId)
	if name != nil && len(*name) > 0 {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*name+"%")
	}
	err := dbCtx.Order("name").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func ToggleActiveCustomer(ctx context.Context, id int, isActive bool) (*Customer, error) {
	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}
	return ToggleActiveModel[Customer](ctx, orgId, id, isActive)
}
