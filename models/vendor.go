package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/bizmanage_backend/config"
	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
)

type Vendor struct {
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

func (v Vendor) GetOrgId() string {
	return v.OrgId
}

type NewVendor struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (input *NewVendor) validate(ctx context.Context, orgId string, id int) error {
	// name
	if err := utils.ValidateUnique[Vendor](ctx, orgId, "name", input.Name, id); err != nil {
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

func CreateVendor(ctx context.Context, input *NewVendor) (*Vendor, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := input.validate(ctx, orgId, 0); err != nil {
		return nil, err
	}

	vendor := Vendor{
		OrgId:    orgId,
		Name:     input.Name,
		Phone:    input.Phone,
		Email:    input.Email,
		Address:  input.Address,
		IsActive: utils.NewTrue(),
	}

	db := config.GetDB()
	err := db.WithContext(ctx).Create(&vendor).Error
	if err != nil {
		return nil, err
	}
	utils.RemoveRedisList[Vendor](orgId)
	return &vendor, nil
}

func UpdateVendor(ctx context.Context, id int, input *NewVendor) (*Vendor, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := input.validate(ctx, orgId, id); err != nil {
		return nil, err
	}

	vendor, err := utils.FetchModel[Vendor](ctx, orgId, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&vendor).Updates(map[string]interface{}{
		"Name":    input.Name,
		"Phone":   input.Phone,
		"Email":   input.Email,
		"Address": input.Address,
	}).Error
	if err != nil {
		return nil, err
	}

	utils.RemoveRedisItem[Vendor](id)
	utils.RemoveRedisList[Vendor](orgId)
	return vendor, nil
}

func DeleteVendor(ctx context.Context, id int) (*Vendor, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	db := config.GetDB()
	result, err := utils.FetchModel[Vendor](ctx, orgId, id)
	if err != nil {
		return nil, err
	}

	count, err := utils.ResourceCountWhere[VendorOrder](ctx, orgId, "vendor_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.NewStateError("vendor has orders")
	}

	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}
	utils.RemoveRedisItem[Vendor](id)
	utils.RemoveRedisList[Vendor](orgId)
	return result, nil
}

func GetVendor(ctx context.Context, id int) (*Vendor, error) {
	return GetResource[Vendor](ctx, id)
}

func ListVendor(ctx context.Context, name *string) ([]*Vendor, error) {
	if name == nil {
		return ListResources[Vendor](ctx)
	}

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	db := config.GetDB()
	var results []*Vendor

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

func ToggleActiveVendor(ctx context.Context, id int, isActive bool) (*Vendor, error) {
	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}
	return ToggleActiveModel[Vendor](ctx, orgId, id, isActive)
}
