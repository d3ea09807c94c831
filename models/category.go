package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/bizmanage_backend/config"
	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
)

type Category struct {
	ID          int       `gorm:"primary_key" json:"id"`
	OrgId       string    `gorm:"index;not null" json:"org_id"`
	Name        string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c Category) GetOrgId() string {
	return c.OrgId
}

type NewCategory struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (input *NewCategory) validate(ctx context.Context, orgId string, id int) error {
	return utils.ValidateUnique[Category](ctx, orgId, "name", input.Name, id)
}

func CreateCategory(ctx context.Context, input *NewCategory) (*Category, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := input.validate(ctx, orgId, 0); err != nil {
		return nil, err
	}

	category := Category{
		OrgId:       orgId,
		Name:        input.Name,
		Description: input.Description,
		IsActive:    utils.NewTrue(),
	}

	db := config.GetDB()
	err := db.WithContext(ctx).Create(&category).Error
	if err != nil {
		return nil, err
	}
	utils.RemoveRedisList[Category](orgId)
	return &category, nil
}

func UpdateCategory(ctx context.Context, id int, input *NewCategory) (*Category, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := input.validate(ctx, orgId, id); err != nil {
		return nil, err
	}

	category, err := utils.FetchModel[Category](ctx, orgId, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&category).Updates(map[string]interface{}{
		"Name":        input.Name,
		"Description": input.Description,
	}).Error
	if err != nil {
		return nil, err
	}

	utils.RemoveRedisItem[Category](id)
	utils.RemoveRedisList[Category](orgId)
	return category, nil
}

func DeleteCategory(ctx context.Context, id int) (*Category, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	db := config.GetDB()
	result, err := utils.FetchModel[Category](ctx, orgId, id)
	if err != nil {
		return nil, err
	}

	count, err := utils.ResourceCountWhere[Material](ctx, orgId, "category_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.NewStateError("category is used by materials")
	}

	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}
	utils.RemoveRedisItem[Category](id)
	utils.RemoveRedisList[Category](orgId)
	return result, nil
}

func GetCategory(ctx context.Context, id int) (*Category, error) {
	return GetResource[Category](ctx, id)
}

func ListCategory(ctx context.Context) ([]*Category, error) {
	return ListResources[Category](ctx)
}

func ToggleActiveCategory(ctx context.Context, id int, isActive bool) (*Category, error) {
	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}
	return ToggleActiveModel[Category](ctx, orgId, id, isActive)
}
