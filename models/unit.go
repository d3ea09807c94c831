package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/bizmanage_backend/config"
	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
)

// Unit is the measurement unit a material is stocked in (pcs, kg, box).
type Unit struct {
	ID           int       `gorm:"primary_key" json:"id"`
	OrgId        string    `gorm:"index;not null" json:"org_id"`
	Name         string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Abbreviation string    `gorm:"size:20" json:"abbreviation"`
	Precision    int       `gorm:"default:0" json:"precision"`
	IsActive     *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u Unit) GetOrgId() string {
	return u.OrgId
}

type NewUnit struct {
	Name         string `json:"name" binding:"required"`
	Abbreviation string `json:"abbreviation"`
	Precision    int    `json:"precision"`
}

func (input *NewUnit) validate(ctx context.Context, orgId string, id int) error {
	if err := utils.ValidateUnique[Unit](ctx, orgId, "name", input.Name, id); err != nil {
		return err
	}
	if input.Precision < 0 || input.Precision > 4 {
		return utils.NewValidationError("precision", "precision must be between 0 and 4")
	}
	return nil
}

func CreateUnit(ctx context.Context, input *NewUnit) (*Unit, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := input.validate(ctx, orgId, 0); err != nil {
		return nil, err
	}

	unit := Unit{
		OrgId:        orgId,
		Name:         input.Name,
		Abbreviation: input.Abbreviation,
		Precision:    input.Precision,
		IsActive:     utils.NewTrue(),
	}

	db := config.GetDB()
	err := db.WithContext(ctx).Create(&unit).Error
	if err != nil {
		return nil, err
	}
	utils.RemoveRedisList[Unit](orgId)
	return &unit, nil
}

func UpdateUnit(ctx context.Context, id int, input *NewUnit) (*Unit, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	if err := input.validate(ctx, orgId, id); err != nil {
		return nil, err
	}

	unit, err := utils.FetchModel[Unit](ctx, orgId, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&unit).Updates(map[string]interface{}{
		"Name":         input.Name,
		"Abbreviation": input.Abbreviation,
		"Precision":    input.Precision,
	}).Error
	if err != nil {
		return nil, err
	}

	utils.RemoveRedisItem[Unit](id)
	utils.RemoveRedisList[Unit](orgId)
	return unit, nil
}

func DeleteUnit(ctx context.Context, id int) (*Unit, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}

	db := config.GetDB()
	result, err := utils.FetchModel[Unit](ctx, orgId, id)
	if err != nil {
		return nil, err
	}

	// check if unit is used
	count, err := utils.ResourceCountWhere[Material](ctx, orgId, "unit_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.NewStateError("unit is used by materials")
	}

	err = db.WithContext(ctx).Delete(&result).Error
	if err != nil {
		return nil, err
	}
	utils.RemoveRedisItem[Unit](id)
	utils.RemoveRedisList[Unit](orgId)
	return result, nil
}

func GetUnit(ctx context.Context, id int) (*Unit, error) {
	return GetResource[Unit](ctx, id)
}

func ListUnit(ctx context.Context) ([]*Unit, error) {
	return ListResources[Unit](ctx)
}

func ToggleActiveUnit(ctx context.Context, id int, isActive bool) (*Unit, error) {
	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}
	return ToggleActiveModel[Unit](ctx, orgId, id, isActive)
}
