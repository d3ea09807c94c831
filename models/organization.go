package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/bizmanage_backend/config"
	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Organization is the tenant boundary. Every other entity carries its id.
type Organization struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Email     string    `gorm:"size:100" json:"email"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (org *Organization) BeforeCreate(tx *gorm.DB) error {
	if org.ID == uuid.Nil {
		org.ID = uuid.New()
	}
	return nil
}

type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	OrgId     string    `gorm:"index;not null" json:"org_id"`
	Name      string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Email     string    `gorm:"index;size:100;not null" json:"email" binding:"required"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      string    `gorm:"size:20;default:'USER'" json:"role"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewOrganization struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CreateOrganization creates the tenant and its admin user in one transaction.
func CreateOrganization(ctx context.Context, input *NewOrganization, adminName string, adminEmail string, adminPassword string) (*Organization, *User, error) {

	if len(strings.TrimSpace(adminEmail)) == 0 || !utils.IsValidEmail(adminEmail) {
		return nil, nil, utils.NewValidationError("email", "valid admin email is required")
	}
	if len(strings.TrimSpace(input.Phone)) > 0 {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return nil, nil, utils.NewValidationError("phone", "valid phone number is required")
		}
	}

	db := config.GetDB()
	var emailCount int64
	if err := db.WithContext(ctx).Model(&User{}).
		Where("email = ?", adminEmail).Count(&emailCount).Error; err != nil {
		return nil, nil, err
	}
	if emailCount > 0 {
		return nil, nil, utils.NewConflictError("duplicate email")
	}

	hashed, err := utils.HashPassword(adminPassword)
	if err != nil {
		return nil, nil, err
	}

	org := Organization{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Address:  input.Address,
		IsActive: utils.NewTrue(),
	}

	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&org).Error; err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	admin := User{
		OrgId:    org.ID.String(),
		Name:     adminName,
		Email:    adminEmail,
		Password: string(hashed),
		Role:     "ADMIN",
		IsActive: utils.NewTrue(),
	}
	if err := tx.WithContext(ctx).Create(&admin).Error; err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, nil, err
	}
	return &org, &admin, nil
}

// GetUser resolves a token's user id back to its row. The id comes from a
// signed token, so the lookup is by primary key with the org checked after.
func GetUser(ctx context.Context, id int) (*User, error) {
	user, err := utils.FetchSingleModel[User](ctx, id)
	if err != nil {
		return nil, err
	}
	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || user.OrgId != orgId {
		return nil, utils.ErrorRecordNotFound
	}
	return user, nil
}

// GetUserByEmail is used by login, which runs before any org scope is
// known; emails are globally unique.
func GetUserByEmail(ctx context.Context, email string) (*User, error) {
	db := config.GetDB()
	var user User
	err := db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}
