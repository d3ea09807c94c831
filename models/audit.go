package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
)

// Actor is the identity snapshot written into created_by/deleted_by audit
// columns. Stored flattened via gorm's embedded prefix.
type Actor struct {
	UserId int    `gorm:"index" json:"user_id"`
	Name   string `gorm:"size:100" json:"name"`
	Email  string `gorm:"size:100" json:"email"`
}

// DeletionStamp records who soft-deleted a row and when.
type DeletionStamp struct {
	UserId    int        `json:"user_id"`
	Name      string     `gorm:"size:100" json:"name"`
	Email     string     `gorm:"size:100" json:"email"`
	DeletedAt *time.Time `json:"deleted_at"`
}

func ActorFromContext(ctx context.Context) Actor {
	userId, _ := utils.GetUserIdFromContext(ctx)
	name, _ := utils.GetUserNameFromContext(ctx)
	email, _ := utils.GetUserEmailFromContext(ctx)
	return Actor{
		UserId: userId,
		Name:   name,
		Email:  email,
	}
}

func DeletionStampFromContext(ctx context.Context) DeletionStamp {
	actor := ActorFromContext(ctx)
	now := time.Now()
	return DeletionStamp{
		UserId:    actor.UserId,
		Name:      actor.Name,
		Email:     actor.Email,
		DeletedAt: &now,
	}
}
