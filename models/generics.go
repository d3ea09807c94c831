package models

import (
	"context"
	"errors"

	"bitbucket.org/mmdatafocus/bizmanage_backend/config"
	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
)

type Resource interface {
	GetOrgId() string
}

// first find in redis, then in db, using ctx's org_id in WHERE, cache result
// (may return RecordNotFound error)
func GetResource[T Resource](ctx context.Context, id int, associations ...string) (*T, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}
	// find in redis
	result, err := utils.RetrieveRedis[T](id)
	if err != nil {
		return nil, err
	}
	// if not found in redis
	if result == nil {
		// fetch from db
		result, err = utils.FetchModel[T](ctx, orgId, id, associations...)
		if err != nil {
			return nil, err
		}

		// store in redis
		if err := utils.StoreRedis[T](result, id); err != nil {
			return nil, err
		}
	} else {
		// if found in redis
		// check if org ids match
		if (*result).GetOrgId() != orgId {
			return nil, utils.ErrorRecordNotFound
		}
	}

	return result, nil
}

// first find in redis, then in db, using ctx's org_id in WHERE, cache result
func ListResources[T Resource](ctx context.Context, associations ...string) ([]*T, error) {

	orgId, ok := utils.GetOrgIdFromContext(ctx)
	if !ok || orgId == "" {
		return nil, errors.New("org id is required")
	}
	// find in redis
	results, err := utils.RetrieveRedisList[T](orgId)
	if err != nil {
		return nil, err
	}
	// if not found in redis
	if results == nil {
		// fetch from db
		results, err = utils.FetchAllModels[T](ctx, orgId, associations...)
		if err != nil {
			return nil, err
		}

		// store in redis
		if err := utils.StoreRedisList[T](results, orgId); err != nil {
			return nil, err
		}
	}

	return results, nil
}

func ToggleActiveModel[T any](ctx context.Context, orgId string, id int, isActive bool) (*T, error) {

	var result *T
	db := config.GetDB()

	// fetch model before updating
	err := db.WithContext(ctx).Where("org_id = ?", orgId).First(&result, id).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}

	if err := db.WithContext(ctx).Model(&result).
		UpdateColumn("IsActive", isActive).Error; err != nil {
		return nil, err
	}

	// clear cache
	if err := utils.RemoveRedisItem[T](id); err != nil {
		return nil, err
	}
	if err := utils.RemoveRedisList[T](orgId); err != nil {
		return nil, err
	}

	return result, nil
}
