package models_test

import (
	"errors"
	"testing"

	"bitbucket.org/mmdatafocus/bizmanage_backend/config"
	"bitbucket.org/mmdatafocus/bizmanage_backend/models"
	"bitbucket.org/mmdatafocus/bizmanage_backend/utils"
)

func TestTenantGuardScopesQueries(t *testing.T) {
	ctxA := setupIntegration(t)

	orgB, adminB, err := models.CreateOrganization(ctxA, &models.NewOrganization{
		Name:  "Second Org",
		Email: "owner@second.local",
	}, "Second", "second@local", "testpw123")
	if err != nil {
		t.Fatalf("CreateOrganization: %v", err)
	}
	ctxB := utils.SetOrgIdInContext(ctxA, orgB.ID.String())

	unit, err := models.CreateUnit(ctxA, &models.NewUnit{Name: "Pallet"})
	if err != nil {
		t.Fatalf("CreateUnit: %v", err)
	}

	// org B cannot see org A's unit through the model layer
	if _, err := models.GetUnit(ctxB, unit.ID); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("GetUnit across orgs: want ErrorRecordNotFound, got %v", err)
	}

	// the guard plugin scopes even queries with no explicit org filter
	db := config.GetDB()
	var units []models.Unit
	if err := db.WithContext(ctxB).Find(&units).Error; err != nil {
		t.Fatalf("find units: %v", err)
	}
	if len(units) != 0 {
		t.Fatalf("org B sees %d units from org A", len(units))
	}
	units = nil
	if err := db.WithContext(ctxA).Find(&units).Error; err != nil {
		t.Fatalf("find units: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("org A: want 1 unit, got %d", len(units))
	}

	// explicit scope bypass sees every tenant's rows
	bypassCtx := utils.SetSkipTenantScopeInContext(ctxB, true)
	if skip, ok := utils.GetSkipTenantScopeFromContext(bypassCtx); !ok || !skip {
		t.Fatal("skip-tenant-scope flag did not round-trip")
	}
	units = nil
	if err := db.WithContext(bypassCtx).Find(&units).Error; err != nil {
		t.Fatalf("find units: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("bypass: want 1 unit, got %d", len(units))
	}

	// platform admins bypass the guard the same way
	adminCtx := utils.SetIsAdminInContext(ctxB, true)
	if isAdmin, ok := utils.GetIsAdminFromContext(adminCtx); !ok || !isAdmin {
		t.Fatal("is-admin flag did not round-trip")
	}
	units = nil
	if err := db.WithContext(adminCtx).Find(&units).Error; err != nil {
		t.Fatalf("find units: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("admin bypass: want 1 unit, got %d", len(units))
	}

	// token user lookups honor the org too
	if _, err := models.GetUser(ctxB, adminB.ID); err != nil {
		t.Fatalf("GetUser own org: %v", err)
	}
	if _, err := models.GetUser(ctxA, adminB.ID); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("GetUser across orgs: want ErrorRecordNotFound, got %v", err)
	}
}

func TestToggleActiveArchivesWithoutDeleting(t *testing.T) {
	ctx := setupIntegration(t)

	unit, err := models.CreateUnit(ctx, &models.NewUnit{Name: "Roll"})
	if err != nil {
		t.Fatalf("CreateUnit: %v", err)
	}

	toggled, err := models.ToggleActiveUnit(ctx, unit.ID, false)
	if err != nil {
		t.Fatalf("ToggleActiveUnit: %v", err)
	}
	if toggled.IsActive == nil || *toggled.IsActive {
		t.Fatal("unit still active after toggle")
	}

	// archived rows stay listed, only flagged off
	units, err := models.ListUnit(ctx)
	if err != nil {
		t.Fatalf("ListUnit: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("want 1 unit, got %d", len(units))
	}
	if units[0].IsActive == nil || *units[0].IsActive {
		t.Fatal("listed unit should be inactive")
	}

	if _, err := models.ToggleActiveUnit(ctx, 99999, true); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("toggle missing unit: want ErrorRecordNotFound, got %v", err)
	}
}

func TestReferenceListCacheInvalidation(t *testing.T) {
	ctx := setupIntegration(t)

	orgId, _ := utils.GetOrgIdFromContext(ctx)
	db := config.GetDB()

	if _, err := models.CreateUnit(ctx, &models.NewUnit{Name: "Box"}); err != nil {
		t.Fatalf("CreateUnit: %v", err)
	}

	units, err := models.ListUnit(ctx)
	if err != nil {
		t.Fatalf("ListUnit: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("want 1 unit, got %d", len(units))
	}

	// second read is served from the cache; a row written behind the
	// model layer must not show up yet
	archived := models.Unit{
		OrgId:    orgId,
		Name:     "Sack",
		IsActive: utils.NewFalse(),
	}
	if err := db.WithContext(ctx).Create(&archived).Error; err != nil {
		t.Fatalf("create unit behind cache: %v", err)
	}
	units, err = models.ListUnit(ctx)
	if err != nil {
		t.Fatalf("ListUnit: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("cached list: want 1 unit, got %d", len(units))
	}

	// writes through the model layer invalidate the list
	if _, err := models.CreateUnit(ctx, &models.NewUnit{Name: "Drum"}); err != nil {
		t.Fatalf("CreateUnit: %v", err)
	}
	units, err = models.ListUnit(ctx)
	if err != nil {
		t.Fatalf("ListUnit: %v", err)
	}
	if len(units) != 3 {
		t.Fatalf("after invalidation: want 3 units, got %d", len(units))
	}
}
