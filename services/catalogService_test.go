package services

import (
	"context"
	"testing"

	"HospitalMgmt/models"
	"HospitalMgmt/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_CreateDefaultsToActive(t *testing.T) {
	svc := NewCatalogService[models.OPDItem, *models.OPDItem](newFakeCatalog[models.OPDItem, *models.OPDItem]())
	ctx := context.Background()

	item, err := svc.Create(ctx, models.CatalogInput{Name: " General Consultation ", Price: dec("500")})
	require.NoError(t, err)
	assert.True(t, item.Active)
	assert.Equal(t, "General Consultation", item.Name)

	inactive := false
	item, err = svc.Create(ctx, models.CatalogInput{Name: "Old", Price: dec("10"), Active: &inactive})
	require.NoError(t, err)
	assert.False(t, item.Active)
}

func TestCatalogService_UpdateKeepsActiveWhenOmitted(t *testing.T) {
	store := newFakeCatalog[models.PathologyTest, *models.PathologyTest](
		&models.PathologyTest{CatalogBase: models.CatalogBase{Name: "CBC", Price: dec("650"), Active: true}},
	)
	svc := NewCatalogService[models.PathologyTest, *models.PathologyTest](store)

	test, err := svc.Update(context.Background(), 1, models.CatalogInput{Name: "CBC", Price: dec("700")})
	require.NoError(t, err)
	assert.True(t, test.Active)
	assert.Equal(t, "700.00", test.Price.StringFixed(2))

	_, err = svc.Update(context.Background(), 5, models.CatalogInput{Name: "CBC", Price: dec("700")})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = svc.Update(context.Background(), 1, models.CatalogInput{Name: "", Price: dec("-1")})
	assert.Error(t, err)
}

func TestCatalogService_DeleteReferencedEntry(t *testing.T) {
	store := newFakeCatalog[models.OPDItem, *models.OPDItem](
		&models.OPDItem{CatalogBase: models.CatalogBase{Name: "General Consultation", Price: dec("500"), Active: true}},
	)
	store.inUse[1] = true
	svc := NewCatalogService[models.OPDItem, *models.OPDItem](store)

	assert.ErrorIs(t, svc.Delete(context.Background(), 1), repositories.ErrInUse)

	store.inUse[1] = false
	assert.NoError(t, svc.Delete(context.Background(), 1))
}
