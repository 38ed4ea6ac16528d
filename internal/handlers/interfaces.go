package handlers

import (
	"context"

	"parking-discount/internal/models"
)

// ----- Allocation -----

type AllocationService interface {
	CreatePlan(ctx context.Context, snapshot *models.CouponSnapshot) (*models.CouponPlan, error)
	ListStores(ctx context.Context) []models.StoreSummary
	GetStore(ctx context.Context, storeID string) (*models.StoreSummary, error)
}

// ----- Health -----

type StoreCounter interface {
	StoreCount() int
}
