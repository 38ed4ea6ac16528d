package discount

import (
	"testing"

	"parking-discount/internal/apperror"
	"parking-discount/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeA() models.StoreConfig {
	return models.StoreConfig{
		StoreID: "A",
		Name:    "A 매장",
		Policy: models.PolicyConfig{
			WeekdayTargetHours:     3,
			WeekendTargetHours:     2,
			FreeTargetCount:        1,
			WeekdayPaidTargetCount: 2,
			WeekendTargetCount:     1,
		},
		Coupons: []models.CouponRuleConfig{
			{Key: "FREE_1HOUR", DisplayName: freeName, Category: models.CouponCategoryFree, DurationMinutes: 60, Priority: 1},
			{Key: "PAID_1HOUR", DisplayName: paidName, Category: models.CouponCategoryPaid, DurationMinutes: 60, Priority: 2},
		},
	}
}

func storeB() models.StoreConfig {
	return models.StoreConfig{
		StoreID: "B",
		Name:    "B 매장",
		Policy: models.PolicyConfig{
			WeekdayTargetHours:     1,
			WeekendTargetHours:     1,
			WeekdayPaidTargetCount: 1,
			WeekendTargetCount:     1,
		},
		Coupons: []models.CouponRuleConfig{
			{Key: "PAID_30MIN", DisplayName: paid30Name, Category: models.CouponCategoryPaid, DurationMinutes: 30, Priority: 1},
		},
		Adjustment: &models.AdjustmentConfig{
			Kind:                models.AdjustmentKindShortUnit,
			ShortUnitMinutes:    30,
			StandardUnitMinutes: 60,
		},
	}
}

func TestEngine_PlanWithoutAdjustment(t *testing.T) {
	engine, err := BuildEngine(storeA(), nil)
	require.NoError(t, err)

	res := engine.Plan(
		models.CouponCounts{freeName: 1, paidName: 1},
		models.CouponCounts{freeName: 1},
		models.CouponCounts{freeName: 5, paidName: 10},
		true,
	)

	assert.Equal(t, []models.CouponApplication{app(paidName, models.CouponCategoryPaid, 1)}, res.Applications)
	assert.Equal(t, 120, res.CurrentMinutes)
	assert.Equal(t, 180, res.TargetMinutes)
	assert.Equal(t, 60, res.PlannedMinutes)
	assert.Equal(t, "A 매장", engine.Name)
}

func TestEngine_PlanShortUnitStore(t *testing.T) {
	engine, err := BuildEngine(storeB(), nil)
	require.NoError(t, err)

	res := engine.Plan(nil, nil, models.CouponCounts{paid30Name: 50}, true)
	assert.Equal(t, []models.CouponApplication{app(paid30Name, models.CouponCategoryPaid, 2)}, res.Applications)
	assert.Equal(t, 60, res.PlannedMinutes)

	res = engine.Plan(nil, nil, models.CouponCounts{paid30Name: 1}, false)
	assert.Equal(t, []models.CouponApplication{app(paid30Name, models.CouponCategoryPaid, 1)}, res.Applications)

	res = engine.Plan(models.CouponCounts{paid30Name: 2}, nil, models.CouponCounts{paid30Name: 50}, true)
	assert.Empty(t, res.Applications)
}

func TestEngine_Idempotent(t *testing.T) {
	engine, err := BuildEngine(storeB(), nil)
	require.NoError(t, err)

	my := models.CouponCounts{}
	available := models.CouponCounts{paid30Name: 7}
	first := engine.Plan(my, nil, available, true)
	second := engine.Plan(my, nil, available, true)

	assert.Equal(t, first, second)
}

func TestEngine_FiltersAdjusterOutput(t *testing.T) {
	catalog, err := NewCatalog([]CouponRule{mustRule(t, "P", paidName, models.CouponCategoryPaid, 60, 1)})
	require.NoError(t, err)
	calc := NewCalculator(defaultPolicy(t), catalog)

	zeroing := AdjusterFunc(func(base []models.CouponApplication, _ models.CouponCounts, _ bool) []models.CouponApplication {
		out := make([]models.CouponApplication, len(base))
		for i, a := range base {
			a.Count = 0
			out[i] = a
		}
		return out
	})

	res := NewEngine("X", "X", calc, zeroing).Plan(nil, nil, models.CouponCounts{paidName: 3}, true)
	assert.NotNil(t, res.Applications)
	assert.Empty(t, res.Applications)
	assert.Zero(t, res.PlannedMinutes)
}

func TestBuildEngine_InvalidConfig(t *testing.T) {
	cases := map[string]func(*models.StoreConfig){
		"empty store id":     func(s *models.StoreConfig) { s.StoreID = "" },
		"no coupons":         func(s *models.StoreConfig) { s.Coupons = nil },
		"bad category":       func(s *models.StoreConfig) { s.Coupons[0].Category = "gift" },
		"zero duration":      func(s *models.StoreConfig) { s.Coupons[1].DurationMinutes = 0 },
		"duplicate coupon":   func(s *models.StoreConfig) { s.Coupons[1].DisplayName = freeName },
		"negative target":    func(s *models.StoreConfig) { s.Policy.WeekdayPaidTargetCount = -1 },
		"unknown strategy":   func(s *models.StoreConfig) { s.Policy.Strategy = "greedy" },
		"unknown adjustment": func(s *models.StoreConfig) { s.Adjustment = &models.AdjustmentConfig{Kind: "rounding"} },
		"bad units": func(s *models.StoreConfig) {
			s.Adjustment = &models.AdjustmentConfig{Kind: models.AdjustmentKindShortUnit, ShortUnitMinutes: 45, StandardUnitMinutes: 60}
		},
		"short unit with time deficit": func(s *models.StoreConfig) {
			s.Policy.Strategy = string(StrategyTimeDeficit)
			s.Adjustment = &models.AdjustmentConfig{Kind: models.AdjustmentKindShortUnit, ShortUnitMinutes: 30, StandardUnitMinutes: 60}
		},
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			store := storeA()
			mutate(&store)

			_, err := BuildEngine(store, nil)
			require.Error(t, err)
			assert.True(t, apperror.Is(err, apperror.KindValidation), "got %v", err)
		})
	}
}

func storeBWithFree() models.StoreConfig {
	store := storeB()
	store.Policy = models.PolicyConfig{
		WeekdayTargetHours:     3,
		WeekendTargetHours:     2,
		FreeTargetCount:        1,
		WeekdayPaidTargetCount: 2,
		WeekendTargetCount:     1,
	}
	store.Coupons = []models.CouponRuleConfig{
		{Key: "FREE_1HOUR", DisplayName: freeName, Category: models.CouponCategoryFree, DurationMinutes: 60, Priority: 1},
		{Key: "PAID_30MIN", DisplayName: paid30Name, Category: models.CouponCategoryPaid, DurationMinutes: 30, Priority: 2},
	}
	return store
}

func TestBuildEngine_ShortUnitRejectsTimeDeficit(t *testing.T) {
	store := storeBWithFree()
	store.Policy.Strategy = string(StrategyTimeDeficit)

	_, err := BuildEngine(store, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAdjusterStrategy)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	// without the correction the time-driven pass covers the deficit exactly
	store.Adjustment = nil
	engine, err := BuildEngine(store, nil)
	require.NoError(t, err)

	res := engine.Plan(
		models.CouponCounts{freeName: 1, paid30Name: 2},
		models.CouponCounts{freeName: 1},
		models.CouponCounts{paid30Name: 50},
		true,
	)
	assert.Equal(t, []models.CouponApplication{app(paid30Name, models.CouponCategoryPaid, 2)}, res.Applications)
	assert.Equal(t, res.TargetMinutes-res.CurrentMinutes, res.PlannedMinutes)
}

func TestEngine_ShortUnitStoreCountsHeldCouponsInShortUnits(t *testing.T) {
	engine, err := BuildEngine(storeBWithFree(), nil)
	require.NoError(t, err)

	// two 30-minute coupons already meet the paid target count of 2,
	// so the count-driven pass adds nothing although 60 minutes are missing
	res := engine.Plan(
		models.CouponCounts{freeName: 1, paid30Name: 2},
		models.CouponCounts{freeName: 1},
		models.CouponCounts{paid30Name: 50},
		true,
	)
	assert.Empty(t, res.Applications)
	assert.Equal(t, 120, res.CurrentMinutes)
	assert.Equal(t, 180, res.TargetMinutes)
}

func TestBuildEngine_EmptyAdjustmentKind(t *testing.T) {
	store := storeA()
	store.Adjustment = &models.AdjustmentConfig{}

	engine, err := BuildEngine(store, nil)
	require.NoError(t, err)
	assert.Nil(t, engine.adjuster)
}

func TestBuildRegistry(t *testing.T) {
	registry, err := BuildRegistry([]models.StoreConfig{storeB(), storeA()}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, registry.StoreIDs())

	engine, ok := registry.Engine("B")
	require.True(t, ok)
	assert.Equal(t, "B", engine.StoreID)
	assert.Len(t, engine.Catalog().Rules(), 1)
	assert.Equal(t, 60, engine.Policy().TargetMinutes(true))

	_, ok = registry.Engine("C")
	assert.False(t, ok)
}

func TestBuildRegistry_DuplicateStore(t *testing.T) {
	_, err := BuildRegistry([]models.StoreConfig{storeA(), storeA()}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateStore)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}
