package discount

import (
	"fmt"
	"math"

	"parking-discount/internal/models"
)

// Strategy выбирает, чем управляется проход по платным/выходным купонам.
type Strategy string

const (
	// StrategyTargetCount добирает купоны до целевого количества категории.
	StrategyTargetCount Strategy = "target_count"
	// StrategyTimeDeficit добирает купоны по оставшимся минутам с учётом лимита купонов.
	StrategyTimeDeficit Strategy = "time_deficit"
)

// Policy хранит числовые цели магазина. Создаётся через NewPolicy.
type Policy struct {
	Strategy               Strategy
	WeekdayTargetHours     float64
	WeekendTargetHours     float64
	WeekdayMaxCoupons      int
	WeekendMaxCoupons      int
	FreeTargetCount        int
	WeekdayPaidTargetCount int
	WeekendTargetCount     int
}

// NewPolicy проверяет конфигурацию политики.
func NewPolicy(cfg models.PolicyConfig) (Policy, error) {
	strategy := Strategy(cfg.Strategy)
	switch strategy {
	case "":
		strategy = StrategyTargetCount
	case StrategyTargetCount, StrategyTimeDeficit:
	default:
		return Policy{}, fmt.Errorf("%w: %q", ErrInvalidStrategy, cfg.Strategy)
	}

	if cfg.WeekdayTargetHours < 0 || cfg.WeekendTargetHours < 0 ||
		math.IsNaN(cfg.WeekdayTargetHours) || math.IsNaN(cfg.WeekendTargetHours) ||
		cfg.WeekdayMaxCoupons < 0 || cfg.WeekendMaxCoupons < 0 ||
		cfg.FreeTargetCount < 0 || cfg.WeekdayPaidTargetCount < 0 || cfg.WeekendTargetCount < 0 {
		return Policy{}, ErrNegativeTarget
	}

	return Policy{
		Strategy:               strategy,
		WeekdayTargetHours:     cfg.WeekdayTargetHours,
		WeekendTargetHours:     cfg.WeekendTargetHours,
		WeekdayMaxCoupons:      cfg.WeekdayMaxCoupons,
		WeekendMaxCoupons:      cfg.WeekendMaxCoupons,
		FreeTargetCount:        cfg.FreeTargetCount,
		WeekdayPaidTargetCount: cfg.WeekdayPaidTargetCount,
		WeekendTargetCount:     cfg.WeekendTargetCount,
	}, nil
}

// TargetHours возвращает целевое время скидки для типа дня.
func (p Policy) TargetHours(isWeekday bool) float64 {
	if isWeekday {
		return p.WeekdayTargetHours
	}
	return p.WeekendTargetHours
}

// TargetMinutes возвращает цель в целых минутах; все сравнения идут в минутах.
func (p Policy) TargetMinutes(isWeekday bool) int {
	return int(math.Round(p.TargetHours(isWeekday) * 60))
}

// MaxCoupons возвращает лимит купонов за запуск. Ноль означает «без лимита».
func (p Policy) MaxCoupons(isWeekday bool) int {
	if isWeekday {
		return p.WeekdayMaxCoupons
	}
	return p.WeekendMaxCoupons
}

// CouponTargetCount возвращает целевое количество купонов категории.
// Для несопоставленных комбинаций возвращается 0.
func (p Policy) CouponTargetCount(category models.CouponCategory, isWeekday bool) int {
	switch {
	case category == models.CouponCategoryFree:
		return p.FreeTargetCount
	case category == models.CouponCategoryPaid && isWeekday:
		return p.WeekdayPaidTargetCount
	case category == models.CouponCategoryWeekend && !isWeekday:
		return p.WeekendTargetCount
	default:
		return 0
	}
}
