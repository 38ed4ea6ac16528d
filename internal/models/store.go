package models

// StoreConfig описывает магазин: политику скидок, купоны и поправку.
type StoreConfig struct {
	StoreID    string             `json:"store_id"`
	Name       string             `json:"name"`
	Policy     PolicyConfig       `json:"policy"`
	Coupons    []CouponRuleConfig `json:"coupons"`
	Adjustment *AdjustmentConfig  `json:"adjustment,omitempty"`
}

// PolicyConfig хранит числовые цели магазина.
type PolicyConfig struct {
	Strategy               string  `json:"strategy,omitempty"` // target_count | time_deficit
	WeekdayTargetHours     float64 `json:"weekday_target_hours"`
	WeekendTargetHours     float64 `json:"weekend_target_hours"`
	WeekdayMaxCoupons      int     `json:"weekday_max_coupons"`
	WeekendMaxCoupons      int     `json:"weekend_max_coupons"`
	FreeTargetCount        int     `json:"free_target_count"`
	WeekdayPaidTargetCount int     `json:"weekday_paid_target_count"`
	WeekendTargetCount     int     `json:"weekend_target_count"`
}

// CouponRuleConfig описывает тип купона так, как он задан в каталоге.
type CouponRuleConfig struct {
	Key             string         `json:"key"`
	DisplayName     string         `json:"display_name"`
	Category        CouponCategory `json:"category"`
	DurationMinutes int            `json:"duration_minutes"`
	Priority        int            `json:"priority"`
}

// AdjustmentKindShortUnit пересчитывает купоны мелкого номинала.
const AdjustmentKindShortUnit = "short_unit"

// AdjustmentConfig задаёт поправку магазина поверх базового расчёта.
type AdjustmentConfig struct {
	Kind                string `json:"kind"`
	ShortUnitMinutes    int    `json:"short_unit_minutes"`
	StandardUnitMinutes int    `json:"standard_unit_minutes"`
}

// StoreSummary описывает магазин в ответах API.
type StoreSummary struct {
	StoreID            string             `json:"store_id"`
	Name               string             `json:"name"`
	Strategy           string             `json:"strategy"`
	WeekdayTargetHours float64            `json:"weekday_target_hours"`
	WeekendTargetHours float64            `json:"weekend_target_hours"`
	Coupons            []CouponRuleConfig `json:"coupons"`
}
