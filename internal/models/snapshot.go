package models

import "time"

// CouponSnapshot хранит состояние купонов автомобиля, снятое со страницы магазина.
// IsWeekday необязателен: без него тип дня определяется по CapturedAt
// или текущему времени в часовом поясе расчёта.
type CouponSnapshot struct {
	RequestID     string       `json:"request_id,omitempty"`
	StoreID       string       `json:"store_id"`
	VehicleNumber string       `json:"vehicle_number"`
	MyHistory     CouponCounts `json:"my_history"`
	TotalHistory  CouponCounts `json:"total_history"`
	Available     CouponCounts `json:"available"`
	IsWeekday     *bool        `json:"is_weekday,omitempty"`
	CapturedAt    *time.Time   `json:"captured_at,omitempty"`
}

// CouponPlan содержит упорядоченный список купонов, которые нужно применить.
type CouponPlan struct {
	RequestID      string              `json:"request_id"`
	StoreID        string              `json:"store_id"`
	VehicleNumber  string              `json:"vehicle_number"`
	IsWeekday      bool                `json:"is_weekday"`
	Applications   []CouponApplication `json:"applications"`
	CurrentMinutes int                 `json:"current_minutes"`
	TargetMinutes  int                 `json:"target_minutes"`
	PlannedMinutes int                 `json:"planned_minutes"`
	IgnoredCoupons []string            `json:"ignored_coupons,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}
