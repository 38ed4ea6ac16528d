package models

// CouponCategory определяет правила применимости купона.
type CouponCategory string

const (
	CouponCategoryFree    CouponCategory = "free"
	CouponCategoryPaid    CouponCategory = "paid"
	CouponCategoryWeekend CouponCategory = "weekend"
)

// Valid сообщает, известна ли категория.
func (c CouponCategory) Valid() bool {
	switch c {
	case CouponCategoryFree, CouponCategoryPaid, CouponCategoryWeekend:
		return true
	default:
		return false
	}
}

// CouponCounts сопоставляет отображаемое имя купона с количеством.
// Используется и для истории применений, и для остатков.
// Отсутствующий ключ означает ноль.
type CouponCounts map[string]int

// Get возвращает количество по имени, ноль для отсутствующего ключа и nil-карты.
func (c CouponCounts) Get(name string) int {
	if c == nil {
		return 0
	}
	return c[name]
}

// CouponApplication описывает, сколько купонов одного типа нужно применить.
type CouponApplication struct {
	CouponName string         `json:"coupon_name"`
	CouponType CouponCategory `json:"coupon_type"`
	Count      int            `json:"count"`
}

// IsValid возвращает true, если применение имеет смысл выполнять.
func (a CouponApplication) IsValid() bool {
	return a.Count >= 1
}
