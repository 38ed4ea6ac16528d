package discount

import (
	"fmt"
	"sort"
	"strings"

	"parking-discount/internal/models"
)

// CouponRule описывает один тип купона магазина.
// DisplayName совпадает с текстом на странице магазина побайтно и служит ключом
// для карт истории и остатков.
type CouponRule struct {
	Key             string
	DisplayName     string
	Category        models.CouponCategory
	DurationMinutes int
	Priority        int
}

// NewCouponRule проверяет и создаёт правило.
func NewCouponRule(key, displayName string, category models.CouponCategory, durationMinutes, priority int) (CouponRule, error) {
	if strings.TrimSpace(displayName) == "" {
		return CouponRule{}, fmt.Errorf("coupon %q: %w", key, ErrEmptyName)
	}
	if !category.Valid() {
		return CouponRule{}, fmt.Errorf("coupon %q: %w: %q", displayName, ErrInvalidCategory, category)
	}
	if durationMinutes <= 0 {
		return CouponRule{}, fmt.Errorf("coupon %q: %w (got %d)", displayName, ErrInvalidDuration, durationMinutes)
	}
	return CouponRule{
		Key:             key,
		DisplayName:     displayName,
		Category:        category,
		DurationMinutes: durationMinutes,
		Priority:        priority,
	}, nil
}

// DurationHours возвращает длительность в часах (для логов).
func (r CouponRule) DurationHours() float64 {
	return float64(r.DurationMinutes) / 60.0
}

// Catalog — неизменяемый набор правил магазина, отсортированный по приоритету.
type Catalog struct {
	rules  []CouponRule
	byName map[string]int
}

// NewCatalog проверяет уникальность имён и сортирует правила по возрастанию приоритета.
// Правила с одинаковым приоритетом сохраняют исходный порядок.
func NewCatalog(rules []CouponRule) (*Catalog, error) {
	if len(rules) == 0 {
		return nil, ErrEmptyCatalog
	}

	sorted := make([]CouponRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	byName := make(map[string]int, len(sorted))
	for i, rule := range sorted {
		if rule.DurationMinutes <= 0 {
			return nil, fmt.Errorf("coupon %q: %w (got %d)", rule.DisplayName, ErrInvalidDuration, rule.DurationMinutes)
		}
		if _, exists := byName[rule.DisplayName]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCoupon, rule.DisplayName)
		}
		byName[rule.DisplayName] = i
	}

	return &Catalog{rules: sorted, byName: byName}, nil
}

// Rules возвращает копию правил в порядке приоритета.
func (c *Catalog) Rules() []CouponRule {
	out := make([]CouponRule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Lookup ищет правило по отображаемому имени.
func (c *Catalog) Lookup(displayName string) (CouponRule, bool) {
	idx, ok := c.byName[displayName]
	if !ok {
		return CouponRule{}, false
	}
	return c.rules[idx], true
}

// ByCategory возвращает правила категории в порядке приоритета.
func (c *Catalog) ByCategory(category models.CouponCategory) []CouponRule {
	var out []CouponRule
	for _, rule := range c.rules {
		if rule.Category == category {
			out = append(out, rule)
		}
	}
	return out
}

// HasCategory сообщает, есть ли в каталоге купоны категории.
func (c *Catalog) HasCategory(category models.CouponCategory) bool {
	for _, rule := range c.rules {
		if rule.Category == category {
			return true
		}
	}
	return false
}

// Unrecognized возвращает отсортированные имена из карт, которых нет в каталоге.
func (c *Catalog) Unrecognized(maps ...models.CouponCounts) []string {
	seen := make(map[string]struct{})
	for _, m := range maps {
		for name := range m {
			if _, ok := c.byName[name]; !ok {
				seen[name] = struct{}{}
			}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// MinutesOf считает суммарные минуты для списка применений.
// Применения неизвестных купонов дают ноль.
func (c *Catalog) MinutesOf(apps []models.CouponApplication) int {
	total := 0
	for _, app := range apps {
		if rule, ok := c.Lookup(app.CouponName); ok {
			total += app.Count * rule.DurationMinutes
		}
	}
	return total
}
