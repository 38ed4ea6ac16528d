package discount

import (
	"io"

	"parking-discount/internal/models"

	"github.com/sirupsen/logrus"
)

// Calculator рассчитывает, какие купоны применить, чтобы автомобиль набрал
// целевое время скидки за день.
//
// Расчёт идёт в фиксированном порядке:
//  1. уже применённое время по истории этого магазина;
//  2. дефицит до цели дня (если его нет, результат пустой);
//  3. бесплатные купоны: не более одного на автомобиль за всё время и во всех магазинах;
//  4. платные (будни) или выходные купоны по стратегии политики;
//  5. отбрасываются применения с нулевым количеством.
//
// Calculator не хранит изменяемого состояния и безопасен для конкурентного использования.
type Calculator struct {
	policy  Policy
	catalog *Catalog
	log     logrus.FieldLogger
}

// Option настраивает Calculator.
type Option func(*Calculator)

// WithLogger задаёт логгер для трассировки расчёта.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Calculator) {
		if log != nil {
			c.log = log
		}
	}
}

// NewCalculator создаёт калькулятор для политики и каталога магазина.
func NewCalculator(policy Policy, catalog *Catalog, opts ...Option) *Calculator {
	c := &Calculator{
		policy:  policy,
		catalog: catalog,
		log:     discardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy возвращает политику калькулятора.
func (c *Calculator) Policy() Policy { return c.policy }

// Catalog возвращает каталог калькулятора.
func (c *Calculator) Catalog() *Catalog { return c.catalog }

// CurrentMinutes считает время скидки, уже применённое в этом магазине.
func (c *Calculator) CurrentMinutes(myHistory models.CouponCounts) int {
	total := 0
	for _, rule := range c.catalog.rules {
		total += myHistory.Get(rule.DisplayName) * rule.DurationMinutes
	}
	return total
}

// Allocate возвращает упорядоченный список купонов для применения.
// Входные карты не изменяются; отсутствующий ключ читается как ноль.
func (c *Calculator) Allocate(myHistory, totalHistory, available models.CouponCounts, isWeekday bool) []models.CouponApplication {
	log := c.log.WithField("day_type", DayType(isWeekday))

	currentMinutes := c.CurrentMinutes(myHistory)
	targetMinutes := c.policy.TargetMinutes(isWeekday)
	remaining := targetMinutes - currentMinutes
	if remaining < 0 {
		remaining = 0
	}

	log.WithFields(logrus.Fields{
		"current_hours":     minutesToHours(currentMinutes),
		"target_hours":      c.policy.TargetHours(isWeekday),
		"remaining_minutes": remaining,
	}).Debug("Discount time accounted")

	if remaining <= 0 {
		log.Info("Discount target already met, nothing to apply")
		return []models.CouponApplication{}
	}

	apps, remaining, freeHeld := c.allocateFree(log, myHistory, totalHistory, available, remaining)

	carry := 0
	if c.catalog.HasCategory(models.CouponCategoryFree) && c.policy.FreeTargetCount > freeHeld {
		carry = c.policy.FreeTargetCount - freeHeld
	}

	category, targetCount := c.categoryTarget(isWeekday)
	rules := c.catalog.ByCategory(category)
	if len(rules) == 0 {
		log.WithField("category", category).Debug("No coupon rules for category")
	}

	switch c.policy.Strategy {
	case StrategyTimeDeficit:
		apps, remaining = c.fillByTime(log, rules, apps, available, remaining, c.policy.MaxCoupons(isWeekday))
	default:
		apps, remaining = c.fillByTargetCount(log, rules, apps, myHistory, available, remaining, targetCount, carry)
	}

	result := FilterValid(apps)
	planned := c.catalog.MinutesOf(result)
	log.WithFields(logrus.Fields{
		"applications":      len(result),
		"planned_minutes":   planned,
		"remaining_minutes": remaining,
		"target_reached":    currentMinutes+planned >= targetMinutes,
	}).Info("Coupon allocation calculated")

	return result
}

// allocateFree применяет каждый бесплатный купон не более одного раза.
// Возвращает также число бесплатных купонов, которые автомобиль держит в этом магазине
// после прохода.
func (c *Calculator) allocateFree(log logrus.FieldLogger, myHistory, totalHistory, available models.CouponCounts, remaining int) ([]models.CouponApplication, int, int) {
	var apps []models.CouponApplication
	held := 0

	for _, rule := range c.catalog.ByCategory(models.CouponCategoryFree) {
		entry := log.WithField("coupon", rule.DisplayName)

		if used := myHistory.Get(rule.DisplayName); used > 0 {
			held += used
			entry.WithField("used", used).Debug("Free coupon already used at this store, skipping")
			continue
		}
		if used := totalHistory.Get(rule.DisplayName); used > 0 {
			entry.WithField("used", used).Debug("Free coupon already used at another store, skipping")
			continue
		}
		if available.Get(rule.DisplayName) <= 0 {
			entry.Debug("Free coupon out of stock")
			continue
		}

		apps = append(apps, models.CouponApplication{
			CouponName: rule.DisplayName,
			CouponType: rule.Category,
			Count:      1,
		})
		held++
		remaining -= rule.DurationMinutes
		entry.WithField("remaining_minutes", remaining).Debug("Free coupon allocated")
	}

	return apps, remaining, held
}

// categoryTarget выбирает категорию второго прохода и её целевое количество.
// В выходные без купонов категории weekend используются платные купоны
// с целевым количеством выходного дня.
func (c *Calculator) categoryTarget(isWeekday bool) (models.CouponCategory, int) {
	if isWeekday {
		return models.CouponCategoryPaid, c.policy.CouponTargetCount(models.CouponCategoryPaid, true)
	}
	if c.catalog.HasCategory(models.CouponCategoryWeekend) {
		return models.CouponCategoryWeekend, c.policy.CouponTargetCount(models.CouponCategoryWeekend, false)
	}
	return models.CouponCategoryPaid, c.policy.WeekendTargetCount
}

// fillByTargetCount добирает каждый купон категории до целевого количества.
// Недобранные бесплатные купоны (carry) отдаются правилам по приоритету сверх цели.
// remaining здесь только для логов: проход управляется количеством и может
// превысить или не добрать целевое время.
func (c *Calculator) fillByTargetCount(log logrus.FieldLogger, rules []CouponRule, apps []models.CouponApplication,
	myHistory, available models.CouponCounts, remaining, targetCount, carry int) ([]models.CouponApplication, int) {
	for _, rule := range rules {
		used := myHistory.Get(rule.DisplayName)
		additional := targetCount - used
		if additional < 0 {
			additional = 0
		}
		stock := available.Get(rule.DisplayName)
		apply := min(additional+carry, stock)

		entry := log.WithFields(logrus.Fields{
			"coupon":       rule.DisplayName,
			"target_count": targetCount,
			"used":         used,
			"carry":        carry,
			"available":    stock,
		})

		if apply <= 0 {
			if additional+carry <= 0 {
				entry.Debug("Coupon target already reached")
			} else {
				entry.Debug("Coupon out of stock")
			}
			continue
		}
		if apply > additional {
			carry -= apply - additional
		}

		apps = append(apps, models.CouponApplication{
			CouponName: rule.DisplayName,
			CouponType: rule.Category,
			Count:      apply,
		})
		remaining -= apply * rule.DurationMinutes
		entry.WithFields(logrus.Fields{
			"count":             apply,
			"remaining_minutes": remaining,
		}).Debug("Coupon allocated")
	}
	return apps, remaining
}

// fillByTime покрывает оставшиеся минуты купонами по приоритету.
// maxCoupons ограничивает общее число купонов за запуск (0 означает без лимита).
func (c *Calculator) fillByTime(log logrus.FieldLogger, rules []CouponRule, apps []models.CouponApplication,
	available models.CouponCounts, remaining, maxCoupons int) ([]models.CouponApplication, int) {
	planned := 0
	for _, app := range apps {
		planned += app.Count
	}

	for _, rule := range rules {
		if remaining <= 0 {
			break
		}
		need := (remaining + rule.DurationMinutes - 1) / rule.DurationMinutes
		apply := min(need, available.Get(rule.DisplayName))
		if maxCoupons > 0 {
			apply = min(apply, maxCoupons-planned)
		}

		entry := log.WithFields(logrus.Fields{
			"coupon":    rule.DisplayName,
			"need":      need,
			"available": available.Get(rule.DisplayName),
		})
		if apply <= 0 {
			entry.Debug("Coupon skipped: out of stock or coupon limit reached")
			continue
		}

		apps = append(apps, models.CouponApplication{
			CouponName: rule.DisplayName,
			CouponType: rule.Category,
			Count:      apply,
		})
		planned += apply
		remaining -= apply * rule.DurationMinutes
		entry.WithFields(logrus.Fields{
			"count":             apply,
			"remaining_minutes": remaining,
		}).Debug("Coupon allocated")
	}
	return apps, remaining
}

func minutesToHours(minutes int) float64 {
	return float64(minutes) / 60.0
}

func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
