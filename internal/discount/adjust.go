package discount

import (
	"fmt"

	"parking-discount/internal/models"

	"github.com/sirupsen/logrus"
)

// Adjuster переписывает результат базового расчёта для конкретного магазина.
// Реализация обязана сохранять порядок и не добавлять новых купонов.
type Adjuster interface {
	Adjust(base []models.CouponApplication, available models.CouponCounts, isWeekday bool) []models.CouponApplication
}

// AdjusterFunc позволяет использовать функцию как Adjuster.
type AdjusterFunc func(base []models.CouponApplication, available models.CouponCounts, isWeekday bool) []models.CouponApplication

// Adjust вызывает f.
func (f AdjusterFunc) Adjust(base []models.CouponApplication, available models.CouponCounts, isWeekday bool) []models.CouponApplication {
	return f(base, available, isWeekday)
}

// ShortUnitAdjuster пересчитывает купоны мелкого номинала.
// Базовый расчёт считает количество в стандартных единицах (обычно 60 минут);
// для купона длительностью shortUnit то же время требует standard/short купонов.
// Итог ограничивается остатком. Бесплатные купоны не пересчитываются: они
// применяются строго один раз.
type ShortUnitAdjuster struct {
	catalog      *Catalog
	shortUnit    int
	standardUnit int
	log          logrus.FieldLogger
}

// NewShortUnitAdjuster проверяет единицы и создаёт поправку.
func NewShortUnitAdjuster(catalog *Catalog, shortUnitMinutes, standardUnitMinutes int, log logrus.FieldLogger) (*ShortUnitAdjuster, error) {
	if shortUnitMinutes <= 0 || standardUnitMinutes <= shortUnitMinutes || standardUnitMinutes%shortUnitMinutes != 0 {
		return nil, fmt.Errorf("%w: short=%d standard=%d", ErrInvalidUnit, shortUnitMinutes, standardUnitMinutes)
	}
	if log == nil {
		log = discardLogger()
	}
	return &ShortUnitAdjuster{
		catalog:      catalog,
		shortUnit:    shortUnitMinutes,
		standardUnit: standardUnitMinutes,
		log:          log,
	}, nil
}

// Adjust реализует Adjuster.
func (a *ShortUnitAdjuster) Adjust(base []models.CouponApplication, available models.CouponCounts, isWeekday bool) []models.CouponApplication {
	out := make([]models.CouponApplication, 0, len(base))
	factor := a.standardUnit / a.shortUnit

	for _, app := range base {
		rule, ok := a.catalog.Lookup(app.CouponName)
		if !ok || rule.DurationMinutes != a.shortUnit || rule.Category == models.CouponCategoryFree {
			out = append(out, app)
			continue
		}

		entry := a.log.WithFields(logrus.Fields{
			"coupon":   app.CouponName,
			"day_type": DayType(isWeekday),
		})

		adjusted := app.Count * factor
		if stock := available.Get(app.CouponName); adjusted > stock {
			entry.WithFields(logrus.Fields{
				"wanted":    adjusted,
				"available": stock,
			}).Warn("Short unit coupon clamped to available stock")
			adjusted = stock
		}

		entry.WithFields(logrus.Fields{
			"base_count":     app.Count,
			"adjusted_count": adjusted,
		}).Debug("Short unit coupon recounted")

		app.Count = adjusted
		out = append(out, app)
	}

	return out
}
