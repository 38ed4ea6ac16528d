package discount

import (
	"fmt"
	"sort"
	"strings"

	"parking-discount/internal/apperror"
	"parking-discount/internal/models"

	"github.com/sirupsen/logrus"
)

// Engine связывает базовый калькулятор магазина с его поправкой.
type Engine struct {
	StoreID    string
	Name       string
	calculator *Calculator
	adjuster   Adjuster
}

// Result содержит итог расчёта с учётом времени.
type Result struct {
	Applications   []models.CouponApplication
	CurrentMinutes int
	TargetMinutes  int
	PlannedMinutes int
}

// NewEngine создаёт движок; adjuster может быть nil.
func NewEngine(storeID, name string, calculator *Calculator, adjuster Adjuster) *Engine {
	return &Engine{
		StoreID:    storeID,
		Name:       name,
		calculator: calculator,
		adjuster:   adjuster,
	}
}

// Plan выполняет базовый расчёт, поправку магазина и финальную фильтрацию.
func (e *Engine) Plan(myHistory, totalHistory, available models.CouponCounts, isWeekday bool) Result {
	apps := e.calculator.Allocate(myHistory, totalHistory, available, isWeekday)
	if e.adjuster != nil {
		apps = e.adjuster.Adjust(apps, available, isWeekday)
	}
	apps = FilterValid(apps)

	return Result{
		Applications:   apps,
		CurrentMinutes: e.calculator.CurrentMinutes(myHistory),
		TargetMinutes:  e.calculator.policy.TargetMinutes(isWeekday),
		PlannedMinutes: e.calculator.catalog.MinutesOf(apps),
	}
}

// Catalog возвращает каталог магазина.
func (e *Engine) Catalog() *Catalog { return e.calculator.Catalog() }

// Policy возвращает политику магазина.
func (e *Engine) Policy() Policy { return e.calculator.Policy() }

// BuildEngine собирает движок из конфигурации магазина.
// Любая ошибка конфигурации возвращается как apperror.KindValidation.
func BuildEngine(store models.StoreConfig, log logrus.FieldLogger) (*Engine, error) {
	if log == nil {
		log = discardLogger()
	}
	if strings.TrimSpace(store.StoreID) == "" {
		return nil, apperror.Validation(ErrEmptyStoreID.Error(), ErrEmptyStoreID)
	}

	engine, err := buildEngine(store, log.WithField("store_id", store.StoreID))
	if err != nil {
		return nil, apperror.Validation(fmt.Sprintf("store %s: %v", store.StoreID, err), err)
	}
	return engine, nil
}

func buildEngine(store models.StoreConfig, log logrus.FieldLogger) (*Engine, error) {
	policy, err := NewPolicy(store.Policy)
	if err != nil {
		return nil, err
	}

	rules := make([]CouponRule, 0, len(store.Coupons))
	for _, c := range store.Coupons {
		rule, err := NewCouponRule(c.Key, c.DisplayName, c.Category, c.DurationMinutes, c.Priority)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	catalog, err := NewCatalog(rules)
	if err != nil {
		return nil, err
	}

	var adjuster Adjuster
	if store.Adjustment != nil {
		switch store.Adjustment.Kind {
		case models.AdjustmentKindShortUnit:
			// time_deficit уже считает в фактической длительности купона
			if policy.Strategy == StrategyTimeDeficit {
				return nil, fmt.Errorf("%w: %s with %s", ErrAdjusterStrategy, store.Adjustment.Kind, policy.Strategy)
			}
			adjuster, err = NewShortUnitAdjuster(catalog, store.Adjustment.ShortUnitMinutes, store.Adjustment.StandardUnitMinutes, log)
			if err != nil {
				return nil, err
			}
		case "":
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownAdjuster, store.Adjustment.Kind)
		}
	}

	calculator := NewCalculator(policy, catalog, WithLogger(log))
	return NewEngine(store.StoreID, store.Name, calculator, adjuster), nil
}

// Registry сопоставляет идентификатор магазина с его движком.
// После сборки не изменяется и безопасен для конкурентного чтения.
type Registry struct {
	engines map[string]*Engine
}

// BuildRegistry собирает движки всех магазинов; первая ошибка прерывает сборку.
func BuildRegistry(stores []models.StoreConfig, log logrus.FieldLogger) (*Registry, error) {
	engines := make(map[string]*Engine, len(stores))
	for _, store := range stores {
		if _, exists := engines[store.StoreID]; exists {
			return nil, apperror.Validation(fmt.Sprintf("%v: %s", ErrDuplicateStore, store.StoreID), ErrDuplicateStore)
		}
		engine, err := BuildEngine(store, log)
		if err != nil {
			return nil, err
		}
		engines[store.StoreID] = engine
	}
	return &Registry{engines: engines}, nil
}

// Engine возвращает движок магазина.
func (r *Registry) Engine(storeID string) (*Engine, bool) {
	engine, ok := r.engines[storeID]
	return engine, ok
}

// StoreIDs возвращает отсортированные идентификаторы магазинов.
func (r *Registry) StoreIDs() []string {
	ids := make([]string, 0, len(r.engines))
	for id := range r.engines {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
