package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parking-discount/internal/apperror"
	"parking-discount/internal/discount"
	"parking-discount/internal/logger"
	"parking-discount/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AllocationService рассчитывает планы применения купонов по снимкам со страниц магазинов.
type AllocationService struct {
	registry *discount.Registry
	log      *logger.Logger
	loc      *time.Location
	now      func() time.Time
}

// NewAllocationService создает сервис расчёта; loc определяет границы дня.
func NewAllocationService(registry *discount.Registry, log *logger.Logger, loc *time.Location) *AllocationService {
	if loc == nil {
		loc = time.UTC
	}
	return &AllocationService{
		registry: registry,
		log:      log,
		loc:      loc,
		now:      time.Now,
	}
}

// CreatePlan проверяет снимок и рассчитывает план для магазина из снимка.
func (s *AllocationService) CreatePlan(ctx context.Context, snapshot *models.CouponSnapshot) (*models.CouponPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateSnapshot(snapshot); err != nil {
		return nil, err
	}

	engine, ok := s.registry.Engine(snapshot.StoreID)
	if !ok {
		return nil, apperror.NotFound(fmt.Sprintf("store %s not found", snapshot.StoreID), nil)
	}

	requestID := snapshot.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	isWeekday := s.resolveWeekday(snapshot)

	log := s.log.ForStore(snapshot.StoreID, snapshot.VehicleNumber).WithFields(logrus.Fields{
		"request_id": requestID,
		"day_type":   discount.DayType(isWeekday),
	})

	ignored := engine.Catalog().Unrecognized(snapshot.MyHistory, snapshot.TotalHistory, snapshot.Available)
	if len(ignored) > 0 {
		log.WithField("coupons", ignored).Warn("Unrecognized coupons ignored")
	}

	result := engine.Plan(snapshot.MyHistory, snapshot.TotalHistory, snapshot.Available, isWeekday)

	plan := &models.CouponPlan{
		RequestID:      requestID,
		StoreID:        snapshot.StoreID,
		VehicleNumber:  snapshot.VehicleNumber,
		IsWeekday:      isWeekday,
		Applications:   result.Applications,
		CurrentMinutes: result.CurrentMinutes,
		TargetMinutes:  result.TargetMinutes,
		PlannedMinutes: result.PlannedMinutes,
		IgnoredCoupons: ignored,
		CreatedAt:      s.now().In(s.loc),
	}

	log.WithFields(logrus.Fields{
		"applications":    len(plan.Applications),
		"current_minutes": plan.CurrentMinutes,
		"planned_minutes": plan.PlannedMinutes,
		"target_minutes":  plan.TargetMinutes,
	}).Info("Coupon plan created")

	return plan, nil
}

// ListStores возвращает описания всех магазинов, отсортированные по идентификатору.
func (s *AllocationService) ListStores(ctx context.Context) []models.StoreSummary {
	ids := s.registry.StoreIDs()
	out := make([]models.StoreSummary, 0, len(ids))
	for _, id := range ids {
		engine, _ := s.registry.Engine(id)
		out = append(out, summarize(engine))
	}
	return out
}

// GetStore возвращает описание магазина.
func (s *AllocationService) GetStore(ctx context.Context, storeID string) (*models.StoreSummary, error) {
	engine, ok := s.registry.Engine(storeID)
	if !ok {
		return nil, apperror.NotFound(fmt.Sprintf("store %s not found", storeID), nil)
	}
	summary := summarize(engine)
	return &summary, nil
}

// StoreCount сообщает число загруженных магазинов.
func (s *AllocationService) StoreCount() int {
	return len(s.registry.StoreIDs())
}

func (s *AllocationService) resolveWeekday(snapshot *models.CouponSnapshot) bool {
	if snapshot.IsWeekday != nil {
		return *snapshot.IsWeekday
	}
	at := s.now()
	if snapshot.CapturedAt != nil && !snapshot.CapturedAt.IsZero() {
		at = *snapshot.CapturedAt
	}
	return discount.IsWeekday(at.In(s.loc))
}

func validateSnapshot(snapshot *models.CouponSnapshot) error {
	if snapshot == nil {
		return apperror.Validation("snapshot is required", nil)
	}
	if strings.TrimSpace(snapshot.StoreID) == "" {
		return apperror.Validation("store_id is required", nil)
	}
	if strings.TrimSpace(snapshot.VehicleNumber) == "" {
		return apperror.Validation("vehicle_number is required", nil)
	}

	for field, counts := range map[string]models.CouponCounts{
		"my_history":    snapshot.MyHistory,
		"total_history": snapshot.TotalHistory,
		"available":     snapshot.Available,
	} {
		for name, n := range counts {
			if n < 0 {
				return apperror.Validation(fmt.Sprintf("%s: negative count for %q", field, name), nil)
			}
		}
	}
	return nil
}

func summarize(engine *discount.Engine) models.StoreSummary {
	policy := engine.Policy()
	rules := engine.Catalog().Rules()

	coupons := make([]models.CouponRuleConfig, 0, len(rules))
	for _, rule := range rules {
		coupons = append(coupons, models.CouponRuleConfig{
			Key:             rule.Key,
			DisplayName:     rule.DisplayName,
			Category:        rule.Category,
			DurationMinutes: rule.DurationMinutes,
			Priority:        rule.Priority,
		})
	}

	return models.StoreSummary{
		StoreID:            engine.StoreID,
		Name:               engine.Name,
		Strategy:           string(policy.Strategy),
		WeekdayTargetHours: policy.WeekdayTargetHours,
		WeekendTargetHours: policy.WeekendTargetHours,
		Coupons:            coupons,
	}
}
