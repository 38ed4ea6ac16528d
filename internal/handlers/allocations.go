package handlers

import (
	"net/http"

	"parking-discount/internal/logger"
	"parking-discount/internal/models"

	"github.com/go-chi/chi/v5"
)

// AllocationHandler отдаёт каталог магазинов и рассчитывает планы купонов.
type AllocationHandler struct {
	service AllocationService
	log     *logger.Logger
}

// NewAllocationHandler создаёт обработчик расчёта.
func NewAllocationHandler(service AllocationService, log *logger.Logger) *AllocationHandler {
	return &AllocationHandler{
		service: service,
		log:     log,
	}
}

// CreatePlan рассчитывает план применения купонов по снимку страницы магазина.
func (h *AllocationHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var snapshot models.CouponSnapshot
	if err := decodeJSONBody(w, r, &snapshot); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	plan, err := h.service.CreatePlan(r.Context(), &snapshot)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to create coupon plan")
		return
	}

	writeJSONResponse(w, http.StatusOK, plan)
}

// ListStores возвращает все настроенные магазины.
func (h *AllocationHandler) ListStores(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.service.ListStores(r.Context()))
}

// GetStore возвращает магазин по идентификатору.
func (h *AllocationHandler) GetStore(w http.ResponseWriter, r *http.Request) {
	store, err := h.service.GetStore(r.Context(), chi.URLParam(r, "storeID"))
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to get store")
		return
	}

	writeJSONResponse(w, http.StatusOK, store)
}
