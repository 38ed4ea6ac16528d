package handlers

import (
	"net/http"
	"time"
)

// HealthHandler представляет обработчик для проверки здоровья системы
type HealthHandler struct {
	stores StoreCounter
}

// NewHealthHandler создает новый обработчик здоровья
func NewHealthHandler(stores StoreCounter) *HealthHandler {
	return &HealthHandler{stores: stores}
}

var startTime = time.Now()

// Readiness проверяет, что каталог магазинов загружен
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	count := h.stores.StoreCount()
	if count == 0 {
		writeErrorResponse(w, http.StatusServiceUnavailable, "No stores configured")
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"status": "ready",
		"stores": count,
	})
}

// Liveness проверяет, что приложение живо
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]string{
		"status": "alive",
		"uptime": time.Since(startTime).String(),
	})
}
