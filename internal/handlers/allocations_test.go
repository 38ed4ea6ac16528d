package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"parking-discount/internal/apperror"
	"parking-discount/internal/logger"
	"parking-discount/internal/models"
)

type stubAllocationService struct {
	plan     *models.CouponPlan
	store    *models.StoreSummary
	stores   []models.StoreSummary
	err      error
	snapshot *models.CouponSnapshot
	storeID  string
}

func (s *stubAllocationService) CreatePlan(ctx context.Context, snapshot *models.CouponSnapshot) (*models.CouponPlan, error) {
	s.snapshot = snapshot
	return s.plan, s.err
}
func (s *stubAllocationService) ListStores(ctx context.Context) []models.StoreSummary {
	return s.stores
}
func (s *stubAllocationService) GetStore(ctx context.Context, storeID string) (*models.StoreSummary, error) {
	s.storeID = storeID
	return s.store, s.err
}
func (s *stubAllocationService) StoreCount() int { return len(s.stores) }

func newTestLogger() *logger.Logger {
	return logger.Discard()
}

func newTestRouter(service *stubAllocationService) http.Handler {
	log := newTestLogger()
	return NewRouter(NewAllocationHandler(service, log), NewHealthHandler(service), []string{"*"}, log)
}

func TestAllocationHandler_CreatePlan(t *testing.T) {
	service := &stubAllocationService{plan: &models.CouponPlan{
		RequestID: "req-1",
		StoreID:   "A",
		Applications: []models.CouponApplication{
			{CouponName: "유료 1시간할인", CouponType: models.CouponCategoryPaid, Count: 3},
		},
	}}
	router := newTestRouter(service)

	body := bytes.NewBufferString(`{"store_id":"A","vehicle_number":"12가3456","total_history":{"무료 1시간할인":1},"available":{"유료 1시간할인":10},"is_weekday":true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/allocations", body)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if service.snapshot == nil || service.snapshot.StoreID != "A" || service.snapshot.IsWeekday == nil || !*service.snapshot.IsWeekday {
		t.Fatalf("snapshot not passed to service: %+v", service.snapshot)
	}
	if service.snapshot.TotalHistory.Get("무료 1시간할인") != 1 {
		t.Fatalf("history not decoded: %+v", service.snapshot.TotalHistory)
	}

	var plan models.CouponPlan
	if err := json.Unmarshal(rr.Body.Bytes(), &plan); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(plan.Applications) != 1 || plan.Applications[0].Count != 3 {
		t.Fatalf("unexpected plan: %+v", plan)
	}
}

func TestAllocationHandler_CreatePlan_InvalidBody(t *testing.T) {
	router := newTestRouter(&stubAllocationService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/allocations", bytes.NewBufferString("bad json"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestAllocationHandler_CreatePlan_ServiceErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{apperror.Validation("vehicle_number is required", nil), http.StatusBadRequest},
		{apperror.NotFound("store Z not found", nil), http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		router := newTestRouter(&stubAllocationService{err: tc.err})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/allocations", bytes.NewBufferString(`{"store_id":"Z"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rr.Code)
		}
	}
}

func TestAllocationHandler_Stores(t *testing.T) {
	service := &stubAllocationService{
		stores: []models.StoreSummary{{StoreID: "A"}, {StoreID: "B"}},
		store:  &models.StoreSummary{StoreID: "B", Name: "B store"},
	}
	router := newTestRouter(service)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var stores []models.StoreSummary
	if err := json.Unmarshal(rr.Body.Bytes(), &stores); err != nil || len(stores) != 2 {
		t.Fatalf("unexpected stores response %s: %v", rr.Body.String(), err)
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/stores/B", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if service.storeID != "B" {
		t.Fatalf("expected store id from path, got %q", service.storeID)
	}
}

func TestAllocationHandler_GetStore_NotFound(t *testing.T) {
	router := newTestRouter(&stubAllocationService{err: apperror.NotFound("store X not found", nil)})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/stores/X", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestRouter_MethodNotAllowedAndUnknownRoute(t *testing.T) {
	router := newTestRouter(&stubAllocationService{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/allocations", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestRouter_CORS(t *testing.T) {
	log := newTestLogger()
	service := &stubAllocationService{}
	router := NewRouter(NewAllocationHandler(service, log), NewHealthHandler(service), []string{"https://ops.example"}, log)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/allocations", nil)
	req.Header.Set("Origin", "https://ops.example")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for preflight, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://ops.example" {
		t.Fatalf("unexpected allow-origin %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/health/liveness", nil)
	req.Header.Set("Origin", "https://evil.example")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow-origin for unknown origin, got %q", got)
	}
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(&stubAllocationService{stores: []models.StoreSummary{{StoreID: "A"}}})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health/readiness", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}
