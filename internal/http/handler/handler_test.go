package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pbpl/workorder-api/internal/cache"
	"github.com/pbpl/workorder-api/internal/config"
	"github.com/pbpl/workorder-api/internal/document"
	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/pbpl/workorder-api/internal/http/handler"
	"github.com/pbpl/workorder-api/internal/repository"
	"github.com/pbpl/workorder-api/internal/service"
	"github.com/pbpl/workorder-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	router   http.Handler
	recorder *service.ActivityRecorder
	company  *domain.Company
}

func setupServer(t *testing.T, engine document.Engine) *testServer {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	woRepo := repository.NewWorkOrderRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	logRepo := repository.NewActivityLogRepository(db)

	recorder := service.NewActivityRecorder(logRepo, 100, time.Second, logger)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = recorder.Close(ctx)
	})

	numbers := service.NewWorkOrderNumberGenerator(repository.NewNumberSequenceRepository(db), "PBPL", time.UTC, logger)
	woService := service.NewWorkOrderService(woRepo, companyRepo, numbers, recorder, config.WorkOrdersConfig{
		NumberPrefix:               "PBPL",
		DefaultSGSTPercent:         9,
		DefaultCGSTPercent:         9,
		NumberGenerationMaxRetries: 3,
	}, logger)
	logService := service.NewActivityLogService(logRepo, logger)
	dashboardService := service.NewDashboardService(woRepo, companyRepo, vendorRepo, cache.Noop{}, time.Minute, logger)
	companyService := service.NewCompanyService(companyRepo, recorder, logger)
	vendorService := service.NewVendorService(vendorRepo, woRepo, recorder, logger)
	woService.OnChange(dashboardService.Invalidate)
	companyService.OnChange(dashboardService.Invalidate)
	vendorService.OnChange(dashboardService.Invalidate)

	if engine == nil {
		engine = document.GoFPDFEngine{}
	}
	docService := document.NewService(woRepo, engine, nil, 200*time.Millisecond, logger)

	woHandler := handler.NewWorkOrderHandler(woService, logService, docService, logger)
	companyHandler := handler.NewCompanyHandler(companyService, logger)
	vendorHandler := handler.NewVendorHandler(vendorService, logger)
	logHandler := handler.NewActivityLogHandler(logService, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, logger)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/work-orders", woHandler.List)
		r.Post("/work-orders", woHandler.Create)
		r.Get("/work-orders/pending-payments", woHandler.PendingPayments)
		r.Get("/work-orders/export", woHandler.Export)
		r.Get("/work-orders/{id}", woHandler.GetByID)
		r.Put("/work-orders/{id}", woHandler.Update)
		r.Delete("/work-orders/{id}", woHandler.Delete)
		r.Get("/work-orders/{id}/pdf", woHandler.PDF)
		r.Get("/work-orders/{id}/document", woHandler.Document)
		r.Get("/work-orders/{id}/activity", woHandler.Activity)

		r.Get("/companies", companyHandler.List)
		r.Post("/companies", companyHandler.Create)
		r.Get("/companies/{id}", companyHandler.GetByID)
		r.Put("/companies/{id}", companyHandler.Update)
		r.Delete("/companies/{id}", companyHandler.Delete)

		r.Get("/vendors", vendorHandler.List)
		r.Post("/vendors", vendorHandler.Create)
		r.Get("/vendors/{id}", vendorHandler.GetByID)
		r.Put("/vendors/{id}", vendorHandler.Update)
		r.Delete("/vendors/{id}", vendorHandler.Delete)

		r.Get("/activity-logs", logHandler.List)
		r.Post("/activity-logs", logHandler.Create)

		r.Get("/dashboard/stats", dashboardHandler.GetStats)
	})

	return &testServer{
		router:   r,
		recorder: recorder,
		company:  testutil.CreateTestCompany(t, db, "Pune Builders"),
	}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) flush(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.recorder.Flush(ctx))
}

func (s *testServer) createWorkOrder(t *testing.T, overrides map[string]interface{}) domain.WorkOrderDetailDTO {
	t.Helper()
	body := map[string]interface{}{
		"company_id":       s.company.ID.String(),
		"vendor_name":      "ABC Construction",
		"site_name":        "Green Valley",
		"work_description": "RCC work for block A",
		"total_amount":     1000,
	}
	for k, v := range overrides {
		body[k] = v
	}
	rr := s.do(t, http.MethodPost, "/api/work-orders", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp domain.WorkOrderResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	return *resp.WorkOrder
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) domain.ErrorResponse {
	t.Helper()
	var resp domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	assert.False(t, resp.Success)
	return resp
}

func TestWorkOrderHandler_CreateAndGet(t *testing.T) {
	s := setupServer(t, nil)

	wo := s.createWorkOrder(t, nil)
	assert.True(t, strings.HasPrefix(wo.WONumber, "W.O."))
	assert.Equal(t, 1000.0, wo.TotalAmount)
	assert.Equal(t, 90.0, wo.SGSTAmount)
	assert.Equal(t, 90.0, wo.CGSTAmount)
	assert.Equal(t, 1180.0, wo.GrossAmount)
	assert.Equal(t, 1180.0, wo.NetAmount)
	assert.Equal(t, "Pune Builders", wo.CompanyName)
	assert.Equal(t, domain.WorkOrderStatusDraft, wo.Status)

	rr := s.do(t, http.MethodGet, "/api/work-orders/"+wo.ID.String(), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var resp domain.WorkOrderResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, wo.WONumber, resp.WorkOrder.WONumber)
	assert.Equal(t, "R. Kulkarni", resp.WorkOrder.CompanyContactPerson)
}

func TestWorkOrderHandler_CreateErrors(t *testing.T) {
	s := setupServer(t, nil)

	t.Run("missing fields", func(t *testing.T) {
		rr := s.do(t, http.MethodPost, "/api/work-orders", map[string]interface{}{"company_id": s.company.ID.String()})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeError(t, rr).Error, "Missing required fields")
	})

	t.Run("malformed body", func(t *testing.T) {
		rr := s.do(t, http.MethodPost, "/api/work-orders", "{not json")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid request body", decodeError(t, rr).Error)
	})

	t.Run("field too long", func(t *testing.T) {
		rr := s.do(t, http.MethodPost, "/api/work-orders", map[string]interface{}{
			"company_id":       s.company.ID.String(),
			"vendor_name":      "ABC",
			"site_name":        "Site",
			"work_description": "Work",
			"total_amount":     100,
			"vendor_gst":       strings.Repeat("9", 21),
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeError(t, rr)
		assert.Equal(t, "Validation failed", resp.Error)
		assert.Contains(t, resp.Details, "vendor_gst")
	})

	t.Run("duplicate number", func(t *testing.T) {
		s.createWorkOrder(t, map[string]interface{}{"wo_number": "WO-FIXED-1"})
		rr := s.do(t, http.MethodPost, "/api/work-orders", map[string]interface{}{
			"wo_number":        "WO-FIXED-1",
			"company_id":       s.company.ID.String(),
			"vendor_name":      "ABC",
			"site_name":        "Site",
			"work_description": "Work",
			"total_amount":     100,
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, service.ErrDuplicateWorkOrderNumber.Error(), decodeError(t, rr).Error)
	})
}

func TestWorkOrderHandler_Update(t *testing.T) {
	s := setupServer(t, nil)
	wo := s.createWorkOrder(t, nil)

	rr := s.do(t, http.MethodPut, "/api/work-orders/"+wo.ID.String(), map[string]interface{}{
		"total_amount":      2000,
		"retention_percent": 5,
		"status":            "Active",
		"unknown_field":     "ignored",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp domain.WorkOrderResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2360.0, resp.WorkOrder.GrossAmount)
	assert.Equal(t, 118.0, resp.WorkOrder.RetentionAmount)
	assert.Equal(t, 2242.0, resp.WorkOrder.NetAmount)
	assert.Equal(t, domain.WorkOrderStatusActive, resp.WorkOrder.Status)

	t.Run("no fields", func(t *testing.T) {
		rr := s.do(t, http.MethodPut, "/api/work-orders/"+wo.ID.String(), map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "No fields to update", decodeError(t, rr).Error)
	})

	t.Run("not found", func(t *testing.T) {
		rr := s.do(t, http.MethodPut, "/api/work-orders/00000000-0000-0000-0000-000000000001", map[string]interface{}{"site_name": "X"})
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Work order not found", decodeError(t, rr).Error)
	})

	t.Run("invalid id", func(t *testing.T) {
		rr := s.do(t, http.MethodPut, "/api/work-orders/not-a-uuid", map[string]interface{}{"site_name": "X"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid ID", decodeError(t, rr).Error)
	})
}

func TestWorkOrderHandler_Delete(t *testing.T) {
	s := setupServer(t, nil)
	wo := s.createWorkOrder(t, nil)
	path := "/api/work-orders/" + wo.ID.String()

	rr := s.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, service.ErrAdminPermissionRequired.Error(), decodeError(t, rr).Error)

	rr = s.do(t, http.MethodDelete, path+"?admin_permission=true", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var msg domain.MessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &msg))
	assert.Equal(t, "Work order deleted successfully", msg.Message)

	rr = s.do(t, http.MethodDelete, path+"?admin_permission=true", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = s.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestWorkOrderHandler_ListAndFilters(t *testing.T) {
	s := setupServer(t, nil)
	s.createWorkOrder(t, map[string]interface{}{"vendor_name": "Alpha Infra"})
	s.createWorkOrder(t, map[string]interface{}{"vendor_name": "Beta Builders", "status": "Completed"})

	rr := s.do(t, http.MethodGet, "/api/work-orders?search=alpha", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list domain.WorkOrderListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list.WorkOrders, 1)
	assert.Equal(t, "Alpha Infra", list.WorkOrders[0].VendorName)

	// company name is matched through the join
	rr = s.do(t, http.MethodGet, "/api/work-orders?search=pune%20builders", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list.WorkOrders, 2)

	rr = s.do(t, http.MethodGet, "/api/work-orders?status=Completed", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list.WorkOrders, 1)
	assert.Equal(t, "Beta Builders", list.WorkOrders[0].VendorName)

	rr = s.do(t, http.MethodGet, "/api/work-orders?company_id=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/work-orders/pending-payments", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var pending domain.PendingPaymentsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pending))
	assert.Len(t, pending.PendingPayments, 1)
}

func TestWorkOrderHandler_Documents(t *testing.T) {
	s := setupServer(t, nil)
	wo := s.createWorkOrder(t, map[string]interface{}{"vendor_name": "<b>Vendor</b>"})

	rr := s.do(t, http.MethodGet, "/api/work-orders/"+wo.ID.String()+"/pdf", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), document.Filename(wo.WONumber))
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")))

	rr = s.do(t, http.MethodGet, "/api/work-orders/"+wo.ID.String()+"/document", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "&lt;b&gt;Vendor&lt;/b&gt;")

	rr = s.do(t, http.MethodGet, "/api/work-orders/00000000-0000-0000-0000-000000000001/pdf", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/work-orders/export", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), ".xlsx")
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("PK")))
}

type brokenEngine struct{}

func (brokenEngine) Name() string { return "broken" }

func (brokenEngine) Render(context.Context, *document.Source) ([]byte, error) {
	return nil, assert.AnError
}

func TestWorkOrderHandler_PDFFailure(t *testing.T) {
	s := setupServer(t, brokenEngine{})
	wo := s.createWorkOrder(t, nil)

	rr := s.do(t, http.MethodGet, "/api/work-orders/"+wo.ID.String()+"/pdf", nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	resp := decodeError(t, rr)
	assert.Equal(t, "Failed to generate PDF", resp.Error)
	assert.NotEmpty(t, resp.Details)
}

func TestWorkOrderHandler_Activity(t *testing.T) {
	s := setupServer(t, nil)
	wo := s.createWorkOrder(t, nil)
	rr := s.do(t, http.MethodPut, "/api/work-orders/"+wo.ID.String(), map[string]interface{}{"status": "Active"})
	require.Equal(t, http.StatusOK, rr.Code)
	s.flush(t)

	rr = s.do(t, http.MethodGet, "/api/work-orders/"+wo.ID.String()+"/activity", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var resp domain.ActivityLogListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.ActivityLogs, 2)

	types := []domain.ActivityType{resp.ActivityLogs[0].ActivityType, resp.ActivityLogs[1].ActivityType}
	assert.ElementsMatch(t, []domain.ActivityType{domain.ActivityTypeCreate, domain.ActivityTypeStatusChange}, types)
	assert.Equal(t, "Admin User", resp.ActivityLogs[0].UserName)
}

func TestCompanyHandler_CRUD(t *testing.T) {
	s := setupServer(t, nil)

	rr := s.do(t, http.MethodPost, "/api/companies", map[string]interface{}{
		"company_name": "Mumbai Infra",
		"gst_number":   "27ABCDE1234F1Z5",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var created domain.CompanyResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "Mumbai Infra", created.Company.CompanyName)

	rr = s.do(t, http.MethodPost, "/api/companies", map[string]interface{}{"company_name": "Mumbai Infra"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, service.ErrDuplicateCompanyName.Error(), decodeError(t, rr).Error)

	rr = s.do(t, http.MethodPost, "/api/companies", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Missing required fields: company_name", decodeError(t, rr).Error)

	path := "/api/companies/" + created.Company.ID.String()
	rr = s.do(t, http.MethodPut, path, map[string]interface{}{"city": "Mumbai"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var fetched domain.CompanyResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &fetched))
	assert.Equal(t, "Mumbai", fetched.Company.City)

	rr = s.do(t, http.MethodGet, "/api/companies?search=mumbai&sort_by=company_name&sort_order=asc", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list domain.CompanyListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list.Companies, 1)

	rr = s.do(t, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = s.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Company not found", decodeError(t, rr).Error)
}

func TestVendorHandler_CRUD(t *testing.T) {
	s := setupServer(t, nil)

	vendor := map[string]interface{}{
		"vendor_name":    "ABC Construction",
		"vendor_type":    "Contractor",
		"contact_number": "9811111111",
	}
	rr := s.do(t, http.MethodPost, "/api/vendors", vendor)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var created domain.VendorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, domain.VendorStatusActive, created.Vendor.Status)

	rr = s.do(t, http.MethodPost, "/api/vendors", vendor)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = s.do(t, http.MethodPost, "/api/vendors", map[string]interface{}{
		"vendor_name":    "Other",
		"vendor_type":    "Supplier",
		"contact_number": "1",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeError(t, rr).Error, "Must be one of")

	rr = s.do(t, http.MethodPost, "/api/vendors", map[string]interface{}{
		"vendor_name":    "Emailer",
		"vendor_type":    "Contractor",
		"contact_number": "1",
		"email":          "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeError(t, rr).Details, "email")

	rr = s.do(t, http.MethodGet, "/api/vendors?vendor_type=Contractor&status=Active", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list domain.VendorListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list.Vendors, 1)

	// referenced by a work order: delete refused
	s.createWorkOrder(t, nil)
	path := "/api/vendors/" + created.Vendor.ID.String()
	rr = s.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, service.ErrVendorInUse.Error(), decodeError(t, rr).Error)

	rr = s.do(t, http.MethodPut, path, map[string]interface{}{"status": "Inactive"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodGet, "/api/vendors/00000000-0000-0000-0000-000000000001", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestActivityLogHandler(t *testing.T) {
	s := setupServer(t, nil)

	rr := s.do(t, http.MethodPost, "/api/activity-logs", map[string]interface{}{
		"activity_type": "UPDATE",
		"entity_type":   "work_order",
		"entity_id":     "abc",
		"description":   "Manual note",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var created domain.ActivityLogResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "Manual note", created.ActivityLog.Description)

	rr = s.do(t, http.MethodPost, "/api/activity-logs", map[string]interface{}{"activity_type": "UPDATE"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeError(t, rr).Error, "Missing required fields")

	rr = s.do(t, http.MethodGet, "/api/activity-logs?page=1&limit=10&entity_type=work_order", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list domain.ActivityLogListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list.ActivityLogs, 1)
	require.NotNil(t, list.Pagination)
	assert.Equal(t, int64(1), list.Pagination.Total)
	assert.Equal(t, 10, list.Pagination.Limit)

	// an oversized page is capped instead of wrapping the offset
	rr = s.do(t, http.MethodGet, "/api/activity-logs?page=9223372036854775807&limit=200", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Empty(t, list.ActivityLogs)
	assert.Equal(t, repository.MaxPage, list.Pagination.Page)
}

func TestDashboardHandler_GetStats(t *testing.T) {
	s := setupServer(t, nil)
	s.createWorkOrder(t, nil)

	rr := s.do(t, http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var resp domain.DashboardStatsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Stats.TotalWorkOrders)
	assert.Equal(t, int64(1), resp.Stats.TotalCompanies)
	assert.Len(t, resp.Stats.RecentWorkOrders, 1)
}
