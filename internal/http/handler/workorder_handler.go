package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pbpl/workorder-api/internal/document"
	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/pbpl/workorder-api/internal/repository"
	"github.com/pbpl/workorder-api/internal/service"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WorkOrderHandler handles HTTP requests for work orders, their documents and
// their activity history
type WorkOrderHandler struct {
	workOrderService   *service.WorkOrderService
	activityLogService *service.ActivityLogService
	documentService    *document.Service
	logger             *zap.Logger
}

// NewWorkOrderHandler creates a new work order handler instance
func NewWorkOrderHandler(
	workOrderService *service.WorkOrderService,
	activityLogService *service.ActivityLogService,
	documentService *document.Service,
	logger *zap.Logger,
) *WorkOrderHandler {
	return &WorkOrderHandler{
		workOrderService:   workOrderService,
		activityLogService: activityLogService,
		documentService:    documentService,
		logger:             logger,
	}
}

// List godoc
// @Summary List work orders
// @Description List work orders newest first, joined with company names
// @Tags Work Orders
// @Produce json
// @Param search query string false "Match wo_number, vendor_name, site_name or company name"
// @Param status query string false "Filter by status" Enums(Draft, Active, In Progress, Completed)
// @Param company_id query string false "Filter by company" format(uuid)
// @Success 200 {object} domain.WorkOrderListResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /work-orders [get]
func (h *WorkOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, ok := parseWorkOrderFilters(w, r)
	if !ok {
		return
	}

	workOrders, err := h.workOrderService.List(r.Context(), filters)
	if err != nil {
		respondServiceError(w, h.logger, "fetch work orders", err)
		return
	}

	respondJSON(w, http.StatusOK, domain.WorkOrderListResponse{Success: true, WorkOrders: workOrders})
}

// Create godoc
// @Summary Create work order
// @Description Create a work order. Tax, gross, retention and net amounts are computed by the server; a number is generated when wo_number is empty.
// @Tags Work Orders
// @Accept json
// @Produce json
// @Param request body domain.CreateWorkOrderRequest true "Work order data"
// @Success 200 {object} domain.WorkOrderResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /work-orders [post]
func (h *WorkOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateWorkOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	workOrder, err := h.workOrderService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, "create work order", err)
		return
	}

	respondJSON(w, http.StatusOK, domain.WorkOrderResponse{Success: true, WorkOrder: workOrder})
}

// GetByID godoc
// @Summary Get work order
// @Tags Work Orders
// @Produce json
// @Param id path string true "Work order ID" format(uuid)
// @Success 200 {object} domain.WorkOrderResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /work-orders/{id} [get]
func (h *WorkOrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	workOrder, err := h.workOrderService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, "fetch work order", err)
		return
	}

	respondJSON(w, http.StatusOK, domain.WorkOrderResponse{Success: true, WorkOrder: workOrder})
}

// Update godoc
// @Summary Update work order
// @Description Partial update. Only supplied fields are written; amounts are recomputed when any amount input changes.
// @Tags Work Orders
// @Accept json
// @Produce json
// @Param id path string true "Work order ID" format(uuid)
// @Param request body domain.UpdateWorkOrderRequest true "Fields to update"
// @Success 200 {object} domain.WorkOrderResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /work-orders/{id} [put]
func (h *WorkOrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateWorkOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	workOrder, err := h.workOrderService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, "update work order", err)
		return
	}

	respondJSON(w, http.StatusOK, domain.WorkOrderResponse{Success: true, WorkOrder: workOrder})
}

// Delete godoc
// @Summary Delete work order
// @Tags Work Orders
// @Produce json
// @Param id path string true "Work order ID" format(uuid)
// @Param admin_permission query bool true "Must be true"
// @Success 200 {object} domain.MessageResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /work-orders/{id} [delete]
func (h *WorkOrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	adminPermission := r.URL.Query().Get("admin_permission") == "true"
	if err := h.workOrderService.Delete(r.Context(), id, adminPermission); err != nil {
		respondServiceError(w, h.logger, "delete work order", err)
		return
	}

	respondJSON(w, http.StatusOK, domain.MessageResponse{Success: true, Message: "Work order deleted successfully"})
}

// PDF godoc
// @Summary Download work order PDF
// @Tags Work Orders
// @Produce application/pdf
// @Param id path string true "Work order ID" format(uuid)
// @Success 200 {file} binary
// @Failure 404 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /work-orders/{id}/pdf [get]
func (h *WorkOrderHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	rendered, err := h.documentService.Render(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, "generate PDF", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, rendered.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(rendered.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rendered.Content)
}

// Document godoc
// @Summary Preview work order document
// @Description The printable HTML layout with its stylesheet inlined
// @Tags Work Orders
// @Produce html
// @Param id path string true "Work order ID" format(uuid)
// @Success 200 {string} string
// @Failure 404 {object} domain.ErrorResponse
// @Router /work-orders/{id}/document [get]
func (h *WorkOrderHandler) Document(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	html, err := h.documentService.RenderHTML(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, "render work order document", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(html)
}

// Activity godoc
// @Summary Work order history
// @Tags Work Orders
// @Produce json
// @Param id path string true "Work order ID" format(uuid)
// @Success 200 {object} domain.ActivityLogListResponse
// @Router /work-orders/{id}/activity [get]
func (h *WorkOrderHandler) Activity(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	logs, err := h.activityLogService.ListForEntity(r.Context(), domain.EntityTypeWorkOrder, id.String())
	if err != nil {
		respondServiceError(w, h.logger, "fetch work order activity", err)
		return
	}

	respondJSON(w, http.StatusOK, domain.ActivityLogListResponse{Success: true, ActivityLogs: logs})
}

// PendingPayments godoc
// @Summary Pending payments
// @Description Issued work orders with an outstanding net amount and a summary by payment status
// @Tags Work Orders
// @Produce json
// @Param search query string false "Match wo_number, vendor_name, site_name or company name"
// @Param company_id query string false "Filter by company" format(uuid)
// @Success 200 {object} domain.PendingPaymentsResponse
// @Router /work-orders/pending-payments [get]
func (h *WorkOrderHandler) PendingPayments(w http.ResponseWriter, r *http.Request) {
	filters, ok := parseWorkOrderFilters(w, r)
	if !ok {
		return
	}

	payments, summary, err := h.workOrderService.PendingPayments(r.Context(), filters)
	if err != nil {
		respondServiceError(w, h.logger, "fetch pending payments", err)
		return
	}

	respondJSON(w, http.StatusOK, domain.PendingPaymentsResponse{
		Success:         true,
		PendingPayments: payments,
		Summary:         summary,
	})
}

// Export godoc
// @Summary Export work order register
// @Description Spreadsheet of the work orders matching the list filters
// @Tags Work Orders
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param search query string false "Match wo_number, vendor_name, site_name or company name"
// @Param status query string false "Filter by status"
// @Param company_id query string false "Filter by company" format(uuid)
// @Success 200 {file} binary
// @Router /work-orders/export [get]
func (h *WorkOrderHandler) Export(w http.ResponseWriter, r *http.Request) {
	filters, ok := parseWorkOrderFilters(w, r)
	if !ok {
		return
	}

	data, err := h.workOrderService.ExportRegister(r.Context(), filters)
	if err != nil {
		respondServiceError(w, h.logger, "export work orders", err)
		return
	}

	filename := fmt.Sprintf("work-orders-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func parseWorkOrderFilters(w http.ResponseWriter, r *http.Request) (*repository.WorkOrderFilters, bool) {
	q := r.URL.Query()
	filters := &repository.WorkOrderFilters{Search: strings.TrimSpace(q.Get("search"))}

	if status := strings.TrimSpace(q.Get("status")); status != "" {
		s := domain.WorkOrderStatus(status)
		filters.Status = &s
	}

	if raw := strings.TrimSpace(q.Get("company_id")); raw != "" {
		companyID, err := uuid.Parse(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, service.ErrInvalidCompany.Error())
			return nil, false
		}
		filters.CompanyID = &companyID
	}
	return filters, true
}
