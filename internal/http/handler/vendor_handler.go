package handler

import (
	"net/http"
	"strings"

	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/pbpl/workorder-api/internal/repository"
	"github.com/pbpl/workorder-api/internal/service"
	"go.uber.org/zap"
)

// VendorHandler handles HTTP requests for vendor operations
type VendorHandler struct {
	vendorService *service.VendorService
	logger        *zap.Logger
}

func NewVendorHandler(vendorService *service.VendorService, logger *zap.Logger) *VendorHandler {
	return &VendorHandler{
		vendorService: vendorService,
		logger:        logger,
	}
}

// List godoc
// @Summary List vendors
// @Tags Vendors
// @Produce json
// @Param search query string false "Match name, contact number or contact person"
// @Param vendor_type query string false "Filter by type" Enums(Service Provider, Contractor)
// @Param status query string false "Filter by status" Enums(Active, Inactive)
// @Param sort_by query string false "Sort field" Enums(vendor_name, vendor_type, status, created_at)
// @Param sort_order query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} domain.VendorListResponse
// @Router /vendors [get]
func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := &repository.VendorFilters{Search: q.Get("search")}
	if vt := strings.TrimSpace(q.Get("vendor_type")); vt != "" {
		t := domain.VendorType(vt)
		filters.VendorType = &t
	}
	if st := strings.TrimSpace(q.Get("status")); st != "" {
		s := domain.VendorStatus(st)
		filters.Status = &s
	}

	vendors, err := h.vendorService.List(r.Context(), filters, parseSort(r))
	if err != nil {
		respondServiceError(w, h.logger, "fetch vendors", err)
		return
	}
	respondJSON(w, http.StatusOK, domain.VendorListResponse{Success: true, Vendors: vendors})
}

// GetByID godoc
// @Summary Get vendor
// @Tags Vendors
// @Produce json
// @Param id path string true "Vendor ID" format(uuid)
// @Success 200 {object} domain.VendorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /vendors/{id} [get]
func (h *VendorHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	vendor, err := h.vendorService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, "fetch vendor", err)
		return
	}
	respondJSON(w, http.StatusOK, domain.VendorResponse{Success: true, Vendor: vendor})
}

// Create godoc
// @Summary Create vendor
// @Tags Vendors
// @Accept json
// @Produce json
// @Param request body domain.CreateVendorRequest true "Vendor data"
// @Success 200 {object} domain.VendorResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Duplicate vendor name"
// @Router /vendors [post]
func (h *VendorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateVendorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vendor, err := h.vendorService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, "create vendor", err)
		return
	}
	respondJSON(w, http.StatusOK, domain.VendorResponse{Success: true, Vendor: vendor})
}

// Update godoc
// @Summary Update vendor
// @Description Existing work orders keep their copy of the vendor details
// @Tags Vendors
// @Accept json
// @Produce json
// @Param id path string true "Vendor ID" format(uuid)
// @Param request body domain.UpdateVendorRequest true "Fields to update"
// @Success 200 {object} domain.VendorResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Duplicate vendor name"
// @Router /vendors/{id} [put]
func (h *VendorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateVendorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vendor, err := h.vendorService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, "update vendor", err)
		return
	}
	respondJSON(w, http.StatusOK, domain.VendorResponse{Success: true, Vendor: vendor})
}

// Delete godoc
// @Summary Delete vendor
// @Description Refused while any work order carries the vendor's name
// @Tags Vendors
// @Produce json
// @Param id path string true "Vendor ID" format(uuid)
// @Success 200 {object} domain.MessageResponse
// @Failure 400 {object} domain.ErrorResponse "Vendor referenced by work orders"
// @Failure 404 {object} domain.ErrorResponse
// @Router /vendors/{id} [delete]
func (h *VendorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.vendorService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, "delete vendor", err)
		return
	}
	respondJSON(w, http.StatusOK, domain.MessageResponse{Success: true, Message: "Vendor deleted successfully"})
}
