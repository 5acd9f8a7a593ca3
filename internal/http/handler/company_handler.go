package handler

import (
	"net/http"

	"github.com/pbpl/workorder-api/internal/domain"
	"github.com/pbpl/workorder-api/internal/repository"
	"github.com/pbpl/workorder-api/internal/service"
	"go.uber.org/zap"
)

type CompanyHandler struct {
	companyService *service.CompanyService
	logger         *zap.Logger
}

func NewCompanyHandler(companyService *service.CompanyService, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
		logger:         logger,
	}
}

// @Summary List companies
// @Tags Companies
// @Produce json
// @Param search query string false "Match name, contact person or GST number"
// @Param sort_by query string false "Sort field" Enums(company_name, created_at, updated_at)
// @Param sort_order query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} domain.CompanyListResponse
// @Router /companies [get]
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := &repository.CompanyFilters{Search: r.URL.Query().Get("search")}

	companies, err := h.companyService.List(r.Context(), filters, parseSort(r))
	if err != nil {
		respondServiceError(w, h.logger, "fetch companies", err)
		return
	}
	respondJSON(w, http.StatusOK, domain.CompanyListResponse{Success: true, Companies: companies})
}

// @Summary Get company
// @Tags Companies
// @Produce json
// @Param id path string true "Company ID" format(uuid)
// @Success 200 {object} domain.CompanyResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /companies/{id} [get]
func (h *CompanyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	company, err := h.companyService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, "fetch company", err)
		return
	}
	respondJSON(w, http.StatusOK, domain.CompanyResponse{Success: true, Company: company})
}

// @Summary Create company
// @Tags Companies
// @Accept json
// @Produce json
// @Param request body domain.CreateCompanyRequest true "Company data"
// @Success 200 {object} domain.CompanyResponse
// @Failure 400 {object} domain.ErrorResponse
// @Router /companies [post]
func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCompanyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	company, err := h.companyService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, "create company", err)
		return
	}
	respondJSON(w, http.StatusOK, domain.CompanyResponse{Success: true, Company: company})
}

// @Summary Update company
// @Tags Companies
// @Accept json
// @Produce json
// @Param id path string true "Company ID" format(uuid)
// @Param request body domain.UpdateCompanyRequest true "Fields to update"
// @Success 200 {object} domain.CompanyResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /companies/{id} [put]
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateCompanyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	company, err := h.companyService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, "update company", err)
		return
	}
	respondJSON(w, http.StatusOK, domain.CompanyResponse{Success: true, Company: company})
}

// @Summary Delete company
// @Description Work orders issued by the company are kept
// @Tags Companies
// @Produce json
// @Param id path string true "Company ID" format(uuid)
// @Success 200 {object} domain.MessageResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /companies/{id} [delete]
func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.companyService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, "delete company", err)
		return
	}
	respondJSON(w, http.StatusOK, domain.MessageResponse{Success: true, Message: "Company deleted successfully"})
}

// parseSort reads sort_by and sort_order; unknown fields fall back to the
// listing's default order
func parseSort(r *http.Request) repository.SortConfig {
	q := r.URL.Query()
	sort := repository.SortConfig{Field: q.Get("sort_by")}
	if order := q.Get("sort_order"); order != "" {
		sort.Order = repository.ParseSortOrder(order)
	}
	return sort
}
