package handler

import (
	"net/http"

	"github.com/incorgnihealth/api/internal/domain/entity"
	"github.com/incorgnihealth/api/internal/domain/repository"
	"github.com/incorgnihealth/api/internal/usecase"
	"github.com/incorgnihealth/api/pkg/pagination"
	"github.com/incorgnihealth/api/pkg/response"
)

type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
	}
}

func (h *AdminHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.adminUsecase.Metrics(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get metrics")
		return
	}

	response.Success(w, http.StatusOK, "Metrics retrieved successfully", metrics)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromQuery(r.URL.Query())

	filter := repository.UserFilter{
		Search: r.URL.Query().Get("search"),
	}
	if s := r.URL.Query().Get("role"); s != "" {
		role := entity.Role(s)
		filter.Role = &role
	}

	users, meta, err := h.adminUsecase.ListUsers(r.Context(), filter, params)
	if err != nil {
		response.InternalServerError(w, "Failed to list users")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Users retrieved successfully", users, meta)
}

func (h *AdminHandler) ListConsultations(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromQuery(r.URL.Query())

	var status *entity.ConsultationStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := entity.ConsultationStatus(s)
		status = &st
	}

	consultations, meta, err := h.adminUsecase.ListConsultations(r.Context(), status, params)
	if err != nil {
		response.InternalServerError(w, "Failed to list consultations")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Consultations retrieved successfully", consultations, meta)
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromQuery(r.URL.Query())

	var status *entity.OrderStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := entity.OrderStatus(s)
		status = &st
	}

	orders, meta, err := h.adminUsecase.ListOrders(r.Context(), status, params)
	if err != nil {
		response.InternalServerError(w, "Failed to list orders")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Orders retrieved successfully", orders, meta)
}
