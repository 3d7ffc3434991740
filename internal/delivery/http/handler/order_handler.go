package handler

import (
	"encoding/json"
	"net/http"

	"github.com/incorgnihealth/api/internal/delivery/dto"
	"github.com/incorgnihealth/api/internal/domain/entity"
	"github.com/incorgnihealth/api/internal/usecase"
	"github.com/incorgnihealth/api/pkg/response"
	"github.com/incorgnihealth/api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUsecase
	validator    *validator.CustomValidator
}

func NewOrderHandler(orderUsecase usecase.OrderUsecase, validator *validator.CustomValidator) *OrderHandler {
	return &OrderHandler{
		orderUsecase: orderUsecase,
		validator:    validator,
	}
}

func (h *OrderHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	var status *entity.OrderStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := entity.OrderStatus(s)
		status = &st
	}

	orders, err := h.orderUsecase.PharmacyBoard(r.Context(), status)
	if err != nil {
		response.InternalServerError(w, "Failed to get orders")
		return
	}

	response.Success(w, http.StatusOK, "Orders retrieved successfully", orders)
}

func (h *OrderHandler) GetPharmacyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderUsecase.PharmacyOrders(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get orders")
		return
	}

	response.Success(w, http.StatusOK, "Orders retrieved successfully", orders)
}

func (h *OrderHandler) Accept(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	order, err := h.orderUsecase.Accept(r.Context(), orderID)
	if err != nil {
		h.writeOrderError(w, err, "Failed to accept order")
		return
	}

	response.Success(w, http.StatusOK, "Order accepted", order)
}

func (h *OrderHandler) MarkReady(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	order, err := h.orderUsecase.MarkReady(r.Context(), orderID)
	if err != nil {
		h.writeOrderError(w, err, "Failed to mark order ready")
		return
	}

	response.Success(w, http.StatusOK, "Order marked as ready", order)
}

func (h *OrderHandler) GetAvailableDeliveries(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderUsecase.AvailableDeliveries(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get deliveries")
		return
	}

	response.Success(w, http.StatusOK, "Deliveries retrieved successfully", orders)
}

func (h *OrderHandler) GetMyDeliveries(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderUsecase.MyDeliveries(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get deliveries")
		return
	}

	response.Success(w, http.StatusOK, "Deliveries retrieved successfully", orders)
}

func (h *OrderHandler) Pickup(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	order, err := h.orderUsecase.Pickup(r.Context(), orderID)
	if err != nil {
		h.writeOrderError(w, err, "Failed to pick up order")
		return
	}

	response.Success(w, http.StatusOK, "Order picked up", order)
}

func (h *OrderHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	var req dto.DeliverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	order, err := h.orderUsecase.Deliver(r.Context(), orderID, &req)
	if err != nil {
		h.writeOrderError(w, err, "Failed to deliver order")
		return
	}

	response.Success(w, http.StatusOK, "Order delivered", order)
}

func (h *OrderHandler) orderID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	vars := mux.Vars(r)
	orderID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order ID", nil)
		return uuid.Nil, false
	}
	return orderID, true
}

func (h *OrderHandler) writeOrderError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrOrderNotFound:
		response.NotFound(w, "Order not found")
	case usecase.ErrOrderNotPending:
		response.Conflict(w, "Order has already been accepted")
	case usecase.ErrOrderNotOwned:
		response.Forbidden(w, "Order is handled by another pharmacy")
	case usecase.ErrDeliveryNotOwned:
		response.Forbidden(w, "Delivery is assigned to another rider")
	case usecase.ErrOrderWrongStage:
		response.Conflict(w, "Order is not at the required stage")
	case usecase.ErrOrderConflict:
		response.Conflict(w, "Order was modified concurrently, refresh and retry")
	case usecase.ErrWrongSecureCode:
		response.Error(w, http.StatusBadRequest, "Invalid secure code", nil)
	default:
		response.InternalServerError(w, fallback)
	}
}
