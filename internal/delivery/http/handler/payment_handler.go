package handler

import (
	"encoding/json"
	"net/http"

	"github.com/incorgnihealth/api/internal/delivery/dto"
	"github.com/incorgnihealth/api/internal/usecase"
	"github.com/incorgnihealth/api/pkg/pagination"
	"github.com/incorgnihealth/api/pkg/response"
	"github.com/incorgnihealth/api/pkg/validator"
)

type PaymentHandler struct {
	paymentUsecase usecase.PaymentUsecase
	validator      *validator.CustomValidator
}

func NewPaymentHandler(paymentUsecase usecase.PaymentUsecase, validator *validator.CustomValidator) *PaymentHandler {
	return &PaymentHandler{
		paymentUsecase: paymentUsecase,
		validator:      validator,
	}
}

func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req dto.PayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	transaction, err := h.paymentUsecase.Pay(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInsufficientBalance:
			response.Error(w, http.StatusPaymentRequired, "Insufficient wallet balance", nil)
		case usecase.ErrInvalidPayee:
			response.Error(w, http.StatusBadRequest, "Invalid payee", nil)
		default:
			response.InternalServerError(w, "Failed to process payment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Payment successful", transaction)
}

func (h *PaymentHandler) History(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromQuery(r.URL.Query())

	transactions, meta, err := h.paymentUsecase.History(r.Context(), params)
	if err != nil {
		response.InternalServerError(w, "Failed to get transactions")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Transactions retrieved successfully", transactions, meta)
}
