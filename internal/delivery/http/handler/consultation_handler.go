package handler

import (
	"net/http"

	"github.com/incorgnihealth/api/internal/usecase"
	"github.com/incorgnihealth/api/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ConsultationHandler struct {
	consultationUsecase usecase.ConsultationUsecase
}

func NewConsultationHandler(consultationUsecase usecase.ConsultationUsecase) *ConsultationHandler {
	return &ConsultationHandler{
		consultationUsecase: consultationUsecase,
	}
}

func (h *ConsultationHandler) Start(w http.ResponseWriter, r *http.Request) {
	consultation, err := h.consultationUsecase.Start(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to start consultation")
		return
	}

	response.Success(w, http.StatusCreated, "Consultation started", consultation)
}

func (h *ConsultationHandler) Claim(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	consultationID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid consultation ID", nil)
		return
	}

	consultation, err := h.consultationUsecase.Claim(r.Context(), consultationID)
	if err != nil {
		switch err {
		case usecase.ErrConsultationNotFound:
			response.NotFound(w, "Consultation not found")
		case usecase.ErrConsultationClaimed:
			response.Conflict(w, "Consultation already claimed by another doctor")
		default:
			response.InternalServerError(w, "Failed to claim consultation")
		}
		return
	}

	response.Success(w, http.StatusOK, "Consultation claimed", consultation)
}

func (h *ConsultationHandler) Close(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	consultationID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid consultation ID", nil)
		return
	}

	consultation, err := h.consultationUsecase.Close(r.Context(), consultationID)
	if err != nil {
		switch err {
		case usecase.ErrConsultationNotFound:
			response.NotFound(w, "Consultation not found")
		case usecase.ErrNotParticipant:
			response.Forbidden(w, "Only participants can close this consultation")
		default:
			response.InternalServerError(w, "Failed to close consultation")
		}
		return
	}

	response.Success(w, http.StatusOK, "Consultation closed", consultation)
}

func (h *ConsultationHandler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	consultationID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid consultation ID", nil)
		return
	}

	consultation, err := h.consultationUsecase.Get(r.Context(), consultationID)
	if err != nil {
		switch err {
		case usecase.ErrConsultationNotFound:
			response.NotFound(w, "Consultation not found")
		case usecase.ErrNotParticipant:
			response.Forbidden(w, "Only participants can view this consultation")
		default:
			response.InternalServerError(w, "Failed to get consultation")
		}
		return
	}

	response.Success(w, http.StatusOK, "Consultation retrieved successfully", consultation)
}
