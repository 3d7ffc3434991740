package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/incorgnihealth/api/internal/converter"
	"github.com/incorgnihealth/api/internal/delivery/dto"
	"github.com/incorgnihealth/api/internal/delivery/http/middleware"
	"github.com/incorgnihealth/api/internal/domain/entity"
	"github.com/incorgnihealth/api/internal/domain/repository"
	"github.com/incorgnihealth/api/internal/service"
	"github.com/incorgnihealth/api/pkg/identity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrConsultationNotActive = errors.New("consultation is not active")
	ErrNotAssignedDoctor     = errors.New("only the assigned doctor can prescribe")
)

// RoomBroadcaster pushes an event to every live connection in a consultation
// room. The websocket hub implements it; a nil-safe no-op is fine in tests.
type RoomBroadcaster interface {
	BroadcastToRoom(roomID string, event string, payload interface{})
}

type PrescriptionUsecase interface {
	Prescribe(ctx context.Context, req *dto.PrescribeRequest) (*dto.PrescribeResponse, error)
	Analyze(ctx context.Context, req *dto.AnalyzeRequest) (*service.TriageResult, error)
}

type prescriptionUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	prescriptionRepo repository.PrescriptionRepository
	orderRepo        repository.OrderRepository
	messageRepo      repository.MessageRepository
	consultationRepo repository.ConsultationRepository
	notifier         service.Notifier
	triage           *service.TriageService
	broadcaster      RoomBroadcaster
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository,
	orderRepo repository.OrderRepository,
	messageRepo repository.MessageRepository,
	consultationRepo repository.ConsultationRepository,
	notifier service.Notifier,
	triage *service.TriageService,
	broadcaster RoomBroadcaster,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:               db,
		log:              log,
		prescriptionRepo: prescriptionRepo,
		orderRepo:        orderRepo,
		messageRepo:      messageRepo,
		consultationRepo: consultationRepo,
		notifier:         notifier,
		triage:           triage,
		broadcaster:      broadcaster,
	}
}

// Prescribe creates the prescription and its pending order in one
// transaction, then appends a system chat message and fans out
// notifications. The prescription and order either both exist or neither
// does; the side effects after commit are best-effort.
func (u *prescriptionUsecase) Prescribe(ctx context.Context, req *dto.PrescribeRequest) (*dto.PrescribeResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	consultationID, err := uuid.Parse(req.ConsultationID)
	if err != nil {
		return nil, ErrConsultationNotFound
	}

	consultation, err := u.consultationRepo.FindByID(u.db.WithContext(ctx), consultationID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", consultationID, err)
		return nil, err
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}
	if !consultation.ClaimedBy(doctorID) {
		return nil, ErrNotAssignedDoctor
	}
	if consultation.Status != entity.ConsultationStatusActive {
		return nil, ErrConsultationNotActive
	}

	prescription := &entity.Prescription{
		ConsultationID: consultationID,
		Medications: entity.MedicationList{
			{
				Name:         req.Medication,
				Dosage:       req.Dosage,
				Instructions: req.Instructions,
			},
		},
	}
	order := &entity.Order{
		PublicOrderID: identity.NewOrderID(),
		PatientID:     consultation.PatientID,
		SecureCode:    identity.NewSecureCode(),
		Status:        entity.OrderStatusPending,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.prescriptionRepo.Create(tx, prescription); err != nil {
			return err
		}
		order.PrescriptionID = prescription.ID
		return u.orderRepo.Create(tx, order)
	})
	if err != nil {
		u.log.Warnf("Failed to create prescription for consultation %s: %+v", consultationID, err)
		return nil, err
	}

	// The chat record of the prescription is durable but outside the
	// transaction above; losing it does not undo the prescription.
	systemMessage := &entity.Message{
		ConsultationID: consultationID,
		SenderID:       doctorID,
		Content:        fmt.Sprintf("💊 Prescription: %s (%s). %s", req.Medication, req.Dosage, req.Instructions),
		IsSystem:       true,
	}
	if err := u.messageRepo.Create(u.db.WithContext(ctx), systemMessage); err != nil {
		u.log.Warnf("Failed to record prescription message for consultation %s: %+v", consultationID, err)
	} else if u.broadcaster != nil {
		u.broadcaster.BroadcastToRoom(consultationID.String(), "receive_message",
			converter.MessageToResponse(systemMessage))
	}

	u.notifier.Notify(ctx, consultation.PatientID, entity.NotificationTypePrescription,
		"New prescription", fmt.Sprintf("Your doctor prescribed %s. Order %s has been created.", req.Medication, order.PublicOrderID))
	u.notifier.NotifyRole(ctx, entity.RolePharmacist, false, entity.NotificationTypeOrder,
		"New order", fmt.Sprintf("Order %s is waiting to be accepted.", order.PublicOrderID))

	u.log.Infof("Prescription issued: prescription=%s, order=%s, consultation=%s",
		prescription.ID, order.PublicOrderID, consultationID)

	return &dto.PrescribeResponse{
		Prescription: converter.PrescriptionToResponse(prescription),
		Order:        converter.OrderToResponse(order, false),
	}, nil
}

// Analyze runs the rule-based triage over free-text symptoms. Read-only;
// the route restricts it to doctors.
func (u *prescriptionUsecase) Analyze(ctx context.Context, req *dto.AnalyzeRequest) (*service.TriageResult, error) {
	result := u.triage.Analyze(req.Symptoms)
	return &result, nil
}
