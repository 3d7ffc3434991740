package usecase

import (
	"context"
	"errors"

	"github.com/incorgnihealth/api/internal/converter"
	"github.com/incorgnihealth/api/internal/delivery/dto"
	"github.com/incorgnihealth/api/internal/delivery/http/middleware"
	"github.com/incorgnihealth/api/internal/domain/entity"
	"github.com/incorgnihealth/api/internal/domain/repository"
	"github.com/incorgnihealth/api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrConsultationNotFound = errors.New("consultation not found")
	ErrConsultationClaimed  = errors.New("consultation already claimed by another doctor")
	ErrNotParticipant       = errors.New("only participants can access this consultation")
)

type ConsultationUsecase interface {
	Start(ctx context.Context) (*dto.ConsultationResponse, error)
	Claim(ctx context.Context, consultationID uuid.UUID) (*dto.ConsultationResponse, error)
	Close(ctx context.Context, consultationID uuid.UUID) (*dto.ConsultationResponse, error)
	Get(ctx context.Context, consultationID uuid.UUID) (*dto.ConsultationResponse, error)
}

type consultationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	consultationRepo repository.ConsultationRepository
	notifier         service.Notifier
}

func NewConsultationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	consultationRepo repository.ConsultationRepository,
	notifier service.Notifier,
) ConsultationUsecase {
	return &consultationUsecase{
		db:               db,
		log:              log,
		consultationRepo: consultationRepo,
		notifier:         notifier,
	}
}

// Start opens a new pending consultation for the logged-in patient. Every
// online doctor gets a best-effort heads-up; none is guaranteed to see it.
func (u *consultationUsecase) Start(ctx context.Context) (*dto.ConsultationResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	consultation := &entity.Consultation{
		PatientID: userID,
		Status:    entity.ConsultationStatusPending,
	}

	if err := u.consultationRepo.Create(u.db.WithContext(ctx), consultation); err != nil {
		u.log.Warnf("Failed to create consultation: %+v", err)
		return nil, err
	}

	u.notifier.NotifyRole(ctx, entity.RoleDoctor, true, entity.NotificationTypeConsultation,
		"New patient waiting", "A patient is waiting for a consultation.")

	u.log.Infof("Consultation started: id=%s, patient=%s", consultation.ID, userID)
	return converter.ConsultationToResponse(consultation), nil
}

// Claim assigns the requesting doctor to the consultation. The first
// successful write wins; the repository's conditional update is the sole
// arbiter of concurrent claims. Re-claiming by the same doctor is idempotent.
func (u *consultationUsecase) Claim(ctx context.Context, consultationID uuid.UUID) (*dto.ConsultationResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	consultation, err := u.consultationRepo.FindByID(u.db.WithContext(ctx), consultationID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", consultationID, err)
		return nil, err
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}

	affected, err := u.consultationRepo.Claim(u.db.WithContext(ctx), consultationID, doctorID)
	if err != nil {
		u.log.Warnf("Failed to claim consultation %s: %+v", consultationID, err)
		return nil, err
	}
	if affected == 0 {
		// Someone else won the race (or had it already).
		return nil, ErrConsultationClaimed
	}

	u.notifier.Notify(ctx, consultation.PatientID, entity.NotificationTypeConsultation,
		"Doctor assigned", "A doctor has joined your consultation.")

	updated, err := u.consultationRepo.FindByID(u.db.WithContext(ctx), consultationID)
	if err != nil || updated == nil {
		u.log.Warnf("Failed to reload consultation %s: %+v", consultationID, err)
		consultation.DoctorID = &doctorID
		consultation.Status = entity.ConsultationStatusActive
		return converter.ConsultationToResponse(consultation), nil
	}

	u.log.Infof("Doctor claimed consultation: doctor=%s, consultation=%s", doctorID, consultationID)
	return converter.ConsultationToResponse(updated), nil
}

// Close completes the consultation. Either participant may close it at any
// stage; closing a never-claimed PENDING consultation abandons the request.
func (u *consultationUsecase) Close(ctx context.Context, consultationID uuid.UUID) (*dto.ConsultationResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	consultation, err := u.consultationRepo.FindByID(u.db.WithContext(ctx), consultationID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", consultationID, err)
		return nil, err
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}

	if !consultation.IsParticipant(userID) {
		return nil, ErrNotParticipant
	}

	if _, err := u.consultationRepo.Close(u.db.WithContext(ctx), consultationID); err != nil {
		u.log.Warnf("Failed to close consultation %s: %+v", consultationID, err)
		return nil, err
	}

	if other := consultation.OtherParticipant(userID); other != nil {
		u.notifier.Notify(ctx, *other, entity.NotificationTypeConsultation,
			"Consultation ended", "The consultation has been marked as completed.")
	}

	consultation.Status = entity.ConsultationStatusCompleted

	u.log.Infof("Consultation closed: id=%s, closedBy=%s", consultationID, userID)
	return converter.ConsultationToResponse(consultation), nil
}

// Get returns the consultation with nested patient, doctor, messages and
// prescriptions. Only the two participants (or an admin) may read it.
func (u *consultationUsecase) Get(ctx context.Context, consultationID uuid.UUID) (*dto.ConsultationResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	role, _ := middleware.GetRoleFromContext(ctx)

	consultation, err := u.consultationRepo.FindByIDWithDetails(u.db.WithContext(ctx), consultationID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", consultationID, err)
		return nil, err
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}

	if !consultation.IsParticipant(userID) && role != entity.RoleAdmin {
		return nil, ErrNotParticipant
	}

	return converter.ConsultationToResponse(consultation), nil
}
