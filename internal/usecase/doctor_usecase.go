package usecase

import (
	"context"
	"errors"

	"github.com/incorgnihealth/api/internal/converter"
	"github.com/incorgnihealth/api/internal/delivery/dto"
	"github.com/incorgnihealth/api/internal/delivery/http/middleware"
	"github.com/incorgnihealth/api/internal/domain/entity"
	"github.com/incorgnihealth/api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DoctorUsecase interface {
	Queue(ctx context.Context) ([]dto.ConsultationResponse, error)
	Stats(ctx context.Context) (*dto.DoctorStatsResponse, error)
	SetAvailability(ctx context.Context, req *dto.AvailabilityRequest) (*dto.UserResponse, error)
}

type doctorUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	userRepo         repository.UserRepository
	consultationRepo repository.ConsultationRepository
	transactionRepo  repository.TransactionRepository
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	consultationRepo repository.ConsultationRepository,
	transactionRepo repository.TransactionRepository,
) DoctorUsecase {
	return &doctorUsecase{
		db:               db,
		log:              log,
		userRepo:         userRepo,
		consultationRepo: consultationRepo,
		transactionRepo:  transactionRepo,
	}
}

// Queue returns unclaimed pending consultations plus the doctor's own active
// ones. The list is advisory; claiming is still first-write-wins.
func (u *doctorUsecase) Queue(ctx context.Context) ([]dto.ConsultationResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	consultations, err := u.consultationRepo.FindQueueForDoctor(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to load queue for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return converter.ConsultationsToResponses(consultations), nil
}

func (u *doctorUsecase) Stats(ctx context.Context) (*dto.DoctorStatsResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	db := u.db.WithContext(ctx)

	completed, err := u.consultationRepo.CountByDoctorAndStatus(db, doctorID, entity.ConsultationStatusCompleted)
	if err != nil {
		u.log.Warnf("Failed to count completed consultations for %s: %+v", doctorID, err)
		return nil, err
	}

	active, err := u.consultationRepo.CountByDoctorAndStatus(db, doctorID, entity.ConsultationStatusActive)
	if err != nil {
		u.log.Warnf("Failed to count active consultations for %s: %+v", doctorID, err)
		return nil, err
	}

	earnings, err := u.transactionRepo.SumNetAmountByPayee(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to sum earnings for %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.DoctorStatsResponse{
		Completed:     completed,
		Active:        active,
		TotalEarnings: earnings.StringFixed(2),
	}, nil
}

// SetAvailability toggles the online flag that gates consultation
// notifications, and optionally updates the displayed specialization.
func (u *doctorUsecase) SetAvailability(ctx context.Context, req *dto.AvailabilityRequest) (*dto.UserResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	fields := map[string]interface{}{
		"is_online": *req.IsOnline,
	}
	if req.Specialization != nil {
		fields["specialization"] = *req.Specialization
	}

	if err := u.userRepo.UpdateFields(u.db.WithContext(ctx), doctorID, fields); err != nil {
		u.log.Warnf("Failed to update availability for %s: %+v", doctorID, err)
		return nil, err
	}

	doctor, err := u.userRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to reload doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrUserNotFound
	}

	u.log.Infof("Doctor availability changed: id=%s, online=%t", doctorID, *req.IsOnline)
	return converter.UserToResponse(doctor), nil
}
