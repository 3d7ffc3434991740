package usecase

import (
	"context"

	"github.com/incorgnihealth/api/internal/converter"
	"github.com/incorgnihealth/api/internal/delivery/dto"
	"github.com/incorgnihealth/api/internal/domain/entity"
	"github.com/incorgnihealth/api/internal/domain/repository"
	"github.com/incorgnihealth/api/pkg/pagination"
	"github.com/incorgnihealth/api/pkg/response"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AdminUsecase interface {
	Metrics(ctx context.Context) (*dto.AdminMetricsResponse, error)
	ListUsers(ctx context.Context, filter repository.UserFilter, params pagination.Params) ([]dto.UserResponse, *response.Meta, error)
	ListConsultations(ctx context.Context, status *entity.ConsultationStatus, params pagination.Params) ([]dto.ConsultationResponse, *response.Meta, error)
	ListOrders(ctx context.Context, status *entity.OrderStatus, params pagination.Params) ([]dto.OrderResponse, *response.Meta, error)
}

type adminUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	userRepo         repository.UserRepository
	consultationRepo repository.ConsultationRepository
	orderRepo        repository.OrderRepository
	transactionRepo  repository.TransactionRepository
}

func NewAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	consultationRepo repository.ConsultationRepository,
	orderRepo repository.OrderRepository,
	transactionRepo repository.TransactionRepository,
) AdminUsecase {
	return &adminUsecase{
		db:               db,
		log:              log,
		userRepo:         userRepo,
		consultationRepo: consultationRepo,
		orderRepo:        orderRepo,
		transactionRepo:  transactionRepo,
	}
}

// Metrics aggregates platform-wide counters. Each count is an independent
// query; the snapshot is not transactionally consistent and does not need
// to be.
func (u *adminUsecase) Metrics(ctx context.Context) (*dto.AdminMetricsResponse, error) {
	db := u.db.WithContext(ctx)

	totalUsers, err := u.userRepo.CountByRole(db, nil)
	if err != nil {
		u.log.Warnf("Failed to count users: %+v", err)
		return nil, err
	}

	doctorRole := entity.RoleDoctor
	doctors, err := u.userRepo.CountByRole(db, &doctorRole)
	if err != nil {
		u.log.Warnf("Failed to count doctors: %+v", err)
		return nil, err
	}

	patientRole := entity.RolePatient
	patients, err := u.userRepo.CountByRole(db, &patientRole)
	if err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}

	totalConsultations, err := u.consultationRepo.CountByStatus(db, nil)
	if err != nil {
		u.log.Warnf("Failed to count consultations: %+v", err)
		return nil, err
	}

	activeStatus := entity.ConsultationStatusActive
	active, err := u.consultationRepo.CountByStatus(db, &activeStatus)
	if err != nil {
		u.log.Warnf("Failed to count active consultations: %+v", err)
		return nil, err
	}

	completedStatus := entity.ConsultationStatusCompleted
	completed, err := u.consultationRepo.CountByStatus(db, &completedStatus)
	if err != nil {
		u.log.Warnf("Failed to count completed consultations: %+v", err)
		return nil, err
	}

	totalOrders, err := u.orderRepo.Count(db)
	if err != nil {
		u.log.Warnf("Failed to count orders: %+v", err)
		return nil, err
	}

	fees, err := u.transactionRepo.SumPlatformFees(db)
	if err != nil {
		u.log.Warnf("Failed to sum platform fees: %+v", err)
		return nil, err
	}

	return &dto.AdminMetricsResponse{
		Users: dto.UserMetrics{
			Total:    totalUsers,
			Doctors:  doctors,
			Patients: patients,
		},
		Consultations: dto.ConsultationMetrics{
			Total:     totalConsultations,
			Active:    active,
			Completed: completed,
		},
		Orders: dto.OrderMetrics{
			Total: totalOrders,
		},
		Revenue: dto.RevenueMetrics{
			PlatformFees: fees.StringFixed(2),
		},
	}, nil
}

func (u *adminUsecase) ListUsers(ctx context.Context, filter repository.UserFilter, params pagination.Params) ([]dto.UserResponse, *response.Meta, error) {
	users, total, err := u.userRepo.List(u.db.WithContext(ctx), filter, params.Limit, params.Offset())
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, nil, err
	}
	return converter.UsersToResponses(users), response.NewMeta(params.Page, params.Limit, total), nil
}

func (u *adminUsecase) ListConsultations(ctx context.Context, status *entity.ConsultationStatus, params pagination.Params) ([]dto.ConsultationResponse, *response.Meta, error) {
	consultations, total, err := u.consultationRepo.List(u.db.WithContext(ctx), status, params.Limit, params.Offset())
	if err != nil {
		u.log.Warnf("Failed to list consultations: %+v", err)
		return nil, nil, err
	}
	return converter.ConsultationsToResponses(consultations), response.NewMeta(params.Page, params.Limit, total), nil
}

func (u *adminUsecase) ListOrders(ctx context.Context, status *entity.OrderStatus, params pagination.Params) ([]dto.OrderResponse, *response.Meta, error) {
	orders, total, err := u.orderRepo.List(u.db.WithContext(ctx), status, params.Limit, params.Offset())
	if err != nil {
		u.log.Warnf("Failed to list orders: %+v", err)
		return nil, nil, err
	}
	return converter.OrdersToResponses(orders, false), response.NewMeta(params.Page, params.Limit, total), nil
}
