package usecase

import (
	"context"
	"errors"

	"github.com/incorgnihealth/api/internal/converter"
	"github.com/incorgnihealth/api/internal/delivery/dto"
	"github.com/incorgnihealth/api/internal/delivery/http/middleware"
	"github.com/incorgnihealth/api/internal/domain/entity"
	"github.com/incorgnihealth/api/internal/domain/repository"
	"github.com/incorgnihealth/api/pkg/pagination"
	"github.com/incorgnihealth/api/pkg/response"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type UserUsecase interface {
	GetProfile(ctx context.Context) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	MyConsultations(ctx context.Context, params pagination.Params) ([]dto.ConsultationResponse, *response.Meta, error)
	MyOrders(ctx context.Context, params pagination.Params) ([]dto.OrderResponse, *response.Meta, error)
}

type userUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	userRepo         repository.UserRepository
	consultationRepo repository.ConsultationRepository
	orderRepo        repository.OrderRepository
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	consultationRepo repository.ConsultationRepository,
	orderRepo repository.OrderRepository,
) UserUsecase {
	return &userUsecase{
		db:               db,
		log:              log,
		userRepo:         userRepo,
		consultationRepo: consultationRepo,
		orderRepo:        orderRepo,
	}
}

func (u *userUsecase) GetProfile(ctx context.Context) (*dto.UserResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

// UpdateProfile patches only the fields the client sent. Nil pointer means
// leave as-is, so clearing a field requires an explicit empty string.
func (u *userUsecase) UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	fields := map[string]interface{}{}
	if req.Nickname != nil {
		fields["nickname"] = *req.Nickname
	}
	if req.Avatar != nil {
		fields["avatar"] = *req.Avatar
	}
	if req.Age != nil {
		fields["age"] = *req.Age
	}
	if req.Sex != nil {
		fields["sex"] = *req.Sex
	}

	if len(fields) > 0 {
		if err := u.userRepo.UpdateFields(u.db.WithContext(ctx), userID, fields); err != nil {
			u.log.Warnf("Failed to update profile for %s: %+v", userID, err)
			return nil, err
		}
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to reload user %s: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	u.log.Infof("Profile updated: id=%s", userID)
	return converter.UserToResponse(user), nil
}

func (u *userUsecase) MyConsultations(ctx context.Context, params pagination.Params) ([]dto.ConsultationResponse, *response.Meta, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, nil, errors.New("user not found in context")
	}
	role, _ := middleware.GetRoleFromContext(ctx)

	var (
		consultations []entity.Consultation
		total         int64
		err           error
	)
	if role == entity.RoleDoctor {
		consultations, total, err = u.consultationRepo.FindByDoctorID(u.db.WithContext(ctx), userID, params.Limit, params.Offset())
	} else {
		consultations, total, err = u.consultationRepo.FindByPatientID(u.db.WithContext(ctx), userID, params.Limit, params.Offset())
	}
	if err != nil {
		u.log.Warnf("Failed to list consultations for %s: %+v", userID, err)
		return nil, nil, err
	}

	return converter.ConsultationsToResponses(consultations), response.NewMeta(params.Page, params.Limit, total), nil
}

// MyOrders returns the patient's orders including the secure handover code;
// the patient is the one party allowed to see it.
func (u *userUsecase) MyOrders(ctx context.Context, params pagination.Params) ([]dto.OrderResponse, *response.Meta, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, nil, errors.New("user not found in context")
	}

	orders, total, err := u.orderRepo.FindByPatientID(u.db.WithContext(ctx), userID, params.Limit, params.Offset())
	if err != nil {
		u.log.Warnf("Failed to list orders for %s: %+v", userID, err)
		return nil, nil, err
	}

	return converter.OrdersToResponses(orders, true), response.NewMeta(params.Page, params.Limit, total), nil
}
