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

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrOrderNotPending  = errors.New("order is not pending")
	ErrOrderNotOwned    = errors.New("order is not handled by you")
	ErrOrderWrongStage  = errors.New("order is not at the required stage")
	ErrOrderConflict    = errors.New("order was modified concurrently")
	ErrWrongSecureCode  = errors.New("invalid secure code")
	ErrDeliveryNotOwned = errors.New("delivery is not assigned to you")
)

type OrderUsecase interface {
	Accept(ctx context.Context, orderID uuid.UUID) (*dto.OrderResponse, error)
	MarkReady(ctx context.Context, orderID uuid.UUID) (*dto.OrderResponse, error)
	Pickup(ctx context.Context, orderID uuid.UUID) (*dto.OrderResponse, error)
	Deliver(ctx context.Context, orderID uuid.UUID, req *dto.DeliverRequest) (*dto.OrderResponse, error)
	PharmacyBoard(ctx context.Context, status *entity.OrderStatus) ([]dto.OrderResponse, error)
	PharmacyOrders(ctx context.Context) ([]dto.OrderResponse, error)
	AvailableDeliveries(ctx context.Context) ([]dto.OrderResponse, error)
	MyDeliveries(ctx context.Context) ([]dto.OrderResponse, error)
}

type orderUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	orderRepo repository.OrderRepository
	notifier  service.Notifier
}

func NewOrderUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	orderRepo repository.OrderRepository,
	notifier service.Notifier,
) OrderUsecase {
	return &orderUsecase{
		db:        db,
		log:       log,
		orderRepo: orderRepo,
		notifier:  notifier,
	}
}

// Accept moves a pending order to PROCESSING for the requesting pharmacy.
// The PENDING precondition travels inside the conditional update, so of two
// racing pharmacies exactly one wins; the loser sees a conflict and no state
// change.
func (u *orderUsecase) Accept(ctx context.Context, orderID uuid.UUID) (*dto.OrderResponse, error) {
	pharmacyID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	order, err := u.orderRepo.FindByID(u.db.WithContext(ctx), orderID)
	if err != nil {
		u.log.Warnf("Failed to find order %s: %+v", orderID, err)
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !entity.CanTransition(order.Status, entity.OrderStatusProcessing) {
		return nil, ErrOrderNotPending
	}

	affected, err := u.orderRepo.Accept(u.db.WithContext(ctx), orderID, pharmacyID)
	if err != nil {
		u.log.Warnf("Failed to accept order %s: %+v", orderID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrOrderConflict
	}

	u.notifier.Notify(ctx, order.PatientID, entity.NotificationTypeOrder,
		"Order accepted", fmt.Sprintf("Your order %s is being prepared.", order.PublicOrderID))

	u.log.Infof("Pharmacy accepted order: order=%s, pharmacy=%s", orderID, pharmacyID)
	return u.reload(ctx, order, entity.OrderStatusProcessing, &pharmacyID, nil)
}

// MarkReady moves PROCESSING → READY_FOR_PICKUP. Only the pharmacy that
// accepted the order may advance it; all riders are told a delivery is up
// for grabs.
func (u *orderUsecase) MarkReady(ctx context.Context, orderID uuid.UUID) (*dto.OrderResponse, error) {
	pharmacyID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	order, err := u.orderRepo.FindByID(u.db.WithContext(ctx), orderID)
	if err != nil {
		u.log.Warnf("Failed to find order %s: %+v", orderID, err)
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !order.HandledBy(pharmacyID) {
		return nil, ErrOrderNotOwned
	}
	if !entity.CanTransition(order.Status, entity.OrderStatusReadyForPickup) {
		return nil, ErrOrderWrongStage
	}

	affected, err := u.orderRepo.MarkReady(u.db.WithContext(ctx), orderID, pharmacyID)
	if err != nil {
		u.log.Warnf("Failed to mark order %s ready: %+v", orderID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrOrderConflict
	}

	u.notifier.Notify(ctx, order.PatientID, entity.NotificationTypeOrder,
		"Order ready", fmt.Sprintf("Order %s is ready for pickup!", order.PublicOrderID))
	u.notifier.NotifyRole(ctx, entity.RoleRider, false, entity.NotificationTypeOrder,
		"New delivery available", fmt.Sprintf("Order %s needs delivery.", order.PublicOrderID))

	u.log.Infof("Order marked ready: order=%s", orderID)
	return u.reload(ctx, order, entity.OrderStatusReadyForPickup, &pharmacyID, nil)
}

// Pickup moves READY_FOR_PICKUP → PICKED_UP and assigns the rider. First
// rider to land the conditional update gets the delivery.
func (u *orderUsecase) Pickup(ctx context.Context, orderID uuid.UUID) (*dto.OrderResponse, error) {
	riderID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	order, err := u.orderRepo.FindByID(u.db.WithContext(ctx), orderID)
	if err != nil {
		u.log.Warnf("Failed to find order %s: %+v", orderID, err)
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !entity.CanTransition(order.Status, entity.OrderStatusPickedUp) {
		return nil, ErrOrderWrongStage
	}

	affected, err := u.orderRepo.Pickup(u.db.WithContext(ctx), orderID, riderID)
	if err != nil {
		u.log.Warnf("Failed to pick up order %s: %+v", orderID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrOrderConflict
	}

	u.notifier.Notify(ctx, order.PatientID, entity.NotificationTypeOrder,
		"Order picked up", fmt.Sprintf("Your order %s is on its way!", order.PublicOrderID))

	u.log.Infof("Rider picked up order: order=%s, rider=%s", orderID, riderID)
	return u.reload(ctx, order, entity.OrderStatusPickedUp, order.PharmacyID, &riderID)
}

// Deliver completes the order. The submitted secure code must match the
// stored one verbatim; a mismatch changes nothing, no matter how often it is
// retried.
func (u *orderUsecase) Deliver(ctx context.Context, orderID uuid.UUID, req *dto.DeliverRequest) (*dto.OrderResponse, error) {
	riderID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	order, err := u.orderRepo.FindByID(u.db.WithContext(ctx), orderID)
	if err != nil {
		u.log.Warnf("Failed to find order %s: %+v", orderID, err)
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !order.CarriedBy(riderID) {
		return nil, ErrDeliveryNotOwned
	}
	if !entity.CanTransition(order.Status, entity.OrderStatusDelivered) {
		return nil, ErrOrderWrongStage
	}
	if req.SecureCode != order.SecureCode {
		return nil, ErrWrongSecureCode
	}

	affected, err := u.orderRepo.Deliver(u.db.WithContext(ctx), orderID, riderID)
	if err != nil {
		u.log.Warnf("Failed to deliver order %s: %+v", orderID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrOrderConflict
	}

	u.notifier.Notify(ctx, order.PatientID, entity.NotificationTypeOrder,
		"Order delivered", fmt.Sprintf("Your order %s has been delivered.", order.PublicOrderID))

	u.log.Infof("Order delivered: order=%s, rider=%s", orderID, riderID)
	return u.reload(ctx, order, entity.OrderStatusDelivered, order.PharmacyID, &riderID)
}

func (u *orderUsecase) PharmacyBoard(ctx context.Context, status *entity.OrderStatus) ([]dto.OrderResponse, error) {
	orders, err := u.orderRepo.FindByStatus(u.db.WithContext(ctx), status)
	if err != nil {
		u.log.Warnf("Failed to list orders: %+v", err)
		return nil, err
	}
	return converter.OrdersToResponses(orders, false), nil
}

func (u *orderUsecase) PharmacyOrders(ctx context.Context) ([]dto.OrderResponse, error) {
	pharmacyID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	orders, err := u.orderRepo.FindByPharmacyID(u.db.WithContext(ctx), pharmacyID)
	if err != nil {
		u.log.Warnf("Failed to list pharmacy orders for %s: %+v", pharmacyID, err)
		return nil, err
	}
	return converter.OrdersToResponses(orders, false), nil
}

func (u *orderUsecase) AvailableDeliveries(ctx context.Context) ([]dto.OrderResponse, error) {
	orders, err := u.orderRepo.FindAvailableForPickup(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list available deliveries: %+v", err)
		return nil, err
	}
	return converter.OrdersToResponses(orders, false), nil
}

func (u *orderUsecase) MyDeliveries(ctx context.Context) ([]dto.OrderResponse, error) {
	riderID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	orders, err := u.orderRepo.FindByRiderID(u.db.WithContext(ctx), riderID)
	if err != nil {
		u.log.Warnf("Failed to list deliveries for %s: %+v", riderID, err)
		return nil, err
	}
	return converter.OrdersToResponses(orders, false), nil
}

// reload fetches the updated row for the response; if the read fails the
// transition already persisted, so fall back to patching the copy in hand.
func (u *orderUsecase) reload(ctx context.Context, order *entity.Order, status entity.OrderStatus, pharmacyID, riderID *uuid.UUID) (*dto.OrderResponse, error) {
	updated, err := u.orderRepo.FindByID(u.db.WithContext(ctx), order.ID)
	if err == nil && updated != nil {
		return converter.OrderToResponse(updated, false), nil
	}

	u.log.Warnf("Failed to reload order %s: %+v", order.ID, err)
	order.Status = status
	order.PharmacyID = pharmacyID
	order.RiderID = riderID
	return converter.OrderToResponse(order, false), nil
}
