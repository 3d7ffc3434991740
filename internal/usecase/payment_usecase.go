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
	"github.com/incorgnihealth/api/pkg/pagination"
	"github.com/incorgnihealth/api/pkg/response"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrInvalidPayee        = errors.New("invalid payee")
)

// platformFeeRate is the cut retained on every wallet payment.
var platformFeeRate = decimal.NewFromFloat(0.05)

type PaymentUsecase interface {
	Pay(ctx context.Context, req *dto.PayRequest) (*dto.TransactionResponse, error)
	History(ctx context.Context, params pagination.Params) ([]dto.TransactionResponse, *response.Meta, error)
}

type paymentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
	notifier        service.Notifier
}

func NewPaymentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
	notifier service.Notifier,
) PaymentUsecase {
	return &paymentUsecase{
		db:              db,
		log:             log,
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		notifier:        notifier,
	}
}

// Pay moves funds from the payer's wallet: 5% platform fee, remainder
// credited to the payee if one is named. Debit, credit and ledger row commit
// or roll back together; the debit is conditional on sufficient balance so a
// concurrent spend cannot overdraw.
func (u *paymentUsecase) Pay(ctx context.Context, req *dto.PayRequest) (*dto.TransactionResponse, error) {
	payerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	amount := decimal.NewFromFloat(req.Amount).Round(2)
	fee := amount.Mul(platformFeeRate).Round(2)
	net := amount.Sub(fee)

	var payeeID *uuid.UUID
	if req.PayeeID != nil {
		id, err := uuid.Parse(*req.PayeeID)
		if err != nil {
			return nil, ErrInvalidPayee
		}

		payee, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
		if err != nil {
			u.log.Warnf("Failed to find payee %s: %+v", id, err)
			return nil, err
		}
		if payee == nil {
			return nil, ErrInvalidPayee
		}
		payeeID = &id
	}

	transaction := &entity.Transaction{
		PayerID:     payerID,
		PayeeID:     payeeID,
		Amount:      amount,
		PlatformFee: fee,
		NetAmount:   net,
		Type:        entity.TransactionType(req.Type),
		Status:      entity.TransactionStatusSuccess,
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := u.userRepo.DebitWallet(tx, payerID, amount)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInsufficientBalance
		}

		if payeeID != nil {
			if err := u.userRepo.CreditWallet(tx, *payeeID, net); err != nil {
				return err
			}
		}

		return u.transactionRepo.Create(tx, transaction)
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientBalance) {
			return nil, err
		}
		u.log.Warnf("Failed to process payment from %s: %+v", payerID, err)
		return nil, err
	}

	if payeeID != nil {
		u.notifier.Notify(ctx, *payeeID, entity.NotificationTypeSystem,
			"Payment received", fmt.Sprintf("You received a payment of %s.", net.StringFixed(2)))
	}

	u.log.Infof("Payment processed: payer=%s, amount=%s, fee=%s", payerID, amount.StringFixed(2), fee.StringFixed(2))
	return converter.TransactionToResponse(transaction), nil
}

func (u *paymentUsecase) History(ctx context.Context, params pagination.Params) ([]dto.TransactionResponse, *response.Meta, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, nil, errors.New("user not found in context")
	}

	transactions, total, err := u.transactionRepo.FindByPayerID(u.db.WithContext(ctx), userID, params.Limit, params.Offset())
	if err != nil {
		u.log.Warnf("Failed to list transactions for %s: %+v", userID, err)
		return nil, nil, err
	}

	return converter.TransactionsToResponses(transactions), response.NewMeta(params.Page, params.Limit, total), nil
}
