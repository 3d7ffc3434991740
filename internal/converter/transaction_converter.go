package converter

import (
	"github.com/incorgnihealth/api/internal/delivery/dto"
	"github.com/incorgnihealth/api/internal/domain/entity"
)

func TransactionToResponse(transaction *entity.Transaction) *dto.TransactionResponse {
	if transaction == nil {
		return nil
	}

	return &dto.TransactionResponse{
		ID:          transaction.ID,
		PayerID:     transaction.PayerID,
		PayeeID:     transaction.PayeeID,
		Amount:      transaction.Amount.StringFixed(2),
		PlatformFee: transaction.PlatformFee.StringFixed(2),
		NetAmount:   transaction.NetAmount.StringFixed(2),
		Type:        string(transaction.Type),
		Status:      string(transaction.Status),
		CreatedAt:   transaction.CreatedAt,
	}
}

func TransactionsToResponses(transactions []entity.Transaction) []dto.TransactionResponse {
	responses := make([]dto.TransactionResponse, len(transactions))
	for i, transaction := range transactions {
		resp := TransactionToResponse(&transaction)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
