package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// refundService implements RefundService.
type refundService struct {
	orderRepo repository.OrderRepository
	logger    zerolog.Logger
}

// NewRefundService creates a new refund service.
func NewRefundService(orderRepo repository.OrderRepository, logger zerolog.Logger) RefundService {
	return &refundService{
		orderRepo: orderRepo,
		logger:    logger.With().Str("service", "refund").Logger(),
	}
}

// Request flags the order identified by reference code and appends a
// refund record. Repeated submissions append further records.
func (s *refundService) Request(ctx context.Context, req *model.RefundRequest) error {
	order, err := s.orderRepo.GetByRefCode(ctx, req.RefCode)
	if err != nil {
		return fmt.Errorf("failed to look up order: %w", err)
	}
	if order == nil {
		s.logger.Debug().Str("ref_code", req.RefCode).Msg("refund for unknown ref code")
		return model.ErrOrderNotFound
	}

	order.RefundRequested = true
	order.UpdatedAt = time.Now()
	if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
		return fmt.Errorf("failed to flag refund request: %w", err)
	}

	refund := &model.Refund{
		ID:        uuid.New(),
		OrderID:   order.ID,
		Reason:    req.Message,
		Email:     req.Email,
		CreatedAt: time.Now(),
	}
	if err := s.orderRepo.CreateRefund(ctx, refund); err != nil {
		return fmt.Errorf("failed to record refund request: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("ref_code", req.RefCode).
		Msg("refund requested")

	return nil
}
