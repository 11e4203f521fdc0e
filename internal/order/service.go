package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"emedica-be/internal/cart"
	"emedica-be/internal/events"
	"emedica-be/internal/logger"
	"emedica-be/internal/metrics"
	"emedica-be/internal/payment"
	"emedica-be/internal/user"
	"emedica-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	CreateOrder(ctx context.Context, userID uint) (*Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	ListMine(ctx context.Context, page, limit int) (*ListResult, error)
	ListAll(ctx context.Context, page, limit int) (*ListResult, error)
	MarkPaid(ctx context.Context, id uuid.UUID, result PaymentResult) (*Order, error)
	MarkPaidCOD(ctx context.Context, id uuid.UUID) (*Order, error)
	CreatePaymentIntent(ctx context.Context, id uuid.UUID) (*payment.Intent, error)
	CapturePayment(ctx context.Context, id uuid.UUID, input CapturePaymentInput) (*Order, error)
	ConfirmExternalPayment(ctx context.Context, intentID string, result PaymentResult) (*Order, error)
	MarkDelivered(ctx context.Context, id uuid.UUID) (*Order, error)
}

type CartReader interface {
	GetCart(ctx context.Context, owner cart.Owner) (*cart.Cart, error)
}

type ProfileReader interface {
	Get(ctx context.Context, id uint) (*user.User, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, eventName, partitionKey string, payload any) error
}

type service struct {
	repo      Repository
	carts     CartReader
	profiles  ProfileReader
	gateway   payment.Gateway
	publisher EventPublisher
	metrics   *metrics.Registry
}

func NewService(
	repo Repository,
	carts CartReader,
	profiles ProfileReader,
	gateway payment.Gateway,
	publisher EventPublisher,
	reg *metrics.Registry,
) Service {
	if reg == nil {
		reg = metrics.Default
	}
	return &service{
		repo:      repo,
		carts:     carts,
		profiles:  profiles,
		gateway:   gateway,
		publisher: publisher,
		metrics:   reg,
	}
}

// CreateOrder checks the cart and profile before opening the transaction;
// the repository re-checks the cart under its row lock.
func (s *service) CreateOrder(ctx context.Context, userID uint) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
	)

	if userID == 0 {
		return nil, ErrUserNotAuthenticated
	}

	c, err := s.carts.GetCart(ctx, cart.Owner{UserID: userID})
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.Address == nil {
		return nil, ErrMissingAddress
	}
	if profile.PaymentMethod == nil || strings.TrimSpace(*profile.PaymentMethod) == "" {
		return nil, ErrMissingPaymentMethod
	}

	o, err := s.repo.CreateFromCart(ctx, userID, *profile.Address, *profile.PaymentMethod)
	if err != nil {
		return nil, err
	}

	log.Info("checkout complete",
		zap.String("order_id", o.ID.String()),
		zap.String("total", o.Prices.TotalPrice.StringFixed(2)),
	)
	s.metrics.Counter(metrics.OrdersCreated).Inc()
	s.publish(ctx, events.OrderCreated, o)
	return o, nil
}

// GetByID returns the order to its owner or to an admin.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) ListMine(ctx context.Context, page, limit int) (*ListResult, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}

	orders, total, err := s.repo.ListByUser(ctx, userID, limit, utils.Offset(page, limit))
	if err != nil {
		return nil, err
	}
	return newListResult(orders, total, page, limit), nil
}

func (s *service) ListAll(ctx context.Context, page, limit int) (*ListResult, error) {
	orders, total, err := s.repo.List(ctx, limit, utils.Offset(page, limit))
	if err != nil {
		return nil, err
	}
	return newListResult(orders, total, page, limit), nil
}

// MarkPaid records a payment confirmed by an admin.
func (s *service) MarkPaid(ctx context.Context, id uuid.UUID, result PaymentResult) (*Order, error) {
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return s.markPaid(ctx, id, result)
}

func (s *service) MarkPaidCOD(ctx context.Context, id uuid.UUID) (*Order, error) {
	return s.markPaid(ctx, id, CODResult())
}

// CreatePaymentIntent opens a provider-side order for the order's total and
// remembers its id so the capture and webhook can find the order again.
func (s *service) CreatePaymentIntent(ctx context.Context, id uuid.UUID) (*payment.Intent, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreatePaymentIntent"),
		zap.String("order_id", id.String()),
	)

	o, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.IsPaid {
		return nil, ErrAlreadyPaid
	}

	intent, err := s.gateway.CreateOrder(ctx, payment.CreateOrderRequest{
		ReferenceID: utils.GenerateInvoiceNumber(o.CreatedAt, o.ID),
		Amount:      o.Prices.TotalPrice,
		Currency:    payment.DefaultCurrency,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetPaymentIntent(ctx, o.ID, intent.ID); err != nil {
		return nil, err
	}

	log.Info("payment intent created", zap.String("payment_id", intent.ID))
	return intent, nil
}

// CapturePayment captures the provider order opened by CreatePaymentIntent
// for this order. The order is marked paid only when the provider reports
// the capture completed for exactly the order's total.
func (s *service) CapturePayment(ctx context.Context, id uuid.UUID, input CapturePaymentInput) (*Order, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	o, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.IsPaid {
		return nil, ErrAlreadyPaid
	}
	if o.PaymentIntent == nil || *o.PaymentIntent != input.PaymentID {
		return nil, fmt.Errorf("%w: paymentId does not belong to this order", ErrInvalidInput)
	}

	capture, err := s.gateway.CaptureOrder(ctx, input.PaymentID)
	if err != nil {
		return nil, err
	}
	if !capture.Completed() {
		logger.FromCtx(ctx).Warn("payment capture not completed",
			zap.String("order_id", id.String()),
			zap.String("status", capture.Status),
		)
		return nil, ErrPaymentNotCompleted
	}
	if !capture.Amount.Equal(o.Prices.TotalPrice) ||
		(capture.Currency != "" && capture.Currency != payment.DefaultCurrency) {
		logger.FromCtx(ctx).Error("captured amount does not match order total",
			zap.String("order_id", id.String()),
			zap.String("payment_id", input.PaymentID),
			zap.String("captured", capture.Amount.StringFixed(2)),
			zap.String("currency", capture.Currency),
			zap.String("total", o.Prices.TotalPrice.StringFixed(2)),
		)
		return nil, ErrPaymentMismatch
	}

	return s.markPaid(ctx, id, PaymentResult{
		ID:           capture.ID,
		Status:       capture.Status,
		EmailAddress: capture.PayerEmail,
		Provider:     payment.ProviderPayPal,
	})
}

// ConfirmExternalPayment handles a provider notification. A repeated
// notification for a paid order returns the order without error.
func (s *service) ConfirmExternalPayment(ctx context.Context, intentID string, result PaymentResult) (*Order, error) {
	if result.Status != payment.StatusCompleted {
		return nil, ErrPaymentNotCompleted
	}

	o, err := s.repo.GetByPaymentIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}

	paid, err := s.markPaid(ctx, o.ID, result)
	if errors.Is(err, ErrAlreadyPaid) {
		logger.FromCtx(ctx).Info("duplicate payment notification ignored",
			zap.String("order_id", o.ID.String()),
		)
		return o, nil
	}
	return paid, err
}

func (s *service) MarkDelivered(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := s.repo.MarkDelivered(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order delivered", zap.String("order_id", id.String()))
	s.metrics.Counter(metrics.OrdersDelivered).Inc()
	s.publish(ctx, events.OrderDelivered, o)
	return o, nil
}

func (s *service) markPaid(ctx context.Context, id uuid.UUID, result PaymentResult) (*Order, error) {
	o, err := s.repo.MarkPaid(ctx, id, result)
	if err != nil {
		return nil, err
	}

	s.metrics.Counter(metrics.OrdersPaid).Inc()
	s.publish(ctx, events.OrderPaid, o)
	return o, nil
}

// publish runs after commit. A broker failure is logged and never fails the
// request.
func (s *service) publish(ctx context.Context, eventName string, o *Order) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventName, o.ID.String(), newEvent(o)); err != nil {
		s.metrics.Counter(metrics.EventPublishFails).Inc()
		logger.FromCtx(ctx).Error("failed to publish event",
			zap.String("event", eventName),
			zap.String("order_id", o.ID.String()),
			zap.Error(err),
		)
	}
}

func authorize(ctx context.Context, o *Order) error {
	if utils.IsAdmin(ctx) {
		return nil
	}
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUserNotAuthenticated
	}
	if o.UserID != userID {
		return ErrForbidden
	}
	return nil
}

func newListResult(orders []Order, total int64, page, limit int) *ListResult {
	return &ListResult{
		Items:      orders,
		Total:      total,
		TotalPages: utils.TotalPages(total, limit),
		Page:       page,
	}
}
