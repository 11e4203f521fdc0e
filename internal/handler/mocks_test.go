package handler

import (
	"context"

	"emedica-be/internal/address"
	"emedica-be/internal/auth"
	"emedica-be/internal/cart"
	"emedica-be/internal/category"
	"emedica-be/internal/order"
	"emedica-be/internal/payment"
	"emedica-be/internal/product"
	"emedica-be/internal/review"
	"emedica-be/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct{ mock.Mock }

func (m *MockUserService) SignUp(ctx context.Context, input user.SignUpInput) (*user.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) SignIn(ctx context.Context, input user.SignInInput) (*user.User, auth.TokenPair, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, auth.TokenPair{}, args.Error(2)
	}
	return args.Get(0).(*user.User), args.Get(1).(auth.TokenPair), args.Error(2)
}

func (m *MockUserService) Get(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, page, limit int) ([]user.User, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]user.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserService) Update(ctx context.Context, id uint, input user.UpdateUserInput) (*user.User, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserService) UpdatePaymentMethod(ctx context.Context, input user.UpdatePaymentMethodInput) error {
	return m.Called(ctx, input).Error(0)
}

type MockAddressService struct{ mock.Mock }

func (m *MockAddressService) Get(ctx context.Context) (*address.ShippingAddress, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.ShippingAddress), args.Error(1)
}

func (m *MockAddressService) Update(ctx context.Context, input address.UpdateAddressInput) (*address.ShippingAddress, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.ShippingAddress), args.Error(1)
}

type MockProductService struct{ mock.Mock }

func (m *MockProductService) GetList(ctx context.Context, opts product.ListOptions) (*product.ListResult, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.ListResult), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) GetBySlug(ctx context.Context, slug string) (*product.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) GetFeatured(ctx context.Context) ([]product.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, input product.CreateProductInput) (*product.Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id uuid.UUID, input product.UpdateProductInput) (*product.Product, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockCartService struct{ mock.Mock }

func (m *MockCartService) GetCart(ctx context.Context, owner cart.Owner) (*cart.Cart, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, owner cart.Owner, input cart.AddItemInput) (*cart.Cart, error) {
	args := m.Called(ctx, owner, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, owner cart.Owner, productID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, owner, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) MergeSessionCart(ctx context.Context, userID uint, sessionToken string) error {
	return m.Called(ctx, userID, sessionToken).Error(0)
}

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) order(args mock.Arguments) (*order.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) list(args mock.Arguments) (*order.ListResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.ListResult), args.Error(1)
}

func (m *MockOrderService) CreateOrder(ctx context.Context, userID uint) (*order.Order, error) {
	return m.order(m.Called(ctx, userID))
}

func (m *MockOrderService) GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return m.order(m.Called(ctx, id))
}

func (m *MockOrderService) ListMine(ctx context.Context, page, limit int) (*order.ListResult, error) {
	return m.list(m.Called(ctx, page, limit))
}

func (m *MockOrderService) ListAll(ctx context.Context, page, limit int) (*order.ListResult, error) {
	return m.list(m.Called(ctx, page, limit))
}

func (m *MockOrderService) MarkPaid(ctx context.Context, id uuid.UUID, result order.PaymentResult) (*order.Order, error) {
	return m.order(m.Called(ctx, id, result))
}

func (m *MockOrderService) MarkPaidCOD(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return m.order(m.Called(ctx, id))
}

func (m *MockOrderService) CreatePaymentIntent(ctx context.Context, id uuid.UUID) (*payment.Intent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Intent), args.Error(1)
}

func (m *MockOrderService) CapturePayment(ctx context.Context, id uuid.UUID, input order.CapturePaymentInput) (*order.Order, error) {
	return m.order(m.Called(ctx, id, input))
}

func (m *MockOrderService) ConfirmExternalPayment(ctx context.Context, intentID string, result order.PaymentResult) (*order.Order, error) {
	return m.order(m.Called(ctx, intentID, result))
}

func (m *MockOrderService) MarkDelivered(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return m.order(m.Called(ctx, id))
}

type MockReviewService struct{ mock.Mock }

func (m *MockReviewService) CreateOrUpdate(ctx context.Context, input review.CreateReviewInput) (*review.Review, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewService) ListByProduct(ctx context.Context, productID uuid.UUID, page, limit int) (*review.ListResult, error) {
	args := m.Called(ctx, productID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.ListResult), args.Error(1)
}

func (m *MockReviewService) GetMine(ctx context.Context, productID uuid.UUID) (*review.Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

type MockCategoryService struct{ mock.Mock }

func (m *MockCategoryService) List(ctx context.Context, filter string, page, limit int) (*category.ListResult, error) {
	args := m.Called(ctx, filter, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.ListResult), args.Error(1)
}

func (m *MockCategoryService) ListBrands(ctx context.Context, name string) ([]category.Brand, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]category.Brand), args.Error(1)
}
