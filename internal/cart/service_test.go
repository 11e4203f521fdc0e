package cart

import (
	"context"
	"errors"
	"math"
	"testing"

	"emedica-be/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Get(ctx context.Context, owner Owner) (*Cart, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Cart), args.Error(1)
}

func (m *MockRepository) AddItem(ctx context.Context, owner Owner, input AddItemInput) (*Cart, error) {
	args := m.Called(ctx, owner, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Cart), args.Error(1)
}

func (m *MockRepository) RemoveItem(ctx context.Context, owner Owner, productID uuid.UUID) (*Cart, error) {
	args := m.Called(ctx, owner, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Cart), args.Error(1)
}

func (m *MockRepository) MergeSession(ctx context.Context, userID uint, sessionToken string) (*Cart, error) {
	args := m.Called(ctx, userID, sessionToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Cart), args.Error(1)
}

func TestOwnerFromContext(t *testing.T) {
	ctx := utils.WithSessionToken(context.Background(), "tok")
	owner := OwnerFromContext(ctx)
	assert.False(t, owner.IsUser())
	col, val := owner.lookup()
	assert.Equal(t, "session_token", col)
	assert.Equal(t, "tok", val)

	ctx = utils.SetUserContext(ctx, 7, "u@example.com", utils.RoleUser)
	owner = OwnerFromContext(ctx)
	col, val = owner.lookup()
	assert.Equal(t, "user_id", col)
	assert.Equal(t, uint(7), val)

	assert.True(t, OwnerFromContext(context.Background()).IsZero())
}

func TestService_GetCart(t *testing.T) {
	ctx := context.Background()
	owner := Owner{UserID: 7}

	t.Run("MissingCartIsEmpty", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		repo.On("Get", ctx, owner).Return(nil, ErrCartNotFound)

		c, err := svc.GetCart(ctx, owner)
		require.NoError(t, err)
		assert.Empty(t, c.Items)
		assert.True(t, c.Prices.TotalPrice.IsZero())
	})

	t.Run("NoOwnerIsEmpty", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		c, err := svc.GetCart(ctx, Owner{})
		require.NoError(t, err)
		assert.Empty(t, c.Items)
		repo.AssertNotCalled(t, "Get")
	})

	t.Run("RepositoryError", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		repo.On("Get", ctx, owner).Return(nil, errors.New("db down"))

		_, err := svc.GetCart(ctx, owner)
		assert.Error(t, err)
	})
}

func TestService_AddItem(t *testing.T) {
	ctx := context.Background()
	owner := Owner{SessionToken: "tok"}
	input := AddItemInput{ProductID: uuid.New(), Quantity: 2}

	t.Run("InvalidQuantity", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.AddItem(ctx, owner, AddItemInput{ProductID: input.ProductID})
		assert.ErrorIs(t, err, ErrInvalidInput)
		repo.AssertNotCalled(t, "AddItem")
	})

	t.Run("QuantityTooLarge", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.AddItem(ctx, owner, AddItemInput{ProductID: input.ProductID, Quantity: math.MaxInt})
		assert.ErrorIs(t, err, ErrInvalidInput)
		repo.AssertNotCalled(t, "AddItem")
	})

	t.Run("MissingOwner", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		_, err := svc.AddItem(ctx, Owner{}, input)
		assert.ErrorIs(t, err, ErrMissingOwner)
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		repo.On("AddItem", ctx, owner, input).Return(&Cart{ID: uuid.New()}, nil)

		c, err := svc.AddItem(ctx, owner, input)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, c.ID)
		repo.AssertExpectations(t)
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		repo.On("AddItem", ctx, owner, input).Return(nil, ErrInsufficientStock)

		_, err := svc.AddItem(ctx, owner, input)
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})
}

func TestService_RemoveItem(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	svc := NewService(new(MockRepository))
	_, err := svc.RemoveItem(ctx, Owner{}, productID)
	assert.ErrorIs(t, err, ErrCartNotFound)

	repo := new(MockRepository)
	svc = NewService(repo)
	owner := Owner{UserID: 7}
	repo.On("RemoveItem", ctx, owner, productID).Return(nil, ErrCartItemNotFound)

	_, err = svc.RemoveItem(ctx, owner, productID)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestService_MergeSessionCart(t *testing.T) {
	ctx := context.Background()

	t.Run("NothingToMerge", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		repo.On("MergeSession", ctx, uint(7), "tok").Return(nil, ErrCartNotFound)

		assert.NoError(t, svc.MergeSessionCart(ctx, 7, "tok"))
	})

	t.Run("NoSessionToken", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		assert.NoError(t, svc.MergeSessionCart(ctx, 7, ""))
		repo.AssertNotCalled(t, "MergeSession")
	})

	t.Run("Failure", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		repo.On("MergeSession", ctx, uint(7), "tok").Return(nil, errors.New("db down"))

		assert.Error(t, svc.MergeSessionCart(ctx, 7, "tok"))
	})
}
