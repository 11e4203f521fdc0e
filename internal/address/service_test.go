package address

import (
	"context"
	"errors"
	"testing"

	"emedica-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByUserID(ctx context.Context, userID uint) (*ShippingAddress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ShippingAddress), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, userID uint, addr ShippingAddress) error {
	args := m.Called(ctx, userID, addr)
	return args.Error(0)
}

// --- Helpers ---

func ctxWithUser(userID uint) context.Context {
	return utils.SetUserContext(context.Background(), userID, "user@example.com", utils.RoleUser)
}

func validInput() UpdateAddressInput {
	return UpdateAddressInput{
		FullName:      " Jane Doe ",
		StreetAddress: "12 Market Street",
		City:          "Springfield",
		PostalCode:    "12345",
		Country:       "USA",
	}
}

// --- Tests ---

func TestService_Get(t *testing.T) {
	t.Run("Unauthenticated", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		_, err := svc.Get(context.Background())
		assert.ErrorIs(t, err, ErrUserNotAuthenticated)
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		addr := &ShippingAddress{FullName: "Jane Doe"}

		repo.On("GetByUserID", mock.Anything, uint(5)).Return(addr, nil)

		got, err := svc.Get(ctxWithUser(5))
		assert.NoError(t, err)
		assert.Equal(t, "Jane Doe", got.FullName)
		repo.AssertExpectations(t)
	})

	t.Run("NotSet", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByUserID", mock.Anything, uint(5)).Return(nil, ErrAddressNotFound)

		_, err := svc.Get(ctxWithUser(5))
		assert.ErrorIs(t, err, ErrAddressNotFound)
	})
}

func TestService_Update(t *testing.T) {
	t.Run("Unauthenticated", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Update(context.Background(), validInput())
		assert.ErrorIs(t, err, ErrUserNotAuthenticated)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("InvalidInput", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		in := validInput()
		in.City = "NY"

		_, err := svc.Update(ctxWithUser(1), in)
		assert.ErrorIs(t, err, ErrInvalidAddress)
		assert.Contains(t, err.Error(), "city")
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("Success_TrimsFields", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Save", mock.Anything, uint(1), mock.MatchedBy(func(a ShippingAddress) bool {
			return a.FullName == "Jane Doe"
		})).Return(nil)

		got, err := svc.Update(ctxWithUser(1), validInput())
		assert.NoError(t, err)
		assert.Equal(t, "Jane Doe", got.FullName)
		repo.AssertExpectations(t)
	})

	t.Run("RepoError", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Save", mock.Anything, uint(1), mock.Anything).Return(errors.New("db down"))

		_, err := svc.Update(ctxWithUser(1), validInput())
		assert.EqualError(t, err, "db down")
	})
}

func TestShippingAddress_Validate(t *testing.T) {
	lat := 95.0
	tests := []struct {
		name    string
		mutate  func(a *ShippingAddress)
		wantErr bool
	}{
		{"Valid", func(a *ShippingAddress) {}, false},
		{"ShortName", func(a *ShippingAddress) { a.FullName = "Al" }, true},
		{"EmptyCountry", func(a *ShippingAddress) { a.Country = "" }, true},
		{"LatOutOfRange", func(a *ShippingAddress) { a.Lat = &lat }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := ToShippingAddress(validInput())
			tt.mutate(&a)
			err := a.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAddress)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestShippingAddress_Scan(t *testing.T) {
	var a ShippingAddress
	assert.NoError(t, a.Scan([]byte(`{"fullName":"Jane","city":"Paris"}`)))
	assert.Equal(t, "Paris", a.City)

	assert.NoError(t, a.Scan(`{"fullName":"John"}`))
	assert.Equal(t, "John", a.FullName)

	assert.Error(t, a.Scan(42))
}
