package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"emedica-be/internal/auth"
	"emedica-be/internal/logger"
	"emedica-be/internal/utils"

	"go.uber.org/zap"
)

// TokenIssuer is satisfied by *auth.TokenManager.
type TokenIssuer interface {
	GeneratePair(userID uint, email, role string) (auth.TokenPair, error)
}

type Service interface {
	SignUp(ctx context.Context, input SignUpInput) (*User, error)
	SignIn(ctx context.Context, input SignInInput) (*User, auth.TokenPair, error)
	Get(ctx context.Context, id uint) (*User, error)
	List(ctx context.Context, page, limit int) ([]User, int64, error)
	Update(ctx context.Context, id uint, input UpdateUserInput) (*User, error)
	Delete(ctx context.Context, id uint) error
	UpdatePaymentMethod(ctx context.Context, input UpdatePaymentMethodInput) error
}

type service struct {
	repo   Repository
	tokens TokenIssuer
}

func NewService(repo Repository, tokens TokenIssuer) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) SignUp(ctx context.Context, input SignUpInput) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SignUp"),
	)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	email := normalizeEmail(input.Email)
	u, err := s.repo.Create(ctx, strings.TrimSpace(input.Name), email, hashed, RoleUser)
	if err != nil {
		if !errors.Is(err, ErrEmailExists) {
			log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		}
		return nil, err
	}

	log.Info("user signed up", zap.Uint("new_user_id", u.ID))
	return u, nil
}

func (s *service) SignIn(ctx context.Context, input SignInInput) (*User, auth.TokenPair, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SignIn"),
	)

	if err := input.Validate(); err != nil {
		return nil, auth.TokenPair{}, err
	}

	u, err := s.repo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Info("sign in for unknown email")
			return nil, auth.TokenPair{}, ErrInvalidCredentials
		}
		return nil, auth.TokenPair{}, err
	}

	if !CheckPasswordHash(input.Password, u.Password) {
		log.Info("password mismatch", zap.Uint("target_user_id", u.ID))
		return nil, auth.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.tokens.GeneratePair(u.ID, u.Email, string(u.Role))
	if err != nil {
		log.Error("failed to generate tokens", zap.Error(err))
		return nil, auth.TokenPair{}, err
	}

	return u, pair, nil
}

func (s *service) Get(ctx context.Context, id uint) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, page, limit int) ([]User, int64, error) {
	return s.repo.List(ctx, limit, utils.Offset(page, limit))
}

func (s *service) Update(ctx context.Context, id uint, input UpdateUserInput) (*User, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("user updated",
		zap.Uint("target_user_id", id),
		zap.String("role", string(input.Role)),
	)
	return u, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if callerID, ok := utils.GetUserIDFromContext(ctx); ok && callerID == id {
		return fmt.Errorf("%w: cannot delete your own account", ErrInvalidInput)
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) UpdatePaymentMethod(ctx context.Context, input UpdatePaymentMethodInput) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUserNotAuthenticated
	}
	if err := input.Validate(); err != nil {
		return err
	}
	return s.repo.UpdatePaymentMethod(ctx, userID, input.Type)
}
