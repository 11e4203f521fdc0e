package user

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	minNameLength     = 3
	minPasswordLength = 6
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (in SignUpInput) Validate() error {
	if len([]rune(strings.TrimSpace(in.Name))) < minNameLength {
		return fmt.Errorf("%w: name must be at least %d characters", ErrInvalidInput, minNameLength)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if in.Password != in.ConfirmPassword {
		return fmt.Errorf("%w: passwords don't match", ErrInvalidInput)
	}
	return nil
}

func (in SignInInput) Validate() error {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	return nil
}

func (in UpdateUserInput) Validate() error {
	if len([]rune(strings.TrimSpace(in.Name))) < minNameLength {
		return fmt.Errorf("%w: name must be at least %d characters", ErrInvalidInput, minNameLength)
	}
	if !in.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, in.Role)
	}
	return nil
}

func (in UpdatePaymentMethodInput) Validate() error {
	if !slices.Contains(PaymentMethods, in.Type) {
		return fmt.Errorf("%w: payment method must be one of %s", ErrInvalidInput, strings.Join(PaymentMethods, ", "))
	}
	return nil
}
